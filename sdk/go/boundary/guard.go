package boundary

import "context"

// ToolFunc is the function signature that Wrap guards. The caller
// provides a ToolCall describing the intended invocation.
type ToolFunc func(ctx context.Context, call ToolCall) (any, error)

// Wrap returns a new ToolFunc that evaluates the boundary before
// calling fn. If the proposal is not approved, fn is never called and a
// *BlockedError carries the decision.
func (c *Client) Wrap(fn ToolFunc) ToolFunc {
	return func(ctx context.Context, call ToolCall) (any, error) {
		result := c.CheckToolCall(call)
		if !result.Allowed() {
			return nil, &BlockedError{Tool: call.Tool, Result: result}
		}
		return fn(ctx, call)
	}
}
