// Package boundary provides in-process authority separation for Go
// agent frameworks. It evaluates proposed actions (tool calls,
// citation claims, response strategies, environment actions) against
// deterministic policy before anything executes, and wraps tool
// functions so denied proposals never reach them.
//
// Usage:
//
//	bd, err := boundary.New(boundary.WithPolicy("policy.yaml"))
//	wrapped := bd.Wrap(myTool)
//	result, err := wrapped(ctx, boundary.ToolCall{
//	    Tool:   "read_file",
//	    TaskID: "doc_summary",
//	    Params: map[string]string{"path": "docs/report.txt"},
//	})
//
// The SDK links directly against internal packages for zero-subprocess
// overhead. External users import github.com/ppiankov/boundary/sdk/go/boundary.
package boundary
