package mcp

import (
	"context"
	"errors"
	"sort"
	"time"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/ppiankov/boundary/internal/audit"
	"github.com/ppiankov/boundary/internal/model"
	"github.com/ppiankov/boundary/internal/temporal"
)

// --- Input/Output types ---

// CheckInput carries one proposal for evaluation.
type CheckInput struct {
	Kind          string            `json:"kind" jsonschema:"proposal kind (tool_call/citation/response_strategy/environment_action)"`
	Tool          string            `json:"tool,omitempty" jsonschema:"tool name for tool_call proposals"`
	Params        map[string]string `json:"params,omitempty" jsonschema:"tool parameters"`
	AnswerSpan    string            `json:"answer_span,omitempty" jsonschema:"claimed answer text for citation proposals"`
	PassageID     string            `json:"passage_id,omitempty" jsonschema:"cited passage for citation proposals"`
	Mode          string            `json:"mode,omitempty" jsonschema:"strategy mode (template/freeform)"`
	TemplateID    string            `json:"template_id,omitempty" jsonschema:"template for template-mode strategies"`
	Fields        map[string]string `json:"fields,omitempty" jsonschema:"template field values"`
	Text          string            `json:"text,omitempty" jsonschema:"free-form response text"`
	Verb          string            `json:"verb,omitempty" jsonschema:"environment action verb"`
	Object        string            `json:"object,omitempty" jsonschema:"environment action object"`
	Effects       map[string]string `json:"effects,omitempty" jsonschema:"environment-declared effect descriptors"`
	TaskID        string            `json:"task_id,omitempty" jsonschema:"requesting task"`
	Episode       int               `json:"episode,omitempty" jsonschema:"episode number"`
	EnvironmentID string            `json:"environment_id,omitempty" jsonschema:"environment name"`
	DocumentID    string            `json:"document_id,omitempty" jsonschema:"source document, if document-derived"`
	Justification string            `json:"justification,omitempty" jsonschema:"why the model wants this action"`
}

// CheckOutput contains the boundary decision.
type CheckOutput struct {
	ProposalID          string   `json:"proposal_id"`
	Domain              string   `json:"domain"`
	Outcome             string   `json:"outcome"`
	Reason              string   `json:"reason,omitempty"`
	Detail              string   `json:"detail,omitempty"`
	RuleID              string   `json:"rule_id,omitempty"`
	MissingFields       []string `json:"missing_fields,omitempty"`
	RecommendedTemplate string   `json:"recommended_template,omitempty"`
	PolicyHash          string   `json:"policy_hash,omitempty"`
}

// ReportInput describes an observed irreversible failure.
type ReportInput struct {
	EventID       string            `json:"event_id,omitempty" jsonschema:"unique event identifier, generated when omitted"`
	EnvironmentID string            `json:"environment_id" jsonschema:"environment where the failure happened"`
	Episode       int               `json:"episode,omitempty" jsonschema:"episode number"`
	Verb          string            `json:"verb" jsonschema:"action verb"`
	Object        string            `json:"object" jsonschema:"action object"`
	Effects       map[string]string `json:"effects,omitempty" jsonschema:"effect descriptors of the action"`
}

// ReportOutput confirms the committed constraint.
type ReportOutput struct {
	ConstraintID string `json:"constraint_id"`
	Pattern      string `json:"pattern"`
	Created      bool   `json:"created"`
}

// ConstraintsInput is empty.
type ConstraintsInput struct{}

// ConstraintsOutput lists the learned constraints.
type ConstraintsOutput struct {
	Constraints []ConstraintItem `json:"constraints"`
}

// ConstraintItem describes one learned deny-rule.
type ConstraintItem struct {
	ID            string `json:"id"`
	EnvironmentID string `json:"environment_id"`
	Pattern       string `json:"pattern"`
	Episode       int    `json:"episode"`
	CreatedAt     string `json:"created_at"`
}

// VerifyInput is empty.
type VerifyInput struct{}

// VerifyOutput reports the audit chain state.
type VerifyOutput struct {
	Valid     bool   `json:"valid"`
	Lines     int    `json:"lines"`
	Error     string `json:"error,omitempty"`
	ErrorLine int    `json:"error_line,omitempty"`
}

// --- Handlers ---

func (s *Server) handleCheck(ctx context.Context, req *mcpsdk.CallToolRequest, input CheckInput) (*mcpsdk.CallToolResult, CheckOutput, error) {
	p := buildProposal(input)
	rec := s.boundary.Evaluate(p)

	out := CheckOutput{
		ProposalID:          rec.ProposalID,
		Domain:              string(rec.Domain),
		Outcome:             string(rec.Decision.Outcome),
		Reason:              string(rec.Decision.Reason),
		Detail:              rec.Decision.Detail,
		RuleID:              rec.Decision.RuleID,
		MissingFields:       rec.Decision.MissingFields,
		RecommendedTemplate: rec.Decision.RecommendedTemplate,
		PolicyHash:          rec.PolicyHash,
	}
	if rec.Decision.Outcome != model.Approved {
		return &mcpsdk.CallToolResult{IsError: true}, out, nil
	}
	return nil, out, nil
}

func (s *Server) handleReportCatastrophe(ctx context.Context, req *mcpsdk.CallToolRequest, input ReportInput) (*mcpsdk.CallToolResult, ReportOutput, error) {
	if input.EnvironmentID == "" || input.Verb == "" {
		return nil, ReportOutput{}, errors.New("environment_id and verb are required")
	}

	entry, created := s.boundary.ReportCatastrophe(temporal.CatastropheReport{
		EventID:       input.EventID,
		EnvironmentID: input.EnvironmentID,
		Episode:       input.Episode,
		Action: model.EnvAction{
			Verb:    input.Verb,
			Object:  input.Object,
			Effects: toParams(input.Effects),
		},
	})

	return nil, ReportOutput{
		ConstraintID: entry.ID,
		Pattern:      entry.Pattern,
		Created:      created,
	}, nil
}

func (s *Server) handleConstraints(ctx context.Context, req *mcpsdk.CallToolRequest, input ConstraintsInput) (*mcpsdk.CallToolResult, ConstraintsOutput, error) {
	entries := s.memory.Entries()
	items := make([]ConstraintItem, len(entries))
	for i, e := range entries {
		items[i] = ConstraintItem{
			ID:            e.ID,
			EnvironmentID: e.EnvironmentID,
			Pattern:       e.Pattern,
			Episode:       e.CreatedAtEpisode,
			CreatedAt:     e.CreatedAt.Format(time.RFC3339),
		}
	}
	return nil, ConstraintsOutput{Constraints: items}, nil
}

func (s *Server) handleAuditVerify(ctx context.Context, req *mcpsdk.CallToolRequest, input VerifyInput) (*mcpsdk.CallToolResult, VerifyOutput, error) {
	if s.auditLogPath == "" {
		return nil, VerifyOutput{}, errors.New("no audit log configured")
	}
	res := audit.Verify(s.auditLogPath)
	out := VerifyOutput{
		Valid:     res.Valid,
		Lines:     res.Lines,
		Error:     res.Error,
		ErrorLine: res.ErrorLine,
	}
	if !res.Valid {
		return &mcpsdk.CallToolResult{IsError: true}, out, nil
	}
	return nil, out, nil
}

// --- Proposal builders ---

func buildProposal(input CheckInput) *model.Proposal {
	p := &model.Proposal{
		Kind:   model.Kind(input.Kind),
		Tool:   input.Tool,
		Params: toParams(input.Params),
		Context: model.RequestingContext{
			TaskID:        input.TaskID,
			Episode:       input.Episode,
			EnvironmentID: input.EnvironmentID,
			Justification: input.Justification,
		},
	}
	if input.DocumentID != "" {
		p.Context.Provenance = model.Provenance{
			Source:          "document",
			DocumentID:      input.DocumentID,
			DocumentDerived: true,
		}
	}

	switch p.Kind {
	case model.KindCitation:
		p.Citation = &model.CitationClaim{
			AnswerSpan: input.AnswerSpan,
			PassageID:  input.PassageID,
		}
	case model.KindResponseStrategy:
		p.Strategy = &model.Strategy{
			Mode:       model.StrategyMode(input.Mode),
			TemplateID: input.TemplateID,
			Fields:     toParams(input.Fields),
			Text:       input.Text,
		}
	case model.KindEnvironmentAction:
		p.EnvAction = &model.EnvAction{
			Verb:    input.Verb,
			Object:  input.Object,
			Effects: toParams(input.Effects),
		}
	}
	return p
}

// toParams orders map input by key so proposals and their audit detail
// are deterministic.
func toParams(m map[string]string) []model.Param {
	if len(m) == 0 {
		return nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]model.Param, 0, len(keys))
	for _, k := range keys {
		out = append(out, model.Param{Key: k, Value: m[k]})
	}
	return out
}
