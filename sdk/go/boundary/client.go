package boundary

import (
	"fmt"

	"github.com/ppiankov/boundary/internal/audit"
	core "github.com/ppiankov/boundary/internal/boundary"
	"github.com/ppiankov/boundary/internal/constraint"
	"github.com/ppiankov/boundary/internal/corpus"
	"github.com/ppiankov/boundary/internal/execauth"
	"github.com/ppiankov/boundary/internal/model"
	"github.com/ppiankov/boundary/internal/policy"
	"github.com/ppiankov/boundary/internal/temporal"
)

// Client holds one boundary instance for in-process enforcement.
// Thread-safe for concurrent tool calls; constraint memory is shared
// across everything the client evaluates.
type Client struct {
	b        *core.Boundary
	memory   *constraint.Memory
	auditLog *audit.Log
}

// New creates a Client with the given options.
func New(opts ...Option) (*Client, error) {
	var cfg clientConfig
	for _, o := range opts {
		o(&cfg)
	}

	policyCfg, policyHash, err := policy.LoadConfigWithHash(cfg.policyPath)
	if err != nil {
		return nil, fmt.Errorf("boundary: failed to load policy config: %w", err)
	}

	store, err := corpus.Load(cfg.corpusPath)
	if err != nil {
		return nil, fmt.Errorf("boundary: failed to load corpus: %w", err)
	}

	templates, err := execauth.LoadRegistry(cfg.templatesPath)
	if err != nil {
		return nil, fmt.Errorf("boundary: failed to load templates: %w", err)
	}

	var auditLog *audit.Log
	var recorder audit.Recorder
	if cfg.auditLogPath != "" {
		auditLog, err = audit.Open(cfg.auditLogPath)
		if err != nil {
			return nil, fmt.Errorf("boundary: failed to open audit log: %w", err)
		}
		recorder = auditLog
	}

	mem := constraint.NewMemory()
	return &Client{
		b: core.New(core.Config{
			Policy:     policyCfg,
			PolicyHash: policyHash,
			Corpus:     store,
			Templates:  templates,
			Memory:     mem,
			Audit:      recorder,
			Logger:     cfg.logger,
		}),
		memory:   mem,
		auditLog: auditLog,
	}, nil
}

// Close closes the audit log if configured.
func (c *Client) Close() error {
	if c.auditLog != nil {
		return c.auditLog.Close()
	}
	return nil
}

// CheckToolCall evaluates a tool invocation without executing anything.
func (c *Client) CheckToolCall(tc ToolCall) Result {
	return toResult(c.b.Evaluate(toolCallProposal(tc)))
}

// CheckCitation evaluates a citation claim against the corpus.
func (c *Client) CheckCitation(ct Citation) Result {
	p := &model.Proposal{
		Kind: model.KindCitation,
		Citation: &model.CitationClaim{
			AnswerSpan: ct.AnswerSpan,
			PassageID:  ct.PassageID,
		},
		Context: model.RequestingContext{TaskID: ct.TaskID},
	}
	return toResult(c.b.Evaluate(p))
}

// CheckStrategy evaluates a response strategy. Template mode when
// TemplateID is set, free-form otherwise.
func (c *Client) CheckStrategy(st Strategy) Result {
	mode := model.StrategyFreeForm
	if st.TemplateID != "" {
		mode = model.StrategyTemplate
	}
	p := &model.Proposal{
		Kind: model.KindResponseStrategy,
		Strategy: &model.Strategy{
			Mode:       mode,
			TemplateID: st.TemplateID,
			Fields:     toParams(st.Fields),
			Text:       st.Text,
		},
		Context: model.RequestingContext{TaskID: st.TaskID},
	}
	return toResult(c.b.Evaluate(p))
}

// CheckEnvAction evaluates an environment action against constraint
// memory.
func (c *Client) CheckEnvAction(ea EnvAction) Result {
	p := &model.Proposal{
		Kind: model.KindEnvironmentAction,
		EnvAction: &model.EnvAction{
			Verb:    ea.Verb,
			Object:  ea.Object,
			Effects: toParams(ea.Effects),
		},
		Context: model.RequestingContext{
			TaskID:        ea.EnvironmentID,
			Episode:       ea.Episode,
			EnvironmentID: ea.EnvironmentID,
		},
	}
	return toResult(c.b.Evaluate(p))
}

// ReportCatastrophe commits the action's causal pattern to constraint
// memory. Returns the learned constraint; created is false when the
// pattern was already constrained.
func (c *Client) ReportCatastrophe(ea EnvAction) (Constraint, bool) {
	entry, created := c.b.ReportCatastrophe(temporal.CatastropheReport{
		EnvironmentID: ea.EnvironmentID,
		Episode:       ea.Episode,
		Action: model.EnvAction{
			Verb:    ea.Verb,
			Object:  ea.Object,
			Effects: toParams(ea.Effects),
		},
	})
	return Constraint{
		ID:            entry.ID,
		EnvironmentID: entry.EnvironmentID,
		Pattern:       entry.Pattern,
		Episode:       entry.CreatedAtEpisode,
	}, created
}

// Constraints returns the learned constraints in insertion order.
func (c *Client) Constraints() []Constraint {
	entries := c.memory.Entries()
	out := make([]Constraint, len(entries))
	for i, e := range entries {
		out[i] = Constraint{
			ID:            e.ID,
			EnvironmentID: e.EnvironmentID,
			Pattern:       e.Pattern,
			Episode:       e.CreatedAtEpisode,
		}
	}
	return out
}

func toolCallProposal(tc ToolCall) *model.Proposal {
	p := &model.Proposal{
		Kind:   model.KindToolCall,
		Tool:   tc.Tool,
		Params: toParams(tc.Params),
		Context: model.RequestingContext{
			TaskID:        tc.TaskID,
			Justification: tc.Justification,
		},
	}
	if tc.DocumentID != "" {
		p.Context.Provenance = model.Provenance{
			Source:          "document",
			DocumentID:      tc.DocumentID,
			DocumentDerived: true,
		}
	}
	return p
}
