// Package mcp exposes the execution boundary over the Model Context
// Protocol, so MCP-speaking agents can have proposals evaluated without
// linking the boundary in-process. The server only evaluates; it never
// executes anything on the agent's behalf.
package mcp

import (
	"context"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/ppiankov/boundary/internal/audit"
	"github.com/ppiankov/boundary/internal/boundary"
	"github.com/ppiankov/boundary/internal/constraint"
	"github.com/ppiankov/boundary/internal/corpus"
	"github.com/ppiankov/boundary/internal/execauth"
	"github.com/ppiankov/boundary/internal/policy"
)

// Config holds MCP server configuration.
type Config struct {
	PolicyPath    string
	CorpusPath    string
	TemplatesPath string
	AuditLogPath  string
	Logger        *zap.Logger
}

// Server wraps the MCP SDK server around one boundary instance.
// Constraint memory lives for the lifetime of the server process.
type Server struct {
	mcpServer    *mcpsdk.Server
	boundary     *boundary.Boundary
	memory       *constraint.Memory
	auditLog     *audit.Log
	auditLogPath string
	policyHash   string
}

// New creates an MCP server with loaded policy, corpus and templates.
func New(cfg Config) (*Server, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	policyCfg, policyHash, err := policy.LoadConfigWithHash(cfg.PolicyPath)
	if err != nil {
		return nil, fmt.Errorf("mcp: load policy: %w", err)
	}

	store, err := corpus.Load(cfg.CorpusPath)
	if err != nil {
		return nil, fmt.Errorf("mcp: load corpus: %w", err)
	}

	templates, err := execauth.LoadRegistry(cfg.TemplatesPath)
	if err != nil {
		return nil, fmt.Errorf("mcp: load templates: %w", err)
	}

	var auditLog *audit.Log
	var recorder audit.Recorder = audit.NewMemoryLog()
	if cfg.AuditLogPath != "" {
		auditLog, err = audit.Open(cfg.AuditLogPath)
		if err != nil {
			return nil, fmt.Errorf("mcp: open audit log: %w", err)
		}
		recorder = auditLog
	}

	mem := constraint.NewMemory()
	s := &Server{
		boundary: boundary.New(boundary.Config{
			Policy:     policyCfg,
			PolicyHash: policyHash,
			Corpus:     store,
			Templates:  templates,
			Memory:     mem,
			Audit:      recorder,
			Logger:     logger,
		}),
		memory:       mem,
		auditLog:     auditLog,
		auditLogPath: cfg.AuditLogPath,
		policyHash:   policyHash,
	}

	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    "boundary",
			Version: "0.1.0",
		},
		nil,
	)

	s.registerTools()
	return s, nil
}

// Run starts the MCP server on stdio transport. Blocks until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

// Close closes the audit log if configured.
func (s *Server) Close() error {
	if s.auditLog != nil {
		return s.auditLog.Close()
	}
	return nil
}

// registerTools adds all boundary tools to the MCP server.
func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "boundary_check",
		Description: "Evaluate a proposed action against boundary policy. Returns the decision without executing anything.",
	}, s.handleCheck)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "boundary_report_catastrophe",
		Description: "Report an irreversible failure so the causal pattern of the action is permanently denied.",
	}, s.handleReportCatastrophe)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "boundary_constraints",
		Description: "List the learned constraints in memory.",
	}, s.handleConstraints)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "boundary_audit_verify",
		Description: "Verify the hash chain of the configured audit log.",
	}, s.handleAuditVerify)
}
