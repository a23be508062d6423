package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	boundarymcp "github.com/ppiankov/boundary/internal/mcp"
)

var (
	mcpPolicy    string
	mcpCorpus    string
	mcpTemplates string
	mcpAuditLog  string
)

func init() {
	rootCmd.AddCommand(mcpCmd)
	mcpCmd.Flags().StringVar(&mcpPolicy, "policy", "", "Path to policy YAML")
	mcpCmd.Flags().StringVar(&mcpCorpus, "corpus", "", "Path to corpus YAML")
	mcpCmd.Flags().StringVar(&mcpTemplates, "templates", "", "Path to templates YAML")
	mcpCmd.Flags().StringVar(&mcpAuditLog, "audit-log", "", "Path to JSONL audit log")
}

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP tool server for agent integration",
	Long:  "Runs the boundary as an MCP (Model Context Protocol) server over stdio.\nExposes evaluation tools: check, report-catastrophe, constraints, audit-verify.",
	RunE:  runMCP,
}

func runMCP(cmd *cobra.Command, args []string) error {
	logger := newLogger()
	defer logger.Sync()

	srv, err := boundarymcp.New(boundarymcp.Config{
		PolicyPath:    mcpPolicy,
		CorpusPath:    mcpCorpus,
		TemplatesPath: mcpTemplates,
		AuditLogPath:  mcpAuditLog,
		Logger:        logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\nShutting down MCP server...")
		cancel()
	}()

	fmt.Fprintln(os.Stderr, "boundary MCP server running on stdio")
	return srv.Run(ctx)
}
