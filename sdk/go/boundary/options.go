package boundary

import "go.uber.org/zap"

// Option configures a Client at creation time.
type Option func(*clientConfig)

type clientConfig struct {
	policyPath    string
	corpusPath    string
	templatesPath string
	auditLogPath  string
	logger        *zap.Logger
}

// WithPolicy sets the path to a policy YAML file.
func WithPolicy(path string) Option {
	return func(c *clientConfig) { c.policyPath = path }
}

// WithCorpus sets the path to a corpus YAML file.
func WithCorpus(path string) Option {
	return func(c *clientConfig) { c.corpusPath = path }
}

// WithTemplates sets the path to a templates YAML file.
func WithTemplates(path string) Option {
	return func(c *clientConfig) { c.templatesPath = path }
}

// WithAuditLog sets the path to a hash-chained JSONL audit log. Every
// decision the client makes is appended there.
func WithAuditLog(path string) Option {
	return func(c *clientConfig) { c.auditLogPath = path }
}

// WithLogger sets the structured logger for decision events.
func WithLogger(logger *zap.Logger) Option {
	return func(c *clientConfig) { c.logger = logger }
}
