package execauth

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Template is a parameterized response with named {field} placeholders.
// Rendering a template costs no model generation, so a satisfiable
// template always costs less than free-form text.
type Template struct {
	ID       string   `yaml:"id"`
	Category string   `yaml:"category"`
	Body     string   `yaml:"body"`
	Fields   []string `yaml:"fields"`
}

// Render substitutes field values into the body. Every required field
// must be present.
func (t Template) Render(data map[string]string) (string, error) {
	if missing := t.MissingFields(data); len(missing) > 0 {
		return "", fmt.Errorf("template %s: missing fields %v", t.ID, missing)
	}
	out := t.Body
	for _, f := range t.Fields {
		out = strings.ReplaceAll(out, "{"+f+"}", data[f])
	}
	return out, nil
}

// MissingFields returns required fields absent from data, in declaration
// order.
func (t Template) MissingFields(data map[string]string) []string {
	var missing []string
	for _, f := range t.Fields {
		if data[f] == "" {
			missing = append(missing, f)
		}
	}
	return missing
}

// Registry holds the loaded templates.
type Registry struct {
	templates []Template
	byID      map[string]*Template
}

// NewRegistry builds a Registry.
func NewRegistry(templates []Template) *Registry {
	r := &Registry{templates: templates, byID: make(map[string]*Template)}
	for i := range r.templates {
		r.byID[r.templates[i].ID] = &r.templates[i]
	}
	return r
}

// LoadRegistry reads templates from a YAML file. Empty path or missing
// file returns the built-in defaults.
func LoadRegistry(path string) (*Registry, error) {
	if path == "" {
		return NewRegistry(DefaultTemplates), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewRegistry(DefaultTemplates), nil
		}
		return nil, fmt.Errorf("read templates %s: %w", path, err)
	}
	var templates []Template
	if err := yaml.Unmarshal(data, &templates); err != nil {
		return nil, fmt.Errorf("parse templates %s: %w", path, err)
	}
	return NewRegistry(templates), nil
}

// Get returns a template by ID.
func (r *Registry) Get(id string) (*Template, bool) {
	t, ok := r.byID[id]
	return t, ok
}

// ForCategory returns templates in declaration order for a category.
func (r *Registry) ForCategory(category string) []Template {
	var out []Template
	for _, t := range r.templates {
		if strings.EqualFold(t.Category, category) {
			out = append(out, t)
		}
	}
	return out
}

// DefaultTemplates covers the workflow categories of the built-in task
// set.
var DefaultTemplates = []Template{
	{
		ID:       "billing_inquiry",
		Category: "billing",
		Body:     "Thank you for contacting us about your billing inquiry. Your account balance is ${balance}. Your next payment of ${amount} is due on {due_date}. If you have questions, please contact our billing department.",
		Fields:   []string{"balance", "amount", "due_date"},
	},
	{
		ID:       "password_reset",
		Category: "account",
		Body:     "We've received your password reset request for account {username}. Please check your email at {email} for reset instructions. The reset link will expire in 24 hours.",
		Fields:   []string{"username", "email"},
	},
	{
		ID:       "shipping_status",
		Category: "shipping",
		Body:     "Your order #{order_id} shipped on {ship_date} via {carrier}. Tracking number: {tracking}. Estimated delivery: {delivery_date}.",
		Fields:   []string{"order_id", "ship_date", "carrier", "tracking", "delivery_date"},
	},
	{
		ID:       "refund_request",
		Category: "refund",
		Body:     "Your refund request for order #{order_id} has been processed. Refund amount: ${amount}. Please allow 3-5 business days for the refund to appear on your {payment_method}. Reference number: {ref_number}.",
		Fields:   []string{"order_id", "amount", "payment_method", "ref_number"},
	},
	{
		ID:       "technical_support",
		Category: "technical",
		Body:     "Thank you for contacting technical support regarding {issue_type}. Please try the following steps: {solution_steps}. If the issue persists, reply with error code {error_code}.",
		Fields:   []string{"issue_type", "solution_steps", "error_code"},
	},
}
