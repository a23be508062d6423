package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunInitPolicy(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("HOME", tmpDir)

	if err := runInitPolicy(nil, nil); err != nil {
		t.Fatalf("runInitPolicy failed: %v", err)
	}

	policyPath := filepath.Join(tmpDir, ".boundary", "policy.yaml")
	data, err := os.ReadFile(policyPath)
	if err != nil {
		t.Fatalf("policy.yaml not created: %v", err)
	}
	for _, section := range []string{"scopes:", "rules:", "thresholds:"} {
		if !strings.Contains(string(data), section) {
			t.Errorf("policy.yaml missing section %q", section)
		}
	}
}

func TestRunInitPolicy_NoOverwrite(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("HOME", tmpDir)

	configDir := filepath.Join(tmpDir, ".boundary")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		t.Fatal(err)
	}

	sentinel := "# sentinel content\n"
	policyPath := filepath.Join(configDir, "policy.yaml")
	if err := os.WriteFile(policyPath, []byte(sentinel), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := runInitPolicy(nil, nil); err == nil {
		t.Fatal("expected error when policy.yaml already exists")
	}

	data, _ := os.ReadFile(policyPath)
	if string(data) != sentinel {
		t.Error("policy.yaml was overwritten")
	}
}
