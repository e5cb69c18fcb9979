package cmd

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ssargent/bptreemap/pkg/treeconfig"
)

func runCommand(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("command %v failed: %v", args, err)
	}
	return out.String()
}

func TestValidateCommand(t *testing.T) {
	out := runCommand(t, "validate")
	if !strings.Contains(out, "ok:") {
		t.Fatalf("expected validate to report ok, got %q", out)
	}
}

func TestStatsCommand(t *testing.T) {
	out := runCommand(t, "stats")
	if !strings.Contains(out, "entries: 100") {
		t.Fatalf("expected 100 seeded entries, got %q", out)
	}
}

func TestRangeCommand(t *testing.T) {
	out := runCommand(t, "range", "3", "6")
	for _, want := range []string{"3 ->", "4 ->", "5 ->", "(3 entries)"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected output to contain %q, got %q", want, out)
		}
	}
	if strings.Contains(out, "6 ->") {
		t.Fatalf("expected the end bound to be exclusive, got %q", out)
	}
}

func TestStatsCommand_WithMetrics(t *testing.T) {
	out := runCommand(t, "stats", "--metrics")
	if !strings.Contains(out, "entries: 100") {
		t.Fatalf("expected 100 seeded entries, got %q", out)
	}
	for _, want := range []string{"bptreedemo_entries_total", `tree="demo"`, "# Prometheus metrics"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected metrics output to contain %q, got %q", want, out)
		}
	}

	// Running the subcommand again must not panic from re-registering
	// the same gauges with promauto.
	out = runCommand(t, "stats", "--metrics")
	if !strings.Contains(out, "bptreedemo_entries_total") {
		t.Fatalf("expected metrics output on second run too, got %q", out)
	}
}

func TestRootCommand_DebugLoggingReadsConfiguredLevel(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	cfg := treeconfig.DefaultConfig()
	cfg.Logging.Level = "debug"
	if err := treeconfig.SaveConfig(cfg, cfgPath); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}
	defer rootCmd.Flags().Set("config", treeconfig.GetDefaultConfigPath())

	out := runCommand(t, "--config", cfgPath, "validate")
	if !strings.Contains(out, "debug: building demo tree") {
		t.Fatalf("expected debug log line when Logging.Level is debug, got %q", out)
	}
}

func TestInsertCommand(t *testing.T) {
	out := runCommand(t, "insert", "200", "new-value")
	if !strings.Contains(out, "inserted key 200") {
		t.Fatalf("expected insertion confirmation, got %q", out)
	}
}
