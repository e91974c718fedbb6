package main

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "missing-config.yaml"))
	t.Setenv("TIMEZONE", "UTC")

	cfg := LoadConfig()

	if cfg.DBPath != "./retail.db" {
		t.Fatalf("unexpected db path default: %q", cfg.DBPath)
	}
	if cfg.OutputDir != "./output" || cfg.ExcelDir != "./excel" {
		t.Fatalf("unexpected output dir defaults: %q %q", cfg.OutputDir, cfg.ExcelDir)
	}
	if cfg.TopPercent != 20 {
		t.Fatalf("unexpected top_percent default: %d", cfg.TopPercent)
	}
	if cfg.ScoreBins != 5 {
		t.Fatalf("unexpected score_bins default: %d", cfg.ScoreBins)
	}
	if cfg.CLVMultiplier != 0.5 {
		t.Fatalf("unexpected clv_multiplier default: %f", cfg.CLVMultiplier)
	}
	if cfg.MaxInvalidPct != 10 {
		t.Fatalf("unexpected max_invalid_pct default: %f", cfg.MaxInvalidPct)
	}
	if cfg.NumTransactions != 8000 {
		t.Fatalf("unexpected num_transactions default: %d", cfg.NumTransactions)
	}
	if cfg.Currency != "₹" {
		t.Fatalf("unexpected currency default: %q", cfg.Currency)
	}
	if cfg.LLMModel != defaultAnthropicModel {
		t.Fatalf("unexpected llm model default: %q", cfg.LLMModel)
	}
	if cfg.Location == nil || cfg.Location.String() != "UTC" {
		t.Fatalf("unexpected location: %v", cfg.Location)
	}
	if !cfg.AnalysisDateOrZero().IsZero() {
		t.Fatalf("expected zero analysis date when unset")
	}
}

func TestLoadConfigYAMLAndEnvOverride(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	content := `
db_path: "/tmp/yaml-retail.db"
output_dir: "/tmp/yaml-output"
top_percent: 30
analysis_date: "2024-06-01"
currency: "$"
company_name: "YAML Retail"
timezone: "America/Los_Angeles"
`
	if err := os.WriteFile(cfgPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("CONFIG_PATH", cfgPath)
	t.Setenv("TOP_PERCENT", "25")
	t.Setenv("COMPANY_NAME", "Env Retail")

	cfg := LoadConfig()

	if cfg.TopPercent != 25 {
		t.Fatalf("expected top_percent from env override, got %d", cfg.TopPercent)
	}
	if cfg.CompanyName != "Env Retail" {
		t.Fatalf("expected company name from env override, got %q", cfg.CompanyName)
	}
	if cfg.DBPath != "/tmp/yaml-retail.db" {
		t.Fatalf("expected db path from yaml, got %q", cfg.DBPath)
	}
	if cfg.Currency != "$" {
		t.Fatalf("expected currency from yaml, got %q", cfg.Currency)
	}
	if got := cfg.AnalysisDateOrZero(); got.Format(dateLayout) != "2024-06-01" {
		t.Fatalf("unexpected analysis date: %v", got)
	}
}

func TestEnvOverrideHelpers(t *testing.T) {
	s := "initial"
	t.Setenv("RI_TEST_STR", "value")
	envOverride(&s, "RI_TEST_STR")
	if s != "value" {
		t.Fatalf("envOverride failed, got %q", s)
	}

	i := 1
	t.Setenv("RI_TEST_INT", "42")
	envOverrideInt(&i, "RI_TEST_INT")
	if i != 42 {
		t.Fatalf("envOverrideInt failed, got %d", i)
	}

	f := 0.1
	t.Setenv("RI_TEST_FLOAT", "0.75")
	envOverrideFloat(&f, "RI_TEST_FLOAT")
	if f != 0.75 {
		t.Fatalf("envOverrideFloat failed, got %f", f)
	}
}

func TestLoadConfigInvalidAnalysisDateFatal(t *testing.T) {
	if os.Getenv("TEST_INVALID_DATE_FATAL") == "1" {
		_ = os.Setenv("CONFIG_PATH", filepath.Join(os.TempDir(), "no-config.yaml"))
		_ = os.Setenv("ANALYSIS_DATE", "01/06/2024")
		LoadConfig()
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestLoadConfigInvalidAnalysisDateFatal")
	cmd.Env = append(os.Environ(), "TEST_INVALID_DATE_FATAL=1")
	err := cmd.Run()
	if err == nil {
		t.Fatal("expected subprocess to exit with failure")
	}
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected ExitError, got: %v", err)
	}
}
