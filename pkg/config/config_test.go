package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if !cfg.Analysis.Smells || !cfg.Analysis.Defect {
		t.Error("analysis stages should default on")
	}
	if cfg.Thresholds.LongMethodLines != 20 {
		t.Errorf("LongMethodLines = %d, want 20", cfg.Thresholds.LongMethodLines)
	}
	if cfg.Thresholds.HighComplexity != 10 {
		t.Errorf("HighComplexity = %d, want 10", cfg.Thresholds.HighComplexity)
	}
	if cfg.Defect.Samples != 1000 {
		t.Errorf("Defect.Samples = %d, want 1000", cfg.Defect.Samples)
	}
	if cfg.Output.Format != "text" {
		t.Errorf("Output.Format = %q, want text", cfg.Output.Format)
	}
}

func TestLoad_TOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "augur.toml")

	content := `[thresholds]
long_method_lines = 30
high_complexity = 12

[defect]
use_classifier = true
samples = 500

[output]
format = "json"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Thresholds.LongMethodLines != 30 {
		t.Errorf("LongMethodLines = %d, want 30", cfg.Thresholds.LongMethodLines)
	}
	if cfg.Thresholds.HighComplexity != 12 {
		t.Errorf("HighComplexity = %d, want 12", cfg.Thresholds.HighComplexity)
	}
	// Untouched keys keep defaults.
	if cfg.Thresholds.LargeClassMethods != 15 {
		t.Errorf("LargeClassMethods = %d, want default 15", cfg.Thresholds.LargeClassMethods)
	}
	if !cfg.Defect.UseClassifier {
		t.Error("Defect.UseClassifier should be true")
	}
	if cfg.Defect.Samples != 500 {
		t.Errorf("Defect.Samples = %d, want 500", cfg.Defect.Samples)
	}
	if cfg.Output.Format != "json" {
		t.Errorf("Output.Format = %q, want json", cfg.Output.Format)
	}
}

func TestLoad_YAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "augur.yaml")

	content := `thresholds:
  long_parameter_list: 8
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Thresholds.LongParameterList != 8 {
		t.Errorf("LongParameterList = %d, want 8", cfg.Thresholds.LongParameterList)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("Load() should fail for a missing file")
	}
}

func TestShouldExclude(t *testing.T) {
	cfg := DefaultConfig()

	cases := []struct {
		path string
		want bool
	}{
		{"src/app.py", false},
		{"src/__pycache__/app.py", true},
		{"venv/lib/thing.py", true},
		{"tests/test_app.py", true},
		{"src/conftest.py", true},
		{"src/app_test.py", true},
		{"src/apptest.py", false},
	}

	for _, tc := range cases {
		if got := cfg.ShouldExclude(tc.path); got != tc.want {
			t.Errorf("ShouldExclude(%q) = %v, want %v", tc.path, got, tc.want)
		}
	}
}
