package config

import (
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	t.Setenv("BIZPLAN_OUTPUT_DIR", "")
	t.Setenv("BIZPLAN_FONT", "")

	cfg := Load()
	if cfg.OutputDir != "." || cfg.Font != DefaultFont {
		t.Errorf("unexpected defaults: %+v", cfg)
	}

	t.Setenv("BIZPLAN_OUTPUT_DIR", "/tmp/plans")
	t.Setenv("BIZPLAN_FONT", "나눔고딕")
	cfg = Load()
	if cfg.OutputDir != "/tmp/plans" || cfg.Font != "나눔고딕" {
		t.Errorf("unexpected config: %+v", cfg)
	}
}

func TestOutputPath(t *testing.T) {
	cfg := &Config{OutputDir: "out"}

	tests := []struct {
		input, expected string
	}{
		{"plan.docx", filepath.Join("out", "plan.docx")},
		{filepath.Join("docs", "plan.docx"), filepath.Join("docs", "plan.docx")},
		{"/abs/plan.docx", "/abs/plan.docx"},
	}
	for _, tt := range tests {
		if got := cfg.OutputPath(tt.input); got != tt.expected {
			t.Errorf("OutputPath(%q) = %q, expected %q", tt.input, got, tt.expected)
		}
	}
}
