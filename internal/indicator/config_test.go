package indicator

import (
	"testing"

	"github.com/pipe-works/pipeworks-axis-descriptor-lab/internal/model"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg, err := NewConfig(model.IndicatorConfig{})
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}
	if cfg.CompressionRatio != 2.0 || cfg.ExpansionRatio != 2.0 {
		t.Errorf("expected default ratios 2.0, got %v/%v", cfg.CompressionRatio, cfg.ExpansionRatio)
	}
	if cfg.MinTokens != 2 {
		t.Errorf("expected default min tokens 2, got %d", cfg.MinTokens)
	}
	if cfg.ModalityDensity != 0.3 {
		t.Errorf("expected default density threshold 0.3, got %v", cfg.ModalityDensity)
	}
	for _, name := range AllIndicators {
		if !cfg.isEnabled(name) {
			t.Errorf("indicator %q should be enabled by default", name)
		}
	}
}

func TestNewConfig_Overrides(t *testing.T) {
	cfg, err := NewConfig(model.IndicatorConfig{
		CompressionRatio: 3.5,
		ModalityDensity:  0.15,
		MinTokens:        4,
	})
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}
	if cfg.CompressionRatio != 3.5 {
		t.Errorf("compression ratio override lost: %v", cfg.CompressionRatio)
	}
	if cfg.ExpansionRatio != 2.0 {
		t.Errorf("untouched expansion ratio changed: %v", cfg.ExpansionRatio)
	}
	if cfg.ModalityDensity != 0.15 || cfg.MinTokens != 4 {
		t.Errorf("overrides lost: density=%v minTokens=%d", cfg.ModalityDensity, cfg.MinTokens)
	}
}

func TestNewConfig_RejectsInvalidValues(t *testing.T) {
	cases := []struct {
		name      string
		overrides model.IndicatorConfig
	}{
		{"negative compression ratio", model.IndicatorConfig{CompressionRatio: -1}},
		{"negative expansion ratio", model.IndicatorConfig{ExpansionRatio: -0.5}},
		{"negative min tokens", model.IndicatorConfig{MinTokens: -3}},
		{"density above one", model.IndicatorConfig{ModalityDensity: 1.5}},
		{"density below zero", model.IndicatorConfig{ModalityDensity: -0.2}},
		{"unknown indicator name", model.IndicatorConfig{Enabled: []string{"sarcasm"}}},
	}
	for _, tc := range cases {
		if _, err := NewConfig(tc.overrides); err == nil {
			t.Errorf("%s: expected validation error", tc.name)
		}
	}
}

func TestNewConfig_EnabledSubset(t *testing.T) {
	cfg, err := NewConfig(model.IndicatorConfig{Enabled: []string{Compression, IntensityUp}})
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}
	if !cfg.isEnabled(Compression) || !cfg.isEnabled(IntensityUp) {
		t.Error("requested indicators not enabled")
	}
	if cfg.isEnabled(Expansion) || cfg.isEnabled(LexicalPivot) {
		t.Error("unrequested indicators remained enabled")
	}
}
