package indicator

import (
	"errors"
	"fmt"

	"github.com/pipe-works/pipeworks-axis-descriptor-lab/internal/model"
)

// ErrInvalidConfig marks rejected threshold overrides. Callers surface it
// as a validation failure rather than clamping.
var ErrInvalidConfig = errors.New("invalid indicator config")

// Canonical indicator names, in evaluation (and output) order.
const (
	Compression   = "compression"
	Expansion     = "expansion"
	Embodiment    = "embodiment shift"
	AbstractionUp = "abstraction ↑"
	IntensityUp   = "intensity ↑"
	IntensityDown = "intensity ↓"
	Consolidation = "consolidation"
	Fragmentation = "fragmentation"
	ModalityShift = "modality shift"
	ToneReframing = "tone reframing"
	LexicalPivot  = "lexical pivot"
)

// AllIndicators lists the closed indicator vocabulary in evaluation order.
var AllIndicators = []string{
	Compression,
	Expansion,
	Embodiment,
	AbstractionUp,
	IntensityUp,
	IntensityDown,
	Consolidation,
	Fragmentation,
	ModalityShift,
	ToneReframing,
	LexicalPivot,
}

// Config holds validated tuning parameters for classification. Build one
// with NewConfig; a zero Config is not usable.
type Config struct {
	CompressionRatio float64
	ExpansionRatio   float64
	MinTokens        int
	ModalityDensity  float64
	enabled          map[string]struct{} // nil means all indicators active
}

// DefaultConfig returns the conservative defaults: ratio 2.0 for both size
// indicators, a two-token floor so single-word swaps are not flagged, and a
// 30 percentage-point modality density threshold.
func DefaultConfig() Config {
	return Config{
		CompressionRatio: 2.0,
		ExpansionRatio:   2.0,
		MinTokens:        2,
		ModalityDensity:  0.3,
	}
}

// NewConfig validates per-request overrides against the defaults. Zero
// values fall back to defaults; explicitly invalid values are rejected
// rather than clamped.
func NewConfig(overrides model.IndicatorConfig) (Config, error) {
	cfg := DefaultConfig()

	if overrides.CompressionRatio != 0 {
		if overrides.CompressionRatio <= 0 {
			return Config{}, fmt.Errorf("%w: compression_ratio must be positive, got %v", ErrInvalidConfig, overrides.CompressionRatio)
		}
		cfg.CompressionRatio = overrides.CompressionRatio
	}
	if overrides.ExpansionRatio != 0 {
		if overrides.ExpansionRatio <= 0 {
			return Config{}, fmt.Errorf("%w: expansion_ratio must be positive, got %v", ErrInvalidConfig, overrides.ExpansionRatio)
		}
		cfg.ExpansionRatio = overrides.ExpansionRatio
	}
	if overrides.MinTokens != 0 {
		if overrides.MinTokens < 0 {
			return Config{}, fmt.Errorf("%w: min_tokens must be non-negative, got %d", ErrInvalidConfig, overrides.MinTokens)
		}
		cfg.MinTokens = overrides.MinTokens
	}
	if overrides.ModalityDensity != 0 {
		if overrides.ModalityDensity < 0 || overrides.ModalityDensity > 1 {
			return Config{}, fmt.Errorf("%w: modality_density_threshold must be within (0,1], got %v", ErrInvalidConfig, overrides.ModalityDensity)
		}
		cfg.ModalityDensity = overrides.ModalityDensity
	}
	if len(overrides.Enabled) > 0 {
		known := make(map[string]struct{}, len(AllIndicators))
		for _, name := range AllIndicators {
			known[name] = struct{}{}
		}
		cfg.enabled = make(map[string]struct{}, len(overrides.Enabled))
		for _, name := range overrides.Enabled {
			if _, ok := known[name]; !ok {
				return Config{}, fmt.Errorf("%w: unknown indicator %q", ErrInvalidConfig, name)
			}
			cfg.enabled[name] = struct{}{}
		}
	}

	return cfg, nil
}

// isEnabled reports whether an indicator participates in classification.
func (c Config) isEnabled(name string) bool {
	if c.enabled == nil {
		return true
	}
	_, ok := c.enabled[name]
	return ok
}
