package pipeline

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/pipe-works/pipeworks-axis-descriptor-lab/internal/analyze"
	"github.com/pipe-works/pipeworks-axis-descriptor-lab/internal/cache"
	"github.com/pipe-works/pipeworks-axis-descriptor-lab/internal/delta"
	"github.com/pipe-works/pipeworks-axis-descriptor-lab/internal/diff"
	"github.com/pipe-works/pipeworks-axis-descriptor-lab/internal/hashing"
	"github.com/pipe-works/pipeworks-axis-descriptor-lab/internal/indicator"
	"github.com/pipe-works/pipeworks-axis-descriptor-lab/internal/model"
	"github.com/pipe-works/pipeworks-axis-descriptor-lab/internal/worker"
)

// Analyzer orchestrates one structural shift analysis: word alignment,
// clause rows, concurrent indicator classification, content delta, and the
// provenance block. It is safe for concurrent use; all mutable state is
// per-call.
type Analyzer struct {
	toolkit  analyze.Toolkit
	lexicons *indicator.Lexicons
	config   *model.Config
	reports  *cache.ReportCache // nil when caching is disabled
}

// NewAnalyzer wires an analyzer from its dependencies. reports may be nil.
func NewAnalyzer(cfg *model.Config, tk analyze.Toolkit, lex *indicator.Lexicons, reports *cache.ReportCache) *Analyzer {
	return &Analyzer{
		toolkit:  tk,
		lexicons: lex,
		config:   cfg,
		reports:  reports,
	}
}

// Toolkit exposes the analyzer's NLP toolkit so callers computing a bare
// delta share the same lemmatizer and stopword list.
func (a *Analyzer) Toolkit() analyze.Toolkit {
	return a.toolkit
}

// Options carries per-request knobs.
type Options struct {
	// IncludeAll keeps insert-only and delete-only rows in the map.
	IncludeAll bool

	// SkipClassify emits rows with empty indicator lists. The alignment,
	// grouping, and delta stages run unchanged.
	SkipClassify bool

	// Indicators overrides classification thresholds for this request.
	// Zero values fall back to the configured defaults.
	Indicators model.IndicatorConfig
}

// Analyze compares a baseline passage against a current passage and returns
// the full report. Identical (inputs, effective config) pairs share a chain
// ID, so repeat calls are served from cache when one is wired.
func (a *Analyzer) Analyze(ctx context.Context, baseline, current string, opts Options) (*model.AnalysisReport, error) {
	effective := mergeIndicatorConfig(a.config.Indicators, opts.Indicators)
	indCfg, err := indicator.NewConfig(effective)
	if err != nil {
		return nil, fmt.Errorf("indicator config: %w", err)
	}

	configHash, err := hashing.ConfigHash(struct {
		Indicators   model.IndicatorConfig `json:"indicators"`
		IncludeAll   bool                  `json:"include_all"`
		SkipClassify bool                  `json:"skip_classify"`
	}{effective, opts.IncludeAll, opts.SkipClassify})
	if err != nil {
		return nil, fmt.Errorf("config hash: %w", err)
	}

	provenance := model.Provenance{
		BaselineHash: hashing.TextHash(baseline),
		CurrentHash:  hashing.TextHash(current),
		ConfigHash:   configHash,
	}
	provenance.ChainID = hashing.AnalysisChainID(provenance.BaselineHash, provenance.CurrentHash, provenance.ConfigHash)

	if a.reports != nil {
		if cached, ok := a.reports.Get(provenance.ChainID); ok {
			return cached, nil
		}
	}

	script, err := diff.AlignContext(ctx, diff.Tokenize(baseline), diff.Tokenize(current), a.config.Limits.MaxTokensPerSide)
	if err != nil {
		return nil, err
	}

	rows := diff.GroupRows(script, opts.IncludeAll)

	var labeled []model.LabeledRow
	if opts.SkipClassify {
		labeled = make([]model.LabeledRow, len(rows))
		for i, row := range rows {
			labeled[i] = model.LabeledRow{Removed: row.Removed, Added: row.Added, Indicators: []string{}}
		}
	} else {
		classifier := indicator.NewClassifier(a.lexicons, a.toolkit, indCfg)
		var rowErr error
		labeled, rowErr = worker.ClassifyRows(classifier, rows, a.config.Concurrency.ClassifyWorkers)
		if rowErr != nil && a.config.Output.Verbose {
			// Failed rows carry empty indicator lists; the report is still whole.
			fmt.Fprintf(os.Stderr, "row classification: %v\n", rowErr)
		}
	}

	report := &model.AnalysisReport{
		GeneratedAt: time.Now().UTC(),
		WordDiff:    script,
		Rows:        rows,
		LabeledRows: labeled,
		Delta:       delta.Compute(a.toolkit, baseline, current),
		Provenance:  provenance,
		IncludeAll:  opts.IncludeAll,
	}

	if a.reports != nil {
		if err := a.reports.Set(provenance.ChainID, report); err != nil && a.config.Output.Verbose {
			fmt.Fprintf(os.Stderr, "cache report: %v\n", err)
		}
	}

	return report, nil
}

// mergeIndicatorConfig overlays non-zero request fields onto the configured
// defaults. Validation happens later in indicator.NewConfig.
func mergeIndicatorConfig(base, overrides model.IndicatorConfig) model.IndicatorConfig {
	merged := base
	if overrides.CompressionRatio != 0 {
		merged.CompressionRatio = overrides.CompressionRatio
	}
	if overrides.ExpansionRatio != 0 {
		merged.ExpansionRatio = overrides.ExpansionRatio
	}
	if overrides.MinTokens != 0 {
		merged.MinTokens = overrides.MinTokens
	}
	if overrides.ModalityDensity != 0 {
		merged.ModalityDensity = overrides.ModalityDensity
	}
	if len(overrides.Enabled) > 0 {
		merged.Enabled = overrides.Enabled
	}
	return merged
}
