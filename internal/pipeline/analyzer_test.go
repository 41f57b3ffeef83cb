package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/pipe-works/pipeworks-axis-descriptor-lab/internal/analyze"
	"github.com/pipe-works/pipeworks-axis-descriptor-lab/internal/cache"
	"github.com/pipe-works/pipeworks-axis-descriptor-lab/internal/diff"
	"github.com/pipe-works/pipeworks-axis-descriptor-lab/internal/indicator"
	"github.com/pipe-works/pipeworks-axis-descriptor-lab/internal/model"
)

// plainToolkit is a dictionary-free toolkit: identity lemmas, NN tags, a
// tiny stopword list, and sentence splitting on terminal punctuation.
type plainToolkit struct{}

func (plainToolkit) SplitSentences(text string) []string {
	var sents []string
	for _, part := range strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	}) {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			sents = append(sents, trimmed)
		}
	}
	return sents
}

func (plainToolkit) TagPOS(text string) []analyze.TaggedWord {
	var out []analyze.TaggedWord
	for _, w := range strings.Fields(text) {
		w = strings.Trim(w, ".,!?;:")
		if w != "" {
			out = append(out, analyze.TaggedWord{Text: w, Tag: "NN"})
		}
	}
	return out
}

func (plainToolkit) Lemmatize(word string) string { return word }

func (plainToolkit) IsStopword(word string) bool {
	switch word {
	case "a", "an", "the", "was", "is", "of", "and", "to", "he":
		return true
	}
	return false
}

func testConfig() *model.Config {
	cfg := model.DefaultConfig()
	cfg.Concurrency.ClassifyWorkers = 2
	return cfg
}

func pipelineLexicons() *indicator.Lexicons {
	return indicator.NewLexicons(
		[]string{"threat"},
		[]string{"jaw"},
		[]string{"legitimacy"},
		[]string{"stone"},
		map[string][]string{"fatigue": {"tired", "weary", "exhausted"}},
	)
}

func newTestAnalyzer(cfg *model.Config, reports *cache.ReportCache) *Analyzer {
	return NewAnalyzer(cfg, plainToolkit{}, pipelineLexicons(), reports)
}

func TestAnalyze_EndToEnd(t *testing.T) {
	a := newTestAnalyzer(testConfig(), nil)

	baseline := "the keeper looked weary tonight"
	current := "the keeper looked exhausted tonight"

	report, err := a.Analyze(context.Background(), baseline, current, Options{})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	// One replacement row: weary -> exhausted.
	if len(report.Rows) != 1 {
		t.Fatalf("expected 1 row, got %d: %+v", len(report.Rows), report.Rows)
	}
	if report.Rows[0].Removed != "weary" || report.Rows[0].Added != "exhausted" {
		t.Errorf("unexpected row: %+v", report.Rows[0])
	}
	if len(report.LabeledRows) != 1 {
		t.Fatalf("expected 1 labeled row, got %d", len(report.LabeledRows))
	}

	// weary -> exhausted moves up the fatigue scale.
	found := false
	for _, ind := range report.LabeledRows[0].Indicators {
		if ind == indicator.IntensityUp {
			found = true
		}
	}
	if !found {
		t.Errorf("expected intensity ↑, got %v", report.LabeledRows[0].Indicators)
	}

	if len(report.Delta.Removed) != 1 || report.Delta.Removed[0] != "weary" {
		t.Errorf("delta removed = %v", report.Delta.Removed)
	}
	if len(report.Delta.Added) != 1 || report.Delta.Added[0] != "exhausted" {
		t.Errorf("delta added = %v", report.Delta.Added)
	}

	// Reconstruction invariant on the embedded script.
	if got := strings.Join(diff.Reconstruct(report.WordDiff, model.OpDelete), " "); got != baseline {
		t.Errorf("baseline reconstruction = %q", got)
	}
	if got := strings.Join(diff.Reconstruct(report.WordDiff, model.OpInsert), " "); got != current {
		t.Errorf("current reconstruction = %q", got)
	}

	if report.Provenance.ChainID == "" || report.Provenance.BaselineHash == report.Provenance.CurrentHash {
		t.Errorf("provenance incomplete: %+v", report.Provenance)
	}
}

func TestAnalyze_ChainIDStableAndConfigSensitive(t *testing.T) {
	a := newTestAnalyzer(testConfig(), nil)
	ctx := context.Background()

	r1, err := a.Analyze(ctx, "one two three", "one three", Options{})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	r2, err := a.Analyze(ctx, "one two three", "one three", Options{})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if r1.Provenance.ChainID != r2.Provenance.ChainID {
		t.Error("same inputs produced different chain IDs")
	}

	r3, err := a.Analyze(ctx, "one two three", "one three", Options{Indicators: model.IndicatorConfig{CompressionRatio: 3.0}})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if r3.Provenance.ChainID == r1.Provenance.ChainID {
		t.Error("config override must change the chain ID")
	}

	r4, err := a.Analyze(ctx, "one two three", "one three", Options{IncludeAll: true})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if r4.Provenance.ChainID == r1.Provenance.ChainID {
		t.Error("include-all must change the chain ID")
	}
}

func TestAnalyze_IncludeAllKeepsOneSidedRows(t *testing.T) {
	a := newTestAnalyzer(testConfig(), nil)
	ctx := context.Background()

	// Pure insertion: "brand new" appears with no removed text.
	def, err := a.Analyze(ctx, "start end", "start brand new end", Options{})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if len(def.Rows) != 0 {
		t.Errorf("replacements-only mode should drop insert-only rows, got %+v", def.Rows)
	}

	all, err := a.Analyze(ctx, "start end", "start brand new end", Options{IncludeAll: true})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if len(all.Rows) != 1 || all.Rows[0].Removed != "" || all.Rows[0].Added != "brand new" {
		t.Errorf("include-all should keep the insertion row, got %+v", all.Rows)
	}
}

func TestAnalyze_InputTooLarge(t *testing.T) {
	cfg := testConfig()
	cfg.Limits.MaxTokensPerSide = 3
	a := newTestAnalyzer(cfg, nil)

	_, err := a.Analyze(context.Background(), "one two three four", "one", Options{})
	if err == nil {
		t.Fatal("expected size limit error")
	}
}

func TestAnalyze_InvalidOverridesRejected(t *testing.T) {
	a := newTestAnalyzer(testConfig(), nil)

	_, err := a.Analyze(context.Background(), "a", "b", Options{
		Indicators: model.IndicatorConfig{CompressionRatio: -2},
	})
	if err == nil {
		t.Fatal("expected validation error for negative ratio")
	}
	if !errors.Is(err, indicator.ErrInvalidConfig) {
		t.Errorf("error should wrap the config sentinel, got %v", err)
	}
}

func TestAnalyze_SkipClassify(t *testing.T) {
	a := newTestAnalyzer(testConfig(), nil)
	ctx := context.Background()

	report, err := a.Analyze(ctx, "the keeper looked weary", "the keeper looked exhausted", Options{SkipClassify: true})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if len(report.LabeledRows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(report.LabeledRows))
	}
	if len(report.LabeledRows[0].Indicators) != 0 || report.LabeledRows[0].Indicators == nil {
		t.Errorf("skip-classify row should carry an empty tag list, got %v", report.LabeledRows[0].Indicators)
	}

	classified, err := a.Analyze(ctx, "the keeper looked weary", "the keeper looked exhausted", Options{})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if classified.Provenance.ChainID == report.Provenance.ChainID {
		t.Error("skip-classify must change the chain ID")
	}
}

func TestAnalyze_CacheReplay(t *testing.T) {
	reports := cache.NewReportCache(cache.NewMemoryCache(time.Minute, time.Minute), time.Minute)
	a := newTestAnalyzer(testConfig(), reports)
	ctx := context.Background()

	r1, err := a.Analyze(ctx, "the keeper looked weary", "the keeper looked exhausted", Options{})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	r2, err := a.Analyze(ctx, "the keeper looked weary", "the keeper looked exhausted", Options{})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	// A cache hit replays the stored report, timestamp included.
	if !r1.GeneratedAt.Equal(r2.GeneratedAt) {
		t.Error("expected cached replay with the original timestamp")
	}
	if r1.Provenance.ChainID != r2.Provenance.ChainID {
		t.Error("chain IDs differ across cache replay")
	}
}
