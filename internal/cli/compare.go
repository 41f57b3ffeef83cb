package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pipe-works/pipeworks-axis-descriptor-lab/internal/analyze"
	"github.com/pipe-works/pipeworks-axis-descriptor-lab/internal/cache"
	"github.com/pipe-works/pipeworks-axis-descriptor-lab/internal/indicator"
	"github.com/pipe-works/pipeworks-axis-descriptor-lab/internal/input"
	"github.com/pipe-works/pipeworks-axis-descriptor-lab/internal/model"
	"github.com/pipe-works/pipeworks-axis-descriptor-lab/internal/pipeline"
)

var (
	outJSON          string
	outMD            string
	timeout          time.Duration
	includeAll       bool
	classify         string
	noCache          bool
	noFooter         bool
	lexiconDir       string
	maxTokens        int
	compressionRatio float64
	expansionRatio   float64
	minTokens        int
	modalityDensity  float64
)

// compareCmd represents the compare command
var compareCmd = &cobra.Command{
	Use:   "compare <baseline> <current>",
	Short: "Compare two passages and generate a structural shift report",
	Long: `Compare aligns the baseline passage against the current one to:
- Build the word-level edit script
- Group edits into clause-level replacement rows
- Label each row with deterministic micro-indicators
- Compute the content-word delta between the sides
- Emit a transformation map with a provenance hash chain

Inputs are plain text, Markdown, or HTML files; HTML is reduced to its
visible text first.

Example:
  axislab compare baseline.txt current.txt
  axislab compare baseline.txt current.txt --json report.json --md report.md
  axislab compare baseline.html current.html --all`,
	Args: cobra.ExactArgs(2),
	RunE: runCompare,
}

func init() {
	rootCmd.AddCommand(compareCmd)

	// Output flags
	compareCmd.Flags().StringVar(&outJSON, "json", "report.json", "output JSON path")
	compareCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")
	compareCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable provenance footer in Markdown reports")

	// Analysis flags
	compareCmd.Flags().BoolVar(&includeAll, "all", false, "keep insert-only and delete-only rows in the map")
	compareCmd.Flags().StringVar(&classify, "classify", "on", "indicator classification (on, off)")
	compareCmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall comparison timeout")
	compareCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the result cache (force a fresh analysis)")
	compareCmd.Flags().StringVar(&lexiconDir, "lexicon-dir", "", "directory with lexicon overrides (defaults to embedded lexicons)")
	compareCmd.Flags().IntVar(&maxTokens, "max-tokens", 0, "max word tokens per side (0 = configured default)")

	// Indicator threshold overrides
	compareCmd.Flags().Float64Var(&compressionRatio, "compression-ratio", 0, "structural compression ratio threshold")
	compareCmd.Flags().Float64Var(&expansionRatio, "expansion-ratio", 0, "elaboration ratio threshold")
	compareCmd.Flags().IntVar(&minTokens, "min-tokens", 0, "minimum row tokens for ratio indicators")
	compareCmd.Flags().Float64Var(&modalityDensity, "modality-density", 0, "hedging density threshold")
}

func runCompare(cmd *cobra.Command, args []string) error {
	if classify != "on" && classify != "off" {
		return fmt.Errorf("--classify must be on or off, got %q", classify)
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Resolved config, then flag overrides on top
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if noCache {
		cfg.Cache.Enabled = false
	}
	if verbose {
		cfg.Output.Verbose = true
	}
	if noFooter {
		cfg.Output.IncludeFooter = false
	}
	if lexiconDir != "" {
		cfg.Indicators.LexiconDir = lexiconDir
	}
	if maxTokens > 0 {
		cfg.Limits.MaxTokensPerSide = maxTokens
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Baseline: %s\n", args[0])
		fmt.Fprintf(os.Stderr, "Current:  %s\n", args[1])
		fmt.Fprintf(os.Stderr, "Cache:    %v\n", cfg.Cache.Enabled)
		fmt.Fprintln(os.Stderr)
	}

	baseline, current, err := input.LoadPair(args[0], args[1])
	if err != nil {
		return err
	}

	analyzer, err := buildAnalyzer(cfg)
	if err != nil {
		return err
	}

	report, err := analyzer.Analyze(ctx, baseline, current, pipeline.Options{
		IncludeAll:   includeAll,
		SkipClassify: classify == "off",
		Indicators: model.IndicatorConfig{
			CompressionRatio: compressionRatio,
			ExpansionRatio:   expansionRatio,
			MinTokens:        minTokens,
			ModalityDensity:  modalityDensity,
		},
	})
	if err != nil {
		return fmt.Errorf("compare failed: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ %d edit operations\n", len(report.WordDiff))
		fmt.Fprintf(os.Stderr, "✓ %d transformation rows\n", len(report.LabeledRows))
		fmt.Fprintf(os.Stderr, "✓ chain %s\n", report.Provenance.ChainID)
		fmt.Fprintln(os.Stderr)
	}

	renderer := pipeline.NewRenderer(cfg.Output.IncludeFooter)
	if outJSON != "" {
		if err := renderer.RenderJSONFile(report, outJSON); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
	}
	if outMD != "" {
		if err := renderer.RenderMarkdownFile(report, outMD); err != nil {
			return fmt.Errorf("render Markdown: %w", err)
		}
	}
	renderer.WriteSummary(os.Stderr, report)

	return nil
}

// buildAnalyzer assembles the toolkit, lexicons, and optional report cache
// shared by the compare and serve commands.
func buildAnalyzer(cfg *model.Config) (*pipeline.Analyzer, error) {
	toolkit, err := analyze.NewProseToolkit()
	if err != nil {
		return nil, fmt.Errorf("init toolkit: %w", err)
	}

	lexicons, err := indicator.LoadLexicons(cfg.Indicators.LexiconDir)
	if err != nil {
		return nil, fmt.Errorf("load lexicons: %w", err)
	}

	var reports *cache.ReportCache
	if cfg.Cache.Enabled {
		backend := cache.NewMemoryCache(cfg.Cache.TTL, cfg.Cache.TTL)
		reports = cache.NewReportCache(backend, cfg.Cache.TTL)
	}

	return pipeline.NewAnalyzer(cfg, toolkit, lexicons, reports), nil
}
