package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pipe-works/pipeworks-axis-descriptor-lab/internal/input"
	"github.com/pipe-works/pipeworks-axis-descriptor-lab/internal/llm"
	"github.com/pipe-works/pipeworks-axis-descriptor-lab/internal/server"
)

var (
	serveAddr     string
	llmEnabled    bool
	llmProvider   string
	llmModel      string
	serveLexicons string
	promptDir     string
	promptName    string
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Serve exposes the analysis engine over HTTP:
- POST /api/diff, /api/analyze-delta, /api/transformation-map
- POST /api/relabel for the axis relabel policy
- POST /api/generate to drive a generation backend with provenance hashing
- GET /api/health, /api/models, /api/axes

Generation is disabled unless --llm is set; the analysis routes work
without a backend.

Example:
  axislab serve
  axislab serve --addr 0.0.0.0:8242
  axislab serve --llm --llm-provider ollama --llm-model gemma2:2b`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config)")
	serveCmd.Flags().StringVar(&serveLexicons, "lexicon-dir", "", "directory with lexicon overrides (defaults to embedded lexicons)")
	serveCmd.Flags().StringVar(&promptDir, "prompt-dir", "", "directory with system prompt .txt files (defaults to the built-in prompt)")
	serveCmd.Flags().StringVar(&promptName, "prompt", "system", "prompt file stem to load from --prompt-dir")

	// LLM flags
	serveCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable the generation backend")
	serveCmd.Flags().StringVar(&llmProvider, "llm-provider", "ollama", "generation provider (ollama, openai)")
	serveCmd.Flags().StringVar(&llmModel, "llm-model", "", "generation model name (default from config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if verbose {
		cfg.Output.Verbose = true
	}
	if serveLexicons != "" {
		cfg.Indicators.LexiconDir = serveLexicons
	}
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}

	// Configure LLM if enabled
	if llmEnabled {
		cfg.LLM.Provider = llmProvider
		if llmModel != "" {
			cfg.LLM.Model = llmModel
		}

		switch llmProvider {
		case "openai":
			cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
			if cfg.LLM.APIKey == "" {
				return fmt.Errorf("OPENAI_API_KEY environment variable not set")
			}
		case "ollama":
			// Ollama doesn't need an API key
			if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
				cfg.LLM.BaseURL = baseURL
			}
		}
	} else {
		cfg.LLM.Provider = ""
	}

	analyzer, err := buildAnalyzer(cfg)
	if err != nil {
		return err
	}

	provider, err := llm.NewProvider(llm.ConfigFromModel(cfg.LLM))
	if err != nil {
		return fmt.Errorf("init provider: %w", err)
	}

	srv := server.New(cfg, analyzer, provider)
	if promptDir != "" {
		prompt, err := input.LoadPrompt(promptDir, promptName)
		if err != nil {
			return fmt.Errorf("load system prompt (available: %v): %w", input.ListPrompts(promptDir), err)
		}
		srv.SetSystemPrompt(prompt)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Listening on %s\n", cfg.Server.Addr)
		if provider != nil {
			fmt.Fprintf(os.Stderr, "Generation: %s/%s\n", provider.Name(), cfg.LLM.Model)
		} else {
			fmt.Fprintln(os.Stderr, "Generation: disabled")
		}
	}

	return srv.Run(ctx)
}
