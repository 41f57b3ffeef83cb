package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/pipe-works/pipeworks-axis-descriptor-lab/internal/model"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage axislab configuration",
	Long: `Manage axislab configuration files and settings.

Configuration hierarchy (highest to lowest priority):
  1. CLI flags
  2. Environment variables (AXISLAB_*)
  3. Config file (~/.axislab/config.yaml)
  4. Built-in defaults`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration as YAML",
	RunE: func(cmd *cobra.Command, args []string) error {
		if file := viper.ConfigFileUsed(); file != "" {
			fmt.Fprintf(os.Stderr, "# config file: %s\n", file)
		} else {
			fmt.Fprintln(os.Stderr, "# no config file found, showing defaults")
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		out, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("marshal config: %w", err)
		}
		fmt.Print(string(out))
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file to ~/.axislab/config.yaml",
	RunE: func(cmd *cobra.Command, args []string) error {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("find home directory: %w", err)
		}
		path := filepath.Join(home, ".axislab", "config.yaml")

		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config file already exists: %s (delete it to recreate)", path)
		}

		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}

		body, err := yaml.Marshal(model.DefaultConfig())
		if err != nil {
			return fmt.Errorf("marshal config: %w", err)
		}
		header := "# axislab configuration.\n" +
			"# Overridden by AXISLAB_* environment variables and CLI flags.\n" +
			"# API keys stay in the environment: OPENAI_API_KEY, OLLAMA_BASE_URL.\n\n"
		if err := os.WriteFile(path, append([]byte(header), body...), 0644); err != nil {
			return fmt.Errorf("write config file: %w", err)
		}

		fmt.Printf("Created %s\n", path)
		fmt.Println("Review it with: axislab config show")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
}
