package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/pipe-works/pipeworks-axis-descriptor-lab/internal/model"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "axislab",
	Short: "Axislab - Structural shift analysis for generated text",
	Long: `Axislab compares two generated text passages and reports how the
current passage shifted away from the baseline.

It aligns the passages word by word, groups the edits into clause-level
rows, labels each row with deterministic micro-indicators (intensity
shifts, abstraction, hedging, agency changes, and so on), and computes
the content-word delta between the two sides.

Every analysis carries a provenance hash chain, so identical inputs and
settings always produce the same chain ID.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Display the version number and build information for Axislab.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("axislab v0.1.0")
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.axislab/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Bind flags to viper
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	seedDefaults()

	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		// Search for config in home directory
		viper.AddConfigPath(home + "/.axislab")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// Read in environment variables that match AXISLAB_*
	// (AXISLAB_SERVER_ADDR overrides server.addr and so on).
	viper.SetEnvPrefix("AXISLAB")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// If a config file is found, read it in
	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// seedDefaults registers every config key with viper. Env vars and config
// files only override keys viper knows about, so the defaults go in first.
func seedDefaults() {
	raw, err := yaml.Marshal(model.DefaultConfig())
	if err != nil {
		return
	}
	defaults := map[string]interface{}{}
	if err := yaml.Unmarshal(raw, &defaults); err != nil {
		return
	}
	for key, value := range defaults {
		viper.SetDefault(key, value)
	}
}

// loadConfig resolves the effective configuration: built-in defaults, then
// the config file, then AXISLAB_* environment variables. Flag handling
// stays with the individual commands.
func loadConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	yamlTags := func(dc *mapstructure.DecoderConfig) { dc.TagName = "yaml" }
	if err := viper.Unmarshal(cfg, yamlTags); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}
