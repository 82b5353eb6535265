package main

import (
	"github.com/spf13/cobra"

	"github.com/panbanda/augur/pkg/config"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "augur",
	Short: "Python code quality analysis CLI",
	Long: `Augur analyzes Python source for structural metrics, code smells,
defect risk, and test coverage gaps, and aggregates them into a
composite quality score.

It also runs as an MCP server so AI assistants can invoke the
analyzers as tools.`,
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Path to config file (TOML, YAML, or JSON)")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable verbose output")
}

// loadConfig resolves configuration from the --config flag or standard
// locations.
func loadConfig() (*config.Config, error) {
	if cfgFile != "" {
		return config.Load(cfgFile)
	}
	return config.LoadOrDefault(), nil
}
