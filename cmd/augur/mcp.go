package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/panbanda/augur/internal/mcpserver"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for LLM tool integration",
	Long: `Starts an MCP server over stdio transport that exposes augur's
analyzers as tools LLMs can invoke.

To use with Claude Desktop, add to your config:
  {
    "mcpServers": {
      "augur": {
        "command": "augur",
        "args": ["mcp"]
      }
    }
  }

Available tools:
  - analyze_code         Full quality analysis with composite score
  - predict_defects      Defect probability from code or metrics
  - detect_code_smells   Structural smells with severity and confidence
  - generate_tests       Pytest skeletons for public functions
  - calculate_metrics    Structural and complexity metrics
  - get_system_stats     Session usage counters and model status
  - train_defect_model   Train the defect classifier on synthetic data`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Stdout carries the protocol; logs go to stderr.
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "augur",
	})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}

	server := mcpserver.NewServer(version, cfg, logger)
	return server.Run(cmd.Context())
}
