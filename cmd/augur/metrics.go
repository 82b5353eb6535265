package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/panbanda/augur/internal/output"
	"github.com/panbanda/augur/pkg/analyzer/metrics"
	"github.com/panbanda/augur/pkg/models"
	"github.com/panbanda/augur/pkg/parser"
)

var metricsCmd = &cobra.Command{
	Use:   "metrics <file>",
	Short: "Calculate structural and complexity metrics for one file",
	Args:  cobra.ExactArgs(1),
	RunE:  runMetrics,
}

func init() {
	metricsCmd.Flags().StringP("format", "f", "", "Output format: text, json, markdown")
	metricsCmd.Flags().StringP("output", "o", "", "Write output to file")
	rootCmd.AddCommand(metricsCmd)
}

// metricsReport renders unit and per-function metrics.
type metricsReport struct {
	Path      string                   `json:"path"`
	Metrics   models.CodeMetrics       `json:"metrics"`
	Functions []models.FunctionMetrics `json:"functions"`
}

func runMetrics(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	parsed, cleanup, err := parseFile(args[0])
	if err != nil {
		return err
	}
	defer cleanup()

	unit, perFunction := metrics.New().Compute(parsed)

	formatter, err := output.NewFormatter(getFormat(cmd, cfg), getOutputFile(cmd), cfg.Output.Color)
	if err != nil {
		return err
	}
	defer formatter.Close()

	return formatter.Output(metricsReport{
		Path:      args[0],
		Metrics:   unit,
		Functions: perFunction,
	})
}

// parseFile reads and parses one Python file. The cleanup function
// releases the parser and tree.
func parseFile(path string) (*parser.ParseResult, func(), error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}

	p := parser.New()
	parsed, err := p.Parse(source, path)
	if err != nil {
		p.Close()
		return nil, nil, err
	}

	cleanup := func() {
		parsed.Tree.Close()
		p.Close()
	}
	return parsed, cleanup, nil
}
