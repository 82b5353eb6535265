package main

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/panbanda/augur/internal/output"
	"github.com/panbanda/augur/pkg/analyzer/metrics"
	"github.com/panbanda/augur/pkg/analyzer/smells"
	"github.com/panbanda/augur/pkg/models"
)

var smellsCmd = &cobra.Command{
	Use:   "smells <file>",
	Short: "Detect code smells in one file",
	Args:  cobra.ExactArgs(1),
	RunE:  runSmells,
}

func init() {
	smellsCmd.Flags().StringP("format", "f", "", "Output format: text, json, markdown")
	smellsCmd.Flags().StringP("output", "o", "", "Write output to file")
	rootCmd.AddCommand(smellsCmd)
}

type smellsReport struct {
	Path   string         `json:"path"`
	Smells []models.Smell `json:"smells"`
}

func runSmells(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	parsed, cleanup, err := parseFile(args[0])
	if err != nil {
		return err
	}
	defer cleanup()

	unit, _ := metrics.New().Compute(parsed)
	detected := smells.New(smells.WithThresholds(cfg.Thresholds)).Detect(parsed, unit)

	if len(detected) == 0 {
		color.Green("No code smells detected in %s", args[0])
		return nil
	}

	formatter, err := output.NewFormatter(getFormat(cmd, cfg), getOutputFile(cmd), cfg.Output.Color)
	if err != nil {
		return err
	}
	defer formatter.Close()

	return formatter.Output(smellsReport{Path: args[0], Smells: detected})
}
