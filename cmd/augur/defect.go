package main

import (
	"github.com/spf13/cobra"

	"github.com/panbanda/augur/internal/output"
	"github.com/panbanda/augur/pkg/analyzer/defect"
	"github.com/panbanda/augur/pkg/analyzer/metrics"
	"github.com/panbanda/augur/pkg/models"
)

var defectCmd = &cobra.Command{
	Use:   "defect <file>",
	Short: "Predict defect risk for each function in one file",
	Args:  cobra.ExactArgs(1),
	RunE:  runDefect,
}

func init() {
	defectCmd.Flags().StringP("format", "f", "", "Output format: text, json, markdown")
	defectCmd.Flags().StringP("output", "o", "", "Write output to file")
	defectCmd.Flags().Bool("classifier", false, "Use the trained defect classifier instead of the heuristic")
	rootCmd.AddCommand(defectCmd)
}

type defectReport struct {
	Path        string                    `json:"path"`
	Predictions []models.DefectPrediction `json:"predictions"`
}

func runDefect(cmd *cobra.Command, args []string) error {
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

	var predictor defect.Predictor = defect.NewHeuristic()
	useClassifier, _ := cmd.Flags().GetBool("classifier")
	if useClassifier || cfg.Defect.UseClassifier {
		classifier := defect.NewClassifier(
			defect.WithSamples(cfg.Defect.Samples),
			defect.WithSeed(cfg.Defect.Seed),
		)
		classifier.EnsureReady()
		predictor = classifier
	}

	base := defect.VectorFromMetrics(unit)
	predictions := make([]models.DefectPrediction, 0, len(perFunction))
	for _, fn := range perFunction {
		v := base
		v.Complexity = float64(fn.Cyclomatic)
		v.LinesOfCode = float64(fn.Lines)

		p, err := predictor.Predict(v)
		if err != nil {
			return err
		}
		p.FunctionName = fn.Name
		predictions = append(predictions, p)
	}

	formatter, err := output.NewFormatter(getFormat(cmd, cfg), getOutputFile(cmd), cfg.Output.Color)
	if err != nil {
		return err
	}
	defer formatter.Close()

	return formatter.Output(defectReport{Path: args[0], Predictions: predictions})
}
