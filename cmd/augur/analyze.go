package main

import (
	"fmt"
	"os"
	"sync/atomic"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/panbanda/augur/internal/fileproc"
	"github.com/panbanda/augur/internal/output"
	"github.com/panbanda/augur/internal/progress"
	"github.com/panbanda/augur/internal/scanner"
	"github.com/panbanda/augur/internal/store"
	"github.com/panbanda/augur/pkg/analyzer/defect"
	"github.com/panbanda/augur/pkg/analyzer/quality"
	"github.com/panbanda/augur/pkg/config"
)

var analyzeCmd = &cobra.Command{
	Use:     "analyze [path...]",
	Aliases: []string{"a"},
	Short:   "Run the full quality analysis pipeline",
	RunE:    runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringP("format", "f", "", "Output format: text, json, markdown")
	analyzeCmd.Flags().StringP("output", "o", "", "Write output to file")
	analyzeCmd.Flags().Bool("classifier", false, "Use the trained defect classifier instead of the heuristic")
	analyzeCmd.Flags().Bool("save", false, "Persist results to the configured store directory")
	rootCmd.AddCommand(analyzeCmd)
}

// getPaths returns paths from args, defaulting to ["."].
func getPaths(args []string) []string {
	if len(args) == 0 {
		return []string{"."}
	}
	return args
}

func getFormat(cmd *cobra.Command, cfg *config.Config) output.Format {
	format, _ := cmd.Flags().GetString("format")
	if format == "" {
		format = cfg.Output.Format
	}
	return output.ParseFormat(format)
}

// engineOptions assembles the engine configuration shared by the
// analyze subcommands.
func engineOptions(cmd *cobra.Command, cfg *config.Config) ([]quality.Option, error) {
	opts := []quality.Option{
		quality.WithThresholds(cfg.Thresholds),
		quality.WithStages(quality.Stages{
			Smells:  cfg.Analysis.Smells,
			Defect:  cfg.Analysis.Defect,
			Tests:   cfg.Analysis.Tests,
			Repairs: cfg.Analysis.Repairs,
		}),
	}

	useClassifier, _ := cmd.Flags().GetBool("classifier")
	if useClassifier || cfg.Defect.UseClassifier {
		classifier := defect.NewClassifier(
			defect.WithSamples(cfg.Defect.Samples),
			defect.WithSeed(cfg.Defect.Seed),
		)
		classifier.EnsureReady()
		opts = append(opts, quality.WithPredictor(classifier))
	}

	save, _ := cmd.Flags().GetBool("save")
	if save || cfg.Store.Enabled {
		dir, err := store.NewDir(cfg.Store.Dir)
		if err != nil {
			return nil, err
		}
		opts = append(opts, quality.WithStore(dir))
	}

	return opts, nil
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	files, err := collectFiles(cfg, getPaths(args))
	if err != nil {
		return err
	}
	if len(files) == 0 {
		color.Yellow("No Python files found")
		return nil
	}

	opts, err := engineOptions(cmd, cfg)
	if err != nil {
		return err
	}

	formatter, err := output.NewFormatter(getFormat(cmd, cfg), getOutputFile(cmd), cfg.Output.Color)
	if err != nil {
		return err
	}
	defer formatter.Close()

	if len(files) == 1 {
		source, err := os.ReadFile(files[0])
		if err != nil {
			return err
		}

		engine := quality.New(opts...)
		defer engine.Close()

		result, err := engine.Analyze(cmd.Context(), files[0], source)
		if err != nil {
			return err
		}
		return formatter.Output(&output.Report{Result: result})
	}

	tracker := progress.NewTracker("analyzing", len(files))
	var failed atomic.Int64
	results := fileproc.Map(cmd.Context(), files, opts,
		tracker.Tick,
		func(path string, err error) {
			failed.Add(1)
			if verbose {
				fmt.Fprintf(os.Stderr, "skipped %s: %v\n", path, err)
			}
		},
	)
	tracker.Finish()

	return formatter.Output(&output.Summary{Results: results, Failed: int(failed.Load())})
}

func getOutputFile(cmd *cobra.Command) string {
	outputFile, _ := cmd.Flags().GetString("output")
	return outputFile
}

// collectFiles expands path arguments into the .py files to analyze.
func collectFiles(cfg *config.Config, paths []string) ([]string, error) {
	s := scanner.New(cfg)
	var files []string
	for _, path := range paths {
		resolved, err := s.Resolve(path)
		if err != nil {
			return nil, err
		}
		files = append(files, resolved...)
	}
	return files, nil
}
