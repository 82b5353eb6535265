package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/panbanda/augur/internal/output"
	"github.com/panbanda/augur/pkg/analyzer/testgen"
)

var testgenCmd = &cobra.Command{
	Use:   "testgen <file>",
	Short: "Generate pytest skeletons for the public functions of one file",
	Args:  cobra.ExactArgs(1),
	RunE:  runTestgen,
}

func init() {
	testgenCmd.Flags().StringP("format", "f", "", "Output format: text, json, markdown")
	testgenCmd.Flags().StringP("output", "o", "", "Write output to file")
	rootCmd.AddCommand(testgenCmd)
}

func runTestgen(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	parsed, cleanup, err := parseFile(args[0])
	if err != nil {
		return err
	}
	defer cleanup()

	cases := testgen.New().Generate(parsed)
	if len(cases) == 0 {
		color.Yellow("No public functions found in %s", args[0])
		return nil
	}

	format := getFormat(cmd, cfg)
	formatter, err := output.NewFormatter(format, getOutputFile(cmd), cfg.Output.Color)
	if err != nil {
		return err
	}
	defer formatter.Close()

	if format == output.FormatJSON {
		return formatter.Output(cases)
	}

	// Text and markdown both emit a runnable test module.
	w := formatter.Writer()
	fmt.Fprintln(w, "import pytest")
	fmt.Fprintln(w)
	fmt.Fprintln(w)
	for i, c := range cases {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, c.Body)
	}
	return nil
}
