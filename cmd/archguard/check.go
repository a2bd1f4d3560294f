package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"archguard/internal/report"
)

var (
	checkFormat string
	checkJUnit  string
	checkHTML   string
)

var checkCmd = &cobra.Command{
	Use:   "check [path]",
	Short: "Check import edges against the architecture model",
	Long: `Check every source file's imports against the layered architecture model.

Classifies each file into a layer, resolves each import to a target layer,
and reports edges whose target is outside the source layer's allow-list.

The exit status is 0 only for a clean pass: zero violations AND every file
analyzed. Files that fail to parse are reported and fail the run.

Examples:
  archguard check
  archguard check ./src --model architecture.yaml
  archguard check --junit results/archguard.xml --html report.html
  archguard check --format json`,
	Args: cobra.MaximumNArgs(1),
	Run:  runCheck,
}

func init() {
	checkCmd.Flags().StringVar(&checkFormat, "format", "human", "Output format (json, human)")
	checkCmd.Flags().StringVar(&checkJUnit, "junit", "", "Write a JUnit XML report to this path")
	checkCmd.Flags().StringVar(&checkHTML, "html", "", "Write an HTML report to this path")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) {
	start := time.Now()

	root, err := resolveRoot(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	cfg := mustLoadConfig(root)
	logger := newLogger(cfg, checkFormat)

	result, err := runEngine(context.Background(), root, cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if checkJUnit != "" {
		data, err := report.FormatJUnit(result)
		if err == nil {
			err = report.WriteFile(checkJUnit, data)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error writing JUnit report: %v\n", err)
			os.Exit(1)
		}
	}

	if checkHTML != "" {
		data, err := report.FormatHTML(result)
		if err == nil {
			err = report.WriteFile(checkHTML, data)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error writing HTML report: %v\n", err)
			os.Exit(1)
		}
	}

	output, err := FormatResponse(result, OutputFormat(checkFormat))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(output)

	logger.Debug("Check completed", map[string]interface{}{
		"edges":      len(result.Edges),
		"violations": len(result.Violations),
		"fileErrors": len(result.FileErrors),
		"duration":   time.Since(start).Milliseconds(),
	})

	if !result.Passed() {
		os.Exit(1)
	}
}
