package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"archguard/internal/graph"
)

var edgesFormat string

var edgesCmd = &cobra.Command{
	Use:   "edges [path]",
	Short: "Print the observed import edges",
	Long: `Print the finalized import-edge sequence without validating it.

One edge is emitted per import reference, in file order and textual order
within a file. Useful for feeding external renderers.

Examples:
  archguard edges
  archguard edges ./src --format json`,
	Args: cobra.MaximumNArgs(1),
	Run:  runEdges,
}

func init() {
	edgesCmd.Flags().StringVar(&edgesFormat, "format", "human", "Output format (json, human)")
	rootCmd.AddCommand(edgesCmd)
}

// EdgesResponseCLI contains the edge listing for CLI output
type EdgesResponseCLI struct {
	Root       string            `json:"root"`
	Edges      []graph.Edge      `json:"edges"`
	FileErrors []graph.FileError `json:"fileErrors,omitempty"`
}

func runEdges(cmd *cobra.Command, args []string) {
	root, err := resolveRoot(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	cfg := mustLoadConfig(root)
	logger := newLogger(cfg, edgesFormat)

	result, err := runEngine(context.Background(), root, cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	resp := &EdgesResponseCLI{
		Root:       result.Root,
		Edges:      result.Edges,
		FileErrors: result.FileErrors,
	}

	output, err := FormatResponse(resp, OutputFormat(edgesFormat))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(output)
}

func formatEdgesHuman(resp *EdgesResponseCLI) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%d import edges under %s\n", len(resp.Edges), resp.Root)
	for _, e := range resp.Edges {
		fmt.Fprintf(&b, "  %s (%s) -> %s (%s)\n", e.SourceUnit, e.SourceLayer, e.Import, e.TargetLayer)
	}
	if len(resp.FileErrors) > 0 {
		fmt.Fprintf(&b, "%d file(s) could not be analyzed\n", len(resp.FileErrors))
		for _, fe := range resp.FileErrors {
			fmt.Fprintf(&b, "  ERROR: %s: %s\n", fe.Path, fe.Message)
		}
	}

	return b.String()
}
