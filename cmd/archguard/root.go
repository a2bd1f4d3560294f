package main

import (
	"archguard/internal/version"

	"github.com/spf13/cobra"
)

var (
	// modelFlag is the CLI --model flag value; it overrides the configured
	// architecture model path.
	modelFlag string
)

var rootCmd = &cobra.Command{
	Use:   "archguard",
	Short: "archguard - layered architecture conformance checker",
	Long: `archguard checks whether a codebase's actual module-import graph conforms
to a declared layered-architecture model. Source files are classified into
layers via ordered folder patterns, their imports are resolved to target
layers, and every resulting edge is validated against each layer's allow-list.`,
	Version: version.Version,
}

func init() {
	rootCmd.SetVersionTemplate("archguard version {{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&modelFlag, "model", "",
		"Path to the architecture model (overrides the configured path)")
}
