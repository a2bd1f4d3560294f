package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"archguard/internal/config"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Scaffold archguard configuration and a starter model",
	Long: `Create .archguard/config.json and a starter architecture.json in the
target directory. Existing files are left untouched unless --force is given.

Examples:
  archguard init
  archguard init ./service --force`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite existing files")
	rootCmd.AddCommand(initCmd)
}

const starterModel = `{
  "layers": {
    "UI": {"allowed": ["Domain"]},
    "Domain": {"allowed": ["Infra"]},
    "Infra": {"allowed": []}
  },
  "components": [
    {"folder": "ui/**", "layer": "UI"},
    {"folder": "domain/**", "layer": "Domain"},
    {"folder": "infra/**", "layer": "Infra"}
  ]
}
`

func runInit(cmd *cobra.Command, args []string) error {
	root, err := resolveRoot(args)
	if err != nil {
		return err
	}

	configPath := filepath.Join(root, ".archguard", "config.json")
	if _, err := os.Stat(configPath); err == nil && !initForce {
		fmt.Printf("%s already exists, skipping (use --force to overwrite)\n", configPath)
	} else {
		if err := config.DefaultConfig().Save(root); err != nil {
			return fmt.Errorf("cannot write config: %w", err)
		}
		fmt.Printf("Wrote %s\n", configPath)
	}

	modelPath := filepath.Join(root, "architecture.json")
	if _, err := os.Stat(modelPath); err == nil && !initForce {
		fmt.Printf("%s already exists, skipping (use --force to overwrite)\n", modelPath)
		return nil
	}
	if err := os.WriteFile(modelPath, []byte(starterModel), 0644); err != nil {
		return fmt.Errorf("cannot write model: %w", err)
	}
	fmt.Printf("Wrote %s\n", modelPath)

	fmt.Println()
	fmt.Println("Next steps:")
	fmt.Println("  - Edit architecture.json to match your layers and folders")
	fmt.Println("  - Run 'archguard check' to validate the import graph")
	return nil
}
