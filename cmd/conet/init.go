package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matsen/coauthnet/internal/config"
)

func init() {
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a conet dataset in the current directory",
	Long: `Initialize a conet dataset in the current directory.

Creates a .conet directory holding the dataset configuration and the
graph cache database.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	root, exitCode := getRepoRoot()
	if exitCode != 0 {
		os.Exit(exitCode)
	}

	if config.IsRepository(root) {
		exitWithError(ExitConfigError, "dataset already initialized at %s", config.ConetPath(root))
	}

	if err := os.MkdirAll(config.ConetPath(root), 0755); err != nil {
		exitWithError(ExitError, "creating %s: %v", config.ConetPath(root), err)
	}

	if err := config.Default().Save(root); err != nil {
		exitWithError(ExitError, "%v", err)
	}

	if humanOutput {
		fmt.Printf("Initialized conet dataset at %s\n", config.ConetPath(root))
		return nil
	}
	return outputJSON(StatusResponse{Status: "initialized", Path: config.ConetPath(root)})
}
