// Package main provides the conet CLI entry point.
package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

// humanOutput controls whether to use human-readable output
var humanOutput bool

// verbose enables debug logging of skipped records and blocks
var verbose bool

// logger reports skip diagnostics to stderr so stdout stays parseable.
var logger = log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: false})

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "conet",
	Short: "Co-authorship network builder for bibliographic exports",
	Long: `conet turns bibliographic export records into a co-authorship graph:
one node per distinct author, one weighted edge per pair of authors who
have co-published, with country and co-author-degree metadata attached.

The built graph is cached in SQLite inside the dataset's .conet directory
and handed to the rendering layer as JSON or a self-contained HTML page.
All commands output JSON by default for easy scripting.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			logger.SetLevel(log.DebugLevel)
		}
	},
}

func init() {
	// Load .env if present (for CROSSREF_MAILTO and CONET_ROOT)
	_ = godotenv.Load()

	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log skipped records and malformed blocks")
	rootCmd.Version = Version
}

// getRepoRoot returns the dataset root candidate: CONET_ROOT if set,
// otherwise the working directory.
func getRepoRoot() (string, int) {
	if root := os.Getenv("CONET_ROOT"); root != "" {
		return root, 0
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", outputError(ExitError, "getting current directory: %v", err)
	}
	return cwd, 0
}
