package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matsen/coauthnet/internal/config"
	"github.com/matsen/coauthnet/internal/storage"
)

func init() {
	rootCmd.AddCommand(graphCmd)
}

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Output the built graph as JSON",
	Long: `Output the built graph as JSON.

The output is the handoff contract for rendering layers: nodes with
country, top-10 flag, and co-author degree; links weighted by shared
publications; and the ranked top-10 country list.`,
	Args: cobra.NoArgs,
	RunE: runGraph,
}

// openCache opens the dataset's graph cache database.
func openCache() *storage.DB {
	root, _ := openDataset()
	db, err := storage.OpenDB(config.DBPath(root))
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	return db
}

func runGraph(cmd *cobra.Command, args []string) error {
	db := openCache()
	defer db.Close()

	g, err := db.LoadGraph()
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	if g.IsEmpty() {
		exitWithError(ExitDataError, "no built graph: run conet build first")
	}

	if humanOutput {
		fmt.Fprintf(os.Stdout, "%d authors, %d edges, %d top countries\n", len(g.Nodes), len(g.Links), len(g.Top10Countries))
		return nil
	}
	return outputJSON(g)
}
