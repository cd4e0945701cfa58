package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matsen/coauthnet/internal/config"
	"github.com/matsen/coauthnet/internal/country"
	"github.com/matsen/coauthnet/internal/graph"
	"github.com/matsen/coauthnet/internal/record"
	"github.com/matsen/coauthnet/internal/scopus"
	"github.com/matsen/coauthnet/internal/storage"
)

func init() {
	rootCmd.AddCommand(buildCmd)
}

var buildCmd = &cobra.Command{
	Use:   "build <export.csv>",
	Short: "Build the co-authorship graph from a CSV export",
	Long: `Build the co-authorship graph from a Scopus-style CSV export.

Parses the export, derives the author network, ranks countries by
author-mention frequency, and replaces the dataset's graph cache.`,
	Args: cobra.ExactArgs(1),
	RunE: runBuild,
}

// BuildResult summarizes one graph build.
type BuildResult struct {
	Records        int      `json:"records"`
	SkippedRecords int      `json:"skipped_records"`
	Authors        int      `json:"authors"`
	Edges          int      `json:"edges"`
	TopCountries   []string `json:"top_countries"`
}

func runBuild(cmd *cobra.Command, args []string) error {
	root, cfg := openDataset()

	f, err := os.Open(args[0])
	if err != nil {
		exitWithError(ExitError, "opening export: %v", err)
	}
	defer f.Close()

	records, err := scopus.Parse(f)
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}

	result := buildAndStore(root, cfg, records)

	if humanOutput {
		printBuildResultHuman(result)
		return nil
	}
	return outputJSON(result)
}

// openDataset locates the dataset and loads its configuration, exiting
// with a config error when either step fails.
func openDataset() (string, *config.Config) {
	start, exitCode := getRepoRoot()
	if exitCode != 0 {
		os.Exit(exitCode)
	}

	root, err := config.FindRepository(start)
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}

	cfg, err := config.Load(root)
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}

	return root, cfg
}

// buildAndStore runs the full transformation over the records and swaps
// the dataset's graph cache. Both build and fetch feed this.
func buildAndStore(root string, cfg *config.Config, records []record.Record) BuildResult {
	aliases, err := country.LoadAliases(cfg.AliasPath(root))
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}

	builder := graph.NewBuilder(
		graph.WithLimits(cfg.Limits()),
		graph.WithCountryAliases(aliases),
		graph.WithLogger(logger),
	)

	res, err := builder.Build(records)
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}

	ranking := country.Classify(res.Mentions, res.Nodes, cfg.TopN)

	g := &graph.Graph{
		Nodes:          res.Nodes,
		Links:          res.Links,
		Top10Countries: ranking.Top,
	}

	db, err := storage.OpenDB(config.DBPath(root))
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	defer db.Close()

	if err := db.ReplaceGraph(g, ranking); err != nil {
		exitWithError(ExitError, "%v", err)
	}

	skipped := 0
	for i := range records {
		if records[i].Validate() != nil {
			skipped++
		}
	}

	return BuildResult{
		Records:        len(records),
		SkippedRecords: skipped,
		Authors:        len(g.Nodes),
		Edges:          len(g.Links),
		TopCountries:   ranking.Top,
	}
}

func printBuildResultHuman(r BuildResult) {
	fmt.Printf("Built graph from %d records (%d skipped)\n", r.Records, r.SkippedRecords)
	fmt.Printf("  %d authors, %d edges\n", r.Authors, r.Edges)
	if len(r.TopCountries) > 0 {
		fmt.Printf("  top countries: %s\n", strings.Join(r.TopCountries, ", "))
	}
}
