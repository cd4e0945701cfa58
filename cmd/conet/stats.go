package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(statsCmd)
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show node and edge counts for the built graph",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

// StatsResponse summarizes the cached graph.
type StatsResponse struct {
	Authors      int      `json:"authors"`
	Edges        int      `json:"edges"`
	TopCountries []string `json:"top_countries"`
}

func runStats(cmd *cobra.Command, args []string) error {
	db := openCache()
	defer db.Close()

	authors, edges, err := db.Counts()
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	top, err := db.TopCountries()
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	resp := StatsResponse{Authors: authors, Edges: edges, TopCountries: top}

	if humanOutput {
		fmt.Printf("%d authors, %d edges\n", resp.Authors, resp.Edges)
		if len(resp.TopCountries) > 0 {
			fmt.Printf("top countries: %s\n", strings.Join(resp.TopCountries, ", "))
		}
		return nil
	}
	return outputJSON(resp)
}
