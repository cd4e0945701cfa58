package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(countriesCmd)
}

var countriesCmd = &cobra.Command{
	Use:   "countries",
	Short: "List countries ranked by author-mention count",
	Args:  cobra.NoArgs,
	RunE:  runCountries,
}

// CountryRankEntry is one row of the countries listing.
type CountryRankEntry struct {
	Rank     int    `json:"rank"`
	Country  string `json:"country"`
	Mentions int    `json:"mentions"`
	IsTop10  bool   `json:"is_top_10"`
}

func runCountries(cmd *cobra.Command, args []string) error {
	db := openCache()
	defer db.Close()

	ranked, err := db.CountryRanking()
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	if len(ranked) == 0 {
		exitWithError(ExitDataError, "no built graph: run conet build first")
	}

	top, err := db.TopCountries()
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	topSet := make(map[string]struct{}, len(top))
	for _, c := range top {
		topSet[c] = struct{}{}
	}

	entries := make([]CountryRankEntry, len(ranked))
	for i, c := range ranked {
		_, isTop := topSet[c.Country]
		entries[i] = CountryRankEntry{
			Rank:     i + 1,
			Country:  c.Country,
			Mentions: c.Mentions,
			IsTop10:  isTop,
		}
	}

	if humanOutput {
		for _, e := range entries {
			marker := " "
			if e.IsTop10 {
				marker = "*"
			}
			fmt.Printf("%s %3d. %-30s %d\n", marker, e.Rank, e.Country, e.Mentions)
		}
		return nil
	}
	return outputJSON(entries)
}
