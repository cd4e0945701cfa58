// Package country ranks countries by author-mention frequency and
// partitions them into a top-N set versus the rest.
package country

import (
	"sort"

	"github.com/matsen/coauthnet/internal/graph"
)

// DefaultTopN is the number of countries given their own legend entry;
// everything below the cut renders as "other".
const DefaultTopN = 10

// Count pairs a country with its total author-mention count. Mentions
// count affiliation blocks, not distinct authors, so a small group that
// publishes often can outrank a larger one.
type Count struct {
	Country  string `json:"country"`
	Mentions int    `json:"mentions"`
}

// Ranking is the classifier output: all countries ordered by mention
// count, and the top-N slice of that order.
type Ranking struct {
	Ranked []Count  `json:"ranked"`
	Top    []string `json:"top"`
}

// Rank orders countries by mention count descending. Ties break
// alphabetically, making the order a designed contract rather than an
// artifact of sort stability. Top holds the first n countries, or all of
// them when fewer than n exist; a non-positive n yields an empty top set.
func Rank(mentions map[string]int, n int) Ranking {
	ranked := make([]Count, 0, len(mentions))
	for c, m := range mentions {
		ranked = append(ranked, Count{Country: c, Mentions: m})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Mentions != ranked[j].Mentions {
			return ranked[i].Mentions > ranked[j].Mentions
		}
		return ranked[i].Country < ranked[j].Country
	})

	cut := n
	if cut < 0 {
		cut = 0
	}
	if cut > len(ranked) {
		cut = len(ranked)
	}
	top := make([]string, cut)
	for i := 0; i < cut; i++ {
		top[i] = ranked[i].Country
	}

	return Ranking{Ranked: ranked, Top: top}
}

// Classify ranks the mention counts and flags each node whose country
// made the top-N cut. Nodes are updated in place.
func Classify(mentions map[string]int, nodes []*graph.Node, n int) Ranking {
	ranking := Rank(mentions, n)

	topSet := make(map[string]struct{}, len(ranking.Top))
	for _, c := range ranking.Top {
		topSet[c] = struct{}{}
	}

	for _, node := range nodes {
		_, node.IsTop10 = topSet[node.Country]
	}

	return ranking
}
