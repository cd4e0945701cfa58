// Package graph builds the co-authorship network from bibliographic
// export records.
package graph

// Node is one distinct author in the network. The ID is the canonical
// author key built from the affiliation text ("Surname, Given").
type Node struct {
	ID      string `json:"id"`
	Country string `json:"country"`
	IsTop10 bool   `json:"is_top_10"`
	Degree  int    `json:"degree"`
}

// Link is one weighted co-authorship edge. Source sorts before Target
// under lexicographic order, so each unordered author pair appears once.
type Link struct {
	Source             string `json:"source"`
	Target             string `json:"target"`
	SharedPublications int    `json:"shared_publications"`
}

// Graph is the handoff contract to the presentation layer. The core never
// depends on what the renderer does with it.
type Graph struct {
	Nodes          []*Node  `json:"nodes"`
	Links          []Link   `json:"links"`
	Top10Countries []string `json:"top10Countries"`
}

// IsEmpty returns true if the graph has no nodes.
func (g *Graph) IsEmpty() bool {
	return len(g.Nodes) == 0
}

// Result is the builder's output before country classification: the node
// and link sets plus the per-country author-mention counts the classifier
// ranks on.
type Result struct {
	Nodes    []*Node
	Links    []Link
	Mentions map[string]int
}
