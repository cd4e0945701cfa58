// Package viz renders the co-authorship graph as a self-contained HTML
// page. Everything here is presentation: the core hands over the graph
// and never depends on what this package does with it.
package viz

import (
	"encoding/json"
	"fmt"

	"github.com/matsen/coauthnet/internal/graph"
)

// OtherColor is the node color for countries outside the top-N cut.
const OtherColor = "#95A5A6"

// palette holds one color per top-N rank, assigned in ranked order.
var palette = []string{
	"#4A90D9", "#E8923A", "#27AE60", "#9B59B6", "#E74C3C",
	"#1ABC9C", "#F1C40F", "#34495E", "#D35400", "#7F8C8D",
}

// CytoscapeElements represents the Cytoscape.js data format.
type CytoscapeElements struct {
	Nodes []CytoscapeNode `json:"nodes"`
	Edges []CytoscapeEdge `json:"edges"`
}

// CytoscapeNode represents a node in Cytoscape.js format.
type CytoscapeNode struct {
	Data NodeData `json:"data"`
}

// NodeData carries one author node plus its presentation color.
type NodeData struct {
	ID      string `json:"id"`
	Country string `json:"country"`
	IsTop10 bool   `json:"isTop10"`
	Degree  int    `json:"degree"`
	Color   string `json:"color"`
}

// CytoscapeEdge represents an edge in Cytoscape.js format.
type CytoscapeEdge struct {
	Data EdgeData `json:"data"`
}

// EdgeData carries one co-authorship edge.
type EdgeData struct {
	ID                 string `json:"id"`
	Source             string `json:"source"`
	Target             string `json:"target"`
	SharedPublications int    `json:"sharedPublications"`
}

// LegendEntry pairs a legend label with its color.
type LegendEntry struct {
	Label string
	Color string
}

// CountryColors maps each top-N country to its palette color, in rank order.
func CountryColors(top []string) map[string]string {
	colors := make(map[string]string, len(top))
	for i, c := range top {
		colors[c] = palette[i%len(palette)]
	}
	return colors
}

// Legend builds the legend entries for the ranked top countries plus the
// catch-all "Other" bucket.
func Legend(top []string) []LegendEntry {
	entries := make([]LegendEntry, 0, len(top)+1)
	colors := CountryColors(top)
	for _, c := range top {
		entries = append(entries, LegendEntry{Label: c, Color: colors[c]})
	}
	entries = append(entries, LegendEntry{Label: "Other", Color: OtherColor})
	return entries
}

// ToCytoscapeJSON converts the handoff graph to Cytoscape.js element JSON.
func ToCytoscapeJSON(g *graph.Graph) (string, error) {
	colors := CountryColors(g.Top10Countries)

	elements := CytoscapeElements{
		Nodes: make([]CytoscapeNode, 0, len(g.Nodes)),
		Edges: make([]CytoscapeEdge, 0, len(g.Links)),
	}

	for _, n := range g.Nodes {
		color := OtherColor
		if c, ok := colors[n.Country]; ok && n.IsTop10 {
			color = c
		}
		elements.Nodes = append(elements.Nodes, CytoscapeNode{Data: NodeData{
			ID:      n.ID,
			Country: n.Country,
			IsTop10: n.IsTop10,
			Degree:  n.Degree,
			Color:   color,
		}})
	}

	for i, l := range g.Links {
		elements.Edges = append(elements.Edges, CytoscapeEdge{Data: EdgeData{
			ID:                 fmt.Sprintf("e%d", i),
			Source:             l.Source,
			Target:             l.Target,
			SharedPublications: l.SharedPublications,
		}})
	}

	jsonBytes, err := json.Marshal(elements)
	if err != nil {
		return "", fmt.Errorf("marshaling Cytoscape elements: %w", err)
	}
	return string(jsonBytes), nil
}
