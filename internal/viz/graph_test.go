package viz

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/matsen/coauthnet/internal/graph"
)

func sampleGraph() *graph.Graph {
	return &graph.Graph{
		Nodes: []*graph.Node{
			{ID: "Smith, J.", Country: "United States", IsTop10: true, Degree: 2},
			{ID: "Lee, K.", Country: "South Korea", IsTop10: true, Degree: 1},
			{ID: "Doe, A.", Country: "Canada", IsTop10: false, Degree: 1},
		},
		Links: []graph.Link{
			{Source: "Doe, A.", Target: "Smith, J.", SharedPublications: 1},
			{Source: "Lee, K.", Target: "Smith, J.", SharedPublications: 2},
		},
		Top10Countries: []string{"United States", "South Korea"},
	}
}

func TestToCytoscapeJSON(t *testing.T) {
	out, err := ToCytoscapeJSON(sampleGraph())
	if err != nil {
		t.Fatalf("ToCytoscapeJSON() error: %v", err)
	}

	var elements CytoscapeElements
	if err := json.Unmarshal([]byte(out), &elements); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	if len(elements.Nodes) != 3 || len(elements.Edges) != 2 {
		t.Fatalf("got %d nodes %d edges, want 3 and 2", len(elements.Nodes), len(elements.Edges))
	}

	// Ranked countries get palette colors; below-cut countries get gray.
	if elements.Nodes[0].Data.Color == OtherColor {
		t.Errorf("top-country node colored %q", elements.Nodes[0].Data.Color)
	}
	if elements.Nodes[2].Data.Color != OtherColor {
		t.Errorf("other-country node colored %q, want %q", elements.Nodes[2].Data.Color, OtherColor)
	}

	if elements.Edges[1].Data.SharedPublications != 2 {
		t.Errorf("edge weight = %d, want 2", elements.Edges[1].Data.SharedPublications)
	}
	if elements.Edges[0].Data.ID == elements.Edges[1].Data.ID {
		t.Error("edge IDs are not unique")
	}
}

func TestCountryColors_Distinct(t *testing.T) {
	top := []string{"A", "B", "C", "D", "E", "F", "G", "H", "I", "J"}
	colors := CountryColors(top)

	seen := make(map[string]string)
	for c, color := range colors {
		if prev, dup := seen[color]; dup {
			t.Errorf("countries %s and %s share color %s", prev, c, color)
		}
		seen[color] = c
	}
}

func TestLegend_EndsWithOther(t *testing.T) {
	entries := Legend([]string{"United States", "South Korea"})
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}
	last := entries[len(entries)-1]
	if last.Label != "Other" || last.Color != OtherColor {
		t.Errorf("last entry = %+v, want Other/%s", last, OtherColor)
	}
}

func TestGenerateHTML(t *testing.T) {
	html, err := GenerateHTML(sampleGraph(), DefaultOptions())
	if err != nil {
		t.Fatalf("GenerateHTML() error: %v", err)
	}

	for _, want := range []string{"cytoscape", "Smith, J.", "United States", "Other"} {
		if !strings.Contains(html, want) {
			t.Errorf("HTML missing %q", want)
		}
	}
}

func TestGenerateHTML_EmptyGraph(t *testing.T) {
	html, err := GenerateHTML(&graph.Graph{}, DefaultOptions())
	if err != nil {
		t.Fatalf("GenerateHTML() error: %v", err)
	}
	if !strings.Contains(html, "No graph data") {
		t.Error("empty-state HTML missing message")
	}
}

func TestGenerateHTML_InvalidLayout(t *testing.T) {
	_, err := GenerateHTML(sampleGraph(), HTMLOptions{Layout: "spiral"})
	if err == nil {
		t.Error("GenerateHTML() accepted invalid layout")
	}
}

func TestGenerateHTML_NilGraph(t *testing.T) {
	if _, err := GenerateHTML(nil, DefaultOptions()); err == nil {
		t.Error("GenerateHTML() accepted nil graph")
	}
}
