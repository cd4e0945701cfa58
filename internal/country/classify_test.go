package country

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/matsen/coauthnet/internal/graph"
)

func TestRank_OrdersByMentionsDescending(t *testing.T) {
	mentions := map[string]int{
		"United States": 5,
		"South Korea":   2,
		"Canada":        8,
	}

	r := Rank(mentions, DefaultTopN)

	want := []Count{
		{Country: "Canada", Mentions: 8},
		{Country: "United States", Mentions: 5},
		{Country: "South Korea", Mentions: 2},
	}
	if !reflect.DeepEqual(r.Ranked, want) {
		t.Errorf("Ranked = %+v, want %+v", r.Ranked, want)
	}
}

func TestRank_TiesBreakAlphabetically(t *testing.T) {
	mentions := map[string]int{
		"Chile":   3,
		"Belgium": 3,
		"Austria": 3,
		"Denmark": 7,
	}

	r := Rank(mentions, DefaultTopN)

	want := []string{"Denmark", "Austria", "Belgium", "Chile"}
	got := make([]string, len(r.Ranked))
	for i, c := range r.Ranked {
		got[i] = c.Country
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
}

func TestRank_TopIsCappedAtN(t *testing.T) {
	mentions := make(map[string]int)
	countries := []string{"A", "B", "C", "D", "E", "F", "G", "H", "I", "J", "K", "L"}
	for i, c := range countries {
		mentions[c] = 100 - i
	}

	r := Rank(mentions, 10)
	if len(r.Top) != 10 {
		t.Errorf("len(Top) = %d, want 10", len(r.Top))
	}
	if len(r.Ranked) != 12 {
		t.Errorf("len(Ranked) = %d, want 12", len(r.Ranked))
	}
}

func TestRank_NonPositiveN(t *testing.T) {
	mentions := map[string]int{"Japan": 1, "Brazil": 2}

	for _, n := range []int{0, -1} {
		r := Rank(mentions, n)
		if len(r.Top) != 0 {
			t.Errorf("Rank(n=%d) Top = %v, want empty", n, r.Top)
		}
		if len(r.Ranked) != 2 {
			t.Errorf("Rank(n=%d) Ranked = %v, want full ranking", n, r.Ranked)
		}
	}
}

func TestRank_FewerCountriesThanN(t *testing.T) {
	mentions := map[string]int{"Japan": 4, "Brazil": 2}

	r := Rank(mentions, 10)
	if len(r.Top) != 2 {
		t.Errorf("len(Top) = %d, want 2", len(r.Top))
	}
}

func TestClassify_FlagsNodes(t *testing.T) {
	mentions := map[string]int{
		"United States": 9,
		"South Korea":   5,
		"Canada":        1,
	}
	nodes := []*graph.Node{
		{ID: "Smith, J.", Country: "United States"},
		{ID: "Lee, K.", Country: "South Korea"},
		{ID: "Doe, A.", Country: "Canada"},
	}

	r := Classify(mentions, nodes, 2)

	if !reflect.DeepEqual(r.Top, []string{"United States", "South Korea"}) {
		t.Errorf("Top = %v", r.Top)
	}
	if !nodes[0].IsTop10 || !nodes[1].IsTop10 {
		t.Error("top-country nodes not flagged")
	}
	if nodes[2].IsTop10 {
		t.Error("below-cut node flagged")
	}
}

func TestClassify_UnknownCountryNotFlagged(t *testing.T) {
	mentions := map[string]int{"Japan": 1}
	nodes := []*graph.Node{{ID: "Sato, T.", Country: "Atlantis"}}

	Classify(mentions, nodes, 10)

	if nodes[0].IsTop10 {
		t.Error("node with unranked country flagged as top-N")
	}
}

func TestLoadAliases(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "aliases.yml")
	content := "USA: United States\nUK: United Kingdom\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	aliases, err := LoadAliases(path)
	if err != nil {
		t.Fatalf("LoadAliases() error: %v", err)
	}
	want := map[string]string{"USA": "United States", "UK": "United Kingdom"}
	if !reflect.DeepEqual(aliases, want) {
		t.Errorf("aliases = %v, want %v", aliases, want)
	}
}

func TestLoadAliases_MissingFile(t *testing.T) {
	aliases, err := LoadAliases(filepath.Join(t.TempDir(), "absent.yml"))
	if err != nil {
		t.Fatalf("LoadAliases() error: %v", err)
	}
	if aliases != nil {
		t.Errorf("aliases = %v, want nil", aliases)
	}
}

func TestLoadAliases_Malformed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "aliases.yml")
	if err := os.WriteFile(path, []byte("- not\n- a\n- map\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadAliases(path); err == nil {
		t.Error("LoadAliases() succeeded on malformed YAML")
	}
}
