// Package storage caches a built co-authorship graph in SQLite so the
// query commands don't re-parse the export on every invocation.
package storage

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/matsen/coauthnet/internal/country"
	"github.com/matsen/coauthnet/internal/graph"
)

// DB wraps a SQLite database connection.
type DB struct {
	db *sql.DB
}

// OpenDB opens or creates a SQLite database at the given path.
func OpenDB(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &DB{db: db}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

// createSchema creates the database schema if it doesn't exist.
func createSchema(db *sql.DB) error {
	schema := `
		-- One row per distinct author; position preserves first-seen order.
		CREATE TABLE IF NOT EXISTS authors (
			id TEXT PRIMARY KEY,
			country TEXT NOT NULL,
			degree INTEGER NOT NULL,
			is_top INTEGER NOT NULL,
			position INTEGER NOT NULL
		);

		-- One row per unordered author pair; source < target.
		CREATE TABLE IF NOT EXISTS coauthorships (
			source TEXT NOT NULL,
			target TEXT NOT NULL,
			shared_publications INTEGER NOT NULL,
			PRIMARY KEY (source, target)
		);

		-- Full country ranking from the last build.
		CREATE TABLE IF NOT EXISTS country_ranks (
			rank INTEGER PRIMARY KEY,
			country TEXT NOT NULL,
			mentions INTEGER NOT NULL,
			is_top INTEGER NOT NULL
		);
	`

	_, err := db.Exec(schema)
	return err
}

// ReplaceGraph clears the cache and stores a freshly built graph with its
// country ranking. The swap is transactional: a failed build never leaves
// a half-written cache behind.
func (d *DB) ReplaceGraph(g *graph.Graph, ranking country.Ranking) error {
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"authors", "coauthorships", "country_ranks"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	for i, n := range g.Nodes {
		_, err := tx.Exec(
			`INSERT INTO authors (id, country, degree, is_top, position) VALUES (?, ?, ?, ?, ?)`,
			n.ID, n.Country, n.Degree, boolToInt(n.IsTop10), i,
		)
		if err != nil {
			return fmt.Errorf("inserting author %s: %w", n.ID, err)
		}
	}

	for _, l := range g.Links {
		_, err := tx.Exec(
			`INSERT INTO coauthorships (source, target, shared_publications) VALUES (?, ?, ?)`,
			l.Source, l.Target, l.SharedPublications,
		)
		if err != nil {
			return fmt.Errorf("inserting edge %s/%s: %w", l.Source, l.Target, err)
		}
	}

	topSet := make(map[string]struct{}, len(ranking.Top))
	for _, c := range ranking.Top {
		topSet[c] = struct{}{}
	}
	for i, c := range ranking.Ranked {
		_, isTop := topSet[c.Country]
		_, err := tx.Exec(
			`INSERT INTO country_ranks (rank, country, mentions, is_top) VALUES (?, ?, ?, ?)`,
			i+1, c.Country, c.Mentions, boolToInt(isTop),
		)
		if err != nil {
			return fmt.Errorf("inserting country rank %s: %w", c.Country, err)
		}
	}

	return tx.Commit()
}

// LoadGraph reconstructs the handoff graph from the cache. Nodes come
// back in build order and links sorted by endpoint pair, matching what
// the builder produced.
func (d *DB) LoadGraph() (*graph.Graph, error) {
	g := &graph.Graph{}

	rows, err := d.db.Query(`SELECT id, country, degree, is_top FROM authors ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("querying authors: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var n graph.Node
		var isTop int
		if err := rows.Scan(&n.ID, &n.Country, &n.Degree, &isTop); err != nil {
			return nil, fmt.Errorf("scanning author: %w", err)
		}
		n.IsTop10 = isTop != 0
		g.Nodes = append(g.Nodes, &n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	linkRows, err := d.db.Query(`SELECT source, target, shared_publications FROM coauthorships ORDER BY source, target`)
	if err != nil {
		return nil, fmt.Errorf("querying coauthorships: %w", err)
	}
	defer linkRows.Close()
	for linkRows.Next() {
		var l graph.Link
		if err := linkRows.Scan(&l.Source, &l.Target, &l.SharedPublications); err != nil {
			return nil, fmt.Errorf("scanning edge: %w", err)
		}
		g.Links = append(g.Links, l)
	}
	if err := linkRows.Err(); err != nil {
		return nil, err
	}

	top, err := d.TopCountries()
	if err != nil {
		return nil, err
	}
	g.Top10Countries = top

	return g, nil
}

// CountryRanking returns the full ranking from the last build.
func (d *DB) CountryRanking() ([]country.Count, error) {
	rows, err := d.db.Query(`SELECT country, mentions FROM country_ranks ORDER BY rank`)
	if err != nil {
		return nil, fmt.Errorf("querying country ranks: %w", err)
	}
	defer rows.Close()

	var ranked []country.Count
	for rows.Next() {
		var c country.Count
		if err := rows.Scan(&c.Country, &c.Mentions); err != nil {
			return nil, fmt.Errorf("scanning country rank: %w", err)
		}
		ranked = append(ranked, c)
	}
	return ranked, rows.Err()
}

// TopCountries returns the top-N countries from the last build, in rank order.
func (d *DB) TopCountries() ([]string, error) {
	rows, err := d.db.Query(`SELECT country FROM country_ranks WHERE is_top = 1 ORDER BY rank`)
	if err != nil {
		return nil, fmt.Errorf("querying top countries: %w", err)
	}
	defer rows.Close()

	var top []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("scanning top country: %w", err)
		}
		top = append(top, c)
	}
	return top, rows.Err()
}

// Counts returns the cached author and edge counts.
func (d *DB) Counts() (authors, edges int, err error) {
	if err = d.db.QueryRow(`SELECT COUNT(*) FROM authors`).Scan(&authors); err != nil {
		return 0, 0, fmt.Errorf("counting authors: %w", err)
	}
	if err = d.db.QueryRow(`SELECT COUNT(*) FROM coauthorships`).Scan(&edges); err != nil {
		return 0, 0, fmt.Errorf("counting edges: %w", err)
	}
	return authors, edges, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
