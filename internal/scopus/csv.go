// Package scopus parses Scopus-style CSV exports into records.
package scopus

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/matsen/coauthnet/internal/record"
)

// Column headers the parser needs, matched case-insensitively so exports
// from different Scopus versions all map.
const (
	colAuthors      = "authors"
	colYear         = "year"
	colEID          = "eid"
	colAffiliations = "authors with affiliations"
)

// Parse reads a CSV export and maps each data row to a Record. Rows with
// empty required fields are returned as-is; the graph builder owns the
// skip policy, so ingest stays a pure format concern.
//
// Parse fails only on structural problems: unreadable CSV, or a header
// row missing one of the required columns.
func Parse(r io.Reader) ([]record.Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // Scopus exports pad trailing columns inconsistently

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("empty export: no header row")
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	cols, err := mapColumns(header)
	if err != nil {
		return nil, err
	}

	var records []record.Record
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row %d: %w", len(records)+2, err)
		}
		records = append(records, record.Record{
			EID:                     field(row, cols[colEID]),
			Year:                    field(row, cols[colYear]),
			Authors:                 field(row, cols[colAuthors]),
			AuthorsWithAffiliations: field(row, cols[colAffiliations]),
		})
	}

	return records, nil
}

// mapColumns resolves required column names to indices.
func mapColumns(header []string) (map[string]int, error) {
	byName := make(map[string]int, len(header))
	for i, h := range header {
		byName[strings.ToLower(strings.TrimSpace(stripBOM(h)))] = i
	}

	cols := make(map[string]int, 4)
	for _, name := range []string{colAuthors, colYear, colEID, colAffiliations} {
		idx, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("export is missing required column %q", name)
		}
		cols[name] = idx
	}
	return cols, nil
}

// field returns the trimmed cell at idx, tolerating short rows.
func field(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// stripBOM removes a UTF-8 byte order mark; Scopus exports carry one on
// the first header cell.
func stripBOM(s string) string {
	return strings.TrimPrefix(s, "\uFEFF")
}
