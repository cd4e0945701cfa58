// Package record defines the bibliographic export record consumed by the
// graph builder.
package record

import (
	"errors"
	"strings"
)

// Record is one publication row from a bibliographic export. Only the
// fields the co-authorship pipeline reads are carried; everything else in
// the export is ignored at ingest time.
type Record struct {
	// EID is the export's unique publication identifier.
	EID string `json:"eid"`

	// Year is kept as text exactly as exported; it is a presence check,
	// not a parsed value.
	Year string `json:"year"`

	// Authors is the plain author-name list. The pipeline requires it to
	// be present but never parses it.
	Authors string `json:"authors"`

	// AuthorsWithAffiliations is the semicolon-delimited affiliation text
	// the builder actually parses.
	AuthorsWithAffiliations string `json:"authors_with_affiliations"`
}

// Validation errors.
var (
	ErrMissingEID          = errors.New("eid is required")
	ErrMissingYear         = errors.New("year is required")
	ErrMissingAuthors      = errors.New("authors is required")
	ErrMissingAffiliations = errors.New("authors with affiliations is required")
)

// Validate reports whether the record carries every field the builder
// needs. A failing record is skipped by the builder, not escalated.
func (r *Record) Validate() error {
	if strings.TrimSpace(r.EID) == "" {
		return ErrMissingEID
	}
	if strings.TrimSpace(r.Year) == "" {
		return ErrMissingYear
	}
	if strings.TrimSpace(r.Authors) == "" {
		return ErrMissingAuthors
	}
	if strings.TrimSpace(r.AuthorsWithAffiliations) == "" {
		return ErrMissingAffiliations
	}
	return nil
}
