package graph

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matsen/coauthnet/internal/record"
)

// Terminal build errors.
var (
	// ErrEmptyResult means every input record was excluded by field
	// validation, so no graph can be produced. Surfaced instead of an
	// empty graph so callers can tell bad input from a sparse dataset.
	ErrEmptyResult = errors.New("no usable records: every record was missing a required field")
)

// Limits caps input size before pair enumeration, which is quadratic in
// per-record roster size. A zero value disables the corresponding cap.
type Limits struct {
	MaxRecords          int `json:"max_records"`
	MaxAuthorsPerRecord int `json:"max_authors_per_record"`
}

// DefaultLimits are generous enough for any real bibliographic export.
func DefaultLimits() Limits {
	return Limits{
		MaxRecords:          100000,
		MaxAuthorsPerRecord: 1000,
	}
}

// Builder accumulates nodes, co-author sets, and candidate edges over one
// record set. A Builder is single-use and not safe for concurrent use;
// embedders must give each invocation its own Builder so no counters are
// shared across requests.
type Builder struct {
	limits  Limits
	aliases map[string]string
	logger  *log.Logger

	nodes     map[string]*Node
	order     []string // node keys in first-seen order
	coauthors map[string]map[string]struct{}
	pairPubs  map[pairKey]map[string]struct{} // pair -> distinct EIDs
	mentions  map[string]int
}

// pairKey identifies an unordered author pair; A sorts before B.
type pairKey struct {
	A, B string
}

// Option configures a Builder.
type Option func(*Builder)

// WithLimits overrides the default input-size caps.
func WithLimits(l Limits) Option {
	return func(b *Builder) {
		b.limits = l
	}
}

// WithCountryAliases maps raw country tokens to canonical ones before
// counting. Tokens absent from the map pass through unchanged.
func WithCountryAliases(aliases map[string]string) Option {
	return func(b *Builder) {
		b.aliases = aliases
	}
}

// WithLogger sets the logger for skip diagnostics.
func WithLogger(logger *log.Logger) Option {
	return func(b *Builder) {
		b.logger = logger
	}
}

// NewBuilder returns a Builder with default limits and a discarded log.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		limits:    DefaultLimits(),
		logger:    log.New(io.Discard),
		nodes:     make(map[string]*Node),
		coauthors: make(map[string]map[string]struct{}),
		pairPubs:  make(map[pairKey]map[string]struct{}),
		mentions:  make(map[string]int),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build runs the full record-to-graph transformation: validate and filter
// records, parse affiliation blocks into author keys, enumerate co-author
// pairs per record, and aggregate repeated pairs into weighted links.
//
// Records missing a required field are skipped silently (logged at debug
// level). If every record is excluded this way, Build returns
// ErrEmptyResult. Input-size violations fail fast.
func (b *Builder) Build(records []record.Record) (*Result, error) {
	if b.limits.MaxRecords > 0 && len(records) > b.limits.MaxRecords {
		return nil, fmt.Errorf("input has %d records, exceeding the cap of %d", len(records), b.limits.MaxRecords)
	}

	usable := 0
	for i := range records {
		rec := &records[i]
		if err := rec.Validate(); err != nil {
			b.logger.Debug("skipping record", "eid", rec.EID, "reason", err)
			continue
		}
		usable++
		if err := b.addRecord(rec); err != nil {
			return nil, err
		}
	}

	if usable == 0 {
		return nil, ErrEmptyResult
	}

	return b.finish(), nil
}

// addRecord parses one record's affiliation text and registers its
// authors, country mentions, and co-author pairs.
func (b *Builder) addRecord(rec *record.Record) error {
	roster := b.parseRoster(rec)

	if b.limits.MaxAuthorsPerRecord > 0 && len(roster) > b.limits.MaxAuthorsPerRecord {
		return fmt.Errorf("record %s has %d authors, exceeding the cap of %d", rec.EID, len(roster), b.limits.MaxAuthorsPerRecord)
	}

	// Pairs are drawn from distinct roster positions; the roster is
	// already deduplicated by key, so self-edges cannot occur.
	for i := 0; i < len(roster); i++ {
		for j := i + 1; j < len(roster); j++ {
			b.addPair(roster[i], roster[j], rec.EID)
		}
	}

	return nil
}

// parseRoster splits the affiliation text into author blocks and returns
// the record's deduplicated author keys in first-seen order. Each valid
// block also registers its node and counts one country mention; blocks
// with fewer than two comma tokens cannot form an author key and are
// skipped.
func (b *Builder) parseRoster(rec *record.Record) []string {
	var roster []string
	seen := make(map[string]struct{})

	for _, block := range strings.Split(rec.AuthorsWithAffiliations, ";") {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}

		tokens := splitTokens(block)
		if len(tokens) < 2 {
			b.logger.Debug("skipping malformed affiliation block", "eid", rec.EID, "block", block)
			continue
		}

		key := tokens[0] + ", " + tokens[1]
		country := b.canonicalCountry(tokens[len(tokens)-1])

		b.touchNode(key, country)
		b.mentions[country]++

		if _, dup := seen[key]; !dup {
			seen[key] = struct{}{}
			roster = append(roster, key)
		}
	}

	return roster
}

// splitTokens splits an affiliation block on commas, trimming each token
// and dropping empty ones.
func splitTokens(block string) []string {
	parts := strings.Split(block, ",")
	tokens := parts[:0]
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			tokens = append(tokens, p)
		}
	}
	return tokens
}

// touchNode creates the node on first sight and otherwise updates its
// country. Last write wins across the whole pass, in record iteration
// order.
func (b *Builder) touchNode(key, country string) {
	if n, ok := b.nodes[key]; ok {
		n.Country = country
		return
	}
	b.nodes[key] = &Node{ID: key, Country: country}
	b.order = append(b.order, key)
}

// addPair registers a candidate edge for one publication and links the
// two authors' co-author sets symmetrically.
func (b *Builder) addPair(x, y, eid string) {
	k := pairKey{A: x, B: y}
	if k.B < k.A {
		k.A, k.B = k.B, k.A
	}

	pubs, ok := b.pairPubs[k]
	if !ok {
		pubs = make(map[string]struct{})
		b.pairPubs[k] = pubs
	}
	pubs[eid] = struct{}{}

	b.link(x, y)
	b.link(y, x)
}

func (b *Builder) link(from, to string) {
	set, ok := b.coauthors[from]
	if !ok {
		set = make(map[string]struct{})
		b.coauthors[from] = set
	}
	set[to] = struct{}{}
}

// canonicalCountry applies the optional alias map to a raw country token.
func (b *Builder) canonicalCountry(token string) string {
	if canonical, ok := b.aliases[token]; ok {
		return canonical
	}
	return token
}

// finish freezes degrees and aggregates candidate edges into links.
// Nodes come out in first-seen order and links sorted by endpoint pair,
// so repeated builds over the same input produce identical output.
func (b *Builder) finish() *Result {
	nodes := make([]*Node, 0, len(b.order))
	for _, key := range b.order {
		n := b.nodes[key]
		n.Degree = len(b.coauthors[key])
		nodes = append(nodes, n)
	}

	links := make([]Link, 0, len(b.pairPubs))
	for k, pubs := range b.pairPubs {
		links = append(links, Link{
			Source:             k.A,
			Target:             k.B,
			SharedPublications: len(pubs),
		})
	}
	sort.Slice(links, func(i, j int) bool {
		if links[i].Source != links[j].Source {
			return links[i].Source < links[j].Source
		}
		return links[i].Target < links[j].Target
	})

	return &Result{
		Nodes:    nodes,
		Links:    links,
		Mentions: b.mentions,
	}
}
