// Package crossref fetches publication records from the Crossref REST
// API and maps them into the builder's record shape.
package crossref

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/matsen/coauthnet/internal/record"
)

const (
	// BaseURL is the Crossref REST API root.
	BaseURL = "https://api.crossref.org"

	// RateLimit is requests per second. Crossref asks polite clients to
	// stay well under 50 rps; 2 is plenty for batch fetches.
	RateLimit = 2

	// MaxRows is Crossref's per-request result cap.
	MaxRows = 1000
)

// Client is a rate-limited HTTP client for the Crossref works API.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	baseURL    string
	mailto     string
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(u string) ClientOption {
	return func(c *Client) {
		c.baseURL = u
	}
}

// WithMailto sets the contact address sent with each request, which
// routes traffic through Crossref's polite pool.
func WithMailto(addr string) ClientOption {
	return func(c *Client) {
		c.mailto = addr
	}
}

// NewClient creates a Crossref client. CROSSREF_MAILTO in the
// environment provides the polite-pool contact unless overridden.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		limiter:    rate.NewLimiter(rate.Limit(RateLimit), 1),
		baseURL:    BaseURL,
	}

	if addr := os.Getenv("CROSSREF_MAILTO"); addr != "" {
		c.mailto = addr
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// worksResponse is the subset of the Crossref works payload we read.
type worksResponse struct {
	Message struct {
		Items []workItem `json:"items"`
	} `json:"message"`
}

type workItem struct {
	DOI    string `json:"DOI"`
	Issued struct {
		DateParts [][]int `json:"date-parts"`
	} `json:"issued"`
	Author []struct {
		Given       string `json:"given"`
		Family      string `json:"family"`
		Affiliation []struct {
			Name string `json:"name"`
		} `json:"affiliation"`
	} `json:"author"`
}

// Works queries the works endpoint and returns the matching publications
// as records. rows is clamped to Crossref's per-request cap.
func (c *Client) Works(ctx context.Context, query string, rows int) ([]record.Record, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("query is required")
	}
	if rows <= 0 || rows > MaxRows {
		rows = MaxRows
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("rows", strconv.Itoa(rows))
	params.Set("select", "DOI,author,issued")
	if c.mailto != "" {
		params.Set("mailto", c.mailto)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/works?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("querying Crossref: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Crossref returned status %d", resp.StatusCode)
	}

	var body worksResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decoding Crossref response: %w", err)
	}

	records := make([]record.Record, 0, len(body.Message.Items))
	for _, item := range body.Message.Items {
		if rec, ok := itemToRecord(item); ok {
			records = append(records, rec)
		}
	}

	return records, nil
}

// itemToRecord maps one Crossref work to a record. Authors missing a
// family name, a given name, or any affiliation are left out of the
// affiliation text: a block with fewer than three segments would make
// the builder misread a name or institution as the country token.
// Consortium entries routinely carry a family name only.
func itemToRecord(item workItem) (record.Record, bool) {
	if item.DOI == "" || len(item.Author) == 0 {
		return record.Record{}, false
	}

	year := ""
	if len(item.Issued.DateParts) > 0 && len(item.Issued.DateParts[0]) > 0 {
		year = strconv.Itoa(item.Issued.DateParts[0][0])
	}

	var names, blocks []string
	for _, a := range item.Author {
		if a.Family == "" || a.Given == "" {
			continue
		}
		names = append(names, strings.TrimSpace(a.Family+" "+a.Given))
		if len(a.Affiliation) == 0 || a.Affiliation[0].Name == "" {
			continue
		}
		blocks = append(blocks, a.Family+", "+a.Given+", "+a.Affiliation[0].Name)
	}

	rec := record.Record{
		EID:                     item.DOI,
		Year:                    year,
		Authors:                 strings.Join(names, "; "),
		AuthorsWithAffiliations: strings.Join(blocks, "; "),
	}
	return rec, rec.Validate() == nil
}
