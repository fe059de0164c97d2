// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scholar

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/pdiddy/scholar-sync/internal/httputil"
	"github.com/pdiddy/scholar-sync/pkg/types"
)

// scholarAPIBase is the profile provider's search endpoint. Declared as a
// var so tests can substitute an httptest server.
var scholarAPIBase = "https://serpapi.com/search"

const providerEngine = "google_scholar_author"

// HTTPProvider implements Provider against the scholar data provider's
// author API. The provider proxies Google Scholar profile pages; its wire
// shape is outside our control and we decode only the envelope we need.
// The bibliographic body of each citation record is passed through untyped.
type HTTPProvider struct {
	Client    *http.Client
	APIKey    string
	UserAgent string
}

// Author looks up a profile by author ID.
func (p *HTTPProvider) Author(ctx context.Context, authorID string) (*AuthorRecord, error) {
	if authorID == "" {
		return nil, fmt.Errorf("empty author ID")
	}

	params := url.Values{
		"engine":    {providerEngine},
		"author_id": {authorID},
	}

	var ar authorResponse
	if err := p.get(ctx, params, &ar); err != nil {
		return nil, err
	}
	if ar.Error != "" {
		return nil, fmt.Errorf("provider error: %s", ar.Error)
	}

	rec := &AuthorRecord{Stats: ar.stats()}
	for _, a := range ar.Articles {
		rec.Publications = append(rec.Publications, PublicationStub{
			CitationID: a.CitationID,
			Title:      a.Title,
		})
	}
	return rec, nil
}

// FillPublication expands one stub into a full detail record.
func (p *HTTPProvider) FillPublication(ctx context.Context, stub PublicationStub) (*RawPublication, error) {
	if stub.CitationID == "" {
		return nil, fmt.Errorf("stub has no citation ID")
	}

	params := url.Values{
		"engine":      {providerEngine},
		"view_op":     {"view_citation"},
		"citation_id": {stub.CitationID},
	}

	var cr citationResponse
	if err := p.get(ctx, params, &cr); err != nil {
		return nil, err
	}
	if cr.Error != "" {
		return nil, fmt.Errorf("provider error: %s", cr.Error)
	}
	if cr.Citation == nil {
		return nil, fmt.Errorf("empty citation record for %s", stub.CitationID)
	}

	return &RawPublication{
		CitationID: stub.CitationID,
		Citations:  cr.CitedBy.Total,
		Bib:        cr.Citation,
	}, nil
}

// get performs one provider request and decodes the JSON body into out.
func (p *HTTPProvider) get(ctx context.Context, params url.Values, out any) error {
	if p.APIKey != "" {
		params.Set("api_key", p.APIKey)
	}
	reqURL := scholarAPIBase + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", p.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, p.Client, req, 0)
	if err != nil {
		return fmt.Errorf("provider request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("provider returned HTTP %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("parsing provider response: %w", err)
	}
	return nil
}

// Provider API JSON envelopes.
type authorResponse struct {
	CitedBy  citedByTable   `json:"cited_by"`
	Articles []articleEntry `json:"articles"`
	Error    string         `json:"error"`
}

// citedByTable is the provider's metrics table: a list of single-key rows,
// one per metric, each holding an all-time value.
type citedByTable struct {
	Table []map[string]citedByMetric `json:"table"`
}

type citedByMetric struct {
	All int `json:"all"`
}

type articleEntry struct {
	Title      string `json:"title"`
	CitationID string `json:"citation_id"`
}

type citationResponse struct {
	Citation map[string]any `json:"citation"`
	CitedBy  citedByTotal   `json:"cited_by"`
	Error    string         `json:"error"`
}

type citedByTotal struct {
	Total int `json:"total"`
}

// stats flattens the metrics table into AuthorStats. Missing rows stay zero.
func (r authorResponse) stats() types.AuthorStats {
	var s types.AuthorStats
	for _, row := range r.CitedBy.Table {
		if m, ok := row["citations"]; ok {
			s.Citations = m.All
		}
		if m, ok := row["h_index"]; ok {
			s.HIndex = m.All
		}
		if m, ok := row["i10_index"]; ok {
			s.I10Index = m.All
		}
	}
	return s
}
