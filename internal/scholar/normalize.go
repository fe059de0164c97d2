// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scholar

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/pdiddy/scholar-sync/pkg/types"
)

// citationURLFormat builds the public citation view URL from the
// provider-assigned publication identifier.
const citationURLFormat = "https://scholar.google.com/citations?view_op=view_citation&citation_for_view=%s"

// timestampFormat matches the last_updated format the site templates expect.
const timestampFormat = "2006-01-02 15:04:05"

// Normalize maps one raw detail record into the fixed Publication shape.
// This is the single place defaults are substituted: absent or mistyped bib
// fields become empty strings / zero, and the venue falls back from journal
// to conference to empty.
func Normalize(raw *RawPublication) types.Publication {
	return types.Publication{
		Title:     bibString(raw.Bib, "title"),
		Authors:   bibString(raw.Bib, "author"),
		Venue:     bibVenue(raw.Bib),
		Year:      bibYear(raw.Bib),
		Citations: raw.Citations,
		URL:       fmt.Sprintf(citationURLFormat, raw.CitationID),
		Abstract:  bibString(raw.Bib, "abstract"),
		BibID:     raw.CitationID,
	}
}

// SortByYear orders publications by year descending. The sort is stable:
// publications sharing a year keep their relative fetch order. Year is the
// only field a total order is defined on.
func SortByYear(pubs []types.Publication) {
	sort.SliceStable(pubs, func(i, j int) bool {
		return pubs[i].Year > pubs[j].Year
	})
}

// BuildSnapshot assembles the run's snapshot and stamps it.
func BuildSnapshot(stats types.AuthorStats, pubs []types.Publication, now time.Time) *types.Snapshot {
	return &types.Snapshot{
		Stats:        stats,
		Publications: pubs,
		LastUpdated:  now.Format(timestampFormat),
	}
}

func bibString(bib map[string]any, key string) string {
	if s, ok := bib[key].(string); ok {
		return s
	}
	return ""
}

func bibVenue(bib map[string]any) string {
	if v := bibString(bib, "journal"); v != "" {
		return v
	}
	return bibString(bib, "conference")
}

// bibYear accepts the year forms the provider actually emits: a JSON
// number, or a string like "2020". Anything else is unknown (0).
func bibYear(bib map[string]any) int {
	switch v := bib["pub_year"].(type) {
	case float64:
		return int(v)
	case int:
		return v
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return int(n)
		}
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
	}
	return 0
}
