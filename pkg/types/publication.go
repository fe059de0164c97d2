// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the scholar-sync pipeline.
package types

// AuthorStats holds profile-level citation metrics. Immutable once fetched.
type AuthorStats struct {
	// Citations is the total citation count across all publications.
	Citations int `json:"citations" yaml:"citations"`

	// HIndex is the author's h-index.
	HIndex int `json:"h_index" yaml:"h_index"`

	// I10Index is the number of publications with at least ten citations.
	I10Index int `json:"i10_index" yaml:"i10_index"`
}

// Publication is one normalized publication record. Missing provider fields
// are substituted with zero values during normalization, never downstream.
type Publication struct {
	// Title is the publication title.
	Title string `json:"title" yaml:"title"`

	// Authors is the free-form, comma-joined author list as the provider
	// reports it. Not split into individual names.
	Authors string `json:"authors" yaml:"authors"`

	// Venue is the journal name, falling back to the conference name,
	// falling back to empty.
	Venue string `json:"venue" yaml:"venue"`

	// Year is the publication year, 0 when unknown.
	Year int `json:"year" yaml:"year"`

	// Citations is the citation count for this publication.
	Citations int `json:"citations" yaml:"citations"`

	// URL links to the provider's citation view for this publication.
	URL string `json:"url" yaml:"url"`

	// Abstract is the publication abstract, may be empty.
	Abstract string `json:"abstract" yaml:"abstract"`

	// BibID is the provider-assigned publication identifier. Used only for
	// URL construction; uniqueness is not enforced in the output.
	BibID string `json:"bib_id" yaml:"bib_id"`
}

// Snapshot is the complete result of one sync run: stats plus the ordered
// publication list. It is produced fresh each run and fully replaces any
// prior output; there is no incremental update.
type Snapshot struct {
	// Stats holds the profile-level citation metrics.
	Stats AuthorStats `json:"stats" yaml:"stats"`

	// Publications is sorted by year descending; publications sharing a
	// year keep their original fetch order.
	Publications []Publication `json:"publications" yaml:"publications"`

	// LastUpdated is the generation timestamp, formatted
	// "2006-01-02 15:04:05" in local time.
	LastUpdated string `json:"last_updated" yaml:"last_updated"`
}
