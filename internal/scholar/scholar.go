// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scholar fetches an author's profile from the scholar data provider
// and turns the raw records into a normalized, year-ordered Snapshot.
package scholar

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"time"

	"golang.org/x/time/rate"

	"github.com/pdiddy/scholar-sync/pkg/types"
)

// PublicationStub is a minimal publication reference returned by the bulk
// profile listing. Full details require a follow-up call per stub.
type PublicationStub struct {
	// CitationID is the provider-assigned publication identifier.
	CitationID string

	// Title is the listing title, used only for progress and warnings;
	// the normalized title comes from the expanded record.
	Title string
}

// RawPublication is one expanded detail record. Bib holds the provider's
// loosely-typed bibliographic fields as they arrived; all default
// substitution happens once, in Normalize, not here.
type RawPublication struct {
	CitationID string
	Citations  int
	Bib        map[string]any
}

// AuthorRecord is the raw result of the profile lookup: citation metrics
// plus the stub list awaiting expansion.
type AuthorRecord struct {
	Stats        types.AuthorStats
	Publications []PublicationStub
}

// Provider supplies author profile data. The HTTP implementation talks to
// the scholar data provider; tests substitute a fake.
type Provider interface {
	// Author looks up a profile by author ID and returns citation metrics
	// plus publication stubs.
	Author(ctx context.Context, authorID string) (*AuthorRecord, error)

	// FillPublication expands one stub into a full detail record.
	FillPublication(ctx context.Context, stub PublicationStub) (*RawPublication, error)
}

// FetchError marks a fatal profile-level failure: the author lookup itself
// failed, so no snapshot can be produced and no sink should run.
// Per-publication failures are not FetchErrors; they are logged and skipped.
type FetchError struct {
	AuthorID string
	Err      error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetching author %s: %v", e.AuthorID, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// FetchReport summarizes a fetch run.
type FetchReport struct {
	// Filled is the number of publications successfully expanded.
	Filled int

	// Skipped is the number dropped after a failed detail expansion.
	Skipped int
}

// FetchProfile runs the fetch stage: author lookup, per-publication detail
// expansion, normalization, and year ordering. A failed author lookup
// returns a *FetchError and aborts. A failed detail expansion drops that
// one publication, prints a warning to w, and continues; partial results
// are acceptable.
//
// Between detail requests the provider is given a randomized politeness
// delay drawn from [cfg.DelayMin, cfg.DelayMax], on top of the request-rate
// cap. Neither is a correctness requirement.
func FetchProfile(ctx context.Context, p Provider, cfg types.FetchConfig, w io.Writer) (*types.Snapshot, FetchReport, error) {
	var report FetchReport

	rec, err := p.Author(ctx, cfg.AuthorID)
	if err != nil {
		return nil, report, &FetchError{AuthorID: cfg.AuthorID, Err: err}
	}

	stubs := rec.Publications
	if cfg.MaxPublications > 0 && len(stubs) > cfg.MaxPublications {
		stubs = stubs[:cfg.MaxPublications]
	}

	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 1
	}
	limiter := rate.NewLimiter(rate.Limit(rps), 1)

	pubs := make([]types.Publication, 0, len(stubs))
	for i, stub := range stubs {
		if i > 0 {
			if err := sleepJitter(ctx, cfg.DelayMin, cfg.DelayMax); err != nil {
				return nil, report, err
			}
		}
		if err := limiter.Wait(ctx); err != nil {
			return nil, report, err
		}

		fmt.Fprintf(w, "publication %d of %d\n", i+1, len(stubs))

		raw, err := p.FillPublication(ctx, stub)
		if err != nil {
			fmt.Fprintf(w, "warning: skipping %q: %v\n", stub.Title, err)
			report.Skipped++
			continue
		}
		pubs = append(pubs, Normalize(raw))
		report.Filled++
	}

	SortByYear(pubs)
	return BuildSnapshot(rec.Stats, pubs, time.Now()), report, nil
}

// sleepJitter blocks for a uniform random duration in [min, max], honoring
// context cancellation. A non-positive max disables the delay.
func sleepJitter(ctx context.Context, min, max time.Duration) error {
	if max <= 0 {
		return nil
	}
	d := min
	if max > min {
		d += rand.N(max - min)
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
