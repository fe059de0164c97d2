// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package publish

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/scholar-sync/pkg/types"
)

// DefaultArchivePath is the SQLite database used when none is configured.
const DefaultArchivePath = "scholar-sync.db"

// ArchiveSink appends each run's snapshot to a local SQLite database so
// successive syncs keep a citation-metrics history. Unlike the file sinks
// it accumulates rather than replaces; it is off by default.
type ArchiveSink struct {
	Path string
}

func (s *ArchiveSink) Name() string { return s.path() }

func (s *ArchiveSink) path() string {
	if s.Path == "" {
		return DefaultArchivePath
	}
	return s.Path
}

var archiveSchema = []string{
	`CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		last_updated TEXT NOT NULL,
		citations INTEGER NOT NULL,
		h_index INTEGER NOT NULL,
		i10_index INTEGER NOT NULL,
		publication_count INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS publications (
		run_id INTEGER NOT NULL REFERENCES runs(id),
		position INTEGER NOT NULL,
		title TEXT,
		authors TEXT,
		venue TEXT,
		year INTEGER,
		citations INTEGER,
		url TEXT,
		abstract TEXT,
		bib_id TEXT
	)`,
	`CREATE INDEX IF NOT EXISTS idx_publications_run ON publications(run_id)`,
}

func (s *ArchiveSink) Write(snap *types.Snapshot) error {
	db, err := sql.Open("sqlite3", s.path()+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return fmt.Errorf("opening archive: %w", err)
	}
	defer db.Close()

	for _, stmt := range archiveSchema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("creating archive schema: %w", err)
		}
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		`INSERT INTO runs (last_updated, citations, h_index, i10_index, publication_count)
		 VALUES (?, ?, ?, ?, ?)`,
		snap.LastUpdated, snap.Stats.Citations, snap.Stats.HIndex, snap.Stats.I10Index,
		len(snap.Publications),
	)
	if err != nil {
		return fmt.Errorf("inserting run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading run ID: %w", err)
	}

	stmt, err := tx.Prepare(
		`INSERT INTO publications (run_id, position, title, authors, venue, year, citations, url, abstract, bib_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, p := range snap.Publications {
		if _, err := stmt.Exec(runID, i, p.Title, p.Authors, p.Venue, p.Year,
			p.Citations, p.URL, p.Abstract, p.BibID); err != nil {
			return fmt.Errorf("inserting publication %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing archive: %w", err)
	}
	return nil
}
