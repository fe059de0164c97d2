// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package publish

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pdiddy/scholar-sync/pkg/types"
)

// SnapshotFile is the JSON output file name.
const SnapshotFile = "publications.json"

// JSONSink serializes the snapshot as indented JSON. The existing file is
// overwritten unconditionally; every run fully replaces the prior snapshot.
type JSONSink struct {
	// Dir is the output directory; "." when empty.
	Dir string
}

func (s *JSONSink) Name() string { return s.path() }

func (s *JSONSink) path() string {
	dir := s.Dir
	if dir == "" {
		dir = "."
	}
	return filepath.Join(dir, SnapshotFile)
}

func (s *JSONSink) Write(snap *types.Snapshot) error {
	f, err := os.Create(s.path())
	if err != nil {
		return fmt.Errorf("creating %s: %w", s.path(), err)
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	// Keep unicode author names byte-for-byte; the file is data, not HTML.
	enc.SetEscapeHTML(false)

	encErr := enc.Encode(snap)
	closeErr := f.Close()
	if encErr != nil {
		return fmt.Errorf("encoding snapshot: %w", encErr)
	}
	if closeErr != nil {
		return fmt.Errorf("closing %s: %w", s.path(), closeErr)
	}
	return nil
}

// ReadSnapshot loads a snapshot previously written by JSONSink. Used by the
// publish subcommand to re-render sinks without refetching.
func ReadSnapshot(path string) (*types.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var snap types.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &snap, nil
}
