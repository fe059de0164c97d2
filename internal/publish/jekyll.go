// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package publish

import (
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/scholar-sync/pkg/types"
)

// DataFile is the Jekyll data file name.
const DataFile = "publications.yml"

// JekyllSink re-serializes the snapshot as YAML under the site's data
// directory so Jekyll templates can iterate it. Keys keep struct order;
// the directory is created if absent.
type JekyllSink struct {
	// Dir is the data directory; "_data" when empty.
	Dir string
}

func (s *JekyllSink) Name() string { return s.path() }

func (s *JekyllSink) dir() string {
	if s.Dir == "" {
		return "_data"
	}
	return s.Dir
}

func (s *JekyllSink) path() string { return filepath.Join(s.dir(), DataFile) }

func (s *JekyllSink) Write(snap *types.Snapshot) error {
	if err := os.MkdirAll(s.dir(), 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", s.dir(), err)
	}

	data, err := yaml.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshaling snapshot: %w", err)
	}
	if err := os.WriteFile(s.path(), data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", s.path(), err)
	}
	return nil
}
