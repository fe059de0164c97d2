// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package publish writes a Snapshot to its output sinks: the JSON data
// file, the Jekyll data file, the HTML preview page, and optionally a
// SQLite archive. Sinks are independent; a failing sink never prevents
// attempting the others, and there is no transactional guarantee across
// them.
package publish

import (
	"fmt"
	"io"

	"github.com/pdiddy/scholar-sync/pkg/types"
)

// Sink writes one representation of a Snapshot.
type Sink interface {
	// Name identifies the sink in status lines, usually its target path.
	Name() string
	Write(snap *types.Snapshot) error
}

// Result summarizes a publish run.
type Result struct {
	Written int
	Failed  int
	Errors  []string
}

// HasFailures reports whether any sink failed.
func (r Result) HasFailures() bool { return r.Failed > 0 }

// Sinks assembles the sink list for cfg in a fixed order: JSON snapshot,
// Jekyll data file, HTML preview, then the optional archive.
func Sinks(cfg types.PublishConfig) []Sink {
	sinks := []Sink{
		&JSONSink{Dir: cfg.OutDir},
		&JekyllSink{Dir: cfg.DataDir},
		&PreviewSink{Dir: cfg.OutDir},
	}
	if cfg.ArchiveEnabled {
		sinks = append(sinks, &ArchiveSink{Path: cfg.ArchivePath})
	}
	return sinks
}

// Publish writes snap to every sink, printing per-sink status and
// continuing past individual failures.
func Publish(snap *types.Snapshot, sinks []Sink, w io.Writer) Result {
	var res Result
	for _, s := range sinks {
		if err := s.Write(snap); err != nil {
			fmt.Fprintf(w, "failed:  %s (%v)\n", s.Name(), err)
			res.Failed++
			res.Errors = append(res.Errors, fmt.Sprintf("%s: %v", s.Name(), err))
			continue
		}
		fmt.Fprintf(w, "written: %s\n", s.Name())
		res.Written++
	}
	return res
}
