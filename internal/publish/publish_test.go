// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package publish

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/scholar-sync/pkg/types"
)

func sampleSnapshot() *types.Snapshot {
	return &types.Snapshot{
		Stats: types.AuthorStats{Citations: 1234, HIndex: 18, I10Index: 25},
		Publications: []types.Publication{
			{
				Title:     "Deep Widgets",
				Authors:   "Ana García, Bob Čech, 田中太郎",
				Venue:     "Journal of Widgetry",
				Year:      2022,
				Citations: 42,
				URL:       "https://scholar.google.com/citations?view_op=view_citation&citation_for_view=x:1",
				Abstract:  "We study widgets in depth.",
				BibID:     "x:1",
			},
			{
				Title: "Shallow Widgets",
				Year:  2020,
				BibID: "x:2",
			},
		},
		LastUpdated: "2026-08-28 14:30:05",
	}
}

func TestJSONSinkRoundTrip(t *testing.T) {
	dir := t.TempDir()
	snap := sampleSnapshot()

	sink := &JSONSink{Dir: dir}
	if err := sink.Write(snap); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, err := ReadSnapshot(filepath.Join(dir, SnapshotFile))
	if err != nil {
		t.Fatalf("ReadSnapshot: %v", err)
	}
	if !reflect.DeepEqual(got, snap) {
		t.Errorf("round trip mismatch:\ngot  %+v\nwant %+v", got, snap)
	}

	// Unicode author names must survive byte-for-byte, unescaped.
	data, err := os.ReadFile(filepath.Join(dir, SnapshotFile))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(data, []byte("田中太郎")) {
		t.Error("unicode author name was escaped or corrupted in JSON output")
	}
}

func TestJSONSinkOverwrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, SnapshotFile)
	if err := os.WriteFile(path, []byte("stale"), 0o644); err != nil {
		t.Fatal(err)
	}

	sink := &JSONSink{Dir: dir}
	if err := sink.Write(sampleSnapshot()); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, err := ReadSnapshot(path)
	if err != nil {
		t.Fatalf("ReadSnapshot after overwrite: %v", err)
	}
	if got.Stats.Citations != 1234 {
		t.Errorf("stale content survived overwrite: %+v", got)
	}
}

func TestJekyllSinkCreatesDirAndKeepsKeyOrder(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "_data")
	snap := sampleSnapshot()

	sink := &JekyllSink{Dir: dir}
	if err := sink.Write(snap); err != nil {
		t.Fatalf("Write: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, DataFile))
	if err != nil {
		t.Fatalf("reading data file: %v", err)
	}

	var got types.Snapshot
	if err := yaml.Unmarshal(data, &got); err != nil {
		t.Fatalf("parsing YAML: %v", err)
	}
	if !reflect.DeepEqual(&got, snap) {
		t.Errorf("YAML round trip mismatch:\ngot  %+v\nwant %+v", &got, snap)
	}

	// stats must come before publications: struct order, not sorted keys.
	text := string(data)
	if strings.Index(text, "stats:") > strings.Index(text, "publications:") {
		t.Error("YAML keys were sorted; expected struct order")
	}
}

func TestPreviewSinkRendersPage(t *testing.T) {
	dir := t.TempDir()
	snap := sampleSnapshot()

	sink := &PreviewSink{Dir: dir}
	if err := sink.Write(snap); err != nil {
		t.Fatalf("Write: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, PreviewFile))
	if err != nil {
		t.Fatalf("reading preview: %v", err)
	}
	page := string(data)

	for _, want := range []string{
		`<div class="stat-number">1234</div>`,
		`<div class="stat-number">18</div>`,
		`<div class="stat-number">25</div>`,
		`<div class="year">2022</div>`,
		`>Deep Widgets</a>`,
		`<div class="authors">Ana García, Bob Čech, 田中太郎</div>`,
		`<div class="venue">Journal of Widgetry</div>`,
		`<div class="citations">42 citations</div>`,
		`Last updated: 2026-08-28 14:30:05`,
	} {
		if !strings.Contains(page, want) {
			t.Errorf("preview missing %q", want)
		}
	}

	// Two publication blocks, linked titles in both.
	if got := strings.Count(page, `<div class="publication">`); got != 2 {
		t.Errorf("publication blocks = %d, want 2", got)
	}
}

func TestPreviewSinkEscapesMarkup(t *testing.T) {
	dir := t.TempDir()
	snap := sampleSnapshot()
	snap.Publications[0].Title = `Widgets & <Gadgets>`

	sink := &PreviewSink{Dir: dir}
	if err := sink.Write(snap); err != nil {
		t.Fatalf("Write: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, PreviewFile))
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "<Gadgets>") {
		t.Error("title markup was not escaped")
	}
}

// failingSink always errors, for isolation tests.
type failingSink struct{}

func (failingSink) Name() string                  { return "failing-sink" }
func (failingSink) Write(_ *types.Snapshot) error { return errors.New("disk full") }

func TestPublishContinuesPastFailures(t *testing.T) {
	dir := t.TempDir()
	sinks := []Sink{
		failingSink{},
		&JSONSink{Dir: dir},
		&JekyllSink{Dir: filepath.Join(dir, "_data")},
	}

	var out bytes.Buffer
	res := Publish(sampleSnapshot(), sinks, &out)

	if res.Written != 2 || res.Failed != 1 {
		t.Errorf("result = %+v, want 2 written, 1 failed", res)
	}
	if !res.HasFailures() {
		t.Error("HasFailures() = false")
	}
	if len(res.Errors) != 1 || !strings.Contains(res.Errors[0], "disk full") {
		t.Errorf("errors = %v", res.Errors)
	}
	if _, err := os.Stat(filepath.Join(dir, SnapshotFile)); err != nil {
		t.Error("JSON sink should still have been attempted after a failure")
	}
	if !strings.Contains(out.String(), "failed:  failing-sink") {
		t.Errorf("missing failure status line:\n%s", out.String())
	}
}

func TestPublishUnwritableDirIsIsolated(t *testing.T) {
	dir := t.TempDir()
	sinks := []Sink{
		&JSONSink{Dir: filepath.Join(dir, "missing", "nested")}, // parent absent
		&PreviewSink{Dir: dir},
	}

	var out bytes.Buffer
	res := Publish(sampleSnapshot(), sinks, &out)

	if res.Failed != 1 || res.Written != 1 {
		t.Errorf("result = %+v, want 1 failed, 1 written", res)
	}
	if _, err := os.Stat(filepath.Join(dir, PreviewFile)); err != nil {
		t.Error("preview sink should have been written")
	}
}

func TestSinksAssembly(t *testing.T) {
	cfg := types.PublishConfig{OutDir: "out", DataDir: "data"}
	if got := len(Sinks(cfg)); got != 3 {
		t.Errorf("sinks = %d, want 3 without archive", got)
	}

	cfg.ArchiveEnabled = true
	sinks := Sinks(cfg)
	if got := len(sinks); got != 4 {
		t.Fatalf("sinks = %d, want 4 with archive", got)
	}
	if _, ok := sinks[3].(*ArchiveSink); !ok {
		t.Errorf("last sink = %T, want *ArchiveSink", sinks[3])
	}
}
