// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package publish

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"

	"github.com/pdiddy/scholar-sync/pkg/types"
)

// PreviewFile is the rendered preview page file name.
const PreviewFile = "publications_preview.html"

// PreviewSink renders the snapshot into a single self-contained HTML page:
// stats header, one block per publication, last-updated footer. The page is
// a local preview of what the site will show, not the site itself.
type PreviewSink struct {
	// Dir is the output directory; "." when empty.
	Dir string
}

func (s *PreviewSink) Name() string { return s.path() }

func (s *PreviewSink) path() string {
	dir := s.Dir
	if dir == "" {
		dir = "."
	}
	return filepath.Join(dir, PreviewFile)
}

func (s *PreviewSink) Write(snap *types.Snapshot) error {
	f, err := os.Create(s.path())
	if err != nil {
		return fmt.Errorf("creating %s: %w", s.path(), err)
	}

	execErr := previewTemplate.Execute(f, snap)
	closeErr := f.Close()
	if execErr != nil {
		return fmt.Errorf("rendering preview: %w", execErr)
	}
	if closeErr != nil {
		return fmt.Errorf("closing %s: %w", s.path(), closeErr)
	}
	return nil
}

var previewTemplate = template.Must(template.New("preview").Parse(`<html>
<head>
    <title>Publications Preview</title>
    <style>
        body { font-family: Arial, sans-serif; max-width: 1200px; margin: 0 auto; padding: 20px; }
        .stats { display: flex; justify-content: space-around; margin: 20px 0; padding: 20px; background: #f5f5f5; }
        .stat-item { text-align: center; }
        .stat-number { font-size: 24px; font-weight: bold; color: #2d3c48; }
        .stat-label { color: #666; }
        .publication { margin: 20px 0; padding: 20px; border: 1px solid #eee; border-radius: 5px; }
        .title { font-size: 18px; color: #2d3c48; margin-bottom: 10px; }
        .authors { color: #666; margin-bottom: 5px; }
        .venue { color: #3e8cb7; }
        .citations { color: #72b16e; }
        .year { float: right; color: #666; }
        .last-updated { text-align: center; color: #666; margin-top: 40px; }
    </style>
</head>
<body>
<div class="stats">
    <div class="stat-item">
        <div class="stat-number">{{.Stats.Citations}}</div>
        <div class="stat-label">Citations</div>
    </div>
    <div class="stat-item">
        <div class="stat-number">{{.Stats.HIndex}}</div>
        <div class="stat-label">h-index</div>
    </div>
    <div class="stat-item">
        <div class="stat-number">{{.Stats.I10Index}}</div>
        <div class="stat-label">i10-index</div>
    </div>
</div>
{{range .Publications}}<div class="publication">
    <div class="year">{{.Year}}</div>
    <div class="title"><a href="{{.URL}}" target="_blank">{{.Title}}</a></div>
    <div class="authors">{{.Authors}}</div>
    <div class="venue">{{.Venue}}</div>
    <div class="citations">{{.Citations}} citations</div>
</div>
{{end}}<div class="last-updated">Last updated: {{.LastUpdated}}</div>
</body>
</html>
`))
