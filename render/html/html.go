// Package html renders log snapshots as standalone HTML pages styled with
// Tailwind CSS v4 (CDN). Log content is shown verbatim; optional operator
// notes are rendered as markdown through goldmark + chroma. In live mode the
// page carries a script that re-fetches the snapshot on a fixed interval.
package html

import (
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/sonnes/logboard/core"
	"github.com/sonnes/logboard/reader"
	"github.com/sonnes/logboard/render"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
)

// DefaultInterval is the refresh period of a live page.
const DefaultInterval = 5 * time.Second

// DefaultEndpoint is the snapshot API polled by a live page.
const DefaultEndpoint = "/api/logs"

// Renderer renders a snapshot to a standalone HTML page.
type Renderer struct {
	md   goldmark.Markdown
	tmpl *template.Template

	// Title is shown in the page header and <title>.
	Title string
	// Notes is markdown shown under the header, e.g. an on-call runbook
	// link. Fenced code in notes is highlighted.
	Notes string
	// Live embeds the polling script. A page rendered without it is a static
	// export of one snapshot.
	Live bool
	// Interval is the live refresh period. Zero means DefaultInterval.
	Interval time.Duration
	// Endpoint is the snapshot URL polled by the script. Empty means
	// DefaultEndpoint.
	Endpoint string
	// StreamEndpoint, when set, is a websocket URL path pushing snapshots.
	// Polling pauses while the stream is connected.
	StreamEndpoint string
}

// New creates an HTML Renderer with goldmark configured for GFM notes with
// highlighted fenced code.
func New() *Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle("dracula"),
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(false), // inline styles for standalone pages
				),
			),
		),
	)

	tmpl := template.Must(
		template.New("page.html").
			Funcs(funcMap()).
			ParseFS(content, "templates/*.html"),
	)

	return &Renderer{md: md, tmpl: tmpl, Title: "logboard"}
}

// pageData is the top-level template data passed to page.html.
type pageData struct {
	Title      string
	Notes      template.HTML
	TakenAt    time.Time
	Sources    []sourceData
	Skipped    []string
	TotalBytes int
	Live       bool
	IntervalMS int64
	Endpoint   string
	Stream     string

	SkippedHeader string
}

// sourceData is the per-source template data passed to source.html.
type sourceData struct {
	ID       string
	Name     string
	Lines    int
	Bytes    int
	Priority bool
	Body     template.HTML
}

// Render writes the snapshot as a complete HTML page to w, one section per
// source in display order.
func (r *Renderer) Render(w io.Writer, s *core.Snapshot) error {
	data := pageData{
		Title:         r.Title,
		Notes:         renderNotes(r.md, r.Notes),
		TakenAt:       s.TakenAt(),
		Skipped:       s.Skipped(),
		Live:          r.Live,
		Endpoint:      r.Endpoint,
		Stream:        r.StreamEndpoint,
		SkippedHeader: reader.SkippedHeader,
	}
	if data.Endpoint == "" {
		data.Endpoint = DefaultEndpoint
	}
	interval := r.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	data.IntervalMS = interval.Milliseconds()

	for i, src := range s.Sources() {
		data.Sources = append(data.Sources, sourceData{
			ID:       fmt.Sprintf("log-%d", i),
			Name:     src.Name,
			Lines:    core.CountLines(src.Content),
			Bytes:    len(src.Content),
			Priority: src.Name == core.PriorityName,
			Body:     renderSource(src),
		})
		data.TotalBytes += len(src.Content)
	}
	return r.tmpl.ExecuteTemplate(w, "page.html", data)
}

var _ render.Renderer = (*Renderer)(nil)
