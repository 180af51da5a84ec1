// Package json renders snapshots as the flat name → content object served by
// the HTTP API.
package json

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/sonnes/logboard/core"
	"github.com/sonnes/logboard/render"
)

// Renderer renders a snapshot to JSON.
type Renderer struct {
	// Indent controls pretty-printing. When true, output is indented.
	Indent bool
}

// New returns a Renderer.
func New(indent bool) *Renderer {
	return &Renderer{Indent: indent}
}

// Render writes s followed by a newline. Keys appear in display order.
func (r *Renderer) Render(w io.Writer, s *core.Snapshot) error {
	data, err := s.MarshalJSON()
	if err != nil {
		return err
	}
	if r.Indent {
		var buf bytes.Buffer
		if err := json.Indent(&buf, data, "", "  "); err != nil {
			return err
		}
		data = buf.Bytes()
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

var _ render.Renderer = (*Renderer)(nil)
