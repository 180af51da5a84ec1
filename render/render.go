// Package render defines the interface for rendering log snapshots into
// various output formats.
package render

import (
	"io"

	"github.com/sonnes/logboard/core"
)

// Renderer writes a snapshot to the given writer in a specific format.
type Renderer interface {
	Render(w io.Writer, s *core.Snapshot) error
}
