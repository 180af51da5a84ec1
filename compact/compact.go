// Package compact provides a Transformer that trims each log source to its
// most recent lines for a compact view.
package compact

import (
	"fmt"
	"strings"

	"github.com/sonnes/logboard/core"
)

// Config controls the compact transformer behavior.
type Config struct {
	// TailLines is the number of trailing lines kept per source. Zero or
	// less keeps everything.
	TailLines int
}

// Compactor keeps the last lines of every source and marks the cut.
type Compactor struct {
	tail int
}

// New creates a Compactor from the given config.
func New(cfg Config) *Compactor {
	return &Compactor{tail: cfg.TailLines}
}

// Transform implements core.Transformer.
func (c *Compactor) Transform(s *core.Snapshot) (*core.Snapshot, error) {
	if c.tail <= 0 {
		return s, nil
	}
	return s.Map(func(src core.Source) core.Source {
		src.Content = tail(src.Content, c.tail)
		return src
	}), nil
}

// tail returns the last n lines of s, prefixed with a marker line counting
// the lines dropped. s is returned unchanged when it has n lines or fewer.
func tail(s string, n int) string {
	total := core.CountLines(s)
	if total <= n {
		return s
	}
	drop := total - n
	pos := 0
	for i := 0; i < drop; i++ {
		pos += strings.IndexByte(s[pos:], '\n') + 1
	}
	return marker(drop) + "\n" + s[pos:]
}

// marker returns "[... 1 earlier line]" or "[... 12 earlier lines]".
func marker(n int) string {
	if n == 1 {
		return "[... 1 earlier line]"
	}
	return fmt.Sprintf("[... %d earlier lines]", n)
}

var _ core.Transformer = (*Compactor)(nil)
