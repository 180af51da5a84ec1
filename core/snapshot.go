// Package core defines the snapshot model shared by every reader, renderer
// and viewer: the set of log sources present at one poll instant and the
// order in which they are displayed.
package core

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"time"
)

// Source is one log file captured in a snapshot.
type Source struct {
	Name    string `json:"name"`           // base name, unique within a snapshot
	Path    string `json:"path,omitempty"` // location on disk; empty for remote snapshots
	Content string `json:"content"`
}

// Snapshot is the full content of all readable log sources at one poll
// instant. A Snapshot is never modified after construction; transformers and
// viewers replace it wholesale.
type Snapshot struct {
	takenAt time.Time
	sources []Source // always in DisplayOrder
	skipped []string
}

// NewSnapshot builds a Snapshot from sources, arranging them in DisplayOrder.
// Later duplicates of a name replace earlier ones.
func NewSnapshot(takenAt time.Time, sources []Source) *Snapshot {
	byName := make(map[string]int, len(sources))
	out := make([]Source, 0, len(sources))
	for _, src := range sources {
		if i, ok := byName[src.Name]; ok {
			out[i] = src
			continue
		}
		byName[src.Name] = len(out)
		out = append(out, src)
	}
	slices.SortFunc(out, func(a, b Source) int { return CompareNames(a.Name, b.Name) })
	return &Snapshot{takenAt: takenAt, sources: out}
}

// Empty returns a snapshot with no sources.
func Empty() *Snapshot {
	return &Snapshot{}
}

// WithSkipped returns a copy of s that records names of sources which were
// recognized but could not be read.
func (s *Snapshot) WithSkipped(names ...string) *Snapshot {
	skipped := append(slices.Clone(s.skipped), names...)
	slices.Sort(skipped)
	return &Snapshot{takenAt: s.takenAt, sources: s.sources, skipped: slices.Compact(skipped)}
}

// TakenAt returns the poll time.
func (s *Snapshot) TakenAt() time.Time { return s.takenAt }

// Len returns the number of sources.
func (s *Snapshot) Len() int { return len(s.sources) }

// Sources returns a copy of the sources in DisplayOrder.
func (s *Snapshot) Sources() []Source { return slices.Clone(s.sources) }

// Skipped returns the names omitted because they could not be read.
func (s *Snapshot) Skipped() []string { return slices.Clone(s.skipped) }

// Names returns the source names in DisplayOrder.
func (s *Snapshot) Names() []string {
	names := make([]string, len(s.sources))
	for i, src := range s.sources {
		names[i] = src.Name
	}
	return names
}

// Content returns the content of the named source.
func (s *Snapshot) Content(name string) (string, bool) {
	for _, src := range s.sources {
		if src.Name == name {
			return src.Content, true
		}
	}
	return "", false
}

// Map returns a new snapshot whose sources are fn applied to each source of s.
// The poll time and skipped names carry over.
func (s *Snapshot) Map(fn func(Source) Source) *Snapshot {
	out := make([]Source, len(s.sources))
	for i, src := range s.sources {
		out[i] = fn(src)
	}
	next := NewSnapshot(s.takenAt, out)
	next.skipped = s.skipped
	return next
}

// Equal reports whether s and other hold the same names and contents.
// Poll time, paths and skipped names are ignored.
func (s *Snapshot) Equal(other *Snapshot) bool {
	if s == nil || other == nil {
		return s == other
	}
	if len(s.sources) != len(other.sources) {
		return false
	}
	for i := range s.sources {
		if s.sources[i].Name != other.sources[i].Name || s.sources[i].Content != other.sources[i].Content {
			return false
		}
	}
	return true
}

// SameView reports whether s and other would display identically: Equal,
// and the same skipped names.
func (s *Snapshot) SameView(other *Snapshot) bool {
	if !s.Equal(other) {
		return false
	}
	return s == nil || slices.Equal(s.skipped, other.skipped)
}

// AsMap returns the snapshot as a plain name to content map.
func (s *Snapshot) AsMap() map[string]string {
	m := make(map[string]string, len(s.sources))
	for _, src := range s.sources {
		m[src.Name] = src.Content
	}
	return m
}

// MarshalJSON encodes the snapshot as a flat object of name to content with
// keys in DisplayOrder. HTML characters are not escaped.
func (s *Snapshot) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	buf.WriteByte('{')
	for i, src := range s.sources {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := enc.Encode(src.Name); err != nil {
			return nil, err
		}
		trimNewline(&buf)
		buf.WriteByte(':')
		if err := enc.Encode(src.Content); err != nil {
			return nil, err
		}
		trimNewline(&buf)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// trimNewline drops the newline json.Encoder appends after each value.
func trimNewline(buf *bytes.Buffer) {
	buf.Truncate(buf.Len() - 1)
}

// UnmarshalJSON decodes a flat object of name to content. Every value must be
// a string.
func (s *Snapshot) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		return fmt.Errorf("snapshot: expected a JSON object")
	}
	sources := make([]Source, 0, len(raw))
	for name, v := range raw {
		var content string
		if bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
			return fmt.Errorf("snapshot: value for %q is not a string", name)
		}
		if err := json.Unmarshal(v, &content); err != nil {
			return fmt.Errorf("snapshot: value for %q is not a string", name)
		}
		sources = append(sources, Source{Name: name, Content: content})
	}
	*s = *NewSnapshot(time.Now(), sources)
	return nil
}
