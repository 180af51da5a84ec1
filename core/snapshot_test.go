package core

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTime = time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC)

func TestNewSnapshotOrdersSources(t *testing.T) {
	s := NewSnapshot(testTime, []Source{
		{Name: "access.log", Content: "ok\n"},
		{Name: "error.log", Content: "boom\n"},
		{Name: "chatbot.log", Content: "hi\n"},
	})

	assert.Equal(t, []string{"error.log", "access.log", "chatbot.log"}, s.Names())
	assert.Equal(t, 3, s.Len())
	assert.Equal(t, testTime, s.TakenAt())
}

func TestNewSnapshotDuplicateNames(t *testing.T) {
	s := NewSnapshot(testTime, []Source{
		{Name: "a.log", Content: "first"},
		{Name: "a.log", Content: "second"},
	})
	require.Equal(t, 1, s.Len())
	content, ok := s.Content("a.log")
	assert.True(t, ok)
	assert.Equal(t, "second", content)
}

func TestSnapshotSourcesIsACopy(t *testing.T) {
	s := NewSnapshot(testTime, []Source{{Name: "a.log", Content: "x"}})
	srcs := s.Sources()
	srcs[0].Content = "changed"

	content, _ := s.Content("a.log")
	assert.Equal(t, "x", content)
}

func TestSnapshotMarshalJSON(t *testing.T) {
	s := NewSnapshot(testTime, []Source{
		{Name: "access.log", Content: "ok\n"},
		{Name: "error.log", Content: "boom\n"},
	})

	data, err := json.Marshal(s)
	require.NoError(t, err)
	assert.Equal(t, `{"error.log":"boom\n","access.log":"ok\n"}`, string(data))
}

func TestSnapshotMarshalEmpty(t *testing.T) {
	data, err := json.Marshal(Empty())
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(data))
}

func TestSnapshotUnmarshalJSON(t *testing.T) {
	var s Snapshot
	err := json.Unmarshal([]byte(`{"access.log":"ok\n","error.log":"boom\n"}`), &s)
	require.NoError(t, err)

	assert.Equal(t, []string{"error.log", "access.log"}, s.Names())
	content, ok := s.Content("error.log")
	require.True(t, ok)
	assert.Equal(t, "boom\n", content)
}

func TestSnapshotUnmarshalRejectsInvalidShapes(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"array", `["a"]`},
		{"null", `null`},
		{"number value", `{"a.log": 1}`},
		{"null value", `{"a.log": null}`},
		{"nested object", `{"a.log": {"x": "y"}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s Snapshot
			assert.Error(t, json.Unmarshal([]byte(tt.input), &s))
		})
	}
}

func TestSnapshotJSONPreservesContentVerbatim(t *testing.T) {
	content := "line 1\n\tindented  spaces \r\n<html> & \"quotes\"\n\n"
	s := NewSnapshot(testTime, []Source{{Name: "x.log", Content: content}})

	data, err := json.Marshal(s)
	require.NoError(t, err)

	var back Snapshot
	require.NoError(t, json.Unmarshal(data, &back))
	got, _ := back.Content("x.log")
	assert.Equal(t, content, got)
}

func TestSnapshotEqual(t *testing.T) {
	a := NewSnapshot(testTime, []Source{{Name: "a.log", Path: "/x/a.log", Content: "1"}})
	b := NewSnapshot(testTime.Add(time.Hour), []Source{{Name: "a.log", Content: "1"}})
	c := NewSnapshot(testTime, []Source{{Name: "a.log", Content: "2"}})
	d := NewSnapshot(testTime, []Source{{Name: "a.log", Content: "1"}, {Name: "b.log"}})

	assert.True(t, a.Equal(b), "time and path ignored")
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(d))
	assert.False(t, a.Equal(nil))
	assert.True(t, Empty().Equal(NewSnapshot(testTime, nil)))
}

func TestSnapshotSameView(t *testing.T) {
	base := NewSnapshot(testTime, []Source{{Name: "a.log", Content: "x"}})

	tests := []struct {
		name string
		a, b *Snapshot
		want bool
	}{
		{"identical", base, base, true},
		{"both nil", nil, nil, true},
		{"one nil", base, nil, false},
		{"content", base, NewSnapshot(testTime, []Source{{Name: "a.log", Content: "y"}}), false},
		{"skipped only", base, base.WithSkipped("b.log"), false},
		{"same skipped", base.WithSkipped("b.log"), base.WithSkipped("b.log"), true},
		{"poll time ignored", base, NewSnapshot(testTime.Add(time.Minute), []Source{{Name: "a.log", Content: "x"}}), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.SameView(tt.b))
		})
	}
}

func TestSnapshotMapReturnsNewValue(t *testing.T) {
	s := NewSnapshot(testTime, []Source{{Name: "a.log", Content: "abc"}}).WithSkipped("b.log")

	upper := s.Map(func(src Source) Source {
		src.Content = strings.ToUpper(src.Content)
		return src
	})

	got, _ := upper.Content("a.log")
	assert.Equal(t, "ABC", got)
	orig, _ := s.Content("a.log")
	assert.Equal(t, "abc", orig)
	assert.Equal(t, []string{"b.log"}, upper.Skipped())
	assert.Equal(t, testTime, upper.TakenAt())
}

func TestSnapshotWithSkipped(t *testing.T) {
	s := NewSnapshot(testTime, nil)
	s2 := s.WithSkipped("b.log", "a.log", "b.log")

	assert.Empty(t, s.Skipped())
	assert.Equal(t, []string{"a.log", "b.log"}, s2.Skipped())
}

func TestSnapshotAsMap(t *testing.T) {
	s := NewSnapshot(testTime, []Source{
		{Name: "error.log", Content: "boom\n"},
		{Name: "access.log", Content: "ok\n"},
	})
	assert.Equal(t, map[string]string{"error.log": "boom\n", "access.log": "ok\n"}, s.AsMap())
}

type upperTransformer struct{}

func (upperTransformer) Transform(s *Snapshot) (*Snapshot, error) {
	return s.Map(func(src Source) Source {
		src.Content = strings.ToUpper(src.Content)
		return src
	}), nil
}

type failingTransformer struct{}

func (failingTransformer) Transform(*Snapshot) (*Snapshot, error) {
	return nil, assert.AnError
}

func TestChain(t *testing.T) {
	s := NewSnapshot(testTime, []Source{{Name: "a.log", Content: "x"}})

	out, err := Chain(s, upperTransformer{})
	require.NoError(t, err)
	got, _ := out.Content("a.log")
	assert.Equal(t, "X", got)

	_, err = Chain(s, upperTransformer{}, failingTransformer{})
	assert.ErrorIs(t, err, assert.AnError)

	same, err := Chain(s)
	require.NoError(t, err)
	assert.Same(t, s, same)
}

func TestSnapshotMarshalDoesNotEscapeHTML(t *testing.T) {
	s := NewSnapshot(testTime, []Source{
		{Name: "chatbot.log", Content: "<b>guest</b> & host\n"},
	})

	data, err := s.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `{"chatbot.log":"<b>guest</b> & host\n"}`, string(data))
}
