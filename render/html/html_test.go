package html

import (
	"bytes"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/sonnes/logboard/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTestSnapshot() *core.Snapshot {
	taken := time.Date(2026, 3, 4, 12, 0, 5, 0, time.UTC)
	return core.NewSnapshot(taken, []core.Source{
		{Name: "chatbot.log", Content: "Q: do you have vegan options?\nA: yes, the <b>falafel</b> plate\n"},
		{Name: "error.log", Content: "boom\n"},
		{Name: "access.log", Content: "GET /menu 200\n"},
	})
}

func render(t *testing.T, r *Renderer, s *core.Snapshot) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, s))
	return buf.String()
}

func TestRenderFullPage(t *testing.T) {
	html := render(t, New(), buildTestSnapshot())

	t.Run("page structure", func(t *testing.T) {
		assert.Contains(t, html, "<!DOCTYPE html>")
		assert.Contains(t, html, "<html lang=\"en\">")
		assert.Contains(t, html, "</html>")
	})

	t.Run("tailwind CDN", func(t *testing.T) {
		assert.Contains(t, html, "@tailwindcss/browser@4")
	})

	t.Run("inter font", func(t *testing.T) {
		assert.Contains(t, html, "fonts.googleapis.com")
		assert.Contains(t, html, "Inter")
	})

	t.Run("title", func(t *testing.T) {
		assert.Contains(t, html, "<title>logboard</title>")
	})

	t.Run("poll time", func(t *testing.T) {
		assert.Contains(t, html, "Mar 4, 2026 12:00:05 UTC")
	})

	t.Run("static export has no script", func(t *testing.T) {
		assert.NotContains(t, html, "<script>")
		assert.NotContains(t, html, "setInterval")
	})
}

func TestRenderDisplayOrder(t *testing.T) {
	html := render(t, New(), buildTestSnapshot())

	errPos := strings.Index(html, `data-name="error.log"`)
	accessPos := strings.Index(html, `data-name="access.log"`)
	chatPos := strings.Index(html, `data-name="chatbot.log"`)

	require.NotEqual(t, -1, errPos)
	require.NotEqual(t, -1, accessPos)
	require.NotEqual(t, -1, chatPos)
	assert.Less(t, errPos, accessPos)
	assert.Less(t, accessPos, chatPos)
}

func TestRenderOneSectionPerSource(t *testing.T) {
	html := render(t, New(), buildTestSnapshot())
	assert.Equal(t, 3, strings.Count(html, "<section "))
	assert.Contains(t, html, `id="log-0"`)
	assert.Contains(t, html, `id="log-2"`)
}

func TestRenderEscapesContent(t *testing.T) {
	s := core.NewSnapshot(time.Now(), []core.Source{
		{Name: "x.log", Content: "<script>alert(1)</script>\n"},
	})
	html := render(t, New(), s)

	assert.NotContains(t, html, "<script>alert(1)</script>")
	assert.Contains(t, html, "alert(1)")
	assert.Contains(t, html, "&lt;")
}

func TestRenderPriorityHeading(t *testing.T) {
	html := render(t, New(), buildTestSnapshot())
	assert.Contains(t, html, "text-red-600")

	s := core.NewSnapshot(time.Now(), []core.Source{{Name: "access.log", Content: "ok\n"}})
	assert.NotContains(t, render(t, New(), s), "text-red-600")
}

func TestRenderSourceStats(t *testing.T) {
	html := render(t, New(), buildTestSnapshot())
	assert.Contains(t, html, "2 lines")
	assert.Contains(t, html, "1 line ")
	assert.Contains(t, html, "5 B")
}

func TestRenderEmptySnapshot(t *testing.T) {
	html := render(t, New(), core.Empty())
	assert.NotContains(t, html, "<section ")
	assert.Contains(t, html, `id="logs"`)
}

func TestRenderSkipped(t *testing.T) {
	s := buildTestSnapshot().WithSkipped("locked.log", "secret.log")
	html := render(t, New(), s)
	assert.Contains(t, html, "locked.log, secret.log")

	clean := render(t, New(), buildTestSnapshot())
	assert.Regexp(t, `id="skipped" class="[^"]* hidden"`, clean)
}

func TestRenderLive(t *testing.T) {
	r := New()
	r.Live = true
	html := render(t, r, buildTestSnapshot())

	t.Run("script embedded", func(t *testing.T) {
		assert.Contains(t, html, "<script>")
		assert.Contains(t, html, "setInterval(refresh, intervalMs)")
	})

	t.Run("default interval", func(t *testing.T) {
		assert.Regexp(t, regexp.MustCompile(`const intervalMs = \s*5000\s*;`), html)
	})

	t.Run("overlap guard", func(t *testing.T) {
		assert.Contains(t, html, "if (fetching)")
		assert.Contains(t, html, "fetching = false")
	})

	t.Run("failures go to the console", func(t *testing.T) {
		assert.Contains(t, html, "console.error")
	})

	t.Run("live badge", func(t *testing.T) {
		assert.Contains(t, html, ">live</span>")
	})

	t.Run("still server renders the snapshot", func(t *testing.T) {
		assert.Contains(t, html, `data-name="error.log"`)
	})

	t.Run("skipped header is decoded", func(t *testing.T) {
		assert.Contains(t, html, `resp.headers.get("X-Logboard-Skipped")`)
		assert.Contains(t, html, "decodeURIComponent(part)")
	})

	t.Run("stream messages carry skipped names", func(t *testing.T) {
		assert.Contains(t, html, "show(msg.logs, Array.isArray(msg.skipped)")
	})
}

func TestRenderLiveCustomInterval(t *testing.T) {
	r := New()
	r.Live = true
	r.Interval = 1500 * time.Millisecond
	html := render(t, r, core.Empty())
	assert.Regexp(t, regexp.MustCompile(`const intervalMs = \s*1500\s*;`), html)
}
