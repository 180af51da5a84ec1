package html

import (
	"bytes"
	"html/template"
	"strings"

	"github.com/sonnes/logboard/core"
	"github.com/yuin/goldmark"
)

// preClass matches the blocks built by the live page script.
const preClass = "px-4 py-3 text-xs font-mono whitespace-pre overflow-x-auto bg-[#282a36] text-[#f8f8f2]"

// crEscaper writes carriage returns as character references. HTML parsers
// fold raw CR and CRLF into LF; references are left alone.
var crEscaper = strings.NewReplacer("\r", "&#13;")

// renderSource renders one log's content verbatim inside a <pre>. The
// newline after the opening tag is dropped by HTML parsers, so content that
// starts with a newline keeps it.
func renderSource(src core.Source) template.HTML {
	return template.HTML(`<pre class="` + preClass + `">` + "\n" +
		crEscaper.Replace(template.HTMLEscapeString(src.Content)) + `</pre>`)
}

// renderNotes renders operator notes as markdown. Raw HTML in notes is
// omitted.
func renderNotes(md goldmark.Markdown, notes string) template.HTML {
	if strings.TrimSpace(notes) == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := md.Convert([]byte(notes), &buf); err != nil {
		return template.HTML(`<p>` + template.HTMLEscapeString(notes) + `</p>`)
	}
	return template.HTML(buf.String())
}
