package application

import (
	"bytes"
	"html"
	"regexp"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"
)

var (
	noteRenderer = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Typographer),
		// Notes are typed in a plain textarea, so single newlines are kept.
		goldmark.WithRendererOptions(goldmarkhtml.WithUnsafe(), goldmarkhtml.WithHardWraps()),
	)
	notePolicy = newNotePolicy()
)

// newNotePolicy extends the UGC policy with the disabled checkboxes that GFM
// task lists render to.
func newNotePolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("type").Matching(regexp.MustCompile(`^checkbox$`)).OnElements("input")
	p.AllowAttrs("checked", "disabled").OnElements("input")
	return p
}

// RenderMarkdown converts a note's markdown content to sanitized HTML.
// Returns empty string for empty input.
func RenderMarkdown(src string) string {
	if src == "" {
		return ""
	}

	var buf bytes.Buffer
	if err := noteRenderer.Convert([]byte(src), &buf); err != nil {
		return "<pre>" + html.EscapeString(src) + "</pre>"
	}

	return notePolicy.Sanitize(buf.String())
}
