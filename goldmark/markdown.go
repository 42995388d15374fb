// Package goldmark renders markdown text to ANSI-styled terminal output
// using goldmark for parsing and lipgloss for styling. The inspector uses it
// for assistant message bodies and JSON payloads.
package goldmark

import (
	"strings"

	"github.com/fwojciec/agui"
)

const defaultWidth = 80

// Render parses markdown source and returns ANSI-styled terminal output.
// Paragraphs, headings and list items are word-wrapped to width. Code blocks
// keep their lines as written.
func Render(source string, width int, theme agui.Theme) string {
	if source == "" {
		return ""
	}
	if width <= 0 {
		width = defaultWidth
	}
	return newRenderer(theme, width).render([]byte(source))
}

// RenderCode renders body as a fenced code block labelled lang. Tool call
// arguments and state payloads are shown this way.
func RenderCode(lang, body string, width int, theme agui.Theme) string {
	if body == "" {
		return ""
	}
	fence := "```"
	for strings.Contains(body, fence) {
		fence += "`"
	}
	return Render(fence+lang+"\n"+strings.TrimRight(body, "\n")+"\n"+fence, width, theme)
}
