package goldmark

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/agui"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

type renderer struct {
	width int
	src   []byte
	out   strings.Builder

	bold      lipgloss.Style
	italic    lipgloss.Style
	heading   lipgloss.Style
	muted     lipgloss.Style
	link      lipgloss.Style
	code      lipgloss.Style
	codeLabel lipgloss.Style
}

func newRenderer(theme agui.Theme, width int) *renderer {
	return &renderer{
		width:     width,
		bold:      lipgloss.NewStyle().Bold(true),
		italic:    lipgloss.NewStyle().Italic(true),
		heading:   lipgloss.NewStyle().Foreground(ansiColor(theme.Accent)).Bold(true),
		muted:     lipgloss.NewStyle().Foreground(ansiColor(theme.Muted)).Faint(true),
		link:      lipgloss.NewStyle().Underline(true),
		code:      lipgloss.NewStyle().Background(ansiColor(theme.CodeBg)).Bold(true),
		codeLabel: lipgloss.NewStyle().Foreground(ansiColor(theme.Muted)).Italic(true),
	}
}

func ansiColor(index int) lipgloss.TerminalColor {
	if index < 0 {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(strconv.Itoa(index))
}

func (r *renderer) render(source []byte) string {
	r.src = source
	doc := goldmark.DefaultParser().Parse(text.NewReader(source))
	r.blocks(doc, "")
	return strings.TrimRight(r.out.String(), "\n")
}

// blocks renders the block children of parent, each line prefixed with
// prefix. Sibling blocks are separated by a blank line.
func (r *renderer) blocks(parent ast.Node, prefix string) {
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		r.block(n, prefix)
		if n.NextSibling() != nil {
			r.line(prefix, "")
		}
	}
}

func (r *renderer) block(n ast.Node, prefix string) {
	switch n := n.(type) {
	case *ast.Paragraph, *ast.TextBlock:
		r.wrapped(prefix, r.inline(n))
	case *ast.Heading:
		r.wrapped(prefix, r.heading.Render(r.inline(n)))
	case *ast.FencedCodeBlock:
		if lang := string(n.Language(r.src)); lang != "" {
			r.line(prefix, r.codeLabel.Render(lang))
		}
		r.codeLines(n, prefix)
	case *ast.CodeBlock:
		r.codeLines(n, prefix)
	case *ast.Blockquote:
		r.blocks(n, prefix+r.muted.Render("┃")+" ")
	case *ast.List:
		r.list(n, prefix)
	case *ast.ThematicBreak:
		r.line(prefix, r.muted.Render("---"))
	case *ast.HTMLBlock:
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			r.line(prefix, strings.TrimRight(string(seg.Value(r.src)), "\n"))
		}
	default:
		r.blocks(n, prefix)
	}
}

func (r *renderer) codeLines(n ast.Node, prefix string) {
	gutter := r.muted.Render("│") + " "
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		r.line(prefix, gutter+strings.TrimRight(string(seg.Value(r.src)), "\n"))
	}
}

func (r *renderer) list(l *ast.List, prefix string) {
	num := l.Start
	for item := l.FirstChild(); item != nil; item = item.NextSibling() {
		marker := "- "
		if l.IsOrdered() {
			marker = strconv.Itoa(num) + ". "
			num++
		}
		indent := strings.Repeat(" ", len(marker))
		first := true
		for c := item.FirstChild(); c != nil; c = c.NextSibling() {
			switch c := c.(type) {
			case *ast.Paragraph, *ast.TextBlock:
				lead := indent
				if first {
					lead = marker
				}
				r.hanging(prefix, lead, indent, r.inline(c))
			case *ast.List:
				if first {
					r.line(prefix, marker)
				}
				r.list(c, prefix+indent)
			default:
				r.block(c, prefix+indent)
			}
			first = false
		}
	}
}

// hanging writes content wrapped with lead on the first line and indent on
// the rest.
func (r *renderer) hanging(prefix, lead, indent, content string) {
	w := r.width - lipgloss.Width(prefix) - len(lead)
	if w < 10 {
		w = 10
	}
	for i, l := range strings.Split(lipgloss.NewStyle().Width(w).Render(content), "\n") {
		if i == 0 {
			r.line(prefix, lead+l)
		} else {
			r.line(prefix, indent+l)
		}
	}
}

func (r *renderer) wrapped(prefix, content string) {
	r.hanging(prefix, "", "", content)
}

func (r *renderer) line(prefix, s string) {
	r.out.WriteString(strings.TrimRight(prefix+s, " "))
	r.out.WriteByte('\n')
}

func (r *renderer) inline(n ast.Node) string {
	var b strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		r.span(c, &b)
	}
	return b.String()
}

func (r *renderer) span(n ast.Node, b *strings.Builder) {
	switch n := n.(type) {
	case *ast.Text:
		b.Write(n.Segment.Value(r.src))
		switch {
		case n.HardLineBreak():
			b.WriteByte('\n')
		case n.SoftLineBreak():
			b.WriteByte(' ')
		}
	case *ast.String:
		b.Write(n.Value)
	case *ast.Emphasis:
		if n.Level == 1 {
			b.WriteString(r.italic.Render(r.inline(n)))
		} else {
			b.WriteString(r.bold.Render(r.inline(n)))
		}
	case *ast.CodeSpan:
		b.WriteString(r.code.Render(r.inline(n)))
	case *ast.Link:
		b.WriteString(r.link.Render(r.inline(n)))
		b.WriteString(" " + r.muted.Render("("+string(n.Destination)+")"))
	case *ast.Image:
		b.WriteString(r.link.Render(r.inline(n)))
		b.WriteString(" " + r.muted.Render("("+string(n.Destination)+")"))
	case *ast.AutoLink:
		b.WriteString(r.link.Render(string(n.URL(r.src))))
	case *ast.RawHTML:
		for i := 0; i < n.Segments.Len(); i++ {
			seg := n.Segments.At(i)
			b.Write(seg.Value(r.src))
		}
	default:
		b.WriteString(r.inline(n))
	}
}
