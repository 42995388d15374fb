package bubbletea

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/agui"
	"github.com/fwojciec/agui/goldmark"
)

var _ MessageBlock = (*TextMessageBlock)(nil)

// TextMessageBlock renders a streamed text message with markdown formatting.
// Finalized paragraphs (separated by double newline) are rendered once and
// cached; only the trailing unfinalized text is re-rendered on each delta.
type TextMessageBlock struct {
	id      string
	role    agui.Role
	content strings.Builder
	theme   agui.Theme
	styles  Styles

	// finalizedRaw is the stable prefix ending at the last double newline.
	// It's rendered once per width and cached in finalizedByWidth.
	finalizedRaw     string
	finalizedByWidth map[int]string
}

// NewTextMessageBlock creates a block for the message id sent with role.
func NewTextMessageBlock(id string, role agui.Role, theme agui.Theme, styles Styles) *TextMessageBlock {
	return &TextMessageBlock{
		id:               id,
		role:             role,
		theme:            theme,
		styles:           styles,
		finalizedByWidth: make(map[int]string),
	}
}

// ID returns the message ID.
func (b *TextMessageBlock) ID() string { return b.id }

// Content returns the text received so far.
func (b *TextMessageBlock) Content() string { return b.content.String() }

// Append adds a content delta.
func (b *TextMessageBlock) Append(text string) {
	b.content.WriteString(text)
	b.promoteFinalized()
}

func (b *TextMessageBlock) Update(msg tea.Msg) (MessageBlock, tea.Cmd) {
	return b, nil
}

func (b *TextMessageBlock) View(width int) string {
	body := b.body(width)
	switch b.role {
	case agui.RoleAssistant, "":
		return body
	case agui.RoleUser:
		return b.styles.Role.Render("> ") + strings.TrimLeft(body, "\n")
	default:
		label := b.styles.Role.Render(string(b.role) + ":")
		if body == "" {
			return label
		}
		return label + "\n" + body
	}
}

func (b *TextMessageBlock) body(width int) string {
	finalized := b.renderFinalized(width)
	trailing := b.trailingRaw()
	if hasUnclosedFence(trailing) {
		// Close the fence for rendering only so partial code displays.
		trailing += "\n```"
	}
	if strings.TrimSpace(trailing) == "" {
		return finalized
	}
	rendered := goldmark.Render(trailing, width, b.theme)
	if strings.TrimSpace(rendered) == "" {
		return finalized
	}
	if finalized == "" {
		return rendered
	}
	return strings.TrimRight(finalized, "\n") + "\n\n" + strings.TrimLeft(rendered, "\n")
}

// promoteFinalized moves the finalized boundary to the last "\n\n" that does
// not fall inside an unclosed fenced code block.
func (b *TextMessageBlock) promoteFinalized() {
	raw := b.content.String()
	for end := len(raw); ; {
		idx := strings.LastIndex(raw[:end], "\n\n")
		if idx <= 0 {
			return
		}
		candidate := raw[:idx]
		if !hasUnclosedFence(candidate) {
			if candidate != b.finalizedRaw {
				b.finalizedRaw = candidate
				clear(b.finalizedByWidth)
			}
			return
		}
		end = idx
	}
}

func (b *TextMessageBlock) renderFinalized(width int) string {
	if width <= 0 || b.finalizedRaw == "" {
		return ""
	}
	if cached, ok := b.finalizedByWidth[width]; ok {
		return cached
	}
	rendered := goldmark.Render(b.finalizedRaw, width, b.theme)
	b.finalizedByWidth[width] = rendered
	return rendered
}

func (b *TextMessageBlock) trailingRaw() string {
	raw := b.content.String()
	if b.finalizedRaw == "" {
		return raw
	}
	return strings.TrimPrefix(raw, b.finalizedRaw+"\n\n")
}

// hasUnclosedFence reports whether s has an odd number of "```" markers.
// Triple backticks inside inline code spans are miscounted.
func hasUnclosedFence(s string) bool {
	return strings.Count(s, "```")%2 == 1
}
