// Package render turns parsed elements into terminal output. Text runs go
// through glamour, code blocks through chroma, and tables are drawn
// directly so column alignments survive.
package render

import (
	"fmt"
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/termenv"

	"github.com/samsaffron/streammd/internal/highlight"
	"github.com/samsaffron/streammd/internal/segment"
)

// rendererCache provides width-keyed caching of glamour renderers.
// Creating a renderer is expensive; caching by width avoids recreation.
var rendererCache sync.Map // map[int]*glamour.TermRenderer

func getRenderer(width int) (*glamour.TermRenderer, error) {
	if cached, ok := rendererCache.Load(width); ok {
		return cached.(*glamour.TermRenderer), nil
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	rendererCache.Store(width, renderer)
	return renderer, nil
}

// Renderer formats elements for a terminal of a fixed width.
type Renderer struct {
	width       int
	chromaStyle string
	color       bool

	captionStyle lipgloss.Style
	borderStyle  lipgloss.Style
	pendingStyle lipgloss.Style
}

// New returns a renderer. chromaStyle names the chroma color style used for
// code blocks; unknown names fall back to chroma's default.
func New(width int, chromaStyle string) *Renderer {
	if width <= 0 {
		width = 80
	}
	if styles.Get(chromaStyle) == nil {
		chromaStyle = styles.Fallback.Name
	}
	color := termenv.DefaultOutput().Profile != termenv.Ascii
	return &Renderer{
		width:        width,
		chromaStyle:  chromaStyle,
		color:        color,
		captionStyle: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		borderStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		pendingStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true),
	}
}

// Width returns the configured terminal width.
func (r *Renderer) Width() int { return r.width }

// Element renders one element. Incomplete elements render their current
// content followed by a pending marker.
func (r *Renderer) Element(el segment.Element) string {
	var out string
	switch el.Kind {
	case segment.KindCode:
		out = r.codeBlock(el)
	case segment.KindTable:
		out = r.table(el)
	default:
		out = r.text(el)
	}
	if !el.Complete {
		marker := "…"
		if r.color {
			marker = r.pendingStyle.Render(marker)
		}
		if out != "" {
			out += "\n"
		}
		out += marker
	}
	return out
}

// Document renders all elements separated by blank lines.
func (r *Renderer) Document(els []segment.Element) string {
	parts := make([]string, 0, len(els))
	for _, el := range els {
		if s := r.Element(el); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "\n\n")
}

func (r *Renderer) text(el segment.Element) string {
	if el.Content == "" {
		return ""
	}
	renderer, err := getRenderer(r.width)
	if err != nil {
		return el.Content
	}
	rendered, err := renderer.Render(el.Content)
	if err != nil {
		return el.Content
	}
	return strings.TrimRight(rendered, "\n")
}

// codeBlock renders a caption line naming the language or file, then the
// highlighted body with long lines truncated to the terminal width.
func (r *Renderer) codeBlock(el segment.Element) string {
	caption := el.FilePath
	if caption == "" {
		caption = el.Language
	}
	if caption == "" {
		caption = "code"
	}
	if r.color {
		caption = r.captionStyle.Render(caption)
	}

	body := el.Content
	if r.color {
		body = highlight.New(el.Language, el.FilePath, r.chromaStyle).Highlight(body)
	}

	var b strings.Builder
	b.WriteString(caption)
	for _, line := range strings.Split(body, "\n") {
		b.WriteByte('\n')
		b.WriteString(ansi.Truncate(line, r.width, "…"))
	}
	return b.String()
}

// table draws the table with unicode borders, sizing each column to its
// widest cell and honoring the parsed alignments.
func (r *Renderer) table(el segment.Element) string {
	if len(el.Headers) == 0 {
		return ""
	}
	widths := columnWidths(el)

	var b strings.Builder
	r.writeRow(&b, el.Headers, el.Alignments, widths)
	b.WriteByte('\n')
	r.writeSeparator(&b, widths)
	for _, row := range el.Rows {
		b.WriteByte('\n')
		r.writeRow(&b, row, el.Alignments, widths)
	}
	return b.String()
}

func columnWidths(el segment.Element) []int {
	widths := make([]int, len(el.Headers))
	for i, h := range el.Headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range el.Rows {
		for i, cell := range row {
			if i >= len(widths) {
				break
			}
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}
	return widths
}

func (r *Renderer) writeRow(b *strings.Builder, cells []string, aligns []segment.Alignment, widths []int) {
	for i, w := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		align := segment.AlignLeft
		if i < len(aligns) {
			align = aligns[i]
		}
		if i > 0 {
			b.WriteString(" ")
		}
		border := "│"
		if r.color {
			border = r.borderStyle.Render(border)
		}
		b.WriteString(border)
		b.WriteString(" ")
		b.WriteString(pad(cell, w, align))
	}
}

func (r *Renderer) writeSeparator(b *strings.Builder, widths []int) {
	for i, w := range widths {
		if i > 0 {
			b.WriteString(" ")
		}
		line := "├" + strings.Repeat("─", w+1)
		if r.color {
			line = r.borderStyle.Render(line)
		}
		b.WriteString(line)
	}
}

// pad fits a cell to width using display columns, not bytes.
func pad(cell string, width int, align segment.Alignment) string {
	gap := width - runewidth.StringWidth(cell)
	if gap <= 0 {
		return cell
	}
	switch align {
	case segment.AlignRight:
		return strings.Repeat(" ", gap) + cell
	case segment.AlignCenter:
		left := gap / 2
		return strings.Repeat(" ", left) + cell + strings.Repeat(" ", gap-left)
	}
	return cell + strings.Repeat(" ", gap)
}

// Summary returns a one-line description of an element for logs.
func Summary(el segment.Element) string {
	state := "complete"
	if !el.Complete {
		state = "pending"
	}
	switch el.Kind {
	case segment.KindCode:
		name := el.Language
		if el.FilePath != "" {
			name = el.FilePath
		}
		return fmt.Sprintf("#%d code(%s) %s, %d bytes", el.ID, name, state, len(el.Content))
	case segment.KindTable:
		return fmt.Sprintf("#%d table %s, %d columns, %d rows", el.ID, state, len(el.Headers), len(el.Rows))
	}
	return fmt.Sprintf("#%d text %s, %d bytes", el.ID, state, len(el.Content))
}
