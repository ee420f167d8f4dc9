// Package highlight wraps chroma for terminal syntax highlighting of code
// block bodies.
package highlight

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// Highlighter holds a resolved lexer and style pair.
type Highlighter struct {
	lexer     chroma.Lexer
	style     *chroma.Style
	formatter chroma.Formatter
}

// New creates a highlighter for a code block. The language tag wins when
// set; otherwise the file path is matched by extension. Returns nil when
// neither resolves to a lexer, and a nil receiver passes source through
// unchanged.
func New(language, filePath, styleName string) *Highlighter {
	var lexer chroma.Lexer
	if language != "" {
		lexer = lexers.Get(language)
	}
	if lexer == nil && filePath != "" {
		lexer = lexers.Match(filePath)
	}
	if lexer == nil {
		return nil
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get(styleName)
	if style == nil {
		style = styles.Fallback
	}

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	return &Highlighter{lexer: lexer, style: style, formatter: formatter}
}

// Highlight returns src with ANSI color codes applied. Any tokenizing or
// formatting failure degrades to the unmodified source.
func (h *Highlighter) Highlight(src string) string {
	if h == nil || src == "" {
		return src
	}

	iterator, err := h.lexer.Tokenise(nil, src)
	if err != nil {
		return src
	}

	var buf strings.Builder
	if err := h.formatter.Format(&buf, h.style, iterator); err != nil {
		return src
	}
	return buf.String()
}
