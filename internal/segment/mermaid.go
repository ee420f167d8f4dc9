package segment

import "strings"

const mermaidLanguage = "mermaid"

// mermaidKeywords are the diagram-type declarations recognized at line
// start. A match turns the line and the lines after it into a code block
// tagged "mermaid" without requiring an explicit fence.
var mermaidKeywords = []string{
	"graph", "flowchart", "sequenceDiagram", "classDiagram", "stateDiagram",
	"stateDiagram-v2", "erDiagram", "journey", "gantt", "pie", "mindmap",
	"timeline", "quadrantChart", "requirementDiagram", "gitGraph",
	"sankey-beta", "xychart-beta", "block-beta", "packet-beta", "zenuml",
	"C4Context",
}

// keywordMatch reports whether a line starts with a diagram keyword. A
// still-growing line only matches once the keyword's trailing boundary has
// been observed, so "graph" is not confused with a word like "graphics".
func keywordMatch(keywords []string, line string, complete bool) bool {
	for _, kw := range keywords {
		if complete && line == kw {
			return true
		}
		if strings.HasPrefix(line, kw+" ") || strings.HasPrefix(line, kw+"\t") {
			return true
		}
	}
	return false
}

// keywordPossible reports whether a still-growing line could yet turn into
// a keyword match, in which case it must stay buffered.
func keywordPossible(keywords []string, partial string) bool {
	for _, kw := range keywords {
		if len(partial) <= len(kw) && strings.HasPrefix(kw, partial) {
			return true
		}
	}
	return false
}

// findMermaidStart returns the byte position of the earliest line matching
// a diagram keyword, or -1.
func (a *Accumulator) findMermaidStart(spans []lineSpan) int {
	for i, sp := range spans {
		if i == 0 && !a.atLineStart {
			continue
		}
		if keywordMatch(a.keywords, a.lineText(sp), sp.complete) {
			return sp.start
		}
	}
	return -1
}

// continueMermaid accumulates diagram lines. The block terminates at the
// first completed blank line after the keyword line; the blank is consumed
// with the block. Until then the content tracks the buffered lines and the
// element stays incomplete.
func (a *Accumulator) continueMermaid() bool {
	el := a.store.last()
	spans := lineSpans(a.buf)
	for i, sp := range spans {
		if i == 0 || !sp.complete {
			continue
		}
		if strings.TrimSpace(a.lineText(sp)) != "" {
			continue
		}
		el.Content = strings.TrimRight(a.buf[:sp.start], "\r\n")
		el.Complete = true
		a.buf = a.buf[sp.end+1:]
		a.state = stateIdle
		a.atLineStart = true
		return true
	}
	el.Content = strings.TrimRight(a.buf, "\r\n")
	return false
}
