package segment

import (
	"strings"
	"unicode"
)

// classify drives one ingestion pass. Detection priority while idle is
// mermaid, then table, then fence scan; inside an open code block only the
// fence scan runs (fence bodies are opaque to the other detectors), and an
// open table or diagram continues accumulating. The loop keeps going as
// long as a construct opens or closes, so text trailing a terminated block
// is reclassified within the same pass.
func (a *Accumulator) classify() {
	for a.buf != "" {
		var progress bool
		switch a.state {
		case stateCodeHeader:
			progress = a.scanHeader()
		case stateCodeBody:
			progress = a.scanBody()
		case stateTable:
			progress = a.continueTable()
		case stateMermaid:
			progress = a.continueMermaid()
		default:
			progress = a.scanIdle()
		}
		if !progress {
			return
		}
	}
}

// scanIdle looks for the earliest construct start in the unconsumed buffer.
// The earliest text position always wins so element order is preserved;
// mermaid outranks table outranks fence when candidates share a position.
// With no construct in sight it moves watermark-safe text into the trailing
// text element.
func (a *Accumulator) scanIdle() bool {
	spans := lineSpans(a.buf)

	const (
		startFence = iota
		startTable
		startMermaid
	)
	fencePos, hold := scanFenceRun(a.buf)
	pos, start := fencePos, startFence
	if p := a.findTableStart(spans); p >= 0 && (pos < 0 || p <= pos) {
		pos, start = p, startTable
	}
	if p := a.findMermaidStart(spans); p >= 0 && (pos < 0 || p <= pos) {
		pos, start = p, startMermaid
	}

	if pos >= 0 {
		a.flushText(a.buf[:pos])
		a.buf = a.buf[pos:]
		switch start {
		case startMermaid:
			el := a.store.add(KindCode)
			el.Language = mermaidLanguage
			a.state = stateMermaid
		case startTable:
			a.openTable()
		default:
			a.store.add(KindCode)
			a.buf = a.buf[3:] // the opening run
			a.state = stateCodeHeader
			a.atLineStart = false
		}
		return true
	}

	a.consumeText(spans, hold)
	return false
}

// consumeText moves the safely consumable prefix of the buffer into the
// trailing text element. A position is safe once a later non-whitespace
// character has been observed, it is not part of a trailing backtick run or
// dangling escape, and it is not held back by a line that may still become
// a table or diagram.
func (a *Accumulator) consumeText(spans []lineSpan, hold int) {
	end := hold
	if c := lastSafeIndex(a.buf); c < end {
		end = c
	}
	if c := a.lineHold(spans); c < end {
		end = c
	}
	if end <= 0 {
		return
	}
	a.appendText(a.buf[:end])
	a.atLineStart = a.buf[end-1] == '\n'
	a.buf = a.buf[end:]
}

// lineHold returns the earliest byte position that must stay buffered
// because a line could still turn into a table or diagram once more input
// arrives.
func (a *Accumulator) lineHold(spans []lineSpan) int {
	hold := len(a.buf)
	for i, sp := range spans {
		atStart := i > 0 || a.atLineStart
		if !atStart {
			continue
		}
		text := a.lineText(sp)
		if !sp.complete {
			// The final partial line: keep it while it could still be a
			// table row/header or grow into a diagram keyword.
			if strings.Contains(text, "|") || keywordPossible(a.keywords, text) {
				hold = min(hold, sp.start)
			}
			continue
		}
		if !isHeaderCandidate(text) {
			continue
		}
		// A completed header candidate stays buffered until the next line
		// settles whether it is the separator row.
		if i+1 >= len(spans) {
			hold = min(hold, sp.start)
		} else if next := spans[i+1]; !next.complete && couldBeSeparatorPrefix(a.lineText(next)) {
			hold = min(hold, sp.start)
		}
	}
	return hold
}

// lastSafeIndex returns the byte index of the last non-whitespace rune.
// Characters strictly before it have a later non-whitespace observation and
// are consumable; trailing whitespace and the final non-whitespace rune
// stay buffered so a construct starting right after them is not missed.
func lastSafeIndex(s string) int {
	last := -1
	for i, r := range s {
		if !unicode.IsSpace(r) {
			last = i
		}
	}
	if last < 0 {
		return 0
	}
	return last
}

// appendText adds consumed text to the trailing text element, creating one
// on the first non-whitespace content. Leading whitespace ahead of a new
// element is dropped.
func (a *Accumulator) appendText(s string) {
	if s == "" {
		return
	}
	el := a.store.last()
	if el == nil || el.Kind != KindText || el.Complete {
		trimmed := strings.TrimLeft(s, " \t\r\n")
		if trimmed == "" {
			return
		}
		el = a.store.add(KindText)
		el.Content = trimmed
		return
	}
	el.Content += s
}

// flushText consumes s as text and completes the trailing text element.
// Called when a construct start has been recognized after it.
func (a *Accumulator) flushText(s string) {
	a.appendText(s)
	a.closeText()
}

// closeText finalizes the trailing text element, trimming both ends.
func (a *Accumulator) closeText() {
	el := a.store.last()
	if el == nil || el.Kind != KindText || el.Complete {
		return
	}
	el.Content = strings.TrimSpace(el.Content)
	el.Complete = true
}

// lineSpan is one line of the unconsumed buffer. end excludes the newline;
// complete reports whether the terminating newline has arrived.
type lineSpan struct {
	start, end int
	complete   bool
}

// lineSpans splits the buffer into line spans. A trailing run of bytes with
// no newline yet forms a final incomplete span; a buffer ending in a
// newline produces no empty trailing span.
func lineSpans(s string) []lineSpan {
	var spans []lineSpan
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			spans = append(spans, lineSpan{start: start, end: i, complete: true})
			start = i + 1
		}
	}
	if start < len(s) {
		spans = append(spans, lineSpan{start: start, end: len(s)})
	}
	return spans
}

// lineText returns a span's text with any trailing carriage return removed.
func (a *Accumulator) lineText(sp lineSpan) string {
	return strings.TrimSuffix(a.buf[sp.start:sp.end], "\r")
}
