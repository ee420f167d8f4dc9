package segment

import "strings"

// findTableStart returns the byte position of the earliest table header: a
// line splitting into at least two cells, at a true line start, whose
// immediately following line has completed and is a separator row.
func (a *Accumulator) findTableStart(spans []lineSpan) int {
	for i, sp := range spans {
		if i == 0 && !a.atLineStart {
			continue
		}
		if !sp.complete || !isHeaderCandidate(a.lineText(sp)) {
			continue
		}
		if i+1 >= len(spans) {
			return -1 // separator line not started yet
		}
		next := spans[i+1]
		if next.complete && isSeparatorLine(a.lineText(next)) {
			return sp.start
		}
	}
	return -1
}

// openTable creates the table element from the buffered header and
// separator rows. The raw block stays in the buffer while the table is open
// so each pass can re-derive the rows from its own start.
func (a *Accumulator) openTable() {
	el := a.store.add(KindTable)
	spans := lineSpans(a.buf)
	el.Headers = splitRow(a.lineText(spans[0]))
	el.Alignments = parseAlignments(a.lineText(spans[1]), len(el.Headers))
	a.state = stateTable
}

// continueTable re-parses the buffered table block. A completed line
// splitting into at least two cells joins as a data row; a blank line after
// at least one data row, or any other line, terminates the table, and the
// remaining buffer is handed back to the classifier.
func (a *Accumulator) continueTable() bool {
	el := a.store.last()
	spans := lineSpans(a.buf)
	var rows [][]string
	for i := 2; i < len(spans); i++ {
		sp := spans[i]
		if !sp.complete {
			break // wait for the line to terminate
		}
		text := a.lineText(sp)
		if strings.TrimSpace(text) == "" {
			if len(rows) == 0 {
				continue // blank before any data row stays inside
			}
			// Trailing blank closes the table and is consumed with it.
			el.Rows = rows
			el.Complete = true
			a.buf = a.buf[sp.end+1:]
			a.state = stateIdle
			a.atLineStart = true
			return true
		}
		if cells := splitRow(text); len(cells) >= 2 {
			rows = append(rows, cells)
			continue
		}
		// A line without table cells ends the table and is reclassified.
		el.Rows = rows
		el.Complete = true
		a.buf = a.buf[sp.start:]
		a.state = stateIdle
		a.atLineStart = true
		return true
	}
	el.Rows = rows
	return false
}

// finishTable resolves an open table at end of stream, accepting the final
// line even without its newline.
func (a *Accumulator) finishTable() {
	el := a.store.last()
	spans := lineSpans(a.buf)
	var rows [][]string
	for i := 2; i < len(spans); i++ {
		text := a.lineText(spans[i])
		if strings.TrimSpace(text) == "" {
			continue
		}
		if cells := splitRow(text); len(cells) >= 2 {
			rows = append(rows, cells)
		}
	}
	el.Rows = rows
	el.Complete = true
}

// isHeaderCandidate reports whether a line could head a table.
func isHeaderCandidate(line string) bool {
	return strings.Contains(line, "|") && len(splitRow(line)) >= 2
}

// isSeparatorLine reports whether a line is the header/body separator row.
func isSeparatorLine(line string) bool {
	return strings.Contains(line, "|") && strings.Contains(line, "-")
}

// couldBeSeparatorPrefix reports whether a still-growing line could yet
// complete as a separator row.
func couldBeSeparatorPrefix(partial string) bool {
	for _, r := range partial {
		switch r {
		case '|', '-', ':', ' ', '\t', '\r':
		default:
			return false
		}
	}
	return true
}

// splitRow splits a table line on pipes, trimming each cell and dropping
// the empty edge cells produced by leading or trailing pipes.
func splitRow(line string) []string {
	parts := strings.Split(line, "|")
	if len(parts) > 0 && strings.TrimSpace(parts[0]) == "" {
		parts = parts[1:]
	}
	if len(parts) > 0 && strings.TrimSpace(parts[len(parts)-1]) == "" {
		parts = parts[:len(parts)-1]
	}
	cells := make([]string, len(parts))
	for i, p := range parts {
		cells[i] = strings.TrimSpace(p)
	}
	return cells
}

// parseAlignments derives one alignment per header column from colon
// placement in the separator row, defaulting to left.
func parseAlignments(line string, columns int) []Alignment {
	cells := splitRow(line)
	out := make([]Alignment, columns)
	for i := range out {
		if i >= len(cells) {
			break
		}
		left := strings.HasPrefix(cells[i], ":")
		right := strings.HasSuffix(cells[i], ":")
		switch {
		case left && right:
			out[i] = AlignCenter
		case right:
			out[i] = AlignRight
		}
	}
	return out
}
