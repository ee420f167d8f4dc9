package segment

import "strings"

// scanFenceRun scans the buffer for a backtick run reaching length three,
// tracking escape state: an unescaped backslash makes the next character
// literal, and the run counter resets on any other character, escaped
// backticks included.
//
// It returns the byte index of the run's first backtick, or -1 when no
// fence boundary is present, plus the index from which the trailing
// ambiguous suffix begins: an unfinished backtick run or a dangling escape
// must stay buffered so a fence straddling a delta boundary still closes.
func scanFenceRun(s string) (fence, hold int) {
	escaping := false
	run := 0
	runStart := 0
	for i, r := range s {
		if escaping {
			escaping = false
			run = 0
			continue
		}
		switch r {
		case '\\':
			escaping = true
			run = 0
		case '`':
			if run == 0 {
				runStart = i
			}
			run++
			if run == 3 {
				return runStart, len(s)
			}
		default:
			run = 0
		}
	}
	hold = len(s)
	if run > 0 {
		hold = runStart
	} else if escaping {
		hold = len(s) - 1
	}
	return -1, hold
}

// scanHeader waits for the fence header line to terminate, then hands it to
// the header parser and discards it from the buffer.
func (a *Accumulator) scanHeader() bool {
	nl := strings.IndexByte(a.buf, '\n')
	if nl < 0 {
		return false
	}
	a.applyHeader(strings.TrimSuffix(a.buf[:nl], "\r"))
	a.buf = a.buf[nl+1:]
	a.state = stateCodeBody
	a.atLineStart = true
	return true
}

// scanBody accumulates fence body text until the closing run. Table and
// diagram detection are suppressed here; the body is opaque. On close the
// fence marker and the newline that precedes it are stripped from the
// accumulated content.
func (a *Accumulator) scanBody() bool {
	el := a.store.last()
	fence, hold := scanFenceRun(a.buf)
	if fence >= 0 {
		content := el.Content + a.buf[:fence]
		content = strings.TrimSuffix(content, "\n")
		content = strings.TrimSuffix(content, "\r")
		el.Content = content
		el.Complete = true
		a.buf = a.buf[fence+3:]
		a.state = stateIdle
		a.atLineStart = false
		return true
	}
	if hold > 0 {
		el.Content += a.buf[:hold]
		a.buf = a.buf[hold:]
	}
	return false
}
