// Package segment incrementally splits a streamed assistant reply into an
// ordered sequence of structured elements: plain text runs, fenced code
// blocks (including auto-detected mermaid diagrams) and pipe tables. It
// operates on partial, not-yet-terminated constructs while the stream is
// still arriving, never rejects input, and reconstructing state from the
// full delta history yields the same elements as incremental ingestion.
//
// One Accumulator is owned by exactly one logical message stream. All
// operations are synchronous and non-blocking; the package performs no I/O.
package segment

import "strings"

// state tracks which construct, if any, is currently open.
type state int

const (
	stateIdle state = iota
	stateCodeHeader // fence opened, header line not yet terminated
	stateCodeBody   // inside ``` ... ```
	stateTable      // header + separator seen, accumulating rows
	stateMermaid    // diagram keyword matched, accumulating lines
)

// Accumulator is the public entry point of the segmenter. It appends deltas
// to the running total and an unconsumed buffer, and classifies the buffer
// into elements on every ingestion.
type Accumulator struct {
	store  store
	full   strings.Builder
	buf    string
	deltas int
	state  state

	// atLineStart records whether the unconsumed buffer begins at a true
	// line boundary. Table headers and diagram keywords only count when
	// they start a line.
	atLineStart bool

	keywords []string
	notify   func()
}

// Option configures an Accumulator.
type Option func(*Accumulator)

// WithNotify registers a hook invoked after every Ingest and Finish call.
// The owner can use it to schedule a re-render; the segmenter itself stays
// pollable and side-effect free.
func WithNotify(fn func()) Option {
	return func(a *Accumulator) { a.notify = fn }
}

// WithMermaidKeywords extends the set of diagram keywords recognized at
// line start.
func WithMermaidKeywords(extra ...string) Option {
	return func(a *Accumulator) {
		a.keywords = append(a.keywords, extra...)
	}
}

// New returns an empty Accumulator.
func New(opts ...Option) *Accumulator {
	a := &Accumulator{
		state:       stateIdle,
		atLineStart: true,
		keywords:    append([]string(nil), mermaidKeywords...),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Ingest appends one delta to the stream and runs a classification pass.
// It never fails: malformed input degrades to an incomplete trailing
// element rather than an error.
func (a *Accumulator) Ingest(delta string) {
	a.full.WriteString(delta)
	a.buf += delta
	a.deltas++
	a.classify()
	if a.notify != nil {
		a.notify()
	}
}

// CatchUp ingests only the deltas beyond what has already been recorded.
// Calling it repeatedly with a monotonically growing list is safe; a list
// no longer than the recorded count is a no-op, never an error. Two
// accumulators fed the same ordered deltas, whether one-by-one via Ingest
// or all at once via CatchUp, reach identical state.
func (a *Accumulator) CatchUp(deltas []string) {
	if len(deltas) <= a.deltas {
		return
	}
	for _, d := range deltas[a.deltas:] {
		a.Ingest(d)
	}
}

// Finish declares end of stream: the remaining buffer is flushed into the
// trailing element and that element is marked complete. An owner that
// simply stops calling Ingest instead leaves the trailing element
// incomplete forever, which is not an error.
func (a *Accumulator) Finish() {
	switch a.state {
	case stateIdle:
		a.appendText(a.buf)
		a.buf = ""
		a.closeText()
	case stateCodeHeader:
		// The header line never terminated; take what arrived as the
		// header and close the block with an empty body.
		a.applyHeader(strings.TrimSuffix(a.buf, "\r"))
		a.buf = ""
		a.store.last().Complete = true
	case stateCodeBody:
		el := a.store.last()
		el.Content += a.buf
		a.buf = ""
		el.Complete = true
	case stateTable:
		a.finishTable()
		a.buf = ""
	case stateMermaid:
		el := a.store.last()
		el.Content = strings.TrimRight(a.buf, "\r\n")
		a.buf = ""
		el.Complete = true
	}
	a.state = stateIdle
	a.atLineStart = true
	if a.notify != nil {
		a.notify()
	}
}

// FullText returns the concatenation, in order, of every delta ingested so
// far, independent of chunking.
func (a *Accumulator) FullText() string { return a.full.String() }

// DeltaCount returns how many deltas have been ingested.
func (a *Accumulator) DeltaCount() int { return a.deltas }

// Elements returns a snapshot of all elements in creation order. The
// returned slices are copies; mutating them does not affect the segmenter.
func (a *Accumulator) Elements() []Element { return a.store.snapshot() }

// Element returns a snapshot of the element with the given id.
func (a *Accumulator) Element(id int) (Element, bool) {
	el := a.store.at(id)
	if el == nil {
		return Element{}, false
	}
	return el.clone(), true
}

// Len returns the number of elements created so far.
func (a *Accumulator) Len() int { return a.store.len() }
