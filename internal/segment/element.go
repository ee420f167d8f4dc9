package segment

// Kind identifies the variant of a parsed element.
type Kind int

const (
	KindText Kind = iota
	KindCode
	KindTable
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindCode:
		return "code"
	case KindTable:
		return "table"
	}
	return "unknown"
}

// Alignment is a table column alignment derived from the separator row.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

func (a Alignment) String() string {
	switch a {
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	}
	return "left"
}

// Element is one parsed segment of a streamed reply: a text run, a code
// block, or a pipe table. IDs equal creation order starting at zero. While
// Complete is false the element may still grow on subsequent ingestions;
// once true it never changes again.
type Element struct {
	ID       int
	Kind     Kind
	Complete bool

	// Content holds text for KindText and the fence body (markers
	// stripped) for KindCode. While a text element is incomplete only its
	// leading whitespace is trimmed; completion trims both ends.
	Content string

	// Code block attributes parsed from the fence header line. FilePath is
	// kept raw; resolving it against a project root is the owner's job.
	Language string
	FilePath string

	// Table data.
	Headers    []string
	Alignments []Alignment
	Rows       [][]string
}

// clone returns a deep copy safe to hand to readers.
func (e *Element) clone() Element {
	out := *e
	if e.Headers != nil {
		out.Headers = append([]string(nil), e.Headers...)
	}
	if e.Alignments != nil {
		out.Alignments = append([]Alignment(nil), e.Alignments...)
	}
	if e.Rows != nil {
		out.Rows = make([][]string, len(e.Rows))
		for i, row := range e.Rows {
			out.Rows[i] = append([]string(nil), row...)
		}
	}
	return out
}

// store is an append-only, id-addressable collection of elements. Elements
// preserve original text order; only the most recently added one may be
// mutated, and at most one element (necessarily the last) is incomplete at
// any time.
type store struct {
	elements []*Element
}

// add appends a new incomplete element and assigns the next id.
func (s *store) add(kind Kind) *Element {
	el := &Element{ID: len(s.elements), Kind: kind}
	s.elements = append(s.elements, el)
	return el
}

// last returns the most recent element, or nil when empty.
func (s *store) last() *Element {
	if len(s.elements) == 0 {
		return nil
	}
	return s.elements[len(s.elements)-1]
}

func (s *store) at(id int) *Element {
	if id < 0 || id >= len(s.elements) {
		return nil
	}
	return s.elements[id]
}

func (s *store) len() int { return len(s.elements) }

// snapshot returns deep copies of all elements in creation order.
func (s *store) snapshot() []Element {
	out := make([]Element, len(s.elements))
	for i, el := range s.elements {
		out[i] = el.clone()
	}
	return out
}
