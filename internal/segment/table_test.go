package segment

import (
	"math/rand"
	"reflect"
	"testing"
)

func TestTableExtraction(t *testing.T) {
	const input = "a | b\n---|---\n1 | 2\n"
	want := []Element{
		{
			Kind:       KindTable,
			Complete:   true,
			Headers:    []string{"a", "b"},
			Alignments: []Alignment{AlignLeft, AlignLeft},
			Rows:       [][]string{{"1", "2"}},
		},
	}

	for _, deltas := range splitEverywhere(input) {
		a := ingestAll(t, deltas...)
		assertElements(t, a.Elements(), want)
	}

	rng := rand.New(rand.NewSource(17))
	for trial := 0; trial < 100; trial++ {
		a := ingestAll(t, randomChunks(rng, input, 4)...)
		assertElements(t, a.Elements(), want)
	}
}

func TestTableAlignments(t *testing.T) {
	a := ingestAll(t, "x | y | z\n:--|:-:|--:\n1 | 2 | 3\n")
	els := a.Elements()
	if len(els) != 1 {
		t.Fatalf("expected one table, got %#v", els)
	}
	want := []Alignment{AlignLeft, AlignCenter, AlignRight}
	if !reflect.DeepEqual(els[0].Alignments, want) {
		t.Errorf("alignments = %v, want %v", els[0].Alignments, want)
	}
}

func TestTableAlignmentsPaddedToHeaderCount(t *testing.T) {
	a := ingestAll(t, "a | b | c\n---|---\n1 | 2 | 3\n")
	el := a.Elements()[0]
	if len(el.Headers) != 3 {
		t.Fatalf("headers = %v", el.Headers)
	}
	want := []Alignment{AlignLeft, AlignLeft, AlignLeft}
	if !reflect.DeepEqual(el.Alignments, want) {
		t.Errorf("alignments = %v, want %v", el.Alignments, want)
	}
}

func TestTableEdgePipesDropped(t *testing.T) {
	a := ingestAll(t, "| a | b |\n|---|---|\n| 1 | 2 |\n")
	el := a.Elements()[0]
	if !reflect.DeepEqual(el.Headers, []string{"a", "b"}) {
		t.Errorf("headers = %v", el.Headers)
	}
	if !reflect.DeepEqual(el.Rows, [][]string{{"1", "2"}}) {
		t.Errorf("rows = %v", el.Rows)
	}
}

func TestTableTerminatedByBlankLine(t *testing.T) {
	a := ingestAll(t, "a | b\n---|---\n1 | 2\n\nafter the table")
	els := a.Elements()
	if len(els) != 2 {
		t.Fatalf("expected table then text, got %#v", els)
	}
	if els[0].Kind != KindTable || !els[0].Complete || len(els[0].Rows) != 1 {
		t.Errorf("table = %#v", els[0])
	}
	if els[1].Kind != KindText || els[1].Content != "after the table" {
		t.Errorf("trailing text = %#v", els[1])
	}
}

func TestTableTerminatedByPlainLine(t *testing.T) {
	a := ingestAll(t, "a | b\n---|---\n1 | 2\nplain line\n")
	els := a.Elements()
	if len(els) != 2 {
		t.Fatalf("expected table then text, got %#v", els)
	}
	if !reflect.DeepEqual(els[0].Rows, [][]string{{"1", "2"}}) {
		t.Errorf("rows = %v", els[0].Rows)
	}
	if els[1].Content != "plain line" {
		t.Errorf("trailing text = %#v", els[1])
	}
}

func TestHeaderWithoutSeparatorIsText(t *testing.T) {
	a := ingestAll(t, "a | b\nnot a separator\n")
	els := a.Elements()
	if len(els) != 1 || els[0].Kind != KindText {
		t.Fatalf("expected a single text element, got %#v", els)
	}
	if els[0].Content != "a | b\nnot a separator" {
		t.Errorf("content = %q", els[0].Content)
	}
}

func TestHeaderOnlyStaysBufferedUntilFinish(t *testing.T) {
	a := New()
	a.Ingest("a | b\n")
	if a.Len() != 0 {
		t.Fatalf("header line classified early: %#v", a.Elements())
	}
	a.Finish()
	els := a.Elements()
	if len(els) != 1 || els[0].Kind != KindText || els[0].Content != "a | b" {
		t.Errorf("after finish: %#v", els)
	}
}

func TestTableOpenWhileRowsStream(t *testing.T) {
	a := New()
	a.Ingest("a | b\n---|---\n")
	els := a.Elements()
	if len(els) != 1 || els[0].Kind != KindTable || els[0].Complete {
		t.Fatalf("expected one open table, got %#v", els)
	}
	a.Ingest("1 | 2\n")
	a.Ingest("3 | 4\n")
	el := a.Elements()[0]
	if !reflect.DeepEqual(el.Rows, [][]string{{"1", "2"}, {"3", "4"}}) {
		t.Fatalf("rows = %v", el.Rows)
	}
	if el.Complete {
		t.Error("table completed before its terminator")
	}
	a.Finish()
	if !a.Elements()[0].Complete {
		t.Error("table still open after finish")
	}
}

func TestTableAfterText(t *testing.T) {
	a := ingestAll(t, "intro line\na | b\n---|---\n1 | 2\n")
	els := a.Elements()
	if len(els) != 2 {
		t.Fatalf("expected text then table, got %#v", els)
	}
	if els[0].Kind != KindText || els[0].Content != "intro line" {
		t.Errorf("text = %#v", els[0])
	}
	if els[1].Kind != KindTable || !els[1].Complete {
		t.Errorf("table = %#v", els[1])
	}
}

func TestTableSuppressedInsideFence(t *testing.T) {
	a := ingestAll(t, "```\na | b\n---|---\n```\n")
	els := a.Elements()
	if len(els) != 1 || els[0].Kind != KindCode {
		t.Fatalf("expected one code block, got %#v", els)
	}
	if els[0].Content != "a | b\n---|---" {
		t.Errorf("content = %q", els[0].Content)
	}
}

func TestSplitRow(t *testing.T) {
	cases := []struct {
		line string
		want []string
	}{
		{"a | b", []string{"a", "b"}},
		{"| a | b |", []string{"a", "b"}},
		{"a|b|c", []string{"a", "b", "c"}},
		{"  a  ", []string{"a"}},
		{"|", []string{}},
	}
	for _, tc := range cases {
		if got := splitRow(tc.line); !reflect.DeepEqual(got, tc.want) {
			t.Errorf("splitRow(%q) = %#v, want %#v", tc.line, got, tc.want)
		}
	}
}
