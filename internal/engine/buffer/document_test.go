package buffer

import "testing"

func TestNewDocumentFromStringSplitsLines(t *testing.T) {
	d := NewDocumentFromString("hello\nworld")
	if d.LineCount() != 2 {
		t.Fatalf("expected 2 lines, got %d", d.LineCount())
	}
	if d.Line(0).Text() != "hello" || d.Line(1).Text() != "world" {
		t.Fatalf("unexpected lines: %q %q", d.Line(0).Text(), d.Line(1).Text())
	}
}

func TestEmptyDocumentIsOneEmptyLine(t *testing.T) {
	d := NewDocument()
	if d.LineCount() != 1 || d.Line(0).Text() != "" {
		t.Fatalf("expected one empty line")
	}
}

func TestApplyInsertCharAcrossNewline(t *testing.T) {
	d := NewDocumentFromString("hello")
	at := Position{Line: 0, Char: 5}
	e := Edit{RangeBefore: Range{Start: at, End: at}, TextInserted: "\nworld"}
	inverse, err := d.Apply(e)
	if err != nil {
		t.Fatal(err)
	}
	if d.LineCount() != 2 || d.Line(0).Text() != "hello" || d.Line(1).Text() != "world" {
		t.Fatalf("unexpected doc state: %q %q", d.Line(0).Text(), d.Line(1).Text())
	}

	// Undo via inverse.
	if _, err := d.Apply(inverse); err != nil {
		t.Fatal(err)
	}
	if d.LineCount() != 1 || d.Line(0).Text() != "hello" {
		t.Fatalf("undo did not restore original document: %q (lines=%d)", d.Line(0).Text(), d.LineCount())
	}
}

func TestApplyDeleteRangeMergesLines(t *testing.T) {
	d := NewDocumentFromString("hello\nbrave\nnewworld")
	r := Range{Start: Position{Line: 0, Char: 2}, End: Position{Line: 2, Char: 3}}
	e := Edit{RangeBefore: r, TextInserted: "Z"}
	inverse, err := d.Apply(e)
	if err != nil {
		t.Fatal(err)
	}
	if d.LineCount() != 1 || d.Line(0).Text() != "heZworld" {
		t.Fatalf("expected single line heZworld, got %d lines: %q", d.LineCount(), d.Line(0).Text())
	}

	if _, err := d.Apply(inverse); err != nil {
		t.Fatal(err)
	}
	if d.LineCount() != 3 || d.Line(0).Text() != "hello" || d.Line(1).Text() != "brave" || d.Line(2).Text() != "newworld" {
		t.Fatalf("undo did not restore original document")
	}
}

func TestOffsetPropagation(t *testing.T) {
	start := Position{Line: 0, Char: 2}
	end := Position{Line: 1, Char: 0} // "\n" inserted at (0,2)
	off := Offset(start, end)

	before, ok := off.Propagate(Position{Line: 0, Char: 0})
	if !ok || before != (Position{Line: 0, Char: 0}) {
		t.Fatalf("position before edit should be unaffected, got %v", before)
	}

	after, ok := off.Propagate(Position{Line: 0, Char: 4})
	if !ok || after.Line != 1 {
		t.Fatalf("position after edit start on same line should move to new line, got %v", after)
	}

	laterLine, ok := off.Propagate(Position{Line: 2, Char: 5})
	if !ok || laterLine.Line != 3 || laterLine.Char != 5 {
		t.Fatalf("position on a later line should shift only by LineDelta, got %v", laterLine)
	}
}

func TestClampRangePastEndOfDocument(t *testing.T) {
	d := NewDocumentFromString("one\ntwo")
	r := Range{Start: Position{Line: 5, Char: 9}, End: Position{Line: 9, Char: 2}}
	clamped := d.ClampRange(r)
	if clamped.Start.Line != 1 || clamped.Start.Char != 3 {
		t.Fatalf("expected clamp to last line/char, got %v", clamped.Start)
	}
}
