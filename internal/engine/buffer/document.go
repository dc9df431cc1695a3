package buffer

import "strings"

// Document is a finite, ordered sequence of Lines. It is never empty:
// a brand new or fully-cleared document is one empty line. Version is
// bumped on every applied edit and sent to LSP as the document version.
type Document struct {
	lines   []*Line
	version uint64
}

// NewDocument creates a document with a single empty line.
func NewDocument() *Document {
	return &Document{lines: []*Line{NewLine("")}}
}

// NewDocumentFromString splits s on '\n' into lines. A trailing
// newline does not produce a trailing empty line unless s ends with
// two newlines.
func NewDocumentFromString(s string) *Document {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	parts := strings.Split(s, "\n")
	if len(parts) > 1 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	if len(parts) == 0 {
		parts = []string{""}
	}
	lines := make([]*Line, len(parts))
	for i, p := range parts {
		lines[i] = NewLine(p)
	}
	return &Document{lines: lines}
}

// LineCount returns the number of lines.
func (d *Document) LineCount() int { return len(d.lines) }

// Line returns the line at idx, or nil if idx is out of range.
func (d *Document) Line(idx int) *Line {
	if idx < 0 || idx >= len(d.lines) {
		return nil
	}
	return d.lines[idx]
}

// Version returns the document's current version counter.
func (d *Document) Version() uint64 { return d.version }

// Text returns the full document content joined with '\n'.
func (d *Document) Text() string {
	parts := make([]string, len(d.lines))
	for i, l := range d.lines {
		parts[i] = l.Text()
	}
	return strings.Join(parts, "\n")
}

// TextRange returns the text within [r.Start, r.End), joining spanned
// lines with '\n'.
func (d *Document) TextRange(r Range) string {
	if r.IsEmpty() {
		return ""
	}
	if r.IsSingleLine() {
		line := d.Line(int(r.Start.Line))
		if line == nil {
			return ""
		}
		end := int(r.End.Char)
		if end > line.CharLen() {
			end = line.CharLen()
		}
		return sliceChars(line, int(r.Start.Char), end)
	}
	var b strings.Builder
	first := d.Line(int(r.Start.Line))
	b.WriteString(sliceChars(first, int(r.Start.Char), first.CharLen()))
	for ln := r.Start.Line + 1; ln < r.End.Line; ln++ {
		b.WriteByte('\n')
		b.WriteString(d.Line(int(ln)).Text())
	}
	b.WriteByte('\n')
	last := d.Line(int(r.End.Line))
	end := int(r.End.Char)
	if end > last.CharLen() {
		end = last.CharLen()
	}
	b.WriteString(sliceChars(last, 0, end))
	return b.String()
}

func sliceChars(l *Line, start, end int) string {
	if l == nil || start >= end {
		return ""
	}
	right := l.Clone()
	right.RemoveRange(end, right.CharLen())
	right.RemoveRange(0, start)
	return right.Text()
}

// clampPosition keeps a position inside the document, used when a
// caller (e.g. a racing LSP response) supplies a position that may
// reference a line past the current document length. Per the
// "diagnostics past EOF" decision (SPEC_FULL.md), this clamps rather
// than drops.
func (d *Document) clampPosition(p Position) Position {
	if int(p.Line) >= len(d.lines) {
		p.Line = uint32(len(d.lines) - 1)
		p.Char = 0
		if last := d.lines[p.Line]; last != nil {
			p.Char = uint32(last.CharLen())
		}
		return p
	}
	if line := d.lines[p.Line]; line != nil && int(p.Char) > line.CharLen() {
		p.Char = uint32(line.CharLen())
	}
	return p
}

// ClampRange clamps both endpoints of r into the document.
func (d *Document) ClampRange(r Range) Range {
	return Range{Start: d.clampPosition(r.Start), End: d.clampPosition(r.End)}
}

// Apply performs a range-replace edit on the document: it removes the
// text in e.RangeBefore and inserts e.TextInserted at that position.
// It returns the inverse edit (apply it to undo this one) and bumps
// the document version. Tokens and diagnostics on every touched line
// are cleared — never left stale, per the line-model invariant.
func (d *Document) Apply(e Edit) (Edit, error) {
	r := e.RangeBefore
	if r.Start.Line >= uint32(len(d.lines)) || r.End.Line >= uint32(len(d.lines)) {
		return Edit{}, ErrLineOutOfRange
	}
	if r.Start.After(r.End) {
		return Edit{}, ErrRangeInvalid
	}

	removed := d.TextRange(r)
	d.deleteRange(r)
	insertEnd := d.insertAt(r.Start, e.TextInserted)
	d.version++

	inverse := Edit{
		RangeBefore: Range{Start: r.Start, End: insertEnd},
		TextInserted: removed,
		TextRemoved:  e.TextInserted,
	}
	return inverse, nil
}

// deleteRange removes the text within r, merging the lines it spans
// into one.
func (d *Document) deleteRange(r Range) {
	if r.IsEmpty() {
		return
	}
	startLine := d.lines[r.Start.Line]
	if r.IsSingleLine() {
		startLine.RemoveRange(int(r.Start.Char), int(r.End.Char))
		startLine.ClearTokens()
		startLine.ClearDiagnostics()
		return
	}

	tail := d.lines[r.End.Line]
	tail.RemoveRange(0, int(r.End.Char))
	startLine.RemoveRange(int(r.Start.Char), startLine.CharLen())
	startLine.PushLine(tail)
	startLine.ClearTokens()
	startLine.ClearDiagnostics()

	// remove the now-absorbed lines (Start.Line+1 .. End.Line)
	d.lines = append(d.lines[:r.Start.Line+1], d.lines[r.End.Line+1:]...)
}

// insertAt inserts text at p, splitting lines on '\n' as needed, and
// returns the position immediately after the inserted text.
func (d *Document) insertAt(p Position, text string) Position {
	if text == "" {
		return p
	}
	line := d.lines[p.Line]
	if !strings.Contains(text, "\n") {
		line.Insert(int(p.Char), text)
		line.ClearTokens()
		line.ClearDiagnostics()
		return Position{Line: p.Line, Char: p.Char + uint32(len([]rune(text)))}
	}

	parts := strings.Split(text, "\n")
	tail := line.SplitAt(int(p.Char))
	line.Insert(int(p.Char), parts[0])
	line.ClearTokens()
	line.ClearDiagnostics()

	newLines := make([]*Line, len(parts)-1)
	for i := 1; i < len(parts); i++ {
		newLines[i-1] = NewLine(parts[i])
	}
	lastIdx := len(newLines) - 1
	lastCharLen := newLines[lastIdx].CharLen()
	newLines[lastIdx].PushLine(tail)

	rest := make([]*Line, 0, len(d.lines)-int(p.Line)-1+len(newLines))
	rest = append(rest, newLines...)
	rest = append(rest, d.lines[p.Line+1:]...)
	d.lines = append(d.lines[:p.Line+1], rest...)

	return Position{Line: p.Line + uint32(len(newLines)), Char: uint32(lastCharLen)}
}

// EndOfDocument returns the position just past the last character of
// the last line.
func (d *Document) EndOfDocument() Position {
	last := len(d.lines) - 1
	return Position{Line: uint32(last), Char: uint32(d.lines[last].CharLen())}
}
