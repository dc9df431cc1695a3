package buffer

import (
	"strings"
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// Severity orders diagnostics: lower values sort first. The inline
// renderer relies on this ordering to show only the most severe
// diagnostic on a line.
type Severity uint8

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityInfo
	SeverityHint
)

// RelatedInfo is a secondary location attached to a Diagnostic (e.g.
// "function declared here").
type RelatedInfo struct {
	Message  string
	Position Position
}

// Diagnostic is a single LSP or local-lexer finding anchored to a
// range on one or more lines.
type Diagnostic struct {
	Severity Severity
	Range    Range
	Message  string
	Source   string
	Related  []RelatedInfo
}

// DiagnosticLine is the ordered set of diagnostics whose range touches
// one line. Diagnostics are kept sorted errors-first, then warnings,
// then info/hint (see Severity) — this ordering is a hard invariant.
type DiagnosticLine struct {
	Diagnostics []Diagnostic
	Errors      int
	Warnings    int
}

// Add inserts d keeping the severity ordering invariant.
func (dl *DiagnosticLine) Add(d Diagnostic) {
	i := 0
	for i < len(dl.Diagnostics) && dl.Diagnostics[i].Severity <= d.Severity {
		i++
	}
	dl.Diagnostics = append(dl.Diagnostics, Diagnostic{})
	copy(dl.Diagnostics[i+1:], dl.Diagnostics[i:])
	dl.Diagnostics[i] = d

	switch d.Severity {
	case SeverityError:
		dl.Errors++
	case SeverityWarning:
		dl.Warnings++
	}
}

// First returns the highest-severity diagnostic on the line, used by
// the inline renderer which shows only one.
func (dl *DiagnosticLine) First() (Diagnostic, bool) {
	if dl == nil || len(dl.Diagnostics) == 0 {
		return Diagnostic{}, false
	}
	return dl.Diagnostics[0], true
}

// Token is a delta-encoded semantic/syntactic token, matching the LSP
// semantic-tokens wire encoding: DeltaStart is relative to the
// previous token's start on the same line.
type Token struct {
	DeltaStart uint32
	Len        uint32
	Style      uint32
	Modifiers  uint32
}

// RenderTagKind distinguishes the variants of a Line's render cache tag.
type RenderTagKind uint8

const (
	RenderTagNone RenderTagKind = iota
	RenderTagLine
	RenderTagCursor
)

// RenderTag records the last state a Line was drawn in. fast_render
// consults this to decide whether a line needs to be redrawn.
type RenderTag struct {
	Kind    RenderTagKind
	Row     int
	Char    uint32 // caret char, RenderTagCursor only
	Skipped uint32 // horizontal scroll, RenderTagCursor only
	Select  *Range // nil when nothing on the line is selected
}

// Equal reports whether two render tags describe the same drawn state.
func (t RenderTag) Equal(other RenderTag) bool {
	if t.Kind != other.Kind || t.Row != other.Row {
		return false
	}
	if t.Kind == RenderTagCursor && (t.Char != other.Char || t.Skipped != other.Skipped) {
		return false
	}
	switch {
	case t.Select == nil && other.Select == nil:
		return true
	case t.Select == nil || other.Select == nil:
		return false
	default:
		return *t.Select == *other.Select
	}
}

// Line owns one line's bytes and derived metadata. The zero value is
// a valid empty line.
type Line struct {
	text     []byte
	isSimple bool // all bytes are 1-byte/1-width ASCII: char index == byte index
	charLen  uint32
	width    uint32

	tokens      []Token
	diagnostics *DiagnosticLine
	renderTag   RenderTag

	// openContext records whether this line ends inside a multi-line
	// token (string/comment) continuation for the local lexer (§4.6).
	openContext bool
}

// NewLine creates a Line from a string, computing its char/width cache.
func NewLine(s string) *Line {
	l := &Line{}
	l.setText(s)
	return l
}

func isSimpleText(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

func (l *Line) setText(s string) {
	l.text = []byte(s)
	l.isSimple = isSimpleText(s)
	if l.isSimple {
		l.charLen = uint32(len(s))
		l.width = uint32(len(s))
		return
	}
	l.charLen = uint32(utf8.RuneCountInString(s))
	l.width = uint32(uniseg.StringWidth(s))
}

// Text returns the line's content as a string (without trailing newline).
func (l *Line) Text() string { return string(l.text) }

// Bytes returns the line's content as a byte slice. Callers must not
// mutate the returned slice.
func (l *Line) Bytes() []byte { return l.text }

// CharLen returns the number of characters on the line.
func (l *Line) CharLen() int { return int(l.charLen) }

// Width returns the display width of the line (wide characters count 2).
func (l *Line) Width() int { return int(l.width) }

// IsSimple reports whether the line is pure single-byte/single-width
// ASCII, enabling O(1) char indexing.
func (l *Line) IsSimple() bool { return l.isSimple }

// IterTokens returns the line's tokens in delta-encoded order.
func (l *Line) IterTokens() []Token { return l.tokens }

// SetTokens replaces the line's token list.
func (l *Line) SetTokens(tokens []Token) { l.tokens = tokens }

// ClearTokens invalidates the line's tokens (used when an edit touches
// a region without being able to cheaply re-tokenize it).
func (l *Line) ClearTokens() { l.tokens = nil }

// Diagnostics returns the line's diagnostic overlay, or nil if none.
func (l *Line) Diagnostics() *DiagnosticLine { return l.diagnostics }

// SetDiagnostics replaces the line's diagnostic overlay.
func (l *Line) SetDiagnostics(dl *DiagnosticLine) { l.diagnostics = dl }

// ClearDiagnostics removes the line's diagnostic overlay.
func (l *Line) ClearDiagnostics() { l.diagnostics = nil }

// RenderTag returns the line's last-drawn-state tag.
func (l *Line) RenderTag() RenderTag { return l.renderTag }

// SetRenderTag updates the line's last-drawn-state tag.
func (l *Line) SetRenderTag(tag RenderTag) { l.renderTag = tag }

// InvalidateRenderTag forces the next fast_render to redraw this line.
func (l *Line) InvalidateRenderTag() { l.renderTag = RenderTag{} }

// OpenContext reports whether a multi-line token context (string or
// comment) is still open at the end of this line.
func (l *Line) OpenContext() bool { return l.openContext }

// SetOpenContext records whether a multi-line token context is open.
func (l *Line) SetOpenContext(open bool) { l.openContext = open }

// byteIndex converts a char index to a byte index, walking runes on
// complex lines. charIdx > CharLen() panics: per spec this is a
// programmer error, the same contract as an out-of-range slice index.
func (l *Line) byteIndex(charIdx int) int {
	if charIdx < 0 || charIdx > int(l.charLen) {
		panic(ErrCharOutOfRange)
	}
	if l.isSimple {
		return charIdx
	}
	if charIdx == int(l.charLen) {
		return len(l.text)
	}
	i := 0
	b := 0
	for b < len(l.text) {
		if i == charIdx {
			return b
		}
		_, size := utf8.DecodeRune(l.text[b:])
		b += size
		i++
	}
	return len(l.text)
}

// Insert inserts s at char index charIdx. Inserting at CharLen extends
// the line.
func (l *Line) Insert(charIdx int, s string) {
	if s == "" {
		return
	}
	b := l.byteIndex(charIdx)
	var buf strings.Builder
	buf.Grow(len(l.text) + len(s))
	buf.Write(l.text[:b])
	buf.WriteString(s)
	buf.Write(l.text[b:])
	l.setText(buf.String())
}

// RemoveRange deletes the characters in [start, end). Removing an
// empty range is a no-op.
func (l *Line) RemoveRange(start, end int) {
	if start == end {
		return
	}
	if start > end {
		start, end = end, start
	}
	bs := l.byteIndex(start)
	be := l.byteIndex(end)
	var buf strings.Builder
	buf.Grow(len(l.text) - (be - bs))
	buf.Write(l.text[:bs])
	buf.Write(l.text[be:])
	l.setText(buf.String())
}

// ReplaceRange replaces the characters in [start, end) with s.
func (l *Line) ReplaceRange(start, end int, s string) {
	l.RemoveRange(start, end)
	l.Insert(start, s)
}

// SplitAt splits the line at charIdx, mutating the receiver to the
// left half and returning the right half as a new Line. Splitting at
// 0 yields an empty left line (the receiver).
func (l *Line) SplitAt(charIdx int) *Line {
	b := l.byteIndex(charIdx)
	right := NewLine(string(l.text[b:]))
	l.setText(string(l.text[:b]))
	return right
}

// PushLine appends other's text to the end of the receiver, joining
// two lines into one (the inverse of SplitAt/newline).
func (l *Line) PushLine(other *Line) {
	l.setText(l.Text() + other.Text())
}

// Clone returns a deep copy of the line, including tokens and
// diagnostics but resetting the render tag (a clone has never been drawn).
func (l *Line) Clone() *Line {
	c := &Line{
		text:        append([]byte(nil), l.text...),
		isSimple:    l.isSimple,
		charLen:     l.charLen,
		width:       l.width,
		openContext: l.openContext,
	}
	if l.tokens != nil {
		c.tokens = append([]Token(nil), l.tokens...)
	}
	if l.diagnostics != nil {
		dl := *l.diagnostics
		dl.Diagnostics = append([]Diagnostic(nil), l.diagnostics.Diagnostics...)
		c.diagnostics = &dl
	}
	return c
}
