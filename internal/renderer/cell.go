package renderer

import "github.com/rivo/uniseg"

// Cell is one terminal grid cell: a glyph, its display width, and its style.
type Cell struct {
	// Rune is the character to display. Zero marks a continuation cell
	// (the trailing half of a wide character).
	Rune rune

	// Width is this cell's display width: 0 for continuation cells, 1 for
	// normal characters, 2 for wide (CJK, emoji) characters.
	Width int

	Style Style
}

// EmptyCell returns a blank, default-styled cell.
func EmptyCell() Cell {
	return Cell{Rune: ' ', Width: 1, Style: DefaultStyle()}
}

// ContinuationCell returns the trailing cell that follows a wide character.
func ContinuationCell() Cell {
	return Cell{Rune: 0, Width: 0, Style: DefaultStyle()}
}

// NewCell creates a default-styled cell holding r.
func NewCell(r rune) Cell {
	return Cell{Rune: r, Width: RuneWidth(r), Style: DefaultStyle()}
}

// NewStyledCell creates a cell holding r with the given style.
func NewStyledCell(r rune, style Style) Cell {
	return Cell{Rune: r, Width: RuneWidth(r), Style: style}
}

// WithStyle returns a copy of c with its style replaced.
func (c Cell) WithStyle(style Style) Cell {
	c.Style = style
	return c
}

// WithRune returns a copy of c holding r instead, with width recomputed.
func (c Cell) WithRune(r rune) Cell {
	c.Rune = r
	c.Width = RuneWidth(r)
	return c
}

// IsEmpty reports whether c is a blank space cell.
func (c Cell) IsEmpty() bool {
	return c.Rune == ' ' || c.Rune == 0
}

// IsContinuation reports whether c is the trailing half of a wide character.
func (c Cell) IsContinuation() bool {
	return c.Width == 0 && c.Rune == 0
}

// Equals reports whether two cells render identically.
func (c Cell) Equals(other Cell) bool {
	return c.Rune == other.Rune && c.Width == other.Width && c.Style.Equals(other.Style)
}

// RuneWidth reports r's terminal display width, per uniseg's grapheme-width
// tables: 0 for control characters, 1 for ordinary characters, 2 for wide
// (East Asian wide/fullwidth, most emoji) characters. Kept consistent with
// engine/buffer's own width accounting, which uses the same library, so a
// line's cached width and its rendered cell count never disagree.
func RuneWidth(r rune) int {
	if r < 32 || r == 0x7F {
		return 0
	}
	return uniseg.StringWidth(string(r))
}

// CellsFromString lays s out as styled cells, inserting a continuation cell
// after every wide character. Does not expand tabs — that's the layout
// engine's job, since tab width depends on column position.
func CellsFromString(s string, style Style) []Cell {
	cells := make([]Cell, 0, len(s))
	for _, r := range s {
		width := RuneWidth(r)
		cells = append(cells, Cell{Rune: r, Width: width, Style: style})
		if width == 2 {
			cells = append(cells, ContinuationCell())
		}
	}
	return cells
}

// StringFromCells reassembles cells into a string, dropping continuation
// and blank-filler cells.
func StringFromCells(cells []Cell) string {
	runes := make([]rune, 0, len(cells))
	for _, c := range cells {
		if !c.IsContinuation() && c.Rune != 0 {
			runes = append(runes, c.Rune)
		}
	}
	return string(runes)
}
