package engine

import "strings"

// Clipboard holds copied or cut text. Content may span multiple
// lines; Lines splits it the way multi-cursor paste needs to (§4.2
// "Clipboard semantics").
type Clipboard struct {
	Content string
}

// Lines splits Content on '\n'. A single trailing newline (as
// produced by a whole-line copy) does not produce a trailing empty
// element.
func (c Clipboard) Lines() []string {
	if c.Content == "" {
		return nil
	}
	parts := strings.Split(c.Content, "\n")
	if len(parts) > 1 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	return parts
}

// perCursorPaste decides what each of n cursors receives when pasting
// this clipboard: if Content splits into exactly n lines, cursor i
// gets line i; otherwise every cursor receives the full Content
// (§4.2, Open Question #3 in SPEC_FULL.md).
func (c Clipboard) perCursorPaste(n int) []string {
	lines := c.Lines()
	if n > 1 && len(lines) == n {
		return lines
	}
	out := make([]string, n)
	for i := range out {
		out[i] = c.Content
	}
	return out
}
