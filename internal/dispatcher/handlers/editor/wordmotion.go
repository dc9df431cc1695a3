// Package editor provides handlers for text editing operations.
package editor

import (
	"unicode"

	"github.com/textloom/loom/internal/engine"
	"github.com/textloom/loom/internal/engine/buffer"
)

// isWordChar reports whether r can appear in an identifier-like word.
func isWordChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

// isSpace reports whether r is blank.
func isSpace(r rune) bool {
	return r == ' ' || r == '\t'
}

// nextWordStart returns the position just past the word/punctuation
// run containing (or following) p, skipping any whitespace that
// follows — crossing line boundaries as needed. Used by the word-wise
// delete/yank actions; it does not replicate vi's exact motion rules.
func nextWordStart(eng *engine.Engine, p buffer.Position) buffer.Position {
	line, char := p.Line, p.Char
	text := []rune(eng.LineText(int(line)))

	if int(char) < len(text) {
		if isWordChar(text[char]) {
			for int(char) < len(text) && isWordChar(text[char]) {
				char++
			}
		} else if !isSpace(text[char]) {
			for int(char) < len(text) && !isWordChar(text[char]) && !isSpace(text[char]) {
				char++
			}
		}
	}

	for {
		if int(char) >= len(text) {
			if int(line)+1 >= eng.LineCount() {
				return buffer.Position{Line: line, Char: char}
			}
			line++
			char = 0
			text = []rune(eng.LineText(int(line)))
			if len(text) == 0 {
				return buffer.Position{Line: line, Char: 0}
			}
			continue
		}
		if !isSpace(text[char]) {
			return buffer.Position{Line: line, Char: char}
		}
		char++
	}
}

// prevWordStart returns the start of the word/punctuation run before
// p, skipping preceding whitespace — crossing line boundaries as needed.
func prevWordStart(eng *engine.Engine, p buffer.Position) buffer.Position {
	line, char := p.Line, p.Char
	text := []rune(eng.LineText(int(line)))

	for {
		if char == 0 {
			if line == 0 {
				return buffer.Position{Line: 0, Char: 0}
			}
			line--
			text = []rune(eng.LineText(int(line)))
			char = uint32(len(text))
			if len(text) == 0 {
				continue
			}
			break
		}
		if !isSpace(text[char-1]) {
			break
		}
		char--
	}

	if char == 0 {
		return buffer.Position{Line: line, Char: 0}
	}
	if isWordChar(text[char-1]) {
		for char > 0 && isWordChar(text[char-1]) {
			char--
		}
	} else {
		for char > 0 && !isWordChar(text[char-1]) && !isSpace(text[char-1]) {
			char--
		}
	}
	return buffer.Position{Line: line, Char: char}
}

// wordForward advances p by count word motions.
func wordForward(eng *engine.Engine, p buffer.Position, count int) buffer.Position {
	for i := 0; i < count; i++ {
		next := nextWordStart(eng, p)
		if next == p {
			break
		}
		p = next
	}
	return p
}

// wordBackward retreats p by count word motions.
func wordBackward(eng *engine.Engine, p buffer.Position, count int) buffer.Position {
	for i := 0; i < count; i++ {
		prev := prevWordStart(eng, p)
		if prev == p {
			break
		}
		p = prev
	}
	return p
}
