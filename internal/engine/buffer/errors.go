package buffer

import "errors"

// Errors returned by buffer and line operations.
var (
	ErrLineOutOfRange = errors.New("buffer: line index out of range")
	ErrCharOutOfRange = errors.New("buffer: char index out of range")
	ErrRangeInvalid   = errors.New("buffer: invalid range")
)
