package repl

import "errors"

// Sentinel errors.
var (
	ErrOutOfBounds = errors.New("index out of range")
	ErrUnknownCmd  = errors.New("unknown command")
	ErrUsage       = errors.New("usage")
)
