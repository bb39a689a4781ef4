package domain

import "errors"

// Failure kinds surfaced by the engine. Callers match with errors.Is; the
// engine fails fast and never returns a partial table alongside an error.
var (
	ErrInvalidParameter     = errors.New("invalid parameter")
	ErrUnknownCategory      = errors.New("unknown category")
	ErrUnknownGeneratorKind = errors.New("unknown generator kind")
)
