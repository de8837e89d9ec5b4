package engine

import "errors"

// Sentinel errors for the engine package.
// Use errors.Is to check: errors.Is(err, engine.ErrProgramTooLarge)
var (
	ErrProgramTooLarge = errors.New("engine: program exceeds block limit")
)
