package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfig is returned by New; no step has been taken.
	ErrInvalidConfig = errors.New("engine: invalid configuration")

	// ErrPersistence wraps a SummarySink failure. The summary was still
	// computed and handed to the progress stream.
	ErrPersistence = errors.New("engine: summary persistence failed")
)

// RunError carries the step context of an interrupted run.
type RunError struct {
	Index uint64
	State State
	Err   error
}

func (e *RunError) Error() string {
	return fmt.Sprintf("engine: stopped at step %d (%s): %v", e.Index, e.State, e.Err)
}

func (e *RunError) Unwrap() error { return e.Err }

func invalid(format string, a ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, a...))
}
