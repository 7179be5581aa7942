package cmdutil

import (
	"context"
	"errors"
)

// Exit codes shared by the leo commands.
const (
	ExitOK        = 0
	ExitViolation = 1
	ExitUsage     = 2
	ExitIO        = 3
	ExitCanceled  = 130
)

// ExitCodeFor maps a run error to an exit code. Cancellation wins over
// anything it wraps; unrecognized errors are I/O failures.
func ExitCodeFor(err error, classify func(error) (int, bool)) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return ExitCanceled
	}
	if classify != nil {
		if code, ok := classify(err); ok {
			return code
		}
	}
	return ExitIO
}
