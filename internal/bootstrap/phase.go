package bootstrap

import (
	"context"
	"errors"
	"fmt"
)

// ErrSkip marks a phase outcome as skipped rather than failed. Phases
// wrap it with a reason; the runner downgrades it to a warning and
// continues.
var ErrSkip = errors.New("phase skipped")

// Skipf wraps ErrSkip with a reason explaining why the phase did not run.
func Skipf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrSkip, fmt.Sprintf(format, args...))
}

// Phase is one ordered unit of the bootstrap pipeline.
type Phase struct {
	// Name identifies the phase in logs and failure messages.
	Name string

	// Run executes the phase to a terminal outcome. Returning an error
	// that wraps ErrSkip marks the phase skipped instead of failed.
	Run func(ctx context.Context) error
}
