// Package chflow provides context-aware waiting primitives. Both helpers
// block on a channel select and give up as soon as the context is canceled,
// so callers never strand a goroutine on a channel or a timer.
package chflow

import (
	"context"
	"time"
)

// Receive waits for a value from ch or for ctx to be canceled, whichever
// comes first. The boolean is false when no value was received, either
// because ctx was done or because ch was closed.
func Receive[T any](ctx context.Context, ch <-chan T) (T, bool) {
	select {
	case <-ctx.Done():
		var zero T
		return zero, false
	case data, ok := <-ch:
		return data, ok
	}
}

// Sleep pauses for d or until ctx is canceled. It reports whether the full
// duration elapsed; a false return means the sleep was cut short.
func Sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
