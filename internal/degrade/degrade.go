// Package degrade provides a tagged result type for operations that must
// always produce a usable value. A failed upstream call is absorbed into a
// Degraded result carrying a deterministic fallback plus the reason, so the
// failure stays available for logging while the API boundary sees only the
// plain value.
package degrade

// Result wraps a value that may have been produced by a fallback path.
type Result[T any] struct {
	Value    T
	Degraded bool
	Reason   string
}

// Ok returns a result produced by the primary path.
func Ok[T any](value T) Result[T] {
	return Result[T]{Value: value}
}

// Fallback returns a degraded result with the reason the primary path failed.
func Fallback[T any](value T, reason string) Result[T] {
	return Result[T]{Value: value, Degraded: true, Reason: reason}
}
