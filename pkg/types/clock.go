package types

import "time"

// Clock supplies the current time. Injecting a Clock keeps "today" in
// deadline validation deterministic for tests; both the server store and the
// client fast-path check use the same semantics (local calendar date, not a
// timestamp).
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns a Clock backed by the wall clock.
func SystemClock() Clock { return systemClock{} }
