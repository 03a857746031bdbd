package pow

import "sync/atomic"

// signal is a level-triggered, polled event: the coordinator raises it,
// a worker observes it at the top of its tick and (for new-block) clears
// it again. The contract is "is it set?", not "has a value arrived?", so
// a worker that misses one poll still sees it set on the next, which a
// single-value channel send could not guarantee against multiple readers.
type signal struct {
	flag atomic.Bool
}

// Raise sets the signal.
func (s *signal) Raise() { s.flag.Store(true) }

// Clear unsets the signal.
func (s *signal) Clear() { s.flag.Store(false) }

// IsSet reports whether the signal is currently raised.
func (s *signal) IsSet() bool { return s.flag.Load() }
