package game

import "sync/atomic"

// Signal records the winner of a game. It moves from unset to set exactly
// once; Done is closed by the claim that set it.
type Signal struct {
	winner atomic.Int32
	done   chan struct{}
}

// NewSignal creates an unset signal
func NewSignal() *Signal {
	return &Signal{done: make(chan struct{})}
}

// Claim sets the winner if no one has won yet. Only the caller that
// receives true may treat itself as the winner.
func (s *Signal) Claim(playerID int) bool {
	if playerID <= 0 {
		return false
	}
	if !s.winner.CompareAndSwap(0, int32(playerID)) {
		return false
	}
	close(s.done)
	return true
}

// Winner returns the winning player id and whether the signal is set
func (s *Signal) Winner() (int, bool) {
	w := s.winner.Load()
	return int(w), w != 0
}

// IsSet reports whether a winner has been recorded
func (s *Signal) IsSet() bool {
	return s.winner.Load() != 0
}

// Done returns a channel that is closed once a winner has been recorded
func (s *Signal) Done() <-chan struct{} {
	return s.done
}
