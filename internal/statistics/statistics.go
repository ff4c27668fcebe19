package statistics

import (
	"fmt"
	"math"
	"sort"
	"time"
)

// GameResult represents the outcome of a single simulated game
type GameResult struct {
	Seed       int64         // Pack seed for replay
	Winner     int           // Winning player id, 0 when the game timed out
	WinnerTurn int           // Turns the winner took
	TotalTurns int           // Turns across all players
	Elapsed    time.Duration // Wall-clock duration of the game
}

// Statistics aggregates results over many games
type Statistics struct {
	Games    int
	TimedOut int
	Wins     map[int]int // player id -> games won

	SumTurns  float64
	SumTurns2 float64   // Sum of squares for variance calculation
	Values    []float64 // Total turns per decided game, for median/percentiles

	MaxTurns    int
	MaxTurnSeed int64
	Elapsed     time.Duration
}

// New creates empty statistics
func New() *Statistics {
	return &Statistics{Wins: make(map[int]int)}
}

// Add incorporates a new game result
func (s *Statistics) Add(result GameResult) {
	if s.Wins == nil {
		s.Wins = make(map[int]int)
	}
	s.Games++
	s.Elapsed += result.Elapsed

	if result.Winner == 0 {
		s.TimedOut++
		return
	}
	s.Wins[result.Winner]++

	turns := float64(result.TotalTurns)
	s.SumTurns += turns
	s.SumTurns2 += turns * turns
	s.Values = append(s.Values, turns)

	if result.TotalTurns > s.MaxTurns {
		s.MaxTurns = result.TotalTurns
		s.MaxTurnSeed = result.Seed
	}
}

// Decided returns the number of games that produced a winner
func (s *Statistics) Decided() int {
	return s.Games - s.TimedOut
}

// Mean returns the mean number of turns per decided game
func (s *Statistics) Mean() float64 {
	n := s.Decided()
	if n == 0 {
		return 0
	}
	return s.SumTurns / float64(n)
}

// Variance returns the sample variance of turns per decided game
func (s *Statistics) Variance() float64 {
	n := s.Decided()
	if n < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumTurns2 - float64(n)*mean*mean) / float64(n-1)
}

// StdDev returns the sample standard deviation of turns
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	n := s.Decided()
	if n == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(n))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Median returns the median number of turns
func (s *Statistics) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile returns the value at the given percentile (0.0 to 1.0)
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1

	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// WinRate returns the share of decided games won by a player
func (s *Statistics) WinRate(player int) float64 {
	n := s.Decided()
	if n == 0 {
		return 0
	}
	return float64(s.Wins[player]) / float64(n)
}

// Validate checks the aggregates are internally consistent
func (s *Statistics) Validate() error {
	if s.Games <= 0 {
		return fmt.Errorf("invalid games count: %d", s.Games)
	}

	totalWins := 0
	for _, w := range s.Wins {
		totalWins += w
	}
	if totalWins != s.Decided() {
		return fmt.Errorf("wins total (%d) does not match decided games (%d)", totalWins, s.Decided())
	}

	if len(s.Values) != s.Decided() {
		return fmt.Errorf("values array length (%d) does not match decided games (%d)",
			len(s.Values), s.Decided())
	}

	return nil
}
