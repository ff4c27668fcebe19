package statistics

import (
	"math"
	"testing"
	"time"
)

func TestStatistics_Empty(t *testing.T) {
	stats := New()

	if stats.Mean() != 0 {
		t.Errorf("Expected mean of 0 for empty stats, got %f", stats.Mean())
	}
	if stats.Variance() != 0 {
		t.Errorf("Expected variance of 0 for empty stats, got %f", stats.Variance())
	}
	if stats.StdError() != 0 {
		t.Errorf("Expected stderr of 0 for empty stats, got %f", stats.StdError())
	}
	if stats.Median() != 0 {
		t.Errorf("Expected median of 0 for empty stats, got %f", stats.Median())
	}
	if stats.WinRate(1) != 0 {
		t.Errorf("Expected win rate of 0 for empty stats, got %f", stats.WinRate(1))
	}
	if err := stats.Validate(); err == nil {
		t.Error("Expected validation error for empty stats")
	}
}

func TestStatistics_MultipleGames(t *testing.T) {
	stats := &Statistics{} // zero value must work

	results := []GameResult{
		{Seed: 1, Winner: 1, TotalTurns: 10, Elapsed: time.Millisecond},
		{Seed: 2, Winner: 2, TotalTurns: 20, Elapsed: time.Millisecond},
		{Seed: 3, Winner: 1, TotalTurns: 30, Elapsed: time.Millisecond},
		{Seed: 4, Winner: 0, TotalTurns: 999, Elapsed: time.Second},
	}
	for _, r := range results {
		stats.Add(r)
	}

	if stats.Games != 4 {
		t.Errorf("Expected 4 games, got %d", stats.Games)
	}
	if stats.TimedOut != 1 {
		t.Errorf("Expected 1 timed out game, got %d", stats.TimedOut)
	}
	if stats.Decided() != 3 {
		t.Errorf("Expected 3 decided games, got %d", stats.Decided())
	}
	if stats.Mean() != 20 {
		t.Errorf("Expected mean of 20, got %f", stats.Mean())
	}
	if stats.Variance() != 100 {
		t.Errorf("Expected variance of 100, got %f", stats.Variance())
	}
	if math.Abs(stats.StdDev()-10) > 1e-9 {
		t.Errorf("Expected stddev of 10, got %f", stats.StdDev())
	}
	if stats.Median() != 20 {
		t.Errorf("Expected median of 20, got %f", stats.Median())
	}
	if stats.Percentile(0.25) != 15 {
		t.Errorf("Expected P25 of 15, got %f", stats.Percentile(0.25))
	}
	if stats.MaxTurns != 30 || stats.MaxTurnSeed != 3 {
		t.Errorf("Expected max turns 30 from seed 3, got %d from %d", stats.MaxTurns, stats.MaxTurnSeed)
	}
	if got := stats.WinRate(1); math.Abs(got-2.0/3.0) > 1e-9 {
		t.Errorf("Expected player 1 win rate of 2/3, got %f", got)
	}
	if stats.Elapsed != time.Second+3*time.Millisecond {
		t.Errorf("Expected total elapsed of 1.003s, got %v", stats.Elapsed)
	}

	low, high := stats.ConfidenceInterval95()
	if low >= stats.Mean() || high <= stats.Mean() {
		t.Errorf("Expected CI to bracket the mean, got [%f, %f]", low, high)
	}

	if err := stats.Validate(); err != nil {
		t.Errorf("Expected valid stats, got %v", err)
	}
}

func TestStatistics_ValidateDetectsMismatch(t *testing.T) {
	stats := New()
	stats.Add(GameResult{Winner: 1, TotalTurns: 5})
	stats.Wins[2]++

	if err := stats.Validate(); err == nil {
		t.Error("Expected validation error for inconsistent wins")
	}
}
