package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/lox/cardring/internal/statistics"
	"github.com/stretchr/testify/assert"
)

func TestPrintStatistics(t *testing.T) {
	configureColor(true)

	stats := statistics.New()
	stats.Add(statistics.GameResult{Seed: 10, Winner: 1, TotalTurns: 12})
	stats.Add(statistics.GameResult{Seed: 11, Winner: 2, TotalTurns: 20})
	stats.Add(statistics.GameResult{Seed: 12, Winner: 0})

	var buf bytes.Buffer
	printStatistics(&buf, stats, 3, 10, time.Second)
	out := buf.String()

	assert.Contains(t, out, "3 (2 decided, 1 timed out)")
	assert.Contains(t, out, "20 (seed 11)")
	assert.Contains(t, out, "50.0%")
	assert.Contains(t, out, "player 3")
	assert.Contains(t, out, "1 games ended without a winner")
}
