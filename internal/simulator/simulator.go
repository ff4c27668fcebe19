package simulator

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lox/cardring/internal/deck"
	"github.com/lox/cardring/internal/game"
	"github.com/lox/cardring/internal/pack"
	"github.com/lox/cardring/internal/randutil"
	"github.com/lox/cardring/internal/statistics"
	"golang.org/x/sync/errgroup"
)

// Config holds configuration for running simulations
type Config struct {
	Games       int
	Players     int
	Seed        int64
	Workers     int           // Games played concurrently, defaults to GOMAXPROCS
	Timeout     time.Duration // Per-game limit; a game that hits it counts as timed out
	IdleBackoff time.Duration
	Logger      *log.Logger
}

// Simulator plays many generated games without persisting them
type Simulator struct {
	config Config
}

// New creates a new simulator with the given configuration
func New(config Config) *Simulator {
	if config.Workers <= 0 {
		config.Workers = runtime.GOMAXPROCS(0)
	}
	if config.Timeout <= 0 {
		config.Timeout = 10 * time.Second
	}
	if config.Logger == nil {
		config.Logger = log.Default()
	}
	return &Simulator{config: config}
}

// Run plays every game and returns the aggregated statistics. Game i uses
// pack seed Seed+i, so any single game can be replayed.
func (s *Simulator) Run(ctx context.Context) (*statistics.Statistics, error) {
	if s.config.Games <= 0 {
		return nil, fmt.Errorf("invalid games count: %d", s.config.Games)
	}
	if s.config.Players <= 0 {
		return nil, fmt.Errorf("%w: got %d", game.ErrPlayerCount, s.config.Players)
	}

	results := make([]statistics.GameResult, s.config.Games)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.Workers)
	for i := range s.config.Games {
		seed := s.config.Seed + int64(i)
		g.Go(func() error {
			result, err := s.playGame(ctx, seed)
			if err != nil {
				return fmt.Errorf("game %d (seed %d): %w", i+1, seed, err)
			}
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Aggregate in game order so the statistics are independent of scheduling
	stats := statistics.New()
	for _, r := range results {
		stats.Add(r)
	}

	if err := stats.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}

	return stats, nil
}

// playGame generates a pack from seed and plays it to completion or timeout
func (s *Simulator) playGame(ctx context.Context, seed int64) (statistics.GameResult, error) {
	if err := ctx.Err(); err != nil {
		return statistics.GameResult{}, err
	}

	ranks := pack.Generate(s.config.Players, randutil.New(seed))
	gm, err := game.New(
		game.Config{Players: s.config.Players, IdleBackoff: s.config.IdleBackoff},
		deck.FromRanks(ranks),
		game.WithLogger(s.config.Logger.With("seed", seed)),
	)
	if err != nil {
		return statistics.GameResult{}, err
	}

	gameCtx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	result, err := gm.Run(gameCtx)
	switch {
	case err == nil:
	case errors.Is(err, game.ErrNoWinner) && ctx.Err() == nil:
		s.config.Logger.Warn("Game timed out", "seed", seed, "timeout", s.config.Timeout)
	default:
		return statistics.GameResult{}, err
	}

	total := 0
	for _, turns := range result.Turns {
		total += turns
	}

	return statistics.GameResult{
		Seed:       seed,
		Winner:     result.Winner,
		WinnerTurn: result.Turns[result.Winner],
		TotalTurns: total,
		Elapsed:    result.Elapsed,
	}, nil
}

// RunSimulation is a convenience function for running simulations
func RunSimulation(ctx context.Context, games, players int, seed int64, logger *log.Logger) (*statistics.Statistics, error) {
	sim := New(Config{
		Games:   games,
		Players: players,
		Seed:    seed,
		Logger:  logger,
	})
	return sim.Run(ctx)
}
