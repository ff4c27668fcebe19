package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/lox/cardring/cmd/cardring/shared"
	"github.com/lox/cardring/internal/randutil"
	"github.com/lox/cardring/internal/simulator"
	"github.com/lox/cardring/internal/statistics"
)

// SimulateCmd plays many generated games in memory and reports statistics
type SimulateCmd struct {
	Players     int           `short:"n" required:"" help:"Number of players per game"`
	Games       int           `short:"g" default:"100" help:"Number of games to play"`
	Seed        *int64        `help:"Base RNG seed; game i uses seed+i (optional)"`
	Timeout     time.Duration `default:"10s" help:"Per-game timeout"`
	IdleBackoff time.Duration `default:"1ms" help:"How long an idle player waits before retrying"`
	Workers     int           `short:"w" help:"Games played concurrently (defaults to GOMAXPROCS)"`
	Debug       bool          `help:"Enable debug logging"`
	JSON        bool          `name:"json" help:"Log as JSON"`
	NoColor     bool          `help:"Disable colored output"`
}

func (c *SimulateCmd) Run() error {
	logger, err := shared.SetupLogger(shared.LogOptions{Level: "warn", Debug: c.Debug, JSON: c.JSON})
	if err != nil {
		return err
	}
	configureColor(c.NoColor)

	_, seed := randutil.Resolve(c.Seed)
	logger.Debug("Starting simulation", "games", c.Games, "players", c.Players, "seed", seed)

	sim := simulator.New(simulator.Config{
		Games:       c.Games,
		Players:     c.Players,
		Seed:        seed,
		Workers:     c.Workers,
		Timeout:     c.Timeout,
		IdleBackoff: c.IdleBackoff,
		Logger:      logger,
	})

	ctx := shared.SetupSignalHandlerWithLogger(logger)
	start := time.Now()
	stats, err := sim.Run(ctx)
	if err != nil {
		return err
	}

	printStatistics(os.Stdout, stats, c.Players, seed, time.Since(start))
	return nil
}

func printStatistics(w io.Writer, stats *statistics.Statistics, players int, seed int64, wall time.Duration) {
	var b strings.Builder

	row := func(label, value string) {
		b.WriteString(labelStyle.Render(label))
		b.WriteString(value)
		b.WriteString("\n")
	}

	b.WriteString(titleStyle.Render(" cardring simulation "))
	b.WriteString("\n\n")

	row("Games", fmt.Sprintf("%d (%d decided, %d timed out)", stats.Games, stats.Decided(), stats.TimedOut))
	row("Players", fmt.Sprint(players))
	row("Seed", fmt.Sprint(seed))
	row("Wall time", wall.Round(time.Millisecond).String())

	b.WriteString("\n")
	b.WriteString(headerStyle.Render("Turns per game"))
	b.WriteString("\n")
	low, high := stats.ConfidenceInterval95()
	row("  mean", fmt.Sprintf("%.2f ± %.2f (95%% CI %.2f to %.2f)", stats.Mean(), 1.96*stats.StdError(), low, high))
	row("  median", fmt.Sprintf("%.1f", stats.Median()))
	row("  p95", fmt.Sprintf("%.1f", stats.Percentile(0.95)))
	row("  stddev", fmt.Sprintf("%.2f", stats.StdDev()))
	row("  max", fmt.Sprintf("%d (seed %d)", stats.MaxTurns, stats.MaxTurnSeed))

	b.WriteString("\n")
	b.WriteString(headerStyle.Render("Wins"))
	b.WriteString("\n")
	for id := 1; id <= players; id++ {
		row(fmt.Sprintf("  player %d", id), fmt.Sprintf("%5d  %5.1f%%", stats.Wins[id], 100*stats.WinRate(id)))
	}
	if stats.TimedOut > 0 {
		b.WriteString(warnStyle.Render(fmt.Sprintf("%d games ended without a winner", stats.TimedOut)))
		b.WriteString("\n")
	}

	fmt.Fprint(w, b.String())
}
