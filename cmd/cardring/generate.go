package main

import (
	"fmt"

	"github.com/lox/cardring/cmd/cardring/shared"
	"github.com/lox/cardring/internal/pack"
	"github.com/lox/cardring/internal/randutil"
)

// GenerateCmd writes a winnable pack for a given player count
type GenerateCmd struct {
	Players int    `short:"n" required:"" help:"Number of players the pack is for"`
	Out     string `short:"o" required:"" help:"Pack file to write (.txt)"`
	Seed    *int64 `help:"Deterministic RNG seed (optional)"`
	Debug   bool   `help:"Enable debug logging"`
}

func (c *GenerateCmd) Run() error {
	logger, err := shared.SetupLogger(shared.LogOptions{Debug: c.Debug})
	if err != nil {
		return err
	}
	if c.Players <= 0 {
		return fmt.Errorf("players must be positive, got %d", c.Players)
	}

	rng, seed := randutil.Resolve(c.Seed)
	ranks := pack.Generate(c.Players, rng)
	if err := pack.Write(c.Out, ranks); err != nil {
		return err
	}

	logger.Info("Generated pack", "path", c.Out, "players", c.Players, "cards", len(ranks), "seed", seed)
	return nil
}
