package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lox/cardring/cmd/cardring/shared"
	"github.com/lox/cardring/internal/config"
	"github.com/lox/cardring/internal/deck"
	"github.com/lox/cardring/internal/game"
	"github.com/lox/cardring/internal/gameid"
	"github.com/lox/cardring/internal/pack"
	"github.com/lox/cardring/internal/prompt"
	"github.com/lox/cardring/internal/randutil"
	"github.com/lox/cardring/internal/recorder"
)

// PlayCmd runs one game and writes the deck and player files
type PlayCmd struct {
	Players     int            `short:"n" help:"Number of players (prompted for when unset)"`
	Pack        string         `short:"p" help:"Pack file to load (prompted for when unset)"`
	Config      string         `short:"c" default:"cardring.hcl" help:"HCL configuration file"`
	OutputDir   string         `help:"Directory for deck and player files"`
	Timeout     *time.Duration `help:"Abandon the game after this long (0 disables)"`
	IdleBackoff *time.Duration `help:"How long an idle player waits before retrying"`
	Shuffle     bool           `help:"Shuffle the pack before dealing"`
	Seed        *int64         `help:"Shuffle seed (optional)"`
	Debug       bool           `help:"Enable debug logging"`
	JSON        bool           `name:"json" help:"Log as JSON"`
	NoColor     bool           `help:"Disable colored output"`
}

func (c *PlayCmd) Run() error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	logger, err := shared.SetupLogger(shared.LogOptions{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Debug:  c.Debug,
		JSON:   c.JSON,
	})
	if err != nil {
		return err
	}
	configureColor(c.NoColor)

	ctx := shared.SetupSignalHandlerWithLogger(logger)
	return c.play(ctx, cfg, logger, os.Stdin, os.Stdout)
}

// loadConfig reads the config file and applies command line overrides
func (c *PlayCmd) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return nil, err
	}

	if c.Players != 0 {
		cfg.Game.Players = c.Players
	}
	if c.Pack != "" {
		cfg.Game.Pack = c.Pack
	}
	if c.OutputDir != "" {
		cfg.Output.Dir = c.OutputDir
	}
	if c.Timeout != nil {
		cfg.Game.Timeout = c.Timeout.String()
	}
	if c.IdleBackoff != nil {
		cfg.Game.IdleBackoff = c.IdleBackoff.String()
	}
	if c.Shuffle {
		cfg.Game.Shuffle = true
	}
	if c.Seed != nil {
		cfg.Game.Seed = c.Seed
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c *PlayCmd) play(ctx context.Context, cfg *config.Config, logger *log.Logger, in io.Reader, out io.Writer) error {
	players, cards, err := c.resolvePack(cfg, in, out)
	if err != nil {
		return err
	}

	if cfg.Game.Shuffle {
		rng, seed := randutil.Resolve(cfg.Game.Seed)
		pack.Shuffle(cards, rng)
		logger.Info("Shuffled pack", "seed", seed)
	}
	if !pack.Winnable(deck.Ranks(cards), players) {
		logger.Warn("No value appears four times; the game may never finish", "players", players)
	}

	runID, err := gameid.Generate()
	if err != nil {
		return err
	}

	timeout, _ := cfg.TimeoutDuration()
	backoff, _ := cfg.IdleBackoffDuration()

	rec, err := recorder.New(recorder.Config{
		Dir:     cfg.Output.Dir,
		Players: players,
		Sync:    cfg.Output.Sync,
	}, logger)
	if err != nil {
		return err
	}

	g, err := game.New(
		game.Config{Players: players, IdleBackoff: backoff},
		cards,
		game.WithLogger(logger),
		game.WithObserver(rec),
		game.WithRunID(runID),
	)
	if err != nil {
		return errors.Join(err, rec.Close())
	}

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	result, runErr := g.Run(ctx)
	if err := rec.Close(); err != nil {
		logger.Warn("Failed to close output files", "error", err)
	}

	fmt.Fprintln(out, renderSummary(result, cfg.Output.Dir))
	return runErr
}

// resolvePack returns the player count and pack, prompting for whichever the
// configuration leaves unset
func (c *PlayCmd) resolvePack(cfg *config.Config, in io.Reader, out io.Writer) (int, []deck.Card, error) {
	p := prompt.New(in, out)

	players := cfg.Game.Players
	if players == 0 {
		n, err := p.PlayerCount()
		if err != nil {
			return 0, nil, err
		}
		players = n
	}

	if cfg.Game.Pack == "" {
		cards, _, err := p.Pack(players)
		return players, cards, err
	}
	cards, err := pack.Load(cfg.Game.Pack, players)
	if err != nil {
		return 0, nil, err
	}
	return players, cards, nil
}

// renderSummary formats a finished game for the terminal
func renderSummary(result game.Result, dir string) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(" cardring "))
	b.WriteString("\n\n")

	row := func(label, value string) {
		b.WriteString(labelStyle.Render(label))
		b.WriteString(value)
		b.WriteString("\n")
	}

	if result.Winner > 0 {
		row("Winner", winStyle.Render(fmt.Sprintf("player %d", result.Winner)))
	} else {
		row("Winner", warnStyle.Render("none"))
	}
	if result.RunID != "" {
		row("Run", result.RunID)
	}
	row("Elapsed", result.Elapsed.Round(time.Microsecond).String())
	row("Output", dir)

	if len(result.Hands) == 0 {
		return b.String()
	}

	b.WriteString("\n")
	b.WriteString(headerStyle.Render("Players"))
	b.WriteString("\n")
	for id := 1; id <= len(result.Hands); id++ {
		row(fmt.Sprintf("  player %d", id), fmt.Sprintf("%-8s turns %-6d hand %s",
			result.States[id], result.Turns[id], joinRanks(result.Hands[id])))
	}

	b.WriteString("\n")
	b.WriteString(headerStyle.Render("Decks"))
	b.WriteString("\n")
	for n := 1; n <= len(result.Decks); n++ {
		row(fmt.Sprintf("  deck %d", n), joinRanks(result.Decks[n]))
	}

	return b.String()
}

func joinRanks(ranks []int) string {
	parts := make([]string, len(ranks))
	for i, r := range ranks {
		parts[i] = fmt.Sprint(r)
	}
	return strings.Join(parts, " ")
}
