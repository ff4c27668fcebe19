package game

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/cardring/internal/deck"
	"golang.org/x/sync/errgroup"
)

const (
	// HandSize is the number of cards a player holds between turns
	HandSize = 4
	// CardsPerPlayer is the pack size per seated player
	CardsPerPlayer = 8
	// CapacityThreshold is the right-deck size at which a player stops drawing
	CapacityThreshold = 5

	defaultIdleBackoff = time.Millisecond
)

var (
	ErrPlayerCount = errors.New("game: player count must be positive")
	ErrPackSize    = errors.New("game: pack size does not match player count")
	ErrNoWinner    = errors.New("game: ended without a winner")
	ErrAlreadyRun  = errors.New("game: already run")
)

// Config holds the parameters of a single game
type Config struct {
	Players     int
	IdleBackoff time.Duration
}

// Option configures a Game
type Option func(*Game)

// WithLogger sets the logger used by the coordinator and its players
func WithLogger(logger *log.Logger) Option {
	return func(g *Game) {
		g.logger = logger
	}
}

// WithObserver sets the persistence observer
func WithObserver(o Observer) Option {
	return func(g *Game) {
		g.observer = o
	}
}

// WithClock sets the clock used for idle backoff and timing
func WithClock(clock quartz.Clock) Option {
	return func(g *Game) {
		g.clock = clock
	}
}

// WithRunID tags the game's log lines and result
func WithRunID(id string) Option {
	return func(g *Game) {
		g.runID = id
	}
}

// Result summarises a finished game
type Result struct {
	RunID   string
	Winner  int
	Turns   map[int]int   // player id -> completed turns
	States  map[int]State // player id -> final state
	Hands   map[int][]int // player id -> final hand
	Decks   map[int][]int // deck number -> final contents
	Elapsed time.Duration
}

// CardCount returns the number of cards across every hand and deck
func (r Result) CardCount() int {
	total := 0
	for _, h := range r.Hands {
		total += len(h)
	}
	for _, d := range r.Decks {
		total += len(d)
	}
	return total
}

// Game builds the ring of decks and players and coordinates a single run
type Game struct {
	cfg         Config
	runID       string
	logger      *log.Logger
	observer    Observer
	clock       quartz.Clock
	idleBackoff time.Duration

	signal  *Signal
	decks   []*deck.Deck
	players []*Player
	started atomic.Bool
}

// New validates the pack, builds the ring and deals the cards. On error
// nothing has been constructed or started.
func New(cfg Config, cards []deck.Card, opts ...Option) (*Game, error) {
	if cfg.Players <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrPlayerCount, cfg.Players)
	}
	if want := CardsPerPlayer * cfg.Players; len(cards) != want {
		return nil, fmt.Errorf("%w: got %d cards, want %d for %d players", ErrPackSize, len(cards), want, cfg.Players)
	}

	g := &Game{
		cfg:         cfg,
		logger:      log.NewWithOptions(io.Discard, log.Options{}),
		observer:    NopObserver{},
		clock:       quartz.NewReal(),
		idleBackoff: cfg.IdleBackoff,
		signal:      NewSignal(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.idleBackoff <= 0 {
		g.idleBackoff = defaultIdleBackoff
	}
	if g.runID != "" {
		g.logger = g.logger.With("run", g.runID)
	}

	n := cfg.Players
	g.decks = make([]*deck.Deck, n)
	for i := range n {
		g.decks[i] = deck.New(i+1, deck.WithObserver(g.observer.DeckChanged))
	}
	g.players = make([]*Player, n)
	for i := range n {
		g.players[i] = newPlayer(i+1, g.decks[i], g.decks[(i+1)%n], g)
	}

	if err := g.deal(cards); err != nil {
		return nil, err
	}
	return g, nil
}

// deal hands out HandSize cards to each player one at a time, then spreads
// the rest over the decks the same way
func (g *Game) deal(cards []deck.Card) error {
	n := len(g.players)
	handCards := HandSize * n

	for i, c := range cards[:handCards] {
		g.players[i%n].deal(c)
	}
	for i, c := range cards[handCards:] {
		d := g.decks[i%n]
		if err := d.Insert(d.Size(), c); err != nil {
			return fmt.Errorf("seeding deck %d: %w", d.Number(), err)
		}
	}

	g.logger.Debug("Cards dealt", "players", n, "cards", len(cards))
	return nil
}

// Players returns the players in seat order
func (g *Game) Players() []*Player { return g.players }

// Decks returns the decks in ring order
func (g *Game) Decks() []*deck.Deck { return g.decks }

// Signal returns the game's termination signal
func (g *Game) Signal() *Signal { return g.signal }

// Reader returns the id of the player that draws from deck index i
func (g *Game) Reader(i int) int {
	return g.players[i].ID()
}

// Writer returns the id of the player that discards to deck index i
func (g *Game) Writer(i int) int {
	n := len(g.players)
	return g.players[(i-1+n)%n].ID()
}

// CardCount returns the cards held across all hands and decks. Only call it
// while players are not running.
func (g *Game) CardCount() int {
	total := 0
	for _, p := range g.players {
		total += len(p.hand)
	}
	for _, d := range g.decks {
		total += d.Size()
	}
	return total
}

// Run starts every player, waits for a winner or for ctx to end, stops the
// remaining players and reports the final deck contents. A game can only be
// run once.
func (g *Game) Run(ctx context.Context) (Result, error) {
	if !g.started.CompareAndSwap(false, true) {
		return Result{}, ErrAlreadyRun
	}

	start := g.clock.Now()
	g.logger.Info("Game started", "players", len(g.players))

	playCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	eg, egCtx := errgroup.WithContext(playCtx)
	for _, p := range g.players {
		eg.Go(func() error {
			return p.Run(egCtx)
		})
	}

	select {
	case <-g.signal.Done():
	case <-ctx.Done():
	}
	cancel()
	waitErr := eg.Wait()

	for _, d := range g.decks {
		g.observer.DeckChanged(d.Number(), d.Snapshot())
	}

	result := g.result(g.clock.Since(start))
	if waitErr != nil {
		return result, fmt.Errorf("player failed: %w", waitErr)
	}
	if result.Winner == 0 {
		g.logger.Warn("Game ended without a winner", "elapsed", result.Elapsed)
		return result, fmt.Errorf("%w: %w", ErrNoWinner, context.Cause(ctx))
	}

	g.logger.Info("Game finished",
		"winner", result.Winner,
		"turns", result.Turns[result.Winner],
		"elapsed", result.Elapsed)
	return result, nil
}

func (g *Game) result(elapsed time.Duration) Result {
	winner, _ := g.signal.Winner()
	r := Result{
		RunID:   g.runID,
		Winner:  winner,
		Turns:   make(map[int]int, len(g.players)),
		States:  make(map[int]State, len(g.players)),
		Hands:   make(map[int][]int, len(g.players)),
		Decks:   make(map[int][]int, len(g.decks)),
		Elapsed: elapsed,
	}
	for _, p := range g.players {
		r.Turns[p.ID()] = p.Turns()
		r.States[p.ID()] = p.State()
		r.Hands[p.ID()] = p.Hand()
	}
	for _, d := range g.decks {
		r.Decks[d.Number()] = d.Snapshot()
	}
	return r
}
