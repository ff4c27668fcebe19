package game

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/cardring/internal/deck"
)

// State is the lifecycle state of a player's turn loop
type State int32

const (
	Running State = iota
	Won
	Stopped
)

// String returns the string representation of a state
func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Won:
		return "won"
	case Stopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Player collects cards of its preferred value, which is its id. The hand
// is only touched by the player's own goroutine once Run has started.
type Player struct {
	id        int
	preferred int
	left      *deck.Deck
	right     *deck.Deck
	hand      []deck.Card

	signal   *Signal
	observer Observer
	logger   *log.Logger
	clock    quartz.Clock
	backoff  time.Duration

	state atomic.Int32
	turns atomic.Int64
}

func newPlayer(id int, left, right *deck.Deck, g *Game) *Player {
	return &Player{
		id:        id,
		preferred: id,
		left:      left,
		right:     right,
		hand:      make([]deck.Card, 0, HandSize+1),
		signal:    g.signal,
		observer:  g.observer,
		logger:    g.logger.WithPrefix("player").With("player", id),
		clock:     g.clock,
		backoff:   g.idleBackoff,
	}
}

// ID returns the player's id, starting at 1
func (p *Player) ID() int { return p.id }

// PreferredValue returns the rank the player is collecting
func (p *Player) PreferredValue() int { return p.preferred }

// Left returns the deck the player draws from
func (p *Player) Left() *deck.Deck { return p.left }

// Right returns the deck the player discards to
func (p *Player) Right() *deck.Deck { return p.right }

// State returns the player's current state
func (p *Player) State() State { return State(p.state.Load()) }

// Turns returns the number of completed draw-discard steps
func (p *Player) Turns() int { return int(p.turns.Load()) }

// Hand returns the ranks in the player's hand. It is only safe to call
// before Run starts or after it returns.
func (p *Player) Hand() []int { return deck.Ranks(p.hand) }

func (p *Player) deal(c deck.Card) {
	p.hand = append(p.hand, c)
}

// Run plays turns until the player wins, another player wins or ctx is
// cancelled. Stop conditions are only checked between iterations, so a
// deck operation is never abandoned halfway.
func (p *Player) Run(ctx context.Context) error {
	p.observer.InitialHand(p.id, p.Hand())
	p.logger.Debug("Player started", "hand", p.Hand())

	for {
		if winner, ok := p.signal.Winner(); ok && winner != p.id {
			p.stop(winner)
			return nil
		}
		if ctx.Err() != nil {
			winner, _ := p.signal.Winner()
			p.stop(winner)
			return nil
		}

		if p.hasWinningHand() {
			if p.signal.Claim(p.id) {
				p.state.Store(int32(Won))
				p.logger.Info("Player wins", "hand", p.Hand(), "turns", p.Turns())
				p.observer.PlayerExited(p.id, p.id, p.Hand())
				return nil
			}
			// Lost the race to another winner between the check and the claim
			winner, _ := p.signal.Winner()
			p.stop(winner)
			return nil
		}

		if p.left.Size() > 0 && p.right.Size() < CapacityThreshold {
			p.takeTurn()
			continue
		}

		p.idle(ctx)
	}
}

// takeTurn draws from the left deck and discards one card to the right deck
func (p *Player) takeTurn() {
	drawn, ok := p.left.PopFront()
	if !ok {
		return
	}
	p.hand = append(p.hand, drawn)

	idx := chooseDiscard(p.hand, p.preferred)
	discarded := p.hand[idx]
	p.hand = append(p.hand[:idx], p.hand[idx+1:]...)
	p.right.PushBack(discarded)

	p.turns.Add(1)
	turn := Turn{
		Drawn:     drawn.Rank(),
		Discarded: discarded.Rank(),
		FromDeck:  p.left.Number(),
		ToDeck:    p.right.Number(),
		Hand:      p.Hand(),
	}
	p.logger.Debug("Turn",
		"drew", turn.Drawn,
		"discarded", turn.Discarded,
		"hand", turn.Hand)
	p.observer.TurnTaken(p.id, turn)
}

// idle waits one backoff period, waking early when the game ends
func (p *Player) idle(ctx context.Context) {
	timer := p.clock.NewTimer(p.backoff, "player", "idle")
	defer timer.Stop()

	select {
	case <-timer.C:
	case <-ctx.Done():
	case <-p.signal.Done():
	}
}

func (p *Player) stop(winner int) {
	p.state.Store(int32(Stopped))
	p.logger.Debug("Player exits", "winner", winner, "hand", p.Hand(), "turns", p.Turns())
	p.observer.PlayerExited(p.id, winner, p.Hand())
}

func (p *Player) hasWinningHand() bool {
	return isWinningHand(p.hand, p.preferred)
}

func isWinningHand(hand []deck.Card, preferred int) bool {
	if len(hand) != HandSize {
		return false
	}
	for _, c := range hand {
		if c.Rank() != preferred {
			return false
		}
	}
	return true
}

// chooseDiscard returns the index of the first card that is not the
// preferred value, or 0 when every card matches.
func chooseDiscard(hand []deck.Card, preferred int) int {
	for i, c := range hand {
		if c.Rank() != preferred {
			return i
		}
	}
	return 0
}
