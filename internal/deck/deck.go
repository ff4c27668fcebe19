package deck

import (
	"errors"
	"fmt"
	"sync"
)

// ErrPosition is returned by Insert when the position is outside the deck.
var ErrPosition = errors.New("deck: insert position out of range")

// Observer is notified after every mutation with the deck's new contents.
// It runs while the deck is locked, so notifications for one deck arrive in
// mutation order. It must not call back into the deck.
type Observer func(number int, ranks []int)

// Option configures a Deck
type Option func(*Deck)

// WithObserver registers a mutation observer
func WithObserver(fn Observer) Option {
	return func(d *Deck) {
		d.observer = fn
	}
}

// Deck is a FIFO pile of cards shared between the player drawing from its
// front and the player discarding onto its back. Each call holds the lock
// for exactly one operation.
type Deck struct {
	number   int
	observer Observer

	mu    sync.Mutex
	cards []Card
}

// New creates an empty deck. Number is the 1-based label used in logs and
// output files.
func New(number int, opts ...Option) *Deck {
	d := &Deck{
		number: number,
		cards:  make([]Card, 0, 8),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Number returns the deck's label
func (d *Deck) Number() int {
	return d.number
}

// Size returns the number of cards currently in the deck
func (d *Deck) Size() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.cards)
}

// PopFront removes and returns the top card. The boolean is false when the
// deck is empty.
func (d *Deck) PopFront() (Card, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if len(d.cards) == 0 {
		return Card{}, false
	}

	card := d.cards[0]
	d.cards[0] = Card{}
	d.cards = d.cards[1:]
	d.notify()
	return card, true
}

// PushBack appends a card to the bottom of the deck
func (d *Deck) PushBack(card Card) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.cards = append(d.cards, card)
	d.notify()
}

// Insert places a card at pos, shifting later cards back. It is meant for
// seeding a deck before play; pos must lie within [0, Size()].
func (d *Deck) Insert(pos int, card Card) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if pos < 0 || pos > len(d.cards) {
		return fmt.Errorf("%w: position %d, deck %d holds %d cards", ErrPosition, pos, d.number, len(d.cards))
	}

	d.cards = append(d.cards, Card{})
	copy(d.cards[pos+1:], d.cards[pos:])
	d.cards[pos] = card
	d.notify()
	return nil
}

// Snapshot returns the ranks in the deck from top to bottom
func (d *Deck) Snapshot() []int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return Ranks(d.cards)
}

// notify must be called with mu held
func (d *Deck) notify() {
	if d.observer != nil {
		d.observer(d.number, Ranks(d.cards))
	}
}
