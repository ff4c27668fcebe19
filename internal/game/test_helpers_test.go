package game

import (
	"io"
	rand "math/rand/v2"
	"sync"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/lox/cardring/internal/deck"
)

func testLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

// winnablePack returns 8n cards holding four of every preferred value, the
// remainder drawn from 1..n+2, shuffled with the given seed.
func winnablePack(t *testing.T, n int, seed uint64) []deck.Card {
	t.Helper()
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	ranks := make([]int, 0, CardsPerPlayer*n)
	for v := 1; v <= n; v++ {
		for range HandSize {
			ranks = append(ranks, v)
		}
	}
	for len(ranks) < CardsPerPlayer*n {
		ranks = append(ranks, 1+rng.IntN(n+2))
	}
	rng.Shuffle(len(ranks), func(i, j int) { ranks[i], ranks[j] = ranks[j], ranks[i] })
	return deck.FromRanks(ranks)
}

// dealtPack lays out a pack so that player i (0-based) is dealt hands[i]
// and the decks are seeded round-robin from rest.
func dealtPack(hands [][]int, rest []int) []deck.Card {
	n := len(hands)
	ranks := make([]int, 0, HandSize*n+len(rest))
	for k := range HandSize {
		for i := range n {
			ranks = append(ranks, hands[i][k])
		}
	}
	ranks = append(ranks, rest...)
	return deck.FromRanks(ranks)
}

// recordingObserver keeps everything a file recorder would persist
type recordingObserver struct {
	mu       sync.Mutex
	deckPeak map[int]int
	initial  map[int][]int
	turns    map[int][]Turn
	exits    map[int]int
	final    map[int][]int
}

func newRecordingObserver() *recordingObserver {
	return &recordingObserver{
		deckPeak: make(map[int]int),
		initial:  make(map[int][]int),
		turns:    make(map[int][]Turn),
		exits:    make(map[int]int),
		final:    make(map[int][]int),
	}
}

func (r *recordingObserver) DeckChanged(d int, ranks []int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(ranks) > r.deckPeak[d] {
		r.deckPeak[d] = len(ranks)
	}
}

func (r *recordingObserver) InitialHand(p int, hand []int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.initial[p] = hand
}

func (r *recordingObserver) TurnTaken(p int, turn Turn) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.turns[p] = append(r.turns[p], turn)
}

func (r *recordingObserver) PlayerExited(p int, winner int, hand []int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.exits[p] = winner
	r.final[p] = hand
}
