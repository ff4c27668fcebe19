package game

// Turn describes one completed draw-discard step
type Turn struct {
	Drawn     int
	Discarded int
	FromDeck  int
	ToDeck    int
	Hand      []int
}

// Observer receives game events for persistence. Calls for a single player
// come from that player's goroutine; DeckChanged is called with the deck
// locked and must not touch the deck.
type Observer interface {
	DeckChanged(deck int, ranks []int)
	InitialHand(player int, hand []int)
	TurnTaken(player int, turn Turn)
	PlayerExited(player int, winner int, hand []int)
}

// NopObserver discards every event
type NopObserver struct{}

func (NopObserver) DeckChanged(int, []int)       {}
func (NopObserver) InitialHand(int, []int)       {}
func (NopObserver) TurnTaken(int, Turn)          {}
func (NopObserver) PlayerExited(int, int, []int) {}
