package deck

import "strconv"

// Card represents a single playing card. A card is nothing more than its
// rank, so it is compared and copied by value.
type Card struct {
	rank int
}

// NewCard creates a new card
func NewCard(rank int) Card {
	return Card{rank: rank}
}

// Rank returns the face value of the card
func (c Card) Rank() int {
	return c.rank
}

// String returns the string representation of a card (e.g., "7")
func (c Card) String() string {
	return strconv.Itoa(c.rank)
}

// FromRanks converts plain ranks into cards, preserving order
func FromRanks(ranks []int) []Card {
	cards := make([]Card, len(ranks))
	for i, r := range ranks {
		cards[i] = NewCard(r)
	}
	return cards
}

// Ranks returns the ranks of the given cards, preserving order
func Ranks(cards []Card) []int {
	ranks := make([]int, len(cards))
	for i, c := range cards {
		ranks[i] = c.rank
	}
	return ranks
}
