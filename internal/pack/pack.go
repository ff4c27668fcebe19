// Package pack reads, validates and generates pack files: plain text files
// with one non-negative card rank per line and exactly eight cards per
// player.
package pack

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	rand "math/rand/v2"
	"os"
	"strconv"
	"strings"

	"github.com/lox/cardring/internal/deck"
	"github.com/lox/cardring/internal/fileutil"
)

// CardsPerPlayer is the number of cards a pack must hold per player
const CardsPerPlayer = 8

const extension = ".txt"

var (
	ErrExtension = errors.New("pack: file must have a .txt extension")
	ErrNotFile   = errors.New("pack: not a regular file")
	ErrMalformed = errors.New("pack: line is not an integer")
	ErrNegative  = errors.New("pack: negative card value")
	ErrLineCount = errors.New("pack: wrong number of lines")
	ErrPlayers   = errors.New("pack: player count must be positive")
)

// Load reads and validates the pack at path for the given player count
func Load(path string, players int) ([]deck.Card, error) {
	path = strings.TrimSpace(path)
	if !strings.HasSuffix(path, extension) {
		return nil, fmt.Errorf("%w: %q", ErrExtension, path)
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("pack: %w", err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s", ErrNotFile, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("pack: %w", err)
	}
	defer f.Close()

	return Parse(f, players)
}

// Parse reads one rank per line from r and checks the pack holds exactly
// CardsPerPlayer cards per player.
func Parse(r io.Reader, players int) ([]deck.Card, error) {
	if players <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrPlayers, players)
	}

	var cards []deck.Card
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		rank, err := strconv.Atoi(text)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %q", ErrMalformed, line, text)
		}
		if rank < 0 {
			return nil, fmt.Errorf("%w: line %d: %d", ErrNegative, line, rank)
		}
		cards = append(cards, deck.NewCard(rank))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("pack: read: %w", err)
	}

	if want := CardsPerPlayer * players; line != want {
		return nil, fmt.Errorf("%w: got %d, want %d for %d players", ErrLineCount, line, want, players)
	}
	return cards, nil
}

// Winnable reports whether some player could ever hold a winning hand, that
// is whether any value in 1..players appears at least four times.
func Winnable(ranks []int, players int) bool {
	counts := make(map[int]int)
	for _, r := range ranks {
		if r >= 1 && r <= players {
			counts[r]++
			if counts[r] >= 4 {
				return true
			}
		}
	}
	return false
}

// Generate returns a shuffled, winnable pack for the given player count.
// Every preferred value 1..players appears four times; the remaining cards
// are drawn uniformly from the same range.
func Generate(players int, rng *rand.Rand) []int {
	ranks := make([]int, 0, CardsPerPlayer*players)
	for v := 1; v <= players; v++ {
		for range 4 {
			ranks = append(ranks, v)
		}
	}
	for len(ranks) < CardsPerPlayer*players {
		ranks = append(ranks, 1+rng.IntN(players))
	}
	rng.Shuffle(len(ranks), func(i, j int) { ranks[i], ranks[j] = ranks[j], ranks[i] })
	return ranks
}

// Shuffle reorders cards in place
func Shuffle(cards []deck.Card, rng *rand.Rand) {
	rng.Shuffle(len(cards), func(i, j int) { cards[i], cards[j] = cards[j], cards[i] })
}

// Write stores ranks at path in pack file format
func Write(path string, ranks []int) error {
	if !strings.HasSuffix(path, extension) {
		return fmt.Errorf("%w: %q", ErrExtension, path)
	}
	var b strings.Builder
	for _, r := range ranks {
		b.WriteString(strconv.Itoa(r))
		b.WriteByte('\n')
	}
	if err := fileutil.WriteFileAtomic(path, []byte(b.String()), 0o644, fileutil.WithSync()); err != nil {
		return fmt.Errorf("pack: write %s: %w", path, err)
	}
	return nil
}
