// Package prompt asks the user for game settings on a terminal, repeating
// each question until the answer is usable.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/lox/cardring/internal/deck"
	"github.com/lox/cardring/internal/pack"
)

// LoadFunc loads and validates a pack for the given player count
type LoadFunc func(path string, players int) ([]deck.Card, error)

// Prompter reads answers line by line from an input stream
type Prompter struct {
	scanner *bufio.Scanner
	out     io.Writer
	load    LoadFunc
}

// New creates a prompter that validates packs with pack.Load
func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		scanner: bufio.NewScanner(in),
		out:     out,
		load:    pack.Load,
	}
}

// PlayerCount asks until it gets a positive integer
func (p *Prompter) PlayerCount() (int, error) {
	for {
		answer, err := p.ask("Please enter the number of players: ")
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(answer)
		if err != nil {
			fmt.Fprintln(p.out, "Invalid input. Enter an integer value.")
			continue
		}
		if n <= 0 {
			fmt.Fprintln(p.out, "Invalid input. Enter a positive integer.")
			continue
		}
		return n, nil
	}
}

// Pack asks for a pack file until one loads for the given player count. It
// returns the cards and the path they came from.
func (p *Prompter) Pack(players int) ([]deck.Card, string, error) {
	for {
		path, err := p.ask("Please enter location of pack to load: ")
		if err != nil {
			return nil, "", err
		}
		if path == "" {
			fmt.Fprintln(p.out, "Input cannot be empty. Try again.")
			continue
		}
		cards, err := p.load(path, players)
		if err != nil {
			fmt.Fprintf(p.out, "Invalid pack: %v. Try again.\n", err)
			continue
		}
		return cards, path, nil
	}
}

func (p *Prompter) ask(question string) (string, error) {
	fmt.Fprint(p.out, question)
	if !p.scanner.Scan() {
		if err := p.scanner.Err(); err != nil {
			return "", fmt.Errorf("prompt: read input: %w", err)
		}
		return "", fmt.Errorf("prompt: %w", io.ErrUnexpectedEOF)
	}
	return strings.TrimSpace(p.scanner.Text()), nil
}

// IsEOF reports whether err means the input ran out before an answer
func IsEOF(err error) bool {
	return errors.Is(err, io.ErrUnexpectedEOF)
}
