// Package game runs the card ring: N players seated in a circle, each
// drawing from the deck on its left and discarding onto the deck on its
// right, until one of them collects four cards of its preferred value.
//
// # Topology
//
// Player i (id i+1) draws from deck i and discards to deck (i+1) mod N, so
// every deck has exactly one reader and one writer for the whole game.
// Decks lock individually; players on disjoint decks never wait on each
// other.
//
// # Basic Usage
//
//	g, err := game.New(game.Config{Players: 4}, cards,
//	    game.WithLogger(logger),
//	    game.WithObserver(rec),
//	)
//	if err != nil {
//	    return err // ErrPackSize, ErrPlayerCount
//	}
//	result, err := g.Run(ctx)
//
// # Termination
//
// The first player to hold a winning hand claims the shared Signal with a
// single compare-and-swap. Run blocks on the signal's channel, then cancels
// the remaining players and waits for them to leave their loops before the
// final deck contents are reported.
package game
