// Package recorder persists a running game to plain text files: one file per
// deck holding its current contents, and one append-only trace per player.
// Writes are best effort. Failures are logged and never interrupt play.
package recorder

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/lox/cardring/internal/fileutil"
	"github.com/lox/cardring/internal/game"
)

// Config controls where and how files are written
type Config struct {
	Dir     string
	Players int
	// Sync fsyncs every deck rewrite. Off by default; snapshots are rewritten
	// on every card movement.
	Sync bool
}

// Recorder implements game.Observer on top of the file system
type Recorder struct {
	cfg    Config
	logger *log.Logger

	mu      sync.Mutex // guards failed flags
	decks   []*deckFile
	players []*playerFile
}

type deckFile struct {
	path   string
	failed bool
}

type playerFile struct {
	id     int
	path   string
	f      *os.File
	w      *bufio.Writer
	failed bool
}

var _ game.Observer = (*Recorder)(nil)

// New creates the output directory and truncates every player trace.
func New(cfg Config, logger *log.Logger) (*Recorder, error) {
	if cfg.Players <= 0 {
		return nil, fmt.Errorf("recorder: player count must be positive, got %d", cfg.Players)
	}
	if cfg.Dir == "" {
		cfg.Dir = "output"
	}
	if err := fileutil.EnsureDir(cfg.Dir); err != nil {
		return nil, fmt.Errorf("recorder: %w", err)
	}

	r := &Recorder{
		cfg:     cfg,
		logger:  logger.WithPrefix("recorder"),
		decks:   make([]*deckFile, cfg.Players),
		players: make([]*playerFile, cfg.Players),
	}
	for i := range cfg.Players {
		r.decks[i] = &deckFile{path: DeckPath(cfg.Dir, i+1)}

		path := PlayerPath(cfg.Dir, i+1)
		f, err := os.Create(path)
		if err != nil {
			r.Close()
			return nil, fmt.Errorf("recorder: create player log: %w", err)
		}
		r.players[i] = &playerFile{id: i + 1, path: path, f: f, w: bufio.NewWriter(f)}
	}
	return r, nil
}

// DeckPath returns the snapshot file for a deck
func DeckPath(dir string, number int) string {
	return filepath.Join(dir, fmt.Sprintf("deck%d_output.txt", number))
}

// PlayerPath returns the trace file for a player
func PlayerPath(dir string, id int) string {
	return filepath.Join(dir, fmt.Sprintf("player%d_output.txt", id))
}

// FormatDeck renders a deck snapshot as written to disk
func FormatDeck(number int, ranks []int) string {
	return fmt.Sprintf("deck%d contents: %s", number, joinRanks(ranks))
}

// DeckChanged rewrites the deck's snapshot file. The game calls it while the
// deck is locked, so a deck's file is never written concurrently.
func (r *Recorder) DeckChanged(number int, ranks []int) {
	d := r.deck(number)
	if d == nil {
		return
	}

	var opts []fileutil.WriteOption
	if r.cfg.Sync {
		opts = append(opts, fileutil.WithSync())
	}
	err := fileutil.WriteFileAtomic(d.path, []byte(FormatDeck(number, ranks)), 0o644, opts...)
	if err != nil {
		r.failure(&d.failed, "Failed to write deck snapshot", err, "deck", number, "path", d.path)
	}
}

func (r *Recorder) InitialHand(player int, hand []int) {
	r.writeLines(player, fmt.Sprintf("player %d initial hand %s", player, joinRanks(hand)))
}

func (r *Recorder) TurnTaken(player int, turn game.Turn) {
	r.writeLines(player,
		fmt.Sprintf("player %d draws a %d from deck %d", player, turn.Drawn, turn.FromDeck),
		fmt.Sprintf("player %d discards a %d to deck %d", player, turn.Discarded, turn.ToDeck),
		fmt.Sprintf("player %d current hand is %s", player, joinRanks(turn.Hand)),
	)
}

func (r *Recorder) PlayerExited(player int, winner int, hand []int) {
	var lines []string
	switch {
	case winner == player:
		lines = append(lines, fmt.Sprintf("player %d wins", player))
	case winner > 0:
		lines = append(lines, fmt.Sprintf("player %d has informed player %d that player %d has won", winner, player, winner))
	default:
		lines = append(lines, fmt.Sprintf("player %d stopped without a winner", player))
	}
	lines = append(lines,
		fmt.Sprintf("player %d exits", player),
		fmt.Sprintf("player %d final hand: %s", player, joinRanks(hand)),
	)
	r.writeLines(player, lines...)

	if p := r.player(player); p != nil {
		if err := p.w.Flush(); err != nil {
			r.failure(&p.failed, "Failed to flush player log", err, "player", player, "path", p.path)
		}
	}
}

// Close flushes and closes every player trace
func (r *Recorder) Close() error {
	var errs []error
	for _, p := range r.players {
		if p == nil {
			continue
		}
		if err := p.w.Flush(); err != nil {
			errs = append(errs, fmt.Errorf("flush %s: %w", p.path, err))
		}
		if err := p.f.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %s: %w", p.path, err))
		}
	}
	return errors.Join(errs...)
}

// writeLines is only called from the player's own goroutine
func (r *Recorder) writeLines(player int, lines ...string) {
	p := r.player(player)
	if p == nil {
		return
	}
	for _, line := range lines {
		if _, err := p.w.WriteString(line + "\n"); err != nil {
			r.failure(&p.failed, "Failed to write player log", err, "player", player, "path", p.path)
			return
		}
	}
}

// failure logs the first error for a file loudly and later ones quietly
func (r *Recorder) failure(failed *bool, msg string, err error, keyvals ...any) {
	r.mu.Lock()
	first := !*failed
	*failed = true
	r.mu.Unlock()

	keyvals = append(keyvals, "error", err)
	if first {
		r.logger.Warn(msg, keyvals...)
		return
	}
	r.logger.Debug(msg, keyvals...)
}

func (r *Recorder) deck(number int) *deckFile {
	if number < 1 || number > len(r.decks) {
		return nil
	}
	return r.decks[number-1]
}

func (r *Recorder) player(id int) *playerFile {
	if id < 1 || id > len(r.players) {
		return nil
	}
	return r.players[id-1]
}

func joinRanks(ranks []int) string {
	parts := make([]string, len(ranks))
	for i, v := range ranks {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, " ")
}
