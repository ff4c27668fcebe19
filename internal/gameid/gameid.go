// Package gameid generates identifiers for game runs: UUIDv7 values encoded
// as 26 lowercase Crockford base32 characters, so IDs sort by creation time.
package gameid

import (
	"encoding/base32"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
)

// Base32 alphabet used by TypeID (Crockford's base32)
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

const encodedLen = 26

var encoding = base32.NewEncoding(alphabet).WithPadding(base32.NoPadding)

// Generator creates run IDs from a configurable entropy source
type Generator struct {
	rand io.Reader
}

// NewGenerator creates a generator. A nil reader uses crypto/rand.
func NewGenerator(rand io.Reader) *Generator {
	return &Generator{rand: rand}
}

// Generate creates a new run ID
func Generate() (string, error) {
	return NewGenerator(nil).Generate()
}

// MustGenerate is Generate for callers that cannot continue without an ID
func MustGenerate() string {
	id, err := Generate()
	if err != nil {
		panic("gameid: " + err.Error())
	}
	return id
}

// Generate creates a new run ID using the generator's entropy source
func (g *Generator) Generate() (string, error) {
	var (
		u   uuid.UUID
		err error
	)
	if g.rand != nil {
		u, err = uuid.NewV7FromReader(g.rand)
	} else {
		u, err = uuid.NewV7()
	}
	if err != nil {
		return "", fmt.Errorf("gameid: %w", err)
	}
	return encoding.EncodeToString(u[:]), nil
}

// Parse decodes a run ID back into its UUID
func Parse(id string) (uuid.UUID, error) {
	if len(id) != encodedLen {
		return uuid.Nil, fmt.Errorf("run ID must be exactly %d characters, got %d", encodedLen, len(id))
	}
	raw, err := encoding.DecodeString(id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid run ID %q: %w", id, err)
	}
	u, err := uuid.FromBytes(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid run ID %q: %w", id, err)
	}
	if u.Version() != 7 {
		return uuid.Nil, fmt.Errorf("run ID %q is not a version 7 UUID", id)
	}
	return u, nil
}

// Validate checks that id is a well formed run ID
func Validate(id string) error {
	_, err := Parse(id)
	return err
}

// Time returns the creation time embedded in a run ID
func Time(id string) (time.Time, error) {
	u, err := Parse(id)
	if err != nil {
		return time.Time{}, err
	}
	sec, nsec := u.Time().UnixTime()
	return time.Unix(sec, nsec), nil
}
