package randutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewIsDeterministic(t *testing.T) {
	a, b := New(99), New(99)
	for range 10 {
		assert.Equal(t, a.IntN(1000), b.IntN(1000))
	}
}

func TestResolve(t *testing.T) {
	seed := int64(1234)
	rng, got := Resolve(&seed)
	assert.Equal(t, seed, got)
	assert.Equal(t, New(seed).IntN(1<<20), rng.IntN(1<<20))

	_, generated := Resolve(nil)
	assert.NotZero(t, generated)
}
