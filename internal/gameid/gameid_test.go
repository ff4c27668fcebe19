package gameid

import (
	"bytes"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	id, err := Generate()
	require.NoError(t, err)
	assert.Len(t, id, encodedLen)
	assert.NoError(t, Validate(id))
	for _, c := range id {
		assert.True(t, strings.ContainsRune(alphabet, c), "unexpected character %q", c)
	}
}

func TestGenerateUnique(t *testing.T) {
	seen := make(map[string]bool)
	for range 1000 {
		id := MustGenerate()
		require.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestGenerateTimeSorted(t *testing.T) {
	var ids []string
	for range 5 {
		ids = append(ids, MustGenerate())
		time.Sleep(2 * time.Millisecond)
	}
	assert.True(t, sort.StringsAreSorted(ids), "ids should sort by creation time: %v", ids)
}

func TestGeneratorDeterministicEntropy(t *testing.T) {
	entropy := bytes.Repeat([]byte{0xab}, 64)
	a, err := NewGenerator(bytes.NewReader(entropy)).Generate()
	require.NoError(t, err)
	require.NoError(t, Validate(a))
}

func TestTime(t *testing.T) {
	before := time.Now().Add(-time.Second)
	id := MustGenerate()
	created, err := Time(id)
	require.NoError(t, err)
	assert.True(t, created.After(before))
	assert.True(t, created.Before(time.Now().Add(time.Second)))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		id   string
	}{
		{"too short", "abc"},
		{"too long", strings.Repeat("0", 27)},
		{"bad character", strings.Repeat("u", encodedLen)},
		{"not version 7", strings.Repeat("0", encodedLen)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, Validate(tt.id))
		})
	}
}
