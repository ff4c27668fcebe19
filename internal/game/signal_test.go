package game

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignalClaimOnce(t *testing.T) {
	s := NewSignal()
	_, ok := s.Winner()
	require.False(t, ok)
	require.False(t, s.IsSet())

	require.True(t, s.Claim(3))
	require.False(t, s.Claim(4))
	require.False(t, s.Claim(3))

	winner, ok := s.Winner()
	assert.True(t, ok)
	assert.Equal(t, 3, winner)

	select {
	case <-s.Done():
	default:
		t.Fatal("Done should be closed after a claim")
	}
}

func TestSignalRejectsInvalidID(t *testing.T) {
	s := NewSignal()
	assert.False(t, s.Claim(0))
	assert.False(t, s.Claim(-2))
	assert.False(t, s.IsSet())
}

func TestSignalConcurrentClaims(t *testing.T) {
	t.Parallel()

	for range 50 {
		s := NewSignal()
		var (
			wins  atomic.Int32
			start = make(chan struct{})
			wg    sync.WaitGroup
		)
		for id := 1; id <= 32; id++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				<-start
				if s.Claim(id) {
					wins.Add(1)
				}
			}()
		}
		close(start)
		wg.Wait()

		require.Equal(t, int32(1), wins.Load())
		require.True(t, s.IsSet())
	}
}
