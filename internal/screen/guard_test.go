package screen

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGuardSerialisesOneAction(t *testing.T) {
	var g Guard

	require.False(t, g.Busy())
	require.True(t, g.TryBegin())
	require.True(t, g.Busy())

	// double-click while in flight
	require.False(t, g.TryBegin())

	g.End()
	require.False(t, g.Busy())
	require.True(t, g.TryBegin())
}

func TestGuardUnderContention(t *testing.T) {
	var g Guard
	var mu sync.Mutex
	won := 0

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if g.TryBegin() {
				mu.Lock()
				won++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	require.Equal(t, 1, won, "exactly one concurrent attempt wins")
}

func TestViewApplyDropsStaleGeneration(t *testing.T) {
	var v View

	first := v.Enter()
	applied := 0
	require.True(t, v.Apply(first, func() { applied++ }))
	require.Equal(t, 1, applied)

	// navigation invalidates the earlier generation
	second := v.Enter()
	require.False(t, v.Apply(first, func() { applied++ }), "stale response must not touch the view")
	require.Equal(t, 1, applied)

	require.True(t, v.Apply(second, func() { applied++ }))
	require.Equal(t, 2, applied)
}

func TestViewGenerationsAreMonotonic(t *testing.T) {
	var v View
	prev := v.Enter()
	for i := 0; i < 10; i++ {
		next := v.Enter()
		require.Greater(t, next, prev)
		prev = next
	}
}
