package autolock

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGuardRunsDeferredAfterUnlock(t *testing.T) {
	var mu sync.Mutex
	var order []string

	g := Acquire(&mu)
	g.Defer(func() { order = append(order, "first") })
	g.Defer(func() { order = append(order, "second") })

	locked := mu.TryLock()
	require.False(t, locked, "mutex should still be held while guard is open")

	g.Release()

	require.Equal(t, []string{"first", "second"}, order)
	require.True(t, mu.TryLock(), "mutex should be free after Release")
	mu.Unlock()
}

func TestGuardWithNoDeferredFuncs(t *testing.T) {
	var mu sync.Mutex
	g := Acquire(&mu)
	g.Release()
	require.True(t, mu.TryLock())
	mu.Unlock()
}
