package session

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGuard(t *testing.T) {
	var g Guard
	assert.Equal(t, Generation(0), g.Current())

	g1 := g.Bump()
	assert.True(t, g.IsCurrent(g1))

	g2 := g.Bump()
	assert.Greater(t, g2, g1)
	assert.False(t, g.IsCurrent(g1))
	assert.True(t, g.IsCurrent(g2))
}

func TestGuard_ConcurrentBumpsAreUnique(t *testing.T) {
	var g Guard
	const n = 100

	seen := make(chan Generation, n)
	var wg sync.WaitGroup
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			seen <- g.Bump()
		}()
	}
	wg.Wait()
	close(seen)

	unique := map[Generation]bool{}
	for gen := range seen {
		unique[gen] = true
	}
	assert.Len(t, unique, n)
	assert.Equal(t, Generation(n), g.Current())
}
