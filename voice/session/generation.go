package session

import "go.uber.org/atomic"

// Generation tags one connect or disconnect call.
type Generation = uint64

// Guard hands out generations. Work started under generation g may only
// touch shared state while IsCurrent(g) holds.
type Guard struct {
	current atomic.Uint64
}

// Bump invalidates every earlier generation and returns the new one.
func (g *Guard) Bump() Generation {
	return g.current.Inc()
}

func (g *Guard) Current() Generation {
	return g.current.Load()
}

func (g *Guard) IsCurrent(gen Generation) bool {
	return g.current.Load() == gen
}
