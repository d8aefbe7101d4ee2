package token

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/imtaco/voicelink/internal/jwt"
	"github.com/imtaco/voicelink/voice"
)

const DefaultTTL = time.Hour

// Cache keeps the most recently issued room token. There is one slot: a
// token for another room replaces it.
//
// Every change to the slot bumps a version, so a writer that started before
// the change can step aside with SetIfUnchanged.
type Cache struct {
	clock clockwork.Clock
	ttl   time.Duration

	mu      sync.Mutex
	entry   *voice.Token
	version uint64
}

func NewCache(clock clockwork.Clock, ttl time.Duration) *Cache {
	if clock == nil {
		panic("clock is required")
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{clock: clock, ttl: ttl}
}

// Get returns the cached token when it was stored for roomID and has not
// expired.
func (c *Cache) Get(roomID string) (voice.Token, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.entry.ValidFor(roomID, c.clock.Now()) {
		return voice.Token{}, false
	}
	return *c.entry, true
}

// Set stores tok for roomID and returns the stored copy with its expiry
// filled in. ttl <= 0 selects the cache default. A JWT whose exp comes
// sooner shortens the lifetime; an already expired one empties the slot.
func (c *Cache) Set(roomID string, tok voice.Token, ttl time.Duration) voice.Token {
	tok, _ = c.store(roomID, tok, ttl, nil)
	return tok
}

// Version identifies the current contents of the slot.
func (c *Cache) Version() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.version
}

// SetIfUnchanged is Set that leaves the slot alone, and reports false, when
// it changed after version was read. The token is returned with its expiry
// either way.
func (c *Cache) SetIfUnchanged(roomID string, tok voice.Token, ttl time.Duration, version uint64) (voice.Token, bool) {
	return c.store(roomID, tok, ttl, &version)
}

func (c *Cache) store(roomID string, tok voice.Token, ttl time.Duration, version *uint64) (voice.Token, bool) {
	if ttl <= 0 {
		ttl = c.ttl
	}
	now := c.clock.Now()
	expiresAt := now.Add(ttl)
	if claims, err := jwt.Inspect(tok.Token); err == nil {
		if exp, ok := claims.Expiry(); ok && exp.Before(expiresAt) {
			expiresAt = exp
		}
	}

	tok.RoomID = roomID
	tok.IssuedAt = now
	tok.ExpiresAt = expiresAt

	c.mu.Lock()
	defer c.mu.Unlock()
	if version != nil && *version != c.version {
		return tok, false
	}
	c.version++
	if !expiresAt.After(now) {
		c.entry = nil
		return tok, true
	}
	c.entry = &tok
	return tok, true
}

func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entry = nil
	c.version++
}
