package token

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/singleflight"

	"github.com/imtaco/voicelink/internal/errors"
	"github.com/imtaco/voicelink/internal/log"
	intotel "github.com/imtaco/voicelink/internal/otel"
	"github.com/imtaco/voicelink/voice"
)

var tracer = intotel.Tracer("voicelink/token")

// Source serves tokens from the cache and falls back to the issuer.
// Concurrent misses for the same room share one backend request.
type Source struct {
	cache        *Cache
	issuer       Issuer
	ttl          time.Duration
	fetchTimeout time.Duration
	group        singleflight.Group
	logger       *log.Logger
}

func NewSource(cache *Cache, issuer Issuer, cfg *Config, logger *log.Logger) *Source {
	if logger == nil {
		panic("logger is required")
	}
	// room for every retry attempt plus the final request
	fetchTimeout := cfg.Retry.MaxElapsed + cfg.Timeout
	if cfg.Timeout <= 0 {
		fetchTimeout += defaultTimeout
	}
	return &Source{
		cache:        cache,
		issuer:       issuer,
		ttl:          cfg.TTL,
		fetchTimeout: fetchTimeout,
		logger:       logger,
	}
}

func (s *Source) Token(ctx context.Context, roomID string) (tok voice.Token, fromCache bool, err error) {
	ctx, span := intotel.StartSpan(ctx, tracer, "token.get", attribute.String("room.id", roomID))
	defer func() { intotel.EndSpan(span, err) }()

	if t, ok := s.cache.Get(roomID); ok {
		cacheHits.Add(ctx, 1)
		span.SetAttributes(attribute.Bool("cache.hit", true))
		return t, true, nil
	}
	cacheMisses.Add(ctx, 1)

	// The shared fetch outlives any single waiter so one caller giving up
	// does not fail the others. A fetch that finishes after the slot moved
	// on (another room, an invalidation) still answers its waiters but is
	// not cached.
	ch := s.group.DoChan(roomID, func() (any, error) {
		fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.fetchTimeout)
		defer cancel()

		version := s.cache.Version()
		t, err := s.issuer.Issue(fctx, roomID)
		if err != nil {
			return nil, err
		}
		t, ok := s.cache.SetIfUnchanged(roomID, t, s.ttl, version)
		if !ok {
			staleFetches.Add(fctx, 1)
			s.logger.Debug("token not cached, slot changed during fetch", log.Room(roomID))
		}
		return t, nil
	})

	select {
	case <-ctx.Done():
		return voice.Token{}, false, errors.Wrap(voice.ErrTokenIssue, ctx.Err(), "wait for token")
	case res := <-ch:
		if res.Err != nil {
			s.logger.Warn("token fetch failed", log.Room(roomID), log.Error(res.Err))
			return voice.Token{}, false, res.Err
		}
		return res.Val.(voice.Token), false, nil //nolint:forcetypeassert
	}
}

func (s *Source) Invalidate() {
	s.cache.Invalidate()
}
