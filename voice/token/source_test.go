package token

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/suite"

	"github.com/imtaco/voicelink/internal/errors"
	"github.com/imtaco/voicelink/internal/log"
	"github.com/imtaco/voicelink/voice"
)

type fakeIssuer struct {
	calls   atomic.Int32
	release chan struct{}
	err     error
}

func (f *fakeIssuer) Issue(ctx context.Context, roomID string) (voice.Token, error) {
	f.calls.Add(1)
	if f.release != nil {
		select {
		case <-f.release:
		case <-ctx.Done():
			return voice.Token{}, ctx.Err()
		}
	}
	if f.err != nil {
		return voice.Token{}, f.err
	}
	return voice.Token{Token: "tok-" + roomID, ServerURL: "wss://sfu"}, nil
}

type SourceTestSuite struct {
	suite.Suite
	clock  *clockwork.FakeClock
	issuer *fakeIssuer
	source *Source
}

func TestSourceSuite(t *testing.T) {
	suite.Run(t, new(SourceTestSuite))
}

func (s *SourceTestSuite) SetupTest() {
	s.clock = clockwork.NewFakeClock()
	s.issuer = &fakeIssuer{}
	s.source = NewSource(NewCache(s.clock, time.Hour), s.issuer,
		&Config{Timeout: time.Second}, log.NewTest(s.T()))
}

func (s *SourceTestSuite) TestCacheFirst() {
	ctx := context.Background()

	tok, fromCache, err := s.source.Token(ctx, "r1")
	s.Require().NoError(err)
	s.False(fromCache)
	s.Equal("tok-r1", tok.Token)
	s.Equal(s.clock.Now().Add(time.Hour), tok.ExpiresAt)

	tok, fromCache, err = s.source.Token(ctx, "r1")
	s.Require().NoError(err)
	s.True(fromCache)
	s.Equal("tok-r1", tok.Token)
	s.Equal(int32(1), s.issuer.calls.Load())
}

func (s *SourceTestSuite) TestRoomSwitchMisses() {
	ctx := context.Background()

	_, _, err := s.source.Token(ctx, "r1")
	s.Require().NoError(err)
	tok, fromCache, err := s.source.Token(ctx, "r2")
	s.Require().NoError(err)
	s.False(fromCache)
	s.Equal("tok-r2", tok.Token)
	s.Equal(int32(2), s.issuer.calls.Load())
}

func (s *SourceTestSuite) TestInvalidate() {
	ctx := context.Background()

	_, _, err := s.source.Token(ctx, "r1")
	s.Require().NoError(err)
	s.source.Invalidate()
	_, fromCache, err := s.source.Token(ctx, "r1")
	s.Require().NoError(err)
	s.False(fromCache)
	s.Equal(int32(2), s.issuer.calls.Load())
}

func (s *SourceTestSuite) TestErrorNotCached() {
	s.issuer.err = errors.New(voice.ErrTokenIssue, "backend down")

	_, _, err := s.source.Token(context.Background(), "r1")
	s.Require().ErrorIs(err, voice.ErrTokenIssue)

	s.issuer.err = nil
	_, fromCache, err := s.source.Token(context.Background(), "r1")
	s.Require().NoError(err)
	s.False(fromCache)
}

func (s *SourceTestSuite) TestConcurrentMissesShareFetch() {
	s.issuer.release = make(chan struct{})

	var wg sync.WaitGroup
	tokens := make([]voice.Token, 5)
	for i := range tokens {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tok, _, err := s.source.Token(context.Background(), "r1")
			s.NoError(err)
			tokens[i] = tok
		}(i)
	}

	s.Eventually(func() bool { return s.issuer.calls.Load() == 1 }, time.Second, time.Millisecond)
	// give stragglers a chance to join the in-flight fetch
	time.Sleep(20 * time.Millisecond)
	close(s.issuer.release)
	wg.Wait()

	s.LessOrEqual(s.issuer.calls.Load(), int32(2))
	for _, tok := range tokens {
		s.Equal("tok-r1", tok.Token)
	}
}

func (s *SourceTestSuite) TestCallerCancelDoesNotFailFetch() {
	s.issuer.release = make(chan struct{})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, _, err := s.source.Token(ctx, "r1")
		done <- err
	}()

	s.Eventually(func() bool { return s.issuer.calls.Load() == 1 }, time.Second, time.Millisecond)
	cancel()
	s.Require().ErrorIs(<-done, voice.ErrTokenIssue)

	close(s.issuer.release)
	s.Eventually(func() bool {
		_, ok := s.source.cache.Get("r1")
		return ok
	}, time.Second, time.Millisecond)
}

func (s *SourceTestSuite) TestLateFetchKeepsNewerRoom() {
	s.issuer.release = make(chan struct{})

	done := make(chan voice.Token, 1)
	go func() {
		tok, _, err := s.source.Token(context.Background(), "r1")
		s.NoError(err)
		done <- tok
	}()
	s.Eventually(func() bool { return s.issuer.calls.Load() == 1 }, time.Second, time.Millisecond)

	// r2 lands in the slot while r1 is still being issued
	s.source.cache.Set("r2", voice.Token{Token: "tok-r2", ServerURL: "wss://sfu"}, 0)
	close(s.issuer.release)

	s.Equal("tok-r1", (<-done).Token)
	tok, fromCache, err := s.source.Token(context.Background(), "r2")
	s.Require().NoError(err)
	s.True(fromCache)
	s.Equal("tok-r2", tok.Token)
	s.Equal(int32(1), s.issuer.calls.Load())
}

func (s *SourceTestSuite) TestFetchAcrossInvalidateIsNotCached() {
	s.issuer.release = make(chan struct{})

	done := make(chan error, 1)
	go func() {
		_, _, err := s.source.Token(context.Background(), "r1")
		done <- err
	}()
	s.Eventually(func() bool { return s.issuer.calls.Load() == 1 }, time.Second, time.Millisecond)

	s.source.Invalidate()
	close(s.issuer.release)
	s.Require().NoError(<-done)

	_, ok := s.source.cache.Get("r1")
	s.False(ok)
}
