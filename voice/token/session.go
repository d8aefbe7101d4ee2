package token

import (
	"context"
	"sync"

	"github.com/imtaco/voicelink/internal/errors"
	"github.com/imtaco/voicelink/voice"
)

// SessionStore holds the signed-in user's backend auth token.
type SessionStore struct {
	mu        sync.RWMutex
	authToken string
	onChange  []func()
}

func NewSessionStore(authToken string) *SessionStore {
	return &SessionStore{authToken: authToken}
}

// OnChange registers fn to run whenever the session changes or is cleared.
// Credentials issued under the previous session must not outlive it.
func (s *SessionStore) OnChange(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = append(s.onChange, fn)
}

func (s *SessionStore) SetAuthToken(authToken string) {
	s.swap(authToken)
}

func (s *SessionStore) Clear() {
	s.swap("")
}

func (s *SessionStore) swap(authToken string) {
	s.mu.Lock()
	changed := s.authToken != authToken
	s.authToken = authToken
	hooks := s.onChange
	s.mu.Unlock()

	if !changed {
		return
	}
	for _, fn := range hooks {
		fn()
	}
}

func (s *SessionStore) AuthToken(_ context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.authToken == "" {
		return "", errors.New(voice.ErrAuth, "no signed-in session")
	}
	return s.authToken, nil
}
