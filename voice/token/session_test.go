package token

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imtaco/voicelink/voice"
)

func TestSessionStore(t *testing.T) {
	ctx := context.Background()
	store := NewSessionStore("")

	_, err := store.AuthToken(ctx)
	require.ErrorIs(t, err, voice.ErrAuth)

	changes := 0
	store.OnChange(func() { changes++ })

	store.SetAuthToken("user-session")
	got, err := store.AuthToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, "user-session", got)

	// same value is not a change
	store.SetAuthToken("user-session")
	assert.Equal(t, 1, changes)

	store.Clear()
	assert.Equal(t, 2, changes)
	_, err = store.AuthToken(ctx)
	require.ErrorIs(t, err, voice.ErrAuth)
}
