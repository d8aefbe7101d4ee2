package workflow

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/imtaco/voicelink/internal/log"
)

func canceled() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	return ctx
}

func TestWaitGracefulShutdown(t *testing.T) {
	t.Run("completes", func(t *testing.T) {
		ran := false
		ok := WaitGracefulShutdown(canceled(), log.NewTest(t), func(ctx context.Context) {
			assert.NoError(t, ctx.Err())
			ran = true
		}, time.Second)

		assert.True(t, ok)
		assert.True(t, ran)
	})

	t.Run("times out", func(t *testing.T) {
		release := make(chan struct{})
		defer close(release)

		ok := WaitGracefulShutdown(canceled(), log.NewTest(t), func(ctx context.Context) {
			<-release
		}, 20*time.Millisecond)

		assert.False(t, ok)
	})

	t.Run("panic counts as done", func(t *testing.T) {
		ok := WaitGracefulShutdown(canceled(), log.NewTest(t), func(context.Context) {
			panic("boom")
		}, time.Second)

		assert.True(t, ok)
	})
}
