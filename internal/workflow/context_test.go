package workflow

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWithEitherDone(t *testing.T) {
	t.Run("second parent canceled", func(t *testing.T) {
		a := context.Background()
		b, cancelB := context.WithCancel(context.Background())

		ctx, cancel := WithEitherDone(a, b)
		defer cancel()

		cancelB()
		select {
		case <-ctx.Done():
		case <-time.After(time.Second):
			t.Fatal("context not canceled by b")
		}
	})

	t.Run("release keeps parents alive", func(t *testing.T) {
		a, cancelA := context.WithCancel(context.Background())
		defer cancelA()

		ctx, cancel := WithEitherDone(a, context.Background())
		cancel()

		assert.Error(t, ctx.Err())
		assert.NoError(t, a.Err())
	})
}

func TestWithEitherDoneCause(t *testing.T) {
	errStop := assert.AnError
	b, cancelB := context.WithCancelCause(context.Background())

	ctx, cancel := WithEitherDone(context.Background(), b)
	defer cancel()

	cancelB(errStop)
	<-ctx.Done()
	assert.ErrorIs(t, context.Cause(ctx), errStop)
	assert.ErrorIs(t, ctx.Err(), context.Canceled)
}
