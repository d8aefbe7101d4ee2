package workflow

import "context"

// WithEitherDone derives from a a context that also ends when b does, taking
// b's cause. Values come from a only. The returned func releases both
// watchers and must be called.
func WithEitherDone(a, b context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancelCause(a)
	stop := context.AfterFunc(b, func() { cancel(context.Cause(b)) })

	return ctx, func() {
		stop()
		cancel(context.Canceled)
	}
}
