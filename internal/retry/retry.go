package retry

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/imtaco/voicelink/internal/log"
)

type Retry interface {
	Do(ctx context.Context, operation func() error) error
}

// Config bounds an exponential retry. MaxElapsed == 0 disables retrying:
// the operation runs exactly once.
type Config struct {
	InitialInterval time.Duration `mapstructure:"initial_interval"`
	MaxInterval     time.Duration `mapstructure:"max_interval"`
	MaxElapsed      time.Duration `mapstructure:"max_elapsed"`
}

func New(logger *log.Logger, initialInterval, maxInterval, maxElapsedTime time.Duration) Retry {
	return &retryImpl{
		logger:          logger,
		initialInterval: initialInterval,
		maxInterval:     maxInterval,
		maxElapsedTime:  maxElapsedTime,
	}
}

func NewFromConfig(logger *log.Logger, cfg Config) Retry {
	return New(logger, cfg.InitialInterval, cfg.MaxInterval, cfg.MaxElapsed)
}

// Permanent marks err as not worth retrying; Do returns the unwrapped err.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return backoff.Permanent(err)
}

type retryImpl struct {
	logger          *log.Logger
	initialInterval time.Duration
	maxInterval     time.Duration
	maxElapsedTime  time.Duration
}

func (r *retryImpl) Do(ctx context.Context, operation func() error) error {
	if r.maxElapsedTime <= 0 {
		err := operation()
		if perm, ok := err.(*backoff.PermanentError); ok {
			return perm.Err
		}
		return err
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = r.initialInterval
	b.MaxInterval = r.maxInterval
	b.MaxElapsedTime = r.maxElapsedTime

	attempt := 0
	return backoff.Retry(func() error {
		attempt++
		err := operation()
		if err != nil {
			r.logger.Warn("Retry attempt failed",
				log.Int("attempt", attempt),
				log.Error(err))
		}
		return err
	}, backoff.WithContext(b, ctx))
}
