package workflow

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/imtaco/voicelink/internal/log"
)

type GracefulShutdownAction func(ctx context.Context)

// WaitGracefulShutdown blocks until ctx ends or SIGINT/SIGTERM arrives, then
// runs action with a context bounded by timeout. It reports whether action
// finished in time.
func WaitGracefulShutdown(
	ctx context.Context,
	logger *log.Logger,
	action GracefulShutdownAction,
	timeout time.Duration,
) bool {
	if ctx == nil {
		ctx = context.Background()
	}
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigs)

	logger.Info("Graceful shutdown handler registered")
	select {
	case sig := <-sigs:
		logger.Info("Shutdown signal received", log.Stringer("signal", sig))
	case <-ctx.Done():
		logger.Info("Shutdown requested", log.Error(context.Cause(ctx)))
	}

	return runBounded(logger, action, timeout)
}

func runBounded(logger *log.Logger, action GracefulShutdownAction, timeout time.Duration) bool {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic during graceful shutdown", log.Any("error", r))
			}
		}()
		logger.Info("Starting graceful shutdown", log.Duration("timeout", timeout))
		action(ctx)
	}()

	select {
	case <-done:
		logger.Info("Graceful shutdown completed")
		return true
	case <-ctx.Done():
		logger.Warn("Shutdown timeout exceeded, forcing exit")
		return false
	}
}
