package dismiss

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// DismissOnSignal dismisses c with ReasonSignal when one of sigs arrives.
// SIGINT and SIGTERM are used when sigs is empty. The returned function stops
// listening.
func DismissOnSignal(ctx context.Context, c *Controller, sigs ...os.Signal) (stop func()) {
	if len(sigs) == 0 {
		sigs = []os.Signal{syscall.SIGINT, syscall.SIGTERM}
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, sigs...)
	quit := make(chan struct{})

	go func() {
		select {
		case sig := <-sigCh:
			c.logger.Info("received signal, dismissing", "signal", sig)
			c.Dismiss(ReasonSignal)
		case <-ctx.Done():
		case <-c.Done():
		case <-quit:
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			signal.Stop(sigCh)
			close(quit)
		})
	}
}
