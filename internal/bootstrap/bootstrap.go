// Package bootstrap provides application lifecycle helpers.
package bootstrap

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// Lifecycle runs an application function under OS signal handling and
// drains registered shutdown hooks on interrupt.
type Lifecycle struct {
	mu    sync.Mutex
	hooks []func(ctx context.Context) error
}

// New creates a new Lifecycle.
func New() *Lifecycle {
	return &Lifecycle{}
}

// OnShutdown registers a hook to call during graceful shutdown. Hooks run
// in reverse registration order (LIFO). Thread-safe.
func (l *Lifecycle) OnShutdown(fn func(ctx context.Context) error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.hooks = append(l.hooks, fn)
}

// Run executes run under a context cancelled by SIGINT or SIGTERM. When
// the context is cancelled the shutdown hooks run; when run itself fails
// first, its error is returned and the hooks are skipped.
func (l *Lifecycle) Run(ctx context.Context, run func(ctx context.Context) error) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- run(ctx)
	}()

	select {
	case <-ctx.Done():
		return l.shutdown(context.Background())
	case err := <-done:
		return err
	}
}

func (l *Lifecycle) shutdown(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	var errs []error
	for i := len(l.hooks) - 1; i >= 0; i-- {
		if err := l.hooks[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
