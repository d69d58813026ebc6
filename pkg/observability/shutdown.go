package observability

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"
)

// ShutdownManager coordinates graceful shutdown of registered components.
// Hooks run in reverse registration order so dependents shut down before
// their dependencies.
type ShutdownManager struct {
	mu      sync.Mutex
	hooks   []shutdownHook
	logger  *Logger
	timeout time.Duration
}

type shutdownHook struct {
	name string
	fn   func(context.Context) error
}

// NewShutdownManager creates a shutdown manager with the given per-shutdown
// timeout.
func NewShutdownManager(logger *Logger, timeout time.Duration) *ShutdownManager {
	return &ShutdownManager{
		logger:  logger,
		timeout: timeout,
	}
}

// Register adds a named shutdown hook.
func (sm *ShutdownManager) Register(name string, fn func(context.Context) error) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.hooks = append(sm.hooks, shutdownHook{name: name, fn: fn})
}

// Shutdown runs all registered hooks in reverse order, continuing past
// failures. It returns the first error encountered.
func (sm *ShutdownManager) Shutdown(ctx context.Context) error {
	sm.mu.Lock()
	hooks := make([]shutdownHook, len(sm.hooks))
	copy(hooks, sm.hooks)
	sm.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, sm.timeout)
	defer cancel()

	var firstErr error
	for i := len(hooks) - 1; i >= 0; i-- {
		hook := hooks[i]
		sm.logger.WithField("component", hook.name).Info("Shutting down component")
		if err := hook.fn(ctx); err != nil {
			sm.logger.WithField("component", hook.name).WithError(err).Error("Component shutdown failed")
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

// WaitForShutdown blocks until SIGINT or SIGTERM is received or the context
// is cancelled, then runs all registered hooks.
func (sm *ShutdownManager) WaitForShutdown(ctx context.Context) error {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case sig := <-sigCh:
		sm.logger.WithField("signal", sig.String()).Info("Received shutdown signal")
	case <-ctx.Done():
		sm.logger.Info("Context cancelled, shutting down")
	}

	return sm.Shutdown(context.Background())
}
