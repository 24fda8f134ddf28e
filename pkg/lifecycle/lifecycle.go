// Package lifecycle coordinates startup and shutdown hooks across subsystems.
//
// Shutdown runs in two phases. Shutdown hooks run first and drain traffic;
// release hooks run only after every shutdown hook has returned, so resources
// that in-flight requests depend on outlive the drain.
package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// ErrShutdownTimeout is returned when shutdown hooks outlive the timeout.
var ErrShutdownTimeout = errors.New("shutdown timeout")

// ReadinessChecker reports whether a subsystem is ready to serve traffic.
type ReadinessChecker interface {
	Ready() bool
}

// Coordinator manages startup and shutdown hooks for the application lifecycle.
type Coordinator struct {
	ctx        context.Context
	cancel     context.CancelFunc
	startupWg  sync.WaitGroup
	shutdownWg sync.WaitGroup
	ready      bool
	readyMu    sync.RWMutex
	shutdown   sync.Once
	releaseMu  sync.Mutex
	release    []func()
}

// New creates a Coordinator with a cancellable context.
func New() *Coordinator {
	ctx, cancel := context.WithCancel(context.Background())
	return &Coordinator{
		ctx:    ctx,
		cancel: cancel,
	}
}

// Context returns the coordinator's context, cancelled on shutdown.
func (c *Coordinator) Context() context.Context {
	return c.ctx
}

// OnStartup registers a function to run concurrently during startup.
func (c *Coordinator) OnStartup(fn func()) {
	c.startupWg.Go(fn)
}

// OnShutdown registers a function to run concurrently during shutdown.
// Shutdown hooks should block on <-c.Context().Done() before executing cleanup.
func (c *Coordinator) OnShutdown(fn func()) {
	c.shutdownWg.Go(fn)
}

// OnRelease registers a function to run once all shutdown hooks have
// returned. Release hooks run concurrently with each other.
func (c *Coordinator) OnRelease(fn func()) {
	c.releaseMu.Lock()
	c.release = append(c.release, fn)
	c.releaseMu.Unlock()
}

// Closer registers a release hook that closes the resource after the drain.
func (c *Coordinator) Closer(closeFn func() error, onErr func(error)) {
	c.OnRelease(func() {
		if err := closeFn(); err != nil && onErr != nil {
			onErr(err)
		}
	})
}

// Ready returns true after all startup hooks have completed and shutdown has
// not begun.
func (c *Coordinator) Ready() bool {
	c.readyMu.RLock()
	defer c.readyMu.RUnlock()
	return c.ready
}

// WaitForStartup blocks until all startup hooks have completed and sets the ready flag.
func (c *Coordinator) WaitForStartup() {
	c.startupWg.Wait()
	if c.ctx.Err() != nil {
		return
	}
	c.readyMu.Lock()
	c.ready = true
	c.readyMu.Unlock()
}

// Shutdown cancels the context, waits for shutdown hooks, then runs release
// hooks. Both phases share the timeout. Readiness is withdrawn before any
// hook runs. Calls after the first return nil.
func (c *Coordinator) Shutdown(timeout time.Duration) error {
	var err error
	c.shutdown.Do(func() {
		c.readyMu.Lock()
		c.ready = false
		c.readyMu.Unlock()

		c.cancel()

		done := make(chan struct{})
		go func() {
			c.shutdownWg.Wait()
			c.runRelease()
			close(done)
		}()

		select {
		case <-done:
		case <-time.After(timeout):
			err = fmt.Errorf("%w after %v", ErrShutdownTimeout, timeout)
		}
	})
	return err
}

func (c *Coordinator) runRelease() {
	c.releaseMu.Lock()
	hooks := c.release
	c.release = nil
	c.releaseMu.Unlock()

	var wg sync.WaitGroup
	for _, fn := range hooks {
		wg.Go(fn)
	}
	wg.Wait()
}
