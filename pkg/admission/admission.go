// Package admission bounds how many units of work may run at once.
// Callers beyond capacity are turned away immediately rather than queued.
package admission

import (
	"errors"
	"sync"
)

// ErrCapacityExceeded is returned by Do when no slot is free.
var ErrCapacityExceeded = errors.New("capacity exceeded")

// Controller hands out a fixed number of non-blocking slots.
type Controller struct {
	mu       sync.Mutex
	active   int
	capacity int
}

// New creates a Controller with the given capacity. Capacities below one are
// raised to one.
func New(capacity int) *Controller {
	return &Controller{capacity: max(capacity, 1)}
}

// TryAcquire takes a slot if one is free and reports whether it did.
func (c *Controller) TryAcquire() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.active >= c.capacity {
		return false
	}
	c.active++
	return true
}

// Release returns a slot. Releasing with no active slots is a no-op.
func (c *Controller) Release() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.active > 0 {
		c.active--
	}
}

// Do runs fn while holding a slot, releasing it on every exit path including
// panics. Returns ErrCapacityExceeded without calling fn when no slot is free.
func (c *Controller) Do(fn func() error) error {
	if !c.TryAcquire() {
		return ErrCapacityExceeded
	}
	defer c.Release()
	return fn()
}

// Active returns the number of slots currently held.
func (c *Controller) Active() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

// Capacity returns the maximum number of concurrent slots.
func (c *Controller) Capacity() int {
	return c.capacity
}
