package admission_test

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/JaimeStill/vibematch/pkg/admission"
)

func TestAcquireUpToCapacity(t *testing.T) {
	c := admission.New(3)

	for i := range 3 {
		if !c.TryAcquire() {
			t.Fatalf("acquire %d refused below capacity", i+1)
		}
	}

	if c.TryAcquire() {
		t.Error("acquire beyond capacity should be refused")
	}

	c.Release()

	if !c.TryAcquire() {
		t.Error("acquire after release should succeed")
	}
	if got := c.Active(); got != 3 {
		t.Errorf("Active() = %d, want 3", got)
	}
}

func TestReleaseClampsAtZero(t *testing.T) {
	c := admission.New(2)

	c.Release()
	c.Release()

	if got := c.Active(); got != 0 {
		t.Fatalf("Active() = %d, want 0", got)
	}

	c.TryAcquire()
	c.TryAcquire()
	if c.TryAcquire() {
		t.Error("double release must not grow capacity")
	}
}

func TestCapacityFloor(t *testing.T) {
	c := admission.New(0)
	if c.Capacity() != 1 {
		t.Errorf("Capacity() = %d, want 1", c.Capacity())
	}
}

func TestDo(t *testing.T) {
	t.Run("releases after success", func(t *testing.T) {
		c := admission.New(1)
		if err := c.Do(func() error { return nil }); err != nil {
			t.Fatalf("Do: %v", err)
		}
		if c.Active() != 0 {
			t.Errorf("slot leaked: Active() = %d", c.Active())
		}
	})

	t.Run("releases after error", func(t *testing.T) {
		c := admission.New(1)
		want := errors.New("boom")
		if err := c.Do(func() error { return want }); !errors.Is(err, want) {
			t.Fatalf("Do error = %v, want %v", err, want)
		}
		if c.Active() != 0 {
			t.Errorf("slot leaked: Active() = %d", c.Active())
		}
	})

	t.Run("releases after panic", func(t *testing.T) {
		c := admission.New(1)
		func() {
			defer func() { recover() }()
			c.Do(func() error { panic("fault") })
		}()
		if c.Active() != 0 {
			t.Errorf("slot leaked: Active() = %d", c.Active())
		}
	})

	t.Run("rejects at capacity", func(t *testing.T) {
		c := admission.New(1)
		c.TryAcquire()

		called := false
		err := c.Do(func() error {
			called = true
			return nil
		})
		if !errors.Is(err, admission.ErrCapacityExceeded) {
			t.Errorf("Do error = %v, want ErrCapacityExceeded", err)
		}
		if called {
			t.Error("fn should not run when rejected")
		}
	})
}

func TestConcurrentAcquireNeverExceedsCapacity(t *testing.T) {
	const capacity = 3
	c := admission.New(capacity)

	var (
		inside  atomic.Int32
		peak    atomic.Int32
		granted atomic.Int32
		wg      sync.WaitGroup
	)

	for range 64 {
		wg.Go(func() {
			for range 100 {
				c.Do(func() error {
					granted.Add(1)
					n := inside.Add(1)
					for {
						p := peak.Load()
						if n <= p || peak.CompareAndSwap(p, n) {
							break
						}
					}
					inside.Add(-1)
					return nil
				})
			}
		})
	}
	wg.Wait()

	if p := peak.Load(); p > capacity {
		t.Errorf("peak concurrency = %d, exceeds capacity %d", p, capacity)
	}
	if granted.Load() == 0 {
		t.Error("no slot was ever granted")
	}
	if c.Active() != 0 {
		t.Errorf("Active() = %d after all work, want 0", c.Active())
	}
}
