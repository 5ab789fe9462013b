// Package idle drives periodic non-audio work for a plugin instance in place
// of a host editor timer.
package idle

import (
	"context"
	"sync"
	"time"
)

// DefaultInterval is the tick period used when none is configured.
const DefaultInterval = 10 * time.Millisecond

// Handler receives idle ticks.
type Handler interface {
	OnIdle(ctx context.Context)
}

// Opener is implemented by handlers that need a one-time setup before the
// first tick, such as opening a device.
type Opener interface {
	OnUIOpen()
}

// Driver calls a Handler on its own goroutine at a fixed interval. Ticks never
// overlap.
type Driver struct {
	handler  Handler
	interval time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
	opened bool
}

// NewDriver creates a stopped driver.
func NewDriver(handler Handler, interval time.Duration) *Driver {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Driver{handler: handler, interval: interval}
}

// Start begins ticking. The first Start calls OnUIOpen if the handler
// implements Opener. Starting a running driver does nothing.
func (d *Driver) Start(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.cancel != nil {
		return
	}

	if o, ok := d.handler.(Opener); ok && !d.opened {
		o.OnUIOpen()
	}
	d.opened = true

	ctx, cancel := context.WithCancel(ctx)
	d.cancel = cancel
	d.done = make(chan struct{})
	go d.run(ctx, d.done)
}

func (d *Driver) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			d.handler.OnIdle(ctx)
		}
	}
}

// Stop halts ticking and waits for an in-flight tick to return.
func (d *Driver) Stop() {
	d.mu.Lock()
	cancel, done := d.cancel, d.done
	d.cancel, d.done = nil, nil
	d.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Running reports whether the driver is ticking.
func (d *Driver) Running() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cancel != nil
}
