package serial

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/justyntemme/serialcontroller/pkg/framework/debug"
)

type readResult struct {
	b   byte
	n   int
	err error
}

// Poller reads single bytes from a serial port without blocking the caller
// for longer than the configured wait. At most one read is outstanding at a
// time; Tick starts one when none is outstanding and waits briefly for it.
type Poller struct {
	cfg     Config
	open    Opener
	handler func(b byte)
	log     *debug.Logger

	mu      sync.Mutex
	port    Port
	pending bool
	done    chan readResult
	reads   sync.WaitGroup
}

// NewPoller creates a poller. handler is called on the ticking goroutine for
// every byte read. A nil opener uses OpenDevice, a nil logger the default.
func NewPoller(cfg Config, opener Opener, handler func(b byte), logger *debug.Logger) *Poller {
	if opener == nil {
		opener = OpenDevice
	}
	if logger == nil {
		logger = debug.Default().With("serial")
	}
	if handler == nil {
		handler = func(byte) {}
	}
	return &Poller{
		cfg:     cfg,
		open:    opener,
		handler: handler,
		log:     logger,
		done:    make(chan readResult, 1),
	}
}

// Open opens and configures the port. Failures are logged and returned; the
// poller stays closed and Tick does nothing.
func (p *Poller) Open() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.port != nil {
		return nil
	}

	port, err := p.open(p.cfg.PortName, p.cfg.mode())
	if err != nil {
		p.log.Error("Couldn't open port! %s: %v", p.cfg.PortName, err)
		return fmt.Errorf("%w %s: %w", ErrPortOpen, p.cfg.PortName, err)
	}

	if err := port.SetReadTimeout(p.cfg.readTimeout()); err != nil {
		p.log.Error("Couldn't set port state! %s: %v", p.cfg.PortName, err)
		_ = port.Close()
		return fmt.Errorf("%w %s: %w", ErrPortConfig, p.cfg.PortName, err)
	}

	p.port = port
	p.log.Info("serial port initialized: %s %d baud", p.cfg.PortName, p.cfg.BaudRate)
	return nil
}

// IsOpen reports whether the port was opened successfully.
func (p *Poller) IsOpen() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.port != nil
}

// Pending reports whether a read is outstanding.
func (p *Poller) Pending() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pending
}

// Tick advances the read state machine by one step and handles at most one
// byte. With no read outstanding it starts one. It then waits up to the
// configured timeout for the outstanding read; on timeout the read stays
// pending for the next tick. A completed read is handled and the next read is
// started straight away, so a byte the driver already holds is ready on the
// following tick. A cancelled ctx ends the wait early.
func (p *Poller) Tick(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.port == nil {
		return
	}

	issued := false
	if !p.pending {
		p.startRead()
		issued = true
	}

	timer := time.NewTimer(p.cfg.WaitTimeout)
	defer timer.Stop()

	select {
	case res := <-p.done:
		p.pending = false
		if res.err != nil {
			if issued {
				p.log.Error("error reading from port: %v", res.err)
			} else {
				p.log.Error("failed to get read result: %v", res.err)
			}
			return
		}
		p.deliver(res)
		p.startRead()
	case <-timer.C:
	case <-ctx.Done():
	}
}

func (p *Poller) startRead() {
	port := p.port
	p.pending = true
	p.reads.Add(1)
	go func() {
		defer p.reads.Done()
		var buf [1]byte
		n, err := port.Read(buf[:])
		p.done <- readResult{b: buf[0], n: n, err: err}
	}()
}

func (p *Poller) deliver(res readResult) {
	if res.n == 0 {
		return
	}
	p.handler(res.b)
}

// Close closes the port and waits for the outstanding read to return. An
// unread result is discarded.
func (p *Poller) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.port == nil {
		return ErrNotOpen
	}

	err := p.port.Close()
	p.reads.Wait()
	select {
	case <-p.done:
	default:
	}
	p.port = nil
	p.pending = false

	if err != nil {
		return fmt.Errorf("close %s: %w", p.cfg.PortName, err)
	}
	p.log.Info("serial port closed: %s", p.cfg.PortName)
	return nil
}
