package serial

import (
	"bytes"
	"errors"
	"sync"
	"time"

	bugst "go.bug.st/serial"

	"github.com/justyntemme/serialcontroller/pkg/framework/debug"
)

// fakePort serves reads from a channel. A read blocks until a byte or error
// is fed or the port is closed.
type fakePort struct {
	feed      chan readResult
	closed    chan struct{}
	closeOnce sync.Once

	timeoutErr error
	timeout    time.Duration
}

func newFakePort() *fakePort {
	return &fakePort{
		feed:   make(chan readResult, 16),
		closed: make(chan struct{}),
	}
}

func (f *fakePort) Read(p []byte) (int, error) {
	select {
	case r := <-f.feed:
		if r.err != nil {
			return 0, r.err
		}
		if r.n == 0 {
			return 0, nil
		}
		p[0] = r.b
		return 1, nil
	case <-f.closed:
		return 0, errors.New("port closed")
	}
}

func (f *fakePort) SetReadTimeout(t time.Duration) error {
	f.timeout = t
	return f.timeoutErr
}

func (f *fakePort) Close() error {
	f.closeOnce.Do(func() { close(f.closed) })
	return nil
}

func (f *fakePort) isClosed() bool {
	select {
	case <-f.closed:
		return true
	default:
		return false
	}
}

func (f *fakePort) sendByte(b byte) { f.feed <- readResult{b: b, n: 1} }

func openerFor(port *fakePort, seen **bugst.Mode) Opener {
	return func(name string, mode *bugst.Mode) (Port, error) {
		if seen != nil {
			*seen = mode
		}
		return port, nil
	}
}

// syncBuffer is a bytes.Buffer safe for the logger and the test to share.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (s *syncBuffer) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Write(p)
}

func (s *syncBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.String()
}

func testLogger() (*debug.Logger, *syncBuffer) {
	out := &syncBuffer{}
	logger := debug.New(out, "test", debug.FlagLevel)
	logger.SetLevel(debug.LogLevelDebug)
	return logger, out
}
