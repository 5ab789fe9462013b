package serial

import (
	"errors"
	"time"

	bugst "go.bug.st/serial"
)

var (
	// ErrNotOpen is returned by operations that need an open port.
	ErrNotOpen = errors.New("serial port not open")
	// ErrPortOpen wraps failures to open the device.
	ErrPortOpen = errors.New("couldn't open port")
	// ErrPortConfig wraps failures to apply the port state after opening.
	ErrPortConfig = errors.New("couldn't set port state")
)

// Port is the subset of go.bug.st/serial.Port the poller uses.
type Port interface {
	Read(p []byte) (int, error)
	SetReadTimeout(t time.Duration) error
	Close() error
}

// Opener opens a port with the given line settings.
type Opener func(name string, mode *bugst.Mode) (Port, error)

// OpenDevice opens a real serial device.
func OpenDevice(name string, mode *bugst.Mode) (Port, error) {
	return bugst.Open(name, mode)
}

// ListPorts returns the serial ports present on the system.
func ListPorts() ([]string, error) {
	return bugst.GetPortsList()
}
