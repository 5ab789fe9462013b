// Package serial polls a serial port one byte at a time from a periodic idle
// callback and translates the bytes it reads into MIDI messages.
package serial

import (
	"errors"
	"fmt"
	"time"

	bugst "go.bug.st/serial"
)

// Port defaults.
const (
	DefaultPortName    = "COM8"
	DefaultBaudRate    = 9600
	DefaultDataBits    = 8
	DefaultWaitTimeout = 10 * time.Millisecond
)

// Config describes the port to open and how long a tick may wait for a
// pending read.
type Config struct {
	PortName string
	BaudRate int
	DataBits int
	Parity   bugst.Parity
	StopBits bugst.StopBits

	// WaitTimeout bounds the wait for an outstanding read on each tick.
	WaitTimeout time.Duration

	// ReadTimeout is the driver read timeout. Zero or negative blocks until a
	// byte arrives or the port is closed.
	ReadTimeout time.Duration
}

// DefaultConfig returns the 9600 8N1 configuration on COM8.
func DefaultConfig() Config {
	return Config{
		PortName:    DefaultPortName,
		BaudRate:    DefaultBaudRate,
		DataBits:    DefaultDataBits,
		Parity:      bugst.NoParity,
		StopBits:    bugst.OneStopBit,
		WaitTimeout: DefaultWaitTimeout,
	}
}

// Validate checks the configuration for values the driver would reject.
func (c Config) Validate() error {
	var errs []error
	if c.PortName == "" {
		errs = append(errs, errors.New("port name is empty"))
	}
	if c.BaudRate <= 0 {
		errs = append(errs, fmt.Errorf("invalid baud rate %d", c.BaudRate))
	}
	if c.DataBits < 5 || c.DataBits > 8 {
		errs = append(errs, fmt.Errorf("invalid data bits %d", c.DataBits))
	}
	if c.WaitTimeout < 0 {
		errs = append(errs, fmt.Errorf("negative wait timeout %v", c.WaitTimeout))
	}
	return errors.Join(errs...)
}

func (c Config) mode() *bugst.Mode {
	return &bugst.Mode{
		BaudRate: c.BaudRate,
		DataBits: c.DataBits,
		Parity:   c.Parity,
		StopBits: c.StopBits,
	}
}

func (c Config) readTimeout() time.Duration {
	if c.ReadTimeout <= 0 {
		return bugst.NoTimeout
	}
	return c.ReadTimeout
}
