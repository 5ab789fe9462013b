package serial

import (
	"fmt"
	"strings"

	gomidi "gitlab.com/gomidi/midi/v2"

	"github.com/justyntemme/serialcontroller/pkg/framework/debug"
)

// Mode selects how received bytes are translated.
type Mode string

// Mapping modes.
const (
	ModeDebug Mode = "debug"
	ModeCC    Mode = "cc"
	ModeNote  Mode = "note"
)

// ParseMode parses a mode name, case-insensitively.
func ParseMode(name string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(name))); m {
	case ModeDebug, ModeCC, ModeNote:
		return m, nil
	}
	return ModeCC, fmt.Errorf("unknown mapping mode %q", name)
}

// Mapping defaults.
const (
	DefaultController = 1
	DefaultVelocity   = 100
)

// Mapping turns single serial bytes into MIDI messages.
type Mapping struct {
	Mode       Mode
	Channel    uint8
	Controller uint8
	Velocity   uint8
	Logger     *debug.Logger
}

// DefaultMapping maps bytes to the mod wheel on channel 0.
func DefaultMapping() Mapping {
	return Mapping{
		Mode:       ModeCC,
		Controller: DefaultController,
		Velocity:   DefaultVelocity,
	}
}

// Validate checks that channel, controller and velocity fit MIDI ranges.
func (m Mapping) Validate() error {
	if _, err := ParseMode(string(m.Mode)); err != nil {
		return err
	}
	if m.Channel > 15 {
		return fmt.Errorf("channel %d out of range 0-15", m.Channel)
	}
	if m.Controller > 127 {
		return fmt.Errorf("controller %d out of range 0-127", m.Controller)
	}
	if m.Velocity == 0 || m.Velocity > 127 {
		return fmt.Errorf("velocity %d out of range 1-127", m.Velocity)
	}
	return nil
}

// Translate maps one byte. The second result is false when the byte produces
// no message.
func (m Mapping) Translate(b byte) (gomidi.Message, bool) {
	switch m.Mode {
	case ModeDebug:
		m.logDirection(b)
		return nil, false
	case ModeNote:
		if b&0x80 != 0 {
			return gomidi.NoteOffVelocity(m.Channel, b&0x7F, 0), true
		}
		return gomidi.NoteOn(m.Channel, b, m.Velocity), true
	default:
		return gomidi.ControlChange(m.Channel, m.Controller, min(b, 127)), true
	}
}

func (m Mapping) logDirection(b byte) {
	log := m.Logger
	if log == nil {
		log = debug.Default()
	}
	switch b {
	case '0':
		log.Info("Left!")
	case '1':
		log.Info("Center!")
	case '2':
		log.Info("Right!")
	}
}
