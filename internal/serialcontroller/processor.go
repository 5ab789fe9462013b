// Package serialcontroller is an instrument plugin that applies a gain,
// forwards channel MIDI, turns bytes from a serial port into MIDI and plays a
// fixed chord on demand.
package serialcontroller

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/justyntemme/serialcontroller/pkg/dsp/gain"
	"github.com/justyntemme/serialcontroller/pkg/framework/bus"
	"github.com/justyntemme/serialcontroller/pkg/framework/debug"
	"github.com/justyntemme/serialcontroller/pkg/framework/param"
	"github.com/justyntemme/serialcontroller/pkg/framework/plugin"
	"github.com/justyntemme/serialcontroller/pkg/framework/process"
	"github.com/justyntemme/serialcontroller/pkg/midi"
	"github.com/justyntemme/serialcontroller/pkg/serial"
)

const (
	// Parameter IDs
	ParamGain uint32 = iota
	ParamTriggerChord
)

// TailSamples keeps the host processing long after input stops so serial
// MIDI keeps flowing.
const TailSamples = 4410000

// Chord played by Trigger Chord.
var (
	ChordNotes          = [3]uint8{60, 65, 67}
	ChordVelocity uint8 = 60
	ChordChannel  uint8 = 0
)

// Processor is one plugin instance.
type Processor struct {
	*plugin.BaseProcessor

	cfg     Config
	log     *debug.Logger
	poller  *serial.Poller
	mapping serial.Mapping

	// Events produced off the audio thread, drained each block.
	outbox  *midi.EventQueue
	drained []midi.Event

	// Audio thread only.
	triggerDown bool
	chordOn     bool

	openOnce sync.Once
}

// NewProcessor creates an instance. A nil opener opens real devices.
func NewProcessor(cfg Config, opener serial.Opener, logger *debug.Logger) *Processor {
	if logger == nil {
		logger = debug.Default()
	}

	p := &Processor{
		BaseProcessor: plugin.NewBaseProcessor(bus.NewInstrument()),
		cfg:           cfg,
		log:           logger,
		mapping:       cfg.Mapping,
		outbox:        midi.NewEventQueue(),
		drained:       make([]midi.Event, 0, 64),
	}
	if p.mapping.Logger == nil {
		p.mapping.Logger = logger
	}
	p.poller = serial.NewPoller(cfg.Serial, opener, p.handleByte, logger.With("serial"))
	p.SetTailSamples(TailSamples)
	p.initializeParameters()

	return p
}

func (p *Processor) initializeParameters() {
	err := p.GetParameters().Add(
		param.PercentParameter(ParamGain, "Gain", 100).
			ShortName("Gain").
			Build(),
		param.ButtonParameter(ParamTriggerChord, "Trigger Chord").
			ShortName("Chord").
			Build(),
	)
	if err == nil {
		err = p.GetParameters().Add(midiProxyParameters()...)
	}
	if err != nil {
		p.log.Error("register parameters: %v", err)
	}
}

// midiProxyParameters returns one hidden parameter per channel and
// controller so the host can deliver input CC, channel pressure and pitch
// bend for forwarding.
func midiProxyParameters() []*param.Parameter {
	params := make([]*param.Parameter, 0, midi.ProxyChannels*midi.ProxyControllers)
	for ch := uint8(0); ch < midi.ProxyChannels; ch++ {
		for ctrl := uint16(0); ctrl < midi.ProxyControllers; ctrl++ {
			id, _ := midi.ProxyParamID(ch, ctrl)
			b := param.New(id, proxyName(ch, ctrl)).
				Flags(param.IsHidden).
				Transient()
			if ctrl == midi.LegacyControllerPitchBend {
				b.Default(0.5)
			}
			params = append(params, b.Build())
		}
	}
	return params
}

func proxyName(ch uint8, ctrl uint16) string {
	switch ctrl {
	case midi.LegacyControllerAfterTouch:
		return fmt.Sprintf("Aftertouch ch%d", ch+1)
	case midi.LegacyControllerPitchBend:
		return fmt.Sprintf("Pitch Bend ch%d", ch+1)
	}
	return fmt.Sprintf("CC%d ch%d", ctrl, ch+1)
}

// ProcessAudio applies the gain, forwards channel messages and emits queued
// serial and chord events.
func (p *Processor) ProcessAudio(ctx *process.Context) {
	p.checkChordTrigger(ctx.Param(ParamTriggerChord))

	if ctx.NumInputChannels() > 0 {
		ctx.PassThrough()
	}
	g := gain.PercentToLinear(ctx.ParamPlain(ParamGain))
	ctx.ProcessOutputs(func(_ int, out []float32) {
		gain.ApplyBuffer(out, g)
	})

	ctx.ForwardInputEvents(midi.IsChannelVoice)

	p.drained = p.outbox.Drain(p.drained[:0])
	ctx.AddOutputEvents(p.drained)
}

// checkChordTrigger toggles the chord every time the button changes state.
// Hosts show the button as a latching switch, so each click is one change.
func (p *Processor) checkChordTrigger(value float64) {
	down := value >= 0.5
	if down == p.triggerDown {
		return
	}
	p.triggerDown = down
	p.ToggleChord()
}

// ToggleChord starts the chord if it is off and stops it if it is on.
func (p *Processor) ToggleChord() {
	p.chordOn = !p.chordOn

	var events [len(ChordNotes)]midi.Event
	for i, note := range ChordNotes {
		base := midi.BaseEvent{EventChannel: ChordChannel}
		if p.chordOn {
			events[i] = midi.NoteOnEvent{BaseEvent: base, NoteNumber: note, Velocity: ChordVelocity}
		} else {
			events[i] = midi.NoteOffEvent{BaseEvent: base, NoteNumber: note}
		}
	}
	p.SendMidiFromUI(events[:]...)
}

// ChordOn reports whether the chord is sounding.
func (p *Processor) ChordOn() bool {
	return p.chordOn
}

// SendMidiFromUI queues events for the next audio block. Safe from any
// goroutine.
func (p *Processor) SendMidiFromUI(events ...midi.Event) {
	for _, e := range events {
		p.outbox.Add(midi.WithOffset(e, 0))
	}
}

// OnUIOpen validates the configuration and opens the serial port. Failure is
// logged and polling stays off.
func (p *Processor) OnUIOpen() {
	p.openOnce.Do(func() {
		if err := p.cfg.Serial.Validate(); err != nil {
			p.log.Error("serial config: %v", err)
			return
		}
		if err := p.mapping.Validate(); err != nil {
			p.log.Error("serial mapping: %v", err)
			return
		}
		if err := p.poller.Open(); err != nil {
			if ports, lerr := serial.ListPorts(); lerr == nil {
				p.log.Info("available ports: %v", ports)
			}
		}
	})
}

// OnIdle polls the serial port once.
func (p *Processor) OnIdle(ctx context.Context) {
	p.poller.Tick(ctx)
}

func (p *Processor) handleByte(b byte) {
	msg, ok := p.mapping.Translate(b)
	if !ok {
		return
	}
	e, ok := midi.FromMessage(msg, 0)
	if !ok {
		return
	}
	p.log.Debug("serial 0x%02X -> %v", b, e)
	p.SendMidiFromUI(e)
}

// Close releases the serial port.
func (p *Processor) Close() error {
	if err := p.poller.Close(); err != nil && !errors.Is(err, serial.ErrNotOpen) {
		return err
	}
	return nil
}
