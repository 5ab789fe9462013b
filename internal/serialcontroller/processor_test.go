package serialcontroller

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	bugst "go.bug.st/serial"

	"github.com/justyntemme/serialcontroller/pkg/framework/debug"
	"github.com/justyntemme/serialcontroller/pkg/framework/param"
	"github.com/justyntemme/serialcontroller/pkg/framework/process"
	"github.com/justyntemme/serialcontroller/pkg/framework/state"
	"github.com/justyntemme/serialcontroller/pkg/midi"
	"github.com/justyntemme/serialcontroller/pkg/serial"
)

// chanPort is a serial.Port fed from a channel.
type chanPort struct {
	bytes  chan byte
	closed chan struct{}
}

func newChanPort() *chanPort {
	return &chanPort{bytes: make(chan byte, 16), closed: make(chan struct{})}
}

func (c *chanPort) Read(p []byte) (int, error) {
	select {
	case b := <-c.bytes:
		p[0] = b
		return 1, nil
	case <-c.closed:
		return 0, errors.New("closed")
	}
}

func (c *chanPort) SetReadTimeout(time.Duration) error { return nil }

func (c *chanPort) Close() error {
	close(c.closed)
	return nil
}

func quietLogger() *debug.Logger {
	return debug.New(io.Discard, "test", 0)
}

func newTestProcessor(t *testing.T, cfg Config, port *chanPort) *Processor {
	t.Helper()
	opener := func(string, *bugst.Mode) (serial.Port, error) {
		if port == nil {
			return nil, errors.New("no device")
		}
		return port, nil
	}
	p := NewProcessor(cfg, opener, quietLogger())
	t.Cleanup(func() { _ = p.Close() })
	return p
}

func newBlock(p *Processor, in [][]float32) *process.Context {
	ctx := process.NewContext(512, p.GetParameters())
	ctx.Input = in
	ctx.Output = make([][]float32, len(in))
	for ch := range in {
		ctx.Output[ch] = make([]float32, len(in[ch]))
	}
	return ctx
}

func runBlock(p *Processor, ctx *process.Context) []midi.Event {
	ctx.ClearOutputEvents()
	p.ProcessAudio(ctx)
	events := ctx.GetOutputEvents()
	ctx.ClearAllEvents()
	return events
}

func TestProcessorDefaults(t *testing.T) {
	p := newTestProcessor(t, DefaultConfig(), nil)

	if want := int32(2 + midi.ProxyChannels*midi.ProxyControllers); p.GetParameters().Count() != want {
		t.Fatalf("expected %d parameters, got %d", want, p.GetParameters().Count())
	}
	if got := p.GetParameters().Get(ParamGain).GetPlainValue(); got != 100 {
		t.Errorf("default gain = %v, want 100", got)
	}
	trigger := p.GetParameters().Get(ParamTriggerChord)
	if trigger.StepCount != 1 || trigger.GetValue() != 0 {
		t.Errorf("trigger step=%d value=%v", trigger.StepCount, trigger.GetValue())
	}
	if p.GetTailSamples() != TailSamples {
		t.Errorf("tail = %d, want %d", p.GetTailSamples(), TailSamples)
	}
	if p.GetBuses().GetBusCount(1, 0) != 1 || p.GetBuses().GetBusCount(1, 1) != 1 {
		t.Error("expected one MIDI input and one MIDI output bus")
	}
}

func TestProcessorGain(t *testing.T) {
	p := newTestProcessor(t, DefaultConfig(), nil)
	in := [][]float32{{1, -1, 0.5, 0}, {0.25, 0.5, -0.5, 1}}

	ctx := newBlock(p, in)
	runBlock(p, ctx)
	for ch := range in {
		for i := range in[ch] {
			if ctx.Output[ch][i] != in[ch][i] {
				t.Fatalf("100%% gain changed sample [%d][%d]: %v", ch, i, ctx.Output[ch][i])
			}
		}
	}

	p.GetParameters().Get(ParamGain).SetPlainValue(50)
	runBlock(p, ctx)
	for ch := range in {
		for i := range in[ch] {
			if want := in[ch][i] * 0.5; ctx.Output[ch][i] != want {
				t.Errorf("50%% gain [%d][%d] = %v, want %v", ch, i, ctx.Output[ch][i], want)
			}
		}
	}

	p.GetParameters().Get(ParamGain).SetPlainValue(0)
	runBlock(p, ctx)
	for ch := range ctx.Output {
		for i, v := range ctx.Output[ch] {
			if v != 0 {
				t.Errorf("0%% gain [%d][%d] = %v", ch, i, v)
			}
		}
	}
}

func TestProcessorForwardsChannelMessages(t *testing.T) {
	p := newTestProcessor(t, DefaultConfig(), nil)
	ctx := newBlock(p, [][]float32{make([]float32, 64)})

	in := []midi.Event{
		midi.NoteOnEvent{BaseEvent: midi.BaseEvent{EventChannel: 2, Offset: 3}, NoteNumber: 64, Velocity: 90},
		midi.RealtimeEvent{BaseEvent: midi.BaseEvent{Offset: 4}, Kind: midi.EventTypeClock},
		midi.ControlChangeEvent{BaseEvent: midi.BaseEvent{Offset: 10}, Controller: 7, Value: 100},
		midi.PitchBendEvent{BaseEvent: midi.BaseEvent{Offset: 20}, Value: 512},
		midi.RealtimeEvent{BaseEvent: midi.BaseEvent{Offset: 30}, Kind: midi.EventTypeStop},
	}
	for _, e := range in {
		ctx.AddInputEvent(e)
	}

	out := runBlock(p, ctx)
	if len(out) != 3 {
		t.Fatalf("forwarded %d events, want 3: %v", len(out), out)
	}
	if out[0] != in[0] || out[1] != in[2] || out[2] != in[3] {
		t.Errorf("forwarded events changed: %v", out)
	}
}

func TestProcessorChordToggle(t *testing.T) {
	p := newTestProcessor(t, DefaultConfig(), nil)
	ctx := newBlock(p, [][]float32{make([]float32, 64)})
	trigger := p.GetParameters().Get(ParamTriggerChord)

	trigger.SetValue(1)
	out := runBlock(p, ctx)
	if len(out) != 3 || !p.ChordOn() {
		t.Fatalf("first press: %d events, chord on %v", len(out), p.ChordOn())
	}
	for i, e := range out {
		on, ok := e.(midi.NoteOnEvent)
		if !ok {
			t.Fatalf("event %d is %v, want note on", i, e)
		}
		if on.NoteNumber != ChordNotes[i] || on.Velocity != 60 || on.Channel() != 0 || on.SampleOffset() != 0 {
			t.Errorf("event %d = %v", i, on)
		}
	}

	if out := runBlock(p, ctx); len(out) != 0 {
		t.Errorf("held switch retriggered: %v", out)
	}

	trigger.SetValue(0)
	out = runBlock(p, ctx)
	if len(out) != 3 || p.ChordOn() {
		t.Fatalf("second click: %d events, chord on %v", len(out), p.ChordOn())
	}
	for i, e := range out {
		off, ok := e.(midi.NoteOffEvent)
		if !ok || off.NoteNumber != ChordNotes[i] {
			t.Errorf("event %d = %v, want note off %d", i, e, ChordNotes[i])
		}
	}

	trigger.SetValue(1)
	if out := runBlock(p, ctx); len(out) != 3 || !p.ChordOn() {
		t.Fatalf("third click: %d events, chord on %v", len(out), p.ChordOn())
	}
}

func TestProcessorStateRestoreIsSilent(t *testing.T) {
	src := newTestProcessor(t, DefaultConfig(), nil)
	src.GetParameters().Get(ParamGain).SetPlainValue(40)
	src.GetParameters().Get(ParamTriggerChord).SetValue(1)
	runBlock(src, newBlock(src, [][]float32{make([]float32, 8)}))
	if !src.ChordOn() {
		t.Fatal("chord should be on before saving")
	}

	data, err := state.NewManager(src.GetParameters()).Bytes()
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	dst := newTestProcessor(t, DefaultConfig(), nil)
	if err := state.NewManager(dst.GetParameters()).LoadBytes(data); err != nil {
		t.Fatalf("load: %v", err)
	}

	ctx := newBlock(dst, [][]float32{{1, 1, 1, 1}})
	if out := runBlock(dst, ctx); len(out) != 0 {
		t.Errorf("restored state emitted events: %v", out)
	}
	if dst.ChordOn() {
		t.Error("restored state started the chord")
	}
	if got := ctx.Output[0][0]; got < 0.3999 || got > 0.4001 {
		t.Errorf("restored gain output = %v, want 0.4", got)
	}
}

func pollUntilQueued(t *testing.T, p *Processor, want int) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for p.outbox.Size() < want {
		if time.Now().After(deadline) {
			t.Fatalf("outbox has %d events, want %d", p.outbox.Size(), want)
		}
		p.OnIdle(context.Background())
	}
}

func TestProcessorSerialToCC(t *testing.T) {
	port := newChanPort()
	cfg := DefaultConfig()
	cfg.Serial.WaitTimeout = 20 * time.Millisecond
	p := newTestProcessor(t, cfg, port)

	p.OnUIOpen()
	port.bytes <- 64
	port.bytes <- 200
	pollUntilQueued(t, p, 2)

	ctx := newBlock(p, [][]float32{make([]float32, 64)})
	out := runBlock(p, ctx)
	if len(out) != 2 {
		t.Fatalf("got %d events, want 2", len(out))
	}

	for i, want := range []uint8{64, 127} {
		cc, ok := out[i].(midi.ControlChangeEvent)
		if !ok || cc.Controller != 1 || cc.Value != want || cc.Channel() != 0 {
			t.Errorf("event %d = %v, want CC1=%d", i, out[i], want)
		}
	}
}

func TestProcessorSerialNoteMode(t *testing.T) {
	port := newChanPort()
	cfg := DefaultConfig()
	cfg.Mapping.Mode = serial.ModeNote
	cfg.Mapping.Velocity = 80
	cfg.Serial.WaitTimeout = 20 * time.Millisecond
	p := newTestProcessor(t, cfg, port)

	p.OnUIOpen()
	port.bytes <- 60
	port.bytes <- 0x80 | 60
	pollUntilQueued(t, p, 2)

	out := runBlock(p, newBlock(p, [][]float32{make([]float32, 8)}))
	if on, ok := out[0].(midi.NoteOnEvent); !ok || on.NoteNumber != 60 || on.Velocity != 80 {
		t.Errorf("first event = %v", out[0])
	}
	if off, ok := out[1].(midi.NoteOffEvent); !ok || off.NoteNumber != 60 {
		t.Errorf("second event = %v", out[1])
	}
}

func TestProcessorSerialDebugMode(t *testing.T) {
	port := newChanPort()
	cfg := DefaultConfig()
	cfg.Mapping.Mode = serial.ModeDebug
	cfg.Serial.WaitTimeout = 20 * time.Millisecond
	p := newTestProcessor(t, cfg, port)

	p.OnUIOpen()
	port.bytes <- '1'
	deadline := time.Now().Add(100 * time.Millisecond)
	for time.Now().Before(deadline) {
		p.OnIdle(context.Background())
	}

	if out := runBlock(p, newBlock(p, [][]float32{make([]float32, 8)})); len(out) != 0 {
		t.Errorf("debug mode emitted %v", out)
	}
}

func TestProcessorPortUnavailable(t *testing.T) {
	p := newTestProcessor(t, DefaultConfig(), nil)

	p.OnUIOpen()
	p.OnIdle(context.Background())

	if out := runBlock(p, newBlock(p, [][]float32{make([]float32, 8)})); len(out) != 0 {
		t.Errorf("closed port produced events: %v", out)
	}
	if err := p.Close(); err != nil {
		t.Errorf("Close on unopened port: %v", err)
	}
}

func TestProcessorInvalidMapping(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Mapping.Mode = serial.ModeNote
	cfg.Mapping.Velocity = 0

	var logs bytes.Buffer
	opened := 0
	opener := func(string, *bugst.Mode) (serial.Port, error) {
		opened++
		return newChanPort(), nil
	}
	p := NewProcessor(cfg, opener, debug.New(&logs, "test", 0))
	t.Cleanup(func() { _ = p.Close() })

	p.OnUIOpen()
	p.OnIdle(context.Background())

	if opened != 0 {
		t.Errorf("port opened %d times with an invalid mapping", opened)
	}
	if !strings.Contains(logs.String(), "serial mapping: velocity 0 out of range 1-127") {
		t.Errorf("log = %q, want the mapping error", logs.String())
	}
	if out := runBlock(p, newBlock(p, [][]float32{make([]float32, 8)})); len(out) != 0 {
		t.Errorf("invalid mapping produced events: %v", out)
	}
}

func TestProcessorClose(t *testing.T) {
	port := newChanPort()
	p := newTestProcessor(t, DefaultConfig(), port)

	p.OnUIOpen()
	p.OnIdle(context.Background())

	if err := p.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := p.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
}

func TestSendMidiFromUI(t *testing.T) {
	p := newTestProcessor(t, DefaultConfig(), nil)

	p.SendMidiFromUI(midi.ProgramChangeEvent{BaseEvent: midi.BaseEvent{Offset: 99}, Program: 4})
	out := runBlock(p, newBlock(p, [][]float32{make([]float32, 8)}))

	if len(out) != 1 || out[0].SampleOffset() != 0 {
		t.Fatalf("got %v, want one event at offset 0", out)
	}
}

func TestProcessAudioSteadyStateAllocs(t *testing.T) {
	p := newTestProcessor(t, DefaultConfig(), nil)
	p.GetParameters().Get(ParamGain).SetPlainValue(50)
	ctx := newBlock(p, [][]float32{make([]float32, 256), make([]float32, 256)})
	ctx.AddInputEvent(midi.NoteOnEvent{BaseEvent: midi.BaseEvent{Offset: 3}, NoteNumber: 60, Velocity: 90})
	ctx.AddInputEvent(midi.ControlChangeEvent{BaseEvent: midi.BaseEvent{Offset: 9}, Controller: 7, Value: 64})

	allocs := testing.AllocsPerRun(100, func() {
		ctx.ClearOutputEvents()
		p.ProcessAudio(ctx)
	})
	if allocs != 0 {
		t.Errorf("ProcessAudio allocated %v times per block, want 0", allocs)
	}
	if n := len(ctx.GetOutputEvents()); n != 2 {
		t.Errorf("forwarded %d events, want 2", n)
	}
}

func TestProcessorMidiProxyParameters(t *testing.T) {
	p := newTestProcessor(t, DefaultConfig(), nil)
	params := p.GetParameters()

	for _, tc := range []struct {
		ch   uint8
		ctrl uint16
		name string
		def  float64
	}{
		{0, 1, "CC1 ch1", 0},
		{15, 127, "CC127 ch16", 0},
		{2, midi.LegacyControllerAfterTouch, "Aftertouch ch3", 0},
		{0, midi.LegacyControllerPitchBend, "Pitch Bend ch1", 0.5},
	} {
		id, _ := midi.ProxyParamID(tc.ch, tc.ctrl)
		got := params.Get(id)
		if got == nil {
			t.Fatalf("no proxy for ch %d ctrl %d", tc.ch, tc.ctrl)
		}
		if got.Name != tc.name || got.DefaultValue != tc.def {
			t.Errorf("proxy %d = %q default %v, want %q default %v", id, got.Name, got.DefaultValue, tc.name, tc.def)
		}
		if got.Flags&param.IsHidden == 0 || !got.Transient {
			t.Errorf("proxy %q flags %b transient %v", got.Name, got.Flags, got.Transient)
		}
	}
}

func TestProcessorForwardsProxiedControllers(t *testing.T) {
	p := newTestProcessor(t, DefaultConfig(), nil)
	ctx := newBlock(p, [][]float32{make([]float32, 64)})

	ccID, _ := midi.ProxyParamID(0, 1)
	bendID, _ := midi.ProxyParamID(0, midi.LegacyControllerPitchBend)
	for _, change := range []struct {
		id     uint32
		value  float64
		offset int32
	}{
		{ccID, 1, 4},
		{bendID, 1, 12},
	} {
		e, ok := midi.ProxyEvent(change.id, change.value, change.offset)
		if !ok {
			t.Fatalf("id %d is not a proxy", change.id)
		}
		ctx.AddInputEvent(e)
	}

	out := runBlock(p, ctx)
	if len(out) != 2 {
		t.Fatalf("forwarded %d events, want 2: %v", len(out), out)
	}
	if cc, ok := out[0].(midi.ControlChangeEvent); !ok || cc.Controller != 1 || cc.Value != 127 || cc.SampleOffset() != 4 {
		t.Errorf("first event = %v", out[0])
	}
	if pb, ok := out[1].(midi.PitchBendEvent); !ok || pb.Value != 8191 {
		t.Errorf("second event = %v", out[1])
	}
}
