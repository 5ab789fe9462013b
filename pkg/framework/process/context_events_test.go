package process

import (
	"testing"

	"github.com/justyntemme/serialcontroller/pkg/framework/param"
	"github.com/justyntemme/serialcontroller/pkg/midi"
)

func noteOn(note uint8, offset int32) midi.NoteOnEvent {
	return midi.NoteOnEvent{BaseEvent: midi.BaseEvent{Offset: offset}, NoteNumber: note, Velocity: 100}
}

func TestContextInputEvents(t *testing.T) {
	ctx := NewContext(512, param.NewRegistry())
	if ctx.HasInputEvents() {
		t.Fatal("new context has input events")
	}

	ctx.AddInputEvent(midi.NoteOffEvent{BaseEvent: midi.BaseEvent{Offset: 200}, NoteNumber: 60})
	ctx.AddInputEvent(noteOn(60, 100))
	if !ctx.HasInputEvents() {
		t.Fatal("HasInputEvents = false after AddInputEvent")
	}

	ctx.ClearInputEvents()
	if ctx.HasInputEvents() {
		t.Error("input events left after ClearInputEvents")
	}
}

func TestContextForwardInputEvents(t *testing.T) {
	ctx := NewContext(512, param.NewRegistry())
	ctx.AddInputEvent(midi.ControlChangeEvent{BaseEvent: midi.BaseEvent{Offset: 50}, Controller: midi.CCModWheel, Value: 90})
	ctx.AddInputEvent(midi.RealtimeEvent{BaseEvent: midi.BaseEvent{Offset: 20}, Kind: midi.EventTypeClock})
	ctx.AddInputEvent(noteOn(64, 5))

	if dropped := ctx.ForwardInputEvents(midi.IsChannelVoice); dropped != 1 {
		t.Errorf("dropped = %d, want 1", dropped)
	}

	out := ctx.GetOutputEvents()
	if len(out) != 2 {
		t.Fatalf("forwarded %d events, want 2", len(out))
	}
	if out[0].Type() != midi.EventTypeNoteOn {
		t.Errorf("first forwarded event = %v, want the note at offset 5", out[0])
	}
	if cc, ok := out[1].(midi.ControlChangeEvent); !ok || cc.Value != 90 || cc.SampleOffset() != 50 {
		t.Errorf("second forwarded event = %v", out[1])
	}
	if !ctx.HasInputEvents() {
		t.Error("forwarding consumed the input events")
	}

	ctx.ClearOutputEvents()
	if len(ctx.GetOutputEvents()) != 0 {
		t.Error("output events left after ClearOutputEvents")
	}
}

func TestContextClearAllEvents(t *testing.T) {
	ctx := NewContext(512, param.NewRegistry())
	ctx.AddInputEvent(noteOn(60, 100))
	ctx.AddOutputEvent(midi.ControlChangeEvent{BaseEvent: midi.BaseEvent{Offset: 50}, Controller: midi.CCModWheel, Value: 100})

	ctx.ClearAllEvents()

	if ctx.HasInputEvents() || len(ctx.GetOutputEvents()) != 0 {
		t.Error("events left after ClearAllEvents")
	}
}

func TestContextDrainOutputEvents(t *testing.T) {
	ctx := NewContext(64, param.NewRegistry())
	ctx.AddOutputEvent(noteOn(62, 10))
	ctx.AddOutputEvent(noteOn(60, 0))

	events := ctx.DrainOutputEvents()
	if len(events) != 2 || events[0].SampleOffset() != 0 {
		t.Fatalf("DrainOutputEvents = %v", events)
	}
	if len(ctx.GetOutputEvents()) != 0 {
		t.Error("output queue not empty after drain")
	}
	if len(ctx.DrainOutputEvents()) != 0 {
		t.Error("second drain returned events")
	}
}
