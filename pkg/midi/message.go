package midi

import (
	gomidi "gitlab.com/gomidi/midi/v2"
)

// System realtime status bytes.
const (
	statusClock    = 0xF8
	statusStart    = 0xFA
	statusContinue = 0xFB
	statusStop     = 0xFC
)

// ToMessage encodes an event as raw MIDI bytes. It reports false for event
// kinds that have no wire form.
func ToMessage(e Event) (gomidi.Message, bool) {
	ch := e.Channel() & 0x0F
	switch ev := e.(type) {
	case NoteOnEvent:
		return gomidi.NoteOn(ch, ev.NoteNumber&0x7F, ev.Velocity&0x7F), true
	case NoteOffEvent:
		return gomidi.NoteOffVelocity(ch, ev.NoteNumber&0x7F, ev.Velocity&0x7F), true
	case ControlChangeEvent:
		return gomidi.ControlChange(ch, ev.Controller&0x7F, ev.Value&0x7F), true
	case ProgramChangeEvent:
		return gomidi.ProgramChange(ch, ev.Program&0x7F), true
	case ChannelPressureEvent:
		return gomidi.AfterTouch(ch, ev.Pressure&0x7F), true
	case PolyPressureEvent:
		return gomidi.PolyAfterTouch(ch, ev.NoteNumber&0x7F, ev.Pressure&0x7F), true
	case PitchBendEvent:
		return gomidi.Pitchbend(ch, ev.Value), true
	case SysExEvent:
		return gomidi.Message(ev.Data), len(ev.Data) > 0
	case RealtimeEvent:
		switch ev.Kind {
		case EventTypeClock:
			return gomidi.Message{statusClock}, true
		case EventTypeStart:
			return gomidi.Message{statusStart}, true
		case EventTypeContinue:
			return gomidi.Message{statusContinue}, true
		case EventTypeStop:
			return gomidi.Message{statusStop}, true
		}
	}
	return nil, false
}

// FromMessage decodes raw MIDI bytes into an event at the given offset.
// Unsupported or malformed messages report false.
func FromMessage(msg gomidi.Message, offset int32) (Event, bool) {
	if len(msg) == 0 {
		return nil, false
	}

	var ch, key, vel, ctl, val, prog, pressure uint8
	var bend int16
	var abs uint16
	base := BaseEvent{Offset: offset}

	switch {
	case msg.GetNoteOn(&ch, &key, &vel):
		base.EventChannel = ch
		return NoteOnEvent{BaseEvent: base, NoteNumber: key, Velocity: vel}, true
	case msg.GetNoteOff(&ch, &key, &vel):
		base.EventChannel = ch
		return NoteOffEvent{BaseEvent: base, NoteNumber: key, Velocity: vel}, true
	case msg.GetControlChange(&ch, &ctl, &val):
		base.EventChannel = ch
		return ControlChangeEvent{BaseEvent: base, Controller: ctl, Value: val}, true
	case msg.GetProgramChange(&ch, &prog):
		base.EventChannel = ch
		return ProgramChangeEvent{BaseEvent: base, Program: prog}, true
	case msg.GetAfterTouch(&ch, &pressure):
		base.EventChannel = ch
		return ChannelPressureEvent{BaseEvent: base, Pressure: pressure}, true
	case msg.GetPolyAfterTouch(&ch, &key, &pressure):
		base.EventChannel = ch
		return PolyPressureEvent{BaseEvent: base, NoteNumber: key, Pressure: pressure}, true
	case msg.GetPitchBend(&ch, &bend, &abs):
		base.EventChannel = ch
		return PitchBendEvent{BaseEvent: base, Value: bend}, true
	}

	switch msg[0] {
	case 0xF0:
		data := make([]byte, len(msg))
		copy(data, msg)
		return SysExEvent{BaseEvent: base, Data: data}, true
	case statusClock:
		return RealtimeEvent{BaseEvent: base, Kind: EventTypeClock}, true
	case statusStart:
		return RealtimeEvent{BaseEvent: base, Kind: EventTypeStart}, true
	case statusContinue:
		return RealtimeEvent{BaseEvent: base, Kind: EventTypeContinue}, true
	case statusStop:
		return RealtimeEvent{BaseEvent: base, Kind: EventTypeStop}, true
	}
	return nil, false
}
