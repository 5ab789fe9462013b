// Package midi defines the MIDI events exchanged with the host and the queue
// that carries them between threads.
package midi

import "fmt"

// EventType identifies the kind of an Event.
type EventType uint8

const (
	EventTypeNoteOff EventType = iota
	EventTypeNoteOn
	EventTypePolyPressure
	EventTypeControlChange
	EventTypeProgramChange
	EventTypeChannelPressure
	EventTypePitchBend
	EventTypeSystemExclusive
	EventTypeClock
	EventTypeStart
	EventTypeStop
	EventTypeContinue
)

var eventTypeNames = [...]string{
	EventTypeNoteOff:         "NoteOff",
	EventTypeNoteOn:          "NoteOn",
	EventTypePolyPressure:    "PolyPressure",
	EventTypeControlChange:   "ControlChange",
	EventTypeProgramChange:   "ProgramChange",
	EventTypeChannelPressure: "ChannelPressure",
	EventTypePitchBend:       "PitchBend",
	EventTypeSystemExclusive: "SysEx",
	EventTypeClock:           "Clock",
	EventTypeStart:           "Start",
	EventTypeStop:            "Stop",
	EventTypeContinue:        "Continue",
}

func (t EventType) String() string {
	if int(t) < len(eventTypeNames) {
		return eventTypeNames[t]
	}
	return fmt.Sprintf("EventType(%d)", uint8(t))
}

// Event is a MIDI event positioned inside an audio block.
type Event interface {
	Type() EventType
	Channel() uint8
	SampleOffset() int32
	String() string
}

// BaseEvent carries the fields every event has.
type BaseEvent struct {
	EventChannel uint8
	Offset       int32
}

func (e BaseEvent) Channel() uint8 {
	return e.EventChannel
}

func (e BaseEvent) SampleOffset() int32 {
	return e.Offset
}

type NoteOnEvent struct {
	BaseEvent
	NoteNumber uint8
	Velocity   uint8
}

func (e NoteOnEvent) Type() EventType { return EventTypeNoteOn }

func (e NoteOnEvent) String() string {
	return fmt.Sprintf("NoteOn{ch:%d, note:%d, vel:%d, offset:%d}",
		e.EventChannel, e.NoteNumber, e.Velocity, e.Offset)
}

type NoteOffEvent struct {
	BaseEvent
	NoteNumber uint8
	Velocity   uint8
}

func (e NoteOffEvent) Type() EventType { return EventTypeNoteOff }

func (e NoteOffEvent) String() string {
	return fmt.Sprintf("NoteOff{ch:%d, note:%d, vel:%d, offset:%d}",
		e.EventChannel, e.NoteNumber, e.Velocity, e.Offset)
}

type ControlChangeEvent struct {
	BaseEvent
	Controller uint8
	Value      uint8
}

func (e ControlChangeEvent) Type() EventType { return EventTypeControlChange }

func (e ControlChangeEvent) String() string {
	return fmt.Sprintf("CC{ch:%d, ctrl:%d, val:%d, offset:%d}",
		e.EventChannel, e.Controller, e.Value, e.Offset)
}

// Common controller numbers.
const (
	CCModWheel    uint8 = 1
	CCBreath      uint8 = 2
	CCVolume      uint8 = 7
	CCPan         uint8 = 10
	CCExpression  uint8 = 11
	CCSustain     uint8 = 64
	CCAllNotesOff uint8 = 123
)

type PitchBendEvent struct {
	BaseEvent
	Value int16 // -8192 to 8191, 0 is center
}

func (e PitchBendEvent) Type() EventType { return EventTypePitchBend }

func (e PitchBendEvent) String() string {
	return fmt.Sprintf("PitchBend{ch:%d, val:%d, offset:%d}",
		e.EventChannel, e.Value, e.Offset)
}

// NormalizedValue maps the bend to -1..1.
func (e PitchBendEvent) NormalizedValue() float64 {
	return float64(e.Value) / 8192.0
}

type PolyPressureEvent struct {
	BaseEvent
	NoteNumber uint8
	Pressure   uint8
}

func (e PolyPressureEvent) Type() EventType { return EventTypePolyPressure }

func (e PolyPressureEvent) String() string {
	return fmt.Sprintf("PolyPressure{ch:%d, note:%d, pressure:%d, offset:%d}",
		e.EventChannel, e.NoteNumber, e.Pressure, e.Offset)
}

type ChannelPressureEvent struct {
	BaseEvent
	Pressure uint8
}

func (e ChannelPressureEvent) Type() EventType { return EventTypeChannelPressure }

func (e ChannelPressureEvent) String() string {
	return fmt.Sprintf("ChannelPressure{ch:%d, pressure:%d, offset:%d}",
		e.EventChannel, e.Pressure, e.Offset)
}

type ProgramChangeEvent struct {
	BaseEvent
	Program uint8
}

func (e ProgramChangeEvent) Type() EventType { return EventTypeProgramChange }

func (e ProgramChangeEvent) String() string {
	return fmt.Sprintf("ProgramChange{ch:%d, prog:%d, offset:%d}",
		e.EventChannel, e.Program, e.Offset)
}

// SysExEvent holds a complete system exclusive message including F0/F7.
type SysExEvent struct {
	BaseEvent
	Data []byte
}

func (e SysExEvent) Type() EventType { return EventTypeSystemExclusive }

func (e SysExEvent) String() string {
	return fmt.Sprintf("SysEx{len:%d, offset:%d}", len(e.Data), e.Offset)
}

// RealtimeEvent is a single-byte system realtime message (clock, start,
// stop, continue).
type RealtimeEvent struct {
	BaseEvent
	Kind EventType
}

func (e RealtimeEvent) Type() EventType { return e.Kind }

func (e RealtimeEvent) String() string {
	return fmt.Sprintf("%s{offset:%d}", e.Kind, e.Offset)
}

// WithOffset returns a copy of e moved to a new sample offset.
func WithOffset(e Event, offset int32) Event {
	switch ev := e.(type) {
	case NoteOnEvent:
		ev.Offset = offset
		return ev
	case NoteOffEvent:
		ev.Offset = offset
		return ev
	case ControlChangeEvent:
		ev.Offset = offset
		return ev
	case PitchBendEvent:
		ev.Offset = offset
		return ev
	case PolyPressureEvent:
		ev.Offset = offset
		return ev
	case ChannelPressureEvent:
		ev.Offset = offset
		return ev
	case ProgramChangeEvent:
		ev.Offset = offset
		return ev
	case SysExEvent:
		ev.Offset = offset
		return ev
	case RealtimeEvent:
		ev.Offset = offset
		return ev
	}
	return e
}

// NoteNumberToName returns the note name with octave, C4 = 60.
func NoteNumberToName(note uint8) string {
	names := [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}
	return fmt.Sprintf("%s%d", names[note%12], int(note/12)-1)
}
