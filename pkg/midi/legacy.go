package midi

import "math"

// Pseudo controller numbers hosts use to carry channel messages that have no
// event record of their own inside a legacy CC event.
const (
	LegacyControllerAfterTouch    = 128
	LegacyControllerPitchBend     = 129
	LegacyControllerProgramChange = 130
)

// LegacyCC is the payload of a VST3 legacy MIDI CC event. For pitch bend
// Value holds the low 7 bits and Value2 the high 7 bits.
type LegacyCC struct {
	Channel    uint8
	Controller uint8
	Value      uint8
	Value2     uint8
}

// ToLegacyCC encodes control change, channel pressure, pitch bend and program
// change events. Other kinds report false.
func ToLegacyCC(e Event) (LegacyCC, bool) {
	cc := LegacyCC{Channel: e.Channel() & 0x0F}
	switch ev := e.(type) {
	case ControlChangeEvent:
		cc.Controller = ev.Controller & 0x7F
		cc.Value = ev.Value & 0x7F
	case ChannelPressureEvent:
		cc.Controller = LegacyControllerAfterTouch
		cc.Value = ev.Pressure & 0x7F
	case ProgramChangeEvent:
		cc.Controller = LegacyControllerProgramChange
		cc.Value = ev.Program & 0x7F
	case PitchBendEvent:
		raw := uint16(int32(ev.Value)+8192) & 0x3FFF
		cc.Controller = LegacyControllerPitchBend
		cc.Value = uint8(raw & 0x7F)
		cc.Value2 = uint8(raw >> 7)
	default:
		return LegacyCC{}, false
	}
	return cc, true
}

// Event decodes the payload back into an event at offset. Unknown pseudo
// controllers report false.
func (c LegacyCC) Event(offset int32) (Event, bool) {
	base := BaseEvent{EventChannel: c.Channel & 0x0F, Offset: offset}
	switch {
	case c.Controller < 128:
		return ControlChangeEvent{BaseEvent: base, Controller: c.Controller, Value: c.Value & 0x7F}, true
	case c.Controller == LegacyControllerAfterTouch:
		return ChannelPressureEvent{BaseEvent: base, Pressure: c.Value & 0x7F}, true
	case c.Controller == LegacyControllerProgramChange:
		return ProgramChangeEvent{BaseEvent: base, Program: c.Value & 0x7F}, true
	case c.Controller == LegacyControllerPitchBend:
		raw := int32(c.Value2&0x7F)<<7 | int32(c.Value&0x7F)
		return PitchBendEvent{BaseEvent: base, Value: int16(raw - 8192)}, true
	}
	return nil, false
}

// VelocityToFloat maps a 7-bit velocity to the 0-1 range hosts use.
func VelocityToFloat(v uint8) float32 {
	return float32(v&0x7F) / 127
}

// VelocityFromFloat maps a 0-1 host velocity to 7 bits.
func VelocityFromFloat(f float32) uint8 {
	switch {
	case f <= 0 || math.IsNaN(float64(f)):
		return 0
	case f >= 1:
		return 127
	}
	return uint8(math.Round(float64(f) * 127))
}
