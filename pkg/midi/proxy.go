package midi

import "math"

// VST3 hosts never deliver input control change, channel pressure or pitch
// bend as events. A plugin asks for them through MIDI controller mapping
// instead: every (channel, controller) pair is assigned a parameter, and the
// host sends the controller as automation of that parameter. Controller
// numbers 128 and 129 stand for channel pressure and pitch bend.
const (
	ProxyChannels    = 16
	ProxyControllers = LegacyControllerPitchBend + 1

	// ProxyParamBase is the first proxy parameter ID. It sits far above any
	// plugin-defined parameter.
	ProxyParamBase uint32 = 0x00100000
)

// ProxyParamID returns the parameter standing in for controller on channel.
// Controllers above pitch bend have no proxy.
func ProxyParamID(channel uint8, controller uint16) (uint32, bool) {
	if channel >= ProxyChannels || controller >= ProxyControllers {
		return 0, false
	}
	return ProxyParamBase + uint32(channel)*ProxyControllers + uint32(controller), true
}

// ParseProxyParamID reverses ProxyParamID.
func ParseProxyParamID(id uint32) (channel uint8, controller uint16, ok bool) {
	if id < ProxyParamBase || id >= ProxyParamBase+ProxyChannels*ProxyControllers {
		return 0, 0, false
	}
	id -= ProxyParamBase
	return uint8(id / ProxyControllers), uint16(id % ProxyControllers), true
}

// ProxyEvent turns an automation point of a proxy parameter into the channel
// message it carries. ok is false for IDs outside the proxy range.
func ProxyEvent(id uint32, value float64, offset int32) (Event, bool) {
	channel, controller, ok := ParseProxyParamID(id)
	if !ok {
		return nil, false
	}
	base := BaseEvent{EventChannel: channel, Offset: offset}

	switch controller {
	case LegacyControllerAfterTouch:
		return ChannelPressureEvent{BaseEvent: base, Pressure: scaleUnit(value, 127)}, true
	case LegacyControllerPitchBend:
		raw := int16(math.Round(clampUnit(value) * 16383))
		return PitchBendEvent{BaseEvent: base, Value: raw - 8192}, true
	}
	return ControlChangeEvent{BaseEvent: base, Controller: uint8(controller), Value: scaleUnit(value, 127)}, true
}

func clampUnit(v float64) float64 {
	switch {
	case math.IsNaN(v) || v <= 0:
		return 0
	case v >= 1:
		return 1
	}
	return v
}

func scaleUnit(v float64, limit float64) uint8 {
	return uint8(math.Round(clampUnit(v) * limit))
}
