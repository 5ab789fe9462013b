package midi

// IsChannelVoice reports whether e is one of the channel voice messages the
// plugin forwards: note on/off, poly pressure, control change, program
// change, channel pressure and pitch bend.
func IsChannelVoice(e Event) bool {
	switch e.Type() {
	case EventTypeNoteOn,
		EventTypeNoteOff,
		EventTypePolyPressure,
		EventTypeControlChange,
		EventTypeProgramChange,
		EventTypeChannelPressure,
		EventTypePitchBend:
		return true
	}
	return false
}
