package midi

import (
	"bytes"
	"testing"

	gomidi "gitlab.com/gomidi/midi/v2"
)

func TestToMessage(t *testing.T) {
	tests := []struct {
		name  string
		event Event
		want  []byte
	}{
		{"note on", NoteOnEvent{BaseEvent{0, 0}, 60, 60}, []byte{0x90, 60, 60}},
		{"note off", NoteOffEvent{BaseEvent{1, 0}, 65, 0}, []byte{0x81, 65, 0}},
		{"cc", ControlChangeEvent{BaseEvent{2, 0}, CCModWheel, 127}, []byte{0xB2, 1, 127}},
		{"program", ProgramChangeEvent{BaseEvent{0, 0}, 5}, []byte{0xC0, 5}},
		{"channel pressure", ChannelPressureEvent{BaseEvent{0, 0}, 9}, []byte{0xD0, 9}},
		{"poly pressure", PolyPressureEvent{BaseEvent{0, 0}, 60, 9}, []byte{0xA0, 60, 9}},
		{"pitch bend center", PitchBendEvent{BaseEvent{0, 0}, 0}, []byte{0xE0, 0x00, 0x40}},
		{"clock", RealtimeEvent{Kind: EventTypeClock}, []byte{0xF8}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, ok := ToMessage(tt.event)
			if !ok {
				t.Fatal("ToMessage reported unsupported event")
			}
			if !bytes.Equal(msg, tt.want) {
				t.Errorf("bytes = % X, want % X", []byte(msg), tt.want)
			}
		})
	}
}

func TestFromMessage(t *testing.T) {
	tests := []struct {
		name string
		msg  gomidi.Message
		want Event
	}{
		{"note on", gomidi.NoteOn(3, 60, 100), NoteOnEvent{BaseEvent{3, 12}, 60, 100}},
		{"cc", gomidi.ControlChange(0, 7, 90), ControlChangeEvent{BaseEvent{0, 12}, 7, 90}},
		{"program", gomidi.ProgramChange(15, 1), ProgramChangeEvent{BaseEvent{15, 12}, 1}},
		{"aftertouch", gomidi.AfterTouch(2, 33), ChannelPressureEvent{BaseEvent{2, 12}, 33}},
		{"poly", gomidi.PolyAfterTouch(2, 61, 33), PolyPressureEvent{BaseEvent{2, 12}, 61, 33}},
		{"bend", gomidi.Pitchbend(0, -200), PitchBendEvent{BaseEvent{0, 12}, -200}},
		{"stop", gomidi.Message{0xFC}, RealtimeEvent{BaseEvent{0, 12}, EventTypeStop}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FromMessage(tt.msg, 12)
			if !ok {
				t.Fatalf("FromMessage(% X) not decoded", []byte(tt.msg))
			}
			if got != tt.want {
				t.Errorf("FromMessage = %v, want %v", got, tt.want)
			}
		})
	}

	if _, ok := FromMessage(nil, 0); ok {
		t.Error("empty message should not decode")
	}
	if _, ok := FromMessage(gomidi.Message{0xF4}, 0); ok {
		t.Error("undefined status should not decode")
	}
}
