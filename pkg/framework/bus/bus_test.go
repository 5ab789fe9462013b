package bus

import "testing"

func TestNewInstrument(t *testing.T) {
	config := NewInstrument()

	counts := []struct {
		media     MediaType
		direction Direction
		want      int32
	}{
		{MediaTypeAudio, DirectionInput, 1},
		{MediaTypeAudio, DirectionOutput, 1},
		{MediaTypeEvent, DirectionInput, 1},
		{MediaTypeEvent, DirectionOutput, 1},
	}
	for _, c := range counts {
		if got := config.GetBusCount(c.media, c.direction); got != c.want {
			t.Errorf("GetBusCount(%d, %d) = %d, want %d", c.media, c.direction, got, c.want)
		}
	}

	out := config.GetBusInfo(MediaTypeAudio, DirectionOutput, 0)
	if out == nil || out.ChannelCount != 2 || !out.IsActive {
		t.Fatalf("unexpected output bus %+v", out)
	}

	midiOut := config.GetBusInfo(MediaTypeEvent, DirectionOutput, 0)
	if midiOut == nil || midiOut.Name != "MIDI Out" || midiOut.ChannelCount != 16 {
		t.Fatalf("unexpected MIDI output bus %+v", midiOut)
	}

	if config.GetBusInfo(MediaTypeEvent, DirectionOutput, 1) != nil {
		t.Error("expected nil for out of range index")
	}
}

func TestSetBusActive(t *testing.T) {
	config := NewStereoConfiguration()

	if !config.SetBusActive(MediaTypeAudio, DirectionInput, 0, false) {
		t.Fatal("SetBusActive should find the input bus")
	}
	if config.GetBusInfo(MediaTypeAudio, DirectionInput, 0).IsActive {
		t.Error("input bus still active")
	}
	if config.SetBusActive(MediaTypeEvent, DirectionInput, 0, true) {
		t.Error("stereo configuration has no event bus")
	}
}

func TestBuilderValidate(t *testing.T) {
	if _, err := NewBuilder().WithStereoInput("in").Build(); err == nil {
		t.Error("expected error without an output bus")
	}
	if _, err := NewBuilder().WithAudioOutput("out", 0).Build(); err == nil {
		t.Error("expected error for zero channels")
	}
	if _, err := NewBuilder().WithEventOutput("midi").Build(); err != nil {
		t.Errorf("event-only output should be valid: %v", err)
	}
}
