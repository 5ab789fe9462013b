package plugin

import (
	"testing"

	"github.com/justyntemme/serialcontroller/pkg/framework/bus"
	"github.com/justyntemme/serialcontroller/pkg/framework/param"
	framework "github.com/justyntemme/serialcontroller/pkg/framework/plugin"
	"github.com/justyntemme/serialcontroller/pkg/framework/process"
	"github.com/justyntemme/serialcontroller/pkg/midi"
	"github.com/justyntemme/serialcontroller/pkg/vst3"
)

type echoProcessor struct {
	*framework.BaseProcessor
	blocks int
}

func (e *echoProcessor) ProcessAudio(ctx *process.Context) {
	e.blocks++
	ctx.ForwardInputEvents(midi.IsChannelVoice)
}

func newEchoComponent(t *testing.T, proxies ...[2]uint16) *componentImpl {
	t.Helper()
	p := &echoProcessor{BaseProcessor: framework.NewBaseProcessor(bus.NewInstrument())}
	params := []*param.Parameter{param.PercentParameter(0, "Gain", 100).Build()}
	for _, pr := range proxies {
		id, ok := midi.ProxyParamID(uint8(pr[0]), pr[1])
		if !ok {
			t.Fatalf("no proxy for %v", pr)
		}
		params = append(params, param.New(id, "proxy").Flags(param.IsHidden).Transient().Build())
	}
	if err := p.GetParameters().Add(params...); err != nil {
		t.Fatal(err)
	}
	return newComponent(p, framework.Info{ID: "com.test.echo", Name: "Echo"})
}

func TestApplyParameterChange(t *testing.T) {
	c := newEchoComponent(t, [2]uint16{0, 1})
	ccID, _ := midi.ProxyParamID(0, 1)

	c.applyParameterChange(0, 0.25, 0)
	c.applyParameterChange(ccID, 1, 17)

	if got := c.ctx.ParamPlain(0); got != 25 {
		t.Errorf("gain = %v, want 25", got)
	}
	if p := c.processor.GetParameters().Get(ccID); p.GetValue() != 0 {
		t.Errorf("proxy parameter stored value %v; it should only produce an event", p.GetValue())
	}

	c.processor.ProcessAudio(c.ctx)
	out := c.ctx.DrainOutputEvents()
	if len(out) != 1 {
		t.Fatalf("got %d output events, want 1", len(out))
	}
	cc, ok := out[0].(midi.ControlChangeEvent)
	if !ok || cc.Controller != 1 || cc.Value != 127 || cc.SampleOffset() != 17 {
		t.Errorf("output event = %v, want CC1=127 at 17", out[0])
	}
}

func TestGetMidiControllerAssignment(t *testing.T) {
	c := newEchoComponent(t, [2]uint16{0, 1}, [2]uint16{3, midi.LegacyControllerPitchBend})

	tests := []struct {
		name       string
		bus        int32
		channel    int32
		controller int16
		ok         bool
	}{
		{"registered cc", 0, 0, 1, true},
		{"registered bend", 0, 3, midi.LegacyControllerPitchBend, true},
		{"unregistered cc", 0, 0, 2, false},
		{"second bus", 1, 0, 1, false},
		{"bad channel", 0, 16, 1, false},
		{"negative controller", 0, 0, -1, false},
		{"program change", 0, 0, midi.LegacyControllerProgramChange, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := c.GetMidiControllerAssignment(tt.bus, tt.channel, tt.controller)
			if (err == nil) != tt.ok {
				t.Fatalf("err = %v, want ok %v", err, tt.ok)
			}
			if err != nil {
				if vst3.ResultOf(err) != vst3.ResultFalse {
					t.Errorf("result = %d, want ResultFalse", vst3.ResultOf(err))
				}
				return
			}
			want, _ := midi.ProxyParamID(uint8(tt.channel), uint16(tt.controller))
			if id != want {
				t.Errorf("id = %d, want %d", id, want)
			}
		})
	}
}
