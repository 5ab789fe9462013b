package serialcontroller

import (
	"github.com/justyntemme/serialcontroller/pkg/framework/debug"
	"github.com/justyntemme/serialcontroller/pkg/framework/plugin"
	vst3plugin "github.com/justyntemme/serialcontroller/pkg/plugin"
	"github.com/justyntemme/serialcontroller/pkg/serial"
)

// Plugin registers the instrument with the host wrapper.
type Plugin struct {
	Config Config

	// Opener overrides how ports are opened; nil opens real devices.
	Opener serial.Opener
	Logger *debug.Logger
}

func (s *Plugin) GetInfo() plugin.Info {
	return plugin.Info{
		ID:       "com.serialcontroller.instrument",
		Name:     "SerialController",
		Version:  "1.0.0",
		Vendor:   "SerialController",
		Category: "Instrument",
	}
}

func (s *Plugin) CreateProcessor() vst3plugin.Processor {
	return NewProcessor(s.Config, s.Opener, s.Logger)
}
