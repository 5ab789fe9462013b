// Package plugin adapts a Go processor to the VST3 host ABI
package plugin

import (
	"time"

	"github.com/justyntemme/serialcontroller/pkg/framework/bus"
	"github.com/justyntemme/serialcontroller/pkg/framework/idle"
	"github.com/justyntemme/serialcontroller/pkg/framework/param"
	"github.com/justyntemme/serialcontroller/pkg/framework/plugin"
	"github.com/justyntemme/serialcontroller/pkg/framework/process"
)

// Plugin is the main interface that users implement
type Plugin interface {
	// GetInfo returns plugin metadata
	GetInfo() plugin.Info

	// CreateProcessor creates a new instance of the audio processor
	CreateProcessor() Processor
}

// Processor handles the actual audio processing
type Processor interface {
	// Initialize is called when the host sets up processing
	Initialize(sampleRate float64, maxBlockSize int32) error

	// ProcessAudio processes one block. It runs on the host audio thread and
	// must not block. Buffers and event queues are reused across blocks; a
	// newly created MIDI event costs one allocation when it is boxed into
	// midi.Event.
	ProcessAudio(ctx *process.Context)

	// GetParameters returns the parameter registry
	GetParameters() *param.Registry

	// GetBuses returns the bus configuration
	GetBuses() *bus.Configuration

	// SetActive is called when processing starts/stops
	SetActive(active bool) error

	// GetLatencySamples returns the plugin's latency in samples
	GetLatencySamples() int32

	// GetTailSamples returns the tail length in samples
	GetTailSamples() int32
}

// IdleHandler is implemented by processors that need periodic non-audio work.
// OnIdle runs on a dedicated goroutine while the component is active. A
// processor that also implements idle.Opener gets OnUIOpen before the first
// tick.
type IdleHandler = idle.Handler

// Config controls wrapper behavior shared by all instances.
type Config struct {
	// IdleInterval is the period between OnIdle calls. Zero uses
	// idle.DefaultInterval.
	IdleInterval time.Duration
}

var globalConfig = Config{
	IdleInterval: idle.DefaultInterval,
}

// SetConfig sets the global plugin configuration
func SetConfig(cfg Config) {
	globalConfig = cfg
}
