// Package plugin provides plugin metadata and a base processor that covers
// the bookkeeping every processor needs.
package plugin

import (
	"github.com/justyntemme/serialcontroller/pkg/framework/bus"
	"github.com/justyntemme/serialcontroller/pkg/framework/param"
)

// BaseProcessor provides the non-audio half of the Processor interface.
// Embed it and implement ProcessAudio.
type BaseProcessor struct {
	params     *param.Registry
	buses      *bus.Configuration
	sampleRate float64
	blockSize  int32
	active     bool
	tail       int32

	onInitialize func(sampleRate float64, maxBlockSize int32) error
	onSetActive  func(active bool) error
}

// NewBaseProcessor creates a base processor; nil buses default to stereo.
func NewBaseProcessor(buses *bus.Configuration) *BaseProcessor {
	if buses == nil {
		buses = bus.NewStereoConfiguration()
	}
	return &BaseProcessor{
		params: param.NewRegistry(),
		buses:  buses,
	}
}

// Initialize records the processing setup and runs the OnInitialize hook.
func (b *BaseProcessor) Initialize(sampleRate float64, maxBlockSize int32) error {
	b.sampleRate = sampleRate
	b.blockSize = maxBlockSize
	if b.onInitialize != nil {
		return b.onInitialize(sampleRate, maxBlockSize)
	}
	return nil
}

// GetParameters returns the parameter registry.
func (b *BaseProcessor) GetParameters() *param.Registry {
	return b.params
}

// GetBuses returns the bus configuration.
func (b *BaseProcessor) GetBuses() *bus.Configuration {
	return b.buses
}

// SetActive records the activation state and runs the OnSetActive hook.
func (b *BaseProcessor) SetActive(active bool) error {
	b.active = active
	if b.onSetActive != nil {
		return b.onSetActive(active)
	}
	return nil
}

// IsActive reports whether the host has activated processing.
func (b *BaseProcessor) IsActive() bool {
	return b.active
}

// GetLatencySamples reports no latency.
func (b *BaseProcessor) GetLatencySamples() int32 {
	return 0
}

// GetTailSamples returns the tail set with SetTailSamples.
func (b *BaseProcessor) GetTailSamples() int32 {
	return b.tail
}

// SetTailSamples sets how long the host keeps processing after input stops.
func (b *BaseProcessor) SetTailSamples(samples int32) {
	b.tail = samples
}

// SampleRate returns the current sample rate.
func (b *BaseProcessor) SampleRate() float64 {
	return b.sampleRate
}

// MaxBlockSize returns the largest block the host will send.
func (b *BaseProcessor) MaxBlockSize() int32 {
	return b.blockSize
}

// OnInitialize sets a callback for initialization.
func (b *BaseProcessor) OnInitialize(fn func(sampleRate float64, maxBlockSize int32) error) {
	b.onInitialize = fn
}

// OnSetActive sets a callback for activation/deactivation.
func (b *BaseProcessor) OnSetActive(fn func(active bool) error) {
	b.onSetActive = fn
}
