// Package process provides the per-block processing context handed to plugin
// processors.
package process

import (
	"github.com/justyntemme/serialcontroller/pkg/framework/param"
	"github.com/justyntemme/serialcontroller/pkg/midi"
)

// Context carries one block's buffers, parameters and MIDI events. Its
// storage is reused from block to block.
type Context struct {
	Input      [][]float32
	Output     [][]float32
	SampleRate float64

	// Parameter access
	params *param.Registry

	// MIDI events for the current block
	inputEvents  *midi.EventQueue
	outputEvents *midi.EventQueue
	eventScratch []midi.Event
}

// NewContext creates a new process context
func NewContext(maxBlockSize int, params *param.Registry) *Context {
	return &Context{
		params:       params,
		inputEvents:  midi.NewEventQueue(),
		outputEvents: midi.NewEventQueue(),
		eventScratch: make([]midi.Event, 0, 128),
	}
}

// Param returns the current value of a parameter (0-1 normalized)
func (c *Context) Param(id uint32) float64 {
	if p := c.params.Get(id); p != nil {
		return p.GetValue()
	}
	return 0
}

// ParamPlain returns the current plain value of a parameter
func (c *Context) ParamPlain(id uint32) float64 {
	if p := c.params.Get(id); p != nil {
		return p.GetPlainValue()
	}
	return 0
}

// SetParameterAtOffset applies a host parameter change. The change takes
// effect for the whole block.
func (c *Context) SetParameterAtOffset(paramID uint32, value float64, sampleOffset int32) {
	if p := c.params.Get(paramID); p != nil {
		p.SetValue(value)
	}
}

// NumSamples returns the number of samples to process
func (c *Context) NumSamples() int {
	if len(c.Input) > 0 && len(c.Input[0]) > 0 {
		return len(c.Input[0])
	}
	if len(c.Output) > 0 && len(c.Output[0]) > 0 {
		return len(c.Output[0])
	}
	return 0
}

// AddInputEvent queues an event received from the host for this block.
func (c *Context) AddInputEvent(event midi.Event) {
	c.inputEvents.Add(event)
}

// HasInputEvents reports whether any input events are queued.
func (c *Context) HasInputEvents() bool {
	return !c.inputEvents.IsEmpty()
}

// ClearInputEvents drops all input events.
func (c *Context) ClearInputEvents() {
	c.inputEvents.Clear()
}

// AddOutputEvent queues an event to be sent to the host after the block.
func (c *Context) AddOutputEvent(event midi.Event) {
	c.outputEvents.Add(event)
}

// GetOutputEvents returns the queued output events ordered by offset.
func (c *Context) GetOutputEvents() []midi.Event {
	return c.outputEvents.GetAllEvents()
}

// DrainOutputEvents moves the queued output events into the context's scratch
// slice and returns it. The slice is reused by the next call.
func (c *Context) DrainOutputEvents() []midi.Event {
	c.eventScratch = c.outputEvents.Drain(c.eventScratch[:0])
	return c.eventScratch
}

// ClearOutputEvents drops all output events.
func (c *Context) ClearOutputEvents() {
	c.outputEvents.Clear()
}

// ClearAllEvents drops input and output events.
func (c *Context) ClearAllEvents() {
	c.inputEvents.Clear()
	c.outputEvents.Clear()
}
