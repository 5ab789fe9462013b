package process

import "github.com/justyntemme/serialcontroller/pkg/midi"

// NumInputChannels returns the number of input channels
func (c *Context) NumInputChannels() int {
	return len(c.Input)
}

// NumOutputChannels returns the number of output channels
func (c *Context) NumOutputChannels() int {
	return len(c.Output)
}

// GetNumChannels returns the number of channels present on both sides.
func (c *Context) GetNumChannels() int {
	return min(len(c.Input), len(c.Output))
}

// PassThrough copies input to output. Outputs without a matching input are
// left alone.
func (c *Context) PassThrough() {
	for ch := 0; ch < c.GetNumChannels(); ch++ {
		copy(c.Output[ch], c.Input[ch])
	}
}

// Clear zeros the output buffers
func (c *Context) Clear() {
	for ch := range c.Output {
		clear(c.Output[ch])
	}
}

// ProcessOutputs calls fn for every output channel, in place.
func (c *Context) ProcessOutputs(fn func(ch int, output []float32)) {
	for ch, out := range c.Output {
		fn(ch, out)
	}
}

// AddOutputEvents queues several output events at once.
func (c *Context) AddOutputEvents(events []midi.Event) {
	c.outputEvents.AddMultiple(events)
}

// ForwardInputEvents copies the input events accepted by keep to the output
// and returns how many were rejected.
func (c *Context) ForwardInputEvents(keep func(midi.Event) bool) (dropped int) {
	return c.inputEvents.Forward(c.outputEvents, keep)
}
