package plugin

import (
	"context"
	"errors"
	"fmt"
	"io"
	"unsafe"

	"github.com/justyntemme/serialcontroller/pkg/framework/bus"
	"github.com/justyntemme/serialcontroller/pkg/framework/debug"
	"github.com/justyntemme/serialcontroller/pkg/framework/idle"
	"github.com/justyntemme/serialcontroller/pkg/framework/plugin"
	"github.com/justyntemme/serialcontroller/pkg/framework/process"
	"github.com/justyntemme/serialcontroller/pkg/framework/state"
	"github.com/justyntemme/serialcontroller/pkg/midi"
	"github.com/justyntemme/serialcontroller/pkg/vst3"
)

const defaultMaxBlockSize = 4096

// errNoAssignment reports "no mapping" to the host, which is a plain false.
var errNoAssignment = errors.New("no controller assignment")

// Component is what the exported callbacks dispatch to.
type Component interface {
	vst3.IComponent
	vst3.IAudioProcessor
	vst3.IEditController
	vst3.IMidiMapping
}

// componentImpl joins processor, edit controller and idle driver for one
// plugin instance.
type componentImpl struct {
	processor Processor
	info      plugin.Info
	ctx       *process.Context
	state     *state.Manager
	idle      *idle.Driver
	log       *debug.Logger
	wrapper   *componentWrapper

	sampleRate float64
	maxBlock   int32
	active     bool
	processing bool

	inEvents []midi.Event
}

func newComponent(processor Processor, info plugin.Info) *componentImpl {
	c := &componentImpl{
		processor:  processor,
		info:       info,
		ctx:        process.NewContext(defaultMaxBlockSize, processor.GetParameters()),
		state:      state.NewManager(processor.GetParameters()),
		log:        debug.Default().With("component"),
		sampleRate: 44100,
		maxBlock:   defaultMaxBlockSize,
		inEvents:   make([]midi.Event, 0, 128),
	}
	if h, ok := processor.(IdleHandler); ok {
		c.idle = idle.NewDriver(h, globalConfig.IdleInterval)
	}
	return c
}

// IPluginBase

func (c *componentImpl) Initialize(hostContext unsafe.Pointer) error {
	c.log.Debug("initialize %s", c.info.Name)
	return nil
}

func (c *componentImpl) Terminate() error {
	if c.idle != nil {
		c.idle.Stop()
	}
	if closer, ok := c.processor.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			c.log.Warn("close processor: %v", err)
		}
	}
	return nil
}

// IComponent

func (c *componentImpl) GetControllerClassID() [16]byte {
	// Component and controller are one object.
	return [16]byte{}
}

func (c *componentImpl) SetIOMode(mode int32) error {
	return nil
}

func (c *componentImpl) GetBusCount(mediaType, direction int32) int32 {
	return c.processor.GetBuses().GetBusCount(bus.MediaType(mediaType), bus.Direction(direction))
}

func (c *componentImpl) GetBusInfo(mediaType, direction, index int32) (*vst3.BusInfo, error) {
	info := c.processor.GetBuses().GetBusInfo(bus.MediaType(mediaType), bus.Direction(direction), index)
	if info == nil {
		return nil, vst3.ErrInvalidArgument
	}

	out := &vst3.BusInfo{
		MediaType:    int32(info.MediaType),
		Direction:    int32(info.Direction),
		ChannelCount: info.ChannelCount,
		Name:         info.Name,
		BusType:      int32(info.BusType),
	}
	if info.IsActive {
		out.Flags = vst3.BusDefaultActive
	}
	return out, nil
}

func (c *componentImpl) ActivateBus(mediaType, direction, index int32, state bool) error {
	if !c.processor.GetBuses().SetBusActive(bus.MediaType(mediaType), bus.Direction(direction), index, state) {
		return vst3.ErrInvalidArgument
	}
	return nil
}

func (c *componentImpl) SetActive(active bool) error {
	if err := c.processor.SetActive(active); err != nil {
		return fmt.Errorf("set active %v: %w", active, err)
	}
	c.active = active

	if c.idle != nil {
		if active {
			c.idle.Start(context.Background())
		} else {
			c.idle.Stop()
		}
	}
	return nil
}

func (c *componentImpl) SetState(stream *vst3.StreamWrapper) error {
	if err := c.state.Load(stream); err != nil {
		c.log.Error("load state: %v", err)
		return err
	}
	return nil
}

func (c *componentImpl) GetState(stream *vst3.StreamWrapper) error {
	if err := c.state.Save(stream); err != nil {
		c.log.Error("save state: %v", err)
		return err
	}
	return nil
}

// IAudioProcessor

func (c *componentImpl) SetBusArrangements(inputs, outputs []int64) error {
	for _, arrs := range [][]int64{inputs, outputs} {
		for _, arr := range arrs {
			if arr != vst3.SpeakerArrStereo {
				return vst3.ErrInvalidArgument
			}
		}
	}
	return nil
}

func (c *componentImpl) GetBusArrangement(direction, index int32) (int64, error) {
	info := c.processor.GetBuses().GetBusInfo(bus.MediaTypeAudio, bus.Direction(direction), index)
	if info == nil {
		return 0, vst3.ErrInvalidArgument
	}
	return vst3.SpeakerArrStereo, nil
}

func (c *componentImpl) CanProcessSampleSize(symbolicSampleSize int32) error {
	if symbolicSampleSize == vst3.SymbolicSample32 {
		return nil
	}
	return vst3.ErrNotImplemented
}

func (c *componentImpl) GetLatencySamples() uint32 {
	return uint32(c.processor.GetLatencySamples())
}

func (c *componentImpl) SetupProcessing(setup *vst3.ProcessSetup) error {
	c.sampleRate = setup.SampleRate
	c.maxBlock = setup.MaxSamplesPerBlock
	c.ctx.SampleRate = setup.SampleRate
	return c.processor.Initialize(setup.SampleRate, setup.MaxSamplesPerBlock)
}

func (c *componentImpl) SetProcessing(state bool) error {
	c.processing = state
	return nil
}

func (c *componentImpl) Process(data unsafe.Pointer) error {
	pd, ok := vst3.NewProcessData(data)
	if !ok {
		return vst3.ErrInvalidArgument
	}

	c.ctx.ClearAllEvents()
	if changes := pd.InputParameterChanges(); changes != nil {
		changes.ForEach(c.applyParameterChange)
	}
	if in := pd.InputEvents(); in != nil {
		c.inEvents = in.ReadAll(c.inEvents[:0])
		for _, e := range c.inEvents {
			c.ctx.AddInputEvent(e)
		}
	}

	c.ctx.Input = pd.InputChannels(c.ctx.Input[:0], 0)
	c.ctx.Output = pd.OutputChannels(c.ctx.Output[:0], 0)

	c.processor.ProcessAudio(c.ctx)

	out := pd.OutputEvents()
	if out == nil {
		c.ctx.ClearOutputEvents()
		return nil
	}
	for _, e := range c.ctx.DrainOutputEvents() {
		if err := out.Add(e, 0); err != nil {
			c.log.Debug("drop output event %v: %v", e, err)
		}
	}
	return nil
}

// applyParameterChange routes MIDI controller proxies to the input events and
// everything else to the parameters.
func (c *componentImpl) applyParameterChange(id uint32, value float64, sampleOffset int32) {
	if e, ok := midi.ProxyEvent(id, value, sampleOffset); ok {
		c.ctx.AddInputEvent(e)
		return
	}
	c.ctx.SetParameterAtOffset(id, value, sampleOffset)
}

func (c *componentImpl) GetTailSamples() uint32 {
	return uint32(c.processor.GetTailSamples())
}

// IEditController

func (c *componentImpl) SetComponentState(stream *vst3.StreamWrapper) error {
	return nil
}

func (c *componentImpl) GetParameterCount() int32 {
	return c.processor.GetParameters().Count()
}

func (c *componentImpl) GetParameterInfo(index int32) (*vst3.ParameterInfo, error) {
	p := c.processor.GetParameters().GetByIndex(index)
	if p == nil {
		return nil, vst3.ErrInvalidArgument
	}
	return &vst3.ParameterInfo{
		ID:           p.ID,
		Title:        p.Name,
		ShortTitle:   p.ShortName,
		Units:        p.Unit,
		StepCount:    p.StepCount,
		DefaultValue: p.DefaultValue,
		UnitID:       p.UnitID,
		Flags:        int32(p.Flags),
	}, nil
}

func (c *componentImpl) GetParamStringByValue(id uint32, value float64) (string, error) {
	p := c.processor.GetParameters().Get(id)
	if p == nil {
		return "", vst3.ErrInvalidArgument
	}
	return p.FormatValue(value), nil
}

func (c *componentImpl) GetParamValueByString(id uint32, str string) (float64, error) {
	p := c.processor.GetParameters().Get(id)
	if p == nil {
		return 0, vst3.ErrInvalidArgument
	}
	return p.ParseValue(str)
}

func (c *componentImpl) NormalizedParamToPlain(id uint32, normalized float64) float64 {
	if p := c.processor.GetParameters().Get(id); p != nil {
		return p.Denormalize(normalized)
	}
	return normalized
}

func (c *componentImpl) PlainParamToNormalized(id uint32, plain float64) float64 {
	if p := c.processor.GetParameters().Get(id); p != nil {
		return p.Normalize(plain)
	}
	return plain
}

func (c *componentImpl) GetParamNormalized(id uint32) float64 {
	if p := c.processor.GetParameters().Get(id); p != nil {
		return p.GetValue()
	}
	return 0
}

func (c *componentImpl) SetParamNormalized(id uint32, value float64) error {
	p := c.processor.GetParameters().Get(id)
	if p == nil {
		return vst3.ErrInvalidArgument
	}
	p.SetValue(value)
	return nil
}

// IMidiMapping

// GetMidiControllerAssignment maps a controller on the event input to its
// proxy parameter. Only proxies the processor registered are assigned.
func (c *componentImpl) GetMidiControllerAssignment(busIndex, channel int32, controller int16) (uint32, error) {
	if busIndex != 0 || channel < 0 || channel >= midi.ProxyChannels || controller < 0 {
		return 0, errNoAssignment
	}
	id, ok := midi.ProxyParamID(uint8(channel), uint16(controller))
	if !ok || c.processor.GetParameters().Get(id) == nil {
		return 0, errNoAssignment
	}
	return id, nil
}
