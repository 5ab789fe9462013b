package vst3

// #include "../../include/vst3/vst3_c_api.h"
//
// static inline Steinberg_Vst_Sample32** getChannelBuffers32(struct Steinberg_Vst_AudioBusBuffers* buffers) {
//     return buffers->Steinberg_Vst_AudioBusBuffers_channelBuffers32;
// }
import "C"
import (
	"unsafe"
)

// ProcessData is a view of the host's per-block process data. It holds no
// Go allocations of its own so it can be built on every block.
type ProcessData struct {
	ptr *C.struct_Steinberg_Vst_ProcessData
}

// NewProcessData wraps the host pointer. ok is false for a nil pointer.
func NewProcessData(dataPtr unsafe.Pointer) (ProcessData, bool) {
	if dataPtr == nil {
		return ProcessData{}, false
	}
	return ProcessData{ptr: (*C.struct_Steinberg_Vst_ProcessData)(dataPtr)}, true
}

// NumSamples returns the number of samples to process
func (d ProcessData) NumSamples() int32 {
	return int32(d.ptr.numSamples)
}

// NumInputs returns the number of input audio buses.
func (d ProcessData) NumInputs() int {
	if d.ptr.inputs == nil {
		return 0
	}
	return int(d.ptr.numInputs)
}

// NumOutputs returns the number of output audio buses.
func (d ProcessData) NumOutputs() int {
	if d.ptr.outputs == nil {
		return 0
	}
	return int(d.ptr.numOutputs)
}

// InputChannels appends the channel buffers of input bus index to dst.
// Missing buses and null channel pointers contribute nothing.
func (d ProcessData) InputChannels(dst [][]float32, index int) [][]float32 {
	if index < 0 || index >= d.NumInputs() {
		return dst
	}
	buses := unsafe.Slice(d.ptr.inputs, d.NumInputs())
	return appendChannels(dst, &buses[index], int(d.ptr.numSamples))
}

// OutputChannels appends the channel buffers of output bus index to dst.
func (d ProcessData) OutputChannels(dst [][]float32, index int) [][]float32 {
	if index < 0 || index >= d.NumOutputs() {
		return dst
	}
	buses := unsafe.Slice(d.ptr.outputs, d.NumOutputs())
	return appendChannels(dst, &buses[index], int(d.ptr.numSamples))
}

func appendChannels(dst [][]float32, bus *C.struct_Steinberg_Vst_AudioBusBuffers, numSamples int) [][]float32 {
	numChannels := int(bus.numChannels)
	if numChannels == 0 || numSamples <= 0 {
		return dst
	}
	channels := C.getChannelBuffers32(bus)
	if channels == nil {
		return dst
	}

	// Slices alias host memory; they are valid for this block only.
	for _, ch := range unsafe.Slice(channels, numChannels) {
		if ch != nil {
			dst = append(dst, unsafe.Slice((*float32)(unsafe.Pointer(ch)), numSamples))
		}
	}
	return dst
}

// InputEvents returns the host's input event list, or nil when the host
// sends no events this block.
func (d ProcessData) InputEvents() *EventList {
	return newEventList(d.ptr.inputEvents)
}

// OutputEvents returns the list events are written to, or nil when the host
// provides none.
func (d ProcessData) OutputEvents() *EventList {
	return newEventList(d.ptr.outputEvents)
}

// InputParameterChanges returns the parameter automation for this block, or
// nil when there is none.
func (d ProcessData) InputParameterChanges() *ParameterChanges {
	return newParameterChanges(d.ptr.inputParameterChanges)
}
