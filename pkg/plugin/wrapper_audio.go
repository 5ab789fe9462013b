package plugin

// #cgo CFLAGS: -I../../include
// #include "../../include/vst3/vst3_c_api.h"
// #include <stdlib.h>
import "C"
import (
	"unsafe"

	"github.com/justyntemme/serialcontroller/pkg/vst3"
)

// IAudioProcessor callbacks

func speakerArrangements(ptr unsafe.Pointer, n C.int32_t) []int64 {
	if n <= 0 || ptr == nil {
		return nil
	}
	src := unsafe.Slice((*C.Steinberg_Vst_SpeakerArrangement)(ptr), int(n))
	arrs := make([]int64, len(src))
	for i, a := range src {
		arrs[i] = int64(a)
	}
	return arrs
}

//export GoAudioSetBusArrangements
func GoAudioSetBusArrangements(componentPtr unsafe.Pointer, inputs unsafe.Pointer, numIns C.int32_t, outputs unsafe.Pointer, numOuts C.int32_t) C.Steinberg_tresult {
	comp := lookup(componentPtr)
	if comp == nil {
		return C.Steinberg_tresult(vst3.ResultInvalidArgument)
	}

	err := comp.SetBusArrangements(speakerArrangements(inputs, numIns), speakerArrangements(outputs, numOuts))
	if err != nil {
		return resultFalse
	}
	return resultOK
}

//export GoAudioGetBusArrangement
func GoAudioGetBusArrangement(componentPtr unsafe.Pointer, dir, index C.int32_t, arr unsafe.Pointer) C.Steinberg_tresult {
	comp := lookup(componentPtr)
	if comp == nil || arr == nil {
		return C.Steinberg_tresult(vst3.ResultInvalidArgument)
	}

	arrangement, err := comp.GetBusArrangement(int32(dir), int32(index))
	if err != nil {
		return result(err)
	}

	*(*C.Steinberg_Vst_SpeakerArrangement)(arr) = C.Steinberg_Vst_SpeakerArrangement(arrangement)
	return resultOK
}

//export GoAudioCanProcessSampleSize
func GoAudioCanProcessSampleSize(componentPtr unsafe.Pointer, symbolicSampleSize C.int32_t) C.Steinberg_tresult {
	comp := lookup(componentPtr)
	if comp == nil {
		return C.Steinberg_tresult(vst3.ResultInvalidArgument)
	}

	if err := comp.CanProcessSampleSize(int32(symbolicSampleSize)); err != nil {
		return resultFalse
	}
	return resultOK
}

//export GoAudioGetLatencySamples
func GoAudioGetLatencySamples(componentPtr unsafe.Pointer) C.uint32_t {
	comp := lookup(componentPtr)
	if comp == nil {
		return 0
	}
	return C.uint32_t(comp.GetLatencySamples())
}

//export GoAudioSetupProcessing
func GoAudioSetupProcessing(componentPtr unsafe.Pointer, setup unsafe.Pointer) C.Steinberg_tresult {
	defer recoverPanic("GoAudioSetupProcessing")

	comp := lookup(componentPtr)
	if comp == nil || setup == nil {
		return C.Steinberg_tresult(vst3.ResultInvalidArgument)
	}

	cSetup := (*C.struct_Steinberg_Vst_ProcessSetup)(setup)
	goSetup := &vst3.ProcessSetup{
		ProcessMode:        int32(cSetup.processMode),
		SymbolicSampleSize: int32(cSetup.symbolicSampleSize),
		MaxSamplesPerBlock: int32(cSetup.maxSamplesPerBlock),
		SampleRate:         float64(cSetup.sampleRate),
	}

	if err := comp.SetupProcessing(goSetup); err != nil {
		log.Error("setup processing: %v", err)
		return resultFalse
	}
	return resultOK
}

//export GoAudioSetProcessing
func GoAudioSetProcessing(componentPtr unsafe.Pointer, state C.int32_t) C.Steinberg_tresult {
	comp := lookup(componentPtr)
	if comp == nil {
		return C.Steinberg_tresult(vst3.ResultInvalidArgument)
	}
	return result(comp.SetProcessing(state != 0))
}

//export GoAudioProcess
func GoAudioProcess(componentPtr unsafe.Pointer, data unsafe.Pointer) C.Steinberg_tresult {
	defer recoverPanic("GoAudioProcess")

	comp := lookup(componentPtr)
	if comp == nil {
		return C.Steinberg_tresult(vst3.ResultInvalidArgument)
	}
	return result(comp.Process(data))
}

//export GoAudioGetTailSamples
func GoAudioGetTailSamples(componentPtr unsafe.Pointer) C.uint32_t {
	comp := lookup(componentPtr)
	if comp == nil {
		return 0
	}
	return C.uint32_t(comp.GetTailSamples())
}
