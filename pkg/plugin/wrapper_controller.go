package plugin

// #cgo CFLAGS: -I../../include
// #include "../../include/vst3/vst3_c_api.h"
// #include <stdlib.h>
// #include <string.h>
import "C"
import (
	"unsafe"

	"github.com/justyntemme/serialcontroller/pkg/vst3"
)

// IEditController callbacks

//export GoEditControllerSetComponentState
func GoEditControllerSetComponentState(componentPtr unsafe.Pointer, state unsafe.Pointer) C.Steinberg_tresult {
	comp := lookup(componentPtr)
	stream := vst3.NewStreamWrapper(state)
	if comp == nil || stream == nil {
		return C.Steinberg_tresult(vst3.ResultInvalidArgument)
	}
	return result(comp.SetComponentState(stream))
}

// The controller has no state of its own beyond the shared parameters.

//export GoEditControllerSetState
func GoEditControllerSetState(componentPtr unsafe.Pointer, state unsafe.Pointer) C.Steinberg_tresult {
	return resultOK
}

//export GoEditControllerGetState
func GoEditControllerGetState(componentPtr unsafe.Pointer, state unsafe.Pointer) C.Steinberg_tresult {
	return resultOK
}

//export GoEditControllerGetParameterCount
func GoEditControllerGetParameterCount(componentPtr unsafe.Pointer) C.int32_t {
	comp := lookup(componentPtr)
	if comp == nil {
		log.Warn("parameter count requested for unknown instance %v", uintptr(componentPtr))
		return 0
	}
	return C.int32_t(comp.GetParameterCount())
}

//export GoEditControllerGetParameterInfo
func GoEditControllerGetParameterInfo(componentPtr unsafe.Pointer, paramIndex C.int32_t, info *C.struct_Steinberg_Vst_ParameterInfo) C.Steinberg_tresult {
	comp := lookup(componentPtr)
	if comp == nil || info == nil {
		return C.Steinberg_tresult(vst3.ResultInvalidArgument)
	}

	paramInfo, err := comp.GetParameterInfo(int32(paramIndex))
	if err != nil {
		return result(err)
	}

	info.id = C.Steinberg_Vst_ParamID(paramInfo.ID)
	copyStringToTChar(paramInfo.Title, &info.title[0], len(info.title))
	copyStringToTChar(paramInfo.ShortTitle, &info.shortTitle[0], len(info.shortTitle))
	copyStringToTChar(paramInfo.Units, &info.units[0], len(info.units))
	info.stepCount = C.int32_t(paramInfo.StepCount)
	info.defaultNormalizedValue = C.Steinberg_Vst_ParamValue(paramInfo.DefaultValue)
	info.unitId = C.Steinberg_Vst_UnitID(paramInfo.UnitID)
	info.flags = C.int32_t(paramInfo.Flags)

	return resultOK
}

//export GoEditControllerGetParamStringByValue
func GoEditControllerGetParamStringByValue(componentPtr unsafe.Pointer, id C.Steinberg_Vst_ParamID, valueNormalized C.Steinberg_Vst_ParamValue, str *C.Steinberg_Vst_TChar) C.Steinberg_tresult {
	comp := lookup(componentPtr)
	if comp == nil || str == nil {
		return C.Steinberg_tresult(vst3.ResultInvalidArgument)
	}

	text, err := comp.GetParamStringByValue(uint32(id), float64(valueNormalized))
	if err != nil {
		return result(err)
	}
	// String128
	copyStringToTChar(text, str, 128)
	return resultOK
}

//export GoEditControllerGetParamValueByString
func GoEditControllerGetParamValueByString(componentPtr unsafe.Pointer, id C.Steinberg_Vst_ParamID, str *C.Steinberg_Vst_TChar, valueNormalized *C.Steinberg_Vst_ParamValue) C.Steinberg_tresult {
	comp := lookup(componentPtr)
	if comp == nil || str == nil || valueNormalized == nil {
		return C.Steinberg_tresult(vst3.ResultInvalidArgument)
	}

	value, err := comp.GetParamValueByString(uint32(id), stringFromTChar(str))
	if err != nil {
		return resultFalse
	}
	*valueNormalized = C.Steinberg_Vst_ParamValue(value)
	return resultOK
}

//export GoEditControllerNormalizedParamToPlain
func GoEditControllerNormalizedParamToPlain(componentPtr unsafe.Pointer, id C.Steinberg_Vst_ParamID, valueNormalized C.Steinberg_Vst_ParamValue) C.Steinberg_Vst_ParamValue {
	comp := lookup(componentPtr)
	if comp == nil {
		return valueNormalized
	}
	return C.Steinberg_Vst_ParamValue(comp.NormalizedParamToPlain(uint32(id), float64(valueNormalized)))
}

//export GoEditControllerPlainParamToNormalized
func GoEditControllerPlainParamToNormalized(componentPtr unsafe.Pointer, id C.Steinberg_Vst_ParamID, plainValue C.Steinberg_Vst_ParamValue) C.Steinberg_Vst_ParamValue {
	comp := lookup(componentPtr)
	if comp == nil {
		return plainValue
	}
	return C.Steinberg_Vst_ParamValue(comp.PlainParamToNormalized(uint32(id), float64(plainValue)))
}

//export GoEditControllerGetParamNormalized
func GoEditControllerGetParamNormalized(componentPtr unsafe.Pointer, id C.Steinberg_Vst_ParamID) C.Steinberg_Vst_ParamValue {
	comp := lookup(componentPtr)
	if comp == nil {
		return 0
	}
	return C.Steinberg_Vst_ParamValue(comp.GetParamNormalized(uint32(id)))
}

//export GoEditControllerSetParamNormalized
func GoEditControllerSetParamNormalized(componentPtr unsafe.Pointer, id C.Steinberg_Vst_ParamID, value C.Steinberg_Vst_ParamValue) C.Steinberg_tresult {
	comp := lookup(componentPtr)
	if comp == nil {
		return C.Steinberg_tresult(vst3.ResultInvalidArgument)
	}
	return result(comp.SetParamNormalized(uint32(id), float64(value)))
}

//export GoEditControllerSetComponentHandler
func GoEditControllerSetComponentHandler(componentPtr unsafe.Pointer, handler unsafe.Pointer) C.Steinberg_tresult {
	return resultOK
}

//export GoEditControllerCreateView
func GoEditControllerCreateView(componentPtr unsafe.Pointer, name *C.char) unsafe.Pointer {
	// Hosts render the parameters with their generic editor.
	return nil
}

// IMidiMapping callback

//export GoMidiMappingGetMidiControllerAssignment
func GoMidiMappingGetMidiControllerAssignment(componentPtr unsafe.Pointer, busIndex, channel C.int32_t, midiControllerNumber C.int16_t, id *C.uint32_t) C.Steinberg_tresult {
	defer recoverPanic("GoMidiMappingGetMidiControllerAssignment")

	comp := lookup(componentPtr)
	if comp == nil || id == nil {
		return resultFalse
	}
	paramID, err := comp.GetMidiControllerAssignment(int32(busIndex), int32(channel), int16(midiControllerNumber))
	if err != nil {
		return result(err)
	}
	*id = C.uint32_t(paramID)
	return resultOK
}
