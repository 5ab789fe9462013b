package vst3

// #include "../../include/vst3/vst3_c_api.h"
import "C"
import "unsafe"

// Basic type aliases
type (
	Result     = C.Steinberg_tresult
	TUID       = C.Steinberg_TUID
	FUnknown   = C.struct_Steinberg_FUnknown
	ParamValue = C.Steinberg_Vst_ParamValue
	ParamID    = C.Steinberg_Vst_ParamID
	Sample32   = C.Steinberg_Vst_Sample32
)

// Interface IDs
var (
	IIDFUnknown = [16]byte{
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0xC0, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x46,
	}
	IIDIPluginFactory = [16]byte{
		0x7A, 0x4D, 0x81, 0x1C, 0x52, 0x11, 0x4A, 0x1F,
		0xAE, 0xD9, 0xD2, 0xEE, 0x0B, 0x43, 0xBF, 0x9F,
	}
)

// Class categories. Sub-categories are "|"-separated, e.g. "Instrument|Synth".
const (
	CategoryAudioEffect = "Audio Module Class"
	SubCategoryFx       = "Fx"
)

// SDKVersion is the SDK version string reported in class info.
const SDKVersion = "VST 3.7.9"

// Error is a failure reported back to the host as a result code.
type Error int

const (
	ErrNotImplemented  Error = -1
	ErrInvalidArgument Error = -2
	ErrStream          Error = -3
)

func (e Error) Error() string {
	switch e {
	case ErrNotImplemented:
		return "not implemented"
	case ErrInvalidArgument:
		return "invalid argument"
	case ErrStream:
		return "stream error"
	default:
		return "unknown error"
	}
}

// ResultOf maps an error to the result code the host expects.
func ResultOf(err error) int32 {
	switch err {
	case nil:
		return ResultOK
	case ErrInvalidArgument:
		return ResultInvalidArgument
	case ErrNotImplemented:
		return ResultNotImplemented
	}
	return ResultFalse
}

// ToTUID converts a Go interface ID to a C TUID pointer
func ToTUID(iid [16]byte) unsafe.Pointer {
	return unsafe.Pointer(&iid[0])
}
