package plugin

// #cgo CFLAGS: -I../../include
// #include "../../include/vst3/vst3_c_api.h"
import "C"
import (
	"unicode/utf16"
	"unsafe"
)

// copyCString copies s into a host char buffer of size bytes, truncating and
// NUL terminating.
func copyCString(dst *C.char, s string, size int) {
	if dst == nil || size <= 0 {
		return
	}
	buf := unsafe.Slice((*byte)(unsafe.Pointer(dst)), size)
	n := copy(buf[:size-1], s)
	buf[n] = 0
}

// copyStringToTChar copies a Go string to a VST3 TChar (UTF16) buffer of
// maxLen code units, truncating and NUL terminating.
func copyStringToTChar(src string, dst *C.Steinberg_Vst_TChar, maxLen int) {
	if dst == nil || maxLen <= 0 {
		return
	}
	buf := unsafe.Slice((*uint16)(unsafe.Pointer(dst)), maxLen)
	n := copy(buf[:maxLen-1], utf16.Encode([]rune(src)))
	buf[n] = 0
}

// stringFromTChar converts a NUL terminated VST3 TChar (UTF16) string.
func stringFromTChar(src *C.Steinberg_Vst_TChar) string {
	if src == nil {
		return ""
	}

	var units []uint16
	for p := (*uint16)(unsafe.Pointer(src)); *p != 0; p = (*uint16)(unsafe.Add(unsafe.Pointer(p), 2)) {
		units = append(units, *p)
	}
	return string(utf16.Decode(units))
}
