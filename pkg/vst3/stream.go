package vst3

// #include "../../include/vst3/vst3_c_api.h"
//
// static inline Steinberg_tresult stream_read(struct Steinberg_IBStream* stream, void* buffer, Steinberg_int32 numBytes, Steinberg_int32* numBytesRead) {
//     return stream->lpVtbl->read(stream, buffer, numBytes, numBytesRead);
// }
//
// static inline Steinberg_tresult stream_write(struct Steinberg_IBStream* stream, void* buffer, Steinberg_int32 numBytes, Steinberg_int32* numBytesWritten) {
//     return stream->lpVtbl->write(stream, buffer, numBytes, numBytesWritten);
// }
import "C"
import (
	"io"
	"unsafe"
)

// StreamWrapper adapts a host IBStream to io.Reader and io.Writer.
type StreamWrapper struct {
	stream *C.struct_Steinberg_IBStream
}

// NewStreamWrapper creates a wrapper for an IBStream
func NewStreamWrapper(streamPtr unsafe.Pointer) *StreamWrapper {
	if streamPtr == nil {
		return nil
	}
	return &StreamWrapper{
		stream: (*C.struct_Steinberg_IBStream)(streamPtr),
	}
}

// Read reads from the stream. A read of zero bytes reports io.EOF.
func (s *StreamWrapper) Read(buffer []byte) (int, error) {
	if len(buffer) == 0 {
		return 0, nil
	}

	var numBytesRead C.Steinberg_int32
	result := C.stream_read(s.stream, unsafe.Pointer(&buffer[0]), C.Steinberg_int32(len(buffer)), &numBytesRead)
	if result != ResultOK {
		return 0, ErrStream
	}
	if numBytesRead == 0 {
		return 0, io.EOF
	}
	return int(numBytesRead), nil
}

// Write writes to the stream. A short write reports io.ErrShortWrite.
func (s *StreamWrapper) Write(buffer []byte) (int, error) {
	if len(buffer) == 0 {
		return 0, nil
	}

	var numBytesWritten C.Steinberg_int32
	result := C.stream_write(s.stream, unsafe.Pointer(&buffer[0]), C.Steinberg_int32(len(buffer)), &numBytesWritten)
	if result != ResultOK {
		return 0, ErrStream
	}
	if int(numBytesWritten) < len(buffer) {
		return int(numBytesWritten), io.ErrShortWrite
	}
	return int(numBytesWritten), nil
}
