//go:build windows

package debug

import (
	"io"

	"golang.org/x/sys/windows"
)

type debuggerWriter struct{}

func (debuggerWriter) Write(p []byte) (int, error) {
	s, err := windows.UTF16PtrFromString(string(p))
	if err != nil {
		// embedded NUL; nothing sensible to hand the debugger
		return len(p), nil
	}
	windows.OutputDebugString(s)
	return len(p), nil
}

// DebuggerWriter returns a writer that forwards to OutputDebugString so
// messages show up in the debugger or DebugView while the host runs.
func DebuggerWriter() io.Writer {
	return debuggerWriter{}
}
