//go:build !windows

package debug

import "io"

// DebuggerWriter discards output on platforms without a debugger string
// channel; stderr already carries the messages there.
func DebuggerWriter() io.Writer {
	return io.Discard
}
