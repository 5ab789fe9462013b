//go:build !windows

package vst3

// Result codes returned to the host.
const (
	ResultOK              = 0
	ResultFalse           = 1
	ResultInvalidArgument = 2
	ResultNotImplemented  = 3
)
