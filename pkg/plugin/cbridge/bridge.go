// Package cbridge links the C half of the VST3 bridge into a plugin binary.
//
// Usage:
//
//	import _ "github.com/justyntemme/serialcontroller/pkg/plugin/cbridge"
package cbridge

// #cgo CFLAGS: -I../../../include
// #include "../../../bridge/bridge.c"
// #include "../../../bridge/component.c"
import "C"
