package plugin

// #cgo CFLAGS: -I../../include
// #include "../../include/vst3/vst3_c_api.h"
// #include "../../bridge/bridge.h"
// #include "../../bridge/component.h"
// #include <stdlib.h>
// #include <string.h>
import "C"
import (
	"runtime/debug"
	"sync"
	"unsafe"

	logging "github.com/justyntemme/serialcontroller/pkg/framework/debug"
	"github.com/justyntemme/serialcontroller/pkg/framework/plugin"
	"github.com/justyntemme/serialcontroller/pkg/vst3"
)

// componentWrapper wraps a Go component for C callbacks
type componentWrapper struct {
	component Component
	handle    unsafe.Pointer
	id        uintptr
}

var (
	// Global map of component wrappers indexed by ID
	components   = make(map[uintptr]*componentWrapper)
	componentsMu sync.RWMutex
	nextID       uintptr = 1
)

// Global plugin instance
var globalPlugin Plugin

// FactoryInfo describes the vendor shown by hosts.
type FactoryInfo struct {
	Vendor string
	URL    string
	Email  string
}

var globalFactoryInfo = FactoryInfo{
	Vendor: "SerialController",
}

var log = logging.Default().With("vst3")

// Register sets the global plugin instance
func Register(p Plugin) {
	if err := p.GetInfo().ValidateUID(); err != nil {
		log.Error("register %q: %v", p.GetInfo().Name, err)
		return
	}
	globalPlugin = p
}

// SetFactoryInfo sets the factory information
func SetFactoryInfo(info FactoryInfo) {
	globalFactoryInfo = info
}

// recoverPanic keeps a panic in Go code from unwinding into the host.
func recoverPanic(operation string) {
	if r := recover(); r != nil {
		log.Error("panic in %s: %v\n%s", operation, r, debug.Stack())
	}
}

var (
	resultOK    = C.Steinberg_tresult(vst3.ResultOK)
	resultFalse = C.Steinberg_tresult(vst3.ResultFalse)
)

func result(err error) C.Steinberg_tresult {
	return C.Steinberg_tresult(vst3.ResultOf(err))
}

// registerComponent registers a component wrapper and returns its ID
func registerComponent(wrapper *componentWrapper) uintptr {
	componentsMu.Lock()
	defer componentsMu.Unlock()
	id := nextID
	nextID++
	wrapper.id = id
	components[id] = wrapper
	return id
}

// unregisterComponent removes a component wrapper by ID
func unregisterComponent(id uintptr) {
	componentsMu.Lock()
	defer componentsMu.Unlock()
	delete(components, id)
}

// getComponent retrieves a component wrapper by ID
func getComponent(id uintptr) *componentWrapper {
	componentsMu.RLock()
	defer componentsMu.RUnlock()

	if id == 0 {
		return nil
	}
	return components[id]
}

// releaseComponent terminates and forgets a component. Hosts may release
// without terminating first.
func releaseComponent(id uintptr) {
	if w := getComponent(id); w != nil {
		if err := w.component.Terminate(); err != nil {
			log.Warn("terminate instance %d: %v", id, err)
		}
	}
	unregisterComponent(id)
}

// lookup resolves the handle the C bridge passes back to a component.
func lookup(componentPtr unsafe.Pointer) Component {
	if w := getComponent(uintptr(componentPtr)); w != nil {
		return w.component
	}
	return nil
}

//export GoGetFactoryInfo
func GoGetFactoryInfo(vendor, url, email *C.char, flags *C.int32_t) {
	copyCString(vendor, globalFactoryInfo.Vendor, 64)
	copyCString(url, globalFactoryInfo.URL, 256)
	copyCString(email, globalFactoryInfo.Email, 128)
	*flags = C.Steinberg_PFactoryInfo_FactoryFlags_kUnicode
}

//export GoCountClasses
func GoCountClasses() C.int32_t {
	if globalPlugin == nil {
		return 0
	}
	return 1
}

//export GoGetClassInfo
func GoGetClassInfo(index C.int32_t, cid *C.char, cardinality *C.int32_t, category, name *C.char) {
	if globalPlugin == nil || index != 0 {
		return
	}

	info := globalPlugin.GetInfo()

	uid := info.UID()
	C.memcpy(unsafe.Pointer(cid), unsafe.Pointer(&uid[0]), 16)

	*cardinality = C.Steinberg_PClassInfo_ClassCardinality_kManyInstances

	copyCString(category, vst3.CategoryAudioEffect, 32)
	copyCString(name, info.Name, 64)
}

// GoGetClassInfo2 fills the PClassInfo2 fields beyond PClassInfo. The
// sub-categories tell hosts whether the class is an instrument or an effect.
//
//export GoGetClassInfo2
func GoGetClassInfo2(index C.int32_t, classFlags *C.uint32_t, subCategories, vendor, version, sdkVersion *C.char) {
	if globalPlugin == nil || index != 0 {
		return
	}

	info := globalPlugin.GetInfo()
	*classFlags = 0
	copyCString(subCategories, classSubCategories(info), 128)
	copyCString(vendor, classVendor(info), 64)
	copyCString(version, info.Version, 64)
	copyCString(sdkVersion, vst3.SDKVersion, 64)
}

func classSubCategories(info plugin.Info) string {
	if info.Category == "" {
		return vst3.SubCategoryFx
	}
	return info.Category
}

func classVendor(info plugin.Info) string {
	if info.Vendor == "" {
		return globalFactoryInfo.Vendor
	}
	return info.Vendor
}

//export GoCreateInstance
func GoCreateInstance(cid *C.char, iid *C.char) unsafe.Pointer {
	defer recoverPanic("GoCreateInstance")

	if globalPlugin == nil {
		return nil
	}

	var requestedCID [16]byte
	C.memcpy(unsafe.Pointer(&requestedCID[0]), unsafe.Pointer(cid), 16)

	info := globalPlugin.GetInfo()
	if requestedCID != info.UID() {
		return nil
	}

	processor := globalPlugin.CreateProcessor()
	if processor == nil {
		return nil
	}

	component := newComponent(processor, info)
	wrapper := &componentWrapper{component: component}
	component.wrapper = wrapper

	id := registerComponent(wrapper)

	// The C side only ever sees the ID, never a Go pointer.
	cComponent := C.createComponent(unsafe.Pointer(id))
	if cComponent == nil {
		unregisterComponent(id)
		return nil
	}

	wrapper.handle = cComponent
	log.Debug("created instance %d of %s", id, info.Name)
	return cComponent
}

//export GoReleaseComponent
func GoReleaseComponent(componentPtr unsafe.Pointer) {
	defer recoverPanic("GoReleaseComponent")
	releaseComponent(uintptr(componentPtr))
}

//export GoComponentInitialize
func GoComponentInitialize(componentPtr unsafe.Pointer, context unsafe.Pointer) C.Steinberg_tresult {
	defer recoverPanic("GoComponentInitialize")

	comp := lookup(componentPtr)
	if comp == nil {
		return resultFalse
	}
	return result(comp.Initialize(context))
}

//export GoComponentTerminate
func GoComponentTerminate(componentPtr unsafe.Pointer) C.Steinberg_tresult {
	defer recoverPanic("GoComponentTerminate")

	comp := lookup(componentPtr)
	if comp == nil {
		return resultFalse
	}
	return result(comp.Terminate())
}

//export GoComponentGetControllerClassId
func GoComponentGetControllerClassId(componentPtr unsafe.Pointer, classId *C.char) {
	comp := lookup(componentPtr)
	if comp == nil {
		return
	}

	uid := comp.GetControllerClassID()
	C.memcpy(unsafe.Pointer(classId), unsafe.Pointer(&uid[0]), 16)
}

//export GoComponentSetIoMode
func GoComponentSetIoMode(componentPtr unsafe.Pointer, mode C.int32_t) C.Steinberg_tresult {
	comp := lookup(componentPtr)
	if comp == nil {
		return resultFalse
	}
	return result(comp.SetIOMode(int32(mode)))
}

//export GoComponentGetBusCount
func GoComponentGetBusCount(componentPtr unsafe.Pointer, mediaType, dir C.int32_t) C.int32_t {
	comp := lookup(componentPtr)
	if comp == nil {
		return 0
	}
	return C.int32_t(comp.GetBusCount(int32(mediaType), int32(dir)))
}

//export GoComponentGetBusInfo
func GoComponentGetBusInfo(componentPtr unsafe.Pointer, mediaType, dir, index C.int32_t, bus unsafe.Pointer) C.Steinberg_tresult {
	comp := lookup(componentPtr)
	if comp == nil || bus == nil {
		return resultFalse
	}

	info, err := comp.GetBusInfo(int32(mediaType), int32(dir), int32(index))
	if err != nil {
		return result(err)
	}

	cBus := (*C.struct_Steinberg_Vst_BusInfo)(bus)
	cBus.mediaType = C.Steinberg_Vst_MediaType(info.MediaType)
	cBus.direction = C.Steinberg_Vst_BusDirection(info.Direction)
	cBus.channelCount = C.Steinberg_int32(info.ChannelCount)
	copyStringToTChar(info.Name, &cBus.name[0], len(cBus.name))
	cBus.busType = C.Steinberg_Vst_BusType(info.BusType)
	cBus.flags = C.Steinberg_uint32(info.Flags)

	return resultOK
}

//export GoComponentActivateBus
func GoComponentActivateBus(componentPtr unsafe.Pointer, mediaType, dir, index, state C.int32_t) C.Steinberg_tresult {
	comp := lookup(componentPtr)
	if comp == nil {
		return resultFalse
	}
	return result(comp.ActivateBus(int32(mediaType), int32(dir), int32(index), state != 0))
}

//export GoComponentSetActive
func GoComponentSetActive(componentPtr unsafe.Pointer, state C.int32_t) C.Steinberg_tresult {
	defer recoverPanic("GoComponentSetActive")

	comp := lookup(componentPtr)
	if comp == nil {
		return resultFalse
	}
	return result(comp.SetActive(state != 0))
}

//export GoComponentSetState
func GoComponentSetState(componentPtr unsafe.Pointer, state unsafe.Pointer) C.Steinberg_tresult {
	defer recoverPanic("GoComponentSetState")

	comp := lookup(componentPtr)
	stream := vst3.NewStreamWrapper(state)
	if comp == nil || stream == nil {
		return resultFalse
	}
	return result(comp.SetState(stream))
}

//export GoComponentGetState
func GoComponentGetState(componentPtr unsafe.Pointer, state unsafe.Pointer) C.Steinberg_tresult {
	defer recoverPanic("GoComponentGetState")

	comp := lookup(componentPtr)
	stream := vst3.NewStreamWrapper(state)
	if comp == nil || stream == nil {
		return resultFalse
	}
	return result(comp.GetState(stream))
}
