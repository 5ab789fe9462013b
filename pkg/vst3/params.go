package vst3

// #include "../../include/vst3/vst3_c_api.h"
//
// static inline Steinberg_int32 paramChanges_count(struct Steinberg_Vst_IParameterChanges* changes) {
//     return changes->lpVtbl->getParameterCount(changes);
// }
//
// static inline struct Steinberg_Vst_IParamValueQueue* paramChanges_queue(struct Steinberg_Vst_IParameterChanges* changes, Steinberg_int32 index) {
//     return changes->lpVtbl->getParameterData(changes, index);
// }
//
// static inline Steinberg_Vst_ParamID paramQueue_id(struct Steinberg_Vst_IParamValueQueue* queue) {
//     return queue->lpVtbl->getParameterId(queue);
// }
//
// static inline Steinberg_int32 paramQueue_count(struct Steinberg_Vst_IParamValueQueue* queue) {
//     return queue->lpVtbl->getPointCount(queue);
// }
//
// static inline Steinberg_tresult paramQueue_point(struct Steinberg_Vst_IParamValueQueue* queue, Steinberg_int32 index, Steinberg_int32* offset, Steinberg_Vst_ParamValue* value) {
//     return queue->lpVtbl->getPoint(queue, index, offset, value);
// }
import "C"

// ParameterChanges wraps a host IParameterChanges for one block.
type ParameterChanges struct {
	changes *C.struct_Steinberg_Vst_IParameterChanges
}

func newParameterChanges(changes *C.struct_Steinberg_Vst_IParameterChanges) *ParameterChanges {
	if changes == nil {
		return nil
	}
	return &ParameterChanges{changes: changes}
}

// ForEach calls fn for every automation point, queue by queue in host order.
func (p *ParameterChanges) ForEach(fn func(id uint32, value float64, sampleOffset int32)) {
	count := int32(C.paramChanges_count(p.changes))
	for i := int32(0); i < count; i++ {
		queue := C.paramChanges_queue(p.changes, C.Steinberg_int32(i))
		if queue == nil {
			continue
		}

		id := uint32(C.paramQueue_id(queue))
		points := int32(C.paramQueue_count(queue))
		for j := int32(0); j < points; j++ {
			var offset C.Steinberg_int32
			var value C.Steinberg_Vst_ParamValue
			if C.paramQueue_point(queue, C.Steinberg_int32(j), &offset, &value) != ResultOK {
				continue
			}
			fn(id, float64(value), int32(offset))
		}
	}
}
