package vst3

// #include "../../include/vst3/vst3_c_api.h"
//
// static inline Steinberg_int32 eventList_count(struct Steinberg_Vst_IEventList* list) {
//     return list->lpVtbl->getEventCount(list);
// }
//
// static inline Steinberg_tresult eventList_get(struct Steinberg_Vst_IEventList* list, Steinberg_int32 index, struct Steinberg_Vst_Event* e) {
//     return list->lpVtbl->getEvent(list, index, e);
// }
//
// static inline Steinberg_tresult eventList_add(struct Steinberg_Vst_IEventList* list, struct Steinberg_Vst_Event* e) {
//     return list->lpVtbl->addEvent(list, e);
// }
//
// static inline struct Steinberg_Vst_NoteOnEvent* event_noteOn(struct Steinberg_Vst_Event* e) {
//     return &e->Steinberg_Vst_Event_noteOn;
// }
//
// static inline struct Steinberg_Vst_NoteOffEvent* event_noteOff(struct Steinberg_Vst_Event* e) {
//     return &e->Steinberg_Vst_Event_noteOff;
// }
//
// static inline struct Steinberg_Vst_PolyPressureEvent* event_polyPressure(struct Steinberg_Vst_Event* e) {
//     return &e->Steinberg_Vst_Event_polyPressure;
// }
//
// static inline struct Steinberg_Vst_LegacyMIDICCOutEvent* event_midiCCOut(struct Steinberg_Vst_Event* e) {
//     return &e->Steinberg_Vst_Event_midiCCOut;
// }
import "C"
import (
	"github.com/justyntemme/serialcontroller/pkg/midi"
)

// EventList wraps a host IEventList.
type EventList struct {
	list *C.struct_Steinberg_Vst_IEventList
}

func newEventList(list *C.struct_Steinberg_Vst_IEventList) *EventList {
	if list == nil {
		return nil
	}
	return &EventList{list: list}
}

// Count returns the number of events in the list.
func (l *EventList) Count() int32 {
	return int32(C.eventList_count(l.list))
}

// ReadAll appends the decodable events of the list to dst. Records with no
// MIDI equivalent, such as note expression, are skipped.
func (l *EventList) ReadAll(dst []midi.Event) []midi.Event {
	var ev C.struct_Steinberg_Vst_Event
	count := l.Count()
	for i := int32(0); i < count; i++ {
		if C.eventList_get(l.list, C.Steinberg_int32(i), &ev) != ResultOK {
			continue
		}
		if e, ok := decodeEvent(&ev); ok {
			dst = append(dst, e)
		}
	}
	return dst
}

// Add writes an event to the list. Events that have no host record, such as
// realtime messages, return ErrNotImplemented.
func (l *EventList) Add(e midi.Event, busIndex int32) error {
	var ev C.struct_Steinberg_Vst_Event
	if !encodeEvent(e, &ev) {
		return ErrNotImplemented
	}
	ev.busIndex = C.Steinberg_int32(busIndex)
	if C.eventList_add(l.list, &ev) != ResultOK {
		return ErrInvalidArgument
	}
	return nil
}

func decodeEvent(ev *C.struct_Steinberg_Vst_Event) (midi.Event, bool) {
	offset := int32(ev.sampleOffset)

	switch ev._type {
	case EventTypeNoteOn:
		on := C.event_noteOn(ev)
		base := midi.BaseEvent{EventChannel: uint8(on.channel) & 0x0F, Offset: offset}
		vel := midi.VelocityFromFloat(float32(on.velocity))
		if vel == 0 {
			return midi.NoteOffEvent{BaseEvent: base, NoteNumber: uint8(on.pitch) & 0x7F}, true
		}
		return midi.NoteOnEvent{BaseEvent: base, NoteNumber: uint8(on.pitch) & 0x7F, Velocity: vel}, true

	case EventTypeNoteOff:
		off := C.event_noteOff(ev)
		return midi.NoteOffEvent{
			BaseEvent:  midi.BaseEvent{EventChannel: uint8(off.channel) & 0x0F, Offset: offset},
			NoteNumber: uint8(off.pitch) & 0x7F,
			Velocity:   midi.VelocityFromFloat(float32(off.velocity)),
		}, true

	case EventTypePolyPressure:
		pp := C.event_polyPressure(ev)
		return midi.PolyPressureEvent{
			BaseEvent:  midi.BaseEvent{EventChannel: uint8(pp.channel) & 0x0F, Offset: offset},
			NoteNumber: uint8(pp.pitch) & 0x7F,
			Pressure:   midi.VelocityFromFloat(float32(pp.pressure)),
		}, true

	case EventTypeLegacyMIDICC:
		cc := C.event_midiCCOut(ev)
		return midi.LegacyCC{
			Channel:    uint8(cc.channel),
			Controller: uint8(cc.controlNumber),
			Value:      uint8(cc.value),
			Value2:     uint8(cc.value2),
		}.Event(offset)
	}
	return nil, false
}

func encodeEvent(e midi.Event, ev *C.struct_Steinberg_Vst_Event) bool {
	ev.sampleOffset = C.Steinberg_int32(e.SampleOffset())

	switch x := e.(type) {
	case midi.NoteOnEvent:
		ev._type = EventTypeNoteOn
		on := C.event_noteOn(ev)
		on.channel = C.Steinberg_int16(x.Channel())
		on.pitch = C.Steinberg_int16(x.NoteNumber)
		on.velocity = C.float(midi.VelocityToFloat(x.Velocity))
		on.noteId = -1
		return true

	case midi.NoteOffEvent:
		ev._type = EventTypeNoteOff
		off := C.event_noteOff(ev)
		off.channel = C.Steinberg_int16(x.Channel())
		off.pitch = C.Steinberg_int16(x.NoteNumber)
		off.velocity = C.float(midi.VelocityToFloat(x.Velocity))
		off.noteId = -1
		return true

	case midi.PolyPressureEvent:
		ev._type = EventTypePolyPressure
		pp := C.event_polyPressure(ev)
		pp.channel = C.Steinberg_int16(x.Channel())
		pp.pitch = C.Steinberg_int16(x.NoteNumber)
		pp.pressure = C.float(midi.VelocityToFloat(x.Pressure))
		pp.noteId = -1
		return true
	}

	legacy, ok := midi.ToLegacyCC(e)
	if !ok {
		return false
	}
	ev._type = EventTypeLegacyMIDICC
	cc := C.event_midiCCOut(ev)
	cc.controlNumber = C.Steinberg_uint8(legacy.Controller)
	cc.channel = C.Steinberg_int8(legacy.Channel)
	cc.value = C.Steinberg_int8(legacy.Value)
	cc.value2 = C.Steinberg_int8(legacy.Value2)
	return true
}
