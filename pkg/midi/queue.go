package midi

import (
	"cmp"
	"slices"
	"sync"
)

// EventQueue is a mutex-protected list of events kept sorted by sample
// offset on read. It is the hand-off between non-audio producers (idle
// ticks, UI actions) and the audio thread.
type EventQueue struct {
	events []Event
	mu     sync.Mutex
	sorted bool
}

// NewEventQueue creates an empty queue.
func NewEventQueue() *EventQueue {
	return &EventQueue{
		events: make([]Event, 0, 128),
		sorted: true,
	}
}

// Add appends an event.
func (q *EventQueue) Add(event Event) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.events = append(q.events, event)
	q.sorted = false
}

// AddMultiple appends several events.
func (q *EventQueue) AddMultiple(events []Event) {
	if len(events) == 0 {
		return
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	q.events = append(q.events, events...)
	q.sorted = false
}

// Forward appends the events accepted by keep to dst in offset order and
// returns how many were rejected. q is left unchanged. dst must be a
// different queue.
func (q *EventQueue) Forward(dst *EventQueue, keep func(Event) bool) (dropped int) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.sortLocked()
	if len(q.events) == 0 {
		return 0
	}

	dst.mu.Lock()
	defer dst.mu.Unlock()

	for _, e := range q.events {
		if !keep(e) {
			dropped++
			continue
		}
		dst.events = append(dst.events, e)
		dst.sorted = false
	}
	return dropped
}

// GetAllEvents returns a sorted copy of all events.
func (q *EventQueue) GetAllEvents() []Event {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.sortLocked()

	result := make([]Event, len(q.events))
	copy(result, q.events)
	return result
}

// Drain moves all events into dst (reusing its capacity) and empties the
// queue. Events come out sorted by offset; equal offsets keep insertion order.
func (q *EventQueue) Drain(dst []Event) []Event {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.sortLocked()
	dst = append(dst, q.events...)
	for i := range q.events {
		q.events[i] = nil
	}
	q.events = q.events[:0]
	return dst
}

// Clear removes all events.
func (q *EventQueue) Clear() {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.events = q.events[:0]
	q.sorted = true
}

// Size returns the number of queued events.
func (q *EventQueue) Size() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.events)
}

// IsEmpty reports whether the queue has no events.
func (q *EventQueue) IsEmpty() bool {
	return q.Size() == 0
}

func (q *EventQueue) sortLocked() {
	if q.sorted {
		return
	}
	slices.SortStableFunc(q.events, func(a, b Event) int {
		return cmp.Compare(a.SampleOffset(), b.SampleOffset())
	})
	q.sorted = true
}
