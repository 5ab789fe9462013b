// Package bus describes the audio and event buses a plugin exposes to the host.
package bus

// MediaType represents the type of bus.
type MediaType int32

const (
	// MediaTypeAudio represents audio bus type
	MediaTypeAudio MediaType = 0
	// MediaTypeEvent represents event/MIDI bus type
	MediaTypeEvent MediaType = 1
)

// Direction represents the bus direction.
type Direction int32

const (
	// DirectionInput represents input bus
	DirectionInput Direction = 0
	// DirectionOutput represents output bus
	DirectionOutput Direction = 1
)

// Type represents the bus type.
type Type int32

const (
	// TypeMain represents main bus
	TypeMain Type = 0
	// TypeAux represents auxiliary bus
	TypeAux Type = 1
)

// Info contains bus configuration.
type Info struct {
	MediaType    MediaType
	Direction    Direction
	ChannelCount int32
	Name         string
	BusType      Type
	IsActive     bool
}

// Configuration manages audio and event buses.
type Configuration struct {
	audioBuses []Info
	eventBuses []Info
}

// NewStereoConfiguration creates a standard stereo I/O configuration.
func NewStereoConfiguration() *Configuration {
	return NewBuilder().
		WithStereoInput("Stereo In").
		WithStereoOutput("Stereo Out").
		MustBuild()
}

// NewInstrument creates stereo audio I/O plus one MIDI input and one MIDI
// output bus.
func NewInstrument() *Configuration {
	return NewBuilder().
		WithStereoInput("Stereo In").
		WithStereoOutput("Stereo Out").
		WithEventInput("MIDI In").
		WithEventOutput("MIDI Out").
		MustBuild()
}

func (c *Configuration) buses(mediaType MediaType) []Info {
	if mediaType == MediaTypeEvent {
		return c.eventBuses
	}
	return c.audioBuses
}

// GetBusCount returns the number of buses for a given type and direction.
func (c *Configuration) GetBusCount(mediaType MediaType, direction Direction) int32 {
	count := int32(0)
	for _, b := range c.buses(mediaType) {
		if b.Direction == direction {
			count++
		}
	}
	return count
}

// GetBusInfo returns the index-th bus of a given type and direction, or nil.
func (c *Configuration) GetBusInfo(mediaType MediaType, direction Direction, index int32) *Info {
	buses := c.buses(mediaType)
	busIndex := int32(0)
	for i := range buses {
		if buses[i].Direction != direction {
			continue
		}
		if busIndex == index {
			return &buses[i]
		}
		busIndex++
	}
	return nil
}

// SetBusActive updates a bus activation flag. It reports whether the bus exists.
func (c *Configuration) SetBusActive(mediaType MediaType, direction Direction, index int32, active bool) bool {
	info := c.GetBusInfo(mediaType, direction, index)
	if info == nil {
		return false
	}
	info.IsActive = active
	return true
}
