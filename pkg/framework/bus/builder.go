package bus

import (
	"errors"
	"fmt"
)

// maxChannels bounds a single audio bus.
const maxChannels = 32

// Builder provides a fluent API for building bus configurations.
type Builder struct {
	config *Configuration
}

// NewBuilder creates a new bus configuration builder.
func NewBuilder() *Builder {
	return &Builder{config: &Configuration{}}
}

func (b *Builder) addAudio(direction Direction, name string, channels int32, busType Type) *Builder {
	b.config.audioBuses = append(b.config.audioBuses, Info{
		MediaType:    MediaTypeAudio,
		Direction:    direction,
		ChannelCount: channels,
		Name:         name,
		BusType:      busType,
		IsActive:     busType == TypeMain,
	})
	return b
}

func (b *Builder) addEvent(direction Direction, name string) *Builder {
	b.config.eventBuses = append(b.config.eventBuses, Info{
		MediaType:    MediaTypeEvent,
		Direction:    direction,
		ChannelCount: 16,
		Name:         name,
		BusType:      TypeMain,
		IsActive:     true,
	})
	return b
}

// WithAudioInput adds a main audio input bus.
func (b *Builder) WithAudioInput(name string, channels int32) *Builder {
	return b.addAudio(DirectionInput, name, channels, TypeMain)
}

// WithAudioOutput adds a main audio output bus.
func (b *Builder) WithAudioOutput(name string, channels int32) *Builder {
	return b.addAudio(DirectionOutput, name, channels, TypeMain)
}

// WithStereoInput adds a two-channel main input.
func (b *Builder) WithStereoInput(name string) *Builder {
	return b.WithAudioInput(name, 2)
}

// WithStereoOutput adds a two-channel main output.
func (b *Builder) WithStereoOutput(name string) *Builder {
	return b.WithAudioOutput(name, 2)
}

// WithEventInput adds a MIDI input bus (16 channels).
func (b *Builder) WithEventInput(name string) *Builder {
	return b.addEvent(DirectionInput, name)
}

// WithEventOutput adds a MIDI output bus (16 channels).
func (b *Builder) WithEventOutput(name string) *Builder {
	return b.addEvent(DirectionOutput, name)
}

// Validate checks that there is a main output and sane channel counts.
func (b *Builder) Validate() error {
	hasMainOutput := false
	for _, list := range [][]Info{b.config.audioBuses, b.config.eventBuses} {
		for _, info := range list {
			if info.Direction == DirectionOutput && info.BusType == TypeMain {
				hasMainOutput = true
			}
		}
	}
	if !hasMainOutput {
		return errors.New("configuration must have at least one main output bus (audio or event)")
	}

	for _, info := range b.config.audioBuses {
		if info.ChannelCount <= 0 || info.ChannelCount > maxChannels {
			return fmt.Errorf("invalid channel count %d for bus %s", info.ChannelCount, info.Name)
		}
	}
	return nil
}

// Build returns the built configuration or an error.
func (b *Builder) Build() (*Configuration, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b.config, nil
}

// MustBuild returns the built configuration or panics on error.
func (b *Builder) MustBuild() *Configuration {
	config, err := b.Build()
	if err != nil {
		panic(err)
	}
	return config
}
