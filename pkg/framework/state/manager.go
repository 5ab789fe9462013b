// Package state saves and restores plugin parameter values for host presets
// and project files.
package state

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/justyntemme/serialcontroller/pkg/framework/param"
)

const (
	magic          = "SERCTL"
	currentVersion = uint32(1)
)

// ErrInvalidFormat is returned when the data does not start with the state header.
var ErrInvalidFormat = errors.New("invalid state format")

// Manager handles plugin state saving and loading. Transient parameters are
// neither written nor restored.
//
// Layout (little endian): magic, version uint32, count int32, then count
// pairs of (id uint32, normalized value float64).
type Manager struct {
	registry *param.Registry
}

// NewManager creates a state manager over a parameter registry.
func NewManager(registry *param.Registry) *Manager {
	return &Manager{registry: registry}
}

// Save writes the parameter values.
func (m *Manager) Save(w io.Writer) error {
	if _, err := io.WriteString(w, magic); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, currentVersion); err != nil {
		return err
	}

	params := m.persisted()
	if err := binary.Write(w, binary.LittleEndian, int32(len(params))); err != nil {
		return err
	}
	for _, p := range params {
		if err := binary.Write(w, binary.LittleEndian, p.ID); err != nil {
			return err
		}
		if err := binary.Write(w, binary.LittleEndian, p.GetValue()); err != nil {
			return err
		}
	}
	return nil
}

// Load reads parameter values. Unknown IDs are skipped so older builds can
// open state saved by newer ones. Nothing is applied unless the whole stream
// decodes.
func (m *Manager) Load(r io.Reader) error {
	header := make([]byte, len(magic))
	if _, err := io.ReadFull(r, header); err != nil {
		return fmt.Errorf("read state header: %w", err)
	}
	if string(header) != magic {
		return ErrInvalidFormat
	}

	var version uint32
	if err := binary.Read(r, binary.LittleEndian, &version); err != nil {
		return fmt.Errorf("read state version: %w", err)
	}
	if version > currentVersion {
		return fmt.Errorf("state version %d is newer than supported version %d", version, currentVersion)
	}

	var count int32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return fmt.Errorf("read parameter count: %w", err)
	}
	if count < 0 {
		return ErrInvalidFormat
	}

	type entry struct {
		ID    uint32
		Value float64
	}
	entries := make([]entry, 0, min(int(count), int(m.registry.Count())))
	for i := int32(0); i < count; i++ {
		var e entry
		if err := binary.Read(r, binary.LittleEndian, &e); err != nil {
			return fmt.Errorf("read parameter %d: %w", i, err)
		}
		entries = append(entries, e)
	}

	for _, e := range entries {
		if p := m.registry.Get(e.ID); p != nil && !p.Transient {
			p.SetValue(e.Value)
		}
	}
	return nil
}

func (m *Manager) persisted() []*param.Parameter {
	all := m.registry.All()
	params := all[:0]
	for _, p := range all {
		if !p.Transient {
			params = append(params, p)
		}
	}
	return params
}

// Bytes returns the saved state as a byte slice.
func (m *Manager) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := m.Save(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// LoadBytes restores state from a byte slice. An empty slice leaves the
// parameters untouched.
func (m *Manager) LoadBytes(data []byte) error {
	if len(data) == 0 {
		return nil
	}
	return m.Load(bytes.NewReader(data))
}
