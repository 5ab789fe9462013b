package plugin

import (
	"crypto/md5"
	"errors"
	"strings"
)

// Info contains plugin metadata.
type Info struct {
	ID       string // Reverse-DNS identifier, e.g. "com.example.myplugin"
	Name     string
	Version  string
	Vendor   string
	Category string // VST3 sub-category, e.g. "Instrument" or "Fx"
}

// UID derives the 16-byte VST3 class ID from the string ID. The same ID
// always yields the same UID, so hosts keep finding saved instances.
func (i Info) UID() [16]byte {
	return md5.Sum([]byte(i.ID))
}

// ControllerUID derives the class ID used for the edit controller half.
func (i Info) ControllerUID() [16]byte {
	return md5.Sum([]byte(i.ID + ".controller"))
}

// ValidateUID reports whether the ID can produce a usable UID.
func (i Info) ValidateUID() error {
	if strings.TrimSpace(i.ID) == "" {
		return errors.New("plugin ID must not be empty")
	}
	if i.UID() == ([16]byte{}) {
		return errors.New("plugin ID produced an all-zero UID")
	}
	return nil
}
