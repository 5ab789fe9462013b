package plugin

import (
	"errors"
	"testing"

	framework "github.com/justyntemme/serialcontroller/pkg/framework/plugin"
	"github.com/justyntemme/serialcontroller/pkg/vst3"
)

type stubComponent struct {
	Component
	terminated int
	err        error
}

func (s *stubComponent) Terminate() error {
	s.terminated++
	return s.err
}

func TestReleaseComponent(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"clean", nil},
		{"terminate fails", errors.New("port busy")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &stubComponent{err: tt.err}
			id := registerComponent(&componentWrapper{component: stub})
			if getComponent(id) == nil {
				t.Fatal("component not registered")
			}

			releaseComponent(id)

			if stub.terminated != 1 {
				t.Errorf("Terminate called %d times, want 1", stub.terminated)
			}
			if getComponent(id) != nil {
				t.Error("component still registered after release")
			}

			releaseComponent(id)
			if stub.terminated != 1 {
				t.Error("second release terminated again")
			}
		})
	}
}

func TestGetComponentZeroID(t *testing.T) {
	if getComponent(0) != nil {
		t.Error("id 0 resolved to a component")
	}
}

func TestClassInfo2Fields(t *testing.T) {
	saved := globalFactoryInfo
	defer func() { globalFactoryInfo = saved }()
	SetFactoryInfo(FactoryInfo{Vendor: "Factory Vendor"})

	tests := []struct {
		info       framework.Info
		subCats    string
		wantVendor string
	}{
		{framework.Info{Category: "Instrument"}, "Instrument", "Factory Vendor"},
		{framework.Info{Category: "Instrument|Synth", Vendor: "Own"}, "Instrument|Synth", "Own"},
		{framework.Info{}, vst3.SubCategoryFx, "Factory Vendor"},
	}
	for _, tt := range tests {
		if got := classSubCategories(tt.info); got != tt.subCats {
			t.Errorf("classSubCategories(%+v) = %q, want %q", tt.info, got, tt.subCats)
		}
		if got := classVendor(tt.info); got != tt.wantVendor {
			t.Errorf("classVendor(%+v) = %q, want %q", tt.info, got, tt.wantVendor)
		}
	}
}
