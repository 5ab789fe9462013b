// Command serialcontroller builds the SerialController VST3 instrument.
//
//	go build -buildmode=c-shared -o SerialController.so ./cmd/serialcontroller
package main

import (
	"os"

	"github.com/justyntemme/serialcontroller/internal/serialcontroller"
	"github.com/justyntemme/serialcontroller/pkg/framework/debug"
	vst3plugin "github.com/justyntemme/serialcontroller/pkg/plugin"

	// Import C bridge - required for VST3 plugin to work
	_ "github.com/justyntemme/serialcontroller/pkg/plugin/cbridge"
)

func init() {
	cfg, err := serialcontroller.LoadConfig(os.Getenv)
	debug.SetLevel(cfg.LogLevel)
	if err != nil {
		debug.Warn("config: %v", err)
	}

	vst3plugin.SetConfig(vst3plugin.Config{
		IdleInterval: cfg.IdleInterval,
	})

	vst3plugin.SetFactoryInfo(vst3plugin.FactoryInfo{
		Vendor: "SerialController",
		URL:    "https://github.com/justyntemme/serialcontroller",
	})

	logger, err := cfg.NewLogger()
	if err != nil {
		debug.Warn("log file: %v", err)
	}

	vst3plugin.Register(&serialcontroller.Plugin{
		Config: cfg,
		Logger: logger,
	})
}

// Required for c-shared build mode
func main() {}
