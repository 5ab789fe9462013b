package serialcontroller

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/justyntemme/serialcontroller/pkg/framework/debug"
	"github.com/justyntemme/serialcontroller/pkg/framework/idle"
	"github.com/justyntemme/serialcontroller/pkg/serial"
)

// Environment variables read by LoadConfig.
const (
	EnvPort       = "SERIALCONTROLLER_PORT"
	EnvBaud       = "SERIALCONTROLLER_BAUD"
	EnvMode       = "SERIALCONTROLLER_MODE"
	EnvChannel    = "SERIALCONTROLLER_CHANNEL"
	EnvController = "SERIALCONTROLLER_CONTROLLER"
	EnvVelocity   = "SERIALCONTROLLER_VELOCITY"
	EnvWaitMS     = "SERIALCONTROLLER_WAIT_MS"
	EnvIdleMS     = "SERIALCONTROLLER_IDLE_MS"
	EnvLogLevel   = "SERIALCONTROLLER_LOG_LEVEL"
	EnvLogFile    = "SERIALCONTROLLER_LOG_FILE"
)

// Config holds everything an instance needs besides its parameters.
type Config struct {
	Serial       serial.Config
	Mapping      serial.Mapping
	IdleInterval time.Duration
	LogLevel     debug.LogLevel

	// LogFile, when set, receives the instrument's log instead of stderr.
	LogFile string
}

// DefaultConfig returns COM8 at 9600 8N1 mapped to the mod wheel on channel 0.
func DefaultConfig() Config {
	return Config{
		Serial:       serial.DefaultConfig(),
		Mapping:      serial.DefaultMapping(),
		IdleInterval: idle.DefaultInterval,
		LogLevel:     debug.LogLevelInfo,
	}
}

// LoadConfig applies environment overrides to the defaults. A value that does
// not parse or is out of range keeps its default and is reported in the
// returned error; the Config is usable either way.
func LoadConfig(getenv func(string) string) (Config, error) {
	cfg := DefaultConfig()
	var errs []error

	if v := getenv(EnvPort); v != "" {
		cfg.Serial.PortName = v
	}
	if v := getenv(EnvBaud); v != "" {
		if n, err := strconv.Atoi(v); err != nil || n <= 0 {
			errs = append(errs, fmt.Errorf("%s=%q: invalid baud rate", EnvBaud, v))
		} else {
			cfg.Serial.BaudRate = n
		}
	}
	if v := getenv(EnvMode); v != "" {
		if m, err := serial.ParseMode(v); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", EnvMode, err))
		} else {
			cfg.Mapping.Mode = m
		}
	}
	if v := getenv(EnvChannel); v != "" {
		if n, err := parseUint7(v, 15); err != nil {
			errs = append(errs, fmt.Errorf("%s=%q: %w", EnvChannel, v, err))
		} else {
			cfg.Mapping.Channel = n
		}
	}
	if v := getenv(EnvController); v != "" {
		if n, err := parseUint7(v, 127); err != nil {
			errs = append(errs, fmt.Errorf("%s=%q: %w", EnvController, v, err))
		} else {
			cfg.Mapping.Controller = n
		}
	}
	if v := getenv(EnvVelocity); v != "" {
		if n, err := parseUint7(v, 127); err != nil || n == 0 {
			errs = append(errs, fmt.Errorf("%s=%q: velocity must be 1-127", EnvVelocity, v))
		} else {
			cfg.Mapping.Velocity = n
		}
	}
	if v := getenv(EnvWaitMS); v != "" {
		if d, err := parseMillis(v); err != nil {
			errs = append(errs, fmt.Errorf("%s=%q: %w", EnvWaitMS, v, err))
		} else {
			cfg.Serial.WaitTimeout = d
		}
	}
	if v := getenv(EnvIdleMS); v != "" {
		if d, err := parseMillis(v); err != nil || d == 0 {
			errs = append(errs, fmt.Errorf("%s=%q: idle interval must be positive", EnvIdleMS, v))
		} else {
			cfg.IdleInterval = d
		}
	}
	if v := getenv(EnvLogLevel); v != "" {
		if lvl, err := debug.ParseLevel(v); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", EnvLogLevel, err))
		} else {
			cfg.LogLevel = lvl
		}
	}

	cfg.LogFile = getenv(EnvLogFile)

	return cfg, errors.Join(errs...)
}

// NewLogger returns the logger instances write to: the shared default logger,
// or a file logger at LogLevel when LogFile is set.
func (c Config) NewLogger() (*debug.Logger, error) {
	if c.LogFile == "" {
		return debug.Default(), nil
	}
	l, err := debug.NewFileLogger(c.LogFile, "SerialController", debug.DefaultFlags)
	if err != nil {
		return debug.Default(), err
	}
	l.SetLevel(c.LogLevel)
	return l, nil
}

func parseUint7(s string, limit uint64) (uint8, error) {
	n, err := strconv.ParseUint(s, 10, 8)
	if err != nil {
		return 0, err
	}
	if n > limit {
		return 0, fmt.Errorf("value %d exceeds %d", n, limit)
	}
	return uint8(n), nil
}

func parseMillis(s string) (time.Duration, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, errors.New("negative duration")
	}
	return time.Duration(n) * time.Millisecond, nil
}
