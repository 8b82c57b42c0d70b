// Package config loads the controller's YAML configuration.
// Durations are stored as millisecond integers, matching the
// device's native units, and exposed as time.Duration accessors.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// TransportKind selects how events leave the device.
type TransportKind string

const (
	TransportHTTP TransportKind = "http"
	TransportMQTT TransportKind = "mqtt"
)

// Config holds everything the doorbell-controller binary needs.
type Config struct {
	// DeviceID identifies this device in outbound payloads.
	DeviceID string `yaml:"device_id"`
	// Location tags events with the device's placement.
	Location string `yaml:"location"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
	// HTTPAddr is the local status server address (empty disables).
	HTTPAddr string `yaml:"http_addr"`

	Transport Transport `yaml:"transport"`
	Pins      Pins      `yaml:"pins"`
	Timing    Timing    `yaml:"timing"`
}

// Transport configures the outbound notification link.
type Transport struct {
	// Kind is "http" or "mqtt".
	Kind TransportKind `yaml:"kind"`
	// ServerURL is the remote service base URL (http kind).
	ServerURL string `yaml:"server_url"`
	// APIKey is sent as X-API-Key on every HTTP request.
	APIKey string `yaml:"api_key"`
	// Broker is the MQTT broker address (mqtt kind).
	Broker string `yaml:"broker"`
	// TimeoutMs bounds each send or probe.
	TimeoutMs int `yaml:"timeout_ms"`
}

// Pins assigns BCM pin numbers to the sensors and actuators.
type Pins struct {
	Motion        int `yaml:"motion"`
	Doorbell      int `yaml:"doorbell"`
	StatusLED     int `yaml:"status_led"`
	MotionLED     int `yaml:"motion_led"`
	Buzzer        int `yaml:"buzzer"`
	CameraTrigger int `yaml:"camera_trigger"`
}

// Timing holds the debounce and scheduling intervals.
type Timing struct {
	TickMs             int `yaml:"tick_ms"`
	MotionCooldownMs   int `yaml:"motion_cooldown_ms"`
	DoorbellCooldownMs int `yaml:"doorbell_cooldown_ms"`
	ReportIntervalMs   int `yaml:"report_interval_ms"`
	CameraHoldMs       int `yaml:"camera_hold_ms"`
	LinkBlinkMs        int `yaml:"link_blink_ms"`
}

// Defaults match the original front-door installation.
const (
	DefaultConfigFilename = "doorbell-controller.yaml"

	DefaultDeviceID = "DOORBELL_001"
	DefaultLocation = "front_door"

	DefaultPinMotion        = 2
	DefaultPinDoorbell      = 3
	DefaultPinStatusLED     = 13
	DefaultPinMotionLED     = 12
	DefaultPinBuzzer        = 11
	DefaultPinCameraTrigger = 10

	DefaultTickMs             = 100
	DefaultMotionCooldownMs   = 5000
	DefaultDoorbellCooldownMs = 3000
	DefaultReportIntervalMs   = 30000
	DefaultCameraHoldMs       = 200
	DefaultLinkBlinkMs        = 500
	DefaultTimeoutMs          = 5000
)

var (
	errNoServerURL = errors.New("transport.server_url must be set for http transport")
	errNoBroker    = errors.New("transport.broker must be set for mqtt transport")
)

// Load reads configuration from path and validates it, filling defaults
// for anything left unset.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks required fields and fills defaults in place.
func Validate(cfg *Config) error {
	if cfg.DeviceID == "" {
		cfg.DeviceID = DefaultDeviceID
	}
	if cfg.Location == "" {
		cfg.Location = DefaultLocation
	}

	if cfg.Transport.Kind == "" {
		cfg.Transport.Kind = TransportHTTP
	}
	switch cfg.Transport.Kind {
	case TransportHTTP:
		if cfg.Transport.ServerURL == "" {
			return errNoServerURL
		}
		if _, err := url.ParseRequestURI(cfg.Transport.ServerURL); err != nil {
			return fmt.Errorf("invalid server_url: %w", err)
		}
	case TransportMQTT:
		if cfg.Transport.Broker == "" {
			return errNoBroker
		}
	default:
		return fmt.Errorf("unknown transport kind %q", cfg.Transport.Kind)
	}
	if cfg.Transport.TimeoutMs <= 0 {
		cfg.Transport.TimeoutMs = DefaultTimeoutMs
	}

	fillPinDefaults(&cfg.Pins)
	fillTimingDefaults(&cfg.Timing)

	return nil
}

func fillPinDefaults(p *Pins) {
	if p.Motion == 0 {
		p.Motion = DefaultPinMotion
	}
	if p.Doorbell == 0 {
		p.Doorbell = DefaultPinDoorbell
	}
	if p.StatusLED == 0 {
		p.StatusLED = DefaultPinStatusLED
	}
	if p.MotionLED == 0 {
		p.MotionLED = DefaultPinMotionLED
	}
	if p.Buzzer == 0 {
		p.Buzzer = DefaultPinBuzzer
	}
	if p.CameraTrigger == 0 {
		p.CameraTrigger = DefaultPinCameraTrigger
	}
}

func fillTimingDefaults(t *Timing) {
	if t.TickMs <= 0 {
		t.TickMs = DefaultTickMs
	}
	if t.MotionCooldownMs <= 0 {
		t.MotionCooldownMs = DefaultMotionCooldownMs
	}
	if t.DoorbellCooldownMs <= 0 {
		t.DoorbellCooldownMs = DefaultDoorbellCooldownMs
	}
	if t.ReportIntervalMs <= 0 {
		t.ReportIntervalMs = DefaultReportIntervalMs
	}
	if t.CameraHoldMs <= 0 {
		t.CameraHoldMs = DefaultCameraHoldMs
	}
	if t.LinkBlinkMs <= 0 {
		t.LinkBlinkMs = DefaultLinkBlinkMs
	}
}

// Duration accessors.

func (t Timing) Tick() time.Duration             { return msToDuration(t.TickMs) }
func (t Timing) MotionCooldown() time.Duration   { return msToDuration(t.MotionCooldownMs) }
func (t Timing) DoorbellCooldown() time.Duration { return msToDuration(t.DoorbellCooldownMs) }
func (t Timing) ReportInterval() time.Duration   { return msToDuration(t.ReportIntervalMs) }
func (t Timing) CameraHold() time.Duration       { return msToDuration(t.CameraHoldMs) }
func (t Timing) LinkBlink() time.Duration        { return msToDuration(t.LinkBlinkMs) }

// Timeout returns the transport send/probe timeout.
func (t Transport) Timeout() time.Duration { return msToDuration(t.TimeoutMs) }

func msToDuration(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}
