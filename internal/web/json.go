package web

import (
	"encoding/json"
	"time"

	"github.com/arlenner/doorbell-controller/internal/status"
)

// StatusJSON is the JSON representation of the daemon status.
type StatusJSON struct {
	Status StatusInner `json:"status"`
}

// StatusInner contains the status details.
type StatusInner struct {
	SystemActive    bool       `json:"system_active"`
	HomeMode        bool       `json:"home_mode"`
	MotionDetected  bool       `json:"motion_detected"`
	DoorbellPressed bool       `json:"doorbell_pressed"`
	UptimeSeconds   int64      `json:"uptime_seconds"`
	StartTime       string     `json:"start_time"`
	Timestamp       string     `json:"timestamp"`
	Link            LinkJSON   `json:"link"`
	Counts          CountsJSON `json:"event_counts"`
	Config          ConfigJSON `json:"config"`
}

// LinkJSON reports the transport link state.
type LinkJSON struct {
	Connected bool `json:"connected"`
	Strength  int  `json:"strength"`
}

// CountsJSON is the JSON representation of event counts.
type CountsJSON struct {
	MotionStarted   int `json:"motion_started"`
	MotionStopped   int `json:"motion_stopped"`
	DoorbellPressed int `json:"doorbell_pressed"`
	Captures        int `json:"captures"`
}

// ConfigJSON is the JSON representation of daemon config.
type ConfigJSON struct {
	DeviceID           string `json:"device_id"`
	Location           string `json:"location"`
	Transport          string `json:"transport"`
	Endpoint           string `json:"endpoint"`
	HTTPAddr           string `json:"http_addr"`
	TickMs             int64  `json:"tick_ms"`
	MotionCooldownMs   int64  `json:"motion_cooldown_ms"`
	DoorbellCooldownMs int64  `json:"doorbell_cooldown_ms"`
	ReportIntervalMs   int64  `json:"report_interval_ms"`
}

func formatJSON(snap status.Snapshot) []byte {
	sj := StatusJSON{
		Status: StatusInner{
			SystemActive:    snap.Mode.SystemActive,
			HomeMode:        snap.Mode.HomeMode,
			MotionDetected:  snap.MotionLatched,
			DoorbellPressed: snap.DoorbellLatched,
			UptimeSeconds:   int64(snap.Uptime().Truncate(time.Second).Seconds()),
			StartTime:       snap.StartTime.UTC().Format(time.RFC3339),
			Timestamp:       snap.Now.UTC().Format(time.RFC3339),
			Link: LinkJSON{
				Connected: snap.LinkUp,
				Strength:  snap.LinkStrength,
			},
			Counts: CountsJSON{
				MotionStarted:   snap.Counts.MotionStarted,
				MotionStopped:   snap.Counts.MotionStopped,
				DoorbellPressed: snap.Counts.DoorbellPressed,
				Captures:        snap.Counts.Captures,
			},
			Config: ConfigJSON{
				DeviceID:           snap.Config.DeviceID,
				Location:           snap.Config.Location,
				Transport:          snap.Config.Transport,
				Endpoint:           snap.Config.Endpoint,
				HTTPAddr:           snap.Config.HTTPAddr,
				TickMs:             snap.Config.TickMs,
				MotionCooldownMs:   snap.Config.MotionCooldownMs,
				DoorbellCooldownMs: snap.Config.DoorbellCooldownMs,
				ReportIntervalMs:   snap.Config.ReportIntervalMs,
			},
		},
	}

	data, _ := json.MarshalIndent(sj, "", "  ")
	return data
}
