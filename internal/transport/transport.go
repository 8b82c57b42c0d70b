// Package transport sends doorbell events and status reports to the
// remote service. Two implementations exist: an HTTP JSON client
// matching the backend's REST API, and an MQTT publisher. Both are
// best-effort: a failed send is the caller's signal to log and move on.
package transport

import (
	"encoding/json"
	"time"

	"github.com/arlenner/doorbell-controller/internal/logic"
)

// Notifier delivers events and status to the remote service.
type Notifier interface {
	// MotionDetected reports a motion episode start.
	MotionDetected(n MotionNotification) error

	// DoorbellPressed reports a button press.
	DoorbellPressed(n DoorbellNotification) error

	// CaptureRequested reports that the camera trigger was pulsed.
	CaptureRequested(n CaptureNotification) error

	// ReportStatus pushes a status snapshot. The response may carry a
	// home-mode override; a malformed response is returned as an empty
	// StatusResponse with no error.
	ReportStatus(s StatusSnapshot) (*StatusResponse, error)

	// Connected reports whether the link is currently usable. The
	// check may have a reconnect side effect but must be cheap enough
	// to call every tick.
	Connected() bool

	// Close releases the link.
	Close() error
}

// MotionNotification describes a motion-started event.
type MotionNotification struct {
	Timestamp time.Time
	SensorID  string
	Location  string
	HomeMode  bool
}

// DoorbellNotification describes a doorbell press.
type DoorbellNotification struct {
	Timestamp     time.Time
	ButtonID      string
	Location      string
	HomeMode      bool
	PhotoCaptured bool
}

// CaptureNotification describes a camera trigger pulse.
type CaptureNotification struct {
	Timestamp     time.Time
	TriggerSource logic.TriggerSource
	Location      string
}

// StatusSnapshot is the periodic device status push. Immutable once
// built; constructed fresh each reporting interval.
type StatusSnapshot struct {
	DeviceID        string
	Timestamp       time.Time
	LinkConnected   bool
	LinkStrength    int
	SystemActive    bool
	HomeMode        bool
	MotionDetected  bool
	DoorbellPressed bool
	Uptime          time.Duration
}

// StatusResponse is the server's answer to a status push. HomeMode is
// nil when the server sent no override.
type StatusResponse struct {
	HomeMode *bool
}

// Wire payloads. Field names are the contract with the backend.

// MotionPayload is the wire form of a motion notification.
type MotionPayload struct {
	Timestamp string `json:"timestamp"`
	SensorID  string `json:"sensor_id"`
	Location  string `json:"location"`
	HomeMode  bool   `json:"home_mode"`
}

// DoorbellPayload is the wire form of a doorbell notification.
type DoorbellPayload struct {
	Timestamp     string `json:"timestamp"`
	ButtonID      string `json:"button_id"`
	Location      string `json:"location"`
	HomeMode      bool   `json:"home_mode"`
	PhotoCaptured bool   `json:"photo_captured"`
}

// CapturePayload is the wire form of a capture request.
type CapturePayload struct {
	Timestamp     string `json:"timestamp"`
	TriggerSource string `json:"trigger_source"`
	Location      string `json:"location"`
}

// StatusPayload is the wire form of a status snapshot.
type StatusPayload struct {
	DeviceID        string `json:"device_id"`
	Timestamp       string `json:"timestamp"`
	LinkConnected   bool   `json:"link_connected"`
	LinkStrength    int    `json:"link_strength"`
	SystemActive    bool   `json:"system_active"`
	HomeMode        bool   `json:"home_mode"`
	MotionDetected  bool   `json:"motion_detected"`
	DoorbellPressed bool   `json:"doorbell_pressed"`
	UptimeSeconds   int64  `json:"uptime"`
}

// statusResponseWire is the lenient parse target for status replies.
type statusResponseWire struct {
	HomeMode *bool `json:"home_mode"`
}

// FormatMotionPayload creates the JSON payload for a motion event.
func FormatMotionPayload(n MotionNotification) ([]byte, error) {
	return json.Marshal(MotionPayload{
		Timestamp: wireTime(n.Timestamp),
		SensorID:  n.SensorID,
		Location:  n.Location,
		HomeMode:  n.HomeMode,
	})
}

// FormatDoorbellPayload creates the JSON payload for a doorbell press.
func FormatDoorbellPayload(n DoorbellNotification) ([]byte, error) {
	return json.Marshal(DoorbellPayload{
		Timestamp:     wireTime(n.Timestamp),
		ButtonID:      n.ButtonID,
		Location:      n.Location,
		HomeMode:      n.HomeMode,
		PhotoCaptured: n.PhotoCaptured,
	})
}

// FormatCapturePayload creates the JSON payload for a capture request.
func FormatCapturePayload(n CaptureNotification) ([]byte, error) {
	return json.Marshal(CapturePayload{
		Timestamp:     wireTime(n.Timestamp),
		TriggerSource: string(n.TriggerSource),
		Location:      n.Location,
	})
}

// FormatStatusPayload creates the JSON payload for a status snapshot.
func FormatStatusPayload(s StatusSnapshot) ([]byte, error) {
	return json.Marshal(StatusPayload{
		DeviceID:        s.DeviceID,
		Timestamp:       wireTime(s.Timestamp),
		LinkConnected:   s.LinkConnected,
		LinkStrength:    s.LinkStrength,
		SystemActive:    s.SystemActive,
		HomeMode:        s.HomeMode,
		MotionDetected:  s.MotionDetected,
		DoorbellPressed: s.DoorbellPressed,
		UptimeSeconds:   int64(s.Uptime.Truncate(time.Second).Seconds()),
	})
}

// ParseStatusResponse interprets a status reply body. Anything that is
// not valid JSON with a boolean home_mode counts as "no override".
func ParseStatusResponse(body []byte) *StatusResponse {
	var wire statusResponseWire
	if err := json.Unmarshal(body, &wire); err != nil {
		return &StatusResponse{}
	}
	return &StatusResponse{HomeMode: wire.HomeMode}
}

func wireTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
