package transport

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arlenner/doorbell-controller/internal/logger"
	"github.com/arlenner/doorbell-controller/internal/logic"
)

var ts = time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

func TestMotionDetectedRequest(t *testing.T) {
	var gotPath, gotKey string
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("X-API-Key")
		gotBody, _ = io.ReadAll(r.Body)
		w.Write([]byte(`{"status":"success"}`))
	}))
	defer srv.Close()

	n := NewHTTPNotifier(srv.URL, "secret", time.Second, logger.Nop())
	err := n.MotionDetected(MotionNotification{
		Timestamp: ts,
		SensorID:  "PIR_001",
		Location:  "front_door",
		HomeMode:  true,
	})
	require.NoError(t, err)

	assert.Equal(t, "/api/motion/detected", gotPath)
	assert.Equal(t, "secret", gotKey)

	var payload MotionPayload
	require.NoError(t, json.Unmarshal(gotBody, &payload))
	assert.Equal(t, "2026-03-14T09:26:53Z", payload.Timestamp)
	assert.Equal(t, "PIR_001", payload.SensorID)
	assert.Equal(t, "front_door", payload.Location)
	assert.True(t, payload.HomeMode)
}

func TestDoorbellAndCapturePaths(t *testing.T) {
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	n := NewHTTPNotifier(srv.URL, "", time.Second, logger.Nop())

	require.NoError(t, n.DoorbellPressed(DoorbellNotification{Timestamp: ts, PhotoCaptured: true}))
	require.NoError(t, n.CaptureRequested(CaptureNotification{Timestamp: ts, TriggerSource: logic.TriggerDoorbell}))

	assert.Equal(t, []string{"/api/doorbell/pressed", "/api/camera/capture"}, paths)
}

func TestReportStatusOverride(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/status/update", r.URL.Path)
		w.Write([]byte(`{"status":"success","home_mode":false}`))
	}))
	defer srv.Close()

	n := NewHTTPNotifier(srv.URL, "", time.Second, logger.Nop())
	resp, err := n.ReportStatus(StatusSnapshot{DeviceID: "DOORBELL_001", Timestamp: ts})
	require.NoError(t, err)
	require.NotNil(t, resp.HomeMode)
	assert.False(t, *resp.HomeMode)
}

func TestReportStatusMalformedResponseIsNoOverride(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	n := NewHTTPNotifier(srv.URL, "", time.Second, logger.Nop())
	resp, err := n.ReportStatus(StatusSnapshot{})
	require.NoError(t, err)
	assert.Nil(t, resp.HomeMode)
}

func TestReportStatusServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	n := NewHTTPNotifier(srv.URL, "", time.Second, logger.Nop())
	_, err := n.ReportStatus(StatusSnapshot{})
	assert.Error(t, err)
	assert.False(t, n.connected, "failed send must mark the link down")
}

func TestSendTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	n := NewHTTPNotifier(srv.URL, "", 20*time.Millisecond, logger.Nop())
	err := n.MotionDetected(MotionNotification{Timestamp: ts})
	assert.Error(t, err)
}

func TestConnectedProbeCaching(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/health", r.URL.Path)
		hits++
	}))
	defer srv.Close()

	n := NewHTTPNotifier(srv.URL, "", time.Second, logger.Nop())
	now := ts
	n.now = func() time.Time { return now }

	assert.True(t, n.Connected())
	assert.True(t, n.Connected(), "second call within probe interval uses the cache")
	assert.Equal(t, 1, hits)

	now = now.Add(n.probeInterval)
	assert.True(t, n.Connected())
	assert.Equal(t, 2, hits)
}

func TestConnectedDownServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	n := NewHTTPNotifier(srv.URL, "", 100*time.Millisecond, logger.Nop())
	assert.False(t, n.Connected())
}

func TestParseStatusResponse(t *testing.T) {
	assert.Nil(t, ParseStatusResponse([]byte(`{"status":"success"}`)).HomeMode)
	assert.Nil(t, ParseStatusResponse([]byte(`garbage`)).HomeMode)

	resp := ParseStatusResponse([]byte(`{"home_mode":true}`))
	require.NotNil(t, resp.HomeMode)
	assert.True(t, *resp.HomeMode)
}
