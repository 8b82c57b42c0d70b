package web

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arlenner/doorbell-controller/internal/logic"
	"github.com/arlenner/doorbell-controller/internal/status"
)

func testTracker() *status.Tracker {
	t0 := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	tr := status.NewTracker(t0, status.Config{
		DeviceID:  "DOORBELL_001",
		Location:  "front_door",
		Transport: "http",
		Endpoint:  "http://192.168.1.100:5000",
		TickMs:    100,
	})
	tr.Update(logic.DeviceMode{SystemActive: true, HomeMode: false}, true, false,
		logic.EventCounts{MotionStarted: 2, DoorbellPressed: 1, Captures: 3})
	tr.SetLink(true)
	tr.SetLinkStrength(-55)
	return tr
}

func TestJSONEndpoint(t *testing.T) {
	srv := New("", testTracker())
	ts := httptest.NewServer(srv.httpServer.Handler)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/index.json")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var sj StatusJSON
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&sj))
	assert.True(t, sj.Status.SystemActive)
	assert.False(t, sj.Status.HomeMode)
	assert.True(t, sj.Status.MotionDetected)
	assert.True(t, sj.Status.Link.Connected)
	assert.Equal(t, -55, sj.Status.Link.Strength)
	assert.Equal(t, 3, sj.Status.Counts.Captures)
	assert.Equal(t, "DOORBELL_001", sj.Status.Config.DeviceID)
}

func TestIndexPage(t *testing.T) {
	srv := New("", testTracker())
	ts := httptest.NewServer(srv.httpServer.Handler)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	html := string(body)
	assert.True(t, strings.Contains(html, "DOORBELL_001"))
	assert.True(t, strings.Contains(html, "CONNECTED"))
	assert.True(t, strings.Contains(html, "front_door"))
}

func TestUnknownPathIs404(t *testing.T) {
	srv := New("", testTracker())
	ts := httptest.NewServer(srv.httpServer.Handler)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/nope")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
