package transport

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Backend API paths.
const (
	pathMotion   = "/api/motion/detected"
	pathDoorbell = "/api/doorbell/pressed"
	pathCapture  = "/api/camera/capture"
	pathStatus   = "/api/status/update"
	pathHealth   = "/api/health"
)

// How often Connected re-probes the health endpoint. Between probes the
// cached result (also refreshed by send outcomes) is returned, so the
// controller can call Connected every tick.
const defaultProbeInterval = 5 * time.Second

// HTTPNotifier posts JSON events to the backend's REST API.
// It is used from the single controller tick only and is not safe for
// concurrent use.
type HTTPNotifier struct {
	client  *http.Client
	baseURL string
	apiKey  string
	log     *zap.SugaredLogger

	probeInterval time.Duration
	lastProbe     time.Time
	connected     bool

	now func() time.Time
}

// NewHTTPNotifier creates a notifier for the given base URL. Every
// request carries the API key and is bounded by timeout.
func NewHTTPNotifier(serverURL, apiKey string, timeout time.Duration, log *zap.SugaredLogger) *HTTPNotifier {
	return &HTTPNotifier{
		client:        &http.Client{Timeout: timeout},
		baseURL:       serverURL,
		apiKey:        apiKey,
		log:           log,
		probeInterval: defaultProbeInterval,
		now:           time.Now,
	}
}

// MotionDetected posts a motion event.
func (h *HTTPNotifier) MotionDetected(n MotionNotification) error {
	payload, err := FormatMotionPayload(n)
	if err != nil {
		return fmt.Errorf("format motion payload: %w", err)
	}
	_, err = h.post(pathMotion, payload)
	return err
}

// DoorbellPressed posts a doorbell press.
func (h *HTTPNotifier) DoorbellPressed(n DoorbellNotification) error {
	payload, err := FormatDoorbellPayload(n)
	if err != nil {
		return fmt.Errorf("format doorbell payload: %w", err)
	}
	_, err = h.post(pathDoorbell, payload)
	return err
}

// CaptureRequested posts a capture request.
func (h *HTTPNotifier) CaptureRequested(n CaptureNotification) error {
	payload, err := FormatCapturePayload(n)
	if err != nil {
		return fmt.Errorf("format capture payload: %w", err)
	}
	_, err = h.post(pathCapture, payload)
	return err
}

// ReportStatus posts a status snapshot and parses the optional
// home-mode override from the reply.
func (h *HTTPNotifier) ReportStatus(s StatusSnapshot) (*StatusResponse, error) {
	payload, err := FormatStatusPayload(s)
	if err != nil {
		return nil, fmt.Errorf("format status payload: %w", err)
	}

	body, err := h.post(pathStatus, payload)
	if err != nil {
		return nil, err
	}

	return ParseStatusResponse(body), nil
}

// Connected returns the cached link state, re-probing the health
// endpoint when the cache is stale. The probe doubles as the reconnect
// attempt while the link is down.
func (h *HTTPNotifier) Connected() bool {
	now := h.now()
	if !h.lastProbe.IsZero() && now.Sub(h.lastProbe) < h.probeInterval {
		return h.connected
	}
	h.lastProbe = now

	req, err := http.NewRequest(http.MethodGet, h.baseURL+pathHealth, nil)
	if err != nil {
		h.connected = false
		return false
	}
	req.Header.Set("X-API-Key", h.apiKey)

	resp, err := h.client.Do(req)
	if err != nil {
		if h.connected {
			h.log.Warnw("link probe failed", "error", err)
		}
		h.connected = false
		return false
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	h.connected = resp.StatusCode < 300
	return h.connected
}

// Close releases idle connections.
func (h *HTTPNotifier) Close() error {
	h.client.CloseIdleConnections()
	return nil
}

// post sends a JSON body and returns the response body. Any outcome
// also refreshes the cached link state.
func (h *HTTPNotifier) post(path string, payload []byte) ([]byte, error) {
	req, err := http.NewRequest(http.MethodPost, h.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build request %s: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", h.apiKey)

	resp, err := h.client.Do(req)
	if err != nil {
		h.connected = false
		return nil, fmt.Errorf("post %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response %s: %w", path, err)
	}

	if resp.StatusCode >= 300 {
		h.connected = false
		return nil, fmt.Errorf("post %s: status %d", path, resp.StatusCode)
	}

	h.connected = true
	return body, nil
}
