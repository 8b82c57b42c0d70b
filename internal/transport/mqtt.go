package transport

import (
	"fmt"
	"sync"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"go.uber.org/zap"
)

// MQTT topic layout, parameterized by device ID.
const (
	topicEventMotion   = "doorbell/%s/event/motion"
	topicEventDoorbell = "doorbell/%s/event/doorbell"
	topicEventCapture  = "doorbell/%s/event/capture"
	topicStatus        = "doorbell/%s/status"
	topicMode          = "doorbell/%s/mode"
)

// MQTTNotifier publishes events to an MQTT broker. Mode overrides
// arrive asynchronously on the mode topic and are handed to the
// reporter on its next ReportStatus call.
type MQTTNotifier struct {
	client   paho.Client
	deviceID string
	timeout  time.Duration
	log      *zap.SugaredLogger

	// pendingMode is written by the paho message goroutine and
	// consumed by ReportStatus on the controller tick.
	mu          sync.Mutex
	pendingMode *bool
}

// NewMQTTNotifier connects to the broker and subscribes to the mode
// topic. Paho's auto-reconnect keeps the link alive afterwards.
func NewMQTTNotifier(broker, deviceID string, timeout time.Duration, log *zap.SugaredLogger) (*MQTTNotifier, error) {
	n := &MQTTNotifier{
		deviceID: deviceID,
		timeout:  timeout,
		log:      log,
	}

	opts := paho.NewClientOptions().
		AddBroker(broker).
		SetClientID("doorbell-" + deviceID).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5 * time.Second).
		SetOnConnectHandler(func(c paho.Client) {
			// Resubscribe on every (re)connect.
			t := c.Subscribe(n.topic(topicMode), 1, n.onMode)
			if t.WaitTimeout(n.timeout) && t.Error() != nil {
				log.Warnw("subscribe mode topic", "error", t.Error())
			}
		})

	n.client = paho.NewClient(opts)
	token := n.client.Connect()
	if !token.WaitTimeout(10 * time.Second) {
		return nil, fmt.Errorf("mqtt connection timeout")
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("connect to broker: %w", err)
	}

	return n, nil
}

// MotionDetected publishes a motion event.
func (n *MQTTNotifier) MotionDetected(mn MotionNotification) error {
	payload, err := FormatMotionPayload(mn)
	if err != nil {
		return fmt.Errorf("format motion payload: %w", err)
	}
	return n.publish(n.topic(topicEventMotion), 0, payload)
}

// DoorbellPressed publishes a doorbell press.
func (n *MQTTNotifier) DoorbellPressed(dn DoorbellNotification) error {
	payload, err := FormatDoorbellPayload(dn)
	if err != nil {
		return fmt.Errorf("format doorbell payload: %w", err)
	}
	// QoS 1: a missed doorbell press is the one event worth a retry.
	return n.publish(n.topic(topicEventDoorbell), 1, payload)
}

// CaptureRequested publishes a capture request.
func (n *MQTTNotifier) CaptureRequested(cn CaptureNotification) error {
	payload, err := FormatCapturePayload(cn)
	if err != nil {
		return fmt.Errorf("format capture payload: %w", err)
	}
	return n.publish(n.topic(topicEventCapture), 0, payload)
}

// ReportStatus publishes a status snapshot and returns any mode
// override received since the previous report.
func (n *MQTTNotifier) ReportStatus(s StatusSnapshot) (*StatusResponse, error) {
	payload, err := FormatStatusPayload(s)
	if err != nil {
		return nil, fmt.Errorf("format status payload: %w", err)
	}
	if err := n.publish(n.topic(topicStatus), 0, payload); err != nil {
		return nil, err
	}

	return &StatusResponse{HomeMode: n.takePendingMode()}, nil
}

// Connected reports the paho connection state.
func (n *MQTTNotifier) Connected() bool {
	return n.client.IsConnected()
}

// Close disconnects from the broker.
func (n *MQTTNotifier) Close() error {
	n.client.Disconnect(1000) // milliseconds
	return nil
}

func (n *MQTTNotifier) publish(topic string, qos byte, payload []byte) error {
	token := n.client.Publish(topic, qos, false, payload)
	if !token.WaitTimeout(n.timeout) {
		return fmt.Errorf("publish %s: timeout", topic)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish %s: %w", topic, err)
	}
	return nil
}

// onMode stores a pushed home-mode override for the next status cycle.
func (n *MQTTNotifier) onMode(_ paho.Client, msg paho.Message) {
	resp := ParseStatusResponse(msg.Payload())
	if resp.HomeMode == nil {
		n.log.Warnw("ignoring mode message without home_mode", "payload", string(msg.Payload()))
		return
	}

	n.mu.Lock()
	n.pendingMode = resp.HomeMode
	n.mu.Unlock()
}

func (n *MQTTNotifier) takePendingMode() *bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	mode := n.pendingMode
	n.pendingMode = nil
	return mode
}

func (n *MQTTNotifier) topic(format string) string {
	return fmt.Sprintf(format, n.deviceID)
}
