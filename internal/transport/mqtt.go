// Package transport maintains the daemon's connection to the MQTT broker:
// one persistent client subscribed to the input topic, publishing frames to
// the output topic with retained at-least-once delivery.
//
// Connection loss is handled by the client's bounded-interval reconnect and
// by resubscribing on every (re)connect. Messages arriving on the input
// topic while disconnected are not recoverable; the daemon makes no
// store-and-forward guarantee for inbound requests.
package transport

import (
	"context"
	"errors"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// qosAtLeastOnce is the delivery level for both subscribe and publish.
const qosAtLeastOnce byte = 1

// connectPollInterval is how often Connect rechecks the pending token
// against its context.
const connectPollInterval = 100 * time.Millisecond

// ErrNotConnected reports a publish attempted while the broker link is down.
var ErrNotConnected = errors.New("transport: not connected")

// ErrPublishTimeout reports a publish whose acknowledgment did not arrive
// within the configured bound.
var ErrPublishTimeout = errors.New("transport: publish ack timeout")

// Logger is the subset of the application logger the adapter needs.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Config sets the broker connection parameters.
type Config struct {
	// BrokerURL is the broker address, e.g. "tcp://localhost:1883".
	BrokerURL string
	// ClientID identifies this client to the broker.
	ClientID string
	// InputTopic is subscribed on every (re)connect.
	InputTopic string
	// ConnectTimeout bounds a single connection attempt.
	ConnectTimeout time.Duration
	// PublishTimeout bounds the wait for a publish acknowledgment.
	PublishTimeout time.Duration
	// ReconnectMin is the initial retry interval after a failed connect.
	ReconnectMin time.Duration
	// ReconnectMax caps the reconnect backoff interval.
	ReconnectMax time.Duration
	// KeepAlive is the MQTT keep-alive interval.
	KeepAlive time.Duration
}

// Adapter is the daemon's broker client. Register the inbound handler with
// OnMessage before calling Connect.
type Adapter struct {
	cfg     Config
	log     Logger
	client  mqtt.Client
	handler func(payload []byte)
}

// New creates an adapter. The connection is not established until Connect.
func New(cfg Config, log Logger) *Adapter {
	a := &Adapter{cfg: cfg, log: log}

	opts := mqtt.NewClientOptions().
		AddBroker(cfg.BrokerURL).
		SetClientID(cfg.ClientID).
		SetKeepAlive(cfg.KeepAlive).
		SetConnectTimeout(cfg.ConnectTimeout).
		SetAutoReconnect(true).
		SetMaxReconnectInterval(cfg.ReconnectMax).
		SetConnectRetry(true).
		SetConnectRetryInterval(cfg.ReconnectMin).
		SetOrderMatters(true)

	// Subscribing inside OnConnect restores the subscription after every
	// reconnect, not just the first connect.
	opts.SetOnConnectHandler(a.onConnect)
	opts.SetConnectionLostHandler(func(_ mqtt.Client, err error) {
		a.log.Warn("broker connection lost: %v", err)
	})
	opts.SetReconnectingHandler(func(_ mqtt.Client, _ *mqtt.ClientOptions) {
		a.log.Info("reconnecting to broker %s", cfg.BrokerURL)
	})

	a.client = mqtt.NewClient(opts)
	return a
}

// OnMessage registers the callback invoked once per inbound message, in
// broker arrival order. Must be called before Connect.
func (a *Adapter) OnMessage(fn func(payload []byte)) {
	a.handler = fn
}

// Connect establishes the broker connection, retrying with backoff until it
// succeeds or ctx is done. Transient broker failures never surface as a
// fatal error here; only cancellation does.
func (a *Adapter) Connect(ctx context.Context) error {
	token := a.client.Connect()
	for {
		if token.WaitTimeout(connectPollInterval) {
			if err := token.Error(); err != nil {
				// With connect retry enabled the client keeps trying
				// internally; a token error here is terminal.
				return fmt.Errorf("transport: connecting to %s: %w", a.cfg.BrokerURL, err)
			}
			a.log.Info("connected to broker %s", a.cfg.BrokerURL)
			return nil
		}
		select {
		case <-ctx.Done():
			a.client.Disconnect(0)
			return ctx.Err()
		default:
		}
	}
}

// Publish sends payload to topic with at-least-once delivery and the
// retained flag set, so late-joining subscribers immediately receive the
// last frame. The ack wait is bounded; a timeout is returned, never an
// unbounded hang.
func (a *Adapter) Publish(topic string, payload []byte) error {
	if !a.client.IsConnected() {
		return ErrNotConnected
	}
	token := a.client.Publish(topic, qosAtLeastOnce, true, payload)
	if !token.WaitTimeout(a.cfg.PublishTimeout) {
		return fmt.Errorf("%w: %s after %s", ErrPublishTimeout, topic, a.cfg.PublishTimeout)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("transport: publishing to %s: %w", topic, err)
	}
	return nil
}

// Close disconnects from the broker, allowing in-flight work to drain.
func (a *Adapter) Close() {
	a.client.Disconnect(250)
}

// onConnect subscribes to the input topic. Runs on every (re)connect.
func (a *Adapter) onConnect(c mqtt.Client) {
	token := c.Subscribe(a.cfg.InputTopic, qosAtLeastOnce, func(_ mqtt.Client, m mqtt.Message) {
		if a.handler != nil {
			a.handler(m.Payload())
		}
	})
	if token.WaitTimeout(a.cfg.ConnectTimeout) && token.Error() == nil {
		a.log.Info("subscribed to %s", a.cfg.InputTopic)
		return
	}
	a.log.Error("subscribing to %s: %v", a.cfg.InputTopic, token.Error())
}
