package transport

import (
	"errors"
	"testing"
	"time"
)

func testConfig() Config {
	return Config{
		BrokerURL:      "tcp://localhost:1883",
		ClientID:       "test",
		InputTopic:     "ledmoji/render",
		ConnectTimeout: time.Second,
		PublishTimeout: 50 * time.Millisecond,
		ReconnectMin:   time.Second,
		ReconnectMax:   time.Minute,
		KeepAlive:      5 * time.Second,
	}
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

func TestNew_DoesNotConnect(t *testing.T) {
	// Construction must be side-effect free; the broker may not exist yet.
	a := New(testConfig(), nopLogger{})
	if a == nil {
		t.Fatal("New() returned nil")
	}
}

func TestPublish_NotConnected(t *testing.T) {
	a := New(testConfig(), nopLogger{})

	err := a.Publish("ledmoji/32x32", []byte{1, 0, 1, 0, 1})
	if !errors.Is(err, ErrNotConnected) {
		t.Errorf("Publish() error = %v, want ErrNotConnected", err)
	}
}

func TestOnMessage_BeforeConnect(t *testing.T) {
	a := New(testConfig(), nopLogger{})

	called := false
	a.OnMessage(func([]byte) { called = true })
	if a.handler == nil {
		t.Fatal("OnMessage() did not register the handler")
	}
	a.handler([]byte("x"))
	if !called {
		t.Error("registered handler was not invoked")
	}
}
