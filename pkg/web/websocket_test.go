package web

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/danielpaul/ft8encode/pkg/logger"
)

func TestWebSocketHub_New(t *testing.T) {
	log := logger.New(logger.Config{Level: "info"})
	hub := NewWebSocketHub(log)

	if hub == nil {
		t.Fatal("NewWebSocketHub returned nil")
	}
}

func TestWebSocketHub_Run(t *testing.T) {
	log := logger.New(logger.Config{Level: "info"})
	hub := NewWebSocketHub(log)

	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	go hub.Run(ctx)

	time.Sleep(50 * time.Millisecond)
	cancel()
	time.Sleep(50 * time.Millisecond)
}

func TestWebSocketHub_Broadcast(t *testing.T) {
	log := logger.New(logger.Config{Level: "info"})
	hub := NewWebSocketHub(log)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	go hub.Run(ctx)
	time.Sleep(50 * time.Millisecond)

	event := Event{
		Type: "test",
		Data: map[string]interface{}{"message": "hello"},
	}

	hub.Broadcast(event)

	time.Sleep(50 * time.Millisecond)
}

func TestWebSocketHandler(t *testing.T) {
	log := logger.New(logger.Config{Level: "info"})
	hub := NewWebSocketHub(log)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	go hub.Run(ctx)
	time.Sleep(50 * time.Millisecond)

	handler := hub.Handler()
	server := httptest.NewServer(handler)
	defer server.Close()

	_ = "ws" + strings.TrimPrefix(server.URL, "http")

	if handler == nil {
		t.Fatal("WebSocket handler is nil")
	}
}

func TestEvent_Marshal(t *testing.T) {
	event := Event{
		Type:      "encode_completed",
		Timestamp: time.Now(),
		Data: map[string]interface{}{
			"message": "CQ K1ABC FN42",
			"subtype": "Standard",
		},
	}

	data, err := event.Marshal()
	if err != nil {
		t.Fatalf("Failed to marshal event: %v", err)
	}

	if len(data) == 0 {
		t.Error("Marshaled data is empty")
	}

	if !strings.Contains(string(data), "encode_completed") {
		t.Error("Marshaled data doesn't contain event type")
	}
}

func TestBroadcastEncodeLifecycle(t *testing.T) {
	log := logger.New(logger.Config{Level: "info"})
	hub := NewWebSocketHub(log)

	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	go hub.Run(ctx)
	time.Sleep(50 * time.Millisecond)

	hub.BroadcastEncodeStarted("CQ K1ABC FN42")
	hub.BroadcastEncodeCompleted("CQ K1ABC FN42", "Standard", []float32{0, 1, 2}, 48000)
	hub.BroadcastEncodeFailed("bad message", "unsupported subtype")

	time.Sleep(50 * time.Millisecond)
}
