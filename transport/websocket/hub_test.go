package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/wricardo/knights-tour/game/engine"
)

func newTestClient(hub *Hub, sessionID string) *Client {
	return &Client{
		id:        "client-" + sessionID,
		hub:       hub,
		sessionID: sessionID,
		send:      make(chan []byte, sendBuffer),
	}
}

func readMessage(t *testing.T, ch <-chan []byte) Message {
	t.Helper()
	select {
	case data := <-ch:
		var message Message
		if err := json.Unmarshal(data, &message); err != nil {
			t.Fatalf("Failed to unmarshal message: %v", err)
		}
		return message
	case <-time.After(time.Second):
		t.Fatal("No message received within timeout")
	}
	return Message{}
}

func TestHubRegisterClient(t *testing.T) {
	hub := NewHub()
	client := newTestClient(hub, "test-session")

	hub.registerClient(client)

	if !hub.sessions["test-session"][client] {
		t.Fatal("Client was not registered in session")
	}

	greeting := readMessage(t, client.send)
	if greeting.Event != EventConnected {
		t.Errorf("Expected connected event, got %s", greeting.Event)
	}
	data, _ := greeting.Data.(map[string]interface{})
	if data["client_id"] != client.id {
		t.Errorf("Expected client_id %s, got %v", client.id, greeting.Data)
	}
}

func TestHubUnregisterClient(t *testing.T) {
	hub := NewHub()
	client := newTestClient(hub, "test-session")

	hub.registerClient(client)
	hub.unregisterClient(client)

	if _, exists := hub.sessions["test-session"]; exists {
		t.Error("Empty session should be removed")
	}

	// drain greeting, then the channel must be closed
	<-client.send
	if _, ok := <-client.send; ok {
		t.Error("Expected send channel to be closed")
	}

	// second unregister is a no-op
	hub.unregisterClient(client)
}

func TestHubMultipleClientsInSession(t *testing.T) {
	hub := NewHub()
	sessionID := "multi-client-session"

	client1 := newTestClient(hub, sessionID)
	client2 := newTestClient(hub, sessionID)
	other := newTestClient(hub, "other")

	hub.registerClient(client1)
	hub.registerClient(client2)
	hub.registerClient(other)
	<-client1.send
	<-client2.send
	<-other.send

	hub.broadcastMessage(&Message{SessionID: sessionID, Event: EventGameWon})

	for _, c := range []*Client{client1, client2} {
		if msg := readMessage(t, c.send); msg.Event != EventGameWon {
			t.Errorf("Expected game_won, got %s", msg.Event)
		}
	}
	select {
	case <-other.send:
		t.Error("Client of another session should not receive the message")
	default:
	}

	hub.unregisterClient(client1)
	if len(hub.sessions[sessionID]) != 1 || !hub.sessions[sessionID][client2] {
		t.Error("client2 should still be registered")
	}
}

func TestHubBroadcastToSession(t *testing.T) {
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	client := newTestClient(hub, "broadcast-test")
	hub.register <- client
	readMessage(t, client.send)

	state := engine.InitGameStateFromConfig(engine.DefaultConfig(5))
	state.StepCount = 3
	hub.BroadcastToSession("broadcast-test", state)

	message := readMessage(t, client.send)
	if message.SessionID != "broadcast-test" || message.Event != EventStateUpdate {
		t.Errorf("Unexpected message %+v", message)
	}
	if message.GameState == nil || message.GameState.StepCount != 3 || message.GameState.BoardSize != 5 {
		t.Error("GameState not correctly transmitted")
	}

	hub.BroadcastEvent("broadcast-test", EventCompetitionLevel, map[string]int{"level": 2})
	message = readMessage(t, client.send)
	if message.Event != EventCompetitionLevel {
		t.Errorf("Expected competition_level, got %s", message.Event)
	}

	if n := hub.ClientCount("broadcast-test"); n != 1 {
		t.Errorf("Expected 1 client, got %d", n)
	}
}

func TestHubBroadcastNeverBlocks(t *testing.T) {
	hub := NewHub()
	// No Run loop: the queue fills and further broadcasts are dropped
	for i := 0; i < broadcastBuffer+10; i++ {
		hub.BroadcastEvent("s", "tick", i)
	}
	if len(hub.broadcast) != broadcastBuffer {
		t.Errorf("Expected full queue of %d, got %d", broadcastBuffer, len(hub.broadcast))
	}
}

func TestHubStops(t *testing.T) {
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()

	client := newTestClient(hub, "s")
	hub.register <- client
	cancel()

	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
	if hub.ClientCount("s") != 0 {
		t.Error("Stopped hub reports no clients")
	}
}

func newWSServer(t *testing.T, hub *Hub) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hub.ServeWS(w, r, r.URL.Query().Get("session"))
	}))
}

func TestWebSocketLifecycle(t *testing.T) {
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	server := newWSServer(t, hub)
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "?session=ws-test"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("Failed to connect to WebSocket: %v", err)
	}

	conn.SetReadDeadline(time.Now().Add(time.Second))
	var greeting Message
	if err := conn.ReadJSON(&greeting); err != nil {
		t.Fatalf("Failed to read greeting: %v", err)
	}
	if greeting.Event != EventConnected || greeting.SessionID != "ws-test" {
		t.Errorf("Unexpected greeting %+v", greeting)
	}

	state := engine.InitGameStateFromConfig(engine.DefaultConfig(6))
	hub.BroadcastToSession("ws-test", state)

	var update Message
	if err := conn.ReadJSON(&update); err != nil {
		t.Fatalf("Failed to read update: %v", err)
	}
	if update.Event != EventStateUpdate || update.GameState.BoardSize != 6 {
		t.Errorf("Unexpected update %+v", update)
	}

	conn.Close()

	deadline := time.Now().Add(time.Second)
	for hub.ClientCount("ws-test") != 0 {
		if time.Now().After(deadline) {
			t.Fatal("Client was not unregistered after close")
		}
		time.Sleep(10 * time.Millisecond)
	}
}
