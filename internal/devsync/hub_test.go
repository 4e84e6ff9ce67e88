package devsync

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func dialHub(t *testing.T, hub *Hub) (*websocket.Conn, func()) {
	t.Helper()

	ts := httptest.NewServer(http.HandlerFunc(hub.HandleWebSocket))
	url := "ws" + strings.TrimPrefix(ts.URL, "http")

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		ts.Close()
		t.Fatalf("dial: %v", err)
	}

	return conn, func() {
		conn.Close()
		ts.Close()
	}
}

func TestHubBroadcast(t *testing.T) {
	hub := NewHub()
	conn, done := dialHub(t, hub)
	defer done()

	waitForClients(t, hub, 1)

	hub.Broadcast(Message{Type: TypeRender, Path: "/users/42", Route: "/users/:id", HTML: "<h1>user</h1>"})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg Message
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}

	if msg.Type != TypeRender {
		t.Errorf("type = %q, want %q", msg.Type, TypeRender)
	}
	if msg.Path != "/users/42" || msg.Route != "/users/:id" {
		t.Errorf("message = %+v", msg)
	}
}

func TestHubDropsDeadClients(t *testing.T) {
	hub := NewHub()
	conn, done := dialHub(t, hub)
	defer done()

	waitForClients(t, hub, 1)
	conn.Close()

	// The first write after close fails and the client is dropped.
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		hub.Broadcast(Message{Type: TypeNavigate, Path: "/"})
		if hub.ClientCount() == 0 {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Errorf("ClientCount() = %d, want 0 after dead client dropped", hub.ClientCount())
}

func waitForClients(t *testing.T, hub *Hub, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if hub.ClientCount() == n {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("ClientCount() = %d, want %d", hub.ClientCount(), n)
}
