package realtime

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gorilla/websocket"
)

// dialClient connects one websocket client to the hub and blocks until the
// server side has registered it.
func dialClient(t *testing.T, hub *Hub) *websocket.Conn {
	t.Helper()

	registered := make(chan struct{})
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		hub.AddClient(conn)
		registered <- struct{}{}
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	<-registered
	return conn
}

func TestBroadcastJSONSerializesConcurrentWriters(t *testing.T) {
	hub := NewHub()
	conn := dialClient(t, hub)

	// Drain everything the hub sends so server-side writes never stall;
	// stop at the sentinel, which write serialization orders last.
	received := make(chan int, 1)
	go func() {
		count := 0
		for {
			var msg map[string]int
			if err := conn.ReadJSON(&msg); err != nil {
				received <- -1
				return
			}
			if msg["writer"] == -1 {
				received <- count
				return
			}
			count++
		}
	}()

	// Scheduler broadcasts and handler broadcasts race for the same client.
	const goroutines, perGoroutine = 4, 25
	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < perGoroutine; i++ {
				hub.BroadcastJSON(map[string]int{"writer": g, "seq": i})
			}
		}(g)
	}
	wg.Wait()
	hub.BroadcastJSON(map[string]int{"writer": -1})

	if got := <-received; got != goroutines*perGoroutine {
		t.Fatalf("expected %d intact messages before the sentinel, got %d", goroutines*perGoroutine, got)
	}
}

func TestSendJSONTargetsOneClient(t *testing.T) {
	hub := NewHub()
	conn := dialClient(t, hub)

	var serverConn *websocket.Conn
	hub.mu.RLock()
	for c := range hub.clients {
		serverConn = c
	}
	hub.mu.RUnlock()

	hub.SendJSON(serverConn, map[string]string{"hello": "world"})

	var msg map[string]string
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read: %v", err)
	}
	if msg["hello"] != "world" {
		t.Fatalf("unexpected message: %+v", msg)
	}
}

func TestSendJSONIgnoresUnknownConnection(t *testing.T) {
	hub := NewHub()
	conn := dialClient(t, hub)

	// A connection the hub never registered is a no-op, not a panic.
	hub.SendJSON(conn, map[string]string{"should": "drop"})
}

func TestBroadcastDropsClosedClients(t *testing.T) {
	hub := NewHub()
	conn := dialClient(t, hub)

	var serverConn *websocket.Conn
	hub.mu.RLock()
	for c := range hub.clients {
		serverConn = c
	}
	hub.mu.RUnlock()

	conn.Close()
	serverConn.Close()

	// The failed write evicts the client.
	hub.BroadcastJSON(map[string]string{"after": "close"})

	hub.mu.RLock()
	n := len(hub.clients)
	hub.mu.RUnlock()
	if n != 0 {
		t.Fatalf("expected closed client to be dropped, %d still registered", n)
	}
}
