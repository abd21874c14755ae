package game

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/igtm/baseball/internal/ws"
)

// TestManagerShutdownWhileCreating stops the manager repeatedly while a
// session is being created and checks the room still ends and unregisters.
func TestManagerShutdownWhileCreating(t *testing.T) {
	m := NewManager(DefaultTuning(), false)
	ended := make(chan struct{})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := websocket.Accept(w, r, nil)
		if err != nil {
			t.Error(err)
			return
		}
		conn := ws.NewConn(c, "room-1", "127.0.0.1", nil)
		go conn.WriteLoop(context.Background())

		stopping := make(chan struct{})
		go func() {
			defer close(stopping)
			for i := 0; i < 100; i++ {
				m.Shutdown()
			}
		}()
		done := m.CreateSession(conn)
		<-stopping
		m.Shutdown()
		<-done
		close(ended)
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	c, _, err := websocket.Dial(ctx, "ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	if err != nil {
		t.Fatal(err)
	}
	defer c.CloseNow()
	go func() {
		for {
			if _, _, err := c.Read(ctx); err != nil {
				return
			}
		}
	}()

	select {
	case <-ended:
	case <-ctx.Done():
		t.Fatal("room did not stop after shutdown")
	}
	for m.Len() != 0 {
		select {
		case <-ctx.Done():
			t.Fatalf("%d rooms still registered", m.Len())
		case <-time.After(10 * time.Millisecond):
		}
	}
}
