package peer_test

import (
	"context"
	"hero-blaster/internal/peer"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
)

// drain reads events until the channel's event stream ends and returns the
// last one.
func drain(t *testing.T, ch peer.Channel) (last peer.Event, n int) {
	t.Helper()
	timeout := time.After(10 * time.Second)
	for {
		select {
		case ev, ok := <-ch.Events():
			if !ok {
				return last, n
			}
			last = ev
			n++
		case <-timeout:
			t.Fatal("event stream never ended")
		}
	}
}

func TestFailureReportedAfterFullQueue(t *testing.T) {
	const flood = 200
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, nil)
		if err != nil {
			return
		}
		for range flood {
			if err := conn.Write(r.Context(), websocket.MessageText, []byte("x")); err != nil {
				return
			}
		}
		_ = conn.CloseNow()
	}))
	defer srv.Close()

	conn, _, err := websocket.Dial(context.Background(), "ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	ch := peer.NewWebSocketChannel(conn)
	defer ch.Close()

	// Let the reader fill the queue before anything is consumed.
	time.Sleep(200 * time.Millisecond)

	last, n := drain(t, ch)
	if last.Kind != peer.EventClosed || last.Err == nil {
		t.Fatalf("last event = %v (err %v); want a failed close", last.Kind, last.Err)
	}
	if want := flood + 2; n != want {
		t.Errorf("events = %d; want open, %d messages and close", n, flood)
	}
}

func TestHostCloseClosesQueuedGuest(t *testing.T) {
	h, err := peer.Listen("127.0.0.1:0", "")
	if err != nil {
		t.Fatalf("Listen: %v", err)
	}
	answer := peer.NewAnswer(h.Offer())
	if err := h.ApplyAnswer(answer); err != nil {
		t.Fatalf("ApplyAnswer: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	guest, err := peer.Dial(ctx, h.Offer(), answer)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer guest.Close()

	eventually(t, "host to queue the guest", func() {}, func() bool {
		return len(h.Channels()) == 1
	})
	if err := h.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
	if len(h.Channels()) != 0 {
		t.Error("queued guest channel left behind")
	}

	last, _ := drain(t, guest)
	if last.Kind != peer.EventClosed {
		t.Errorf("guest last event = %v; want closed", last.Kind)
	}
}
