package peer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/cenkalti/backoff/v5"
	"github.com/coder/websocket"
	"github.com/google/uuid"
)

var (
	// ErrInvalidSignal is returned for handshake blobs that do not parse.
	ErrInvalidSignal = errors.New("peer: invalid handshake blob")
	// ErrSessionMismatch is returned when an answer names another session.
	ErrSessionMismatch = errors.New("peer: answer is for another session")
)

const peerPath = "/peer"

// Offer is the host's handshake blob: where to dial and which session.
type Offer struct {
	Type    string    `json:"type"`
	Session uuid.UUID `json:"session"`
	URL     string    `json:"url"`
}

// Answer is the guest's reply naming itself for the offered session.
type Answer struct {
	Type    string    `json:"type"`
	Session uuid.UUID `json:"session"`
	Guest   uuid.UUID `json:"guest"`
}

// String renders the blob that is copied to the other player.
func (o Offer) String() string { return mustJSON(o) }

// String renders the blob that is copied back to the host.
func (a Answer) String() string { return mustJSON(a) }

func mustJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return string(b)
}

// ParseOffer strictly decodes an offer blob.
func ParseOffer(blob string) (Offer, error) {
	var o Offer
	if err := decodeSignal(blob, []string{"type", "session", "url"}, &o); err != nil {
		return Offer{}, err
	}
	if o.Type != "offer" || o.Session == uuid.Nil {
		return Offer{}, fmt.Errorf("%w: not an offer", ErrInvalidSignal)
	}
	u, err := url.Parse(o.URL)
	if err != nil || (u.Scheme != "ws" && u.Scheme != "wss") || u.Host == "" {
		return Offer{}, fmt.Errorf("%w: bad url %q", ErrInvalidSignal, o.URL)
	}
	return o, nil
}

// ParseAnswer strictly decodes an answer blob.
func ParseAnswer(blob string) (Answer, error) {
	var a Answer
	if err := decodeSignal(blob, []string{"type", "session", "guest"}, &a); err != nil {
		return Answer{}, err
	}
	if a.Type != "answer" || a.Session == uuid.Nil || a.Guest == uuid.Nil {
		return Answer{}, fmt.Errorf("%w: not an answer", ErrInvalidSignal)
	}
	return a, nil
}

func decodeSignal(blob string, want []string, dst any) error {
	raw := json.RawMessage(strings.TrimSpace(blob))
	if err := strict(raw, want); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSignal, err)
	}
	if err := unmarshalStrict(raw, dst); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSignal, err)
	}
	return nil
}

// NewAnswer creates the guest's reply to o with a fresh guest id.
func NewAnswer(o Offer) Answer {
	return Answer{Type: "answer", Session: o.Session, Guest: uuid.New()}
}

// Host listens for exactly one guest. The guest may only connect after
// ApplyAnswer has named it.
type Host struct {
	session uuid.UUID
	url     string
	ln      net.Listener
	srv     *http.Server
	chans   chan Channel

	mu       sync.Mutex
	guest    uuid.UUID
	accepted bool
	closed   bool
}

// Listen starts a host on addr. advertise is the host:port the guest should
// dial; when empty the listener's own address is used.
func Listen(addr, advertise string) (*Host, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen %s: %w", addr, err)
	}
	if advertise == "" {
		advertise = ln.Addr().String()
	}
	h := &Host{
		session: uuid.New(),
		url:     "ws://" + advertise + peerPath,
		ln:      ln,
		chans:   make(chan Channel, 1),
	}
	mux := http.NewServeMux()
	mux.HandleFunc(peerPath, h.handlePeer)
	h.srv = &http.Server{Handler: mux}
	go func() {
		if err := h.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Warn("peer host stopped", "err", err)
		}
	}()
	slog.Info("peer host listening", "addr", ln.Addr().String(), "session", h.session)
	return h, nil
}

// Offer returns the blob the guest needs.
func (h *Host) Offer() Offer {
	return Offer{Type: "offer", Session: h.session, URL: h.url}
}

// Addr is the listener's bound address.
func (h *Host) Addr() net.Addr { return h.ln.Addr() }

// ApplyAnswer authorizes the guest named in a.
func (h *Host) ApplyAnswer(a Answer) error {
	if a.Session != h.session {
		return ErrSessionMismatch
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.guest = a.Guest
	return nil
}

// Channels yields the single accepted guest connection.
func (h *Host) Channels() <-chan Channel { return h.chans }

// Close stops listening. A channel already taken from Channels stays open;
// one still queued there is closed.
func (h *Host) Close() error {
	err := h.srv.Close()
	h.mu.Lock()
	h.closed = true
	h.mu.Unlock()
	select {
	case ch := <-h.chans:
		_ = ch.Close()
	default:
	}
	return err
}

func (h *Host) handlePeer(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if q.Get("session") != h.session.String() {
		http.Error(w, "unknown session", http.StatusForbidden)
		return
	}

	h.mu.Lock()
	switch {
	case h.accepted:
		h.mu.Unlock()
		http.Error(w, "session already joined", http.StatusForbidden)
		return
	case h.guest == uuid.Nil:
		// Answer not applied yet; the guest keeps retrying.
		h.mu.Unlock()
		http.Error(w, "answer not applied", http.StatusServiceUnavailable)
		return
	case q.Get("guest") != h.guest.String():
		h.mu.Unlock()
		http.Error(w, "unknown guest", http.StatusForbidden)
		return
	}
	h.accepted = true
	h.mu.Unlock()

	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		slog.WarnContext(r.Context(), "peer upgrade failed", "err", err)
		h.mu.Lock()
		h.accepted = false
		h.mu.Unlock()
		return
	}
	ch := NewWebSocketChannel(conn)
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		_ = ch.Close()
		return
	}
	slog.InfoContext(r.Context(), "peer guest connected", "guest", h.guest)
	h.chans <- ch
}

// Dial connects a guest to the host named in o, retrying with exponential
// backoff until the host accepts or ctx ends. There is no other deadline.
func Dial(ctx context.Context, o Offer, a Answer) (Channel, error) {
	u := fmt.Sprintf("%s?session=%s&guest=%s", o.URL, url.QueryEscape(o.Session.String()), url.QueryEscape(a.Guest.String()))
	op := func() (*websocket.Conn, error) {
		conn, resp, err := websocket.Dial(ctx, u, nil)
		if err == nil {
			return conn, nil
		}
		if resp != nil && resp.StatusCode == http.StatusForbidden {
			return nil, backoff.Permanent(err)
		}
		slog.Debug("peer dial retry", "err", err)
		return nil, err
	}
	conn, err := backoff.Retry(ctx, op,
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxElapsedTime(0),
	)
	if err != nil {
		return nil, fmt.Errorf("dial host: %w", err)
	}
	return NewWebSocketChannel(conn), nil
}
