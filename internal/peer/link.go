package peer

import (
	"context"
	"errors"
	"fmt"
	"hero-blaster/internal/input"
	"hero-blaster/internal/world"
	"log/slog"
	"time"
)

// Send throttles, measured on the wall clock independent of frame rate.
const (
	InputInterval = 50 * time.Millisecond
	StateInterval = 70 * time.Millisecond
)

// Role is this instance's part in a co-op session.
type Role uint8

const (
	RoleNone Role = iota
	RoleHost
	RoleGuest
)

func (r Role) String() string {
	switch r {
	case RoleHost:
		return "HOST"
	case RoleGuest:
		return "GUEST"
	}
	return ""
}

// Status line values.
const (
	StatusOff            = "OFF"
	StatusHostReady      = "HOST READY"
	StatusJoinReady      = "JOIN READY"
	StatusSendOffer      = "SEND OFFER"
	StatusSendAnswer     = "SEND ANSWER"
	StatusConnecting     = "CONNECTING..."
	StatusDisconnected   = "DISCONNECTED"
	StatusConnectionLost = "CONNECTION LOST"
	StatusInvalidOffer   = "INVALID OFFER"
	StatusInvalidSignal  = "INVALID SIGNAL"
)

// Config holds the host listener settings.
type Config struct {
	Listen    string // address the host binds
	Advertise string // host:port written into offers; empty means the bound address
}

// Update is what one Poll collected for the simulation owner.
type Update struct {
	// Commands received by a host, in arrival order.
	Commands []Command
	// Snapshot is the newest state received by a guest, if any.
	Snapshot *StateMessage
}

type dialResult struct {
	ch  Channel
	err error
}

// Link is the peer side of one simulation context. It is not safe for
// concurrent use; the loop driver owns it and calls Poll once per tick.
type Link struct {
	cfg Config
	now func() time.Time

	role       Role
	connected  bool
	ch         Channel
	remote     input.Intent
	snapshot   *StateMessage
	lastSendAt time.Time
	status     string

	host       *Host
	dialCh     chan dialResult
	cancelDial context.CancelFunc
}

// NewLink returns an idle link.
func NewLink(cfg Config) *Link {
	return &Link{cfg: cfg, now: time.Now, status: StatusOff}
}

// SetClock replaces the wall clock used for send throttling.
func (l *Link) SetClock(now func() time.Time) { l.now = now }

// Role returns the current role.
func (l *Link) Role() Role { return l.role }

// Connected reports whether the channel is open.
func (l *Link) Connected() bool { return l.connected }

// Status is the human-readable connection state.
func (l *Link) Status() string { return l.status }

// SetStatus overrides the status line, e.g. with a clipboard outcome.
func (l *Link) SetStatus(s string) { l.status = s }

// IsGuest reports whether local input should be forwarded instead of
// simulated.
func (l *Link) IsGuest() bool { return l.role == RoleGuest && l.connected }

// RemoteIntent returns the guest's latest intent on a connected host, and
// nil otherwise.
func (l *Link) RemoteIntent() *input.Intent {
	if l.role != RoleHost || !l.connected {
		return nil
	}
	in := l.remote
	return &in
}

// LastSnapshot returns the last state a guest applied.
func (l *Link) LastSnapshot() *StateMessage { return l.snapshot }

// Host closes any previous session and starts listening for a guest.
func (l *Link) Host() error {
	l.Close()
	h, err := Listen(l.cfg.Listen, l.cfg.Advertise)
	if err != nil {
		l.status = StatusConnectionLost
		return err
	}
	l.role = RoleHost
	l.host = h
	l.status = StatusHostReady
	return nil
}

// MakeOffer returns the host's offer blob.
func (l *Link) MakeOffer() (string, error) {
	if l.role != RoleHost || l.host == nil {
		return "", errors.New("peer: not hosting")
	}
	l.status = StatusSendOffer
	return l.host.Offer().String(), nil
}

// ApplyAnswer authorizes the guest named in the answer blob.
func (l *Link) ApplyAnswer(blob string) error {
	if l.role != RoleHost || l.host == nil {
		return errors.New("peer: not hosting")
	}
	a, err := ParseAnswer(blob)
	if err == nil {
		err = l.host.ApplyAnswer(a)
	}
	if err != nil {
		l.status = StatusInvalidSignal
		return err
	}
	l.status = StatusConnecting
	return nil
}

// Join closes any previous session and prepares to answer an offer.
func (l *Link) Join() {
	l.Close()
	l.role = RoleGuest
	l.status = StatusJoinReady
}

// MakeAnswer parses the host's offer, starts dialing in the background and
// returns the answer blob to send back.
func (l *Link) MakeAnswer(offerBlob string) (string, error) {
	if l.role != RoleGuest {
		return "", errors.New("peer: not joining")
	}
	o, err := ParseOffer(offerBlob)
	if err != nil {
		l.status = StatusInvalidOffer
		return "", err
	}
	a := NewAnswer(o)

	if l.cancelDial != nil {
		l.cancelDial()
	}
	ctx, cancel := context.WithCancel(context.Background())
	results := make(chan dialResult, 1)
	l.cancelDial, l.dialCh = cancel, results
	go func() {
		ch, err := Dial(ctx, o, a)
		if err == nil && ctx.Err() != nil {
			_ = ch.Close()
			return
		}
		results <- dialResult{ch: ch, err: err}
	}()

	l.status = StatusSendAnswer
	return a.String(), nil
}

// Poll drains pending handshake results and channel events without
// blocking.
func (l *Link) Poll() Update {
	var up Update

	if l.host != nil && l.ch == nil {
		select {
		case ch := <-l.host.Channels():
			l.ch = ch
		default:
		}
	}
	if l.dialCh != nil && l.ch == nil {
		select {
		case res := <-l.dialCh:
			l.dialCh = nil
			if res.err != nil {
				if !errors.Is(res.err, context.Canceled) {
					l.status = StatusConnectionLost
				}
				break
			}
			l.ch = res.ch
		default:
		}
	}
	if l.ch == nil {
		return up
	}

	for {
		select {
		case ev, ok := <-l.ch.Events():
			if !ok {
				l.handleClosed(nil)
				return up
			}
			l.handleEvent(ev, &up)
			if ev.Kind == EventClosed {
				return up
			}
		default:
			return up
		}
	}
}

func (l *Link) handleEvent(ev Event, up *Update) {
	switch ev.Kind {
	case EventOpen:
		l.connected = true
		l.status = fmt.Sprintf("CONNECTED (%s)", l.role)
		slog.Info("peer connected", "role", l.role.String())
	case EventClosed:
		l.handleClosed(ev.Err)
	case EventMessage:
		l.handleMessage(ev.Data, up)
	}
}

func (l *Link) handleClosed(err error) {
	if l.ch == nil {
		return
	}
	l.connected = false
	l.ch = nil
	if err != nil {
		l.status = StatusConnectionLost
		slog.Warn("peer connection lost", "err", err)
		return
	}
	l.status = StatusDisconnected
	slog.Info("peer disconnected")
}

// handleMessage applies one inbound frame. Frames that do not decode, or do
// not fit this role, are dropped.
func (l *Link) handleMessage(data []byte, up *Update) {
	msg, err := Decode(data)
	if err != nil {
		slog.Debug("peer message dropped", "err", err)
		return
	}
	switch m := msg.(type) {
	case InputMessage:
		if l.role != RoleHost {
			return
		}
		if m.Intent != nil {
			l.remote = *m.Intent
		}
		if m.Command != "" {
			up.Commands = append(up.Commands, m.Command)
		}
	case StateMessage:
		if l.role != RoleGuest {
			return
		}
		l.snapshot = &m
		up.Snapshot = &m
	}
}

// PushState sends a snapshot of w when this is a connected host and the
// state throttle has elapsed.
func (l *Link) PushState(w *world.World) {
	if l.role != RoleHost || !l.connected {
		return
	}
	if now := l.now(); now.Sub(l.lastSendAt) > StateInterval {
		l.send(Snapshot(w))
		l.lastSendAt = now
	}
}

// PushInput sends the guest's intent when the input throttle has elapsed.
func (l *Link) PushInput(in input.Intent) {
	if !l.IsGuest() {
		return
	}
	if now := l.now(); now.Sub(l.lastSendAt) > InputInterval {
		l.send(InputMessage{Intent: &in})
		l.lastSendAt = now
	}
}

// SendCommand forwards a one-shot command from a connected guest. Commands
// are not throttled.
func (l *Link) SendCommand(c Command) bool {
	if !l.IsGuest() {
		return false
	}
	l.send(InputMessage{Command: c})
	return true
}

func (l *Link) send(m Message) {
	data, err := Encode(m)
	if err != nil {
		slog.Warn("peer encode failed", "err", err)
		return
	}
	if err := l.ch.Send(data); err != nil && !isClosedErr(err) {
		slog.Debug("peer send dropped", "err", err)
	}
}

// Close ends the session and resets every peer field. Calling it again is
// a no-op.
func (l *Link) Close() {
	if l.cancelDial != nil {
		l.cancelDial()
	}
	if l.ch != nil {
		_ = l.ch.Close()
	}
	if l.host != nil {
		_ = l.host.Close()
	}
	l.role = RoleNone
	l.connected = false
	l.ch = nil
	l.remote = input.Intent{}
	l.snapshot = nil
	l.lastSendAt = time.Time{}
	l.host = nil
	l.dialCh = nil
	l.cancelDial = nil
	l.status = StatusOff
}

// Attach installs an already open channel under role. Used when the
// transport is established outside the offer/answer flow.
func (l *Link) Attach(role Role, ch Channel) {
	l.Close()
	l.role = role
	l.ch = ch
}
