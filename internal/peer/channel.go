// Package peer synchronizes two game instances: the host runs the
// simulation and pushes snapshots, the guest mirrors them and reports its
// own intent.
package peer

import "errors"

//go:generate go tool mockgen -destination=./mocks/channel_mock.go -package=mocks . Channel

var (
	// ErrBackpressure is returned by Send when the write queue is full.
	ErrBackpressure = errors.New("peer: write queue full, message dropped")
	// ErrClosed is returned by Send after the channel has closed.
	ErrClosed = errors.New("peer: channel closed")
)

// EventKind classifies channel lifecycle and data events.
type EventKind uint8

const (
	EventOpen EventKind = iota
	EventMessage
	EventClosed
)

func (k EventKind) String() string {
	switch k {
	case EventOpen:
		return "open"
	case EventMessage:
		return "message"
	case EventClosed:
		return "closed"
	}
	return "unknown"
}

// Event is delivered on Channel.Events. Data is set for EventMessage; Err is
// set for an EventClosed caused by a failure rather than a local Close.
type Event struct {
	Kind EventKind
	Data []byte
	Err  error
}

// Channel is a bidirectional, ordered message pipe to the other peer.
type Channel interface {
	// Send queues one text frame without blocking.
	Send(data []byte) error
	// Events yields open, message and closed events in order. The channel
	// is closed after the final EventClosed.
	Events() <-chan Event
	// Close tears the pipe down. It is safe to call more than once.
	Close() error
}
