package peer

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/coder/websocket"
	"golang.org/x/sync/errgroup"
)

const (
	writeQueueSize = 64
	eventQueueSize = 64
)

type wsChannel struct {
	conn   *websocket.Conn
	ctx    context.Context
	cancel context.CancelFunc

	writeCh chan []byte
	events  chan Event
	done    chan struct{}

	closeOnce sync.Once
}

// NewWebSocketChannel wraps an established WebSocket connection. The open
// event is queued immediately; read and write loops run until either side
// closes.
func NewWebSocketChannel(conn *websocket.Conn) Channel {
	ctx, cancel := context.WithCancel(context.Background())
	c := &wsChannel{
		conn:    conn,
		ctx:     ctx,
		cancel:  cancel,
		writeCh: make(chan []byte, writeQueueSize),
		events:  make(chan Event, eventQueueSize),
		done:    make(chan struct{}),
	}
	c.events <- Event{Kind: EventOpen}
	go c.run()
	return c
}

func (c *wsChannel) run() {
	defer close(c.done)

	eg, ctx := errgroup.WithContext(c.ctx)
	eg.Go(func() error {
		return c.readLoop(ctx)
	})
	eg.Go(func() error {
		return c.writeLoop(ctx)
	})
	err := eg.Wait()
	_ = c.conn.CloseNow()

	if c.ctx.Err() != nil || websocket.CloseStatus(err) == websocket.StatusNormalClosure {
		err = nil
	}
	if err != nil {
		slog.Debug("peer channel closed", "err", err)
	}
	// A failure must reach the reader even when the queue is full; a local
	// Close has nobody left to tell.
	select {
	case c.events <- Event{Kind: EventClosed, Err: err}:
	case <-c.ctx.Done():
	}
	close(c.events)
}

func (c *wsChannel) readLoop(ctx context.Context) error {
	for {
		_, data, err := c.conn.Read(ctx)
		if err != nil {
			return err
		}
		select {
		case c.events <- Event{Kind: EventMessage, Data: data}:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (c *wsChannel) writeLoop(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case data := <-c.writeCh:
			if err := c.conn.Write(ctx, websocket.MessageText, data); err != nil {
				return err
			}
		}
	}
}

func (c *wsChannel) Send(data []byte) error {
	select {
	case <-c.done:
		return ErrClosed
	default:
	}
	select {
	case c.writeCh <- data:
		return nil
	default:
		return ErrBackpressure
	}
}

func (c *wsChannel) Events() <-chan Event { return c.events }

func (c *wsChannel) Close() error {
	c.closeOnce.Do(func() {
		c.cancel()
	})
	<-c.done
	return nil
}

// isClosedErr reports whether err only says the channel is gone.
func isClosedErr(err error) bool {
	return errors.Is(err, ErrClosed) || errors.Is(err, context.Canceled)
}
