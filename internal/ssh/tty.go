// Package ssh adapts SSH channels to tcell so a remote player gets a full
// terminal screen.
package ssh

import (
	"io"
	"sync"

	"github.com/gdamore/tcell/v2"
	gossh "github.com/gliderlabs/ssh"
)

// Tty implements tcell.Tty over one SSH session's channel. Window changes
// arrive on a channel from the PTY request and are forwarded to tcell.
type Tty struct {
	conn io.ReadWriteCloser

	mu     sync.Mutex
	window gossh.Window
	resize <-chan gossh.Window
	notify func()
	once   sync.Once
}

// NewTty wraps conn. win is the size from the PTY request; resize delivers
// later window-change requests and is closed with the session.
func NewTty(conn io.ReadWriteCloser, win gossh.Window, resize <-chan gossh.Window) *Tty {
	return &Tty{conn: conn, window: win, resize: resize}
}

// FromSession builds a Tty from a session that requested a PTY. ok is false
// when it did not.
func FromSession(s gossh.Session) (tty *Tty, term string, ok bool) {
	pty, winCh, ok := s.Pty()
	if !ok {
		return nil, "", false
	}
	return NewTty(s, pty.Window, winCh), pty.Term, true
}

func (t *Tty) Read(b []byte) (int, error)  { return t.conn.Read(b) }
func (t *Tty) Write(b []byte) (int, error) { return t.conn.Write(b) }
func (t *Tty) Close() error                { return t.conn.Close() }

// Start, Stop and Drain have nothing to do: the channel is already in raw
// mode on the client side and writes are unbuffered.
func (t *Tty) Start() error { return nil }
func (t *Tty) Stop() error  { return nil }
func (t *Tty) Drain() error { return nil }

// WindowSize returns the latest window dimensions.
func (t *Tty) WindowSize() (tcell.WindowSize, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return tcell.WindowSize{Width: t.window.Width, Height: t.window.Height}, nil
}

// NotifyResize registers cb for window changes. The goroutine that drains
// the resize channel starts on the first call and ends with the session.
func (t *Tty) NotifyResize(cb func()) {
	t.mu.Lock()
	t.notify = cb
	t.mu.Unlock()

	t.once.Do(func() {
		go t.watch()
	})
}

func (t *Tty) watch() {
	for win := range t.resize {
		t.mu.Lock()
		t.window = win
		cb := t.notify
		t.mu.Unlock()
		if cb != nil {
			cb()
		}
	}
}
