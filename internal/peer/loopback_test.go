package peer_test

import (
	"errors"
	"hero-blaster/internal/input"
	"hero-blaster/internal/peer"
	"hero-blaster/internal/world"
	"math/rand"
	"testing"
	"time"

	"github.com/google/uuid"
)

// eventually runs poll until cond holds or ten seconds pass.
func eventually(t *testing.T, what string, poll func(), cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(10 * time.Second)
	for time.Now().Before(deadline) {
		poll()
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func TestLoopbackSession(t *testing.T) {
	host := peer.NewLink(peer.Config{Listen: "127.0.0.1:0"})
	guest := peer.NewLink(peer.Config{})
	t.Cleanup(host.Close)
	t.Cleanup(guest.Close)

	if err := host.Host(); err != nil {
		t.Fatalf("Host: %v", err)
	}
	offer, err := host.MakeOffer()
	if err != nil {
		t.Fatalf("MakeOffer: %v", err)
	}
	guest.Join()
	answer, err := guest.MakeAnswer(offer)
	if err != nil {
		t.Fatalf("MakeAnswer: %v", err)
	}
	if guest.Status() != peer.StatusSendAnswer {
		t.Errorf("guest status = %q; want %q", guest.Status(), peer.StatusSendAnswer)
	}
	if err := host.ApplyAnswer(answer); err != nil {
		t.Fatalf("ApplyAnswer: %v", err)
	}

	var commands []peer.Command
	pollBoth := func() {
		commands = append(commands, host.Poll().Commands...)
		guest.Poll()
	}
	eventually(t, "both sides to connect", pollBoth, func() bool {
		return host.Connected() && guest.Connected()
	})
	if host.Status() != "CONNECTED (HOST)" || guest.Status() != "CONNECTED (GUEST)" {
		t.Errorf("statuses = %q / %q", host.Status(), guest.Status())
	}

	guest.PushInput(input.Intent{Left: true, Shoot: true})
	if !guest.SendCommand(peer.CommandStart) {
		t.Fatal("guest refused to send start")
	}
	eventually(t, "guest input at host", pollBoth, func() bool {
		in := host.RemoteIntent()
		return in != nil && in.Left && in.Shoot && len(commands) > 0
	})
	if commands[0] != peer.CommandStart {
		t.Errorf("commands = %v; want start", commands)
	}

	w := world.New(rand.New(rand.NewSource(3)))
	w.SetMode(world.ModeMulti)
	w.Reset()
	w.Score = 41
	host.PushState(w)
	eventually(t, "snapshot at guest", pollBoth, func() bool {
		s := guest.LastSnapshot()
		return s != nil && s.Score == 41 && s.Running
	})

	guest.Close()
	eventually(t, "host to notice the guest leaving", func() { host.Poll() }, func() bool {
		return !host.Connected()
	})
	if s := host.Status(); s != peer.StatusDisconnected && s != peer.StatusConnectionLost {
		t.Errorf("host status after guest left = %q", s)
	}
}

func TestForeignAnswerRejected(t *testing.T) {
	h, err := peer.Listen("127.0.0.1:0", "game.example:7070")
	if err != nil {
		t.Fatalf("Listen: %v", err)
	}
	t.Cleanup(func() { _ = h.Close() })

	if got := h.Offer().URL; got != "ws://game.example:7070/peer" {
		t.Errorf("offer url = %q", got)
	}
	foreign := peer.Answer{Type: "answer", Session: uuid.New(), Guest: uuid.New()}
	if err := h.ApplyAnswer(foreign); !errors.Is(err, peer.ErrSessionMismatch) {
		t.Errorf("ApplyAnswer(foreign) = %v; want ErrSessionMismatch", err)
	}
	if err := h.ApplyAnswer(peer.NewAnswer(h.Offer())); err != nil {
		t.Errorf("ApplyAnswer(own) = %v", err)
	}
}
