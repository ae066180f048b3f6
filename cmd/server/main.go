// hero-blaster-server pairs two SSH terminals into one co-op game: the first
// to connect flies RED, the second BLUE. Build:
//
//	go build -o hero-blaster-server ./cmd/server
//
// Usage:
//
//	./hero-blaster-server [-port 2222] [-key server_host_key] [-config path]
//
// Connect from two terminals:
//
//	ssh -p 2222 localhost
package main

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
	"unicode"

	"hero-blaster/internal/config"
	"hero-blaster/internal/game"
	internalssh "hero-blaster/internal/ssh"

	"github.com/gdamore/tcell/v2"
	gossh "github.com/gliderlabs/ssh"
	xssh "golang.org/x/crypto/ssh"
)

func main() {
	port := flag.Int("port", 2222, "SSH server port")
	keyFile := flag.String("key", "server_host_key", "Path to the PEM-encoded host key (auto-generated if absent)")
	cfgPath := flag.String("config", "", "Path to config.toml (default: XDG config dir)")
	flag.Parse()

	cfg, err := config.LoadDefault(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	level, _ := cfg.Level()
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	signer, err := loadOrCreateHostKey(*keyFile)
	if err != nil {
		slog.Error("host key", "err", err)
		os.Exit(1)
	}
	l := newLobby(cfg, *port)

	srv := &gossh.Server{
		Addr:        fmt.Sprintf(":%d", *port),
		Handler:     l.handleSession,
		PtyCallback: func(_ gossh.Context, _ gossh.Pty) bool { return true },
		// Any client may join; this is meant for a private network.
		HostSigners: []gossh.Signer{signer},
	}

	slog.Info("hero-blaster SSH server listening", "port", *port)
	slog.Info(fmt.Sprintf("connect from two terminals: ssh -p %d -o StrictHostKeyChecking=no localhost", *port))
	if err := srv.ListenAndServe(); err != nil {
		slog.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

// lobby pairs incoming SSH sessions into co-op games. Any number of games
// may run at once; an odd player out waits for the next connection.
type lobby struct {
	cfg  config.Config
	port int

	mu     sync.Mutex
	waiter *waitEntry
}

// waitEntry is the RED player parked until a partner connects.
type waitEntry struct {
	screen   tcell.Screen
	name     string
	partner  chan partner  // P1 receives P2 here
	gameDone chan struct{} // closed when the game finishes
	left     chan struct{} // closed if P1 disconnects while waiting
}

type partner struct {
	screen tcell.Screen
	name   string
}

func newLobby(cfg config.Config, port int) *lobby { return &lobby{cfg: cfg, port: port} }

// allowedTerms lists the TERM values accepted from clients. Anything else
// falls back to xterm-256color rather than being looked up in terminfo.
var allowedTerms = map[string]bool{
	"xterm":                 true,
	"xterm-256color":        true,
	"screen":                true,
	"screen-256color":       true,
	"tmux":                  true,
	"tmux-256color":         true,
	"linux":                 true,
	"vt100":                 true,
	"rxvt-unicode":          true,
	"rxvt-unicode-256color": true,
}

// terminalType returns term if it is allowed and xterm-256color otherwise.
func terminalType(term string) string {
	if allowedTerms[term] {
		return term
	}
	return "xterm-256color"
}

const maxNameBytes = 16

// sanitizeName strips control characters from an SSH user name and caps it
// at 16 bytes without splitting a rune.
func sanitizeName(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsControl(r) {
			continue
		}
		if b.Len()+len(string(r)) > maxNameBytes {
			break
		}
		b.WriteRune(r)
	}
	return b.String()
}

// handleSession serves one SSH connection and returns only when that
// player's game is over, since returning closes the session.
func (l *lobby) handleSession(s gossh.Session) {
	tty, term, ok := internalssh.FromSession(s)
	if !ok {
		fmt.Fprintf(s, "This game requires a PTY. Connect with: ssh -t -p %d <host>\n", l.port)
		return
	}
	term = terminalType(term)
	name := sanitizeName(s.User())
	if name == "" {
		name = "player"
	}

	// terminfo lookup reads TERM from the environment.
	termMu.Lock()
	_ = os.Setenv("TERM", term)
	screen, err := tcell.NewTerminfoScreenFromTty(tty)
	termMu.Unlock()
	if err != nil {
		fmt.Fprintf(s, "cannot open terminal %q: %v\n", term, err)
		return
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(s, "cannot start screen: %v\n", err)
		return
	}
	slog.Info("player connected", "name", name, "term", term, "remote", s.RemoteAddr().String())

	l.mu.Lock()
	if l.waiter == nil {
		w := &waitEntry{
			screen:   screen,
			name:     name,
			partner:  make(chan partner, 1),
			gameDone: make(chan struct{}),
			left:     make(chan struct{}),
		}
		l.waiter = w
		l.mu.Unlock()

		showWaiting(screen, l.port)
		var p2 partner
		select {
		case p2 = <-w.partner:
		case <-s.Context().Done():
			l.mu.Lock()
			if l.waiter == w {
				l.waiter = nil
			}
			l.mu.Unlock()
			close(w.left)
			screen.Fini()
			slog.Info("player left the lobby", "name", name)
			return
		}

		// RED's handler goroutine runs the shared loop.
		g := l.newGame([2]tcell.Screen{screen, p2.screen}, [2]string{name, p2.name})
		slog.Info("co-op game started", "red", name, "blue", p2.name)
		g.Run()
		close(w.gameDone)
		return
	}

	// BLUE: pass the screen to the waiting RED handler and wait it out.
	w := l.waiter
	l.waiter = nil
	l.mu.Unlock()

	w.partner <- partner{screen: screen, name: name}
	select {
	case <-w.gameDone:
	case <-w.left:
		screen.Fini()
	}
}

// newGame builds a co-op game for a RED and a BLUE screen with the server's
// configured settings.
func (l *lobby) newGame(screens [2]tcell.Screen, names [2]string) *game.CoopGame {
	g := game.NewCoopGame(screens, names, game.Options{
		HoldFrames: l.cfg.HoldFrames,
	})
	g.Session().Configure(l.cfg)
	return g
}

// termMu serialises the TERM swap and screen creation across handlers.
var termMu sync.Mutex

// showWaiting tells a lone player how a partner can join.
func showWaiting(screen tcell.Screen, port int) {
	screen.Clear()
	w, h := screen.Size()
	put := func(y int, msg string, style tcell.Style) {
		x := (w - len(msg)) / 2
		for i, r := range msg {
			screen.SetContent(x+i, y, r, nil, style)
		}
	}
	put(h/2, "Waiting for second player...", tcell.StyleDefault.Foreground(tcell.ColorYellow))
	put(h/2+2, fmt.Sprintf("Connect another terminal:  ssh -p %d <host>", port), tcell.StyleDefault.Foreground(tcell.ColorGray))
	screen.Show()
}

// loadOrCreateHostKey reads the PEM host key at path. When it is missing or
// unparseable a fresh ed25519 key is generated and written back.
func loadOrCreateHostKey(path string) (gossh.Signer, error) {
	if data, err := os.ReadFile(path); err == nil {
		if signer, err := xssh.ParsePrivateKey(data); err == nil {
			slog.Info("loaded host key", "path", path)
			return signer, nil
		}
	}

	slog.Info("generating new ed25519 host key", "path", path)
	_, key, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generate host key: %w", err)
	}
	signer, err := xssh.NewSignerFromKey(key)
	if err != nil {
		return nil, fmt.Errorf("create signer: %w", err)
	}
	// A key that cannot be saved still serves this run.
	if pemBlock, err := xssh.MarshalPrivateKey(key, "hero-blaster server"); err == nil {
		if err := os.WriteFile(path, pem.EncodeToMemory(pemBlock), 0o600); err != nil {
			slog.Warn("host key not saved", "path", path, "err", err)
		}
	}
	return signer, nil
}
