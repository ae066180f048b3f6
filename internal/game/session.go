package game

import (
	"hero-blaster/assets"
	"hero-blaster/internal/config"
	"hero-blaster/internal/input"
	"hero-blaster/internal/peer"
	"hero-blaster/internal/sim"
	"hero-blaster/internal/world"
	"log/slog"
	"math/rand"
	"strings"
	"time"
)

// CommandKind names one user-level request to the session.
type CommandKind uint8

const (
	CmdStart CommandKind = iota // reset and start; a connected guest asks the host
	CmdPause
	CmdMode
	CmdDifficulty
	CmdSkin
	CmdHost
	CmdJoin
	CmdMakeOffer
	CmdMakeAnswer
	CmdApplyAnswer
	CmdResetNet
	CmdCopyLocal
	CmdPasteRemote
)

// Command is posted to a session's inbox. Only the field matching Kind is
// read.
type Command struct {
	Kind       CommandKind
	Mode       world.Mode
	Difficulty world.Difficulty
	Skin       string
}

// Clipboard statuses.
const (
	StatusNoLocalCode    = "NO LOCAL CODE"
	StatusLocalCopied    = "LOCAL CODE COPIED"
	StatusCopyFailed     = "COPY FAILED"
	StatusClipboardEmpty = "CLIPBOARD EMPTY"
	StatusRemotePasted   = "REMOTE CODE PASTED"
	StatusPasteFailed    = "PASTE FAILED"
)

const inboxSize = 64

// Sounds receives the outcome of every simulation step.
type Sounds interface {
	Report(sim.Report)
}

type silent struct{}

func (silent) Report(sim.Report) {}

// Options configures a Session.
type Options struct {
	Net        peer.Config
	HoldFrames int    // terminal key hold window; 0 for front ends with key-up events
	RunLogDir  string // empty disables the run log
	Sounds     Sounds
	Clipboard  Clipboard
	Rand       *rand.Rand
}

// Session is the single simulation context: it owns the world, the input
// state, the peer link and the palette, and is driven by one goroutine
// calling Tick. Other goroutines talk to it only through Post.
type Session struct {
	world   *world.World
	rng     *rand.Rand
	keys    *input.KeySet
	touch   *input.Touch
	link    *peer.Link
	palette assets.Palette
	sounds  Sounds
	clip    Clipboard
	inbox   chan Command

	// local overrides the peer as the source of BLUE's remote intent.
	local func() *input.Intent

	localCode  string
	remoteCode string

	runLogDir string
	run       RunLog
	frames    int
}

// NewSession returns an idle session with no gameplay mode chosen.
func NewSession(opts Options) *Session {
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	s := &Session{
		world:     world.New(rng),
		rng:       rng,
		keys:      input.NewKeySet(opts.HoldFrames),
		touch:     &input.Touch{},
		link:      peer.NewLink(opts.Net),
		sounds:    opts.Sounds,
		clip:      opts.Clipboard,
		inbox:     make(chan Command, inboxSize),
		runLogDir: opts.RunLogDir,
	}
	if s.sounds == nil {
		s.sounds = silent{}
	}
	if s.clip == nil {
		s.clip = noClipboard{}
	}
	s.palette, _ = assets.Skin(s.world.Skin, rng)
	return s
}

// World exposes the simulated (or mirrored) state for rendering.
func (s *Session) World() *world.World { return s.world }

// Palette is the active skin's colors.
func (s *Session) Palette() assets.Palette { return s.palette }

// Keys is the held-key set fed by the front end.
func (s *Session) Keys() *input.KeySet { return s.keys }

// Touch is the on-screen button state fed by the front end.
func (s *Session) Touch() *input.Touch { return s.touch }

// Link is the peer side of this session.
func (s *Session) Link() *peer.Link { return s.link }

// NetStatus is the connection line shown in the HUD.
func (s *Session) NetStatus() string { return s.link.Status() }

// LocalCode is the handshake blob waiting to be sent to the other player.
func (s *Session) LocalCode() string { return s.localCode }

// RemoteCode is the last handshake blob pasted from the other player.
func (s *Session) RemoteCode() string { return s.remoteCode }

// SetRemoteCode sets the remote blob directly, e.g. from a command line flag.
func (s *Session) SetRemoteCode(code string) { s.remoteCode = strings.TrimSpace(code) }

// Configure applies saved settings to an idle session before Run.
func (s *Session) Configure(c config.Config) {
	if s.world.Running {
		return
	}
	c.Apply(s.world)
	if p, err := assets.Skin(s.world.Skin, s.rng); err == nil {
		s.palette = p
	}
}

// SetLocalRemote makes a same-process second player drive BLUE in place of
// a network peer. While set, BLUE ignores this session's own keys and touch
// pads. Pass nil to remove it.
func (s *Session) SetLocalRemote(f func() *input.Intent) { s.local = f }

// Post queues c for the next Tick. It never blocks and reports false when
// the inbox is full.
func (s *Session) Post(c Command) bool {
	select {
	case s.inbox <- c:
		return true
	default:
		slog.Warn("command dropped", "kind", c.Kind)
		return false
	}
}

// KeyDown records a key press. Enter starts a run that is not already live
// and p toggles pause; every other key only feeds the held-key set.
func (s *Session) KeyDown(key string) {
	key = input.NormalizeKey(key)
	s.keys.Press(key)
	switch key {
	case "Enter":
		if !s.world.Running {
			s.Post(Command{Kind: CmdStart})
		}
	case "p":
		s.Post(Command{Kind: CmdPause})
	}
}

// KeyUp releases a key on front ends that report it.
func (s *Session) KeyUp(key string) { s.keys.Release(input.NormalizeKey(key)) }

// Tick advances one frame: commands, then peer traffic, then either the
// guest's intent upload or the host's simulation step and snapshot.
func (s *Session) Tick() sim.Report {
	s.drainInbox()

	up := s.link.Poll()
	for _, c := range up.Commands {
		switch c {
		case peer.CommandStart:
			s.start()
		case peer.CommandPause:
			s.world.TogglePause()
		}
	}
	if up.Snapshot != nil {
		up.Snapshot.Apply(s.world)
	}

	defer s.keys.Tick()

	if s.link.IsGuest() {
		s.link.PushInput(input.GuestIntent(s.world.Mode, s.keys, s.touch))
		return sim.Report{}
	}

	var intents [2]input.Intent
	if s.local != nil {
		intents = input.Resolve(s.world.Mode, s.keys, s.touch, nil)
		if in := s.local(); in != nil && s.world.Mode.Enables(world.Blue) {
			intents[world.Blue] = *in
		}
	} else {
		intents = input.Resolve(s.world.Mode, s.keys, s.touch, s.link.RemoteIntent())
	}
	r := sim.Step(s.world, intents, s.rng)
	s.record(r)
	s.sounds.Report(r)
	s.link.PushState(s.world)
	return r
}

func (s *Session) drainInbox() {
	for {
		select {
		case c := <-s.inbox:
			s.apply(c)
		default:
			return
		}
	}
}

func (s *Session) apply(c Command) {
	switch c.Kind {
	case CmdStart:
		if s.link.IsGuest() {
			s.link.SendCommand(peer.CommandStart)
			return
		}
		s.start()
	case CmdPause:
		if s.link.IsGuest() {
			s.link.SendCommand(peer.CommandPause)
			return
		}
		s.world.TogglePause()
	case CmdMode:
		s.world.SetMode(c.Mode)
	case CmdDifficulty:
		s.world.SetDifficulty(c.Difficulty)
	case CmdSkin:
		s.setSkin(c.Skin)
	case CmdHost:
		s.localCode, s.remoteCode = "", ""
		if err := s.link.Host(); err != nil {
			slog.Warn("host failed", "err", err)
		}
	case CmdJoin:
		s.localCode = ""
		s.link.Join()
	case CmdMakeOffer:
		if code, err := s.link.MakeOffer(); err == nil {
			s.localCode = code
		}
	case CmdMakeAnswer:
		if s.link.Role() != peer.RoleGuest {
			return
		}
		code, err := s.link.MakeAnswer(s.remoteCode)
		if err != nil {
			slog.Info("offer rejected", "err", err)
			return
		}
		s.localCode = code
	case CmdApplyAnswer:
		if s.link.Role() != peer.RoleHost {
			return
		}
		if err := s.link.ApplyAnswer(s.remoteCode); err != nil {
			slog.Info("answer rejected", "err", err)
		}
	case CmdResetNet:
		s.localCode, s.remoteCode = "", ""
		s.link.Close()
	case CmdCopyLocal:
		s.copyLocal()
	case CmdPasteRemote:
		s.pasteRemote()
	}
}

// start resets the world into a live run when a gameplay mode is set.
func (s *Session) start() {
	if !s.world.Reset() {
		return
	}
	s.keys.Clear()
	s.frames = 0
	s.run = RunLog{
		Difficulty: s.world.Difficulty.String(),
		Mode:       s.world.Mode.String(),
		Skin:       s.world.Skin,
		Networked:  s.link.Role() == peer.RoleHost && s.link.Connected(),
	}
	slog.Info("run started", "mode", s.run.Mode, "difficulty", s.run.Difficulty)
}

func (s *Session) setSkin(name string) {
	p, err := assets.Skin(name, s.rng)
	if err != nil {
		slog.Warn("skin rejected", "err", err)
		return
	}
	if s.world.SetSkin(name) {
		s.palette = p
	}
}

func (s *Session) copyLocal() {
	code := strings.TrimSpace(s.localCode)
	if code == "" {
		s.link.SetStatus(StatusNoLocalCode)
		return
	}
	if err := s.clip.Copy(code); err != nil {
		slog.Warn("clipboard copy failed", "err", err)
		s.link.SetStatus(StatusCopyFailed)
		return
	}
	s.link.SetStatus(StatusLocalCopied)
}

func (s *Session) pasteRemote() {
	text, err := s.clip.Paste()
	if err != nil {
		slog.Warn("clipboard paste failed", "err", err)
		s.link.SetStatus(StatusPasteFailed)
		return
	}
	if strings.TrimSpace(text) == "" {
		s.link.SetStatus(StatusClipboardEmpty)
		return
	}
	s.remoteCode = strings.TrimSpace(text)
	s.link.SetStatus(StatusRemotePasted)
}

// record folds one step into the current run's log and writes it out when
// the run ends.
func (s *Session) record(r sim.Report) {
	if !r.RunEnded && (!s.world.Running || s.world.Paused) {
		return
	}
	s.frames++
	s.run.ShotsFired += r.ShotsFired
	s.run.Kills += r.Kills
	s.run.DamageTaken += r.DamageTaken
	if r.BossKilled {
		s.run.BossesDefeated++
	}
	if !r.RunEnded {
		return
	}
	s.run.Score = s.world.Score
	s.run.Level = s.world.Level
	s.run.Frames = s.frames
	slog.Info("run ended", "score", s.run.Score, "level", s.run.Level, "frames", s.frames)
	if s.runLogDir != "" {
		saveRunLog(s.runLogDir, s.run)
	}
}

// Close tears down the peer link.
func (s *Session) Close() { s.link.Close() }
