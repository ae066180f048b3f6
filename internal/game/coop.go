package game

import (
	"hero-blaster/internal/input"
	"hero-blaster/internal/render"
	"hero-blaster/internal/world"
	"time"

	"github.com/gdamore/tcell/v2"
)

// coopPlayer is one terminal of a shared-session game.
type coopPlayer struct {
	screen   tcell.Screen
	surface  *render.TerminalSurface
	renderer *render.Renderer
	name     string
	// events receives all tcell events from the polling goroutine.
	events chan tcell.Event
}

// CoopGame runs one session on two terminals. The first terminal flies RED
// and owns the menus; the second flies BLUE with the same keys, feeding the
// session the way a network guest would.
type CoopGame struct {
	session *Session
	players [2]*coopPlayer
	p2keys  *input.KeySet
}

// NewCoopGame creates a CoopGame backed by two already-initialized screens.
// names label the players in the footer.
func NewCoopGame(screens [2]tcell.Screen, names [2]string, opts Options) *CoopGame {
	opts.Clipboard = nil
	g := &CoopGame{
		session: NewSession(opts),
		p2keys:  input.NewKeySet(opts.HoldFrames),
	}
	for i, screen := range screens {
		surface := render.NewTerminalSurface(screen)
		g.players[i] = &coopPlayer{
			screen:   screen,
			surface:  surface,
			renderer: render.NewRenderer(surface, g.session.Palette()),
			name:     names[i],
			events:   make(chan tcell.Event, 32),
		}
	}
	g.session.Post(Command{Kind: CmdMode, Mode: world.ModeMulti})
	g.session.SetLocalRemote(func() *input.Intent {
		in := input.GuestIntent(g.session.World().Mode, g.p2keys, &input.Touch{})
		return &in
	})
	return g
}

// Session exposes the shared simulation context, e.g. for applying settings
// before Run.
func (g *CoopGame) Session() *Session { return g.session }

// Run drives the shared loop. Blocks until either player quits or
// disconnects. Calls screen.Fini() on both screens before returning.
func (g *CoopGame) Run() {
	defer func() {
		for _, p := range g.players {
			p.screen.Fini()
		}
	}()
	defer g.session.Close()

	for _, p := range g.players {
		p := p
		go func() {
			for {
				ev := p.screen.PollEvent()
				if ev == nil {
					close(p.events)
					return
				}
				p.events <- ev
			}
		}()
	}

	ticker := time.NewTicker(FrameInterval)
	defer ticker.Stop()

	for {
		select {
		case ev, ok := <-g.players[0].events:
			if !ok || !g.handle(0, ev) {
				return
			}
		case ev, ok := <-g.players[1].events:
			if !ok || !g.handle(1, ev) {
				return
			}
		case <-ticker.C:
			g.tick()
		}
	}
}

func (g *CoopGame) tick() {
	g.session.Tick()
	g.p2keys.Tick()
	g.renderAll()
}

// handle applies one event from player i and reports false on quit.
// Either player may start or pause; only the first changes settings.
func (g *CoopGame) handle(i int, ev tcell.Event) bool {
	p := g.players[i]
	switch ev := ev.(type) {
	case *tcell.EventResize:
		p.surface.Resize()
		p.screen.Sync()
	case *tcell.EventKey:
		if isQuit(ev) {
			return false
		}
		if c, ok := hotkey(ev, g.session.World().Skin); ok {
			if i == 0 && !isNetCommand(c) {
				g.session.Post(c)
			}
			return true
		}
		key := keyName(ev)
		if key == "" {
			return true
		}
		if i == 0 {
			g.session.KeyDown(key)
			return true
		}
		g.p2keys.Press(key)
		switch input.NormalizeKey(key) {
		case "Enter":
			if !g.session.World().Running {
				g.session.Post(Command{Kind: CmdStart})
			}
		case "p":
			g.session.Post(Command{Kind: CmdPause})
		}
	}
	return true
}

func (g *CoopGame) renderAll() {
	s := g.session
	w := s.World()
	for i, p := range g.players {
		p.renderer.SetPalette(s.Palette())
		p.renderer.DrawFrame(w)
		p.renderer.DrawHUD(w, "")
		help := input.Help(w.Mode)
		if i == 1 {
			help = ""
		}
		p.renderer.DrawFooter(help, coopFooter(i, g.players[0].name, g.players[1].name))
		p.surface.Show()
	}
}

func coopFooter(i int, red, blue string) string {
	if i == 0 {
		return "You: RED (" + red + ")  Partner: BLUE (" + blue + ")  " + MenuHelp
	}
	return "You: BLUE (" + blue + ")  Partner: RED (" + red + ")  Move WASD  Fire F  Esc quit"
}
