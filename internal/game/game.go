// Package game drives a Session from a terminal: it turns tcell events into
// key presses and commands, ticks the simulation at a fixed rate and draws
// every frame.
package game

import (
	"fmt"
	"hero-blaster/internal/input"
	"hero-blaster/internal/render"
	"time"

	"github.com/gdamore/tcell/v2"
)

// FrameInterval is the fixed simulation and render period.
const FrameInterval = time.Second / 60

// Game is the single-terminal front end.
type Game struct {
	screen   tcell.Screen
	surface  *render.TerminalSurface
	renderer *render.Renderer
	session  *Session
	events   chan tcell.Event
}

// New creates and returns a Game with its screen initialized.
func New(opts Options) (*Game, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	return NewWithScreen(screen, opts), nil
}

// NewWithScreen wraps an initialized screen.
func NewWithScreen(screen tcell.Screen, opts Options) *Game {
	s := NewSession(opts)
	surface := render.NewTerminalSurface(screen)
	return &Game{
		screen:   screen,
		surface:  surface,
		renderer: render.NewRenderer(surface, s.Palette()),
		session:  s,
		events:   make(chan tcell.Event, 32),
	}
}

// Session exposes the simulation context, e.g. for applying settings before
// Run.
func (g *Game) Session() *Session { return g.session }

// Run is the main loop. It returns when the player quits.
func (g *Game) Run() {
	defer g.screen.Fini()
	defer g.session.Close()

	go func() {
		for {
			ev := g.screen.PollEvent()
			if ev == nil {
				close(g.events)
				return
			}
			g.events <- ev
		}
	}()

	ticker := time.NewTicker(FrameInterval)
	defer ticker.Stop()

	g.draw()
	for {
		select {
		case ev, ok := <-g.events:
			if !ok || !g.handle(ev) {
				return
			}
		case <-ticker.C:
			g.session.Tick()
			g.draw()
		}
	}
}

// handle applies one event and reports false when the game should end.
func (g *Game) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		g.surface.Resize()
		g.screen.Sync()
	case *tcell.EventKey:
		if isQuit(ev) {
			return false
		}
		if c, ok := hotkey(ev, g.session.World().Skin); ok {
			g.session.Post(c)
			return true
		}
		if key := keyName(ev); key != "" {
			g.session.KeyDown(key)
		}
	}
	return true
}

func (g *Game) draw() {
	s := g.session
	w := s.World()
	g.renderer.SetPalette(s.Palette())
	g.renderer.DrawFrame(w)
	g.renderer.DrawHUD(w, s.NetStatus())
	g.renderer.DrawFooter(g.footer()...)
	g.surface.Show()
}

func (g *Game) footer() []string {
	s := g.session
	lines := []string{input.Help(s.World().Mode), MenuHelp, NetHelp}
	if code := s.LocalCode(); code != "" {
		lines = append(lines, "LOCAL "+code)
	}
	return lines
}
