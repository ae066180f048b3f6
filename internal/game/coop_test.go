package game

import (
	"hero-blaster/internal/peer"
	"hero-blaster/internal/world"
	"math/rand"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
)

// newTestCoopGame creates a CoopGame on two simulation screens.
func newTestCoopGame(t *testing.T) (*CoopGame, [2]tcell.SimulationScreen) {
	t.Helper()
	screens := [2]tcell.SimulationScreen{newSimScreen(), newSimScreen()}
	g := NewCoopGame([2]tcell.Screen{screens[0], screens[1]}, [2]string{"alice", "bob"}, Options{
		Net:        peer.Config{Listen: "127.0.0.1:0"},
		HoldFrames: 4,
		Rand:       rand.New(rand.NewSource(11)),
	})
	t.Cleanup(g.session.Close)
	return g, screens
}

func TestCoopStartsInMultiMode(t *testing.T) {
	g, _ := newTestCoopGame(t)
	g.tick()
	if g.session.World().Mode != world.ModeMulti {
		t.Errorf("mode = %v; want multi", g.session.World().Mode)
	}
}

func TestCoopSecondPlayerFliesBlue(t *testing.T) {
	g, _ := newTestCoopGame(t)
	g.handle(1, namedKey(tcell.KeyEnter))
	g.tick()
	w := g.session.World()
	if !w.Running {
		t.Fatal("second player's Enter did not start the run")
	}

	red0, blue0 := w.Player(world.Red).X, w.Player(world.Blue).X
	g.handle(1, runeKey('d'))
	g.tick()
	if got := w.Player(world.Blue).X; got != blue0+world.PlayerSpeed {
		t.Errorf("blue x = %v; want %v", got, blue0+world.PlayerSpeed)
	}
	if w.Player(world.Red).X != red0 {
		t.Error("second player's keys moved RED")
	}
}

func TestCoopFirstPlayerFliesRed(t *testing.T) {
	g, _ := newTestCoopGame(t)
	g.handle(0, namedKey(tcell.KeyEnter))
	g.tick()
	w := g.session.World()
	red0 := w.Player(world.Red).X
	g.handle(0, runeKey('a'))
	g.tick()
	if got := w.Player(world.Red).X; got != red0-world.PlayerSpeed {
		t.Errorf("red x = %v; want %v", got, red0-world.PlayerSpeed)
	}
}

func TestCoopFirstPlayerCannotSteerBlue(t *testing.T) {
	g, _ := newTestCoopGame(t)
	g.handle(0, namedKey(tcell.KeyEnter))
	g.tick()
	w := g.Session().World()
	blue0 := w.Player(world.Blue).X
	bullets := len(w.Bullets)

	g.handle(0, namedKey(tcell.KeyLeft))
	g.handle(0, runeKey('l'))
	g.tick()
	if got := w.Player(world.Blue).X; got != blue0 {
		t.Errorf("first terminal's arrow moved BLUE: x %v -> %v", blue0, got)
	}
	if len(w.Bullets) != bullets {
		t.Error("first terminal's l fired for BLUE")
	}
}

func TestCoopSettingsBelongToFirstPlayer(t *testing.T) {
	g, _ := newTestCoopGame(t)
	g.handle(1, namedKey(tcell.KeyF5))
	g.handle(0, namedKey(tcell.KeyF7))
	g.tick()
	if g.session.World().Difficulty == world.Hard {
		t.Error("second player changed the difficulty")
	}
	if g.session.Link().Role() != peer.RoleNone {
		t.Error("network hotkeys are active in a shared-terminal game")
	}

	g.handle(0, namedKey(tcell.KeyF5))
	g.tick()
	if g.session.World().Difficulty != world.Hard {
		t.Error("first player could not change the difficulty")
	}
}

func TestCoopQuitFromEitherScreen(t *testing.T) {
	g, _ := newTestCoopGame(t)
	if g.handle(1, namedKey(tcell.KeyEscape)) {
		t.Error("second player's Esc did not end the game")
	}
	if g.handle(0, namedKey(tcell.KeyCtrlC)) {
		t.Error("first player's Ctrl-C did not end the game")
	}
}

func TestCoopRendersBothScreens(t *testing.T) {
	g, screens := newTestCoopGame(t)
	g.tick()
	if !strings.Contains(screenText(screens[0]), "You: RED (alice)") {
		t.Error("first screen missing its role line")
	}
	if !strings.Contains(screenText(screens[1]), "You: BLUE (bob)") {
		t.Error("second screen missing its role line")
	}
}
