package game

import (
	"hero-blaster/assets"
	"hero-blaster/internal/input"
	"hero-blaster/internal/render"
	"hero-blaster/internal/world"
)

// Panel geometry, in playfield units below the 960×640 field.
const (
	PanelTop    = world.Height
	PanelHeight = 152

	controlHeight = 40
	rowSpacing    = 48
)

// Point is a pointer position in playfield units.
type Point struct{ X, Y float64 }

// Control is one on-screen button. Touch controls steer a ship while held;
// menu controls post a command when pressed.
type Control struct {
	Label      string
	X, Y, W, H float64

	touch   input.Button
	isTouch bool
	command func(w *world.World) Command
}

// Contains reports whether p falls inside the control.
func (c Control) Contains(p Point) bool {
	return p.X >= c.X && p.X < c.X+c.W && p.Y >= c.Y && p.Y < c.Y+c.H
}

// Panel is the strip of menu and touch controls drawn under the playfield
// by pointer-driven front ends.
type Panel struct {
	Controls []Control
}

func fixed(c Command) func(*world.World) Command {
	return func(*world.World) Command { return c }
}

// NewPanel lays out three rows: gameplay settings, the peer handshake, and
// the ten touch pads with RED on the left and BLUE on the right.
func NewPanel() *Panel {
	p := &Panel{}
	menu := func(row int, labels []string, cmds []func(*world.World) Command) {
		for i, l := range labels {
			p.Controls = append(p.Controls, Control{
				Label: l,
				X:     float64(4 + 120*i), Y: float64(PanelTop + 8 + rowSpacing*row),
				W: 112, H: controlHeight,
				command: cmds[i],
			})
		}
	}
	menu(0,
		[]string{"SINGLE", "MULTI", "EASY", "MEDIUM", "HARD", "SKIN", "START", "PAUSE"},
		[]func(*world.World) Command{
			fixed(Command{Kind: CmdMode, Mode: world.ModeSingle}),
			fixed(Command{Kind: CmdMode, Mode: world.ModeMulti}),
			fixed(Command{Kind: CmdDifficulty, Difficulty: world.Easy}),
			fixed(Command{Kind: CmdDifficulty, Difficulty: world.Medium}),
			fixed(Command{Kind: CmdDifficulty, Difficulty: world.Hard}),
			func(w *world.World) Command { return Command{Kind: CmdSkin, Skin: assets.NextSkin(w.Skin)} },
			fixed(Command{Kind: CmdStart}),
			fixed(Command{Kind: CmdPause}),
		})
	menu(1,
		[]string{"HOST", "JOIN", "OFFER", "ANSWER", "APPLY", "RESET", "COPY", "PASTE"},
		[]func(*world.World) Command{
			fixed(Command{Kind: CmdHost}),
			fixed(Command{Kind: CmdJoin}),
			fixed(Command{Kind: CmdMakeOffer}),
			fixed(Command{Kind: CmdMakeAnswer}),
			fixed(Command{Kind: CmdApplyAnswer}),
			fixed(Command{Kind: CmdResetNet}),
			fixed(Command{Kind: CmdCopyLocal}),
			fixed(Command{Kind: CmdPasteRemote}),
		})

	pads := []string{"UP", "LEFT", "RIGHT", "DOWN", "FIRE"}
	for b := input.P1Up; b < input.NumButtons; b++ {
		p.Controls = append(p.Controls, Control{
			Label: pads[int(b)%len(pads)],
			X:     float64(4 + 96*int(b)), Y: float64(PanelTop + 8 + rowSpacing*2),
			W: 88, H: controlHeight,
			touch:   b,
			isTouch: true,
		})
	}
	return p
}

// Press posts the command of the menu control under p, if any.
func (p *Panel) Press(s *Session, at Point) bool {
	for _, c := range p.Controls {
		if !c.isTouch && c.Contains(at) {
			return s.Post(c.command(s.World()))
		}
	}
	return false
}

// Hold sets every touch pad from the pointers currently down. Pads no
// pointer covers are released.
func (p *Panel) Hold(t *input.Touch, pointers []Point) {
	for _, c := range p.Controls {
		if !c.isTouch {
			continue
		}
		down := false
		for _, at := range pointers {
			if c.Contains(at) {
				down = true
				break
			}
		}
		t.Set(c.touch, down)
	}
}

// Draw paints the panel. Held pads are drawn opaque in their team color.
func (p *Panel) Draw(surface render.Surface, palette assets.Palette, t *input.Touch) {
	surface.FillRect(0, PanelTop, world.Width, PanelHeight, assets.Overlay, 1)
	for _, c := range p.Controls {
		fill, alpha := assets.Background, 1.0
		if c.isTouch {
			fill, alpha = palette.RedTeam, 0.45
			if c.touch.Team() == world.Blue {
				fill = palette.BlueTeam
			}
			if t.Held(c.touch) {
				alpha = 1
			}
		}
		surface.FillRect(c.X, c.Y, c.W, c.H, fill, alpha)
		surface.CenterText(c.X+c.W/2, c.Y+c.H/2-8, c.Label, assets.BodyText)
	}
}
