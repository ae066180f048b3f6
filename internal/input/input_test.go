package input

import (
	"hero-blaster/internal/world"
	"testing"
)

func TestNormalizeKey(t *testing.T) {
	cases := map[string]string{
		"A":         "a",
		"f":         "f",
		" ":         " ",
		"ArrowLeft": "ArrowLeft",
		"Enter":     "Enter",
		"É":         "é",
		"":          "",
	}
	for in, want := range cases {
		if got := NormalizeKey(in); got != want {
			t.Errorf("NormalizeKey(%q) = %q; want %q", in, got, want)
		}
	}
}

func TestResolveMultiBindings(t *testing.T) {
	keys := NewKeySet(0)
	keys.Press("A")
	keys.Press("f")
	keys.Press("ArrowUp")
	keys.Press("l")

	got := Resolve(world.ModeMulti, keys, &Touch{}, nil)
	if want := (Intent{Left: true, Shoot: true}); got[world.Red] != want {
		t.Errorf("red = %+v; want %+v", got[world.Red], want)
	}
	if want := (Intent{Up: true, Shoot: true}); got[world.Blue] != want {
		t.Errorf("blue = %+v; want %+v", got[world.Blue], want)
	}
}

func TestResolveSingleBindings(t *testing.T) {
	keys := NewKeySet(0)
	keys.Press("ArrowRight")
	keys.Press(" ")
	keys.Press("d") // multi-only key, ignored

	got := Resolve(world.ModeSingle, keys, &Touch{}, &Intent{Left: true})
	if want := (Intent{Right: true, Shoot: true}); got[world.Red] != want {
		t.Errorf("red = %+v; want %+v", got[world.Red], want)
	}
	if got[world.Blue] != (Intent{}) {
		t.Errorf("blue must be idle in single mode, got %+v", got[world.Blue])
	}
}

func TestResolveNoModeIsIdle(t *testing.T) {
	keys := NewKeySet(0)
	keys.Press("a")
	var touch Touch
	touch.Set(P1Shoot, true)
	if got := Resolve(world.ModeNone, keys, &touch, nil); got != [2]Intent{} {
		t.Errorf("Resolve without mode = %+v; want idle", got)
	}
}

func TestRemoteDrivesBlueOnly(t *testing.T) {
	remote := &Intent{Down: true, Shoot: true}
	got := Resolve(world.ModeMulti, NewKeySet(0), &Touch{}, remote)
	if got[world.Red] != (Intent{}) {
		t.Errorf("remote leaked into red: %+v", got[world.Red])
	}
	if got[world.Blue] != *remote {
		t.Errorf("blue = %+v; want %+v", got[world.Blue], *remote)
	}
}

func TestTouchMergesWithKeys(t *testing.T) {
	keys := NewKeySet(0)
	keys.Press("w")
	var touch Touch
	touch.Set(P1Left, true)
	touch.Set(P2Shoot, true)

	got := Resolve(world.ModeMulti, keys, &touch, nil)
	if want := (Intent{Up: true, Left: true}); got[world.Red] != want {
		t.Errorf("red = %+v; want %+v", got[world.Red], want)
	}
	if want := (Intent{Shoot: true}); got[world.Blue] != want {
		t.Errorf("blue = %+v; want %+v", got[world.Blue], want)
	}

	touch.Reset()
	if touch.Held(P1Left) || touch.Held(P2Shoot) {
		t.Error("Reset left buttons held")
	}
}

func TestGuestIntentUsesPlayerOneControls(t *testing.T) {
	keys := NewKeySet(0)
	keys.Press("ArrowLeft") // BLUE's key in multi mode
	keys.Press("s")
	var touch Touch
	touch.Set(P1Shoot, true)
	touch.Set(P2Up, true)

	got := GuestIntent(world.ModeMulti, keys, &touch)
	if want := (Intent{Down: true, Shoot: true}); got != want {
		t.Errorf("GuestIntent = %+v; want %+v", got, want)
	}
}

func TestKeySetHoldExpires(t *testing.T) {
	keys := NewKeySet(3)
	keys.Press("A")
	for i := 0; i < 2; i++ {
		keys.Tick()
		if !keys.Down("a") {
			t.Fatalf("key released after %d ticks; want held for 3", i+1)
		}
	}
	keys.Tick()
	if keys.Down("a") {
		t.Fatal("key still held after hold window")
	}

	keys.Press("a")
	keys.Tick()
	keys.Tick()
	keys.Press("a") // auto-repeat refreshes the window
	keys.Tick()
	keys.Tick()
	if !keys.Down("a") {
		t.Fatal("auto-repeat did not refresh hold window")
	}
}

func TestKeySetWithoutExpiry(t *testing.T) {
	keys := NewKeySet(0)
	keys.Press("l")
	for i := 0; i < 100; i++ {
		keys.Tick()
	}
	if !keys.Down("L") {
		t.Fatal("key expired without a hold window")
	}
	keys.Release("L")
	if keys.Down("l") {
		t.Fatal("Release did not clear key")
	}
	keys.Press("x")
	keys.Clear()
	if keys.Down("x") {
		t.Fatal("Clear left keys held")
	}
	if keys.Down("") {
		t.Fatal("empty key reported held")
	}
}

func TestParseButton(t *testing.T) {
	for b := Button(0); b < NumButtons; b++ {
		got, err := ParseButton(b.String())
		if err != nil || got != b {
			t.Errorf("ParseButton(%q) = %v, %v", b.String(), got, err)
		}
	}
	if _, err := ParseButton("p3Up"); err == nil {
		t.Error("ParseButton accepted p3Up")
	}
	if P2Down.Team() != world.Blue || P1Shoot.Team() != world.Red {
		t.Error("button team mapping wrong")
	}
}
