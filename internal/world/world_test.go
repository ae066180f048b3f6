package world

import (
	"math/rand"
	"reflect"
	"testing"
)

func newTestWorld(mode Mode) *World {
	w := New(rand.New(rand.NewSource(1)))
	w.Mode = mode
	return w
}

func TestProfilesTable(t *testing.T) {
	cases := []struct {
		d    Difficulty
		want Profile
	}{
		{Easy, Profile{Lives: 5, SpawnFrames: 76, MinSpawnFrames: 34, EnemySpeed: 0.88, LevelRamp: 1.45, LevelEvery: 16}},
		{Medium, Profile{Lives: 3, SpawnFrames: 60, MinSpawnFrames: 26, EnemySpeed: 1.00, LevelRamp: 2.10, LevelEvery: 12}},
		{Hard, Profile{Lives: 2, SpawnFrames: 46, MinSpawnFrames: 20, EnemySpeed: 1.18, LevelRamp: 2.60, LevelEvery: 10}},
	}
	for _, tc := range cases {
		t.Run(tc.d.String(), func(t *testing.T) {
			if got := tc.d.Profile(); got != tc.want {
				t.Errorf("Profile() = %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestNewWorldDefaults(t *testing.T) {
	w := New(rand.New(rand.NewSource(7)))
	if w.Running || w.Paused {
		t.Error("new world must be idle")
	}
	if w.Lives != 5 || w.Level != 1 || w.Score != 0 {
		t.Errorf("lives/level/score = %d/%d/%d; want 5/1/0", w.Lives, w.Level, w.Score)
	}
	if len(w.Stars) != StarCount {
		t.Errorf("stars = %d; want %d", len(w.Stars), StarCount)
	}
	for i, s := range w.Stars {
		if s.X < 0 || s.X >= Width || s.Y < 0 || s.Y >= Height {
			t.Fatalf("star %d out of playfield: %+v", i, s)
		}
	}
	if w.Player(Red).Team != Red || w.Player(Blue).Team != Blue {
		t.Error("players not keyed by team")
	}
}

func TestResetRequiresMode(t *testing.T) {
	w := newTestWorld(ModeNone)
	if w.Reset() {
		t.Fatal("Reset started a run without a gameplay mode")
	}
	if w.Running {
		t.Fatal("world running after refused reset")
	}
}

func TestResetIsIdempotent(t *testing.T) {
	w := newTestWorld(ModeMulti)
	w.Score = 40
	w.Level = 4
	w.Lives = 1
	w.Enemies = []Enemy{{Rect: Rect{X: 1, Y: 2, W: 30, H: 30}, Speed: 2}}
	w.Boss = &Boss{HP: 3}
	w.Players[Red].X = 12

	w.Reset()
	first := *w
	w.Reset()

	if !reflect.DeepEqual(first, *w) {
		t.Fatalf("second reset differs:\nfirst  %+v\nsecond %+v", first, *w)
	}
	if w.Score != 0 || w.Lives != 5 || w.Level != 1 || w.Boss != nil {
		t.Errorf("reset state wrong: score=%d lives=%d level=%d boss=%v", w.Score, w.Lives, w.Level, w.Boss)
	}
	if len(w.Bullets)+len(w.Enemies)+len(w.BossBullets) != 0 {
		t.Error("entity collections not emptied")
	}
	if w.NextBossLevel != FirstBossLevel {
		t.Errorf("NextBossLevel = %d; want %d", w.NextBossLevel, FirstBossLevel)
	}
	if w.Players[Red].X != Width*0.35 || w.Players[Blue].X != Width*0.65 {
		t.Errorf("players not repositioned: %v %v", w.Players[Red].X, w.Players[Blue].X)
	}
}

func TestSettersOnlyBetweenRuns(t *testing.T) {
	w := newTestWorld(ModeSingle)
	if !w.SetDifficulty(Hard) || w.Lives != 2 {
		t.Fatalf("SetDifficulty idle: lives = %d; want 2", w.Lives)
	}
	w.Reset()
	if w.SetDifficulty(Easy) {
		t.Error("SetDifficulty accepted during a run")
	}
	if w.SetMode(ModeMulti) {
		t.Error("SetMode accepted during a run")
	}
	if w.SetSkin("dc") {
		t.Error("SetSkin accepted during a run")
	}
	if w.Difficulty != Hard || w.Mode != ModeSingle || w.Skin != "avengers" {
		t.Errorf("settings changed during run: %v %v %q", w.Difficulty, w.Mode, w.Skin)
	}
}

func TestTogglePauseOnlyWhileRunning(t *testing.T) {
	w := newTestWorld(ModeSingle)
	w.TogglePause()
	if w.Paused {
		t.Fatal("paused an idle world")
	}
	w.Reset()
	w.TogglePause()
	if !w.Paused {
		t.Fatal("TogglePause did not pause")
	}
	w.TogglePause()
	if w.Paused {
		t.Fatal("TogglePause did not resume")
	}
}

func TestPlayerEnabled(t *testing.T) {
	cases := []struct {
		mode      Mode
		red, blue bool
	}{
		{ModeNone, false, false},
		{ModeSingle, true, false},
		{ModeMulti, true, true},
	}
	for _, tc := range cases {
		w := newTestWorld(tc.mode)
		if got := w.PlayerEnabled(Red); got != tc.red {
			t.Errorf("mode %q red enabled = %v; want %v", tc.mode, got, tc.red)
		}
		if got := w.PlayerEnabled(Blue); got != tc.blue {
			t.Errorf("mode %q blue enabled = %v; want %v", tc.mode, got, tc.blue)
		}
	}
}

func TestOverlapsStrict(t *testing.T) {
	a := Rect{X: 0, Y: 0, W: 10, H: 10}
	cases := []struct {
		name string
		b    Rect
		want bool
	}{
		{"inside", Rect{X: 2, Y: 2, W: 2, H: 2}, true},
		{"partial", Rect{X: 9, Y: 9, W: 5, H: 5}, true},
		{"touching right edge", Rect{X: 10, Y: 0, W: 5, H: 5}, false},
		{"touching bottom edge", Rect{X: 0, Y: 10, W: 5, H: 5}, false},
		{"touching left edge", Rect{X: -5, Y: 0, W: 5, H: 5}, false},
		{"far away", Rect{X: 50, Y: 50, W: 5, H: 5}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := a.Overlaps(tc.b); got != tc.want {
				t.Errorf("Overlaps = %v; want %v", got, tc.want)
			}
			if got := tc.b.Overlaps(a); got != tc.want {
				t.Errorf("reverse Overlaps = %v; want %v", got, tc.want)
			}
		})
	}
}

func TestTeamText(t *testing.T) {
	var tm Team
	if err := tm.UnmarshalText([]byte("BLUE")); err != nil || tm != Blue {
		t.Fatalf("UnmarshalText(BLUE) = %v, %v", tm, err)
	}
	if err := tm.UnmarshalText([]byte("GREEN")); err == nil {
		t.Fatal("UnmarshalText accepted GREEN")
	}
	b, err := Red.MarshalText()
	if err != nil || string(b) != "RED" {
		t.Fatalf("MarshalText(Red) = %q, %v", b, err)
	}
}

func TestParseDifficultyAndMode(t *testing.T) {
	if d, err := ParseDifficulty("medium"); err != nil || d != Medium {
		t.Errorf("ParseDifficulty(medium) = %v, %v", d, err)
	}
	if _, err := ParseDifficulty("nightmare"); err == nil {
		t.Error("ParseDifficulty accepted nightmare")
	}
	if m, err := ParseMode("multi"); err != nil || m != ModeMulti {
		t.Errorf("ParseMode(multi) = %v, %v", m, err)
	}
	if _, err := ParseMode("coop"); err == nil {
		t.Error("ParseMode accepted coop")
	}
}
