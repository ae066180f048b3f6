// Package audio plays short synthesized cues for gameplay events.
package audio

import (
	"hero-blaster/internal/sim"
	"log/slog"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// Cue is one gameplay sound.
type Cue int

const (
	CueShot Cue = iota
	CueKill
	CueHit
	CueLevelUp
	CueBossSpawn
	CueBossHit
	CueBossDown
	CueGameOver
)

func (c Cue) String() string {
	switch c {
	case CueShot:
		return "shot"
	case CueKill:
		return "kill"
	case CueHit:
		return "hit"
	case CueLevelUp:
		return "level-up"
	case CueBossSpawn:
		return "boss-spawn"
	case CueBossHit:
		return "boss-hit"
	case CueBossDown:
		return "boss-down"
	case CueGameOver:
		return "game-over"
	}
	return "unknown"
}

// Streamer synthesizes the cue at rate. The result is finite.
func (c Cue) Streamer(rate beep.SampleRate) beep.Streamer {
	ms := time.Millisecond
	switch c {
	case CueShot:
		return gain(Tone(rate, Square, 880, 440, 60*ms), 0.08)
	case CueKill:
		return gain(Tone(rate, Noise, 0, 0, 120*ms), 0.2)
	case CueHit:
		return gain(Tone(rate, Square, 160, 70, 220*ms), 0.25)
	case CueLevelUp:
		return beep.Seq(
			gain(Tone(rate, Sine, 660, 660, 70*ms), 0.2),
			gain(Tone(rate, Sine, 990, 990, 110*ms), 0.2),
		)
	case CueBossSpawn:
		return gain(Tone(rate, Square, 90, 140, 500*ms), 0.2)
	case CueBossHit:
		return gain(Tone(rate, Sine, 300, 240, 40*ms), 0.12)
	case CueBossDown:
		return beep.Mix(
			gain(Tone(rate, Noise, 0, 0, 600*ms), 0.25),
			gain(Tone(rate, Sine, 220, 55, 600*ms), 0.3),
		)
	case CueGameOver:
		return gain(Tone(rate, Sine, 440, 110, 900*ms), 0.25)
	}
	return beep.Silence(0)
}

// Cues maps one simulation step onto the sounds it should make.
func Cues(r sim.Report) []Cue {
	var out []Cue
	if r.ShotsFired > 0 {
		out = append(out, CueShot)
	}
	if r.Kills > 0 {
		out = append(out, CueKill)
	}
	if r.DamageTaken > 0 {
		out = append(out, CueHit)
	}
	if r.LevelUps > 0 {
		out = append(out, CueLevelUp)
	}
	if r.BossSpawned {
		out = append(out, CueBossSpawn)
	}
	if r.BossKilled {
		out = append(out, CueBossDown)
	} else if r.BossHits > 0 {
		out = append(out, CueBossHit)
	}
	if r.RunEnded {
		out = append(out, CueGameOver)
	}
	return out
}

// Player mixes cues onto the speaker. The zero state is silent; a Player
// whose speaker failed to open drops every cue.
type Player struct {
	mu      sync.Mutex
	mixer   *beep.Mixer
	enabled bool
	live    bool
}

// NewPlayer returns a player. When enabled is false Init does nothing.
func NewPlayer(enabled bool) *Player {
	return &Player{mixer: &beep.Mixer{}, enabled: enabled}
}

// Init opens the speaker. A failure disables sound and is returned for
// logging only.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.enabled || p.live {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		p.enabled = false
		return err
	}
	speaker.Play(p.mixer)
	p.live = true
	slog.Info("audio ready", "rate", int(sampleRate))
	return nil
}

// Enabled reports whether cues reach the speaker.
func (p *Player) Enabled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.live
}

// Play queues cues on the mixer.
func (p *Player) Play(cues ...Cue) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.live || len(cues) == 0 {
		return
	}
	speaker.Lock()
	for _, c := range cues {
		p.mixer.Add(c.Streamer(sampleRate))
	}
	speaker.Unlock()
}

// Report plays the cues for one simulation step.
func (p *Player) Report(r sim.Report) { p.Play(Cues(r)...) }

// Close silences everything still playing.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.live {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	p.live = false
}
