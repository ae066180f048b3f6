package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Wave is an oscillator shape.
type Wave int

const (
	Sine Wave = iota
	Square
	Noise
)

// tone is a finite oscillator whose pitch slides linearly from freq to end.
type tone struct {
	rate  beep.SampleRate
	wave  Wave
	freq  float64
	end   float64
	total int
	pos   int
	phase float64
	rng   *rand.Rand
}

// Tone returns a streamer that plays for d and then drains.
func Tone(rate beep.SampleRate, wave Wave, freq, end float64, d time.Duration) beep.Streamer {
	return &tone{
		rate:  rate,
		wave:  wave,
		freq:  freq,
		end:   end,
		total: rate.N(d),
		rng:   rand.New(rand.NewSource(int64(freq*1000 + end))),
	}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if t.pos >= t.total {
			return i, i > 0
		}
		var v float64
		switch t.wave {
		case Sine:
			v = math.Sin(2 * math.Pi * t.phase)
		case Square:
			v = 1
			if t.phase >= 0.5 {
				v = -1
			}
		case Noise:
			v = t.rng.Float64()*2 - 1
		}
		// Linear attack/decay envelope with a 5ms attack.
		att := t.rate.N(5 * time.Millisecond)
		env := 1 - float64(t.pos)/float64(t.total)
		if t.pos < att && att > 0 {
			env = math.Min(env, float64(t.pos)/float64(att))
		}
		v *= env

		samples[i][0] = v
		samples[i][1] = v

		frac := float64(t.pos) / float64(t.total)
		f := t.freq + (t.end-t.freq)*frac
		t.phase += f / float64(t.rate)
		t.phase -= math.Floor(t.phase)
		t.pos++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }

// gain scales s by a linear volume.
func gain(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}
