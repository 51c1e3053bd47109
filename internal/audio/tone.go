package audio

import (
	"log"
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

// Waveform selects the tone source of a note.
type Waveform int

const (
	Sine Waveform = iota
	Square
	Sawtooth
	Noise
)

// Note is one shaped tone in a cue.
type Note struct {
	Freq     float64
	Duration time.Duration
	Wave     Waveform
	Attack   time.Duration
	Release  time.Duration
	Gain     float64
}

// whiteNoise is an endless uniform noise source; beep has no noise generator.
type whiteNoise struct {
	rng *rand.Rand
}

func (w whiteNoise) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		v := w.rng.Float64()*2 - 1
		samples[i][0], samples[i][1] = v, v
	}
	return len(samples), true
}

func (whiteNoise) Err() error { return nil }

// source returns an endless streamer for the note's waveform.
func source(n Note, rate beep.SampleRate) (beep.Streamer, error) {
	switch n.Wave {
	case Square:
		return generators.SquareTone(rate, n.Freq)
	case Sawtooth:
		return generators.SawtoothTone(rate, n.Freq)
	case Noise:
		// 固定种子，同一个提示音每次渲染结果相同
		return whiteNoise{rng: rand.New(rand.NewSource(int64(n.Freq) + 1))}, nil
	default:
		return generators.SineTone(rate, n.Freq)
	}
}

// Tone renders one note as a finite streamer with linear attack and
// release ramps. The ramps are clipped so they never exceed the note.
func Tone(n Note, rate beep.SampleRate) beep.Streamer {
	total := rate.N(n.Duration)
	src, err := source(n, rate)
	if err != nil {
		log.Printf("[Audio] %.1fHz 无法合成，改为静音: %v", n.Freq, err)
		return beep.Silence(total)
	}

	attack := min(rate.N(n.Attack), total)
	release := min(rate.N(n.Release), total-attack)
	sustain := total - attack - release

	var parts []beep.Streamer
	if attack > 0 {
		parts = append(parts, effects.Transition(beep.Take(attack, src), attack, 0, 1, effects.TransitionLinear))
	}
	if sustain > 0 {
		parts = append(parts, beep.Take(sustain, src))
	}
	if release > 0 {
		parts = append(parts, effects.Transition(beep.Take(release, src), release, 1, 0, effects.TransitionLinear))
	}
	return beep.Seq(parts...)
}

// Gain scales a stream linearly. Zero or negative gain silences it.
func Gain(s beep.Streamer, gain float64) beep.Streamer {
	if gain <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(gain)}
}

// Cue plays notes back to back.
func Cue(rate beep.SampleRate, notes ...Note) beep.Streamer {
	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		gain := n.Gain
		if gain == 0 {
			gain = 1
		}
		parts = append(parts, Gain(Tone(n, rate), gain))
	}
	return beep.Seq(parts...)
}

// Chord mixes notes on top of each other.
func Chord(rate beep.SampleRate, notes ...Note) beep.Streamer {
	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		parts = append(parts, Cue(rate, n))
	}
	return beep.Mix(parts...)
}
