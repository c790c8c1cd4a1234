// Package sfx synthesises the game's sound cues with beep and renders them
// to PCM so any audio backend can play them.
package sfx

import (
	"encoding/binary"
	"fmt"
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

// SampleRate is shared by every cue.
const SampleRate = beep.SampleRate(44100)

// Cue names a sound effect.
type Cue uint8

const (
	CueCapture Cue = iota
	CueCombo
	CuePowerUp
	CueGameOver
)

func (c Cue) String() string {
	switch c {
	case CueCapture:
		return "capture"
	case CueCombo:
		return "combo"
	case CuePowerUp:
		return "powerup"
	case CueGameOver:
		return "gameover"
	}
	return fmt.Sprintf("Cue(%d)", uint8(c))
}

// tone returns a sine at freq for d, faded out over its last quarter.
func tone(freq float64, d time.Duration, vol float64) (beep.Streamer, error) {
	sine, err := generators.SineTone(SampleRate, freq)
	if err != nil {
		return nil, fmt.Errorf("sfx: tone %.0fHz: %w", freq, err)
	}
	n := SampleRate.N(d)
	return gain(fade(beep.Take(n, sine), n), vol), nil
}

func gain(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

type release struct {
	s     beep.Streamer
	pos   int
	total int
}

func fade(s beep.Streamer, total int) beep.Streamer {
	return &release{s: s, total: total}
}

func (r *release) Stream(samples [][2]float64) (int, bool) {
	n, ok := r.s.Stream(samples)
	start := r.total * 3 / 4
	for i := 0; i < n; i++ {
		if r.pos >= start && r.total > start {
			v := float64(r.total-r.pos) / float64(r.total-start)
			samples[i][0] *= v
			samples[i][1] *= v
		}
		r.pos++
	}
	return n, ok
}

func (r *release) Err() error { return r.s.Err() }

// Capture is the food pickup blip. It rises in pitch with the combo count.
func Capture(combo int) (beep.Streamer, error) {
	if combo < 1 {
		combo = 1
	}
	steps := min(combo-1, 8)
	freq := 880 * math.Pow(2, float64(steps)/12)
	return tone(freq, 80*time.Millisecond, 0.4)
}

// PowerUp plays an ascending three-note arpeggio.
func PowerUp() (beep.Streamer, error) {
	var notes []beep.Streamer
	for _, f := range []float64{660, 880, 1320} {
		s, err := tone(f, 60*time.Millisecond, 0.4)
		if err != nil {
			return nil, err
		}
		notes = append(notes, s)
	}
	return beep.Seq(notes...), nil
}

// GameOver is a falling pair of low tones with a short gap.
func GameOver() (beep.Streamer, error) {
	hi, err := tone(330, 180*time.Millisecond, 0.5)
	if err != nil {
		return nil, err
	}
	lo, err := tone(165, 320*time.Millisecond, 0.5)
	if err != nil {
		return nil, err
	}
	return beep.Seq(hi, beep.Silence(SampleRate.N(40*time.Millisecond)), lo), nil
}

// For builds the streamer for cue. combo only affects capture cues.
func For(cue Cue, combo int) (beep.Streamer, error) {
	switch cue {
	case CueCapture:
		return Capture(1)
	case CueCombo:
		return Capture(combo)
	case CuePowerUp:
		return PowerUp()
	case CueGameOver:
		return GameOver()
	}
	return nil, fmt.Errorf("sfx: unknown cue %v", cue)
}

// PCM drains s into signed 16-bit little-endian interleaved stereo.
func PCM(s beep.Streamer) ([]byte, error) {
	var out []byte
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		for _, frame := range buf[:n] {
			for _, v := range frame {
				out = binary.LittleEndian.AppendUint16(out, uint16(quantize(v)))
			}
		}
		if !ok {
			break
		}
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("sfx: render: %w", err)
	}
	return out, nil
}

func quantize(v float64) int16 {
	v = math.Max(-1, math.Min(1, v))
	return int16(math.Round(v * math.MaxInt16))
}

// Bank holds pre-rendered PCM for every cue.
type Bank struct {
	pcm   map[Cue][]byte
	combo map[int][]byte
}

// MaxComboPitch caps the number of distinct combo pitches pre-rendered.
const MaxComboPitch = 9

// NewBank renders all cues up front.
func NewBank() (*Bank, error) {
	b := &Bank{pcm: map[Cue][]byte{}, combo: map[int][]byte{}}
	for _, cue := range []Cue{CueCapture, CuePowerUp, CueGameOver} {
		s, err := For(cue, 1)
		if err != nil {
			return nil, err
		}
		if b.pcm[cue], err = PCM(s); err != nil {
			return nil, err
		}
	}
	for c := 2; c <= MaxComboPitch; c++ {
		s, err := Capture(c)
		if err != nil {
			return nil, err
		}
		if b.combo[c], err = PCM(s); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// Bytes returns the PCM for cue. Combo counts beyond MaxComboPitch reuse the top pitch.
func (b *Bank) Bytes(cue Cue, combo int) []byte {
	if cue == CueCombo {
		if combo < 2 {
			return b.pcm[CueCapture]
		}
		return b.combo[min(combo, MaxComboPitch)]
	}
	return b.pcm[cue]
}
