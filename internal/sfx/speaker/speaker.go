// Package speaker plays sfx cues on the default audio device. It links the
// platform audio backend, so only the terminal frontend imports it.
package speaker

import (
	"fmt"
	"time"

	beepspeaker "github.com/gopxl/beep/speaker"

	"neon-slither/internal/sfx"
)

// Speaker plays cues through beep's speaker.
type Speaker struct{}

// New initialises the audio device with a 100ms buffer.
func New() (*Speaker, error) {
	if err := beepspeaker.Init(sfx.SampleRate, sfx.SampleRate.N(time.Second/10)); err != nil {
		return nil, fmt.Errorf("speaker: init: %w", err)
	}
	return &Speaker{}, nil
}

// Play starts cue without waiting for it to finish. A nil Speaker is silent.
func (s *Speaker) Play(cue sfx.Cue, combo int) {
	if s == nil {
		return
	}
	st, err := sfx.For(cue, combo)
	if err != nil {
		return
	}
	beepspeaker.Play(st)
}

// Close releases the audio device.
func (s *Speaker) Close() {
	if s != nil {
		beepspeaker.Close()
	}
}
