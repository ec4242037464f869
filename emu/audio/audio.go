// Package audio sounds the CHIP-8 buzzer through the system speaker.
package audio

import (
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
)

const (
	sampleRate beep.SampleRate = 44100
	toneHz                     = 440
)

// square is an endless square-wave beep.Streamer.
type square struct {
	period int
	pos    int
}

func (s *square) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		v := -0.25
		if s.pos < s.period/2 {
			v = 0.25
		}
		samples[i][0] = v
		samples[i][1] = v
		s.pos = (s.pos + 1) % s.period
	}
	return len(samples), true
}

func (s *square) Err() error {
	return nil
}

// Beeper plays a constant tone whenever the sound timer is running.
type Beeper struct {
	ctrl *beep.Ctrl
}

// NewBeeper initializes the speaker and starts a paused tone.
func NewBeeper() (*Beeper, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return nil, err
	}
	ctrl := &beep.Ctrl{
		Streamer: &square{period: int(sampleRate) / toneHz},
		Paused:   true,
	}
	speaker.Play(ctrl)
	return &Beeper{ctrl: ctrl}, nil
}

// SetPlaying pauses or resumes the tone. Safe to call every frame.
func (b *Beeper) SetPlaying(on bool) {
	speaker.Lock()
	b.ctrl.Paused = !on
	speaker.Unlock()
}
