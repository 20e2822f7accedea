package audio

import (
	"time"

	"github.com/gopxl/beep/v2"
)

// Cue is a sound tied to a grapple event.
type Cue int

const (
	CueFire Cue = iota
	CueMiss
	CueLaunch
	CueLand
)

func (c Cue) String() string {
	switch c {
	case CueFire:
		return "fire"
	case CueMiss:
		return "miss"
	case CueLaunch:
		return "launch"
	case CueLand:
		return "land"
	default:
		return "unknown"
	}
}

var cues = map[Cue][]tone{
	CueFire: {
		{freq: 880, dur: 40 * time.Millisecond, gain: 0.4},
		{freq: 1320, dur: 60 * time.Millisecond, gain: 0.3},
	},
	CueMiss: {
		{freq: 330, dur: 80 * time.Millisecond, gain: 0.35},
		{dur: 30 * time.Millisecond},
		{freq: 220, dur: 120 * time.Millisecond, gain: 0.35},
	},
	CueLaunch: {
		{freq: 440, dur: 50 * time.Millisecond, gain: 0.3},
		{freq: 660, dur: 50 * time.Millisecond, gain: 0.3},
		{freq: 990, dur: 80 * time.Millisecond, gain: 0.25},
	},
	CueLand: {
		{freq: 110, dur: 90 * time.Millisecond, gain: 0.5},
	},
}

// Duration returns how long the cue plays.
func (c Cue) Duration() time.Duration {
	var d time.Duration
	for _, t := range cues[c] {
		d += t.dur
	}
	return d
}

func (c Cue) streamer(sr beep.SampleRate) (beep.Streamer, error) {
	return toneStreamer(sr, cues[c])
}
