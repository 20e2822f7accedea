// Package audio plays the short procedural cues that accompany the grapple.
package audio

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/generators"
	"github.com/gopxl/beep/v2/speaker"
)

// DefaultSampleRate is the default sample rate for audio playback.
const DefaultSampleRate = beep.SampleRate(44100)

// Manager mixes cues onto the speaker.
type Manager struct {
	mu sync.RWMutex

	initialized bool
	sampleRate  beep.SampleRate

	// Volume settings (0.0 to 1.0)
	masterVolume float64
	sfxVolLevel  float64
	muted        bool

	mixer *beep.Mixer
}

// New creates a new audio manager.
func New() *Manager {
	return &Manager{
		sampleRate:   DefaultSampleRate,
		masterVolume: 1.0,
		sfxVolLevel:  1.0,
		mixer:        &beep.Mixer{},
	}
}

// Init opens the speaker.
func (m *Manager) Init() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}

	if err := speaker.Init(m.sampleRate, m.sampleRate.N(time.Second/30)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(m.mixer)

	m.initialized = true
	return nil
}

// Close shuts down the audio system.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	m.initialized = false
}

// IsInitialized returns whether the audio system is initialized.
func (m *Manager) IsInitialized() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.initialized
}

// SetMasterVolume sets the master volume (0.0 to 1.0).
func (m *Manager) SetMasterVolume(vol float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.masterVolume = clamp(vol, 0, 1)
}

// SetSFXVolume sets the cue volume (0.0 to 1.0).
func (m *Manager) SetSFXVolume(vol float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sfxVolLevel = clamp(vol, 0, 1)
}

// SetMuted silences new cues.
func (m *Manager) SetMuted(muted bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.muted = muted
}

// GetMasterVolume returns the master volume.
func (m *Manager) GetMasterVolume() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.masterVolume
}

// GetSFXVolume returns the cue volume.
func (m *Manager) GetSFXVolume() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sfxVolLevel
}

// Play starts a cue. Muted or silent cues are dropped.
func (m *Manager) Play(c Cue) error {
	m.mu.RLock()
	initialized := m.initialized
	vol := m.masterVolume * m.sfxVolLevel
	muted := m.muted
	sr := m.sampleRate
	m.mu.RUnlock()

	if !initialized {
		return fmt.Errorf("audio not initialized")
	}
	if muted || vol <= 0 {
		return nil
	}

	s, err := c.streamer(sr)
	if err != nil {
		return fmt.Errorf("cue %s: %w", c, err)
	}

	speaker.Lock()
	m.mixer.Add(&effects.Volume{
		Streamer: s,
		Base:     10,
		Volume:   volumeToDb(vol) / 20,
	})
	speaker.Unlock()
	return nil
}

// volumeToDb converts a 0-1 volume to decibels: 1 is 0dB, 0.5 about -6dB.
func volumeToDb(vol float64) float64 {
	if vol <= 0 {
		return -100
	}
	return 20 * math.Log10(vol)
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// tone is one step of a cue.
type tone struct {
	freq float64 // Hz, 0 is a rest
	dur  time.Duration
	gain float64 // linear amplitude
}

// silence streams zeros.
type silence struct{}

func (silence) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		samples[i] = [2]float64{}
	}
	return len(samples), true
}

func (silence) Err() error { return nil }

// gain scales a streamer linearly.
type gain struct {
	s beep.Streamer
	g float64
}

func (g gain) Stream(samples [][2]float64) (int, bool) {
	n, ok := g.s.Stream(samples)
	for i := range samples[:n] {
		samples[i][0] *= g.g
		samples[i][1] *= g.g
	}
	return n, ok
}

func (g gain) Err() error { return g.s.Err() }

func toneStreamer(sr beep.SampleRate, tones []tone) (beep.Streamer, error) {
	parts := make([]beep.Streamer, 0, len(tones))
	for _, t := range tones {
		var src beep.Streamer = silence{}
		if t.freq > 0 {
			sine, err := generators.SineTone(sr, t.freq)
			if err != nil {
				return nil, err
			}
			src = gain{s: sine, g: t.gain}
		}
		parts = append(parts, beep.Take(sr.N(t.dur), src))
	}
	return beep.Seq(parts...), nil
}
