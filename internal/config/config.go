// Package config handles game configuration loading and management.
package config

import (
	"time"

	"github.com/Faultbox/hookshot/internal/engine/camera"
	"github.com/Faultbox/hookshot/internal/grapple"
	"github.com/Faultbox/hookshot/internal/movement"
)

// Config holds all game settings.
type Config struct {
	Window   WindowConfig    `yaml:"window"`
	Audio    AudioConfig     `yaml:"audio"`
	Movement movement.Tuning `yaml:"movement"`
	Grapple  grapple.Tuning  `yaml:"grapple"`
	Camera   camera.Config   `yaml:"camera"`
	Input    InputConfig     `yaml:"input"`
	Physics  PhysicsConfig   `yaml:"physics"`
	Logging  LoggingConfig   `yaml:"logging"`
	Course   CourseConfig    `yaml:"course"`

	// Watch reloads tuning when the config file changes.
	Watch bool `yaml:"watch"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	Fullscreen bool    `yaml:"fullscreen"`
	VSync      bool    `yaml:"vsync"`
	LineWidth  float32 `yaml:"line_width"`

	// ScreenshotDir receives PNG captures of the view.
	ScreenshotDir string `yaml:"screenshot_dir"`
}

// AudioConfig holds audio settings.
type AudioConfig struct {
	Enabled      bool    `yaml:"enabled"`
	MasterVolume float32 `yaml:"master_volume"`
	SFXVolume    float32 `yaml:"sfx_volume"`
	Muted        bool    `yaml:"muted"`
}

// InputConfig maps actions to SDL scancode names or mouse_left,
// mouse_right and mouse_middle.
type InputConfig struct {
	Forward    string `yaml:"forward"`
	Back       string `yaml:"back"`
	Left       string `yaml:"left"`
	Right      string `yaml:"right"`
	Jump       string `yaml:"jump"`
	Sprint     string `yaml:"sprint"`
	Crouch     string `yaml:"crouch"`
	Grapple    string `yaml:"grapple"`
	Screenshot string `yaml:"screenshot"`
}

// PhysicsConfig holds simulation settings.
type PhysicsConfig struct {
	Gravity          float32       `yaml:"gravity"`
	FixedStep        time.Duration `yaml:"fixed_step"`
	MaxStepsPerFrame int           `yaml:"max_steps_per_frame"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level     string `yaml:"level"`
	LogFile   string `yaml:"log_file"`
	SentryDSN string `yaml:"sentry_dsn"`
}

// CourseConfig selects the level layout. An empty path uses the built-in
// course.
type CourseConfig struct {
	Path string `yaml:"path"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Width:     1280,
			Height:    720,
			VSync:     true,
			LineWidth: 1,

			ScreenshotDir: "screenshots",
		},
		Audio: AudioConfig{
			Enabled:      true,
			MasterVolume: 0.8,
			SFXVolume:    0.8,
		},
		Movement: movement.DefaultTuning(),
		Grapple:  grapple.DefaultTuning(),
		Camera:   camera.DefaultConfig(),
		Input: InputConfig{
			Forward:    "W",
			Back:       "S",
			Left:       "A",
			Right:      "D",
			Jump:       "Space",
			Sprint:     "Left Shift",
			Crouch:     "Left Ctrl",
			Grapple:    "mouse_right",
			Screenshot: "F12",
		},
		Physics: PhysicsConfig{
			Gravity:          9.81,
			FixedStep:        20 * time.Millisecond,
			MaxStepsPerFrame: 5,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
