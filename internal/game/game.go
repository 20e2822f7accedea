// Package game implements the main loop: it owns the window, renderer,
// input and audio and drives a world.Level with them.
package game

import (
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"
	"go.uber.org/zap"

	"github.com/Faultbox/hookshot/internal/config"
	"github.com/Faultbox/hookshot/internal/engine/audio"
	"github.com/Faultbox/hookshot/internal/engine/debug"
	"github.com/Faultbox/hookshot/internal/engine/input"
	"github.com/Faultbox/hookshot/internal/engine/renderer"
	"github.com/Faultbox/hookshot/internal/engine/window"
	"github.com/Faultbox/hookshot/internal/game/world"
	"github.com/Faultbox/hookshot/internal/grapple"
	"github.com/Faultbox/hookshot/pkg/math"
)

const title = "Hookshot"

// Game is the main game instance.
type Game struct {
	cfg     *config.Config
	cfgPath string
	running bool
	log     *zap.Logger

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	audio    *audio.Manager
	watcher  *config.Watcher
	shots    *debug.Screenshots

	level *world.Level
	lines renderer.LineBatch
}

// New creates a game from the loaded settings. cfgPath is the file the
// settings came from and may be empty.
func New(cfg *config.Config, cfgPath string, log *zap.Logger) (*Game, error) {
	if log == nil {
		log = zap.NewNop()
	}
	log.Info("initializing game",
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
		zap.String("config", cfgPath))

	g := &Game{cfg: cfg, cfgPath: cfgPath, log: log}

	course := world.DefaultCourse()
	if cfg.Course.Path != "" {
		var err error
		if course, err = world.LoadCourse(cfg.Course.Path); err != nil {
			return nil, err
		}
	}

	level, err := world.New(cfg, course, log.Named("world"))
	if err != nil {
		return nil, err
	}
	g.level = level

	bindings, err := input.Resolve(input.Config(cfg.Input))
	if err != nil {
		return nil, fmt.Errorf("input bindings: %w", err)
	}

	// Create window (this also creates OpenGL context)
	g.window, err = window.New(window.Config{
		Title:      title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
	}, log.Named("window"))
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Renderer needs the context from the window.
	w, h := g.window.GetSize()
	g.renderer, err = renderer.New(renderer.Config{
		Width:     w,
		Height:    h,
		LineWidth: cfg.Window.LineWidth,
	}, log.Named("renderer"))
	if err != nil {
		g.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	g.input = input.New(bindings)
	g.input.CaptureMouse(true)
	g.shots = debug.NewScreenshots(cfg.Window.ScreenshotDir, "hookshot")

	if cfg.Audio.Enabled {
		g.audio = audio.New()
		if err := g.audio.Init(); err != nil {
			log.Warn("audio disabled", zap.Error(err))
			g.audio = nil
		} else {
			g.applyAudio(cfg.Audio)
			g.hookCues()
		}
	}

	if cfg.Watch && cfgPath != "" {
		g.watcher, err = config.NewWatcher(cfgPath)
		if err != nil {
			log.Warn("config watch disabled", zap.Error(err))
		} else {
			log.Info("watching config", zap.String("path", cfgPath))
		}
	}

	log.Info("game initialized successfully")
	return g, nil
}

// Run starts the main game loop. A panic in the loop is reported and
// returned as an error.
func (g *Game) Run() (err error) {
	defer func() {
		if r := recover(); r != nil {
			sentry.CurrentHub().Recover(r)
			sentry.Flush(2 * time.Second)
			err = fmt.Errorf("game loop panic: %v", r)
		}
	}()

	g.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	g.log.Info("starting game loop")

	for g.running {
		now := time.Now()
		dt := now.Sub(lastTime)
		lastTime = now

		// 1. Process input
		if g.input.Update() {
			g.running = false
			break
		}
		for _, event := range g.input.Events() {
			if event.Type == input.EventWindowResize {
				g.renderer.Resize(event.Width, event.Height)
			}
		}
		g.level.Look(g.input.MouseDelta())

		// 2. Pick up config edits
		g.pollWatcher()

		// 3. Simulate
		g.level.Frame(dt, g.input.Movement())

		// 4. Render and present
		g.render()
		if g.input.Pressed(input.ActionScreenshot) {
			g.screenshot()
		}
		g.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			g.window.SetTitle(fmt.Sprintf("%s - %s - %d fps", title, g.level.Controller.Mode(), frameCount))
			g.log.Debug("fps", zap.Int("count", frameCount), zap.Duration("dt", dt))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

// Close cleans up game resources.
func (g *Game) Close() {
	g.log.Info("closing game")

	if g.watcher != nil {
		g.watcher.Close()
	}
	if g.audio != nil {
		g.audio.Close()
	}
	if g.renderer != nil {
		g.renderer.Close()
	}
	if g.window != nil {
		g.window.Close()
	}
}

func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case path, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.reload(path)
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			g.log.Warn("config watch error", zap.Error(err))
		default:
			return
		}
	}
}

// reload applies an edited config file. Window, course and logging
// settings need a restart.
func (g *Game) reload(path string) {
	cfg, err := config.LoadFile(path)
	if err != nil {
		g.log.Warn("config reload failed", zap.String("path", path), zap.Error(err))
		return
	}

	g.level.Apply(cfg)
	if bindings, err := input.Resolve(input.Config(cfg.Input)); err != nil {
		g.log.Warn("keeping old bindings", zap.Error(err))
	} else {
		g.input.SetBindings(bindings)
	}
	if g.audio != nil {
		g.applyAudio(cfg.Audio)
	}

	g.cfg = cfg
	g.log.Info("config reloaded", zap.String("path", path))
}

func (g *Game) applyAudio(c config.AudioConfig) {
	g.audio.SetMasterVolume(float64(c.MasterVolume))
	g.audio.SetSFXVolume(float64(c.SFXVolume))
	g.audio.SetMuted(c.Muted)
}

// hookCues plays a sound for each grapple event.
func (g *Game) hookCues() {
	g.level.Grapple.OnPhase(func(s grapple.Session) {
		if s.Phase != grapple.PhaseDelayed {
			return
		}
		if s.TargetAcquired {
			g.play(audio.CueFire)
		} else {
			g.play(audio.CueMiss)
		}
	})
	g.level.Controller.OnLaunch(func(math.Vec3) { g.play(audio.CueLaunch) })
	g.level.Controller.OnTouchRelease(func() { g.play(audio.CueLand) })
}

func (g *Game) play(c audio.Cue) {
	if err := g.audio.Play(c); err != nil {
		g.log.Debug("cue failed", zap.Stringer("cue", c), zap.Error(err))
	}
}

func (g *Game) screenshot() {
	pixels, w, h := g.renderer.ReadPixels()
	name, err := g.shots.SaveRGBA(pixels, w, h)
	if err != nil {
		g.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	g.log.Info("screenshot saved", zap.String("path", name))
}

func (g *Game) render() {
	cam := g.level.Camera
	viewProj := cam.Projection(g.window.AspectRatio()).Mul(cam.ViewMatrix())

	buildScene(&g.lines, g.level)

	g.renderer.Begin(viewProj)
	g.renderer.DrawLines(&g.lines)
	g.renderer.End()
}
