// Package world runs a playable course: the physics world, the character
// body and the controllers that drive it, stepped at a fixed rate.
package world

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/hookshot/internal/config"
	"github.com/Faultbox/hookshot/internal/engine/camera"
	"github.com/Faultbox/hookshot/internal/grapple"
	"github.com/Faultbox/hookshot/internal/movement"
	"github.com/Faultbox/hookshot/internal/physics"
	"github.com/Faultbox/hookshot/internal/schedule"
	"github.com/Faultbox/hookshot/pkg/math"
	"github.com/Faultbox/hookshot/pkg/trajectory"
)

const (
	// KillHeight is the depth below which the character respawns.
	KillHeight = -50

	// ArcSamples is the number of segments in the launch preview.
	ArcSamples = 32

	bodyRadius = 0.4
	bodyMass   = 1
)

// Level is one course with the character in it.
type Level struct {
	Course     *Course
	Physics    *physics.World
	Body       *physics.Body
	Camera     *camera.FirstPerson
	Timers     *schedule.Timers
	Controller *movement.Controller
	Grapple    *grapple.Sequencer

	step     time.Duration
	maxSteps int
	accum    time.Duration
	arc      []math.Vec3
	log      *zap.Logger
}

// New builds a level from a course and the current settings.
func New(cfg *config.Config, course *Course, log *zap.Logger) (*Level, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if course == nil {
		course = DefaultCourse()
	}

	l := &Level{
		Course: course,
		Timers: schedule.New(),
		log:    log,
	}
	l.setPhysics(cfg.Physics)

	l.Physics = physics.NewWorld(cfg.Physics.Gravity, log.Named("physics"))
	if err := course.Build(l.Physics); err != nil {
		return nil, fmt.Errorf("build course %q: %w", course.Name, err)
	}

	l.Body = physics.NewBody(course.SpawnPoint(), bodyRadius, cfg.Movement.PlayerHeight, bodyMass)
	l.Physics.AddBody(l.Body)

	l.Camera = camera.New(cfg.Camera, cfg.Movement.BaseFOV)
	l.Camera.Follow(l.Body.Position(), l.Body.HeightScale())

	l.Controller = movement.New(movement.Options{
		Body:        l.Body,
		World:       l.Physics,
		Scheduler:   l.Timers,
		Orientation: l.Camera,
		Camera:      l.Camera,
		Gravity:     cfg.Physics.Gravity,
		Tuning:      cfg.Movement,
		Log:         log.Named("movement"),
	})
	l.Body.OnCollisionEnter(l.Controller.OnCollisionEnter)

	l.Grapple = grapple.New(grapple.Options{
		Mover:     l.Controller,
		Aimer:     l.Camera,
		World:     l.Physics,
		Scheduler: l.Timers,
		Tuning:    cfg.Grapple,
		Log:       log.Named("grapple"),
	})
	l.Grapple.OnPhase(l.trackArc)

	log.Info("level ready",
		zap.String("course", course.Name),
		zap.Int("colliders", len(l.Physics.Colliders())))
	return l, nil
}

// Frame advances the level by one rendered frame of length dt and returns
// the number of physics steps taken. Steps beyond the per-frame cap are
// dropped. The clock moves before input is read, so work scheduled this
// frame is timed from this frame's end.
func (l *Level) Frame(dt time.Duration, in movement.Input) int {
	l.Timers.Advance(dt)
	l.Controller.Update(in)
	l.Grapple.Update(dt, in.GrapplePressed)

	l.accum += dt
	steps := 0
	for l.accum >= l.step && steps < l.maxSteps {
		l.Controller.FixedUpdate()
		l.Physics.Step(float32(l.step.Seconds()))
		l.Controller.SpeedControl()
		l.accum -= l.step
		steps++
	}
	if l.accum >= l.step {
		l.log.Debug("simulation behind, dropping time", zap.Duration("dropped", l.accum))
		l.accum = 0
	}

	if l.Body.Position().Y < KillHeight {
		l.Respawn()
	}

	l.Camera.Follow(l.Body.Position(), l.Body.HeightScale())
	l.Camera.Update(dt)
	return steps
}

// Look turns the camera by a relative mouse motion.
func (l *Level) Look(dx, dy float32) {
	l.Camera.HandleMouse(dx, dy)
}

// Respawn ends any grapple and puts the character back at the spawn point.
func (l *Level) Respawn() {
	l.log.Info("respawn", zap.Float32("y", l.Body.Position().Y))
	l.Grapple.StopGrapple()
	l.Body.SetPosition(l.Course.SpawnPoint())
	l.Body.SetVelocity(math.Zero)
	l.accum = 0
}

// Apply hands reloaded tuning to the running level. Body dimensions and the
// course keep their values until restart.
func (l *Level) Apply(cfg *config.Config) {
	l.Controller.SetTuning(cfg.Movement)
	l.Controller.SetGravity(cfg.Physics.Gravity)
	l.Grapple.SetTuning(cfg.Grapple)
	l.Camera.SetConfig(cfg.Camera)
	l.Physics.SetGravity(cfg.Physics.Gravity)
	l.setPhysics(cfg.Physics)
	l.log.Info("tuning applied")
}

// Arc returns the predicted path of the current launch, or nil.
func (l *Level) Arc() []math.Vec3 { return l.arc }

func (l *Level) setPhysics(p config.PhysicsConfig) {
	l.step = p.FixedStep
	l.maxSteps = p.MaxStepsPerFrame
	if l.maxSteps < 1 {
		l.maxSteps = 1
	}
}

func (l *Level) trackArc(s grapple.Session) {
	switch s.Phase {
	case grapple.PhaseLaunched:
		start := l.Body.Position()
		apex := l.Grapple.ApexHeight(start, s.Point)
		l.arc = trajectory.Points(start, s.Point, apex, -l.Physics.Gravity().Y, ArcSamples)
	case grapple.PhaseIdle:
		l.arc = nil
	}
}
