// Package grapple sequences the grappling hook: aim, delay, launch, settle
// and release, with a cooldown between uses.
package grapple

import (
	"time"

	"github.com/Faultbox/hookshot/internal/physics"
	"github.com/Faultbox/hookshot/internal/schedule"
	"github.com/Faultbox/hookshot/pkg/math"
	"go.uber.org/zap"
)

// Tuning holds the grapple settings.
type Tuning struct {
	MaxDistance    float32       `yaml:"max_distance"`
	Delay          time.Duration `yaml:"delay"`
	OvershootY     float32       `yaml:"overshoot_y"`
	Cooldown       time.Duration `yaml:"cooldown"`
	ReleaseTimeout time.Duration `yaml:"release_timeout"`

	// FootOffset is the distance from the body's reference point down to
	// its feet, used to measure how far above the character the hook is.
	FootOffset float32 `yaml:"foot_offset"`

	Mask physics.LayerMask `yaml:"-"`
}

// DefaultTuning returns the stock grapple settings.
func DefaultTuning() Tuning {
	return Tuning{
		MaxDistance:    25,
		Delay:          250 * time.Millisecond,
		OvershootY:     2,
		Cooldown:       time.Second,
		ReleaseTimeout: time.Second,
		FootOffset:     1,
		Mask:           physics.LayerGrappleable,
	}
}

// Session is the sequencer's view of the current grapple.
type Session struct {
	Point             math.Vec3
	TargetAcquired    bool
	Phase             Phase
	CooldownRemaining time.Duration
}

// Mover is the movement side of the grapple.
type Mover interface {
	Position() math.Vec3
	SetFrozen(on bool)
	JumpToPosition(target math.Vec3, apexHeight float32) math.Vec3
	ResetRestrictions()
	OnLaunch(fn func(v math.Vec3))
	OnTouchRelease(fn func())
}

// Aimer supplies the aim ray, normally the camera eye and look direction.
type Aimer interface {
	AimRay() (origin, dir math.Vec3)
}

// Raycaster answers ray queries against the world.
type Raycaster interface {
	Raycast(origin, dir math.Vec3, maxDist float32, mask physics.LayerMask) (physics.Hit, bool)
}

// Options wires a Sequencer. Log may be nil.
type Options struct {
	Mover     Mover
	Aimer     Aimer
	World     Raycaster
	Scheduler schedule.Scheduler
	Tuning    Tuning
	Log       *zap.Logger
}

// Sequencer runs at most one grapple at a time.
type Sequencer struct {
	tuning Tuning
	mover  Mover
	aim    Aimer
	world  Raycaster
	timers *schedule.Group
	log    *zap.Logger

	session   Session
	grappling bool
	observers []func(Session)
}

// New creates an idle sequencer and hooks it to the mover's launch events.
func New(opts Options) *Sequencer {
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	s := &Sequencer{
		tuning: opts.Tuning,
		mover:  opts.Mover,
		aim:    opts.Aimer,
		world:  opts.World,
		timers: schedule.NewGroup(opts.Scheduler),
		log:    log,
	}
	s.mover.OnLaunch(s.launched)
	s.mover.OnTouchRelease(s.touched)
	return s
}

func (s *Sequencer) Tuning() Tuning { return s.tuning }

// SetTuning replaces the settings. A running session keeps the delays it
// already scheduled.
func (s *Sequencer) SetTuning(t Tuning) { s.tuning = t }

// OnPhase registers fn to run after every phase change.
func (s *Sequencer) OnPhase(fn func(Session)) {
	s.observers = append(s.observers, fn)
}

func (s *Sequencer) Session() Session { return s.session }

func (s *Sequencer) Phase() Phase { return s.session.Phase }

func (s *Sequencer) IsGrappling() bool { return s.grappling }

func (s *Sequencer) GrapplePoint() math.Vec3 { return s.session.Point }

// Update is the per-frame pass. The cooldown counts down by dt before a
// press is considered.
func (s *Sequencer) Update(dt time.Duration, pressed bool) {
	if s.session.CooldownRemaining > 0 {
		s.session.CooldownRemaining -= dt
		if s.session.CooldownRemaining < 0 {
			s.session.CooldownRemaining = 0
		}
	}
	if pressed {
		s.StartGrapple()
	}
}

// StartGrapple begins a session. It is rejected while a session runs or
// the cooldown has not expired.
func (s *Sequencer) StartGrapple() bool {
	if s.session.Phase != PhaseIdle || s.session.CooldownRemaining > 0 {
		s.log.Debug("grapple rejected",
			zap.Stringer("phase", s.session.Phase),
			zap.Duration("cooldown", s.session.CooldownRemaining))
		return false
	}

	s.grappling = true
	s.mover.SetFrozen(true)
	s.setPhase(PhaseAiming)

	origin, dir := s.aim.AimRay()
	dir = dir.Normalize()
	if hit, ok := s.world.Raycast(origin, dir, s.tuning.MaxDistance, s.tuning.Mask); ok {
		s.session.Point = hit.Point
		s.session.TargetAcquired = true
		s.timers.Once(s.tuning.Delay, s.execute)
	} else {
		s.session.Point = origin.Add(dir.Scale(s.tuning.MaxDistance))
		s.session.TargetAcquired = false
		s.timers.Once(s.tuning.Delay, s.StopGrapple)
	}

	s.log.Debug("grapple fired",
		zap.Bool("hit", s.session.TargetAcquired),
		zap.Float32s("point", []float32{s.session.Point.X, s.session.Point.Y, s.session.Point.Z}))
	s.setPhase(PhaseDelayed)
	return true
}

// ApexHeight returns the arc height used to reach point from a body at pos.
// A point below the feet still gets the overshoot.
func (s *Sequencer) ApexHeight(pos, point math.Vec3) float32 {
	lowest := pos.Y - s.tuning.FootOffset
	relative := point.Y - lowest
	if relative < 0 {
		return s.tuning.OvershootY
	}
	return relative + s.tuning.OvershootY
}

func (s *Sequencer) execute() {
	s.mover.SetFrozen(false)

	apex := s.ApexHeight(s.mover.Position(), s.session.Point)
	s.mover.JumpToPosition(s.session.Point, apex)
	s.setPhase(PhaseLaunched)

	s.timers.Once(s.tuning.ReleaseTimeout, s.timeout)
}

func (s *Sequencer) launched(math.Vec3) {
	if s.session.Phase == PhaseLaunched {
		s.setPhase(PhaseSettling)
	}
}

func (s *Sequencer) touched() {
	if s.session.Phase == PhaseLaunched || s.session.Phase == PhaseSettling {
		s.log.Debug("grapple released on contact")
		s.StopGrapple()
	}
}

func (s *Sequencer) timeout() {
	s.log.Debug("grapple release timeout")
	s.StopGrapple()
}

// StopGrapple ends the session and starts the cooldown. Pending session
// actions are cancelled and the mover is released. Does nothing when idle.
func (s *Sequencer) StopGrapple() {
	if s.session.Phase == PhaseIdle && !s.grappling {
		return
	}

	s.timers.CancelAll()
	s.mover.SetFrozen(false)
	s.mover.ResetRestrictions()

	s.grappling = false
	s.session.TargetAcquired = false
	s.session.CooldownRemaining = s.tuning.Cooldown
	s.setPhase(PhaseIdle)
}

func (s *Sequencer) setPhase(p Phase) {
	if s.session.Phase == p {
		return
	}
	s.log.Debug("grapple phase", zap.Stringer("from", s.session.Phase), zap.Stringer("to", p))
	s.session.Phase = p
	for _, fn := range s.observers {
		fn(s.session)
	}
}
