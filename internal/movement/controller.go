package movement

import (
	"github.com/Faultbox/hookshot/internal/physics"
	"github.com/Faultbox/hookshot/internal/schedule"
	"github.com/Faultbox/hookshot/pkg/math"
	"github.com/Faultbox/hookshot/pkg/trajectory"
	"go.uber.org/zap"
)

// Body is the rigid body the controller drives.
type Body interface {
	Position() math.Vec3
	Velocity() math.Vec3
	SetVelocity(v math.Vec3)
	AddForce(f math.Vec3, mode physics.ForceMode)
	SetDrag(d float32)
	SetUseGravity(on bool)
	SetHeightScale(s float32)
}

// Orientation supplies the camera's horizontal basis.
type Orientation interface {
	FlatForward() math.Vec3
	FlatRight() math.Vec3
}

// FieldOfView is the camera's zoom control.
type FieldOfView interface {
	SetFieldOfView(deg float32)
}

// Input is one frame of player intent.
type Input struct {
	Horizontal float32 // strafe axis in [-1, 1]
	Vertical   float32 // forward axis in [-1, 1]

	JumpHeld   bool
	SprintHeld bool
	CrouchHeld bool

	CrouchPressed  bool
	CrouchReleased bool
	GrapplePressed bool
}

// State is a snapshot of the controller.
type State struct {
	Position     math.Vec3
	Velocity     math.Vec3
	Mode         Mode
	Lock         Lock
	MoveSpeed    float32
	Drag         float32
	HeightScale  float32
	Grounded     bool
	OnSlope      bool
	ReadyToJump  bool
	ExitingSlope bool
}

// Options wires a Controller to its collaborators. Camera and Log may be nil.
type Options struct {
	Body        Body
	World       Raycaster
	Scheduler   schedule.Scheduler
	Orientation Orientation
	Camera      FieldOfView
	Gravity     float32
	Tuning      Tuning
	Log         *zap.Logger
}

// Controller turns per-frame input into forces on a body.
type Controller struct {
	tuning  Tuning
	body    Body
	world   Raycaster
	sched   schedule.Scheduler
	orient  Orientation
	fov     FieldOfView
	gravity float32
	log     *zap.Logger

	lock         Lock
	input        Input
	mode         Mode
	moveSpeed    float32
	drag         float32
	heightScale  float32
	grounded     bool
	slope        SlopeInfo
	readyToJump  bool
	exitingSlope bool

	// Grapple launch state.
	launch        *schedule.Group
	velocityToSet math.Vec3
	releaseArmed  bool

	onLaunch  []func(v math.Vec3)
	onRelease []func()
}

// New creates a controller in walking state.
func New(opts Options) *Controller {
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	c := &Controller{
		tuning:      opts.Tuning,
		body:        opts.Body,
		world:       opts.World,
		sched:       opts.Scheduler,
		orient:      opts.Orientation,
		fov:         opts.Camera,
		gravity:     opts.Gravity,
		log:         log,
		mode:        ModeWalking,
		moveSpeed:   opts.Tuning.WalkSpeed,
		heightScale: 1,
		readyToJump: true,
		launch:      schedule.NewGroup(opts.Scheduler),
	}
	return c
}

// Tuning returns the active settings.
func (c *Controller) Tuning() Tuning { return c.tuning }

// SetTuning replaces the settings. Takes effect on the next frame.
func (c *Controller) SetTuning(t Tuning) { c.tuning = t }

// SetGravity sets the gravity magnitude used by the launch solver.
func (c *Controller) SetGravity(g float32) { c.gravity = g }

func (c *Controller) Mode() Mode { return c.mode }

func (c *Controller) Lock() Lock { return c.lock }

func (c *Controller) Position() math.Vec3 { return c.body.Position() }

// State returns a snapshot of the controller and its body.
func (c *Controller) State() State {
	return State{
		Position:     c.body.Position(),
		Velocity:     c.body.Velocity(),
		Mode:         c.mode,
		Lock:         c.lock,
		MoveSpeed:    c.moveSpeed,
		Drag:         c.drag,
		HeightScale:  c.heightScale,
		Grounded:     c.grounded,
		OnSlope:      c.slope.OnSlope,
		ReadyToJump:  c.readyToJump,
		ExitingSlope: c.exitingSlope,
	}
}

// SetFrozen holds the character in place. Unfreezing only clears a freeze;
// any other lock is left alone.
func (c *Controller) SetFrozen(on bool) {
	c.setLockFlag(LockFrozen, on)
}

// SetSwinging hands velocity to swing logic.
func (c *Controller) SetSwinging(on bool) {
	c.setLockFlag(LockSwing, on)
}

func (c *Controller) setLockFlag(l Lock, on bool) {
	switch {
	case on && c.lock != l:
		c.log.Debug("lock", zap.Stringer("from", c.lock), zap.Stringer("to", l))
		c.lock = l
	case !on && c.lock == l:
		c.log.Debug("lock", zap.Stringer("from", c.lock), zap.Stringer("to", LockNone))
		c.lock = LockNone
	}
}

// OnLaunch registers fn to run when a grapple launch velocity is applied.
func (c *Controller) OnLaunch(fn func(v math.Vec3)) {
	c.onLaunch = append(c.onLaunch, fn)
}

// OnTouchRelease registers fn to run when a collision ends a launch.
func (c *Controller) OnTouchRelease(fn func()) {
	c.onRelease = append(c.onRelease, fn)
}

// Update is the per-frame pass: ground check, jump and crouch input, mode
// classification and drag.
func (c *Controller) Update(in Input) {
	c.input = in
	pos := c.body.Position()

	_, c.grounded = c.world.Raycast(pos, math.Down, c.tuning.PlayerHeight*0.5+c.tuning.GroundProbe, c.tuning.GroundMask)

	c.handleInput(in)
	c.updateMode(in)

	if c.grounded && c.lock != LockGrapple {
		c.drag = c.tuning.GroundDrag
	} else {
		c.drag = 0
	}
	c.body.SetDrag(c.drag)
}

func (c *Controller) handleInput(in Input) {
	if in.JumpHeld && c.readyToJump && c.grounded {
		c.readyToJump = false
		c.jump()
		c.sched.ScheduleOnce(c.tuning.JumpCooldown, c.resetJump)
	}

	if in.CrouchPressed {
		c.heightScale = c.tuning.CrouchYScale
		c.body.SetHeightScale(c.heightScale)
		c.body.AddForce(math.Down.Scale(c.tuning.CrouchImpulse), physics.ForceModeImpulse)
	}
	if in.CrouchReleased {
		c.heightScale = 1
		c.body.SetHeightScale(1)
	}
}

func (c *Controller) updateMode(in Input) {
	mode, speed := Classify(c.lock.Conditions(in, c.grounded), c.tuning.Speeds(), c.moveSpeed)
	if mode != c.mode {
		c.log.Debug("mode",
			zap.Stringer("from", c.mode),
			zap.Stringer("to", mode),
			zap.Float32("speed", speed))
	}
	c.mode = mode
	c.moveSpeed = speed

	if mode == ModeFreeze {
		c.body.SetVelocity(math.Zero)
	}
}

func (c *Controller) jump() {
	c.exitingSlope = true

	v := c.body.Velocity()
	c.body.SetVelocity(v.WithY(0))
	c.body.AddForce(math.Up.Scale(c.tuning.JumpForce), physics.ForceModeImpulse)
}

func (c *Controller) resetJump() {
	c.readyToJump = true
	c.exitingSlope = false
}

// CalculateJumpVelocity solves the launch velocity from start to end that
// peaks apexHeight above start.
func (c *Controller) CalculateJumpVelocity(start, end math.Vec3, apexHeight float32) math.Vec3 {
	return trajectory.SolveLaunchVelocity(start, end, apexHeight, c.gravity)
}

// JumpToPosition hands the body to a ballistic launch at target. The
// velocity is applied after the launch delay; restrictions lift on the next
// collision or after the restriction timeout. Returns the solved velocity.
func (c *Controller) JumpToPosition(target math.Vec3, apexHeight float32) math.Vec3 {
	c.lock = LockGrapple
	c.launch.CancelAll()

	c.velocityToSet = c.CalculateJumpVelocity(c.body.Position(), target, apexHeight)
	c.launch.Once(c.tuning.LaunchDelay, c.SetVelocity)
	c.launch.Once(c.tuning.RestrictionTimeout, c.ResetRestrictions)

	c.log.Debug("jump to position",
		vecField("target", target),
		zap.Float32("apex", apexHeight),
		vecField("velocity", c.velocityToSet))
	return c.velocityToSet
}

// SetVelocity applies the pending launch velocity, widens the field of view
// and arms the touch release.
func (c *Controller) SetVelocity() {
	c.releaseArmed = true
	c.body.SetVelocity(c.velocityToSet)
	if c.fov != nil {
		c.fov.SetFieldOfView(c.tuning.GrappleFOV)
	}
	for _, fn := range c.onLaunch {
		fn(c.velocityToSet)
	}
}

// ResetRestrictions ends a launch: clears the grapple lock, restores the
// field of view and drops any launch action still pending.
func (c *Controller) ResetRestrictions() {
	if c.lock == LockGrapple {
		c.lock = LockNone
	}
	c.releaseArmed = false
	c.launch.CancelAll()
	if c.fov != nil {
		c.fov.SetFieldOfView(c.tuning.BaseFOV)
	}
}

// OnCollisionEnter is the body's collision callback. The first contact
// after a launch ends it.
func (c *Controller) OnCollisionEnter(physics.Contact) {
	if !c.releaseArmed {
		return
	}
	c.releaseArmed = false
	c.ResetRestrictions()
	for _, fn := range c.onRelease {
		fn()
	}
}

func vecField(key string, v math.Vec3) zap.Field {
	return zap.Float32s(key, []float32{v.X, v.Y, v.Z})
}
