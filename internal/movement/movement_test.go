package movement

import (
	"testing"
	"time"

	"github.com/chewxy/math32"

	"github.com/Faultbox/hookshot/internal/physics"
	"github.com/Faultbox/hookshot/internal/schedule"
	"github.com/Faultbox/hookshot/pkg/math"
	"github.com/Faultbox/hookshot/pkg/trajectory"
)

const eps = 1e-4

type appliedForce struct {
	f    math.Vec3
	mode physics.ForceMode
}

type fakeBody struct {
	pos     math.Vec3
	vel     math.Vec3
	forces  []appliedForce
	drag    float32
	gravity bool
	scale   float32
}

func (b *fakeBody) Position() math.Vec3      { return b.pos }
func (b *fakeBody) Velocity() math.Vec3      { return b.vel }
func (b *fakeBody) SetVelocity(v math.Vec3)  { b.vel = v }
func (b *fakeBody) SetDrag(d float32)        { b.drag = d }
func (b *fakeBody) SetUseGravity(on bool)    { b.gravity = on }
func (b *fakeBody) SetHeightScale(s float32) { b.scale = s }
func (b *fakeBody) AddForce(f math.Vec3, mode physics.ForceMode) {
	b.forces = append(b.forces, appliedForce{f, mode})
}

// fakeWorld answers every ray with the same hit, or misses when hit is nil.
type fakeWorld struct {
	hit *physics.Hit
}

func (w *fakeWorld) Raycast(origin, dir math.Vec3, maxDist float32, mask physics.LayerMask) (physics.Hit, bool) {
	if w.hit == nil {
		return physics.Hit{}, false
	}
	return *w.hit, true
}

type fakeOrientation struct {
	forward, right math.Vec3
}

func (o fakeOrientation) FlatForward() math.Vec3 { return o.forward }
func (o fakeOrientation) FlatRight() math.Vec3   { return o.right }

type fakeFOV struct {
	calls []float32
}

func (f *fakeFOV) SetFieldOfView(deg float32) { f.calls = append(f.calls, deg) }

func (f *fakeFOV) last() float32 {
	if len(f.calls) == 0 {
		return 0
	}
	return f.calls[len(f.calls)-1]
}

type rig struct {
	c      *Controller
	body   *fakeBody
	world  *fakeWorld
	timers *schedule.Timers
	fov    *fakeFOV
}

func newRig(normal *math.Vec3) *rig {
	r := &rig{
		body:   &fakeBody{pos: math.Vec3{Y: 1}, gravity: true, scale: 1},
		world:  &fakeWorld{},
		timers: schedule.New(),
		fov:    &fakeFOV{},
	}
	if normal != nil {
		r.world.hit = &physics.Hit{Normal: *normal, Distance: 1}
	}
	r.c = New(Options{
		Body:        r.body,
		World:       r.world,
		Scheduler:   r.timers,
		Orientation: fakeOrientation{forward: math.Vec3{X: 1}, right: math.Vec3{Z: -1}},
		Camera:      r.fov,
		Gravity:     9.81,
		Tuning:      DefaultTuning(),
	})
	return r
}

func slopeNormal(deg float32) math.Vec3 {
	// Surface rising along +X.
	rad := deg * math.Deg2Rad
	return math.Vec3{X: -math32.Sin(rad), Y: math32.Cos(rad)}
}

func TestClassify(t *testing.T) {
	speeds := DefaultTuning().Speeds()

	tests := []struct {
		name      string
		cond      Conditions
		prev      float32
		wantMode  Mode
		wantSpeed float32
	}{
		{"freeze", Conditions{Freeze: true, Grounded: true}, 7, ModeFreeze, 0},
		{"freeze beats grapple", Conditions{Freeze: true, ActiveGrapple: true}, 7, ModeFreeze, 0},
		{"grapple", Conditions{ActiveGrapple: true, Swinging: true}, 7, ModeGrappling, speeds.Sprint},
		{"swing", Conditions{Swinging: true, CrouchHeld: true}, 7, ModeSwinging, speeds.Swing},
		{"crouch in air", Conditions{CrouchHeld: true}, 7, ModeCrouching, speeds.Crouch},
		{"crouch beats sprint", Conditions{CrouchHeld: true, SprintHeld: true, Grounded: true}, 7, ModeCrouching, speeds.Crouch},
		{"sprint", Conditions{SprintHeld: true, Grounded: true}, 7, ModeSprinting, speeds.Sprint},
		{"walk", Conditions{Grounded: true}, 10, ModeWalking, speeds.Walk},
		{"air keeps previous", Conditions{}, 10, ModeAir, 10},
		{"sprint in air", Conditions{SprintHeld: true}, 3.5, ModeAir, 3.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mode, speed := Classify(tt.cond, speeds, tt.prev)
			if mode != tt.wantMode || speed != tt.wantSpeed {
				t.Errorf("Classify() = (%v, %v), want (%v, %v)", mode, speed, tt.wantMode, tt.wantSpeed)
			}
		})
	}
}

func TestPriority(t *testing.T) {
	want := []Mode{ModeFreeze, ModeGrappling, ModeSwinging, ModeCrouching, ModeSprinting, ModeWalking, ModeAir}
	got := Priority()
	if len(got) != len(want) {
		t.Fatalf("Priority() len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Priority()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestLockConditions(t *testing.T) {
	tests := []struct {
		lock                      Lock
		freeze, grapple, swinging bool
	}{
		{LockNone, false, false, false},
		{LockFrozen, true, false, false},
		{LockGrapple, false, true, false},
		{LockSwing, false, false, true},
	}

	for _, tt := range tests {
		c := tt.lock.Conditions(Input{SprintHeld: true}, true)
		if c.Freeze != tt.freeze || c.ActiveGrapple != tt.grapple || c.Swinging != tt.swinging {
			t.Errorf("%v.Conditions() = %+v", tt.lock, c)
		}
		if !c.SprintHeld || !c.Grounded {
			t.Errorf("%v.Conditions() dropped input: %+v", tt.lock, c)
		}
	}
}

func TestProbeSlope(t *testing.T) {
	tests := []struct {
		name    string
		normal  *math.Vec3
		onSlope bool
	}{
		{"flat", &math.Up, false},
		{"walkable", ptr(slopeNormal(30)), true},
		{"shallow", ptr(slopeNormal(5)), true},
		{"steep", ptr(slopeNormal(60)), false},
		{"nothing below", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := &fakeWorld{}
			if tt.normal != nil {
				w.hit = &physics.Hit{Normal: *tt.normal}
			}
			info := ProbeSlope(w, math.Zero, 1.3, physics.LayerGround, 40)
			if info.OnSlope != tt.onSlope {
				t.Errorf("ProbeSlope().OnSlope = %v, want %v (angle %v)", info.OnSlope, tt.onSlope, info.Angle)
			}
		})
	}
}

func TestProjectOntoSlope(t *testing.T) {
	dirs := []math.Vec3{{X: 1}, {Z: 1}, {X: 1, Z: 1}, {X: -0.3, Z: 0.8}}
	for _, deg := range []float32{5, 20, 35} {
		n := slopeNormal(deg)
		for _, d := range dirs {
			got := ProjectOntoSlope(d, n)
			if dot := got.Dot(n); !math.ApproxEqual(dot, 0, eps) {
				t.Errorf("ProjectOntoSlope(%v, %v°) · n = %v, want 0", d, deg, dot)
			}
			if l := got.Length(); !math.ApproxEqual(l, 1, eps) {
				t.Errorf("ProjectOntoSlope(%v, %v°) length = %v, want 1", d, deg, l)
			}
		}
	}
}

func TestClampVelocity(t *testing.T) {
	tests := []struct {
		name    string
		v       math.Vec3
		speed   float32
		onSlope bool
		want    math.Vec3
	}{
		{"under cap", math.Vec3{X: 3, Y: -20}, 7, false, math.Vec3{X: 3, Y: -20}},
		{"flat keeps fall", math.Vec3{X: 6, Y: -20, Z: 8}, 5, false, math.Vec3{X: 3, Y: -20, Z: 4}},
		{"slope full vector", math.Vec3{X: 6, Y: 8}, 5, true, math.Vec3{X: 3, Y: 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClampVelocity(tt.v, tt.speed, tt.onSlope)
			if !vecApprox(got, tt.want) {
				t.Errorf("ClampVelocity() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFixedUpdateSlopeDeflectsForce(t *testing.T) {
	n := slopeNormal(30)
	r := newRig(&n)
	r.c.Update(Input{Vertical: 1})
	r.c.FixedUpdate()

	if len(r.body.forces) != 1 {
		t.Fatalf("forces = %d, want 1", len(r.body.forces))
	}
	f := r.body.forces[0].f
	if dot := f.Normalize().Dot(n); !math.ApproxEqual(dot, 0, eps) {
		t.Errorf("force · normal = %v, want 0", dot)
	}
	if want := r.c.Tuning().WalkSpeed * r.c.Tuning().SlopeForce; !math.ApproxEqual(f.Length(), want, 1e-3) {
		t.Errorf("force magnitude = %v, want %v", f.Length(), want)
	}
	if r.body.gravity {
		t.Error("gravity left on while on a slope")
	}
}

func TestFixedUpdateSlopeAdhesion(t *testing.T) {
	n := slopeNormal(30)
	r := newRig(&n)
	r.body.vel = math.Vec3{X: 2, Y: 1}
	r.c.Update(Input{Vertical: 1})
	r.c.FixedUpdate()

	if len(r.body.forces) != 2 {
		t.Fatalf("forces = %d, want 2", len(r.body.forces))
	}
	if got := r.body.forces[1].f; !vecApprox(got, math.Vec3{Y: -80}) {
		t.Errorf("adhesion force = %v, want (0,-80,0)", got)
	}
}

func TestFixedUpdateFlatPath(t *testing.T) {
	tests := []struct {
		name   string
		normal *math.Vec3
		want   math.Vec3
	}{
		{"flat ground", &math.Up, math.Vec3{X: 70}},
		{"too steep", ptr(slopeNormal(60)), math.Vec3{X: 70}},
		{"airborne", nil, math.Vec3{X: 28}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRig(tt.normal)
			r.c.moveSpeed = 7
			r.c.Update(Input{Vertical: 1})
			r.c.FixedUpdate()

			if len(r.body.forces) != 1 {
				t.Fatalf("forces = %d, want 1", len(r.body.forces))
			}
			if got := r.body.forces[0]; !vecApprox(got.f, tt.want) || got.mode != physics.ForceModeForce {
				t.Errorf("force = %v %v, want %v force", got.f, got.mode, tt.want)
			}
			if !r.body.gravity {
				t.Error("gravity off away from a slope")
			}
		})
	}
}

func TestUpdateDrag(t *testing.T) {
	r := newRig(&math.Up)
	r.c.Update(Input{})
	if r.body.drag != r.c.Tuning().GroundDrag {
		t.Errorf("grounded drag = %v, want %v", r.body.drag, r.c.Tuning().GroundDrag)
	}

	r.c.JumpToPosition(math.Vec3{X: 10}, 3)
	r.c.Update(Input{})
	if r.body.drag != 0 {
		t.Errorf("drag during grapple = %v, want 0", r.body.drag)
	}

	r.world.hit = nil
	r.c.ResetRestrictions()
	r.c.Update(Input{})
	if r.body.drag != 0 {
		t.Errorf("airborne drag = %v, want 0", r.body.drag)
	}
}

func TestFreezeZeroesVelocity(t *testing.T) {
	r := newRig(&math.Up)
	r.body.vel = math.Vec3{X: 5, Y: 2}
	r.c.SetFrozen(true)
	r.c.Update(Input{Vertical: 1, SprintHeld: true})

	if r.c.Mode() != ModeFreeze {
		t.Errorf("Mode() = %v, want %v", r.c.Mode(), ModeFreeze)
	}
	if r.body.vel != math.Zero {
		t.Errorf("velocity = %v, want zero", r.body.vel)
	}

	r.c.SetFrozen(false)
	r.c.Update(Input{SprintHeld: true})
	if r.c.Mode() != ModeSprinting {
		t.Errorf("Mode() after unfreeze = %v, want %v", r.c.Mode(), ModeSprinting)
	}
}

func TestSetFrozenLeavesOtherLocks(t *testing.T) {
	r := newRig(&math.Up)
	r.c.SetSwinging(true)
	r.c.SetFrozen(false)
	if r.c.Lock() != LockSwing {
		t.Errorf("Lock() = %v, want %v", r.c.Lock(), LockSwing)
	}
}

func TestJump(t *testing.T) {
	r := newRig(&math.Up)
	r.body.vel = math.Vec3{X: 1, Y: -3}
	r.c.Update(Input{JumpHeld: true})

	if r.body.vel.Y != 0 {
		t.Errorf("vertical velocity before impulse = %v, want 0", r.body.vel.Y)
	}
	if len(r.body.forces) != 1 || r.body.forces[0].mode != physics.ForceModeImpulse || !vecApprox(r.body.forces[0].f, math.Vec3{Y: 12}) {
		t.Fatalf("forces = %+v, want one (0,12,0) impulse", r.body.forces)
	}
	st := r.c.State()
	if st.ReadyToJump || !st.ExitingSlope {
		t.Errorf("after jump ReadyToJump=%v ExitingSlope=%v", st.ReadyToJump, st.ExitingSlope)
	}

	// Held jump does nothing until the cooldown runs out.
	r.c.Update(Input{JumpHeld: true})
	if len(r.body.forces) != 1 {
		t.Errorf("jumped again during cooldown")
	}

	r.timers.Advance(r.c.Tuning().JumpCooldown)
	st = r.c.State()
	if !st.ReadyToJump || st.ExitingSlope {
		t.Errorf("after cooldown ReadyToJump=%v ExitingSlope=%v", st.ReadyToJump, st.ExitingSlope)
	}
}

func TestCrouch(t *testing.T) {
	r := newRig(&math.Up)
	r.c.Update(Input{CrouchHeld: true, CrouchPressed: true})

	if r.body.scale != 0.5 {
		t.Errorf("height scale = %v, want 0.5", r.body.scale)
	}
	if len(r.body.forces) != 1 || !vecApprox(r.body.forces[0].f, math.Vec3{Y: -5}) {
		t.Errorf("forces = %+v, want one (0,-5,0) impulse", r.body.forces)
	}
	if r.c.Mode() != ModeCrouching {
		t.Errorf("Mode() = %v, want %v", r.c.Mode(), ModeCrouching)
	}

	r.c.Update(Input{CrouchReleased: true})
	if r.body.scale != 1 {
		t.Errorf("height scale after release = %v, want 1", r.body.scale)
	}
}

func TestJumpToPosition(t *testing.T) {
	r := newRig(&math.Up)
	var launched []math.Vec3
	released := 0
	r.c.OnLaunch(func(v math.Vec3) { launched = append(launched, v) })
	r.c.OnTouchRelease(func() { released++ })

	target := math.Vec3{X: 10, Y: 1}
	want := trajectory.SolveLaunchVelocity(r.body.pos, target, 3, 9.81)
	got := r.c.JumpToPosition(target, 3)
	if !vecApprox(got, want) {
		t.Errorf("JumpToPosition() = %v, want %v", got, want)
	}
	if r.c.Lock() != LockGrapple {
		t.Errorf("Lock() = %v, want %v", r.c.Lock(), LockGrapple)
	}

	// Contact before the velocity lands is ignored.
	r.c.OnCollisionEnter(physics.Contact{})
	if r.c.Lock() != LockGrapple || released != 0 {
		t.Fatal("collision before launch released the grapple")
	}

	r.timers.Advance(99 * time.Millisecond)
	if len(launched) != 0 {
		t.Fatal("velocity applied before the launch delay")
	}
	r.timers.Advance(time.Millisecond)
	if len(launched) != 1 || !vecApprox(r.body.vel, want) {
		t.Fatalf("velocity = %v after delay, want %v", r.body.vel, want)
	}
	if r.fov.last() != 95 {
		t.Errorf("fov = %v, want 95", r.fov.last())
	}

	// Grapple owns the velocity: no forces, no clamp.
	r.c.Update(Input{Vertical: 1})
	r.c.FixedUpdate()
	r.c.SpeedControl()
	if len(r.body.forces) != 0 {
		t.Errorf("forces during grapple = %+v", r.body.forces)
	}
	if !vecApprox(r.body.vel, want) {
		t.Errorf("velocity clamped during grapple: %v", r.body.vel)
	}

	r.c.OnCollisionEnter(physics.Contact{})
	if r.c.Lock() != LockNone || released != 1 || r.fov.last() != 85 {
		t.Errorf("after contact lock=%v released=%d fov=%v", r.c.Lock(), released, r.fov.last())
	}

	// Second contact is not a release.
	r.c.OnCollisionEnter(physics.Contact{})
	if released != 1 {
		t.Errorf("released = %d, want 1", released)
	}
	if r.timers.Len() != 0 {
		t.Errorf("pending timers after release = %d, want 0", r.timers.Len())
	}
}

func TestRestrictionTimeout(t *testing.T) {
	r := newRig(&math.Up)
	r.c.JumpToPosition(math.Vec3{X: 5, Y: 4}, 5)
	r.timers.Advance(r.c.Tuning().RestrictionTimeout)

	if r.c.Lock() != LockNone {
		t.Errorf("Lock() = %v, want %v", r.c.Lock(), LockNone)
	}
	if r.fov.last() != 85 {
		t.Errorf("fov = %v, want 85", r.fov.last())
	}
}

func TestNewLaunchDropsStaleActions(t *testing.T) {
	r := newRig(&math.Up)
	r.c.JumpToPosition(math.Vec3{X: 5}, 2)
	second := r.c.JumpToPosition(math.Vec3{Z: 8}, 4)

	r.timers.Advance(100 * time.Millisecond)
	if !vecApprox(r.body.vel, second) {
		t.Errorf("velocity = %v, want %v", r.body.vel, second)
	}
	if n := r.timers.Len(); n != 1 {
		t.Errorf("pending timers = %d, want 1", n)
	}
}

func TestSpeedControlWhileSwinging(t *testing.T) {
	r := newRig(nil)
	r.c.SetSwinging(true)
	r.c.Update(Input{})
	r.body.vel = math.Vec3{X: 30, Y: -5}
	r.c.FixedUpdate()
	r.c.SpeedControl()

	if len(r.body.forces) != 0 {
		t.Errorf("forces while swinging = %+v", r.body.forces)
	}
	if want := (math.Vec3{X: 20, Y: -5}); !vecApprox(r.body.vel, want) {
		t.Errorf("velocity = %v, want %v", r.body.vel, want)
	}
}

func TestModeString(t *testing.T) {
	if got := ModeSprinting.String(); got != "sprinting" {
		t.Errorf("String() = %q, want %q", got, "sprinting")
	}
	if got := Mode(99).String(); got != "unknown" {
		t.Errorf("String() = %q, want %q", got, "unknown")
	}
}

func vecApprox(a, b math.Vec3) bool {
	return math.ApproxEqual(a.X, b.X, 1e-3) &&
		math.ApproxEqual(a.Y, b.Y, 1e-3) &&
		math.ApproxEqual(a.Z, b.Z, 1e-3)
}

func ptr(v math.Vec3) *math.Vec3 { return &v }
