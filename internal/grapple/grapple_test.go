package grapple

import (
	"testing"
	"time"

	"github.com/Faultbox/hookshot/internal/movement"
	"github.com/Faultbox/hookshot/internal/physics"
	"github.com/Faultbox/hookshot/internal/schedule"
	"github.com/Faultbox/hookshot/pkg/math"
	"github.com/Faultbox/hookshot/pkg/trajectory"
)

type jumpCall struct {
	target math.Vec3
	apex   float32
}

type fakeMover struct {
	pos       math.Vec3
	frozen    bool
	jumps     []jumpCall
	resets    int
	onLaunch  func(math.Vec3)
	onRelease func()
}

func (m *fakeMover) Position() math.Vec3 { return m.pos }
func (m *fakeMover) SetFrozen(on bool)   { m.frozen = on }
func (m *fakeMover) ResetRestrictions()  { m.resets++ }
func (m *fakeMover) JumpToPosition(target math.Vec3, apex float32) math.Vec3 {
	m.jumps = append(m.jumps, jumpCall{target, apex})
	return trajectory.SolveLaunchVelocity(m.pos, target, apex, 9.81)
}
func (m *fakeMover) OnLaunch(fn func(math.Vec3)) { m.onLaunch = fn }
func (m *fakeMover) OnTouchRelease(fn func())    { m.onRelease = fn }

type fixedAim struct {
	origin, dir math.Vec3
}

func (a fixedAim) AimRay() (math.Vec3, math.Vec3) { return a.origin, a.dir }

type fakeWorld struct {
	hit  *physics.Hit
	rays int
}

func (w *fakeWorld) Raycast(origin, dir math.Vec3, maxDist float32, mask physics.LayerMask) (physics.Hit, bool) {
	w.rays++
	if w.hit == nil || w.hit.Distance > maxDist {
		return physics.Hit{}, false
	}
	return *w.hit, true
}

type rig struct {
	seq    *Sequencer
	mover  *fakeMover
	world  *fakeWorld
	timers *schedule.Timers
	phases []Phase
}

func newRig(hit *physics.Hit, tune func(*Tuning)) *rig {
	r := &rig{
		mover:  &fakeMover{pos: math.Vec3{Y: 1}},
		world:  &fakeWorld{hit: hit},
		timers: schedule.New(),
	}
	tuning := DefaultTuning()
	if tune != nil {
		tune(&tuning)
	}
	r.seq = New(Options{
		Mover:     r.mover,
		Aimer:     fixedAim{origin: math.Vec3{Y: 1.5}, dir: math.Vec3{X: 2}},
		World:     r.world,
		Scheduler: r.timers,
		Tuning:    tuning,
	})
	r.seq.OnPhase(func(s Session) { r.phases = append(r.phases, s.Phase) })
	return r
}

func pillarHit() *physics.Hit {
	return &physics.Hit{Point: math.Vec3{X: 10}, Normal: math.Vec3{X: -1}, Distance: 10}
}

func TestHitSequence(t *testing.T) {
	r := newRig(pillarHit(), func(tn *Tuning) { tn.OvershootY = 3 })

	if !r.seq.StartGrapple() {
		t.Fatal("StartGrapple() = false, want true")
	}
	if !r.mover.frozen || !r.seq.IsGrappling() {
		t.Fatalf("after start frozen=%v grappling=%v", r.mover.frozen, r.seq.IsGrappling())
	}
	if r.seq.Phase() != PhaseDelayed {
		t.Errorf("Phase() = %v, want %v", r.seq.Phase(), PhaseDelayed)
	}
	if got := r.seq.GrapplePoint(); got != (math.Vec3{X: 10}) {
		t.Errorf("GrapplePoint() = %v, want (10,0,0)", got)
	}

	r.timers.Advance(r.seq.Tuning().Delay)
	if len(r.mover.jumps) != 1 {
		t.Fatalf("jumps = %d, want 1", len(r.mover.jumps))
	}
	// Feet at y=0 and point at y=0: apex is the overshoot alone.
	if j := r.mover.jumps[0]; j.target != (math.Vec3{X: 10}) || j.apex != 3 {
		t.Errorf("JumpToPosition(%v, %v), want ((10,0,0), 3)", j.target, j.apex)
	}
	if r.mover.frozen {
		t.Error("still frozen after launch")
	}
	if r.seq.Phase() != PhaseLaunched {
		t.Errorf("Phase() = %v, want %v", r.seq.Phase(), PhaseLaunched)
	}

	r.mover.onLaunch(math.Vec3{X: 4, Y: 7})
	if r.seq.Phase() != PhaseSettling {
		t.Errorf("Phase() = %v, want %v", r.seq.Phase(), PhaseSettling)
	}

	r.mover.onRelease()
	if r.seq.Phase() != PhaseIdle || r.seq.IsGrappling() {
		t.Errorf("after contact phase=%v grappling=%v", r.seq.Phase(), r.seq.IsGrappling())
	}
	if r.seq.Session().CooldownRemaining != r.seq.Tuning().Cooldown {
		t.Errorf("cooldown = %v, want %v", r.seq.Session().CooldownRemaining, r.seq.Tuning().Cooldown)
	}
	if r.timers.Len() != 0 {
		t.Errorf("pending timers = %d, want 0", r.timers.Len())
	}
	if r.mover.resets != 1 {
		t.Errorf("ResetRestrictions calls = %d, want 1", r.mover.resets)
	}

	want := []Phase{PhaseAiming, PhaseDelayed, PhaseLaunched, PhaseSettling, PhaseIdle}
	if len(r.phases) != len(want) {
		t.Fatalf("phases = %v, want %v", r.phases, want)
	}
	for i := range want {
		if r.phases[i] != want[i] {
			t.Errorf("phases[%d] = %v, want %v", i, r.phases[i], want[i])
		}
	}
}

func TestMissReturnsToIdleAfterDelay(t *testing.T) {
	r := newRig(nil, nil)
	delay := r.seq.Tuning().Delay

	if !r.seq.StartGrapple() {
		t.Fatal("StartGrapple() = false, want true")
	}
	s := r.seq.Session()
	if s.TargetAcquired {
		t.Error("TargetAcquired = true on a miss")
	}
	if want := (math.Vec3{X: 25, Y: 1.5}); !vecApprox(s.Point, want) {
		t.Errorf("miss point = %v, want %v", s.Point, want)
	}

	r.timers.Advance(delay - time.Nanosecond)
	if r.seq.Phase() != PhaseDelayed {
		t.Fatalf("Phase() before delay = %v, want %v", r.seq.Phase(), PhaseDelayed)
	}
	r.timers.Advance(time.Nanosecond)
	if r.seq.Phase() != PhaseIdle {
		t.Errorf("Phase() at delay = %v, want %v", r.seq.Phase(), PhaseIdle)
	}
	if len(r.mover.jumps) != 0 {
		t.Errorf("miss launched %d times", len(r.mover.jumps))
	}
	if r.mover.frozen {
		t.Error("still frozen after miss")
	}
}

func TestOutOfRangeIsMiss(t *testing.T) {
	hit := pillarHit()
	hit.Distance = 30
	r := newRig(hit, nil)
	r.seq.StartGrapple()
	if r.seq.Session().TargetAcquired {
		t.Error("hit beyond max distance acquired a target")
	}
}

func TestCooldownRejects(t *testing.T) {
	r := newRig(pillarHit(), func(tn *Tuning) { tn.Cooldown = 5 * time.Second })

	r.seq.StartGrapple()
	r.seq.StopGrapple()
	rays := r.world.rays

	r.seq.Update(time.Second, true)
	if r.seq.Phase() != PhaseIdle || r.world.rays != rays {
		t.Fatalf("press 1s into cooldown was accepted (phase %v)", r.seq.Phase())
	}

	r.seq.Update(4010*time.Millisecond, false)
	if !r.seq.StartGrapple() {
		t.Error("StartGrapple() at 5.01s = false, want true")
	}
}

func TestRejectWhileRunning(t *testing.T) {
	r := newRig(pillarHit(), nil)
	r.seq.StartGrapple()
	if r.seq.StartGrapple() {
		t.Error("second StartGrapple() = true, want false")
	}
	if r.world.rays != 1 {
		t.Errorf("rays = %d, want 1", r.world.rays)
	}
}

func TestStopGrappleIdempotent(t *testing.T) {
	r := newRig(pillarHit(), nil)
	r.seq.StartGrapple()
	r.seq.StopGrapple()
	r.seq.Update(400*time.Millisecond, false)
	phases := len(r.phases)
	resets := r.mover.resets

	r.seq.StopGrapple()

	if got, want := r.seq.Session().CooldownRemaining, 600*time.Millisecond; got != want {
		t.Errorf("cooldown = %v, want %v", got, want)
	}
	if len(r.phases) != phases || r.mover.resets != resets {
		t.Error("second StopGrapple() had side effects")
	}
}

func TestStopCancelsPendingLaunch(t *testing.T) {
	r := newRig(pillarHit(), nil)
	r.seq.StartGrapple()
	r.seq.StopGrapple()

	r.timers.Advance(time.Second)
	if len(r.mover.jumps) != 0 {
		t.Errorf("stale launch ran %d times", len(r.mover.jumps))
	}
	if r.seq.Phase() != PhaseIdle {
		t.Errorf("Phase() = %v, want %v", r.seq.Phase(), PhaseIdle)
	}
}

func TestReleaseTimeout(t *testing.T) {
	r := newRig(pillarHit(), nil)
	r.seq.StartGrapple()
	r.timers.Advance(r.seq.Tuning().Delay)
	r.mover.onLaunch(math.Vec3{})

	r.timers.Advance(r.seq.Tuning().ReleaseTimeout)
	if r.seq.Phase() != PhaseIdle {
		t.Errorf("Phase() = %v, want %v", r.seq.Phase(), PhaseIdle)
	}
	if r.mover.resets != 1 {
		t.Errorf("ResetRestrictions calls = %d, want 1", r.mover.resets)
	}
}

func TestTouchIgnoredWhenIdle(t *testing.T) {
	r := newRig(pillarHit(), nil)
	r.mover.onRelease()
	if r.seq.Session().CooldownRemaining != 0 || len(r.phases) != 0 {
		t.Error("touch release while idle changed the session")
	}
}

func TestApexHeight(t *testing.T) {
	r := newRig(nil, func(tn *Tuning) { tn.OvershootY = 2 })

	tests := []struct {
		name  string
		pos   math.Vec3
		point math.Vec3
		want  float32
	}{
		{"level with feet", math.Vec3{Y: 1}, math.Vec3{X: 5}, 2},
		{"above", math.Vec3{Y: 1}, math.Vec3{X: 5, Y: 6}, 8},
		{"below feet", math.Vec3{Y: 5}, math.Vec3{X: 5, Y: 1}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.seq.ApexHeight(tt.pos, tt.point); got != tt.want {
				t.Errorf("ApexHeight() = %v, want %v", got, tt.want)
			}
		})
	}
}

type flatAxes struct{}

func (flatAxes) FlatForward() math.Vec3 { return math.Vec3{Z: 1} }
func (flatAxes) FlatRight() math.Vec3   { return math.Vec3{X: 1} }

func TestGrappleAcrossCourse(t *testing.T) {
	const dt = 20 * time.Millisecond

	world := physics.NewWorld(9.81, nil)
	world.AddCollider(physics.NewBox(math.Vec3{Y: -0.5}, math.Vec3{X: 100, Y: 1, Z: 100}, physics.LayerGround))
	world.AddCollider(physics.NewBox(math.Vec3{X: 10, Y: 5}, math.Vec3{X: 2, Y: 10, Z: 2}, physics.LayerGround|physics.LayerGrappleable))

	body := physics.NewBody(math.Vec3{Y: 1}, 0.4, 2, 1)
	world.AddBody(body)

	timers := schedule.New()
	ctrl := movement.New(movement.Options{
		Body:        body,
		World:       world,
		Scheduler:   timers,
		Orientation: flatAxes{},
		Gravity:     9.81,
		Tuning:      movement.DefaultTuning(),
	})
	body.OnCollisionEnter(ctrl.OnCollisionEnter)

	seq := New(Options{
		Mover:     ctrl,
		Aimer:     fixedAim{origin: math.Vec3{Y: 1.5}, dir: math.Vec3{X: 1}},
		World:     world,
		Scheduler: timers,
		Tuning:    DefaultTuning(),
	})
	var phases []Phase
	seq.OnPhase(func(s Session) { phases = append(phases, s.Phase) })

	for i := 0; i < 150; i++ {
		timers.Advance(dt)
		ctrl.Update(movement.Input{})
		seq.Update(dt, i == 0)
		ctrl.FixedUpdate()
		world.Step(float32(dt.Seconds()))
		ctrl.SpeedControl()
	}

	if got := seq.GrapplePoint(); !vecApprox(got, math.Vec3{X: 9, Y: 1.5}) {
		t.Errorf("GrapplePoint() = %v, want (9,1.5,0)", got)
	}
	if seq.Phase() != PhaseIdle || seq.IsGrappling() {
		t.Errorf("phase=%v grappling=%v, want idle", seq.Phase(), seq.IsGrappling())
	}
	if ctrl.Lock() != movement.LockNone {
		t.Errorf("Lock() = %v, want %v", ctrl.Lock(), movement.LockNone)
	}
	if x := body.Position().X; x < 4 {
		t.Errorf("body x = %v, want at least 4", x)
	}
	if !body.Position().IsFinite() {
		t.Errorf("body position = %v", body.Position())
	}
	if len(phases) < 4 || phases[2] != PhaseLaunched || phases[3] != PhaseSettling {
		t.Errorf("phases = %v", phases)
	}
}

func vecApprox(a, b math.Vec3) bool {
	return math.ApproxEqual(a.X, b.X, 1e-3) &&
		math.ApproxEqual(a.Y, b.Y, 1e-3) &&
		math.ApproxEqual(a.Z, b.Z, 1e-3)
}
