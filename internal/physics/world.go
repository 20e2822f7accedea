package physics

import (
	"go.uber.org/zap"

	"github.com/Faultbox/hookshot/pkg/math"
)

// World owns static colliders and dynamic bodies.
type World struct {
	gravity   math.Vec3
	colliders []Collider
	bodies    []*Body
	log       *zap.Logger
}

// NewWorld creates an empty world with gravity pulling down at the given
// magnitude.
func NewWorld(gravity float32, log *zap.Logger) *World {
	if log == nil {
		log = zap.NewNop()
	}
	return &World{
		gravity: math.Vec3{Y: -gravity},
		log:     log,
	}
}

// Gravity returns the gravity acceleration vector.
func (w *World) Gravity() math.Vec3 {
	return w.gravity
}

// SetGravity sets the downward gravity magnitude.
func (w *World) SetGravity(g float32) {
	w.gravity = math.Vec3{Y: -g}
}

// AddCollider adds static geometry.
func (w *World) AddCollider(c Collider) {
	if c == nil {
		return
	}
	w.colliders = append(w.colliders, c)
}

// Colliders returns the static geometry.
func (w *World) Colliders() []Collider {
	return w.colliders
}

// AddBody adds a dynamic body.
func (w *World) AddBody(b *Body) {
	if b == nil {
		return
	}
	w.bodies = append(w.bodies, b)
	w.log.Debug("body added",
		zap.Float32("x", b.position.X),
		zap.Float32("y", b.position.Y),
		zap.Float32("z", b.position.Z),
	)
}

// Raycast returns the closest hit against colliders on any layer in mask.
// dir does not need to be normalized.
func (w *World) Raycast(origin, dir math.Vec3, maxDist float32, mask LayerMask) (Hit, bool) {
	d := dir.Normalize()
	if d == math.Zero || maxDist <= 0 {
		return Hit{}, false
	}
	ray := Ray{Origin: origin, Direction: d}

	var (
		best  Hit
		found bool
	)
	for _, c := range w.colliders {
		if !c.Layer().Has(mask) {
			continue
		}
		hit, ok := c.Raycast(ray, maxDist)
		if !ok {
			continue
		}
		if !found || hit.Distance < best.Distance {
			best, found = hit, true
		}
	}
	return best, found
}

// Step advances every body by dt seconds: gravity, queued forces, drag,
// integration, collision resolution, then collision-enter callbacks.
func (w *World) Step(dt float32) {
	if dt <= 0 {
		return
	}
	var entered []func()
	for _, b := range w.bodies {
		entered = w.stepBody(b, dt, entered)
	}
	// Callbacks run after every body has moved so they see a settled world.
	for _, fn := range entered {
		fn()
	}
}

func (w *World) stepBody(b *Body, dt float32, entered []func()) []func() {
	v := b.velocity
	if b.useGravity {
		v = v.Add(w.gravity.Scale(dt))
	}
	v = v.Add(b.accel.Scale(dt)).Add(b.deltaV)
	b.accel, b.deltaV = math.Vec3{}, math.Vec3{}

	damp := 1 - b.drag*dt
	if damp < 0 {
		damp = 0
	}
	b.velocity = v.Scale(damp)
	b.position = b.position.Add(b.velocity.Scale(dt))

	touching := make(map[Collider]struct{}, len(b.touched))
	for _, c := range w.colliders {
		n, ok := c.resolve(b)
		if !ok {
			continue
		}
		touching[c] = struct{}{}
		if _, was := b.touched[c]; was {
			continue
		}
		contact := Contact{Collider: c, Normal: n}
		for _, fn := range b.onEnter {
			fn := fn
			entered = append(entered, func() { fn(contact) })
		}
	}
	b.touched = touching
	return entered
}
