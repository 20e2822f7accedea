package physics

import (
	"github.com/Faultbox/hookshot/pkg/math"
)

// Contact describes a collision that began this step.
type Contact struct {
	Collider Collider
	Normal   math.Vec3
}

// Body is an upright box-shaped rigid body that never rotates.
type Body struct {
	position math.Vec3
	velocity math.Vec3

	// Half extents at height scale 1.
	Radius     float32
	HalfHeight float32
	Mass       float32

	heightScale float32
	drag        float32
	useGravity  bool

	accel   math.Vec3 // accumulated continuous acceleration
	deltaV  math.Vec3 // accumulated instant velocity change
	touched map[Collider]struct{}
	onEnter []func(Contact)
}

// NewBody creates a body centred at pos. height is the full standing height.
func NewBody(pos math.Vec3, radius, height, mass float32) *Body {
	if mass <= 0 {
		mass = 1
	}
	return &Body{
		position:    pos,
		Radius:      radius,
		HalfHeight:  height / 2,
		Mass:        mass,
		heightScale: 1,
		useGravity:  true,
		touched:     make(map[Collider]struct{}),
	}
}

func (b *Body) Position() math.Vec3 { return b.position }

func (b *Body) SetPosition(p math.Vec3) { b.position = p }

func (b *Body) Velocity() math.Vec3 { return b.velocity }

// SetVelocity replaces the velocity immediately.
func (b *Body) SetVelocity(v math.Vec3) { b.velocity = v }

func (b *Body) Drag() float32 { return b.drag }

func (b *Body) SetDrag(d float32) {
	if d < 0 {
		d = 0
	}
	b.drag = d
}

func (b *Body) UseGravity() bool { return b.useGravity }

func (b *Body) SetUseGravity(on bool) { b.useGravity = on }

func (b *Body) HeightScale() float32 { return b.heightScale }

// SetHeightScale scales the body's height about its centre.
func (b *Body) SetHeightScale(s float32) {
	if s <= 0 {
		return
	}
	b.heightScale = s
}

// Extents returns the current half extents.
func (b *Body) Extents() math.Vec3 {
	return math.Vec3{X: b.Radius, Y: b.HalfHeight * b.heightScale, Z: b.Radius}
}

// AddForce queues a force to be applied on the next step.
func (b *Body) AddForce(f math.Vec3, mode ForceMode) {
	switch mode {
	case ForceModeForce:
		b.accel = b.accel.Add(f.Scale(1 / b.Mass))
	case ForceModeImpulse:
		b.deltaV = b.deltaV.Add(f.Scale(1 / b.Mass))
	case ForceModeVelocityChange:
		b.deltaV = b.deltaV.Add(f)
	}
}

// OnCollisionEnter registers fn to run whenever the body starts touching a
// collider it was not touching on the previous step.
func (b *Body) OnCollisionEnter(fn func(Contact)) {
	if fn != nil {
		b.onEnter = append(b.onEnter, fn)
	}
}

// Touching reports whether the body ended the last step in contact with c.
func (b *Body) Touching(c Collider) bool {
	_, ok := b.touched[c]
	return ok
}

func (b *Body) removeInward(n math.Vec3) {
	if vn := b.velocity.Dot(n); vn < 0 {
		b.velocity = b.velocity.Sub(n.Scale(vn))
	}
}

// Edges returns the body's wireframe outline.
func (b *Body) Edges() []Segment {
	ext := b.Extents()
	return boxEdges(b.position.Sub(ext), b.position.Add(ext))
}
