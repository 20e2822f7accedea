package physics

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/hookshot/pkg/math"
)

// ContactSkin is the gap within which a body still counts as touching a
// surface. It keeps resting contacts from flickering between steps.
const ContactSkin = 0.02

// Collider is static world geometry.
type Collider interface {
	// Layer returns the layers this collider belongs to.
	Layer() LayerMask
	// Raycast returns the first point where r enters the collider within maxDist.
	Raycast(r Ray, maxDist float32) (Hit, bool)
	// Edges returns the wireframe outline.
	Edges() []Segment

	resolve(b *Body) (math.Vec3, bool)
}

// Box is an axis-aligned solid box.
type Box struct {
	Min, Max math.Vec3
	Mask     LayerMask
}

// NewBox creates a box from its center and full size.
func NewBox(center, size math.Vec3, mask LayerMask) *Box {
	half := size.Scale(0.5)
	return &Box{Min: center.Sub(half), Max: center.Add(half), Mask: mask}
}

func (b *Box) Layer() LayerMask { return b.Mask }

func (b *Box) Raycast(r Ray, maxDist float32) (Hit, bool) {
	t, n, ok := intersectAABB(r, b.Min, b.Max)
	if !ok || t > maxDist {
		return Hit{}, false
	}
	return Hit{Point: r.At(t), Normal: n, Distance: t, Collider: b}, true
}

func (b *Box) Edges() []Segment {
	return boxEdges(b.Min, b.Max)
}

// resolve pushes body out of the box along the axis of least penetration and
// removes the velocity component driving it in.
func (b *Box) resolve(body *Body) (math.Vec3, bool) {
	ext := body.Extents()
	center := b.Min.Add(b.Max).Scale(0.5)
	half := b.Max.Sub(b.Min).Scale(0.5)
	d := body.position.Sub(center)

	overlap := [3]float32{
		half.X + ext.X - math32.Abs(d.X),
		half.Y + ext.Y - math32.Abs(d.Y),
		half.Z + ext.Z - math32.Abs(d.Z),
	}
	axis := 0
	for i := 0; i < 3; i++ {
		if overlap[i] < -ContactSkin {
			return math.Vec3{}, false
		}
		if overlap[i] < overlap[axis] {
			axis = i
		}
	}

	delta := [3]float32{d.X, d.Y, d.Z}
	sign := float32(1)
	if delta[axis] < 0 {
		sign = -1
	}
	var n math.Vec3
	switch axis {
	case 0:
		n.X = sign
	case 1:
		n.Y = sign
	case 2:
		n.Z = sign
	}

	if overlap[axis] > 0 {
		body.position = body.position.Add(n.Scale(overlap[axis]))
	}
	body.removeInward(n)
	return n, true
}

// Ramp is a solid wedge over a rectangular XZ footprint. Its top surface
// rises from Base at the footprint's low edge along +X (AlongZ false) or +Z
// (AlongZ true) at Angle degrees. Negative angles slope downward.
type Ramp struct {
	MinX, MaxX float32
	MinZ, MaxZ float32
	Base       float32
	Angle      float32
	AlongZ     bool
	Mask       LayerMask
}

func (r *Ramp) Layer() LayerMask { return r.Mask }

// HeightAt returns the surface height over (x, z), ignoring the footprint.
func (r *Ramp) HeightAt(x, z float32) float32 {
	slope := math32.Tan(r.Angle * math.Deg2Rad)
	if r.AlongZ {
		return r.Base + slope*(z-r.MinZ)
	}
	return r.Base + slope*(x-r.MinX)
}

// Normal returns the unit surface normal.
func (r *Ramp) Normal() math.Vec3 {
	slope := math32.Tan(r.Angle * math.Deg2Rad)
	if r.AlongZ {
		return math.Vec3{Y: 1, Z: -slope}.Normalize()
	}
	return math.Vec3{X: -slope, Y: 1}.Normalize()
}

func (r *Ramp) contains(x, z float32) bool {
	return x >= r.MinX && x <= r.MaxX && z >= r.MinZ && z <= r.MaxZ
}

func (r *Ramp) Raycast(ray Ray, maxDist float32) (Hit, bool) {
	n := r.Normal()
	denom := n.Dot(ray.Direction)
	if denom >= 0 {
		// Parallel, or approaching from underneath.
		return Hit{}, false
	}
	p0 := math.Vec3{X: r.MinX, Y: r.Base, Z: r.MinZ}
	t := n.Dot(p0.Sub(ray.Origin)) / denom
	if t < 0 || t > maxDist {
		return Hit{}, false
	}
	p := ray.At(t)
	if !r.contains(p.X, p.Z) {
		return Hit{}, false
	}
	return Hit{Point: p, Normal: n, Distance: t, Collider: r}, true
}

func (r *Ramp) Edges() []Segment {
	c := [4]math.Vec3{
		{X: r.MinX, Z: r.MinZ},
		{X: r.MaxX, Z: r.MinZ},
		{X: r.MaxX, Z: r.MaxZ},
		{X: r.MinX, Z: r.MaxZ},
	}
	var top, bottom [4]math.Vec3
	floor := r.Base
	for i, p := range c {
		top[i] = p.WithY(r.HeightAt(p.X, p.Z))
		floor = math32.Min(floor, top[i].Y)
	}
	for i, p := range c {
		bottom[i] = p.WithY(floor)
	}
	segs := make([]Segment, 0, 12)
	for i := 0; i < 4; i++ {
		j := (i + 1) % 4
		segs = append(segs, Segment{top[i], top[j]}, Segment{bottom[i], bottom[j]})
		if top[i] != bottom[i] {
			segs = append(segs, Segment{bottom[i], top[i]})
		}
	}
	return segs
}

// resolve lifts the body onto the surface when its feet are at or just
// below it. Bodies deeper than their own half height are treated as being
// beside the ramp rather than on it.
func (r *Ramp) resolve(body *Body) (math.Vec3, bool) {
	p := body.position
	if !r.contains(p.X, p.Z) {
		return math.Vec3{}, false
	}
	ext := body.Extents()
	surface := r.HeightAt(p.X, p.Z)
	feet := p.Y - ext.Y
	gap := feet - surface
	if gap > ContactSkin || gap < -ext.Y {
		return math.Vec3{}, false
	}

	n := r.Normal()
	if gap < 0 {
		body.position.Y = surface + ext.Y
	}
	body.removeInward(n)
	return n, true
}

func boxEdges(min, max math.Vec3) []Segment {
	c := [8]math.Vec3{
		{X: min.X, Y: min.Y, Z: min.Z},
		{X: max.X, Y: min.Y, Z: min.Z},
		{X: max.X, Y: min.Y, Z: max.Z},
		{X: min.X, Y: min.Y, Z: max.Z},
		{X: min.X, Y: max.Y, Z: min.Z},
		{X: max.X, Y: max.Y, Z: min.Z},
		{X: max.X, Y: max.Y, Z: max.Z},
		{X: min.X, Y: max.Y, Z: max.Z},
	}
	segs := make([]Segment, 0, 12)
	for i := 0; i < 4; i++ {
		j := (i + 1) % 4
		segs = append(segs,
			Segment{c[i], c[j]},
			Segment{c[i+4], c[j+4]},
			Segment{c[i], c[i+4]},
		)
	}
	return segs
}
