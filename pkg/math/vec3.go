// Package math provides the float32 vector and matrix types used by the
// controller, the physics world and the renderer.
package math

import "github.com/chewxy/math32"

// Vec3 is a 3D vector. +Y is up.
type Vec3 struct {
	X, Y, Z float32
}

var (
	Zero  = Vec3{}
	Up    = Vec3{0, 1, 0}
	Down  = Vec3{0, -1, 0}
	Right = Vec3{1, 0, 0}
	Ahead = Vec3{0, 0, 1}
)

// Add returns v + other.
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{v.X + other.X, v.Y + other.Y, v.Z + other.Z}
}

// Sub returns v - other.
func (v Vec3) Sub(other Vec3) Vec3 {
	return Vec3{v.X - other.X, v.Y - other.Y, v.Z - other.Z}
}

// Scale returns v * scalar.
func (v Vec3) Scale(s float32) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Dot returns the dot product.
func (v Vec3) Dot(other Vec3) float32 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// Cross returns the cross product.
func (v Vec3) Cross(other Vec3) Vec3 {
	return Vec3{
		v.Y*other.Z - v.Z*other.Y,
		v.Z*other.X - v.X*other.Z,
		v.X*other.Y - v.Y*other.X,
	}
}

// Length returns the magnitude.
func (v Vec3) Length() float32 {
	return math32.Sqrt(v.Dot(v))
}

// Normalize returns a unit vector, or the zero vector if v has no length.
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l < 1e-6 {
		return Vec3{}
	}
	return Vec3{v.X / l, v.Y / l, v.Z / l}
}

// Distance returns the distance to another point.
func (v Vec3) Distance(other Vec3) float32 {
	return v.Sub(other).Length()
}

// Flat returns v with its Y component zeroed.
func (v Vec3) Flat() Vec3 {
	return Vec3{v.X, 0, v.Z}
}

// WithY returns v with its Y component replaced.
func (v Vec3) WithY(y float32) Vec3 {
	return Vec3{v.X, y, v.Z}
}

// ClampLength scales v down so its length does not exceed max.
func (v Vec3) ClampLength(max float32) Vec3 {
	l := v.Length()
	if l <= max || l == 0 {
		return v
	}
	return v.Scale(max / l)
}

// ProjectOnPlane removes the component of v along the plane normal n.
func (v Vec3) ProjectOnPlane(n Vec3) Vec3 {
	nn := n.Dot(n)
	if nn < 1e-12 {
		return v
	}
	return v.Sub(n.Scale(v.Dot(n) / nn))
}

// Angle returns the unsigned angle between v and other in degrees.
func (v Vec3) Angle(other Vec3) float32 {
	denom := math32.Sqrt(v.Dot(v) * other.Dot(other))
	if denom < 1e-12 {
		return 0
	}
	cos := Clamp(v.Dot(other)/denom, -1, 1)
	return math32.Acos(cos) * Rad2Deg
}

// Lerp linearly interpolates between v and other.
func (v Vec3) Lerp(other Vec3, t float32) Vec3 {
	return v.Add(other.Sub(v).Scale(t))
}

// IsFinite reports whether every component is neither NaN nor infinite.
func (v Vec3) IsFinite() bool {
	return isFinite(v.X) && isFinite(v.Y) && isFinite(v.Z)
}

// Array returns the components as an array, for GL buffers.
func (v Vec3) Array() [3]float32 {
	return [3]float32{v.X, v.Y, v.Z}
}

func isFinite(f float32) bool {
	return !math32.IsNaN(f) && !math32.IsInf(f, 0)
}
