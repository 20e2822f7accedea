package physics

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/hookshot/pkg/math"
)

// Ray represents a ray in 3D space with origin and direction.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3 // Normalized direction
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float32) math.Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// Hit describes the closest surface a ray struck.
type Hit struct {
	Point    math.Vec3
	Normal   math.Vec3
	Distance float32
	Collider Collider
}

// Segment is a line segment, used for debug wireframes.
type Segment struct {
	A, B math.Vec3
}

// intersectAABB tests ray intersection with an axis-aligned box using the
// slab method. It returns the entry distance and the face normal. Rays that
// start inside the box report no hit.
func intersectAABB(r Ray, min, max math.Vec3) (float32, math.Vec3, bool) {
	tmin := float32(-math32.MaxFloat32)
	tmax := float32(math32.MaxFloat32)
	var normal math.Vec3

	origin := r.Origin.Array()
	dir := r.Direction.Array()
	lo := min.Array()
	hi := max.Array()

	for axis := 0; axis < 3; axis++ {
		if dir[axis] == 0 {
			if origin[axis] < lo[axis] || origin[axis] > hi[axis] {
				return 0, math.Vec3{}, false
			}
			continue
		}

		t1 := (lo[axis] - origin[axis]) / dir[axis]
		t2 := (hi[axis] - origin[axis]) / dir[axis]
		sign := float32(-1)
		if t1 > t2 {
			t1, t2 = t2, t1
			sign = 1
		}
		if t1 > tmin {
			tmin = t1
			normal = math.Vec3{}
			switch axis {
			case 0:
				normal.X = sign
			case 1:
				normal.Y = sign
			case 2:
				normal.Z = sign
			}
		}
		if t2 < tmax {
			tmax = t2
		}
	}

	if tmax < tmin || tmin < 0 {
		return 0, math.Vec3{}, false
	}
	return tmin, normal, true
}
