package movement

import (
	"github.com/Faultbox/hookshot/internal/physics"
	"github.com/Faultbox/hookshot/pkg/math"
)

// Raycaster answers ray queries against the world.
type Raycaster interface {
	Raycast(origin, dir math.Vec3, maxDist float32, mask physics.LayerMask) (physics.Hit, bool)
}

// SlopeInfo describes the surface under the character for one tick.
type SlopeInfo struct {
	OnSlope bool
	Normal  math.Vec3
	Angle   float32 // degrees from world up
}

// ProbeSlope casts down from pos. The character is on a slope when the
// surface it hits is tilted but still walkable: 0 < angle < maxAngle. Flat
// ground is not a slope.
func ProbeSlope(r Raycaster, pos math.Vec3, probe float32, mask physics.LayerMask, maxAngle float32) SlopeInfo {
	hit, ok := r.Raycast(pos, math.Down, probe, mask)
	if !ok {
		return SlopeInfo{}
	}
	angle := math.Up.Angle(hit.Normal)
	return SlopeInfo{
		OnSlope: angle < maxAngle && angle != 0,
		Normal:  hit.Normal,
		Angle:   angle,
	}
}

// ProjectOntoSlope projects dir onto the plane with the given normal and
// normalizes the result.
func ProjectOntoSlope(dir, normal math.Vec3) math.Vec3 {
	return dir.ProjectOnPlane(normal).Normalize()
}
