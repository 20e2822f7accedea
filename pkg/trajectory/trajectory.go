// Package trajectory solves ballistic launch velocities under constant gravity.
//
// The arc is split at its apex: the vertical launch speed is fixed by the
// apex height alone, and the horizontal speed is whatever covers the XZ
// displacement in the combined rise and fall time.
package trajectory

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/hookshot/pkg/math"
)

// MinApex is the smallest apex height the solver will use. Requests below it
// are raised to it so flight time never collapses to zero.
const MinApex = 0.01

// SolveLaunchVelocity returns the launch velocity that carries a body from
// start to end along a parabola peaking apexHeight above start.
//
// gravity is the magnitude of the downward acceleration. The solver fails
// closed: a non-positive gravity or non-finite input yields the zero vector,
// and an apex lower than the climb to end is raised to the climb so the
// descent time never takes the root of a negative number.
func SolveLaunchVelocity(start, end math.Vec3, apexHeight, gravity float32) math.Vec3 {
	if !(gravity > 0) || !start.IsFinite() || !end.IsFinite() || math32.IsNaN(apexHeight) {
		return math.Vec3{}
	}

	dy := end.Y - start.Y
	apex := ClampApex(apexHeight, dy)

	vy := math32.Sqrt(2 * gravity * apex)
	tUp := math32.Sqrt(2 * apex / gravity)
	tDown := math32.Sqrt(2 * (apex - dy) / gravity)

	dxz := end.Sub(start).Flat()
	v := dxz.Scale(1 / (tUp + tDown))
	v.Y = vy
	return v
}

// ClampApex raises apexHeight to the minimum that keeps an arc climbing dy
// solvable.
func ClampApex(apexHeight, dy float32) float32 {
	if apexHeight < dy {
		apexHeight = dy
	}
	if apexHeight < MinApex {
		apexHeight = MinApex
	}
	return apexHeight
}

// FlightTime returns the time the solved arc takes from start to end.
func FlightTime(start, end math.Vec3, apexHeight, gravity float32) float32 {
	if !(gravity > 0) {
		return 0
	}
	dy := end.Y - start.Y
	apex := ClampApex(apexHeight, dy)
	return math32.Sqrt(2*apex/gravity) + math32.Sqrt(2*(apex-dy)/gravity)
}

// Sample returns the position at time t of a body launched from start with
// velocity v.
func Sample(start, v math.Vec3, gravity, t float32) math.Vec3 {
	p := start.Add(v.Scale(t))
	p.Y -= 0.5 * gravity * t * t
	return p
}

// Apex returns the highest point of the arc launched from start with
// velocity v. A body launched downward peaks at start.
func Apex(start, v math.Vec3, gravity float32) math.Vec3 {
	if v.Y <= 0 || !(gravity > 0) {
		return start
	}
	return Sample(start, v, gravity, v.Y/gravity)
}

// Points samples n+1 evenly spaced positions along the arc from start to end.
func Points(start, end math.Vec3, apexHeight, gravity float32, n int) []math.Vec3 {
	if n < 1 {
		n = 1
	}
	v := SolveLaunchVelocity(start, end, apexHeight, gravity)
	total := FlightTime(start, end, apexHeight, gravity)

	pts := make([]math.Vec3, 0, n+1)
	for i := 0; i <= n; i++ {
		t := total * float32(i) / float32(n)
		pts = append(pts, Sample(start, v, gravity, t))
	}
	return pts
}
