package movement

import (
	"github.com/Faultbox/hookshot/internal/physics"
	"github.com/Faultbox/hookshot/pkg/math"
)

// MoveDirection combines the camera's flat basis with the input axes.
func MoveDirection(forward, right math.Vec3, horizontal, vertical float32) math.Vec3 {
	return forward.Scale(vertical).Add(right.Scale(horizontal))
}

// ClampVelocity limits v to speed. On a slope the whole vector is limited;
// elsewhere only the horizontal part is, so falling is never capped.
func ClampVelocity(v math.Vec3, speed float32, onSlope bool) math.Vec3 {
	if onSlope {
		return v.ClampLength(speed)
	}
	flat := v.Flat()
	if flat.Length() <= speed {
		return v
	}
	flat = flat.Normalize().Scale(speed)
	return math.Vec3{X: flat.X, Y: v.Y, Z: flat.Z}
}

// FixedUpdate is the per-physics-tick pass. It probes the slope and queues
// locomotion forces on the body. Nothing is applied while a grapple or swing
// owns the velocity.
func (c *Controller) FixedUpdate() {
	pos := c.body.Position()
	c.slope = ProbeSlope(c.world, pos, c.tuning.PlayerHeight*0.5+c.tuning.SlopeProbe, c.tuning.GroundMask, c.tuning.MaxSlopeAngle)

	if c.lock.OwnsVelocity() {
		// The launch arc is solved against full gravity.
		c.body.SetUseGravity(true)
		return
	}

	dir := MoveDirection(c.orient.FlatForward(), c.orient.FlatRight(), c.input.Horizontal, c.input.Vertical)

	switch {
	case c.slope.OnSlope && !c.exitingSlope:
		c.body.AddForce(ProjectOntoSlope(dir, c.slope.Normal).Scale(c.moveSpeed*c.tuning.SlopeForce), physics.ForceModeForce)
		if c.body.Velocity().Y > 0 {
			// Keep the body pressed to the surface going uphill.
			c.body.AddForce(math.Down.Scale(c.tuning.SlopeAdhesion), physics.ForceModeForce)
		}
	case c.grounded:
		c.body.AddForce(dir.Normalize().Scale(c.moveSpeed*c.tuning.GroundForce), physics.ForceModeForce)
	default:
		c.body.AddForce(dir.Normalize().Scale(c.moveSpeed*c.tuning.GroundForce*c.tuning.AirMultiplier), physics.ForceModeForce)
	}

	c.body.SetUseGravity(!c.slope.OnSlope)
}

// SpeedControl clamps the body to the current cap after the world step.
// It is skipped during a grapple launch.
func (c *Controller) SpeedControl() {
	if c.lock == LockGrapple {
		return
	}
	v := c.body.Velocity()
	clamped := ClampVelocity(v, c.moveSpeed, c.slope.OnSlope && !c.exitingSlope)
	if clamped != v {
		c.body.SetVelocity(clamped)
	}
}
