// Package physics is a small fixed-step rigid body world: axis-aligned boxes,
// ramps, upright box-shaped bodies, layered raycasts and collision-enter
// notifications. It is just enough world for a character controller to
// stand on, climb and grapple to.
package physics

// LayerMask selects which colliders a query considers.
type LayerMask uint32

const (
	LayerGround LayerMask = 1 << iota
	LayerGrappleable

	AllLayers LayerMask = ^LayerMask(0)
)

// Has reports whether m shares any bit with other.
func (m LayerMask) Has(other LayerMask) bool {
	return m&other != 0
}

// ForceMode selects how AddForce changes a body's velocity.
type ForceMode int

const (
	// ForceModeForce is a continuous force, scaled by mass and step time.
	ForceModeForce ForceMode = iota
	// ForceModeImpulse is an instant change of momentum, scaled by mass.
	ForceModeImpulse
	// ForceModeVelocityChange is an instant change of velocity.
	ForceModeVelocityChange
)

func (m ForceMode) String() string {
	switch m {
	case ForceModeForce:
		return "force"
	case ForceModeImpulse:
		return "impulse"
	case ForceModeVelocityChange:
		return "velocity_change"
	default:
		return "unknown"
	}
}
