// Package movement implements the character locomotion controller: mode
// classification, slope handling, the per-tick force integrator and the
// launch used by the grapple.
package movement

// Mode is the locomotion mode derived each frame.
type Mode uint8

const (
	ModeFreeze Mode = iota
	ModeGrappling
	ModeSwinging
	ModeWalking
	ModeSprinting
	ModeCrouching
	ModeAir
)

func (m Mode) String() string {
	switch m {
	case ModeFreeze:
		return "freeze"
	case ModeGrappling:
		return "grappling"
	case ModeSwinging:
		return "swinging"
	case ModeWalking:
		return "walking"
	case ModeSprinting:
		return "sprinting"
	case ModeCrouching:
		return "crouching"
	case ModeAir:
		return "air"
	default:
		return "unknown"
	}
}

// Lock is the single restriction currently placed on the character by an
// outside system. Only one can hold at a time.
type Lock uint8

const (
	LockNone Lock = iota
	// LockFrozen holds the character in place while the grapple aims.
	LockFrozen
	// LockGrapple hands velocity to the grapple launch.
	LockGrapple
	// LockSwing hands velocity to swing logic.
	LockSwing
)

func (l Lock) String() string {
	switch l {
	case LockNone:
		return "none"
	case LockFrozen:
		return "frozen"
	case LockGrapple:
		return "grapple"
	case LockSwing:
		return "swing"
	default:
		return "unknown"
	}
}

// OwnsVelocity reports whether normal locomotion forces are suppressed.
func (l Lock) OwnsVelocity() bool {
	return l == LockGrapple || l == LockSwing
}
