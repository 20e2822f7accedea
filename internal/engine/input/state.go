package input

import "github.com/Faultbox/hookshot/internal/movement"

// actionState turns per-frame held flags into press and release edges.
type actionState struct {
	held     [actionCount]bool
	pressed  [actionCount]bool
	released [actionCount]bool
}

// set records this frame's held flags. down and up latch presses and
// releases seen as events, so a tap that starts and ends inside one frame
// still registers. Edges from the previous frame are replaced.
func (s *actionState) set(held, down, up [actionCount]bool) {
	for a := range held {
		s.pressed[a] = down[a] || (held[a] && !s.held[a])
		s.released[a] = up[a] || (!held[a] && s.held[a])
	}
	s.held = held
}

func axis(neg, pos bool) float32 {
	var v float32
	if pos {
		v++
	}
	if neg {
		v--
	}
	return v
}

// movementInput builds the controller's per-frame input.
func (s *actionState) movementInput() movement.Input {
	return movement.Input{
		Horizontal:     axis(s.held[ActionLeft], s.held[ActionRight]),
		Vertical:       axis(s.held[ActionBack], s.held[ActionForward]),
		JumpHeld:       s.held[ActionJump],
		SprintHeld:     s.held[ActionSprint],
		CrouchHeld:     s.held[ActionCrouch],
		CrouchPressed:  s.pressed[ActionCrouch],
		CrouchReleased: s.released[ActionCrouch],
		GrapplePressed: s.pressed[ActionGrapple],
	}
}
