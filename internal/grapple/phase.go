package grapple

// Phase is the step a grapple session is in.
type Phase uint8

const (
	PhaseIdle Phase = iota
	PhaseAiming
	PhaseDelayed
	PhaseLaunched
	PhaseSettling
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseAiming:
		return "aiming"
	case PhaseDelayed:
		return "delayed"
	case PhaseLaunched:
		return "launched"
	case PhaseSettling:
		return "settling"
	default:
		return "unknown"
	}
}
