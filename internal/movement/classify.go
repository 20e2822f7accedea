package movement

// Conditions are the inputs to mode classification.
type Conditions struct {
	Freeze        bool
	ActiveGrapple bool
	Swinging      bool
	CrouchHeld    bool
	SprintHeld    bool
	Grounded      bool
}

// Conditions builds classification inputs from the lock and the frame's
// input and ground state.
func (l Lock) Conditions(in Input, grounded bool) Conditions {
	return Conditions{
		Freeze:        l == LockFrozen,
		ActiveGrapple: l == LockGrapple,
		Swinging:      l == LockSwing,
		CrouchHeld:    in.CrouchHeld,
		SprintHeld:    in.SprintHeld,
		Grounded:      grounded,
	}
}

// Speeds are the per-mode speed caps.
type Speeds struct {
	Walk   float32
	Sprint float32
	Swing  float32
	Crouch float32
}

type rule struct {
	mode  Mode
	match func(Conditions) bool
	// speed returns the cap for the mode. nil keeps the previous cap.
	speed func(Speeds) float32
}

// rules is evaluated top to bottom; the first match wins.
var rules = []rule{
	{ModeFreeze, func(c Conditions) bool { return c.Freeze }, func(Speeds) float32 { return 0 }},
	{ModeGrappling, func(c Conditions) bool { return c.ActiveGrapple }, func(s Speeds) float32 { return s.Sprint }},
	{ModeSwinging, func(c Conditions) bool { return c.Swinging }, func(s Speeds) float32 { return s.Swing }},
	{ModeCrouching, func(c Conditions) bool { return c.CrouchHeld }, func(s Speeds) float32 { return s.Crouch }},
	{ModeSprinting, func(c Conditions) bool { return c.Grounded && c.SprintHeld }, func(s Speeds) float32 { return s.Sprint }},
	{ModeWalking, func(c Conditions) bool { return c.Grounded }, func(s Speeds) float32 { return s.Walk }},
	{ModeAir, func(Conditions) bool { return true }, nil},
}

// Priority returns the modes in the order they are tested.
func Priority() []Mode {
	out := make([]Mode, len(rules))
	for i, r := range rules {
		out[i] = r.mode
	}
	return out
}

// Classify returns the mode for c and its speed cap. Air has no cap of its
// own and keeps prevSpeed.
func Classify(c Conditions, s Speeds, prevSpeed float32) (Mode, float32) {
	for _, r := range rules {
		if !r.match(c) {
			continue
		}
		if r.speed == nil {
			return r.mode, prevSpeed
		}
		return r.mode, r.speed(s)
	}
	return ModeAir, prevSpeed
}
