package movement

import (
	"time"

	"github.com/Faultbox/hookshot/internal/physics"
)

// Tuning holds the controller's movement settings.
type Tuning struct {
	WalkSpeed   float32 `yaml:"walk_speed"`
	SprintSpeed float32 `yaml:"sprint_speed"`
	SwingSpeed  float32 `yaml:"swing_speed"`
	CrouchSpeed float32 `yaml:"crouch_speed"`

	GroundDrag    float32       `yaml:"ground_drag"`
	JumpForce     float32       `yaml:"jump_force"`
	JumpCooldown  time.Duration `yaml:"jump_cooldown"`
	AirMultiplier float32       `yaml:"air_multiplier"`

	CrouchYScale  float32 `yaml:"crouch_y_scale"`
	CrouchImpulse float32 `yaml:"crouch_impulse"`

	PlayerHeight  float32 `yaml:"player_height"`
	MaxSlopeAngle float32 `yaml:"max_slope_angle"` // degrees

	// Force multipliers applied to the speed cap.
	GroundForce   float32 `yaml:"ground_force"`
	SlopeForce    float32 `yaml:"slope_force"`
	SlopeAdhesion float32 `yaml:"slope_adhesion"`

	// Extra ray length below the feet.
	GroundProbe float32 `yaml:"ground_probe"`
	SlopeProbe  float32 `yaml:"slope_probe"`

	LaunchDelay        time.Duration `yaml:"launch_delay"`
	RestrictionTimeout time.Duration `yaml:"restriction_timeout"`
	BaseFOV            float32       `yaml:"base_fov"`
	GrappleFOV         float32       `yaml:"grapple_fov"`

	GroundMask physics.LayerMask `yaml:"-"`
}

// DefaultTuning returns the stock movement settings.
func DefaultTuning() Tuning {
	return Tuning{
		WalkSpeed:          7,
		SprintSpeed:        10,
		SwingSpeed:         20,
		CrouchSpeed:        3.5,
		GroundDrag:         5,
		JumpForce:          12,
		JumpCooldown:       250 * time.Millisecond,
		AirMultiplier:      0.4,
		CrouchYScale:       0.5,
		CrouchImpulse:      5,
		PlayerHeight:       2,
		MaxSlopeAngle:      40,
		GroundForce:        10,
		SlopeForce:         20,
		SlopeAdhesion:      80,
		GroundProbe:        0.2,
		SlopeProbe:         0.3,
		LaunchDelay:        100 * time.Millisecond,
		RestrictionTimeout: 3 * time.Second,
		BaseFOV:            85,
		GrappleFOV:         95,
		GroundMask:         physics.LayerGround,
	}
}

// Speeds returns the per-mode caps.
func (t Tuning) Speeds() Speeds {
	return Speeds{
		Walk:   t.WalkSpeed,
		Sprint: t.SprintSpeed,
		Swing:  t.SwingSpeed,
		Crouch: t.CrouchSpeed,
	}
}
