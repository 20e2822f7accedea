package config

import (
	"fmt"

	"go.uber.org/multierr"

	"github.com/Faultbox/hookshot/internal/logger"
)

// Validate reports every setting the game cannot run with.
func (c *Config) Validate() error {
	var err error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			err = multierr.Append(err, fmt.Errorf(format, args...))
		}
	}

	check(c.Window.Width > 0 && c.Window.Height > 0, "window: size %dx%d must be positive", c.Window.Width, c.Window.Height)
	check(c.Audio.MasterVolume >= 0 && c.Audio.MasterVolume <= 1, "audio: master_volume %v outside [0, 1]", c.Audio.MasterVolume)
	check(c.Audio.SFXVolume >= 0 && c.Audio.SFXVolume <= 1, "audio: sfx_volume %v outside [0, 1]", c.Audio.SFXVolume)

	m := c.Movement
	check(m.WalkSpeed >= 0 && m.SprintSpeed >= 0 && m.SwingSpeed >= 0 && m.CrouchSpeed >= 0, "movement: speeds must not be negative")
	check(m.PlayerHeight > 0, "movement: player_height %v must be positive", m.PlayerHeight)
	check(m.MaxSlopeAngle > 0 && m.MaxSlopeAngle < 90, "movement: max_slope_angle %v outside (0, 90)", m.MaxSlopeAngle)
	check(m.CrouchYScale > 0 && m.CrouchYScale <= 1, "movement: crouch_y_scale %v outside (0, 1]", m.CrouchYScale)
	check(m.GroundDrag >= 0, "movement: ground_drag %v is negative", m.GroundDrag)
	check(m.JumpCooldown >= 0 && m.LaunchDelay >= 0 && m.RestrictionTimeout >= 0, "movement: delays must not be negative")
	check(m.BaseFOV > 0 && m.BaseFOV < 180 && m.GrappleFOV > 0 && m.GrappleFOV < 180, "movement: field of view outside (0, 180)")

	g := c.Grapple
	check(g.MaxDistance > 0, "grapple: max_distance %v must be positive", g.MaxDistance)
	check(g.Delay >= 0 && g.Cooldown >= 0 && g.ReleaseTimeout >= 0, "grapple: delays must not be negative")
	check(g.OvershootY > 0, "grapple: overshoot_y %v must be positive", g.OvershootY)
	check(g.FootOffset >= 0, "grapple: foot_offset %v is negative", g.FootOffset)

	check(c.Camera.Near > 0 && c.Camera.Far > c.Camera.Near, "camera: need 0 < near < far, got %v, %v", c.Camera.Near, c.Camera.Far)
	check(c.Camera.FOVTransition >= 0, "camera: fov_transition %v is negative", c.Camera.FOVTransition)

	check(c.Physics.Gravity > 0, "physics: gravity %v must be positive", c.Physics.Gravity)
	check(c.Physics.FixedStep > 0, "physics: fixed_step %v must be positive", c.Physics.FixedStep)
	check(c.Physics.MaxStepsPerFrame > 0, "physics: max_steps_per_frame %d must be positive", c.Physics.MaxStepsPerFrame)

	if _, lerr := logger.ParseLevel(c.Logging.Level); lerr != nil {
		err = multierr.Append(err, fmt.Errorf("logging: %w", lerr))
	}

	return err
}
