// Package camera provides the first-person camera that rides on the
// character.
package camera

import (
	"time"

	"github.com/chewxy/math32"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/Faultbox/hookshot/pkg/math"
)

// MaxPitch keeps the view short of straight up or down.
const MaxPitch = 89 * math.Deg2Rad

// Config holds camera settings.
type Config struct {
	Sensitivity   float32       `yaml:"sensitivity"` // radians per pixel
	InvertY       bool          `yaml:"invert_y"`
	EyeOffset     float32       `yaml:"eye_offset"` // above the body centre at full height
	FOVTransition time.Duration `yaml:"fov_transition"`
	Near          float32       `yaml:"near"`
	Far           float32       `yaml:"far"`
}

// DefaultConfig returns the stock camera settings.
func DefaultConfig() Config {
	return Config{
		Sensitivity:   0.0025,
		EyeOffset:     0.6,
		FOVTransition: 250 * time.Millisecond,
		Near:          0.05,
		Far:           500,
	}
}

// FirstPerson is a yaw/pitch camera. Yaw 0 looks down +Z.
type FirstPerson struct {
	Position math.Vec3
	Yaw      float32 // radians
	Pitch    float32 // radians, positive looks up

	cfg Config

	fov    float32
	target float32
	tween  *gween.Tween
}

// New creates a camera at the origin with the given vertical field of view
// in degrees.
func New(cfg Config, fov float32) *FirstPerson {
	return &FirstPerson{cfg: cfg, fov: fov, target: fov}
}

// SetConfig replaces the settings. A running transition keeps its length.
func (c *FirstPerson) SetConfig(cfg Config) { c.cfg = cfg }

// HandleMouse turns the camera by a relative mouse motion.
func (c *FirstPerson) HandleMouse(dx, dy float32) {
	if c.cfg.InvertY {
		dy = -dy
	}
	c.Yaw -= dx * c.cfg.Sensitivity
	c.Pitch = math.Clamp(c.Pitch-dy*c.cfg.Sensitivity, -MaxPitch, MaxPitch)
}

// Follow puts the eye above a body centre, lowered with the body's height
// scale.
func (c *FirstPerson) Follow(center math.Vec3, heightScale float32) {
	c.Position = center.Add(math.Vec3{Y: c.cfg.EyeOffset * heightScale})
}

// Forward returns the unit look direction.
func (c *FirstPerson) Forward() math.Vec3 {
	cp := math32.Cos(c.Pitch)
	return math.Vec3{
		X: math32.Sin(c.Yaw) * cp,
		Y: math32.Sin(c.Pitch),
		Z: math32.Cos(c.Yaw) * cp,
	}
}

// FlatForward returns the look direction on the XZ plane.
func (c *FirstPerson) FlatForward() math.Vec3 {
	return math.Vec3{X: math32.Sin(c.Yaw), Z: math32.Cos(c.Yaw)}
}

// FlatRight returns the right direction on the XZ plane.
func (c *FirstPerson) FlatRight() math.Vec3 {
	return math.Vec3{X: -math32.Cos(c.Yaw), Z: math32.Sin(c.Yaw)}
}

// AimRay returns the eye position and look direction.
func (c *FirstPerson) AimRay() (origin, dir math.Vec3) {
	return c.Position, c.Forward()
}

// FieldOfView returns the current vertical field of view in degrees.
func (c *FirstPerson) FieldOfView() float32 { return c.fov }

// TargetFieldOfView returns where the current transition ends.
func (c *FirstPerson) TargetFieldOfView() float32 { return c.target }

// SetFieldOfView starts a transition from the current field of view to deg.
// Asking for the value already targeted does nothing.
func (c *FirstPerson) SetFieldOfView(deg float32) {
	if deg == c.target {
		return
	}
	c.target = deg
	if c.cfg.FOVTransition <= 0 {
		c.fov = deg
		c.tween = nil
		return
	}
	c.tween = gween.New(c.fov, deg, float32(c.cfg.FOVTransition.Seconds()), ease.OutQuad)
}

// Update advances the field of view transition.
func (c *FirstPerson) Update(dt time.Duration) {
	if c.tween == nil {
		return
	}
	fov, done := c.tween.Update(float32(dt.Seconds()))
	c.fov = fov
	if done {
		c.fov = c.target
		c.tween = nil
	}
}

// ViewMatrix returns the view matrix.
func (c *FirstPerson) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position, c.Position.Add(c.Forward()), math.Up)
}

// Projection returns the perspective matrix for the given aspect ratio.
func (c *FirstPerson) Projection(aspect float32) math.Mat4 {
	return math.Perspective(c.fov, aspect, c.cfg.Near, c.cfg.Far)
}
