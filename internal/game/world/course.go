package world

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/hookshot/internal/physics"
	"github.com/Faultbox/hookshot/pkg/math"
)

var (
	ErrNoSpawn     = errors.New("course has no spawn point")
	ErrEmptyCourse = errors.New("course has no colliders")
)

// BoxSpec is an axis-aligned block.
type BoxSpec struct {
	Center [3]float32 `yaml:"center"`
	Size   [3]float32 `yaml:"size"`
	Layers []string   `yaml:"layers"`
}

// RampSpec is a wedge over the XZ rectangle Min..Max.
type RampSpec struct {
	Min    [2]float32 `yaml:"min"` // x, z
	Max    [2]float32 `yaml:"max"` // x, z
	Base   float32    `yaml:"base"`
	Angle  float32    `yaml:"angle"` // degrees
	AlongZ bool       `yaml:"along_z"`
	Layers []string   `yaml:"layers"`
}

// Course is a level layout.
type Course struct {
	Name  string      `yaml:"name"`
	Spawn *[3]float32 `yaml:"spawn"`
	Boxes []BoxSpec   `yaml:"boxes"`
	Ramps []RampSpec  `yaml:"ramps"`
}

// DefaultCourse returns the built-in practice course: a floor, a walkable
// ramp, a ramp too steep to climb and grapple pillars at rising heights.
func DefaultCourse() *Course {
	ground := []string{"ground"}
	both := []string{"ground", "grappleable"}
	return &Course{
		Name:  "practice",
		Spawn: &[3]float32{0, 1, 0},
		Boxes: []BoxSpec{
			{Center: [3]float32{0, -0.5, 0}, Size: [3]float32{200, 1, 200}, Layers: ground},
			{Center: [3]float32{0, 6, 24}, Size: [3]float32{3, 12, 3}, Layers: both},
			{Center: [3]float32{-18, 8, 16}, Size: [3]float32{3, 16, 3}, Layers: both},
			{Center: [3]float32{18, 10, 40}, Size: [3]float32{4, 20, 4}, Layers: both},
			{Center: [3]float32{0, 14.5, 52}, Size: [3]float32{10, 1, 10}, Layers: both},
		},
		Ramps: []RampSpec{
			{Min: [2]float32{6, -4}, Max: [2]float32{16, 4}, Angle: 20, Layers: ground},
			{Min: [2]float32{-16, -4}, Max: [2]float32{-8, 4}, Angle: 55, AlongZ: true, Layers: ground},
		},
	}
}

// LoadCourse reads a course from a YAML file.
func LoadCourse(path string) (*Course, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read course: %w", err)
	}

	c := &Course{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse course %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("course %s: %w", path, err)
	}
	return c, nil
}

// Validate checks that the course can be played.
func (c *Course) Validate() error {
	if c.Spawn == nil {
		return ErrNoSpawn
	}
	if len(c.Boxes) == 0 && len(c.Ramps) == 0 {
		return ErrEmptyCourse
	}
	for i, b := range c.Boxes {
		if b.Size[0] <= 0 || b.Size[1] <= 0 || b.Size[2] <= 0 {
			return fmt.Errorf("box %d: size must be positive", i)
		}
		if _, err := parseLayers(b.Layers); err != nil {
			return fmt.Errorf("box %d: %w", i, err)
		}
	}
	for i, r := range c.Ramps {
		if r.Max[0] <= r.Min[0] || r.Max[1] <= r.Min[1] {
			return fmt.Errorf("ramp %d: empty footprint", i)
		}
		if r.Angle <= -90 || r.Angle >= 90 {
			return fmt.Errorf("ramp %d: angle %v out of range", i, r.Angle)
		}
		if _, err := parseLayers(r.Layers); err != nil {
			return fmt.Errorf("ramp %d: %w", i, err)
		}
	}
	return nil
}

// SpawnPoint returns the body centre to start from.
func (c *Course) SpawnPoint() math.Vec3 {
	if c.Spawn == nil {
		return math.Zero
	}
	return math.Vec3{X: c.Spawn[0], Y: c.Spawn[1], Z: c.Spawn[2]}
}

// Build adds the course geometry to w.
func (c *Course) Build(w *physics.World) error {
	if err := c.Validate(); err != nil {
		return err
	}
	for _, b := range c.Boxes {
		mask, _ := parseLayers(b.Layers)
		w.AddCollider(physics.NewBox(
			math.Vec3{X: b.Center[0], Y: b.Center[1], Z: b.Center[2]},
			math.Vec3{X: b.Size[0], Y: b.Size[1], Z: b.Size[2]},
			mask,
		))
	}
	for _, r := range c.Ramps {
		mask, _ := parseLayers(r.Layers)
		w.AddCollider(&physics.Ramp{
			MinX:   r.Min[0],
			MaxX:   r.Max[0],
			MinZ:   r.Min[1],
			MaxZ:   r.Max[1],
			Base:   r.Base,
			Angle:  r.Angle,
			AlongZ: r.AlongZ,
			Mask:   mask,
		})
	}
	return nil
}

// parseLayers maps layer names to a mask. No names means ground.
func parseLayers(names []string) (physics.LayerMask, error) {
	if len(names) == 0 {
		return physics.LayerGround, nil
	}
	var mask physics.LayerMask
	for _, n := range names {
		switch n {
		case "ground":
			mask |= physics.LayerGround
		case "grappleable":
			mask |= physics.LayerGrappleable
		default:
			return 0, fmt.Errorf("unknown layer %q", n)
		}
	}
	return mask, nil
}
