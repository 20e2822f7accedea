package renderer

import (
	"github.com/Faultbox/hookshot/internal/physics"
	"github.com/Faultbox/hookshot/pkg/math"
)

// floatsPerVertex is position (3) + colour (3).
const floatsPerVertex = 6

// Color is an RGB colour in [0, 1].
type Color struct{ R, G, B float32 }

var (
	ColorGround      = Color{0.45, 0.5, 0.55}
	ColorGrappleable = Color{0.95, 0.75, 0.2}
	ColorBody        = Color{0.3, 0.9, 0.4}
	ColorRope        = Color{0.9, 0.9, 0.9}
	ColorTrajectory  = Color{0.3, 0.6, 1}
	ColorMiss        = Color{0.9, 0.25, 0.25}
)

// LineBatch collects coloured line segments for one draw call.
type LineBatch struct {
	verts []float32
}

// Reset empties the batch, keeping its storage.
func (b *LineBatch) Reset() { b.verts = b.verts[:0] }

// Len returns the number of vertices.
func (b *LineBatch) Len() int { return len(b.verts) / floatsPerVertex }

// Vertices returns the interleaved vertex data.
func (b *LineBatch) Vertices() []float32 { return b.verts }

// Line adds one segment.
func (b *LineBatch) Line(p, q math.Vec3, c Color) {
	b.verts = append(b.verts,
		p.X, p.Y, p.Z, c.R, c.G, c.B,
		q.X, q.Y, q.Z, c.R, c.G, c.B,
	)
}

// Segments adds collider outlines.
func (b *LineBatch) Segments(segs []physics.Segment, c Color) {
	for _, s := range segs {
		b.Line(s.A, s.B, c)
	}
}

// Polyline joins consecutive points.
func (b *LineBatch) Polyline(points []math.Vec3, c Color) {
	for i := 1; i < len(points); i++ {
		b.Line(points[i-1], points[i], c)
	}
}

// Cross marks a point with three axis-aligned strokes.
func (b *LineBatch) Cross(p math.Vec3, size float32, c Color) {
	h := size / 2
	b.Line(p.Add(math.Vec3{X: -h}), p.Add(math.Vec3{X: h}), c)
	b.Line(p.Add(math.Vec3{Y: -h}), p.Add(math.Vec3{Y: h}), c)
	b.Line(p.Add(math.Vec3{Z: -h}), p.Add(math.Vec3{Z: h}), c)
}
