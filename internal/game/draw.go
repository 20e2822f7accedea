package game

import (
	"github.com/Faultbox/hookshot/internal/engine/renderer"
	"github.com/Faultbox/hookshot/internal/game/world"
	"github.com/Faultbox/hookshot/internal/physics"
)

const markerSize = 0.3

// buildScene fills b with the course wireframe, the character, the rope
// while grappling and the predicted launch arc.
func buildScene(b *renderer.LineBatch, l *world.Level) {
	b.Reset()

	for _, c := range l.Physics.Colliders() {
		color := renderer.ColorGround
		if c.Layer().Has(physics.LayerGrappleable) {
			color = renderer.ColorGrappleable
		}
		b.Segments(c.Edges(), color)
	}
	b.Segments(l.Body.Edges(), renderer.ColorBody)

	if l.Grapple.IsGrappling() {
		s := l.Grapple.Session()
		if s.TargetAcquired {
			b.Line(l.Body.Position(), s.Point, renderer.ColorRope)
			b.Cross(s.Point, markerSize, renderer.ColorRope)
		} else {
			b.Cross(s.Point, markerSize, renderer.ColorMiss)
		}
	}

	if arc := l.Arc(); arc != nil {
		b.Polyline(arc, renderer.ColorTrajectory)
	}
}
