package physics

import (
	"math"
)

// integrateFollower advances one connected node by a single frame. It is a
// pure function over the node's current position and velocity, its grab-time
// distance to the dragged node, the dragged node's new position and per-frame
// delta, and a snapshot of the other connected nodes' positions.
//
// The frame applies, in order: the follow force (a fraction of the dragged
// node's motion), the spring restoring force toward the grab-time separation,
// inverse-square repulsion against every peer closer than IdealDistance,
// velocity damping, and finally Euler integration of the position.
//
// Degenerate geometry is skipped rather than failed: a zero distance to the
// dragged node drops the spring term, a zero distance to a peer drops that
// repulsion term.
func integrateFollower(cfg Config, pos, vel Point, restDistance float64, dragged, delta Point, peers []Point) (Point, Point) {
	vel.X += delta.X * cfg.FollowStrength
	vel.Y += delta.Y * cfg.FollowStrength

	dx := pos.X - dragged.X
	dy := pos.Y - dragged.Y
	if d := math.Hypot(dx, dy); d > 0 {
		// Negative error contracts, positive error expands, back toward the
		// separation captured at grab time.
		f := -(d - restDistance) * cfg.SpringConstant
		vel.X += f * dx / d
		vel.Y += f * dy / d
	}

	for _, peer := range peers {
		px := pos.X - peer.X
		py := pos.Y - peer.Y
		d := math.Hypot(px, py)
		if d <= 0 || d >= cfg.IdealDistance {
			continue
		}
		r := cfg.RepulsionStrength / (d * d)
		vel.X += r * px / d
		vel.Y += r * py / d
	}

	vel.X *= cfg.DragDamping
	vel.Y *= cfg.DragDamping

	return pos.Add(vel), vel
}
