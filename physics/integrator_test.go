package physics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntegrateFollowerZeroDistances(t *testing.T) {
	cfg := DefaultConfig()
	pos := Point{X: 10, Y: 10}

	// Follower sitting exactly on the dragged node and on a peer: both the
	// spring and repulsion terms are skipped instead of dividing by zero.
	newPos, newVel := integrateFollower(cfg, pos, Point{}, 100, pos, Point{X: 2, Y: 0}, []Point{pos})

	require.False(t, math.IsNaN(newPos.X) || math.IsNaN(newPos.Y))
	require.False(t, math.IsNaN(newVel.X) || math.IsNaN(newVel.Y))

	// Only the follow term contributes: 2*0.3 damped by 0.85.
	assert.InDelta(t, 0.51, newVel.X, 1e-9)
	assert.InDelta(t, 0.0, newVel.Y, 1e-9)
}

func TestIntegrateFollowerRepulsion(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SpringConstant = 0

	pos := Point{X: 0, Y: 0}
	peer := Point{X: 1, Y: 0}

	// One peer at unit distance pushes with the full repulsion strength.
	_, vel := integrateFollower(cfg, pos, Point{}, 0, Point{X: 500, Y: 0}, Point{}, []Point{peer})

	assert.InDelta(t, -cfg.RepulsionStrength*cfg.DragDamping, vel.X, 1e-9)
	assert.InDelta(t, 0.0, vel.Y, 1e-9)
}

func TestIntegrateFollowerRepulsionCutoff(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SpringConstant = 0

	// A peer at or beyond the ideal distance exerts nothing.
	_, vel := integrateFollower(cfg, Point{}, Point{}, 0, Point{X: 500, Y: 0}, Point{},
		[]Point{{X: cfg.IdealDistance, Y: 0}, {X: cfg.IdealDistance + 50, Y: 0}})

	assert.Zero(t, vel.X)
	assert.Zero(t, vel.Y)
}

func TestIntegrateFollowerSpringDirection(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FollowStrength = 0

	dragged := Point{X: 0, Y: 0}

	// Stretched beyond the rest distance the spring pulls inward.
	_, vel := integrateFollower(cfg, Point{X: 150, Y: 0}, Point{}, 100, dragged, Point{}, nil)
	assert.Negative(t, vel.X)

	// Compressed below it the spring pushes outward.
	_, vel = integrateFollower(cfg, Point{X: 50, Y: 0}, Point{}, 100, dragged, Point{}, nil)
	assert.Positive(t, vel.X)
}

func TestPointOps(t *testing.T) {
	a := Point{X: 3, Y: 4}
	b := Point{X: 1, Y: 2}

	assert.Equal(t, Point{X: 4, Y: 6}, a.Add(b))
	assert.Equal(t, Point{X: 2, Y: 2}, a.Sub(b))
	assert.Equal(t, Point{X: 6, Y: 8}, a.Scale(2))
	assert.InDelta(t, 5.0, a.Len(), 1e-9)
	assert.InDelta(t, math.Sqrt(8), a.Dist(b), 1e-9)
}
