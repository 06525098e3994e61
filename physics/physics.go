// Package physics implements the interactive simulation behind the artistgraph
// explorer. It has two halves: a force-directed layout that positions a freshly
// loaded graph, and a drag simulation that makes the neighbors of a grabbed
// artist follow it with spring-like motion, then coast to rest after release.
//
// The drag simulation is deliberately small and frame-driven: one grab opens a
// session, every pointer move advances each connected node by a single
// integration step, and release hands the residual velocities to a decay loop
// that runs once per display frame until everything settles.
package physics

import (
	"math"
)

// Point is a 2-D position or velocity vector.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns the component-wise sum of two points.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the component-wise difference of two points.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Scale returns the point multiplied by a scalar.
func (p Point) Scale(f float64) Point {
	return Point{X: p.X * f, Y: p.Y * f}
}

// Dist returns the Euclidean distance between two points.
func (p Point) Dist(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Len returns the magnitude of the point treated as a vector.
func (p Point) Len() float64 {
	return math.Hypot(p.X, p.Y)
}

// Topology answers adjacency queries for the loaded graph. Implementations
// must be side-effect-free; the drag controller queries it once per grab.
type Topology interface {
	// Neighbors returns the IDs of all nodes directly connected to id.
	Neighbors(id string) []string
}

// PositionStore holds the current position of every node. The rendering layer
// owns it; the simulation mutates it while a session is active.
type PositionStore interface {
	// Position reports the current position of a node. ok is false when the
	// node is unknown, e.g. deleted while a session was running.
	Position(id string) (p Point, ok bool)

	// SetPosition commits a new position for a node.
	SetPosition(id string, p Point)
}
