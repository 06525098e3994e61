package physics

import (
	"math"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/TFMV/artistgraph/models"
)

// ForceDirectedLayout positions a freshly loaded graph before interaction
// begins, using a Fruchterman-Reingold style iteration: pairwise repulsion,
// spring attraction along edges, gravity toward the center, and damped
// velocity integration with a cooling temperature.
type ForceDirectedLayout struct {
	width, height float64
	positions     map[string]Point
	velocities    map[string]Point
	adjacency     map[string]map[string]float64 // neighbor -> accumulated edge weight
	k             float64                       // optimal pairwise distance
	temperature   float64
	iterations    int
	maxIterations int
	threshold     float64
	stable        bool

	gravity        float64
	repulsionForce float64
	dampingFactor  float64
	springConstant float64
}

// NewForceDirectedLayout creates a layout sized to the given canvas.
func NewForceDirectedLayout(width, height float64) *ForceDirectedLayout {
	if width <= 0 {
		width = 800
	}
	if height <= 0 {
		height = 600
	}
	return &ForceDirectedLayout{
		width:          width,
		height:         height,
		positions:      make(map[string]Point),
		velocities:     make(map[string]Point),
		adjacency:      make(map[string]map[string]float64),
		temperature:    1.0,
		maxIterations:  500,
		threshold:      0.001,
		gravity:        0.05,
		repulsionForce: 100.0,
		dampingFactor:  0.9,
		springConstant: 0.04,
	}
}

// Initialize seeds positions and caches adjacency. Nodes without a position
// are scattered organically with simplex noise; nodes that already carry
// coordinates keep them.
func (fd *ForceDirectedLayout) Initialize(graph *models.Graph, seed int64) {
	nodeCount := float64(len(graph.Nodes))
	if nodeCount == 0 {
		fd.stable = true
		return
	}
	fd.k = math.Sqrt(fd.width * fd.height / nodeCount)

	noise := opensimplex.NewNormalized(seed)
	for i := range graph.Nodes {
		node := &graph.Nodes[i]
		if node.X == 0 && node.Y == 0 {
			// Two decorrelated noise samples per node give a stable, organic
			// scatter for a fixed seed.
			t := float64(i) * 0.613
			fd.positions[node.ID] = Point{
				X: noise.Eval2(t, 0.0) * fd.width,
				Y: noise.Eval2(0.0, t+17.0) * fd.height,
			}
		} else {
			fd.positions[node.ID] = Point{X: node.X, Y: node.Y}
		}
		fd.velocities[node.ID] = Point{}
	}

	fd.adjacency = make(map[string]map[string]float64)
	for _, edge := range graph.Edges {
		if edge.Source == edge.Target {
			continue
		}
		if _, ok := fd.positions[edge.Source]; !ok {
			continue
		}
		if _, ok := fd.positions[edge.Target]; !ok {
			continue
		}
		fd.link(edge.Source, edge.Target, edge.Weight)
		fd.link(edge.Target, edge.Source, edge.Weight)
	}
}

func (fd *ForceDirectedLayout) link(from, to string, weight float64) {
	if fd.adjacency[from] == nil {
		fd.adjacency[from] = make(map[string]float64)
	}
	fd.adjacency[from][to] += weight
}

// Step performs one iteration. It returns true once the layout is stable or
// the iteration budget is spent.
func (fd *ForceDirectedLayout) Step() bool {
	if fd.stable || fd.iterations >= fd.maxIterations {
		return true
	}

	forces := make(map[string]Point, len(fd.positions))

	ids := make([]string, 0, len(fd.positions))
	for id := range fd.positions {
		ids = append(ids, id)
	}

	// Gravity toward the center, stronger from far away.
	centerX, centerY := fd.width/2, fd.height/2
	for _, id := range ids {
		pos := fd.positions[id]
		dx := centerX - pos.X
		dy := centerY - pos.Y
		distance := math.Max(0.1, math.Hypot(dx, dy))
		g := fd.gravity * (distance / math.Min(fd.width, fd.height))
		forces[id] = Point{X: dx * g, Y: dy * g}
	}

	// Repulsion between every pair.
	for i, a := range ids {
		pa := fd.positions[a]
		for j := i + 1; j < len(ids); j++ {
			b := ids[j]
			pb := fd.positions[b]
			dx := pa.X - pb.X
			dy := pa.Y - pb.Y
			distance := math.Max(0.1, math.Hypot(dx, dy))
			repulsive := (fd.k * fd.k / distance) * fd.repulsionForce / 100.0
			dx /= distance
			dy /= distance
			forces[a] = forces[a].Add(Point{X: dx * repulsive, Y: dy * repulsive})
			forces[b] = forces[b].Sub(Point{X: dx * repulsive, Y: dy * repulsive})
		}
	}

	// Attraction along edges, weighted.
	for a, neighbors := range fd.adjacency {
		pa := fd.positions[a]
		for b, weight := range neighbors {
			pb := fd.positions[b]
			dx := pb.X - pa.X
			dy := pb.Y - pa.Y
			distance := math.Max(0.1, math.Hypot(dx, dy))
			attractive := distance * distance / fd.k * fd.springConstant * (1.0 + weight)
			forces[a] = forces[a].Add(Point{X: dx / distance * attractive, Y: dy / distance * attractive})
		}
	}

	// Integrate with temperature limiting.
	totalEnergy := 0.0
	for _, id := range ids {
		f := forces[id]
		magnitude := f.Len()
		if magnitude > 0 {
			scale := math.Min(magnitude, fd.temperature) / magnitude
			f = f.Scale(scale)
		}

		v := fd.velocities[id].Add(f).Scale(fd.dampingFactor)
		fd.velocities[id] = v

		pos := fd.positions[id].Add(v)
		padding := fd.k * 0.5
		pos.X = math.Max(padding, math.Min(fd.width-padding, pos.X))
		pos.Y = math.Max(padding, math.Min(fd.height-padding, pos.Y))
		fd.positions[id] = pos

		totalEnergy += magnitude
	}

	fd.temperature *= 0.95
	fd.iterations++
	fd.stable = totalEnergy/float64(len(ids)) < fd.threshold
	return fd.stable
}

// Apply writes the computed positions back onto the graph's nodes.
func (fd *ForceDirectedLayout) Apply(graph *models.Graph) {
	for i := range graph.Nodes {
		node := &graph.Nodes[i]
		if pos, ok := fd.positions[node.ID]; ok {
			node.X = pos.X
			node.Y = pos.Y
		}
	}
}

// Settle runs a complete layout pass over the graph: initialize, iterate until
// stable or maxSteps frames, then apply the result.
func Settle(graph *models.Graph, seed int64, maxSteps int) {
	if maxSteps <= 0 {
		maxSteps = 500
	}
	layout := NewForceDirectedLayout(graph.Width, graph.Height)
	layout.Initialize(graph, seed)
	for i := 0; i < maxSteps; i++ {
		if layout.Step() {
			break
		}
	}
	layout.Apply(graph)
}
