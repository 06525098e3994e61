// Package graph holds the runtime state of a loaded artist graph: the current
// position of every node and the adjacency sets the physics core queries. The
// store is safe for concurrent readers (render, broadcast) alongside the single
// active simulation writer.
package graph

import (
	"sync"

	"github.com/TFMV/artistgraph/models"
	"github.com/TFMV/artistgraph/physics"
)

// Store is a mutex-guarded position store and topology provider.
type Store struct {
	mu        sync.RWMutex
	positions map[string]physics.Point
	adjacency map[string]map[string]struct{}
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		positions: make(map[string]physics.Point),
		adjacency: make(map[string]map[string]struct{}),
	}
}

// FromModel builds a runtime store from a serializable graph, seeding
// positions from the node coordinates and adjacency from the edges.
// Self-loops are dropped; edges referencing unknown nodes are ignored.
func FromModel(g *models.Graph) *Store {
	s := NewStore()
	for _, node := range g.Nodes {
		s.AddNode(node.ID, physics.Point{X: node.X, Y: node.Y})
	}
	for _, edge := range g.Edges {
		s.Connect(edge.Source, edge.Target)
	}
	return s
}

// AddNode registers a node at the given position. Re-adding a node updates
// its position and keeps its adjacency.
func (s *Store) AddNode(id string, p physics.Point) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.positions[id] = p
	if s.adjacency[id] == nil {
		s.adjacency[id] = make(map[string]struct{})
	}
}

// Connect links two known nodes in both directions. Self-loops and edges to
// unknown nodes are ignored.
func (s *Store) Connect(a, b string) {
	if a == b {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.positions[a]; !ok {
		return
	}
	if _, ok := s.positions[b]; !ok {
		return
	}
	s.adjacency[a][b] = struct{}{}
	s.adjacency[b][a] = struct{}{}
}

// Remove deletes a node, its position and every edge touching it.
func (s *Store) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.positions, id)
	for other := range s.adjacency[id] {
		delete(s.adjacency[other], id)
	}
	delete(s.adjacency, id)
}

// Neighbors returns a copy of the IDs directly connected to the given node.
func (s *Store) Neighbors(id string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	set := s.adjacency[id]
	if len(set) == 0 {
		return nil
	}
	out := make([]string, 0, len(set))
	for nid := range set {
		out = append(out, nid)
	}
	return out
}

// Position reports the current position of a node.
func (s *Store) Position(id string) (physics.Point, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.positions[id]
	return p, ok
}

// SetPosition commits a new position for a node. Unknown nodes are ignored so
// a simulation step cannot resurrect a concurrently deleted node.
func (s *Store) SetPosition(id string, p physics.Point) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.positions[id]; !ok {
		return
	}
	s.positions[id] = p
}

// Snapshot returns a copy of all current positions.
func (s *Store) Snapshot() map[string]physics.Point {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]physics.Point, len(s.positions))
	for id, p := range s.positions {
		out[id] = p
	}
	return out
}

// Len reports the number of nodes in the store.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.positions)
}

// ApplyTo writes the store's positions back onto a serializable graph, e.g.
// before rendering a snapshot.
func (s *Store) ApplyTo(g *models.Graph) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range g.Nodes {
		if p, ok := s.positions[g.Nodes[i].ID]; ok {
			g.Nodes[i].X = p.X
			g.Nodes[i].Y = p.Y
		}
	}
}
