package models

import (
	"fmt"
)

// FindNodeByID returns a node by its ID
func (g *Graph) FindNodeByID(id string) (*Node, error) {
	for i := range g.Nodes {
		if g.Nodes[i].ID == id {
			return &g.Nodes[i], nil
		}
	}
	return nil, fmt.Errorf("node with ID %s not found", id)
}

// FindNodesByGenre returns all artists of a specific genre
func (g *Graph) FindNodesByGenre(genre string) []Node {
	var result []Node
	for _, node := range g.Nodes {
		if node.Genre == genre {
			result = append(result, node)
		}
	}
	return result
}

// NeighborIDs returns the IDs of all nodes directly connected to the given
// node, in either edge direction. Self-loops are never reported.
func (g *Graph) NeighborIDs(id string) []string {
	seen := make(map[string]struct{})
	var result []string
	for _, edge := range g.Edges {
		var other string
		switch {
		case edge.Source == id:
			other = edge.Target
		case edge.Target == id:
			other = edge.Source
		default:
			continue
		}
		if other == id {
			continue
		}
		if _, ok := seen[other]; ok {
			continue
		}
		seen[other] = struct{}{}
		result = append(result, other)
	}
	return result
}

// Degree returns the number of distinct neighbors of a node
func (g *Graph) Degree(id string) int {
	return len(g.NeighborIDs(id))
}
