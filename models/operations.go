package models

import (
	"time"

	"github.com/google/uuid"
)

// NewNode creates a new artist node with a unique ID and timestamps
func NewNode(label, genre string, properties map[string]any) *Node {
	now := time.Now()
	return &Node{
		ID:         uuid.New().String(),
		Label:      label,
		Genre:      genre,
		Properties: properties,
		Size:       12.0,      // Default size
		Color:      "#808080", // Default color (gray)
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// NewNodeWithID creates a new artist node with the specified ID
func NewNodeWithID(id, label, genre string, properties map[string]any) *Node {
	node := NewNode(label, genre, properties)
	node.ID = id
	return node
}

// NewEdge creates a new relation edge with a unique ID and timestamps
func NewEdge(source, target, edgeType string, weight float64) *Edge {
	now := time.Now()
	return &Edge{
		ID:        uuid.New().String(),
		Source:    source,
		Target:    target,
		Type:      edgeType,
		Weight:    weight,
		Color:     "#666666", // Default gray
		Style:     "solid",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// SetPosition sets the position of a node
func (n *Node) SetPosition(x, y float64) {
	n.X = x
	n.Y = y
	n.UpdatedAt = time.Now()
}

// NewGraph creates a new graph with a unique ID and timestamps
func NewGraph(name string) *Graph {
	now := time.Now()
	return &Graph{
		ID:        uuid.New().String(),
		Name:      name,
		Nodes:     []Node{},
		Edges:     []Edge{},
		Width:     800,
		Height:    600,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NewDataGraph creates a new data graph with the specified data source
func NewDataGraph(name, dataSource string) *DataGraph {
	return &DataGraph{
		Graph:      NewGraph(name),
		DataSource: dataSource,
		Metadata:   make(map[string]any),
		Background: "#ffffff",
	}
}

// AddNode appends a node to the graph
func (g *Graph) AddNode(node *Node) {
	g.Nodes = append(g.Nodes, *node)
	g.UpdatedAt = time.Now()
}

// AddEdge appends an edge to the graph
func (g *Graph) AddEdge(edge *Edge) {
	g.Edges = append(g.Edges, *edge)
	g.UpdatedAt = time.Now()
}
