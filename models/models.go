// Package models provides data structures and interfaces for the artistgraph
// application. It defines the core domain models used throughout the
// application: artist nodes, the relations between them, and the graphs that
// hold both.
package models

import (
	"time"
)

// Node represents an artist in the graph
type Node struct {
	ID         string         `json:"id"`
	Label      string         `json:"label"`
	Genre      string         `json:"genre"`
	Size       float64        `json:"size"`
	Color      string         `json:"color"`
	X          float64        `json:"x"`
	Y          float64        `json:"y"`
	Properties map[string]any `json:"properties,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

// Edge represents a relation between two artists
type Edge struct {
	ID        string    `json:"id"`
	Source    string    `json:"source"` // ID of the source artist
	Target    string    `json:"target"` // ID of the target artist
	Type      string    `json:"type"`   // e.g., "collaboration", "influence"
	Weight    float64   `json:"weight"`
	Color     string    `json:"color"`
	Style     string    `json:"style"` // e.g., "solid", "dashed", "dotted"
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Graph represents a collection of artists and their relations
type Graph struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Nodes     []Node    `json:"nodes"`
	Edges     []Edge    `json:"edges"`
	Width     float64   `json:"width"`
	Height    float64   `json:"height"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DataGraph is a graph enriched with ingestion metadata and display defaults
type DataGraph struct {
	*Graph
	DataSource string         `json:"data_source"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	Background string         `json:"background"`
}
