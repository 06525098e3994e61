// Package render turns a positioned artist graph into static output. It only
// consumes final node positions; the interactive surface lives in the server
// package.
package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/TFMV/artistgraph/models"
)

// OutputOptions defines rendering configuration options
type OutputOptions struct {
	Format         string  // Output format (svg, json)
	Width          float64 // Width of the output
	Height         float64 // Height of the output
	Background     string  // Background color
	Timestamp      bool    // Include timestamp in visualization
	NodeSize       float64 // Default node size
	EdgeWidth      float64 // Default edge width
	FontSize       float64 // Font size for labels
	ShowLabels     bool    // Show artist names
	ShowEdgeLabels bool    // Show relation types
}

// Renderer is implemented by every output backend.
type Renderer interface {
	// Render creates a visualization of the graph using the provided options.
	Render(graph *models.Graph, options *OutputOptions) ([]byte, error)

	// Name returns the name of the renderer.
	Name() string
}

// NewDefaultOptions creates a default set of output options
func NewDefaultOptions(format string) *OutputOptions {
	return &OutputOptions{
		Format:     format,
		Width:      800,
		Height:     600,
		Background: "#f8f8f8",
		Timestamp:  true,
		NodeSize:   12.0,
		EdgeWidth:  1.0,
		FontSize:   10.0,
		ShowLabels: true,
	}
}

// GetRenderer returns the appropriate renderer based on format
func GetRenderer(format string) (Renderer, error) {
	switch strings.ToLower(format) {
	case "svg":
		return &SVGRenderer{}, nil
	case "json":
		return &JSONRenderer{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// Generate renders an already positioned data graph in the given format.
func Generate(graph *models.DataGraph, format string) ([]byte, error) {
	options := NewDefaultOptions(format)
	options.Width = graph.Width
	options.Height = graph.Height
	if graph.Background != "" {
		options.Background = graph.Background
	}
	renderer, err := GetRenderer(format)
	if err != nil {
		return nil, err
	}
	return renderer.Render(graph.Graph, options)
}

// SVGRenderer outputs SVG format
type SVGRenderer struct{}

// Name returns the name of the renderer
func (r *SVGRenderer) Name() string {
	return "SVG Renderer"
}

// Render creates an SVG representation of the graph
func (r *SVGRenderer) Render(graph *models.Graph, options *OutputOptions) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8" standalone="no"?>
<svg width="%f" height="%f" viewBox="0 0 %f %f" xmlns="http://www.w3.org/2000/svg">
<rect width="100%%" height="100%%" fill="%s"/>
`, options.Width, options.Height, options.Width, options.Height, options.Background))

	// Draw edges first so nodes sit on top.
	for _, edge := range graph.Edges {
		sourceNode, err := graph.FindNodeByID(edge.Source)
		if err != nil {
			continue
		}
		targetNode, err := graph.FindNodeByID(edge.Target)
		if err != nil {
			continue
		}

		edgeColor := "#666666"
		if edge.Color != "" {
			edgeColor = edge.Color
		}

		strokeWidth := options.EdgeWidth
		if edge.Weight > 0 {
			strokeWidth = math.Max(0.5, edge.Weight*options.EdgeWidth*0.5)
		}

		dashArray := ""
		if edge.Style == "dashed" {
			dashArray = `stroke-dasharray="5,3"`
		} else if edge.Style == "dotted" {
			dashArray = `stroke-dasharray="1,3"`
		}

		buf.WriteString(fmt.Sprintf(`<line x1="%f" y1="%f" x2="%f" y2="%f"
  stroke="%s" stroke-width="%f" %s />
`, sourceNode.X, sourceNode.Y, targetNode.X, targetNode.Y, edgeColor, strokeWidth, dashArray))

		if options.ShowEdgeLabels && edge.Type != "" {
			midX := (sourceNode.X + targetNode.X) / 2
			midY := (sourceNode.Y + targetNode.Y) / 2
			buf.WriteString(fmt.Sprintf(`<text x="%f" y="%f" font-family="sans-serif" font-size="%f"
  fill="%s" text-anchor="middle" alignment-baseline="middle">%s</text>
`, midX, midY, options.FontSize, edgeColor, edge.Type))
		}
	}

	// Draw nodes
	for _, node := range graph.Nodes {
		nodeColor := "#4285F4"
		if node.Color != "" {
			nodeColor = node.Color
		}

		radius := node.Size
		if radius <= 0 {
			radius = options.NodeSize
		}

		buf.WriteString(fmt.Sprintf(`<circle cx="%f" cy="%f" r="%f" fill="%s"
  stroke="rgba(0,0,0,0.3)" stroke-width="0.5" />
`, node.X, node.Y, radius, nodeColor))

		if options.ShowLabels && node.Label != "" {
			labelY := node.Y + radius + options.FontSize + 2
			buf.WriteString(fmt.Sprintf(`<text x="%f" y="%f" font-family="sans-serif" font-size="%f"
  fill="#333333" text-anchor="middle">%s</text>
`, node.X, labelY, options.FontSize, node.Label))
		}
	}

	if options.Timestamp {
		timeStr := time.Now().Format("2006-01-02 15:04:05")
		buf.WriteString(fmt.Sprintf(`<text x="5" y="%f" font-family="sans-serif" font-size="8" fill="#808080">%s</text>
`, options.Height-5, timeStr))
	}

	buf.WriteString(`</svg>`)

	return buf.Bytes(), nil
}

// JSONRenderer outputs raw JSON format
type JSONRenderer struct{}

// Name returns the name of the renderer
func (r *JSONRenderer) Name() string {
	return "JSON Renderer"
}

// Render creates a JSON representation of the graph
func (r *JSONRenderer) Render(graph *models.Graph, options *OutputOptions) ([]byte, error) {
	type jsonNode struct {
		ID    string  `json:"id"`
		Label string  `json:"label"`
		Genre string  `json:"genre,omitempty"`
		X     float64 `json:"x"`
		Y     float64 `json:"y"`
		Size  float64 `json:"size"`
		Color string  `json:"color"`
	}

	type jsonEdge struct {
		Source string  `json:"source"`
		Target string  `json:"target"`
		Type   string  `json:"type,omitempty"`
		Weight float64 `json:"weight"`
		Color  string  `json:"color"`
		Style  string  `json:"style"`
	}

	type jsonGraph struct {
		Nodes    []jsonNode     `json:"nodes"`
		Edges    []jsonEdge     `json:"edges"`
		Metadata map[string]any `json:"metadata"`
	}

	out := jsonGraph{
		Nodes: make([]jsonNode, 0, len(graph.Nodes)),
		Edges: make([]jsonEdge, 0, len(graph.Edges)),
		Metadata: map[string]any{
			"width":      options.Width,
			"height":     options.Height,
			"background": options.Background,
			"timestamp":  time.Now().Format(time.RFC3339),
			"nodeCount":  len(graph.Nodes),
			"edgeCount":  len(graph.Edges),
		},
	}

	for _, node := range graph.Nodes {
		out.Nodes = append(out.Nodes, jsonNode{
			ID:    node.ID,
			Label: node.Label,
			Genre: node.Genre,
			X:     node.X,
			Y:     node.Y,
			Size:  node.Size,
			Color: node.Color,
		})
	}

	for _, edge := range graph.Edges {
		out.Edges = append(out.Edges, jsonEdge{
			Source: edge.Source,
			Target: edge.Target,
			Type:   edge.Type,
			Weight: edge.Weight,
			Color:  edge.Color,
			Style:  edge.Style,
		})
	}

	return json.MarshalIndent(out, "", "  ")
}
