// Package ingest loads artist graphs from external data sources and turns
// them into the domain model the rest of the application works with.
package ingest

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/TFMV/artistgraph/models"
)

// DataProcessor is implemented by every supported input format.
type DataProcessor interface {
	// ProcessData takes raw bytes and returns a graph representation.
	ProcessData(data []byte) (*models.DataGraph, error)

	// Name returns the name of the processor.
	Name() string
}

// Palette provides color schemes for graph visualization, keyed by genre with
// a rotating fallback for genres it does not know.
type Palette struct {
	GenreColors map[string]string
	Fallback    []string
	EdgeColor   string
	Background  string
}

// DefaultPalette returns the standard genre palette.
func DefaultPalette() *Palette {
	return &Palette{
		GenreColors: map[string]string{
			"rock":       "#EA4335",
			"pop":        "#4285F4",
			"jazz":       "#FBBC05",
			"electronic": "#00BCD4",
			"hip-hop":    "#673AB7",
			"classical":  "#34A853",
			"folk":       "#FF5722",
			"metal":      "#3F51B5",
		},
		Fallback: []string{
			"#009688", // Teal
			"#E91E63", // Pink
			"#795548", // Brown
			"#607D8B", // Blue Gray
		},
		EdgeColor:  "#666666",
		Background: "#f8f8f8",
	}
}

// ColorFor picks a color for a genre, rotating through the fallback colors
// for genres outside the palette.
func (p *Palette) ColorFor(genre string, ordinal int) string {
	if c, ok := p.GenreColors[strings.ToLower(genre)]; ok {
		return c
	}
	return p.Fallback[ordinal%len(p.Fallback)]
}

// JSONProcessor handles JSON artist-graph data
type JSONProcessor struct {
	palette *Palette
}

// NewJSONProcessor creates a new JSON processor with the specified palette
func NewJSONProcessor(palette *Palette) *JSONProcessor {
	if palette == nil {
		palette = DefaultPalette()
	}
	return &JSONProcessor{palette: palette}
}

// Name returns the name of the processor
func (p *JSONProcessor) Name() string {
	return "JSON Processor"
}

type rawArtist struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Label string `json:"label"`
	Genre string `json:"genre"`
}

type rawRelation struct {
	Source string  `json:"source"`
	Target string  `json:"target"`
	Type   string  `json:"type"`
	Weight float64 `json:"weight"`
}

// ProcessData processes JSON data of the form
// {"artists": [...], "relations": [...]}; the generic keys "nodes" and
// "edges" are accepted as aliases.
func (p *JSONProcessor) ProcessData(data []byte) (*models.DataGraph, error) {
	var payload struct {
		Artists   []rawArtist   `json:"artists"`
		Nodes     []rawArtist   `json:"nodes"`
		Relations []rawRelation `json:"relations"`
		Edges     []rawRelation `json:"edges"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("error parsing JSON: %w", err)
	}

	artists := payload.Artists
	if len(artists) == 0 {
		artists = payload.Nodes
	}
	relations := payload.Relations
	if len(relations) == 0 {
		relations = payload.Edges
	}
	if len(artists) == 0 {
		return nil, fmt.Errorf("no artists found in input")
	}

	graph := models.NewDataGraph("JSON Import", "json")
	graph.Background = p.palette.Background
	graph.Width = 1200
	graph.Height = 900

	nodeMap := make(map[string]*models.Node)
	order := make([]*models.Node, 0, len(artists))
	fallbackCount := 0
	for _, a := range artists {
		if a.ID == "" {
			return nil, fmt.Errorf("artist with empty id")
		}
		if _, dup := nodeMap[a.ID]; dup {
			return nil, fmt.Errorf("duplicate artist id: %s", a.ID)
		}

		label := a.Name
		if label == "" {
			label = a.Label
		}
		if label == "" {
			label = a.ID
		}

		node := models.NewNodeWithID(a.ID, label, a.Genre, nil)
		node.Color = p.palette.ColorFor(a.Genre, fallbackCount)
		if _, known := p.palette.GenreColors[strings.ToLower(a.Genre)]; !known {
			fallbackCount++
		}

		nodeMap[a.ID] = node
		order = append(order, node)
	}

	for _, r := range relations {
		source, sourceExists := nodeMap[r.Source]
		target, targetExists := nodeMap[r.Target]
		if !sourceExists || !targetExists {
			return nil, fmt.Errorf("relation references unknown artist: %s -> %s", r.Source, r.Target)
		}

		// Size grows with degree; normalized below.
		source.Size += 1.0
		target.Size += 1.0

		relType := r.Type
		if relType == "" {
			relType = "related"
		}
		weight := r.Weight
		if weight <= 0 {
			weight = 1.0
		}

		edge := models.NewEdge(r.Source, r.Target, relType, weight)
		edge.Color = p.palette.EdgeColor
		graph.Graph.AddEdge(edge)
	}

	// Normalize node sizes (min 8, max 24) and commit in input order.
	for _, node := range order {
		if node.Size < 8.0 {
			node.Size = 8.0
		} else if node.Size > 24.0 {
			node.Size = 24.0
		}
		graph.Graph.AddNode(node)
	}

	graph.Metadata["artist_count"] = len(graph.Graph.Nodes)
	graph.Metadata["relation_count"] = len(graph.Graph.Edges)

	return graph, nil
}
