package render

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TFMV/artistgraph/models"
)

func renderTestGraph() *models.DataGraph {
	dg := models.NewDataGraph("render-test", "json")
	a := models.NewNodeWithID("a", "Miles Davis", "jazz", nil)
	a.SetPosition(100, 100)
	a.Color = "#FBBC05"
	b := models.NewNodeWithID("b", "Herbie Hancock", "jazz", nil)
	b.SetPosition(300, 200)
	dg.AddNode(a)
	dg.AddNode(b)
	dg.AddEdge(models.NewEdge("a", "b", "collaborated", 2.0))
	return dg
}

func TestGetRenderer(t *testing.T) {
	svg, err := GetRenderer("SVG")
	require.NoError(t, err)
	assert.Equal(t, "SVG Renderer", svg.Name())

	js, err := GetRenderer("json")
	require.NoError(t, err)
	assert.Equal(t, "JSON Renderer", js.Name())

	_, err = GetRenderer("webgl")
	assert.ErrorContains(t, err, "unsupported output format: webgl")
}

func TestSVGRender(t *testing.T) {
	out, err := Generate(renderTestGraph(), "svg")
	require.NoError(t, err)

	svg := string(out)
	assert.Contains(t, svg, "<svg")
	assert.Contains(t, svg, "</svg>")
	assert.Contains(t, svg, `fill="#FBBC05"`)
	assert.Contains(t, svg, "Miles Davis")
	assert.Contains(t, svg, "<line")
	// Two nodes, two circles.
	assert.Equal(t, 2, strings.Count(svg, "<circle"))
}

func TestSVGRenderSkipsDanglingEdges(t *testing.T) {
	dg := renderTestGraph()
	dg.AddEdge(models.NewEdge("a", "ghost", "related", 1.0))

	out, err := Generate(dg, "svg")
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(out), "<line"))
}

func TestJSONRender(t *testing.T) {
	out, err := Generate(renderTestGraph(), "json")
	require.NoError(t, err)

	var decoded struct {
		Nodes []struct {
			ID    string  `json:"id"`
			Label string  `json:"label"`
			X     float64 `json:"x"`
			Y     float64 `json:"y"`
		} `json:"nodes"`
		Edges []struct {
			Source string  `json:"source"`
			Target string  `json:"target"`
			Weight float64 `json:"weight"`
		} `json:"edges"`
		Metadata map[string]any `json:"metadata"`
	}
	require.NoError(t, json.Unmarshal(out, &decoded))

	require.Len(t, decoded.Nodes, 2)
	assert.Equal(t, "a", decoded.Nodes[0].ID)
	assert.Equal(t, 100.0, decoded.Nodes[0].X)

	require.Len(t, decoded.Edges, 1)
	assert.Equal(t, 2.0, decoded.Edges[0].Weight)

	assert.Equal(t, float64(2), decoded.Metadata["nodeCount"])
	assert.Equal(t, "#ffffff", decoded.Metadata["background"])
}
