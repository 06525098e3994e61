package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNodeDefaults(t *testing.T) {
	n := NewNode("Nina Simone", "jazz", map[string]any{"era": "60s"})

	assert.NotEmpty(t, n.ID)
	assert.Equal(t, "Nina Simone", n.Label)
	assert.Equal(t, "jazz", n.Genre)
	assert.Equal(t, 12.0, n.Size)
	assert.Equal(t, "#808080", n.Color)
	assert.Equal(t, "60s", n.Properties["era"])

	withID := NewNodeWithID("nina", "Nina Simone", "jazz", nil)
	assert.Equal(t, "nina", withID.ID)
}

func TestGraphFindNodeByID(t *testing.T) {
	g := NewGraph("test")
	g.AddNode(NewNodeWithID("a", "A", "rock", nil))

	n, err := g.FindNodeByID("a")
	require.NoError(t, err)
	assert.Equal(t, "A", n.Label)

	// The returned pointer aliases the graph's slice.
	n.SetPosition(7, 9)
	assert.Equal(t, 7.0, g.Nodes[0].X)

	_, err = g.FindNodeByID("ghost")
	assert.ErrorContains(t, err, "node with ID ghost not found")
}

func TestGraphNeighborIDs(t *testing.T) {
	g := NewGraph("test")
	for _, id := range []string{"a", "b", "c", "d"} {
		g.AddNode(NewNodeWithID(id, id, "", nil))
	}
	g.AddEdge(NewEdge("a", "b", "related", 1))
	g.AddEdge(NewEdge("c", "a", "related", 1)) // incoming counts too
	g.AddEdge(NewEdge("a", "b", "related", 1)) // duplicate edge, one neighbor
	g.AddEdge(NewEdge("a", "a", "related", 1)) // self-loop is ignored

	assert.ElementsMatch(t, []string{"b", "c"}, g.NeighborIDs("a"))
	assert.Equal(t, 2, g.Degree("a"))
	assert.Equal(t, []string{"a"}, g.NeighborIDs("b"))
	assert.Empty(t, g.NeighborIDs("d"))
}

func TestFindNodesByGenre(t *testing.T) {
	g := NewGraph("test")
	g.AddNode(NewNodeWithID("a", "A", "jazz", nil))
	g.AddNode(NewNodeWithID("b", "B", "rock", nil))
	g.AddNode(NewNodeWithID("c", "C", "jazz", nil))

	jazz := g.FindNodesByGenre("jazz")
	require.Len(t, jazz, 2)
	assert.Equal(t, "a", jazz[0].ID)
	assert.Empty(t, g.FindNodesByGenre("polka"))
}
