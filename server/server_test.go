package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TFMV/artistgraph/graph"
	"github.com/TFMV/artistgraph/models"
	"github.com/TFMV/artistgraph/physics"
)

func newTestServer(t *testing.T) (*Server, *graph.Store) {
	t.Helper()

	dg := models.NewDataGraph("test-graph", "json")
	a := models.NewNodeWithID("a", "Artist A", "rock", nil)
	a.SetPosition(100, 100)
	b := models.NewNodeWithID("b", "Artist B", "jazz", nil)
	b.SetPosition(200, 100)
	dg.AddNode(a)
	dg.AddNode(b)
	dg.AddEdge(models.NewEdge("a", "b", "related", 1.0))

	store := graph.FromModel(dg.Graph)
	cfg := physics.DefaultConfig()
	ctrl := physics.NewDragController(store, store, physics.NewManualScheduler(), cfg, nil)

	srv := New(dg, store, ctrl, nil)
	srv.broadcastEvery = 5 * time.Millisecond
	return srv, store
}

func TestHandleIndex(t *testing.T) {
	srv, _ := newTestServer(t)
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
}

func TestHandleGraph(t *testing.T) {
	srv, store := newTestServer(t)
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	// Live store positions override the serialized coordinates.
	store.SetPosition("a", physics.Point{X: 150, Y: 160})

	resp, err := http.Get(ts.URL + "/api/graph")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var payload graphPayload
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))

	assert.Equal(t, "test-graph", payload.Name)
	require.Len(t, payload.Nodes, 2)
	require.Len(t, payload.Edges, 1)

	assert.Equal(t, "a", payload.Nodes[0].ID)
	assert.Equal(t, 150.0, payload.Nodes[0].X)
	assert.Equal(t, 160.0, payload.Nodes[0].Y)
	assert.Equal(t, 200.0, payload.Nodes[1].X)
}

func TestWebsocketDragFlow(t *testing.T) {
	srv, store := newTestServer(t)
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	send := func(ev pointerEvent) {
		require.NoError(t, conn.WriteJSON(ev))
	}
	send(pointerEvent{Type: "grab", ID: "a"})
	send(pointerEvent{Type: "move", ID: "a", X: 150, Y: 100})

	// Wait for a frame reflecting the dragged position; the grab and move are
	// processed asynchronously.
	deadline := time.Now().Add(2 * time.Second)
	var frame positionFrame
	moved := false
	for time.Now().Before(deadline) && !moved {
		conn.SetReadDeadline(time.Now().Add(time.Second))
		require.NoError(t, conn.ReadJSON(&frame))
		for _, n := range frame.Nodes {
			if n.ID == "a" && n.X == 150 {
				moved = true
			}
		}
	}
	require.True(t, moved, "never saw the dragged position broadcast")
	require.Equal(t, "dragging", frame.State)
	require.Len(t, frame.Nodes, 2)
	assert.Equal(t, "a", frame.Nodes[0].ID, "frames are id-sorted")

	p, ok := store.Position("a")
	require.True(t, ok)
	assert.Equal(t, physics.Point{X: 150, Y: 100}, p)

	// The connected node moved too.
	pb, _ := store.Position("b")
	assert.NotEqual(t, 200.0, pb.X)

	send(pointerEvent{Type: "release", ID: "a"})
}

func TestWebsocketUnknownEventIgnored(t *testing.T) {
	srv, _ := newTestServer(t)
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteJSON(pointerEvent{Type: "wiggle", ID: "a"}))

	// The connection stays up and frames keep flowing.
	var frame positionFrame
	conn.SetReadDeadline(time.Now().Add(time.Second))
	require.NoError(t, conn.ReadJSON(&frame))
	assert.Equal(t, "positions", frame.Type)
	assert.Equal(t, "idle", frame.State)
}

func TestCurrentFrameSorted(t *testing.T) {
	srv, _ := newTestServer(t)

	frame := srv.currentFrame()
	require.Len(t, frame.Nodes, 2)
	assert.Equal(t, "a", frame.Nodes[0].ID)
	assert.Equal(t, "b", frame.Nodes[1].ID)
	assert.Equal(t, "idle", frame.State)
}
