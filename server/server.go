// Package server hosts the interactive explorer: an embedded canvas page, a
// JSON graph endpoint, and a websocket bridge that relays pointer events into
// the drag simulation and streams node positions back to the browser.
package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"

	"github.com/TFMV/artistgraph/graph"
	"github.com/TFMV/artistgraph/models"
	"github.com/TFMV/artistgraph/physics"
)

// Server serves one loaded artist graph and its drag simulation.
type Server struct {
	logger *slog.Logger
	model  *models.DataGraph
	store  *graph.Store
	ctrl   *physics.DragController

	upgrader       websocket.Upgrader
	broadcastEvery time.Duration
}

// New wires a server around a positioned graph, its runtime store and the
// drag controller. A nil logger falls back to slog.Default.
func New(model *models.DataGraph, store *graph.Store, ctrl *physics.DragController, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		logger: logger.With("component", "server"),
		model:  model,
		store:  store,
		ctrl:   ctrl,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			// The explorer is same-origin; permissive checks keep local
			// developer setups (file://, odd ports) working.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		broadcastEvery: 33 * time.Millisecond,
	}
}

// Router builds the HTTP routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/", s.handleIndex)
	r.Get("/api/graph", s.handleGraph)
	r.Get("/ws", s.handleWS)
	return r
}

// Start runs the HTTP server until the context is cancelled.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Router(),
		ReadTimeout:  10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

// handleIndex serves the embedded explorer page.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(indexHTML))
}

type graphNode struct {
	ID    string  `json:"id"`
	Label string  `json:"label"`
	Genre string  `json:"genre,omitempty"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Size  float64 `json:"size"`
	Color string  `json:"color"`
}

type graphEdge struct {
	Source string  `json:"source"`
	Target string  `json:"target"`
	Weight float64 `json:"weight"`
	Color  string  `json:"color"`
}

type graphPayload struct {
	Name       string      `json:"name"`
	Width      float64     `json:"width"`
	Height     float64     `json:"height"`
	Background string      `json:"background"`
	Nodes      []graphNode `json:"nodes"`
	Edges      []graphEdge `json:"edges"`
}

// handleGraph returns topology plus the live positions from the store.
func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	positions := s.store.Snapshot()

	payload := graphPayload{
		Name:       s.model.Name,
		Width:      s.model.Width,
		Height:     s.model.Height,
		Background: s.model.Background,
		Nodes:      make([]graphNode, 0, len(s.model.Nodes)),
		Edges:      make([]graphEdge, 0, len(s.model.Edges)),
	}
	for _, node := range s.model.Nodes {
		gn := graphNode{
			ID:    node.ID,
			Label: node.Label,
			Genre: node.Genre,
			X:     node.X,
			Y:     node.Y,
			Size:  node.Size,
			Color: node.Color,
		}
		if p, ok := positions[node.ID]; ok {
			gn.X, gn.Y = p.X, p.Y
		}
		payload.Nodes = append(payload.Nodes, gn)
	}
	for _, edge := range s.model.Edges {
		payload.Edges = append(payload.Edges, graphEdge{
			Source: edge.Source,
			Target: edge.Target,
			Weight: edge.Weight,
			Color:  edge.Color,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("encoding graph payload", "error", err)
	}
}

// pointerEvent is one grab/move/release message from the browser.
type pointerEvent struct {
	Type string  `json:"type"`
	ID   string  `json:"id"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

type nodePosition struct {
	ID string  `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

// positionFrame is one broadcast of all current node positions.
type positionFrame struct {
	Type  string         `json:"type"`
	State string         `json:"state"`
	Nodes []nodePosition `json:"nodes"`
}

// handleWS upgrades to a websocket, feeds pointer events into the drag
// controller and pushes position frames back on a fixed cadence.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Debug("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	done := make(chan struct{})

	// Writer: position frames on a ticker until the reader ends.
	go func() {
		ticker := time.NewTicker(s.broadcastEvery)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				frame := s.currentFrame()
				conn.SetWriteDeadline(time.Now().Add(2 * time.Second))
				if err := conn.WriteJSON(frame); err != nil {
					return
				}
			}
		}
	}()

	// Reader: pointer events drive the state machine.
	for {
		var ev pointerEvent
		if err := conn.ReadJSON(&ev); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Debug("websocket read failed", "error", err)
			}
			break
		}
		switch ev.Type {
		case "grab":
			s.ctrl.Grab(ev.ID)
		case "move":
			s.ctrl.Move(ev.ID, physics.Point{X: ev.X, Y: ev.Y})
		case "release":
			s.ctrl.Release(ev.ID)
		default:
			s.logger.Debug("unknown pointer event", "type", ev.Type)
		}
	}
	close(done)
}

// currentFrame snapshots positions into a deterministic, id-sorted frame.
func (s *Server) currentFrame() positionFrame {
	positions := s.store.Snapshot()
	frame := positionFrame{
		Type:  "positions",
		State: s.ctrl.State().String(),
		Nodes: make([]nodePosition, 0, len(positions)),
	}
	for id, p := range positions {
		frame.Nodes = append(frame.Nodes, nodePosition{ID: id, X: p.X, Y: p.Y})
	}
	sort.Slice(frame.Nodes, func(i, j int) bool { return frame.Nodes[i].ID < frame.Nodes[j].ID })
	return frame
}
