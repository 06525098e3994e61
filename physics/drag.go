package physics

import (
	"log/slog"
	"math"
	"sync"
)

// SessionState identifies where the controller is in the grab → drag → release
// lifecycle.
type SessionState int

const (
	// StateIdle means no session exists.
	StateIdle SessionState = iota
	// StateDragging means a node is grabbed and pointer moves drive the
	// simulation.
	StateDragging
	// StateDecelerating means the node was released and residual velocities
	// are decaying frame by frame.
	StateDecelerating
)

// String returns the state name for logging.
func (s SessionState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDragging:
		return "dragging"
	case StateDecelerating:
		return "decelerating"
	default:
		return "unknown"
	}
}

// followerState is the transient scratch state for one connected node. It
// lives in a side map owned by the session, never on the shared node records,
// and is discarded with the session.
type followerState struct {
	vel          Point
	restDistance float64 // distance to the dragged node at grab time
	restAngle    float64 // kept for diagnostics, not used by the forces
	settled      bool
	gone         bool // node vanished mid-session; skipped from then on
}

// dragSession captures one grab → release cycle: the dragged node, the last
// pointer position, and the connected-node set frozen at grab time.
type dragSession struct {
	draggedID    string
	prevPointer  Point
	connected    []string // immutable for the session's lifetime
	followers    map[string]*followerState
	frame        FrameHandle
	framePending bool
}

// DragController runs the drag simulation. At most one session is active at a
// time; a new grab cancels whatever the previous session was still doing.
//
// All entry points serialize on an internal mutex, so pointer events and decay
// frames never interleave mid-step. A generation counter invalidates decay
// callbacks that fire after their session was cancelled.
type DragController struct {
	mu     sync.Mutex
	topo   Topology
	store  PositionStore
	frames FrameScheduler
	cfg    Config
	logger *slog.Logger

	state      SessionState
	session    *dragSession
	generation uint64
}

// NewDragController wires the simulation to its collaborators. A nil logger
// falls back to slog.Default.
func NewDragController(topo Topology, store PositionStore, frames FrameScheduler, cfg Config, logger *slog.Logger) *DragController {
	if logger == nil {
		logger = slog.Default()
	}
	return &DragController{
		topo:   topo,
		store:  store,
		frames: frames,
		cfg:    cfg,
		logger: logger.With("component", "drag"),
		state:  StateIdle,
	}
}

// State reports the controller's current lifecycle state.
func (c *DragController) State() SessionState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// DraggedID returns the node held by the active or decaying session, or ""
// when idle.
func (c *DragController) DraggedID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil {
		return ""
	}
	return c.session.draggedID
}

// Velocity reports the transient velocity of a connected node in the active
// or decaying session. ok is false when the node carries no session state,
// including after teardown.
func (c *DragController) Velocity(id string) (Point, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil {
		return Point{}, false
	}
	st, ok := c.session.followers[id]
	if !ok || st.gone {
		return Point{}, false
	}
	return st.vel, true
}

// Grab opens a new drag session for the given node, snapshotting its direct
// neighbors, their distances and angles. Any previous session — dragging or
// still decelerating — is cancelled first, discarding its residual motion.
//
// Grabbing a node the position store no longer knows is ignored.
func (c *DragController) Grab(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cancelLocked()

	origin, ok := c.store.Position(id)
	if !ok {
		c.logger.Debug("grab ignored, unknown node", "id", id)
		return
	}

	sess := &dragSession{
		draggedID:   id,
		prevPointer: origin,
		followers:   make(map[string]*followerState),
	}
	for _, nid := range c.topo.Neighbors(id) {
		if nid == id {
			continue // a node never follows itself
		}
		if _, dup := sess.followers[nid]; dup {
			continue
		}
		p, ok := c.store.Position(nid)
		if !ok {
			continue
		}
		sess.connected = append(sess.connected, nid)
		sess.followers[nid] = &followerState{
			restDistance: p.Dist(origin),
			restAngle:    math.Atan2(origin.Y-p.Y, origin.X-p.X),
		}
	}

	c.session = sess
	c.state = StateDragging
	c.logger.Debug("drag session opened", "id", id, "connected", len(sess.connected))
}

// Move handles one pointer-move event for the dragged node: it commits the new
// position, then integrates every connected node against the movement delta.
// Events for nodes other than the dragged one, or outside an active drag, are
// ignored.
func (c *DragController) Move(id string, to Point) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateDragging || c.session == nil || c.session.draggedID != id {
		return
	}
	if _, ok := c.store.Position(id); !ok {
		// The dragged node disappeared mid-session; abort outright.
		c.logger.Debug("dragged node vanished, aborting session", "id", id)
		c.cancelLocked()
		return
	}

	c.store.SetPosition(id, to)
	delta := to.Sub(c.session.prevPointer)
	c.stepFollowersLocked(to, delta)
	c.session.prevPointer = to
}

// Release converts the session to decay-only mode. The dragged node leaves the
// simulation; connected nodes keep their residual velocities and coast until
// every one of them settles. When nothing is moving the session tears down
// immediately.
func (c *DragController) Release(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateDragging || c.session == nil || c.session.draggedID != id {
		return
	}
	if c.allSettledLocked() {
		c.teardownLocked()
		return
	}
	c.state = StateDecelerating
	c.scheduleDecayLocked()
}

// Cancel discards any session, active or decaying, without waiting for
// convergence.
func (c *DragController) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cancelLocked()
}

// stepFollowersLocked advances every live connected node by one frame using a
// snapshot-then-commit update: all new states are computed from the positions
// observed at the start of the frame, so iteration order cannot influence the
// result.
func (c *DragController) stepFollowersLocked(dragged, delta Point) {
	sess := c.session

	snap := make(map[string]Point, len(sess.connected))
	for _, id := range sess.connected {
		st := sess.followers[id]
		if st.gone {
			continue
		}
		p, ok := c.store.Position(id)
		if !ok {
			st.gone = true
			c.logger.Debug("connected node vanished, skipping", "id", id)
			continue
		}
		snap[id] = p
	}

	for _, id := range sess.connected {
		st := sess.followers[id]
		if st.gone {
			continue
		}
		peers := make([]Point, 0, len(snap)-1)
		for oid, op := range snap {
			if oid != id {
				peers = append(peers, op)
			}
		}
		newPos, newVel := integrateFollower(c.cfg, snap[id], st.vel, st.restDistance, dragged, delta, peers)
		st.vel = newVel
		st.settled = false
		c.store.SetPosition(id, newPos)
	}
}

// decayFrame runs one post-release frame: damp every unsettled node's
// velocity, integrate the ones still above the settle threshold, and tear the
// session down once all of them are at rest. A generation mismatch means the
// session was cancelled after this frame was scheduled, making it a no-op.
func (c *DragController) decayFrame(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation || c.state != StateDecelerating || c.session == nil {
		return // stale callback
	}
	sess := c.session
	sess.framePending = false

	allSettled := true
	for _, id := range sess.connected {
		st := sess.followers[id]
		if st.settled || st.gone {
			continue
		}
		p, ok := c.store.Position(id)
		if !ok {
			st.gone = true
			continue
		}
		st.vel = st.vel.Scale(c.cfg.DecayFactor)
		if math.Abs(st.vel.X) > c.cfg.SettleThreshold || math.Abs(st.vel.Y) > c.cfg.SettleThreshold {
			c.store.SetPosition(id, p.Add(st.vel))
			allSettled = false
		} else {
			st.settled = true
		}
	}

	if allSettled {
		c.teardownLocked()
		return
	}
	c.scheduleDecayLocked()
}

// allSettledLocked marks nodes already below the settle threshold and reports
// whether every live connected node is at rest.
func (c *DragController) allSettledLocked() bool {
	all := true
	for _, id := range c.session.connected {
		st := c.session.followers[id]
		if st.gone || st.settled {
			continue
		}
		if math.Abs(st.vel.X) <= c.cfg.SettleThreshold && math.Abs(st.vel.Y) <= c.cfg.SettleThreshold {
			st.settled = true
			continue
		}
		all = false
	}
	return all
}

func (c *DragController) scheduleDecayLocked() {
	gen := c.generation
	c.session.framePending = true
	c.session.frame = c.frames.Schedule(func() { c.decayFrame(gen) })
}

// cancelLocked discards the current session, cancels any pending decay frame,
// and bumps the generation so an already-fired frame callback cannot mutate
// state afterward.
func (c *DragController) cancelLocked() {
	c.generation++
	if c.session != nil && c.session.framePending {
		c.frames.Cancel(c.session.frame)
	}
	c.session = nil
	c.state = StateIdle
}

// teardownLocked ends a converged session, dropping all transient per-node
// state with it.
func (c *DragController) teardownLocked() {
	c.logger.Debug("drag session settled", "id", c.session.draggedID)
	c.session = nil
	c.state = StateIdle
}
