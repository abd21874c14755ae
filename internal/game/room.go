package game

import (
	"context"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/coder/websocket"
	"github.com/igtm/baseball/internal/ws"
)

// Room binds one Session to one client connection. The physics loop is the
// only goroutine that touches the session; the snapshot loop only reads the
// snapshot the physics loop last published.
type Room struct {
	conn    *ws.Conn
	session *Session
	pending TickInput
	inputMu sync.Mutex
	snap    atomic.Pointer[Snapshot]
	cancel  context.CancelFunc
	done    chan struct{}
}

func NewRoom(conn *ws.Conn, session *Session) *Room {
	r := &Room{
		conn:    conn,
		session: session,
		done:    make(chan struct{}),
	}
	r.snap.Store(session.Snapshot())
	return r
}

func (r *Room) Start(ctx context.Context) {
	ctx, r.cancel = context.WithCancel(ctx)

	r.conn.SendPayload(ws.MsgSessionStart, 0, ws.SessionStartPayload{
		SessionID: r.session.ID,
		Team:      r.conn.Team,
	})

	go r.readLoop(ctx)
	go r.snapshotLoop(ctx)
	go func() {
		r.physicsLoop(ctx)
		close(r.done)
	}()
}

// Done returns a channel that closes when the room's physics loop exits.
func (r *Room) Done() <-chan struct{} {
	return r.done
}

// Snapshot returns the most recently published render view.
func (r *Room) Snapshot() *Snapshot {
	return r.snap.Load()
}

func (r *Room) Stop() {
	if r.cancel != nil {
		r.cancel()
	}
}

func (r *Room) readLoop(ctx context.Context) {
	msgs := r.conn.ReadLoop(ctx)
	for {
		select {
		case msg, ok := <-msgs:
			if !ok {
				log.Printf("session %s: client disconnected", r.session.ID)
				r.cancel()
				return
			}
			r.handleMessage(msg)
		case <-ctx.Done():
			return
		}
	}
}

func (r *Room) handleMessage(msg ws.Message) {
	switch msg.Type {
	case ws.MsgSwing:
		r.inputMu.Lock()
		r.pending.Swing = true
		r.inputMu.Unlock()

	case ws.MsgControl:
		var p ws.ControlPayload
		if err := ws.DecodePayload(msg, &p); err != nil {
			r.reject(err.Error())
			return
		}
		in, err := controlInput(p)
		if err != nil {
			r.reject(err.Error())
			return
		}
		r.inputMu.Lock()
		r.pending.Control = in.Control
		r.pending.Tier = in.Tier
		r.inputMu.Unlock()

	case ws.MsgPing:
		var ping ws.PingPayload
		if err := ws.DecodePayload(msg, &ping); err != nil {
			return
		}
		r.conn.SendPayload(ws.MsgPong, r.snap.Load().Tick, ws.PongPayload{
			ClientTime: ping.ClientTime,
			ServerTime: uint64(time.Now().UnixMilli()),
		})
	}
}

func (r *Room) reject(reason string) {
	log.Printf("session %s: rejected input: %s", r.session.ID, reason)
	r.conn.SendPayload(ws.MsgError, r.snap.Load().Tick, ws.ErrorPayload{Message: reason})
}

// controlInput validates a control frame.
func controlInput(p ws.ControlPayload) (TickInput, error) {
	c, ok := ParseControl(p.Action)
	if !ok {
		return TickInput{}, fmt.Errorf("unknown control action %q", p.Action)
	}
	in := TickInput{Control: c}
	switch c {
	case ControlStart, ControlDebugTier:
		if p.Tier == "" && c == ControlStart {
			return in, nil
		}
		tier, err := ParseTier(p.Tier)
		if err != nil {
			return TickInput{}, err
		}
		in.Tier = tier
	}
	return in, nil
}

func (r *Room) physicsLoop(ctx context.Context) {
	ticker := time.NewTicker(time.Second / PhysicsRate)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.tick()
		case <-ctx.Done():
			return
		}
	}
}

func (r *Room) tick() {
	// Swing and control are one-shot: consume them.
	r.inputMu.Lock()
	in := r.pending
	r.pending = TickInput{}
	r.inputMu.Unlock()

	events := r.session.Tick(in)
	snap := r.session.Snapshot()
	r.snap.Store(snap)

	if len(events) == 0 {
		return
	}
	r.conn.SendPayload(ws.MsgEvents, snap.Tick, events)
	for _, e := range events {
		if e.Kind == EvGameOver || e.Kind == EvVictory {
			r.conn.SendPayload(ws.MsgGameOver, snap.Tick, ws.GameOverPayload{
				Victory: e.Kind == EvVictory,
				Tier:    e.Tier,
				Round:   e.Round,
			})
		}
	}
}

func (r *Room) snapshotLoop(ctx context.Context) {
	ticker := time.NewTicker(time.Second / SnapshotRate)
	defer ticker.Stop()

	var last uint64
	first := true
	for {
		select {
		case <-ticker.C:
			snap := r.snap.Load()
			if !first && snap.Tick == last {
				continue
			}
			first = false
			last = snap.Tick
			r.conn.SendPayload(ws.MsgGameState, snap.Tick, snap)
		case <-ctx.Done():
			return
		}
	}
}

// Manager creates a room per connection and keeps them addressable by
// session id.
type Manager struct {
	mu     sync.RWMutex
	rooms  map[string]*Room
	tuning Tuning
	debug  bool
}

func NewManager(tun Tuning, debug bool) *Manager {
	return &Manager{
		rooms:  make(map[string]*Room),
		tuning: tun,
		debug:  debug,
	}
}

func (m *Manager) CreateSession(conn *ws.Conn) <-chan struct{} {
	session := NewSession(conn.ID, conn.Team, m.tuning, time.Now().UnixNano(), m.debug)
	room := NewRoom(conn, session)

	// Start before publishing: Shutdown reads the room's cancel func.
	room.Start(context.Background())

	m.mu.Lock()
	m.rooms[conn.ID] = room
	m.mu.Unlock()

	go func() {
		<-room.Done()
		m.mu.Lock()
		delete(m.rooms, conn.ID)
		m.mu.Unlock()
	}()
	return room.Done()
}

// Lookup finds a live room by session id.
func (m *Manager) Lookup(id string) (*Room, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.rooms[id]
	return r, ok
}

// Len is the number of live rooms.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.rooms)
}

// Shutdown stops every live room and closes its connection.
func (m *Manager) Shutdown() {
	m.mu.RLock()
	rooms := make([]*Room, 0, len(m.rooms))
	for _, r := range m.rooms {
		rooms = append(rooms, r)
	}
	m.mu.RUnlock()

	for _, r := range rooms {
		r.Stop()
		r.conn.CloseWith(websocket.StatusGoingAway, "server shutting down")
	}
}

// SessionSnapshot returns the latest snapshot of a live session.
func (m *Manager) SessionSnapshot(id string) (*Snapshot, bool) {
	r, ok := m.Lookup(id)
	if !ok {
		return nil, false
	}
	return r.Snapshot(), true
}
