package room

import (
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/amonieson/isometric-city/internal/action"
	"github.com/amonieson/isometric-city/internal/apperr"
	"github.com/amonieson/isometric-city/internal/game"
	"github.com/amonieson/isometric-city/internal/protocol"
)

// MaxPlayers is the fixed capacity of every room.
const MaxPlayers = 2

// Conn is the duplex channel to one member.
type Conn interface {
	Send([]byte) error
}

type member struct {
	info protocol.PlayerInfo
	conn Conn
	seq  uint64
}

// Room is one two-party game: its members and the authoritative state.
// Rooms are only constructed by a Manager.
type Room struct {
	id   string
	code string
	log  *zap.Logger

	// cmdMu serializes state transitions so each command is applied and
	// broadcast as one unit.
	cmdMu sync.Mutex

	mu      sync.RWMutex
	members map[string]member
	joins   uint64
	state   *game.GameState

	now func() time.Time
}

func newRoom(id, code string, log *zap.Logger) *Room {
	return &Room{
		id:      id,
		code:    code,
		log:     log.With(zap.String("room_id", id), zap.String("room_code", code)),
		members: make(map[string]member, MaxPlayers),
		now:     time.Now,
	}
}

func (r *Room) ID() string   { return r.id }
func (r *Room) Code() string { return r.code }

// AddPlayer inserts p unless the room is already at capacity.
func (r *Room) AddPlayer(p protocol.PlayerInfo, c Conn) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.members) >= MaxPlayers {
		return false
	}
	r.joins++
	r.members[p.ID] = member{info: p, conn: c, seq: r.joins}
	return true
}

func (r *Room) RemovePlayer(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.members[id]; !ok {
		return false
	}
	delete(r.members, id)
	return true
}

func (r *Room) IsFull() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.members) >= MaxPlayers
}

func (r *Room) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.members)
}

// Players returns a copy of the membership ordered by join time.
func (r *Room) Players() []protocol.PlayerInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.playersLocked()
}

func (r *Room) playersLocked() []protocol.PlayerInfo {
	ms := make([]member, 0, len(r.members))
	for _, m := range r.members {
		ms = append(ms, m)
	}
	sort.Slice(ms, func(i, j int) bool {
		if ms[i].info.JoinedAt != ms[j].info.JoinedAt {
			return ms[i].info.JoinedAt < ms[j].info.JoinedAt
		}
		return ms[i].seq < ms[j].seq
	})
	out := make([]protocol.PlayerInfo, len(ms))
	for i, m := range ms {
		out[i] = m.info
	}
	return out
}

func (r *Room) Player(id string) (protocol.PlayerInfo, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.members[id]
	return m.info, ok
}

// SetState replaces the authoritative state. It waits for any command in
// flight so a command never observes a half-installed state.
func (r *Room) SetState(s *game.GameState) {
	r.cmdMu.Lock()
	defer r.cmdMu.Unlock()
	r.mu.Lock()
	r.state = s
	r.mu.Unlock()
}

// State returns a copy of the authoritative state, or nil before one is set.
func (r *Room) State() *game.GameState {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state.Clone()
}

// Apply runs a against the current state. On success the new state is
// installed and the diff is broadcast to every member before the next
// command may start; on failure nothing changes and nothing is sent.
func (r *Room) Apply(a action.Action) (action.Result, error) {
	r.cmdMu.Lock()
	defer r.cmdMu.Unlock()

	r.mu.RLock()
	prev := r.state
	r.mu.RUnlock()
	if prev == nil {
		return action.Result{}, apperr.New(apperr.CodeInternal, "room has no game state")
	}

	res, err := action.Process(a, prev)
	if err != nil {
		return action.Result{}, err
	}

	r.mu.Lock()
	r.state = res.State
	r.mu.Unlock()

	update := protocol.NewStateUpdate(prev, res.State, res.ChangedTiles, r.now())
	if err := r.Broadcast(protocol.EventStateUpdate, update); err != nil {
		r.log.Error("broadcast state update", zap.Error(err))
	}
	return res, nil
}

// Broadcast delivers one event to every member.
func (r *Room) Broadcast(event string, payload any) error {
	return r.BroadcastExcept("", event, payload)
}

// BroadcastExcept delivers one event to every member except senderID.
func (r *Room) BroadcastExcept(senderID, event string, payload any) error {
	b, err := protocol.Encode(event, payload)
	if err != nil {
		return err
	}

	r.mu.RLock()
	targets := make(map[string]Conn, len(r.members))
	for id, m := range r.members {
		if id == senderID || m.conn == nil {
			continue
		}
		targets[id] = m.conn
	}
	r.mu.RUnlock()

	for id, c := range targets {
		if err := c.Send(b); err != nil {
			r.log.Debug("deliver to member", zap.String("player_id", id), zap.String("event", event), zap.Error(err))
		}
	}
	return nil
}
