// Package room holds live game rooms and the registry that indexes them by id
// and by join code.
package room

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/amonieson/isometric-city/internal/apperr"
	"github.com/amonieson/isometric-city/internal/game"
	"github.com/amonieson/isometric-city/internal/protocol"
)

const (
	codeChars      = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	CodeLength     = 6
	maxCodeRetries = 100
)

// ErrCodeSpaceExhausted is returned when no unused code was found within the
// retry budget.
var ErrCodeSpaceExhausted = errors.New("room: failed to generate a unique room code")

// RoomInfo is the diagnostic view of a room.
type RoomInfo struct {
	ID      string `json:"id"`
	Code    string `json:"code"`
	Players int    `json:"players"`
}

// Manager indexes rooms by id and by code. Both indexes change together
// under one lock.
type Manager struct {
	mu    sync.RWMutex
	rooms map[string]*Room  // id -> room
	codes map[string]string // code -> id

	newCode func() (string, error)
	log     *zap.Logger
}

type Option func(*Manager)

// WithCodeGenerator replaces the random code source.
func WithCodeGenerator(fn func() (string, error)) Option {
	return func(m *Manager) { m.newCode = fn }
}

func NewManager(log *zap.Logger, opts ...Option) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	m := &Manager{
		rooms:   make(map[string]*Room),
		codes:   make(map[string]string),
		newCode: func() (string, error) { return generateCode(CodeLength) },
		log:     log,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// CreateRoom registers an empty room under a fresh id and an unused code.
func (m *Manager) CreateRoom() (*Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.createLocked(nil)
}

// OpenRoom registers a room that already holds state and its first member.
// Both are in place before the code resolves, so no joiner can see the room
// without them.
func (m *Manager) OpenRoom(state *game.GameState, host protocol.PlayerInfo, c Conn) (*Room, error) {
	if state == nil {
		return nil, apperr.New(apperr.CodeInternal, "room needs a game state")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.createLocked(func(r *Room) {
		r.state = state
		r.AddPlayer(host, c)
	})
}

func (m *Manager) createLocked(setup func(*Room)) (*Room, error) {
	var code string
	for attempt := 0; ; attempt++ {
		if attempt >= maxCodeRetries {
			return nil, ErrCodeSpaceExhausted
		}
		c, err := m.newCode()
		if err != nil {
			return nil, fmt.Errorf("generate room code: %w", err)
		}
		if _, taken := m.codes[c]; !taken {
			code = c
			break
		}
	}

	r := newRoom("room-"+uuid.NewString(), code, m.log)
	if setup != nil {
		setup(r)
	}
	m.rooms[r.id] = r
	m.codes[code] = r.id
	m.log.Info("room created", zap.String("room_id", r.id), zap.String("room_code", code))
	return r, nil
}

func (m *Manager) GetByCode(code string) (*Room, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.codes[code]
	if !ok {
		return nil, false
	}
	r, ok := m.rooms[id]
	return r, ok
}

func (m *Manager) GetByID(id string) (*Room, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.rooms[id]
	return r, ok
}

// DeleteRoom removes the room and its code; it reports whether the room
// existed.
func (m *Manager) DeleteRoom(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.deleteLocked(id)
}

func (m *Manager) deleteLocked(id string) bool {
	r, ok := m.rooms[id]
	if !ok {
		return false
	}
	delete(m.codes, r.code)
	delete(m.rooms, id)
	m.log.Info("room deleted", zap.String("room_id", id), zap.String("room_code", r.code))
	return true
}

// Join adds p to the room registered under code. It holds the registry read
// lock so the room cannot be torn down by Leave in between.
func (m *Manager) Join(code string, p protocol.PlayerInfo, c Conn) (*Room, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.codes[code]
	if !ok {
		return nil, apperr.New(apperr.CodeRoomNotFound, "room not found")
	}
	r := m.rooms[id]
	if !r.AddPlayer(p, c) {
		return nil, apperr.New(apperr.CodeRoomFull, "room is full")
	}
	return r, nil
}

// Leave removes playerID from the room and deletes the room once it is
// empty. It returns the remaining members and whether the room was deleted.
func (m *Manager) Leave(r *Room, playerID string) ([]protocol.PlayerInfo, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r.RemovePlayer(playerID)
	remaining := r.Players()
	if len(remaining) > 0 {
		return remaining, false
	}
	return remaining, m.deleteLocked(r.id)
}

// ListRooms snapshots every live room.
func (m *Manager) ListRooms() []RoomInfo {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]RoomInfo, 0, len(m.rooms))
	for id, r := range m.rooms {
		out = append(out, RoomInfo{ID: id, Code: r.code, Players: r.Len()})
	}
	return out
}

func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.rooms)
}

// NormalizeCode canonicalizes user input: surrounding space trimmed,
// letters upper-cased. A Caser is stateful, so each call builds its own.
func NormalizeCode(s string) string {
	return cases.Upper(language.Und).String(strings.TrimSpace(s))
}

// ValidCode reports whether s has the shape of a room code.
func ValidCode(s string) bool {
	if len(s) != CodeLength {
		return false
	}
	for i := 0; i < len(s); i++ {
		if strings.IndexByte(codeChars, s[i]) < 0 {
			return false
		}
	}
	return true
}

func generateCode(n int) (string, error) {
	b := make([]byte, n)
	max := big.NewInt(int64(len(codeChars)))
	for i := range b {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b[i] = codeChars[idx.Int64()]
	}
	return string(b), nil
}
