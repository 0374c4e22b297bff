package protocol

import (
	"encoding/json"
	"time"

	"github.com/amonieson/isometric-city/internal/apperr"
	"github.com/amonieson/isometric-city/internal/game"
)

// Client -> server events.
const (
	EventCreateRoom = "createRoom"
	EventJoinRoom   = "joinRoom"
	EventAction     = "action"
)

// Server -> client events.
const (
	EventRoomCreated    = "roomCreated"
	EventRoomJoined     = "roomJoined"
	EventRoomJoinFailed = "roomJoinFailed"
	EventPlayerJoined   = "playerJoined"
	EventPlayerLeft     = "playerLeft"
	EventStateUpdate    = "stateUpdate"
	EventError          = "error"
)

// JoinFailReason is the machine-readable cause of a declined join.
type JoinFailReason string

const (
	ReasonRoomNotFound JoinFailReason = "room_not_found"
	ReasonRoomFull     JoinFailReason = "room_full"
	ReasonInvalidCode  JoinFailReason = "invalid_code"
	ReasonServerError  JoinFailReason = "server_error"
)

// PlayerInfo describes one member of a room.
type PlayerInfo struct {
	ID           string `json:"id"`
	ConnectionID string `json:"socketId"`
	Name         string `json:"name,omitempty"`
	JoinedAt     int64  `json:"joinedAt"`
}

type CreateRoom struct {
	CityName string `json:"cityName"`
	GridSize int    `json:"gridSize"`
}

type JoinRoom struct {
	RoomCode string `json:"roomCode"`
}

// ActionMessage wraps a player command. Action is decoded by the action
// package; ActionID is echoed back on errors.
type ActionMessage struct {
	Action    json.RawMessage `json:"action"`
	Timestamp *int64          `json:"timestamp,omitempty"`
	ActionID  string          `json:"actionId,omitempty"`
}

type RoomCreated struct {
	RoomID   string `json:"roomId"`
	RoomCode string `json:"roomCode"`
}

type RoomJoined struct {
	RoomID    string          `json:"roomId"`
	RoomCode  string          `json:"roomCode"`
	GameState *game.GameState `json:"gameState"`
	Players   []PlayerInfo    `json:"players"`
}

type RoomJoinFailed struct {
	Reason JoinFailReason `json:"reason"`
}

type PlayerJoined struct {
	Player  PlayerInfo   `json:"player"`
	Players []PlayerInfo `json:"players"`
}

type PlayerLeft struct {
	PlayerID string       `json:"playerId"`
	Players  []PlayerInfo `json:"players"`
}

// ChangedTile is one entry of a diff; Tile is nil when the tile was removed.
type ChangedTile struct {
	X    int        `json:"x"`
	Y    int        `json:"y"`
	Tile *game.Tile `json:"tile"`
}

type StateUpdate struct {
	ChangedTiles []ChangedTile    `json:"changedTiles"`
	Stats        *game.StatsPatch `json:"stats,omitempty"`
	Timestamp    int64            `json:"timestamp"`
}

type Error struct {
	Code     apperr.Code `json:"code"`
	Message  string      `json:"message"`
	ActionID string      `json:"actionId,omitempty"`
}

// NewStateUpdate builds the diff between prev and next for the given tiles.
func NewStateUpdate(prev, next *game.GameState, changed []game.Point, now time.Time) StateUpdate {
	u := StateUpdate{
		ChangedTiles: make([]ChangedTile, 0, len(changed)),
		Timestamp:    now.UnixMilli(),
	}
	for _, p := range changed {
		ct := ChangedTile{X: p.X, Y: p.Y}
		if tile, ok := next.Tile(p.X, p.Y); ok {
			cp := *tile
			ct.Tile = &cp
		}
		u.ChangedTiles = append(u.ChangedTiles, ct)
	}
	if prev != nil {
		u.Stats = game.DiffStats(prev.Stats, next.Stats)
	}
	return u
}

// ErrorFrom converts err into the client-facing error payload.
func ErrorFrom(err error, actionID string) Error {
	return Error{Code: apperr.CodeOf(err), Message: apperr.MessageOf(err), ActionID: actionID}
}
