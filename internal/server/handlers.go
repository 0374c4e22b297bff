package server

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/amonieson/isometric-city/internal/action"
	"github.com/amonieson/isometric-city/internal/apperr"
	"github.com/amonieson/isometric-city/internal/game"
	"github.com/amonieson/isometric-city/internal/protocol"
	"github.com/amonieson/isometric-city/internal/room"
)

const defaultCityName = "New City"

func (s *Server) dispatch(c *Client, env protocol.Envelope) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("handler panic",
				zap.String("conn_id", c.id), zap.String("type", env.Type), zap.Any("panic", r))
			c.sendError(apperr.New(apperr.CodeServerError, "internal server error"), "")
		}
	}()

	switch env.Type {
	case protocol.EventCreateRoom:
		msg, err := protocol.DecodePayload[protocol.CreateRoom](env)
		if err != nil {
			c.sendError(apperr.Wrap(apperr.CodeInvalidMessage, "malformed createRoom", err), "")
			return
		}
		s.handleCreateRoom(c, msg)
	case protocol.EventJoinRoom:
		msg, err := protocol.DecodePayload[protocol.JoinRoom](env)
		if err != nil {
			c.sendJoinFailed(protocol.ReasonInvalidCode)
			return
		}
		s.handleJoinRoom(c, msg)
	case protocol.EventAction:
		msg, err := protocol.DecodePayload[protocol.ActionMessage](env)
		if err != nil {
			c.sendError(apperr.Wrap(apperr.CodeInvalidMessage, "malformed action", err), "")
			return
		}
		s.handleAction(c, msg)
	default:
		c.sendError(apperr.New(apperr.CodeInvalidMessage, fmt.Sprintf("unknown message type %q", env.Type)), "")
	}
}

func (c *Client) newPlayer() protocol.PlayerInfo {
	return protocol.PlayerInfo{
		ID:           uuid.NewString(),
		ConnectionID: c.id,
		Name:         c.name,
		JoinedAt:     time.Now().UnixMilli(),
	}
}

func (s *Server) handleCreateRoom(c *Client, msg protocol.CreateRoom) {
	if c.room != nil {
		c.sendError(apperr.New(apperr.CodeAlreadyInRoom, "connection is already in a room"), "")
		return
	}
	size := msg.GridSize
	if size == 0 {
		size = s.cfg.DefaultGridSize
	}
	if size < s.cfg.MinGridSize || size > s.cfg.MaxGridSize {
		c.sendError(apperr.New(apperr.CodeInvalidRequest,
			fmt.Sprintf("grid size must be between %d and %d", s.cfg.MinGridSize, s.cfg.MaxGridSize)), "")
		return
	}
	name := strings.TrimSpace(msg.CityName)
	if name == "" {
		name = defaultCityName
	}

	state, err := game.NewGameState(name, size)
	if err != nil {
		s.log.Error("build game state", zap.Error(err))
		c.sendError(apperr.Wrap(apperr.CodeServerError, "could not create room", err), "")
		return
	}
	p := c.newPlayer()
	r, err := s.rooms.OpenRoom(state, p, c)
	if err != nil {
		s.log.Error("create room", zap.String("conn_id", c.id), zap.Error(err))
		c.sendError(apperr.Wrap(apperr.CodeServerError, "could not create room", err), "")
		return
	}
	if _, ok := r.Player(p.ID); !ok {
		s.rooms.DeleteRoom(r.ID())
		c.sendError(apperr.New(apperr.CodeServerError, "could not create room"), "")
		return
	}
	c.room, c.player = r, p

	c.sendEvent(protocol.EventRoomCreated, protocol.RoomCreated{RoomID: r.ID(), RoomCode: r.Code()})
	c.sendEvent(protocol.EventRoomJoined, protocol.RoomJoined{
		RoomID:    r.ID(),
		RoomCode:  r.Code(),
		GameState: r.State(),
		Players:   r.Players(),
	})
}

func (s *Server) handleJoinRoom(c *Client, msg protocol.JoinRoom) {
	code := room.NormalizeCode(msg.RoomCode)
	if !room.ValidCode(code) {
		c.sendJoinFailed(protocol.ReasonInvalidCode)
		return
	}
	if c.room != nil {
		c.sendError(apperr.New(apperr.CodeAlreadyInRoom, "connection is already in a room"), "")
		return
	}

	p := c.newPlayer()
	r, err := s.rooms.Join(code, p, c)
	if err != nil {
		switch apperr.CodeOf(err) {
		case apperr.CodeRoomNotFound:
			c.sendJoinFailed(protocol.ReasonRoomNotFound)
		case apperr.CodeRoomFull:
			c.sendJoinFailed(protocol.ReasonRoomFull)
		default:
			s.log.Error("join room", zap.String("room_code", code), zap.Error(err))
			c.sendJoinFailed(protocol.ReasonServerError)
		}
		return
	}

	state := r.State()
	if state == nil {
		s.rooms.Leave(r, p.ID)
		c.sendJoinFailed(protocol.ReasonServerError)
		return
	}
	c.room, c.player = r, p
	s.log.Info("player joined",
		zap.String("room_id", r.ID()), zap.String("player_id", p.ID), zap.String("conn_id", c.id))

	players := r.Players()
	c.sendEvent(protocol.EventRoomJoined, protocol.RoomJoined{
		RoomID:    r.ID(),
		RoomCode:  r.Code(),
		GameState: state,
		Players:   players,
	})
	if err := r.BroadcastExcept(p.ID, protocol.EventPlayerJoined, protocol.PlayerJoined{Player: p, Players: players}); err != nil {
		s.log.Error("broadcast player joined", zap.String("room_id", r.ID()), zap.Error(err))
	}
}

func (s *Server) handleAction(c *Client, msg protocol.ActionMessage) {
	if c.room == nil {
		c.sendError(apperr.New(apperr.CodeNotInRoom, "join a room before sending actions"), msg.ActionID)
		return
	}
	a, err := action.Decode(msg.Action)
	if err != nil {
		c.sendError(apperr.Wrap(apperr.CodeInvalidAction, err.Error(), err), msg.ActionID)
		return
	}
	if _, err := c.room.Apply(a); err != nil {
		if apperr.CodeOf(err) == apperr.CodeInternal {
			s.log.Error("apply action", zap.String("room_id", c.room.ID()), zap.String("action", string(a.Type())), zap.Error(err))
		} else {
			s.log.Debug("action rejected", zap.String("room_id", c.room.ID()), zap.String("action", string(a.Type())), zap.Error(err))
		}
		c.sendError(err, msg.ActionID)
	}
}

// disconnect tears down the connection's membership; the room goes away with
// its last member.
func (s *Server) disconnect(c *Client) {
	r := c.room
	if r == nil {
		return
	}
	c.room = nil
	remaining, deleted := s.rooms.Leave(r, c.player.ID)
	if deleted {
		return
	}
	if err := r.Broadcast(protocol.EventPlayerLeft, protocol.PlayerLeft{PlayerID: c.player.ID, Players: remaining}); err != nil {
		s.log.Error("broadcast player left", zap.String("room_id", r.ID()), zap.Error(err))
	}
}
