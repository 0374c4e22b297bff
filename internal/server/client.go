package server

import (
	"errors"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/amonieson/isometric-city/internal/apperr"
	"github.com/amonieson/isometric-city/internal/protocol"
	"github.com/amonieson/isometric-city/internal/room"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 << 10
	sendBuffer     = 128
)

var (
	errClientClosed = errors.New("client closed")
	errSlowClient   = errors.New("client send buffer full")
)

// Client is one websocket connection. Its room membership lives here and is
// only touched by the reader goroutine.
type Client struct {
	id      string
	name    string
	conn    *websocket.Conn
	send    chan []byte
	limiter *rate.Limiter
	log     *zap.Logger

	mu     sync.Mutex
	closed bool

	room   *room.Room
	player protocol.PlayerInfo
}

// Send queues b for the writer. A client that cannot keep up is dropped.
func (c *Client) Send(b []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return errClientClosed
	}
	select {
	case c.send <- b:
		return nil
	default:
		c.closed = true
		close(c.send)
		return errSlowClient
	}
}

func (c *Client) closeSend() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

func (c *Client) sendEvent(event string, payload any) {
	b, err := protocol.Encode(event, payload)
	if err != nil {
		c.log.Error("encode event", zap.String("event", event), zap.Error(err))
		return
	}
	if err := c.Send(b); err != nil {
		c.log.Debug("send event", zap.String("event", event), zap.Error(err))
	}
}

func (c *Client) sendError(err error, actionID string) {
	c.sendEvent(protocol.EventError, protocol.ErrorFrom(err, actionID))
}

func (c *Client) sendJoinFailed(reason protocol.JoinFailReason) {
	c.sendEvent(protocol.EventRoomJoinFailed, protocol.RoomJoinFailed{Reason: reason})
}

func (c *Client) reader(s *Server) {
	defer func() {
		s.disconnect(c)
		s.hub.Unregister(c)
		c.conn.Close()
		c.log.Debug("connection closed")
	}()
	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.log.Debug("read", zap.Error(err))
			}
			return
		}
		if !c.limiter.Allow() {
			c.sendError(apperr.New(apperr.CodeRateLimited, "too many messages"), "")
			continue
		}
		env, err := protocol.DecodeEnvelope(data)
		if err != nil {
			c.sendError(apperr.Wrap(apperr.CodeInvalidMessage, "malformed message", err), "")
			continue
		}
		s.dispatch(c, env)
	}
}

func (c *Client) writer() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
