// Package server exposes rooms over websockets: it upgrades connections,
// routes client messages to the room registry and action processor, and
// serves the health and diagnostics endpoints.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/amonieson/isometric-city/internal/config"
	"github.com/amonieson/isometric-city/internal/room"
)

type Server struct {
	cfg      config.Config
	rooms    *room.Manager
	hub      *Hub
	upgrader websocket.Upgrader
	log      *zap.Logger
}

func New(cfg config.Config, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{
		cfg:   cfg,
		rooms: room.NewManager(log.Named("rooms")),
		hub:   newHub(log.Named("hub")),
		log:   log,
	}
	s.upgrader = websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool { return cfg.OriginAllowed(r.Header.Get("Origin")) },
	}
	return s
}

// Rooms exposes the registry for diagnostics.
func (s *Server) Rooms() *room.Manager { return s.rooms }

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.wsHandler)
	mux.HandleFunc("/health", s.healthHandler)
	mux.HandleFunc("/rooms", s.roomsHandler)
	return mux
}

// Run serves until ctx is cancelled, then closes every connection and shuts
// the listener down.
func (s *Server) Run(ctx context.Context) error {
	go s.hub.run(ctx)

	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("server listening", zap.String("addr", s.cfg.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	s.log.Info("server shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}

func (s *Server) wsHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Debug("upgrade", zap.Error(err))
		return
	}
	id := uuid.NewString()
	c := &Client{
		id:      id,
		name:    r.URL.Query().Get("name"),
		conn:    conn,
		send:    make(chan []byte, sendBuffer),
		limiter: rate.NewLimiter(rate.Limit(s.cfg.MessageRate), s.cfg.MessageBurst),
		log:     s.log.With(zap.String("conn_id", id)),
	}
	if !s.hub.Register(c) {
		conn.Close()
		return
	}
	c.log.Debug("connection opened",
		zap.String("remote", r.RemoteAddr), zap.Int("connections", s.hub.Connections()))
	go c.writer()
	go c.reader(s)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}

func (s *Server) roomsHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.rooms.ListRooms())
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
