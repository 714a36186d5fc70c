// Package server exposes realmcore sessions over HTTP (gin) and WebSocket
// (gorilla/websocket). Each session is an independent engine; requests to the
// same session are serialized.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/nathoo/realmcore/engine"
	"github.com/nathoo/realmcore/engine/outcome"
	"github.com/nathoo/realmcore/engine/player"
	"github.com/nathoo/realmcore/engine/save"
	"github.com/nathoo/realmcore/engine/world"
	"github.com/nathoo/realmcore/play"
	"github.com/nathoo/realmcore/render"
	"github.com/nathoo/realmcore/types"
)

// ErrSessionLimit is returned when MaxSessions are already open.
var ErrSessionLimit = errors.New("too many open sessions")

// Config wires a Server.
type Config struct {
	// Packs resolves pack names sent by clients. It must not read arbitrary
	// paths; main passes loader.Builtin.
	Packs       engine.PackResolver
	// PackNames, when set, is the only set of names clients may ask for.
	PackNames   []string
	DefaultPack string
	Store       save.Store // shared by all sessions; each saves under its own slot
	Logger      *slog.Logger
	MaxSessions int // 0 means unlimited
}

// Server holds the open sessions.
type Server struct {
	cfg      Config
	log      *slog.Logger
	upgrader websocket.Upgrader

	mu       sync.Mutex
	sessions map[string]*session
}

type session struct {
	mu      sync.Mutex
	id      string
	ctl     *play.Controller
	created time.Time
}

// New creates a server. A nil logger discards.
func New(cfg Config) *Server {
	log := cfg.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Server{
		cfg: cfg,
		log: log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		sessions: map[string]*session{},
	}
}

// Router builds the gin engine with every route registered.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())

	api := r.Group("/api")
	api.GET("/packs", s.listPacks)
	api.POST("/sessions", s.createSession)
	api.GET("/sessions/:id", s.getSession)
	api.DELETE("/sessions/:id", s.deleteSession)
	api.POST("/sessions/:id/commands", s.postCommand)
	api.GET("/sessions/:id/ws", s.playSocket)
	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.Router(), ReadHeaderTimeout: 10 * time.Second}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.log.Info("server listening", "addr", addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.log.Info("server shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

// requestLogger logs one line per request at debug level.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Debug("http request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"latency", time.Since(start))
	}
}

// newSession starts an engine for pack and registers it.
func (s *Server) newSession(packName, playerName string) (*session, error) {
	if packName == "" {
		packName = s.cfg.DefaultPack
	}
	def, err := s.resolve(packName)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cfg.MaxSessions > 0 && len(s.sessions) >= s.cfg.MaxSessions {
		return nil, ErrSessionLimit
	}

	id := uuid.NewString()
	eng := engine.New(def, engine.Options{
		PackName:   packName,
		PlayerName: playerName,
		Store:      s.cfg.Store,
		SaveName:   id,
		Logger:     s.log.With("session", id),
		Packs:      s.resolve,
	})
	ctl := play.New(eng, s.cfg.PackNames, s.log.With("session", id))
	// Sessions share one store; each may only touch its own record.
	ctl.FixedSlot = true
	sess := &session{
		id:      id,
		ctl:     ctl,
		created: time.Now(),
	}
	s.sessions[id] = sess
	s.log.Info("session created", "session", id, "pack", packName)
	return sess, nil
}

// resolve loads a pack for a client, refusing names outside PackNames.
func (s *Server) resolve(name string) (*types.WorldDef, error) {
	if s.cfg.Packs == nil {
		return nil, errors.New("no pack resolver configured")
	}
	if len(s.cfg.PackNames) > 0 && !slices.Contains(s.cfg.PackNames, name) {
		return nil, fmt.Errorf("unknown pack %q (available: %s)", name, strings.Join(s.cfg.PackNames, ", "))
	}
	return s.cfg.Packs(name)
}

func (s *Server) session(id string) (*session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	return sess, ok
}

func (s *Server) drop(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return false
	}
	delete(s.sessions, id)
	s.log.Info("session closed", "session", id)
	return true
}

// Sessions returns the ids of the open sessions, sorted.
func (s *Server) Sessions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, 0, len(s.sessions))
	for id := range s.sessions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// run executes one line on the session under its lock.
func (sess *session) run(ctx context.Context, input string) (commandResponse, error) {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	r := sess.ctl.Do(ctx, input)
	resp := commandResponse{Lines: r.Lines, Quit: r.Quit}
	if resp.Lines == nil {
		resp.Lines = []render.Line{}
	}
	if r.Outcome != nil {
		data, err := outcome.Marshal(r.Outcome)
		if err != nil {
			return commandResponse{}, err
		}
		resp.Outcome = data
	}
	return resp, nil
}

// state snapshots the session under its lock.
func (sess *session) state() stateResponse {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	e := sess.ctl.Engine
	return stateResponse{
		ID:       sess.id,
		Pack:     e.PackName,
		Room:     e.Look().Room,
		Player:   e.Player.Snapshot(),
		Clock:    e.Clock,
		InCombat: e.InCombat(),
		Currency: e.World.Currency(),
	}
}

type createRequest struct {
	Pack   string `json:"pack"`
	Player string `json:"player"`
}

type createResponse struct {
	ID    string        `json:"id"`
	Pack  string        `json:"pack"`
	Lines []render.Line `json:"lines"`
}

type commandRequest struct {
	Input string `json:"input" binding:"required"`
}

type commandResponse struct {
	Outcome json.RawMessage `json:"outcome,omitempty"`
	Lines   []render.Line   `json:"lines"`
	Quit    bool            `json:"quit"`
}

type stateResponse struct {
	ID       string         `json:"id"`
	Pack     string         `json:"pack"`
	Room     world.Snapshot `json:"room"`
	Player   player.Player  `json:"player"`
	Clock    types.Clock    `json:"clock"`
	InCombat bool           `json:"inCombat"`
	Currency string         `json:"currency"`
}

type errorResponse struct {
	Error string `json:"error"`
}
