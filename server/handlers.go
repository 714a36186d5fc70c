package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

func (s *Server) listPacks(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"packs": s.cfg.PackNames, "default": s.cfg.DefaultPack})
}

func (s *Server) createSession(c *gin.Context) {
	var req createRequest
	// An empty body starts the default pack.
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
	}

	sess, err := s.newSession(req.Pack, req.Player)
	switch {
	case errors.Is(err, ErrSessionLimit):
		c.JSON(http.StatusServiceUnavailable, errorResponse{Error: err.Error()})
		return
	case err != nil:
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	sess.mu.Lock()
	resp := createResponse{ID: sess.id, Pack: sess.ctl.Engine.PackName, Lines: sess.ctl.Intro()}
	sess.mu.Unlock()
	c.JSON(http.StatusCreated, resp)
}

func (s *Server) getSession(c *gin.Context) {
	sess, ok := s.session(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, errorResponse{Error: "session not found"})
		return
	}
	c.JSON(http.StatusOK, sess.state())
}

func (s *Server) deleteSession(c *gin.Context) {
	if !s.drop(c.Param("id")) {
		c.JSON(http.StatusNotFound, errorResponse{Error: "session not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) postCommand(c *gin.Context) {
	sess, ok := s.session(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, errorResponse{Error: "session not found"})
		return
	}
	var req commandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	resp, err := sess.run(c.Request.Context(), req.Input)
	if err != nil {
		s.log.Error("command failed", "session", sess.id, "err", err)
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal error"})
		return
	}
	if resp.Quit {
		s.drop(sess.id)
	}
	c.JSON(http.StatusOK, resp)
}

// playSocket plays a session over one connection. The server sends the intro
// first; every text message from the client is one line of input and gets
// one JSON commandResponse back. Quitting closes the connection and the
// session.
func (s *Server) playSocket(c *gin.Context) {
	sess, ok := s.session(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, errorResponse{Error: "session not found"})
		return
	}

	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", "session", sess.id, "err", err)
		return
	}
	defer conn.Close()
	log := s.log.With("session", sess.id)
	log.Info("websocket connected")

	sess.mu.Lock()
	intro := commandResponse{Lines: sess.ctl.Intro()}
	sess.mu.Unlock()
	if err := conn.WriteJSON(intro); err != nil {
		return
	}

	for {
		msgType, payload, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Debug("websocket read ended", "err", err)
			}
			return
		}
		if msgType != websocket.TextMessage {
			continue
		}

		resp, err := sess.run(c.Request.Context(), string(payload))
		if err != nil {
			log.Error("command failed", "err", err)
			return
		}
		if err := conn.WriteJSON(resp); err != nil {
			log.Debug("websocket write failed", "err", err)
			return
		}
		if resp.Quit {
			s.drop(sess.id)
			msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "goodbye")
			_ = conn.WriteMessage(websocket.CloseMessage, msg)
			return
		}
	}
}
