package controller

import (
	"net/http"

	"github/itish2003/filesearch/clientstate"
	"github/itish2003/filesearch/logger"
	"github/itish2003/filesearch/models"

	"github.com/gin-gonic/gin"
)

// SessionController exposes the per-session client state. The stored API key
// is write-only; reads report hasApiKey instead.
type SessionController struct {
	sessions *clientstate.Manager
	messages *Messages
	log      logger.ILogger
}

func NewSessionController(sessions *clientstate.Manager, messages *Messages, log logger.ILogger) *SessionController {
	return &SessionController{sessions: sessions, messages: messages, log: log}
}

// CreateSession is the handler for POST /api/sessions.
func (c *SessionController) CreateSession(ctx *gin.Context) {
	id, err := c.sessions.Create(ctx.Request.Context())
	if err != nil {
		fail(ctx, c.log, c.messages, "Failed to create session", err)
		return
	}
	respondOK(ctx, http.StatusCreated, models.SessionCreatedResponse{SessionID: id})
}

// GetSession is the handler for GET /api/sessions/:id.
func (c *SessionController) GetSession(ctx *gin.Context) {
	snap, err := c.sessions.Snapshot(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		fail(ctx, c.log, c.messages, "Failed to load session", err)
		return
	}
	respondOK(ctx, http.StatusOK, snap)
}

// DeleteSession is the handler for DELETE /api/sessions/:id.
func (c *SessionController) DeleteSession(ctx *gin.Context) {
	if err := c.sessions.Delete(ctx.Request.Context(), ctx.Param("id")); err != nil {
		fail(ctx, c.log, c.messages, "Failed to delete session", err)
		return
	}
	respondOK(ctx, http.StatusOK, gin.H{"deleted": true})
}

func (c *SessionController) SetAPIKey(ctx *gin.Context) {
	var req models.SetAPIKeyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondError(ctx, http.StatusBadRequest, c.messages.InvalidRequest+": "+err.Error())
		return
	}
	c.update(ctx, func(s *clientstate.State) { s.SetAPIKey(req.APIKey) })
}

func (c *SessionController) ClearAPIKey(ctx *gin.Context) {
	c.update(ctx, func(s *clientstate.State) { s.ClearAPIKey() })
}

func (c *SessionController) SetModel(ctx *gin.Context) {
	var req models.SetModelRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondError(ctx, http.StatusBadRequest, c.messages.InvalidRequest+": "+err.Error())
		return
	}
	c.update(ctx, func(s *clientstate.State) { s.SetSelectedModel(req.Model) })
}

// SetParams replaces every advanced parameter; omitted fields are cleared.
func (c *SessionController) SetParams(ctx *gin.Context) {
	var req models.AdvancedParamsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondError(ctx, http.StatusBadRequest, c.messages.InvalidRequest+": "+err.Error())
		return
	}
	c.update(ctx, func(s *clientstate.State) {
		s.SetSystemInstruction(req.SystemInstruction)
		s.SetTemperature(req.Temperature)
		s.SetMaxOutputTokens(req.MaxOutputTokens)
		s.SetTopP(req.TopP)
		s.SetTopK(req.TopK)
		s.SetMetadataFilter(req.MetadataFilter)
	})
}

func (c *SessionController) ResetParams(ctx *gin.Context) {
	c.update(ctx, func(s *clientstate.State) { s.ResetAdvancedParams() })
}

func (c *SessionController) ClearHistory(ctx *gin.Context) {
	c.update(ctx, func(s *clientstate.State) { s.ClearHistory() })
}

func (c *SessionController) ClearResult(ctx *gin.Context) {
	c.update(ctx, func(s *clientstate.State) { s.ClearCurrentResult() })
}

func (c *SessionController) update(ctx *gin.Context, fn func(*clientstate.State)) {
	snap, err := c.sessions.Update(ctx.Request.Context(), ctx.Param("id"), fn)
	if err != nil {
		fail(ctx, c.log, c.messages, "Failed to update session", err)
		return
	}
	respondOK(ctx, http.StatusOK, snap)
}
