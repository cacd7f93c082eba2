package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ChatResponder interface {
	Chat(ctx context.Context, query string, focusID *int64) (string, error)
}

type AgentHandler struct {
	chat   ChatResponder
	logger *zap.Logger
}

func NewAgentHandler(chat ChatResponder, logger *zap.Logger) *AgentHandler {
	return &AgentHandler{chat: chat, logger: logger}
}

type chatRequest struct {
	Query   string `json:"query" binding:"required"`
	EmailID *int64 `json:"email_id"`
}

// Chat handles POST /api/agent/chat. An email_id of zero means no focus.
func (h *AgentHandler) Chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	focus := req.EmailID
	if focus != nil && *focus == 0 {
		focus = nil
	}

	reply, err := h.chat.Chat(c.Request.Context(), req.Query, focus)
	if err != nil {
		respondError(c, h.logger, "chat", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"response": reply})
}
