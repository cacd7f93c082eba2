package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mukheshvadlamudi/MailFlow/internal/model"
)

type PromptManager interface {
	List(ctx context.Context) ([]model.PromptTemplate, error)
	Get(ctx context.Context, id int64) (*model.PromptTemplate, error)
	Create(ctx context.Context, name, promptType, content string, isActive bool) (*model.PromptTemplate, error)
	Update(ctx context.Context, id int64, patch model.PromptPatch) (*model.PromptTemplate, error)
	Delete(ctx context.Context, id int64) error
}

type PromptHandler struct {
	prompts PromptManager
	logger  *zap.Logger
}

func NewPromptHandler(prompts PromptManager, logger *zap.Logger) *PromptHandler {
	return &PromptHandler{prompts: prompts, logger: logger}
}

type createPromptRequest struct {
	Name     string `json:"name" binding:"required"`
	Type     string `json:"type" binding:"required"`
	Content  string `json:"content" binding:"required"`
	IsActive *bool  `json:"is_active"`
}

type updatePromptRequest struct {
	Name     *string `json:"name"`
	Type     *string `json:"type"`
	Content  *string `json:"content"`
	IsActive *bool   `json:"is_active"`
}

// List handles GET /api/prompts
func (h *PromptHandler) List(c *gin.Context) {
	prompts, err := h.prompts.List(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, "list prompts", err)
		return
	}
	c.JSON(http.StatusOK, prompts)
}

// Get handles GET /api/prompts/:id
func (h *PromptHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	p, err := h.prompts.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, "get prompt", err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// Create handles POST /api/prompts. is_active defaults to true.
func (h *PromptHandler) Create(c *gin.Context) {
	var req createPromptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	p, err := h.prompts.Create(c.Request.Context(), req.Name, req.Type, req.Content, active)
	if err != nil {
		respondError(c, h.logger, "create prompt", err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

// Update handles PUT /api/prompts/:id; absent fields are left unchanged.
func (h *PromptHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req updatePromptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p, err := h.prompts.Update(c.Request.Context(), id, model.PromptPatch{
		Name:     req.Name,
		Type:     req.Type,
		Content:  req.Content,
		IsActive: req.IsActive,
	})
	if err != nil {
		respondError(c, h.logger, "update prompt", err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// Delete handles DELETE /api/prompts/:id
func (h *PromptHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.prompts.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, "delete prompt", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Prompt deleted successfully"})
}
