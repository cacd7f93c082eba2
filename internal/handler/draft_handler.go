package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mukheshvadlamudi/MailFlow/internal/model"
	"github.com/mukheshvadlamudi/MailFlow/internal/service"
)

type DraftStore interface {
	List(ctx context.Context) ([]model.Draft, error)
	GetByID(ctx context.Context, id int64) (*model.Draft, error)
	Create(ctx context.Context, d *model.Draft) (*model.Draft, error)
	Update(ctx context.Context, id int64, patch model.DraftPatch) (*model.Draft, error)
	Delete(ctx context.Context, id int64) error
}

type DraftGenerator interface {
	Generate(ctx context.Context, emailID int64, instruction string) (*model.Draft, error)
}

type DraftHandler struct {
	drafts    DraftStore
	generator DraftGenerator
	logger    *zap.Logger
}

func NewDraftHandler(drafts DraftStore, generator DraftGenerator, logger *zap.Logger) *DraftHandler {
	return &DraftHandler{drafts: drafts, generator: generator, logger: logger}
}

type createDraftRequest struct {
	EmailID   *int64         `json:"email_id"`
	Subject   string         `json:"subject" binding:"required"`
	Body      string         `json:"body"`
	Recipient string         `json:"recipient" binding:"required"`
	Metadata  map[string]any `json:"meta_data"`
}

type updateDraftRequest struct {
	Subject   *string        `json:"subject"`
	Body      *string        `json:"body"`
	Recipient *string        `json:"recipient"`
	Metadata  map[string]any `json:"meta_data"`
}

// List handles GET /api/drafts
func (h *DraftHandler) List(c *gin.Context) {
	drafts, err := h.drafts.List(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, "list drafts", err)
		return
	}
	c.JSON(http.StatusOK, drafts)
}

// Get handles GET /api/drafts/:id
func (h *DraftHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	d, err := h.drafts.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, "get draft", err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// Create handles POST /api/drafts
func (h *DraftHandler) Create(c *gin.Context) {
	var req createDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	d, err := h.drafts.Create(c.Request.Context(), &model.Draft{
		EmailID:   req.EmailID,
		Subject:   req.Subject,
		Body:      req.Body,
		Recipient: req.Recipient,
		Metadata:  req.Metadata,
	})
	if err != nil {
		respondError(c, h.logger, "create draft", err)
		return
	}
	c.JSON(http.StatusCreated, d)
}

// Update handles PUT /api/drafts/:id
func (h *DraftHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req updateDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	d, err := h.drafts.Update(c.Request.Context(), id, model.DraftPatch{
		Subject:   req.Subject,
		Body:      req.Body,
		Recipient: req.Recipient,
		Metadata:  req.Metadata,
	})
	if err != nil {
		respondError(c, h.logger, "update draft", err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// Delete handles DELETE /api/drafts/:id
func (h *DraftHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.drafts.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, "delete draft", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Draft deleted successfully"})
}

// Generate handles POST /api/drafts/generate?email_id=&instruction=
func (h *DraftHandler) Generate(c *gin.Context) {
	emailID, err := strconv.ParseInt(c.Query("email_id"), 10, 64)
	if err != nil || emailID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email_id query parameter is required"})
		return
	}
	instruction := c.DefaultQuery("instruction", service.DefaultReplyInstruction)

	d, err := h.generator.Generate(c.Request.Context(), emailID, instruction)
	if err != nil {
		respondError(c, h.logger, "generate draft", err)
		return
	}
	c.JSON(http.StatusOK, d)
}
