package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mukheshvadlamudi/MailFlow/internal/model"
)

type EmailStore interface {
	List(ctx context.Context) ([]model.Email, error)
	GetByID(ctx context.Context, id int64) (*model.Email, error)
	Create(ctx context.Context, in model.NewEmail) (*model.Email, error)
	Delete(ctx context.Context, id int64) error
}

type ActionItemLister interface {
	ListByEmail(ctx context.Context, emailID int64) ([]model.ActionItem, error)
	ListAll(ctx context.Context) ([]model.ActionItem, error)
}

type EmailHandler struct {
	emails  EmailStore
	actions ActionItemLister
	logger  *zap.Logger
}

func NewEmailHandler(emails EmailStore, actions ActionItemLister, logger *zap.Logger) *EmailHandler {
	return &EmailHandler{emails: emails, actions: actions, logger: logger}
}

type createEmailRequest struct {
	Sender    string     `json:"sender" binding:"required"`
	Recipient string     `json:"recipient" binding:"required"`
	Subject   string     `json:"subject" binding:"required"`
	Body      string     `json:"body"`
	Priority  string     `json:"priority" binding:"omitempty,oneof=high medium low"`
	Timestamp *time.Time `json:"timestamp"`
}

// List handles GET /api/emails
func (h *EmailHandler) List(c *gin.Context) {
	emails, err := h.emails.List(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, "list emails", err)
		return
	}
	c.JSON(http.StatusOK, emails)
}

// Create handles POST /api/emails
func (h *EmailHandler) Create(c *gin.Context) {
	var req createEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	email, err := h.emails.Create(c.Request.Context(), model.NewEmail{
		Sender:     req.Sender,
		Recipient:  req.Recipient,
		Subject:    req.Subject,
		Body:       req.Body,
		Priority:   req.Priority,
		ReceivedAt: req.Timestamp,
	})
	if err != nil {
		respondError(c, h.logger, "create email", err)
		return
	}
	c.JSON(http.StatusCreated, email)
}

// Get handles GET /api/emails/:id
func (h *EmailHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	email, err := h.emails.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, "get email", err)
		return
	}
	c.JSON(http.StatusOK, email)
}

// Delete handles DELETE /api/emails/:id
func (h *EmailHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.emails.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, "delete email", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Email deleted successfully"})
}

// ListActions handles GET /api/emails/:id/actions
func (h *EmailHandler) ListActions(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	items, err := h.actions.ListByEmail(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, "list email actions", err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// ListAllActions handles GET /api/emails/actions/all
func (h *EmailHandler) ListAllActions(c *gin.Context) {
	items, err := h.actions.ListAll(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, "list actions", err)
		return
	}
	c.JSON(http.StatusOK, items)
}
