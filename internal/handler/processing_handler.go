package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mukheshvadlamudi/MailFlow/internal/model"
)

type EmailProcessor interface {
	Process(ctx context.Context, emailID int64) (*model.Email, error)
}

type BatchProcessor interface {
	ProcessAll(ctx context.Context) (int, error)
}

type ProcessingHandler struct {
	processor EmailProcessor
	batch     BatchProcessor
	logger    *zap.Logger
}

func NewProcessingHandler(processor EmailProcessor, batch BatchProcessor, logger *zap.Logger) *ProcessingHandler {
	return &ProcessingHandler{processor: processor, batch: batch, logger: logger}
}

// ProcessAll handles POST /api/processing/process-all
func (h *ProcessingHandler) ProcessAll(c *gin.Context) {
	n, err := h.batch.ProcessAll(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, "process all", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Processed %d emails", n),
		"count":   n,
	})
}

// ProcessOne handles POST /api/processing/process/:id
func (h *ProcessingHandler) ProcessOne(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	email, err := h.processor.Process(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, "process email", err)
		return
	}

	var category string
	if email.Category != nil {
		category = *email.Category
	}
	c.JSON(http.StatusOK, gin.H{
		"message":  "Email processed successfully",
		"email_id": email.ID,
		"category": category,
	})
}
