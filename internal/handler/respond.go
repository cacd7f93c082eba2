package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mukheshvadlamudi/MailFlow/internal/repository"
	"github.com/mukheshvadlamudi/MailFlow/internal/service"
	"github.com/mukheshvadlamudi/MailFlow/pkg/logger"
	"github.com/mukheshvadlamudi/MailFlow/pkg/outbox"
)

// pathID parses the :id path parameter, writing a 400 on failure.
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id parameter"})
		return 0, false
	}
	return id, true
}

// respondError maps domain errors to status codes. Unknown errors are
// logged and reported as 500 without details.
func respondError(c *gin.Context, log *zap.Logger, op string, err error) {
	switch {
	case errors.Is(err, repository.ErrEmailNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Email not found"})
	case errors.Is(err, repository.ErrPromptNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Prompt not found"})
	case errors.Is(err, repository.ErrDraftNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Draft not found"})
	case errors.Is(err, outbox.ErrEventNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
	case errors.Is(err, service.ErrGenerationFailed):
		c.JSON(http.StatusBadGateway, gin.H{"error": "text generation failed", "details": err.Error()})
	case errors.Is(err, service.ErrBatchInProgress):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logger.WithTrace(c.Request.Context(), log).Error("Request failed",
			zap.String("op", op),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
