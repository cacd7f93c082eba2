package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/mukheshvadlamudi/MailFlow/internal/handler"
)

// Pinger reports whether the database is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// ConnectionChecker reports whether the event publisher is connected.
type ConnectionChecker interface {
	IsConnected() bool
}

type Handlers struct {
	Email      *handler.EmailHandler
	Prompt     *handler.PromptHandler
	Draft      *handler.DraftHandler
	Processing *handler.ProcessingHandler
	Agent      *handler.AgentHandler
	// Admin is nil when no broker is configured.
	Admin *handler.AdminHandler
}

type Options struct {
	CORSOrigins []string
	DB          Pinger
	// Publisher is nil when event publishing is disabled.
	Publisher ConnectionChecker
}

func NewRouter(h Handlers, opts Options, logger *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(TraceMiddleware())
	r.Use(RequestLogMiddleware(logger))
	r.Use(cors.New(corsConfig(opts.CORSOrigins)))

	// Health endpoints
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.HEAD("/healthz", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
	r.HEAD("/health", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	r.GET("/readyz", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 1*time.Second)
		defer cancel()

		if opts.DB != nil {
			if err := opts.DB.Ping(ctx); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "db_not_ready", "error": err.Error()})
				return
			}
		}

		if opts.Publisher != nil && !opts.Publisher.IsConnected() {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "mq_not_ready"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Email Productivity Agent API", "status": "running"})
	})

	api := r.Group("/api")
	{
		emails := api.Group("/emails")
		emails.GET("", h.Email.List)
		emails.POST("", h.Email.Create)
		emails.GET("/actions/all", h.Email.ListAllActions)
		emails.GET("/:id", h.Email.Get)
		emails.DELETE("/:id", h.Email.Delete)
		emails.GET("/:id/actions", h.Email.ListActions)

		prompts := api.Group("/prompts")
		prompts.GET("", h.Prompt.List)
		prompts.POST("", h.Prompt.Create)
		prompts.GET("/:id", h.Prompt.Get)
		prompts.PUT("/:id", h.Prompt.Update)
		prompts.DELETE("/:id", h.Prompt.Delete)

		drafts := api.Group("/drafts")
		drafts.GET("", h.Draft.List)
		drafts.POST("", h.Draft.Create)
		drafts.POST("/generate", h.Draft.Generate)
		drafts.GET("/:id", h.Draft.Get)
		drafts.PUT("/:id", h.Draft.Update)
		drafts.DELETE("/:id", h.Draft.Delete)

		processing := api.Group("/processing")
		processing.POST("/process-all", h.Processing.ProcessAll)
		processing.POST("/process/:id", h.Processing.ProcessOne)

		api.POST("/agent/chat", h.Agent.Chat)
	}

	if h.Admin != nil {
		admin := r.Group("/admin")
		admin.POST("/outbox/replay", h.Admin.ReplayOutboxEvent)
		admin.POST("/outbox/replay-failed", h.Admin.ReplayFailedEvents)
	}

	return r
}

// corsConfig allows the configured origins with credentials, or any origin
// without credentials when none are configured.
func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", "X-Trace-ID"},
		ExposeHeaders: []string{"X-Trace-ID"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}
