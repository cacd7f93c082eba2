// Package app wires configuration into the running components shared by
// the HTTP server and the command line tool.
package app

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/mukheshvadlamudi/MailFlow/internal/handler"
	"github.com/mukheshvadlamudi/MailFlow/internal/httpserver"
	"github.com/mukheshvadlamudi/MailFlow/internal/llm"
	"github.com/mukheshvadlamudi/MailFlow/internal/processor"
	"github.com/mukheshvadlamudi/MailFlow/internal/prompt"
	"github.com/mukheshvadlamudi/MailFlow/internal/repository"
	"github.com/mukheshvadlamudi/MailFlow/internal/service"
	"github.com/mukheshvadlamudi/MailFlow/pkg/config"
	"github.com/mukheshvadlamudi/MailFlow/pkg/db"
	"github.com/mukheshvadlamudi/MailFlow/pkg/mq"
	"github.com/mukheshvadlamudi/MailFlow/pkg/outbox"
	"github.com/mukheshvadlamudi/MailFlow/pkg/rate"
	redisclient "github.com/mukheshvadlamudi/MailFlow/pkg/redis"
	"github.com/mukheshvadlamudi/MailFlow/pkg/util"
)

type App struct {
	Config *config.Config
	Logger *zap.Logger
	DB     *pgxpool.Pool
	// Redis and Publisher are nil when not configured or unreachable.
	Redis     *goredis.Client
	Publisher *mq.Publisher

	Emails  *repository.EmailRepository
	Actions *repository.ActionItemRepository
	Prompts *repository.PromptRepository
	Drafts  *repository.DraftRepository
	Results *repository.ResultStore
	Outbox  *outbox.Repository

	Resolver  *prompt.Resolver
	Processor *processor.Processor
	Batch     *service.BatchService
	DraftGen  *service.DraftService
	Chat      *service.ChatService
	PromptSvc *service.PromptService

	limiter *rate.TokenBucket
}

// New connects to the database and the optional Redis and RabbitMQ
// backends and builds every service. Optional backends that cannot be
// reached are logged and left disabled.
func New(ctx context.Context, cfg *config.Config, log *zap.Logger) (*App, error) {
	pool, err := db.NewConnection(cfg.DB, log)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	a := &App{
		Config:  cfg,
		Logger:  log,
		DB:      pool,
		Emails:  repository.NewEmailRepository(pool),
		Actions: repository.NewActionItemRepository(pool),
		Prompts: repository.NewPromptRepository(pool),
		Drafts:  repository.NewDraftRepository(pool),
		Results: repository.NewResultStore(pool),
		Outbox:  outbox.NewRepository(pool),
	}

	if rdb := redisclient.NewRedisClient(cfg.Redis); rdb != nil {
		if err := redisclient.Ping(ctx, rdb); err != nil {
			log.Warn("Redis unavailable, prompt cache and batch guard disabled", zap.Error(err))
			_ = rdb.Close()
		} else {
			a.Redis = rdb
		}
	}

	if cfg.MQ.URL != "" {
		publisher, err := mq.NewPublisher(cfg.MQ.URL)
		if err != nil {
			log.Warn("RabbitMQ unavailable, events stay in the outbox", zap.Error(err))
		} else {
			a.Publisher = publisher
		}
	}

	var cache prompt.Cache
	var guard service.BatchGuard
	if a.Redis != nil {
		cache = prompt.NewRedisCache(a.Redis, cfg.PromptCache.TTL, log)
		guard = util.NewDeduper(a.Redis, cfg.Processing.BatchTTL, log)
	}

	var limiter rate.Limiter = rate.Unlimited{}
	if cfg.LLM.RequestsPerSecond > 0 {
		a.limiter = rate.NewTokenBucket(cfg.LLM.RequestsPerSecond)
		limiter = a.limiter
	}
	generator := llm.NewGroqClient(cfg.LLM, limiter, log)
	if cfg.LLM.APIKey == "" {
		log.Warn("No provider API key configured, generation requests will fail")
	}

	a.Resolver = prompt.NewResolver(a.Prompts, cache, log)
	a.Processor = processor.New(a.Resolver, generator, a.Results, log)
	a.Batch = service.NewBatchService(a.Emails, a.Processor, guard, cfg.Processing.Concurrency, log)
	a.DraftGen = service.NewDraftService(a.Emails, a.Resolver, generator, a.Results, log)
	a.Chat = service.NewChatService(a.Emails, generator, cfg.Chat.MaxContextEmails, log)
	a.PromptSvc = service.NewPromptService(a.Prompts, a.Resolver)

	return a, nil
}

// Handlers builds the HTTP handlers. The admin replay endpoints exist only
// when a publisher is connected.
func (a *App) Handlers() httpserver.Handlers {
	h := httpserver.Handlers{
		Email:      handler.NewEmailHandler(a.Emails, a.Actions, a.Logger),
		Prompt:     handler.NewPromptHandler(a.PromptSvc, a.Logger),
		Draft:      handler.NewDraftHandler(a.Drafts, a.DraftGen, a.Logger),
		Processing: handler.NewProcessingHandler(a.Processor, a.Batch, a.Logger),
		Agent:      handler.NewAgentHandler(a.Chat, a.Logger),
	}
	if a.Publisher != nil {
		replay := outbox.NewReplayService(a.Outbox, a.Publisher, a.Logger)
		h.Admin = handler.NewAdminHandler(replay, a.Logger)
	}
	return h
}

// RouterOptions returns the readiness and CORS settings for the router.
func (a *App) RouterOptions() httpserver.Options {
	opts := httpserver.Options{
		CORSOrigins: a.Config.CORS.Origins,
		DB:          a.DB,
	}
	if a.Publisher != nil {
		opts.Publisher = a.Publisher
	}
	return opts
}

// Dispatcher returns the outbox dispatcher, or nil without a publisher.
func (a *App) Dispatcher() *outbox.Dispatcher {
	if a.Publisher == nil {
		return nil
	}
	d := outbox.NewDispatcher(a.Outbox, a.Publisher, a.Logger)
	oc := a.Config.Outbox
	if oc.Interval > 0 {
		d = d.WithInterval(oc.Interval)
	}
	if oc.BatchSize > 0 {
		d = d.WithBatchSize(oc.BatchSize)
	}
	if oc.MaxRetries > 0 {
		d = d.WithMaxRetries(oc.MaxRetries)
	}
	return d
}

func (a *App) Close() {
	if a.limiter != nil {
		a.limiter.Stop()
	}
	if a.Publisher != nil {
		a.Publisher.Close()
	}
	if a.Redis != nil {
		_ = a.Redis.Close()
	}
	a.DB.Close()
}
