package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mukheshvadlamudi/MailFlow/internal/app"
	"github.com/mukheshvadlamudi/MailFlow/internal/httpserver"
	"github.com/mukheshvadlamudi/MailFlow/pkg/config"
	"github.com/mukheshvadlamudi/MailFlow/pkg/db"
	"github.com/mukheshvadlamudi/MailFlow/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	log := logger.NewLogger(cfg.Log.Level)
	defer log.Sync()

	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a, err := app.New(ctx, cfg, log)
	if err != nil {
		log.Fatal("Initialization failed", zap.Error(err))
	}
	defer a.Close()

	// schema is idempotent, apply it on every start
	if dir, err := db.FindMigrationsDir(); err != nil {
		log.Warn("Migrations directory not found, skipping", zap.Error(err))
	} else if applied, err := db.Migrate(ctx, a.DB, dir); err != nil {
		log.Fatal("Migration failed", zap.Error(err))
	} else {
		log.Info("Migrations applied", zap.Strings("files", applied))
	}

	if dispatcher := a.Dispatcher(); dispatcher != nil {
		go dispatcher.Start(ctx)
		log.Info("Outbox dispatcher started")
	} else {
		log.Info("No message broker configured, outbox dispatcher disabled")
	}

	router := httpserver.NewRouter(a.Handlers(), a.RouterOptions(), log)

	srv := &http.Server{
		Addr:              cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("HTTP server starting", zap.String("addr", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down gracefully...")

	// stops the dispatcher loop
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", zap.Error(err))
	} else {
		log.Info("HTTP server stopped")
	}

	log.Info("Shutdown complete")
}
