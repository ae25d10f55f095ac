package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/mhndckngyn/askdev-api/internal/config"
	"github.com/mhndckngyn/askdev-api/internal/content"
	"github.com/mhndckngyn/askdev-api/internal/database"
	"github.com/mhndckngyn/askdev-api/internal/handlers"
	"github.com/mhndckngyn/askdev-api/internal/history"
	"github.com/mhndckngyn/askdev-api/internal/metrics"
	"github.com/mhndckngyn/askdev-api/internal/notification"
	"github.com/mhndckngyn/askdev-api/internal/server"
	"github.com/mhndckngyn/askdev-api/internal/upload"
	"github.com/mhndckngyn/askdev-api/internal/verify"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(log)

	cfg, err := config.Load()
	if err != nil {
		log.Error("invalid configuration", "err", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.DSN())
	if err != nil {
		log.Error("failed to connect to database", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Error("migration failed", "err", err)
		os.Exit(1)
	}

	uploader, err := upload.NewLocal(cfg.UploadDir, cfg.UploadBaseURL)
	if err != nil {
		log.Error("failed to prepare upload dir", "err", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	notifier := notification.NewNotifier(db.DB)
	recorder := history.NewRecorder(db.DB)
	svc := content.NewService(db.DB, log, notifier, recorder, uploader, collector)
	verifier := verify.New(cfg, log)

	handler := handlers.NewHandler(db.DB, cfg, log, svc, notifier, recorder, verifier, uploader)
	srv := server.NewServer(cfg, log, db, handler, collector, registry)

	go func() {
		log.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server stopped", "err", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("forced shutdown", "err", err)
	}
}
