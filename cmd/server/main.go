package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"employees/internal/app/server/api"
	"employees/internal/app/server/config"
	"employees/internal/infrastructure/storage"
	"employees/internal/utils/logger"
)

func main() {
	conf := config.MustLoad()
	log := logger.New(conf.Env, logger.WithLevel(conf.Log.Level))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	repo, err := storage.Open(ctx, conf, log)
	if err != nil {
		log.Error("failed to open storage", "driver", conf.Storage.Driver, "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := repo.Close(); err != nil {
			log.Error("failed to close storage", "error", err)
		}
	}()

	srv := &http.Server{
		Addr:              conf.Server.RunAddress,
		Handler:           api.New(repo, conf, log),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server started", "addr", conf.Server.RunAddress, "env", conf.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			log.Error("server failed", "error", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
	log.Info("server stopped")
}
