package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/obralog/obralog-admin/config"
	"github.com/obralog/obralog-admin/internal/bootstrap"
	"github.com/obralog/obralog-admin/internal/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	lg, err := logger.New(cfg.App.LogLevel, cfg.App.LogFormat, bootstrap.ServiceName)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer lg.Sync()

	bootstrap.SetGinMode(cfg.App.Environment)

	ctx := context.Background()
	app, err := bootstrap.Build(ctx, cfg, lg)
	if err != nil {
		lg.Fatal("failed to build service", zap.Error(err))
	}
	app.Start(ctx)

	// Shell streams are long-lived: no WriteTimeout, and their request
	// contexts end when shutdown starts.
	baseCtx, stopStreams := context.WithCancel(context.Background())
	server := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           app.Router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		IdleTimeout:       60 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return baseCtx },
	}
	server.RegisterOnShutdown(stopStreams)

	go func() {
		lg.Info("listening", zap.String("addr", server.Addr), zap.String("store", cfg.Store.Backend))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Error("server error", zap.Error(err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	lg.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		lg.Error("server forced to shutdown", zap.Error(err))
	}
	if err := app.Close(); err != nil {
		lg.Error("failed to release stores", zap.Error(err))
	}
}
