package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"murmur/internal/config"
	"murmur/internal/db"
	httpx "murmur/internal/http"
	"murmur/internal/logging"
	"murmur/internal/view"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	if cfg.SessionSecret == config.DefaultSessionSecret {
		logger.Warn("SESSION_SECRET is the built-in default; session cookies can be forged")
	}

	gdb, err := db.Connect(cfg, logger)
	if err != nil {
		logger.Fatal("connect database", zap.Error(err))
	}
	defer db.Close(gdb)

	if err := db.AutoMigrate(gdb); err != nil {
		logger.Fatal("migrate database", zap.Error(err))
	}

	views, err := view.NewTemplates()
	if err != nil {
		logger.Fatal("load templates", zap.Error(err))
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           httpx.NewRouter(cfg, gdb, logger, views),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("listening", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("serve", zap.Error(err))
		}
	}()

	// graceful shutdown
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	<-ch

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = srv.Shutdown(shutdownCtx)
}
