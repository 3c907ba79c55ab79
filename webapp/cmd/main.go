package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"gobasera/pkg/client"
	"gobasera/pkg/config"
	"gobasera/pkg/logger"
	"gobasera/webapp/pkg/api"
	"gobasera/webapp/pkg/board"
)

func main() {
	cfg, err := config.Load(8080)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Ошибка конфигурации: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Ошибка логгера: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync() //nolint:errcheck

	collaborator := client.New(cfg.Collaborator.BaseURL, client.WithTimeout(cfg.Collaborator.Timeout))
	sessions := board.NewSessions(collaborator, cfg.Session.TTL, log)
	api := api.New(sessions, log)

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      api.Router(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info("Сервер запущен",
			zap.String("addr", srv.Addr),
			zap.String("collaborator", collaborator.BaseURL()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Ошибка при запуске сервера", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Ошибка при остановке сервера", zap.Error(err))
	}
	log.Info("Сервер остановлен")
}
