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

	"gobasera/collabapp/pkg/api"
	"gobasera/collabapp/pkg/storage"
	"gobasera/pkg/config"
	"gobasera/pkg/logger"
)

func main() {
	cfg, err := config.Load(8081)
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

	db, err := openStore(context.Background(), cfg, log)
	if err != nil {
		log.Fatal("Ошибка подключения к хранилищу", zap.Error(err))
	}
	defer db.Close()

	api := api.New(db, log)
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      api.Router(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info("Сервер объявлений запущен", zap.String("addr", srv.Addr))
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
}

// openStore подключается к PostgreSQL, а без database.url работает в памяти.
func openStore(ctx context.Context, cfg config.Config, log *zap.Logger) (storage.Store, error) {
	if cfg.Database.URL == "" {
		log.Warn("database.url не задан, объявления хранятся в памяти")
		return storage.NewMemory(), nil
	}

	if err := storage.Migrate(cfg.Database.URL, cfg.Database.MigrationsDir); err != nil {
		return nil, err
	}
	return storage.New(ctx, cfg.Database.URL)
}
