package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"
	"tower_backend/internal/config"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	ServiceProvider *ServiceProvider
}

func NewApp() *App {
	return &App{}
}

func (s *App) initServiceProvider() {
	s.ServiceProvider = newServiceProvider()
}

func (s *App) setup() {
	if err := config.Load(".env"); err != nil {
		// Переменные могут прийти из окружения без файла
		slog.Warn("failed to load .env file", slog.String("error", err.Error()))
	}
	s.initServiceProvider()
}

// Run поднимает HTTP сервер и ждет отмены ctx
func (s *App) Run(ctx context.Context) error {
	s.setup()
	defer s.ServiceProvider.Close()

	logger := s.ServiceProvider.Logger()
	srv := &http.Server{
		Addr:              s.ServiceProvider.HTTPCfg().Address(),
		Handler:           s.ServiceProvider.Router(ctx),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("addr", srv.Addr),
			slog.String("storage", s.ServiceProvider.StorageCfg().Driver()))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}

// Migrate накатывает схему из migrations/
func (s *App) Migrate(ctx context.Context) error {
	s.setup()
	return migrateUp(ctx, s.ServiceProvider.PgConfig().DSN(), s.ServiceProvider.Logger())
}
