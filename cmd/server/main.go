package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kearth1516-lgtm/my-app/internal"
	"github.com/kearth1516-lgtm/my-app/internal/api"
	"github.com/kearth1516-lgtm/my-app/internal/auth"
	"github.com/kearth1516-lgtm/my-app/internal/config"
	"github.com/kearth1516-lgtm/my-app/internal/scrape"
	"github.com/kearth1516-lgtm/my-app/internal/service"
	"github.com/kearth1516-lgtm/my-app/internal/storage"
	"github.com/kearth1516-lgtm/my-app/internal/suggest"
	"github.com/kearth1516-lgtm/my-app/internal/weather"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger, err := internal.NewLogger(cfg.Env, cfg.LogLevel)
	if err != nil {
		os.Stderr.WriteString("logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Errorf("server exited: %v", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger internal.Logger) error {
	store, err := storage.NewStore(cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Errorf("store close: %v", err)
		}
	}()

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := service.EnsureDefaults(ctx, store, store, time.Now().UTC()); err != nil {
		return err
	}

	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.AuthUsername, cfg.AuthPassword, cfg.TokenTTL, logger)
	app := api.NewApp(
		logger,
		store,
		service.NewActiveSessions(),
		scrape.NewHTTPScraper(logger),
		suggest.NewOpenAISuggester(cfg.OpenAIAPIKey, logger),
		weather.NewClient(cfg.WeatherURL, logger),
	)

	srv := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: api.BuildRouter(app, tokens, cfg),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("listening on %s (storage=%s)", cfg.ListenAddr, cfg.DBType)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Infof("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
