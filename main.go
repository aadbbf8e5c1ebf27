package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"gamecatalog/internal/apiclient"
	"gamecatalog/internal/config"
	"gamecatalog/internal/gameitems"
	"gamecatalog/internal/logging"
	"gamecatalog/internal/web"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}

	logger := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stderr)
	log.Logger = logger

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}

func run(ctx context.Context, cfg config.Config, logger zerolog.Logger) error {
	var api http.Handler
	if strings.TrimSpace(cfg.DBPath) != "" {
		store, err := openSeededStore(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer store.Close()
		api = gameitems.NewAPIHandler(store, logger)
	}

	fetcher, err := apiclient.NewClient(cfg.APIBaseURL, apiclient.Options{Timeout: cfg.APITimeout})
	if err != nil {
		return fmt.Errorf("api client setup failed: %w", err)
	}

	handler, err := web.NewHandler(cfg, web.Deps{
		Fetcher: fetcher,
		API:     api,
		Logger:  logger,
	})
	if err != nil {
		return fmt.Errorf("handler setup failed: %w", err)
	}

	server := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           logging.Middleware(logger)(handler),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", cfg.ListenAddr).Str("api", cfg.APIBaseURL).Msg("catalog server listening")
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	logger.Info().Msg("shutting down")
	return server.Shutdown(shutdownCtx)
}

func openSeededStore(ctx context.Context, cfg config.Config, logger zerolog.Logger) (*gameitems.Store, error) {
	store, err := gameitems.OpenStore(ctx, cfg.DBPath)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(cfg.SeedFile) == "" {
		return store, nil
	}

	items, err := gameitems.LoadSeedFile(cfg.SeedFile)
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	if err := store.Replace(ctx, items); err != nil {
		_ = store.Close()
		return nil, err
	}
	logger.Info().Str("seed", cfg.SeedFile).Int("items", len(items)).Msg("catalog seeded")
	return store, nil
}
