package main

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/pageza/recipe-wizard/backend/config"
	"github.com/pageza/recipe-wizard/backend/internal/api"
	"github.com/pageza/recipe-wizard/backend/internal/logger"
	"github.com/pageza/recipe-wizard/backend/internal/server"
)

func main() {
	bootLog := logger.New("info", false, os.Stderr)

	// A .env file is optional; deployed containers get their environment directly.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		bootLog.Warn().Err(err).Msg("failed to load .env file")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		bootLog.Fatal().Err(err).Msg("failed to load configuration")
	}
	log := logger.New(cfg.LogLevel, cfg.LogPretty, os.Stderr).With().Str("version", api.Version).Logger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv, err := server.New(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize server")
	}
	defer func() {
		if err := srv.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close connections")
		}
	}()

	if err := srv.Run(ctx); err != nil {
		log.Error().Err(err).Msg("server error")
		return
	}
	log.Info().Msg("server stopped")
}
