package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/pageza/recipe-wizard/backend/internal/database"
	"github.com/pageza/recipe-wizard/backend/internal/logger"
)

func main() {
	rollback := flag.Bool("rollback", false, "Rollback the last migration")
	dir := flag.String("dir", "migrations", "Directory holding the .sql migration files")
	pretty := flag.Bool("pretty", true, "Human readable log output")
	flag.Parse()

	log := logger.New("info", *pretty, os.Stderr)

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Warn().Err(err).Msg("failed to load .env file")
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal().Msg("DATABASE_URL environment variable is not set")
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to ping database")
	}

	if *rollback {
		version, err := database.RollbackLast(ctx, db, *dir, log)
		switch {
		case errors.Is(err, database.ErrNothingToRollback):
			log.Info().Msg("no migrations to roll back")
		case err != nil:
			log.Fatal().Err(err).Msg("rollback failed")
		default:
			log.Info().Str("version", version).Msg("rolled back migration")
		}
		return
	}

	applied, err := database.ApplyMigrations(ctx, db, *dir, log)
	if err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}
	if len(applied) == 0 {
		log.Info().Msg("database is up to date")
		return
	}
	log.Info().Strs("applied", applied).Msg("migrations applied")
}
