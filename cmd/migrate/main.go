package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog/log"

	"bookcatalog-backend/db"
	"bookcatalog-backend/internal/config"
	"bookcatalog-backend/pkg/logger"
)

func main() {
	var (
		command = flag.String("command", "up", "Migration command: up, down, status, create")
		name    = flag.String("name", "", "Name for 'create' command")
	)
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	logger.Init(cfg.App.Environment, cfg.App.LogLevel)

	// create chỉ sinh file, không cần kết nối database
	if *command == "create" {
		if *name == "" {
			log.Fatal().Msg("Name is required for 'create' command")
		}
		if err := goose.Create(nil, migrationsDir(), *name, "sql"); err != nil {
			log.Fatal().Err(err).Msg("Failed to create migration")
		}
		logger.Info("Migration created", map[string]interface{}{"name": *name})
		return
	}

	dbConfig, err := config.LoadDatabaseConfig(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load database config")
	}

	pool, err := pgxpool.New(context.Background(), dbConfig.DSN())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer pool.Close()

	sqlDB := stdlib.OpenDBFromPool(pool)
	defer sqlDB.Close()

	goose.SetBaseFS(db.Migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatal().Err(err).Msg("Failed to set dialect")
	}

	if err := run(*command, sqlDB); err != nil {
		log.Fatal().Err(err).Str("command", *command).Msg("Migration failed")
	}
}

func run(command string, sqlDB *sql.DB) error {
	switch command {
	case "up":
		if err := goose.Up(sqlDB, db.MigrationsDir); err != nil {
			return err
		}
		logger.Info("Migrations applied successfully", nil)
	case "down":
		if err := goose.Down(sqlDB, db.MigrationsDir); err != nil {
			return err
		}
		logger.Info("Migrations rolled back successfully", nil)
	case "status":
		return goose.Status(sqlDB, db.MigrationsDir)
	default:
		return fmt.Errorf("unknown command: %s. Use: up, down, status, create", command)
	}
	return nil
}

func migrationsDir() string {
	if v := os.Getenv("MIGRATIONS_DIR"); v != "" {
		return v
	}
	return "db/migrations"
}
