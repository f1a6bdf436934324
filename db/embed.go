// Package db chứa SQL migrations, embed vào binary cmd/migrate
package db

import "embed"

//go:embed migrations/*.sql
var Migrations embed.FS

// MigrationsDir path tương đối trong Migrations
const MigrationsDir = "migrations"
