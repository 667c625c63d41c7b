package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	log "github.com/sirupsen/logrus"
)

//go:embed *.sql
var migrationFiles embed.FS

func init() {
	goose.SetBaseFS(migrationFiles)
	goose.SetLogger(log.StandardLogger())
	if err := goose.SetDialect("postgres"); err != nil {
		panic(fmt.Sprintf("migrations: set dialect: %v", err))
	}
}

// Apply brings the schema behind pool up to the latest embedded migration.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	return Run(ctx, db, "up")
}

// Run executes a goose command (up, down, status, version) with the embedded migrations.
func Run(ctx context.Context, db *sql.DB, command string) error {
	switch command {
	case "up":
		if err := goose.UpContext(ctx, db, "."); err != nil {
			return fmt.Errorf("migrate up: %w", err)
		}
	case "down":
		if err := goose.DownContext(ctx, db, "."); err != nil {
			return fmt.Errorf("migrate down: %w", err)
		}
	case "status":
		if err := goose.StatusContext(ctx, db, "."); err != nil {
			return fmt.Errorf("migrate status: %w", err)
		}
	case "version":
		version, err := goose.GetDBVersionContext(ctx, db)
		if err != nil {
			return fmt.Errorf("migrate version: %w", err)
		}
		log.Infof("current migration version: %d", version)
	default:
		return fmt.Errorf("unknown migrate command %q (available: up, down, status, version)", command)
	}
	return nil
}
