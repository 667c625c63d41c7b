package main

import (
	"context"
	"database/sql"
	"os"
	"time"

	"bookstall/internal/migrations"
	"bookstall/utils"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
)

func main() {
	// Do not override environment provided by the runtime (e.g. Docker).
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		utils.Fatal("DATABASE_URL is required", nil)
	}

	command := "up"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		utils.Fatal("failed to open database", map[string]any{"error": err.Error()})
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		utils.Fatal("failed to ping database", map[string]any{"error": err.Error()})
	}

	utils.Info("running migrations", map[string]any{"command": command})
	if err := migrations.Run(ctx, db, command); err != nil {
		utils.Fatal("migration failed", map[string]any{"command": command, "error": err.Error()})
	}
	utils.Info("migrations finished", map[string]any{"command": command})
}
