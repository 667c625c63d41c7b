package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"bookstall/internal/clock"
	"bookstall/internal/config"
	"bookstall/internal/identity"
	listing "bookstall/internal/listingService"
	"bookstall/internal/migrations"
	purchase "bookstall/internal/purchaseService"
	"bookstall/internal/repository"
	"bookstall/internal/repository/postgres"
	"bookstall/internal/server"
	"bookstall/utils"

	"github.com/gin-gonic/gin"
)

const (
	startupTimeout  = 15 * time.Second
	shutdownTimeout = 10 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		utils.Fatal("failed to load config", map[string]any{"error": err.Error()})
	}
	if err := utils.SetLevel(cfg.LogLevel); err != nil {
		utils.Warn("invalid LOG_LEVEL, keeping info", map[string]any{"level": cfg.LogLevel})
	}
	if cfg.AppEnv != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}

	startupCtx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	store, err := openStore(startupCtx, cfg)
	cancel()
	if err != nil {
		utils.Fatal("failed to open store", map[string]any{"error": err.Error()})
	}
	defer store.Close()

	clk := clock.NewSystem()
	tokens := identity.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)

	router := server.SetupRouter(server.Dependencies{
		Listings:  listing.NewListingService(store, clk),
		Purchases: purchase.NewPurchaseService(store, clk),
		Accounts:  identity.NewAccountService(store, tokens, clk, cfg.AdminSecret),
		Tokens:    tokens,
		Ping:      store.Ping,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	utils.Info("starting bookstore server", map[string]any{
		"addr":         cfg.Addr(),
		"memory_store": cfg.UsesMemoryStore(),
		"env":          cfg.AppEnv,
	})

	srvErr := make(chan error, 1)
	go func() {
		srvErr <- srv.ListenAndServe()
	}()

	stopCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.Error("server error", map[string]any{"error": err.Error()})
		}
	case <-stopCtx.Done():
		utils.Info("shutdown signal received, stopping server", nil)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		utils.Error("server shutdown error", map[string]any{"error": err.Error()})
	}
	utils.Info("server stopped", nil)
}

// openStore returns the in-memory store when no database is configured,
// otherwise a migrated Postgres store
func openStore(ctx context.Context, cfg *config.Config) (repository.Store, error) {
	if cfg.UsesMemoryStore() {
		utils.Warn("DATABASE_URL not set, using in-memory store", nil)
		return repository.NewMemoryRepo(), nil
	}

	store, err := postgres.Open(ctx, cfg.DatabaseURL, cfg.DBTimeout)
	if err != nil {
		return nil, err
	}
	if err := migrations.Apply(ctx, store.Pool()); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("apply migrations: %w", err)
	}
	return store, nil
}
