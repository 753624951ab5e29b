package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"printshop/frontend/costs"
	"printshop/frontend/deliveries"
	"printshop/frontend/login"
	"printshop/infrastructure/cache"
	"printshop/infrastructure/config"
	"printshop/infrastructure/credentials"
	httpserver "printshop/infrastructure/http"
	"printshop/infrastructure/session"
	"printshop/infrastructure/sqlite"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := sqlite.OpenDB(cfg.DBPath)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if err := sqlite.ApplyMigrations(context.Background(), db, cfg.MigrationsDir); err != nil {
		log.Fatalf("apply migrations: %v", err)
	}

	account, err := credentials.NewAccount(cfg.Username, cfg.Password)
	if err != nil {
		log.Fatalf("credentials: %v", err)
	}
	if err := login.CheckPasswordStrength(cfg.Password); err != nil {
		slog.Warn("weak APP_PASSWORD", slog.Any("err", err))
	}

	configCache := cache.NewCostConfigCache()
	if _, err := costs.CurrentCostConfig(context.Background(), db, configCache); err != nil {
		log.Fatalf("load cost config: %v", err)
	}

	policy := deliveries.CreateMissingCustomer
	if cfg.RequireExistingCustomer {
		policy = deliveries.RequireExistingCustomer
	}
	store := session.NewFileStore(cfg.SessionFile, cfg.SessionTTL())

	server := httpserver.NewServer(cfg.Addr, db, store, account, configCache, policy)
	if err := server.Start(); err != nil {
		log.Fatalf("start server: %v", err)
	}
	slog.Info("printshop listening",
		slog.String("addr", cfg.Addr),
		slog.String("db", cfg.DBPath),
		slog.String("session_file", store.Path()),
		slog.Duration("session_ttl", store.TTL()),
	)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	if err := server.Stop(); err != nil {
		log.Printf("graceful shutdown error: %v", err)
	}
}
