package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"printshop/frontend/costs"
	"printshop/infrastructure/config"
	"printshop/infrastructure/pricing"
	"printshop/infrastructure/sqlite"
)

func main() {
	reset := flag.Bool("reset", false, "overwrite saved values with the defaults")
	flag.Parse()

	migrationsDir, err := resolveMigrationsDir()
	if err != nil {
		log.Fatalf("resolve migrations dir: %v", err)
	}
	dbPath, err := config.DBPathFromEnv()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := sqlite.OpenDB(dbPath)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if err := sqlite.ApplyMigrations(context.Background(), db, migrationsDir); err != nil {
		log.Fatalf("apply migrations: %v", err)
	}

	cfg, err := seedCostConfig(context.Background(), db, *reset)
	if err != nil {
		log.Fatalf("seed cost config: %v", err)
	}
	for _, key := range pricing.Keys() {
		fmt.Printf("%s=%v\n", key, cfg.Values()[key])
	}
	fmt.Printf("seeded cost config in %s\n", dbPath)
}

// seedCostConfig writes every key of the cost record. Saved values are kept
// unless reset is set; missing keys get their defaults.
func seedCostConfig(ctx context.Context, db *sqlite.DB, reset bool) (pricing.CostConfig, error) {
	cfg := pricing.DefaultConfig()
	if !reset {
		loaded, err := costs.LoadCostConfig(ctx, db)
		if err != nil {
			return pricing.CostConfig{}, err
		}
		cfg = loaded
	}
	if err := costs.SaveCostConfig(ctx, db, cfg); err != nil {
		return pricing.CostConfig{}, err
	}
	return cfg, nil
}

func resolveMigrationsDir() (string, error) {
	candidates := []string{
		filepath.Join("infrastructure", "sqlite", "migrations"),
		filepath.Join("..", "..", "infrastructure", "sqlite", "migrations"),
	}

	if _, file, _, ok := runtime.Caller(0); ok {
		candidates = append(candidates, filepath.Join(filepath.Dir(file), "..", "..", "infrastructure", "sqlite", "migrations"))
	}

	tried := make([]string, 0, len(candidates))
	for _, candidate := range candidates {
		absPath, err := filepath.Abs(candidate)
		if err != nil {
			continue
		}
		tried = append(tried, absPath)

		info, err := os.Stat(absPath)
		if err != nil {
			continue
		}
		if info.IsDir() {
			return absPath, nil
		}
	}

	return "", fmt.Errorf("migrations dir not found; tried: %s", strings.Join(tried, ", "))
}
