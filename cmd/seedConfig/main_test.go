package main

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"printshop/frontend/costs"
	"printshop/infrastructure/pricing"
	"printshop/infrastructure/sqlite"
)

func TestResolveMigrationsDir_FromRepoRoot(t *testing.T) {
	_, repoRoot := testPaths(t)
	withWorkingDir(t, repoRoot)

	dir, err := resolveMigrationsDir()
	if err != nil {
		t.Fatalf("resolve migrations dir from repo root: %v", err)
	}

	assertMigrationsDir(t, dir)
}

func TestResolveMigrationsDir_FromSeedConfigDir(t *testing.T) {
	cmdDir, _ := testPaths(t)
	withWorkingDir(t, cmdDir)

	dir, err := resolveMigrationsDir()
	if err != nil {
		t.Fatalf("resolve migrations dir from cmd/seedConfig: %v", err)
	}

	assertMigrationsDir(t, dir)
}

func testPaths(t *testing.T) (cmdDir string, repoRoot string) {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatalf("runtime caller unavailable")
	}
	cmdDir = filepath.Dir(file)
	repoRoot = filepath.Clean(filepath.Join(cmdDir, "..", ".."))
	return cmdDir, repoRoot
}

func withWorkingDir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir to %s: %v", dir, err)
	}
	t.Cleanup(func() {
		_ = os.Chdir(wd)
	})
}

func assertMigrationsDir(t *testing.T, dir string) {
	t.Helper()
	info, err := os.Stat(dir)
	if err != nil {
		t.Fatalf("stat migrations dir: %v", err)
	}
	if !info.IsDir() {
		t.Fatalf("expected directory, got file: %s", dir)
	}
	if !strings.HasSuffix(filepath.ToSlash(dir), "infrastructure/sqlite/migrations") {
		t.Fatalf("unexpected migrations path: %s", dir)
	}
}

func TestSeedCostConfig_KeepsSavedValuesUnlessReset(t *testing.T) {
	ctx := context.Background()
	db, err := sqlite.OpenDB(filepath.Join(t.TempDir(), "seed.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := sqlite.ApplyEmbeddedMigrations(ctx, db); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}

	saved := pricing.DefaultConfig()
	saved.PricePerKg = 21000
	if err := costs.SaveCostConfig(ctx, db, saved); err != nil {
		t.Fatalf("save: %v", err)
	}

	cfg, err := seedCostConfig(ctx, db, false)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if cfg.PricePerKg != 21000 {
		t.Fatalf("expected saved price kept, got %v", cfg.PricePerKg)
	}

	cfg, err = seedCostConfig(ctx, db, true)
	if err != nil {
		t.Fatalf("seed reset: %v", err)
	}
	loaded, err := costs.LoadCostConfig(ctx, db)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg != pricing.DefaultConfig() || loaded != pricing.DefaultConfig() {
		t.Fatalf("expected defaults after reset, got %+v / %+v", cfg, loaded)
	}
}
