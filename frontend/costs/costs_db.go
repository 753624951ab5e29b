package costs

import (
	"context"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"printshop/infrastructure/cache"
	"printshop/infrastructure/pricing"
	"printshop/infrastructure/sqlite"
	"printshop/models"
)

// LoadCostConfig reads the stored record. Missing keys take their defaults.
func LoadCostConfig(ctx context.Context, db *sqlite.DB) (pricing.CostConfig, error) {
	rows := make([]models.CostConfigEntry, 0)
	err := db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		return tx.NewSelect().Model(&rows).Scan(ctx)
	})
	if err != nil {
		return pricing.CostConfig{}, err
	}
	values := make(map[string]float64, len(rows))
	for _, row := range rows {
		values[row.Key] = row.Value
	}
	return pricing.FromValues(values), nil
}

// SaveCostConfig rewrites every key of the record in one transaction.
func SaveCostConfig(ctx context.Context, db *sqlite.DB, cfg pricing.CostConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	now := time.Now()
	values := cfg.Values()
	rows := make([]models.CostConfigEntry, 0, len(values))
	for _, key := range pricing.Keys() {
		rows = append(rows, models.CostConfigEntry{Key: key, Value: values[key], UpdatedAt: now})
	}
	return db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().
			Model(&rows).
			On(`CONFLICT ("key") DO UPDATE`).
			Set("value = EXCLUDED.value").
			Set("updated_at = EXCLUDED.updated_at").
			Exec(ctx); err != nil {
			return fmt.Errorf("save cost config: %w", err)
		}
		return nil
	})
}

// CurrentCostConfig returns the cached record, loading it on first use.
func CurrentCostConfig(ctx context.Context, db *sqlite.DB, c *cache.CostConfigCache) (pricing.CostConfig, error) {
	if cfg, ok := c.Get(); ok {
		return cfg, nil
	}
	cfg, err := LoadCostConfig(ctx, db)
	if err != nil {
		return pricing.CostConfig{}, err
	}
	c.Set(cfg)
	return cfg, nil
}

// StoreCostConfig saves cfg and replaces the cached copy.
func StoreCostConfig(ctx context.Context, db *sqlite.DB, c *cache.CostConfigCache, cfg pricing.CostConfig) error {
	if err := SaveCostConfig(ctx, db, cfg); err != nil {
		return err
	}
	c.Set(cfg)
	return nil
}
