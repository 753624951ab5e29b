package cache

import (
	"testing"

	"printshop/infrastructure/pricing"
)

func TestCostConfigCache(t *testing.T) {
	c := NewCostConfigCache()
	if _, ok := c.Get(); ok {
		t.Fatalf("expected empty cache")
	}

	cfg := pricing.DefaultConfig()
	cfg.PricePerKg = 1
	c.Set(cfg)
	got, ok := c.Get()
	if !ok || got != cfg {
		t.Fatalf("expected cached config %+v, got %+v (ok=%v)", cfg, got, ok)
	}

	c.Invalidate()
	if _, ok := c.Get(); ok {
		t.Fatalf("expected cache to be empty after invalidate")
	}
}
