package cache

import (
	"sync"

	"printshop/infrastructure/pricing"
)

// CostConfigCache holds the current cost configuration once loaded.
type CostConfigCache struct {
	mu     sync.RWMutex
	cfg    pricing.CostConfig
	loaded bool
}

func NewCostConfigCache() *CostConfigCache {
	return &CostConfigCache{}
}

func (c *CostConfigCache) Set(cfg pricing.CostConfig) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cfg = cfg
	c.loaded = true
}

func (c *CostConfigCache) Get() (pricing.CostConfig, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cfg, c.loaded
}

func (c *CostConfigCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cfg = pricing.CostConfig{}
	c.loaded = false
}
