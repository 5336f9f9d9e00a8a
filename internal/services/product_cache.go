package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/JJ00428/market-api/internal/domain"
	"github.com/redis/go-redis/v9"
)

// ProductCache is a cache-aside layer over product reads. A nil client
// disables caching entirely, which keeps tests and local runs simple.
type ProductCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewProductCache(client *redis.Client, ttl time.Duration) *ProductCache {
	return &ProductCache{client: client, ttl: ttl}
}

func productKey(id uint64) string {
	return fmt.Sprintf("product:%d", id)
}

func (c *ProductCache) Get(ctx context.Context, id uint64) *domain.Product {
	if c == nil || c.client == nil {
		return nil
	}
	cached, err := c.client.Get(ctx, productKey(id)).Result()
	if err != nil {
		return nil
	}
	var p domain.Product
	if err := json.Unmarshal([]byte(cached), &p); err != nil {
		return nil
	}
	return &p
}

func (c *ProductCache) Set(ctx context.Context, p *domain.Product) {
	if c == nil || c.client == nil || p == nil {
		return
	}
	if data, err := json.Marshal(p); err == nil {
		c.client.Set(ctx, productKey(p.ID), data, c.ttl)
	}
}

// Invalidate drops cached entries after any product mutation, stock changes
// included.
func (c *ProductCache) Invalidate(ctx context.Context, ids ...uint64) {
	if c == nil || c.client == nil || len(ids) == 0 {
		return
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = productKey(id)
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		log.Printf("cache invalidate failed: %v", err)
	}
}
