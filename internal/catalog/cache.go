// Package catalog membungkus pembacaan daftar produk dengan cache Redis.
// Katalog read-mostly; cache di-invalidate setiap ada mutasi produk atau
// checkout sukses (stok berubah).
package catalog

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"github.com/ariefcatur/go-pos.git/internal/pos"
	"github.com/ariefcatur/go-pos.git/internal/redisx"
)

type Lister interface {
	ListProducts(ctx context.Context) ([]pos.Product, error)
}

type Cache struct {
	Redis  *redis.Client
	Source Lister

	group singleflight.Group
}

// Products: coba cache dulu, miss -> query DB lewat singleflight supaya
// banyak request miss barengan cuma refresh sekali.
func (c *Cache) Products(ctx context.Context) ([]pos.Product, error) {
	if s, err := c.Redis.Get(ctx, redisx.KeyProductCache).Result(); err == nil && s != "" {
		var out []pos.Product
		if err := json.Unmarshal([]byte(s), &out); err == nil {
			return out, nil
		}
		// cache korup -> jatuh ke DB
	}

	v, err, _ := c.group.Do(redisx.KeyProductCache, func() (any, error) {
		out, err := c.Source.ListProducts(ctx)
		if err != nil {
			return nil, err
		}
		if b, err := json.Marshal(out); err == nil {
			_ = c.Redis.Set(ctx, redisx.KeyProductCache, b, redisx.TTLProductCache).Err()
		}
		return out, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]pos.Product), nil
}

func (c *Cache) Invalidate(ctx context.Context) {
	_ = c.Redis.Del(ctx, redisx.KeyProductCache).Err()
}
