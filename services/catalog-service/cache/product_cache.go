package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/pawsitivecheck/backend/services/catalog-service/models"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	BarcodeCachePrefix = "catalog:barcode:v"
	CacheVersionKey    = "catalog:version"
	DefaultCacheTTL    = 10 * time.Minute
)

// ProductCache keeps barcode lookups in Redis. A nil client disables it and
// every read becomes a miss.
type ProductCache struct {
	redis  *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewProductCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *ProductCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &ProductCache{redis: client, ttl: ttl, logger: logger}
}

// GetByBarcode returns the cached product for a barcode.
func (pc *ProductCache) GetByBarcode(ctx context.Context, barcode string) (*models.Product, bool) {
	if pc == nil || pc.redis == nil {
		return nil, false
	}
	version, err := pc.getCacheVersion(ctx)
	if err != nil {
		return nil, false
	}

	raw, err := pc.redis.Get(ctx, pc.barcodeKey(version, barcode)).Bytes()
	if err != nil {
		return nil, false
	}

	var product models.Product
	if err := json.Unmarshal(raw, &product); err != nil {
		pc.logger.Warn("Failed to unmarshal cached product", zap.Error(err), zap.String("barcode", barcode))
		return nil, false
	}
	return &product, true
}

// SetAsync caches a product under its barcode without blocking the caller.
func (pc *ProductCache) SetAsync(product *models.Product) {
	if pc == nil || pc.redis == nil || product == nil || product.Barcode == nil {
		return
	}
	barcode := *product.Barcode
	payload, err := json.Marshal(product)
	if err != nil {
		pc.logger.Warn("Failed to marshal product for cache", zap.Error(err), zap.String("barcode", barcode))
		return
	}

	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		version, err := pc.getCacheVersion(bgCtx)
		if err != nil {
			return
		}
		if err := pc.redis.Set(bgCtx, pc.barcodeKey(version, barcode), payload, pc.ttl).Err(); err != nil {
			pc.logger.Warn("Failed to cache product", zap.Error(err), zap.String("barcode", barcode))
		}
	}()
}

// InvalidateAll bumps the version so every cached barcode becomes a miss.
func (pc *ProductCache) InvalidateAll(ctx context.Context) error {
	if pc == nil || pc.redis == nil {
		return nil
	}
	newVersion, err := pc.redis.Incr(ctx, CacheVersionKey).Result()
	if err != nil {
		return fmt.Errorf("failed to invalidate cache: %w", err)
	}
	pc.logger.Info("Catalog cache invalidated", zap.Int64("new_version", newVersion))
	return nil
}

// InvalidateBarcode drops a single entry, e.g. after a product edit.
func (pc *ProductCache) InvalidateBarcode(ctx context.Context, barcode string) {
	if pc == nil || pc.redis == nil || barcode == "" {
		return
	}
	version, err := pc.getCacheVersion(ctx)
	if err != nil {
		return
	}
	if err := pc.redis.Del(ctx, pc.barcodeKey(version, barcode)).Err(); err != nil {
		pc.logger.Warn("Failed to delete cached product", zap.Error(err), zap.String("barcode", barcode))
	}
}

func (pc *ProductCache) getCacheVersion(ctx context.Context) (int64, error) {
	const maxRetries = 3

	for i := 0; i < maxRetries; i++ {
		ver, err := pc.redis.Get(ctx, CacheVersionKey).Int64()
		if err == nil && ver > 0 {
			return ver, nil
		}
		if errors.Is(err, redis.Nil) {
			// SetNX so concurrent first readers agree on version 1
			if err := pc.redis.SetNX(ctx, CacheVersionKey, 1, 0).Err(); err == nil {
				continue
			}
		}
		if i < maxRetries-1 {
			time.Sleep(50 * time.Millisecond)
		}
	}
	return 0, fmt.Errorf("failed to get cache version after %d retries", maxRetries)
}

func (pc *ProductCache) barcodeKey(version int64, barcode string) string {
	return fmt.Sprintf("%s%d:%s", BarcodeCachePrefix, version, barcode)
}
