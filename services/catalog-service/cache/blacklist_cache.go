package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/pawsitivecheck/backend/services/catalog-service/models"
)

const activeBlacklistKey = "blacklist:active"

// BlacklistLoader fetches the active blacklist from storage.
type BlacklistLoader func(ctx context.Context) ([]models.BlacklistEntry, error)

// BlacklistCache memoizes the active ingredient blacklist in-process. Every
// analysis reads it, and it changes only on admin writes.
type BlacklistCache struct {
	store *gocache.Cache
	load  BlacklistLoader
}

func NewBlacklistCache(ttl time.Duration, load BlacklistLoader) *BlacklistCache {
	return &BlacklistCache{
		store: gocache.New(ttl, ttl*2),
		load:  load,
	}
}

// Active returns the active entries, loading them on a miss. Load errors are
// not cached.
func (bc *BlacklistCache) Active(ctx context.Context) ([]models.BlacklistEntry, error) {
	if cached, found := bc.store.Get(activeBlacklistKey); found {
		return cached.([]models.BlacklistEntry), nil
	}

	entries, err := bc.load(ctx)
	if err != nil {
		return nil, err
	}
	bc.store.Set(activeBlacklistKey, entries, gocache.DefaultExpiration)
	return entries, nil
}

// Invalidate forces the next Active call to reload.
func (bc *BlacklistCache) Invalidate() {
	bc.store.Delete(activeBlacklistKey)
}
