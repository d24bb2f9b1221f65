package cache_test

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/pawsitivecheck/backend/services/catalog-service/cache"
	"github.com/pawsitivecheck/backend/services/catalog-service/models"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRedisClient() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr: "localhost:0",
		Dialer: func(ctx context.Context, network, addr string) (net.Conn, error) {
			return nil, errors.New("redis disabled in tests")
		},
		MaxRetries: -1,
	})
}

func TestProductCache_NilClientIsMiss(t *testing.T) {
	pc := cache.NewProductCache(nil, 0, zap.NewNop())

	p, ok := pc.GetByBarcode(context.Background(), "123")
	assert.False(t, ok)
	assert.Nil(t, p)
	assert.NoError(t, pc.InvalidateAll(context.Background()))

	code := "123"
	pc.SetAsync(&models.Product{Barcode: &code})
	pc.InvalidateBarcode(context.Background(), code)
}

func TestProductCache_UnreachableRedisIsMiss(t *testing.T) {
	pc := cache.NewProductCache(newTestRedisClient(), time.Minute, zap.NewNop())

	p, ok := pc.GetByBarcode(context.Background(), "123")
	assert.False(t, ok)
	assert.Nil(t, p)
	assert.Error(t, pc.InvalidateAll(context.Background()))
}

func TestBlacklistCache_LoadsOnce(t *testing.T) {
	calls := 0
	bc := cache.NewBlacklistCache(time.Minute, func(ctx context.Context) ([]models.BlacklistEntry, error) {
		calls++
		return []models.BlacklistEntry{{IngredientName: "BHA", IsActive: true}}, nil
	})

	first, err := bc.Active(context.Background())
	require.NoError(t, err)
	second, err := bc.Active(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls)

	bc.Invalidate()
	_, err = bc.Active(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestBlacklistCache_ErrorNotCached(t *testing.T) {
	fail := true
	bc := cache.NewBlacklistCache(time.Minute, func(ctx context.Context) ([]models.BlacklistEntry, error) {
		if fail {
			return nil, errors.New("db down")
		}
		return []models.BlacklistEntry{}, nil
	})

	_, err := bc.Active(context.Background())
	assert.Error(t, err)

	fail = false
	entries, err := bc.Active(context.Background())
	assert.NoError(t, err)
	assert.NotNil(t, entries)
}
