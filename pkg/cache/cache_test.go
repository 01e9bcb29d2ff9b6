package cache_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sheshine/backoffice/pkg/cache"
)

func TestDisabledCacheIsTransparent(t *testing.T) {
	ctx := context.Background()
	require.Nil(t, cache.RDB)

	var dest []string
	assert.False(t, cache.Get(ctx, "categories:all", &dest))
	assert.NoError(t, cache.Set(ctx, "categories:all", []string{"a"}, time.Minute))
	assert.NoError(t, cache.Del(ctx, "categories:all"))
	assert.ErrorIs(t, cache.Ping(ctx), cache.ErrNotConnected)
}

func TestRememberCallsLoaderOnMiss(t *testing.T) {
	ctx := context.Background()
	calls := 0
	load := func() ([]string, error) {
		calls++
		return []string{"Skincare", "Makeup"}, nil
	}

	got, err := cache.Remember(ctx, "categories:all", time.Minute, load)
	require.NoError(t, err)
	assert.Equal(t, []string{"Skincare", "Makeup"}, got)
	assert.Equal(t, 1, calls)

	_, err = cache.Remember(ctx, "categories:all", time.Minute, func() ([]string, error) {
		return nil, errors.New("db down")
	})
	assert.EqualError(t, err, "db down")
}
