package adapters

import (
	"context"
	"fmt"
	"testing"
	"time"

	"shipping-calculator/internal/core/cache"
	"shipping-calculator/internal/features/geocodes/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepo(t *testing.T) (*RedisGeocodeRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	adapter, err := cache.NewRedisAdapter("redis://" + mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { adapter.Close() })
	return NewRedisGeocodeRepository(adapter), mr
}

func TestRedisGeocodeRepository_SaveGet(t *testing.T) {
	repo, mr := newRepo(t)
	ctx := context.Background()
	fetched := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)

	entry := domain.NewGeocodeEntry("01000000", domain.RegionInfo{RegionCode: "SP", Locality: "São Paulo"}, fetched)
	require.NoError(t, repo.Save(ctx, entry))

	got, err := repo.Get(ctx, "01000000")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, entry, *got)
	assert.True(t, fetched.Equal(got.FetchedAt()))

	ttl := mr.TTL("geocodes:01000000")
	assert.Equal(t, time.Duration(0), ttl)
}

func TestRedisGeocodeRepository_GetMiss(t *testing.T) {
	repo, _ := newRepo(t)

	got, err := repo.Get(context.Background(), "99999999")
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisGeocodeRepository_GetCorrupt(t *testing.T) {
	repo, mr := newRepo(t)
	require.NoError(t, mr.Set("geocodes:20000000", "not-json"))

	got, err := repo.Get(context.Background(), "20000000")
	assert.Error(t, err)
	assert.Nil(t, got)
}

func TestRedisGeocodeRepository_DeleteOlderThan(t *testing.T) {
	repo, _ := newRepo(t)
	ctx := context.Background()
	now := time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC)
	cutoff := now.Add(-7 * 24 * time.Hour)

	for i := 0; i < 5; i++ {
		old := domain.NewGeocodeEntry(fmt.Sprintf("0100000%d", i), domain.RegionInfo{RegionCode: "SP"}, cutoff.Add(-time.Duration(i+1)*time.Hour))
		require.NoError(t, repo.Save(ctx, old))
	}
	fresh := domain.NewGeocodeEntry("20000000", domain.RegionInfo{RegionCode: "RJ"}, now)
	require.NoError(t, repo.Save(ctx, fresh))
	edge := domain.NewGeocodeEntry("30000000", domain.RegionInfo{RegionCode: "MG"}, cutoff)
	require.NoError(t, repo.Save(ctx, edge))

	n, err := repo.DeleteOlderThan(ctx, cutoff, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	n, err = repo.DeleteOlderThan(ctx, cutoff, 3)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = repo.DeleteOlderThan(ctx, cutoff, 3)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	for _, pc := range []string{"20000000", "30000000"} {
		got, err := repo.Get(ctx, pc)
		require.NoError(t, err)
		assert.NotNil(t, got, pc)
	}
	got, err := repo.Get(ctx, "01000000")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisGeocodeRepository_ResavedEntrySurvivesSweep(t *testing.T) {
	repo, mr := newRepo(t)
	ctx := context.Background()
	now := time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC)
	cutoff := now.Add(-7 * 24 * time.Hour)

	stale := domain.NewGeocodeEntry("01000000", domain.RegionInfo{RegionCode: "SP"}, cutoff.Add(-time.Hour))
	require.NoError(t, repo.Save(ctx, stale))
	refreshed := domain.NewGeocodeEntry("01000000", domain.RegionInfo{RegionCode: "SP", Locality: "São Paulo"}, now)
	require.NoError(t, repo.Save(ctx, refreshed))

	n, err := repo.DeleteOlderThan(ctx, cutoff, 10)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	got, err := repo.Get(ctx, "01000000")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, refreshed, *got)

	members, err := mr.ZMembers("geocodes:index")
	require.NoError(t, err)
	assert.Equal(t, []string{"01000000"}, members)
}

func TestRedisGeocodeRepository_SaveIndexFailure(t *testing.T) {
	repo, mr := newRepo(t)
	require.NoError(t, mr.Set("geocodes:index", "corrupt"))

	entry := domain.NewGeocodeEntry("01000000", domain.RegionInfo{RegionCode: "SP"}, time.Now())
	err := repo.Save(context.Background(), entry)

	assert.Error(t, err)
	assert.False(t, mr.Exists("geocodes:01000000"))
}

func TestRedisGeocodeRepository_DeleteZeroLimit(t *testing.T) {
	repo, _ := newRepo(t)
	n, err := repo.DeleteOlderThan(context.Background(), time.Now(), 0)
	assert.NoError(t, err)
	assert.Equal(t, 0, n)
}
