package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"shipping-calculator/internal/core/cache"
	"shipping-calculator/internal/features/geocodes/domain"
)

const (
	geocodeKeyPrefix = "geocodes:"
	geocodeIndexKey  = "geocodes:index"
)

// RedisGeocodeRepository implements ports.GeocodeRepository on an indexed cache.
// Records carry no TTL; age is tracked in a sorted index scored by fetch time.
type RedisGeocodeRepository struct {
	cache cache.IndexedCache
}

// NewRedisGeocodeRepository creates a new RedisGeocodeRepository.
func NewRedisGeocodeRepository(c cache.IndexedCache) *RedisGeocodeRepository {
	return &RedisGeocodeRepository{cache: c}
}

func geocodeKey(postalCode string) string {
	return geocodeKeyPrefix + postalCode
}

// Get loads the cached entry for a postal code.
func (r *RedisGeocodeRepository) Get(ctx context.Context, postalCode string) (*domain.GeocodeEntry, error) {
	data, err := r.cache.Get(ctx, geocodeKey(postalCode))
	if errors.Is(err, cache.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get geocode from cache: %w", err)
	}

	var entry domain.GeocodeEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, fmt.Errorf("failed to unmarshal geocode: %w", err)
	}
	if entry.PostalCode == "" {
		entry.PostalCode = postalCode
	}

	return &entry, nil
}

// Save writes the entry and (re)indexes it by fetch time in one atomic step.
func (r *RedisGeocodeRepository) Save(ctx context.Context, entry domain.GeocodeEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal geocode: %w", err)
	}

	err = r.cache.SetIndexed(ctx, geocodeIndexKey, geocodeKeyPrefix, entry.PostalCode, data, float64(entry.At))
	if err != nil {
		return fmt.Errorf("failed to save geocode to cache: %w", err)
	}

	return nil
}

// DeleteOlderThan removes up to limit entries fetched before cutoff.
// Selection and deletion happen together, so an entry re-saved concurrently
// with a fresh fetch time is never removed.
func (r *RedisGeocodeRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time, limit int) (int, error) {
	if limit <= 0 {
		return 0, nil
	}

	postalCodes, err := r.cache.DeleteIndexedBelow(ctx, geocodeIndexKey, geocodeKeyPrefix, float64(cutoff.UnixMilli()), int64(limit))
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired geocodes: %w", err)
	}

	return len(postalCodes), nil
}
