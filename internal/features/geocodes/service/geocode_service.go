package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"shipping-calculator/internal/core/logger"
	"shipping-calculator/internal/core/metrics"
	"shipping-calculator/internal/features/geocodes/domain"
	"shipping-calculator/internal/features/geocodes/ports"

	"go.uber.org/zap"
)

const (
	// DefaultRetention is how long cached geocodes survive the sweep.
	DefaultRetention = 7 * 24 * time.Hour
	// DefaultSweepLimit caps deletions per sweep.
	DefaultSweepLimit = 2000
)

var (
	// ErrEmptyPostalCode is returned when Resolve is called without a postal code.
	ErrEmptyPostalCode = errors.New("postal code is required")
	// ErrLookupUnavailable is returned on a cache miss by a service built without a lookup.
	ErrLookupUnavailable = errors.New("geocode lookup is not configured")
)

// GeocodeService is a read-through cache of postal code regions.
// Staleness is enforced only by the sweep; reads return whatever is cached.
type GeocodeService struct {
	repo    ports.GeocodeRepository
	lookup  ports.GeocodeLookup
	metrics *metrics.Metrics
	logger  *zap.Logger
	now     func() time.Time
}

// NewGeocodeService creates a new GeocodeService. m may be nil, and so may lookup
// when the service only sweeps; Resolve then serves cache hits alone.
func NewGeocodeService(repo ports.GeocodeRepository, lookup ports.GeocodeLookup, m *metrics.Metrics) *GeocodeService {
	return &GeocodeService{
		repo:    repo,
		lookup:  lookup,
		metrics: m,
		logger:  logger.Get(),
		now:     time.Now,
	}
}

// Resolve returns the cached region for postalCode, fetching and storing it on a miss.
// Repository failures are logged and bypassed; lookup failures are returned.
func (s *GeocodeService) Resolve(ctx context.Context, postalCode string) (*domain.RegionInfo, error) {
	if postalCode == "" {
		return nil, ErrEmptyPostalCode
	}

	entry, err := s.repo.Get(ctx, postalCode)
	if err != nil {
		s.logger.Warn("Geocode cache read failed", zap.String("postal_code", postalCode), zap.Error(err))
	}
	if entry != nil {
		s.metrics.RecordGeocodeLookup("hit")
		info := entry.Geocodes
		return &info, nil
	}

	if s.lookup == nil {
		return nil, ErrLookupUnavailable
	}

	info, err := s.lookup.Lookup(ctx, postalCode)
	if err != nil {
		s.metrics.RecordGeocodeLookup("error")
		return nil, fmt.Errorf("geocode lookup for %s: %w", postalCode, err)
	}
	s.metrics.RecordGeocodeLookup("miss")

	if err := s.repo.Save(ctx, domain.NewGeocodeEntry(postalCode, *info, s.now())); err != nil {
		s.logger.Warn("Geocode cache write failed", zap.String("postal_code", postalCode), zap.Error(err))
	}

	return info, nil
}

// SweepExpired deletes up to limit entries older than retention and returns the count.
// A count equal to limit means more expired entries may remain.
func (s *GeocodeService) SweepExpired(ctx context.Context, retention time.Duration, limit int) (int, error) {
	if retention <= 0 {
		retention = DefaultRetention
	}
	if limit <= 0 {
		limit = DefaultSweepLimit
	}

	cutoff := s.now().Add(-retention)
	n, err := s.repo.DeleteOlderThan(ctx, cutoff, limit)
	if err != nil {
		return 0, fmt.Errorf("service: failed to sweep geocodes: %w", err)
	}

	s.metrics.RecordSwept(n)
	s.logger.Info("Geocode sweep finished",
		zap.Int("deleted", n),
		zap.Int("limit", limit),
		zap.Time("cutoff", cutoff),
	)

	return n, nil
}

// Drain repeats SweepExpired until a sweep deletes fewer than limit entries.
func (s *GeocodeService) Drain(ctx context.Context, retention time.Duration, limit int) (int, error) {
	if limit <= 0 {
		limit = DefaultSweepLimit
	}

	total := 0
	for {
		if err := ctx.Err(); err != nil {
			return total, err
		}

		n, err := s.SweepExpired(ctx, retention, limit)
		total += n
		if err != nil {
			return total, err
		}
		if n < limit {
			return total, nil
		}
	}
}
