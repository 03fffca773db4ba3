package ports

import (
	"context"
	"time"

	"shipping-calculator/internal/features/geocodes/domain"
)

// GeocodeLookup resolves a postal code against the external geocode service.
type GeocodeLookup interface {
	// Lookup returns domain.ErrPostalCodeNotFound when there is no match.
	Lookup(ctx context.Context, postalCode string) (*domain.RegionInfo, error)
}

// GeocodeRepository persists lookup results keyed by postal code.
type GeocodeRepository interface {
	// Get returns nil, nil on a miss.
	Get(ctx context.Context, postalCode string) (*domain.GeocodeEntry, error)
	// Save replaces any entry for the same postal code.
	Save(ctx context.Context, entry domain.GeocodeEntry) error
	// DeleteOlderThan removes at most limit entries fetched before cutoff and returns the count.
	DeleteOlderThan(ctx context.Context, cutoff time.Time, limit int) (int, error)
}

// GeocodeService defines the primary port for geocode operations.
type GeocodeService interface {
	Resolve(ctx context.Context, postalCode string) (*domain.RegionInfo, error)
	SweepExpired(ctx context.Context, retention time.Duration, limit int) (int, error)
}
