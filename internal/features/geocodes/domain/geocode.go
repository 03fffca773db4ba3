package domain

import (
	"errors"
	"time"
)

// ErrPostalCodeNotFound is returned when the lookup service has no match for a postal code.
var ErrPostalCodeNotFound = errors.New("postal code not found")

// RegionInfo is the region data used to enrich carrier-facing addresses.
type RegionInfo struct {
	// RegionCode is the two letter state code (e.g., SP).
	RegionCode string `json:"region_code"`
	// Locality is the city name.
	Locality string `json:"locality"`
}

// GeocodeEntry is a cached lookup result. Entries are replaced or deleted, never mutated.
type GeocodeEntry struct {
	PostalCode string     `json:"postal_code"`
	Geocodes   RegionInfo `json:"geocodes"`
	// At is the fetch time in epoch milliseconds.
	At int64 `json:"at"`
}

// NewGeocodeEntry stamps a lookup result with its fetch time.
func NewGeocodeEntry(postalCode string, info RegionInfo, fetchedAt time.Time) GeocodeEntry {
	return GeocodeEntry{
		PostalCode: postalCode,
		Geocodes:   info,
		At:         fetchedAt.UnixMilli(),
	}
}

// FetchedAt returns At as a time.
func (e GeocodeEntry) FetchedAt() time.Time {
	return time.UnixMilli(e.At)
}

// OlderThan reports whether the entry was fetched strictly before cutoff.
func (e GeocodeEntry) OlderThan(cutoff time.Time) bool {
	return e.At < cutoff.UnixMilli()
}
