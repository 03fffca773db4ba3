package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"shipping-calculator/internal/core/httpclient"
	"shipping-calculator/internal/core/proxy"
	"shipping-calculator/internal/features/geocodes/domain"
)

// EnviaGeocodeAdapter implements ports.GeocodeLookup against the Envia geocodes API.
type EnviaGeocodeAdapter struct {
	client  *http.Client
	baseURL string
	country string
}

// NewEnviaGeocodeAdapter creates an adapter for Brazilian postal codes.
func NewEnviaGeocodeAdapter(baseURL string, timeout time.Duration, proxySettings proxy.Settings) *EnviaGeocodeAdapter {
	return &EnviaGeocodeAdapter{
		client:  httpclient.NewClient(timeout, proxySettings),
		baseURL: strings.TrimRight(baseURL, "/"),
		country: "BR",
	}
}

// enviaGeocode is one element of the zipcode lookup response.
type enviaGeocode struct {
	State struct {
		Code struct {
			TwoDigit string `json:"2digit"`
		} `json:"code"`
	} `json:"state"`
	Locality string `json:"locality"`
}

// Lookup fetches region data for a postal code.
func (a *EnviaGeocodeAdapter) Lookup(ctx context.Context, postalCode string) (*domain.RegionInfo, error) {
	endpoint := fmt.Sprintf("%s/zipcode/%s/%s", a.baseURL, a.country, url.PathEscape(postalCode))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", domain.ErrPostalCodeNotFound, postalCode)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocodes API returned status: %d", resp.StatusCode)
	}

	var results []enviaGeocode
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if len(results) == 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrPostalCodeNotFound, postalCode)
	}

	return &domain.RegionInfo{
		RegionCode: results[0].State.Code.TwoDigit,
		Locality:   results[0].Locality,
	}, nil
}
