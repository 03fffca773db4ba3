package ports

import (
	"context"

	geodomain "shipping-calculator/internal/features/geocodes/domain"
	"shipping-calculator/internal/features/shipping/domain"
)

// RateProvider requests carrier rates for a quote.
type RateProvider interface {
	// Rate returns domain.ErrUnexpectedResponse when the body has no offer list.
	Rate(ctx context.Context, creds domain.Credentials, quote domain.RateQuote) ([]domain.CarrierOffer, error)
}

// RegionResolver enriches a postal code with region data.
type RegionResolver interface {
	Resolve(ctx context.Context, postalCode string) (*geodomain.RegionInfo, error)
}

// QuoteService defines the primary port for shipping quotes.
type QuoteService interface {
	Calculate(ctx context.Context, storeID string, req domain.CalculateRequest) (*domain.CalculateResponse, error)
}
