package service

import (
	"context"
	"errors"

	"shipping-calculator/internal/core/logger"
	"shipping-calculator/internal/core/metrics"
	geodomain "shipping-calculator/internal/features/geocodes/domain"
	"shipping-calculator/internal/features/shipping/domain"
	"shipping-calculator/internal/features/shipping/ports"

	"github.com/sourcegraph/conc"
	"go.uber.org/zap"
)

var (
	// ErrMissingAPIKey is returned when the merchant has not configured an API key.
	ErrMissingAPIKey = errors.New("api key is unset on app hidden data")
	// ErrMissingOriginZip is returned when neither the request nor the merchant sets an origin zip.
	ErrMissingOriginZip = errors.New("origin zip code is unset on app hidden data")
	// ErrEmptyCart is returned when a quote with a destination has no items.
	ErrEmptyCart = errors.New("cannot calculate shipping without cart items")
)

// Quote outcomes recorded in metrics.
const (
	outcomePreview = "preview"
	outcomeOK      = "ok"
	outcomeRefused = "refused"
)

// QuoteService computes shipping quotes for a cart.
type QuoteService struct {
	gateway *Gateway
	regions ports.RegionResolver
	metrics *metrics.Metrics
}

// NewQuoteService creates a new QuoteService. regions and m may be nil.
func NewQuoteService(gateway *Gateway, regions ports.RegionResolver, m *metrics.Metrics) *QuoteService {
	return &QuoteService{
		gateway: gateway,
		regions: regions,
		metrics: m,
	}
}

// Calculate returns the free shipping preview, and the carrier offers when a destination is set.
func (s *QuoteService) Calculate(ctx context.Context, storeID string, req domain.CalculateRequest) (*domain.CalculateResponse, error) {
	params, app := req.Params, req.App
	log := logger.ForStore(storeID)

	destinationZip := params.DestinationZip()
	response := domain.NewCalculateResponse()
	response.FreeShippingFromValue = domain.FreeShippingFromValue(app.ShippingRules, destinationZip)

	if params.To == nil {
		s.metrics.RecordQuote(outcomePreview, 0)
		return response, nil
	}

	if app.APIKey == "" {
		s.metrics.RecordQuote(outcomeRefused, 0)
		return nil, ErrMissingAPIKey
	}
	originZip := params.OriginZip(app)
	if originZip == "" {
		s.metrics.RecordQuote(outcomeRefused, 0)
		return nil, ErrMissingOriginZip
	}
	if len(params.Items) == 0 {
		s.metrics.RecordQuote(outcomeRefused, 0)
		return nil, ErrEmptyCart
	}

	pkg := domain.ComputePackage(params.Items)
	pkg.DeclaredValue = domain.DeclaredValue(params.Items, params.Subtotal)

	originRegion, destinationRegion := s.resolveRegions(ctx, log, originZip, destinationZip)
	quote := BuildQuoteRequest(pkg, originZip, destinationZip, originRegion, destinationRegion)

	from := domain.Address{}
	if params.From != nil {
		from = *params.From
	}
	from.Zip = originZip

	qc := domain.OfferContext{
		From:            from,
		To:              params.To,
		DeclaredValue:   pkg.DeclaredValue,
		Package:         pkg,
		PostingDeadline: app.PostingDeadline,
	}
	rc := domain.RuleContext{
		DestinationZip: destinationZip,
		DeclaredValue:  pkg.DeclaredValue,
	}
	creds := domain.Credentials{
		APIKey:  app.APIKey,
		Sandbox: app.Sandbox,
		StoreID: storeID,
	}

	for _, result := range s.gateway.Quote(ctx, creds, quote, ResolveCarriers(app.Carriers)) {
		if result.Err != nil {
			continue
		}
		for _, raw := range result.Offers {
			offer, ok := domain.NormalizeOffer(raw, qc)
			if !ok {
				continue
			}
			offer, ok = domain.ApplyRules(offer, app, rc)
			if !ok {
				continue
			}
			offer.DeliveryInstructions = app.DeliveryInstructions
			response.ShippingServices = append(response.ShippingServices, offer)
		}
	}

	s.metrics.RecordQuote(outcomeOK, len(response.ShippingServices))
	log.Debug("Shipping calculated",
		zap.String("destination_zip", destinationZip),
		zap.Int("services", len(response.ShippingServices)),
	)

	return response, nil
}

// resolveRegions looks up both zips concurrently. Failures leave the region nil.
func (s *QuoteService) resolveRegions(ctx context.Context, log *zap.Logger, originZip, destinationZip string) (origin, destination *geodomain.RegionInfo) {
	if s.regions == nil {
		return nil, nil
	}

	var wg conc.WaitGroup
	wg.Go(func() { origin = s.resolveRegion(ctx, log, originZip) })
	wg.Go(func() { destination = s.resolveRegion(ctx, log, destinationZip) })
	wg.Wait()

	return origin, destination
}

func (s *QuoteService) resolveRegion(ctx context.Context, log *zap.Logger, zip string) *geodomain.RegionInfo {
	info, err := s.regions.Resolve(ctx, zip)
	if err != nil {
		log.Warn("Geocode lookup failed", zap.String("postal_code", zip), zap.Error(err))
		return nil
	}
	return info
}
