package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"shipping-calculator/internal/core/logger"
	"shipping-calculator/internal/core/metrics"
	"shipping-calculator/internal/core/resilience"
	"shipping-calculator/internal/features/shipping/domain"
	"shipping-calculator/internal/features/shipping/ports"

	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"
)

// DefaultCarrier is quoted when the merchant configured no carriers.
const DefaultCarrier = "correios"

// carrierAlias maps a provider carrier id to its display name.
type carrierAlias struct {
	name        string
	description string
}

var carrierAliases = []carrierAlias{
	{name: "correios", description: "Correios"},
	{name: "ups", description: "UPS"},
	{name: "shippify", description: "Shippify"},
	{name: "Jadlog", description: "Jadlog"},
	{name: "dhl", description: "DHL Express"},
	{name: "buslog", description: "Buslog"},
	{name: "totalExpress", description: "Total Express"},
	{name: "loggi", description: "Loggi"},
}

// ResolveCarriers maps configured carrier names to provider ids.
// Unknown names pass through unchanged.
func ResolveCarriers(names []string) []string {
	if len(names) == 0 {
		return []string{DefaultCarrier}
	}

	ids := make([]string, 0, len(names))
	for _, name := range names {
		id := name
		for _, alias := range carrierAliases {
			if alias.name == name || alias.description == name {
				id = alias.name
				break
			}
		}
		ids = append(ids, id)
	}
	return ids
}

// BreakerConfig returns the breaker settings for carrier calls. Only upstream
// failures count against a breaker: a refused request or an unexpected body is
// specific to the merchant's call and leaves the carrier healthy.
func BreakerConfig() resilience.BreakerConfig {
	cfg := resilience.DefaultBreakerConfig()
	cfg.IsSuccessful = carrierHealthy
	return cfg
}

func carrierHealthy(err error) bool {
	if err == nil || errors.Is(err, domain.ErrUnexpectedResponse) {
		return true
	}
	var statusErr *domain.StatusError
	return errors.As(err, &statusErr) && statusErr.MerchantFault()
}

// breakerName scopes a breaker to one store and carrier, since each store
// calls with its own credentials.
func breakerName(storeID, carrier string) string {
	if storeID == "" {
		return carrier
	}
	return storeID + ":" + carrier
}

// CarrierResult holds the outcome of one carrier call. Err is set when the call failed.
type CarrierResult struct {
	Carrier string
	Offers  []domain.CarrierOffer
	Err     error

	index int
}

// Gateway fans a quote out to carriers and isolates their failures.
type Gateway struct {
	provider ports.RateProvider
	breakers *resilience.Registry
	metrics  *metrics.Metrics
}

// NewGateway creates a Gateway. m may be nil.
func NewGateway(provider ports.RateProvider, breakers *resilience.Registry, m *metrics.Metrics) *Gateway {
	return &Gateway{
		provider: provider,
		breakers: breakers,
		metrics:  m,
	}
}

// Quote calls every carrier concurrently and waits for all of them.
// Results keep the order of carriers. Calls are not cancelled when ctx is;
// each one is bounded by the provider's own timeout.
func (g *Gateway) Quote(ctx context.Context, creds domain.Credentials, quote domain.RateQuote, carriers []string) []CarrierResult {
	ctx = context.WithoutCancel(ctx)
	log := logger.ForStore(creds.StoreID)

	p := pool.NewWithResults[CarrierResult]()
	for i, carrier := range carriers {
		p.Go(func() CarrierResult {
			return g.call(ctx, log, creds, quote.ForCarrier(carrier), i)
		})
	}

	results := p.Wait()
	sort.Slice(results, func(i, j int) bool {
		return results[i].index < results[j].index
	})
	return results
}

func (g *Gateway) call(ctx context.Context, log *zap.Logger, creds domain.Credentials, quote domain.RateQuote, index int) CarrierResult {
	carrier := quote.Shipment.Carrier
	start := time.Now()

	offers, err := resilience.Execute(g.breakers, breakerName(creds.StoreID, carrier), func() ([]domain.CarrierOffer, error) {
		return g.provider.Rate(ctx, creds, quote)
	})
	g.metrics.RecordCarrierRequest(carrier, carrierStatus(err), time.Since(start))

	switch {
	case errors.Is(err, domain.ErrUnexpectedResponse):
		log.Warn("Unexpected Envia.com response",
			zap.String("carrier", carrier),
			zap.String("destination_zip", quote.Destination.PostalCode),
			zap.Any("quote", quote),
			zap.Error(err),
		)
	case err != nil:
		log.Error("Error calling Envia.com API",
			zap.String("carrier", carrier),
			zap.Any("quote", quote),
			zap.Error(err),
		)
	}

	return CarrierResult{Carrier: carrier, Offers: offers, Err: err, index: index}
}

func carrierStatus(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, resilience.ErrCircuitOpen):
		return "open"
	case errors.Is(err, domain.ErrUnexpectedResponse):
		return "unexpected"
	default:
		return "error"
	}
}
