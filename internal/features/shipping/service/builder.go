package service

import (
	geodomain "shipping-calculator/internal/features/geocodes/domain"
	"shipping-calculator/internal/features/shipping/domain"
)

const (
	quoteCountry  = "BR"
	quoteCurrency = "BRL"
	// shipmentTypeParcel is the provider's shipment type for parcels.
	shipmentTypeParcel = 1
)

// BuildQuoteRequest assembles the carrier-agnostic rate request.
// Region data is optional; missing regions leave state and city empty.
func BuildQuoteRequest(pkg domain.PackageSpec, originZip, destinationZip string, originRegion, destinationRegion *geodomain.RegionInfo) domain.RateQuote {
	return domain.RateQuote{
		Origin:      quoteAddress(originZip, originRegion),
		Destination: quoteAddress(destinationZip, destinationRegion),
		Packages: []domain.QuotePackage{{
			Content:       pkg.Content,
			Amount:        1,
			Type:          "box",
			Weight:        pkg.WeightKg,
			WeightUnit:    "KG",
			Dimensions:    pkg.Dimensions,
			LengthUnit:    "CM",
			DeclaredValue: pkg.DeclaredValue,
		}},
		Shipment: domain.QuoteShipment{Type: shipmentTypeParcel},
		Settings: domain.QuoteSettings{Currency: quoteCurrency},
	}
}

func quoteAddress(zip string, region *geodomain.RegionInfo) domain.QuoteAddress {
	addr := domain.QuoteAddress{PostalCode: zip, Country: quoteCountry}
	if region != nil {
		addr.State = region.RegionCode
		addr.City = region.Locality
	}
	return addr
}
