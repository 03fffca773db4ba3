package service

import (
	"encoding/json"
	"testing"

	geodomain "shipping-calculator/internal/features/geocodes/domain"
	"shipping-calculator/internal/features/shipping/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildQuoteRequest(t *testing.T) {
	pkg := domain.PackageSpec{
		WeightKg:      1.5,
		Dimensions:    domain.Box{Height: 9, Width: 18, Length: 13.5},
		DeclaredValue: 59.9,
		Content:       "Pedido",
	}
	sp := &geodomain.RegionInfo{RegionCode: "SP", Locality: "São Paulo"}

	quote := BuildQuoteRequest(pkg, "01000000", "20000000", sp, nil)

	assert.Equal(t, domain.QuoteAddress{PostalCode: "01000000", Country: "BR", State: "SP", City: "São Paulo"}, quote.Origin)
	assert.Equal(t, domain.QuoteAddress{PostalCode: "20000000", Country: "BR"}, quote.Destination)
	assert.Equal(t, domain.QuoteShipment{Type: 1}, quote.Shipment)

	data, err := json.Marshal(quote)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"origin": {"postalCode": "01000000", "country": "BR", "state": "SP", "city": "São Paulo"},
		"destination": {"postalCode": "20000000", "country": "BR"},
		"packages": [{
			"content": "Pedido",
			"amount": 1,
			"type": "box",
			"weight": 1.5,
			"weightUnit": "KG",
			"dimensions": {"height": 9, "width": 18, "length": 13.5},
			"lengthUnit": "CM",
			"declaredValue": 59.9
		}],
		"shipment": {"type": 1},
		"settings": {"currency": "BRL"}
	}`, string(data))
}
