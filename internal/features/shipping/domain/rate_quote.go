package domain

// QuoteAddress is a carrier-facing address.
type QuoteAddress struct {
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
	State      string `json:"state,omitempty"`
	City       string `json:"city,omitempty"`
}

// QuotePackage describes the single package of a rate request.
type QuotePackage struct {
	Content       string  `json:"content"`
	Amount        int     `json:"amount"`
	Type          string  `json:"type"`
	Weight        float64 `json:"weight"`
	WeightUnit    string  `json:"weightUnit"`
	Dimensions    Box     `json:"dimensions"`
	LengthUnit    string  `json:"lengthUnit"`
	DeclaredValue float64 `json:"declaredValue"`
}

// QuoteShipment selects the shipment type and carrier.
type QuoteShipment struct {
	Type    int    `json:"type"`
	Carrier string `json:"carrier,omitempty"`
}

// QuoteSettings holds request-wide options.
type QuoteSettings struct {
	Currency string `json:"currency"`
}

// RateQuote is the carrier-agnostic rate request body.
type RateQuote struct {
	Origin      QuoteAddress   `json:"origin"`
	Destination QuoteAddress   `json:"destination"`
	Packages    []QuotePackage `json:"packages"`
	Shipment    QuoteShipment  `json:"shipment"`
	Settings    QuoteSettings  `json:"settings"`
}

// ForCarrier returns a copy of the quote addressed to one carrier.
func (q RateQuote) ForCarrier(carrier string) RateQuote {
	out := q
	out.Packages = append([]QuotePackage(nil), q.Packages...)
	out.Shipment.Carrier = carrier
	return out
}

// Credentials authenticate a merchant against the rate provider.
type Credentials struct {
	APIKey  string
	Sandbox bool
	StoreID string
}
