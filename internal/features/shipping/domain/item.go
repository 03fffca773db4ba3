package domain

import "strings"

// Measure is a value with its unit (e.g., {2, "kg"}).
type Measure struct {
	Value float64 `json:"value" validate:"gte=0"`
	Unit  string  `json:"unit,omitempty"`
}

// Item is a cart line item.
type Item struct {
	ProductID string   `json:"product_id,omitempty"`
	SKU       string   `json:"sku,omitempty"`
	Name      string   `json:"name,omitempty"`
	Price     float64  `json:"price" validate:"gte=0"`
	Quantity  float64  `json:"quantity" validate:"gte=0"`
	Weight    *Measure `json:"weight,omitempty"`
	// Dimensions is keyed by side name (width, height, length).
	Dimensions map[string]Measure `json:"dimensions,omitempty" validate:"omitempty,dive"`
}

// Address is the subset of a shipping address carried through to shipping lines.
type Address struct {
	Zip          string `json:"zip"`
	Name         string `json:"name,omitempty"`
	Street       string `json:"street,omitempty"`
	Number       *int   `json:"number,omitempty"`
	Complement   string `json:"complement,omitempty"`
	Borough      string `json:"borough,omitempty"`
	City         string `json:"city,omitempty"`
	ProvinceCode string `json:"province_code,omitempty"`
	CountryCode  string `json:"country_code,omitempty"`
}

// DigitsOnly strips every non digit rune, so "01000-000" becomes "01000000".
func DigitsOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}
