package domain

import (
	"encoding/json"
	"fmt"
)

// AppData is the merchant configuration of the shipping application.
type AppData struct {
	APIKey               string           `json:"api_key,omitempty"`
	Sandbox              bool             `json:"sandbox,omitempty"`
	Zip                  string           `json:"zip,omitempty"`
	Carriers             []string         `json:"carriers,omitempty"`
	DisableServices      []DisableRule    `json:"disable_services,omitempty"`
	ServiceLabels        []LabelRule      `json:"service_labels,omitempty"`
	ShippingRules        []ShippingRule   `json:"shipping_rules,omitempty"`
	PostingDeadline      *PostingDeadline `json:"posting_deadline,omitempty"`
	DeliveryInstructions string           `json:"delivery_instructions,omitempty"`
}

// MergeAppData combines public and hidden application data. Hidden keys win.
func MergeAppData(data, hidden json.RawMessage) (AppData, error) {
	merged := make(map[string]json.RawMessage)
	for _, raw := range []json.RawMessage{data, hidden} {
		if len(raw) == 0 || string(raw) == "null" {
			continue
		}
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(raw, &fields); err != nil {
			return AppData{}, fmt.Errorf("invalid application data: %w", err)
		}
		for k, v := range fields {
			merged[k] = v
		}
	}

	buf, err := json.Marshal(merged)
	if err != nil {
		return AppData{}, err
	}
	var app AppData
	if err := json.Unmarshal(buf, &app); err != nil {
		return AppData{}, fmt.Errorf("invalid application data: %w", err)
	}
	return app, nil
}

// CalculateParams is the quote input sent by the storefront.
type CalculateParams struct {
	From     *Address `json:"from,omitempty"`
	To       *Address `json:"to,omitempty"`
	Items    []Item   `json:"items,omitempty" validate:"dive"`
	Subtotal float64  `json:"subtotal,omitempty" validate:"gte=0"`
}

// DestinationZip is the digits-only destination zip, empty without a destination.
func (p CalculateParams) DestinationZip() string {
	if p.To == nil {
		return ""
	}
	return DigitsOnly(p.To.Zip)
}

// OriginZip prefers params.from.zip over the merchant zip, digits only.
func (p CalculateParams) OriginZip(app AppData) string {
	if p.From != nil && p.From.Zip != "" {
		return DigitsOnly(p.From.Zip)
	}
	return DigitsOnly(app.Zip)
}

// CalculateRequest pairs the quote input with the merchant configuration.
type CalculateRequest struct {
	Params CalculateParams
	App    AppData
}

// CalculateResponse lists the available shipping services.
type CalculateResponse struct {
	ShippingServices      []NormalizedOffer `json:"shipping_services"`
	FreeShippingFromValue *float64          `json:"free_shipping_from_value,omitempty"`
}

// NewCalculateResponse returns a response with a non-nil service list.
func NewCalculateResponse() *CalculateResponse {
	return &CalculateResponse{ShippingServices: []NormalizedOffer{}}
}
