package domain

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

const (
	// RateFlag marks every shipping line produced by this service.
	RateFlag = "enviacom-rate"
	// FreeShippingFlag is added when rules bring the total price to zero.
	FreeShippingFlag = "free_shipping"
	// DefaultLabel is used when the carrier sends no service name.
	DefaultLabel = "Envia.com"
	// DefaultPostingDays is the posting deadline when the merchant sets none.
	DefaultPostingDays = 3

	maxNameLength = 70
)

// LooseString holds a JSON scalar that providers send either as a string or a number.
type LooseString string

// UnmarshalJSON accepts strings and numbers. Anything else reads as empty.
func (s *LooseString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = LooseString(str)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		// booleans, objects and arrays read as empty
		*s = ""
		return nil
	}
	*s = LooseString(n.String())
	return nil
}

// Float parses the value, reporting false when it is empty or not numeric.
func (s LooseString) Float() (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(string(s)), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// Int truncates the parsed value toward zero.
func (s LooseString) Int() (int, bool) {
	f, ok := s.Float()
	if !ok {
		return 0, false
	}
	return int(f), true
}

// DeliveryDate is the delivery estimate of a raw offer.
type DeliveryDate struct {
	DateDifference LooseString `json:"dateDifference"`
}

// CarrierOffer is one rate returned by the provider, before validation.
type CarrierOffer struct {
	Carrier            string       `json:"carrier"`
	CarrierDescription string       `json:"carrierDescription"`
	Service            string       `json:"service"`
	ServiceDescription string       `json:"serviceDescription"`
	ServiceID          LooseString  `json:"serviceId"`
	TotalPrice         LooseString  `json:"totalPrice"`
	DeliveryDate       DeliveryDate `json:"deliveryDate"`
}

// Matches reports whether nameOrID names this offer's service or carrier.
// An empty name never matches.
func (o CarrierOffer) Matches(nameOrID string) bool {
	if nameOrID == "" {
		return false
	}
	return nameOrID == o.ServiceDescription ||
		nameOrID == o.Service ||
		nameOrID == o.CarrierDescription ||
		nameOrID == o.Carrier
}

// ServiceName is the service description, falling back to the service code.
func (o CarrierOffer) ServiceName() string {
	if o.ServiceDescription != "" {
		return o.ServiceDescription
	}
	return o.Service
}

// CarrierName is the carrier description, falling back to the carrier code.
func (o CarrierOffer) CarrierName() string {
	if o.CarrierDescription != "" {
		return o.CarrierDescription
	}
	return o.Carrier
}

// ServiceCode is the service code, falling back to the service id.
func (o CarrierOffer) ServiceCode() string {
	if o.Service != "" {
		return o.Service
	}
	return string(o.ServiceID)
}

// DeliveryTime is the promised transit time.
type DeliveryTime struct {
	Days        int  `json:"days"`
	WorkingDays bool `json:"working_days"`
}

// PostingDeadline is the time until the carrier collects the package.
type PostingDeadline struct {
	Days          int   `json:"days"`
	WorkingDays   *bool `json:"working_days,omitempty"`
	AfterApproval *bool `json:"after_approval,omitempty"`
}

// WithDefaults fills fields the merchant left unset.
func (p *PostingDeadline) WithDefaults() PostingDeadline {
	out := PostingDeadline{Days: DefaultPostingDays}
	if p == nil {
		return out
	}
	if p.Days > 0 {
		out.Days = p.Days
	}
	out.WorkingDays = p.WorkingDays
	out.AfterApproval = p.AfterApproval
	return out
}

// PackageMeasures is the package description attached to a shipping line.
type PackageMeasures struct {
	Weight     Measure            `json:"weight"`
	Dimensions map[string]Measure `json:"dimensions"`
}

// NewPackageMeasures describes a sized package in kg and cm.
func NewPackageMeasures(pkg PackageSpec) PackageMeasures {
	return PackageMeasures{
		Weight: Measure{Value: pkg.WeightKg, Unit: "kg"},
		Dimensions: map[string]Measure{
			"width":  {Value: pkg.Dimensions.Width, Unit: "cm"},
			"height": {Value: pkg.Dimensions.Height, Unit: "cm"},
			"length": {Value: pkg.Dimensions.Length, Unit: "cm"},
		},
	}
}

// ShippingLine carries price and logistics data for one offer.
type ShippingLine struct {
	From            Address         `json:"from"`
	To              *Address        `json:"to,omitempty"`
	Price           float64         `json:"price"`
	TotalPrice      float64         `json:"total_price"`
	DeclaredValue   float64         `json:"declared_value"`
	Discount        float64         `json:"discount"`
	DeliveryTime    DeliveryTime    `json:"delivery_time"`
	PostingDeadline PostingDeadline `json:"posting_deadline"`
	Package         PackageMeasures `json:"package"`
	Flags           []string        `json:"flags"`
}

// HasFlag reports whether flag is set on the line.
func (l ShippingLine) HasFlag(flag string) bool {
	for _, f := range l.Flags {
		if f == flag {
			return true
		}
	}
	return false
}

// NormalizedOffer is a validated offer in the response shape.
type NormalizedOffer struct {
	Label                string       `json:"label"`
	Carrier              string       `json:"carrier,omitempty"`
	ServiceName          string       `json:"service_name,omitempty"`
	ServiceCode          string       `json:"service_code,omitempty"`
	DeliveryInstructions string       `json:"delivery_instructions,omitempty"`
	ShippingLine         ShippingLine `json:"shipping_line"`

	// Source is the raw offer, kept for rule matching.
	Source CarrierOffer `json:"-"`
}

// OfferContext holds the per-quote data shared by every offer.
type OfferContext struct {
	From            Address
	To              *Address
	DeclaredValue   float64
	Package         PackageSpec
	PostingDeadline *PostingDeadline
}

// NormalizeOffer validates a raw offer and maps it to the response shape.
// Offers with a missing, non-numeric or non-positive price or delivery time are rejected.
func NormalizeOffer(offer CarrierOffer, qc OfferContext) (NormalizedOffer, bool) {
	days, ok := offer.DeliveryDate.DateDifference.Int()
	if !ok || days <= 0 {
		return NormalizedOffer{}, false
	}
	price, ok := offer.TotalPrice.Float()
	if !ok || price <= 0 {
		return NormalizedOffer{}, false
	}

	serviceName := offer.ServiceName()
	label := serviceName
	if label == "" {
		label = DefaultLabel
	}

	return NormalizedOffer{
		Label:       label,
		Carrier:     offer.CarrierName(),
		ServiceName: truncate(serviceName, maxNameLength),
		ServiceCode: truncate(offer.ServiceCode(), maxNameLength),
		ShippingLine: ShippingLine{
			From:            qc.From,
			To:              qc.To,
			Price:           price,
			TotalPrice:      price,
			DeclaredValue:   qc.DeclaredValue,
			DeliveryTime:    DeliveryTime{Days: days, WorkingDays: true},
			PostingDeadline: qc.PostingDeadline.WithDefaults(),
			Package:         NewPackageMeasures(qc.Package),
			Flags:           []string{RateFlag},
		},
		Source: offer,
	}, true
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
