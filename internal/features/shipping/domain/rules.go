package domain

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// ZipRange is an inclusive postal code interval. A zero bound is open.
type ZipRange struct {
	Min int64 `json:"min,omitempty"`
	Max int64 `json:"max,omitempty"`
}

// Contains reports whether the digits-only zip lies within the range.
func (r *ZipRange) Contains(zip string) bool {
	if r == nil {
		return true
	}
	n, err := strconv.ParseInt(zip, 10, 64)
	if err != nil {
		return false
	}
	return (r.Min == 0 || n >= r.Min) && (r.Max == 0 || n <= r.Max)
}

// inRange applies a rule's zip range only when a destination is known.
func inRange(r *ZipRange, zip string) bool {
	if zip == "" {
		return true
	}
	return r.Contains(zip)
}

// DisableRule hides a service, optionally only for a zip range.
type DisableRule struct {
	ServiceName string    `json:"service_name"`
	ZipRange    *ZipRange `json:"zip_range,omitempty"`
}

// LabelRule replaces the display label of a service.
type LabelRule struct {
	ServiceName string `json:"service_name"`
	Label       string `json:"label"`
}

// Discount is a flat amount, or a percentage of the current total when Percentage is set.
type Discount struct {
	Value      float64 `json:"value"`
	Percentage bool    `json:"percentage,omitempty"`
}

// ShippingRule grants free shipping or a discount. Every filter is optional.
type ShippingRule struct {
	Service      string    `json:"service,omitempty"`
	ZipRange     *ZipRange `json:"zip_range,omitempty"`
	MinAmount    float64   `json:"min_amount,omitempty"`
	FreeShipping bool      `json:"free_shipping,omitempty"`
	Discount     *Discount `json:"discount,omitempty"`
}

// RuleContext is the quote data rules are evaluated against.
type RuleContext struct {
	DestinationZip string
	DeclaredValue  float64
}

// Applies reports whether the rule's filters accept the offer.
func (r ShippingRule) Applies(offer CarrierOffer, rc RuleContext) bool {
	if r.Service != "" && !offer.Matches(r.Service) {
		return false
	}
	if !inRange(r.ZipRange, rc.DestinationZip) {
		return false
	}
	return r.MinAmount <= rc.DeclaredValue
}

// OutcomeKind tags a RuleOutcome.
type OutcomeKind int

// Rule outcomes.
const (
	NoMatch OutcomeKind = iota
	FreeShipping
	DiscountAmount
)

func (k OutcomeKind) String() string {
	switch k {
	case FreeShipping:
		return "free_shipping"
	case DiscountAmount:
		return "discount"
	default:
		return "no_match"
	}
}

// RuleOutcome is the result of evaluating shipping rules for one offer.
type RuleOutcome struct {
	Kind OutcomeKind
	// Amount is set for DiscountAmount.
	Amount decimal.Decimal
	// Index is the position of the applied rule, -1 for NoMatch.
	Index int
}

// EvaluateRules returns the outcome of the first applicable rule.
// Rules with neither free shipping nor a discount are skipped.
func EvaluateRules(rules []ShippingRule, offer NormalizedOffer, rc RuleContext) RuleOutcome {
	for i, rule := range rules {
		if !rule.Applies(offer.Source, rc) {
			continue
		}
		if rule.FreeShipping {
			return RuleOutcome{Kind: FreeShipping, Index: i}
		}
		if rule.Discount != nil {
			amount := decimal.NewFromFloat(rule.Discount.Value)
			if rule.Discount.Percentage {
				total := decimal.NewFromFloat(offer.ShippingLine.TotalPrice)
				amount = amount.Mul(total).Div(decimal.NewFromInt(100))
			}
			return RuleOutcome{Kind: DiscountAmount, Amount: amount.Round(2), Index: i}
		}
	}
	return RuleOutcome{Kind: NoMatch, Index: -1}
}

// ApplyOutcome adjusts the shipping line. The discount never exceeds the
// current total and the total never drops below zero.
func ApplyOutcome(offer *NormalizedOffer, outcome RuleOutcome) {
	line := &offer.ShippingLine
	total := decimal.NewFromFloat(line.TotalPrice)
	discount := decimal.NewFromFloat(line.Discount)

	var reduction decimal.Decimal
	switch outcome.Kind {
	case FreeShipping:
		reduction = total
	case DiscountAmount:
		reduction = decimal.Min(decimal.Max(outcome.Amount, decimal.Zero), total)
	default:
		return
	}

	total = total.Sub(reduction)
	line.Discount = discount.Add(reduction).Round(2).InexactFloat64()
	line.TotalPrice = total.Round(2).InexactFloat64()

	if total.Sign() <= 0 {
		line.TotalPrice = 0
		if !line.HasFlag(FreeShippingFlag) {
			line.Flags = append(line.Flags, FreeShippingFlag)
		}
	}
}

// IsDisabled reports whether a disable rule hides the offer for zip.
func IsDisabled(offer CarrierOffer, rules []DisableRule, zip string) bool {
	for _, rule := range rules {
		if rule.ServiceName == "" {
			continue
		}
		if offer.Matches(rule.ServiceName) && inRange(rule.ZipRange, zip) {
			return true
		}
	}
	return false
}

// LabelFor returns the first label override for the offer.
func LabelFor(offer CarrierOffer, rules []LabelRule) (string, bool) {
	if offer.ServiceName() == "" {
		return "", false
	}
	for _, rule := range rules {
		if offer.Matches(rule.ServiceName) && rule.Label != "" {
			return rule.Label, true
		}
	}
	return "", false
}

// ApplyRules runs the disable filter, label overrides and shipping rules in order.
// It returns false when the offer must be dropped.
func ApplyRules(offer NormalizedOffer, cfg AppData, rc RuleContext) (NormalizedOffer, bool) {
	if IsDisabled(offer.Source, cfg.DisableServices, rc.DestinationZip) {
		return NormalizedOffer{}, false
	}
	if label, ok := LabelFor(offer.Source, cfg.ServiceLabels); ok {
		offer.Label = label
	}
	ApplyOutcome(&offer, EvaluateRules(cfg.ShippingRules, offer, rc))
	return offer, true
}

// FreeShippingFromValue returns the lowest order value that unlocks free shipping.
// Zero means a rule grants it unconditionally; nil means no rule grants it.
func FreeShippingFromValue(rules []ShippingRule, zip string) *float64 {
	var lowest *float64
	for _, rule := range rules {
		if !rule.FreeShipping || !inRange(rule.ZipRange, zip) {
			continue
		}
		if rule.MinAmount <= 0 {
			zero := 0.0
			return &zero
		}
		if lowest == nil || rule.MinAmount < *lowest {
			v := rule.MinAmount
			lowest = &v
		}
	}
	return lowest
}
