package pricing

import (
	"fmt"
	"math"
	"strings"
)

// Breakdown is the price derivation returned with every generated quote.
// The same shape comes back from the AI quote endpoint; this package is the
// deterministic engine used when that endpoint is unavailable.
type Breakdown struct {
	BaseUnitPrice         float64         `json:"base_unit_price"`
	ComplexityFactor      float64         `json:"complexity_factor"`
	VolumeDiscount        float64         `json:"volume_discount"`
	FinalUnitPrice        float64         `json:"final_unit_price"`
	TotalPrice            float64         `json:"total_price"`
	EstimatedDeliveryDays int             `json:"estimated_delivery_days"`
	Timeline              []TimelineStage `json:"timeline"`
}

type TimelineStage struct {
	Stage string `json:"stage"`
	Label string `json:"label"`
	Days  int    `json:"days"`
}

// Base unit prices per product type (USD). Unlisted types price at the
// generic rate.
var baseUnitPrices = map[string]float64{
	"t-shirts":   4.50,
	"polo":       6.00,
	"shirts":     7.50,
	"hoodies":    12.00,
	"sweatshirt": 10.50,
	"jackets":    18.00,
	"jeans":      11.00,
	"trousers":   9.50,
	"activewear": 8.00,
	"dresses":    13.50,
	"uniforms":   9.00,
}

const genericBaseUnitPrice = 8.50

// Premium fabrics raise the complexity factor.
var premiumFabrics = map[string]float64{
	"organic cotton": 0.25,
	"linen":          0.30,
	"merino wool":    0.45,
	"silk":           0.60,
	"recycled poly":  0.15,
	"bamboo":         0.20,
}

const perCustomizationFactor = 0.08

// BaseUnitPrice returns the catalog base rate for a product type.
func BaseUnitPrice(productType string) float64 {
	if p, ok := baseUnitPrices[strings.ToLower(strings.TrimSpace(productType))]; ok {
		return p
	}
	return genericBaseUnitPrice
}

// ComplexityFactor derives a multiplier from fabric choice and the number of
// requested customizations (prints, embroidery, labels, trims).
func ComplexityFactor(fabric string, customizations []string) float64 {
	factor := 1.0
	if bump, ok := premiumFabrics[strings.ToLower(strings.TrimSpace(fabric))]; ok {
		factor += bump
	}
	factor += perCustomizationFactor * float64(len(customizations))
	return round2(factor)
}

// VolumeDiscount returns the unit-price multiplier for an order quantity.
// Tiers are fixed; larger runs get cheaper units.
func VolumeDiscount(quantity int) float64 {
	switch {
	case quantity >= 50000:
		return 0.80
	case quantity >= 10000:
		return 0.85
	case quantity >= 5000:
		return 0.90
	case quantity >= 1000:
		return 0.95
	default:
		return 1.00
	}
}

// Quote derives the full price breakdown and production timeline for a
// request. Callers validate quantity bounds before pricing; this function is
// a pure derivation.
func Quote(productType, fabric string, customizations []string, quantity int) Breakdown {
	base := BaseUnitPrice(productType)
	complexity := ComplexityFactor(fabric, customizations)
	discount := VolumeDiscount(quantity)
	unit := round2(base * complexity * discount)

	timeline := ProductionTimeline(quantity)
	days := 0
	for _, ts := range timeline {
		days += ts.Days
	}

	return Breakdown{
		BaseUnitPrice:         base,
		ComplexityFactor:      complexity,
		VolumeDiscount:        discount,
		FinalUnitPrice:        unit,
		TotalPrice:            round2(unit * float64(quantity)),
		EstimatedDeliveryDays: days,
		Timeline:              timeline,
	}
}

// ProductionTimeline lists the manufacturing stages with estimated durations
// scaled by run size.
func ProductionTimeline(quantity int) []TimelineStage {
	scale := 1
	if quantity >= 5000 {
		scale = 2
	}
	if quantity >= 20000 {
		scale = 3
	}
	return []TimelineStage{
		{Stage: "fabric_sourcing", Label: "Fabric Sourcing", Days: 5 + 2*scale},
		{Stage: "cutting", Label: "Cutting", Days: 2 + scale},
		{Stage: "sewing", Label: "Sewing", Days: 5 + 4*scale},
		{Stage: "quality_check", Label: "Quality Check", Days: 2},
		{Stage: "packaging", Label: "Packaging", Days: 1 + scale},
		{Stage: "shipped", Label: "Shipping", Days: 7},
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// FormatUnit renders a unit price for display and PDF export.
func FormatUnit(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}
