package pricing

import (
	"math"

	"cinetix/internal/shared/config"
)

// SeatClass identifies the pricing tier of a seat
type SeatClass string

const (
	SeatClassStandard SeatClass = "STANDARD"
	SeatClassPremium  SeatClass = "PREMIUM"
	SeatClassVIP      SeatClass = "VIP"
)

// IsValid checks whether the seat class is a known tier
func (sc SeatClass) IsValid() bool {
	switch sc {
	case SeatClassStandard, SeatClassPremium, SeatClassVIP:
		return true
	}
	return false
}

// Engine computes seat prices from a show's base price. Prices are in minor
// currency units (cents). The engine holds no mutable state and is safe for
// concurrent use.
type Engine struct {
	premiumMultiplier float64
	vipMultiplier     float64
}

// NewEngine creates a pricing engine with multipliers from config
func NewEngine(cfg config.PricingConfig) *Engine {
	return &Engine{
		premiumMultiplier: cfg.PremiumMultiplier,
		vipMultiplier:     cfg.VIPMultiplier,
	}
}

// Multiplier returns the price multiplier for a seat class.
// Unknown classes fall back to the standard rate.
func (e *Engine) Multiplier(class SeatClass) float64 {
	switch class {
	case SeatClassPremium:
		return e.premiumMultiplier
	case SeatClassVIP:
		return e.vipMultiplier
	default:
		return 1.0
	}
}

// SeatPrice computes the price of a single seat, rounded to the nearest
// minor unit.
func (e *Engine) SeatPrice(class SeatClass, basePrice int64) int64 {
	return int64(math.Round(float64(basePrice) * e.Multiplier(class)))
}

// Total sums the prices of a set of seat classes against a base price
func (e *Engine) Total(classes []SeatClass, basePrice int64) int64 {
	var total int64
	for _, class := range classes {
		total += e.SeatPrice(class, basePrice)
	}
	return total
}
