package pricing

import (
	"testing"

	"cinetix/internal/shared/config"

	"github.com/stretchr/testify/assert"
)

func newTestEngine() *Engine {
	return NewEngine(config.PricingConfig{
		PremiumMultiplier: 1.25,
		VIPMultiplier:     1.5,
	})
}

func TestSeatClassIsValid(t *testing.T) {
	assert.True(t, SeatClassStandard.IsValid())
	assert.True(t, SeatClassPremium.IsValid())
	assert.True(t, SeatClassVIP.IsValid())
	assert.False(t, SeatClass("BALCONY").IsValid())
	assert.False(t, SeatClass("").IsValid())
	assert.False(t, SeatClass("standard").IsValid())
}

func TestEngineMultiplier(t *testing.T) {
	engine := newTestEngine()

	assert.Equal(t, 1.0, engine.Multiplier(SeatClassStandard))
	assert.Equal(t, 1.25, engine.Multiplier(SeatClassPremium))
	assert.Equal(t, 1.5, engine.Multiplier(SeatClassVIP))

	// Unknown classes fall back to the standard rate
	assert.Equal(t, 1.0, engine.Multiplier(SeatClass("BALCONY")))
}

func TestEngineSeatPrice(t *testing.T) {
	engine := newTestEngine()

	tests := []struct {
		name      string
		class     SeatClass
		basePrice int64
		want      int64
	}{
		{"standard at base", SeatClassStandard, 1000, 1000},
		{"premium scales", SeatClassPremium, 1000, 1250},
		{"vip scales", SeatClassVIP, 1000, 1500},
		{"premium rounds to nearest", SeatClassPremium, 999, 1249}, // 1248.75
		{"vip odd base", SeatClassVIP, 333, 500},                   // 499.5 rounds up
		{"zero base", SeatClassVIP, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, engine.SeatPrice(tt.class, tt.basePrice))
		})
	}
}

func TestEngineTotal(t *testing.T) {
	engine := newTestEngine()

	classes := []SeatClass{SeatClassStandard, SeatClassPremium, SeatClassVIP}
	assert.Equal(t, int64(3750), engine.Total(classes, 1000))

	assert.Equal(t, int64(0), engine.Total(nil, 1000))
	assert.Equal(t, int64(0), engine.Total([]SeatClass{}, 1000))
}
