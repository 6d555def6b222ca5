package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "API_PREFIX", "API_VERSION",
		"RESERVATION_HOLD_TTL", "RESERVATION_SWEEP_INTERVAL", "RESERVATION_SWEEP_BATCH_SIZE",
		"PRICING_PREMIUM_MULTIPLIER", "PRICING_VIP_MULTIPLIER",
		"KAFKA_ENABLED",
	} {
		os.Unsetenv(key)
	}

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, ":8080", cfg.GetServerAddress())
	assert.Equal(t, "/api/v1", cfg.GetAPIBasePath())

	assert.Equal(t, 10*time.Minute, cfg.Reservation.HoldTTL)
	assert.Equal(t, 30*time.Second, cfg.Reservation.SweepInterval)
	assert.Equal(t, 100, cfg.Reservation.SweepBatchSize)

	assert.Equal(t, 1.25, cfg.Pricing.PremiumMultiplier)
	assert.Equal(t, 1.5, cfg.Pricing.VIPMultiplier)

	assert.False(t, cfg.Kafka.Enabled)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("RESERVATION_HOLD_TTL", "5m")
	t.Setenv("RESERVATION_SWEEP_BATCH_SIZE", "25")
	t.Setenv("PRICING_VIP_MULTIPLIER", "2.0")
	t.Setenv("GIN_MODE", "release")

	cfg := Load()

	assert.Equal(t, 5*time.Minute, cfg.Reservation.HoldTTL)
	assert.Equal(t, 25, cfg.Reservation.SweepBatchSize)
	assert.Equal(t, 2.0, cfg.Pricing.VIPMultiplier)
	assert.True(t, cfg.IsProduction())
}

func TestInvalidEnvFallsBack(t *testing.T) {
	t.Setenv("RESERVATION_HOLD_TTL", "not-a-duration")
	t.Setenv("RESERVATION_SWEEP_BATCH_SIZE", "many")
	t.Setenv("PRICING_PREMIUM_MULTIPLIER", "cheap")

	cfg := Load()

	assert.Equal(t, 10*time.Minute, cfg.Reservation.HoldTTL)
	assert.Equal(t, 100, cfg.Reservation.SweepBatchSize)
	assert.Equal(t, 1.25, cfg.Pricing.PremiumMultiplier)
}
