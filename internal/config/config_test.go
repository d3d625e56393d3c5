package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"LAGOSRIDE_HTTP_ADDR", "LAGOSRIDE_SHUTDOWN_TIMEOUT", "LAGOSRIDE_DB_DSN", "LAGOSRIDE_PRICING_TICK",
		"LAGOSRIDE_MAX_SURGE_CAP", "LAGOSRIDE_PEAK_HOUR_MULTIPLIER", "LAGOSRIDE_TIMEZONE",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, 10*time.Second, cfg.HTTP.ShutdownTimeout)
	assert.Empty(t, cfg.DB.DSN)
	assert.Equal(t, 5*time.Second, cfg.Pricing.TickInterval)
	assert.Equal(t, 2.5, cfg.Pricing.MaxSurgeCap)
	assert.Equal(t, 1.15, cfg.Pricing.PeakHourMultiplier)
	assert.Equal(t, "Africa/Lagos", cfg.Pricing.Timezone)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("LAGOSRIDE_PRICING_TICK", "2s")
	t.Setenv("LAGOSRIDE_MAX_SURGE_CAP", "3.0")
	t.Setenv("LAGOSRIDE_PEAK_HOUR_MULTIPLIER", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, cfg.Pricing.TickInterval)
	assert.Equal(t, 3.0, cfg.Pricing.MaxSurgeCap)
	assert.Equal(t, 1.15, cfg.Pricing.PeakHourMultiplier)
}

func TestDuration(t *testing.T) {
	tests := []struct {
		name string
		val  string
		want time.Duration
	}{
		{"empty", "", 5 * time.Second},
		{"go duration", "750ms", 750 * time.Millisecond},
		{"bare seconds", "7", 7 * time.Second},
		{"zero falls back", "0", 5 * time.Second},
		{"garbage falls back", "soon", 5 * time.Second},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("LAGOSRIDE_TEST_DURATION", tt.val)
			assert.Equal(t, tt.want, Duration("LAGOSRIDE_TEST_DURATION", 5*time.Second))
		})
	}
}

func TestBoolAndInt(t *testing.T) {
	t.Setenv("LAGOSRIDE_TEST_FLAG", "YES")
	assert.True(t, Bool("LAGOSRIDE_TEST_FLAG", false))
	t.Setenv("LAGOSRIDE_TEST_FLAG", "off")
	assert.False(t, Bool("LAGOSRIDE_TEST_FLAG", true))
	t.Setenv("LAGOSRIDE_TEST_FLAG", "")
	assert.True(t, Bool("LAGOSRIDE_TEST_FLAG", true))

	t.Setenv("LAGOSRIDE_TEST_INT", "12")
	assert.Equal(t, 12, Int("LAGOSRIDE_TEST_INT", 3))
	t.Setenv("LAGOSRIDE_TEST_INT", "-4")
	assert.Equal(t, 3, Int("LAGOSRIDE_TEST_INT", 3))
}
