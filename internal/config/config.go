// README: Config loader with env defaults for HTTP, DB, Redis, AMQP, pricing and assistant settings.
package config

import (
	"time"
)

type PricingConfig struct {
	TickInterval       time.Duration
	Timezone           string
	MaxSurgeCap        float64
	PeakHourMultiplier float64
	// ZonesFile optionally points at a YAML seed list; empty uses the built-in Lagos zones.
	ZonesFile string
}

type Config struct {
	HTTP struct {
		Addr            string
		ShutdownTimeout time.Duration
	}
	DB struct {
		// DSN empty keeps policy and wallets in memory.
		DSN           string
		MigrationsDir string
	}
	Redis struct {
		Addr string
	}
	AMQP struct {
		URL      string
		Exchange string
	}
	Pricing PricingConfig
	AI      struct {
		GeminiKey string
		Model     string
	}
	Log struct {
		Level string
	}
}

func Load() (Config, error) {
	var cfg Config
	cfg.HTTP.Addr = String("LAGOSRIDE_HTTP_ADDR", ":8080")
	cfg.HTTP.ShutdownTimeout = Duration("LAGOSRIDE_SHUTDOWN_TIMEOUT", 10*time.Second)
	cfg.DB.DSN = String("LAGOSRIDE_DB_DSN", "")
	cfg.DB.MigrationsDir = String("LAGOSRIDE_MIGRATIONS_DIR", "migrations")
	cfg.Redis.Addr = String("LAGOSRIDE_REDIS_ADDR", "")
	cfg.AMQP.URL = String("LAGOSRIDE_AMQP_URL", "")
	cfg.AMQP.Exchange = String("LAGOSRIDE_AMQP_EXCHANGE", "lagosride.events")
	cfg.Pricing.TickInterval = Duration("LAGOSRIDE_PRICING_TICK", 5*time.Second)
	cfg.Pricing.Timezone = String("LAGOSRIDE_TIMEZONE", "Africa/Lagos")
	cfg.Pricing.MaxSurgeCap = Float("LAGOSRIDE_MAX_SURGE_CAP", 2.5)
	cfg.Pricing.PeakHourMultiplier = Float("LAGOSRIDE_PEAK_HOUR_MULTIPLIER", 1.15)
	cfg.Pricing.ZonesFile = String("LAGOSRIDE_ZONES_FILE", "")
	cfg.AI.GeminiKey = String("GEMINI_API_KEY", "")
	cfg.AI.Model = String("LAGOSRIDE_GEMINI_MODEL", "gemini-2.5-flash")
	cfg.Log.Level = String("LAGOSRIDE_LOG_LEVEL", "info")
	return cfg, nil
}
