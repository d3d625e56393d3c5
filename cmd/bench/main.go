// README: Smoke and load runner against a live lagosride API, its Postgres and Redis.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"lagosride/internal/config"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	results := NewRunner(cfg).RunAll(ctx)

	counts := make(map[string]int, 3)
	for _, r := range results {
		counts[r.Status]++
	}
	fmt.Printf("\n== Summary ==\nPASS=%d FAIL=%d SKIP=%d\n", counts[statusPass], counts[statusFail], counts[statusSkip])

	if counts[statusFail] > 0 || (cfg.Strict && counts[statusSkip] > 0) {
		os.Exit(1)
	}
}

type Config struct {
	BaseURL        string
	DSN            string
	RedisAddr      string
	MigrationsDir  string
	ApplyMigration bool
	Strict         bool
	Timeout        time.Duration
	Concurrency    int
	Duration       time.Duration
}

// loadConfig reuses the API's own env keys for DB, Redis and migrations so the runner
// targets the same deployment; flags override.
func loadConfig() (Config, error) {
	app, err := config.Load()
	if err != nil {
		return Config{}, err
	}
	var cfg Config
	flag.StringVar(&cfg.BaseURL, "base-url", config.String("LAGOSRIDE_BENCH_BASE_URL", "http://localhost:8080"), "API base URL")
	flag.StringVar(&cfg.DSN, "dsn", app.DB.DSN, "Postgres DSN (empty skips DB checks)")
	flag.StringVar(&cfg.RedisAddr, "redis", app.Redis.Addr, "Redis address (empty skips mirror checks)")
	flag.StringVar(&cfg.MigrationsDir, "migrations", app.DB.MigrationsDir, "Migrations directory")
	flag.BoolVar(&cfg.ApplyMigration, "apply-migration", config.Bool("LAGOSRIDE_BENCH_APPLY_MIGRATION", false), "Apply migrations before checks")
	flag.BoolVar(&cfg.Strict, "strict", config.Bool("LAGOSRIDE_BENCH_STRICT", false), "Fail when checks are skipped")
	flag.DurationVar(&cfg.Timeout, "timeout", config.Duration("LAGOSRIDE_BENCH_TIMEOUT", 60*time.Second), "Total timeout")
	flag.IntVar(&cfg.Concurrency, "concurrency", config.Int("LAGOSRIDE_BENCH_CONCURRENCY", 20), "Concurrency for load checks")
	flag.DurationVar(&cfg.Duration, "duration", config.Duration("LAGOSRIDE_BENCH_DURATION", 10*time.Second), "Duration for load checks")
	flag.Parse()
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return cfg, nil
}
