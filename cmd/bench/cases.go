// README: Bench cases: environment, pricing, ride, booking, wallet checks and load runs.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"lagosride/internal/infra"
)

const (
	statusPass = "PASS"
	statusFail = "FAIL"
	statusSkip = "SKIP"
)

type Runner struct {
	cfg   Config
	httpc *http.Client
	db    *pgxpool.Pool
	redis *redis.Client
}

type Result struct {
	Name    string
	Status  string
	Latency time.Duration
	Note    string
}

type TestCase struct {
	Name string
	Run  func(ctx context.Context, r *Runner) Result
}

func NewRunner(cfg Config) *Runner {
	return &Runner{
		cfg:   cfg,
		httpc: &http.Client{Timeout: 10 * time.Second},
	}
}

func (r *Runner) RunAll(ctx context.Context) []Result {
	if r.cfg.DSN != "" {
		if db, err := pgxpool.New(ctx, r.cfg.DSN); err == nil {
			r.db = db
		}
	}
	if r.cfg.RedisAddr != "" {
		r.redis = redis.NewClient(&redis.Options{Addr: r.cfg.RedisAddr})
	}

	tests := r.cases()
	results := make([]Result, 0, len(tests))
	for _, tc := range tests {
		res := tc.Run(ctx, r)
		res.Name = tc.Name
		results = append(results, res)
		fmt.Printf("%-5s %s", res.Status, tc.Name)
		if res.Latency > 0 {
			fmt.Printf(" (%s)", res.Latency)
		}
		if res.Note != "" {
			fmt.Printf(" - %s", res.Note)
		}
		fmt.Println()
	}

	if r.db != nil {
		r.db.Close()
	}
	if r.redis != nil {
		_ = r.redis.Close()
	}
	return results
}

func (r *Runner) cases() []TestCase {
	base := r.cfg.BaseURL
	return []TestCase{
		{
			Name: "Env: Postgres connect",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.db == nil {
					return Result{Status: statusSkip, Note: "db not configured"}
				}
				ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
				defer cancel()
				if err := r.db.Ping(ctx); err != nil {
					return Result{Status: statusFail, Note: err.Error()}
				}
				return Result{Status: statusPass}
			},
		},
		{
			Name: "Env: Redis connect",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.redis == nil {
					return Result{Status: statusSkip, Note: "redis not configured"}
				}
				ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
				defer cancel()
				if err := r.redis.Ping(ctx).Err(); err != nil {
					return Result{Status: statusFail, Note: err.Error()}
				}
				return Result{Status: statusPass}
			},
		},
		{
			Name: "Migration: apply (optional)",
			Run: func(ctx context.Context, r *Runner) Result {
				if !r.cfg.ApplyMigration || r.db == nil {
					return Result{Status: statusSkip, Note: "apply-migration=false or no db"}
				}
				if err := infra.ApplyMigrations(ctx, r.db, r.cfg.MigrationsDir); err != nil {
					return Result{Status: statusFail, Note: err.Error()}
				}
				return Result{Status: statusPass}
			},
		},
		{
			Name: "Migration: tables exist",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.db == nil {
					return Result{Status: statusSkip, Note: "db not configured"}
				}
				tables, err := extractTables(r.cfg.MigrationsDir)
				if err != nil {
					return Result{Status: statusFail, Note: err.Error()}
				}
				for _, t := range tables {
					var exists bool
					err := r.db.QueryRow(ctx,
						"SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name=$1)",
						t,
					).Scan(&exists)
					if err != nil {
						return Result{Status: statusFail, Note: err.Error()}
					}
					if !exists {
						return Result{Status: statusFail, Note: "missing table: " + t}
					}
				}
				return Result{Status: statusPass, Note: fmt.Sprintf("%d tables", len(tables))}
			},
		},

		httpCase("API: health", http.MethodGet, base+"/health", nil, http.StatusOK),

		// Pricing
		httpCase("Pricing: surge for seeded zone", http.MethodGet, base+"/api/pricing/surge/Lekki", nil, http.StatusOK),
		httpCase("Pricing: unknown zone is neutral", http.MethodGet, base+"/api/pricing/surge/Badagry", nil, http.StatusOK),
		httpCase("Pricing: admin zone table", http.MethodGet, base+"/admin/pricing/zones", nil, http.StatusOK),
		httpCase("Pricing: unknown zone snapshot -> 404", http.MethodGet, base+"/admin/pricing/zones/Badagry", nil, http.StatusNotFound),
		httpCase("Pricing: read policy", http.MethodGet, base+"/admin/pricing/policy", nil, http.StatusOK),
		{
			Name: "Pricing: Redis mirror populated",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.redis == nil {
					return Result{Status: statusSkip, Note: "redis not configured"}
				}
				zone, err := r.redis.HGetAll(ctx, "pricing:zone:Lekki").Result()
				if err != nil {
					return Result{Status: statusFail, Note: err.Error()}
				}
				if zone["multiplier"] == "" {
					return Result{Status: statusFail, Note: "no mirrored multiplier yet; wait for one tick"}
				}
				return Result{Status: statusPass, Note: "multiplier=" + zone["multiplier"]}
			},
		},

		// Rides
		httpCase("Ride: options (valid)", http.MethodPost, base+"/api/rides/options", map[string]any{
			"pickup":      "Lekki",
			"destination": "Yaba",
		}, http.StatusOK),
		httpCase("Ride: options missing destination -> 400", http.MethodPost, base+"/api/rides/options", map[string]any{
			"pickup": "Lekki",
		}, http.StatusBadRequest),
		{
			Name: "Ride: request redeems quote at quoted fare",
			Run: func(ctx context.Context, r *Runner) Result {
				return rideRequest(ctx, r, base)
			},
		},
		httpCase("Ride: request unknown quote -> 409", http.MethodPost, base+"/api/rides", map[string]any{
			"quote_id":    "quote_unknown",
			"ride_option": map[string]any{"id": "standard"},
		}, http.StatusConflict),
		httpCase("Ride: request without quote -> 400", http.MethodPost, base+"/api/rides", map[string]any{
			"ride_option": map[string]any{"id": "standard", "price": 2500},
		}, http.StatusBadRequest),

		// Buses
		httpCase("Bus: locations", http.MethodGet, base+"/api/locations", nil, http.StatusOK),
		httpCase("Bus: search", http.MethodGet, base+"/api/buses?from=Ikeja&to=Ajah", nil, http.StatusOK),
		httpCase("Bus: search same origin and destination -> 400", http.MethodGet, base+"/api/buses?from=Ikeja&to=Ikeja", nil, http.StatusBadRequest),
		httpCase("Bus: book aisle -> 409", http.MethodPost, base+"/api/buses/bus1/bookings", map[string]any{
			"seat_ids": []string{"aisle"},
		}, http.StatusConflict),

		// Wallet
		httpCase("Wallet: rider wallet", http.MethodGet, base+"/api/wallet", nil, http.StatusOK),
		httpCase("Wallet: zero payment -> 400", http.MethodPost, base+"/api/payments", map[string]any{
			"amount": "0",
		}, http.StatusBadRequest),
		httpCase("Admin: overview", http.MethodGet, base+"/admin/overview", nil, http.StatusOK),

		// Concurrency
		{
			Name: "Concurrency: one winner per seat",
			Run: func(ctx context.Context, r *Runner) Result {
				return concurrentBooking(ctx, r, base)
			},
		},

		// Load
		{
			Name: "Perf: ride options throughput",
			Run: func(ctx context.Context, r *Runner) Result {
				return perfLoad(ctx, r, base+"/api/rides/options", map[string]any{
					"pickup":      "Victoria Island",
					"destination": "Ikeja",
				})
			},
		},
	}
}

func httpCase(name, method, url string, body any, want int) TestCase {
	return TestCase{
		Name: name,
		Run: func(ctx context.Context, r *Runner) Result {
			start := time.Now()
			status, err := r.do(ctx, method, url, body)
			latency := time.Since(start)
			if err != nil {
				return Result{Status: statusFail, Note: err.Error()}
			}
			note := fmt.Sprintf("status=%d", status)
			if status != want {
				return Result{Status: statusFail, Latency: latency, Note: note}
			}
			return Result{Status: statusPass, Latency: latency, Note: note}
		},
	}
}

func (r *Runner) do(ctx context.Context, method, url string, body any) (int, error) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return 0, err
		}
		reader = strings.NewReader(string(b))
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Client-ID", "bench")
	resp, err := r.httpc.Do(req)
	if err != nil {
		return 0, err
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
	return resp.StatusCode, nil
}

// rideRequest quotes a ride, then requests it with an inflated price; the created ride must
// carry the quoted fare and the quote must not be redeemable twice.
func rideRequest(ctx context.Context, r *Runner, base string) Result {
	start := time.Now()
	var quote struct {
		ID      string `json:"id"`
		Options []struct {
			ID    string `json:"id"`
			Price int64  `json:"price"`
		} `json:"options"`
	}
	status, err := r.postJSON(ctx, base+"/api/rides/options", map[string]any{"pickup": "Lekki", "destination": "Yaba"}, &quote)
	if err != nil || status != http.StatusOK || len(quote.Options) < 2 {
		return Result{Status: statusFail, Note: fmt.Sprintf("options status=%d err=%v", status, err)}
	}

	body := map[string]any{
		"quote_id":    quote.ID,
		"ride_option": map[string]any{"id": quote.Options[1].ID, "price": quote.Options[1].Price * 100},
	}
	var created struct {
		Option struct {
			Price int64 `json:"price"`
		} `json:"ride_option"`
	}
	status, err = r.postJSON(ctx, base+"/api/rides", body, &created)
	switch {
	case err != nil:
		return Result{Status: statusFail, Note: err.Error()}
	case status == http.StatusServiceUnavailable:
		return Result{Status: statusSkip, Note: "no approved driver"}
	case status != http.StatusCreated:
		return Result{Status: statusFail, Note: fmt.Sprintf("request status=%d", status)}
	case created.Option.Price != quote.Options[1].Price:
		return Result{Status: statusFail, Note: fmt.Sprintf("charged %d, quoted %d", created.Option.Price, quote.Options[1].Price)}
	}

	status, err = r.do(ctx, http.MethodPost, base+"/api/rides", body)
	latency := time.Since(start)
	if err != nil || status != http.StatusConflict {
		return Result{Status: statusFail, Latency: latency, Note: fmt.Sprintf("replay status=%d err=%v", status, err)}
	}
	return Result{Status: statusPass, Latency: latency, Note: fmt.Sprintf("fare=%d", created.Option.Price)}
}

func (r *Runner) postJSON(ctx context.Context, url string, body, out any) (int, error) {
	b, err := json.Marshal(body)
	if err != nil {
		return 0, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(string(b)))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Client-ID", "bench")
	resp, err := r.httpc.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return resp.StatusCode, nil
	}
	return resp.StatusCode, json.NewDecoder(resp.Body).Decode(out)
}

// concurrentBooking races every worker for the same free seat; exactly one may win.
func concurrentBooking(ctx context.Context, r *Runner, base string) Result {
	seat, err := r.freeSeat(ctx, base)
	if err != nil {
		return Result{Status: statusFail, Note: err.Error()}
	}
	if seat == "" {
		return Result{Status: statusSkip, Note: "bus5 has no free seat"}
	}

	var wins, conflicts atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < r.cfg.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			status, err := r.do(ctx, http.MethodPost, base+"/api/buses/bus5/bookings", map[string]any{
				"seat_ids": []string{seat},
				"from":     "Ikeja",
				"to":       "Ajah",
			})
			switch {
			case err != nil:
			case status == http.StatusCreated:
				wins.Add(1)
			case status == http.StatusConflict:
				conflicts.Add(1)
			}
		}()
	}
	wg.Wait()

	note := fmt.Sprintf("seat=%s wins=%d conflicts=%d", seat, wins.Load(), conflicts.Load())
	if wins.Load() != 1 {
		return Result{Status: statusFail, Note: note}
	}
	return Result{Status: statusPass, Note: note}
}

func (r *Runner) freeSeat(ctx context.Context, base string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"/api/buses?from=Ikeja&to=Ajah", nil)
	if err != nil {
		return "", err
	}
	resp, err := r.httpc.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var body struct {
		Buses []struct {
			ID         string `json:"id"`
			SeatLayout [][]struct {
				ID     string `json:"id"`
				Status string `json:"status"`
			} `json:"seat_layout"`
		} `json:"buses"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", err
	}
	for _, b := range body.Buses {
		if b.ID != "bus5" {
			continue
		}
		for _, row := range b.SeatLayout {
			for _, s := range row {
				if s.Status == "available" {
					return s.ID, nil
				}
			}
		}
	}
	return "", nil
}

func perfLoad(ctx context.Context, r *Runner, url string, payload any) Result {
	end := time.Now().Add(r.cfg.Duration)
	var count, errCount, non2xx atomic.Int64
	var wg sync.WaitGroup

	for i := 0; i < r.cfg.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for time.Now().Before(end) && ctx.Err() == nil {
				status, err := r.do(ctx, http.MethodPost, url, payload)
				if err != nil {
					errCount.Add(1)
					continue
				}
				count.Add(1)
				if status/100 != 2 {
					non2xx.Add(1)
				}
			}
		}()
	}
	wg.Wait()

	if count.Load() == 0 {
		return Result{Status: statusFail, Note: "no requests completed"}
	}
	rps := float64(count.Load()) / r.cfg.Duration.Seconds()
	return Result{Status: statusPass, Note: fmt.Sprintf("rps=%.1f errors=%d non2xx=%d", rps, errCount.Load(), non2xx.Load())}
}

var createTableRe = regexp.MustCompile(`(?i)create\s+table\s+if\s+not\s+exists\s+([a-zA-Z0-9_]+)`)

func extractTables(dir string) ([]string, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.sql"))
	if err != nil {
		return nil, err
	}
	var tables []string
	for _, path := range files {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		for _, m := range createTableRe.FindAllStringSubmatch(string(b), -1) {
			if !slices.Contains(tables, m[1]) {
				tables = append(tables, m[1])
			}
		}
	}
	return tables, nil
}
