// README: Entry point; loads config, wires services, starts HTTP server and the zone ticker.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	_ "time/tzdata"

	"lagosride/internal/ai"
	"lagosride/internal/config"
	"lagosride/internal/events"
	httptransport "lagosride/internal/http"
	"lagosride/internal/infra"
	"lagosride/internal/modules/admin"
	"lagosride/internal/modules/aiusage"
	"lagosride/internal/modules/booking"
	"lagosride/internal/modules/driver"
	"lagosride/internal/modules/pricing"
	"lagosride/internal/modules/ride"
	"lagosride/internal/modules/tripplanner"
	"lagosride/internal/modules/wallet"
	"lagosride/internal/ws"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	logger, err := infra.NewLogger(cfg.Log.Level)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("lagosride-api stopped", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
	now := time.Now()
	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	var db *pgxpool.Pool
	if cfg.DB.DSN != "" {
		pool, err := infra.NewDB(ctx, cfg.DB.DSN)
		if err != nil {
			return err
		}
		defer pool.Close()
		if err := infra.ApplyMigrations(ctx, pool, cfg.DB.MigrationsDir); err != nil {
			return err
		}
		db = pool
	}

	// Pricing
	seeds, err := pricing.Seeds(cfg.Pricing.ZonesFile)
	if err != nil {
		return err
	}
	zones := pricing.NewZoneStore(nil)
	if err := zones.Initialize(seeds); err != nil {
		return err
	}
	pricingDeps := pricing.ServiceDeps{Zones: zones, Config: cfg.Pricing, Logger: logger}
	if db != nil {
		pricingDeps.Policies = pricing.NewPGPolicyRepository(db)
	}
	pricingSvc, err := pricing.NewService(pricingDeps)
	if err != nil {
		return err
	}
	if err := pricingSvc.RestorePolicy(ctx); err != nil {
		return err
	}
	loc, err := time.LoadLocation(cfg.Pricing.Timezone)
	if err != nil {
		return err
	}

	// Wallets and drivers
	var walletStore wallet.Store
	var usageStore aiusage.Store
	if db != nil {
		walletStore = wallet.NewPGStore(db)
		usageStore = aiusage.NewPGStore(db)
	} else {
		mem := wallet.NewMemoryStore()
		if err := wallet.SeedDemoData(ctx, mem, now); err != nil {
			return err
		}
		walletStore = mem
		usageStore = aiusage.NewMemoryStore()
	}
	walletSvc := wallet.NewService(walletStore, logger)

	roster := driver.SeedDrivers(now)
	driverSvc := driver.NewService(driver.NewMemoryStore(roster...), walletSvc, logger)
	for _, d := range roster {
		if d.Status != driver.StatusApproved {
			continue
		}
		if err := walletSvc.OpenWallet(ctx, d.ID); err != nil {
			return err
		}
	}

	// Events
	var publisher ride.Publisher = events.Discard{}
	if cfg.AMQP.URL != "" {
		conn, err := infra.NewAMQP(cfg.AMQP.URL, cfg.AMQP.Exchange)
		if err != nil {
			return err
		}
		defer conn.Close()
		pub := events.NewPublisher(conn, logger)
		pricingSvc.AddZoneObserver(pub)
		pricingSvc.AddPolicyObserver(pub)
		publisher = pub
	}
	if cfg.Redis.Addr != "" {
		client, err := infra.NewRedis(ctx, cfg.Redis.Addr)
		if err != nil {
			return err
		}
		defer func() { _ = client.Close() }()
		mirror := pricing.NewRedisMirror(client)
		pricingSvc.AddZoneObserver(mirror)
		pricingSvc.AddPolicyObserver(mirror)
		if err := mirror.PolicyUpdated(ctx, pricingSvc.Policy()); err != nil {
			logger.Warn("initial policy mirror failed", zap.Error(err))
		}
	}
	hub := ws.NewHub(logger)
	pricingSvc.AddZoneObserver(hub)

	rideSvc := ride.NewService(ride.ServiceDeps{
		Store:   ride.NewMemoryStore(),
		Pricing: pricingSvc,
		Drivers: driverSvc,
		Wallets: walletSvc,
		Events:  publisher,
		Logger:  logger,
	})
	bookingSvc := booking.NewService(booking.DefaultFleet(nil), logger)

	// Trip assistant
	var parser ai.TripParser
	if cfg.AI.GeminiKey != "" {
		gemini, err := ai.NewGeminiProvider(ctx, cfg.AI.GeminiKey, cfg.AI.Model)
		if err != nil {
			return err
		}
		defer gemini.Close()
		parser = gemini
	} else {
		logger.Info("GEMINI_API_KEY not set; trip assistant disabled")
	}
	plannerSvc := tripplanner.NewService(parser, aiusage.NewService(usageStore), bookingSvc.Locations(), loc, logger)

	router := httptransport.NewRouter(httptransport.RouterDeps{
		Pricing:   pricingSvc,
		Rides:     rideSvc,
		Booking:   bookingSvc,
		Drivers:   driverSvc,
		Wallets:   walletSvc,
		Assistant: plannerSvc,
		Admin:     admin.NewService(driverSvc, bookingSvc, walletSvc),
		LiveZones: hub,
		Logger:    logger,
	})

	go pricingSvc.RunFluctuationTicker(ctx)

	server := httptransport.NewServer(cfg.HTTP.Addr, router, cfg.HTTP.ShutdownTimeout, logger)
	return server.Run(ctx)
}
