// README: HTTP router registration.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"lagosride/internal/http/handlers"
	"lagosride/internal/http/middleware"
	"lagosride/internal/modules/admin"
	"lagosride/internal/modules/booking"
	"lagosride/internal/modules/driver"
	"lagosride/internal/modules/pricing"
	"lagosride/internal/modules/ride"
	"lagosride/internal/modules/tripplanner"
	"lagosride/internal/modules/wallet"
	"lagosride/internal/ws"
)

type RouterDeps struct {
	Pricing   *pricing.Service
	Rides     *ride.Service
	Booking   *booking.Service
	Drivers   *driver.Service
	Wallets   *wallet.Service
	Assistant *tripplanner.Service
	Admin     *admin.Service
	// LiveZones is optional; without it the websocket route is not registered.
	LiveZones *ws.Hub
	Logger    *zap.Logger
}

func NewRouter(deps RouterDeps) *gin.Engine {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := gin.New()
	r.Use(middleware.Identity(), middleware.Recovery(logger), middleware.Logging(logger))

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	pricingHandler := handlers.NewPricingHandler(deps.Pricing)
	rideHandler := handlers.NewRideHandler(deps.Rides)
	bookingHandler := handlers.NewBookingHandler(deps.Booking)
	driverHandler := handlers.NewDriverHandler(deps.Drivers, deps.Wallets)
	walletHandler := handlers.NewWalletHandler(deps.Wallets)
	assistantHandler := handlers.NewAssistantHandler(deps.Assistant)
	adminHandler := handlers.NewAdminHandler(deps.Admin)

	api := r.Group("/api")
	api.GET("/locations", bookingHandler.Locations)
	api.GET("/buses", bookingHandler.Search)
	api.POST("/buses/:id/bookings", bookingHandler.Book)

	api.POST("/rides/options", rideHandler.Options)
	api.POST("/rides", rideHandler.Request)
	api.GET("/rides/:id", rideHandler.Get)

	api.POST("/drivers", driverHandler.Register)
	api.GET("/drivers/:id/dashboard", driverHandler.Dashboard)
	api.POST("/drivers/:id/payouts", driverHandler.RequestPayout)

	api.GET("/wallet", walletHandler.RiderWallet)
	api.POST("/payments", walletHandler.Pay)

	api.POST("/assistant/trip", assistantHandler.ParseTrip)
	api.GET("/pricing/surge/:zone", pricingHandler.Surge)

	adm := r.Group("/admin")
	adm.GET("/pricing/zones", pricingHandler.Zones)
	if deps.LiveZones != nil {
		adm.GET("/pricing/zones/live", deps.LiveZones.Handler(deps.Pricing.Zones))
	}
	adm.GET("/pricing/zones/:zone", pricingHandler.Zone)
	adm.GET("/pricing/policy", pricingHandler.Policy)
	adm.PATCH("/pricing/policy", pricingHandler.UpdatePolicy)

	adm.GET("/drivers", driverHandler.List)
	adm.POST("/drivers/:id/approve", driverHandler.Approve)
	adm.GET("/payouts", walletHandler.PendingPayouts)
	adm.POST("/payouts/:id/approve", walletHandler.ApprovePayout)
	adm.GET("/overview", adminHandler.Overview)
	adm.GET("/trips", adminHandler.TripLogs)

	return r
}
