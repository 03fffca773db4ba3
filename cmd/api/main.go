package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shipping-calculator/internal/core/cache"
	"shipping-calculator/internal/core/config"
	"shipping-calculator/internal/core/logger"
	"shipping-calculator/internal/core/metrics"
	"shipping-calculator/internal/core/proxy"
	"shipping-calculator/internal/core/resilience"
	"shipping-calculator/internal/core/server"
	geoadapter "shipping-calculator/internal/features/geocodes/adapters"
	geohandler "shipping-calculator/internal/features/geocodes/handler"
	geoservice "shipping-calculator/internal/features/geocodes/service"
	shippingadapter "shipping-calculator/internal/features/shipping/adapters"
	shippinghandler "shipping-calculator/internal/features/shipping/handler"
	shippingservice "shipping-calculator/internal/features/shipping/service"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// @title Shipping Calculator API
// @version 1.0
// @description Envia.com shipping rate calculation with merchant shipping rules and a postal code geocode cache.
// @contact.name API Support
// @license.name MIT
// @host localhost:8080
// @BasePath /
func main() {
	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Environment, cfg.LogLevel); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	l := logger.Get()
	l.Info("Application starting",
		zap.String("environment", cfg.Environment),
		zap.String("log_level", cfg.LogLevel),
	)

	redisAdapter, err := cache.NewRedisAdapter(cfg.Redis.URL)
	if err != nil {
		l.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redisAdapter.Close()
	l.Info("Redis connection verified")

	m := metrics.New()
	proxySettings := proxy.FromConfig(cfg.Proxy)
	if proxySettings.HasProxy() {
		l.Info("Outbound proxy enabled", zap.String("hostname", cfg.Proxy.Hostname))
	}

	// Geocodes
	geoRepo := geoadapter.NewRedisGeocodeRepository(redisAdapter)
	geoLookup := geoadapter.NewEnviaGeocodeAdapter(cfg.Envia.GeocodesURL, cfg.Envia.GeocodeTimeout(), proxySettings)
	geoSvc := geoservice.NewGeocodeService(geoRepo, geoLookup, m)
	geoHdl := geohandler.NewGeocodeHandler(geoSvc, cfg.Geocodes.Retention(), cfg.Geocodes.SweepLimit)

	// Shipping
	breakers := resilience.NewRegistry(shippingservice.BreakerConfig(), l, func(name string, state gobreaker.State) {
		m.RecordBreakerState(name, int(state))
	})
	rateAdapter := shippingadapter.NewEnviaRateAdapter(cfg.Envia.APIURL, cfg.Envia.SandboxAPIURL, cfg.Envia.CarrierTimeout(), proxySettings)
	gateway := shippingservice.NewGateway(rateAdapter, breakers, m)
	quoteSvc := shippingservice.NewQuoteService(gateway, geoSvc, m)
	shippingHdl := shippinghandler.NewShippingHandler(quoteSvc)

	srv := server.New(cfg, m, redisAdapter)

	// Register Routes
	srv.App.Post("/ecom/modules/calculate-shipping", shippingHdl.CalculateShipping)
	srv.App.Post("/geocodes/sweep", geoHdl.Sweep)
	srv.App.Get("/geocodes/:postalCode", geoHdl.GetGeocode)

	go func() {
		if err := srv.Run(); err != nil {
			l.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	l.Info("Shutting down server")
	if err := srv.Shutdown(shutdownTimeout); err != nil {
		l.Error("Server shutdown failed", zap.Error(err))
	}
}
