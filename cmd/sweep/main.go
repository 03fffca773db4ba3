// Command sweep drains expired postal code lookups from the geocode cache.
// It is meant to run from a daily scheduler.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"shipping-calculator/internal/core/cache"
	"shipping-calculator/internal/core/config"
	"shipping-calculator/internal/core/logger"
	geoadapter "shipping-calculator/internal/features/geocodes/adapters"
	geoservice "shipping-calculator/internal/features/geocodes/service"

	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", ".", "directory containing the .env file")
	once := flag.Bool("once", false, "run a single bounded sweep instead of draining")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Environment, cfg.LogLevel); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()
	l := logger.Get()

	redisAdapter, err := cache.NewRedisAdapter(cfg.Redis.URL)
	if err != nil {
		l.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redisAdapter.Close()

	svc := geoservice.NewGeocodeService(geoadapter.NewRedisGeocodeRepository(redisAdapter), nil, nil)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	retention, limit := cfg.Geocodes.Retention(), cfg.Geocodes.SweepLimit
	var deleted int
	if *once {
		deleted, err = svc.SweepExpired(ctx, retention, limit)
	} else {
		deleted, err = svc.Drain(ctx, retention, limit)
	}
	if err != nil {
		l.Error("Geocode sweep failed", zap.Int("deleted", deleted), zap.Error(err))
		os.Exit(1)
	}

	l.Info("Geocode cache swept", zap.Int("deleted", deleted))
}
