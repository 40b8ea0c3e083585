package main

import (
	"context"
	"log"
	"time"

	"veggiekart-delivery/internal/core/cache"
	"veggiekart-delivery/internal/core/config"
	"veggiekart-delivery/internal/core/logger"
	"veggiekart-delivery/internal/core/server"
	deliveryadapter "veggiekart-delivery/internal/features/delivery/adapters"
	deliveryhandler "veggiekart-delivery/internal/features/delivery/handler"
	deliveryservice "veggiekart-delivery/internal/features/delivery/service"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// @title VeggieKart Delivery Pricing API
// @version 1.0
// @description Delivery-distance pricing for the VeggieKart storefront: pincode to road distance to charge, with two-tier quote caching.
// @contact.name API Support
// @contact.email support@veggiekart.in
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

	// Durable cache tier (Redis)
	redisCache, err := cache.NewRedisAdapter(cfg.Redis.URL)
	if err != nil {
		l.Fatal("Failed to create Redis adapter", zap.Error(err))
	}
	defer redisCache.Close()

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := redisCache.Ping(pingCtx); err != nil {
		cancel()
		l.Fatal("Redis health check failed", zap.Error(err))
	}
	cancel()
	l.Info("Redis connection verified")

	// Fast cache tier (in-process)
	memoryCache := cache.NewMemoryAdapter()
	defer memoryCache.Close()

	ttl := time.Duration(cfg.Pricing.CacheTTLMinutes) * time.Minute
	fastTier := deliveryadapter.NewQuoteCache(memoryCache, ttl)
	durableTier := deliveryadapter.NewQuoteCache(redisCache, ttl)

	// Zone and rate reference data (Postgres)
	pool, err := pgxpool.New(context.Background(), cfg.Database.URL)
	if err != nil {
		l.Fatal("Failed to create database pool", zap.Error(err))
	}
	defer pool.Close()

	pingCtx, cancel = context.WithTimeout(context.Background(), 5*time.Second)
	if err := pool.Ping(pingCtx); err != nil {
		l.Warn("Database unreachable, zones and rate refresh degraded", zap.Error(err))
	} else {
		l.Info("Database connection verified")
	}
	cancel()

	zoneRepo := deliveryadapter.NewPostgresZoneRepository(pool)

	// Resolver providers
	geocoder := deliveryadapter.NewNominatimAdapter(cfg.Providers)
	router := deliveryadapter.NewOSRMAdapter(cfg.Providers)

	pricingSvc := deliveryservice.NewPricingService(
		cfg.Pricing, geocoder, router, zoneRepo, zoneRepo, fastTier, durableTier,
	)
	deliveryHdl := deliveryhandler.NewDeliveryHandler(pricingSvc)

	srv := server.New(cfg)

	// Register Routes
	srv.App.Get("/health", func(c *fiber.Ctx) error {
		if err := redisCache.Ping(c.Context()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status": "degraded",
				"redis":  err.Error(),
			})
		}
		return c.JSON(fiber.Map{"status": "ok"})
	})
	srv.App.Get("/delivery/charge/:pincode", deliveryHdl.GetDeliveryCharge)
	srv.App.Get("/delivery/zones", deliveryHdl.GetZones)
	srv.App.Delete("/delivery/cache", deliveryHdl.ClearCache)
	srv.App.Delete("/delivery/cache/:pincode", deliveryHdl.ClearCache)

	if err := srv.Run(); err != nil {
		l.Fatal("Server failed to start", zap.Error(err))
	}
}
