package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"    // loads .env files in development
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/idol0602/cinema-booking-engine/internal/booking"
	"github.com/idol0602/cinema-booking-engine/internal/config"
	"github.com/idol0602/cinema-booking-engine/internal/database"
	"github.com/idol0602/cinema-booking-engine/internal/handler"
	"github.com/idol0602/cinema-booking-engine/internal/lock"
	"github.com/idol0602/cinema-booking-engine/internal/middleware"
	"github.com/idol0602/cinema-booking-engine/internal/pricing"
	"github.com/idol0602/cinema-booking-engine/internal/queue"
	"github.com/idol0602/cinema-booking-engine/internal/repository"
	"github.com/idol0602/cinema-booking-engine/internal/router"
)

func main() {
	// .env is optional; real deployments inject env vars directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis backs seat leases, the response cache and rate limiting.  The
	// cache and limiter degrade to pass-through without it, but leases
	// cannot, so a missing Redis is fatal.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Fatal("redis: connection failed; seat holds require redis")
	}

	showtimeRepo := repository.NewShowtimeRepo(db)
	seatRepo := repository.NewSeatRepo(db)
	catalogRepo := repository.NewCatalogRepo(db)
	priceRepo := repository.NewPriceRepo(db)
	orderRepo := repository.NewOrderRepo(db, seatRepo)

	// The ticket price table is small and static, so it is loaded once at
	// startup rather than queried per totals computation.
	loadCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	priceRows, err := priceRepo.ListTicketPrices(loadCtx)
	cancel()
	if err != nil {
		log.Fatalf("price table: %v", err)
	}
	prices := pricing.NewTable(priceRows)
	log.Printf("[PRICING] loaded %d ticket price rows", len(priceRows))

	locks := lock.NewRedisLockService(rdb)
	sessions := booking.NewRegistry()
	holdTTL := time.Duration(cfg.HoldTTLSeconds) * time.Second

	bookingHandler := handler.NewBookingHandler(showtimeRepo, seatRepo, catalogRepo, orderRepo, locks, prices, sessions, holdTTL)
	catalogHandler := handler.NewCatalogHandler(showtimeRepo, catalogRepo, priceRepo)

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterCatalog(e, catalogHandler, middleware.NewRedisCache(config.LoadCacheConfig(), rdb))
	router.RegisterBooking(e, bookingHandler, cfg.JWTSecret, middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	if cfg.Env != "prod" {
		router.RegisterDevToken(e, &handler.DevTokenHandler{Secret: cfg.JWTSecret, TTLMin: cfg.AccessTTLMin})
	}

	// Consume order.completed events in the background; the consumer
	// reconnects on its own if RabbitMQ drops.
	go func() {
		if err := queue.StartOrderConsumer(); err != nil {
			log.Printf("[QUEUE] consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s, hold_ttl=%s)", addr, cfg.Env, holdTTL)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
