package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-ticket-reservation/internal/config"
	"github.com/iliyamo/event-ticket-reservation/internal/database"
	"github.com/iliyamo/event-ticket-reservation/internal/handler"
	"github.com/iliyamo/event-ticket-reservation/internal/queue"
	"github.com/iliyamo/event-ticket-reservation/internal/repository"
	"github.com/iliyamo/event-ticket-reservation/internal/router"
	"github.com/iliyamo/event-ticket-reservation/migrations"
)

func main() {
	// A local .env is optional; real deployments inject the environment.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database open failed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := migrations.Apply(ctx, db); err != nil {
		cancel()
		log.Fatalf("migrations failed: %v", err)
	}
	cancel()

	// Redis backs the rate limiter and the lookup cache.  Both degrade
	// to pass-through when the client is nil.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; rate limiting and response caching disabled")
	}

	eventRepo := repository.NewEventRepo(db)
	ticketTypeRepo := repository.NewTicketTypeRepo(db)
	registrationRepo := repository.NewRegistrationRepo(db)

	regHandler := handler.NewRegistrationHandler(eventRepo, ticketTypeRepo, registrationRepo)
	adminHandler := handler.NewAdminRegistrationHandler(eventRepo, registrationRepo)
	lookupHandler := handler.NewLookupHandler(registrationRepo)

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterPublic(e, regHandler, lookupHandler, rdb, config.LoadRateLimitConfig(), config.LoadCacheConfig())
	router.RegisterAdmin(e, adminHandler, cfg.JWTSecret)

	// Drain confirmation events into the notification log in the
	// background; the consumer reconnects on broker failures.
	go func() {
		if err := queue.StartNotificationConsumer(); err != nil {
			log.Printf("notification consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
