package main

import (
	"context"
	"log"

	"github.com/redis/go-redis/v9"

	"boothtrack.in/internal/api"
	"boothtrack.in/internal/config"
	"boothtrack.in/internal/infra"
	"boothtrack.in/internal/seed"
)

func main() {
	// 1. Load configuration
	cfg := config.LoadConfig()

	// 2. Initialize infrastructure
	// Postgres
	pg, err := infra.NewPostgresClient(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Redis (optional: token cache + cross-instance location events)
	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb = infra.NewRedisClient(cfg.Redis)
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
	} else {
		log.Println("Redis not configured, running without token cache and event fan-out")
	}

	// 3. Bootstrap data
	seed.EnsureAdminUser(pg.DB, cfg.Auth.BootstrapPassword)
	if cfg.Seed {
		seed.SampleData(context.Background(), pg.DB)
	}

	// 4. Live location feed hub
	hub := infra.NewWsHub()
	go hub.Start()
	infra.NewLocationNotifier(hub, rdb).Run(context.Background())

	// 5. Set up the fiber server and routes
	app := api.NewServer(cfg)
	router := api.NewRouter(app, cfg, pg.DB, rdb, hub)
	if err := router.RegisterRoutes(); err != nil {
		log.Fatalf("Failed to register routes: %v", err)
	}

	// 6. Start the server
	log.Printf("Server starting on port %s", cfg.Server.Port)
	if err := app.Listen(cfg.Server.Port); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
