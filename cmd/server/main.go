package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/playmatatu/billiards/internal/api"
	"github.com/playmatatu/billiards/internal/config"
	"github.com/playmatatu/billiards/internal/database"
	"github.com/playmatatu/billiards/internal/journal"
	"github.com/playmatatu/billiards/internal/migrations"
	"github.com/playmatatu/billiards/internal/redis"
	"github.com/playmatatu/billiards/internal/session"
	"github.com/playmatatu/billiards/internal/ws"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	hub := ws.NewHub()
	go hub.Run(ctx)

	services := api.Services{Hub: hub}
	var recorders []session.ShotRecorder

	// Shot journal (optional)
	if cfg.DatabaseURL != "" {
		db, err := database.Connect(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()

		if cfg.MigrateOnStart {
			log.Println("↗ Running DB migrations on startup...")
			if err := migrations.RunMigrations(cfg.DatabaseURL); err != nil {
				log.Fatalf("Failed to run migrations: %v", err)
			}
		}

		j := journal.New(db)
		recorders = append(recorders, j)
		services.Shots = j
		log.Println("[JOURNAL] Shot journal enabled")
	} else {
		log.Println("[JOURNAL] DATABASE_URL not set; shot journal disabled")
	}

	// Shot events go through Redis when it is configured so every instance
	// hears them; otherwise the hub broadcasts them directly.
	if cfg.RedisURL != "" {
		rdb, err := redis.Connect(cfg.RedisURL)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer rdb.Close()

		publisher := redis.NewPublisher(rdb)
		recorders = append(recorders, publisher)
		services.LastShots = publisher
		ws.StartEventSubscriber(ctx, rdb, hub)
	} else {
		log.Println("[REDIS] REDIS_URL not set; shot events stay local")
		recorders = append(recorders, hub)
	}

	manager := session.NewManager(cfg, hub, recorders...)
	defer manager.Shutdown()
	services.Manager = manager

	manager.StartIdleReaper(ctx, time.Minute)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()
	api.SetupRoutes(router, services, cfg)

	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{Addr: ":" + port, Handler: router}
	go func() {
		log.Printf("Starting billiards server on port %s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
}
