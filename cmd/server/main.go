package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/handlers"
	"github.com/joho/godotenv"

	"integramente-backend/internal/api"
	"integramente-backend/internal/cache"
	"integramente-backend/internal/config"
	"integramente-backend/internal/exemplos"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	var repo cache.Repository = cache.NewMemory(cfg.CacheMaxEntries, cfg.CacheTTL)
	if cfg.RedisAddr != "" {
		rc := cache.NewRedis(cfg.RedisAddr, cfg.CacheTTL)
		if err := rc.Ping(); err != nil {
			log.Printf("Warning: redis at %s unreachable (%v), using in-memory cache", cfg.RedisAddr, err)
		} else {
			log.Printf("Using redis cache at %s", cfg.RedisAddr)
			repo = rc
		}
	}

	catalog, err := exemplos.Load(cfg.ExemplosFile)
	if err != nil {
		log.Fatal(err)
	}

	api.Setup(cfg, repo, catalog)

	limiter := api.NewRateLimiter(cfg.RateLimitPerMinute, time.Minute)
	defer limiter.Stop()

	// CORS is wide open on purpose: the mobile client ships with no
	// fixed origin.
	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{"GET", "POST", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)

	var handler http.Handler = api.NewRouter()
	handler = api.RateLimitMiddleware(limiter, handler)
	handler = api.RequestIDMiddleware(handler)
	handler = cors(handler)
	handler = handlers.LoggingHandler(os.Stdout, handler)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.CalcTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Printf("IntegraMente backend starting on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		log.Fatalf("Error starting server: %v", err)
	case <-quit:
		log.Println("Shutting down server...")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Error during server shutdown: %v", err)
	}

	log.Println("Server exited")
}
