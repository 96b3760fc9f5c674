package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"solar-finance/internal/api"
	"solar-finance/internal/config"
	"solar-finance/internal/data"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; real environment variables win.
	if err := godotenv.Load(); err == nil {
		log.Printf("Loaded environment from .env")
	}

	port := os.Getenv("API_PORT")
	if port == "" {
		port = "8080"
	}

	cfg := config.Default()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			log.Fatalf("Failed to load config %s: %v", path, err)
		}
		cfg = loaded
		log.Printf("Loaded config from %s", path)
	} else {
		log.Printf("CONFIG_FILE not set, using default assumptions")
	}

	ttl := time.Hour
	if v := os.Getenv("RUN_CACHE_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			log.Fatalf("Invalid RUN_CACHE_TTL %q: %v", v, err)
		}
		ttl = d
	}
	cache := data.NewRunCache(ttl)
	defer cache.Close()

	workers := 0
	if v := os.Getenv("SWEEP_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			log.Fatalf("Invalid SWEEP_WORKERS %q: %v", v, err)
		}
		workers = n
	}

	if os.Getenv("API_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := api.NewRouter(cfg, cache, api.Options{
		CORSOrigins: os.Getenv("CORS_ORIGINS"),
		Workers:     workers,
	})

	addr := fmt.Sprintf(":%s", port)
	log.Printf("Starting API server on %s (run cache TTL %s)", addr, ttl)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
