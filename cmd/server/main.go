package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/asset-management/internal/config"
	"github.com/iliyamo/asset-management/internal/database"
	"github.com/iliyamo/asset-management/internal/handler"
	"github.com/iliyamo/asset-management/internal/middleware"
	"github.com/iliyamo/asset-management/internal/queue"
	"github.com/iliyamo/asset-management/internal/repository"
	"github.com/iliyamo/asset-management/internal/router"
	"github.com/iliyamo/asset-management/internal/storage"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	images, err := storage.NewImageStore(cfg.ImageDir)
	if err != nil {
		log.Fatalf("image store: %v", err)
	}

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	assets := repository.NewAssetRepo(db)
	inbox := repository.NewInboxRepo(db)
	taxonomy := repository.NewTaxonomyRepo(db)

	// Redis is optional: a nil client turns the cache and the rate
	// limiter into pass-throughs.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; response cache and rate limiting disabled")
	}
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	rateLimit := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

	api := router.API{
		Auth:      handler.NewAuthHandler(cfg, users, tokens),
		Users:     handler.NewUserHandler(cfg, users, tokens),
		Assets:    handler.NewAssetHandler(assets, images),
		Dashboard: handler.NewDashboardHandler(assets),
		Requests:  handler.NewRequestHandler(assets, inbox),
		Inbox:     handler.NewInboxHandler(inbox),
		Reference: handler.NewReferenceHandler(taxonomy),
	}

	e := echo.New()
	e.Static("/images", cfg.ImageDir)
	router.RegisterRoutes(e)
	router.RegisterAPI(e, api, cfg.JWTSecret, rateLimit, cache)

	// Audit consumer runs for the life of the process; it reconnects on
	// broker failure and never brings the server down.
	go func() {
		if err := queue.StartRequestConsumer(); err != nil {
			log.Printf("request consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
