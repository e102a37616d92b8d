package main // Entry point package

import (
    "context"
    "log"
    "time"

    "github.com/joho/godotenv"
    "github.com/labstack/echo/v4"

    "github.com/iliyamo/live-request-board/internal/config"
    "github.com/iliyamo/live-request-board/internal/database"
    "github.com/iliyamo/live-request-board/internal/gate"
    "github.com/iliyamo/live-request-board/internal/handler"
    "github.com/iliyamo/live-request-board/internal/middleware"
    "github.com/iliyamo/live-request-board/internal/queue"
    "github.com/iliyamo/live-request-board/internal/repository"
    "github.com/iliyamo/live-request-board/internal/router"
    "github.com/iliyamo/live-request-board/internal/service/notify"
)

func main() {
    // .env is optional; real deployments set variables in the environment.
    _ = godotenv.Load()
    cfg := config.Load()

    db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
    if err != nil {
        log.Fatalf("database connect failed: %v", err)
    }

    ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
    defer cancel()
    if err := database.Migrate(ctx, db); err != nil {
        log.Fatalf("database migrate failed: %v", err)
    }
    if err := database.SeedInitialDJ(ctx, db, cfg.InitialDJUser, cfg.InitialDJPass, cfg.BcryptCost); err != nil {
        log.Fatalf("seed initial DJ account failed: %v", err)
    }

    // Repositories.
    requests := repository.NewRequestRepo(db)
    bans := repository.NewBanRepo(db)
    terms := repository.NewTermsRepo(db)
    settings := repository.NewSettingRepo(db)
    songs := repository.NewSongRepo(db)
    djUsers := repository.NewDJUserRepo(db)

    // Access gate owns the submission and cascade policy.
    g := gate.New(bans, terms, settings, requests, songs, cfg.KaraokeEnabled)
    g.Notifier = notify.NewPublisher()

    // Handlers.
    handlers := router.PublicHandlers{
        Auth:    handler.NewAuthHandler(cfg, djUsers),
        Request: handler.NewRequestHandler(g, requests, songs),
        Ban:     handler.NewBanHandler(g, bans),
        Terms:   handler.NewTermsHandler(g),
        System:  handler.NewSystemHandler(g, settings),
        Song:    handler.NewSongHandler(songs),
    }

    // Redis-backed middleware; both degrade to pass-through when Redis
    // is unreachable.
    rdb := config.NewRedisClient()
    if rdb == nil {
        log.Printf("redis unavailable; response cache and rate limiting disabled")
    }
    cache := middleware.NewResponseCache(config.LoadCacheConfig(), rdb)
    limit := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

    // Background consumer feeding the DJ desktop notification log.
    go func() {
        if err := queue.StartRequestConsumer(); err != nil {
            log.Printf("notify-consumer stopped: %v", err)
        }
    }()

    e := echo.New()
    router.RegisterRoutes(e)
    router.RegisterPublic(e, handlers, cache, limit)
    router.RegisterDJ(e, handlers, cfg.JWTSecret)

    addr := ":" + cfg.Port
    log.Printf("listening on %s (env=%s, karaoke=%v)", addr, cfg.Env, cfg.KaraokeEnabled)
    if err := e.Start(addr); err != nil {
        log.Fatal(err)
    }
}
