package main // Entry point package

import (
    "context"
    "errors"
    "log"
    "net/http"
    "os"
    "os/signal"
    "syscall"
    "time"

    "github.com/google/uuid"
    "github.com/joho/godotenv"
    "github.com/labstack/echo/v4"
    echomw "github.com/labstack/echo/v4/middleware"

    "github.com/iliyamo/vehicle-rental/internal/config"
    "github.com/iliyamo/vehicle-rental/internal/database"
    "github.com/iliyamo/vehicle-rental/internal/handler"
    "github.com/iliyamo/vehicle-rental/internal/middleware"
    "github.com/iliyamo/vehicle-rental/internal/obs"
    "github.com/iliyamo/vehicle-rental/internal/queue"
    "github.com/iliyamo/vehicle-rental/internal/repository"
    "github.com/iliyamo/vehicle-rental/internal/router"
    "github.com/iliyamo/vehicle-rental/internal/service"
)

func main() {
    _ = godotenv.Load() // .env is optional
    cfg := config.Load()
    logger := obs.NewLogger(cfg.Env)

    db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
    if err != nil {
        log.Fatalf("database: %v", err)
    }
    defer db.Close()

    ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
    defer stop()

    opts := service.Options{SwallowWriteErrors: cfg.SwallowWriteErrors, Location: cfg.Location}
    if cfg.AMQPURL != "" {
        opts.Publisher = queue.NewPublisher(cfg.AMQPURL)
        consumer := queue.NewConsumer(cfg.AMQPURL, "logs", logger)
        go func() {
            if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
                logger.Error("rental consumer stopped", "err", err)
            }
        }()
    } else {
        logger.Warn("AMQP_URL not set, booking events disabled")
    }

    reservations := repository.NewReservationRepo(db)
    invoices := repository.NewInvoiceRepo(db)
    svc := service.NewRentalService(db,
        repository.NewClientRepo(db),
        repository.NewVehicleRepo(db),
        reservations,
        invoices,
        logger,
        opts,
    )

    rdb := config.NewRedisClient()
    if rdb == nil {
        logger.Warn("redis unavailable, rate limiting and invoice cache disabled")
    } else {
        defer rdb.Close()
    }

    e := echo.New()
    e.HideBanner = true
    e.Validator = handler.NewRequestValidator()
    e.Use(echomw.Recover())
    e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{Generator: uuid.NewString}))

    router.RegisterRoutes(e, db)
    router.RegisterRentals(e,
        handler.NewRentalHandler(svc, reservations, invoices, logger),
        cfg.JWTSecret,
        middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb),
        middleware.NewRedisCache(config.LoadCacheConfig(), rdb),
    )

    addr := ":" + cfg.Port
    go func() {
        logger.Info("listening", "addr", addr, "env", cfg.Env)
        if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
            log.Fatal(err)
        }
    }()

    <-ctx.Done()
    shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
    defer cancel()
    if err := e.Shutdown(shutdownCtx); err != nil {
        logger.Error("shutdown", "err", err)
    }
}
