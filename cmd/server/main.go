package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/arminveh/cinema-box-office/internal/catalog"
	"github.com/arminveh/cinema-box-office/internal/config"
	"github.com/arminveh/cinema-box-office/internal/database"
	"github.com/arminveh/cinema-box-office/internal/engine"
	"github.com/arminveh/cinema-box-office/internal/handler"
	"github.com/arminveh/cinema-box-office/internal/ledger"
	"github.com/arminveh/cinema-box-office/internal/queue"
	"github.com/arminveh/cinema-box-office/internal/repository"
	"github.com/arminveh/cinema-box-office/internal/router"
	queuepublisher "github.com/arminveh/cinema-box-office/internal/service"
	"github.com/arminveh/cinema-box-office/internal/store"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}
	cfg := config.Load()

	// Hall, movie and menu catalog.  A missing CATALOG_FILE falls back
	// to the built-in defaults.
	var cat *catalog.Catalog
	if cfg.CatalogFile != "" {
		var err error
		cat, err = catalog.LoadFile(cfg.CatalogFile)
		if err != nil {
			log.Fatalf("load catalog %s: %v", cfg.CatalogFile, err)
		}
	} else {
		cat = catalog.Defaults()
	}

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	var booked store.BookedStore
	switch cfg.StorageDriver {
	case "mysql":
		booked = store.NewMySQLStore(db)
	case "file":
		booked = store.NewFileStore(cfg.BookedFile)
	default:
		log.Fatalf("unknown STORAGE_DRIVER %q (want file or mysql)", cfg.StorageDriver)
	}

	eng := engine.New(cat, ledger.New(), booked)
	if err := eng.Restore(); err != nil {
		log.Fatalf("restore booked seats: %v", err)
	}

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	payments := repository.NewPaymentRepo(db)
	orders := repository.NewFoodOrderRepo(db)

	rdb := config.NewRedisClient()

	// Consume booking.confirmed events in the background; the consumer
	// reconnects on its own if the broker goes away.
	go func() {
		if err := queue.StartBookingConsumer(); err != nil {
			log.Printf("booking consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())

	router.Register(e, router.Deps{
		Booking:   handler.NewBookingHandler(eng, cat, payments, queuepublisher.PublishBookingConfirmed),
		Browse:    handler.NewBrowseHandler(cat),
		Auth:      handler.NewAuthHandler(cfg, users, tokens),
		Food:      handler.NewFoodHandler(cat, orders),
		JWTSecret: cfg.JWTSecret,
		Redis:     rdb,
		RateLimit: config.LoadRateLimitConfig(),
		Cache:     config.LoadCacheConfig(),
	})

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s, storage=%s)", addr, cfg.Env, cfg.StorageDriver)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
