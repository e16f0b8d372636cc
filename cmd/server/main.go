package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/shopforge/shopforge/internal/cart"
	"github.com/shopforge/shopforge/internal/config"
	"github.com/shopforge/shopforge/internal/es"
	"github.com/shopforge/shopforge/internal/handlers"
	"github.com/shopforge/shopforge/internal/logging"
	"github.com/shopforge/shopforge/internal/middleware/loggingmw"
	"github.com/shopforge/shopforge/internal/mykafka"
	"github.com/shopforge/shopforge/internal/service/token"
	httpserver "github.com/shopforge/shopforge/internal/transport/http"
)

func main() {
	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(configuration.LOG_LEVEL)

	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := config.InitDB(initCtx, configuration)
	cancel()
	if err != nil {
		logger.Error("db init error", "error", err)
		os.Exit(1)
	}

	jwtSecret := []byte(configuration.JWT_SECRET)
	refreshSecret := []byte(configuration.REFRESH_SECRET)

	var producer *mykafka.Producer
	if configuration.KAFKA_ADDRESS != "" {
		producer = mykafka.NewProducer([]string{configuration.KAFKA_ADDRESS})
	}

	var searchHandler *handlers.SearchHandler
	var productHandler = &handlers.ProductHandler{DB: db, Producer: producer, Index: "product"}
	if configuration.ES_URL != "" {
		esClient, err := es.NewClient(configuration)
		if err != nil {
			logger.Error("elasticsearch init error", "error", err)
			os.Exit(1)
		}
		productHandler.ES = esClient
		searchHandler = &handlers.SearchHandler{ES: esClient, Index: "product"}
	}

	e := echo.New()
	e.HideBanner = true
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID(), middleware.CORS())
	e.Use(loggingmw.RequestLogger(logger))

	cartService := &cart.Service{DB: db}

	deps := httpserver.Deps{
		DB:              db,
		AuthHandler:     &handlers.AuthHandler{DB: db, JWTSecret: jwtSecret, RefreshSecret: refreshSecret, Producer: producer},
		ProductHandler:  productHandler,
		TaxonomyHandler: &handlers.TaxonomyHandler{DB: db},
		CartHandler:     &handlers.CartHandler{DB: db, Svc: cartService, Producer: producer},
		OrderHandler:    &handlers.OrderHandler{DB: db},
		WishlistHandler: &handlers.WishlistHandler{DB: db},
		SearchHandler:   searchHandler,
		TokenService:    &token.TokenService{DB: db, JWTSecret: jwtSecret, RefreshSecret: refreshSecret},
	}
	httpserver.Register(e, &deps)

	port := configuration.SERVER_PORT
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		logger.Info("server starting", "port", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			logger.Error("db close error", "error", err)
		}
	}

	if producer != nil {
		if err := producer.Close(); err != nil {
			logger.Error("kafka close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
