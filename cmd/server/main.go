package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/ekoval/storefront/internal/config"
	"github.com/ekoval/storefront/internal/db"
	"github.com/ekoval/storefront/internal/es"
	"github.com/ekoval/storefront/internal/handlers"
	"github.com/ekoval/storefront/internal/logging"
	loggingmw "github.com/ekoval/storefront/internal/middleware/logging"
	"github.com/ekoval/storefront/internal/mykafka"
	"github.com/ekoval/storefront/internal/repo"
	cartsvc "github.com/ekoval/storefront/internal/service/cart"
	catalogsvc "github.com/ekoval/storefront/internal/service/catalog"
	ordersvc "github.com/ekoval/storefront/internal/service/order"
	"github.com/ekoval/storefront/internal/service/token"
	httpserver "github.com/ekoval/storefront/internal/transport/http"
)

func main() {
	cfg := config.Load()

	logger := logging.New(cfg.LogLevel)
	slog.SetDefault(logger)

	ctx := context.Background()
	gormDB, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}
	if err := db.Migrate(gormDB); err != nil {
		log.Fatalf("db migrate error: %v", err)
	}

	producer := mykafka.NewProducer(cfg.KafkaBrokers)
	defer producer.Close()

	var esClient *elasticsearch.Client
	if cfg.ESURL != "" {
		esClient, err = es.NewClient(cfg)
		if err != nil {
			log.Fatalf("elasticsearch init error: %v", err)
		}
	}

	r := repo.New(gormDB)

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())
	e.Use(loggingmw.RequestLogger(logger))

	deps := httpserver.Deps{
		AuthHandler:     &handlers.AuthHandler{DB: gormDB, JWTSecret: cfg.JWTSecret, RefreshSecret: cfg.RefreshSecret, Producer: producer},
		CategoryHandler: &handlers.CategoryHandler{Svc: &catalogsvc.CatalogService{Repo: r}, Producer: producer},
		ProductHandler:  &handlers.ProductHandler{Svc: &catalogsvc.CatalogService{Repo: r}, Producer: producer},
		CartHandler:     &handlers.CartHandler{Svc: &cartsvc.CartService{Repo: r}, Producer: producer},
		OrderHandler:    &handlers.OrderHandler{Svc: &ordersvc.OrderService{Repo: r}, Producer: producer},
		SearchHandler:   &handlers.SearchHandler{ES: esClient, Index: "products"},
		TokenService:    &token.TokenService{DB: gormDB, JWTSecret: cfg.JWTSecret, RefreshSecret: cfg.RefreshSecret},
	}
	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
