package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"perfume-shop-api/internal/cache"
	"perfume-shop-api/internal/client"
	"perfume-shop-api/internal/config"
	"perfume-shop-api/internal/model"
	"perfume-shop-api/internal/repository"
	"perfume-shop-api/internal/server"
	"perfume-shop-api/internal/service"
	"syscall"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func main() {
	// load .env into os.Environ
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found (ok in prod)")
	}

	cfg := &config.Config{}
	if err := env.Parse(cfg); err != nil {
		fmt.Printf("Failed to parse config: %v\n", err)
		os.Exit(1)
	}

	db := client.InitMysqlClient(cfg.DatabaseURL)
	rdb := client.InitRedisClient(cfg.RedisAddr)
	recentCache := cache.NewRecentOrdersCache(rdb)

	orderRepo := repository.NewOrderRepository(db)
	perfumeRepo := repository.NewPerfumeRepository(db)
	paymentRepo := repository.NewPaymentDetailRepository(db)
	cartRepo := repository.NewCartRepository(db)

	// Product creation belongs to the catalog backoffice; this fixture only
	// makes a fresh development database usable.
	if cfg.Environment.Name == "development" {
		if err := seedCatalog(db); err != nil {
			log.Fatal("failed to seed catalog:", err)
		}
	}

	checkoutService := service.NewCheckoutService(
		db,
		orderRepo,
		perfumeRepo,
		paymentRepo,
		cartRepo,
		recentCache,
	)
	orderQueryService := service.NewOrderQueryService(orderRepo, cfg.PhotoBaseURL, recentCache)

	serverAddr := cfg.HTTP.Host + ":" + cfg.HTTP.Port

	// Init HTTP server
	srv := server.NewServer(checkoutService, orderQueryService, cfg.JWTSecret)

	log.Println("Starting HTTP server on", serverAddr)
	go func() {
		if err := srv.Start(serverAddr); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigChan
	log.Println("Signal received, starting graceful shutdown...")

	_, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(); err != nil {
		log.Fatal("HTTP server shutdown error")
	}
}

func seedCatalog(db *gorm.DB) error {
	perfumes := []model.Perfume{
		{ID: 1, Name: "Amber Noir", Price: 89.99, Quantity: 25, Available: true},
		{ID: 2, Name: "Citrus Bloom", Price: 64.50, Quantity: 40, Available: true},
		{ID: 3, Name: "Velvet Oud", Price: 129.00, Quantity: 12, Available: true},
	}

	return db.Clauses(clause.OnConflict{DoNothing: true}).Create(&perfumes).Error
}
