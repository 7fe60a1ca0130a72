package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/chainhotel/pms/config"
	"github.com/chainhotel/pms/internal/bootstrap"
	"github.com/chainhotel/pms/internal/cache"
	"github.com/chainhotel/pms/internal/db"
	"github.com/chainhotel/pms/internal/kafka"
	"github.com/chainhotel/pms/internal/repository"
	"github.com/chainhotel/pms/internal/service/booking"
	"github.com/chainhotel/pms/internal/service/inventory"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.Connect(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	if cfg.Database.MigrationsPath != "" {
		if err := db.RunMigrations(pool, cfg.Database.MigrationsPath); err != nil {
			log.Fatalf("run migrations: %v", err)
		}
	}

	redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Booking.ReferenceCacheTTL)*time.Second)
	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	roomRepo := repository.NewRoomRepository(pool)
	agencyRepo := repository.NewAgencyRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)

	inventoryService := inventory.NewInventoryService(roomRepo, agencyRepo, redisCache)
	bookingService := booking.NewBookingService(
		bookingRepo,
		roomRepo,
		agencyRepo,
		producer,
		cfg.Kafka.BookingsTopic,
		booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
	)

	if err := bootstrap.Run(ctx, cfg, inventoryService, bookingService); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
