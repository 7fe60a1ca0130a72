package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/chainhotel/pms/config"
	"github.com/chainhotel/pms/internal/db"
	"github.com/chainhotel/pms/internal/email"
	"github.com/chainhotel/pms/internal/kafka"
	"github.com/chainhotel/pms/internal/repository"
	"github.com/chainhotel/pms/internal/service/booking"
	"github.com/joho/godotenv"
	kafkaGo "github.com/segmentio/kafka-go"
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

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := db.Connect(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	roomRepo := repository.NewRoomRepository(pool)
	agencyRepo := repository.NewAgencyRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)

	// The worker only reads; no producer, no cache.
	bookingService := booking.NewBookingService(bookingRepo, roomRepo, agencyRepo, nil, "")

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.NotificationsTopic)
	defer consumer.Close()

	emailSender := email.NewSender()

	go func() {
		if err := consumer.Consume(ctx, func(ctx context.Context, msg kafkaGo.Message) error {
			var event kafka.BookingEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				log.Printf("decode event error: %v", err)
				return nil
			}
			return emailSender.Send(ctx, event)
		}); err != nil {
			log.Printf("consumer stopped: %v", err)
		}
	}()

	reportTicker := time.NewTicker(time.Duration(cfg.Worker.OccupancyReportMinutes) * time.Minute)
	defer reportTicker.Stop()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case <-reportTicker.C:
			occ, err := bookingService.Occupancy(ctx, time.Now().UTC().Truncate(24*time.Hour))
			if err != nil {
				log.Printf("occupancy report error: %v", err)
				continue
			}
			log.Printf("occupancy report: %d occupied, %d free", len(occ.Occupied), len(occ.Free))
		case s := <-sig:
			log.Printf("received signal %v, shutting down", s)
			return
		}
	}
}
