package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rehlatours/umrahbooking/config"
	"github.com/rehlatours/umrahbooking/internal/bootstrap"
	"github.com/rehlatours/umrahbooking/internal/cache"
	"github.com/rehlatours/umrahbooking/internal/kafka"
	"github.com/rehlatours/umrahbooking/internal/repository"
	"github.com/rehlatours/umrahbooking/internal/service/booking"
	"github.com/rehlatours/umrahbooking/internal/service/packages"
	"github.com/rehlatours/umrahbooking/internal/whatsapp"
)

func main() {
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

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Booking.PackagesCacheTTL)*time.Second)
	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	waClient := whatsapp.NewClient(whatsapp.Config{
		Endpoint: cfg.WhatsApp.Endpoint,
		Username: cfg.WhatsApp.Username,
		Password: cfg.WhatsApp.Password,
	})

	bookingRepo := repository.NewBookingRepository(pool)
	packageRepo := repository.NewPackageRepository(pool)

	packageSvc := packages.NewPackageService(packageRepo, redisCache)
	bookingSvc := booking.NewBookingService(
		bookingRepo,
		packageRepo,
		producer,
		cfg.Kafka.BookingEventsTopic,
		cfg.Booking.IDRetries,
		booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
		booking.WithNotifier(whatsapp.NewNotifier(waClient)),
	)

	if err := bootstrap.Run(ctx, cfg, bookingSvc, packageSvc, waClient); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
