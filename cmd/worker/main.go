package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rehlatours/umrahbooking/config"
	"github.com/rehlatours/umrahbooking/internal/kafka"
	"github.com/rehlatours/umrahbooking/internal/pdf"
	"github.com/rehlatours/umrahbooking/internal/repository"
	"github.com/rehlatours/umrahbooking/internal/whatsapp"
	kafkaGo "github.com/segmentio/kafka-go"
)

// The worker consumes booking events and sends the confirmation PDF as a
// WhatsApp attachment, off the request path. A failed send is logged and the
// consumer moves on.
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

	waClient := whatsapp.NewClient(whatsapp.Config{
		Endpoint: cfg.WhatsApp.Endpoint,
		Username: cfg.WhatsApp.Username,
		Password: cfg.WhatsApp.Password,
	})
	if !waClient.Configured() {
		log.Printf("WARNING: whatsapp api configuration missing, pdf dispatch disabled")
	}

	bookingRepo := repository.NewBookingRepository(pool)

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.NotificationsTopic)
	defer consumer.Close()

	err = consumer.Consume(ctx, func(ctx context.Context, msg kafkaGo.Message) error {
		var event kafka.BookingEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Printf("decode event error: %v", err)
			return nil
		}

		if err := dispatchPDF(ctx, bookingRepo, waClient, event); err != nil {
			log.Printf("pdf dispatch for booking %s failed: %v", event.BookingID, err)
		}
		return nil
	})
	if err != nil && ctx.Err() == nil {
		log.Fatalf("consumer stopped: %v", err)
	}
}

func dispatchPDF(ctx context.Context, repo repository.BookingRepository, client *whatsapp.Client, event kafka.BookingEvent) error {
	if !client.Configured() {
		return whatsapp.ErrNotConfigured
	}

	booking, err := repo.GetByBookingID(ctx, event.BookingID)
	if err != nil {
		return fmt.Errorf("load booking: %w", err)
	}

	phone := booking.ContactPhone()
	if phone == "" {
		return nil
	}

	buf, err := pdf.Confirmation(booking)
	if err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}

	fileName := fmt.Sprintf("confirmation-%s.pdf", booking.BookingID)
	caption := fmt.Sprintf("Konfirmasi pendaftaran umroh Anda (%s).", booking.BookingID)
	return client.SendFile(ctx, whatsapp.NormalizePhone(phone), caption, fileName, buf, false, 0)
}
