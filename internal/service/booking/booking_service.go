package booking

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/rehlatours/umrahbooking/internal/domain"
	"github.com/rehlatours/umrahbooking/internal/kafka"
	"github.com/rehlatours/umrahbooking/internal/pdf"
	"github.com/rehlatours/umrahbooking/internal/repository"
	"github.com/rehlatours/umrahbooking/internal/validation"
)

// ValidationError carries the full per-field error list of a rejected
// submission. Nothing is persisted when it is returned.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Messages, ", ")
}

type BookingUseCase interface {
	Submit(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	Get(ctx context.Context, bookingID string) (*domain.Booking, error)
	List(ctx context.Context) ([]domain.Booking, error)
	UpdateStatus(ctx context.Context, bookingID string, status domain.BookingStatus) (*domain.Booking, error)
	ConfirmationPDF(ctx context.Context, bookingID string) ([]byte, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

// Notifier delivers the confirmation message after a successful mutation.
// Failures are logged by the service and never reach the caller.
type Notifier interface {
	BookingChanged(ctx context.Context, booking *domain.Booking, op string) error
}

type BookingService struct {
	bookings           repository.BookingRepository
	packages           repository.PackageRepository
	producer           Producer
	notifier           Notifier
	bookingTopic       string
	notificationsTopic string
	idRetries          int
	now                func() time.Time
}

type BookingServiceOption func(*BookingService)

func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

func WithNotifier(n Notifier) BookingServiceOption {
	return func(s *BookingService) {
		s.notifier = n
	}
}

// WithClock overrides the submission clock, for tests exercising the
// date-arithmetic rules.
func WithClock(now func() time.Time) BookingServiceOption {
	return func(s *BookingService) {
		s.now = now
	}
}

func NewBookingService(
	bookings repository.BookingRepository,
	packages repository.PackageRepository,
	producer Producer,
	bookingTopic string,
	idRetries int,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		bookings:     bookings,
		packages:     packages,
		producer:     producer,
		bookingTopic: bookingTopic,
		idRetries:    idRetries,
		now:          time.Now,
	}
	if service.idRetries <= 0 {
		service.idRetries = 3
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// Submit validates and normalizes the submission, assigns the booking id and
// submission date if absent, persists the record and fires the post-commit
// notifications. Validation failure returns *ValidationError with the full
// message list and leaves nothing persisted.
func (s *BookingService) Submit(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	now := s.now()

	if errs := validation.ValidateAt(b, now); len(errs) > 0 {
		return nil, &ValidationError{Messages: errs}
	}
	validation.Normalize(b)

	pkg, err := s.packages.GetByID(ctx, b.UmrahPackageID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, &ValidationError{Messages: []string{"Paket umroh tidak ditemukan"}}
		}
		return nil, fmt.Errorf("lookup package: %w", err)
	}
	b.PackageName = pkg.Name

	if b.Status == "" {
		b.Status = domain.StatusPendingReview
	}
	generated := false
	if b.BookingID == "" {
		b.BookingID = domain.GenerateBookingID()
		generated = true
	}
	if b.SubmissionDate.IsZero() {
		b.SubmissionDate = now
	}

	// The short id space makes collisions a matter of time, so a generated
	// id is retried on its own unique violation. A caller-supplied id is not.
	for attempt := 0; ; attempt++ {
		err = s.bookings.Create(ctx, b)
		if err == nil {
			break
		}
		if errors.Is(err, domain.ErrBookingIDCollision) && generated && attempt < s.idRetries {
			b.BookingID = domain.GenerateBookingID()
			continue
		}
		if errors.Is(err, domain.ErrBookingIDCollision) {
			return nil, domain.ErrConflict
		}
		return nil, err
	}

	s.afterChange(ctx, b, "create")
	return b, nil
}

func (s *BookingService) Get(ctx context.Context, bookingID string) (*domain.Booking, error) {
	return s.bookings.GetByBookingID(ctx, bookingID)
}

// List returns every booking, newest first, for the administrative overview.
func (s *BookingService) List(ctx context.Context) ([]domain.Booking, error) {
	return s.bookings.List(ctx)
}

// UpdateStatus applies an administrative lifecycle transition. The booking id
// and submission date are never touched here.
func (s *BookingService) UpdateStatus(ctx context.Context, bookingID string, status domain.BookingStatus) (*domain.Booking, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidTransition, status)
	}

	current, err := s.bookings.GetByBookingID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !current.Status.CanTransitionTo(status) {
		return nil, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, current.Status, status)
	}

	updated, err := s.bookings.UpdateStatus(ctx, bookingID, status)
	if err != nil {
		return nil, err
	}
	updated.PackageName = current.PackageName

	s.afterChange(ctx, updated, "update")
	return updated, nil
}

func (s *BookingService) ConfirmationPDF(ctx context.Context, bookingID string) ([]byte, error) {
	b, err := s.bookings.GetByBookingID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	return pdf.Confirmation(b)
}

// afterChange runs the best-effort post-commit side effects: the event
// publish and the direct confirmation message. Neither can fail the mutation.
func (s *BookingService) afterChange(ctx context.Context, b *domain.Booking, op string) {
	eventType := "booking_created"
	if op == "update" {
		eventType = "booking_status_updated"
	}
	if err := s.publish(ctx, eventType, b); err != nil {
		log.Printf("WARNING: failed to publish %s event for booking %s: %v", eventType, b.BookingID, err)
	}

	if s.notifier != nil {
		if err := s.notifier.BookingChanged(ctx, b, op); err != nil {
			log.Printf("WARNING: failed to send confirmation for booking %s: %v", b.BookingID, err)
		}
	}
}

func (s *BookingService) publish(ctx context.Context, eventType string, b *domain.Booking) error {
	if s.producer == nil || s.bookingTopic == "" {
		return nil
	}
	event := kafka.BookingEvent{
		Type:           eventType,
		BookingID:      b.BookingID,
		Name:           b.Name,
		PhoneNumber:    b.PhoneNumber,
		WhatsappNumber: b.WhatsappNumber,
		Email:          b.Email,
		Status:         string(b.Status),
		SubmissionDate: b.SubmissionDate,
	}
	if err := s.producer.Publish(ctx, s.bookingTopic, b.BookingID, event); err != nil {
		return err
	}
	if s.notificationsTopic != "" {
		return s.producer.Publish(ctx, s.notificationsTopic, b.BookingID, event)
	}
	return nil
}

var _ BookingUseCase = (*BookingService)(nil)
