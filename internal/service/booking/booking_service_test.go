package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rehlatours/umrahbooking/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *MockBookingRepository) GetByBookingID(ctx context.Context, bookingID string) (*domain.Booking, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) UpdateStatus(ctx context.Context, bookingID string, status domain.BookingStatus) (*domain.Booking, error) {
	args := m.Called(ctx, bookingID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) List(ctx context.Context) ([]domain.Booking, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

type MockPackageRepository struct {
	mock.Mock
}

func (m *MockPackageRepository) List(ctx context.Context) ([]domain.Package, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Package), args.Error(1)
}

func (m *MockPackageRepository) GetByID(ctx context.Context, id int64) (*domain.Package, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Package), args.Error(1)
}

type MockProducer struct {
	mock.Mock
}

func (m *MockProducer) Publish(ctx context.Context, topic, key string, value interface{}) error {
	args := m.Called(ctx, topic, key, value)
	return args.Error(0)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) BookingChanged(ctx context.Context, booking *domain.Booking, op string) error {
	args := m.Called(ctx, booking, op)
	return args.Error(0)
}

var testNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func validSubmission() *domain.Booking {
	return &domain.Booking{
		Name:                  "Ahmad Sulaiman",
		RegisterDate:          testNow,
		Gender:                domain.GenderMale,
		PlaceOfBirth:          "Jakarta",
		BirthDate:             time.Date(1985, 3, 20, 0, 0, 0, 0, time.UTC),
		FatherName:            "Abdullah Rahman",
		MotherName:            "Siti Aminah",
		Address:               "Jl. Merdeka No. 123 Jakarta Pusat",
		City:                  "Jakarta",
		Province:              "DKI Jakarta",
		PostalCode:            "12345",
		Occupation:            "Software Engineer",
		NIKNumber:             "3171012003850001",
		PassportNumber:        "A1234567",
		DateOfIssue:           time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		ExpiryDate:            time.Date(2028, 1, 1, 0, 0, 0, 0, time.UTC),
		PlaceOfIssue:          "Jakarta",
		PhoneNumber:           "081234567890",
		WhatsappNumber:        "081234567890",
		Email:                 "ahmad@gmail.com",
		EmergencyContactName:  "Fatimah Abdullah",
		Relationship:          domain.RelationSpouse,
		EmergencyContactPhone: "081987654321",
		MaritalStatus:         domain.MaritalMarried,
		UmrahPackageID:        1,
		PaymentMethod:         domain.PaymentFull,
		TermsOfService:        true,
	}
}

func testPackage() *domain.Package {
	return &domain.Package{ID: 1, Name: "Paket Umrah Premium 14 Hari"}
}

func newService(bookings *MockBookingRepository, pkgs *MockPackageRepository, producer *MockProducer, notifier *MockNotifier) *BookingService {
	opts := []BookingServiceOption{
		WithNotificationsTopic("notifications"),
		WithClock(func() time.Time { return testNow }),
	}
	if notifier != nil {
		opts = append(opts, WithNotifier(notifier))
	}
	return NewBookingService(bookings, pkgs, producer, "bookings", 3, opts...)
}

func TestSubmit_Success(t *testing.T) {
	bookings := &MockBookingRepository{}
	pkgs := &MockPackageRepository{}
	producer := &MockProducer{}
	notifier := &MockNotifier{}

	pkgs.On("GetByID", mock.Anything, int64(1)).Return(testPackage(), nil)
	bookings.On("Create", mock.Anything, mock.AnythingOfType("*domain.Booking")).Return(nil)
	producer.On("Publish", mock.Anything, "bookings", mock.Anything, mock.Anything).Return(nil)
	producer.On("Publish", mock.Anything, "notifications", mock.Anything, mock.Anything).Return(nil)
	notifier.On("BookingChanged", mock.Anything, mock.Anything, "create").Return(nil)

	svc := newService(bookings, pkgs, producer, notifier)
	created, err := svc.Submit(context.Background(), validSubmission())

	assert.NoError(t, err)
	assert.Regexp(t, `^RT-[A-Z0-9]{4}$`, created.BookingID)
	assert.Equal(t, domain.StatusPendingReview, created.Status)
	assert.Equal(t, testNow, created.SubmissionDate)
	assert.Equal(t, "Paket Umrah Premium 14 Hari", created.PackageName)
	bookings.AssertExpectations(t)
	producer.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestSubmit_NormalizesBeforePersist(t *testing.T) {
	bookings := &MockBookingRepository{}
	pkgs := &MockPackageRepository{}
	producer := &MockProducer{}

	pkgs.On("GetByID", mock.Anything, int64(1)).Return(testPackage(), nil)
	bookings.On("Create", mock.Anything, mock.MatchedBy(func(b *domain.Booking) bool {
		return b.Name == "Ahmad Sulaiman" && b.Email == "ahmad@gmail.com" && b.PassportNumber == "A1234567"
	})).Return(nil)
	producer.On("Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	input := validSubmission()
	input.Name = "Ahmad   Sulaiman"
	input.Email = "Ahmad@GMAIL.com"
	input.PassportNumber = "a1234567"

	svc := newService(bookings, pkgs, producer, nil)
	_, err := svc.Submit(context.Background(), input)

	assert.NoError(t, err)
	bookings.AssertExpectations(t)
}

func TestSubmit_ValidatesRawInputBeforeNormalize(t *testing.T) {
	bookings := &MockBookingRepository{}
	pkgs := &MockPackageRepository{}

	input := validSubmission()
	input.Email = " Ahmad@GMAIL.com "

	svc := newService(bookings, pkgs, &MockProducer{}, nil)
	created, err := svc.Submit(context.Background(), input)

	assert.Nil(t, created)
	var vErr *ValidationError
	assert.ErrorAs(t, err, &vErr)
	assert.Equal(t, []string{"Format email tidak valid"}, vErr.Messages)
	bookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSubmit_ValidationFailureNothingPersisted(t *testing.T) {
	bookings := &MockBookingRepository{}
	pkgs := &MockPackageRepository{}
	producer := &MockProducer{}

	input := validSubmission()
	input.NIKNumber = "1111111111111111"

	svc := newService(bookings, pkgs, producer, nil)
	created, err := svc.Submit(context.Background(), input)

	assert.Nil(t, created)
	var vErr *ValidationError
	assert.ErrorAs(t, err, &vErr)
	assert.Equal(t, []string{"NIK tidak valid - tidak boleh semua digit sama"}, vErr.Messages)
	bookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	producer.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmit_TermsNotAccepted(t *testing.T) {
	bookings := &MockBookingRepository{}
	pkgs := &MockPackageRepository{}

	input := validSubmission()
	input.TermsOfService = false

	svc := newService(bookings, pkgs, &MockProducer{}, nil)
	created, err := svc.Submit(context.Background(), input)

	assert.Nil(t, created)
	var vErr *ValidationError
	assert.ErrorAs(t, err, &vErr)
	assert.Equal(t, []string{"Anda harus menyetujui syarat dan ketentuan"}, vErr.Messages)
	bookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSubmit_UnknownPackage(t *testing.T) {
	bookings := &MockBookingRepository{}
	pkgs := &MockPackageRepository{}

	pkgs.On("GetByID", mock.Anything, int64(1)).Return(nil, domain.ErrNotFound)

	svc := newService(bookings, pkgs, &MockProducer{}, nil)
	created, err := svc.Submit(context.Background(), validSubmission())

	assert.Nil(t, created)
	var vErr *ValidationError
	assert.ErrorAs(t, err, &vErr)
	assert.Equal(t, []string{"Paket umroh tidak ditemukan"}, vErr.Messages)
	bookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSubmit_NotificationFailureStillSucceeds(t *testing.T) {
	bookings := &MockBookingRepository{}
	pkgs := &MockPackageRepository{}
	producer := &MockProducer{}
	notifier := &MockNotifier{}

	pkgs.On("GetByID", mock.Anything, int64(1)).Return(testPackage(), nil)
	bookings.On("Create", mock.Anything, mock.Anything).Return(nil)
	producer.On("Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("broker unreachable"))
	notifier.On("BookingChanged", mock.Anything, mock.Anything, "create").Return(errors.New("whatsapp api configuration missing"))

	svc := newService(bookings, pkgs, producer, notifier)
	created, err := svc.Submit(context.Background(), validSubmission())

	assert.NoError(t, err)
	assert.NotNil(t, created)
	notifier.AssertExpectations(t)
}

func TestSubmit_RetriesGeneratedIDOnCollision(t *testing.T) {
	bookings := &MockBookingRepository{}
	pkgs := &MockPackageRepository{}
	producer := &MockProducer{}

	pkgs.On("GetByID", mock.Anything, int64(1)).Return(testPackage(), nil)
	bookings.On("Create", mock.Anything, mock.Anything).Return(domain.ErrBookingIDCollision).Twice()
	bookings.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
	producer.On("Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	svc := newService(bookings, pkgs, producer, nil)
	created, err := svc.Submit(context.Background(), validSubmission())

	assert.NoError(t, err)
	assert.Regexp(t, `^RT-[A-Z0-9]{4}$`, created.BookingID)
	bookings.AssertNumberOfCalls(t, "Create", 3)
}

func TestSubmit_ConflictOnUniqueFields(t *testing.T) {
	bookings := &MockBookingRepository{}
	pkgs := &MockPackageRepository{}

	pkgs.On("GetByID", mock.Anything, int64(1)).Return(testPackage(), nil)
	bookings.On("Create", mock.Anything, mock.Anything).Return(domain.ErrConflict)

	svc := newService(bookings, pkgs, &MockProducer{}, nil)
	created, err := svc.Submit(context.Background(), validSubmission())

	assert.Nil(t, created)
	assert.ErrorIs(t, err, domain.ErrConflict)
	bookings.AssertNumberOfCalls(t, "Create", 1)
}

func TestList(t *testing.T) {
	bookings := &MockBookingRepository{}
	bookings.On("List", mock.Anything).Return([]domain.Booking{
		{BookingID: "RT-A1B2"},
		{BookingID: "RT-C3D4"},
	}, nil)

	svc := newService(bookings, &MockPackageRepository{}, &MockProducer{}, nil)
	got, err := svc.List(context.Background())

	assert.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, "RT-A1B2", got[0].BookingID)
}

func TestUpdateStatus_ValidTransition(t *testing.T) {
	bookings := &MockBookingRepository{}
	pkgs := &MockPackageRepository{}
	producer := &MockProducer{}
	notifier := &MockNotifier{}

	current := validSubmission()
	current.BookingID = "RT-A1B2"
	current.Status = domain.StatusPendingReview
	updated := *current
	updated.Status = domain.StatusProcessing

	bookings.On("GetByBookingID", mock.Anything, "RT-A1B2").Return(current, nil)
	bookings.On("UpdateStatus", mock.Anything, "RT-A1B2", domain.StatusProcessing).Return(&updated, nil)
	producer.On("Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	notifier.On("BookingChanged", mock.Anything, mock.Anything, "update").Return(nil)

	svc := newService(bookings, pkgs, producer, notifier)
	got, err := svc.UpdateStatus(context.Background(), "RT-A1B2", domain.StatusProcessing)

	assert.NoError(t, err)
	assert.Equal(t, domain.StatusProcessing, got.Status)
	assert.Equal(t, "RT-A1B2", got.BookingID)
	notifier.AssertExpectations(t)
}

func TestUpdateStatus_InvalidTransition(t *testing.T) {
	bookings := &MockBookingRepository{}
	pkgs := &MockPackageRepository{}

	current := validSubmission()
	current.BookingID = "RT-A1B2"
	current.Status = domain.StatusPendingReview

	bookings.On("GetByBookingID", mock.Anything, "RT-A1B2").Return(current, nil)

	svc := newService(bookings, pkgs, &MockProducer{}, nil)
	got, err := svc.UpdateStatus(context.Background(), "RT-A1B2", domain.StatusCompleted)

	assert.Nil(t, got)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	bookings.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateStatus_UnknownStatus(t *testing.T) {
	svc := newService(&MockBookingRepository{}, &MockPackageRepository{}, &MockProducer{}, nil)
	got, err := svc.UpdateStatus(context.Background(), "RT-A1B2", domain.BookingStatus("bogus"))

	assert.Nil(t, got)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}
