package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rehlatours/umrahbooking/internal/domain"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	GetByBookingID(ctx context.Context, bookingID string) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, bookingID string, status domain.BookingStatus) (*domain.Booking, error)
	List(ctx context.Context) ([]domain.Booking, error)
}

type PGBookingRepository struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) BookingRepository {
	return &PGBookingRepository{db: db}
}

const bookingColumns = `b.id, b.booking_id, b.status, b.submission_date,
	b.name, b.register_date, b.gender, b.place_of_birth, b.birth_date, b.father_name, b.mother_name,
	b.address, b.city, b.province, b.postal_code, b.occupation,
	b.specific_disease, b.illness, b.special_needs, b.wheelchair,
	b.nik_number, b.passport_number, b.date_of_issue, b.expiry_date, b.place_of_issue,
	b.phone_number, b.whatsapp_number, b.email,
	b.has_performed_umrah, b.has_performed_hajj,
	b.emergency_contact_name, b.relationship, b.emergency_contact_phone,
	b.mariage_status, b.umrah_package_id, b.payment_method, b.terms_of_service,
	b.created_at, b.updated_at`

func scanBooking(row pgx.Row, b *domain.Booking) error {
	return row.Scan(
		&b.ID, &b.BookingID, &b.Status, &b.SubmissionDate,
		&b.Name, &b.RegisterDate, &b.Gender, &b.PlaceOfBirth, &b.BirthDate, &b.FatherName, &b.MotherName,
		&b.Address, &b.City, &b.Province, &b.PostalCode, &b.Occupation,
		&b.SpecificDisease, &b.Illness, &b.SpecialNeeds, &b.Wheelchair,
		&b.NIKNumber, &b.PassportNumber, &b.DateOfIssue, &b.ExpiryDate, &b.PlaceOfIssue,
		&b.PhoneNumber, &b.WhatsappNumber, &b.Email,
		&b.HasPerformedUmrah, &b.HasPerformedHajj,
		&b.EmergencyContactName, &b.Relationship, &b.EmergencyContactPhone,
		&b.MaritalStatus, &b.UmrahPackageID, &b.PaymentMethod, &b.TermsOfService,
		&b.CreatedAt, &b.UpdatedAt,
	)
}

func (r *PGBookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	err := r.db.QueryRow(ctx, `INSERT INTO bookings (
		booking_id, status, submission_date,
		name, register_date, gender, place_of_birth, birth_date, father_name, mother_name,
		address, city, province, postal_code, occupation,
		specific_disease, illness, special_needs, wheelchair,
		nik_number, passport_number, date_of_issue, expiry_date, place_of_issue,
		phone_number, whatsapp_number, email,
		has_performed_umrah, has_performed_hajj,
		emergency_contact_name, relationship, emergency_contact_phone,
		mariage_status, umrah_package_id, payment_method, terms_of_service)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,
			$21,$22,$23,$24,$25,$26,$27,$28,$29,$30,$31,$32,$33,$34,$35,$36)
		RETURNING id, created_at, updated_at`,
		b.BookingID, b.Status, b.SubmissionDate,
		b.Name, b.RegisterDate, b.Gender, b.PlaceOfBirth, b.BirthDate, b.FatherName, b.MotherName,
		b.Address, b.City, b.Province, b.PostalCode, b.Occupation,
		b.SpecificDisease, b.Illness, b.SpecialNeeds, b.Wheelchair,
		b.NIKNumber, b.PassportNumber, b.DateOfIssue, b.ExpiryDate, b.PlaceOfIssue,
		b.PhoneNumber, b.WhatsappNumber, b.Email,
		b.HasPerformedUmrah, b.HasPerformedHajj,
		b.EmergencyContactName, b.Relationship, b.EmergencyContactPhone,
		b.MaritalStatus, b.UmrahPackageID, b.PaymentMethod, b.TermsOfService,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return classifyUniqueViolation(err)
	}
	return nil
}

// classifyUniqueViolation maps a unique-constraint failure onto the domain
// sentinels. A booking_id collision gets its own sentinel so the service can
// regenerate the id; everything else is a caller-facing conflict.
func classifyUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "23505" {
		return err
	}
	if pgErr.ConstraintName == "bookings_booking_id_key" {
		return fmt.Errorf("%w: %s", domain.ErrBookingIDCollision, pgErr.ConstraintName)
	}
	return fmt.Errorf("%w: %s", domain.ErrConflict, pgErr.ConstraintName)
}

func (r *PGBookingRepository) GetByBookingID(ctx context.Context, bookingID string) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `SELECT `+bookingColumns+`, COALESCE(p.name, '')
		FROM bookings b LEFT JOIN packages p ON p.id = b.umrah_package_id
		WHERE b.booking_id=$1`, bookingID)
	var b domain.Booking
	if err := row.Scan(
		&b.ID, &b.BookingID, &b.Status, &b.SubmissionDate,
		&b.Name, &b.RegisterDate, &b.Gender, &b.PlaceOfBirth, &b.BirthDate, &b.FatherName, &b.MotherName,
		&b.Address, &b.City, &b.Province, &b.PostalCode, &b.Occupation,
		&b.SpecificDisease, &b.Illness, &b.SpecialNeeds, &b.Wheelchair,
		&b.NIKNumber, &b.PassportNumber, &b.DateOfIssue, &b.ExpiryDate, &b.PlaceOfIssue,
		&b.PhoneNumber, &b.WhatsappNumber, &b.Email,
		&b.HasPerformedUmrah, &b.HasPerformedHajj,
		&b.EmergencyContactName, &b.Relationship, &b.EmergencyContactPhone,
		&b.MaritalStatus, &b.UmrahPackageID, &b.PaymentMethod, &b.TermsOfService,
		&b.CreatedAt, &b.UpdatedAt, &b.PackageName,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (r *PGBookingRepository) UpdateStatus(ctx context.Context, bookingID string, status domain.BookingStatus) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `UPDATE bookings b SET status=$1, updated_at=now()
		WHERE b.booking_id=$2 RETURNING `+bookingColumns, status, bookingID)
	var b domain.Booking
	if err := scanBooking(row, &b); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (r *PGBookingRepository) List(ctx context.Context) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `SELECT `+bookingColumns+` FROM bookings b ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := make([]domain.Booking, 0)
	for rows.Next() {
		var b domain.Booking
		if err := scanBooking(rows, &b); err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

var _ BookingRepository = (*PGBookingRepository)(nil)
