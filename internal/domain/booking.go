package domain

import (
	"math/rand"
	"time"
)

type BookingStatus string

const (
	StatusPendingReview BookingStatus = "pending_review"
	StatusProcessing    BookingStatus = "processing"
	StatusApproved      BookingStatus = "approved"
	StatusRejected      BookingStatus = "rejected"
	StatusCompleted     BookingStatus = "completed"
)

// statusTransitions holds the transitions an administrative actor may apply.
// Applicants never change status.
var statusTransitions = map[BookingStatus][]BookingStatus{
	StatusPendingReview: {StatusProcessing},
	StatusProcessing:    {StatusApproved, StatusRejected},
	StatusApproved:      {StatusCompleted},
}

func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s BookingStatus) Valid() bool {
	switch s {
	case StatusPendingReview, StatusProcessing, StatusApproved, StatusRejected, StatusCompleted:
		return true
	}
	return false
}

// Phrase returns the status wording used in confirmation messages,
// e.g. pending_review -> "sedang dalam tahap review".
func (s BookingStatus) Phrase() string {
	switch s {
	case StatusPendingReview:
		return "sedang dalam tahap review"
	case StatusProcessing:
		return "sedang diproses"
	case StatusApproved:
		return "telah disetujui"
	case StatusRejected:
		return "telah ditolak"
	case StatusCompleted:
		return "telah selesai"
	}
	return "diproses"
}

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

func (g Gender) Valid() bool { return g == GenderMale || g == GenderFemale }

func (g Gender) Label() string {
	if g == GenderFemale {
		return "Perempuan"
	}
	return "Laki-Laki"
}

type MaritalStatus string

const (
	MaritalSingle   MaritalStatus = "single"
	MaritalMarried  MaritalStatus = "married"
	MaritalDivorced MaritalStatus = "divorced"
)

func (m MaritalStatus) Valid() bool {
	return m == MaritalSingle || m == MaritalMarried || m == MaritalDivorced
}

func (m MaritalStatus) Label() string {
	switch m {
	case MaritalMarried:
		return "Menikah"
	case MaritalDivorced:
		return "Janda/Duda"
	}
	return "Belum Menikah"
}

type Relationship string

const (
	RelationParents  Relationship = "parents"
	RelationSpouse   Relationship = "spouse"
	RelationChildren Relationship = "children"
	RelationSibling  Relationship = "sibling"
	RelationRelative Relationship = "relative"
)

func (r Relationship) Valid() bool {
	switch r {
	case RelationParents, RelationSpouse, RelationChildren, RelationSibling, RelationRelative:
		return true
	}
	return false
}

func (r Relationship) Label() string {
	switch r {
	case RelationParents:
		return "Orang Tua"
	case RelationSpouse:
		return "Suami/Istri"
	case RelationChildren:
		return "Anak"
	case RelationSibling:
		return "Saudara"
	case RelationRelative:
		return "Kerabat"
	}
	return string(r)
}

type PaymentMethod string

const (
	PaymentFull     PaymentMethod = "lunas"
	PaymentSixtyPct PaymentMethod = "60_percent"
)

func (p PaymentMethod) Valid() bool { return p == PaymentFull || p == PaymentSixtyPct }

func (p PaymentMethod) Label() string {
	if p == PaymentSixtyPct {
		return "Cicilan 60% pertama"
	}
	return "Lunas"
}

// Booking is one applicant's Umrah registration.
type Booking struct {
	ID             int64         `json:"id"`
	BookingID      string        `json:"booking_id"`
	Status         BookingStatus `json:"status"`
	SubmissionDate time.Time     `json:"submission_date"`

	Name         string    `json:"name"`
	RegisterDate time.Time `json:"register_date"`
	Gender       Gender    `json:"gender"`
	PlaceOfBirth string    `json:"place_of_birth"`
	BirthDate    time.Time `json:"birth_date"`
	FatherName   string    `json:"father_name"`
	MotherName   string    `json:"mother_name"`

	Address    string `json:"address"`
	City       string `json:"city"`
	Province   string `json:"province"`
	PostalCode string `json:"postal_code"`
	Occupation string `json:"occupation"`

	SpecificDisease bool   `json:"specific_disease"`
	Illness         string `json:"illness,omitempty"`
	SpecialNeeds    bool   `json:"special_needs"`
	Wheelchair      bool   `json:"wheelchair"`

	NIKNumber      string    `json:"nik_number"`
	PassportNumber string    `json:"passport_number"`
	DateOfIssue    time.Time `json:"date_of_issue"`
	ExpiryDate     time.Time `json:"expiry_date"`
	PlaceOfIssue   string    `json:"place_of_issue"`

	PhoneNumber    string `json:"phone_number"`
	WhatsappNumber string `json:"whatsapp_number"`
	Email          string `json:"email"`

	HasPerformedUmrah bool `json:"has_performed_umrah"`
	HasPerformedHajj  bool `json:"has_performed_hajj"`

	EmergencyContactName  string       `json:"emergency_contact_name"`
	Relationship          Relationship `json:"relationship"`
	EmergencyContactPhone string       `json:"emergency_contact_phone"`

	MaritalStatus  MaritalStatus `json:"mariage_status"`
	UmrahPackageID int64         `json:"umrah_package"`
	PackageName    string        `json:"package_name,omitempty"`
	PaymentMethod  PaymentMethod `json:"payment_method"`
	TermsOfService bool          `json:"terms_of_service"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ContactPhone is the number confirmations go to: the WhatsApp number if
// present, otherwise the regular phone number.
func (b *Booking) ContactPhone() string {
	if b.WhatsappNumber != "" {
		return b.WhatsappNumber
	}
	return b.PhoneNumber
}

const bookingIDCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateBookingID returns a fresh id of the form RT-XXXX with four
// characters drawn from [A-Z0-9]. Uniqueness is enforced by the storage
// layer; callers regenerate on collision.
func GenerateBookingID() string {
	buf := make([]byte, 4)
	for i := range buf {
		buf[i] = bookingIDCharset[rand.Intn(len(bookingIDCharset))]
	}
	return "RT-" + string(buf)
}
