package validation

import (
	"strings"
	"time"

	"github.com/rehlatours/umrahbooking/internal/domain"
)

// Rule checks one field against the whole submission snapshot and returns an
// error message, or the empty string when the field is valid.
type Rule struct {
	Field string
	Check func(b *domain.Booking, now time.Time) string
}

// schema lists every field rule in declaration order. Validation walks the
// whole list without short-circuiting so the caller gets the complete error
// set in one pass.
var schema = []Rule{
	{"name", func(b *domain.Booking, _ time.Time) string {
		if msg := checkPersonName(b.Name, "Nama"); msg != "" {
			return msg
		}
		if wordCount(b.Name) < 2 {
			return "Nama harus terdiri dari minimal 2 kata"
		}
		return ""
	}},
	{"register_date", func(b *domain.Booking, now time.Time) string {
		if b.RegisterDate.IsZero() {
			return "Tanggal pendaftaran wajib diisi"
		}
		if startOfDay(b.RegisterDate).Before(startOfDay(now)) {
			return "Tanggal pendaftaran tidak boleh di masa lalu"
		}
		return ""
	}},
	{"gender", func(b *domain.Booking, _ time.Time) string {
		if !b.Gender.Valid() {
			return "Jenis kelamin wajib dipilih"
		}
		return ""
	}},
	{"place_of_birth", func(b *domain.Booking, _ time.Time) string {
		return checkPlaceName(b.PlaceOfBirth,
			"Tempat lahir tidak valid",
			"Tempat lahir minimal 2 karakter",
			"Tempat lahir maksimal 50 karakter")
	}},
	{"birth_date", func(b *domain.Booking, now time.Time) string {
		if b.BirthDate.IsZero() {
			return "Tanggal lahir wajib diisi"
		}
		if !startOfDay(b.BirthDate).Before(startOfDay(now)) {
			return "Tanggal lahir tidak boleh di masa depan"
		}
		if ageAt(b.BirthDate, now) > 80 {
			return "Usia maksimal untuk umroh adalah 80 tahun"
		}
		return ""
	}},
	{"father_name", func(b *domain.Booking, _ time.Time) string {
		return checkPersonName(b.FatherName, "Nama ayah")
	}},
	{"mother_name", func(b *domain.Booking, _ time.Time) string {
		return checkPersonName(b.MotherName, "Nama ibu")
	}},
	{"address", func(b *domain.Booking, _ time.Time) string {
		if len(b.Address) < 10 {
			return "Alamat lengkap minimal 10 karakter"
		}
		if len(b.Address) > 300 {
			return "Alamat maksimal 300 karakter"
		}
		if wordCount(b.Address) < 3 {
			return "Alamat harus lebih detail dan jelas"
		}
		return ""
	}},
	{"city", func(b *domain.Booking, _ time.Time) string {
		return checkPlaceName(b.City,
			"Nama kota tidak valid",
			"Kota minimal 2 karakter",
			"Kota maksimal 50 karakter")
	}},
	{"province", func(b *domain.Booking, _ time.Time) string {
		return checkPlaceName(b.Province,
			"Nama provinsi tidak valid",
			"Provinsi minimal 2 karakter",
			"Provinsi maksimal 50 karakter")
	}},
	{"postal_code", func(b *domain.Booking, _ time.Time) string {
		if b.PostalCode == "" {
			return "Kode pos wajib diisi"
		}
		if !postalRegexp.MatchString(b.PostalCode) {
			return "Kode pos harus terdiri dari 5-6 digit angka"
		}
		return ""
	}},
	{"occupation", func(b *domain.Booking, _ time.Time) string {
		if len(b.Occupation) < 2 || strings.TrimSpace(b.Occupation) == "" {
			return "Pekerjaan minimal 2 karakter"
		}
		if len(b.Occupation) > 100 {
			return "Pekerjaan maksimal 100 karakter"
		}
		return ""
	}},
	{"illness", func(b *domain.Booking, _ time.Time) string {
		if b.SpecificDisease && strings.TrimSpace(b.Illness) == "" {
			return "Detail penyakit wajib diisi jika memiliki penyakit khusus"
		}
		return ""
	}},
	{"nik_number", func(b *domain.Booking, _ time.Time) string {
		if b.NIKNumber == "" {
			return "NIK wajib diisi"
		}
		if !nikRegexp.MatchString(b.NIKNumber) {
			return "NIK harus terdiri dari 16 digit angka"
		}
		if allSameDigit(b.NIKNumber) {
			return "NIK tidak valid - tidak boleh semua digit sama"
		}
		return ""
	}},
	{"passport_number", func(b *domain.Booking, _ time.Time) string {
		if b.PassportNumber == "" {
			return "Nomor paspor wajib diisi"
		}
		if len(b.PassportNumber) < 6 || len(b.PassportNumber) > 15 {
			return "Nomor paspor harus 6-15 karakter"
		}
		if !passportRegexp.MatchString(strings.ToUpper(b.PassportNumber)) {
			return "Nomor paspor hanya boleh mengandung huruf kapital dan angka"
		}
		return ""
	}},
	{"date_of_issue", func(b *domain.Booking, now time.Time) string {
		if b.DateOfIssue.IsZero() {
			return "Tanggal terbit paspor wajib diisi"
		}
		if b.DateOfIssue.After(now) {
			return "Tanggal terbit paspor tidak boleh di masa depan"
		}
		return ""
	}},
	{"expiry_date", func(b *domain.Booking, now time.Time) string {
		if b.ExpiryDate.IsZero() {
			return "Tanggal berakhir paspor wajib diisi"
		}
		if !b.ExpiryDate.After(now.AddDate(0, 6, 0)) {
			return "Paspor harus berlaku minimal 6 bulan dari sekarang"
		}
		if !b.DateOfIssue.IsZero() && !b.ExpiryDate.After(b.DateOfIssue) {
			return "Tanggal berakhir harus setelah tanggal terbit"
		}
		return ""
	}},
	{"place_of_issue", func(b *domain.Booking, _ time.Time) string {
		return checkPlaceName(b.PlaceOfIssue,
			"Tempat terbit paspor tidak valid",
			"Tempat terbit paspor minimal 2 karakter",
			"Tempat terbit paspor maksimal 50 karakter")
	}},
	{"phone_number", func(b *domain.Booking, _ time.Time) string {
		if b.PhoneNumber == "" {
			return "Nomor telepon wajib diisi"
		}
		if !checkIndonesianPhone(b.PhoneNumber) {
			return "Format nomor telepon tidak valid (contoh: 08123456789 atau +628123456789)"
		}
		return ""
	}},
	{"whatsapp_number", func(b *domain.Booking, _ time.Time) string {
		if b.WhatsappNumber == "" {
			return "Nomor WhatsApp wajib diisi"
		}
		if !checkIndonesianPhone(b.WhatsappNumber) {
			return "Format nomor WhatsApp tidak valid (contoh: 08123456789 atau +628123456789)"
		}
		return ""
	}},
	{"email", func(b *domain.Booking, _ time.Time) string {
		if b.Email == "" {
			return "Email wajib diisi"
		}
		if len(b.Email) > 255 {
			return "Email maksimal 255 karakter"
		}
		if !emailRegexp.MatchString(b.Email) {
			return "Format email tidak valid"
		}
		if !checkEmailDomain(b.Email) {
			return "Gunakan email dengan domain yang valid"
		}
		return ""
	}},
	{"emergency_contact_name", func(b *domain.Booking, _ time.Time) string {
		return checkPersonName(b.EmergencyContactName, "Nama kontak darurat")
	}},
	{"relationship", func(b *domain.Booking, _ time.Time) string {
		if !b.Relationship.Valid() {
			return "Hubungan dengan kontak darurat wajib dipilih"
		}
		return ""
	}},
	{"emergency_contact_phone", func(b *domain.Booking, _ time.Time) string {
		if b.EmergencyContactPhone == "" {
			return "Nomor telepon kontak darurat wajib diisi"
		}
		if !checkIndonesianPhone(b.EmergencyContactPhone) {
			return "Format nomor telepon kontak darurat tidak valid"
		}
		return ""
	}},
	{"mariage_status", func(b *domain.Booking, _ time.Time) string {
		if !b.MaritalStatus.Valid() {
			return "Status pernikahan wajib dipilih"
		}
		return ""
	}},
	{"umrah_package", func(b *domain.Booking, _ time.Time) string {
		if b.UmrahPackageID <= 0 {
			return "Paket umroh harus dipilih"
		}
		return ""
	}},
	{"payment_method", func(b *domain.Booking, _ time.Time) string {
		if !b.PaymentMethod.Valid() {
			return "Metode pembayaran wajib dipilih"
		}
		return ""
	}},
	{"terms_of_service", func(b *domain.Booking, _ time.Time) string {
		if !b.TermsOfService {
			return "Anda harus menyetujui syarat dan ketentuan"
		}
		return ""
	}},
}

// Validate runs every field rule against the submission and returns the full
// list of violations. An empty slice means the submission is valid.
func Validate(b *domain.Booking) []string {
	return ValidateAt(b, time.Now())
}

// ValidateAt is Validate with an explicit clock, for date-arithmetic rules.
func ValidateAt(b *domain.Booking, now time.Time) []string {
	var errs []string
	for _, rule := range schema {
		if msg := rule.Check(b, now); msg != "" {
			errs = append(errs, msg)
		}
	}
	return errs
}

// FieldErrors runs the same rules but keys each message by field name, for
// callers that re-prompt per field.
func FieldErrors(b *domain.Booking) map[string]string {
	return FieldErrorsAt(b, time.Now())
}

func FieldErrorsAt(b *domain.Booking, now time.Time) map[string]string {
	errs := make(map[string]string)
	for _, rule := range schema {
		if msg := rule.Check(b, now); msg != "" {
			errs[rule.Field] = msg
		}
	}
	return errs
}
