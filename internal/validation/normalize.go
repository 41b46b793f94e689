package validation

import (
	"strings"

	"github.com/rehlatours/umrahbooking/internal/domain"
)

// collapseSpaces trims the ends and collapses internal whitespace runs to a
// single space.
func collapseSpaces(value string) string {
	return strings.Join(strings.Fields(value), " ")
}

// stripSpaces removes all whitespace.
func stripSpaces(value string) string {
	return strings.Join(strings.Fields(value), "")
}

// Normalize canonicalizes a schema-valid submission in place before it is
// persisted. Applying it twice yields the same result as applying it once.
func Normalize(b *domain.Booking) {
	b.Name = collapseSpaces(b.Name)
	b.FatherName = collapseSpaces(b.FatherName)
	b.MotherName = collapseSpaces(b.MotherName)
	b.PlaceOfBirth = collapseSpaces(b.PlaceOfBirth)
	b.Address = collapseSpaces(b.Address)
	b.City = collapseSpaces(b.City)
	b.Province = collapseSpaces(b.Province)
	b.Occupation = collapseSpaces(b.Occupation)
	b.PlaceOfIssue = collapseSpaces(b.PlaceOfIssue)
	b.EmergencyContactName = collapseSpaces(b.EmergencyContactName)

	b.PhoneNumber = stripSpaces(b.PhoneNumber)
	b.WhatsappNumber = stripSpaces(b.WhatsappNumber)
	b.EmergencyContactPhone = stripSpaces(b.EmergencyContactPhone)

	b.Email = strings.ToLower(strings.TrimSpace(b.Email))
	b.PassportNumber = strings.ToUpper(strings.TrimSpace(b.PassportNumber))
	b.PostalCode = strings.TrimSpace(b.PostalCode)
	b.NIKNumber = strings.TrimSpace(b.NIKNumber)
	b.Illness = strings.TrimSpace(b.Illness)
	if !b.SpecificDisease {
		b.Illness = ""
	}
}
