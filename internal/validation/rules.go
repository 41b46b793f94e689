package validation

import (
	"regexp"
	"strings"
	"time"
)

var (
	nameRegexp     = regexp.MustCompile(`^[a-zA-Z\s.,'-]+$`)
	nikRegexp      = regexp.MustCompile(`^\d{16}$`)
	passportRegexp = regexp.MustCompile(`^[A-Z0-9]+$`)
	phoneRegexp    = regexp.MustCompile(`^(\+62|62|0)[8-9][0-9]{7,12}$`)
	postalRegexp   = regexp.MustCompile(`^\d{5,6}$`)
	emailRegexp    = regexp.MustCompile(`^[^\s@]+@[^\s@]+$`)
)

// emailDomains is the plausibility allow-list for dot-less domains. A domain
// containing a dot always passes, so in practice this almost never rejects.
var emailDomains = []string{
	"gmail.com",
	"yahoo.com",
	"outlook.com",
	"hotmail.com",
	"icloud.com",
}

// checkPersonName validates a full-name style field: 3-100 chars of
// letters/space/.,'- . Returns the empty string when valid.
func checkPersonName(value, label string) string {
	if len(value) < 3 {
		return label + " minimal 3 karakter"
	}
	if len(value) > 100 {
		return label + " maksimal 100 karakter"
	}
	if !nameRegexp.MatchString(value) {
		return label + " hanya boleh mengandung huruf dan tanda baca umum"
	}
	return ""
}

// checkPlaceName validates a place-style field: 2-50 chars, same character
// set as names, no word-count rule.
func checkPlaceName(value, invalidMsg string, minMsg, maxMsg string) string {
	if len(value) < 2 {
		return minMsg
	}
	if len(value) > 50 {
		return maxMsg
	}
	if !nameRegexp.MatchString(value) {
		return invalidMsg
	}
	return ""
}

func wordCount(value string) int {
	return len(strings.Fields(value))
}

// allSameDigit reports whether every character of a non-empty string equals
// the first one. Used as the trivial/fake NIK detector.
func allSameDigit(value string) bool {
	for i := 1; i < len(value); i++ {
		if value[i] != value[0] {
			return false
		}
	}
	return len(value) > 0
}

func checkIndonesianPhone(value string) bool {
	stripped := strings.Join(strings.Fields(value), "")
	return phoneRegexp.MatchString(stripped)
}

func checkEmailDomain(value string) bool {
	at := strings.LastIndex(value, "@")
	if at < 0 {
		return false
	}
	domain := strings.ToLower(value[at+1:])
	for _, d := range emailDomains {
		if domain == d {
			return true
		}
	}
	return strings.Contains(domain, ".")
}

// startOfDay truncates a time to day granularity in its own location.
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// ageAt computes full years between birth and now, accounting for month/day
// rollover rather than raw year subtraction.
func ageAt(birth, now time.Time) int {
	age := now.Year() - birth.Year()
	if now.Month() < birth.Month() || (now.Month() == birth.Month() && now.Day() < birth.Day()) {
		age--
	}
	return age
}
