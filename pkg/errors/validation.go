package errors

import (
	"strings"
	"unicode"
)

// MaxEventIDLength bounds event identifiers used as session keys.
const MaxEventIDLength = 256

// ValidateEventID validates an event identifier.
// IDs key the interaction session table and the layout cache, so they must be
// non-empty printable strings:
//   - No empty IDs
//   - No control characters or null bytes
//   - No leading or trailing whitespace
//   - Maximum length of 256 characters
func ValidateEventID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "event id cannot be empty")
	}

	if len(id) > MaxEventIDLength {
		return New(ErrCodeInvalidInput, "event id too long (max %d characters)", MaxEventIDLength)
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "event id contains invalid control characters")
		}
	}

	if strings.TrimSpace(id) != id {
		return New(ErrCodeInvalidInput, "event id %q has surrounding whitespace", id)
	}

	return nil
}

// ValidateMonthIndex checks that m is a zero-based month index (0 = January).
func ValidateMonthIndex(m int) error {
	if m < 0 || m > 11 {
		return New(ErrCodeConfiguration, "invalid month index %d (must be 0-11)", m)
	}
	return nil
}

// ValidatePageSize checks that size is a usable months-per-page count.
func ValidatePageSize(size int) error {
	if size <= 0 {
		return New(ErrCodeConfiguration, "invalid page size %d (must be >= 1)", size)
	}
	return nil
}
