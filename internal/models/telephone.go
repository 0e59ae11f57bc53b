package models

import (
	"fmt"
	"regexp"
	"strings"
)

// Optional leading +, then 8 to 20 digits/spaces/dashes/parens.
var phonePattern = regexp.MustCompile(`^\+?[\d\s\-()]{8,20}$`)

// Telephone is a validated, normalized phone number. Separators are
// stripped at construction so two spellings of the same number compare
// and store identically.
type Telephone string

// NewTelephone validates and normalizes, or fails with ErrInvalidPhone.
func NewTelephone(number string) (Telephone, error) {
	if !phonePattern.MatchString(number) {
		return "", fmt.Errorf("%w: %q", ErrInvalidPhone, number)
	}
	normalized := normalizePhone(number)
	// The pattern alone admits separator-heavy strings; the digit count
	// still has to land in a plausible range.
	digits := strings.TrimPrefix(normalized, "+")
	if len(digits) < 8 || len(digits) > 15 {
		return "", fmt.Errorf("%w: %q", ErrInvalidPhone, number)
	}
	return Telephone(normalized), nil
}

func normalizePhone(number string) string {
	var b strings.Builder
	for i, r := range number {
		switch {
		case r == '+' && i == 0:
			b.WriteRune(r)
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		}
	}
	return b.String()
}

func (t Telephone) String() string { return string(t) }
