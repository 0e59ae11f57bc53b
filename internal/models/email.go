package models

import (
	"fmt"
	"regexp"
)

// ASCII local part with . _ % + -, dotted domain labels, TLD of 2+ letters.
var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@([a-zA-Z0-9-]+\.)+[a-zA-Z]{2,}$`)

// Email is a validated e-mail address. Never construct one without
// going through NewEmail.
type Email string

// NewEmail validates and returns the address, or ErrInvalidEmail.
func NewEmail(address string) (Email, error) {
	if !emailPattern.MatchString(address) {
		return "", fmt.Errorf("%w: %q", ErrInvalidEmail, address)
	}
	return Email(address), nil
}

func (e Email) String() string { return string(e) }
