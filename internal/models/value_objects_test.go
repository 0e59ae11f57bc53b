package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEmail(t *testing.T) {
	valid := []string{
		"test@test.fr",
		"first.last@example.com",
		"a_b%c+d-e@sub.domain.org",
	}
	for _, in := range valid {
		e, err := NewEmail(in)
		require.NoError(t, err, "input %q", in)
		assert.Equal(t, in, e.String())
		// round-trip: reconstructing from its own string form succeeds
		again, err := NewEmail(e.String())
		require.NoError(t, err)
		assert.Equal(t, e, again)
	}
}

func TestNewEmail_Invalid(t *testing.T) {
	invalid := []string{
		"test@test", // missing TLD
		"test@.fr",
		"@example.com",
		"plainaddress",
		"user@domain.f", // TLD too short
		"",
	}
	for _, in := range invalid {
		_, err := NewEmail(in)
		assert.ErrorIs(t, err, ErrInvalidEmail, "input %q", in)
	}
}

func TestNewTelephone(t *testing.T) {
	tel, err := NewTelephone("+33 6 12 34 56 78")
	require.NoError(t, err)
	assert.Equal(t, "+33612345678", tel.String())

	// differently-spelled same number normalizes to the same value
	other, err := NewTelephone("+33-6-12-34-56-78")
	require.NoError(t, err)
	assert.Equal(t, tel, other)

	national, err := NewTelephone("02 45 78 79 80")
	require.NoError(t, err)
	assert.Equal(t, "0245787980", national.String())
}

func TestNewTelephone_Invalid(t *testing.T) {
	invalid := []string{
		"0245787",             // too short
		"12345678901234567890123", // too long
		"call-me-maybe",
		"",
		"+33 (0) abc",
	}
	for _, in := range invalid {
		_, err := NewTelephone(in)
		assert.ErrorIs(t, err, ErrInvalidPhone, "input %q", in)
	}
}
