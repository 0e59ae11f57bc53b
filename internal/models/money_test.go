package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	m, err := NewMoney("125.45")
	require.NoError(t, err)
	assert.Equal(t, "125.45", m.String())
}

func TestNewMoney_Invalid(t *testing.T) {
	for _, in := range []string{"abc", "", "12,5", "-10"} {
		_, err := NewMoney(in)
		assert.ErrorIs(t, err, ErrInvalidAmount, "input %q", in)
	}
}

func TestMoney_FormatsTwoDecimals(t *testing.T) {
	m, err := NewMoney("1000")
	require.NoError(t, err)
	assert.Equal(t, "1000.00", m.String())
}

func TestMoney_Add(t *testing.T) {
	a, _ := NewMoney("10.50")
	b, _ := NewMoney("4.50")
	assert.Equal(t, "15.00", a.Add(b).String())
	// operands untouched
	assert.Equal(t, "10.50", a.String())
}

func TestMoney_Sub(t *testing.T) {
	a, _ := NewMoney("10")
	b, _ := NewMoney("4.25")
	got, err := a.Sub(b)
	require.NoError(t, err)
	assert.Equal(t, "5.75", got.String())
}

func TestMoney_Sub_NeverNegative(t *testing.T) {
	a, _ := NewMoney("4")
	b, _ := NewMoney("10")
	_, err := a.Sub(b)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidAmount))
	assert.Equal(t, "4.00", a.String())
}

func TestMoney_Compare(t *testing.T) {
	a, _ := NewMoney("10")
	b, _ := NewMoney("10.00")
	c, _ := NewMoney("10.01")
	assert.True(t, a.Equal(b))
	assert.Equal(t, -1, a.Cmp(c))
	assert.Equal(t, 1, c.Cmp(a))
}

func TestMoney_ScanValue(t *testing.T) {
	m, _ := NewMoney("600.10")
	v, err := m.Value()
	require.NoError(t, err)

	var out Money
	require.NoError(t, out.Scan(v))
	assert.True(t, m.Equal(out))

	var bad Money
	assert.Error(t, bad.Scan("-3"))
}
