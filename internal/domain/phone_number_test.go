package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPhoneNumber(t *testing.T) {
	t.Run("creates valid phone number", func(t *testing.T) {
		contactID := uuid.New()
		pn, err := NewPhoneNumber(contactID, "555-0001", PhoneTypeWork, true)
		require.NoError(t, err)

		assert.Equal(t, contactID, pn.ContactID)
		assert.Equal(t, "5550001", pn.PhoneNumber)
		assert.Equal(t, PhoneTypeWork, pn.PhoneType)
		assert.True(t, pn.IsPrimary)
	})

	t.Run("empty type defaults to mobile", func(t *testing.T) {
		pn, err := NewPhoneNumber(uuid.New(), "555-0001", "", false)
		require.NoError(t, err)
		assert.Equal(t, PhoneTypeMobile, pn.PhoneType)
	})

	t.Run("rejects unknown type", func(t *testing.T) {
		_, err := NewPhoneNumber(uuid.New(), "555-0001", "pager", false)
		assert.ErrorIs(t, err, ErrInvalidPhoneType)
	})

	t.Run("rejects nil contact ID", func(t *testing.T) {
		_, err := NewPhoneNumber(uuid.Nil, "555-0001", "", false)
		assert.ErrorIs(t, err, ErrEmptyPhoneNumberContactID)
	})

	t.Run("rejects number that sanitizes to empty", func(t *testing.T) {
		_, err := NewPhoneNumber(uuid.New(), "- () -", "", false)
		assert.ErrorIs(t, err, ErrEmptyPhoneNumberValue)
	})
}

func TestSanitizePhoneNumber(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"digits pass through", "5550001", "5550001"},
		{"formatting stripped", "(555) 000-1111", "5550001111"},
		{"leading plus kept", "+1 555 000 1111", "+15550001111"},
		{"letters stripped", "555-CALL", "555"},
		{"empty stays empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizePhoneNumber(tt.input))
		})
	}
}

func TestPhoneNumberPatchIsEmpty(t *testing.T) {
	assert.True(t, PhoneNumberPatch{}.IsEmpty())

	isPrimary := false
	assert.False(t, PhoneNumberPatch{IsPrimary: &isPrimary}.IsEmpty())
}
