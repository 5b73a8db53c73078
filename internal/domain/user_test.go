package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Run("creates valid user", func(t *testing.T) {
		user, err := NewUser("Ada Lovelace", "correct horse")
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, user.ID)
		assert.Equal(t, "Ada Lovelace", user.Name)
		assert.Equal(t, "correct horse", user.Password)
		assert.False(t, user.CreatedAt.IsZero())
		assert.Equal(t, user.CreatedAt, user.UpdatedAt)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewUser("", "correct horse")
		assert.ErrorIs(t, err, ErrEmptyUserName)
	})

	t.Run("rejects short password", func(t *testing.T) {
		_, err := NewUser("Ada", "short")
		assert.ErrorIs(t, err, ErrPasswordTooShort)
	})

	t.Run("rejects empty password", func(t *testing.T) {
		_, err := NewUser("Ada", "")
		assert.ErrorIs(t, err, ErrEmptyPassword)
	})
}

func TestUserValidate(t *testing.T) {
	t.Run("accepts stored user with hash only", func(t *testing.T) {
		user := &User{
			ID:             uuid.New(),
			Name:           "Ada",
			HashedPassword: "$2a$10$abcdefghijklmnopqrstuv",
		}
		assert.NoError(t, user.Validate())
	})

	t.Run("rejects user with neither password nor hash", func(t *testing.T) {
		user := &User{ID: uuid.New(), Name: "Ada"}
		assert.ErrorIs(t, user.Validate(), ErrEmptyPassword)
	})

	t.Run("rejects non-positive age", func(t *testing.T) {
		age := 0
		user := &User{
			ID:             uuid.New(),
			Name:           "Ada",
			HashedPassword: "hash",
			Age:            &age,
		}
		assert.ErrorIs(t, user.Validate(), ErrInvalidAge)
	})

	t.Run("validation errors wrap the common sentinel", func(t *testing.T) {
		_, err := NewUser("", "correct horse")
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestUserPatchIsEmpty(t *testing.T) {
	assert.True(t, UserPatch{}.IsEmpty())

	name := "Ada"
	assert.False(t, UserPatch{Name: &name}.IsEmpty())
}
