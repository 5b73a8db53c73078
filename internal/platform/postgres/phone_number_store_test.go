package postgres

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPhoneNumberStore_ListByContactQuery(t *testing.T) {
	db := newCaptureDBTX()
	s := NewPostgresPhoneNumberStore(db, quietLogger())
	contactID := uuid.New()

	_, err := s.ListByContact(context.Background(), contactID)
	require.Error(t, err)

	assert.Contains(t, db.lastQuery, "ORDER BY is_primary DESC, phone_type ASC",
		"the primary number must list first, then sorted by type")
	require.Len(t, db.lastArgs, 1)
	assert.Equal(t, contactID, db.lastArgs[0])
}
