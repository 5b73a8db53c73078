package service

import (
	"context"
	"testing"

	"github.com/fieldstone/contacts-api/internal/domain"
	"github.com/fieldstone/contacts-api/internal/store"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type phoneServiceFixture struct {
	rec      *callRecorder
	contacts *fakeContactStore
	phones   *fakePhoneNumberStore
	tx       *fakeTxRunner
	svc      PhoneNumberService
}

func newPhoneServiceFixture(t *testing.T) *phoneServiceFixture {
	t.Helper()
	rec := &callRecorder{}
	f := &phoneServiceFixture{
		rec:      rec,
		contacts: newFakeContactStore(rec),
		phones:   newFakePhoneNumberStore(rec),
		tx:       &fakeTxRunner{rec: rec},
	}
	f.svc = NewPhoneNumberService(f.contacts, f.phones, f.tx, nil)
	return f
}

// seedPhoneContact registers a contact the fakes recognize and clears the
// call log.
func (f *phoneServiceFixture) seedPhoneContact(t *testing.T) *domain.Contact {
	t.Helper()
	contact, err := domain.NewContact(uuid.New(), "Alan Turing", false)
	require.NoError(t, err)
	f.contacts.contacts[contact.ID] = contact
	f.rec.calls = nil
	return contact
}

func (f *phoneServiceFixture) seedPhone(t *testing.T, contactID uuid.UUID, number string, primary bool) *domain.PhoneNumber {
	t.Helper()
	pn, err := domain.NewPhoneNumber(contactID, number, "", primary)
	require.NoError(t, err)
	f.phones.phones[pn.ID] = pn
	f.rec.calls = nil
	return pn
}

func TestPhoneNumberService_CreatePhoneNumber(t *testing.T) {
	t.Run("non-primary create skips lock and clear", func(t *testing.T) {
		f := newPhoneServiceFixture(t)
		contact := f.seedPhoneContact(t)

		pn, err := f.svc.CreatePhoneNumber(context.Background(), CreatePhoneNumberInput{
			ContactID:   contact.ID,
			PhoneNumber: "555-0001",
		})
		require.NoError(t, err)
		assert.False(t, pn.IsPrimary)
		assert.Equal(t, domain.PhoneTypeMobile, pn.PhoneType)
		assert.Equal(t, "5550001", pn.PhoneNumber)

		assert.Equal(t, []string{
			"tx.begin",
			"phones.Create",
			"tx.commit",
		}, f.rec.calls)
	})

	t.Run("primary create locks contact and clears existing primary first", func(t *testing.T) {
		f := newPhoneServiceFixture(t)
		contact := f.seedPhoneContact(t)
		existing := f.seedPhone(t, contact.ID, "555-0001", true)

		pn, err := f.svc.CreatePhoneNumber(context.Background(), CreatePhoneNumberInput{
			ContactID:   contact.ID,
			PhoneNumber: "555-0002",
			IsPrimary:   true,
		})
		require.NoError(t, err)
		assert.True(t, pn.IsPrimary)

		assert.Equal(t, []string{
			"tx.begin",
			"contacts.LockForUpdate",
			"phones.ClearPrimary",
			"phones.Create",
			"tx.commit",
		}, f.rec.calls)

		assert.False(t, f.phones.phones[existing.ID].IsPrimary, "old primary must be demoted")
		assert.True(t, f.phones.phones[pn.ID].IsPrimary)
	})

	t.Run("primary create against missing contact rolls back", func(t *testing.T) {
		f := newPhoneServiceFixture(t)

		_, err := f.svc.CreatePhoneNumber(context.Background(), CreatePhoneNumberInput{
			ContactID:   uuid.New(),
			PhoneNumber: "555-0001",
			IsPrimary:   true,
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, store.ErrContactNotFound)
		assert.True(t, f.tx.rolledBack)
		assert.Empty(t, f.phones.phones)
	})

	t.Run("rejects empty number without store calls", func(t *testing.T) {
		f := newPhoneServiceFixture(t)
		contact := f.seedPhoneContact(t)

		_, err := f.svc.CreatePhoneNumber(context.Background(), CreatePhoneNumberInput{
			ContactID:   contact.ID,
			PhoneNumber: "- () -",
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrValidation)
		assert.Empty(t, f.rec.calls)
	})

	t.Run("rejects unknown phone type", func(t *testing.T) {
		f := newPhoneServiceFixture(t)
		contact := f.seedPhoneContact(t)

		_, err := f.svc.CreatePhoneNumber(context.Background(), CreatePhoneNumberInput{
			ContactID:   contact.ID,
			PhoneNumber: "555-0001",
			PhoneType:   "pager",
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrInvalidPhoneType)
	})
}

func TestPhoneNumberService_UpdatePhoneNumber(t *testing.T) {
	t.Run("setting primary clears others under contact lock", func(t *testing.T) {
		f := newPhoneServiceFixture(t)
		contact := f.seedPhoneContact(t)
		current := f.seedPhone(t, contact.ID, "555-0001", true)
		target := f.seedPhone(t, contact.ID, "555-0002", false)

		primary := true
		got, err := f.svc.UpdatePhoneNumber(context.Background(), target.ID, domain.PhoneNumberPatch{
			IsPrimary: &primary,
		})
		require.NoError(t, err)
		assert.True(t, got.IsPrimary)

		assert.Equal(t, []string{
			"tx.begin",
			"phones.GetContactID",
			"contacts.LockForUpdate",
			"phones.ClearPrimaryExcept",
			"phones.Update",
			"tx.commit",
		}, f.rec.calls)

		assert.False(t, f.phones.phones[current.ID].IsPrimary)
		assert.True(t, f.phones.phones[target.ID].IsPrimary)
	})

	t.Run("unsetting primary elects no replacement", func(t *testing.T) {
		f := newPhoneServiceFixture(t)
		contact := f.seedPhoneContact(t)
		current := f.seedPhone(t, contact.ID, "555-0001", true)
		other := f.seedPhone(t, contact.ID, "555-0002", false)

		primary := false
		got, err := f.svc.UpdatePhoneNumber(context.Background(), current.ID, domain.PhoneNumberPatch{
			IsPrimary: &primary,
		})
		require.NoError(t, err)
		assert.False(t, got.IsPrimary)
		assert.False(t, f.phones.phones[other.ID].IsPrimary, "no re-election on demotion")

		assert.Equal(t, []string{
			"tx.begin",
			"phones.Update",
			"tx.commit",
		}, f.rec.calls)
	})

	t.Run("sanitizes supplied number", func(t *testing.T) {
		f := newPhoneServiceFixture(t)
		contact := f.seedPhoneContact(t)
		pn := f.seedPhone(t, contact.ID, "555-0001", false)

		raw := "+1 (555) 000-2222"
		got, err := f.svc.UpdatePhoneNumber(context.Background(), pn.ID, domain.PhoneNumberPatch{
			PhoneNumber: &raw,
		})
		require.NoError(t, err)
		assert.Equal(t, "+15550002222", got.PhoneNumber)
	})

	t.Run("unknown phone number reports not found", func(t *testing.T) {
		f := newPhoneServiceFixture(t)

		primary := true
		_, err := f.svc.UpdatePhoneNumber(context.Background(), uuid.New(), domain.PhoneNumberPatch{
			IsPrimary: &primary,
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, store.ErrPhoneNumberNotFound)
		assert.True(t, f.tx.rolledBack)
	})
}

func TestPhoneNumberService_DeletePhoneNumber(t *testing.T) {
	t.Run("deletes without re-electing a primary", func(t *testing.T) {
		f := newPhoneServiceFixture(t)
		contact := f.seedPhoneContact(t)
		primary := f.seedPhone(t, contact.ID, "555-0001", true)
		other := f.seedPhone(t, contact.ID, "555-0002", false)

		err := f.svc.DeletePhoneNumber(context.Background(), primary.ID)
		require.NoError(t, err)

		_, exists := f.phones.phones[primary.ID]
		assert.False(t, exists)
		assert.False(t, f.phones.phones[other.ID].IsPrimary)
	})

	t.Run("wraps not found", func(t *testing.T) {
		f := newPhoneServiceFixture(t)

		err := f.svc.DeletePhoneNumber(context.Background(), uuid.New())
		require.Error(t, err)
		assert.ErrorIs(t, err, store.ErrPhoneNumberNotFound)
	})
}

func TestPhoneNumberService_GetAndList(t *testing.T) {
	t.Run("get returns stored number", func(t *testing.T) {
		f := newPhoneServiceFixture(t)
		contact := f.seedPhoneContact(t)
		pn := f.seedPhone(t, contact.ID, "555-0001", false)

		got, err := f.svc.GetPhoneNumber(context.Background(), pn.ID)
		require.NoError(t, err)
		assert.Equal(t, pn.ID, got.ID)
	})

	t.Run("list for unmatched contact is empty not nil", func(t *testing.T) {
		f := newPhoneServiceFixture(t)

		numbers, err := f.svc.ListPhoneNumbersByContact(context.Background(), uuid.New())
		require.NoError(t, err)
		assert.NotNil(t, numbers)
		assert.Empty(t, numbers)
	})

	t.Run("list puts the primary first, then sorts by phone type", func(t *testing.T) {
		f := newPhoneServiceFixture(t)
		contact := f.seedPhoneContact(t)

		for _, p := range []struct {
			number    string
			phoneType domain.PhoneType
			isPrimary bool
		}{
			{"555-0001", domain.PhoneTypeWork, false},
			{"555-0002", domain.PhoneTypeMobile, false},
			{"555-0003", domain.PhoneTypeHome, true},
		} {
			pn, err := domain.NewPhoneNumber(contact.ID, p.number, p.phoneType, p.isPrimary)
			require.NoError(t, err)
			f.phones.phones[pn.ID] = pn
		}

		numbers, err := f.svc.ListPhoneNumbersByContact(context.Background(), contact.ID)
		require.NoError(t, err)
		require.Len(t, numbers, 3)

		assert.True(t, numbers[0].IsPrimary)
		assert.Equal(t, domain.PhoneTypeHome, numbers[0].PhoneType)
		assert.Equal(t, domain.PhoneTypeMobile, numbers[1].PhoneType)
		assert.Equal(t, domain.PhoneTypeWork, numbers[2].PhoneType)
	})
}
