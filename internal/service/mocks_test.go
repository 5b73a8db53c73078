package service

import (
	"context"
	"database/sql"
	"errors"
	"sort"

	"github.com/fieldstone/contacts-api/internal/domain"
	"github.com/fieldstone/contacts-api/internal/service/auth"
	"github.com/fieldstone/contacts-api/internal/store"
	"github.com/google/uuid"
)

// callRecorder collects the call names of every fake in a scenario so tests
// can assert on cross-store ordering (clear before create, phones before
// contacts in cascades).
type callRecorder struct {
	calls []string
}

func (r *callRecorder) record(name string) {
	r.calls = append(r.calls, name)
}

// fakeTxRunner runs the callback with a nil transaction. The fake stores'
// WithTx(nil) returns the store itself, so transactional code paths exercise
// the same fakes.
type fakeTxRunner struct {
	rec        *callRecorder
	beginErr   error
	rolledBack bool
}

func (r *fakeTxRunner) RunInTransaction(ctx context.Context, fn store.TxFn) error {
	if r.beginErr != nil {
		return r.beginErr
	}
	if r.rec != nil {
		r.rec.record("tx.begin")
	}
	err := fn(ctx, nil)
	if err != nil {
		r.rolledBack = true
		if r.rec != nil {
			r.rec.record("tx.rollback")
		}
		return err
	}
	if r.rec != nil {
		r.rec.record("tx.commit")
	}
	return nil
}

type fakeUserStore struct {
	rec *callRecorder

	users map[uuid.UUID]*domain.User

	createErr error
	updateErr error
	deleteErr error
}

func newFakeUserStore(rec *callRecorder) *fakeUserStore {
	return &fakeUserStore{rec: rec, users: make(map[uuid.UUID]*domain.User)}
}

func (s *fakeUserStore) Create(ctx context.Context, user *domain.User) error {
	s.rec.record("users.Create")
	if s.createErr != nil {
		return s.createErr
	}
	s.users[user.ID] = user
	return nil
}

func (s *fakeUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	s.rec.record("users.GetByID")
	user, ok := s.users[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	return user, nil
}

func (s *fakeUserStore) Update(ctx context.Context, id uuid.UUID, patch domain.UserPatch) (*domain.User, error) {
	s.rec.record("users.Update")
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	if patch.IsEmpty() {
		return nil, store.ErrNoFieldsToUpdate
	}
	user, ok := s.users[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	if patch.Name != nil {
		user.Name = *patch.Name
	}
	if patch.HashedPassword != nil {
		user.HashedPassword = *patch.HashedPassword
	}
	if patch.Age != nil {
		user.Age = patch.Age
	}
	if patch.MAC != nil {
		user.MAC = patch.MAC
	}
	if patch.PhoneNumber != nil {
		user.PhoneNumber = patch.PhoneNumber
	}
	if patch.Image != nil {
		user.Image = patch.Image
	}
	return user, nil
}

func (s *fakeUserStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.rec.record("users.Delete")
	if s.deleteErr != nil {
		return s.deleteErr
	}
	if _, ok := s.users[id]; !ok {
		return store.ErrUserNotFound
	}
	delete(s.users, id)
	return nil
}

func (s *fakeUserStore) WithTx(tx *sql.Tx) store.UserStore { return s }

type fakeContactStore struct {
	rec *callRecorder

	contacts map[uuid.UUID]*domain.Contact

	createErr error
	lockErr   error
	deleteErr error
}

func newFakeContactStore(rec *callRecorder) *fakeContactStore {
	return &fakeContactStore{rec: rec, contacts: make(map[uuid.UUID]*domain.Contact)}
}

func (s *fakeContactStore) Create(ctx context.Context, contact *domain.Contact) error {
	s.rec.record("contacts.Create")
	if s.createErr != nil {
		return s.createErr
	}
	s.contacts[contact.ID] = contact
	return nil
}

func (s *fakeContactStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Contact, error) {
	s.rec.record("contacts.GetByID")
	contact, ok := s.contacts[id]
	if !ok {
		return nil, store.ErrContactNotFound
	}
	return contact, nil
}

func (s *fakeContactStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Contact, error) {
	s.rec.record("contacts.ListByUser")
	out := []*domain.Contact{}
	for _, c := range s.contacts {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	// same ordering as the real store: is_emergency DESC, name ASC
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].IsEmergency != out[j].IsEmergency {
			return out[i].IsEmergency
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (s *fakeContactStore) Update(ctx context.Context, id uuid.UUID, patch domain.ContactPatch) (*domain.Contact, error) {
	s.rec.record("contacts.Update")
	contact, ok := s.contacts[id]
	if !ok {
		return nil, store.ErrContactNotFound
	}
	if patch.Name != nil {
		contact.Name = *patch.Name
	}
	if patch.IsEmergency != nil {
		contact.IsEmergency = *patch.IsEmergency
	}
	if patch.Relationship != nil {
		contact.Relationship = patch.Relationship
	}
	if patch.Image != nil {
		contact.Image = patch.Image
	}
	return contact, nil
}

func (s *fakeContactStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.rec.record("contacts.Delete")
	if s.deleteErr != nil {
		return s.deleteErr
	}
	if _, ok := s.contacts[id]; !ok {
		return store.ErrContactNotFound
	}
	delete(s.contacts, id)
	return nil
}

func (s *fakeContactStore) DeleteByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	s.rec.record("contacts.DeleteByUser")
	var n int64
	for id, c := range s.contacts {
		if c.UserID == userID {
			delete(s.contacts, id)
			n++
		}
	}
	return n, nil
}

func (s *fakeContactStore) LockForUpdate(ctx context.Context, id uuid.UUID) error {
	s.rec.record("contacts.LockForUpdate")
	if s.lockErr != nil {
		return s.lockErr
	}
	if _, ok := s.contacts[id]; !ok {
		return store.ErrContactNotFound
	}
	return nil
}

func (s *fakeContactStore) WithTx(tx *sql.Tx) store.ContactStore { return s }

type fakePhoneNumberStore struct {
	rec *callRecorder

	phones map[uuid.UUID]*domain.PhoneNumber
	// contact owners recognized for FK checks on Create; nil disables the check
	knownContacts map[uuid.UUID]bool

	createErr   error
	updateErr   error
	deleteErr   error
	failAtCall  int // fail the Nth Create call (1-based); 0 disables
	createCalls int
}

func newFakePhoneNumberStore(rec *callRecorder) *fakePhoneNumberStore {
	return &fakePhoneNumberStore{rec: rec, phones: make(map[uuid.UUID]*domain.PhoneNumber)}
}

func (s *fakePhoneNumberStore) Create(ctx context.Context, pn *domain.PhoneNumber) error {
	s.rec.record("phones.Create")
	s.createCalls++
	if s.failAtCall != 0 && s.createCalls == s.failAtCall {
		return errors.New("insert failed")
	}
	if s.createErr != nil {
		return s.createErr
	}
	if s.knownContacts != nil && !s.knownContacts[pn.ContactID] {
		return store.ErrInvalidEntity
	}
	s.phones[pn.ID] = pn
	return nil
}

func (s *fakePhoneNumberStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.PhoneNumber, error) {
	s.rec.record("phones.GetByID")
	pn, ok := s.phones[id]
	if !ok {
		return nil, store.ErrPhoneNumberNotFound
	}
	return pn, nil
}

func (s *fakePhoneNumberStore) GetContactID(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	s.rec.record("phones.GetContactID")
	pn, ok := s.phones[id]
	if !ok {
		return uuid.Nil, store.ErrPhoneNumberNotFound
	}
	return pn.ContactID, nil
}

func (s *fakePhoneNumberStore) ListByContact(ctx context.Context, contactID uuid.UUID) ([]*domain.PhoneNumber, error) {
	s.rec.record("phones.ListByContact")
	out := []*domain.PhoneNumber{}
	for _, pn := range s.phones {
		if pn.ContactID == contactID {
			out = append(out, pn)
		}
	}
	// same ordering as the real store: is_primary DESC, phone_type ASC
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].IsPrimary != out[j].IsPrimary {
			return out[i].IsPrimary
		}
		return out[i].PhoneType < out[j].PhoneType
	})
	return out, nil
}

func (s *fakePhoneNumberStore) Update(ctx context.Context, id uuid.UUID, patch domain.PhoneNumberPatch) (*domain.PhoneNumber, error) {
	s.rec.record("phones.Update")
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	pn, ok := s.phones[id]
	if !ok {
		return nil, store.ErrPhoneNumberNotFound
	}
	if patch.PhoneNumber != nil {
		pn.PhoneNumber = *patch.PhoneNumber
	}
	if patch.PhoneType != nil {
		pn.PhoneType = *patch.PhoneType
	}
	if patch.IsPrimary != nil {
		pn.IsPrimary = *patch.IsPrimary
	}
	return pn, nil
}

func (s *fakePhoneNumberStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.rec.record("phones.Delete")
	if s.deleteErr != nil {
		return s.deleteErr
	}
	if _, ok := s.phones[id]; !ok {
		return store.ErrPhoneNumberNotFound
	}
	delete(s.phones, id)
	return nil
}

func (s *fakePhoneNumberStore) DeleteByContact(ctx context.Context, contactID uuid.UUID) (int64, error) {
	s.rec.record("phones.DeleteByContact")
	var n int64
	for id, pn := range s.phones {
		if pn.ContactID == contactID {
			delete(s.phones, id)
			n++
		}
	}
	return n, nil
}

func (s *fakePhoneNumberStore) DeleteByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	s.rec.record("phones.DeleteByUser")
	return 0, nil
}

func (s *fakePhoneNumberStore) ClearPrimary(ctx context.Context, contactID uuid.UUID) error {
	s.rec.record("phones.ClearPrimary")
	for _, pn := range s.phones {
		if pn.ContactID == contactID {
			pn.IsPrimary = false
		}
	}
	return nil
}

func (s *fakePhoneNumberStore) ClearPrimaryExcept(ctx context.Context, contactID, exceptID uuid.UUID) error {
	s.rec.record("phones.ClearPrimaryExcept")
	for id, pn := range s.phones {
		if pn.ContactID == contactID && id != exceptID {
			pn.IsPrimary = false
		}
	}
	return nil
}

func (s *fakePhoneNumberStore) WithTx(tx *sql.Tx) store.PhoneNumberStore { return s }

// fakeHasher avoids bcrypt cost in unit tests.
type fakeHasher struct {
	hashErr error
}

func (h *fakeHasher) Hash(password string) (string, error) {
	if h.hashErr != nil {
		return "", h.hashErr
	}
	return "hashed:" + password, nil
}

// fakeJWTService returns a fixed token.
type fakeJWTService struct {
	tokenErr error
}

func (j *fakeJWTService) GenerateToken(ctx context.Context, userID uuid.UUID) (string, error) {
	if j.tokenErr != nil {
		return "", j.tokenErr
	}
	return "token-for-" + userID.String(), nil
}

func (j *fakeJWTService) ValidateToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	return nil, auth.ErrInvalidToken
}
