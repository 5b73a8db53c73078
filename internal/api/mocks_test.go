package api

import (
	"context"

	"github.com/fieldstone/contacts-api/internal/domain"
	"github.com/fieldstone/contacts-api/internal/service"
	"github.com/google/uuid"
)

// Fake services returning canned results, so handler tests exercise only
// decoding, validation, status mapping, and envelope shape.

type fakeUserService struct {
	registered *service.RegisteredUser
	user       *domain.User
	err        error

	lastRegisterInput service.RegisterUserInput
	lastUpdateInput   service.UpdateUserInput
	lastID            uuid.UUID
}

func (s *fakeUserService) Register(ctx context.Context, input service.RegisterUserInput) (*service.RegisteredUser, error) {
	s.lastRegisterInput = input
	if s.err != nil {
		return nil, s.err
	}
	return s.registered, nil
}

func (s *fakeUserService) GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	s.lastID = userID
	if s.err != nil {
		return nil, s.err
	}
	return s.user, nil
}

func (s *fakeUserService) UpdateUser(ctx context.Context, userID uuid.UUID, input service.UpdateUserInput) (*domain.User, error) {
	s.lastID = userID
	s.lastUpdateInput = input
	if s.err != nil {
		return nil, s.err
	}
	return s.user, nil
}

func (s *fakeUserService) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	s.lastID = userID
	return s.err
}

type fakeContactService struct {
	contact  *domain.Contact
	contacts []*domain.Contact
	err      error

	lastCreateInput service.CreateContactInput
	lastID          uuid.UUID
}

func (s *fakeContactService) CreateContact(ctx context.Context, input service.CreateContactInput) (*domain.Contact, error) {
	s.lastCreateInput = input
	if s.err != nil {
		return nil, s.err
	}
	return s.contact, nil
}

func (s *fakeContactService) GetContact(ctx context.Context, contactID uuid.UUID) (*domain.Contact, error) {
	s.lastID = contactID
	if s.err != nil {
		return nil, s.err
	}
	return s.contact, nil
}

func (s *fakeContactService) ListContactsByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Contact, error) {
	s.lastID = userID
	if s.err != nil {
		return nil, s.err
	}
	return s.contacts, nil
}

func (s *fakeContactService) UpdateContact(ctx context.Context, contactID uuid.UUID, patch domain.ContactPatch) (*domain.Contact, error) {
	s.lastID = contactID
	if s.err != nil {
		return nil, s.err
	}
	return s.contact, nil
}

func (s *fakeContactService) DeleteContact(ctx context.Context, contactID uuid.UUID) error {
	s.lastID = contactID
	return s.err
}

type fakePhoneNumberService struct {
	phone  *domain.PhoneNumber
	phones []*domain.PhoneNumber
	err    error

	lastCreateInput service.CreatePhoneNumberInput
	lastPatch       domain.PhoneNumberPatch
	lastID          uuid.UUID
}

func (s *fakePhoneNumberService) CreatePhoneNumber(ctx context.Context, input service.CreatePhoneNumberInput) (*domain.PhoneNumber, error) {
	s.lastCreateInput = input
	if s.err != nil {
		return nil, s.err
	}
	return s.phone, nil
}

func (s *fakePhoneNumberService) GetPhoneNumber(ctx context.Context, id uuid.UUID) (*domain.PhoneNumber, error) {
	s.lastID = id
	if s.err != nil {
		return nil, s.err
	}
	return s.phone, nil
}

func (s *fakePhoneNumberService) ListPhoneNumbersByContact(ctx context.Context, contactID uuid.UUID) ([]*domain.PhoneNumber, error) {
	s.lastID = contactID
	if s.err != nil {
		return nil, s.err
	}
	return s.phones, nil
}

func (s *fakePhoneNumberService) UpdatePhoneNumber(ctx context.Context, id uuid.UUID, patch domain.PhoneNumberPatch) (*domain.PhoneNumber, error) {
	s.lastID = id
	s.lastPatch = patch
	if s.err != nil {
		return nil, s.err
	}
	return s.phone, nil
}

func (s *fakePhoneNumberService) DeletePhoneNumber(ctx context.Context, id uuid.UUID) error {
	s.lastID = id
	return s.err
}
