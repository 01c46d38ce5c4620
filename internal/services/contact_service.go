package services

import (
	"context"

	"lager/internal/models"
	"lager/internal/repositories"
	"lager/internal/validation"
)

// ContactService exposes read-only contact queries. Contacts are created,
// updated and deleted exclusively through the manufacturer composite
// operations, so no standalone write operations exist here.
type ContactService struct {
	repo     repositories.ContactRepository
	validate *validation.Validator
}

// NewContactService creates a new ContactService.
func NewContactService(repo repositories.ContactRepository, validate *validation.Validator) *ContactService {
	return &ContactService{repo: repo, validate: validate}
}

// List returns all contacts.
func (s *ContactService) List(ctx context.Context) ([]models.Contact, error) {
	return s.repo.GetAll(ctx)
}

// Get returns a contact by id.
func (s *ContactService) Get(ctx context.Context, id string) (*models.Contact, error) {
	oid, err := s.validate.ParseID("id", id)
	if err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, oid)
}
