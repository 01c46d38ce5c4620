package repositories

import (
	"context"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"lager/internal/apperrors"
	"lager/internal/models"
)

// MockContactRepository is an in-memory implementation of ContactRepository.
type MockContactRepository struct {
	mu       sync.RWMutex
	contacts map[primitive.ObjectID]models.Contact
}

// NewMockContactRepository creates a new instance of MockContactRepository.
func NewMockContactRepository() *MockContactRepository {
	return &MockContactRepository{contacts: make(map[primitive.ObjectID]models.Contact)}
}

// GetAll returns all contacts ordered by id.
func (r *MockContactRepository) GetAll(_ context.Context) ([]models.Contact, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]models.Contact, 0, len(r.contacts))
	for _, c := range r.contacts {
		list = append(list, c)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID.Hex() < list[j].ID.Hex() })
	return list, nil
}

// GetByID returns a contact by its id.
func (r *MockContactRepository) GetByID(_ context.Context, id primitive.ObjectID) (*models.Contact, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.contacts[id]
	if !ok {
		return nil, apperrors.NewNotFound("Contact not found")
	}
	return &c, nil
}

// Create adds a new contact, assigning an id when absent.
func (r *MockContactRepository) Create(_ context.Context, contact *models.Contact) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if contact.ID.IsZero() {
		contact.ID = primitive.NewObjectID()
	}
	r.contacts[contact.ID] = *contact
	return nil
}

// Update applies a partial patch to an existing contact.
func (r *MockContactRepository) Update(_ context.Context, id primitive.ObjectID, patch models.ContactPatch) (*models.Contact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.contacts[id]
	if !ok {
		return nil, apperrors.NewNotFound("Contact not found")
	}
	if patch.Name != nil {
		c.Name = *patch.Name
	}
	if patch.Email != nil {
		c.Email = *patch.Email
	}
	if patch.Phone != nil {
		c.Phone = *patch.Phone
	}
	r.contacts[id] = c
	return &c, nil
}

// Delete removes a contact and returns the deleted document.
func (r *MockContactRepository) Delete(_ context.Context, id primitive.ObjectID) (*models.Contact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.contacts[id]
	if !ok {
		return nil, apperrors.NewNotFound("Contact not found")
	}
	delete(r.contacts, id)
	return &c, nil
}

// lookup is used by the joined reports of MockProductRepository.
func (r *MockContactRepository) lookup(id primitive.ObjectID) (models.Contact, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.contacts[id]
	return c, ok
}
