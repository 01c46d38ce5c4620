package repositories

import (
	"context"
	"sort"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"lager/internal/apperrors"
	"lager/internal/models"
)

// MockManufacturerRepository is an in-memory implementation of
// ManufacturerRepository. Name uniqueness is enforced case-insensitively,
// mirroring the unique index of the Mongo adapter.
type MockManufacturerRepository struct {
	mu            sync.RWMutex
	manufacturers map[primitive.ObjectID]models.Manufacturer
}

// NewMockManufacturerRepository creates a new instance of
// MockManufacturerRepository.
func NewMockManufacturerRepository() *MockManufacturerRepository {
	return &MockManufacturerRepository{manufacturers: make(map[primitive.ObjectID]models.Manufacturer)}
}

// Find lists manufacturers with optional name search and skip/limit.
func (r *MockManufacturerRepository) Find(_ context.Context, search string, skip, limit int64) ([]models.Manufacturer, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	needle := strings.ToLower(strings.TrimSpace(search))
	matched := []models.Manufacturer{}
	for _, m := range r.manufacturers {
		if needle == "" || strings.Contains(strings.ToLower(m.Name), needle) {
			matched = append(matched, m)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].Name != matched[j].Name {
			return matched[i].Name < matched[j].Name
		}
		return matched[i].ID.Hex() < matched[j].ID.Hex()
	})

	total := int64(len(matched))
	return slicePage(matched, skip, limit), total, nil
}

// GetByID returns a manufacturer by its id.
func (r *MockManufacturerRepository) GetByID(_ context.Context, id primitive.ObjectID) (*models.Manufacturer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.manufacturers[id]
	if !ok {
		return nil, apperrors.NewNotFound("Manufacturer not found")
	}
	return &m, nil
}

// FindByName resolves a manufacturer by exact, case-insensitive name.
func (r *MockManufacturerRepository) FindByName(_ context.Context, name string) (*models.Manufacturer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, m := range r.manufacturers {
		if strings.EqualFold(m.Name, name) {
			return &m, nil
		}
	}
	return nil, apperrors.NewNotFound("Manufacturer not found")
}

// Create adds a new manufacturer, failing Conflict on a duplicate name.
func (r *MockManufacturerRepository) Create(_ context.Context, m *models.Manufacturer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.manufacturers {
		if strings.EqualFold(existing.Name, m.Name) {
			return apperrors.NewConflict("Manufacturer name already exists")
		}
	}
	if m.ID.IsZero() {
		m.ID = primitive.NewObjectID()
	}
	r.manufacturers[m.ID] = *m
	return nil
}

// Update applies a partial patch to the manufacturer's own fields.
func (r *MockManufacturerRepository) Update(_ context.Context, id primitive.ObjectID, patch models.ManufacturerPatch) (*models.Manufacturer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.manufacturers[id]
	if !ok {
		return nil, apperrors.NewNotFound("Manufacturer not found")
	}
	if patch.Name != nil {
		for otherID, other := range r.manufacturers {
			if otherID != id && strings.EqualFold(other.Name, *patch.Name) {
				return nil, apperrors.NewConflict("Manufacturer name already exists")
			}
		}
		m.Name = *patch.Name
	}
	if patch.Country != nil {
		m.Country = *patch.Country
	}
	if patch.Website != nil {
		m.Website = *patch.Website
	}
	if patch.Description != nil {
		m.Description = *patch.Description
	}
	if patch.Address != nil {
		m.Address = *patch.Address
	}
	r.manufacturers[id] = m
	return &m, nil
}

// Delete removes a manufacturer and returns the deleted document.
func (r *MockManufacturerRepository) Delete(_ context.Context, id primitive.ObjectID) (*models.Manufacturer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.manufacturers[id]
	if !ok {
		return nil, apperrors.NewNotFound("Manufacturer not found")
	}
	delete(r.manufacturers, id)
	return &m, nil
}

// lookup is used by the joined reports of MockProductRepository.
func (r *MockManufacturerRepository) lookup(id primitive.ObjectID) (models.Manufacturer, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.manufacturers[id]
	return m, ok
}

// slicePage applies skip/limit to a sorted slice; limit 0 means no cap.
func slicePage[T any](items []T, skip, limit int64) []T {
	if limit <= 0 {
		return items
	}
	if skip >= int64(len(items)) {
		return []T{}
	}
	end := skip + limit
	if end > int64(len(items)) {
		end = int64(len(items))
	}
	return items[skip:end]
}
