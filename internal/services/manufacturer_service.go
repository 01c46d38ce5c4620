package services

import (
	"context"
	"log/slog"
	"strings"

	"lager/internal/apperrors"
	"lager/internal/models"
	"lager/internal/repositories"
	"lager/internal/validation"
)

// ManufacturerService orchestrates the Manufacturer+Contact composite
// lifecycle. It is the only component that writes to both collections within
// one logical operation. The sub-operations execute in a fixed order
// (contact before manufacturer on create, contact patch before manufacturer
// patch on update, manufacturer before contact on delete) and are not
// atomic: a failure partway through leaves the documented partial state.
type ManufacturerService struct {
	repo     repositories.ManufacturerRepository
	contacts repositories.ContactRepository
	validate *validation.Validator
	events   EventPublisher
	logger   *slog.Logger
}

// NewManufacturerService creates a new ManufacturerService. events may be
// nil to disable publishing.
func NewManufacturerService(repo repositories.ManufacturerRepository, contacts repositories.ContactRepository, validate *validation.Validator, events EventPublisher, logger *slog.Logger) *ManufacturerService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ManufacturerService{
		repo:     repo,
		contacts: contacts,
		validate: validate,
		events:   events,
		logger:   logger.With("service", "manufacturer"),
	}
}

// List returns a page of manufacturers joined with their contacts.
func (s *ManufacturerService) List(ctx context.Context, page, limit int, search string) (*models.ManufacturerPage, error) {
	skip, lim := pageWindow(page, limit)
	items, total, err := s.repo.Find(ctx, search, skip, lim)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if err := s.joinContact(ctx, &items[i]); err != nil {
			return nil, err
		}
	}
	return &models.ManufacturerPage{
		Items:       items,
		TotalCount:  total,
		HasNextPage: hasNextPage(skip, int64(len(items)), total, lim),
	}, nil
}

// Get returns a manufacturer by id, joined with its contact.
func (s *ManufacturerService) Get(ctx context.Context, id string) (*models.Manufacturer, error) {
	oid, err := s.validate.ParseID("id", id)
	if err != nil {
		return nil, err
	}
	m, err := s.repo.GetByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	if err := s.joinContact(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// Create validates the nested contact and manufacturer input, rejects a
// duplicate name, then creates the contact followed by the manufacturer
// referencing it. If the manufacturer write fails after the contact was
// created, the orphaned contact is not rolled back; this partial-failure
// window is logged.
func (s *ManufacturerService) Create(ctx context.Context, in models.ManufacturerInput) (*models.Manufacturer, error) {
	in.Normalize()
	if err := s.validate.Struct("Manufacturer validation failed", in); err != nil {
		return nil, err
	}

	if _, err := s.repo.FindByName(ctx, in.Name); err == nil {
		return nil, apperrors.NewConflict("Manufacturer name already exists")
	} else if !apperrors.IsNotFound(err) {
		return nil, err
	}

	contact := in.Contact.ToContact()
	if err := s.contacts.Create(ctx, contact); err != nil {
		return nil, err
	}

	m := in.ToManufacturer(contact.ID)
	if err := s.repo.Create(ctx, m); err != nil {
		s.logger.Error("manufacturer create failed after contact create, contact left orphaned",
			"contact_id", contact.ID.Hex(), "error", err)
		return nil, err
	}

	m.Contact = contact
	publishEvent(s.logger, s.events, EventManufacturerCreated, m)
	return m, nil
}

// Update resolves the manufacturer, applies a present contact patch to the
// linked contact first, then patches the manufacturer's own fields. The
// contact reference is never reassigned. The two writes are independent: if
// the contact patch succeeds and the manufacturer patch fails, the contact
// has already changed.
func (s *ManufacturerService) Update(ctx context.Context, id string, patch models.ManufacturerPatch) (*models.Manufacturer, error) {
	oid, err := s.validate.ParseID("id", id)
	if err != nil {
		return nil, err
	}
	patch.Normalize()
	if err := s.validate.Struct("Manufacturer validation failed", patch); err != nil {
		return nil, err
	}

	current, err := s.repo.GetByID(ctx, oid)
	if err != nil {
		return nil, err
	}

	var contact *models.Contact
	if patch.Contact != nil {
		contact, err = s.contacts.Update(ctx, current.ContactID, *patch.Contact)
		if err != nil {
			return nil, err
		}
	}

	if patch.Name != nil && !strings.EqualFold(*patch.Name, current.Name) {
		if _, err := s.repo.FindByName(ctx, *patch.Name); err == nil {
			return nil, apperrors.NewConflict("Manufacturer name already exists")
		} else if !apperrors.IsNotFound(err) {
			return nil, err
		}
	}

	updated, err := s.repo.Update(ctx, oid, patch)
	if err != nil {
		if patch.Contact != nil {
			s.logger.Error("manufacturer update failed after contact update",
				"manufacturer_id", oid.Hex(), "contact_id", current.ContactID.Hex(), "error", err)
		}
		return nil, err
	}

	if contact != nil {
		updated.Contact = contact
	} else if err := s.joinContact(ctx, updated); err != nil {
		return nil, err
	}
	publishEvent(s.logger, s.events, EventManufacturerUpdated, updated)
	return updated, nil
}

// Delete removes the manufacturer document first, capturing its contact
// reference, then removes the referenced contact. The deleted manufacturer
// is returned joined with the deleted contact's last known data. A second
// delete of the same id fails NotFound.
func (s *ManufacturerService) Delete(ctx context.Context, id string) (*models.Manufacturer, error) {
	oid, err := s.validate.ParseID("id", id)
	if err != nil {
		return nil, err
	}

	m, err := s.repo.Delete(ctx, oid)
	if err != nil {
		return nil, err
	}

	contact, err := s.contacts.Delete(ctx, m.ContactID)
	switch {
	case err == nil:
		m.Contact = contact
	case apperrors.IsNotFound(err):
		// Contact was already missing; the cascade has nothing to remove.
		s.logger.Warn("deleted manufacturer had no contact", "manufacturer_id", oid.Hex())
	default:
		// The manufacturer is already gone; surface the failing step.
		s.logger.Error("contact delete failed after manufacturer delete",
			"manufacturer_id", oid.Hex(), "contact_id", m.ContactID.Hex(), "error", err)
		return nil, err
	}

	publishEvent(s.logger, s.events, EventManufacturerDeleted, m)
	return m, nil
}

// joinContact populates the joined contact document. A missing contact is
// tolerated on reads and left nil.
func (s *ManufacturerService) joinContact(ctx context.Context, m *models.Manufacturer) error {
	contact, err := s.contacts.GetByID(ctx, m.ContactID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil
		}
		return err
	}
	m.Contact = contact
	return nil
}
