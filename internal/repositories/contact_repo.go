package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"lager/internal/models"
)

// ContactRepository defines data access for the contacts collection.
// Contacts are only written through the manufacturer composite operations.
type ContactRepository interface {
	GetAll(ctx context.Context) ([]models.Contact, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Contact, error)
	Create(ctx context.Context, contact *models.Contact) error
	Update(ctx context.Context, id primitive.ObjectID, patch models.ContactPatch) (*models.Contact, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*models.Contact, error)
}
