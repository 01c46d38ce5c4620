package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"lager/internal/models"
)

// ManufacturerRepository defines data access for the manufacturers
// collection. Find applies an optional case-insensitive name search and
// returns the page items together with the filtered total count; limit 0
// means no cap.
type ManufacturerRepository interface {
	Find(ctx context.Context, search string, skip, limit int64) ([]models.Manufacturer, int64, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Manufacturer, error)
	// FindByName resolves a manufacturer by exact, case-insensitive name.
	// Returns NotFound when no manufacturer carries the name.
	FindByName(ctx context.Context, name string) (*models.Manufacturer, error)
	Create(ctx context.Context, manufacturer *models.Manufacturer) error
	Update(ctx context.Context, id primitive.ObjectID, patch models.ManufacturerPatch) (*models.Manufacturer, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*models.Manufacturer, error)
}
