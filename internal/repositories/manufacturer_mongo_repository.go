package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"lager/internal/apperrors"
	"lager/internal/models"
)

// MongoManufacturerRepository is a MongoDB implementation of
// ManufacturerRepository.
type MongoManufacturerRepository struct {
	coll *mongo.Collection
}

// NewMongoManufacturerRepository creates a new MongoManufacturerRepository.
func NewMongoManufacturerRepository(db *mongo.Database) *MongoManufacturerRepository {
	return &MongoManufacturerRepository{coll: db.Collection(manufacturersCollection)}
}

// Find lists manufacturers with optional name search and skip/limit,
// returning the filtered total count alongside the page.
func (r *MongoManufacturerRepository) Find(ctx context.Context, search string, skip, limit int64) ([]models.Manufacturer, int64, error) {
	filter := nameSearchFilter(search)

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	if limit > 0 {
		opts.SetSkip(skip).SetLimit(limit)
	}
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, apperrors.NewInternal("failed to list manufacturers", err)
	}
	items := []models.Manufacturer{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, 0, apperrors.NewInternal("failed to decode manufacturers", err)
	}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, apperrors.NewInternal("failed to count manufacturers", err)
	}
	return items, total, nil
}

// GetByID returns a manufacturer by its id.
func (r *MongoManufacturerRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Manufacturer, error) {
	var m models.Manufacturer
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&m); err != nil {
		return nil, mapFindError(err, "Manufacturer not found", "failed to get manufacturer")
	}
	return &m, nil
}

// FindByName resolves a manufacturer by exact, case-insensitive name.
func (r *MongoManufacturerRepository) FindByName(ctx context.Context, name string) (*models.Manufacturer, error) {
	var m models.Manufacturer
	if err := r.coll.FindOne(ctx, exactNameFilter(name)).Decode(&m); err != nil {
		return nil, mapFindError(err, "Manufacturer not found", "failed to find manufacturer by name")
	}
	return &m, nil
}

// Create inserts a manufacturer and assigns its id. A duplicate name fails
// Conflict via the unique name index.
func (r *MongoManufacturerRepository) Create(ctx context.Context, m *models.Manufacturer) error {
	res, err := r.coll.InsertOne(ctx, m)
	if err != nil {
		return mapWriteError(err, "Manufacturer name already exists", "failed to create manufacturer")
	}
	m.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// Update applies a partial patch to the manufacturer's own fields. The
// contact reference is never reassigned here.
func (r *MongoManufacturerRepository) Update(ctx context.Context, id primitive.ObjectID, patch models.ManufacturerPatch) (*models.Manufacturer, error) {
	set := bson.M{}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Country != nil {
		set["country"] = *patch.Country
	}
	if patch.Website != nil {
		set["website"] = *patch.Website
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.Address != nil {
		set["address"] = *patch.Address
	}
	if len(set) == 0 {
		return r.GetByID(ctx, id)
	}

	var updated models.Manufacturer
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&updated)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, apperrors.NewConflict("Manufacturer name already exists")
		}
		return nil, mapFindError(err, "Manufacturer not found", "failed to update manufacturer")
	}
	return &updated, nil
}

// Delete removes a manufacturer and returns the deleted document, including
// its contact reference so the cascade can proceed.
func (r *MongoManufacturerRepository) Delete(ctx context.Context, id primitive.ObjectID) (*models.Manufacturer, error) {
	var deleted models.Manufacturer
	if err := r.coll.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&deleted); err != nil {
		return nil, mapFindError(err, "Manufacturer not found", "failed to delete manufacturer")
	}
	return &deleted, nil
}
