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

// MongoContactRepository is a MongoDB implementation of ContactRepository.
type MongoContactRepository struct {
	coll *mongo.Collection
}

// NewMongoContactRepository creates a new MongoContactRepository.
func NewMongoContactRepository(db *mongo.Database) *MongoContactRepository {
	return &MongoContactRepository{coll: db.Collection(contactsCollection)}
}

// GetAll returns every contact.
func (r *MongoContactRepository) GetAll(ctx context.Context) ([]models.Contact, error) {
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, apperrors.NewInternal("failed to list contacts", err)
	}
	contacts := []models.Contact{}
	if err := cursor.All(ctx, &contacts); err != nil {
		return nil, apperrors.NewInternal("failed to decode contacts", err)
	}
	return contacts, nil
}

// GetByID returns a contact by its id.
func (r *MongoContactRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Contact, error) {
	var contact models.Contact
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&contact); err != nil {
		return nil, mapFindError(err, "Contact not found", "failed to get contact")
	}
	return &contact, nil
}

// Create inserts a contact and assigns its id.
func (r *MongoContactRepository) Create(ctx context.Context, contact *models.Contact) error {
	res, err := r.coll.InsertOne(ctx, contact)
	if err != nil {
		return mapWriteError(err, "Contact already exists", "failed to create contact")
	}
	contact.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// Update applies a partial patch and returns the updated document.
func (r *MongoContactRepository) Update(ctx context.Context, id primitive.ObjectID, patch models.ContactPatch) (*models.Contact, error) {
	set := bson.M{}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Email != nil {
		set["email"] = *patch.Email
	}
	if patch.Phone != nil {
		set["phone"] = *patch.Phone
	}
	if len(set) == 0 {
		return r.GetByID(ctx, id)
	}

	var updated models.Contact
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&updated)
	if err != nil {
		return nil, mapFindError(err, "Contact not found", "failed to update contact")
	}
	return &updated, nil
}

// Delete removes a contact and returns the deleted document.
func (r *MongoContactRepository) Delete(ctx context.Context, id primitive.ObjectID) (*models.Contact, error) {
	var deleted models.Contact
	if err := r.coll.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&deleted); err != nil {
		return nil, mapFindError(err, "Contact not found", "failed to delete contact")
	}
	return &deleted, nil
}
