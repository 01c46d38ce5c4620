package repositories

import (
	"context"
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"lager/internal/apperrors"
)

// Collection names owned by the store adapters.
const (
	productsCollection      = "products"
	manufacturersCollection = "manufacturers"
	contactsCollection      = "contacts"
)

// Connect opens a MongoDB client and verifies the connection.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}
	return client, nil
}

// EnsureIndexes creates the indexes the adapters rely on: a unique,
// case-insensitive index on manufacturer name so duplicate names surface as
// duplicate-key writes.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(manufacturersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "name", Value: 1}},
		Options: options.Index().
			SetUnique(true).
			SetCollation(&options.Collation{Locale: "en", Strength: 2}),
	})
	return err
}

// nameSearchFilter builds a case-insensitive substring filter on the name
// field. A nil filter means no search term.
func nameSearchFilter(search string) bson.M {
	filter := bson.M{}
	if s := strings.TrimSpace(search); s != "" {
		filter["name"] = primitive.Regex{Pattern: regexp.QuoteMeta(s), Options: "i"}
	}
	return filter
}

// exactNameFilter matches a name exactly, ignoring case.
func exactNameFilter(name string) bson.M {
	return bson.M{"name": primitive.Regex{Pattern: "^" + regexp.QuoteMeta(name) + "$", Options: "i"}}
}

// mapFindError classifies read errors: no document resolves to NotFound,
// anything else to Internal.
func mapFindError(err error, notFoundMsg, internalMsg string) error {
	if err == mongo.ErrNoDocuments {
		return apperrors.NewNotFound(notFoundMsg)
	}
	return apperrors.NewInternal(internalMsg, err)
}

// mapWriteError classifies write errors: duplicate-key writes become
// Conflict, anything else Internal.
func mapWriteError(err error, conflictMsg, internalMsg string) error {
	if mongo.IsDuplicateKeyError(err) {
		return apperrors.NewConflict(conflictMsg)
	}
	return apperrors.NewInternal(internalMsg, err)
}
