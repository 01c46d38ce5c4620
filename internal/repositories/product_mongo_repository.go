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

// MongoProductRepository is a MongoDB implementation of ProductRepository.
// The stock reports are aggregation pipelines recomputed on every call.
type MongoProductRepository struct {
	coll *mongo.Collection
}

// NewMongoProductRepository creates a new MongoProductRepository.
func NewMongoProductRepository(db *mongo.Database) *MongoProductRepository {
	return &MongoProductRepository{coll: db.Collection(productsCollection)}
}

func sortDocument(sort models.ProductSortOption) bson.D {
	switch sort {
	case models.SortPriceAsc:
		return bson.D{{Key: "price", Value: 1}}
	case models.SortPriceDesc:
		return bson.D{{Key: "price", Value: -1}}
	case models.SortStockAsc:
		return bson.D{{Key: "amountInStock", Value: 1}}
	case models.SortStockDesc:
		return bson.D{{Key: "amountInStock", Value: -1}}
	default:
		return bson.D{{Key: "name", Value: 1}}
	}
}

// Find lists products with optional name search, sort ordering and
// skip/limit, returning the filtered total count alongside the page.
func (r *MongoProductRepository) Find(ctx context.Context, search string, sort models.ProductSortOption, skip, limit int64) ([]models.Product, int64, error) {
	filter := nameSearchFilter(search)

	opts := options.Find().SetSort(sortDocument(sort))
	if limit > 0 {
		opts.SetSkip(skip).SetLimit(limit)
	}
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, apperrors.NewInternal("failed to list products", err)
	}
	items := []models.Product{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, 0, apperrors.NewInternal("failed to decode products", err)
	}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, apperrors.NewInternal("failed to count products", err)
	}
	return items, total, nil
}

// GetByID returns a product by its id.
func (r *MongoProductRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	var p models.Product
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		return nil, mapFindError(err, "Product not found", "failed to get product")
	}
	return &p, nil
}

// Create inserts a product and assigns its id.
func (r *MongoProductRepository) Create(ctx context.Context, p *models.Product) error {
	res, err := r.coll.InsertOne(ctx, p)
	if err != nil {
		return mapWriteError(err, "Product already exists", "failed to create product")
	}
	p.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// Update applies a partial patch and returns the updated document.
func (r *MongoProductRepository) Update(ctx context.Context, id primitive.ObjectID, patch models.ProductPatch) (*models.Product, error) {
	set := bson.M{}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.SKU != nil {
		set["sku"] = *patch.SKU
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.Price != nil {
		set["price"] = *patch.Price
	}
	if patch.Category != nil {
		set["category"] = *patch.Category
	}
	if patch.Manufacturer != nil {
		oid, err := primitive.ObjectIDFromHex(*patch.Manufacturer)
		if err != nil {
			return nil, apperrors.NewBadInput("Invalid manufacturer id", apperrors.FieldError{
				Path: "manufacturer", Message: "must be a 24 character hex string", Code: "len",
			})
		}
		set["manufacturer"] = oid
	}
	if patch.AmountInStock != nil {
		set["amountInStock"] = *patch.AmountInStock
	}
	if len(set) == 0 {
		return r.GetByID(ctx, id)
	}

	var updated models.Product
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&updated)
	if err != nil {
		return nil, mapFindError(err, "Product not found", "failed to update product")
	}
	return &updated, nil
}

// Delete removes a product and returns the deleted document.
func (r *MongoProductRepository) Delete(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	var deleted models.Product
	if err := r.coll.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&deleted); err != nil {
		return nil, mapFindError(err, "Product not found", "failed to delete product")
	}
	return &deleted, nil
}

// TotalStockValue sums price*amountInStock over all products; 0 when the
// collection is empty.
func (r *MongoProductRepository) TotalStockValue(ctx context.Context) (float64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$project", Value: bson.M{
			"stockValue": bson.M{"$multiply": bson.A{"$price", "$amountInStock"}},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":             nil,
			"totalStockValue": bson.M{"$sum": "$stockValue"},
		}}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, apperrors.NewInternal("failed to aggregate stock value", err)
	}
	var rows []struct {
		TotalStockValue float64 `bson:"totalStockValue"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return 0, apperrors.NewInternal("failed to decode stock value", err)
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].TotalStockValue, nil
}

func stockValueByManufacturerPipeline() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":             "$manufacturer",
			"totalStock":      bson.M{"$sum": "$amountInStock"},
			"totalStockValue": bson.M{"$sum": bson.M{"$multiply": bson.A{"$price", "$amountInStock"}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "totalStockValue", Value: -1}}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         manufacturersCollection,
			"localField":   "_id",
			"foreignField": "_id",
			"as":           "manufacturerInfo",
		}}},
		{{Key: "$unwind", Value: "$manufacturerInfo"}},
		{{Key: "$project", Value: bson.M{
			"_id":             "$manufacturerInfo._id",
			"name":            "$manufacturerInfo.name",
			"country":         "$manufacturerInfo.country",
			"website":         "$manufacturerInfo.website",
			"totalStock":      1,
			"totalStockValue": 1,
		}}},
	}
}

// StockValueByManufacturer groups products per manufacturer and joins the
// manufacturer document, sorted by total stock value descending.
func (r *MongoProductRepository) StockValueByManufacturer(ctx context.Context, skip, limit int64) ([]models.ManufacturerStockValue, int64, error) {
	total, err := r.pipelineCount(ctx, stockValueByManufacturerPipeline())
	if err != nil {
		return nil, 0, apperrors.NewInternal("failed to count stock value by manufacturer", err)
	}

	pipeline := stockValueByManufacturerPipeline()
	if limit > 0 {
		pipeline = append(pipeline,
			bson.D{{Key: "$skip", Value: skip}},
			bson.D{{Key: "$limit", Value: limit}},
		)
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, 0, apperrors.NewInternal("failed to aggregate stock value by manufacturer", err)
	}
	items := []models.ManufacturerStockValue{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, 0, apperrors.NewInternal("failed to decode stock value by manufacturer", err)
	}
	return items, total, nil
}

// LowStock returns every product below the low stock threshold.
func (r *MongoProductRepository) LowStock(ctx context.Context) ([]models.Product, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"amountInStock": bson.M{"$lt": models.LowStockThreshold}})
	if err != nil {
		return nil, apperrors.NewInternal("failed to list low stock products", err)
	}
	items := []models.Product{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, apperrors.NewInternal("failed to decode low stock products", err)
	}
	return items, nil
}

func criticalStockPipeline() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"amountInStock": bson.M{"$lt": models.CriticalStockThreshold}}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         manufacturersCollection,
			"localField":   "manufacturer",
			"foreignField": "_id",
			"as":           "manufacturerInfo",
		}}},
		{{Key: "$unwind", Value: "$manufacturerInfo"}},
		{{Key: "$lookup", Value: bson.M{
			"from":         contactsCollection,
			"localField":   "manufacturerInfo.contact",
			"foreignField": "_id",
			"as":           "contactInfo",
		}}},
		{{Key: "$unwind", Value: "$contactInfo"}},
		{{Key: "$sort", Value: bson.D{{Key: "amountInStock", Value: 1}}}},
		{{Key: "$project", Value: bson.M{
			"name":          1,
			"sku":           1,
			"price":         1,
			"amountInStock": 1,
			"manufacturer":  "$manufacturerInfo.name",
			"contact": bson.M{
				"name":  "$contactInfo.name",
				"phone": "$contactInfo.phone",
				"email": "$contactInfo.email",
			},
		}}},
	}
}

// CriticalStock returns products below the critical threshold joined with
// manufacturer name and contact. The $unwind stages drop products whose
// manufacturer or contact does not resolve, and the count is taken over the
// joined set so page sums always match it.
func (r *MongoProductRepository) CriticalStock(ctx context.Context, skip, limit int64) ([]models.CriticalStockProduct, int64, error) {
	total, err := r.pipelineCount(ctx, criticalStockPipeline())
	if err != nil {
		return nil, 0, apperrors.NewInternal("failed to count critical stock products", err)
	}

	pipeline := criticalStockPipeline()
	if limit > 0 {
		pipeline = append(pipeline,
			bson.D{{Key: "$skip", Value: skip}},
			bson.D{{Key: "$limit", Value: limit}},
		)
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, 0, apperrors.NewInternal("failed to aggregate critical stock products", err)
	}
	items := []models.CriticalStockProduct{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, 0, apperrors.NewInternal("failed to decode critical stock products", err)
	}
	return items, total, nil
}

func (r *MongoProductRepository) pipelineCount(ctx context.Context, pipeline mongo.Pipeline) (int64, error) {
	pipeline = append(pipeline, bson.D{{Key: "$count", Value: "n"}})
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}
	var rows []struct {
		N int64 `bson:"n"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].N, nil
}
