package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"lager/internal/models"
)

// ProductRepository defines data access for the products collection,
// including the derived stock reports. Find applies an optional
// case-insensitive name search, the given sort ordering and skip/limit
// (limit 0 means no cap), returning the page items and the filtered total
// count.
type ProductRepository interface {
	Find(ctx context.Context, search string, sort models.ProductSortOption, skip, limit int64) ([]models.Product, int64, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, id primitive.ObjectID, patch models.ProductPatch) (*models.Product, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*models.Product, error)

	// TotalStockValue sums price*amountInStock over all products.
	TotalStockValue(ctx context.Context) (float64, error)
	// StockValueByManufacturer groups products by manufacturer, sums
	// stock and stock value per group joined with manufacturer info,
	// sorted by total value descending. The count is the number of
	// distinct manufacturers with at least one product.
	StockValueByManufacturer(ctx context.Context, skip, limit int64) ([]models.ManufacturerStockValue, int64, error)
	// LowStock returns all products below the low stock threshold.
	LowStock(ctx context.Context) ([]models.Product, error)
	// CriticalStock returns products below the critical threshold joined
	// with their manufacturer's name and contact, sorted by stock
	// ascending. Products whose manufacturer or contact does not resolve
	// are excluded (inner-join semantics); the count reflects the joined
	// set.
	CriticalStock(ctx context.Context, skip, limit int64) ([]models.CriticalStockProduct, int64, error)
}
