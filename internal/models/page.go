package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// ProductSortOption enumerates the supported product sort orderings.
type ProductSortOption string

const (
	SortNameAsc   ProductSortOption = "NAME_ASC"
	SortPriceAsc  ProductSortOption = "PRICE_ASC"
	SortPriceDesc ProductSortOption = "PRICE_DESC"
	SortStockAsc  ProductSortOption = "STOCK_ASC"
	SortStockDesc ProductSortOption = "STOCK_DESC"
)

// ParseProductSort maps a raw sort key to a sort option. Unrecognized keys
// fall back to name ascending.
func ParseProductSort(s string) ProductSortOption {
	switch ProductSortOption(s) {
	case SortPriceAsc, SortPriceDesc, SortStockAsc, SortStockDesc:
		return ProductSortOption(s)
	default:
		return SortNameAsc
	}
}

// ProductPage is the uniform page shape for product list queries.
type ProductPage struct {
	Items       []Product `json:"items"`
	TotalCount  int64     `json:"totalCount"`
	HasNextPage bool      `json:"hasNextPage"`
}

// ManufacturerPage is the uniform page shape for manufacturer list queries.
type ManufacturerPage struct {
	Items       []Manufacturer `json:"items"`
	TotalCount  int64          `json:"totalCount"`
	HasNextPage bool           `json:"hasNextPage"`
}

// ManufacturerStockValue is one row of the stock-value-by-manufacturer
// report: per-manufacturer stock totals joined with manufacturer info.
type ManufacturerStockValue struct {
	ManufacturerID  primitive.ObjectID `json:"id" bson:"_id"`
	Name            string             `json:"name" bson:"name"`
	Country         string             `json:"country,omitempty" bson:"country,omitempty"`
	Website         string             `json:"website,omitempty" bson:"website,omitempty"`
	TotalStock      int                `json:"totalStock" bson:"totalStock"`
	TotalStockValue float64            `json:"totalStockValue" bson:"totalStockValue"`
}

// StockValuePage pages the stock-value-by-manufacturer report.
type StockValuePage struct {
	Items       []ManufacturerStockValue `json:"items"`
	TotalCount  int64                    `json:"totalCount"`
	HasNextPage bool                     `json:"hasNextPage"`
}

// CriticalStockContact is the contact info joined into the critical stock
// report.
type CriticalStockContact struct {
	Name  string `json:"name" bson:"name"`
	Phone string `json:"phone,omitempty" bson:"phone,omitempty"`
	Email string `json:"email" bson:"email"`
}

// CriticalStockProduct is one row of the critical stock report: a product
// below the critical threshold joined with its manufacturer's name and
// contact. Products whose manufacturer or contact cannot be resolved are
// excluded from the report.
type CriticalStockProduct struct {
	ID            primitive.ObjectID   `json:"id" bson:"_id"`
	Name          string               `json:"name" bson:"name"`
	SKU           string               `json:"sku" bson:"sku"`
	Price         float64              `json:"price" bson:"price"`
	AmountInStock int                  `json:"amountInStock" bson:"amountInStock"`
	Manufacturer  string               `json:"manufacturer" bson:"manufacturer"`
	Contact       CriticalStockContact `json:"contact" bson:"contact"`
}

// CriticalStockPage pages the critical stock report.
type CriticalStockPage struct {
	Items       []CriticalStockProduct `json:"items"`
	TotalCount  int64                  `json:"totalCount"`
	HasNextPage bool                   `json:"hasNextPage"`
}
