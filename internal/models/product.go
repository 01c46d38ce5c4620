package models

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Stock level thresholds for the derived low/critical classifications.
const (
	LowStockThreshold      = 10
	CriticalStockThreshold = 5
)

// Product is a stocked item. The manufacturer reference is validated for
// shape only; existence of the referenced manufacturer is not verified at
// write time.
type Product struct {
	ID             primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name           string             `json:"name" bson:"name"`
	SKU            string             `json:"sku" bson:"sku"`
	Description    string             `json:"description,omitempty" bson:"description,omitempty"`
	Price          float64            `json:"price" bson:"price"`
	Category       string             `json:"category,omitempty" bson:"category,omitempty"`
	ManufacturerID primitive.ObjectID `json:"manufacturer" bson:"manufacturer"`
	AmountInStock  int                `json:"amountInStock" bson:"amountInStock"`
}

// IsLowStock reports whether the product is below the low stock threshold.
func (p Product) IsLowStock() bool { return p.AmountInStock < LowStockThreshold }

// IsCriticalStock reports whether the product is below the critical stock
// threshold.
func (p Product) IsCriticalStock() bool { return p.AmountInStock < CriticalStockThreshold }

// ProductInput is the payload for creating a product.
type ProductInput struct {
	Name          string  `json:"name" validate:"required,min=2,max=100"`
	SKU           string  `json:"sku" validate:"required,min=3,max=20"`
	Description   string  `json:"description" validate:"omitempty,max=500"`
	Price         float64 `json:"price" validate:"gte=0"`
	Category      string  `json:"category" validate:"omitempty,max=100"`
	Manufacturer  string  `json:"manufacturer" validate:"required,len=24,hexadecimal"`
	AmountInStock int     `json:"amountInStock" validate:"gte=0"`
}

func (in *ProductInput) Normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.SKU = strings.TrimSpace(in.SKU)
	in.Description = strings.TrimSpace(in.Description)
	in.Category = strings.TrimSpace(in.Category)
	in.Manufacturer = strings.TrimSpace(in.Manufacturer)
}

// ToProduct builds the stored document from a validated input.
func (in ProductInput) ToProduct(manufacturerID primitive.ObjectID) *Product {
	return &Product{
		Name:           in.Name,
		SKU:            in.SKU,
		Description:    in.Description,
		Price:          in.Price,
		Category:       in.Category,
		ManufacturerID: manufacturerID,
		AmountInStock:  in.AmountInStock,
	}
}

// ProductPatch is a partial product update. Nil fields are left untouched;
// negative price or stock values fail validation rather than being clamped.
type ProductPatch struct {
	Name          *string  `json:"name" validate:"omitempty,min=2,max=100"`
	SKU           *string  `json:"sku" validate:"omitempty,min=3,max=20"`
	Description   *string  `json:"description" validate:"omitempty,max=500"`
	Price         *float64 `json:"price" validate:"omitempty,gte=0"`
	Category      *string  `json:"category" validate:"omitempty,max=100"`
	Manufacturer  *string  `json:"manufacturer" validate:"omitempty,len=24,hexadecimal"`
	AmountInStock *int     `json:"amountInStock" validate:"omitempty,gte=0"`
}

func (p *ProductPatch) Normalize() {
	p.Name = trimPtr(p.Name)
	p.SKU = trimPtr(p.SKU)
	p.Description = trimPtr(p.Description)
	p.Category = trimPtr(p.Category)
	p.Manufacturer = trimPtr(p.Manufacturer)
}
