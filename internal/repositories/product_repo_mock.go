package repositories

import (
	"context"
	"sort"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"lager/internal/apperrors"
	"lager/internal/models"
)

// MockProductRepository is an in-memory implementation of ProductRepository.
// The joined reports resolve manufacturers and contacts through the sibling
// mock repositories, mirroring the $lookup stages of the Mongo adapter;
// either sibling may be nil, in which case joined rows are excluded.
type MockProductRepository struct {
	mu            sync.RWMutex
	products      map[primitive.ObjectID]models.Product
	manufacturers *MockManufacturerRepository
	contacts      *MockContactRepository
}

// NewMockProductRepository creates a new instance of MockProductRepository.
func NewMockProductRepository(manufacturers *MockManufacturerRepository, contacts *MockContactRepository) *MockProductRepository {
	return &MockProductRepository{
		products:      make(map[primitive.ObjectID]models.Product),
		manufacturers: manufacturers,
		contacts:      contacts,
	}
}

func (r *MockProductRepository) snapshot() []models.Product {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		list = append(list, p)
	}
	return list
}

// Find lists products with optional name search, sort ordering and
// skip/limit.
func (r *MockProductRepository) Find(_ context.Context, search string, sortBy models.ProductSortOption, skip, limit int64) ([]models.Product, int64, error) {
	needle := strings.ToLower(strings.TrimSpace(search))
	matched := []models.Product{}
	for _, p := range r.snapshot() {
		if needle == "" || strings.Contains(strings.ToLower(p.Name), needle) {
			matched = append(matched, p)
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		switch sortBy {
		case models.SortPriceAsc:
			if a.Price != b.Price {
				return a.Price < b.Price
			}
		case models.SortPriceDesc:
			if a.Price != b.Price {
				return a.Price > b.Price
			}
		case models.SortStockAsc:
			if a.AmountInStock != b.AmountInStock {
				return a.AmountInStock < b.AmountInStock
			}
		case models.SortStockDesc:
			if a.AmountInStock != b.AmountInStock {
				return a.AmountInStock > b.AmountInStock
			}
		default:
			if a.Name != b.Name {
				return a.Name < b.Name
			}
		}
		return a.ID.Hex() < b.ID.Hex()
	})

	total := int64(len(matched))
	return slicePage(matched, skip, limit), total, nil
}

// GetByID returns a product by its id.
func (r *MockProductRepository) GetByID(_ context.Context, id primitive.ObjectID) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.products[id]
	if !ok {
		return nil, apperrors.NewNotFound("Product not found")
	}
	return &p, nil
}

// Create adds a new product, assigning an id when absent.
func (r *MockProductRepository) Create(_ context.Context, p *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	r.products[p.ID] = *p
	return nil
}

// Update applies a partial patch to an existing product.
func (r *MockProductRepository) Update(_ context.Context, id primitive.ObjectID, patch models.ProductPatch) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.products[id]
	if !ok {
		return nil, apperrors.NewNotFound("Product not found")
	}
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.SKU != nil {
		p.SKU = *patch.SKU
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	if patch.Manufacturer != nil {
		oid, err := primitive.ObjectIDFromHex(*patch.Manufacturer)
		if err != nil {
			return nil, apperrors.NewBadInput("Invalid manufacturer id", apperrors.FieldError{
				Path: "manufacturer", Message: "must be a 24 character hex string", Code: "len",
			})
		}
		p.ManufacturerID = oid
	}
	if patch.AmountInStock != nil {
		p.AmountInStock = *patch.AmountInStock
	}
	r.products[id] = p
	return &p, nil
}

// Delete removes a product and returns the deleted document.
func (r *MockProductRepository) Delete(_ context.Context, id primitive.ObjectID) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.products[id]
	if !ok {
		return nil, apperrors.NewNotFound("Product not found")
	}
	delete(r.products, id)
	return &p, nil
}

// TotalStockValue sums price*amountInStock over all products.
func (r *MockProductRepository) TotalStockValue(_ context.Context) (float64, error) {
	var total float64
	for _, p := range r.snapshot() {
		total += p.Price * float64(p.AmountInStock)
	}
	return total, nil
}

// StockValueByManufacturer groups products by manufacturer and joins the
// manufacturer document, sorted by total stock value descending.
func (r *MockProductRepository) StockValueByManufacturer(_ context.Context, skip, limit int64) ([]models.ManufacturerStockValue, int64, error) {
	type group struct {
		stock int
		value float64
	}
	groups := map[primitive.ObjectID]*group{}
	for _, p := range r.snapshot() {
		g, ok := groups[p.ManufacturerID]
		if !ok {
			g = &group{}
			groups[p.ManufacturerID] = g
		}
		g.stock += p.AmountInStock
		g.value += p.Price * float64(p.AmountInStock)
	}

	rows := []models.ManufacturerStockValue{}
	for id, g := range groups {
		if r.manufacturers == nil {
			continue
		}
		m, ok := r.manufacturers.lookup(id)
		if !ok {
			continue
		}
		rows = append(rows, models.ManufacturerStockValue{
			ManufacturerID:  id,
			Name:            m.Name,
			Country:         m.Country,
			Website:         m.Website,
			TotalStock:      g.stock,
			TotalStockValue: g.value,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].TotalStockValue != rows[j].TotalStockValue {
			return rows[i].TotalStockValue > rows[j].TotalStockValue
		}
		return rows[i].ManufacturerID.Hex() < rows[j].ManufacturerID.Hex()
	})

	total := int64(len(rows))
	return slicePage(rows, skip, limit), total, nil
}

// LowStock returns every product below the low stock threshold.
func (r *MockProductRepository) LowStock(_ context.Context) ([]models.Product, error) {
	items := []models.Product{}
	for _, p := range r.snapshot() {
		if p.IsLowStock() {
			items = append(items, p)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID.Hex() < items[j].ID.Hex() })
	return items, nil
}

// CriticalStock returns products below the critical threshold joined with
// manufacturer name and contact. Products whose manufacturer or contact does
// not resolve are excluded.
func (r *MockProductRepository) CriticalStock(_ context.Context, skip, limit int64) ([]models.CriticalStockProduct, int64, error) {
	rows := []models.CriticalStockProduct{}
	for _, p := range r.snapshot() {
		if !p.IsCriticalStock() {
			continue
		}
		if r.manufacturers == nil || r.contacts == nil {
			continue
		}
		m, ok := r.manufacturers.lookup(p.ManufacturerID)
		if !ok {
			continue
		}
		c, ok := r.contacts.lookup(m.ContactID)
		if !ok {
			continue
		}
		rows = append(rows, models.CriticalStockProduct{
			ID:            p.ID,
			Name:          p.Name,
			SKU:           p.SKU,
			Price:         p.Price,
			AmountInStock: p.AmountInStock,
			Manufacturer:  m.Name,
			Contact:       models.CriticalStockContact{Name: c.Name, Phone: c.Phone, Email: c.Email},
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].AmountInStock != rows[j].AmountInStock {
			return rows[i].AmountInStock < rows[j].AmountInStock
		}
		return rows[i].ID.Hex() < rows[j].ID.Hex()
	})

	total := int64(len(rows))
	return slicePage(rows, skip, limit), total, nil
}
