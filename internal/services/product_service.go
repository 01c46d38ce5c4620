package services

import (
	"context"
	"log/slog"

	"lager/internal/models"
	"lager/internal/repositories"
	"lager/internal/validation"
)

// ProductService handles business logic related to products: validation,
// pagination, the derived stock reports and event publishing. It is
// stateless; every call is a fresh request/response cycle against the store.
type ProductService struct {
	repo     repositories.ProductRepository
	validate *validation.Validator
	events   EventPublisher
	logger   *slog.Logger
}

// NewProductService creates a new ProductService. events may be nil to
// disable publishing.
func NewProductService(repo repositories.ProductRepository, validate *validation.Validator, events EventPublisher, logger *slog.Logger) *ProductService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProductService{
		repo:     repo,
		validate: validate,
		events:   events,
		logger:   logger.With("service", "product"),
	}
}

// ProductListParams are the list query parameters shared by both transports.
type ProductListParams struct {
	Page   int
	Limit  int
	SortBy string
	Search string
}

// List returns a page of products filtered by an optional case-insensitive
// name search and ordered by the requested sort option.
func (s *ProductService) List(ctx context.Context, params ProductListParams) (*models.ProductPage, error) {
	skip, limit := pageWindow(params.Page, params.Limit)
	items, total, err := s.repo.Find(ctx, params.Search, models.ParseProductSort(params.SortBy), skip, limit)
	if err != nil {
		return nil, err
	}
	return &models.ProductPage{
		Items:       items,
		TotalCount:  total,
		HasNextPage: hasNextPage(skip, int64(len(items)), total, limit),
	}, nil
}

// Get returns a product by id.
func (s *ProductService) Get(ctx context.Context, id string) (*models.Product, error) {
	oid, err := s.validate.ParseID("id", id)
	if err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, oid)
}

// Create validates and stores a new product. The manufacturer reference is
// checked for shape only; its existence is not verified.
func (s *ProductService) Create(ctx context.Context, in models.ProductInput) (*models.Product, error) {
	in.Normalize()
	if err := s.validate.Struct("Product validation failed", in); err != nil {
		return nil, err
	}
	manufacturerID, err := s.validate.ParseID("manufacturer", in.Manufacturer)
	if err != nil {
		return nil, err
	}

	product := in.ToProduct(manufacturerID)
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, err
	}

	publishEvent(s.logger, s.events, EventProductCreated, product)
	s.alertLowStock(product)
	return product, nil
}

// Update validates and applies a partial patch. Negative price or stock
// values are rejected before any store write, leaving the prior document
// unchanged.
func (s *ProductService) Update(ctx context.Context, id string, patch models.ProductPatch) (*models.Product, error) {
	oid, err := s.validate.ParseID("id", id)
	if err != nil {
		return nil, err
	}
	patch.Normalize()
	if err := s.validate.Struct("Product validation failed", patch); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, oid, patch)
	if err != nil {
		return nil, err
	}

	publishEvent(s.logger, s.events, EventProductUpdated, updated)
	s.alertLowStock(updated)
	return updated, nil
}

// Delete removes a product and returns the deleted document.
func (s *ProductService) Delete(ctx context.Context, id string) (*models.Product, error) {
	oid, err := s.validate.ParseID("id", id)
	if err != nil {
		return nil, err
	}
	deleted, err := s.repo.Delete(ctx, oid)
	if err != nil {
		return nil, err
	}

	publishEvent(s.logger, s.events, EventProductDeleted, deleted)
	return deleted, nil
}

// TotalStockValue sums price*amountInStock over all products.
func (s *ProductService) TotalStockValue(ctx context.Context) (float64, error) {
	return s.repo.TotalStockValue(ctx)
}

// StockValueByManufacturer returns the per-manufacturer stock valuation
// report, paginated like any list query.
func (s *ProductService) StockValueByManufacturer(ctx context.Context, page, limit int) (*models.StockValuePage, error) {
	skip, lim := pageWindow(page, limit)
	items, total, err := s.repo.StockValueByManufacturer(ctx, skip, lim)
	if err != nil {
		return nil, err
	}
	return &models.StockValuePage{
		Items:       items,
		TotalCount:  total,
		HasNextPage: hasNextPage(skip, int64(len(items)), total, lim),
	}, nil
}

// LowStock returns all products below the low stock threshold.
func (s *ProductService) LowStock(ctx context.Context) ([]models.Product, error) {
	return s.repo.LowStock(ctx)
}

// CriticalStock returns the critical stock report joined with manufacturer
// and contact info, paginated.
func (s *ProductService) CriticalStock(ctx context.Context, page, limit int) (*models.CriticalStockPage, error) {
	skip, lim := pageWindow(page, limit)
	items, total, err := s.repo.CriticalStock(ctx, skip, lim)
	if err != nil {
		return nil, err
	}
	return &models.CriticalStockPage{
		Items:       items,
		TotalCount:  total,
		HasNextPage: hasNextPage(skip, int64(len(items)), total, lim),
	}, nil
}

func (s *ProductService) alertLowStock(p *models.Product) {
	if p.IsLowStock() {
		publishEvent(s.logger, s.events, EventStockLow, p)
	}
}
