// Package graphql exposes the inventory operations over a single GraphQL
// endpoint. The schema is built in code against the same services the REST
// handlers use, so both transports stay behaviorally identical.
package graphql

import (
	"encoding/json"
	"log/slog"

	"github.com/graphql-go/graphql"

	"lager/internal/apperrors"
	"lager/internal/models"
	"lager/internal/services"
)

// Resolver binds the GraphQL fields to the underlying services.
type Resolver struct {
	products      *services.ProductService
	manufacturers *services.ManufacturerService
	contacts      *services.ContactService
	logger        *slog.Logger
}

// NewResolver creates a new Resolver.
func NewResolver(products *services.ProductService, manufacturers *services.ManufacturerService, contacts *services.ContactService, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{
		products:      products,
		manufacturers: manufacturers,
		contacts:      contacts,
		logger:        logger.With("component", "graphql"),
	}
}

// do wraps a resolver so every failure crossing the transport boundary is a
// taxonomy error; unclassified errors are coerced to Internal and logged.
func (r *Resolver) do(fn graphql.FieldResolveFn) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		v, err := fn(p)
		if err != nil {
			ae := apperrors.From(err)
			if ae.Kind == apperrors.Internal {
				r.logger.Error("resolver failed", "field", p.Info.FieldName, "error", err)
			}
			return nil, ae
		}
		return v, nil
	}
}

// decodeInput converts a GraphQL input map into a typed input struct.
func decodeInput(arg interface{}, dst interface{}) error {
	b, err := json.Marshal(arg)
	if err != nil {
		return apperrors.NewBadInput("Invalid input")
	}
	if err := json.Unmarshal(b, dst); err != nil {
		return apperrors.NewBadInput("Invalid input: " + err.Error())
	}
	return nil
}

func intArg(p graphql.ResolveParams, name string, fallback int) int {
	if v, ok := p.Args[name].(int); ok {
		return v
	}
	return fallback
}

func stringArg(p graphql.ResolveParams, name string) string {
	if v, ok := p.Args[name].(string); ok {
		return v
	}
	return ""
}

// Query resolvers.

func (r *Resolver) resolveProducts(p graphql.ResolveParams) (interface{}, error) {
	return r.products.List(p.Context, services.ProductListParams{
		Page:   intArg(p, "page", 1),
		Limit:  intArg(p, "limit", 10),
		SortBy: stringArg(p, "sortBy"),
		Search: stringArg(p, "search"),
	})
}

func (r *Resolver) resolveProduct(p graphql.ResolveParams) (interface{}, error) {
	return r.products.Get(p.Context, stringArg(p, "id"))
}

func (r *Resolver) resolveStockValue(p graphql.ResolveParams) (interface{}, error) {
	return r.products.TotalStockValue(p.Context)
}

func (r *Resolver) resolveStockValueByManufacturer(p graphql.ResolveParams) (interface{}, error) {
	return r.products.StockValueByManufacturer(p.Context, intArg(p, "page", 1), intArg(p, "limit", 10))
}

func (r *Resolver) resolveLowStock(p graphql.ResolveParams) (interface{}, error) {
	return r.products.LowStock(p.Context)
}

func (r *Resolver) resolveCriticalStock(p graphql.ResolveParams) (interface{}, error) {
	return r.products.CriticalStock(p.Context, intArg(p, "page", 1), intArg(p, "limit", 10))
}

func (r *Resolver) resolveManufacturers(p graphql.ResolveParams) (interface{}, error) {
	return r.manufacturers.List(p.Context, intArg(p, "page", 1), intArg(p, "limit", 10), stringArg(p, "search"))
}

func (r *Resolver) resolveManufacturer(p graphql.ResolveParams) (interface{}, error) {
	return r.manufacturers.Get(p.Context, stringArg(p, "id"))
}

func (r *Resolver) resolveContacts(p graphql.ResolveParams) (interface{}, error) {
	return r.contacts.List(p.Context)
}

func (r *Resolver) resolveContact(p graphql.ResolveParams) (interface{}, error) {
	return r.contacts.Get(p.Context, stringArg(p, "id"))
}

// resolveProductManufacturer joins a product's manufacturer on demand.
func (r *Resolver) resolveProductManufacturer(p graphql.ResolveParams) (interface{}, error) {
	product, ok := productSource(p.Source)
	if !ok {
		return nil, nil
	}
	m, err := r.manufacturers.Get(p.Context, product.ManufacturerID.Hex())
	if err != nil {
		// A dangling reference is not an error on read: the reference is
		// not verified at product write time.
		if apperrors.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return m, nil
}

// Mutation resolvers.

func (r *Resolver) resolveAddProduct(p graphql.ResolveParams) (interface{}, error) {
	var in models.ProductInput
	if err := decodeInput(p.Args["input"], &in); err != nil {
		return nil, err
	}
	return r.products.Create(p.Context, in)
}

func (r *Resolver) resolveUpdateProduct(p graphql.ResolveParams) (interface{}, error) {
	var patch models.ProductPatch
	if err := decodeInput(p.Args["input"], &patch); err != nil {
		return nil, err
	}
	return r.products.Update(p.Context, stringArg(p, "id"), patch)
}

func (r *Resolver) resolveDeleteProduct(p graphql.ResolveParams) (interface{}, error) {
	return r.products.Delete(p.Context, stringArg(p, "id"))
}

func (r *Resolver) resolveAddManufacturer(p graphql.ResolveParams) (interface{}, error) {
	var in models.ManufacturerInput
	if err := decodeInput(p.Args["input"], &in); err != nil {
		return nil, err
	}
	return r.manufacturers.Create(p.Context, in)
}

func (r *Resolver) resolveUpdateManufacturer(p graphql.ResolveParams) (interface{}, error) {
	var patch models.ManufacturerPatch
	if err := decodeInput(p.Args["input"], &patch); err != nil {
		return nil, err
	}
	return r.manufacturers.Update(p.Context, stringArg(p, "id"), patch)
}

func (r *Resolver) resolveDeleteManufacturer(p graphql.ResolveParams) (interface{}, error) {
	return r.manufacturers.Delete(p.Context, stringArg(p, "id"))
}

// Source casts. List items arrive as values, single results as pointers.

func productSource(src interface{}) (models.Product, bool) {
	switch v := src.(type) {
	case models.Product:
		return v, true
	case *models.Product:
		return *v, true
	}
	return models.Product{}, false
}

func manufacturerSource(src interface{}) (models.Manufacturer, bool) {
	switch v := src.(type) {
	case models.Manufacturer:
		return v, true
	case *models.Manufacturer:
		return *v, true
	}
	return models.Manufacturer{}, false
}

func contactSource(src interface{}) (models.Contact, bool) {
	switch v := src.(type) {
	case models.Contact:
		return v, true
	case *models.Contact:
		return *v, true
	}
	return models.Contact{}, false
}
