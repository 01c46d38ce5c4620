package graphql

import (
	"github.com/graphql-go/graphql"

	"lager/internal/models"
)

// NewSchema builds the executable schema over the given resolver. The type
// definitions mirror the REST payloads; page types all share the
// items/totalCount/hasNextPage shape.
func NewSchema(r *Resolver) (graphql.Schema, error) {
	sortEnum := graphql.NewEnum(graphql.EnumConfig{
		Name: "ProductSortOption",
		Values: graphql.EnumValueConfigMap{
			"NAME_ASC":   &graphql.EnumValueConfig{Value: string(models.SortNameAsc)},
			"PRICE_ASC":  &graphql.EnumValueConfig{Value: string(models.SortPriceAsc)},
			"PRICE_DESC": &graphql.EnumValueConfig{Value: string(models.SortPriceDesc)},
			"STOCK_ASC":  &graphql.EnumValueConfig{Value: string(models.SortStockAsc)},
			"STOCK_DESC": &graphql.EnumValueConfig{Value: string(models.SortStockDesc)},
		},
	})

	contactType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Contact",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.NewNonNull(graphql.ID),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if c, ok := contactSource(p.Source); ok {
						return c.ID.Hex(), nil
					}
					return nil, nil
				},
			},
			"name":  &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"email": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"phone": &graphql.Field{Type: graphql.String},
		},
	})

	manufacturerType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Manufacturer",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.NewNonNull(graphql.ID),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if m, ok := manufacturerSource(p.Source); ok {
						return m.ID.Hex(), nil
					}
					return nil, nil
				},
			},
			"name":        &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"country":     &graphql.Field{Type: graphql.String},
			"website":     &graphql.Field{Type: graphql.String},
			"description": &graphql.Field{Type: graphql.String},
			"address":     &graphql.Field{Type: graphql.String},
			"contact":     &graphql.Field{Type: contactType},
		},
	})

	productType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Product",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.NewNonNull(graphql.ID),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if prod, ok := productSource(p.Source); ok {
						return prod.ID.Hex(), nil
					}
					return nil, nil
				},
			},
			"name":        &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"sku":         &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"description": &graphql.Field{Type: graphql.String},
			"price":       &graphql.Field{Type: graphql.Float},
			"category":    &graphql.Field{Type: graphql.String},
			"manufacturer": &graphql.Field{
				Type:    manufacturerType,
				Resolve: r.do(r.resolveProductManufacturer),
			},
			"amountInStock": &graphql.Field{Type: graphql.Int},
			"isLowStock": &graphql.Field{
				Type: graphql.Boolean,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if prod, ok := productSource(p.Source); ok {
						return prod.IsLowStock(), nil
					}
					return nil, nil
				},
			},
			"isCriticalStock": &graphql.Field{
				Type: graphql.Boolean,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if prod, ok := productSource(p.Source); ok {
						return prod.IsCriticalStock(), nil
					}
					return nil, nil
				},
			},
		},
	})

	productPageType := pageType("ProductPage", productType)
	manufacturerPageType := pageType("ManufacturerPage", manufacturerType)

	stockValueRowType := graphql.NewObject(graphql.ObjectConfig{
		Name: "StockValueByManufacturer",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.ID,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if row, ok := p.Source.(models.ManufacturerStockValue); ok {
						return row.ManufacturerID.Hex(), nil
					}
					return nil, nil
				},
			},
			"name":            &graphql.Field{Type: graphql.String},
			"country":         &graphql.Field{Type: graphql.String},
			"website":         &graphql.Field{Type: graphql.String},
			"totalStock":      &graphql.Field{Type: graphql.Int},
			"totalStockValue": &graphql.Field{Type: graphql.Float},
		},
	})
	stockValuePageType := pageType("StockValueByManufacturerPage", stockValueRowType)

	criticalContactType := graphql.NewObject(graphql.ObjectConfig{
		Name: "CriticalStockContact",
		Fields: graphql.Fields{
			"name":  &graphql.Field{Type: graphql.String},
			"phone": &graphql.Field{Type: graphql.String},
			"email": &graphql.Field{Type: graphql.String},
		},
	})

	criticalProductType := graphql.NewObject(graphql.ObjectConfig{
		Name: "CriticalStockProduct",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.NewNonNull(graphql.ID),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if row, ok := p.Source.(models.CriticalStockProduct); ok {
						return row.ID.Hex(), nil
					}
					return nil, nil
				},
			},
			"name":          &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"sku":           &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"price":         &graphql.Field{Type: graphql.Float},
			"amountInStock": &graphql.Field{Type: graphql.Int},
			"manufacturer":  &graphql.Field{Type: graphql.String},
			"contact":       &graphql.Field{Type: criticalContactType},
		},
	})
	criticalProductPageType := pageType("CriticalProductPage", criticalProductType)

	contactInputType := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "ContactInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"name":  &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"email": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"phone": &graphql.InputObjectFieldConfig{Type: graphql.String},
		},
	})

	updateContactInputType := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "UpdateContactInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"name":  &graphql.InputObjectFieldConfig{Type: graphql.String},
			"email": &graphql.InputObjectFieldConfig{Type: graphql.String},
			"phone": &graphql.InputObjectFieldConfig{Type: graphql.String},
		},
	})

	manufacturerInputType := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "ManufacturerInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"name":        &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"country":     &graphql.InputObjectFieldConfig{Type: graphql.String},
			"website":     &graphql.InputObjectFieldConfig{Type: graphql.String},
			"description": &graphql.InputObjectFieldConfig{Type: graphql.String},
			"address":     &graphql.InputObjectFieldConfig{Type: graphql.String},
			"contact":     &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(contactInputType)},
		},
	})

	updateManufacturerInputType := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "UpdateManufacturerInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"name":        &graphql.InputObjectFieldConfig{Type: graphql.String},
			"country":     &graphql.InputObjectFieldConfig{Type: graphql.String},
			"website":     &graphql.InputObjectFieldConfig{Type: graphql.String},
			"description": &graphql.InputObjectFieldConfig{Type: graphql.String},
			"address":     &graphql.InputObjectFieldConfig{Type: graphql.String},
			"contact":     &graphql.InputObjectFieldConfig{Type: updateContactInputType},
		},
	})

	productInputType := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "ProductInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"name":          &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"sku":           &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"description":   &graphql.InputObjectFieldConfig{Type: graphql.String},
			"price":         &graphql.InputObjectFieldConfig{Type: graphql.Float},
			"category":      &graphql.InputObjectFieldConfig{Type: graphql.String},
			"manufacturer":  &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.ID)},
			"amountInStock": &graphql.InputObjectFieldConfig{Type: graphql.Int},
		},
	})

	updateProductInputType := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "UpdateProductInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"name":          &graphql.InputObjectFieldConfig{Type: graphql.String},
			"sku":           &graphql.InputObjectFieldConfig{Type: graphql.String},
			"description":   &graphql.InputObjectFieldConfig{Type: graphql.String},
			"price":         &graphql.InputObjectFieldConfig{Type: graphql.Float},
			"category":      &graphql.InputObjectFieldConfig{Type: graphql.String},
			"manufacturer":  &graphql.InputObjectFieldConfig{Type: graphql.ID},
			"amountInStock": &graphql.InputObjectFieldConfig{Type: graphql.Int},
		},
	})

	pagingArgs := graphql.FieldConfigArgument{
		"page":  &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 1},
		"limit": &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 10},
	}

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"products": &graphql.Field{
				Type: graphql.NewNonNull(productPageType),
				Args: graphql.FieldConfigArgument{
					"page":   &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 1},
					"limit":  &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 10},
					"sortBy": &graphql.ArgumentConfig{Type: sortEnum, DefaultValue: string(models.SortNameAsc)},
					"search": &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: r.do(r.resolveProducts),
			},
			"product": &graphql.Field{
				Type:    productType,
				Args:    idArg(),
				Resolve: r.do(r.resolveProduct),
			},
			"stockValue": &graphql.Field{
				Type:    graphql.Float,
				Resolve: r.do(r.resolveStockValue),
			},
			"stockValueByManufacturer": &graphql.Field{
				Type:    graphql.NewNonNull(stockValuePageType),
				Args:    pagingArgs,
				Resolve: r.do(r.resolveStockValueByManufacturer),
			},
			"productLowStock": &graphql.Field{
				Type:    graphql.NewList(productType),
				Resolve: r.do(r.resolveLowStock),
			},
			"productCriticalStock": &graphql.Field{
				Type:    graphql.NewNonNull(criticalProductPageType),
				Args:    pagingArgs,
				Resolve: r.do(r.resolveCriticalStock),
			},
			"manufacturers": &graphql.Field{
				Type: graphql.NewNonNull(manufacturerPageType),
				Args: graphql.FieldConfigArgument{
					"page":   &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 1},
					"limit":  &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 10},
					"search": &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: r.do(r.resolveManufacturers),
			},
			"manufacturer": &graphql.Field{
				Type:    manufacturerType,
				Args:    idArg(),
				Resolve: r.do(r.resolveManufacturer),
			},
			"contacts": &graphql.Field{
				Type:    graphql.NewList(contactType),
				Resolve: r.do(r.resolveContacts),
			},
			"contact": &graphql.Field{
				Type:    contactType,
				Args:    idArg(),
				Resolve: r.do(r.resolveContact),
			},
		},
	})

	mutationType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"addProduct": &graphql.Field{
				Type: productType,
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(productInputType)},
				},
				Resolve: r.do(r.resolveAddProduct),
			},
			"updateProduct": &graphql.Field{
				Type: productType,
				Args: graphql.FieldConfigArgument{
					"id":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(updateProductInputType)},
				},
				Resolve: r.do(r.resolveUpdateProduct),
			},
			"deleteProduct": &graphql.Field{
				Type:    productType,
				Args:    idArg(),
				Resolve: r.do(r.resolveDeleteProduct),
			},
			"addManufacturer": &graphql.Field{
				Type: manufacturerType,
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(manufacturerInputType)},
				},
				Resolve: r.do(r.resolveAddManufacturer),
			},
			"updateManufacturer": &graphql.Field{
				Type: manufacturerType,
				Args: graphql.FieldConfigArgument{
					"id":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(updateManufacturerInputType)},
				},
				Resolve: r.do(r.resolveUpdateManufacturer),
			},
			"deleteManufacturer": &graphql.Field{
				Type:    manufacturerType,
				Args:    idArg(),
				Resolve: r.do(r.resolveDeleteManufacturer),
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    queryType,
		Mutation: mutationType,
	})
}

// pageType builds the uniform page wrapper around an item type.
func pageType(name string, itemType *graphql.Object) *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: name,
		Fields: graphql.Fields{
			"items":       &graphql.Field{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(itemType)))},
			"totalCount":  &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"hasNextPage": &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
		},
	})
}

func idArg() graphql.FieldConfigArgument {
	return graphql.FieldConfigArgument{
		"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
	}
}
