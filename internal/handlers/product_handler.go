package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"lager/internal/models"
	"lager/internal/services"
)

// ProductHandler handles HTTP requests for products, including the stock
// reports.
type ProductHandler struct {
	service *services.ProductService
	logger  *slog.Logger
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService, logger *slog.Logger) *ProductHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProductHandler{service: service, logger: logger.With("handler", "product")}
}

// RegisterRoutes registers the product routes. The report routes are
// registered before /:id so they are not captured as ids.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	r := router.Group("/products")
	r.Get("/total-stock-value", h.HandleTotalStockValue)
	r.Get("/total-stock-value-by-manufacturer", h.HandleStockValueByManufacturer)
	r.Get("/low-stock", h.HandleLowStock)
	r.Get("/critical-stock", h.HandleCriticalStock)
	r.Get("/", h.HandleList)
	r.Post("/", h.HandleCreate)
	r.Get("/:id", h.HandleGet)
	r.Put("/:id", h.HandleUpdate)
	r.Delete("/:id", h.HandleDelete)
}

// HandleList returns a page of products filtered and sorted by query params.
func (h *ProductHandler) HandleList(c *fiber.Ctx) error {
	page, err := h.service.List(c.UserContext(), services.ProductListParams{
		Page:   c.QueryInt("page", 1),
		Limit:  c.QueryInt("limit", 0),
		SortBy: c.Query("sortBy"),
		Search: c.Query("search"),
	})
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return respond(c, fiber.StatusOK, "All products", page)
}

// HandleGet returns a single product by id.
func (h *ProductHandler) HandleGet(c *fiber.Ctx) error {
	product, err := h.service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return respond(c, fiber.StatusOK, "Fetched product", product)
}

// HandleCreate creates a new product.
func (h *ProductHandler) HandleCreate(c *fiber.Ctx) error {
	var in models.ProductInput
	if err := c.BodyParser(&in); err != nil {
		return respondError(c, h.logger, badBody(err))
	}
	product, err := h.service.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return respond(c, fiber.StatusCreated, "Product created", product)
}

// HandleUpdate applies a partial update to a product.
func (h *ProductHandler) HandleUpdate(c *fiber.Ctx) error {
	var patch models.ProductPatch
	if err := c.BodyParser(&patch); err != nil {
		return respondError(c, h.logger, badBody(err))
	}
	product, err := h.service.Update(c.UserContext(), c.Params("id"), patch)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return respond(c, fiber.StatusOK, "Product updated", product)
}

// HandleDelete deletes a product and returns the deleted document.
func (h *ProductHandler) HandleDelete(c *fiber.Ctx) error {
	product, err := h.service.Delete(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return respond(c, fiber.StatusOK, "Product deleted", product)
}

// HandleTotalStockValue returns the total stock valuation over all products.
func (h *ProductHandler) HandleTotalStockValue(c *fiber.Ctx) error {
	total, err := h.service.TotalStockValue(c.UserContext())
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return respond(c, fiber.StatusOK, "Total stock value", fiber.Map{"totalStockValue": total})
}

// HandleStockValueByManufacturer returns the per-manufacturer stock
// valuation report.
func (h *ProductHandler) HandleStockValueByManufacturer(c *fiber.Ctx) error {
	page, err := h.service.StockValueByManufacturer(c.UserContext(), c.QueryInt("page", 1), c.QueryInt("limit", 0))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return respond(c, fiber.StatusOK, "Stock value by manufacturer", page)
}

// HandleLowStock returns all products below the low stock threshold.
func (h *ProductHandler) HandleLowStock(c *fiber.Ctx) error {
	items, err := h.service.LowStock(c.UserContext())
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return respond(c, fiber.StatusOK, "Low stock products", items)
}

// HandleCriticalStock returns the critical stock report joined with
// manufacturer and contact info.
func (h *ProductHandler) HandleCriticalStock(c *fiber.Ctx) error {
	page, err := h.service.CriticalStock(c.UserContext(), c.QueryInt("page", 1), c.QueryInt("limit", 0))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return respond(c, fiber.StatusOK, "Critical stock products", page)
}
