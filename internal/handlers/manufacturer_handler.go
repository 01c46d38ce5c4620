package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"lager/internal/models"
	"lager/internal/services"
)

// ManufacturerHandler handles HTTP requests for manufacturers. All writes go
// through the composite Manufacturer+Contact operations of the service.
type ManufacturerHandler struct {
	service *services.ManufacturerService
	logger  *slog.Logger
}

// NewManufacturerHandler creates a new ManufacturerHandler.
func NewManufacturerHandler(service *services.ManufacturerService, logger *slog.Logger) *ManufacturerHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ManufacturerHandler{service: service, logger: logger.With("handler", "manufacturer")}
}

// RegisterRoutes registers the manufacturer routes.
func (h *ManufacturerHandler) RegisterRoutes(router fiber.Router) {
	r := router.Group("/manufacturers")
	r.Get("/", h.HandleList)
	r.Post("/", h.HandleCreate)
	r.Get("/:id", h.HandleGet)
	r.Put("/:id", h.HandleUpdate)
	r.Delete("/:id", h.HandleDelete)
}

// HandleList returns a page of manufacturers joined with their contacts.
func (h *ManufacturerHandler) HandleList(c *fiber.Ctx) error {
	page, err := h.service.List(c.UserContext(), c.QueryInt("page", 1), c.QueryInt("limit", 0), c.Query("search"))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return respond(c, fiber.StatusOK, "All manufacturers", page)
}

// HandleGet returns a single manufacturer by id, joined with its contact.
func (h *ManufacturerHandler) HandleGet(c *fiber.Ctx) error {
	m, err := h.service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return respond(c, fiber.StatusOK, "Fetched manufacturer", m)
}

// HandleCreate creates a manufacturer together with its nested contact.
func (h *ManufacturerHandler) HandleCreate(c *fiber.Ctx) error {
	var in models.ManufacturerInput
	if err := c.BodyParser(&in); err != nil {
		return respondError(c, h.logger, badBody(err))
	}
	m, err := h.service.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return respond(c, fiber.StatusCreated, "Manufacturer created", m)
}

// HandleUpdate applies a partial update to a manufacturer; a nested contact
// patch updates the linked contact in place.
func (h *ManufacturerHandler) HandleUpdate(c *fiber.Ctx) error {
	var patch models.ManufacturerPatch
	if err := c.BodyParser(&patch); err != nil {
		return respondError(c, h.logger, badBody(err))
	}
	m, err := h.service.Update(c.UserContext(), c.Params("id"), patch)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return respond(c, fiber.StatusOK, "Manufacturer updated", m)
}

// HandleDelete deletes a manufacturer and its contact, returning the deleted
// manufacturer joined with the contact's last known data.
func (h *ManufacturerHandler) HandleDelete(c *fiber.Ctx) error {
	m, err := h.service.Delete(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return respond(c, fiber.StatusOK, "Manufacturer deleted", m)
}
