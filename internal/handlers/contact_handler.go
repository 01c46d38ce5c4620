package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"lager/internal/services"
)

// ContactHandler handles HTTP requests for contacts. Contacts are read-only
// over the API; they are written only through manufacturer operations.
type ContactHandler struct {
	service *services.ContactService
	logger  *slog.Logger
}

// NewContactHandler creates a new ContactHandler.
func NewContactHandler(service *services.ContactService, logger *slog.Logger) *ContactHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ContactHandler{service: service, logger: logger.With("handler", "contact")}
}

// RegisterRoutes registers the contact routes.
func (h *ContactHandler) RegisterRoutes(router fiber.Router) {
	r := router.Group("/contacts")
	r.Get("/", h.HandleList)
	r.Get("/:id", h.HandleGet)
}

// HandleList returns all contacts.
func (h *ContactHandler) HandleList(c *fiber.Ctx) error {
	contacts, err := h.service.List(c.UserContext())
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return respond(c, fiber.StatusOK, "All contacts", contacts)
}

// HandleGet returns a single contact by id.
func (h *ContactHandler) HandleGet(c *fiber.Ctx) error {
	contact, err := h.service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return respond(c, fiber.StatusOK, "Fetched contact", contact)
}
