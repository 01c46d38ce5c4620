package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"lager/internal/apperrors"
)

// respond writes the success envelope shared by every REST endpoint.
func respond(c *fiber.Ctx, status int, message string, data interface{}) error {
	return c.Status(status).JSON(fiber.Map{
		"message": message,
		"data":    data,
	})
}

// respondError maps a taxonomy error onto the REST envelope and status. Any
// unclassified error is coerced to Internal here, so raw store errors never
// reach the caller; the original cause is logged instead.
func respondError(c *fiber.Ctx, logger *slog.Logger, err error) error {
	ae := apperrors.From(err)
	if ae.Kind == apperrors.Internal {
		logger.Error("request failed", "path", c.Path(), "method", c.Method(), "error", err)
		return c.Status(ae.Kind.HTTPStatus()).JSON(fiber.Map{
			"message": ae.Message,
			"error":   ae.Kind.Code(),
		})
	}

	body := fiber.Map{
		"error": ae.Message,
		"code":  ae.Kind.Code(),
	}
	if len(ae.Fields) > 0 {
		body["details"] = ae.Fields
	}
	return c.Status(ae.Kind.HTTPStatus()).JSON(body)
}

// badBody is the error for an unparseable request body.
func badBody(err error) error {
	return apperrors.NewBadInput("Invalid request body: " + err.Error())
}
