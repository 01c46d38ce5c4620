package graphql

import (
	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"
)

// Handler serves the /graphql endpoint on the fiber app. Responses are
// always HTTP 200; failures are carried in the GraphQL errors array with a
// code extension (and a fields extension for validation failures).
type Handler struct {
	schema graphql.Schema
}

// NewHandler creates a new Handler over an executable schema.
func NewHandler(schema graphql.Schema) *Handler {
	return &Handler{schema: schema}
}

// RegisterRoutes mounts the endpoint for POST and GET requests.
func (h *Handler) RegisterRoutes(router fiber.Router) {
	router.Post("/graphql", h.Handle)
	router.Get("/graphql", h.Handle)
}

type request struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

// Handle executes one GraphQL request.
func (h *Handler) Handle(c *fiber.Ctx) error {
	var req request
	if c.Method() == fiber.MethodGet {
		req.Query = c.Query("query")
		req.OperationName = c.Query("operationName")
	} else if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body: " + err.Error(),
		})
	}

	result := graphql.Do(graphql.Params{
		Schema:         h.schema,
		RequestString:  req.Query,
		OperationName:  req.OperationName,
		VariableValues: req.Variables,
		Context:        c.UserContext(),
	})
	return c.JSON(result)
}
