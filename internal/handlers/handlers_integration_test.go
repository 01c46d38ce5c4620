package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lager/internal/handlers"
	"lager/internal/repositories"
	"lager/internal/services"
	"lager/internal/validation"
)

type testApp struct {
	app           *fiber.App
	contacts      *repositories.MockContactRepository
	manufacturers *repositories.MockManufacturerRepository
	products      *repositories.MockProductRepository
}

func newTestApp() *testApp {
	contacts := repositories.NewMockContactRepository()
	manufacturers := repositories.NewMockManufacturerRepository()
	products := repositories.NewMockProductRepository(manufacturers, contacts)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	validate := validation.New()

	productService := services.NewProductService(products, validate, nil, logger)
	manufacturerService := services.NewManufacturerService(manufacturers, contacts, validate, nil, logger)
	contactService := services.NewContactService(contacts, validate)

	app := fiber.New()
	api := app.Group("/api")
	handlers.NewProductHandler(productService, logger).RegisterRoutes(api)
	handlers.NewManufacturerHandler(manufacturerService, logger).RegisterRoutes(api)
	handlers.NewContactHandler(contactService, logger).RegisterRoutes(api)

	return &testApp{app: app, contacts: contacts, manufacturers: manufacturers, products: products}
}

func (ta *testApp) request(t *testing.T, method, path string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := ta.app.Test(req, -1)
	require.NoError(t, err)

	var decoded map[string]interface{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	// Non-JSON bodies (e.g. fiber's plain-text 404) leave decoded nil.
	_ = json.Unmarshal(raw, &decoded)
	return resp, decoded
}

func manufacturerBody(name string) map[string]interface{} {
	return map[string]interface{}{
		"name":    name,
		"country": "Germany",
		"contact": map[string]interface{}{
			"name":  "Jane Doe",
			"email": "jane@example.com",
			"phone": "+49301234567",
		},
	}
}

func (ta *testApp) createManufacturer(t *testing.T, name string) map[string]interface{} {
	t.Helper()
	resp, body := ta.request(t, fiber.MethodPost, "/api/manufacturers", manufacturerBody(name))
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	return body["data"].(map[string]interface{})
}

func productBody(name, manufacturerID string, price float64, stock int) map[string]interface{} {
	return map[string]interface{}{
		"name":          name,
		"sku":           "SKU-" + name,
		"price":         price,
		"manufacturer":  manufacturerID,
		"amountInStock": stock,
	}
}

func (ta *testApp) createProduct(t *testing.T, name, manufacturerID string, price float64, stock int) map[string]interface{} {
	t.Helper()
	resp, body := ta.request(t, fiber.MethodPost, "/api/products", productBody(name, manufacturerID, price, stock))
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	return body["data"].(map[string]interface{})
}

func TestCreateManufacturer(t *testing.T) {
	ta := newTestApp()

	resp, body := ta.request(t, fiber.MethodPost, "/api/manufacturers", manufacturerBody("Acme Corp"))

	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, "Manufacturer created", body["message"])

	data := body["data"].(map[string]interface{})
	assert.Equal(t, "Acme Corp", data["name"])
	assert.Len(t, data["id"], 24)

	contact := data["contact"].(map[string]interface{})
	assert.Equal(t, "Jane Doe", contact["name"])
	assert.Len(t, contact["id"], 24)
}

func TestCreateManufacturerDuplicateName(t *testing.T) {
	ta := newTestApp()
	ta.createManufacturer(t, "Acme Corp")

	resp, body := ta.request(t, fiber.MethodPost, "/api/manufacturers", manufacturerBody("ACME corp"))

	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, "CONFLICT", body["code"])
	assert.Equal(t, "Manufacturer name already exists", body["error"])
}

func TestCreateManufacturerValidationDetails(t *testing.T) {
	ta := newTestApp()

	payload := manufacturerBody("Acme Corp")
	payload["contact"].(map[string]interface{})["email"] = "broken"

	resp, body := ta.request(t, fiber.MethodPost, "/api/manufacturers", payload)

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "BAD_USER_INPUT", body["code"])

	details := body["details"].([]interface{})
	require.Len(t, details, 1)
	field := details[0].(map[string]interface{})
	assert.Equal(t, "contact.email", field["path"])
}

func TestGetManufacturerMalformedID(t *testing.T) {
	ta := newTestApp()

	resp, body := ta.request(t, fiber.MethodGet, "/api/manufacturers/not-an-id", nil)

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "BAD_USER_INPUT", body["code"])
}

func TestGetManufacturerNotFound(t *testing.T) {
	ta := newTestApp()

	resp, body := ta.request(t, fiber.MethodGet, "/api/manufacturers/507f1f77bcf86cd799439011", nil)

	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", body["code"])
}

func TestUpdateManufacturerPatchesNestedContact(t *testing.T) {
	ta := newTestApp()
	created := ta.createManufacturer(t, "Acme Corp")
	id := created["id"].(string)

	resp, body := ta.request(t, fiber.MethodPut, "/api/manufacturers/"+id, map[string]interface{}{
		"country": "Sweden",
		"contact": map[string]interface{}{"email": "new@example.com"},
	})

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "Sweden", data["country"])
	assert.Equal(t, "Acme Corp", data["name"])

	contact := data["contact"].(map[string]interface{})
	assert.Equal(t, "new@example.com", contact["email"])
	assert.Equal(t, "Jane Doe", contact["name"])
}

func TestDeleteManufacturerCascades(t *testing.T) {
	ta := newTestApp()
	created := ta.createManufacturer(t, "Acme Corp")
	id := created["id"].(string)

	resp, body := ta.request(t, fiber.MethodDelete, "/api/manufacturers/"+id, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "Acme Corp", data["name"])

	// The owned contact is gone too.
	resp, body = ta.request(t, fiber.MethodGet, "/api/contacts", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Empty(t, body["data"])

	// Deleting again fails NotFound.
	resp, body = ta.request(t, fiber.MethodDelete, "/api/manufacturers/"+id, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", body["code"])
}

func TestCreateProduct(t *testing.T) {
	ta := newTestApp()
	m := ta.createManufacturer(t, "Acme Corp")

	resp, body := ta.request(t, fiber.MethodPost, "/api/products", productBody("Hammer", m["id"].(string), 9.99, 100))

	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, "Product created", body["message"])
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "Hammer", data["name"])
	assert.Equal(t, m["id"], data["manufacturer"])
}

func TestCreateProductNegativePrice(t *testing.T) {
	ta := newTestApp()
	m := ta.createManufacturer(t, "Acme Corp")

	resp, body := ta.request(t, fiber.MethodPost, "/api/products", productBody("Hammer", m["id"].(string), -1, 100))

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "BAD_USER_INPUT", body["code"])
}

func TestUpdateProductNegativeStockLeavesDocumentUnchanged(t *testing.T) {
	ta := newTestApp()
	m := ta.createManufacturer(t, "Acme Corp")
	p := ta.createProduct(t, "Hammer", m["id"].(string), 9.99, 100)
	id := p["id"].(string)

	resp, body := ta.request(t, fiber.MethodPut, "/api/products/"+id, map[string]interface{}{
		"amountInStock": -5,
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "BAD_USER_INPUT", body["code"])

	resp, body = ta.request(t, fiber.MethodGet, "/api/products/"+id, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, float64(100), data["amountInStock"])
}

func TestListProductsPagination(t *testing.T) {
	ta := newTestApp()
	m := ta.createManufacturer(t, "Acme Corp")
	for _, name := range []string{"Anvil", "Bolt", "Chisel", "Drill", "File"} {
		ta.createProduct(t, name, m["id"].(string), 10, 50)
	}

	resp, body := ta.request(t, fiber.MethodGet, "/api/products?page=1&limit=2&sortBy=NAME_ASC", nil)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, float64(5), data["totalCount"])
	assert.Equal(t, true, data["hasNextPage"])
	items := data["items"].([]interface{})
	require.Len(t, items, 2)
	assert.Equal(t, "Anvil", items[0].(map[string]interface{})["name"])
}

func TestListProductsSearch(t *testing.T) {
	ta := newTestApp()
	m := ta.createManufacturer(t, "Acme Corp")
	ta.createProduct(t, "Claw Hammer", m["id"].(string), 10, 50)
	ta.createProduct(t, "Screwdriver", m["id"].(string), 5, 50)

	resp, body := ta.request(t, fiber.MethodGet, "/api/products?search=hammer", nil)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]interface{})
	items := data["items"].([]interface{})
	require.Len(t, items, 1)
	assert.Equal(t, "Claw Hammer", items[0].(map[string]interface{})["name"])
}

func TestTotalStockValueRoute(t *testing.T) {
	ta := newTestApp()
	m := ta.createManufacturer(t, "Acme Corp")
	ta.createProduct(t, "Hammer", m["id"].(string), 10, 3)

	resp, body := ta.request(t, fiber.MethodGet, "/api/products/total-stock-value", nil)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, float64(30), data["totalStockValue"])
}

func TestStockValueByManufacturerRoute(t *testing.T) {
	ta := newTestApp()
	m := ta.createManufacturer(t, "Acme Corp")
	ta.createProduct(t, "Hammer", m["id"].(string), 10, 3)

	resp, body := ta.request(t, fiber.MethodGet, "/api/products/total-stock-value-by-manufacturer", nil)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]interface{})
	items := data["items"].([]interface{})
	require.Len(t, items, 1)
	row := items[0].(map[string]interface{})
	assert.Equal(t, "Acme Corp", row["name"])
	assert.Equal(t, float64(30), row["totalStockValue"])
}

func TestLowStockRoute(t *testing.T) {
	ta := newTestApp()
	m := ta.createManufacturer(t, "Acme Corp")
	ta.createProduct(t, "Plenty", m["id"].(string), 10, 50)
	ta.createProduct(t, "Scarce", m["id"].(string), 10, 7)

	resp, body := ta.request(t, fiber.MethodGet, "/api/products/low-stock", nil)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	items := body["data"].([]interface{})
	require.Len(t, items, 1)
	assert.Equal(t, "Scarce", items[0].(map[string]interface{})["name"])
}

func TestCriticalStockRoute(t *testing.T) {
	ta := newTestApp()
	m := ta.createManufacturer(t, "Acme Corp")
	ta.createProduct(t, "Critical", m["id"].(string), 10, 2)

	resp, body := ta.request(t, fiber.MethodGet, "/api/products/critical-stock", nil)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]interface{})
	items := data["items"].([]interface{})
	require.Len(t, items, 1)
	row := items[0].(map[string]interface{})
	assert.Equal(t, "Acme Corp", row["manufacturer"])
	contact := row["contact"].(map[string]interface{})
	assert.Equal(t, "Jane Doe", contact["name"])
}

func TestContactsAreReadOnly(t *testing.T) {
	ta := newTestApp()
	ta.createManufacturer(t, "Acme Corp")

	resp, body := ta.request(t, fiber.MethodGet, "/api/contacts", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	items := body["data"].([]interface{})
	require.Len(t, items, 1)
	contact := items[0].(map[string]interface{})
	assert.Equal(t, "Jane Doe", contact["name"])

	resp, _ = ta.request(t, fiber.MethodGet, "/api/contacts/"+contact["id"].(string), nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// No write routes exist for contacts.
	resp, _ = ta.request(t, fiber.MethodPost, "/api/contacts", map[string]interface{}{"name": "X"})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestInvalidBodyIsBadInput(t *testing.T) {
	ta := newTestApp()

	req := httptest.NewRequest(fiber.MethodPost, "/api/products", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	resp, err := ta.app.Test(req, -1)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
