package validation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lager/internal/apperrors"
	"lager/internal/models"
	"lager/internal/validation"
)

func validManufacturerInput() models.ManufacturerInput {
	return models.ManufacturerInput{
		Name:    "Acme Corp",
		Country: "Germany",
		Website: "https://acme.example.com",
		Contact: models.ContactInput{
			Name:  "Jane Doe",
			Email: "jane@acme.example.com",
			Phone: "+49 30 1234567",
		},
	}
}

func TestStructAcceptsValidInput(t *testing.T) {
	v := validation.New()
	in := validManufacturerInput()
	in.Normalize()
	assert.NoError(t, v.Struct("Manufacturer validation failed", in))
}

func TestStructReportsNestedFieldPaths(t *testing.T) {
	v := validation.New()
	in := validManufacturerInput()
	in.Contact.Email = "not-an-email"
	in.Normalize()

	err := v.Struct("Manufacturer validation failed", in)
	require.Error(t, err)

	ae := apperrors.From(err)
	assert.Equal(t, apperrors.BadInput, ae.Kind)
	require.Len(t, ae.Fields, 1)
	assert.Equal(t, "contact.email", ae.Fields[0].Path)
	assert.Equal(t, "email", ae.Fields[0].Code)
	assert.Equal(t, "Invalid email format", ae.Fields[0].Message)
}

func TestStructCollectsEveryViolation(t *testing.T) {
	v := validation.New()
	in := models.ProductInput{
		Name:          "x",
		SKU:           "ab",
		Price:         -1,
		Manufacturer:  "nope",
		AmountInStock: -5,
	}
	in.Normalize()

	ae := apperrors.From(v.Struct("Product validation failed", in))
	assert.Equal(t, apperrors.BadInput, ae.Kind)

	paths := map[string]bool{}
	for _, fe := range ae.Fields {
		paths[fe.Path] = true
	}
	assert.True(t, paths["name"])
	assert.True(t, paths["sku"])
	assert.True(t, paths["price"])
	assert.True(t, paths["manufacturer"])
	assert.True(t, paths["amountInStock"])
}

func TestNormalizeTrimsBeforeValidation(t *testing.T) {
	v := validation.New()
	in := validManufacturerInput()
	in.Name = "  Acme Corp  "
	in.Contact.Email = " jane@acme.example.com "
	in.Normalize()

	assert.NoError(t, v.Struct("Manufacturer validation failed", in))
	assert.Equal(t, "Acme Corp", in.Name)
	assert.Equal(t, "jane@acme.example.com", in.Contact.Email)
}

func TestPatchNormalizeTreatsEmptyAsAbsent(t *testing.T) {
	v := validation.New()
	empty := "   "
	name := " New Name "
	patch := models.ManufacturerPatch{
		Name:    &name,
		Country: &empty,
		Contact: &models.ContactPatch{Phone: &empty},
	}
	patch.Normalize()

	assert.NoError(t, v.Struct("Manufacturer validation failed", patch))
	require.NotNil(t, patch.Name)
	assert.Equal(t, "New Name", *patch.Name)
	assert.Nil(t, patch.Country)
	// A contact patch that trims to nothing is dropped entirely.
	assert.Nil(t, patch.Contact)
}

func TestParseIDAcceptsCanonicalHex(t *testing.T) {
	v := validation.New()
	oid, err := v.ParseID("id", "507f1f77bcf86cd799439011")
	require.NoError(t, err)
	assert.Equal(t, "507f1f77bcf86cd799439011", oid.Hex())
}

func TestParseIDRejectsMalformedIDs(t *testing.T) {
	v := validation.New()
	for _, bad := range []string{"", "short", "507f1f77bcf86cd79943901", "zzzzzzzzzzzzzzzzzzzzzzzz"} {
		_, err := v.ParseID("id", bad)
		require.Error(t, err, "id %q", bad)

		ae := apperrors.From(err)
		assert.Equal(t, apperrors.BadInput, ae.Kind)
		require.Len(t, ae.Fields, 1)
		assert.Equal(t, "id", ae.Fields[0].Path)
		assert.Equal(t, "must be a 24 character hex string", ae.Fields[0].Message)
	}
}

func TestNegativePatchValuesRejected(t *testing.T) {
	v := validation.New()
	price := -10.0
	patch := models.ProductPatch{Price: &price}
	patch.Normalize()

	ae := apperrors.From(v.Struct("Product validation failed", patch))
	assert.Equal(t, apperrors.BadInput, ae.Kind)
	require.Len(t, ae.Fields, 1)
	assert.Equal(t, "price", ae.Fields[0].Path)
	assert.Equal(t, "gte", ae.Fields[0].Code)
}
