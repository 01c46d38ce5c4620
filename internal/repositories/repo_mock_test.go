package repositories_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"lager/internal/apperrors"
	"lager/internal/models"
	"lager/internal/repositories"
)

type fixture struct {
	contacts      *repositories.MockContactRepository
	manufacturers *repositories.MockManufacturerRepository
	products      *repositories.MockProductRepository
}

func newFixture() fixture {
	contacts := repositories.NewMockContactRepository()
	manufacturers := repositories.NewMockManufacturerRepository()
	return fixture{
		contacts:      contacts,
		manufacturers: manufacturers,
		products:      repositories.NewMockProductRepository(manufacturers, contacts),
	}
}

func (f fixture) seedManufacturer(t *testing.T, name string) *models.Manufacturer {
	t.Helper()
	ctx := context.Background()

	contact := &models.Contact{Name: name + " contact", Email: "contact@example.com", Phone: "1234567"}
	require.NoError(t, f.contacts.Create(ctx, contact))

	m := &models.Manufacturer{Name: name, Country: "Germany", ContactID: contact.ID}
	require.NoError(t, f.manufacturers.Create(ctx, m))
	return m
}

func (f fixture) seedProduct(t *testing.T, name string, price float64, stock int, manufacturerID primitive.ObjectID) *models.Product {
	t.Helper()
	p := &models.Product{Name: name, SKU: name, Price: price, AmountInStock: stock, ManufacturerID: manufacturerID}
	require.NoError(t, f.products.Create(context.Background(), p))
	return p
}

func TestProductFind_SearchIsCaseInsensitiveSubstring(t *testing.T) {
	f := newFixture()
	m := f.seedManufacturer(t, "Acme Corp")
	f.seedProduct(t, "Claw Hammer", 10, 5, m.ID)
	f.seedProduct(t, "Sledgehammer", 30, 5, m.ID)
	f.seedProduct(t, "Screwdriver", 5, 5, m.ID)

	items, total, err := f.products.Find(context.Background(), "HAMMER", models.SortNameAsc, 0, 0)

	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, items, 2)
	assert.Equal(t, "Claw Hammer", items[0].Name)
	assert.Equal(t, "Sledgehammer", items[1].Name)
}

func TestProductFind_SortOptions(t *testing.T) {
	f := newFixture()
	m := f.seedManufacturer(t, "Acme Corp")
	f.seedProduct(t, "B", 20, 1, m.ID)
	f.seedProduct(t, "A", 30, 3, m.ID)
	f.seedProduct(t, "C", 10, 2, m.ID)

	ctx := context.Background()

	names := func(items []models.Product) []string {
		out := make([]string, len(items))
		for i, p := range items {
			out[i] = p.Name
		}
		return out
	}

	items, _, err := f.products.Find(ctx, "", models.SortNameAsc, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C"}, names(items))

	items, _, err = f.products.Find(ctx, "", models.SortPriceAsc, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"C", "B", "A"}, names(items))

	items, _, err = f.products.Find(ctx, "", models.SortPriceDesc, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C"}, names(items))

	items, _, err = f.products.Find(ctx, "", models.SortStockAsc, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"B", "C", "A"}, names(items))

	items, _, err = f.products.Find(ctx, "", models.SortStockDesc, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "C", "B"}, names(items))
}

func TestProductFind_Pagination(t *testing.T) {
	f := newFixture()
	m := f.seedManufacturer(t, "Acme Corp")
	for _, name := range []string{"A", "B", "C", "D", "E"} {
		f.seedProduct(t, name, 10, 5, m.ID)
	}

	ctx := context.Background()

	items, total, err := f.products.Find(ctx, "", models.SortNameAsc, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	require.Len(t, items, 2)
	assert.Equal(t, "C", items[0].Name)
	assert.Equal(t, "D", items[1].Name)

	// A window past the end is empty, not an error.
	items, total, err = f.products.Find(ctx, "", models.SortNameAsc, 10, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Empty(t, items)
}

func TestProductUpdate_PartialPatch(t *testing.T) {
	f := newFixture()
	m := f.seedManufacturer(t, "Acme Corp")
	p := f.seedProduct(t, "Hammer", 10, 50, m.ID)

	price := 12.5
	updated, err := f.products.Update(context.Background(), p.ID, models.ProductPatch{Price: &price})

	require.NoError(t, err)
	assert.Equal(t, 12.5, updated.Price)
	// Unpatched fields keep their prior values.
	assert.Equal(t, "Hammer", updated.Name)
	assert.Equal(t, 50, updated.AmountInStock)
}

func TestProductDelete_ReturnsDocumentThenNotFound(t *testing.T) {
	f := newFixture()
	m := f.seedManufacturer(t, "Acme Corp")
	p := f.seedProduct(t, "Hammer", 10, 50, m.ID)

	ctx := context.Background()

	deleted, err := f.products.Delete(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, deleted.ID)

	_, err = f.products.Delete(ctx, p.ID)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestTotalStockValue(t *testing.T) {
	f := newFixture()
	m := f.seedManufacturer(t, "Acme Corp")
	f.seedProduct(t, "Hammer", 10, 3, m.ID)
	f.seedProduct(t, "Nails", 2.5, 100, m.ID)

	total, err := f.products.TotalStockValue(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 10*3+2.5*100, total)
}

func TestTotalStockValue_EmptyStore(t *testing.T) {
	f := newFixture()
	total, err := f.products.TotalStockValue(context.Background())
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestStockValueByManufacturer_SortedByValueDescending(t *testing.T) {
	f := newFixture()
	small := f.seedManufacturer(t, "Smallco")
	big := f.seedManufacturer(t, "Bigco")
	f.seedProduct(t, "Hammer", 10, 3, small.ID)
	f.seedProduct(t, "Crane", 1000, 2, big.ID)
	f.seedProduct(t, "Winch", 100, 5, big.ID)

	rows, total, err := f.products.StockValueByManufacturer(context.Background(), 0, 0)

	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, rows, 2)
	assert.Equal(t, "Bigco", rows[0].Name)
	assert.Equal(t, 7, rows[0].TotalStock)
	assert.Equal(t, float64(1000*2+100*5), rows[0].TotalStockValue)
	assert.Equal(t, "Smallco", rows[1].Name)
	assert.Equal(t, float64(30), rows[1].TotalStockValue)
}

func TestStockValueByManufacturer_ExcludesDanglingManufacturers(t *testing.T) {
	f := newFixture()
	f.seedProduct(t, "Orphan", 10, 3, primitive.NewObjectID())

	rows, total, err := f.products.StockValueByManufacturer(context.Background(), 0, 0)

	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, rows)
}

func TestLowStock_StrictThreshold(t *testing.T) {
	f := newFixture()
	m := f.seedManufacturer(t, "Acme Corp")
	f.seedProduct(t, "AtThreshold", 10, 10, m.ID)
	below := f.seedProduct(t, "Below", 10, 9, m.ID)

	items, err := f.products.LowStock(context.Background())

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, below.ID, items[0].ID)
}

func TestCriticalStock_JoinsManufacturerAndContact(t *testing.T) {
	f := newFixture()
	m := f.seedManufacturer(t, "Acme Corp")
	f.seedProduct(t, "Plenty", 10, 50, m.ID)
	f.seedProduct(t, "AtThreshold", 10, 5, m.ID)
	f.seedProduct(t, "Critical", 10, 2, m.ID)

	rows, total, err := f.products.CriticalStock(context.Background(), 0, 0)

	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, rows, 1)
	assert.Equal(t, "Critical", rows[0].Name)
	assert.Equal(t, "Acme Corp", rows[0].Manufacturer)
	assert.Equal(t, "Acme Corp contact", rows[0].Contact.Name)
	assert.Equal(t, "contact@example.com", rows[0].Contact.Email)
}

func TestCriticalStock_InnerJoinExcludesUnresolvedRows(t *testing.T) {
	f := newFixture()
	m := f.seedManufacturer(t, "Acme Corp")
	f.seedProduct(t, "Joined", 10, 1, m.ID)
	// Critically low, but its manufacturer reference does not resolve.
	f.seedProduct(t, "Dangling", 10, 1, primitive.NewObjectID())

	// Critically low, manufacturer resolves but its contact is gone.
	broken := f.seedManufacturer(t, "Brokenco")
	_, err := f.contacts.Delete(context.Background(), broken.ContactID)
	require.NoError(t, err)
	f.seedProduct(t, "NoContact", 10, 1, broken.ID)

	rows, total, err := f.products.CriticalStock(context.Background(), 0, 0)

	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, rows, 1)
	assert.Equal(t, "Joined", rows[0].Name)
}

func TestCriticalStock_SortedByStockAscending(t *testing.T) {
	f := newFixture()
	m := f.seedManufacturer(t, "Acme Corp")
	f.seedProduct(t, "Two", 10, 2, m.ID)
	f.seedProduct(t, "Zero", 10, 0, m.ID)
	f.seedProduct(t, "Four", 10, 4, m.ID)

	rows, _, err := f.products.CriticalStock(context.Background(), 0, 0)

	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Zero", rows[0].Name)
	assert.Equal(t, "Two", rows[1].Name)
	assert.Equal(t, "Four", rows[2].Name)
}

func TestManufacturerCreate_DuplicateNameConflicts(t *testing.T) {
	f := newFixture()
	f.seedManufacturer(t, "Acme Corp")

	err := f.manufacturers.Create(context.Background(), &models.Manufacturer{Name: "acme corp"})
	assert.True(t, apperrors.IsConflict(err))
}

func TestManufacturerUpdate_RenameToTakenNameConflicts(t *testing.T) {
	f := newFixture()
	f.seedManufacturer(t, "Acme Corp")
	other := f.seedManufacturer(t, "Globex")

	name := "ACME CORP"
	_, err := f.manufacturers.Update(context.Background(), other.ID, models.ManufacturerPatch{Name: &name})
	assert.True(t, apperrors.IsConflict(err))
}

func TestManufacturerFindByName_CaseInsensitiveExact(t *testing.T) {
	f := newFixture()
	m := f.seedManufacturer(t, "Acme Corp")

	ctx := context.Background()

	found, err := f.manufacturers.FindByName(ctx, "aCmE cOrP")
	require.NoError(t, err)
	assert.Equal(t, m.ID, found.ID)

	// Substring matches are not exact matches.
	_, err = f.manufacturers.FindByName(ctx, "Acme")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestManufacturerFind_Search(t *testing.T) {
	f := newFixture()
	f.seedManufacturer(t, "Acme Corp")
	f.seedManufacturer(t, "Globex")

	items, total, err := f.manufacturers.Find(context.Background(), "acme", 0, 0)

	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, items, 1)
	assert.Equal(t, "Acme Corp", items[0].Name)
}

func TestContactLifecycle(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	c := &models.Contact{Name: "Jane Doe", Email: "jane@example.com"}
	require.NoError(t, f.contacts.Create(ctx, c))
	assert.False(t, c.ID.IsZero())

	phone := "5551234567"
	updated, err := f.contacts.Update(ctx, c.ID, models.ContactPatch{Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, phone, updated.Phone)
	assert.Equal(t, "Jane Doe", updated.Name)

	all, err := f.contacts.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	_, err = f.contacts.Delete(ctx, c.ID)
	require.NoError(t, err)
	_, err = f.contacts.GetByID(ctx, c.ID)
	assert.True(t, apperrors.IsNotFound(err))
}
