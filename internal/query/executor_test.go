package query_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"phonetech/internal/models"
	"phonetech/internal/query"
)

// setupDB opens a test-scoped in-memory SQLite database with the catalog
// schema migrated.
func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Category{},
		&models.Brand{},
		&models.Product{},
	))
	return db
}

func seedCatalog(t *testing.T, db *gorm.DB, productCount int) (models.Category, models.Brand) {
	t.Helper()
	category := models.Category{ID: uuid.New().String(), Name: "Smartphones", Slug: "smartphones"}
	brand := models.Brand{ID: uuid.New().String(), Name: "Samsung", Slug: "samsung"}
	require.NoError(t, db.Create(&category).Error)
	require.NoError(t, db.Create(&brand).Error)

	for i := 0; i < productCount; i++ {
		p := models.Product{
			ID:          uuid.New().String(),
			Name:        fmt.Sprintf("Phone %03d", i),
			Slug:        fmt.Sprintf("phone-%03d", i),
			Description: fmt.Sprintf("handset number %d", i),
			Price:       float64(100 + i*10),
			Stock:       5,
			CategoryID:  category.ID,
			BrandID:     brand.ID,
		}
		require.NoError(t, db.Create(&p).Error)
	}
	return category, brand
}

func list(t *testing.T, db *gorm.DB, raw map[string]string, opts query.Options) (*query.Result, []models.Product) {
	t.Helper()
	params, err := query.Compile(raw, query.ProductColumns)
	require.NoError(t, err)
	products := []models.Product{}
	result, err := query.NewExecutor(db).List(context.Background(), &models.Product{}, &products, params, opts)
	require.NoError(t, err)
	return result, products
}

func TestExecutor_PaginationLinks(t *testing.T) {
	db := setupDB(t)
	seedCatalog(t, db, 60)

	result, products := list(t, db, map[string]string{"page": "2", "limit": "25"}, query.Options{})

	assert.True(t, result.Success)
	assert.Equal(t, 25, result.Count)
	assert.Len(t, products, 25)
	require.NotNil(t, result.Pagination.Next)
	require.NotNil(t, result.Pagination.Prev)
	assert.Equal(t, query.Page{Page: 3, Limit: 25}, *result.Pagination.Next)
	assert.Equal(t, query.Page{Page: 1, Limit: 25}, *result.Pagination.Prev)
}

func TestExecutor_PaginationBounds(t *testing.T) {
	db := setupDB(t)
	seedCatalog(t, db, 60)

	for page := 1; page <= 4; page++ {
		raw := map[string]string{"page": fmt.Sprint(page), "limit": "25"}
		result, _ := list(t, db, raw, query.Options{})
		start := (page - 1) * 25
		assert.LessOrEqual(t, result.Count, 25)
		assert.LessOrEqual(t, start+result.Count, 60)
		if page == 1 {
			assert.Nil(t, result.Pagination.Prev)
		} else {
			assert.NotNil(t, result.Pagination.Prev)
		}
		if start+25 < 60 {
			assert.NotNil(t, result.Pagination.Next, "page %d", page)
		} else {
			assert.Nil(t, result.Pagination.Next, "page %d", page)
		}
	}
}

func TestExecutor_UnknownCategoryNameYieldsEmptySuccess(t *testing.T) {
	db := setupDB(t)
	seedCatalog(t, db, 3)

	result, products := list(t, db, map[string]string{"category": "Smartwatch"}, query.Options{Resolve: true})

	assert.True(t, result.Success)
	assert.Equal(t, 0, result.Count)
	assert.Nil(t, result.Pagination.Next)
	assert.Nil(t, result.Pagination.Prev)
	assert.Empty(t, products)
}

func TestExecutor_CategoryNameResolvesByPartialMatch(t *testing.T) {
	db := setupDB(t)
	category, brand := seedCatalog(t, db, 3)

	other := models.Category{ID: uuid.New().String(), Name: "Tablets", Slug: "tablets"}
	require.NoError(t, db.Create(&other).Error)
	require.NoError(t, db.Create(&models.Product{
		ID: uuid.New().String(), Name: "Tab S9", Slug: "tab-s9",
		Description: "a tablet", CategoryID: other.ID, BrandID: brand.ID,
	}).Error)

	result, products := list(t, db, map[string]string{"category": "smartph"}, query.Options{Resolve: true})

	assert.Equal(t, 3, result.Count)
	for _, p := range products {
		assert.Equal(t, category.ID, p.CategoryID)
	}
}

func TestExecutor_NameResolutionTieBreaksLexicographically(t *testing.T) {
	db := setupDB(t)
	require.NoError(t, db.Create(&models.Category{ID: "watch", Name: "Smartwatches", Slug: "smartwatches"}).Error)
	require.NoError(t, db.Create(&models.Category{ID: "phone", Name: "Smartphones", Slug: "smartphones"}).Error)

	resolver := query.NewNameResolver(db)
	id, ok, err := resolver.ResolveCategory(context.Background(), "SMART")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "phone", id, "Smartphones sorts before Smartwatches")
}

func TestExecutor_SearchMatchesNameAndDescription(t *testing.T) {
	db := setupDB(t)
	category, brand := seedCatalog(t, db, 0)
	for _, p := range []models.Product{
		{ID: uuid.New().String(), Name: "Galaxy S24", Slug: "galaxy-s24", Description: "flagship", CategoryID: category.ID, BrandID: brand.ID},
		{ID: uuid.New().String(), Name: "Pixel 9", Slug: "pixel-9", Description: "a galaxy rival", CategoryID: category.ID, BrandID: brand.ID},
		{ID: uuid.New().String(), Name: "Budget Phone", Slug: "budget-phone", Description: "cheap", CategoryID: category.ID, BrandID: brand.ID},
	} {
		require.NoError(t, db.Create(&p).Error)
	}

	result, products := list(t, db, map[string]string{"search": "GALAXY"}, query.Options{Searchable: true})

	assert.Equal(t, 2, result.Count)
	names := []string{products[0].Name, products[1].Name}
	assert.Contains(t, names, "Galaxy S24")
	assert.Contains(t, names, "Pixel 9")
}

func TestExecutor_PriceRangeFilter(t *testing.T) {
	db := setupDB(t)
	seedCatalog(t, db, 60) // prices 100, 110, ..., 690

	result, products := list(t, db, map[string]string{
		"price[gte]": "100",
		"price[lte]": "500",
		"limit":      "100",
	}, query.Options{})

	assert.Equal(t, 41, result.Count)
	for _, p := range products {
		assert.GreaterOrEqual(t, p.Price, 100.0)
		assert.LessOrEqual(t, p.Price, 500.0)
	}
}

func TestExecutor_FilteredCountDrivesPagination(t *testing.T) {
	db := setupDB(t)
	seedCatalog(t, db, 60) // prices 100..690; 11 at or below 200

	result, _ := list(t, db, map[string]string{
		"price[lte]": "200",
		"limit":      "25",
	}, query.Options{})

	assert.Equal(t, 11, result.Count)
	assert.Nil(t, result.Pagination.Next, "11 filtered rows fit one page")
}

func TestExecutor_SortAndSelect(t *testing.T) {
	db := setupDB(t)
	seedCatalog(t, db, 5)

	result, products := list(t, db, map[string]string{
		"sort":   "-price",
		"select": "id,name,price",
	}, query.Options{})

	require.Equal(t, 5, result.Count)
	for i := 1; i < len(products); i++ {
		assert.GreaterOrEqual(t, products[i-1].Price, products[i].Price)
	}
	// Unselected columns come back as zero values.
	assert.Empty(t, products[0].Description)
	assert.NotEmpty(t, products[0].Name)
}

func TestExecutor_Population(t *testing.T) {
	db := setupDB(t)
	category, brand := seedCatalog(t, db, 1)

	_, products := list(t, db, nil, query.Options{Populate: []string{"Category", "Brand"}})

	require.Len(t, products, 1)
	require.NotNil(t, products[0].Category)
	require.NotNil(t, products[0].Brand)
	assert.Equal(t, category.Name, products[0].Category.Name)
	assert.Equal(t, brand.Name, products[0].Brand.Name)
}

func TestExecutor_DefaultSortIsNewestFirst(t *testing.T) {
	db := setupDB(t)
	category, brand := seedCatalog(t, db, 0)
	old := models.Product{ID: uuid.New().String(), Name: "Old", Slug: "old", Description: "old", CategoryID: category.ID, BrandID: brand.ID}
	require.NoError(t, db.Create(&old).Error)
	require.NoError(t, db.Model(&old).Update("created_at", "2020-01-01 00:00:00").Error)
	fresh := models.Product{ID: uuid.New().String(), Name: "Fresh", Slug: "fresh", Description: "fresh", CategoryID: category.ID, BrandID: brand.ID}
	require.NoError(t, db.Create(&fresh).Error)

	_, products := list(t, db, nil, query.Options{})

	require.Len(t, products, 2)
	assert.Equal(t, "Fresh", products[0].Name)
	assert.Equal(t, "Old", products[1].Name)
}
