package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"phonetech/internal/apperrors"
	"phonetech/internal/models"
	"phonetech/internal/repositories"
	"phonetech/internal/services"
)

const (
	ownerID    = "owner-1"
	strangerID = "stranger-1"
)

func newProductFixture(t *testing.T) (*services.ProductService, *models.Product) {
	t.Helper()
	svc := services.NewProductService(repositories.NewMockProductRepository())
	product := &models.Product{Name: "Galaxy S24 Ultra", Price: 1299, Stock: 10}
	require.NoError(t, svc.Create(context.Background(), product, ownerID))
	return svc, product
}

func TestProductCreate_DerivesSlugAndOwner(t *testing.T) {
	_, product := newProductFixture(t)

	assert.Equal(t, "galaxy-s24-ultra", product.Slug)
	assert.Equal(t, ownerID, product.UserID)
	assert.NotEmpty(t, product.ID)
}

func TestProductCreate_KeepsExplicitSlug(t *testing.T) {
	svc := services.NewProductService(repositories.NewMockProductRepository())
	product := &models.Product{Name: "Galaxy S24", Slug: "s24"}

	require.NoError(t, svc.Create(context.Background(), product, ownerID))

	assert.Equal(t, "s24", product.Slug)
}

func TestProductCreate_DuplicateSlug(t *testing.T) {
	svc, _ := newProductFixture(t)

	err := svc.Create(context.Background(), &models.Product{Name: "Galaxy S24 Ultra"}, ownerID)

	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}

func TestProductUpdate_PartialFields(t *testing.T) {
	svc, product := newProductFixture(t)
	zero := 0

	updated, err := svc.Update(context.Background(), product.ID, &services.ProductUpdate{Stock: &zero}, ownerID, models.RoleUser)

	require.NoError(t, err)
	assert.Equal(t, 0, updated.Stock, "explicit zero must be settable")
	assert.Equal(t, product.Name, updated.Name, "omitted fields stay untouched")
	assert.Equal(t, product.Price, updated.Price)
}

func TestProductUpdate_StrangerForbidden(t *testing.T) {
	svc, product := newProductFixture(t)
	name := "Renamed"

	_, err := svc.Update(context.Background(), product.ID, &services.ProductUpdate{Name: &name}, strangerID, models.RoleUser)

	assert.True(t, apperrors.IsKind(err, apperrors.KindForbidden))
}

func TestProductUpdate_AdminOverridesOwnership(t *testing.T) {
	svc, product := newProductFixture(t)
	name := "Renamed"

	updated, err := svc.Update(context.Background(), product.ID, &services.ProductUpdate{Name: &name}, strangerID, models.RoleAdmin)

	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
}

func TestProductDelete(t *testing.T) {
	svc, product := newProductFixture(t)

	err := svc.Delete(context.Background(), product.ID, strangerID, models.RoleUser)
	assert.True(t, apperrors.IsKind(err, apperrors.KindForbidden))

	require.NoError(t, svc.Delete(context.Background(), product.ID, ownerID, models.RoleUser))
	_, err = svc.GetByID(context.Background(), product.ID)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Galaxy S24 Ultra":  "galaxy-s24-ultra",
		"  iPhone 15 Pro  ": "iphone-15-pro",
		"100% Cotton Case":  "100-cotton-case",
		"---":               "",
	}
	for in, want := range cases {
		assert.Equal(t, want, services.Slugify(in), "input %q", in)
	}
}
