package repositories

import (
	"context"

	"phonetech/internal/models"
)

// ProductRepository defines the interface for product data access. Listing
// goes through the query pipeline, not the repository.
type ProductRepository interface {
	GetByID(ctx context.Context, id string) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id string) error
}
