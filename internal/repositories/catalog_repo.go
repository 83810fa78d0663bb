package repositories

import (
	"context"

	"phonetech/internal/models"
)

// CategoryRepository defines the interface for category data access.
type CategoryRepository interface {
	GetByID(ctx context.Context, id string) (*models.Category, error)
	Create(ctx context.Context, category *models.Category) error
	Update(ctx context.Context, category *models.Category) error
	Delete(ctx context.Context, id string) error
}

// BrandRepository defines the interface for brand data access.
type BrandRepository interface {
	GetByID(ctx context.Context, id string) (*models.Brand, error)
	Create(ctx context.Context, brand *models.Brand) error
	Update(ctx context.Context, brand *models.Brand) error
	Delete(ctx context.Context, id string) error
}
