package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"phonetech/internal/apperrors"
	"phonetech/internal/models"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{db: db}
}

// GetByID retrieves a single product with its category and brand populated.
func (r *GORMProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Brand").
		First(&product, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("product not found with id of %s", id)
	}
	if err != nil {
		return nil, apperrors.Internal(err, "failed to get product")
	}
	return &product, nil
}

// Create inserts a new product, assigning an id when absent.
func (r *GORMProductRepository) Create(ctx context.Context, product *models.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	err := r.db.WithContext(ctx).Omit("Category", "Brand").Create(product).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperrors.Validation("a product with slug %q already exists", product.Slug)
	}
	if err != nil {
		return apperrors.Internal(err, "failed to create product")
	}
	return nil
}

// Update saves all fields of an existing product.
func (r *GORMProductRepository) Update(ctx context.Context, product *models.Product) error {
	res := r.db.WithContext(ctx).Omit("Category", "Brand").Save(product)
	if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
		return apperrors.Validation("a product with slug %q already exists", product.Slug)
	}
	if res.Error != nil {
		return apperrors.Internal(res.Error, "failed to update product")
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("product not found with id of %s", product.ID)
	}
	return nil
}

// Delete removes a product by id.
func (r *GORMProductRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id)
	if res.Error != nil {
		return apperrors.Internal(res.Error, "failed to delete product")
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("product not found with id of %s", id)
	}
	return nil
}
