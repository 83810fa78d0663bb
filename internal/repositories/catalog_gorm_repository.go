package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"phonetech/internal/apperrors"
	"phonetech/internal/models"
)

// GORMCategoryRepository is a GORM implementation of CategoryRepository.
type GORMCategoryRepository struct {
	db *gorm.DB
}

// NewGORMCategoryRepository creates a new instance of GORMCategoryRepository.
func NewGORMCategoryRepository(db *gorm.DB) *GORMCategoryRepository {
	return &GORMCategoryRepository{db: db}
}

func (r *GORMCategoryRepository) GetByID(ctx context.Context, id string) (*models.Category, error) {
	var category models.Category
	err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("category not found with id of %s", id)
	}
	if err != nil {
		return nil, apperrors.Internal(err, "failed to get category")
	}
	return &category, nil
}

func (r *GORMCategoryRepository) Create(ctx context.Context, category *models.Category) error {
	if category.ID == "" {
		category.ID = uuid.New().String()
	}
	err := r.db.WithContext(ctx).Create(category).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperrors.Validation("a category named %q already exists", category.Name)
	}
	if err != nil {
		return apperrors.Internal(err, "failed to create category")
	}
	return nil
}

func (r *GORMCategoryRepository) Update(ctx context.Context, category *models.Category) error {
	res := r.db.WithContext(ctx).Save(category)
	if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
		return apperrors.Validation("a category named %q already exists", category.Name)
	}
	if res.Error != nil {
		return apperrors.Internal(res.Error, "failed to update category")
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("category not found with id of %s", category.ID)
	}
	return nil
}

func (r *GORMCategoryRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.Category{}, "id = ?", id)
	if res.Error != nil {
		return apperrors.Internal(res.Error, "failed to delete category")
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("category not found with id of %s", id)
	}
	return nil
}

// GORMBrandRepository is a GORM implementation of BrandRepository.
type GORMBrandRepository struct {
	db *gorm.DB
}

// NewGORMBrandRepository creates a new instance of GORMBrandRepository.
func NewGORMBrandRepository(db *gorm.DB) *GORMBrandRepository {
	return &GORMBrandRepository{db: db}
}

func (r *GORMBrandRepository) GetByID(ctx context.Context, id string) (*models.Brand, error) {
	var brand models.Brand
	err := r.db.WithContext(ctx).First(&brand, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("brand not found with id of %s", id)
	}
	if err != nil {
		return nil, apperrors.Internal(err, "failed to get brand")
	}
	return &brand, nil
}

func (r *GORMBrandRepository) Create(ctx context.Context, brand *models.Brand) error {
	if brand.ID == "" {
		brand.ID = uuid.New().String()
	}
	err := r.db.WithContext(ctx).Create(brand).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperrors.Validation("a brand named %q already exists", brand.Name)
	}
	if err != nil {
		return apperrors.Internal(err, "failed to create brand")
	}
	return nil
}

func (r *GORMBrandRepository) Update(ctx context.Context, brand *models.Brand) error {
	res := r.db.WithContext(ctx).Save(brand)
	if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
		return apperrors.Validation("a brand named %q already exists", brand.Name)
	}
	if res.Error != nil {
		return apperrors.Internal(res.Error, "failed to update brand")
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("brand not found with id of %s", brand.ID)
	}
	return nil
}

func (r *GORMBrandRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.Brand{}, "id = ?", id)
	if res.Error != nil {
		return apperrors.Internal(res.Error, "failed to delete brand")
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("brand not found with id of %s", id)
	}
	return nil
}
