package services

import (
	"context"

	"phonetech/internal/models"
	"phonetech/internal/repositories"
)

// TaxonomyUpdate carries the fields of a partial category or brand update.
type TaxonomyUpdate struct {
	Name        *string `json:"name"`
	Slug        *string `json:"slug"`
	Description *string `json:"description"`
}

// CategoryService handles category CRUD with owner-or-admin write checks.
type CategoryService struct {
	repo repositories.CategoryRepository
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(repo repositories.CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

func (s *CategoryService) GetByID(ctx context.Context, id string) (*models.Category, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *CategoryService) Create(ctx context.Context, category *models.Category, ownerID string) error {
	category.UserID = ownerID
	if category.Slug == "" {
		category.Slug = Slugify(category.Name)
	}
	return s.repo.Create(ctx, category)
}

func (s *CategoryService) Update(ctx context.Context, id string, in *TaxonomyUpdate, callerID, role string) (*models.Category, error) {
	category, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorizeOwner(category.UserID, callerID, role, "update this category"); err != nil {
		return nil, err
	}
	if in.Name != nil {
		category.Name = *in.Name
	}
	if in.Slug != nil {
		category.Slug = *in.Slug
	}
	if in.Description != nil {
		category.Description = *in.Description
	}
	if err := s.repo.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) Delete(ctx context.Context, id, callerID, role string) error {
	category, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := authorizeOwner(category.UserID, callerID, role, "delete this category"); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// BrandService handles brand CRUD with owner-or-admin write checks.
type BrandService struct {
	repo repositories.BrandRepository
}

// NewBrandService creates a new BrandService.
func NewBrandService(repo repositories.BrandRepository) *BrandService {
	return &BrandService{repo: repo}
}

func (s *BrandService) GetByID(ctx context.Context, id string) (*models.Brand, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *BrandService) Create(ctx context.Context, brand *models.Brand, ownerID string) error {
	brand.UserID = ownerID
	if brand.Slug == "" {
		brand.Slug = Slugify(brand.Name)
	}
	return s.repo.Create(ctx, brand)
}

func (s *BrandService) Update(ctx context.Context, id string, in *TaxonomyUpdate, callerID, role string) (*models.Brand, error) {
	brand, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorizeOwner(brand.UserID, callerID, role, "update this brand"); err != nil {
		return nil, err
	}
	if in.Name != nil {
		brand.Name = *in.Name
	}
	if in.Slug != nil {
		brand.Slug = *in.Slug
	}
	if in.Description != nil {
		brand.Description = *in.Description
	}
	if err := s.repo.Update(ctx, brand); err != nil {
		return nil, err
	}
	return brand, nil
}

func (s *BrandService) Delete(ctx context.Context, id, callerID, role string) error {
	brand, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := authorizeOwner(brand.UserID, callerID, role, "delete this brand"); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
