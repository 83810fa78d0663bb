package services

import (
	"context"
	"strings"

	"phonetech/internal/apperrors"
	"phonetech/internal/models"
	"phonetech/internal/repositories"
)

// ProductService handles catalog business logic for products: slug
// derivation, owner stamping, and owner-or-admin write checks.
type ProductService struct {
	repo repositories.ProductRepository
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository) *ProductService {
	return &ProductService{repo: repo}
}

// GetByID retrieves a single product with category and brand populated.
func (s *ProductService) GetByID(ctx context.Context, id string) (*models.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// Create stores a new product owned by the caller. The slug derives from the
// name when not supplied.
func (s *ProductService) Create(ctx context.Context, product *models.Product, ownerID string) error {
	product.UserID = ownerID
	if product.Slug == "" {
		product.Slug = Slugify(product.Name)
	}
	return s.repo.Create(ctx, product)
}

// ProductUpdate carries the fields of a partial product update. Nil fields
// stay untouched, so stock can legitimately be set to zero.
type ProductUpdate struct {
	Name        *string         `json:"name"`
	Slug        *string         `json:"slug"`
	Description *string         `json:"description"`
	Price       *float64        `json:"price" validate:"omitempty,gte=0"`
	Stock       *int            `json:"stock" validate:"omitempty,gte=0"`
	Image       *string         `json:"image"`
	CategoryID  *string         `json:"categoryId"`
	BrandID     *string         `json:"brandId"`
	Specs       *models.SpecMap `json:"specs"`
}

// Update applies the provided fields of in to an existing product. Only the
// owner or an admin may update.
func (s *ProductService) Update(ctx context.Context, id string, in *ProductUpdate, callerID, role string) (*models.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorizeOwner(product.UserID, callerID, role, "update this product"); err != nil {
		return nil, err
	}

	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Slug != nil {
		product.Slug = *in.Slug
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Price != nil {
		product.Price = *in.Price
	}
	if in.Stock != nil {
		product.Stock = *in.Stock
	}
	if in.Image != nil {
		product.Image = *in.Image
	}
	if in.CategoryID != nil {
		product.CategoryID = *in.CategoryID
	}
	if in.BrandID != nil {
		product.BrandID = *in.BrandID
	}
	if in.Specs != nil {
		product.Specs = *in.Specs
	}

	// Preloaded associations would be written back as rows otherwise.
	product.Category = nil
	product.Brand = nil

	if err := s.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

// Delete removes a product. Only the owner or an admin may delete.
func (s *ProductService) Delete(ctx context.Context, id, callerID, role string) error {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := authorizeOwner(product.UserID, callerID, role, "delete this product"); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// authorizeOwner rejects callers who neither own the resource nor carry the
// admin role.
func authorizeOwner(ownerID, callerID, role, action string) error {
	if ownerID != callerID && role != models.RoleAdmin {
		return apperrors.Forbidden("user %s is not authorized to %s", callerID, action)
	}
	return nil
}

// Slugify derives a URL-safe slug from a display name.
func Slugify(name string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
