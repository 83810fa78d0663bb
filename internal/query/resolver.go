package query

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"phonetech/internal/apperrors"
	"phonetech/internal/models"
)

// NameResolver turns human-readable category/brand names from the query
// string into canonical ids. Matching is case-insensitive substring
// containment; ties break on ascending name so the winner is deterministic.
type NameResolver struct {
	db *gorm.DB
}

// NewNameResolver creates a resolver over the given database handle.
func NewNameResolver(db *gorm.DB) *NameResolver {
	return &NameResolver{db: db}
}

// ResolveCategory returns the id of the first category whose name contains
// the given text. ok is false when nothing matches; that is not an error.
func (r *NameResolver) ResolveCategory(ctx context.Context, name string) (string, bool, error) {
	var category models.Category
	err := r.lookup(ctx, name).First(&category).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, apperrors.Internal(err, "failed to resolve category")
	}
	return category.ID, true, nil
}

// ResolveBrand is ResolveCategory for brands.
func (r *NameResolver) ResolveBrand(ctx context.Context, name string) (string, bool, error) {
	var brand models.Brand
	err := r.lookup(ctx, name).First(&brand).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, apperrors.Internal(err, "failed to resolve brand")
	}
	return brand.ID, true, nil
}

func (r *NameResolver) lookup(ctx context.Context, name string) *gorm.DB {
	pattern := "%" + strings.ToLower(name) + "%"
	return r.db.WithContext(ctx).
		Where("LOWER(name) LIKE ?", pattern).
		Order("name")
}
