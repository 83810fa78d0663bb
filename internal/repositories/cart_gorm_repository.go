package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"phonetech/internal/apperrors"
	"phonetech/internal/models"
)

// GORMCartRepository is a GORM implementation of CartRepository.
type GORMCartRepository struct {
	db *gorm.DB
}

// NewGORMCartRepository creates a new instance of GORMCartRepository.
func NewGORMCartRepository(db *gorm.DB) *GORMCartRepository {
	return &GORMCartRepository{db: db}
}

// GetByUser loads the user's cart with item products populated.
func (r *GORMCartRepository) GetByUser(ctx context.Context, userID string) (*models.Cart, error) {
	var cart models.Cart
	err := r.db.WithContext(ctx).
		Preload("Items.Product").
		First(&cart, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("cart not found")
	}
	if err != nil {
		return nil, apperrors.Internal(err, "failed to get cart")
	}
	return &cart, nil
}

// Create inserts a new cart with its items. A second cart for the same user
// trips the unique index and yields ErrVersionConflict, so callers treat it
// like any other lost race.
func (r *GORMCartRepository) Create(ctx context.Context, cart *models.Cart) error {
	if cart.ID == "" {
		cart.ID = uuid.New().String()
	}
	assignItemIDs(cart)
	err := r.db.WithContext(ctx).Omit("Items.Product").Create(cart).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrVersionConflict
	}
	if err != nil {
		return apperrors.Internal(err, "failed to create cart")
	}
	return nil
}

// Save replaces the cart's item list, conditional on the version the caller
// read. The version bump and the item rewrite commit atomically; a stale
// version yields ErrVersionConflict.
func (r *GORMCartRepository) Save(ctx context.Context, cart *models.Cart) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Cart{}).
			Where("id = ? AND version = ?", cart.ID, cart.Version).
			Updates(map[string]any{
				"version":    cart.Version + 1,
				"updated_at": time.Now(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrVersionConflict
		}

		if err := tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		assignItemIDs(cart)
		if len(cart.Items) > 0 {
			if err := tx.Omit(clause.Associations).Create(&cart.Items).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrVersionConflict) {
			return ErrVersionConflict
		}
		return apperrors.Internal(err, "failed to save cart")
	}
	cart.Version++
	return nil
}

func assignItemIDs(cart *models.Cart) {
	for i := range cart.Items {
		if cart.Items[i].ID == "" {
			cart.Items[i].ID = uuid.New().String()
		}
		cart.Items[i].CartID = cart.ID
	}
}
