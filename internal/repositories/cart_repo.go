package repositories

import (
	"context"
	"errors"

	"phonetech/internal/models"
)

// ErrVersionConflict is returned by CartRepository.Save when the stored cart
// version moved between read and write. Callers retry the whole
// read-mutate-write cycle.
var ErrVersionConflict = errors.New("cart was modified concurrently")

// CartRepository defines the interface for cart data access. Save replaces
// the full cart record and is conditional on the version read earlier, so
// concurrent mutations of the same cart cannot silently lose updates.
type CartRepository interface {
	// GetByUser loads the user's cart with item products populated. Returns
	// a NotFound application error when the user has no cart yet.
	GetByUser(ctx context.Context, userID string) (*models.Cart, error)
	Create(ctx context.Context, cart *models.Cart) error
	Save(ctx context.Context, cart *models.Cart) error
}
