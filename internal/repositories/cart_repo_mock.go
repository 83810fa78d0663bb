package repositories

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"phonetech/internal/apperrors"
	"phonetech/internal/models"
)

// MockCartRepository is an in-memory implementation of CartRepository with
// the same version-conflict semantics as the GORM implementation.
type MockCartRepository struct {
	carts map[string]models.Cart // keyed by user id
	mu    sync.RWMutex
}

// NewMockCartRepository creates a new instance of MockCartRepository.
func NewMockCartRepository() *MockCartRepository {
	return &MockCartRepository{
		carts: make(map[string]models.Cart),
	}
}

// GetByUser returns a copy of the user's cart.
func (r *MockCartRepository) GetByUser(_ context.Context, userID string) (*models.Cart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cart, ok := r.carts[userID]
	if !ok {
		return nil, apperrors.NotFound("cart not found")
	}
	out := cart
	out.Items = append([]models.CartItem(nil), cart.Items...)
	return &out, nil
}

// Create stores a new cart. Creating a second cart for the same user yields
// ErrVersionConflict, matching the unique-index behavior of the GORM
// implementation.
func (r *MockCartRepository) Create(_ context.Context, cart *models.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.carts[cart.UserID]; ok {
		return ErrVersionConflict
	}
	if cart.ID == "" {
		cart.ID = uuid.New().String()
	}
	assignItemIDs(cart)
	stored := *cart
	stored.Items = append([]models.CartItem(nil), cart.Items...)
	r.carts[cart.UserID] = stored
	return nil
}

// Save replaces the stored cart when the version still matches.
func (r *MockCartRepository) Save(_ context.Context, cart *models.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.carts[cart.UserID]
	if !ok || stored.Version != cart.Version {
		return ErrVersionConflict
	}
	assignItemIDs(cart)
	cart.Version++
	next := *cart
	next.Items = append([]models.CartItem(nil), cart.Items...)
	r.carts[cart.UserID] = next
	return nil
}
