package services

import (
	"context"
	"errors"

	"phonetech/internal/apperrors"
	"phonetech/internal/models"
	"phonetech/internal/repositories"
)

// casRetries bounds how often a cart mutation is retried after losing a
// version race against a concurrent request for the same user.
const casRetries = 3

// CartService owns per-user cart state: add/merge, quantity updates,
// removal and clearing, with stock validation against the product catalog.
// Every mutation is a read-mutate-write cycle guarded by the cart version,
// so concurrent requests cannot silently lose updates.
type CartService struct {
	carts    repositories.CartRepository
	products repositories.ProductRepository
}

// NewCartService creates a new CartService.
func NewCartService(carts repositories.CartRepository, products repositories.ProductRepository) *CartService {
	return &CartService{
		carts:    carts,
		products: products,
	}
}

// GetCart fetches the caller's cart with product details populated.
func (s *CartService) GetCart(ctx context.Context, userID string) (*models.Cart, error) {
	return s.carts.GetByUser(ctx, userID)
}

// AddItem puts quantity units of a product into the user's cart, creating
// the cart on first use. If the product is already present its quantity is
// incremented, not overwritten. The stock check reflects the product's stock
// at the moment of the call; quantities already sitting in carts are not
// reserved.
func (s *CartService) AddItem(ctx context.Context, userID, productID string, quantity int) (*models.Cart, error) {
	if quantity < 1 {
		return nil, apperrors.Validation("quantity must be at least 1")
	}

	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product.Stock < quantity {
		return nil, apperrors.InvalidState("not enough stock available")
	}

	for attempt := 0; attempt < casRetries; attempt++ {
		cart, err := s.carts.GetByUser(ctx, userID)
		if apperrors.IsKind(err, apperrors.KindNotFound) {
			cart = &models.Cart{
				UserID: userID,
				Items:  []models.CartItem{{ProductID: productID, Quantity: quantity}},
			}
			createErr := s.carts.Create(ctx, cart)
			if errors.Is(createErr, repositories.ErrVersionConflict) {
				// Lost the create race for this user; re-read and merge.
				continue
			}
			if createErr != nil {
				return nil, createErr
			}
			return s.carts.GetByUser(ctx, userID)
		}
		if err != nil {
			return nil, err
		}

		if i := cart.ItemByProduct(productID); i >= 0 {
			if product.Stock < cart.Items[i].Quantity+quantity {
				return nil, apperrors.InvalidState("not enough stock available")
			}
			cart.Items[i].Quantity += quantity
		} else {
			cart.Items = append(cart.Items, models.CartItem{ProductID: productID, Quantity: quantity})
		}

		err = s.carts.Save(ctx, cart)
		if errors.Is(err, repositories.ErrVersionConflict) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return s.carts.GetByUser(ctx, userID)
	}
	return nil, apperrors.Internal(repositories.ErrVersionConflict, "cart is busy, please retry")
}

// UpdateItem sets an item's quantity exactly. A quantity below one removes
// the line instead of keeping it at zero.
func (s *CartService) UpdateItem(ctx context.Context, userID, itemID string, quantity int) (*models.Cart, error) {
	for attempt := 0; attempt < casRetries; attempt++ {
		cart, err := s.carts.GetByUser(ctx, userID)
		if err != nil {
			return nil, err
		}

		i := cart.ItemByID(itemID)
		if i < 0 {
			return nil, apperrors.NotFound("item not found in cart")
		}

		if quantity < 1 {
			cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
		} else {
			product, err := s.products.GetByID(ctx, cart.Items[i].ProductID)
			if err != nil {
				return nil, err
			}
			if product.Stock < quantity {
				return nil, apperrors.InvalidState("not enough stock available")
			}
			cart.Items[i].Quantity = quantity
		}

		err = s.carts.Save(ctx, cart)
		if errors.Is(err, repositories.ErrVersionConflict) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return s.carts.GetByUser(ctx, userID)
	}
	return nil, apperrors.Internal(repositories.ErrVersionConflict, "cart is busy, please retry")
}

// RemoveItem filters an item out of the cart. Removing an id that is not in
// the cart succeeds without changing anything.
func (s *CartService) RemoveItem(ctx context.Context, userID, itemID string) (*models.Cart, error) {
	for attempt := 0; attempt < casRetries; attempt++ {
		cart, err := s.carts.GetByUser(ctx, userID)
		if err != nil {
			return nil, err
		}

		i := cart.ItemByID(itemID)
		if i < 0 {
			return cart, nil
		}
		cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)

		err = s.carts.Save(ctx, cart)
		if errors.Is(err, repositories.ErrVersionConflict) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return s.carts.GetByUser(ctx, userID)
	}
	return nil, apperrors.Internal(repositories.ErrVersionConflict, "cart is busy, please retry")
}

// Clear empties the cart's item list. The cart record itself is kept.
func (s *CartService) Clear(ctx context.Context, userID string) (*models.Cart, error) {
	for attempt := 0; attempt < casRetries; attempt++ {
		cart, err := s.carts.GetByUser(ctx, userID)
		if err != nil {
			return nil, err
		}

		cart.Items = nil
		err = s.carts.Save(ctx, cart)
		if errors.Is(err, repositories.ErrVersionConflict) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return s.carts.GetByUser(ctx, userID)
	}
	return nil, apperrors.Internal(repositories.ErrVersionConflict, "cart is busy, please retry")
}
