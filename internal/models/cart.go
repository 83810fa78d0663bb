package models

import "time"

// Cart holds the shopping cart of one user. The unique index on UserID
// enforces one cart per user; Version guards concurrent read-modify-write
// cycles (see repositories.CartRepository).
type Cart struct {
	ID        string     `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID    string     `json:"userId" gorm:"uniqueIndex;type:varchar(36)"`
	Items     []CartItem `json:"items" gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
	Version   int        `json:"-"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// CartItem is a single product line in a cart. Quantity is always >= 1; a
// line whose quantity would drop to zero is removed instead.
type CartItem struct {
	ID        string   `json:"id" gorm:"primaryKey;type:varchar(36)"`
	CartID    string   `json:"-" gorm:"type:varchar(36);index"`
	ProductID string   `json:"productId" gorm:"type:varchar(36);index"`
	Product   *Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	Quantity  int      `json:"quantity" validate:"gte=1"`
}

// ItemByID returns the index of the item with the given id, or -1.
func (c *Cart) ItemByID(itemID string) int {
	for i := range c.Items {
		if c.Items[i].ID == itemID {
			return i
		}
	}
	return -1
}

// ItemByProduct returns the index of the item holding the given product, or -1.
func (c *Cart) ItemByProduct(productID string) int {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return i
		}
	}
	return -1
}
