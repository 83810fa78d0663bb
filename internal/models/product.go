package models

import "time"

// Product represents a product in the store catalog.
type Product struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name        string    `json:"name" gorm:"not null" validate:"required,min=2,max=50"`
	Slug        string    `json:"slug" gorm:"uniqueIndex;not null" validate:"omitempty,max=60"`
	Description string    `json:"description" validate:"required,max=500"`
	Price       float64   `json:"price" validate:"gte=0"`
	Stock       int       `json:"stock" validate:"gte=0"`
	Image       string    `json:"image"`
	CategoryID  string    `json:"categoryId" gorm:"type:varchar(36);index" validate:"required"`
	Category    *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	BrandID     string    `json:"brandId" gorm:"type:varchar(36);index" validate:"required"`
	Brand       *Brand    `json:"brand,omitempty" gorm:"foreignKey:BrandID"`
	Specs       SpecMap   `json:"specs,omitempty" gorm:"type:text"`
	UserID      string    `json:"userId" gorm:"type:varchar(36);index"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
