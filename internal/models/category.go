package models

import "time"

// Category groups products (e.g. "Smartphones").
type Category struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name        string    `json:"name" gorm:"uniqueIndex;not null" validate:"required,min=2,max=50"`
	Slug        string    `json:"slug" gorm:"not null" validate:"omitempty,max=60"`
	Description string    `json:"description" validate:"omitempty,max=500"`
	UserID      string    `json:"userId" gorm:"type:varchar(36);index"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Brand identifies a product manufacturer (e.g. "Samsung").
type Brand struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name        string    `json:"name" gorm:"uniqueIndex;not null" validate:"required,min=2,max=50"`
	Slug        string    `json:"slug" gorm:"not null" validate:"omitempty,max=60"`
	Description string    `json:"description" validate:"omitempty,max=500"`
	UserID      string    `json:"userId" gorm:"type:varchar(36);index"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
