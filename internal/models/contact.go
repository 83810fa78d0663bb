package models

import "time"

// ContactMessage is a message submitted through the public contact form.
type ContactMessage struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name      string    `json:"name" gorm:"not null" validate:"required,min=2,max=100"`
	Email     string    `json:"email" gorm:"not null" validate:"required,email"`
	Subject   string    `json:"subject" gorm:"not null" validate:"required,max=200"`
	Message   string    `json:"message" gorm:"not null" validate:"required,max=2000"`
	CreatedAt time.Time `json:"createdAt"`
}
