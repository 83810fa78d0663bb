package models

import "time"

// User roles.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a registered customer or administrator.
type User struct {
	ID                  string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name                string    `json:"name" gorm:"not null" validate:"required,min=2,max=100"`
	Email               string    `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Password            string    `json:"-" gorm:"type:varchar(255)" validate:"required,min=6"`
	Role                string    `json:"role" gorm:"type:varchar(20);default:user" validate:"omitempty,oneof=user admin"`
	ResetPasswordToken  string    `json:"-" gorm:"type:varchar(64);index"`
	ResetPasswordExpire time.Time `json:"-"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

// IsAdmin reports whether the user carries the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
