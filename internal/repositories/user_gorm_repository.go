package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"phonetech/internal/apperrors"
	"phonetech/internal/models"
)

// GORMUserRepository is a GORM implementation of UserRepository.
type GORMUserRepository struct {
	db *gorm.DB
}

// NewGORMUserRepository creates a new instance of GORMUserRepository.
func NewGORMUserRepository(db *gorm.DB) *GORMUserRepository {
	return &GORMUserRepository{db: db}
}

// Create inserts a new user.
func (r *GORMUserRepository) Create(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	err := r.db.WithContext(ctx).Create(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperrors.Validation("email %q is already registered", user.Email)
	}
	if err != nil {
		return apperrors.Internal(err, "failed to create user")
	}
	return nil
}

// Update saves all fields of an existing user.
func (r *GORMUserRepository) Update(ctx context.Context, user *models.User) error {
	res := r.db.WithContext(ctx).Save(user)
	if res.Error != nil {
		return apperrors.Internal(res.Error, "failed to update user")
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("user not found with id of %s", user.ID)
	}
	return nil
}

// GetByID retrieves a user by id.
func (r *GORMUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("user not found with id of %s", id)
	}
	if err != nil {
		return nil, apperrors.Internal(err, "failed to get user")
	}
	return &user, nil
}

// GetByEmail retrieves a user by email.
func (r *GORMUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).First(&user, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("user not found with email %s", email)
	}
	if err != nil {
		return nil, apperrors.Internal(err, "failed to get user")
	}
	return &user, nil
}

// GetByResetToken retrieves a user by the hash of an unexpired password
// reset token.
func (r *GORMUserRepository) GetByResetToken(ctx context.Context, tokenHash string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Where("reset_password_token = ? AND reset_password_expire > ?", tokenHash, time.Now()).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("invalid or expired reset token")
	}
	if err != nil {
		return nil, apperrors.Internal(err, "failed to get user")
	}
	return &user, nil
}
