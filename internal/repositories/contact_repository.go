package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"phonetech/internal/apperrors"
	"phonetech/internal/models"
)

// ContactRepository defines the interface for contact message persistence.
type ContactRepository interface {
	Create(ctx context.Context, message *models.ContactMessage) error
}

// GORMContactRepository is a GORM implementation of ContactRepository.
type GORMContactRepository struct {
	db *gorm.DB
}

// NewGORMContactRepository creates a new instance of GORMContactRepository.
func NewGORMContactRepository(db *gorm.DB) *GORMContactRepository {
	return &GORMContactRepository{db: db}
}

// Create stores a submitted contact message.
func (r *GORMContactRepository) Create(ctx context.Context, message *models.ContactMessage) error {
	if message.ID == "" {
		message.ID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Create(message).Error; err != nil {
		return apperrors.Internal(err, "failed to store contact message")
	}
	return nil
}
