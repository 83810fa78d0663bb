package repositories

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"phonetech/internal/apperrors"
	"phonetech/internal/models"
)

// MockUserRepository is an in-memory implementation of UserRepository.
type MockUserRepository struct {
	users map[string]models.User
	mu    sync.RWMutex
}

// NewMockUserRepository creates a new instance of MockUserRepository.
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users: make(map[string]models.User),
	}
}

// Create adds a new user.
func (r *MockUserRepository) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.Email == user.Email {
			return apperrors.Validation("email %q is already registered", user.Email)
		}
	}
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	r.users[user.ID] = *user
	return nil
}

// Update modifies an existing user.
func (r *MockUserRepository) Update(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.ID]; !ok {
		return apperrors.NotFound("user not found with id of %s", user.ID)
	}
	r.users[user.ID] = *user
	return nil
}

// GetByID returns a user by its id.
func (r *MockUserRepository) GetByID(_ context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, apperrors.NotFound("user not found with id of %s", id)
	}
	return &user, nil
}

// GetByEmail returns a user by email.
func (r *MockUserRepository) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if user.Email == email {
			out := user
			return &out, nil
		}
	}
	return nil, apperrors.NotFound("user not found with email %s", email)
}

// GetByResetToken returns the user holding an unexpired reset token hash.
func (r *MockUserRepository) GetByResetToken(_ context.Context, tokenHash string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if user.ResetPasswordToken == tokenHash && user.ResetPasswordExpire.After(time.Now()) {
			out := user
			return &out, nil
		}
	}
	return nil, apperrors.NotFound("invalid or expired reset token")
}
