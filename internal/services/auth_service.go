package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"

	"phonetech/internal/apperrors"
	"phonetech/internal/models"
	"phonetech/internal/repositories"
	"phonetech/pkg/logx"
)

// resetTokenTTL is how long a password reset token stays valid.
const resetTokenTTL = 10 * time.Minute

// AuthService handles registration, login, token validation and the
// password reset flow.
type AuthService struct {
	userRepo   repositories.UserRepository
	events     EventPublisher
	jwtSecret  []byte
	tokenDurat time.Duration
}

// NewAuthService creates a new AuthService. events may be nil, in which case
// password reset notifications are only logged.
func NewAuthService(userRepo repositories.UserRepository, events EventPublisher, jwtSecret string) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		events:     events,
		jwtSecret:  []byte(jwtSecret),
		tokenDurat: 24 * time.Hour,
	}
}

// Register creates a new user with a hashed password and returns a signed
// token. Self-registration always produces a standard user; roles are
// promoted out of band.
func (s *AuthService) Register(ctx context.Context, user *models.User) (string, error) {
	if existing, err := s.userRepo.GetByEmail(ctx, user.Email); err == nil && existing != nil {
		return "", apperrors.Validation("email %q is already registered", user.Email)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", apperrors.Internal(err, "failed to hash password")
	}
	user.Password = string(hashed)
	user.Role = models.RoleUser

	if err := s.userRepo.Create(ctx, user); err != nil {
		return "", err
	}
	return s.issueToken(user)
}

// Login authenticates by email and password. Any failure yields the same
// generic message so callers cannot probe for registered emails.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return "", apperrors.Unauthorized("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", apperrors.Unauthorized("invalid credentials")
	}
	return s.issueToken(user)
}

// GetUser loads the user behind a validated token's user_id claim.
func (s *AuthService) GetUser(ctx context.Context, id string) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// ValidateToken parses and validates a bearer token, returning its claims.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, apperrors.Unauthorized("invalid or expired token")
	}
	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, apperrors.Unauthorized("invalid or expired token")
}

// ForgotPassword stores a hashed single-use reset token on the user and
// publishes a notification event carrying the raw token. Unknown emails
// return success so the endpoint cannot be used to probe accounts.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if apperrors.IsKind(err, apperrors.KindNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	raw := make([]byte, 20)
	if _, err := rand.Read(raw); err != nil {
		return apperrors.Internal(err, "failed to generate reset token")
	}
	token := hex.EncodeToString(raw)

	user.ResetPasswordToken = hashToken(token)
	user.ResetPasswordExpire = time.Now().Add(resetTokenTTL)
	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}

	s.publishReset(user.Email, token)
	return nil
}

// ResetPassword exchanges a valid reset token for a new password and
// returns a fresh login token.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) (string, error) {
	if len(newPassword) < 6 {
		return "", apperrors.Validation("password must be at least 6 characters")
	}

	user, err := s.userRepo.GetByResetToken(ctx, hashToken(token))
	if apperrors.IsKind(err, apperrors.KindNotFound) {
		return "", apperrors.Validation("invalid or expired reset token")
	}
	if err != nil {
		return "", err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return "", apperrors.Internal(err, "failed to hash password")
	}
	user.Password = string(hashed)
	user.ResetPasswordToken = ""
	user.ResetPasswordExpire = time.Time{}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return "", err
	}
	return s.issueToken(user)
}

func (s *AuthService) issueToken(user *models.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"role":    user.Role,
		"exp":     time.Now().Add(s.tokenDurat).Unix(),
		"iat":     time.Now().Unix(),
	})
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", apperrors.Internal(err, "failed to sign token")
	}
	return signed, nil
}

// publishReset hands the reset token to the notification queue. The reset
// state is already persisted; a broker outage only delays the mail.
func (s *AuthService) publishReset(email, token string) {
	if s.events == nil {
		logx.Warn().Str("email", email).Msg("no event publisher configured, reset notification dropped")
		return
	}
	body, err := json.Marshal(map[string]string{"email": email, "token": token})
	if err != nil {
		logx.Error().Err(err).Msg("failed to marshal reset event")
		return
	}
	if err := s.events.Publish(EventPasswordReset, body); err != nil {
		logx.Error().Err(err).Str("email", email).Msg("failed to publish reset event")
	}
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
