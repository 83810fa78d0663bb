package services_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"phonetech/internal/apperrors"
	"phonetech/internal/models"
	"phonetech/internal/repositories"
	"phonetech/internal/services"
)

// recordingPublisher captures published events for inspection.
type recordingPublisher struct {
	events []publishedEvent
}

type publishedEvent struct {
	routingKey string
	body       []byte
}

func (p *recordingPublisher) Publish(routingKey string, body []byte) error {
	p.events = append(p.events, publishedEvent{routingKey: routingKey, body: body})
	return nil
}

func newAuthFixture() (*services.AuthService, *repositories.MockUserRepository, *recordingPublisher) {
	users := repositories.NewMockUserRepository()
	events := &recordingPublisher{}
	return services.NewAuthService(users, events, "test-secret"), users, events
}

func registerUser(t *testing.T, svc *services.AuthService, email string) *models.User {
	t.Helper()
	user := &models.User{Name: "Alice", Email: email, Password: "hunter22"}
	_, err := svc.Register(context.Background(), user)
	require.NoError(t, err)
	return user
}

func TestAuthRegister(t *testing.T) {
	svc, users, _ := newAuthFixture()

	user := &models.User{Name: "Alice", Email: "alice@example.com", Password: "hunter22", Role: models.RoleAdmin}
	token, err := svc.Register(context.Background(), user)

	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, models.RoleUser, user.Role, "self-registration never grants elevated roles")
	assert.NotEqual(t, "hunter22", user.Password, "password must be stored hashed")

	stored, err := users.GetByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, stored.ID)
}

func TestAuthRegister_DuplicateEmail(t *testing.T) {
	svc, _, _ := newAuthFixture()
	registerUser(t, svc, "alice@example.com")

	_, err := svc.Register(context.Background(), &models.User{Name: "Bob", Email: "alice@example.com", Password: "secret1"})

	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}

func TestAuthLogin(t *testing.T) {
	svc, _, _ := newAuthFixture()
	registerUser(t, svc, "alice@example.com")

	token, err := svc.Login(context.Background(), "alice@example.com", "hunter22")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, claims["role"])
	assert.NotEmpty(t, claims["user_id"])
}

func TestAuthLogin_BadCredentialsAreIndistinguishable(t *testing.T) {
	svc, _, _ := newAuthFixture()
	registerUser(t, svc, "alice@example.com")

	_, wrongPassword := svc.Login(context.Background(), "alice@example.com", "nope")
	_, unknownEmail := svc.Login(context.Background(), "nobody@example.com", "hunter22")

	require.Error(t, wrongPassword)
	require.Error(t, unknownEmail)
	assert.True(t, apperrors.IsKind(wrongPassword, apperrors.KindUnauthorized))
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error(), "failure mode must not leak which part was wrong")
}

func TestAuthValidateToken_Garbage(t *testing.T) {
	svc, _, _ := newAuthFixture()

	_, err := svc.ValidateToken("not.a.token")

	assert.True(t, apperrors.IsKind(err, apperrors.KindUnauthorized))
}

func TestAuthValidateToken_WrongSecret(t *testing.T) {
	svc, _, _ := newAuthFixture()
	registerUser(t, svc, "alice@example.com")
	token, err := svc.Login(context.Background(), "alice@example.com", "hunter22")
	require.NoError(t, err)

	other := services.NewAuthService(repositories.NewMockUserRepository(), nil, "different-secret")
	_, err = other.ValidateToken(token)

	assert.True(t, apperrors.IsKind(err, apperrors.KindUnauthorized))
}

func TestAuthForgotPassword_PublishesResetEvent(t *testing.T) {
	svc, users, events := newAuthFixture()
	user := registerUser(t, svc, "alice@example.com")

	require.NoError(t, svc.ForgotPassword(context.Background(), "alice@example.com"))

	require.Len(t, events.events, 1)
	assert.Equal(t, services.EventPasswordReset, events.events[0].routingKey)

	var payload map[string]string
	require.NoError(t, json.Unmarshal(events.events[0].body, &payload))
	assert.Equal(t, "alice@example.com", payload["email"])
	assert.NotEmpty(t, payload["token"])

	stored, err := users.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, stored.ResetPasswordToken)
	assert.NotEqual(t, payload["token"], stored.ResetPasswordToken, "only the hash is persisted")
}

func TestAuthForgotPassword_UnknownEmailStaysSilent(t *testing.T) {
	svc, _, events := newAuthFixture()

	err := svc.ForgotPassword(context.Background(), "nobody@example.com")

	assert.NoError(t, err, "unknown emails must not be probeable")
	assert.Empty(t, events.events)
}

func TestAuthResetPassword(t *testing.T) {
	svc, _, events := newAuthFixture()
	registerUser(t, svc, "alice@example.com")
	require.NoError(t, svc.ForgotPassword(context.Background(), "alice@example.com"))

	var payload map[string]string
	require.NoError(t, json.Unmarshal(events.events[0].body, &payload))
	rawToken := payload["token"]

	token, err := svc.ResetPassword(context.Background(), rawToken, "newsecret")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	// Old password no longer works, new one does.
	_, err = svc.Login(context.Background(), "alice@example.com", "hunter22")
	assert.Error(t, err)
	_, err = svc.Login(context.Background(), "alice@example.com", "newsecret")
	assert.NoError(t, err)

	// The token is single use.
	_, err = svc.ResetPassword(context.Background(), rawToken, "anothersecret")
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}

func TestAuthResetPassword_InvalidToken(t *testing.T) {
	svc, _, _ := newAuthFixture()

	_, err := svc.ResetPassword(context.Background(), "bogus", "newsecret")

	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}

func TestAuthResetPassword_ShortPassword(t *testing.T) {
	svc, _, _ := newAuthFixture()

	_, err := svc.ResetPassword(context.Background(), "whatever", "abc")

	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}
