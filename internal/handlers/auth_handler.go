package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"phonetech/internal/apperrors"
	"phonetech/internal/middleware"
	"phonetech/internal/models"
	"phonetech/internal/services"
)

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	service  *services.AuthService
	validate *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(service *services.AuthService) *AuthHandler {
	return &AuthHandler{
		service:  service,
		validate: validator.New(),
	}
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ForgotPasswordRequest is the body of POST /auth/forgot-password.
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordRequest is the body of PUT /auth/resetpassword/:token.
type ResetPasswordRequest struct {
	Password string `json:"password" validate:"required,min=6"`
}

// RegisterRoutes registers the authentication routes.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	auth := router.Group("/auth")
	auth.Post("/register", h.HandleRegister)
	auth.Post("/login", h.HandleLogin)
	auth.Get("/me", middleware.AuthRequired(h.service), h.HandleMe)
	auth.Get("/logout", h.HandleLogout)
	auth.Post("/forgot-password", h.HandleForgotPassword)
	auth.Put("/resetpassword/:token", h.HandleResetPassword)
}

// HandleRegister registers a new user and returns a signed token.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var user models.User
	if err := c.BodyParser(&user); err != nil {
		return apperrors.Validation("invalid request body")
	}
	if err := validateStruct(h.validate, user); err != nil {
		return err
	}
	token, err := h.service.Register(c.UserContext(), &user)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"token":   token,
		"data":    user,
	})
}

// HandleLogin authenticates a user and returns a signed token.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.Validation("invalid request body")
	}
	if err := validateStruct(h.validate, req); err != nil {
		return err
	}
	token, err := h.service.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"token":   token,
	})
}

// HandleMe returns the authenticated user's profile.
func (h *AuthHandler) HandleMe(c *fiber.Ctx) error {
	user, err := h.service.GetUser(c.UserContext(), middleware.CallerID(c))
	if err != nil {
		return err
	}
	return jsonData(c, fiber.StatusOK, user)
}

// HandleLogout acknowledges logout. Tokens are stateless; the client drops
// its copy.
func (h *AuthHandler) HandleLogout(c *fiber.Ctx) error {
	return jsonData(c, fiber.StatusOK, fiber.Map{})
}

// HandleForgotPassword starts the password reset flow. The response is the
// same whether or not the email is registered.
func (h *AuthHandler) HandleForgotPassword(c *fiber.Ctx) error {
	var req ForgotPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.Validation("invalid request body")
	}
	if err := validateStruct(h.validate, req); err != nil {
		return err
	}
	if err := h.service.ForgotPassword(c.UserContext(), req.Email); err != nil {
		return err
	}
	return jsonData(c, fiber.StatusOK, fiber.Map{
		"message": "reset instructions sent if the email is registered",
	})
}

// HandleResetPassword exchanges a reset token for a new password.
func (h *AuthHandler) HandleResetPassword(c *fiber.Ctx) error {
	var req ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.Validation("invalid request body")
	}
	if err := validateStruct(h.validate, req); err != nil {
		return err
	}
	token, err := h.service.ResetPassword(c.UserContext(), c.Params("token"), req.Password)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"token":   token,
	})
}
