package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"phonetech/internal/apperrors"
	"phonetech/internal/models"
	"phonetech/internal/services"
)

// ContactHandler handles the public contact form.
type ContactHandler struct {
	service  *services.ContactService
	validate *validator.Validate
}

// NewContactHandler creates a new ContactHandler.
func NewContactHandler(service *services.ContactService) *ContactHandler {
	return &ContactHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the contact route.
func (h *ContactHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/contact", h.HandleSend)
}

// HandleSend persists a contact message and triggers the outbound
// notification.
func (h *ContactHandler) HandleSend(c *fiber.Ctx) error {
	var message models.ContactMessage
	if err := c.BodyParser(&message); err != nil {
		return apperrors.Validation("invalid request body")
	}
	if err := validateStruct(h.validate, message); err != nil {
		return err
	}
	if err := h.service.Send(c.UserContext(), &message); err != nil {
		return err
	}
	return jsonData(c, fiber.StatusOK, message)
}
