package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"phonetech/internal/apperrors"
	"phonetech/internal/middleware"
	"phonetech/internal/models"
	"phonetech/internal/services"
)

// CartHandler handles HTTP requests for the caller's shopping cart. Every
// route requires authentication.
type CartHandler struct {
	service  *services.CartService
	validate *validator.Validate
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(service *services.CartService) *CartHandler {
	return &CartHandler{
		service:  service,
		validate: validator.New(),
	}
}

// AddItemRequest is the body of POST /cart.
type AddItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

// UpdateItemRequest is the body of PUT /cart/:itemId.
type UpdateItemRequest struct {
	Quantity int `json:"quantity" validate:"gte=0"`
}

// RegisterRoutes registers the cart routes behind the auth middleware.
func (h *CartHandler) RegisterRoutes(router fiber.Router, authService *services.AuthService) {
	cart := router.Group("/cart", middleware.AuthRequired(authService))
	cart.Get("/", h.HandleGetCart)
	cart.Post("/", h.HandleAddItem)
	cart.Delete("/", h.HandleClear)
	cart.Put("/:itemId", h.HandleUpdateItem)
	cart.Delete("/:itemId", h.HandleRemoveItem)
}

// HandleGetCart returns the caller's cart with product details populated.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	cart, err := h.service.GetCart(c.UserContext(), middleware.CallerID(c))
	if err != nil {
		return err
	}
	return jsonData(c, fiber.StatusOK, cartBody(cart))
}

// HandleAddItem adds a product to the cart, merging with an existing line.
func (h *CartHandler) HandleAddItem(c *fiber.Ctx) error {
	var req AddItemRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.Validation("invalid request body")
	}
	if err := validateStruct(h.validate, req); err != nil {
		return err
	}
	cart, err := h.service.AddItem(c.UserContext(), middleware.CallerID(c), req.ProductID, req.Quantity)
	if err != nil {
		return err
	}
	return jsonData(c, fiber.StatusOK, cartBody(cart))
}

// HandleUpdateItem sets an item's quantity exactly.
func (h *CartHandler) HandleUpdateItem(c *fiber.Ctx) error {
	var req UpdateItemRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.Validation("invalid request body")
	}
	if err := validateStruct(h.validate, req); err != nil {
		return err
	}
	cart, err := h.service.UpdateItem(c.UserContext(), middleware.CallerID(c), c.Params("itemId"), req.Quantity)
	if err != nil {
		return err
	}
	return jsonData(c, fiber.StatusOK, cartBody(cart))
}

// HandleRemoveItem filters an item out of the cart; unknown ids are a no-op.
func (h *CartHandler) HandleRemoveItem(c *fiber.Ctx) error {
	cart, err := h.service.RemoveItem(c.UserContext(), middleware.CallerID(c), c.Params("itemId"))
	if err != nil {
		return err
	}
	return jsonData(c, fiber.StatusOK, cartBody(cart))
}

// HandleClear empties the cart.
func (h *CartHandler) HandleClear(c *fiber.Ctx) error {
	cart, err := h.service.Clear(c.UserContext(), middleware.CallerID(c))
	if err != nil {
		return err
	}
	return jsonData(c, fiber.StatusOK, cartBody(cart))
}

// cartBody normalizes an empty item list so the response always carries an
// array.
func cartBody(cart *models.Cart) *models.Cart {
	if cart.Items == nil {
		cart.Items = []models.CartItem{}
	}
	return cart
}
