package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"phonetech/internal/apperrors"
	"phonetech/internal/middleware"
	"phonetech/internal/models"
	"phonetech/internal/query"
	"phonetech/internal/services"
)

// BrandHandler handles HTTP requests for brands.
type BrandHandler struct {
	service  *services.BrandService
	executor *query.Executor
	validate *validator.Validate
}

// NewBrandHandler creates a new BrandHandler.
func NewBrandHandler(service *services.BrandService, executor *query.Executor) *BrandHandler {
	return &BrandHandler{
		service:  service,
		executor: executor,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the brand routes.
func (h *BrandHandler) RegisterRoutes(router fiber.Router, authService *services.AuthService) {
	brands := router.Group("/brands")
	brands.Get("/", h.HandleList)
	brands.Get("/:id", h.HandleGet)
	brands.Post("/", middleware.AuthRequired(authService), h.HandleCreate)
	brands.Put("/:id", middleware.AuthRequired(authService), h.HandleUpdate)
	brands.Delete("/:id", middleware.AuthRequired(authService), h.HandleDelete)
}

func (h *BrandHandler) HandleList(c *fiber.Ctx) error {
	params, err := query.Compile(c.Queries(), query.BrandColumns)
	if err != nil {
		return err
	}
	brands := []models.Brand{}
	result, err := h.executor.List(c.UserContext(), &models.Brand{}, &brands, params, query.Options{})
	if err != nil {
		return err
	}
	return c.JSON(result)
}

func (h *BrandHandler) HandleGet(c *fiber.Ctx) error {
	brand, err := h.service.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return jsonData(c, fiber.StatusOK, brand)
}

func (h *BrandHandler) HandleCreate(c *fiber.Ctx) error {
	var brand models.Brand
	if err := c.BodyParser(&brand); err != nil {
		return apperrors.Validation("invalid request body")
	}
	if err := validateStruct(h.validate, brand); err != nil {
		return err
	}
	if err := h.service.Create(c.UserContext(), &brand, middleware.CallerID(c)); err != nil {
		return err
	}
	return jsonData(c, fiber.StatusCreated, brand)
}

func (h *BrandHandler) HandleUpdate(c *fiber.Ctx) error {
	var in services.TaxonomyUpdate
	if err := c.BodyParser(&in); err != nil {
		return apperrors.Validation("invalid request body")
	}
	brand, err := h.service.Update(c.UserContext(), c.Params("id"), &in, middleware.CallerID(c), middleware.CallerRole(c))
	if err != nil {
		return err
	}
	return jsonData(c, fiber.StatusOK, brand)
}

func (h *BrandHandler) HandleDelete(c *fiber.Ctx) error {
	err := h.service.Delete(c.UserContext(), c.Params("id"), middleware.CallerID(c), middleware.CallerRole(c))
	if err != nil {
		return err
	}
	return jsonData(c, fiber.StatusOK, fiber.Map{})
}
