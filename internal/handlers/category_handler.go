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

// CategoryHandler handles HTTP requests for categories.
type CategoryHandler struct {
	service  *services.CategoryService
	executor *query.Executor
	validate *validator.Validate
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(service *services.CategoryService, executor *query.Executor) *CategoryHandler {
	return &CategoryHandler{
		service:  service,
		executor: executor,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the category routes.
func (h *CategoryHandler) RegisterRoutes(router fiber.Router, authService *services.AuthService) {
	categories := router.Group("/categories")
	categories.Get("/", h.HandleList)
	categories.Get("/:id", h.HandleGet)
	categories.Post("/", middleware.AuthRequired(authService), h.HandleCreate)
	categories.Put("/:id", middleware.AuthRequired(authService), h.HandleUpdate)
	categories.Delete("/:id", middleware.AuthRequired(authService), h.HandleDelete)
}

// HandleList runs the list pipeline without the product-only search and
// name sub-filters.
func (h *CategoryHandler) HandleList(c *fiber.Ctx) error {
	params, err := query.Compile(c.Queries(), query.CategoryColumns)
	if err != nil {
		return err
	}
	categories := []models.Category{}
	result, err := h.executor.List(c.UserContext(), &models.Category{}, &categories, params, query.Options{})
	if err != nil {
		return err
	}
	return c.JSON(result)
}

func (h *CategoryHandler) HandleGet(c *fiber.Ctx) error {
	category, err := h.service.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return jsonData(c, fiber.StatusOK, category)
}

func (h *CategoryHandler) HandleCreate(c *fiber.Ctx) error {
	var category models.Category
	if err := c.BodyParser(&category); err != nil {
		return apperrors.Validation("invalid request body")
	}
	if err := validateStruct(h.validate, category); err != nil {
		return err
	}
	if err := h.service.Create(c.UserContext(), &category, middleware.CallerID(c)); err != nil {
		return err
	}
	return jsonData(c, fiber.StatusCreated, category)
}

func (h *CategoryHandler) HandleUpdate(c *fiber.Ctx) error {
	var in services.TaxonomyUpdate
	if err := c.BodyParser(&in); err != nil {
		return apperrors.Validation("invalid request body")
	}
	category, err := h.service.Update(c.UserContext(), c.Params("id"), &in, middleware.CallerID(c), middleware.CallerRole(c))
	if err != nil {
		return err
	}
	return jsonData(c, fiber.StatusOK, category)
}

func (h *CategoryHandler) HandleDelete(c *fiber.Ctx) error {
	err := h.service.Delete(c.UserContext(), c.Params("id"), middleware.CallerID(c), middleware.CallerRole(c))
	if err != nil {
		return err
	}
	return jsonData(c, fiber.StatusOK, fiber.Map{})
}
