package handlers

import (
	"net/url"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"phonetech/internal/apperrors"
	"phonetech/internal/middleware"
	"phonetech/internal/models"
	"phonetech/internal/query"
	"phonetech/internal/services"
)

// ProductHandler handles HTTP requests for the product catalog.
type ProductHandler struct {
	service  *services.ProductService
	executor *query.Executor
	validate *validator.Validate
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService, executor *query.Executor) *ProductHandler {
	return &ProductHandler{
		service:  service,
		executor: executor,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the product routes. Reads are public; creation is
// admin-only and updates/deletes are checked against ownership in the
// service.
func (h *ProductHandler) RegisterRoutes(router fiber.Router, authService *services.AuthService) {
	products := router.Group("/products")
	products.Get("/", h.HandleList)
	products.Get("/category/:categoryName", h.HandleListByCategory)
	products.Post("/", middleware.AuthRequired(authService), middleware.RequireRoles(models.RoleAdmin), h.HandleCreate)
	products.Get("/:id", h.HandleGet)
	products.Put("/:id", middleware.AuthRequired(authService), h.HandleUpdate)
	products.Delete("/:id", middleware.AuthRequired(authService), h.HandleDelete)
}

// HandleList runs the full list pipeline: filters, search, category/brand
// name resolution, sorting, pagination, and population.
func (h *ProductHandler) HandleList(c *fiber.Ctx) error {
	params, err := query.Compile(c.Queries(), query.ProductColumns)
	if err != nil {
		return err
	}
	products := []models.Product{}
	result, err := h.executor.List(c.UserContext(), &models.Product{}, &products, params, query.Options{
		Searchable: true,
		Resolve:    true,
		Populate:   []string{"Category", "Brand"},
	})
	if err != nil {
		return err
	}
	return c.JSON(result)
}

// HandleListByCategory lists products of the named category, sharing the
// unknown-name-means-empty-result policy with the query pipeline.
func (h *ProductHandler) HandleListByCategory(c *fiber.Ctx) error {
	params, err := query.Compile(c.Queries(), query.ProductColumns)
	if err != nil {
		return err
	}
	name, err := url.PathUnescape(c.Params("categoryName"))
	if err != nil {
		return apperrors.Validation("invalid category name")
	}
	params.Category = name

	products := []models.Product{}
	result, err := h.executor.List(c.UserContext(), &models.Product{}, &products, params, query.Options{
		Searchable: true,
		Resolve:    true,
		Populate:   []string{"Category", "Brand"},
	})
	if err != nil {
		return err
	}
	return c.JSON(result)
}

// HandleGet retrieves a single product by id.
func (h *ProductHandler) HandleGet(c *fiber.Ctx) error {
	product, err := h.service.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return jsonData(c, fiber.StatusOK, product)
}

// HandleCreate creates a new product owned by the caller.
func (h *ProductHandler) HandleCreate(c *fiber.Ctx) error {
	var product models.Product
	if err := c.BodyParser(&product); err != nil {
		return apperrors.Validation("invalid request body")
	}
	if err := validateStruct(h.validate, product); err != nil {
		return err
	}
	if err := h.service.Create(c.UserContext(), &product, middleware.CallerID(c)); err != nil {
		return err
	}
	return jsonData(c, fiber.StatusCreated, product)
}

// HandleUpdate applies a partial update to a product.
func (h *ProductHandler) HandleUpdate(c *fiber.Ctx) error {
	var in services.ProductUpdate
	if err := c.BodyParser(&in); err != nil {
		return apperrors.Validation("invalid request body")
	}
	if err := validateStruct(h.validate, in); err != nil {
		return err
	}
	product, err := h.service.Update(c.UserContext(), c.Params("id"), &in, middleware.CallerID(c), middleware.CallerRole(c))
	if err != nil {
		return err
	}
	return jsonData(c, fiber.StatusOK, product)
}

// HandleDelete removes a product.
func (h *ProductHandler) HandleDelete(c *fiber.Ctx) error {
	err := h.service.Delete(c.UserContext(), c.Params("id"), middleware.CallerID(c), middleware.CallerRole(c))
	if err != nil {
		return err
	}
	return jsonData(c, fiber.StatusOK, fiber.Map{})
}
