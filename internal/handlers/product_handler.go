package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-api/internal/database"
	"storefront-api/internal/models"
	"storefront-api/internal/seed"
)

// ProductRepository is what the product endpoints need from storage.
type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) (string, error)
	FindAll(ctx context.Context, filter models.ProductFilter) ([]models.Product, error)
	Categories(ctx context.Context) ([]string, error)
	Count(ctx context.Context, filter models.ProductFilter) (int64, error)
}

type ProductHandler struct {
	repo   ProductRepository
	logger *slog.Logger
}

func NewProductHandler(repo ProductRepository, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		repo:   repo,
		logger: logger,
	}
}

type CreatedResponse struct {
	ID string `json:"id"`
}

type SeedResponse struct {
	Status   string `json:"status"`
	Message  string `json:"message,omitempty"`
	Count    *int64 `json:"count,omitempty"`
	Inserted *int   `json:"inserted,omitempty"`
}

// ListProducts handles GET /api/products.
func (h *ProductHandler) ListProducts(c *gin.Context) {
	var filter models.ProductFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		respondValidation(c, models.NewTypeError(err))
		return
	}

	products, err := h.repo.FindAll(c.Request.Context(), filter)
	if err != nil {
		h.storeFailure(c, "list products", err)
		return
	}

	c.JSON(http.StatusOK, products)
}

// CreateProduct handles POST /api/products.
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var input models.ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondValidation(c, models.NewTypeError(err))
		return
	}

	product, err := input.Validate()
	if err != nil {
		var verr *models.ValidationError
		if errors.As(err, &verr) {
			respondValidation(c, verr)
			return
		}
		h.storeFailure(c, "validate product", err)
		return
	}

	id, err := h.repo.Create(c.Request.Context(), product)
	if err != nil {
		h.storeFailure(c, "create product", err)
		return
	}

	h.logger.InfoContext(c.Request.Context(), "product created", "id", id, "category", product.Category)
	c.JSON(http.StatusCreated, CreatedResponse{ID: id})
}

// ListCategories handles GET /api/categories. A missing store yields an
// empty list rather than an error.
func (h *ProductHandler) ListCategories(c *gin.Context) {
	categories, err := h.repo.Categories(c.Request.Context())
	if errors.Is(err, database.ErrNotConnected) {
		c.JSON(http.StatusOK, []string{})
		return
	}
	if err != nil {
		h.storeFailure(c, "list categories", err)
		return
	}
	if categories == nil {
		categories = []string{}
	}

	c.JSON(http.StatusOK, categories)
}

// SeedProducts handles POST /api/seed.
func (h *ProductHandler) SeedProducts(c *gin.Context) {
	res, err := seed.Apply(c.Request.Context(), h.repo)
	if err != nil {
		h.storeFailure(c, "seed products", err)
		return
	}

	if res.Existing > 0 {
		c.JSON(http.StatusOK, SeedResponse{
			Status:  "ok",
			Message: "Products already exist",
			Count:   &res.Existing,
		})
		return
	}

	h.logger.InfoContext(c.Request.Context(), "🌱 sample products inserted", "inserted", res.Inserted)
	c.JSON(http.StatusOK, SeedResponse{Status: "ok", Inserted: &res.Inserted})
}

// storeFailure answers 500 with the raw error message.
func (h *ProductHandler) storeFailure(c *gin.Context, op string, err error) {
	_ = c.Error(err)
	h.logger.ErrorContext(c.Request.Context(), op+" failed", "error", err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Detail: err.Error()})
}
