package httpapi

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/andreasstove999/table-ordering/internal/catalog"
)

type CatalogService interface {
	CreateCategory(ctx context.Context, name string) (*catalog.Category, error)
	ListCategories(ctx context.Context) ([]catalog.Category, error)
	CreateProduct(ctx context.Context, in catalog.NewProduct) (*catalog.Product, error)
	ListProductsByCategory(ctx context.Context, categoryID string) ([]catalog.Product, error)
}

type CatalogHandler struct {
	svc     CatalogService
	logger  *log.Logger
	timeout time.Duration
}

type createCategoryRequest struct {
	Name string `json:"name"`
}

// Price accepts both "12.50" and 12.5.
type createProductRequest struct {
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	Banner      string          `json:"banner"`
	CategoryID  string          `json:"category_id"`
}

func (h *CatalogHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var body createCategoryRequest
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	c, err := h.svc.CreateCategory(ctx, body.Name)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	cats, err := h.svc.ListCategories(ctx)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, cats)
}

func (h *CatalogHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var body createProductRequest
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	p, err := h.svc.CreateProduct(ctx, catalog.NewProduct{
		Name:        body.Name,
		Price:       body.Price,
		Description: body.Description,
		Banner:      body.Banner,
		CategoryID:  body.CategoryID,
	})
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (h *CatalogHandler) ListProductsByCategory(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	products, err := h.svc.ListProductsByCategory(ctx, r.URL.Query().Get("category_id"))
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}
