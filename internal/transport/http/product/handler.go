// Package product serves the product search and lookup over HTTP.
package product

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/light-bringer/catalog-service/internal/app/product/domain"
	"github.com/light-bringer/catalog-service/internal/app/product/queries/get_product"
	"github.com/light-bringer/catalog-service/internal/app/product/queries/search_products"
)

// Handler handles HTTP requests for products.
type Handler struct {
	searchQuery *search_products.Query
	getQuery    *get_product.Query
	timeout     time.Duration
}

// NewHandler creates a new product handler. timeout bounds each store
// call; zero means no bound beyond the request's own context.
func NewHandler(searchQuery *search_products.Query, getQuery *get_product.Query, timeout time.Duration) *Handler {
	return &Handler{
		searchQuery: searchQuery,
		getQuery:    getQuery,
		timeout:     timeout,
	}
}

// Routes mounts the product endpoints on r.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.Search)
	r.Get("/{id}", h.GetByID)
}

// Search handles GET /products.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter, err := parseFilter(q)
	if err != nil {
		writeError(w, r, err)
		return
	}
	page, err := parsePage(q)
	if err != nil {
		writeError(w, r, err)
		return
	}

	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()

	result, err := h.searchQuery.Execute(ctx, &search_products.Request{Filter: filter, Page: page})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, pageToResponse(result))
}

// GetByID handles GET /products/{id}.
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		writeError(w, r, fmt.Errorf("%w: %q", domain.ErrProductNotFound, raw))
		return
	}

	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()

	dto, err := h.getQuery.Execute(ctx, &get_product.Request{ProductID: id})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dtoToResponse(dto))
}

func (h *Handler) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if h.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, h.timeout)
}
