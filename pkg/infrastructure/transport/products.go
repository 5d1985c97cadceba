package transport

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/ShopVerse1/NJ-Digital-Boutique/pkg/domain/model"
	"github.com/ShopVerse1/NJ-Digital-Boutique/pkg/domain/service"
)

// parsePositiveInt parses a query parameter with an explicit failure mode:
// absent falls back to the default, malformed or non-positive is rejected.
func parsePositiveInt(value string, fallback int) (int, bool) {
	if value == "" {
		return fallback, true
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var filter model.ProductFilter
	if raw := query.Get("category"); raw != "" {
		category, ok := model.ParseCategory(raw)
		if !ok {
			respondError(w, http.StatusBadRequest, "Unknown category")
			return
		}
		filter.Category = &category
	}
	if raw := query.Get("featured"); raw != "" {
		featured, err := strconv.ParseBool(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid featured flag")
			return
		}
		filter.Featured = &featured
	}

	var ok bool
	if filter.Page, ok = parsePositiveInt(query.Get("page"), 1); !ok {
		respondError(w, http.StatusBadRequest, "Invalid page")
		return
	}
	if filter.Limit, ok = parsePositiveInt(query.Get("limit"), 12); !ok {
		respondError(w, http.StatusBadRequest, "Invalid limit")
		return
	}

	page, err := h.catalog.ListProducts(filter)
	if err != nil {
		respondInternal(w, err, "Failed to fetch products")
		return
	}
	respondProductPage(w, page)
}

func (h *Handler) featuredProducts(w http.ResponseWriter, _ *http.Request) {
	products, err := h.catalog.FeaturedProducts()
	if err != nil {
		respondInternal(w, err, "Failed to fetch featured products")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"products": toProductResponses(products),
	})
}

func (h *Handler) productsByCategory(w http.ResponseWriter, r *http.Request) {
	category, ok := model.ParseCategory(mux.Vars(r)["category"])
	if !ok {
		respondError(w, http.StatusBadRequest, "Unknown category")
		return
	}

	query := r.URL.Query()
	page, ok := parsePositiveInt(query.Get("page"), 1)
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid page")
		return
	}
	limit, ok := parsePositiveInt(query.Get("limit"), 12)
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid limit")
		return
	}

	result, err := h.catalog.ProductsByCategory(category, page, limit)
	if err != nil {
		respondInternal(w, err, "Failed to fetch products by category")
		return
	}
	respondProductPage(w, result)
}

func (h *Handler) productByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusNotFound, "Product not found")
		return
	}

	product, err := h.catalog.ProductByID(id)
	if errors.Is(err, model.ErrProductNotFound) {
		respondError(w, http.StatusNotFound, "Product not found")
		return
	}
	if err != nil {
		respondInternal(w, err, "Failed to fetch product")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"product": toProductResponse(product),
	})
}

func respondProductPage(w http.ResponseWriter, page *service.ProductPage) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":     true,
		"products":    toProductResponses(page.Products),
		"total":       page.Total,
		"currentPage": page.Page,
		"totalPages":  page.TotalPages,
	})
}
