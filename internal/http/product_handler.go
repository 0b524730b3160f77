package http

import (
	"net/http"
	"strconv"

	"github.com/abheydecbs/webshop-eksamen/internal/repository"
	"github.com/go-chi/chi/v5"
)

type ProductHandler struct {
	catalog repository.ProductRepository
}

func NewProductHandler(catalog repository.ProductRepository) *ProductHandler {
	return &ProductHandler{catalog: catalog}
}

func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.GetAllProducts(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, productsToDTOs(products))
}

func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "id skal være et positivt heltal")
		return
	}

	product, err := h.catalog.GetProduct(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, productToDTO(product))
}

func (h *ProductHandler) SearchProducts(w http.ResponseWriter, r *http.Request) {
	query := chi.URLParam(r, "query")

	products, err := h.catalog.SearchProducts(r.Context(), query)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, productsToDTOs(products))
}
