package http

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/abheydecbs/webshop-eksamen/internal/domain"
	"github.com/abheydecbs/webshop-eksamen/internal/repository"
	"github.com/abheydecbs/webshop-eksamen/internal/service"
	"github.com/go-chi/chi/v5"
)

type CartHandler struct {
	carts   *service.CartService
	catalog repository.ProductRepository
}

func NewCartHandler(carts *service.CartService, catalog repository.ProductRepository) *CartHandler {
	return &CartHandler{carts: carts, catalog: catalog}
}

type AddLineRequestDTO struct {
	ProductID int64 `json:"produktId"`
	Quantity  int   `json:"antal"`
}

type SetQuantityRequestDTO struct {
	Quantity int `json:"antal"`
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r.Context())

	cart, err := h.carts.GetCart(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, h.cartToDTOs(r.Context(), cart))
}

func (h *CartHandler) AddLine(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r.Context())

	var req AddLineRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.ProductID <= 0 || req.Quantity < 1 {
		respondError(w, http.StatusBadRequest, "invalid_request", "Ugyldige data")
		return
	}

	cart, err := h.carts.AddLine(r.Context(), userID, req.ProductID, req.Quantity)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, h.cartToDTOs(r.Context(), cart))
}

func (h *CartHandler) SetQuantity(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r.Context())

	productID, ok := productIDParam(w, r)
	if !ok {
		return
	}

	var req SetQuantityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Quantity < 1 {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "Ugyldigt antal")
		return
	}

	cart, err := h.carts.SetQuantity(r.Context(), userID, productID, req.Quantity)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, h.cartToDTOs(r.Context(), cart))
}

func (h *CartHandler) RemoveLine(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r.Context())

	productID, ok := productIDParam(w, r)
	if !ok {
		return
	}

	cart, err := h.carts.RemoveLine(r.Context(), userID, productID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, h.cartToDTOs(r.Context(), cart))
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r.Context())

	if err := h.carts.ClearCart(r.Context(), userID); err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

func productIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	idStr := chi.URLParam(r, "produktId")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "produktId skal være et positivt heltal")
		return 0, false
	}
	return id, true
}

// cartToDTOs joins display fields from the catalog onto the snapshot lines.
// A catalog failure (or a product deleted since the add) degrades to the
// snapshot alone rather than failing the request.
func (h *CartHandler) cartToDTOs(ctx context.Context, cart *domain.Cart) []CartLineDTO {
	dtos := make([]CartLineDTO, 0, len(cart.Lines))

	ids := make([]int64, 0, len(cart.Lines))
	for _, l := range cart.Lines {
		ids = append(ids, l.ProductID)
	}

	products, err := h.catalog.GetProductsByIDs(ctx, ids)
	if err != nil {
		log.Printf("catalog lookup for cart display failed: %v", err)
		products = map[int64]*domain.Product{}
	}

	for _, l := range cart.Lines {
		dto := CartLineDTO{
			ProductID: l.ProductID,
			Name:      l.Name,
			Price:     l.Price,
			Quantity:  l.Quantity,
		}
		if p, ok := products[l.ProductID]; ok {
			dto.Description = p.Description
			dto.Category = p.Category
			dto.Brand = p.Brand
		}
		dtos = append(dtos, dto)
	}

	return dtos
}
