package http

import (
	"encoding/json"
	"net/http"

	"github.com/abheydecbs/webshop-eksamen/internal/domain"
	"github.com/abheydecbs/webshop-eksamen/internal/service"
	"github.com/go-chi/chi/v5"
)

type OrderHandler struct {
	orders *service.OrderService
}

func NewOrderHandler(orders *service.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// CreateOrderRequestDTO carries the checkout payload. Unknown fields (for
// example a client-computed total) are ignored; the total is always
// recomputed server-side.
type CreateOrderRequestDTO struct {
	Customer *CustomerDTO  `json:"kunde"`
	Lines    []CartLineDTO `json:"kurv"`
}

type CreateOrderResponseDTO struct {
	Success    bool   `json:"success"`
	OrderID    string `json:"ordreId"`
	CustomerID int64  `json:"kundeId"`
	TotalPrice int64  `json:"totalPris"`
	Message    string `json:"message"`
}

func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Customer == nil || len(req.Lines) == 0 {
		respondError(w, http.StatusBadRequest, "validation_failed", "Manglende kunde- eller kurvoplysninger")
		return
	}

	customer := &domain.Customer{
		Name:       req.Customer.Name,
		Email:      req.Customer.Email,
		Phone:      req.Customer.Phone,
		Address:    req.Customer.Address,
		PostalCode: req.Customer.PostalCode,
		City:       req.Customer.City,
	}

	lines := make([]domain.OrderLine, 0, len(req.Lines))
	for _, l := range req.Lines {
		lines = append(lines, domain.OrderLine{
			ProductID:   l.ProductID,
			ProductName: l.Name,
			Price:       l.Price,
			Quantity:    l.Quantity,
		})
	}

	confirmation, err := h.orders.CreateOrder(r.Context(), customer, lines)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, CreateOrderResponseDTO{
		Success:    true,
		OrderID:    confirmation.OrderID,
		CustomerID: confirmation.CustomerID,
		TotalPrice: confirmation.TotalPrice,
		Message:    "Ordre oprettet succesfuldt",
	})
}

func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.orders.ListOrders(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	dtos := make([]OrderSummaryDTO, 0, len(summaries))
	for _, s := range summaries {
		dtos = append(dtos, orderSummaryToDTO(s))
	}
	respondJSON(w, http.StatusOK, dtos)
}

func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "ordreId")

	summary, lines, err := h.orders.GetOrder(r.Context(), orderID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	lineDTOs := make([]OrderLineDTO, 0, len(lines))
	for _, l := range lines {
		lineDTOs = append(lineDTOs, OrderLineDTO{
			ProductID:   l.ProductID,
			ProductName: l.ProductName,
			Price:       l.Price,
			Quantity:    l.Quantity,
		})
	}

	respondJSON(w, http.StatusOK, OrderDetailDTO{
		OrderSummaryDTO: orderSummaryToDTO(summary),
		Lines:           lineDTOs,
	})
}
