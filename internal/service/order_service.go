package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/abheydecbs/webshop-eksamen/internal/domain"
	"github.com/abheydecbs/webshop-eksamen/internal/repository"
	"github.com/google/uuid"
)

var ErrValidation = errors.New("validation failed")

// OrderConfirmation is the caller's cue to clear the cart.
type OrderConfirmation struct {
	OrderID    string
	CustomerID int64
	TotalPrice int64
}

// OrderService materializes a cart snapshot into an immutable order. It
// never touches the cart itself; clearing is the caller's responsibility,
// and only after creation succeeded.
type OrderService struct {
	repo repository.OrderRepository
}

func NewOrderService(repo repository.OrderRepository) *OrderService {
	return &OrderService{repo: repo}
}

// CreateOrder validates the contact snapshot and the submitted lines,
// recomputes the total server-side and persists customer, order and lines
// atomically. The client's own idea of the total is never consulted.
func (s *OrderService) CreateOrder(ctx context.Context, customer *domain.Customer, lines []domain.OrderLine) (*OrderConfirmation, error) {
	if err := validateOrder(customer, lines); err != nil {
		return nil, err
	}

	var total int64
	orderLines := make([]domain.OrderLine, 0, len(lines))
	for _, l := range lines {
		total += l.Price * int64(l.Quantity)
		orderLines = append(orderLines, domain.OrderLine{
			ProductID:   l.ProductID,
			ProductName: l.ProductName,
			Price:       l.Price,
			Quantity:    l.Quantity,
		})
	}

	order := &domain.Order{
		OrderID:    newOrderID(time.Now()),
		TotalPrice: total,
		Status:     domain.OrderStatusReceived,
		Lines:      orderLines,
	}

	if err := s.repo.CreateOrder(ctx, customer, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	return &OrderConfirmation{
		OrderID:    order.OrderID,
		CustomerID: customer.ID,
		TotalPrice: total,
	}, nil
}

func (s *OrderService) ListOrders(ctx context.Context) ([]*domain.OrderSummary, error) {
	return s.repo.ListOrders(ctx)
}

func (s *OrderService) GetOrder(ctx context.Context, orderID string) (*domain.OrderSummary, []*domain.OrderLine, error) {
	return s.repo.GetOrder(ctx, orderID)
}

func validateOrder(customer *domain.Customer, lines []domain.OrderLine) error {
	if customer == nil {
		return fmt.Errorf("%w: missing kunde", ErrValidation)
	}

	required := map[string]string{
		"navn":    customer.Name,
		"email":   customer.Email,
		"telefon": customer.Phone,
		"adresse": customer.Address,
		"postnr":  customer.PostalCode,
		"by":      customer.City,
	}
	for field, value := range required {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%w: missing kunde.%s", ErrValidation, field)
		}
	}

	if len(lines) == 0 {
		return fmt.Errorf("%w: kurv is empty", ErrValidation)
	}
	for _, l := range lines {
		if l.Quantity < 1 {
			return fmt.Errorf("%w: antal must be at least 1 for produkt %d", ErrValidation, l.ProductID)
		}
		if l.Price < 0 {
			return fmt.Errorf("%w: negative pris for produkt %d", ErrValidation, l.ProductID)
		}
	}

	return nil
}

// newOrderID keeps the human-inspectable time component but takes the
// disambiguator from a random UUID instead of a three-digit roll, so two
// orders in the same millisecond cannot realistically collide.
func newOrderID(now time.Time) string {
	return fmt.Sprintf("ORD-%d-%s", now.UnixMilli(), uuid.NewString()[:8])
}
