package service

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/abheydecbs/webshop-eksamen/internal/domain"
	"github.com/abheydecbs/webshop-eksamen/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockOrderRepo struct {
	m      sync.Mutex
	orders []*domain.Order
	err    error
}

func (m *mockOrderRepo) CreateOrder(_ context.Context, customer *domain.Customer, order *domain.Order) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	customer.ID = int64(len(m.orders) + 1)
	m.orders = append(m.orders, order)
	return nil
}

func (m *mockOrderRepo) ListOrders(context.Context) ([]*domain.OrderSummary, error) {
	return nil, nil
}

func (m *mockOrderRepo) GetOrder(context.Context, string) (*domain.OrderSummary, []*domain.OrderLine, error) {
	return nil, nil, repository.ErrOrderNotFound
}

func validCustomer() *domain.Customer {
	return &domain.Customer{
		Name:       "Anders Hansen",
		Email:      "anders@example.dk",
		Phone:      "12345678",
		Address:    "Nørregade 1",
		PostalCode: "8000",
		City:       "Aarhus",
	}
}

func TestCreateOrder_RecomputesTotal(t *testing.T) {
	repo := &mockOrderRepo{}
	svc := NewOrderService(repo)

	lines := []domain.OrderLine{
		{ProductID: 1, ProductName: "Keychron K2", Price: 799, Quantity: 2},
		{ProductID: 2, ProductName: "AirPods Pro 2", Price: 2499, Quantity: 1},
	}

	conf, err := svc.CreateOrder(context.Background(), validCustomer(), lines)
	require.NoError(t, err)
	assert.Equal(t, int64(799*2+2499), conf.TotalPrice)
	assert.Equal(t, int64(1), conf.CustomerID)
}

func TestCreateOrder_IDFormatAndStatus(t *testing.T) {
	repo := &mockOrderRepo{}
	svc := NewOrderService(repo)

	conf, err := svc.CreateOrder(context.Background(), validCustomer(), []domain.OrderLine{
		{ProductID: 1, Price: 100, Quantity: 1},
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(conf.OrderID, "ORD-"))

	repo.m.Lock()
	defer repo.m.Unlock()
	require.Len(t, repo.orders, 1)
	assert.Equal(t, domain.OrderStatusReceived, repo.orders[0].Status)
}

func TestCreateOrder_DistinctIDs(t *testing.T) {
	repo := &mockOrderRepo{}
	svc := NewOrderService(repo)
	lines := []domain.OrderLine{{ProductID: 1, Price: 100, Quantity: 1}}

	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		conf, err := svc.CreateOrder(context.Background(), validCustomer(), lines)
		require.NoError(t, err)
		assert.False(t, seen[conf.OrderID], "duplicate order id %s", conf.OrderID)
		seen[conf.OrderID] = true
	}
}

func TestCreateOrder_ValidationRejectsWithoutWriting(t *testing.T) {
	cases := []struct {
		name     string
		customer *domain.Customer
		lines    []domain.OrderLine
	}{
		{"nil customer", nil, []domain.OrderLine{{ProductID: 1, Price: 100, Quantity: 1}}},
		{"empty cart", validCustomer(), nil},
		{"zero quantity", validCustomer(), []domain.OrderLine{{ProductID: 1, Price: 100, Quantity: 0}}},
		{"negative price", validCustomer(), []domain.OrderLine{{ProductID: 1, Price: -1, Quantity: 1}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &mockOrderRepo{}
			svc := NewOrderService(repo)

			_, err := svc.CreateOrder(context.Background(), tc.customer, tc.lines)
			assert.ErrorIs(t, err, ErrValidation)

			repo.m.Lock()
			defer repo.m.Unlock()
			assert.Empty(t, repo.orders)
		})
	}
}

func TestCreateOrder_MissingContactFields(t *testing.T) {
	mutations := map[string]func(*domain.Customer){
		"navn":    func(c *domain.Customer) { c.Name = "" },
		"email":   func(c *domain.Customer) { c.Email = " " },
		"telefon": func(c *domain.Customer) { c.Phone = "" },
		"adresse": func(c *domain.Customer) { c.Address = "" },
		"postnr":  func(c *domain.Customer) { c.PostalCode = "" },
		"by":      func(c *domain.Customer) { c.City = "" },
	}

	for field, mutate := range mutations {
		t.Run(field, func(t *testing.T) {
			svc := NewOrderService(&mockOrderRepo{})
			customer := validCustomer()
			mutate(customer)

			_, err := svc.CreateOrder(context.Background(), customer, []domain.OrderLine{
				{ProductID: 1, Price: 100, Quantity: 1},
			})
			require.ErrorIs(t, err, ErrValidation)
			assert.Contains(t, err.Error(), field)
		})
	}
}

func TestNewOrderID_Shape(t *testing.T) {
	id := newOrderID(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	parts := strings.SplitN(id, "-", 3)
	require.Len(t, parts, 3)
	assert.Equal(t, "ORD", parts[0])
	assert.Equal(t, "1735689600000", parts[1])
	assert.Len(t, parts[2], 8)
}
