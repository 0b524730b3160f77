package repository

import (
	"context"
	"errors"

	"github.com/abheydecbs/webshop-eksamen/internal/domain"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrOrderNotFound   = errors.New("order not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrEmailTaken      = errors.New("email already registered")
)

// ProductRepository reads the catalog. Products are seeded by migrations and
// read-only at runtime.
type ProductRepository interface {
	GetAllProducts(ctx context.Context) ([]*domain.Product, error)
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
	GetProductsByIDs(ctx context.Context, ids []int64) (map[int64]*domain.Product, error)
	SearchProducts(ctx context.Context, query string) ([]*domain.Product, error)
}

// OrderRepository persists materialized orders. CreateOrder writes the
// customer snapshot, the order header and all lines in one transaction.
type OrderRepository interface {
	CreateOrder(ctx context.Context, customer *domain.Customer, order *domain.Order) error
	ListOrders(ctx context.Context) ([]*domain.OrderSummary, error)
	GetOrder(ctx context.Context, orderID string) (*domain.OrderSummary, []*domain.OrderLine, error)
}

// UserRepository owns login accounts.
type UserRepository interface {
	CreateUser(ctx context.Context, email, passwordHash string) (int64, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
}
