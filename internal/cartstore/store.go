package cartstore

import (
	"context"
	"errors"

	"github.com/abheydecbs/webshop-eksamen/internal/domain"
)

var (
	ErrCartNotFound = errors.New("cart not found")
	ErrLineNotFound = errors.New("line not found in cart")
)

// Store is the durable cart persistence, defined by its consumers.
// Exactly one cart exists per user; implementations enforce that.
type Store interface {
	GetCart(ctx context.Context, userID int64) (*domain.Cart, error)
	AddLine(ctx context.Context, userID int64, line domain.CartLine) error
	SetLineQuantity(ctx context.Context, userID int64, productID int64, quantity int) error
	RemoveLine(ctx context.Context, userID int64, productID int64) error
	DeleteCart(ctx context.Context, userID int64) error
}
