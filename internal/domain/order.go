package domain

import "time"

type OrderStatus string

// Orders are created as "modtaget" and never transition; there is no
// fulfilment pipeline behind the storefront.
const OrderStatusReceived OrderStatus = "modtaget"

// Customer is the contact snapshot captured at checkout. A new row is
// created per order, even for a returning customer.
type Customer struct {
	ID         int64
	Name       string
	Email      string
	Phone      string
	Address    string
	PostalCode string
	City       string
	CreatedAt  time.Time
}

// Order is immutable once created. OrderID is the generated public
// identifier ("ORD-..."), distinct from the row id.
type Order struct {
	ID         int64
	OrderID    string
	CustomerID int64
	TotalPrice int64
	Status     OrderStatus
	CreatedAt  time.Time
	Lines      []OrderLine
}

// OrderLine is fully denormalized from the cart at order time, so catalog
// edits never alter historical orders.
type OrderLine struct {
	ID          int64
	ProductID   int64
	ProductName string
	Price       int64
	Quantity    int
}

// OrderSummary is an order joined with its customer snapshot, as returned
// by the order listing endpoints.
type OrderSummary struct {
	OrderID            string
	TotalPrice         int64
	Status             OrderStatus
	CreatedAt          time.Time
	CustomerName       string
	CustomerEmail      string
	CustomerPhone      string
	CustomerAddress    string
	CustomerPostalCode string
	CustomerCity       string
}
