package domain

import "time"

// Cart is the durable server-side cart, keyed one-to-one by user.
type Cart struct {
	ID        string     `bson:"_id,omitempty"`
	UserID    int64      `bson:"user_id"`
	Lines     []CartLine `bson:"lines"`
	CreatedAt time.Time  `bson:"created_at"`
	UpdatedAt time.Time  `bson:"updated_at"`
}

// CartLine snapshots product name and price at add time. A later catalog
// price change does not touch existing lines.
type CartLine struct {
	ProductID int64     `bson:"product_id"`
	Name      string    `bson:"product_name"`
	Price     int64     `bson:"product_price"`
	Quantity  int       `bson:"quantity"`
	AddedAt   time.Time `bson:"added_at"`
}

// TotalPrice sums line subtotals.
func (c *Cart) TotalPrice() int64 {
	var total int64
	for _, l := range c.Lines {
		total += l.Price * int64(l.Quantity)
	}
	return total
}
