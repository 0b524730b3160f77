package domain

// Product is a read-only catalog entry. Price is an integer amount in
// kroner so arithmetic stays exact.
type Product struct {
	ID          int64
	Name        string
	Price       int64
	Description string
	Category    string
	Brand       string
}
