package domain

import "time"

// User is a registered login. Customers on orders are separate snapshots
// and are never linked back to a user row.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
