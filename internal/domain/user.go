package domain

import "time"

// User owns sources, categories, types and transactions.
type User struct {
	ID        string
	Email     string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
