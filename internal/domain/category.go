package domain

import "time"

// Category labels transactions of one transaction type.
type Category struct {
	ID        string
	Name      string
	TypeID    string
	OwnerID   *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsShared reports whether the category is a read-only default.
func (c *Category) IsShared() bool {
	return c.OwnerID == nil
}
