package domain

import (
	"sort"
	"strings"
)

// Catalog is the two-tier view of transaction types and categories an owner
// can see: the shared defaults extended by the owner's own entities. It is
// resolved once per request and answers every lookup from memory.
type Catalog struct {
	ownerID    string
	types      map[string]*TransactionType
	categories map[string]*Category
}

// NewCatalog merges shared defaults with owned entities. Owned entities that
// belong to another owner are ignored.
func NewCatalog(ownerID string, types []*TransactionType, categories []*Category) *Catalog {
	c := &Catalog{
		ownerID:    ownerID,
		types:      make(map[string]*TransactionType, len(types)),
		categories: make(map[string]*Category, len(categories)),
	}

	for _, t := range types {
		if t.OwnerID != nil && *t.OwnerID != ownerID {
			continue
		}
		c.types[t.ID] = t
	}

	for _, cat := range categories {
		if cat.OwnerID != nil && *cat.OwnerID != ownerID {
			continue
		}
		c.categories[cat.ID] = cat
	}

	return c
}

// OwnerID returns the owner the catalog was resolved for.
func (c *Catalog) OwnerID() string {
	return c.ownerID
}

// Type looks up a visible transaction type.
func (c *Catalog) Type(id string) (*TransactionType, bool) {
	t, ok := c.types[id]
	return t, ok
}

// Category looks up a visible category.
func (c *Catalog) Category(id string) (*Category, bool) {
	cat, ok := c.categories[id]
	return cat, ok
}

// Types returns visible types, shared defaults first, then by name.
func (c *Catalog) Types() []*TransactionType {
	out := make([]*TransactionType, 0, len(c.types))
	for _, t := range c.types {
		out = append(out, t)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].IsShared() != out[j].IsShared() {
			return out[i].IsShared()
		}
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})

	return out
}

// Categories returns visible categories, optionally restricted to one type.
func (c *Catalog) Categories(typeID string) []*Category {
	out := make([]*Category, 0, len(c.categories))
	for _, cat := range c.categories {
		if typeID != "" && cat.TypeID != typeID {
			continue
		}
		out = append(out, cat)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].IsShared() != out[j].IsShared() {
			return out[i].IsShared()
		}
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})

	return out
}

// TypeNameTaken reports whether a visible type other than excludeID already
// uses name, compared case-insensitively.
func (c *Catalog) TypeNameTaken(name, excludeID string) bool {
	for _, t := range c.types {
		if t.ID != excludeID && SameName(t.Name, name) {
			return true
		}
	}
	return false
}

// CategoryNameTaken is TypeNameTaken for categories.
func (c *Catalog) CategoryNameTaken(name, excludeID string) bool {
	for _, cat := range c.categories {
		if cat.ID != excludeID && SameName(cat.Name, name) {
			return true
		}
	}
	return false
}

// SameName compares entity names the way uniqueness is enforced.
func SameName(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
