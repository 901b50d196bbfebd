package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Source is a named money container with a running balance.
//
// Balance always equals InitialAmount plus the signed effects of every
// transaction that references the source.
type Source struct {
	ID            string
	OwnerID       string
	Name          string
	AccountNumber *string
	InitialAmount decimal.Decimal
	Balance       decimal.Decimal
	Version       int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Apply returns the balance after adding delta.
func (s *Source) Apply(delta decimal.Decimal) decimal.Decimal {
	return s.Balance.Add(delta)
}

// SourceTemplate describes a source created by provisioning.
type SourceTemplate struct {
	Name string
}

// DefaultSourceTemplates are copied into every owner's sources on provisioning.
var DefaultSourceTemplates = []SourceTemplate{
	{Name: "Cash"},
	{Name: "Bank Account"},
	{Name: "E-Wallet"},
}
