package domain

import "time"

// TypeKind is the semantic kind a transaction type dispatches on.
type TypeKind string

const (
	TypeKindIncome   TypeKind = "income"
	TypeKindExpense  TypeKind = "expense"
	TypeKindTransfer TypeKind = "transfer"
	TypeKindSaving   TypeKind = "saving"
	// TypeKindNone marks informational types with no balance effect.
	TypeKindNone TypeKind = "none"
)

// Stable ids of the shared default types.
const (
	DefaultTypeIncome   = "income"
	DefaultTypeExpense  = "expense"
	DefaultTypeTransfer = "transfer"
	DefaultTypeSaving   = "saving"
)

var validKinds = map[TypeKind]bool{
	TypeKindIncome:   true,
	TypeKindExpense:  true,
	TypeKindTransfer: true,
	TypeKindSaving:   true,
	TypeKindNone:     true,
}

// IsValid reports whether k is a known kind.
func (k TypeKind) IsValid() bool {
	return validKinds[k]
}

// IsDualSource reports whether the kind debits one source and credits another.
func (k TypeKind) IsDualSource() bool {
	return k == TypeKindTransfer || k == TypeKindSaving
}

// TransactionType classifies transactions. Kind is fixed at creation.
type TransactionType struct {
	ID        string
	Name      string
	Kind      TypeKind
	OwnerID   *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsShared reports whether the type is a read-only default.
func (t *TransactionType) IsShared() bool {
	return t.OwnerID == nil
}
