package domain

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a single ledger entry affecting one or two sources.
//
// Amount is always a positive magnitude; the direction of the effect comes
// from TypeKind. A transfer is one record carrying both SourceID (debited)
// and TargetSourceID (credited).
type Transaction struct {
	CreatedAt      time.Time
	UpdatedAt      time.Time
	Date           time.Time
	ID             string
	OwnerID        string
	Description    string
	TypeID         string
	TypeKind       TypeKind
	SourceID       string
	TargetSourceID *string
	CategoryID     *string
	Amount         decimal.Decimal

	// Resolved relations; nil unless the record was returned by the ledger.
	Type         *TransactionType
	Source       *Source
	TargetSource *Source
	Category     *Category
}

// Normalize clears the field that does not apply to the transaction's kind.
func (t *Transaction) Normalize() {
	if t.TypeKind.IsDualSource() {
		t.CategoryID = nil
		return
	}
	t.TargetSourceID = nil
}

// SourceIDs returns the ids of every source the transaction references.
func (t *Transaction) SourceIDs() []string {
	ids := []string{t.SourceID}
	if t.TargetSourceID != nil && *t.TargetSourceID != t.SourceID {
		ids = append(ids, *t.TargetSourceID)
	}
	return ids
}

// Effect returns the signed balance change the transaction applies per source.
func (t *Transaction) Effect() Effect {
	e := Effect{}

	switch t.TypeKind {
	case TypeKindIncome:
		e.add(t.SourceID, t.Amount)
	case TypeKindExpense:
		e.add(t.SourceID, t.Amount.Neg())
	case TypeKindTransfer, TypeKindSaving:
		e.add(t.SourceID, t.Amount.Neg())
		if t.TargetSourceID != nil {
			e.add(*t.TargetSourceID, t.Amount)
		}
	}

	return e
}

// Effect maps a source id to a signed balance delta.
type Effect map[string]decimal.Decimal

func (e Effect) add(sourceID string, delta decimal.Decimal) {
	e[sourceID] = e[sourceID].Add(delta)
}

// Delta returns the change for sourceID, zero when untouched.
func (e Effect) Delta(sourceID string) decimal.Decimal {
	return e[sourceID]
}

// Reverse returns the inverse effect.
func (e Effect) Reverse() Effect {
	r := make(Effect, len(e))
	for id, d := range e {
		r[id] = d.Neg()
	}
	return r
}

// Merge returns the combined effect of e followed by other.
func (e Effect) Merge(other Effect) Effect {
	m := make(Effect, len(e)+len(other))
	for id, d := range e {
		m.add(id, d)
	}
	for id, d := range other {
		m.add(id, d)
	}
	return m
}

// SourceIDs returns the touched source ids in sorted order.
func (e Effect) SourceIDs() []string {
	ids := make([]string, 0, len(e))
	for id := range e {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
