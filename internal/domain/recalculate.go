package domain

import "github.com/shopspring/decimal"

// Recalculate computes a source's authoritative balance from its initial
// amount and full transaction history. Transactions that do not reference
// sourceID contribute nothing.
func Recalculate(sourceID string, initialAmount decimal.Decimal, history []*Transaction) decimal.Decimal {
	balance := initialAmount
	for _, t := range history {
		balance = balance.Add(t.Effect().Delta(sourceID))
	}
	return balance
}

// Totals holds aggregate sums for a filtered set of transactions.
type Totals struct {
	Income      decimal.Decimal
	Expense     decimal.Decimal
	TransferIn  decimal.Decimal
	TransferOut decimal.Decimal
	Count       int64
}

// Net returns income - expense + transfers in - transfers out.
func (t Totals) Net() decimal.Decimal {
	return t.Income.Sub(t.Expense).Add(t.TransferIn).Sub(t.TransferOut)
}

// Balance returns the balance a source with the given initial amount has
// when t covers its whole history.
func (t Totals) Balance(initialAmount decimal.Decimal) decimal.Decimal {
	return initialAmount.Add(t.Net())
}
