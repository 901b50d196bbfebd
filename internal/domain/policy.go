package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// FundsPolicy is the single switch for insufficient-funds enforcement.
// The zero value permits negative balances.
type FundsPolicy struct {
	CheckInsufficientFunds bool
}

// Check validates a net change against source.
func (p FundsPolicy) Check(source *Source, delta decimal.Decimal) error {
	if !p.CheckInsufficientFunds || !delta.IsNegative() {
		return nil
	}

	if source.Apply(delta).IsNegative() {
		return ErrInsufficientFunds.WithMessage(
			fmt.Sprintf("insufficient funds in source %q: balance %s, change %s", source.Name, source.Balance, delta),
		)
	}

	return nil
}
