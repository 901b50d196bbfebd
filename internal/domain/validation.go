package domain

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Validation constants
const (
	MaxNameLength          = 100
	MaxDescriptionLength   = 500
	MaxAccountNumberLength = 64
	MinAmount              = "0.01"
	MaxAmount              = "1000000000000" // 1 trillion
)

var (
	minAmount = decimal.RequireFromString(MinAmount)
	maxAmount = decimal.RequireFromString(MaxAmount)
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ValidateName checks a display name and records failures under field.
func ValidateName(fields *Fields, field, name string) {
	name = strings.TrimSpace(name)

	switch {
	case name == "":
		fields.Add(field, "is required")
	case len(name) > MaxNameLength:
		fields.Add(field, fmt.Sprintf("must not exceed %d characters", MaxNameLength))
	}
}

// ValidateDescription checks a transaction description.
func ValidateDescription(fields *Fields, field, description string) {
	description = strings.TrimSpace(description)

	switch {
	case description == "":
		fields.Add(field, "is required")
	case len(description) > MaxDescriptionLength:
		fields.Add(field, fmt.Sprintf("must not exceed %d characters", MaxDescriptionLength))
	}
}

// ValidateAmount checks a transaction amount.
func ValidateAmount(fields *Fields, field string, amount decimal.Decimal) {
	switch {
	case !amount.IsPositive():
		fields.Add(field, "must be greater than zero")
	case amount.LessThan(minAmount):
		fields.Add(field, "must be at least "+MinAmount)
	case amount.GreaterThan(maxAmount):
		fields.Add(field, "must not exceed "+MaxAmount)
	}
}

// ValidateInitialAmount checks a source's initial funding, which may be zero
// or negative (an overdrawn account) but is bounded like any amount.
func ValidateInitialAmount(fields *Fields, field string, amount decimal.Decimal) {
	if amount.Abs().GreaterThan(maxAmount) {
		fields.Add(field, "must not exceed "+MaxAmount+" in magnitude")
	}
}

// ValidateAccountNumber checks an optional account number.
func ValidateAccountNumber(fields *Fields, field string, accountNumber *string) {
	if accountNumber == nil {
		return
	}
	if len(strings.TrimSpace(*accountNumber)) > MaxAccountNumberLength {
		fields.Add(field, fmt.Sprintf("must not exceed %d characters", MaxAccountNumberLength))
	}
}

// ValidateEmail checks an email address.
func ValidateEmail(fields *Fields, field, email string) {
	email = strings.TrimSpace(strings.ToLower(email))

	if !emailRegex.MatchString(email) {
		fields.Add(field, "must be a valid email address")
	}
}

// ValidatePagination clamps pagination parameters.
func ValidatePagination(limit, offset int) (int, int) {
	const MaxPageSize = 100
	const DefaultPageSize = 20

	if limit <= 0 {
		limit = DefaultPageSize
	}

	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	if offset < 0 {
		offset = 0
	}

	return limit, offset
}
