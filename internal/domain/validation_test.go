package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestValidateName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     string
		expectErr bool
	}{
		{name: "valid name", input: "Groceries"},
		{name: "blank name rejected", input: "   ", expectErr: true},
		{name: "name too long", input: strings.Repeat("a", MaxNameLength+1), expectErr: true},
		{name: "name at limit", input: strings.Repeat("a", MaxNameLength)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var fields Fields
			ValidateName(&fields, "name", tt.input)

			if tt.expectErr && len(fields) == 0 {
				t.Fatal("expected a field error, got none")
			}
			if !tt.expectErr && len(fields) != 0 {
				t.Fatalf("unexpected field errors: %+v", fields)
			}
		})
	}
}

func TestValidateAmount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		amount    decimal.Decimal
		expectErr bool
	}{
		{name: "valid amount", amount: decimal.NewFromFloat(100.25)},
		{name: "zero", amount: decimal.Zero, expectErr: true},
		{name: "negative", amount: decimal.NewFromInt(-5), expectErr: true},
		{name: "below minimum", amount: decimal.NewFromFloat(0.001), expectErr: true},
		{name: "above maximum", amount: decimal.RequireFromString(MaxAmount).Add(decimal.NewFromInt(1)), expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var fields Fields
			ValidateAmount(&fields, "amount", tt.amount)

			if tt.expectErr != (len(fields) > 0) {
				t.Fatalf("expectErr=%v, got fields %+v", tt.expectErr, fields)
			}
		})
	}
}

func TestFieldsErrReportsEveryField(t *testing.T) {
	t.Parallel()

	var fields Fields
	ValidateDescription(&fields, "description", "")
	ValidateAmount(&fields, "amount", decimal.Zero)
	ValidateEmail(&fields, "email", "not-an-email")

	err := fields.Err()
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}

	var de *Error
	if !errors.As(err, &de) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if len(de.Fields) != 3 {
		t.Fatalf("expected 3 failing fields, got %d: %+v", len(de.Fields), de.Fields)
	}
}

func TestFieldsErrNilWhenEmpty(t *testing.T) {
	t.Parallel()

	var fields Fields
	if err := fields.Err(); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
}

func TestValidatePagination(t *testing.T) {
	t.Parallel()

	limit, offset := ValidatePagination(0, -3)
	if limit != 20 || offset != 0 {
		t.Fatalf("expected defaults 20/0, got %d/%d", limit, offset)
	}

	limit, _ = ValidatePagination(5000, 0)
	if limit != 100 {
		t.Fatalf("expected limit clamped to 100, got %d", limit)
	}
}
