package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gobudget/internal/usecase"
)

// TransactionRequest is the body of create and update transaction calls.
// Amounts may be sent as JSON strings or numbers.
type TransactionRequest struct {
	Description    string          `json:"description"`
	Amount         decimal.Decimal `json:"amount"`
	Date           *time.Time      `json:"date,omitempty"`
	TypeID         string          `json:"type_id"`
	SourceID       string          `json:"source_id"`
	TargetSourceID *string         `json:"target_source_id,omitempty"`
	CategoryID     *string         `json:"category_id,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *TransactionRequest) ToUseCaseInput() usecase.TransactionInput {
	return usecase.TransactionInput{
		Description:    r.Description,
		Amount:         r.Amount,
		Date:           r.Date,
		TypeID:         r.TypeID,
		SourceID:       r.SourceID,
		TargetSourceID: r.TargetSourceID,
		CategoryID:     r.CategoryID,
	}
}

// CreateSourceRequest represents a request to create a source.
type CreateSourceRequest struct {
	Name          string          `json:"name"`
	AccountNumber *string         `json:"account_number,omitempty"`
	InitialAmount decimal.Decimal `json:"initial_amount"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateSourceRequest) ToUseCaseInput() usecase.CreateSourceInput {
	return usecase.CreateSourceInput{
		Name:          r.Name,
		AccountNumber: r.AccountNumber,
		InitialAmount: r.InitialAmount,
	}
}

// UpdateSourceRequest carries the source fields to change. Omitted fields
// are kept.
type UpdateSourceRequest struct {
	Name          *string          `json:"name,omitempty"`
	AccountNumber *string          `json:"account_number,omitempty"`
	InitialAmount *decimal.Decimal `json:"initial_amount,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateSourceRequest) ToUseCaseInput() usecase.UpdateSourceInput {
	return usecase.UpdateSourceInput{
		Name:          r.Name,
		AccountNumber: r.AccountNumber,
		InitialAmount: r.InitialAmount,
	}
}

// RecalculateRequest optionally replaces the initial amount before a
// source's balance is rebuilt.
type RecalculateRequest struct {
	InitialAmount *decimal.Decimal `json:"initial_amount,omitempty"`
}

// CreateTypeRequest represents a request to create a transaction type.
type CreateTypeRequest struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
}

// CreateCategoryRequest represents a request to create a category.
type CreateCategoryRequest struct {
	Name   string `json:"name"`
	TypeID string `json:"type_id"`
}

// RenameRequest renames an owned type or category.
type RenameRequest struct {
	Name string `json:"name"`
}

// RegisterRequest represents a request to register a user.
type RegisterRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// ToUseCaseInput converts to use case input.
func (r *RegisterRequest) ToUseCaseInput() usecase.RegisterInput {
	return usecase.RegisterInput{
		Email: r.Email,
		Name:  r.Name,
	}
}
