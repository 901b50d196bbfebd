package usecase

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gobudget/internal/domain"
)

// Field names reported in validation errors.
const (
	FieldDescription    = "description"
	FieldAmount         = "amount"
	FieldTypeID         = "type_id"
	FieldSourceID       = "source_id"
	FieldTargetSourceID = "target_source_id"
	FieldCategoryID     = "category_id"
	FieldName           = "name"
	FieldKind           = "kind"
	FieldAccountNumber  = "account_number"
	FieldInitialAmount  = "initial_amount"
	FieldEmail          = "email"
)

// TransactionInput is the command accepted by CreateTransaction and
// UpdateTransaction.
type TransactionInput struct {
	Date           *time.Time
	CategoryID     *string
	TargetSourceID *string
	Description    string
	TypeID         string
	SourceID       string
	Amount         decimal.Decimal
}

// buildTransaction validates in against the owner's catalog and returns the
// normalized record it describes. Every structural and catalog failure is
// reported at once; a self-transfer is reported only once the fields are
// otherwise valid. Source existence is checked later, under lock.
func buildTransaction(catalog *domain.Catalog, in TransactionInput) (*domain.Transaction, error) {
	var fields domain.Fields

	domain.ValidateDescription(&fields, FieldDescription, in.Description)
	domain.ValidateAmount(&fields, FieldAmount, in.Amount)

	if isBlank(&in.SourceID) {
		fields.Add(FieldSourceID, "is required")
	}

	var typ *domain.TransactionType
	switch t, ok := catalog.Type(in.TypeID); {
	case isBlank(&in.TypeID):
		fields.Add(FieldTypeID, "is required")
	case !ok:
		fields.Add(FieldTypeID, "transaction type does not exist")
	default:
		typ = t
	}

	if typ != nil {
		if typ.Kind.IsDualSource() {
			if isBlank(in.TargetSourceID) {
				fields.Add(FieldTargetSourceID, "is required for "+string(typ.Kind)+" transactions")
			}
		} else {
			validateCategory(&fields, catalog, typ, in.CategoryID, typ.Kind != domain.TypeKindNone)
		}
	}

	if err := fields.Err(); err != nil {
		return nil, err
	}

	if typ.Kind.IsDualSource() && strings.TrimSpace(*in.TargetSourceID) == strings.TrimSpace(in.SourceID) {
		return nil, domain.ErrSelfTransfer
	}

	t := &domain.Transaction{
		OwnerID:        catalog.OwnerID(),
		Description:    strings.TrimSpace(in.Description),
		Amount:         in.Amount,
		TypeID:         typ.ID,
		TypeKind:       typ.Kind,
		SourceID:       strings.TrimSpace(in.SourceID),
		TargetSourceID: trimmed(in.TargetSourceID),
		CategoryID:     trimmed(in.CategoryID),
	}
	if in.Date != nil {
		t.Date = in.Date.UTC()
	}
	t.Normalize()

	return t, nil
}

// validateCategory checks the category of a single-source transaction.
// Informational types may omit it.
func validateCategory(fields *domain.Fields, catalog *domain.Catalog, typ *domain.TransactionType, categoryID *string, required bool) {
	if isBlank(categoryID) {
		if required {
			fields.Add(FieldCategoryID, "is required for "+string(typ.Kind)+" transactions")
		}
		return
	}

	cat, ok := catalog.Category(strings.TrimSpace(*categoryID))
	if !ok {
		fields.Add(FieldCategoryID, "category does not exist")
		return
	}

	if cat.TypeID != typ.ID {
		fields.Add(FieldCategoryID, "category does not belong to the transaction type")
	}
}

// missingSourceFields reports which referenced sources were not found.
func missingSourceFields(t *domain.Transaction, found map[string]*domain.Source) error {
	var fields domain.Fields

	if _, ok := found[t.SourceID]; !ok {
		fields.Add(FieldSourceID, "source does not exist")
	}
	if t.TargetSourceID != nil {
		if _, ok := found[*t.TargetSourceID]; !ok {
			fields.Add(FieldTargetSourceID, "source does not exist")
		}
	}

	return fields.Err()
}

func isBlank(s *string) bool {
	return s == nil || strings.TrimSpace(*s) == ""
}

func trimmed(s *string) *string {
	if isBlank(s) {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
