package usecase_test

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/gobudget/internal/domain"
	"github.com/iho/gobudget/internal/usecase"
	"github.com/iho/gobudget/internal/usecase/mocks"
)

const (
	ownerID      = "owner-1"
	otherOwnerID = "owner-2"

	sourceA     = "src-a"
	sourceB     = "src-b"
	sourceC     = "src-c"
	sourceOther = "src-other"
)

type fixture struct {
	store      *mocks.Store
	txManager  *mocks.StoreTxManager
	users      *mocks.MockUserRepository
	sources    *mocks.MockSourceRepository
	txs        *mocks.MockTransactionRepository
	types      *mocks.MockTransactionTypeRepository
	categories *mocks.MockCategoryRepository
	resolver   *usecase.CatalogResolver
	idGen      *mocks.SequenceIDGenerator
	ledgerCfg  usecase.LedgerConfig
}

// newFixture seeds the shared catalog and three empty sources for ownerID
// plus one source belonging to otherOwnerID.
func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := mocks.NewStore()
	store.SeedSharedCatalog()

	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, id := range []string{sourceA, sourceB, sourceC} {
		store.PutSource(domain.Source{
			ID:        id,
			OwnerID:   ownerID,
			Name:      "Source " + id,
			CreatedAt: created.Add(time.Duration(i) * time.Second),
			UpdatedAt: created,
		})
	}
	store.PutSource(domain.Source{ID: sourceOther, OwnerID: otherOwnerID, Name: "Foreign", CreatedAt: created})

	f := &fixture{
		store:      store,
		txManager:  store.TxManager(),
		users:      mocks.NewMockUserRepository(store),
		sources:    mocks.NewMockSourceRepository(store),
		txs:        mocks.NewMockTransactionRepository(store),
		types:      mocks.NewMockTransactionTypeRepository(store),
		categories: mocks.NewMockCategoryRepository(store),
		idGen:      &mocks.SequenceIDGenerator{Prefix: "id"},
	}
	f.resolver = usecase.NewCatalogResolver(f.types, f.categories, nil, 0, zerolog.Nop())
	f.ledgerCfg = usecase.LedgerConfig{
		TxManager:       f.txManager,
		SourceRepo:      f.sources,
		TransactionRepo: f.txs,
		Catalog:         f.resolver,
		IDGen:           f.idGen,
		Logger:          zerolog.Nop(),
	}

	return f
}

func (f *fixture) ledger() *usecase.LedgerUseCase {
	return usecase.NewLedgerUseCase(f.ledgerCfg)
}

func (f *fixture) recalculator() *usecase.RecalculationUseCase {
	return usecase.NewRecalculationUseCase(f.txManager, f.sources, f.txs, nil, nil, 0, zerolog.Nop())
}

func (f *fixture) sourceUseCase() *usecase.SourceUseCase {
	return usecase.NewSourceUseCase(f.txManager, f.sources, f.recalculator(), f.idGen, nil, 0, zerolog.Nop())
}

func (f *fixture) catalogUseCase() *usecase.CatalogUseCase {
	return usecase.NewCatalogUseCase(f.txManager, f.types, f.categories, f.resolver, f.idGen, nil, 0)
}

func (f *fixture) balance(t *testing.T, id string) decimal.Decimal {
	t.Helper()
	s, ok := f.store.Source(id)
	if !ok {
		t.Fatalf("source %s not found", id)
	}
	return s.Balance
}

func income(source string, amount int64) usecase.TransactionInput {
	return usecase.TransactionInput{
		Description: "salary",
		Amount:      decimal.NewFromInt(amount),
		TypeID:      domain.DefaultTypeIncome,
		SourceID:    source,
		CategoryID:  strPtr(mocks.CategorySalary),
	}
}

func expense(source string, amount int64) usecase.TransactionInput {
	return usecase.TransactionInput{
		Description: "groceries",
		Amount:      decimal.NewFromInt(amount),
		TypeID:      domain.DefaultTypeExpense,
		SourceID:    source,
		CategoryID:  strPtr(mocks.CategoryFood),
	}
}

func transfer(from, to string, amount int64) usecase.TransactionInput {
	return usecase.TransactionInput{
		Description:    "move money",
		Amount:         decimal.NewFromInt(amount),
		TypeID:         domain.DefaultTypeTransfer,
		SourceID:       from,
		TargetSourceID: strPtr(to),
	}
}

func strPtr(s string) *string {
	return &s
}

func dec(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}
