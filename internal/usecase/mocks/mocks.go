package mocks

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gobudget/internal/domain"
	"github.com/iho/gobudget/internal/usecase"
)

// Store is an in-memory database shared by the mock repositories. It
// supports transactions: Begin snapshots the data and Rollback restores it,
// so a failed unit of work leaves no trace. Transactions are serialized.
type Store struct {
	txMu sync.Mutex
	mu   sync.RWMutex

	users        map[string]domain.User
	sources      map[string]domain.Source
	types        map[string]domain.TransactionType
	categories   map[string]domain.Category
	transactions map[string]domain.Transaction

	Commits   atomic.Int64
	Rollbacks atomic.Int64
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		users:        make(map[string]domain.User),
		sources:      make(map[string]domain.Source),
		types:        make(map[string]domain.TransactionType),
		categories:   make(map[string]domain.Category),
		transactions: make(map[string]domain.Transaction),
	}
}

type snapshot struct {
	users        map[string]domain.User
	sources      map[string]domain.Source
	types        map[string]domain.TransactionType
	categories   map[string]domain.Category
	transactions map[string]domain.Transaction
}

func cloneMap[V any](m map[string]V) map[string]V {
	out := make(map[string]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (s *Store) snapshot() snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshot{
		users:        cloneMap(s.users),
		sources:      cloneMap(s.sources),
		types:        cloneMap(s.types),
		categories:   cloneMap(s.categories),
		transactions: cloneMap(s.transactions),
	}
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = snap.users
	s.sources = snap.sources
	s.types = snap.types
	s.categories = snap.categories
	s.transactions = snap.transactions
}

// TxManager returns a transaction manager bound to the store.
func (s *Store) TxManager() *StoreTxManager {
	return &StoreTxManager{store: s}
}

// Source returns a copy of the stored source.
func (s *Store) Source(id string) (domain.Source, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	src, ok := s.sources[id]
	return src, ok
}

// PutSource stores a source directly, bypassing any checks.
func (s *Store) PutSource(src domain.Source) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sources[src.ID] = src
}

// TransactionCount returns the number of stored transactions.
func (s *Store) TransactionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.transactions)
}

// Shared default catalog ids seeded by SeedSharedCatalog.
const (
	CategorySalary = "salary"
	CategoryGifts  = "gifts"
	CategoryFood   = "food"
	CategoryRent   = "rent"
)

// SeedSharedCatalog stores the shared default types and a few categories.
func (s *Store) SeedSharedCatalog() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range []domain.TransactionType{
		{ID: domain.DefaultTypeIncome, Name: "Income", Kind: domain.TypeKindIncome},
		{ID: domain.DefaultTypeExpense, Name: "Expense", Kind: domain.TypeKindExpense},
		{ID: domain.DefaultTypeTransfer, Name: "Transfer", Kind: domain.TypeKindTransfer},
		{ID: domain.DefaultTypeSaving, Name: "Saving", Kind: domain.TypeKindSaving},
	} {
		s.types[t.ID] = t
	}

	for _, c := range []domain.Category{
		{ID: CategorySalary, Name: "Salary", TypeID: domain.DefaultTypeIncome},
		{ID: CategoryGifts, Name: "Gifts", TypeID: domain.DefaultTypeIncome},
		{ID: CategoryFood, Name: "Food", TypeID: domain.DefaultTypeExpense},
		{ID: CategoryRent, Name: "Rent", TypeID: domain.DefaultTypeExpense},
	} {
		s.categories[c.ID] = c
	}
}

// StoreTxManager begins store transactions.
type StoreTxManager struct {
	store *Store

	BeginFunc func(ctx context.Context) (usecase.Transaction, error)
}

func (m *StoreTxManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	m.store.txMu.Lock()
	return &storeTx{store: m.store, snap: m.store.snapshot()}, nil
}

type storeTx struct {
	store *Store
	snap  snapshot
	done  bool
}

func (t *storeTx) Commit(ctx context.Context) error {
	if t.done {
		return fmt.Errorf("transaction already closed")
	}
	t.done = true
	t.store.Commits.Add(1)
	t.store.txMu.Unlock()
	return nil
}

func (t *storeTx) Rollback(ctx context.Context) error {
	if t.done {
		return nil
	}
	t.done = true
	t.store.restore(t.snap)
	t.store.Rollbacks.Add(1)
	t.store.txMu.Unlock()
	return nil
}

// MockUserRepository is an in-memory UserRepository.
type MockUserRepository struct {
	store *Store

	CreateFunc func(ctx context.Context, tx usecase.Transaction, user *domain.User) error
}

func NewMockUserRepository(store *Store) *MockUserRepository {
	return &MockUserRepository{store: store}
}

func (m *MockUserRepository) Create(ctx context.Context, tx usecase.Transaction, user *domain.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, user)
	}
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	for _, u := range m.store.users {
		if strings.EqualFold(u.Email, user.Email) {
			return domain.ErrDuplicateEmail
		}
	}
	m.store.users[user.ID] = *user
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	m.store.mu.RLock()
	defer m.store.mu.RUnlock()
	if u, ok := m.store.users[id]; ok {
		return &u, nil
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	m.store.mu.RLock()
	defer m.store.mu.RUnlock()
	for _, u := range m.store.users {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

// MockSourceRepository is an in-memory SourceRepository.
type MockSourceRepository struct {
	store *Store

	CreateFunc        func(ctx context.Context, tx usecase.Transaction, source *domain.Source) error
	UpdateBalanceFunc func(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error
}

func NewMockSourceRepository(store *Store) *MockSourceRepository {
	return &MockSourceRepository{store: store}
}

func (m *MockSourceRepository) Create(ctx context.Context, tx usecase.Transaction, source *domain.Source) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, source)
	}
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	for _, s := range m.store.sources {
		if s.OwnerID == source.OwnerID && domain.SameName(s.Name, source.Name) {
			return domain.ErrDuplicateName
		}
	}
	m.store.sources[source.ID] = *source
	return nil
}

func (m *MockSourceRepository) GetByID(ctx context.Context, ownerID, id string) (*domain.Source, error) {
	m.store.mu.RLock()
	defer m.store.mu.RUnlock()
	if s, ok := m.store.sources[id]; ok && s.OwnerID == ownerID {
		return &s, nil
	}
	return nil, domain.ErrSourceNotFound
}

func (m *MockSourceRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, ownerID, id string) (*domain.Source, error) {
	return m.GetByID(ctx, ownerID, id)
}

func (m *MockSourceRepository) GetByIDsForUpdate(ctx context.Context, tx usecase.Transaction, ownerID string, ids []string) ([]*domain.Source, error) {
	m.store.mu.RLock()
	defer m.store.mu.RUnlock()
	var sources []*domain.Source
	for _, id := range ids {
		if s, ok := m.store.sources[id]; ok && s.OwnerID == ownerID {
			sources = append(sources, &s)
		}
	}
	return sources, nil
}

func (m *MockSourceRepository) List(ctx context.Context, tx usecase.Transaction, ownerID string) ([]*domain.Source, error) {
	m.store.mu.RLock()
	defer m.store.mu.RUnlock()
	var sources []*domain.Source
	for _, s := range m.store.sources {
		if s.OwnerID == ownerID {
			sources = append(sources, &s)
		}
	}
	sort.Slice(sources, func(i, j int) bool {
		if !sources[i].CreatedAt.Equal(sources[j].CreatedAt) {
			return sources[i].CreatedAt.Before(sources[j].CreatedAt)
		}
		return sources[i].ID < sources[j].ID
	})
	return sources, nil
}

func (m *MockSourceRepository) UpdateDetails(ctx context.Context, tx usecase.Transaction, source *domain.Source) error {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	s, ok := m.store.sources[source.ID]
	if !ok {
		return domain.ErrSourceNotFound
	}
	s.Name = source.Name
	s.AccountNumber = source.AccountNumber
	s.UpdatedAt = source.UpdatedAt
	m.store.sources[s.ID] = s
	return nil
}

func (m *MockSourceRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error {
	if m.UpdateBalanceFunc != nil {
		return m.UpdateBalanceFunc(ctx, tx, id, balance, updatedAt)
	}
	return m.SetBalance(id, balance, updatedAt)
}

// SetBalance writes a balance directly; UpdateBalanceFunc overrides can
// delegate to it.
func (m *MockSourceRepository) SetBalance(id string, balance decimal.Decimal, updatedAt time.Time) error {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	s, ok := m.store.sources[id]
	if !ok {
		return domain.ErrSourceNotFound
	}
	s.Balance = balance
	s.Version++
	s.UpdatedAt = updatedAt
	m.store.sources[id] = s
	return nil
}

func (m *MockSourceRepository) UpdateInitialAmount(ctx context.Context, tx usecase.Transaction, id string, initialAmount, balance decimal.Decimal, updatedAt time.Time) error {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	s, ok := m.store.sources[id]
	if !ok {
		return domain.ErrSourceNotFound
	}
	s.InitialAmount = initialAmount
	s.Balance = balance
	s.Version++
	s.UpdatedAt = updatedAt
	m.store.sources[id] = s
	return nil
}

func (m *MockSourceRepository) Delete(ctx context.Context, tx usecase.Transaction, ownerID, id string) error {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	s, ok := m.store.sources[id]
	if !ok || s.OwnerID != ownerID {
		return domain.ErrSourceNotFound
	}
	for _, t := range m.store.transactions {
		if t.SourceID == id || (t.TargetSourceID != nil && *t.TargetSourceID == id) {
			return domain.ErrInUse
		}
	}
	delete(m.store.sources, id)
	return nil
}

// MockTransactionTypeRepository is an in-memory TransactionTypeRepository.
type MockTransactionTypeRepository struct {
	store *Store

	ListSharedCalls atomic.Int64
}

func NewMockTransactionTypeRepository(store *Store) *MockTransactionTypeRepository {
	return &MockTransactionTypeRepository{store: store}
}

func (m *MockTransactionTypeRepository) ListShared(ctx context.Context) ([]*domain.TransactionType, error) {
	m.ListSharedCalls.Add(1)
	return m.list(func(t domain.TransactionType) bool { return t.OwnerID == nil }), nil
}

func (m *MockTransactionTypeRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.TransactionType, error) {
	return m.list(func(t domain.TransactionType) bool { return t.OwnerID != nil && *t.OwnerID == ownerID }), nil
}

func (m *MockTransactionTypeRepository) list(match func(domain.TransactionType) bool) []*domain.TransactionType {
	m.store.mu.RLock()
	defer m.store.mu.RUnlock()
	var out []*domain.TransactionType
	for _, t := range m.store.types {
		if match(t) {
			out = append(out, &t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (m *MockTransactionTypeRepository) Create(ctx context.Context, tx usecase.Transaction, t *domain.TransactionType) error {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	m.store.types[t.ID] = *t
	return nil
}

func (m *MockTransactionTypeRepository) Rename(ctx context.Context, tx usecase.Transaction, ownerID, id, name string, updatedAt time.Time) error {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	t, ok := m.store.types[id]
	if !ok || t.OwnerID == nil || *t.OwnerID != ownerID {
		return domain.ErrTransactionTypeNotFound
	}
	t.Name = name
	t.UpdatedAt = updatedAt
	m.store.types[id] = t
	return nil
}

func (m *MockTransactionTypeRepository) Delete(ctx context.Context, tx usecase.Transaction, ownerID, id string) error {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	t, ok := m.store.types[id]
	if !ok || t.OwnerID == nil || *t.OwnerID != ownerID {
		return domain.ErrTransactionTypeNotFound
	}
	for _, c := range m.store.categories {
		if c.TypeID == id {
			return domain.ErrInUse
		}
	}
	for _, tr := range m.store.transactions {
		if tr.TypeID == id {
			return domain.ErrInUse
		}
	}
	delete(m.store.types, id)
	return nil
}

// MockCategoryRepository is an in-memory CategoryRepository.
type MockCategoryRepository struct {
	store *Store
}

func NewMockCategoryRepository(store *Store) *MockCategoryRepository {
	return &MockCategoryRepository{store: store}
}

func (m *MockCategoryRepository) ListShared(ctx context.Context) ([]*domain.Category, error) {
	return m.list(func(c domain.Category) bool { return c.OwnerID == nil }), nil
}

func (m *MockCategoryRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Category, error) {
	return m.list(func(c domain.Category) bool { return c.OwnerID != nil && *c.OwnerID == ownerID }), nil
}

func (m *MockCategoryRepository) list(match func(domain.Category) bool) []*domain.Category {
	m.store.mu.RLock()
	defer m.store.mu.RUnlock()
	var out []*domain.Category
	for _, c := range m.store.categories {
		if match(c) {
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (m *MockCategoryRepository) Create(ctx context.Context, tx usecase.Transaction, c *domain.Category) error {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	m.store.categories[c.ID] = *c
	return nil
}

func (m *MockCategoryRepository) Rename(ctx context.Context, tx usecase.Transaction, ownerID, id, name string, updatedAt time.Time) error {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	c, ok := m.store.categories[id]
	if !ok || c.OwnerID == nil || *c.OwnerID != ownerID {
		return domain.ErrCategoryNotFound
	}
	c.Name = name
	c.UpdatedAt = updatedAt
	m.store.categories[id] = c
	return nil
}

func (m *MockCategoryRepository) Delete(ctx context.Context, tx usecase.Transaction, ownerID, id string) error {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	c, ok := m.store.categories[id]
	if !ok || c.OwnerID == nil || *c.OwnerID != ownerID {
		return domain.ErrCategoryNotFound
	}
	for _, t := range m.store.transactions {
		if t.CategoryID != nil && *t.CategoryID == id {
			return domain.ErrInUse
		}
	}
	delete(m.store.categories, id)
	return nil
}

// MockTransactionRepository is an in-memory TransactionRepository.
type MockTransactionRepository struct {
	store *Store

	CreateFunc func(ctx context.Context, tx usecase.Transaction, t *domain.Transaction) error
	UpdateFunc func(ctx context.Context, tx usecase.Transaction, t *domain.Transaction) error
}

func NewMockTransactionRepository(store *Store) *MockTransactionRepository {
	return &MockTransactionRepository{store: store}
}

func (m *MockTransactionRepository) Create(ctx context.Context, tx usecase.Transaction, t *domain.Transaction) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, t)
	}
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	m.store.transactions[t.ID] = stripRelations(*t)
	return nil
}

func (m *MockTransactionRepository) GetByID(ctx context.Context, ownerID, id string) (*domain.Transaction, error) {
	m.store.mu.RLock()
	defer m.store.mu.RUnlock()
	if t, ok := m.store.transactions[id]; ok && t.OwnerID == ownerID {
		return &t, nil
	}
	return nil, domain.ErrTransactionNotFound
}

func (m *MockTransactionRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, ownerID, id string) (*domain.Transaction, error) {
	return m.GetByID(ctx, ownerID, id)
}

func (m *MockTransactionRepository) Update(ctx context.Context, tx usecase.Transaction, t *domain.Transaction) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, tx, t)
	}
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	if _, ok := m.store.transactions[t.ID]; !ok {
		return domain.ErrTransactionNotFound
	}
	m.store.transactions[t.ID] = stripRelations(*t)
	return nil
}

func (m *MockTransactionRepository) Delete(ctx context.Context, tx usecase.Transaction, ownerID, id string) error {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	t, ok := m.store.transactions[id]
	if !ok || t.OwnerID != ownerID {
		return domain.ErrTransactionNotFound
	}
	delete(m.store.transactions, id)
	return nil
}

func (m *MockTransactionRepository) List(ctx context.Context, ownerID string, filter usecase.TransactionFilter) ([]*domain.Transaction, error) {
	out := m.filter(ownerID, filter)
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].ID > out[j].ID
	})

	if filter.Offset >= len(out) {
		return []*domain.Transaction{}, nil
	}
	out = out[filter.Offset:]
	if filter.Limit > 0 && filter.Limit < len(out) {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (m *MockTransactionRepository) ListBySource(ctx context.Context, tx usecase.Transaction, sourceID string) ([]*domain.Transaction, error) {
	m.store.mu.RLock()
	defer m.store.mu.RUnlock()
	var out []*domain.Transaction
	for _, t := range m.store.transactions {
		if referencesSource(t, sourceID) {
			out = append(out, &t)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (m *MockTransactionRepository) Sum(ctx context.Context, ownerID string, filter usecase.TransactionFilter) (domain.Totals, error) {
	var totals domain.Totals
	for _, t := range m.filter(ownerID, filter) {
		totals.Count++
		switch t.TypeKind {
		case domain.TypeKindIncome:
			totals.Income = totals.Income.Add(t.Amount)
		case domain.TypeKindExpense:
			totals.Expense = totals.Expense.Add(t.Amount)
		case domain.TypeKindTransfer, domain.TypeKindSaving:
			if filter.SourceID == "" || t.SourceID == filter.SourceID {
				totals.TransferOut = totals.TransferOut.Add(t.Amount)
			}
			if filter.SourceID == "" || (t.TargetSourceID != nil && *t.TargetSourceID == filter.SourceID) {
				totals.TransferIn = totals.TransferIn.Add(t.Amount)
			}
		}
	}
	return totals, nil
}

func (m *MockTransactionRepository) filter(ownerID string, f usecase.TransactionFilter) []*domain.Transaction {
	m.store.mu.RLock()
	defer m.store.mu.RUnlock()
	var out []*domain.Transaction
	for _, t := range m.store.transactions {
		switch {
		case t.OwnerID != ownerID:
		case f.SourceID != "" && !referencesSource(t, f.SourceID):
		case f.TypeID != "" && t.TypeID != f.TypeID:
		case f.CategoryID != "" && (t.CategoryID == nil || *t.CategoryID != f.CategoryID):
		case f.From != nil && t.Date.Before(*f.From):
		case f.To != nil && t.Date.After(*f.To):
		default:
			out = append(out, &t)
		}
	}
	return out
}

func referencesSource(t domain.Transaction, sourceID string) bool {
	return t.SourceID == sourceID || (t.TargetSourceID != nil && *t.TargetSourceID == sourceID)
}

func stripRelations(t domain.Transaction) domain.Transaction {
	t.Type = nil
	t.Source = nil
	t.TargetSource = nil
	t.Category = nil
	return t
}

// SequenceIDGenerator returns prefix-1, prefix-2, ... in order.
type SequenceIDGenerator struct {
	Prefix string
	n      atomic.Int64
}

func (g *SequenceIDGenerator) Generate() string {
	return fmt.Sprintf("%s-%06d", g.Prefix, g.n.Add(1))
}
