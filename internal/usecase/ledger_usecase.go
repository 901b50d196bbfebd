package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/gobudget/internal/domain"
)

// CatalogProvider resolves the two-tier catalog for an owner.
type CatalogProvider interface {
	Resolve(ctx context.Context, ownerID string) (*domain.Catalog, error)
}

// LedgerConfig holds LedgerUseCase dependencies.
type LedgerConfig struct {
	TxManager       TransactionManager
	SourceRepo      SourceRepository
	TransactionRepo TransactionRepository
	Catalog         CatalogProvider
	IDGen           IDGenerator
	Retrier         Retrier          // optional
	Metrics         MetricsRecorder  // optional
	Policy          domain.FundsPolicy
	Timeout         time.Duration
	Logger          zerolog.Logger
	Now             func() time.Time // optional, for tests
}

// LedgerUseCase applies transaction mutations and keeps source balances
// consistent. Every mutation runs as one database transaction that writes
// the transaction row and all affected balances together.
type LedgerUseCase struct {
	uow             unitOfWork
	sourceRepo      SourceRepository
	transactionRepo TransactionRepository
	catalog         CatalogProvider
	idGen           IDGenerator
	metrics         MetricsRecorder
	policy          domain.FundsPolicy
	logger          zerolog.Logger
	now             func() time.Time
}

// NewLedgerUseCase creates a new LedgerUseCase.
func NewLedgerUseCase(cfg LedgerConfig) *LedgerUseCase {
	if cfg.Metrics == nil {
		cfg.Metrics = nopMetrics{}
	}
	if cfg.Now == nil {
		cfg.Now = func() time.Time { return time.Now().UTC() }
	}

	return &LedgerUseCase{
		uow:             newUnitOfWork(cfg.TxManager, cfg.Retrier, cfg.Timeout),
		sourceRepo:      cfg.SourceRepo,
		transactionRepo: cfg.TransactionRepo,
		catalog:         cfg.Catalog,
		idGen:           cfg.IDGen,
		metrics:         cfg.Metrics,
		policy:          cfg.Policy,
		logger:          cfg.Logger,
		now:             cfg.Now,
	}
}

// CreateTransaction records a new transaction and applies its balance effect.
func (uc *LedgerUseCase) CreateTransaction(ctx context.Context, ownerID string, input TransactionInput) (result *domain.Transaction, err error) {
	started := time.Now()
	defer func() { uc.metrics.RecordOperation(OpCreateTransaction, started, err) }()

	catalog, err := uc.catalog.Resolve(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	draft, err := buildTransaction(catalog, input)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	draft.ID = uc.idGen.Generate()
	draft.CreatedAt = now
	draft.UpdatedAt = now
	if draft.Date.IsZero() {
		draft.Date = now
	}

	var sources map[string]*domain.Source
	err = uc.uow.run(ctx, func(ctx context.Context, tx Transaction) error {
		sources, err = uc.lockSources(ctx, tx, ownerID, draft.SourceIDs())
		if err != nil {
			return err
		}
		if err := missingSourceFields(draft, sources); err != nil {
			return err
		}

		if err := uc.applyEffect(ctx, tx, sources, draft.Effect(), now, true); err != nil {
			return err
		}

		return uc.transactionRepo.Create(ctx, tx, draft)
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Debug().
		Str("owner_id", ownerID).
		Str("transaction_id", draft.ID).
		Str("kind", string(draft.TypeKind)).
		Str("amount", draft.Amount.String()).
		Msg("transaction created")

	return withRelations(draft, catalog, sources), nil
}

// UpdateTransaction reverses the stored transaction's effect, applies the
// new command's effect and rewrites the record, all in one unit of work.
func (uc *LedgerUseCase) UpdateTransaction(ctx context.Context, ownerID, id string, input TransactionInput) (result *domain.Transaction, err error) {
	started := time.Now()
	defer func() { uc.metrics.RecordOperation(OpUpdateTransaction, started, err) }()

	catalog, err := uc.catalog.Resolve(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	draft, err := buildTransaction(catalog, input)
	if err != nil {
		return nil, err
	}

	now := uc.now()

	var (
		updated *domain.Transaction
		sources map[string]*domain.Source
	)
	err = uc.uow.run(ctx, func(ctx context.Context, tx Transaction) error {
		existing, err := uc.transactionRepo.GetByIDForUpdate(ctx, tx, ownerID, id)
		if err != nil {
			return err
		}

		sources, err = uc.lockSources(ctx, tx, ownerID, unionIDs(existing.SourceIDs(), draft.SourceIDs()))
		if err != nil {
			return err
		}
		if err := missingSourceFields(draft, sources); err != nil {
			return err
		}
		for _, sid := range existing.SourceIDs() {
			if _, ok := sources[sid]; !ok {
				return domain.ErrSourceNotFound
			}
		}

		next := *draft
		next.ID = existing.ID
		next.OwnerID = existing.OwnerID
		next.CreatedAt = existing.CreatedAt
		next.UpdatedAt = now
		if next.Date.IsZero() {
			next.Date = existing.Date
		}

		net := existing.Effect().Reverse().Merge(next.Effect())
		if err := uc.applyEffect(ctx, tx, sources, net, now, true); err != nil {
			return err
		}

		if err := uc.transactionRepo.Update(ctx, tx, &next); err != nil {
			return err
		}

		updated = &next
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Debug().
		Str("owner_id", ownerID).
		Str("transaction_id", id).
		Str("kind", string(updated.TypeKind)).
		Msg("transaction updated")

	return withRelations(updated, catalog, sources), nil
}

// DeleteTransaction reverses the stored transaction's effect and removes it.
func (uc *LedgerUseCase) DeleteTransaction(ctx context.Context, ownerID, id string) (err error) {
	started := time.Now()
	defer func() { uc.metrics.RecordOperation(OpDeleteTransaction, started, err) }()

	now := uc.now()

	err = uc.uow.run(ctx, func(ctx context.Context, tx Transaction) error {
		existing, err := uc.transactionRepo.GetByIDForUpdate(ctx, tx, ownerID, id)
		if err != nil {
			return err
		}

		sources, err := uc.lockSources(ctx, tx, ownerID, existing.SourceIDs())
		if err != nil {
			return err
		}
		for _, sid := range existing.SourceIDs() {
			if _, ok := sources[sid]; !ok {
				return domain.ErrSourceNotFound
			}
		}

		// Reversal is never blocked by the funds policy.
		if err := uc.applyEffect(ctx, tx, sources, existing.Effect().Reverse(), now, false); err != nil {
			return err
		}

		return uc.transactionRepo.Delete(ctx, tx, ownerID, id)
	})
	if err != nil {
		return err
	}

	uc.logger.Debug().
		Str("owner_id", ownerID).
		Str("transaction_id", id).
		Msg("transaction deleted")

	return nil
}

// GetTransaction retrieves a transaction with its relations.
func (uc *LedgerUseCase) GetTransaction(ctx context.Context, ownerID, id string) (*domain.Transaction, error) {
	t, err := uc.transactionRepo.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	catalog, err := uc.catalog.Resolve(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	sources := make(map[string]*domain.Source, 2)
	for _, sid := range t.SourceIDs() {
		s, err := uc.sourceRepo.GetByID(ctx, ownerID, sid)
		if err != nil {
			return nil, err
		}
		sources[sid] = s
	}

	return withRelations(t, catalog, sources), nil
}

// ListTransactions lists an owner's transactions, newest first.
func (uc *LedgerUseCase) ListTransactions(ctx context.Context, ownerID string, filter TransactionFilter) ([]*domain.Transaction, error) {
	filter.Limit, filter.Offset = domain.ValidatePagination(filter.Limit, filter.Offset)

	txs, err := uc.transactionRepo.List(ctx, ownerID, filter)
	if err != nil {
		return nil, err
	}

	catalog, err := uc.catalog.Resolve(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	list, err := uc.sourceRepo.List(ctx, nil, ownerID)
	if err != nil {
		return nil, err
	}

	sources := make(map[string]*domain.Source, len(list))
	for _, s := range list {
		sources[s.ID] = s
	}

	for i, t := range txs {
		txs[i] = withRelations(t, catalog, sources)
	}

	return txs, nil
}

// lockSources locks the given sources in sorted order so that concurrent
// operations touching the same sources cannot deadlock.
func (uc *LedgerUseCase) lockSources(ctx context.Context, tx Transaction, ownerID string, ids []string) (map[string]*domain.Source, error) {
	sorted := append([]string(nil), ids...)
	sort.Strings(sorted)

	locked, err := uc.sourceRepo.GetByIDsForUpdate(ctx, tx, ownerID, sorted)
	if err != nil {
		return nil, err
	}

	sources := make(map[string]*domain.Source, len(locked))
	for _, s := range locked {
		sources[s.ID] = s
	}

	return sources, nil
}

// applyEffect writes the balance changes of effect. When checkFunds is set
// the funds policy is evaluated for every change before anything is written.
func (uc *LedgerUseCase) applyEffect(
	ctx context.Context,
	tx Transaction,
	sources map[string]*domain.Source,
	effect domain.Effect,
	now time.Time,
	checkFunds bool,
) error {
	ids := effect.SourceIDs()

	if checkFunds {
		for _, id := range ids {
			if err := uc.policy.Check(sources[id], effect.Delta(id)); err != nil {
				return err
			}
		}
	}

	for _, id := range ids {
		delta := effect.Delta(id)
		if delta.IsZero() {
			continue
		}

		source := sources[id]
		newBalance := source.Apply(delta)

		if err := uc.sourceRepo.UpdateBalance(ctx, tx, id, newBalance, now); err != nil {
			return err
		}

		source.Balance = newBalance
		source.Version++
		source.UpdatedAt = now
	}

	return nil
}

func withRelations(t *domain.Transaction, catalog *domain.Catalog, sources map[string]*domain.Source) *domain.Transaction {
	out := *t

	if typ, ok := catalog.Type(t.TypeID); ok {
		out.Type = typ
	}
	if t.CategoryID != nil {
		if cat, ok := catalog.Category(*t.CategoryID); ok {
			out.Category = cat
		}
	}
	if s, ok := sources[t.SourceID]; ok {
		out.Source = s
	}
	if t.TargetSourceID != nil {
		if s, ok := sources[*t.TargetSourceID]; ok {
			out.TargetSource = s
		}
	}

	return &out
}

func unionIDs(a, b []string) []string {
	seen := make(map[string]bool, len(a)+len(b))

	var ids []string
	for _, id := range append(append([]string(nil), a...), b...) {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}

	return ids
}
