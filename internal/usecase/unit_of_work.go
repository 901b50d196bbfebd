package usecase

import (
	"context"
	"time"
)

// unitOfWork runs a function inside one database transaction, retrying the
// whole function on transient failures. The transaction is committed only
// when fn succeeds; any error rolls everything back.
type unitOfWork struct {
	txManager TransactionManager
	retrier   Retrier
	timeout   time.Duration
}

func newUnitOfWork(txManager TransactionManager, retrier Retrier, timeout time.Duration) unitOfWork {
	if retrier == nil {
		retrier = noRetry{}
	}
	if timeout <= 0 {
		timeout = DefaultTransactionTimeout
	}

	return unitOfWork{
		txManager: txManager,
		retrier:   retrier,
		timeout:   timeout,
	}
}

func (u unitOfWork) run(ctx context.Context, fn func(ctx context.Context, tx Transaction) error) error {
	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	return u.retrier.Retry(ctx, func() error {
		tx, err := u.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		if err := fn(ctx, tx); err != nil {
			return err
		}

		return tx.Commit(ctx)
	})
}
