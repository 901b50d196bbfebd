package postgres

import (
	"context"

	"github.com/iho/gobudget/internal/domain"
	"github.com/iho/gobudget/internal/infrastructure/postgres/generated"
	"github.com/iho/gobudget/internal/usecase"
)

// UserRepository implements usecase.UserRepository.
type UserRepository struct {
	db      generated.DBTX
	queries *generated.Queries
}

// NewUserRepository creates a new user repository.
func NewUserRepository(db generated.DBTX) *UserRepository {
	return &UserRepository{db: db, queries: generated.New(db)}
}

// Create inserts a new user.
func (r *UserRepository) Create(ctx context.Context, tx usecase.Transaction, user *domain.User) error {
	err := queriesFor(r.db, tx).CreateUser(ctx, generated.CreateUserParams{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		CreatedAt: timeToPgTimestamptz(user.CreatedAt),
		UpdatedAt: timeToPgTimestamptz(user.UpdatedAt),
	})
	if isUniqueViolation(err) {
		return domain.ErrDuplicateEmail
	}

	return err
}

// GetByID retrieves a user by ID.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	row, err := r.queries.GetUserByID(ctx, id)
	if err != nil {
		return nil, notFound(err, domain.ErrUserNotFound)
	}

	return rowToUser(row), nil
}

// GetByEmail retrieves a user by email, ignoring case.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	row, err := r.queries.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, notFound(err, domain.ErrUserNotFound)
	}

	return rowToUser(row), nil
}

func rowToUser(row generated.User) *domain.User {
	return &domain.User{
		ID:        row.ID,
		Email:     row.Email,
		Name:      row.Name,
		CreatedAt: row.CreatedAt.Time,
		UpdatedAt: row.UpdatedAt.Time,
	}
}
