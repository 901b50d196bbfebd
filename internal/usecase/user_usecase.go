package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/iho/gobudget/internal/domain"
)

// UserUseCase handles user registration.
type UserUseCase struct {
	uow      unitOfWork
	userRepo UserRepository
	sources  *SourceUseCase
	idGen    IDGenerator
	now      func() time.Time
}

// NewUserUseCase creates a new user use case.
func NewUserUseCase(
	txManager TransactionManager,
	userRepo UserRepository,
	sources *SourceUseCase,
	idGen IDGenerator,
	retrier Retrier,
	timeout time.Duration,
) *UserUseCase {
	return &UserUseCase{
		uow:      newUnitOfWork(txManager, retrier, timeout),
		userRepo: userRepo,
		sources:  sources,
		idGen:    idGen,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// RegisterInput represents input for registering a user.
type RegisterInput struct {
	Email string
	Name  string
}

// Register creates a user and provisions the default sources in the same
// storage transaction.
func (uc *UserUseCase) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	var fields domain.Fields
	domain.ValidateEmail(&fields, FieldEmail, input.Email)
	domain.ValidateName(&fields, FieldName, input.Name)
	if err := fields.Err(); err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))

	existing, err := uc.userRepo.GetByEmail(ctx, email)
	switch {
	case err == nil && existing != nil:
		return nil, domain.ErrDuplicateEmail
	case err != nil && !errors.Is(err, domain.ErrUserNotFound):
		return nil, err
	}

	now := uc.now()
	user := &domain.User{
		ID:        uc.idGen.Generate(),
		Email:     email,
		Name:      strings.TrimSpace(input.Name),
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = uc.uow.run(ctx, func(ctx context.Context, tx Transaction) error {
		if err := uc.userRepo.Create(ctx, tx, user); err != nil {
			return err
		}

		_, err := uc.sources.provisionDefaults(ctx, tx, user.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

// GetUser retrieves a user by ID.
func (uc *UserUseCase) GetUser(ctx context.Context, id string) (*domain.User, error) {
	return uc.userRepo.GetByID(ctx, id)
}
