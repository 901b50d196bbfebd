package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"

	"github.com/iho/gobudget/internal/domain"
)

func TestUserRepositoryGetByEmail(t *testing.T) {
	mockPool := newMockPool(t)
	now := time.Now().UTC()

	mockPool.ExpectQuery("FROM users WHERE LOWER").
		WithArgs("jo@example.com").
		WillReturnRows(pgxmock.NewRows([]string{"id", "email", "name", "created_at", "updated_at"}).
			AddRow("u1", "jo@example.com", "Jo", ts(now), ts(now)))
	mockPool.ExpectQuery("FROM users WHERE LOWER").
		WithArgs("nobody@example.com").
		WillReturnError(pgx.ErrNoRows)

	repo := NewUserRepository(mockPool)
	ctx := context.Background()

	user, err := repo.GetByEmail(ctx, "jo@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID != "u1" || user.Name != "Jo" {
		t.Fatalf("unexpected user: %+v", user)
	}

	if _, err := repo.GetByEmail(ctx, "nobody@example.com"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}

	assertExpectations(t, mockPool)
}

func TestUserRepositoryCreateDuplicateEmail(t *testing.T) {
	mockPool := newMockPool(t)
	mockPool.ExpectExec("INSERT INTO users").
		WithArgs("u1", "jo@example.com", "Jo", pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: pgErrUniqueViolation})

	err := NewUserRepository(mockPool).Create(context.Background(), nil, &domain.User{
		ID:    "u1",
		Email: "jo@example.com",
		Name:  "Jo",
	})
	if !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}

	assertExpectations(t, mockPool)
}
