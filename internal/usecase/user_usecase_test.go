package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/iho/gobudget/internal/domain"
	"github.com/iho/gobudget/internal/usecase"
)

func newUserUseCase(f *fixture) *usecase.UserUseCase {
	return usecase.NewUserUseCase(f.txManager, f.users, f.sourceUseCase(), f.idGen, nil, 0)
}

func TestRegister_ProvisionsDefaults(t *testing.T) {
	f := newFixture(t)
	uc := newUserUseCase(f)
	ctx := context.Background()

	user, err := uc.Register(ctx, usecase.RegisterInput{Email: " Jo@Example.com ", Name: "Jo"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if user.Email != "jo@example.com" {
		t.Errorf("expected normalized email, got %q", user.Email)
	}

	sources, err := f.sources.List(ctx, nil, user.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sources) != len(domain.DefaultSourceTemplates) {
		t.Fatalf("expected %d default sources, got %d", len(domain.DefaultSourceTemplates), len(sources))
	}

	got, err := uc.GetUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Name != "Jo" {
		t.Errorf("expected name Jo, got %q", got.Name)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	f := newFixture(t)
	uc := newUserUseCase(f)
	ctx := context.Background()

	if _, err := uc.Register(ctx, usecase.RegisterInput{Email: "a@b.io", Name: "A"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := uc.Register(ctx, usecase.RegisterInput{Email: "A@B.io", Name: "Again"})
	if !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestRegister_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  usecase.RegisterInput
		fields int
	}{
		{name: "bad email", input: usecase.RegisterInput{Email: "nope", Name: "X"}, fields: 1},
		{name: "missing name", input: usecase.RegisterInput{Email: "x@y.io"}, fields: 1},
		{name: "both", input: usecase.RegisterInput{}, fields: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := newFixture(t)
			_, err := newUserUseCase(f).Register(context.Background(), tt.input)

			var de *domain.Error
			if !errors.As(err, &de) || de.Kind != domain.ErrKindValidation {
				t.Fatalf("expected validation error, got %v", err)
			}
			if len(de.Fields) != tt.fields {
				t.Fatalf("expected %d fields, got %v", tt.fields, de.Fields)
			}
		})
	}
}

func TestRegister_RollsBackUserWhenProvisioningFails(t *testing.T) {
	f := newFixture(t)
	uc := newUserUseCase(f)
	ctx := context.Background()

	f.sources.CreateFunc = func(context.Context, usecase.Transaction, *domain.Source) error {
		return errors.New("insert failed")
	}

	if _, err := uc.Register(ctx, usecase.RegisterInput{Email: "c@d.io", Name: "C"}); err == nil {
		t.Fatal("expected error")
	}

	if _, err := f.users.GetByEmail(ctx, "c@d.io"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected user to be rolled back, got %v", err)
	}
}
