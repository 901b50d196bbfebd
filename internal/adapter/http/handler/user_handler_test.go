package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/iho/gobudget/internal/adapter/http/dto"
	"github.com/iho/gobudget/internal/domain"
	"github.com/iho/gobudget/internal/infrastructure/auth"
	"github.com/iho/gobudget/internal/usecase"
)

type userServiceStub struct {
	registerFn func(ctx context.Context, input usecase.RegisterInput) (*domain.User, error)
	getFn      func(ctx context.Context, id string) (*domain.User, error)
}

func (s *userServiceStub) Register(ctx context.Context, input usecase.RegisterInput) (*domain.User, error) {
	return s.registerFn(ctx, input)
}

func (s *userServiceStub) GetUser(ctx context.Context, id string) (*domain.User, error) {
	return s.getFn(ctx, id)
}

func registeringStub() *userServiceStub {
	return &userServiceStub{
		registerFn: func(ctx context.Context, input usecase.RegisterInput) (*domain.User, error) {
			return &domain.User{ID: "user-9", Email: input.Email, Name: input.Name}, nil
		},
	}
}

func TestUserHandler_RegisterIssuesToken(t *testing.T) {
	manager := auth.NewJWTManager("secret", time.Hour)
	handler := NewUserHandler(registeringStub(), manager)

	rec := httptest.NewRecorder()
	handler.Register(rec, httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(`{"email":"a@b.io","name":"A"}`)))

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp dto.RegisterResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	claims, err := manager.Verify(resp.Token)
	if err != nil {
		t.Fatalf("expected a valid token, got %v", err)
	}
	if claims.OwnerID() != "user-9" || resp.User.Email != "a@b.io" {
		t.Fatalf("unexpected registration %+v / %+v", resp.User, claims)
	}
}

func TestUserHandler_RegisterWithoutTokens(t *testing.T) {
	handler := NewUserHandler(registeringStub(), nil)

	rec := httptest.NewRecorder()
	handler.Register(rec, httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(`{"email":"a@b.io","name":"A"}`)))

	if rec.Code != http.StatusCreated || strings.Contains(rec.Body.String(), `"token"`) {
		t.Fatalf("unexpected response %d %s", rec.Code, rec.Body.String())
	}
}

func TestUserHandler_RegisterDuplicate(t *testing.T) {
	handler := NewUserHandler(&userServiceStub{
		registerFn: func(ctx context.Context, input usecase.RegisterInput) (*domain.User, error) {
			return nil, domain.ErrDuplicateEmail
		},
	}, nil)

	rec := httptest.NewRecorder()
	handler.Register(rec, httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(`{"email":"a@b.io","name":"A"}`)))

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestUserHandler_Me(t *testing.T) {
	handler := NewUserHandler(&userServiceStub{
		getFn: func(ctx context.Context, id string) (*domain.User, error) {
			if id != testOwner {
				return nil, errors.New("unexpected owner")
			}
			return &domain.User{ID: id, Email: "me@b.io"}, nil
		},
	}, nil)

	rec := httptest.NewRecorder()
	handler.Me(rec, withOwner(httptest.NewRequest(http.MethodGet, "/users/me", nil)))

	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "me@b.io") {
		t.Fatalf("unexpected response %d %s", rec.Code, rec.Body.String())
	}
}
