package handler

import (
	"context"
	"net/http"

	"github.com/iho/gobudget/internal/adapter/http/dto"
	"github.com/iho/gobudget/internal/domain"
	"github.com/iho/gobudget/internal/usecase"
)

// UserService defines the behavior needed by UserHandler.
type UserService interface {
	Register(ctx context.Context, input usecase.RegisterInput) (*domain.User, error)
	GetUser(ctx context.Context, id string) (*domain.User, error)
}

// TokenIssuer issues bearer tokens for registered users.
type TokenIssuer interface {
	Generate(userID, email string) (string, error)
}

// UserHandler handles registration and profile requests.
type UserHandler struct {
	users  UserService
	tokens TokenIssuer
}

// NewUserHandler creates a new UserHandler. tokens may be nil when bearer
// authentication is disabled.
func NewUserHandler(users UserService, tokens TokenIssuer) *UserHandler {
	return &UserHandler{users: users, tokens: tokens}
}

// Register creates a user together with the default sources.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	user, err := h.users.Register(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, r, err)
		return
	}

	resp := dto.RegisterResponse{User: dto.UserFromDomain(user)}
	if h.tokens != nil {
		token, err := h.tokens.Generate(user.ID, user.Email)
		if err != nil {
			writeError(w, r, err)
			return
		}
		resp.Token = token
	}

	writeJSON(w, http.StatusCreated, resp)
}

// Me returns the authenticated user.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	user, err := h.users.GetUser(r.Context(), owner)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.UserFromDomain(user))
}
