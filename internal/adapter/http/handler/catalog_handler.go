package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/gobudget/internal/adapter/http/dto"
	"github.com/iho/gobudget/internal/domain"
)

// CatalogService defines the behavior needed by CatalogHandler.
type CatalogService interface {
	ListTypes(ctx context.Context, ownerID string) ([]*domain.TransactionType, error)
	GetType(ctx context.Context, ownerID, id string) (*domain.TransactionType, error)
	CreateType(ctx context.Context, ownerID, name string, kind domain.TypeKind) (*domain.TransactionType, error)
	RenameType(ctx context.Context, ownerID, id, name string) (*domain.TransactionType, error)
	DeleteType(ctx context.Context, ownerID, id string) error

	ListCategories(ctx context.Context, ownerID, typeID string) ([]*domain.Category, error)
	GetCategory(ctx context.Context, ownerID, id string) (*domain.Category, error)
	CreateCategory(ctx context.Context, ownerID, name, typeID string) (*domain.Category, error)
	RenameCategory(ctx context.Context, ownerID, id, name string) (*domain.Category, error)
	DeleteCategory(ctx context.Context, ownerID, id string) error
}

// CatalogHandler serves transaction types and categories. Shared defaults
// are listed alongside the owner's own entries.
type CatalogHandler struct {
	catalog CatalogService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(catalog CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// ListTypes lists shared and owned transaction types.
func (h *CatalogHandler) ListTypes(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	types, err := h.catalog.ListTypes(r.Context(), owner)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.TypesFromDomain(types))
}

// GetType retrieves a transaction type.
func (h *CatalogHandler) GetType(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	typ, err := h.catalog.GetType(r.Context(), owner, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.TypeFromDomain(typ))
}

// CreateType creates an owned transaction type.
func (h *CatalogHandler) CreateType(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req dto.CreateTypeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	typ, err := h.catalog.CreateType(r.Context(), owner, req.Name, domain.TypeKind(req.Kind))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.TypeFromDomain(typ))
}

// RenameType renames an owned transaction type.
func (h *CatalogHandler) RenameType(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req dto.RenameRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	typ, err := h.catalog.RenameType(r.Context(), owner, chi.URLParam(r, "id"), req.Name)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.TypeFromDomain(typ))
}

// DeleteType deletes an owned transaction type.
func (h *CatalogHandler) DeleteType(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.catalog.DeleteType(r.Context(), owner, chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListCategories lists categories, optionally narrowed by ?type_id.
func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	categories, err := h.catalog.ListCategories(r.Context(), owner, r.URL.Query().Get("type_id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.CategoriesFromDomain(categories))
}

// GetCategory retrieves a category.
func (h *CatalogHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	category, err := h.catalog.GetCategory(r.Context(), owner, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.CategoryFromDomain(category))
}

// CreateCategory creates an owned category.
func (h *CatalogHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req dto.CreateCategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	category, err := h.catalog.CreateCategory(r.Context(), owner, req.Name, req.TypeID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.CategoryFromDomain(category))
}

// RenameCategory renames an owned category.
func (h *CatalogHandler) RenameCategory(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req dto.RenameRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	category, err := h.catalog.RenameCategory(r.Context(), owner, chi.URLParam(r, "id"), req.Name)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.CategoryFromDomain(category))
}

// DeleteCategory deletes an owned category.
func (h *CatalogHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.catalog.DeleteCategory(r.Context(), owner, chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
