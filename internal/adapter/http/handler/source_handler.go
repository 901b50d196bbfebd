package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/iho/gobudget/internal/adapter/http/dto"
	"github.com/iho/gobudget/internal/domain"
	"github.com/iho/gobudget/internal/usecase"
)

// SourceService defines the source management behavior needed by SourceHandler.
type SourceService interface {
	CreateSource(ctx context.Context, ownerID string, input usecase.CreateSourceInput) (*domain.Source, error)
	GetSource(ctx context.Context, ownerID, id string) (*domain.Source, error)
	ListSources(ctx context.Context, ownerID string) ([]*domain.Source, error)
	UpdateSource(ctx context.Context, ownerID, id string, input usecase.UpdateSourceInput) (*domain.Source, error)
	DeleteSource(ctx context.Context, ownerID, id string) error
	ProvisionDefaults(ctx context.Context, ownerID string) ([]*domain.Source, error)
}

// RecalculationService rebuilds a source balance from history.
type RecalculationService interface {
	RecalculateSourceBalance(ctx context.Context, ownerID, sourceID string, newInitialAmount *decimal.Decimal) (decimal.Decimal, error)
}

// ReconciliationService compares stored balances with recalculated ones.
type ReconciliationService interface {
	ReconcileSource(ctx context.Context, ownerID, sourceID string) (*usecase.ReconciliationResult, error)
	GenerateReconciliationReport(ctx context.Context, ownerID string) (*usecase.ReconciliationReport, error)
}

// SourceHandler handles source-related HTTP requests.
type SourceHandler struct {
	sources        SourceService
	recalculation  RecalculationService
	reconciliation ReconciliationService
}

// NewSourceHandler creates a new SourceHandler.
func NewSourceHandler(
	sources SourceService,
	recalculation RecalculationService,
	reconciliation ReconciliationService,
) *SourceHandler {
	return &SourceHandler{
		sources:        sources,
		recalculation:  recalculation,
		reconciliation: reconciliation,
	}
}

// Create creates a new source.
func (h *SourceHandler) Create(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req dto.CreateSourceRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	source, err := h.sources.CreateSource(r.Context(), owner, req.ToUseCaseInput())
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.SourceFromDomain(source))
}

// Get retrieves a source by ID.
func (h *SourceHandler) Get(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	source, err := h.sources.GetSource(r.Context(), owner, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.SourceFromDomain(source))
}

// List lists the owner's sources.
func (h *SourceHandler) List(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	sources, err := h.sources.ListSources(r.Context(), owner)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.SourcesFromDomain(sources))
}

// Update changes a source's details.
func (h *SourceHandler) Update(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req dto.UpdateSourceRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	source, err := h.sources.UpdateSource(r.Context(), owner, chi.URLParam(r, "id"), req.ToUseCaseInput())
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.SourceFromDomain(source))
}

// Delete removes a source that no transaction references.
func (h *SourceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.sources.DeleteSource(r.Context(), owner, chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Provision creates whichever default sources the owner is missing.
func (h *SourceHandler) Provision(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	created, err := h.sources.ProvisionDefaults(r.Context(), owner)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.SourcesFromDomain(created))
}

// Recalculate rebuilds a source's balance, optionally with a new initial amount.
func (h *SourceHandler) Recalculate(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req dto.RecalculateRequest
	if r.ContentLength != 0 {
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, r, err)
			return
		}
	}

	id := chi.URLParam(r, "id")
	balance, err := h.recalculation.RecalculateSourceBalance(r.Context(), owner, id, req.InitialAmount)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.BalanceResponse{SourceID: id, Balance: balance})
}

// Reconcile checks one source's stored balance without changing it.
func (h *SourceHandler) Reconcile(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	result, err := h.reconciliation.ReconcileSource(r.Context(), owner, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ReconciliationFromUseCase(result))
}

// Report reconciles every source of the owner.
func (h *SourceHandler) Report(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	report, err := h.reconciliation.GenerateReconciliationReport(r.Context(), owner)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ReportFromUseCase(report))
}
