package handler

import (
	"context"
	"net/http"

	"github.com/iho/gobudget/internal/adapter/http/dto"
	"github.com/iho/gobudget/internal/domain"
	"github.com/iho/gobudget/internal/usecase"
)

// SummaryService aggregates transactions.
type SummaryService interface {
	Summarize(ctx context.Context, ownerID string, filter usecase.TransactionFilter) (domain.Totals, error)
}

// SummaryHandler serves aggregate totals over the transaction filter.
type SummaryHandler struct {
	summary SummaryService
}

// NewSummaryHandler creates a new SummaryHandler.
func NewSummaryHandler(summary SummaryService) *SummaryHandler {
	return &SummaryHandler{summary: summary}
}

// Get returns the totals for the filtered transactions.
func (h *SummaryHandler) Get(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	filter, err := parseFilter(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	totals, err := h.summary.Summarize(r.Context(), owner, filter)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.SummaryFromDomain(totals))
}
