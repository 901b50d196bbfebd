package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/gobudget/internal/adapter/http/dto"
	"github.com/iho/gobudget/internal/adapter/http/middleware"
	"github.com/iho/gobudget/internal/domain"
)

const maxBodyBytes = 1 << 20

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes err as a JSON error response. Internal errors never
// leak their message; they are logged with the request logger instead.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	de := domain.AsError(err)
	status := statusForKind(de.Kind)

	resp := dto.ErrorResponse{
		Error:   de.Code,
		Message: de.Message,
		Fields:  de.Fields,
	}
	if status == http.StatusInternalServerError {
		zerolog.Ctx(r.Context()).Error().
			Err(err).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("request failed with internal error")
		resp = dto.ErrorResponse{Error: domain.ErrInternal.Code, Message: domain.ErrInternal.Message}
	}

	writeJSON(w, status, resp)
}

// statusForKind maps domain error kinds to HTTP status codes.
func statusForKind(kind domain.ErrorKind) int {
	switch kind {
	case domain.ErrKindValidation:
		return http.StatusBadRequest
	case domain.ErrKindNotFound:
		return http.StatusNotFound
	case domain.ErrKindConflict:
		return http.StatusConflict
	case domain.ErrKindDomain:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// decodeJSON decodes the request body into dst. Malformed bodies become
// validation errors on the "body" field.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return domain.NewValidationError(domain.FieldError{Field: "body", Message: "is required"})
		}
		return domain.NewValidationError(domain.FieldError{Field: "body", Message: "must be valid JSON: " + err.Error()})
	}
	return nil
}

// ownerID returns the authenticated owner. The router only mounts owner
// routes behind middleware.Authenticate, so a missing owner is a wiring bug.
func ownerID(r *http.Request) (string, error) {
	owner, ok := middleware.OwnerFromContext(r.Context())
	if !ok {
		return "", domain.ErrInternal.WithMessage("request has no owner")
	}
	return owner, nil
}

// parseIntQuery parses an integer query parameter with a default value.
func parseIntQuery(r *http.Request, key string, defaultValue int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultValue
	}
	return i
}

// parseTimeQuery parses an RFC 3339 timestamp or a YYYY-MM-DD date. A bare
// date used as an upper bound covers the whole day.
func parseTimeQuery(r *http.Request, key string, endOfDay bool, fields *domain.Fields) *time.Time {
	val := strings.TrimSpace(r.URL.Query().Get(key))
	if val == "" {
		return nil
	}

	if t, err := time.Parse(time.RFC3339, val); err == nil {
		return &t
	}

	t, err := time.Parse(time.DateOnly, val)
	if err != nil {
		fields.Add(key, "must be an RFC 3339 timestamp or a YYYY-MM-DD date")
		return nil
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t
}
