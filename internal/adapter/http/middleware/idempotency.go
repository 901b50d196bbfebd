package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/gobudget/internal/infrastructure/metrics"
	"github.com/iho/gobudget/internal/usecase"
)

const (
	// IdempotencyKeyHeader is the header name for idempotency keys.
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotencyReplayHeader marks a response served from the store.
	IdempotencyReplayHeader = "X-Idempotency-Replay"

	defaultIdempotencyTTL = 24 * time.Hour
	pendingResponse       = "processing"
)

// releaser is implemented by stores that can drop a claimed key.
type releaser interface {
	Release(ctx context.Context, key string) error
}

// storedResponse is what a completed request leaves behind for replays.
type storedResponse struct {
	Status int    `json:"status"`
	Body   []byte `json:"body"`
}

// IdempotencyMiddleware replays the stored response of a mutating request
// when the same owner repeats its Idempotency-Key.
type IdempotencyMiddleware struct {
	store   usecase.IdempotencyStore
	ttl     time.Duration
	metrics *metrics.Metrics
	logger  zerolog.Logger
}

// NewIdempotencyMiddleware creates a new IdempotencyMiddleware. m may be nil.
func NewIdempotencyMiddleware(
	store usecase.IdempotencyStore,
	ttl time.Duration,
	m *metrics.Metrics,
	logger zerolog.Logger,
) *IdempotencyMiddleware {
	if ttl <= 0 {
		ttl = defaultIdempotencyTTL
	}

	return &IdempotencyMiddleware{
		store:   store,
		ttl:     ttl,
		metrics: m,
		logger:  logger,
	}
}

// Wrap wraps an http.Handler with idempotency checking.
func (m *IdempotencyMiddleware) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !isMutating(r.Method) {
			next.ServeHTTP(w, r)
			return
		}

		key := r.Header.Get(IdempotencyKeyHeader)
		if key == "" {
			next.ServeHTTP(w, r)
			return
		}

		// Keys are scoped per owner so two users cannot collide.
		if owner, ok := OwnerFromContext(r.Context()); ok {
			key = owner + ":" + key
		}

		exists, cached, err := m.store.CheckAndSet(r.Context(), key, []byte(pendingResponse), m.ttl)
		if err != nil {
			m.logger.Error().Err(err).Msg("idempotency check failed")
			writeError(w, http.StatusInternalServerError, "internal_error", "idempotency check failed")
			return
		}

		if exists {
			m.replay(w, cached)
			return
		}

		recorder := &responseRecorder{
			ResponseWriter: w,
			body:           &bytes.Buffer{},
			statusCode:     http.StatusOK,
		}

		// The request context may already be cancelled once the client is gone.
		ctx := context.WithoutCancel(r.Context())

		stored := false
		defer func() {
			// Runs while a handler panic unwinds, so the key never stays pending.
			if !stored {
				m.release(ctx, key)
			}
		}()

		next.ServeHTTP(recorder, r)

		if recorder.statusCode < 200 || recorder.statusCode >= 300 {
			return
		}

		payload, err := json.Marshal(storedResponse{Status: recorder.statusCode, Body: recorder.body.Bytes()})
		if err == nil {
			err = m.store.Update(ctx, key, payload, m.ttl)
		}
		if err != nil {
			m.logger.Warn().Err(err).Str("key", key).Msg("failed to store idempotent response")
			return
		}
		stored = true
	})
}

func (m *IdempotencyMiddleware) release(ctx context.Context, key string) {
	rel, ok := m.store.(releaser)
	if !ok {
		return
	}
	if err := rel.Release(ctx, key); err != nil {
		m.logger.Warn().Err(err).Str("key", key).Msg("failed to release idempotency key")
	}
}

func (m *IdempotencyMiddleware) replay(w http.ResponseWriter, cached []byte) {
	if cached == nil || string(cached) == pendingResponse {
		writeError(w, http.StatusConflict, "request_in_progress",
			"a request with this idempotency key is still being processed")
		return
	}

	var stored storedResponse
	if err := json.Unmarshal(cached, &stored); err != nil || stored.Status == 0 {
		m.logger.Warn().Err(err).Msg("undecodable idempotent response")
		writeError(w, http.StatusInternalServerError, "internal_error", "stored response is unreadable")
		return
	}

	if m.metrics != nil {
		m.metrics.IdempotencyReplays.Inc()
	}

	w.Header().Set(IdempotencyReplayHeader, "true")
	if len(stored.Body) > 0 {
		w.Header().Set("Content-Type", "application/json")
	}
	w.WriteHeader(stored.Status)
	_, _ = w.Write(stored.Body)
}

func isMutating(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	default:
		return false
	}
}

type responseRecorder struct {
	http.ResponseWriter
	statusCode int
	body       *bytes.Buffer
}

func (r *responseRecorder) Write(b []byte) (int, error) {
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}

func (r *responseRecorder) WriteHeader(statusCode int) {
	r.statusCode = statusCode
	r.ResponseWriter.WriteHeader(statusCode)
}
