package http

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	redislib "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/gobudget/internal/adapter/http/dto"
	"github.com/iho/gobudget/internal/adapter/http/handler"
	apimiddleware "github.com/iho/gobudget/internal/adapter/http/middleware"
	redisrepo "github.com/iho/gobudget/internal/adapter/repository/redis"
	"github.com/iho/gobudget/internal/domain"
	"github.com/iho/gobudget/internal/infrastructure/auth"
	"github.com/iho/gobudget/internal/infrastructure/metrics"
	"github.com/iho/gobudget/internal/usecase"
	"github.com/iho/gobudget/internal/usecase/mocks"
)

// testAPI wires the real use cases over the in-memory store.
type testAPI struct {
	handler http.Handler
	store   *mocks.Store
}

func newTestAPI(t *testing.T, opts ...func(*RouterConfig)) *testAPI {
	t.Helper()

	store := mocks.NewStore()
	store.SeedSharedCatalog()

	txManager := store.TxManager()
	sources := mocks.NewMockSourceRepository(store)
	txs := mocks.NewMockTransactionRepository(store)
	types := mocks.NewMockTransactionTypeRepository(store)
	categories := mocks.NewMockCategoryRepository(store)
	idGen := &mocks.SequenceIDGenerator{Prefix: "id"}
	logger := zerolog.Nop()

	resolver := usecase.NewCatalogResolver(types, categories, nil, 0, logger)
	recalculation := usecase.NewRecalculationUseCase(txManager, sources, txs, nil, nil, 0, logger)
	sourceUC := usecase.NewSourceUseCase(txManager, sources, recalculation, idGen, nil, 0, logger)
	ledger := usecase.NewLedgerUseCase(usecase.LedgerConfig{
		TxManager:       txManager,
		SourceRepo:      sources,
		TransactionRepo: txs,
		Catalog:         resolver,
		IDGen:           idGen,
		Logger:          logger,
	})

	cfg := RouterConfig{
		TransactionHandler: handler.NewTransactionHandler(ledger),
		SourceHandler: handler.NewSourceHandler(sourceUC, recalculation,
			usecase.NewReconciliationUseCase(sources, txs, nil, logger)),
		CatalogHandler: handler.NewCatalogHandler(
			usecase.NewCatalogUseCase(txManager, types, categories, resolver, idGen, nil, 0)),
		UserHandler: handler.NewUserHandler(
			usecase.NewUserUseCase(txManager, mocks.NewMockUserRepository(store), sourceUC, idGen, nil, 0), nil),
		SummaryHandler: handler.NewSummaryHandler(usecase.NewSummaryUseCase(txs)),
		HealthHandler:  handler.NewHealthHandler(nil),
		Logger:         logger,
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	return &testAPI{handler: NewRouter(cfg), store: store}
}

func (a *testAPI) do(t *testing.T, method, path, owner, body string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if owner != "" {
		req.Header.Set(apimiddleware.UserIDHeader, owner)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("failed to decode %s: %v", rec.Body.String(), err)
	}
	return v
}

// register creates a user and returns its id and default sources.
func (a *testAPI) register(t *testing.T, email string) (string, []dto.SourceResponse) {
	t.Helper()

	rec := a.do(t, http.MethodPost, "/api/v1/users", "", `{"email":"`+email+`","name":"Tester"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("register failed: %d %s", rec.Code, rec.Body.String())
	}
	user := decodeBody[dto.RegisterResponse](t, rec).User

	rec = a.do(t, http.MethodGet, "/api/v1/sources", user.ID, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list sources failed: %d %s", rec.Code, rec.Body.String())
	}
	return user.ID, decodeBody[[]dto.SourceResponse](t, rec)
}

func TestNewRouter_HealthEndpointAvailable(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodGet, "/health", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected /health to return 200, got %d", rec.Code)
	}
}

func TestNewRouter_RequiresOwner(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodGet, "/api/v1/sources", "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without owner, got %d", rec.Code)
	}
}

func TestNewRouter_LedgerFlow(t *testing.T) {
	api := newTestAPI(t)
	owner, sources := api.register(t, "flow@example.com")

	if len(sources) != len(domain.DefaultSourceTemplates) {
		t.Fatalf("expected default sources, got %d", len(sources))
	}
	cash, bank := sources[0].ID, sources[1].ID

	rec := api.do(t, http.MethodPost, "/api/v1/transactions", owner,
		`{"description":"salary","amount":"1000","type_id":"income","category_id":"salary","source_id":"`+bank+`"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("income failed: %d %s", rec.Code, rec.Body.String())
	}

	rec = api.do(t, http.MethodPost, "/api/v1/transactions", owner,
		`{"description":"atm","amount":"200","type_id":"transfer","source_id":"`+bank+`","target_source_id":"`+cash+`"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("transfer failed: %d %s", rec.Code, rec.Body.String())
	}
	transferID := decodeBody[dto.TransactionResponse](t, rec).ID

	rec = api.do(t, http.MethodPost, "/api/v1/transactions", owner,
		`{"description":"loop","amount":"5","type_id":"transfer","source_id":"`+cash+`","target_source_id":"`+cash+`"}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected self transfer to be rejected, got %d", rec.Code)
	}

	balance := func(id string) decimal.Decimal {
		rec := api.do(t, http.MethodGet, "/api/v1/sources/"+id, owner, "")
		if rec.Code != http.StatusOK {
			t.Fatalf("get source failed: %d", rec.Code)
		}
		return decodeBody[dto.SourceResponse](t, rec).Balance
	}

	if !balance(bank).Equal(decimal.NewFromInt(800)) || !balance(cash).Equal(decimal.NewFromInt(200)) {
		t.Fatalf("unexpected balances bank=%s cash=%s", balance(bank), balance(cash))
	}

	rec = api.do(t, http.MethodDelete, "/api/v1/transactions/"+transferID, owner, "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete failed: %d %s", rec.Code, rec.Body.String())
	}
	if !balance(cash).IsZero() || !balance(bank).Equal(decimal.NewFromInt(1000)) {
		t.Fatalf("expected transfer to be reverted, bank=%s cash=%s", balance(bank), balance(cash))
	}

	rec = api.do(t, http.MethodGet, "/api/v1/sources/reconciliation", owner, "")
	report := decodeBody[dto.ReconciliationReportResponse](t, rec)
	if report.TotalSources != len(sources) || len(report.Discrepancies) != 0 {
		t.Fatalf("unexpected report %+v", report)
	}

	rec = api.do(t, http.MethodGet, "/api/v1/summary?source_id="+bank, owner, "")
	summary := decodeBody[dto.SummaryResponse](t, rec)
	if !summary.Income.Equal(decimal.NewFromInt(1000)) || summary.Count != 1 {
		t.Fatalf("unexpected summary %+v", summary)
	}

	// Another owner cannot see these sources.
	rec = api.do(t, http.MethodGet, "/api/v1/sources/"+bank, "someone-else", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for foreign source, got %d", rec.Code)
	}
}

func TestNewRouter_RejectsNonJSONBodies(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/api/v1/users", "", `email=a@b.io`, "Content-Type", "application/x-www-form-urlencoded")
	if rec.Code != http.StatusUnsupportedMediaType {
		t.Fatalf("expected 415, got %d", rec.Code)
	}
}

func TestNewRouter_RateLimiterBlocksExcessRequests(t *testing.T) {
	rl := apimiddleware.NewRateLimiter(1, 1)
	api := newTestAPI(t, func(cfg *RouterConfig) {
		cfg.RateLimiter = rl
	})

	req1 := httptest.NewRequest(http.MethodGet, "/health", nil)
	req1.RemoteAddr = "1.2.3.4:1234"
	rec1 := httptest.NewRecorder()
	api.handler.ServeHTTP(rec1, req1)
	if rec1.Code != http.StatusOK {
		t.Fatalf("expected first request to succeed, got %d", rec1.Code)
	}

	req2 := httptest.NewRequest(http.MethodGet, "/health", nil)
	req2.RemoteAddr = "1.2.3.4:1234"
	rec2 := httptest.NewRecorder()
	api.handler.ServeHTTP(rec2, req2)
	if rec2.Code != http.StatusTooManyRequests {
		t.Fatalf("expected second request to be throttled, got %d", rec2.Code)
	}
}

func TestNewRouter_IdempotentTransactionCreate(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redislib.NewClient(&redislib.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	api := newTestAPI(t, func(cfg *RouterConfig) {
		cfg.IdempotencyStore = redisrepo.NewIdempotencyStore(client)
		cfg.IdempotencyTTL = time.Hour
	})
	owner, sources := api.register(t, "idem@example.com")

	body := `{"description":"coffee","amount":"4","type_id":"expense","category_id":"food","source_id":"` + sources[0].ID + `"}`

	first := api.do(t, http.MethodPost, "/api/v1/transactions", owner, body, apimiddleware.IdempotencyKeyHeader, "coffee-1")
	second := api.do(t, http.MethodPost, "/api/v1/transactions", owner, body, apimiddleware.IdempotencyKeyHeader, "coffee-1")

	if first.Code != http.StatusCreated || second.Code != http.StatusCreated {
		t.Fatalf("unexpected statuses %d, %d", first.Code, second.Code)
	}
	if second.Header().Get(apimiddleware.IdempotencyReplayHeader) != "true" {
		t.Fatal("expected second response to be a replay")
	}
	if first.Body.String() != second.Body.String() {
		t.Fatalf("expected identical bodies:\n%s\n%s", first.Body.String(), second.Body.String())
	}
	if n := api.store.TransactionCount(); n != 1 {
		t.Fatalf("expected exactly one transaction, got %d", n)
	}
	if !mr.Exists("gobudget:idempotency:" + owner + ":coffee-1") {
		t.Fatal("expected owner-scoped key in redis")
	}
}

func TestNewRouter_BearerAuthentication(t *testing.T) {
	manager := auth.NewJWTManager("secret", time.Hour)
	api := newTestAPI(t, func(cfg *RouterConfig) {
		cfg.JWTManager = manager
	})

	token, err := manager.Generate("user-jwt", "jwt@example.com")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	rec := api.do(t, http.MethodGet, "/api/v1/types", "user-jwt", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected header identity to be refused, got %d", rec.Code)
	}

	rec = api.do(t, http.MethodGet, "/api/v1/types", "", "", "Authorization", "Bearer "+token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with token, got %d %s", rec.Code, rec.Body.String())
	}
	if types := decodeBody[[]dto.TypeResponse](t, rec); len(types) != 4 {
		t.Fatalf("expected the shared types, got %+v", types)
	}
}

func TestNewRouter_MetricsEndpoint(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	api := newTestAPI(t, func(cfg *RouterConfig) {
		cfg.Metrics = m
		cfg.MetricsHandler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
	})

	api.do(t, http.MethodGet, "/health", "", "")

	rec := api.do(t, http.MethodGet, "/metrics", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `gobudget_http_requests_total{method="GET",route="/health",status="200"} 1`) {
		t.Fatalf("expected request counter in metrics output:\n%s", rec.Body.String())
	}
}

func TestNewRouter_RegistersKeyRoutes(t *testing.T) {
	router := newTestAPI(t).handler

	chiRoutes, ok := router.(chi.Router)
	if !ok {
		t.Fatal("router does not implement chi.Routes")
	}

	seen := map[string]bool{}
	if err := chi.Walk(chiRoutes, func(method string, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		seen[method+" "+route] = true
		return nil
	}); err != nil {
		t.Fatalf("walk failed: %v", err)
	}

	expected := []string{
		"GET /health",
		"GET /ready",
		"POST /api/v1/users",
		"GET /api/v1/users/me",
		"POST /api/v1/transactions/",
		"PUT /api/v1/transactions/{id}",
		"DELETE /api/v1/transactions/{id}",
		"POST /api/v1/sources/provision",
		"POST /api/v1/sources/{id}/recalculate",
		"GET /api/v1/sources/{id}/reconcile",
		"GET /api/v1/sources/reconciliation",
		"PATCH /api/v1/types/{id}",
		"DELETE /api/v1/categories/{id}",
		"GET /api/v1/summary",
	}

	for _, route := range expected {
		if !seen[route] {
			t.Fatalf("expected route %s to be registered", route)
		}
	}
}

