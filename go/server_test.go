package kioskserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/ramen-kiosk/internal/domains/kiosk/adapters/http/mapper"
	kioskmemory "github.com/Apurer/ramen-kiosk/internal/domains/kiosk/adapters/memory"
	kioskworkflows "github.com/Apurer/ramen-kiosk/internal/domains/kiosk/adapters/workflows"
	"github.com/Apurer/ramen-kiosk/internal/domains/kiosk/application"
	"github.com/Apurer/ramen-kiosk/internal/domains/kiosk/domain"
	"github.com/Apurer/ramen-kiosk/internal/platform/auth"
	apierrors "github.com/Apurer/ramen-kiosk/internal/shared/errors"
)

const testSecret = "kiosk-test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

type serverOptions struct {
	guard   gin.HandlerFunc
	journal bool
}

func newTestServer(t *testing.T, opts serverOptions) *gin.Engine {
	t.Helper()
	noodles, err := domain.NewIngredient("Noodles", decimal.NewFromInt(20), 300, "ramen.jpg")
	require.NoError(t, err)
	egg, err := domain.NewIngredient("Egg", decimal.NewFromInt(30), 100, "egg.jpg")
	require.NoError(t, err)
	kiosk, err := domain.NewKiosk([]domain.Ingredient{noodles, egg})
	require.NoError(t, err)

	var svcOpts []application.Option
	if opts.journal {
		journal := kioskmemory.NewJournal()
		svcOpts = append(svcOpts,
			application.WithJournal(journal),
			application.WithFollowUp(kioskworkflows.NewInlineOrderFollowUp(journal, nil)),
		)
	}
	svc := application.NewService(kiosk, svcOpts...)
	return NewRouterWithGinEngine(gin.New(), ApiHandleFunctions{
		KioskAPI:       NewKioskAPI(svc),
		MaintenanceAPI: NewMaintenanceAPI(svc),
		OperatorGuard:  opts.guard,
	})
}

func do(t *testing.T, router http.Handler, method, path, body string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestPlaceOrder_CommitsAndUpdatesStock(t *testing.T) {
	router := newTestServer(t, serverOptions{})

	rec := do(t, router, http.MethodPost, "/v1/orders",
		`{"lines":[{"ingredient":"Noodles","quantity":2},{"ingredient":"Egg","quantity":1}],"cash":"100"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	receipt := decode[mapper.Receipt](t, rec)
	require.Equal(t, "70.00", receipt.TotalCost)
	require.Equal(t, "30.00", receipt.Change)
	require.Equal(t, 700, receipt.TotalCalories)
	require.Equal(t, domain.CustomRamenName, receipt.Dish)

	rec = do(t, router, http.MethodGet, "/v1/ingredients", "")
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[[]mapper.Ingredient](t, rec)
	require.Equal(t, 8, list[0].Stock)
	require.Equal(t, 9, list[1].Stock)

	rec = do(t, router, http.MethodGet, "/v1/maintenance/revenue", "")
	require.Equal(t, mapper.Revenue{Amount: "70.00"}, decode[mapper.Revenue](t, rec))

	rec = do(t, router, http.MethodGet, "/v1/maintenance/orders", "")
	orders := decode[[]mapper.OrderRecord](t, rec)
	require.Len(t, orders, 1)
	require.Equal(t, "Order: Noodles (2 orders), Egg (1 orders) Total Calories: 700 calories\nTotal Cost: 70.00", orders[0].Summary)
}

func TestPlaceOrder_InsufficientStockIsConflict(t *testing.T) {
	router := newTestServer(t, serverOptions{})

	rec := do(t, router, http.MethodPost, "/v1/orders", `{"lines":[{"ingredient":"Noodles","quantity":11}],"cash":1000}`)
	require.Equal(t, http.StatusConflict, rec.Code)
	require.Equal(t, apierrors.ContentTypeProblemJSON, rec.Header().Get("Content-Type"))
	problem := decode[apierrors.ProblemDetail](t, rec)
	require.Equal(t, apierrors.TypeInsufficientStock, problem.Type)
	require.Equal(t, "Noodles", problem.Extensions["ingredient"])
	require.EqualValues(t, 11, problem.Extensions["requested"])
	require.EqualValues(t, 10, problem.Extensions["available"])
	require.EqualValues(t, 1, problem.Extensions["shortfall"])
	require.Equal(t, "/v1/orders", problem.Instance)

	rec = do(t, router, http.MethodGet, "/v1/maintenance/revenue", "")
	require.Equal(t, "0.00", decode[mapper.Revenue](t, rec).Amount)
}

func TestPlaceOrder_InsufficientPaymentIsPaymentRequired(t *testing.T) {
	router := newTestServer(t, serverOptions{})

	rec := do(t, router, http.MethodPost, "/v1/orders", `{"lines":[{"ingredient":"Noodles","quantity":1}],"cash":"5"}`)
	require.Equal(t, http.StatusPaymentRequired, rec.Code)
	problem := decode[apierrors.ProblemDetail](t, rec)
	require.Equal(t, apierrors.TypeInsufficientPayment, problem.Type)
	require.Equal(t, "15.00", problem.Extensions["shortfall"])
	require.Equal(t, "20.00", problem.Extensions["required"])
}

func TestPlaceOrder_RequestErrors(t *testing.T) {
	router := newTestServer(t, serverOptions{})

	cases := []struct {
		name   string
		body   string
		status int
		kind   string
	}{
		{name: "malformed json", body: `{"lines":`, status: http.StatusBadRequest, kind: apierrors.TypeBadRequest},
		{name: "missing cash", body: `{"lines":[]}`, status: http.StatusBadRequest, kind: apierrors.TypeValidation},
		{name: "negative cash", body: `{"lines":[],"cash":-5}`, status: http.StatusBadRequest, kind: apierrors.TypeValidation},
		{name: "non-numeric cash", body: `{"lines":[],"cash":"abc"}`, status: http.StatusBadRequest, kind: apierrors.TypeValidation},
		{name: "negative quantity", body: `{"lines":[{"ingredient":"Egg","quantity":-1}],"cash":10}`, status: http.StatusBadRequest, kind: apierrors.TypeValidation},
		{name: "unknown ingredient", body: `{"lines":[{"ingredient":"Miso Broth","quantity":1}],"cash":100}`, status: http.StatusNotFound, kind: apierrors.TypeNotFound},
		{name: "unknown dish", body: `{"dish":"Udon","lines":[],"cash":100}`, status: http.StatusNotFound, kind: apierrors.TypeNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(t, router, http.MethodPost, "/v1/orders", tc.body)
			require.Equal(t, tc.status, rec.Code, rec.Body.String())
			require.Equal(t, tc.kind, decode[apierrors.ProblemDetail](t, rec).Type)
		})
	}

	rec := do(t, router, http.MethodGet, "/v1/maintenance/orders", "")
	require.Empty(t, decode[[]mapper.OrderRecord](t, rec))
}

func TestQuoteOrder_DoesNotCommit(t *testing.T) {
	router := newTestServer(t, serverOptions{})

	rec := do(t, router, http.MethodPost, "/v1/quote", `{"lines":[{"ingredient":"Egg","quantity":3}]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	quote := decode[mapper.Quote](t, rec)
	require.Equal(t, "90.00", quote.TotalCost)
	require.Equal(t, 300, quote.TotalCalories)

	rec = do(t, router, http.MethodGet, "/v1/ingredients", "")
	require.Equal(t, 10, decode[[]mapper.Ingredient](t, rec)[1].Stock)
}

func TestListDishes(t *testing.T) {
	router := newTestServer(t, serverOptions{})
	rec := do(t, router, http.MethodGet, "/v1/dishes", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, []mapper.Dish{{Name: domain.CustomRamenName, Customizable: true}}, decode[[]mapper.Dish](t, rec))
}

func TestMaintenance_RestockAndCollect(t *testing.T) {
	router := newTestServer(t, serverOptions{})
	rec := do(t, router, http.MethodPost, "/v1/orders", `{"lines":[{"ingredient":"Noodles","quantity":2}],"cash":40}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(t, router, http.MethodPost, "/v1/maintenance/ingredients/noodles/restock", `{"amount":5}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Equal(t, 10, decode[mapper.Ingredient](t, rec).Stock)

	rec = do(t, router, http.MethodPost, "/v1/maintenance/ingredients/Noodles/restock", `{"amount":11}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, router, http.MethodPost, "/v1/maintenance/ingredients/Noodles/restock", `{}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, apierrors.TypeValidation, decode[apierrors.ProblemDetail](t, rec).Type)

	rec = do(t, router, http.MethodPost, "/v1/maintenance/ingredients/Tofu/restock", `{"amount":1}`)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, router, http.MethodPost, "/v1/maintenance/revenue/collect", "")
	require.Equal(t, "40.00", decode[mapper.Revenue](t, rec).Amount)
	rec = do(t, router, http.MethodPost, "/v1/maintenance/revenue/collect", "")
	require.Equal(t, "0.00", decode[mapper.Revenue](t, rec).Amount)
}

func TestMaintenance_Journal(t *testing.T) {
	router := newTestServer(t, serverOptions{journal: true})
	rec := do(t, router, http.MethodPost, "/v1/orders", `{"lines":[{"ingredient":"Egg","quantity":1}],"cash":30}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	receipt := decode[mapper.Receipt](t, rec)

	rec = do(t, router, http.MethodGet, "/v1/maintenance/journal", "")
	require.Equal(t, http.StatusOK, rec.Code)
	journal := decode[mapper.Journal](t, rec)
	require.Equal(t, mapper.JournalSummary{Orders: 1, Revenue: "30.00"}, journal.Summary)
	require.Equal(t, receipt.OrderID, journal.Entries[0].OrderID)

	rec = do(t, router, http.MethodGet, "/v1/maintenance/journal/"+receipt.OrderID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Egg (1 orders)", decode[mapper.JournalEntry](t, rec).Description)

	rec = do(t, router, http.MethodGet, "/v1/maintenance/journal/not-a-uuid", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, router, http.MethodGet, "/v1/maintenance/journal/2f1d8e8e-4a5c-4e43-9b5e-1c9f9f86d001", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMaintenance_JournalUnavailable(t *testing.T) {
	router := newTestServer(t, serverOptions{})
	rec := do(t, router, http.MethodGet, "/v1/maintenance/journal", "")
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestOperatorAuth_GuardsMaintenanceRoutes(t *testing.T) {
	verifier, err := auth.NewVerifier(testSecret)
	require.NoError(t, err)
	issuer, err := auth.NewIssuer(testSecret)
	require.NoError(t, err)
	router := newTestServer(t, serverOptions{guard: OperatorAuth(verifier)})

	rec := do(t, router, http.MethodGet, "/v1/maintenance/revenue", "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, apierrors.TypeUnauthorized, decode[apierrors.ProblemDetail](t, rec).Type)

	rec = do(t, router, http.MethodGet, "/v1/maintenance/revenue", "", "Authorization", "Bearer garbage")
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	customer, err := issuer.Issue("terminal-1", "customer", time.Hour)
	require.NoError(t, err)
	rec = do(t, router, http.MethodGet, "/v1/maintenance/revenue", "", "Authorization", "Bearer "+customer)
	require.Equal(t, http.StatusForbidden, rec.Code)

	operator, err := issuer.Issue("alice", auth.RoleOperator, time.Hour)
	require.NoError(t, err)
	rec = do(t, router, http.MethodGet, "/v1/maintenance/revenue", "", "Authorization", "Bearer "+operator)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, router, http.MethodGet, "/v1/ingredients", "")
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_HealthAndMetrics(t *testing.T) {
	router := newTestServer(t, serverOptions{})

	rec := do(t, router, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	do(t, router, http.MethodGet, "/v1/ingredients", "")
	rec = do(t, router, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	require.True(t, strings.Contains(body, `kiosk_http_requests_total{method="GET",route="/v1/ingredients",status="200"} 1`), body)
	require.Contains(t, body, "kiosk_http_request_duration_ms")
}

func TestRouter_UnknownRouteIsProblem(t *testing.T) {
	router := newTestServer(t, serverOptions{})

	rec := do(t, router, http.MethodGet, "/v1/udon", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, apierrors.ContentTypeProblemJSON, rec.Header().Get("Content-Type"))
	problem := decode[apierrors.ProblemDetail](t, rec)
	require.Equal(t, "no route for GET /v1/udon", problem.Detail)
}

func TestPlaceOrder_WrongQuantityTypeNamesField(t *testing.T) {
	router := newTestServer(t, serverOptions{})

	rec := do(t, router, http.MethodPost, "/v1/orders", `{"lines":[{"ingredient":"Egg","quantity":"two"}],"cash":100}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	problem := decode[apierrors.ProblemDetail](t, rec)
	require.Equal(t, apierrors.TypeValidation, problem.Type)
	require.Contains(t, problem.Extensions["fields"], "lines.quantity")
}

func TestGetRoutes_MaintenanceRoutesRequireOperator(t *testing.T) {
	seen := map[string]bool{}
	for _, route := range getRoutes(ApiHandleFunctions{}) {
		key := route.Method + " " + route.Pattern
		require.False(t, seen[key], key)
		seen[key] = true
		require.Equal(t, strings.HasPrefix(route.Pattern, "/v1/maintenance/"), route.Operator, route.Name)
	}
	require.Len(t, seen, 10)
}
