package http_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-alerts/internal/application/alerts"
	"github.com/jhoicas/stock-alerts/internal/application/usecase"
	"github.com/jhoicas/stock-alerts/internal/domain/inventory"
	"github.com/jhoicas/stock-alerts/internal/domain/repository"
	"github.com/jhoicas/stock-alerts/internal/infrastructure/memory"
	"github.com/jhoicas/stock-alerts/internal/infrastructure/metrics"
	"github.com/jhoicas/stock-alerts/internal/infrastructure/pdf"
	"github.com/jhoicas/stock-alerts/internal/infrastructure/seed"
	apphttp "github.com/jhoicas/stock-alerts/internal/interfaces/http"
	"github.com/jhoicas/stock-alerts/pkg/logger"
)

var fixedNow = time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

type brokenReader struct{}

func (brokenReader) ReadSnapshot(context.Context, func(repository.Repositories) error) error {
	return errors.New("pq: relation \"stock\" does not exist")
}

type testServer struct {
	app     *fiber.App
	store   *memory.Store
	logs    *bytes.Buffer
	metrics *metrics.Recorder
}

func newTestServer(t *testing.T, reader alerts.SnapshotReader) *testServer {
	t.Helper()
	store := memory.NewStore()
	require.NoError(t, store.Run(context.Background(), seed.Demo(fixedNow).Loader(context.Background())))
	if reader == nil {
		reader = store
	}

	var logs bytes.Buffer
	log := logger.NewWithWriter(&logs, logger.Config{Level: "debug"})
	rec := metrics.NewRecorder()

	alertsUC := alerts.NewLowStockUseCase(
		alerts.NewEngine(inventory.DefaultAlertPolicy(), log), reader, log,
		alerts.WithClock(func() time.Time { return fixedNow }),
		alerts.WithMetrics(rec),
		alerts.WithReportGenerator(pdf.NewMarotoReportGenerator()),
	)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		ServiceName:    "stock-alerts",
		AlertsUC:       alertsUC,
		ProductUC:      usecase.NewProductUseCase(store, log),
		JWTSecret:      testJWTSecret,
		MetricsHandler: rec.Handler(),
	})
	return &testServer{app: app, store: store, logs: &logs, metrics: rec}
}

func (s *testServer) do(t *testing.T, method, path, body, auth string) (int, string, http.Header) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(raw), resp.Header
}

// ──────────────────────────────────────────────────────────────────────────────
// Alertas
// ──────────────────────────────────────────────────────────────────────────────

func TestLowStock_200(t *testing.T) {
	s := newTestServer(t, nil)
	status, body, _ := s.do(t, http.MethodGet, "/api/companies/1/alerts/low-stock", "", "")

	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{
		"alerts": [{
			"product_id": 123, "product_name": "Widget A", "sku": "WID-001",
			"warehouse_id": 456, "warehouse_name": "Main Warehouse",
			"current_stock": 5, "threshold": 20, "days_until_stockout": 30,
			"supplier": {"id": 789, "name": "Supplier Corp", "contact_email": "orders@supplier.com"}
		}],
		"total_alerts": 1
	}`, body)
}

func TestLowStock_404EmpresaSinBodegas(t *testing.T) {
	s := newTestServer(t, nil)
	status, body, _ := s.do(t, http.MethodGet, "/api/companies/999/alerts/low-stock", "", "")

	assert.Equal(t, http.StatusNotFound, status)
	assert.JSONEq(t, `{"alerts": [], "total_alerts": 0, "message": "Company not found or has no warehouses."}`, body)
}

func TestLowStock_400IDNoEntero(t *testing.T) {
	s := newTestServer(t, nil)
	status, body, _ := s.do(t, http.MethodGet, "/api/companies/abc/alerts/low-stock", "", "")

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body, "INVALID_ID")
}

func TestLowStock_500SinDetallesInternos(t *testing.T) {
	s := newTestServer(t, brokenReader{})
	status, body, _ := s.do(t, http.MethodGet, "/api/companies/1/alerts/low-stock", "", "")

	assert.Equal(t, http.StatusInternalServerError, status)
	assert.JSONEq(t, `{"error": "Internal server error"}`, body)
	assert.Contains(t, s.logs.String(), `relation \"stock\" does not exist`)
}

func TestLowStockReport_PDF(t *testing.T) {
	s := newTestServer(t, nil)
	status, body, header := s.do(t, http.MethodGet, "/api/companies/1/alerts/low-stock/report.pdf", "", "")

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "application/pdf", header.Get("Content-Type"))
	assert.Contains(t, header.Get("Content-Disposition"), "low-stock-1.pdf")
	assert.True(t, strings.HasPrefix(body, "%PDF"))
}

func TestLowStockReport_404(t *testing.T) {
	s := newTestServer(t, nil)
	status, body, _ := s.do(t, http.MethodGet, "/api/companies/999/alerts/low-stock/report.pdf", "", "")

	assert.Equal(t, http.StatusNotFound, status)
	assert.Contains(t, body, "Company not found or has no warehouses.")
}

// ──────────────────────────────────────────────────────────────────────────────
// Productos
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateProduct_201(t *testing.T) {
	s := newTestServer(t, nil)
	status, body, _ := s.do(t, http.MethodPost, "/api/products",
		`{"name":"Widget C","sku":"WID-003","price":"9.90","warehouse_id":457,"initial_quantity":4}`,
		tokenFor(t, 1))

	assert.Equal(t, http.StatusCreated, status)
	assert.Contains(t, body, `"message":"Product created successfully."`)
	assert.Contains(t, body, `"product_id":`)
}

func TestCreateProduct_Errores(t *testing.T) {
	cases := []struct {
		name    string
		body    string
		company int64
		status  int
		msg     string
	}{
		{"faltan campos", `{"name":"X","sku":"X-1","price":1}`, 1, http.StatusBadRequest,
			"Missing one or more required fields in the request body."},
		{"cuerpo vacío", ``, 1, http.StatusBadRequest,
			"Missing one or more required fields in the request body."},
		{"precio no numérico", `{"name":"X","sku":"X-1","price":"caro","warehouse_id":456,"initial_quantity":1}`, 1, http.StatusBadRequest,
			"Invalid data type for price or initial_quantity. Please provide numbers."},
		{"cantidad negativa", `{"name":"X","sku":"X-1","price":1,"warehouse_id":456,"initial_quantity":-3}`, 1, http.StatusBadRequest,
			"Initial quantity cannot be a negative value."},
		{"sku duplicado", `{"name":"X","sku":" WID-001 ","price":1,"warehouse_id":456,"initial_quantity":1}`, 1, http.StatusConflict,
			"Product with SKU 'WID-001' already exists."},
		{"bodega inexistente", `{"name":"X","sku":"X-1","price":1,"warehouse_id":1,"initial_quantity":1}`, 1, http.StatusNotFound,
			"Warehouse not found."},
		{"cantidad fuera de int64", `{"name":"X","sku":"X-1","price":1,"warehouse_id":456,"initial_quantity":18446744073709551621}`, 1, http.StatusBadRequest,
			"Invalid data type for price or initial_quantity. Please provide numbers."},
		{"precio fuera de rango", `{"name":"X","sku":"X-1","price":1000000000000,"warehouse_id":456,"initial_quantity":1}`, 1, http.StatusBadRequest,
			"Price must be between 0 and 9999999999.99."},
		{"proveedor inexistente", `{"name":"X","sku":"X-1","price":1,"warehouse_id":456,"initial_quantity":1,"supplier_id":999}`, 1, http.StatusNotFound,
			"Supplier not found."},
		{"tipo inexistente", `{"name":"X","sku":"X-1","price":1,"warehouse_id":456,"initial_quantity":1,"product_type_id":999}`, 1, http.StatusNotFound,
			"Product type not found."},
		{"bodega de otra empresa", `{"name":"X","sku":"X-1","price":1,"warehouse_id":456,"initial_quantity":1}`, 2, http.StatusForbidden,
			"Warehouse belongs to another company."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestServer(t, nil)
			status, body, _ := s.do(t, http.MethodPost, "/api/products", tc.body, tokenFor(t, tc.company))
			assert.Equal(t, tc.status, status)
			assert.JSONEq(t, `{"error":"`+tc.msg+`"}`, body)
		})
	}
}

func TestCreateProduct_SinToken_401(t *testing.T) {
	s := newTestServer(t, nil)
	status, _, _ := s.do(t, http.MethodPost, "/api/products", `{}`, "")
	assert.Equal(t, http.StatusUnauthorized, status)
}

// ──────────────────────────────────────────────────────────────────────────────
// Health y métricas
// ──────────────────────────────────────────────────────────────────────────────

func TestHealth(t *testing.T) {
	s := newTestServer(t, nil)
	status, body, _ := s.do(t, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"status":"ok","service":"stock-alerts"}`, body)
}

func TestMetrics_CuentaCalculos(t *testing.T) {
	s := newTestServer(t, nil)
	s.do(t, http.MethodGet, "/api/companies/1/alerts/low-stock", "", "")
	s.do(t, http.MethodGet, "/api/companies/999/alerts/low-stock", "", "")

	status, body, _ := s.do(t, http.MethodGet, "/metrics", "", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, `stockalerts_computations_total{outcome="ok"} 1`)
	assert.Contains(t, body, `stockalerts_computations_total{outcome="scope_not_found"} 1`)
	assert.Contains(t, body, `stockalerts_alerts_emitted_total 1`)
}
