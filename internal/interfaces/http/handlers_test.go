package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emicampus/gmao-stock/internal/application/auth"
	"github.com/emicampus/gmao-stock/internal/application/ledger"
	"github.com/emicampus/gmao-stock/internal/application/receiving"
	"github.com/emicampus/gmao-stock/internal/application/report"
	"github.com/emicampus/gmao-stock/internal/application/scan"
	"github.com/emicampus/gmao-stock/internal/domain"
	"github.com/emicampus/gmao-stock/internal/domain/entity"
	"github.com/emicampus/gmao-stock/internal/infrastructure/memory"
	apphttp "github.com/emicampus/gmao-stock/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Almacén en memoria para los tests de handler
// ──────────────────────────────────────────────────────────────────────────────

type memLedgerStore struct {
	mu    sync.Mutex
	parts []entity.Part
	movs  []entity.Movement
}

func (s *memLedgerStore) LoadStock(context.Context) ([]entity.Part, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entity.Part(nil), s.parts...), nil
}

func (s *memLedgerStore) ReplaceStock(_ context.Context, parts []entity.Part) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.parts = append([]entity.Part(nil), parts...)
	return nil
}

func (s *memLedgerStore) AppendMovement(_ context.Context, mov entity.Movement) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.movs = append(s.movs, mov)
	return nil
}

func (s *memLedgerStore) LoadMovements(context.Context) ([]entity.Movement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entity.Movement(nil), s.movs...), nil
}

type stubPDF struct{}

func (stubPDF) GenerateReceiptPDF(context.Context, *entity.Receipt) ([]byte, error) {
	return []byte("%PDF-1.4 stub"), nil
}

// buildAPI levanta la aplicación completa (router real, usecases reales)
// sobre el almacén en memoria.
func buildAPI(t *testing.T) *fiber.App {
	t.Helper()

	store := &memLedgerStore{parts: []entity.Part{
		{ID: "PMP-01", Designation: "Circulateur Solaire Wilo", Quantity: 10, UnitPrice: decimal.NewFromInt(1500), AlertThreshold: 2},
		{ID: "SEL-04", Designation: "Sel Adoucisseur (sac 25kg)", Quantity: 20, UnitPrice: decimal.NewFromFloat(95), AlertThreshold: 5},
	}}

	stockLedger, err := ledger.NewStockLedger(context.Background(), store)
	require.NoError(t, err)

	users, err := memory.NewUserRepository("brahim:s3cret:Brahim A.:admin,fatima:pass123:Fatima Z.:technicien")
	require.NoError(t, err)

	disabledDecoder := scan.DecoderFunc(func(context.Context, []byte) (string, error) {
		return "", domain.ErrScanUnavailable
	})

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		Ledger:      stockLedger,
		MovementLog: report.NewMovementLogUseCase(store),
		Receive:     receiving.NewReceiveUseCase(stockLedger, stubPDF{}),
		ScanDecoder: disabledDecoder,
		AuthUC: auth.NewAuthUseCase(users, auth.JWTConfig{
			Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer,
		}),
		JWTSecret: testJWTSecret,
	})
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

// ──────────────────────────────────────────────────────────────────────────────
// Auth
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_CredencialesValidas(t *testing.T) {
	app := buildAPI(t)
	resp := doJSON(t, app, http.MethodPost, "/api/auth/login", "",
		map[string]string{"username": "fatima", "password": "pass123"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Token string `json:"token"`
		User  struct {
			Name string `json:"name"`
			Role string `json:"role"`
		} `json:"user"`
	}
	decodeBody(t, resp, &body)
	assert.NotEmpty(t, body.Token)
	assert.Equal(t, "Fatima Z.", body.User.Name)
	assert.Equal(t, "technicien", body.User.Role)
}

func TestLogin_PasswordIncorrecta(t *testing.T) {
	app := buildAPI(t)
	resp := doJSON(t, app, http.MethodPost, "/api/auth/login", "",
		map[string]string{"username": "fatima", "password": "mala"})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Stock
// ──────────────────────────────────────────────────────────────────────────────

func TestStock_ListYGet(t *testing.T) {
	app := buildAPI(t)
	token := tokenForRole(t, "technicien")

	resp := doJSON(t, app, http.MethodGet, "/api/stock", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var parts []map[string]interface{}
	decodeBody(t, resp, &parts)
	assert.Len(t, parts, 2)

	// Lookup normaliza el identificador (minúsculas, espacios).
	resp = doJSON(t, app, http.MethodGet, "/api/stock/pmp-01", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var part map[string]interface{}
	decodeBody(t, resp, &part)
	assert.Equal(t, "PMP-01", part["id"])
	assert.Equal(t, float64(10), part["quantity"])

	resp = doJSON(t, app, http.MethodGet, "/api/stock/XXX-99", token, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestStock_CreateRequiereAdmin(t *testing.T) {
	app := buildAPI(t)
	body := map[string]interface{}{
		"id": "GLY-03", "designation": "Bidon Glycol 20L",
		"quantity": 5, "unit_price": "800", "alert_threshold": 2,
	}

	resp := doJSON(t, app, http.MethodPost, "/api/stock", tokenForRole(t, "technicien"), body)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode,
		"technicien no puede dar de alta piezas")

	resp = doJSON(t, app, http.MethodPost, "/api/stock", tokenForRole(t, "admin"), body)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var part map[string]interface{}
	decodeBody(t, resp, &part)
	assert.Equal(t, "GLY-03", part["id"])

	// Alta repetida → 409 DUPLICATE_ID
	resp = doJSON(t, app, http.MethodPost, "/api/stock", tokenForRole(t, "admin"), body)
	resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Salidas
// ──────────────────────────────────────────────────────────────────────────────

func TestOutbound_DescuentaYFirma(t *testing.T) {
	app := buildAPI(t)
	token := tokenForRole(t, "technicien")

	resp := doJSON(t, app, http.MethodPost, "/api/movements/out", token,
		map[string]interface{}{"part_id": "PMP-01", "quantity": 4})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var mov map[string]interface{}
	decodeBody(t, resp, &mov)
	assert.Equal(t, "PMP-01", mov["part_id"])
	assert.Equal(t, float64(4), mov["quantity"])
	assert.Equal(t, testName, mov["operator"], "la salida queda firmada con el nombre del token")

	resp = doJSON(t, app, http.MethodGet, "/api/stock/PMP-01", token, nil)
	var part map[string]interface{}
	decodeBody(t, resp, &part)
	assert.Equal(t, float64(6), part["quantity"])
}

func TestOutbound_StockInsuficiente(t *testing.T) {
	app := buildAPI(t)
	token := tokenForRole(t, "technicien")

	resp := doJSON(t, app, http.MethodPost, "/api/movements/out", token,
		map[string]interface{}{"part_id": "PMP-01", "quantity": 11})
	require.Equal(t, http.StatusConflict, resp.StatusCode)

	var body map[string]interface{}
	decodeBody(t, resp, &body)
	assert.Equal(t, "INSUFFICIENT_STOCK", body["code"])
	assert.Equal(t, float64(10), body["available"],
		"la respuesta incluye la cantidad disponible")
}

func TestOutbound_CantidadInvalida(t *testing.T) {
	app := buildAPI(t)
	resp := doJSON(t, app, http.MethodPost, "/api/movements/out", tokenForRole(t, "technicien"),
		map[string]interface{}{"part_id": "PMP-01", "quantity": 0})
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Recepciones
// ──────────────────────────────────────────────────────────────────────────────

func TestReceiving_IncrementaYDevuelveBon(t *testing.T) {
	app := buildAPI(t)
	token := tokenForRole(t, "technicien")

	resp := doJSON(t, app, http.MethodPost, "/api/receiving", token, map[string]interface{}{
		"supplier": "Sanitherm SARL",
		"items": []map[string]interface{}{
			{"part_id": "PMP-01", "quantity": 3},
			{"part_id": "SEL-04", "quantity": 4},
		},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var receipt map[string]interface{}
	decodeBody(t, resp, &receipt)
	assert.Contains(t, receipt["reference"], "BR-")
	assert.Equal(t, "Sanitherm SARL", receipt["supplier"])
	// 3*1500 + 4*95 = 4880
	assert.Equal(t, "4880", receipt["grand_total"])

	resp = doJSON(t, app, http.MethodGet, "/api/stock/PMP-01", token, nil)
	var part map[string]interface{}
	decodeBody(t, resp, &part)
	assert.Equal(t, float64(13), part["quantity"])

	// La entrada no genera registro de salida.
	resp = doJSON(t, app, http.MethodGet, "/api/movements", token, nil)
	var movs []map[string]interface{}
	decodeBody(t, resp, &movs)
	assert.Empty(t, movs)
}

func TestReceiving_FormatoPDF(t *testing.T) {
	app := buildAPI(t)
	resp := doJSON(t, app, http.MethodPost, "/api/receiving?format=pdf", tokenForRole(t, "technicien"),
		map[string]interface{}{
			"supplier": "Sanitherm SARL",
			"items":    []map[string]interface{}{{"part_id": "SEL-04", "quantity": 1}},
		})
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "BR-")
}

// ──────────────────────────────────────────────────────────────────────────────
// Informes y escaneo
// ──────────────────────────────────────────────────────────────────────────────

func TestWeeklyReport_IncluyeSalidas(t *testing.T) {
	app := buildAPI(t)
	token := tokenForRole(t, "technicien")

	for _, qty := range []int{2, 3} {
		resp := doJSON(t, app, http.MethodPost, "/api/movements/out", token,
			map[string]interface{}{"part_id": "SEL-04", "quantity": qty})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		resp.Body.Close()
	}

	resp := doJSON(t, app, http.MethodGet, "/api/reports/weekly", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var rep struct {
		Movements []map[string]interface{} `json:"movements"`
		Totals    []map[string]interface{} `json:"totals"`
	}
	decodeBody(t, resp, &rep)
	assert.Len(t, rep.Movements, 2)
	require.Len(t, rep.Totals, 1)
	assert.Equal(t, "SEL-04", rep.Totals[0]["part_id"])
	assert.Equal(t, float64(5), rep.Totals[0]["total"])
}

func TestScan_DecodificadorDeshabilitado(t *testing.T) {
	app := buildAPI(t)
	resp := doJSON(t, app, http.MethodPost, "/api/scan", tokenForRole(t, "technicien"),
		map[string]string{"image": "aGVsbG8="})
	require.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	var body map[string]interface{}
	decodeBody(t, resp, &body)
	assert.Equal(t, "SCAN_UNAVAILABLE", body["code"])
}
