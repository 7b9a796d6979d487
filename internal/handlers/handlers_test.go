package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hungerscrm/internal/handlers"
	"hungerscrm/internal/models"
	"hungerscrm/internal/pdf"
	"hungerscrm/internal/repositories"
	"hungerscrm/internal/routes"
	"hungerscrm/internal/services"
	"hungerscrm/internal/store"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type apiFixture struct {
	router *gin.Engine
	token  string
	deals  *services.DealService
}

// newAPIFixture wires the full router against a temp store so handler
// tests exercise real binding, middleware and error mapping. The
// backup target points at an unreachable local address.
func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()

	st, err := store.Open(filepath.Join(t.TempDir(), "crm.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	dealRepo := repositories.NewDealRepository(st)
	settingsRepo := repositories.NewSettingsRepository(st, "hungerscol/CRM")

	authService, err := services.NewAuthService(settingsRepo, "admin@hungers.co", "inicial123", "secreto-de-prueba")
	require.NoError(t, err)

	dealService := services.NewDealService(dealRepo, nil, nil)
	backupService := services.NewBackupService(dealService, settingsRepo, nil, "http://127.0.0.1:0", "")
	reportService := services.NewReportService(dealService, backupService)
	exportService := services.NewExportService(dealService, pdf.NewReportGenerator())
	advisorService := services.NewAdvisorService("", "")

	// The production route table; only the swagger mount from app.Run
	// is absent.
	r := routes.SetupRoutes(gin.New(),
		authService,
		handlers.NewAuthHandler(authService),
		handlers.NewDealHandler(dealService, advisorService),
		handlers.NewSellerHandler(),
		handlers.NewReportHandler(reportService),
		handlers.NewExportHandler(exportService),
		handlers.NewBackupHandler(backupService),
	)

	fx := &apiFixture{router: r, deals: dealService}
	fx.token = fx.login(t, "admin@hungers.co", "inicial123")
	return fx
}

func (fx *apiFixture) do(t *testing.T, method, path string, body any, authed bool) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if authed {
		req.Header.Set("Authorization", "Bearer "+fx.token)
	}
	w := httptest.NewRecorder()
	fx.router.ServeHTTP(w, req)
	return w
}

func (fx *apiFixture) login(t *testing.T, email, password string) string {
	t.Helper()
	w := fx.do(t, http.MethodPost, "/login", gin.H{"email": email, "password": password}, false)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp struct {
		Token string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func TestLoginRejectsBadPassword(t *testing.T) {
	fx := newAPIFixture(t)
	w := fx.do(t, http.MethodPost, "/login", gin.H{"email": "admin@hungers.co", "password": "equivocada"}, false)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	fx := newAPIFixture(t)

	for _, path := range []string{"/deals/", "/sellers", "/reports/dashboard", "/backup/status"} {
		w := fx.do(t, http.MethodGet, path, nil, false)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}

	req := httptest.NewRequest(http.MethodGet, "/deals/", nil)
	req.Header.Set("Authorization", "Bearer token-falso")
	w := httptest.NewRecorder()
	fx.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w2 := fx.do(t, http.MethodGet, "/healthz", nil, false)
	assert.Equal(t, http.StatusOK, w2.Code)
}

func TestDealCRUDOverHTTP(t *testing.T) {
	fx := newAPIFixture(t)

	w := fx.do(t, http.MethodPost, "/deals/", gin.H{"id": "h1", "title": "Trato HTTP", "value": 500}, true)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created models.Deal
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, models.StatusLeadIn, created.Status)

	w = fx.do(t, http.MethodPost, "/deals/", gin.H{"id": "h1", "title": "Duplicado"}, true)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = fx.do(t, http.MethodGet, "/deals/h1", nil, true)
	require.Equal(t, http.StatusOK, w.Code)

	w = fx.do(t, http.MethodGet, "/deals/no-existe", nil, true)
	assert.Equal(t, http.StatusNotFound, w.Code)

	created.Title = "Trato Editado"
	w = fx.do(t, http.MethodPut, "/deals/h1", created, true)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = fx.do(t, http.MethodDelete, "/deals/h1", nil, true)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = fx.do(t, http.MethodDelete, "/deals/h1", nil, true)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateStatusOverHTTP(t *testing.T) {
	fx := newAPIFixture(t)

	w := fx.do(t, http.MethodPost, "/deals/1/status", gin.H{"to": "Negociación"}, true)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var updated models.Deal
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, models.StatusNegotiating, updated.Status)

	w = fx.do(t, http.MethodPost, "/deals/1/status", gin.H{"to": "Inventado"}, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = fx.do(t, http.MethodPost, "/deals/1/status", gin.H{}, true)
	assert.Equal(t, http.StatusBadRequest, w.Code, "to is required")
}

func TestScheduleActivityOverHTTP(t *testing.T) {
	fx := newAPIFixture(t)

	w := fx.do(t, http.MethodPost, "/deals/1/activities", gin.H{"type": "Llamada", "content": "Llamar mañana", "date": "2026-09-01"}, true)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var updated models.Deal
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	require.Len(t, updated.Activities, 1)
	assert.Equal(t, "Llamar mañana", updated.NextSteps)

	w = fx.do(t, http.MethodPost, "/deals/1/activities", gin.H{"type": "Llamada"}, true)
	assert.Equal(t, http.StatusBadRequest, w.Code, "content is required")
}

func TestSellersEndpoint(t *testing.T) {
	fx := newAPIFixture(t)

	w := fx.do(t, http.MethodGet, "/sellers", nil, true)
	require.Equal(t, http.StatusOK, w.Code)
	var sellers []models.Seller
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sellers))
	require.Len(t, sellers, 4)
	assert.Equal(t, "Andrés Mendoza", sellers[0].Name)
}

func TestDashboardEndpoint(t *testing.T) {
	fx := newAPIFixture(t)

	w := fx.do(t, http.MethodGet, "/reports/dashboard?country=Colombia", nil, true)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		TotalValueUSD float64 `json:"totalValueUsd"`
		ActiveDeals   int     `json:"activeDeals"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 12000.0, resp.TotalValueUSD)
	assert.Equal(t, 1, resp.ActiveDeals)
}

func TestBackupPushUnconfiguredOverHTTP(t *testing.T) {
	fx := newAPIFixture(t)

	w := fx.do(t, http.MethodPost, "/backup/push", nil, true)
	require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["configure"])
}

func TestBackupConfigMasksToken(t *testing.T) {
	fx := newAPIFixture(t)

	w := fx.do(t, http.MethodPut, "/backup/config", gin.H{"token": "ghp_1234567890", "repo": "hungerscol/CRM"}, true)
	require.Equal(t, http.StatusOK, w.Code)

	w = fx.do(t, http.MethodGet, "/backup/config", nil, true)
	require.Equal(t, http.StatusOK, w.Code)
	var cfg models.BackupConfig
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cfg))
	assert.Equal(t, "ghp_...7890", cfg.Token)
	assert.Equal(t, "hungerscol/CRM", cfg.Repo)
}

func TestChangePasswordOverHTTP(t *testing.T) {
	fx := newAPIFixture(t)

	w := fx.do(t, http.MethodPost, "/auth/password", gin.H{
		"current": "equivocada", "next": "nueva123", "confirm": "nueva123",
	}, true)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = fx.do(t, http.MethodPost, "/auth/password", gin.H{
		"current": "inicial123", "next": "nueva123", "confirm": "distinta",
	}, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = fx.do(t, http.MethodPost, "/auth/password", gin.H{
		"current": "inicial123", "next": "nueva123", "confirm": "nueva123",
	}, true)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	fx.login(t, "admin@hungers.co", "nueva123")
}

func TestAnalyzeEndpointDegradesWithoutKey(t *testing.T) {
	fx := newAPIFixture(t)

	w := fx.do(t, http.MethodPost, "/deals/1/analyze", nil, true)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp struct {
		Analysis string `json:"analysis"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Error al conectar con la inteligencia artificial de Hungers.", resp.Analysis)

	w = fx.do(t, http.MethodPost, "/deals/no-existe/analyze", nil, true)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPDFEndpointSetsAttachmentHeaders(t *testing.T) {
	fx := newAPIFixture(t)

	w := fx.do(t, http.MethodGet, "/export/pdf", nil, true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "HungersCRM_Report_")
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF-")))
}

func TestCSVEndpointSetsAttachmentHeaders(t *testing.T) {
	fx := newAPIFixture(t)

	w := fx.do(t, http.MethodGet, "/export/csv", nil, true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "HungersCRM_Export_")
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, w.Body.String(), services.CSVHeader)
}
