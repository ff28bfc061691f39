package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-kit/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prajwalbharadwajbm/referralhub/internal/assistant"
	"github.com/prajwalbharadwajbm/referralhub/internal/backend"
	"github.com/prajwalbharadwajbm/referralhub/internal/config"
	"github.com/prajwalbharadwajbm/referralhub/internal/endpoint"
	"github.com/prajwalbharadwajbm/referralhub/internal/metrics"
	"github.com/prajwalbharadwajbm/referralhub/internal/middleware"
	"github.com/prajwalbharadwajbm/referralhub/internal/service"
	"github.com/prajwalbharadwajbm/referralhub/internal/session"
	"github.com/prajwalbharadwajbm/referralhub/internal/wizard"
)

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()
	cfg := &config.Config{
		Backend: config.BackendConfig{Mode: config.BackendModeMemory, AdminName: "Dana", AdminEmail: "admin@example.com", AdminPassword: "s3cret"},
		Session: config.SessionConfig{TTL: time.Hour, CookieName: "referralhub_session", MemorySize: 100, EnableMemory: true},
		Portal:  config.PortalConfig{PublicURL: "http://localhost:3000"},
	}

	store, err := session.NewHybridStore(cfg.StoreConfig())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	m := metrics.NewPrometheusMetrics(prometheus.NewRegistry())
	api := backend.NewInstrumentedAPI(backend.NewMemoryAPI(cfg.MemoryAdmin()), m)

	opts, err := wizard.DefaultOptions()
	require.NoError(t, err)
	k, err := assistant.DefaultKnowledge()
	require.NoError(t, err)

	l := log.NewNopLogger()
	mws := []endpoint.Middleware{middleware.InstrumentingMiddleware(m), middleware.LoggingMiddleware(l)}
	console := endpoint.MakeConsoleEndpoints(service.NewConsoleService(api, opts, assistant.New(k), m, 5), mws...)
	portal := endpoint.MakePortalEndpoints(service.NewPortalService(api, m, cfg.Portal.PublicURL), mws...)

	return Routes(cfg, console, portal, store, m, l)
}

func TestRoutes_Health(t *testing.T) {
	h := newTestHandler(t)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, VERSION, body["version"])
	assert.Equal(t, config.BackendModeMemory, body["backend"])
	assert.Contains(t, body, "sessions")
}

func TestRoutes_Metrics(t *testing.T) {
	h := newTestHandler(t)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "go_goroutines")
}

func TestRoutes_LoginSetsSessionCookie(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/login", strings.NewReader(`{"email":"admin@example.com","password":"s3cret"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "referralhub_session", cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	req = httptest.NewRequest(http.MethodGet, "/api/admin/name", nil)
	req.AddCookie(&http.Cookie{Name: cookies[0].Name, Value: cookies[0].Value})
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"name":"Dana"}`, w.Body.String())
}

func postJSON(t *testing.T, h http.Handler, path, body string, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func getWith(h http.Handler, path string, cookie *http.Cookie) int {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.AddCookie(cookie)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w.Code
}

func TestRoutes_AdminLoginIssuesFreshSessionID(t *testing.T) {
	h := newTestHandler(t)

	w := postJSON(t, h, "/api/user/register", `{"name":"Eve","email":"eve@example.com","password":"pw"}`, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(t, h, "/api/user/login", `{"email":"eve@example.com","password":"pw"}`, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, w.Result().Cookies(), 1)
	planted := &http.Cookie{Name: "referralhub_session", Value: w.Result().Cookies()[0].Value}

	w = postJSON(t, h, "/api/admin/login", `{"email":"admin@example.com","password":"s3cret"}`, planted)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, w.Result().Cookies(), 1)
	issued := &http.Cookie{Name: "referralhub_session", Value: w.Result().Cookies()[0].Value}

	assert.NotEqual(t, planted.Value, issued.Value)
	assert.Equal(t, http.StatusUnauthorized, getWith(h, "/api/admin/dashboard", planted))
	assert.Equal(t, http.StatusUnauthorized, getWith(h, "/api/user/profile", planted))
	assert.Equal(t, http.StatusOK, getWith(h, "/api/admin/dashboard", issued))
}

func TestNewBackend(t *testing.T) {
	l := log.NewNopLogger()

	api, err := newBackend(&config.Config{Backend: config.BackendConfig{Mode: config.BackendModeMemory}}, l)
	require.NoError(t, err)
	assert.IsType(t, &backend.MemoryAPI{}, api)

	api, err = newBackend(&config.Config{Backend: config.BackendConfig{Mode: config.BackendModeHTTP, BaseURL: "http://localhost:5000", Timeout: time.Second}}, l)
	require.NoError(t, err)
	assert.IsType(t, &backend.Client{}, api)

	_, err = newBackend(&config.Config{Backend: config.BackendConfig{Mode: config.BackendModeHTTP, BaseURL: "localhost:5000"}}, l)
	assert.Error(t, err)

}
