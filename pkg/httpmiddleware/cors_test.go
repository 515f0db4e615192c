package httpmiddleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func corsRequest(t *testing.T, h http.Handler, method, origin string, preflight bool) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, "/api/products", nil)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	if preflight {
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestCORS_WildcardWithCredentialsEchoesOrigin(t *testing.T) {
	h := CORS(CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowCredentials: true,
	})(okHandler())
	origin := "https://app.wearwow.example"

	rec := corsRequest(t, h, http.MethodGet, origin, false)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, origin, rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
	assert.Contains(t, rec.Header().Values("Vary"), "Origin")

	rec = corsRequest(t, h, http.MethodOptions, origin, true)
	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, origin, rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
}

func TestCORS_WildcardWithoutCredentials(t *testing.T) {
	h := CORS(CORSConfig{AllowOrigins: []string{"*"}})(okHandler())

	rec := corsRequest(t, h, http.MethodGet, "https://anywhere.example", false)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Credentials"))
}

func TestCORS_ListedOriginOnly(t *testing.T) {
	h := CORS(CORSConfig{
		AllowOrigins:     []string{"https://app.wearwow.example"},
		AllowCredentials: true,
	})(okHandler())

	rec := corsRequest(t, h, http.MethodGet, "https://app.wearwow.example", false)
	assert.Equal(t, "https://app.wearwow.example", rec.Header().Get("Access-Control-Allow-Origin"))

	rec = corsRequest(t, h, http.MethodGet, "https://evil.example", false)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_NoOriginPassesThrough(t *testing.T) {
	h := CORS(CORSConfig{AllowOrigins: []string{"*"}, AllowCredentials: true})(okHandler())

	rec := corsRequest(t, h, http.MethodGet, "", false)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_PreflightMaxAgeAndHeaders(t *testing.T) {
	h := CORS(CORSConfig{
		AllowOrigins: []string{"*"},
		AllowHeaders: []string{"Content-Type"},
		MaxAge:       86400,
	})(okHandler())

	rec := corsRequest(t, h, http.MethodOptions, "https://anywhere.example", true)
	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "Content-Type", rec.Header().Get("Access-Control-Allow-Headers"))
	assert.Equal(t, "86400", rec.Header().Get("Access-Control-Max-Age"))
}
