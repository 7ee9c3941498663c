package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newCORSRouter(origins []string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(CORS(origins))
	router.POST("/send-email", func(c *gin.Context) { c.Status(http.StatusOK) })
	return router
}

func doCORSRequest(router *gin.Engine, method, origin string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, "/send-email", nil)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	router.ServeHTTP(w, req)
	return w
}

func TestCORSAllowedOrigin(t *testing.T) {
	router := newCORSRouter([]string{"https://example.com"})

	w := doCORSRequest(router, http.MethodPost, "https://example.com")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://example.com", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSDisallowedOrigin(t *testing.T) {
	router := newCORSRouter([]string{"https://example.com"})

	w := doCORSRequest(router, http.MethodPost, "https://evil.example")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSNoOriginPassesThrough(t *testing.T) {
	// Same-origin and non-browser requests carry no Origin header
	router := newCORSRouter([]string{"https://example.com"})

	w := doCORSRequest(router, http.MethodPost, "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCORSPreflight(t *testing.T) {
	router := newCORSRouter([]string{"https://example.com"})

	w := doCORSRequest(router, http.MethodOptions, "https://example.com")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "POST")
}
