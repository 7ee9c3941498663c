package routes

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/crownweb/contact-relay/internal/api/constants"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFallbackRouter(t *testing.T) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	staticDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(staticDir, "index.html"), []byte("<html>home</html>"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(staticDir, "site.css"), []byte("body{}"), 0644))

	router := gin.New()
	SetupFallbackRoutes(router, staticDir)
	return router, staticDir
}

func getPath(router *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	router.ServeHTTP(w, req)
	return w
}

func TestStaticRoot(t *testing.T) {
	router, _ := newFallbackRouter(t)

	w := getPath(router, http.MethodGet, "/")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "home")
}

func TestStaticAsset(t *testing.T) {
	router, _ := newFallbackRouter(t)

	w := getPath(router, http.MethodGet, "/site.css")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "body{}", w.Body.String())
}

func TestUnknownRouteReturns404JSON(t *testing.T) {
	router, _ := newFallbackRouter(t)

	w := getPath(router, http.MethodGet, "/no-such-page")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t,
		`{"success":false,"message":"`+constants.MsgRouteNotFound+`"}`,
		w.Body.String(),
	)
}

func TestUnknownMethodReturns404JSON(t *testing.T) {
	router, _ := newFallbackRouter(t)

	// Static serving is for GET/HEAD only
	w := getPath(router, http.MethodPost, "/site.css")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestStaticTraversalBlocked(t *testing.T) {
	router, staticDir := newFallbackRouter(t)

	secret := filepath.Join(filepath.Dir(staticDir), "secret.txt")
	require.NoError(t, os.WriteFile(secret, []byte("secret"), 0644))

	w := getPath(router, http.MethodGet, "/../secret.txt")
	assert.NotEqual(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "secret")
}
