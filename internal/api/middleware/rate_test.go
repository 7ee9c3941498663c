package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/crownweb/contact-relay/internal/api/constants"
	"github.com/crownweb/contact-relay/internal/api/dto/v1/contact"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRateLimitedRouter(config RateLimitConfig, handled *int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/send-email", RateLimitMiddleware(config), func(c *gin.Context) {
		*handled++
		c.JSON(http.StatusOK, contact.SendResponse{Success: true})
	})
	return router
}

func doRequest(router *gin.Engine, ip string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/send-email", nil)
	req.RemoteAddr = ip + ":12345"
	router.ServeHTTP(w, req)
	return w
}

func TestRateLimitWindow(t *testing.T) {
	var handled int
	router := newRateLimitedRouter(RateLimitConfig{Max: 3, Window: time.Hour}, &handled)

	for i := 0; i < 3; i++ {
		w := doRequest(router, "10.0.0.1")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, strconv.Itoa(2-i), w.Header().Get("RateLimit-Remaining"))
	}
	assert.Equal(t, 3, handled)

	// The fourth request inside the window is throttled before the handler
	w := doRequest(router, "10.0.0.1")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 3, handled, "handler must not run for a throttled request")

	var resp contact.SendResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, constants.MsgTooManyRequests, resp.Message)
}

func TestRateLimitHeaders(t *testing.T) {
	var handled int
	router := newRateLimitedRouter(RateLimitConfig{Max: 5, Window: 15 * time.Minute}, &handled)

	w := doRequest(router, "10.0.0.2")
	assert.Equal(t, "5", w.Header().Get("RateLimit-Limit"))
	assert.Equal(t, "4", w.Header().Get("RateLimit-Remaining"))

	reset, err := strconv.Atoi(w.Header().Get("RateLimit-Reset"))
	require.NoError(t, err)
	assert.Greater(t, reset, 0)
	assert.LessOrEqual(t, reset, int((15 * time.Minute).Seconds()))

	// Legacy headers stay disabled
	assert.Empty(t, w.Header().Get("X-RateLimit-Limit"))
	assert.Empty(t, w.Header().Get("X-RateLimit-Remaining"))
}

func TestRateLimitPerClientIsolation(t *testing.T) {
	var handled int
	router := newRateLimitedRouter(RateLimitConfig{Max: 1, Window: time.Hour}, &handled)

	w := doRequest(router, "10.0.0.3")
	assert.Equal(t, 1, handled)

	w = doRequest(router, "10.0.0.3")
	var resp contact.SendResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)

	// A different client address gets a fresh window
	w = doRequest(router, "10.0.0.4")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 2, handled)
}

func TestRateLimitWindowReset(t *testing.T) {
	var handled int
	router := newRateLimitedRouter(RateLimitConfig{Max: 1, Window: 50 * time.Millisecond}, &handled)

	doRequest(router, "10.0.0.5")
	w := doRequest(router, "10.0.0.5")
	var resp contact.SendResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)

	time.Sleep(60 * time.Millisecond)

	w = doRequest(router, "10.0.0.5")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success, "counter must reset after the window elapses")
}

func TestGlobalRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(GlobalRateLimitMiddleware(GlobalRateLimitConfig{RPS: 1, Burst: 2}))
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	allowed := 0
	throttled := 0
	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		router.ServeHTTP(w, req)
		if w.Body.Len() == 0 {
			allowed++
		} else {
			throttled++
		}
	}

	assert.Equal(t, 2, allowed)
	assert.Equal(t, 3, throttled)
}
