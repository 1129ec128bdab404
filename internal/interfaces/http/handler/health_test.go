package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lesson-slides-api/internal/config"
)

func healthGet(h *HealthHandler, register func(*gin.Engine, *HealthHandler), path string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	register(engine, h)
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestHealthReportsAPIKeyConfigured(t *testing.T) {
	cfg := testConfig()
	cfg.LLM.Providers["gemini"] = config.ProviderConfig{APIKey: "sk-test", Model: "gemini-2.0-flash"}
	h := NewHealthHandler(cfg, nil, nil)

	w := healthGet(h, func(e *gin.Engine, h *HealthHandler) {
		e.GET("/api/health", h.Health)
	}, "/api/health")

	require.Equal(t, http.StatusOK, w.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
	assert.True(t, resp.LLMAPIKeyConfigured)
}

func TestHealthReportsMissingAPIKey(t *testing.T) {
	h := NewHealthHandler(testConfig(), nil, nil)

	w := healthGet(h, func(e *gin.Engine, h *HealthHandler) {
		e.GET("/api/health", h.Health)
	}, "/api/health")

	require.Equal(t, http.StatusOK, w.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
	assert.False(t, resp.LLMAPIKeyConfigured)
}

func TestReadyWithDisabledDependencies(t *testing.T) {
	h := NewHealthHandler(testConfig(), nil, nil)

	w := healthGet(h, func(e *gin.Engine, h *HealthHandler) {
		e.GET("/ready", h.Ready)
	}, "/ready")

	require.Equal(t, http.StatusOK, w.Code)

	var resp readinessResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "disabled", resp.Checks["postgres"].Status)
	assert.Equal(t, "disabled", resp.Checks["redis"].Status)
}

func TestLive(t *testing.T) {
	h := NewHealthHandler(testConfig(), nil, nil)

	w := healthGet(h, func(e *gin.Engine, h *HealthHandler) {
		e.GET("/live", h.Live)
	}, "/live")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}
