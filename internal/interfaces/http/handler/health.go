// Package handler 提供 HTTP 请求处理器
package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"lesson-slides-api/internal/config"
	"lesson-slides-api/internal/infrastructure/persistence/postgres"
	"lesson-slides-api/internal/infrastructure/persistence/redis"
)

// HealthHandler 健康检查处理器
type HealthHandler struct {
	cfg   *config.Config
	pg    *postgres.Client
	redis *redis.Client
}

// NewHealthHandler 创建健康检查处理器。
// pg 和 redis 可为 nil，表示对应组件未启用。
func NewHealthHandler(cfg *config.Config, pg *postgres.Client, redisClient *redis.Client) *HealthHandler {
	return &HealthHandler{
		cfg:   cfg,
		pg:    pg,
		redis: redisClient,
	}
}

// HealthResponse 健康检查响应
type HealthResponse struct {
	Status              string `json:"status"`
	LLMAPIKeyConfigured bool   `json:"llm_api_key_configured"`
}

type readinessCheck struct {
	Status    string `json:"status"`
	Error     string `json:"error,omitempty"`
	LatencyMs int64  `json:"latency_ms,omitempty"`
}

type readinessResponse struct {
	Status string                     `json:"status"`
	Checks map[string]*readinessCheck `json:"checks,omitempty"`
}

// llmAPIKeyConfigured 检查默认 Provider 是否配置了 API Key
func (h *HealthHandler) llmAPIKeyConfigured() bool {
	if h == nil || h.cfg == nil {
		return false
	}
	providerCfg, ok := h.cfg.LLM.Providers[h.cfg.LLM.DefaultProvider]
	if !ok {
		return false
	}
	return strings.TrimSpace(providerCfg.APIKey) != ""
}

// Health 健康检查接口
// @Summary 健康检查
// @Description 检查服务健康状态及 LLM 密钥配置情况
// @Tags System
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /api/health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:              "healthy",
		LLMAPIKeyConfigured: h.llmAPIKeyConfigured(),
	})
}

// Ready 就绪检查接口
// @Summary 就绪检查
// @Description 检查服务是否可以接收流量
// @Tags System
// @Produce json
// @Success 200 {object} readinessResponse
// @Failure 503 {object} readinessResponse
// @Router /ready [get]
func (h *HealthHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	checks := map[string]*readinessCheck{
		"postgres": {Status: "disabled"},
		"redis":    {Status: "disabled"},
	}

	ready := true

	// Postgres（可选，启用后必须可达）
	if h != nil && h.pg != nil {
		start := time.Now()
		err := h.pg.HealthCheck(ctx)
		checks["postgres"].LatencyMs = time.Since(start).Milliseconds()
		if err != nil {
			checks["postgres"].Status = "error"
			checks["postgres"].Error = err.Error()
			ready = false
		} else {
			checks["postgres"].Status = "ok"
		}
	}

	// Redis（可选，启用后必须可达）
	if h != nil && h.redis != nil {
		start := time.Now()
		err := h.redis.HealthCheck(ctx)
		checks["redis"].LatencyMs = time.Since(start).Milliseconds()
		if err != nil {
			checks["redis"].Status = "error"
			checks["redis"].Error = err.Error()
			ready = false
		} else {
			checks["redis"].Status = "ok"
		}
	}

	resp := readinessResponse{
		Status: "ok",
		Checks: checks,
	}
	if !ready {
		resp.Status = "not_ready"
		c.JSON(http.StatusServiceUnavailable, resp)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Live 存活检查接口
// @Summary 存活检查
// @Description 检查服务是否存活
// @Tags System
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /live [get]
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
