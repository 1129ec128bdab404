// Package router 提供 HTTP 路由配置
package router

import (
	"net/http"

	"lesson-slides-api/internal/config"
	"lesson-slides-api/internal/interfaces/http/handler"
	"lesson-slides-api/internal/interfaces/http/middleware"
	"lesson-slides-api/internal/interfaces/http/web"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handlers 路由依赖的处理器集合
type Handlers struct {
	Slides *handler.SlidesHandler
	Health *handler.HealthHandler
	// Jobs 可为 nil，表示任务落库未启用，相关路由不注册
	Jobs *handler.JobHandler
}

// Router HTTP 路由器
type Router struct {
	engine   *gin.Engine
	cfg      *config.Config
	handlers Handlers
	limiter  middleware.RateLimiter
}

// New 创建新的路由器
func New(cfg *config.Config, handlers Handlers, limiter middleware.RateLimiter) *Router {
	// 设置 Gin 模式
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	r := &Router{
		engine:   engine,
		cfg:      cfg,
		handlers: handlers,
		limiter:  limiter,
	}

	r.setupMiddleware()
	r.setupRoutes()

	return r
}

// Engine 返回 Gin Engine
func (r *Router) Engine() *gin.Engine {
	return r.engine
}

// setupMiddleware 配置中间件
func (r *Router) setupMiddleware() {
	// 基础中间件
	r.engine.Use(middleware.Recovery())
	r.engine.Use(middleware.RequestID())

	// CORS 中间件
	r.engine.Use(middleware.CORS(middleware.CORSConfig{
		AllowedOrigins:   r.cfg.Security.CORS.AllowedOrigins,
		AllowedMethods:   r.cfg.Security.CORS.AllowedMethods,
		AllowedHeaders:   r.cfg.Security.CORS.AllowedHeaders,
		AllowCredentials: r.cfg.Security.CORS.AllowCredentials,
	}))

	// 追踪中间件
	if r.cfg.Observability.Tracing.Enabled {
		r.engine.Use(middleware.Trace(r.cfg.App.Name))
		r.engine.Use(middleware.TraceContext())
	}

	// 指标中间件
	if r.cfg.Observability.Metrics.Enabled {
		r.engine.Use(middleware.Metrics())
	}

	// 限流中间件
	r.engine.Use(middleware.RateLimit(middleware.RateLimitConfig{
		Enabled:           r.cfg.Security.RateLimit.Enabled,
		RequestsPerSecond: r.cfg.Security.RateLimit.RequestsPerSecond,
	}, r.limiter))
}

// setupRoutes 配置路由
func (r *Router) setupRoutes() {
	// 内嵌首页
	if index, err := web.IndexHTML(); err == nil {
		r.engine.GET("/", func(c *gin.Context) {
			c.Data(http.StatusOK, "text/html; charset=utf-8", index)
		})
	}

	// 系统端点
	r.engine.GET("/api/health", r.handlers.Health.Health)
	r.engine.GET("/ready", r.handlers.Health.Ready)
	r.engine.GET("/live", r.handlers.Health.Live)

	// Prometheus 指标端点
	if r.cfg.Observability.Metrics.Enabled {
		r.engine.GET(r.cfg.Observability.Metrics.Path, gin.WrapH(promhttp.Handler()))
	}

	api := r.engine.Group("/api")
	{
		// 课件生成
		api.POST("/generate-slides", r.handlers.Slides.GenerateSlides)

		// 任务查询
		if r.handlers.Jobs != nil {
			jobs := api.Group("/jobs")
			{
				jobs.GET("", r.handlers.Jobs.ListJobs)
				jobs.GET("/stats", r.handlers.Jobs.GetJobStats)
				jobs.GET("/:jid", r.handlers.Jobs.GetJob)
			}
		}
	}
}
