// Package main 课件生成服务入口
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lesson-slides-api/internal/application/slides"
	"lesson-slides-api/internal/config"
	"lesson-slides-api/internal/domain/repository"
	"lesson-slides-api/internal/infrastructure/llm"
	"lesson-slides-api/internal/infrastructure/persistence/postgres"
	"lesson-slides-api/internal/infrastructure/persistence/redis"
	"lesson-slides-api/internal/infrastructure/pptx"
	"lesson-slides-api/internal/interfaces/http/handler"
	"lesson-slides-api/internal/interfaces/http/middleware"
	"lesson-slides-api/internal/interfaces/http/router"
	einoobs "lesson-slides-api/internal/observability/eino"
	"lesson-slides-api/pkg/logger"
	"lesson-slides-api/pkg/tracer"

	"github.com/joho/godotenv"
)

// Version 版本信息，构建时注入
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	// 加载 .env 文件（如果存在）
	_ = godotenv.Load()

	// 加载配置
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 初始化日志
	logger.Init(
		cfg.Observability.Logging.Level,
		cfg.Observability.Logging.Format,
	)

	ctx := context.Background()
	log := logger.FromContext(ctx)
	log.Info("starting slides-svc",
		"version", Version,
		"build_time", BuildTime,
		"env", cfg.App.Env,
	)

	// 初始化追踪
	shutdown, err := tracer.Init(ctx, tracer.Config{
		ServiceName: cfg.App.Name,
		Endpoint:    cfg.Observability.Tracing.Endpoint,
		SampleRate:  cfg.Observability.Tracing.SampleRate,
		Enabled:     cfg.Observability.Tracing.Enabled,
	})
	if err != nil {
		log.Error("failed to init tracer", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := shutdown(ctx); err != nil {
			log.Error("failed to shutdown tracer", "error", err)
		}
	}()

	// 初始化 Eino 全局 callbacks（指标/追踪）
	einoobs.Init()

	// 可选组件：Redis（课件缓存与限流共用连接）
	var redisClient *redis.Client
	if cfg.Features.DeckCache.Enabled || cfg.Security.RateLimit.Enabled {
		redisClient, err = redis.NewClient(&cfg.Cache.Redis)
		if err != nil {
			logger.Fatal(ctx, "failed to connect redis", err)
		}
		defer redisClient.Close()
	}

	var deckCache *redis.Cache
	if cfg.Features.DeckCache.Enabled && redisClient != nil {
		deckCache = redis.NewCache(redisClient)
	}

	// 可选组件：Postgres 任务落库
	var (
		pgClient   *postgres.Client
		jobRepo    repository.JobRepository
		jobHandler *handler.JobHandler
	)
	if cfg.Features.JobRecording.Enabled {
		pgClient, err = postgres.NewClient(&cfg.Database.Postgres)
		if err != nil {
			logger.Fatal(ctx, "failed to connect postgres", err)
		}
		defer pgClient.Close()

		if err := pgClient.AutoMigrate(); err != nil {
			logger.Fatal(ctx, "failed to migrate database", err)
		}

		pgJobRepo := postgres.NewJobRepository(pgClient)
		jobRepo = pgJobRepo
		jobHandler = handler.NewJobHandler(pgJobRepo)
	}

	// LLM 工厂与生成链
	factory := llm.NewEinoFactory(cfg)
	generator := slides.NewSlideDeckGenerator(factory)

	// PPTX 渲染器，主题在组装时注入，运行期间不可变
	theme := pptx.ThemeFromConfig(cfg.Slides.Theme)
	renderer := pptx.NewBuilder(theme)

	deckService := slides.NewDeckService(generator, renderer, deckCache, jobRepo, slides.Options{
		Provider:  cfg.LLM.DefaultProvider,
		MaxSlides: cfg.Slides.MaxSlides,
		CacheTTL:  cfg.Features.DeckCache.TTL,
	})

	// 限流器
	var limiter middleware.RateLimiter
	if cfg.Security.RateLimit.Enabled && redisClient != nil {
		limiter = redis.NewRateLimiter(redisClient)
	}

	r := router.New(cfg, router.Handlers{
		Slides: handler.NewSlidesHandler(cfg, deckService),
		Health: handler.NewHealthHandler(cfg, pgClient, redisClient),
		Jobs:   jobHandler,
	}, limiter)

	// 创建 HTTP 服务器
	addr := fmt.Sprintf("%s:%d", cfg.Server.HTTP.Host, cfg.Server.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.HTTP.ReadTimeout,
		WriteTimeout: cfg.Server.HTTP.WriteTimeout,
		IdleTimeout:  cfg.Server.HTTP.IdleTimeout,
	}

	// 启动服务器
	go func() {
		log.Info("http server starting", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("http server error", "error", err)
			os.Exit(1)
		}
	}()

	// 等待中断信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	// 优雅关闭
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", "error", err)
	}

	log.Info("server exited")
}
