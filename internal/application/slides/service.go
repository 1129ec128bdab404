package slides

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/google/uuid"

	slidesmodel "lesson-slides-api/internal/application/slides/model"
	"lesson-slides-api/internal/domain/entity"
	"lesson-slides-api/internal/domain/repository"
	"lesson-slides-api/internal/infrastructure/persistence/redis"
	wfmodel "lesson-slides-api/internal/workflow/model"
	apperrors "lesson-slides-api/pkg/errors"
	"lesson-slides-api/pkg/logger"
	"lesson-slides-api/pkg/metrics"
)

// PlanGenerator 生成幻灯片内容计划
type PlanGenerator interface {
	Generate(ctx context.Context, in *wfmodel.DeckGenerateInput) (*DeckGenerateOutput, error)
}

// DeckRenderer 将内容计划渲染为 PPTX 字节
type DeckRenderer interface {
	Render(ctx context.Context, plan *slidesmodel.SlidePlan) ([]byte, error)
}

// Options 服务级配置，由组装层注入
type Options struct {
	Provider  string
	Model     string
	MaxSlides int
	CacheTTL  time.Duration
}

// DeckService 课件生成编排服务。
// cache/jobs 为 nil 时对应能力按关闭处理，不影响主流程。
type DeckService struct {
	generator PlanGenerator
	renderer  DeckRenderer
	cache     *redis.Cache
	jobs      repository.JobRepository
	opts      Options
}

func NewDeckService(generator PlanGenerator, renderer DeckRenderer, cache *redis.Cache, jobs repository.JobRepository, opts Options) *DeckService {
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = time.Hour
	}
	return &DeckService{
		generator: generator,
		renderer:  renderer,
		cache:     cache,
		jobs:      jobs,
		opts:      opts,
	}
}

type GenerateDeckInput struct {
	Topic    string
	Provider string
	Model    string
}

type GenerateDeckResult struct {
	Deck       []byte
	SlideCount int
	FromCache  bool
	JobID      string
	Meta       wfmodel.LLMUsageMeta
}

// GenerateDeck 生成课件并返回 PPTX 字节，内容计划经校验后再渲染。
func (s *DeckService) GenerateDeck(ctx context.Context, in GenerateDeckInput) (*GenerateDeckResult, error) {
	topic := strings.TrimSpace(in.Topic)
	if topic == "" {
		return nil, apperrors.New(apperrors.CodeInvalidParam, "topic is required")
	}

	metrics.ActiveGenerations.Inc()
	defer metrics.ActiveGenerations.Dec()

	start := time.Now()
	job := s.createJob(ctx, in.Topic)

	var (
		out        *DeckGenerateOutput
		slideCount int
		loaded     bool
	)

	load := func() ([]byte, error) {
		loaded = true
		var err error
		out, err = s.buildPlan(ctx, topic, in.Provider, in.Model)
		if err != nil {
			return nil, err
		}
		slideCount = len(out.Plan.Slides)

		deck, err := s.renderer.Render(ctx, out.Plan)
		if err != nil {
			return nil, apperrors.Wrap(err, apperrors.CodeRenderFailed, "failed to render presentation")
		}
		return deck, nil
	}

	var deck []byte
	var err error
	if s.cache != nil {
		key := deckCacheKey(topic)
		deck, err = s.cache.GetOrLoadSafe(ctx, key, s.opts.CacheTTL, load)
		switch {
		case err == nil && loaded:
			metrics.CacheRequestsTotal.WithLabelValues("miss").Inc()
		case err == nil:
			metrics.CacheRequestsTotal.WithLabelValues("hit").Inc()
		case !loaded:
			// Redis 故障时绕过缓存直接生成
			metrics.CacheRequestsTotal.WithLabelValues("error").Inc()
			logger.Warn(ctx, "deck cache unavailable, generating without cache",
				"topic", topic,
				"error", err.Error(),
			)
			deck, err = load()
		}
	} else {
		deck, err = load()
	}

	duration := time.Since(start)
	if err != nil {
		metrics.DeckGenerationTotal.WithLabelValues("error").Inc()
		metrics.DeckGenerationDuration.WithLabelValues("error").Observe(duration.Seconds())
		s.failJob(ctx, job, out, err)
		return nil, err
	}

	fromCache := !loaded
	metrics.DeckGenerationTotal.WithLabelValues("success").Inc()
	metrics.DeckGenerationDuration.WithLabelValues("success").Observe(duration.Seconds())
	metrics.DeckSizeBytes.Observe(float64(len(deck)))
	if loaded {
		metrics.DeckSlideCount.Observe(float64(slideCount))
	}

	s.completeJob(ctx, job, out, fromCache, slideCount, len(deck))

	result := &GenerateDeckResult{
		Deck:       deck,
		SlideCount: slideCount,
		FromCache:  fromCache,
	}
	if job != nil {
		result.JobID = job.ID
	}
	if out != nil {
		result.Meta = out.Meta
	}
	return result, nil
}

func (s *DeckService) buildPlan(ctx context.Context, topic, provider, model string) (*DeckGenerateOutput, error) {
	if provider == "" {
		provider = s.opts.Provider
	}
	if model == "" {
		model = s.opts.Model
	}

	out, err := s.generator.Generate(ctx, &wfmodel.DeckGenerateInput{
		Topic:    topic,
		Provider: provider,
		Model:    model,
	})
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeGenerationFailed, "failed to generate slide content")
	}

	if err := ValidateSlidePlan(out.Plan, s.opts.MaxSlides); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodePlanInvalid, "slide plan validation failed")
	}
	return out, nil
}

// deckCacheKey 以去除首尾空白后的主题做 SHA-256，避免键中出现任意用户输入
func deckCacheKey(topic string) string {
	sum := sha256.Sum256([]byte(topic))
	return "deck:" + hex.EncodeToString(sum[:])
}

func (s *DeckService) createJob(ctx context.Context, topic string) *entity.GenerationJob {
	if s.jobs == nil {
		return nil
	}

	job := entity.NewGenerationJob(topic)
	job.ID = uuid.NewString()
	job.Start()
	if err := s.jobs.Create(ctx, job); err != nil {
		logger.Warn(ctx, "failed to record generation job",
			"job_id", job.ID,
			"error", err.Error(),
		)
		return nil
	}
	return job
}

func (s *DeckService) completeJob(ctx context.Context, job *entity.GenerationJob, out *DeckGenerateOutput, fromCache bool, slideCount, deckSize int) {
	if s.jobs == nil || job == nil {
		return
	}

	if fromCache {
		job.MarkCacheHit()
	}
	if out != nil {
		job.SetLLMMetrics(out.Meta.Provider, out.Meta.Model, out.Meta.PromptTokens, out.Meta.CompletionTokens)
	}
	job.Complete(slideCount, deckSize)
	if err := s.jobs.Update(ctx, job); err != nil {
		logger.Warn(ctx, "failed to update generation job",
			"job_id", job.ID,
			"error", err.Error(),
		)
	}
}

func (s *DeckService) failJob(ctx context.Context, job *entity.GenerationJob, out *DeckGenerateOutput, genErr error) {
	if s.jobs == nil || job == nil {
		return
	}

	if out != nil {
		job.SetLLMMetrics(out.Meta.Provider, out.Meta.Model, out.Meta.PromptTokens, out.Meta.CompletionTokens)
	}
	job.Fail(genErr.Error())
	if err := s.jobs.Update(ctx, job); err != nil {
		logger.Warn(ctx, "failed to update generation job",
			"job_id", job.ID,
			"error", err.Error(),
		)
	}
}
