// Package entity 定义领域实体
package entity

import (
	"time"
)

// JobStatus 任务状态
type JobStatus string

const (
	JobStatusPending   JobStatus = "pending"
	JobStatusRunning   JobStatus = "running"
	JobStatusCompleted JobStatus = "completed"
	JobStatusFailed    JobStatus = "failed"
)

// GenerationJob 课件生成任务
type GenerationJob struct {
	ID             string     `json:"id"`
	Topic          string     `json:"topic"`
	Status         JobStatus  `json:"status"`
	SlideCount     int        `json:"slide_count,omitempty"`
	DeckSizeBytes  int        `json:"deck_size_bytes,omitempty"`
	CacheHit       bool       `json:"cache_hit"`
	ErrorMessage   string     `json:"error_message,omitempty"`
	LLMProvider    string     `json:"llm_provider,omitempty"`
	LLMModel       string     `json:"llm_model,omitempty"`
	TokensPrompt   int        `json:"tokens_prompt,omitempty"`
	TokensComplete int        `json:"tokens_completion,omitempty"`
	DurationMs     int        `json:"duration_ms,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	StartedAt      *time.Time `json:"started_at,omitempty"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
}

// NewGenerationJob 创建新任务
func NewGenerationJob(topic string) *GenerationJob {
	return &GenerationJob{
		Topic:     topic,
		Status:    JobStatusPending,
		CreatedAt: time.Now(),
	}
}

// Start 开始执行任务
func (j *GenerationJob) Start() {
	now := time.Now()
	j.Status = JobStatusRunning
	j.StartedAt = &now
}

// Complete 完成任务
func (j *GenerationJob) Complete(slideCount, deckSizeBytes int) {
	now := time.Now()
	j.Status = JobStatusCompleted
	j.SlideCount = slideCount
	j.DeckSizeBytes = deckSizeBytes
	j.CompletedAt = &now
	if j.StartedAt != nil {
		j.DurationMs = int(now.Sub(*j.StartedAt).Milliseconds())
	}
}

// Fail 任务失败
func (j *GenerationJob) Fail(errMsg string) {
	now := time.Now()
	j.Status = JobStatusFailed
	j.ErrorMessage = errMsg
	j.CompletedAt = &now
	if j.StartedAt != nil {
		j.DurationMs = int(now.Sub(*j.StartedAt).Milliseconds())
	}
}

// MarkCacheHit 标记命中缓存
func (j *GenerationJob) MarkCacheHit() {
	j.CacheHit = true
}

// SetLLMMetrics 设置 LLM 使用指标
func (j *GenerationJob) SetLLMMetrics(provider, model string, promptTokens, completionTokens int) {
	j.LLMProvider = provider
	j.LLMModel = model
	j.TokensPrompt = promptTokens
	j.TokensComplete = completionTokens
}
