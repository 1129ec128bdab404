// Package dto 提供 HTTP 层数据传输对象
package dto

import (
	"time"

	"lesson-slides-api/internal/domain/entity"
	"lesson-slides-api/internal/domain/repository"
)

// JobResponse 任务响应
type JobResponse struct {
	ID             string    `json:"id"`
	Topic          string    `json:"topic"`
	Status         string    `json:"status"`
	SlideCount     int       `json:"slide_count,omitempty"`
	DeckSizeBytes  int       `json:"deck_size_bytes,omitempty"`
	CacheHit       bool      `json:"cache_hit"`
	ErrorMsg       string    `json:"error_msg,omitempty"`
	LLMProvider    string    `json:"llm_provider,omitempty"`
	LLMModel       string    `json:"llm_model,omitempty"`
	TokensPrompt   int       `json:"tokens_prompt,omitempty"`
	TokensComplete int       `json:"tokens_completion,omitempty"`
	DurationMs     int       `json:"duration_ms,omitempty"`
	StartedAt      time.Time `json:"started_at,omitempty"`
	CompletedAt    time.Time `json:"completed_at,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// JobListResponse 任务列表响应
type JobListResponse struct {
	Jobs []*JobResponse `json:"jobs"`
}

// JobStatsResponse 任务统计响应
type JobStatsResponse struct {
	TotalJobs       int64 `json:"total_jobs"`
	RunningJobs     int64 `json:"running_jobs"`
	CompletedJobs   int64 `json:"completed_jobs"`
	FailedJobs      int64 `json:"failed_jobs"`
	CacheHits       int64 `json:"cache_hits"`
	TotalTokensUsed int64 `json:"total_tokens_used"`
}

// ToJobResponse 将领域实体转换为响应 DTO
func ToJobResponse(j *entity.GenerationJob) *JobResponse {
	if j == nil {
		return nil
	}

	resp := &JobResponse{
		ID:             j.ID,
		Topic:          j.Topic,
		Status:         string(j.Status),
		SlideCount:     j.SlideCount,
		DeckSizeBytes:  j.DeckSizeBytes,
		CacheHit:       j.CacheHit,
		ErrorMsg:       j.ErrorMessage,
		LLMProvider:    j.LLMProvider,
		LLMModel:       j.LLMModel,
		TokensPrompt:   j.TokensPrompt,
		TokensComplete: j.TokensComplete,
		DurationMs:     j.DurationMs,
		CreatedAt:      j.CreatedAt,
		UpdatedAt:      j.UpdatedAt,
	}

	if j.StartedAt != nil {
		resp.StartedAt = *j.StartedAt
	}
	if j.CompletedAt != nil {
		resp.CompletedAt = *j.CompletedAt
	}

	return resp
}

// ToJobListResponse 将领域实体列表转换为响应 DTO
func ToJobListResponse(jobs []*entity.GenerationJob) *JobListResponse {
	resp := &JobListResponse{
		Jobs: make([]*JobResponse, 0, len(jobs)),
	}

	for _, j := range jobs {
		resp.Jobs = append(resp.Jobs, ToJobResponse(j))
	}

	return resp
}

// ToJobStatsResponse 将仓储统计转换为响应 DTO
func ToJobStatsResponse(s *repository.JobStats) *JobStatsResponse {
	if s == nil {
		return nil
	}
	return &JobStatsResponse{
		TotalJobs:       s.TotalJobs,
		RunningJobs:     s.RunningJobs,
		CompletedJobs:   s.CompletedJobs,
		FailedJobs:      s.FailedJobs,
		CacheHits:       s.CacheHits,
		TotalTokensUsed: s.TotalTokensUsed,
	}
}
