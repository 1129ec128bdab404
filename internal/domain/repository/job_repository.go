// Package repository 定义数据访问层接口
package repository

import (
	"context"

	"lesson-slides-api/internal/domain/entity"
)

// JobFilter 任务过滤条件
type JobFilter struct {
	Status entity.JobStatus
	Topic  string
}

// JobRepository 生成任务仓储接口
type JobRepository interface {
	// Create 创建任务
	Create(ctx context.Context, job *entity.GenerationJob) error

	// GetByID 根据 ID 获取任务
	GetByID(ctx context.Context, id string) (*entity.GenerationJob, error)

	// Update 更新任务
	Update(ctx context.Context, job *entity.GenerationJob) error

	// List 获取任务列表（按创建时间倒序）
	List(ctx context.Context, filter *JobFilter, pagination Pagination) (*PagedResult[*entity.GenerationJob], error)

	// GetJobStats 获取任务统计信息
	GetJobStats(ctx context.Context) (*JobStats, error)
}

// JobStats 任务统计信息
type JobStats struct {
	TotalJobs       int64 `json:"total_jobs"`
	RunningJobs     int64 `json:"running_jobs"`
	CompletedJobs   int64 `json:"completed_jobs"`
	FailedJobs      int64 `json:"failed_jobs"`
	CacheHits       int64 `json:"cache_hits"`
	TotalTokensUsed int64 `json:"total_tokens_used"`
}
