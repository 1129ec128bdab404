// Package postgres 提供 PostgreSQL Repository 实现
package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"lesson-slides-api/internal/domain/entity"
	"lesson-slides-api/internal/domain/repository"
)

// JobRepository 生成任务仓储实现
type JobRepository struct {
	client *Client
}

// NewJobRepository 创建任务仓储
func NewJobRepository(client *Client) *JobRepository {
	return &JobRepository{client: client}
}

// Create 创建任务
func (r *JobRepository) Create(ctx context.Context, job *entity.GenerationJob) error {
	ctx, span := tracer.Start(ctx, "postgres.JobRepository.Create")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Create(job).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create job: %w", err)
	}
	return nil
}

// GetByID 根据 ID 获取任务，不存在时返回 (nil, nil)
func (r *JobRepository) GetByID(ctx context.Context, id string) (*entity.GenerationJob, error) {
	ctx, span := tracer.Start(ctx, "postgres.JobRepository.GetByID")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var job entity.GenerationJob
	if err := db.First(&job, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	return &job, nil
}

// Update 更新任务
func (r *JobRepository) Update(ctx context.Context, job *entity.GenerationJob) error {
	ctx, span := tracer.Start(ctx, "postgres.JobRepository.Update")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Save(job).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to update job: %w", err)
	}
	return nil
}

// List 获取任务列表（按创建时间倒序）
func (r *JobRepository) List(ctx context.Context, filter *repository.JobFilter, pagination repository.Pagination) (*repository.PagedResult[*entity.GenerationJob], error) {
	ctx, span := tracer.Start(ctx, "postgres.JobRepository.List")
	defer span.End()

	db := getDB(ctx, r.client.db)
	query := db.Model(&entity.GenerationJob{})

	// 应用过滤条件
	if filter != nil {
		if filter.Status != "" {
			query = query.Where("status = ?", filter.Status)
		}
		if filter.Topic != "" {
			query = query.Where("topic ILIKE ?", "%"+filter.Topic+"%")
		}
	}

	// 获取总数
	var total int64
	if err := query.Count(&total).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to count jobs: %w", err)
	}

	// 获取列表
	var jobs []*entity.GenerationJob
	if err := query.Order("created_at DESC").
		Offset(pagination.Offset()).
		Limit(pagination.Limit()).
		Find(&jobs).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}

	return repository.NewPagedResult(jobs, total, pagination), nil
}

// GetJobStats 获取任务统计信息
func (r *JobRepository) GetJobStats(ctx context.Context) (*repository.JobStats, error) {
	ctx, span := tracer.Start(ctx, "postgres.JobRepository.GetJobStats")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var stats repository.JobStats

	if err := db.Model(&entity.GenerationJob{}).Count(&stats.TotalJobs).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to count jobs: %w", err)
	}

	// 按状态统计
	db.Model(&entity.GenerationJob{}).Where("status = ?", entity.JobStatusRunning).Count(&stats.RunningJobs)
	db.Model(&entity.GenerationJob{}).Where("status = ?", entity.JobStatusCompleted).Count(&stats.CompletedJobs)
	db.Model(&entity.GenerationJob{}).Where("status = ?", entity.JobStatusFailed).Count(&stats.FailedJobs)
	db.Model(&entity.GenerationJob{}).Where("cache_hit = ?", true).Count(&stats.CacheHits)

	// Token 使用统计
	var tokensUsed *int64
	db.Model(&entity.GenerationJob{}).Select("SUM(tokens_prompt + tokens_complete)").Scan(&tokensUsed)
	if tokensUsed != nil {
		stats.TotalTokensUsed = *tokensUsed
	}

	return &stats, nil
}
