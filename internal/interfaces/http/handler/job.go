// Package handler 提供 HTTP 请求处理器
package handler

import (
	"lesson-slides-api/internal/domain/entity"
	"lesson-slides-api/internal/domain/repository"
	"lesson-slides-api/internal/interfaces/http/dto"
	"lesson-slides-api/pkg/logger"

	"github.com/gin-gonic/gin"
)

// JobHandler 任务处理器
type JobHandler struct {
	jobRepo repository.JobRepository
}

// NewJobHandler 创建任务处理器
func NewJobHandler(jobRepo repository.JobRepository) *JobHandler {
	return &JobHandler{
		jobRepo: jobRepo,
	}
}

// GetJob 获取任务详情
// @Summary 获取任务详情
// @Description 获取指定生成任务的详细信息和状态
// @Tags Jobs
// @Accept json
// @Produce json
// @Param jid path string true "任务 ID"
// @Success 200 {object} dto.Response[dto.JobResponse]
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/jobs/{jid} [get]
func (h *JobHandler) GetJob(c *gin.Context) {
	ctx := c.Request.Context()
	jobID := dto.BindJobID(c)

	job, err := h.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		logger.Error(ctx, "failed to get job", err)
		dto.InternalError(c, "failed to get job")
		return
	}

	if job == nil {
		dto.NotFound(c, "job not found")
		return
	}

	resp := dto.ToJobResponse(job)
	dto.Success(c, resp)
}

// ListJobs 获取任务列表
// @Summary 获取任务列表
// @Description 按创建时间倒序列出生成任务，支持状态与主题过滤
// @Tags Jobs
// @Accept json
// @Produce json
// @Param status query string false "任务状态过滤"
// @Param topic query string false "主题模糊过滤"
// @Param page query int false "页码"
// @Param page_size query int false "每页数量"
// @Success 200 {object} dto.Response[dto.JobListResponse]
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/jobs [get]
func (h *JobHandler) ListJobs(c *gin.Context) {
	ctx := c.Request.Context()
	pageReq := dto.BindPage(c)

	status := c.Query("status")
	topic := c.Query("topic")

	var filter *repository.JobFilter
	if status != "" || topic != "" {
		filter = &repository.JobFilter{
			Status: entity.JobStatus(status),
			Topic:  topic,
		}
	}

	result, err := h.jobRepo.List(ctx, filter, repository.NewPagination(pageReq.Page, pageReq.PageSize))
	if err != nil {
		logger.Error(ctx, "failed to list jobs", err)
		dto.InternalError(c, "failed to list jobs")
		return
	}

	resp := dto.ToJobListResponse(result.Items)
	meta := dto.NewPageMeta(pageReq.Page, pageReq.PageSize, int(result.Total))
	dto.SuccessWithPage(c, resp, meta)
}

// GetJobStats 获取任务统计
// @Summary 获取任务统计
// @Description 获取生成任务的汇总统计信息
// @Tags Jobs
// @Accept json
// @Produce json
// @Success 200 {object} dto.Response[dto.JobStatsResponse]
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/jobs/stats [get]
func (h *JobHandler) GetJobStats(c *gin.Context) {
	ctx := c.Request.Context()

	stats, err := h.jobRepo.GetJobStats(ctx)
	if err != nil {
		logger.Error(ctx, "failed to get job stats", err)
		dto.InternalError(c, "failed to get job stats")
		return
	}

	dto.Success(c, dto.ToJobStatsResponse(stats))
}
