// Package handler 提供 HTTP 请求处理器
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lesson-slides-api/internal/application/slides"
	"lesson-slides-api/internal/config"
	"lesson-slides-api/internal/interfaces/http/dto"
	"lesson-slides-api/pkg/errors"
	"lesson-slides-api/pkg/logger"
)

// pptxContentType PPTX 的 MIME 类型
const pptxContentType = "application/vnd.openxmlformats-officedocument.presentationml.presentation"

// SlidesHandler 课件生成处理器
type SlidesHandler struct {
	cfg *config.Config
	svc *slides.DeckService
}

// NewSlidesHandler 创建课件生成处理器
func NewSlidesHandler(cfg *config.Config, svc *slides.DeckService) *SlidesHandler {
	return &SlidesHandler{
		cfg: cfg,
		svc: svc,
	}
}

// GenerateSlides 生成课件
// @Summary 生成课件
// @Description 根据课程主题生成 PPTX 课件并以二进制返回
// @Tags Slides
// @Accept json
// @Produce application/vnd.openxmlformats-officedocument.presentationml.presentation
// @Param request body dto.GenerateSlidesRequest true "生成请求"
// @Success 200 {file} binary
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/generate-slides [post]
func (h *SlidesHandler) GenerateSlides(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.GenerateSlidesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "topic is required")
		return
	}

	provider, model, err := resolveProviderModel(h.cfg, req.Provider, req.Model)
	if err != nil {
		dto.BadRequest(c, err.Error())
		return
	}

	result, err := h.svc.GenerateDeck(ctx, slides.GenerateDeckInput{
		Topic:    req.Topic,
		Provider: provider,
		Model:    model,
	})
	if err != nil {
		appErr := errors.AsAppError(err)
		if appErr.HTTPStatus >= http.StatusInternalServerError {
			logger.Error(ctx, "failed to generate presentation", err, "provider", provider, "model", model)
		}
		respondAppError(c, appErr)
		return
	}

	logger.Info(ctx, "presentation generated",
		"slide_count", result.SlideCount,
		"size_bytes", len(result.Deck),
		"from_cache", result.FromCache,
		"job_id", result.JobID,
	)

	c.Header("Content-Disposition", `attachment; filename=presentation.pptx`)
	c.Data(http.StatusOK, pptxContentType, result.Deck)
}
