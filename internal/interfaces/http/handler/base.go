package handler

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"lesson-slides-api/internal/config"
	"lesson-slides-api/internal/interfaces/http/dto"
	"lesson-slides-api/pkg/errors"
)

// resolveProviderModel 解析 LLM Provider 和 Model
func resolveProviderModel(cfg *config.Config, provider, model string) (string, string, error) {
	if cfg == nil {
		return "", "", fmt.Errorf("server config not configured")
	}

	p := strings.TrimSpace(provider)
	if p == "" {
		p = strings.TrimSpace(cfg.LLM.DefaultProvider)
	}
	if p == "" {
		return "", "", fmt.Errorf("llm provider not specified")
	}
	if len(p) > 32 {
		return "", "", fmt.Errorf("llm provider too long")
	}

	providerCfg, ok := cfg.LLM.Providers[p]
	if !ok {
		return "", "", fmt.Errorf("llm provider not found: %s", p)
	}

	m := strings.TrimSpace(model)
	if m == "" {
		m = strings.TrimSpace(providerCfg.Model)
	}
	if len(m) > 64 {
		return "", "", fmt.Errorf("llm model too long")
	}
	return p, m, nil
}

// respondAppError 按 AppError 的 HTTP 状态码返回错误响应
func respondAppError(c *gin.Context, appErr *errors.AppError) {
	dto.ErrorWithDetail(c, appErr.HTTPStatus, appErr.Message, &dto.ErrorDetail{
		ErrorCode: string(appErr.Code),
	})
}
