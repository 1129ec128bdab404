// Package dto 提供 HTTP 层数据传输对象
package dto

// GenerateSlidesRequest 课件生成请求
type GenerateSlidesRequest struct {
	Topic string `json:"topic" binding:"required"`

	Provider string `json:"provider,omitempty"`
	Model    string `json:"model,omitempty"`
}
