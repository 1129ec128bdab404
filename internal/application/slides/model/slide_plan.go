// Package model 提供 slides 应用层的稳定 DTO/结构定义。
package model

// Slide 单页幻灯片内容。Content 为 • 前缀、\n 分隔的要点文本。
type Slide struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle,omitempty"`
	Content  string `json:"content,omitempty"`
}

// SlidePlan 课件生成结果（有序幻灯片列表，首页为标题页）
type SlidePlan struct {
	Slides []Slide `json:"slides"`
}
