// Package pptx 使用 GoPPT 将幻灯片计划渲染为 PPTX 二进制。
package pptx

import "lesson-slides-api/internal/config"

// Theme 演示文稿配色（AARRGGBB）。组装时一次性构造，渲染期间只读。
type Theme struct {
	Primary     string
	Accent      string
	Question    string
	Activity    string
	PanelFill   string
	SlideNumber string
}

// DefaultTheme 深蓝主色调的教学课件配色
func DefaultTheme() Theme {
	return Theme{
		Primary:     "FF2F5597",
		Accent:      "FFC00000",
		Question:    "FF7030A0",
		Activity:    "FF00B050",
		PanelFill:   "FFF2F2F2",
		SlideNumber: "FFFFFFFF",
	}
}

// ThemeFromConfig 从配置构造主题，缺省字段回退到默认配色
func ThemeFromConfig(cfg config.ThemeConfig) Theme {
	theme := DefaultTheme()
	if cfg.Primary != "" {
		theme.Primary = cfg.Primary
	}
	if cfg.Accent != "" {
		theme.Accent = cfg.Accent
	}
	if cfg.Question != "" {
		theme.Question = cfg.Question
	}
	if cfg.Activity != "" {
		theme.Activity = cfg.Activity
	}
	if cfg.PanelFill != "" {
		theme.PanelFill = cfg.PanelFill
	}
	if cfg.SlideNumber != "" {
		theme.SlideNumber = cfg.SlideNumber
	}
	return theme
}
