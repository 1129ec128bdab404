package pptx

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"lesson-slides-api/internal/config"
)

func TestThemeFromConfigOverrides(t *testing.T) {
	theme := ThemeFromConfig(config.ThemeConfig{
		Primary: "FF123456",
		Accent:  "FF654321",
	})

	assert.Equal(t, "FF123456", theme.Primary)
	assert.Equal(t, "FF654321", theme.Accent)

	def := DefaultTheme()
	assert.Equal(t, def.Question, theme.Question)
	assert.Equal(t, def.Activity, theme.Activity)
	assert.Equal(t, def.PanelFill, theme.PanelFill)
	assert.Equal(t, def.SlideNumber, theme.SlideNumber)
}

func TestThemeFromConfigEmpty(t *testing.T) {
	assert.Equal(t, DefaultTheme(), ThemeFromConfig(config.ThemeConfig{}))
}
