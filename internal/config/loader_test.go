package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandEnv(t *testing.T) {
	t.Setenv("TEST_LOADER_SET", "from-env")
	os.Unsetenv("TEST_LOADER_UNSET")

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"env wins over default", "${TEST_LOADER_SET:fallback}", "from-env"},
		{"default when unset", "${TEST_LOADER_UNSET:fallback}", "fallback"},
		{"empty default", "${TEST_LOADER_UNSET:}", ""},
		{"no default keeps placeholder", "${TEST_LOADER_UNSET}", "${TEST_LOADER_UNSET}"},
		{"embedded in yaml", "host: ${TEST_LOADER_SET:x}\nport: ${TEST_LOADER_UNSET:8000}", "host: from-env\nport: 8000"},
		{"default with url", "${TEST_LOADER_UNSET:https://example.com/v1beta/openai/}", "https://example.com/v1beta/openai/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, expandEnv(tt.in))
		})
	}
}

func TestLoadMergesEnvOverlay(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "configs"), 0o755))

	base := `
app:
  name: lesson-slides-api
  env: ${APP_ENV:development}
llm:
  default_provider: gemini
  providers:
    gemini:
      api_key: ${TEST_LOADER_API_KEY:}
      model: gemini-2.0-flash
      temperature: 0.7
features:
  deck_cache:
    enabled: false
    ttl: 1h
`
	overlay := `
llm:
  default_provider: openai
  providers:
    openai:
      model: gpt-4o-mini
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "configs", "config.yaml"), []byte(base), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "configs", "config.test.yaml"), []byte(overlay), 0o644))

	t.Chdir(dir)
	t.Setenv("APP_ENV", "test")
	t.Setenv("TEST_LOADER_API_KEY", "sk-test-123")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "lesson-slides-api", cfg.App.Name)
	assert.Equal(t, "test", cfg.App.Env)
	assert.Equal(t, "openai", cfg.LLM.DefaultProvider, "overlay overrides base")
	assert.Equal(t, "sk-test-123", cfg.LLM.Providers["gemini"].APIKey, "placeholder expanded from env")
	assert.Equal(t, "gpt-4o-mini", cfg.LLM.Providers["openai"].Model)
	assert.Equal(t, time.Hour, cfg.Features.DeckCache.TTL)

	// setDefaults 兜底未在文件中出现的键
	assert.Equal(t, 8000, cfg.Server.HTTP.Port)
	assert.Equal(t, 20, cfg.Slides.MaxSlides)
}

func TestLoadMissingBaseConfig(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "configs/config.yaml")
}
