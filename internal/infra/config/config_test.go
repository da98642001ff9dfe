package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("LLM_PROVIDER", "")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":5000", cfg.HTTP.Address)
	require.Equal(t, ProviderGemini, cfg.LLM.Provider)
	require.Equal(t, int32(12000), cfg.LLM.MaxOutputTokens)
	require.Equal(t, 120*time.Second, cfg.LLM.Timeout)
	require.Equal(t, "JP", cfg.Geocoding.DefaultCountry)
	require.Equal(t, "Asia/Tokyo", cfg.Planner.Timezone)
	require.Equal(t, 7, cfg.Planner.MaxDaysAhead)
	require.Equal(t, []string{"*"}, cfg.HTTP.CORS.AllowOrigins)
}

func TestLoadFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
http:
  address: ":8080"
llm:
  provider: chatgpt
  model: gpt-4o-mini
planner:
  maxDaysAhead: 3
`), 0o600))

	t.Setenv("CONFIG_PATH", path)
	t.Setenv("LLM_API_KEY", "sk-test")
	t.Setenv("GEMINI_API_KEY", "ignored-for-chatgpt")
	t.Setenv("GEOCODING_COUNTRY", "")
	t.Setenv("CORS_ALLOW_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("WEATHER_TIMEOUT", "3s")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":8080", cfg.HTTP.Address)
	require.Equal(t, ProviderChatGPT, cfg.LLM.Provider)
	require.Equal(t, "gpt-4o-mini", cfg.LLM.Model)
	require.Equal(t, "sk-test", cfg.LLM.APIKey)
	require.Equal(t, 3, cfg.Planner.MaxDaysAhead)
	require.Empty(t, cfg.Geocoding.DefaultCountry)
	require.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.HTTP.CORS.AllowOrigins)
	require.Equal(t, 3*time.Second, cfg.Weather.Timeout)
	require.Equal(t, float32(0.7), cfg.LLM.Temperature)
}

func TestGeminiKeyFromEnv(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("LLM_PROVIDER", "Gemini")
	t.Setenv("LLM_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "g-key")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ProviderGemini, cfg.LLM.Provider)
	require.Equal(t, "g-key", cfg.LLM.APIKey)
}

func TestValidate(t *testing.T) {
	cases := map[string]func(*Config){
		"unknown provider": func(c *Config) { c.LLM.Provider = "claude" },
		"empty model":      func(c *Config) { c.LLM.Model = " " },
		"zero llm timeout": func(c *Config) { c.LLM.Timeout = 0 },
		"no tokens":        func(c *Config) { c.LLM.MaxOutputTokens = 0 },
		"bad timezone":     func(c *Config) { c.Planner.Timezone = "Mars/Olympus" },
		"no window":        func(c *Config) { c.Planner.MaxDaysAhead = 0 },
		"no geocoder":      func(c *Config) { c.Geocoding.BaseURL = "" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := defaultConfig()
			mutate(cfg)
			require.Error(t, cfg.Validate())
		})
	}
	require.NoError(t, defaultConfig().Validate())
}

func TestLoadRejectsBrokenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("http: [unterminated"), 0o600))
	t.Setenv("CONFIG_PATH", path)

	_, err := Load()
	require.ErrorContains(t, err, "parse config file")
}
