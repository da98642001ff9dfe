package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"gopkg.in/yaml.v3"
)

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	LLM       LLMConfig       `yaml:"llm"`
	Geocoding GeocodingConfig `yaml:"geocoding"`
	Weather   WeatherConfig   `yaml:"weather"`
	Planner   PlannerConfig   `yaml:"planner"`
	Version   string          `yaml:"version"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address      string        `yaml:"address"`
	ReadTimeout  time.Duration `yaml:"readTimeout"`
	WriteTimeout time.Duration `yaml:"writeTimeout"`
	CORS         CORSConfig    `yaml:"cors"`
}

// CORSConfig configures cross origin access to /api routes.
type CORSConfig struct {
	AllowOrigins []string      `yaml:"allowOrigins"`
	MaxAge       time.Duration `yaml:"maxAge"`
}

// LLMConfig selects and tunes the generation backend.
type LLMConfig struct {
	Provider        string        `yaml:"provider"`
	APIKey          string        `yaml:"apiKey"`
	BaseURL         string        `yaml:"baseUrl"`
	Model           string        `yaml:"model"`
	Temperature     float32       `yaml:"temperature"`
	TopP            float32       `yaml:"topP"`
	TopK            int32         `yaml:"topK"`
	MaxOutputTokens int32         `yaml:"maxOutputTokens"`
	Timeout         time.Duration `yaml:"timeout"`
}

// GeocodingConfig points at the geocoding API.
type GeocodingConfig struct {
	BaseURL         string        `yaml:"baseUrl"`
	DefaultCountry  string        `yaml:"defaultCountry"`
	DefaultLanguage string        `yaml:"defaultLanguage"`
	MaxResults      int           `yaml:"maxResults"`
	Timeout         time.Duration `yaml:"timeout"`
}

// WeatherConfig points at the forecast API.
type WeatherConfig struct {
	BaseURL  string        `yaml:"baseUrl"`
	Timezone string        `yaml:"timezone"`
	Timeout  time.Duration `yaml:"timeout"`
}

// PlannerConfig bounds itinerary and suggestion dates.
type PlannerConfig struct {
	Timezone     string `yaml:"timezone"`
	MaxDaysAhead int    `yaml:"maxDaysAhead"`
}

// Supported generation providers.
const (
	ProviderGemini  = "gemini"
	ProviderChatGPT = "chatgpt"
)

// Load reads configuration from a YAML file and environment variables.
func Load() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("CORS_ALLOW_ORIGINS"); v != "" {
		cfg.HTTP.CORS.AllowOrigins = splitList(v)
	}
	if v := os.Getenv("LLM_PROVIDER"); v != "" {
		cfg.LLM.Provider = strings.ToLower(strings.TrimSpace(v))
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" && cfg.LLM.Provider == ProviderGemini {
		cfg.LLM.APIKey = v
	}
	if v := os.Getenv("LLM_API_KEY"); v != "" {
		cfg.LLM.APIKey = v
	}
	if v := os.Getenv("LLM_BASE_URL"); v != "" {
		cfg.LLM.BaseURL = v
	}
	if v := os.Getenv("LLM_MODEL"); v != "" {
		cfg.LLM.Model = v
	}
	if v := os.Getenv("LLM_TEMPERATURE"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 32); err == nil {
			cfg.LLM.Temperature = float32(parsed)
		}
	}
	if v := os.Getenv("LLM_MAX_OUTPUT_TOKENS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.LLM.MaxOutputTokens = int32(parsed)
		}
	}
	if v := os.Getenv("LLM_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.LLM.Timeout = parsed
		}
	}
	if v := os.Getenv("GEOCODING_BASE_URL"); v != "" {
		cfg.Geocoding.BaseURL = v
	}
	if v, ok := os.LookupEnv("GEOCODING_COUNTRY"); ok {
		cfg.Geocoding.DefaultCountry = strings.TrimSpace(v)
	}
	if v := os.Getenv("GEOCODING_LANGUAGE"); v != "" {
		cfg.Geocoding.DefaultLanguage = v
	}
	if v := os.Getenv("GEOCODING_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Geocoding.Timeout = parsed
		}
	}
	if v := os.Getenv("WEATHER_BASE_URL"); v != "" {
		cfg.Weather.BaseURL = v
	}
	if v := os.Getenv("WEATHER_TIMEZONE"); v != "" {
		cfg.Weather.Timezone = v
	}
	if v := os.Getenv("WEATHER_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Weather.Timeout = parsed
		}
	}
	if v := os.Getenv("PLANNER_TIMEZONE"); v != "" {
		cfg.Planner.Timezone = v
	}
	if v := os.Getenv("PLANNER_MAX_DAYS_AHEAD"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Planner.MaxDaysAhead = parsed
		}
	}
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:      ":5000",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 150 * time.Second,
			CORS: CORSConfig{
				AllowOrigins: []string{"*"},
				MaxAge:       time.Hour,
			},
		},
		LLM: LLMConfig{
			Provider:        ProviderGemini,
			Model:           "gemini-2.0-flash",
			Temperature:     0.7,
			TopP:            0.95,
			TopK:            40,
			MaxOutputTokens: 12000,
			Timeout:         120 * time.Second,
		},
		Geocoding: GeocodingConfig{
			BaseURL:         "https://geocoding-api.open-meteo.com/v1/search",
			DefaultCountry:  "JP",
			DefaultLanguage: "ja",
			MaxResults:      5,
			Timeout:         10 * time.Second,
		},
		Weather: WeatherConfig{
			BaseURL:  "https://api.open-meteo.com/v1/forecast",
			Timezone: "Asia/Tokyo",
			Timeout:  10 * time.Second,
		},
		Planner: PlannerConfig{
			Timezone:     "Asia/Tokyo",
			MaxDaysAhead: 7,
		},
		Version: "1.0.0",
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	switch c.LLM.Provider {
	case ProviderGemini, ProviderChatGPT:
	default:
		return fmt.Errorf("llm.provider must be %q or %q", ProviderGemini, ProviderChatGPT)
	}
	if strings.TrimSpace(c.LLM.Model) == "" {
		return errors.New("llm.model cannot be empty")
	}
	if c.LLM.Timeout <= 0 {
		return errors.New("llm.timeout must be positive")
	}
	if c.LLM.MaxOutputTokens <= 0 {
		return errors.New("llm.maxOutputTokens must be positive")
	}
	if c.Geocoding.BaseURL == "" {
		return errors.New("geocoding.baseUrl cannot be empty")
	}
	if c.Geocoding.Timeout <= 0 {
		return errors.New("geocoding.timeout must be positive")
	}
	if c.Geocoding.MaxResults <= 0 {
		return errors.New("geocoding.maxResults must be positive")
	}
	if c.Weather.BaseURL == "" {
		return errors.New("weather.baseUrl cannot be empty")
	}
	if c.Weather.Timeout <= 0 {
		return errors.New("weather.timeout must be positive")
	}
	if _, err := time.LoadLocation(c.Weather.Timezone); err != nil {
		return fmt.Errorf("weather.timezone: %w", err)
	}
	if _, err := time.LoadLocation(c.Planner.Timezone); err != nil {
		return fmt.Errorf("planner.timezone: %w", err)
	}
	if c.Planner.MaxDaysAhead <= 0 {
		return errors.New("planner.maxDaysAhead must be positive")
	}
	return nil
}
