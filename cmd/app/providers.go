package main

import (
	"context"
	"log/slog"
	"strings"

	"github.com/Captain-T2004/Ongaku-Backend/internal/domain/forecast"
	"github.com/Captain-T2004/Ongaku-Backend/internal/domain/generation"
	"github.com/Captain-T2004/Ongaku-Backend/internal/domain/geo"
	"github.com/Captain-T2004/Ongaku-Backend/internal/domain/itinerary"
	"github.com/Captain-T2004/Ongaku-Backend/internal/domain/suggest"
	"github.com/Captain-T2004/Ongaku-Backend/internal/infra/config"
	"github.com/Captain-T2004/Ongaku-Backend/internal/infra/llm/chatgpt"
	"github.com/Captain-T2004/Ongaku-Backend/internal/infra/llm/gemini"
	"github.com/Captain-T2004/Ongaku-Backend/internal/infra/openmeteo"
)

func provideGeoConfig(cfg *config.Config) geo.Config {
	return geo.Config{
		DefaultCountry:  cfg.Geocoding.DefaultCountry,
		DefaultLanguage: cfg.Geocoding.DefaultLanguage,
		MaxResults:      cfg.Geocoding.MaxResults,
	}
}

func provideForecastConfig(cfg *config.Config) forecast.Config {
	return forecast.Config{Timezone: cfg.Weather.Timezone}
}

func provideGenerationConfig(cfg *config.Config) generation.Config {
	return generation.Config{Timeout: cfg.LLM.Timeout}
}

func provideItineraryConfig(cfg *config.Config) itinerary.Config {
	return itinerary.Config{Timezone: cfg.Planner.Timezone, MaxDaysAhead: cfg.Planner.MaxDaysAhead}
}

func provideSuggestConfig(cfg *config.Config) suggest.Config {
	return suggest.Config{Timezone: cfg.Planner.Timezone, MaxDaysAhead: cfg.Planner.MaxDaysAhead}
}

func provideGeocodingClient(cfg *config.Config) *openmeteo.GeocodingClient {
	return openmeteo.NewGeocodingClient(cfg.Geocoding.BaseURL, cfg.Geocoding.Timeout)
}

func provideForecastClient(cfg *config.Config) *openmeteo.ForecastClient {
	return openmeteo.NewForecastClient(cfg.Weather.BaseURL, cfg.Weather.Timeout)
}

// provideGenerator builds the configured backend. A missing key is not fatal: the
// server still answers /health, /api/geocode and /api/weather, and generation
// endpoints report the backend as unconfigured.
func provideGenerator(ctx context.Context, cfg *config.Config, logger *slog.Logger) (generation.Generator, func(), error) {
	noop := func() {}
	key := strings.TrimSpace(cfg.LLM.APIKey)

	switch cfg.LLM.Provider {
	case config.ProviderChatGPT:
		if key == "" {
			logger.Warn("llm api key not set, generation disabled", "provider", chatgpt.ProviderName)
			return generation.Unavailable{Name: chatgpt.ProviderName}, noop, nil
		}
		client, err := chatgpt.NewClient(key, cfg.LLM.BaseURL, cfg.LLM.Timeout)
		if err != nil {
			return nil, nil, err
		}
		return chatgpt.NewGenerator(chatgpt.GeneratorConfig{
			Model:           cfg.LLM.Model,
			Temperature:     cfg.LLM.Temperature,
			TopP:            cfg.LLM.TopP,
			MaxOutputTokens: cfg.LLM.MaxOutputTokens,
		}, client), noop, nil
	default:
		if key == "" {
			logger.Warn("gemini api key not set, generation disabled", "provider", gemini.ProviderName)
			return generation.Unavailable{Name: gemini.ProviderName}, noop, nil
		}
		client, err := gemini.NewClient(ctx, gemini.Config{
			APIKey:          key,
			Model:           cfg.LLM.Model,
			Temperature:     cfg.LLM.Temperature,
			TopP:            cfg.LLM.TopP,
			TopK:            cfg.LLM.TopK,
			MaxOutputTokens: cfg.LLM.MaxOutputTokens,
		})
		if err != nil {
			return nil, nil, err
		}
		cleanup := func() {
			if err := client.Close(); err != nil {
				logger.Warn("close gemini client", "error", err)
			}
		}
		return client, cleanup, nil
	}
}
