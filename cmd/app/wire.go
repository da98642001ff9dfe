//go:build wireinject
// +build wireinject

package main

import (
	"context"

	"github.com/google/wire"

	"github.com/Captain-T2004/Ongaku-Backend/internal/bootstrap"
	"github.com/Captain-T2004/Ongaku-Backend/internal/domain/forecast"
	"github.com/Captain-T2004/Ongaku-Backend/internal/domain/generation"
	"github.com/Captain-T2004/Ongaku-Backend/internal/domain/geo"
	"github.com/Captain-T2004/Ongaku-Backend/internal/domain/itinerary"
	"github.com/Captain-T2004/Ongaku-Backend/internal/domain/suggest"
	"github.com/Captain-T2004/Ongaku-Backend/internal/infra/config"
	"github.com/Captain-T2004/Ongaku-Backend/internal/infra/openmeteo"
	httpiface "github.com/Captain-T2004/Ongaku-Backend/internal/interface/http"
	"github.com/Captain-T2004/Ongaku-Backend/pkg/logger"
)

func initializeApp(ctx context.Context) (*bootstrap.App, func(), error) {
	wire.Build(
		config.Load,
		logger.New,
		provideGeoConfig,
		provideForecastConfig,
		provideGenerationConfig,
		provideItineraryConfig,
		provideSuggestConfig,
		provideGeocodingClient,
		provideForecastClient,
		provideGenerator,
		wire.Bind(new(geo.Geocoder), new(*openmeteo.GeocodingClient)),
		wire.Bind(new(forecast.Fetcher), new(*openmeteo.ForecastClient)),
		geo.NewService,
		forecast.NewService,
		generation.NewService,
		itinerary.NewService,
		suggest.NewService,
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil, nil
}
