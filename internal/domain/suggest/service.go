package suggest

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/Captain-T2004/Ongaku-Backend/internal/domain/calendar"
	"github.com/Captain-T2004/Ongaku-Backend/internal/domain/forecast"
	"github.com/Captain-T2004/Ongaku-Backend/internal/domain/generation"
	"github.com/Captain-T2004/Ongaku-Backend/internal/domain/geo"
	"github.com/Captain-T2004/Ongaku-Backend/internal/domain/llmjson"
	"github.com/Captain-T2004/Ongaku-Backend/internal/i18n"
	apperrors "github.com/Captain-T2004/Ongaku-Backend/pkg/errors"
	"github.com/Captain-T2004/Ongaku-Backend/pkg/util"
)

// Service produces five quick music activity suggestions.
type Service interface {
	Suggest(ctx context.Context, req Request) (Response, error)
}

type service struct {
	resolver  geo.Service
	weather   forecast.Service
	generator generation.Service
	validator llmjson.Validator
	window    calendar.Window
	logger    *slog.Logger
	now       func() time.Time
}

// NewService wires up quick suggestions.
func NewService(cfg Config, resolver geo.Service, weather forecast.Service, generator generation.Service, logger *slog.Logger) Service {
	return &service{
		resolver:  resolver,
		weather:   weather,
		generator: generator,
		validator: llmjson.NewValidator(),
		window:    calendar.NewWindow(cfg.Timezone, cfg.MaxDaysAhead),
		logger:    logger.With("component", "suggest.service"),
		now:       time.Now,
	}
}

func (s *service) Suggest(ctx context.Context, req Request) (Response, error) {
	if !s.generator.Ready() {
		return Response{}, generation.ErrUnconfigured()
	}
	name := strings.TrimSpace(req.Location)
	if name == "" && !(req.Latitude.Present && req.Longitude.Present) {
		return Response{}, i18n.Error(apperrors.CodeInvalidInput, i18n.KeyMissingLocation, nil)
	}
	date := ""
	if strings.TrimSpace(req.Date) != "" {
		start, err := s.window.Start(s.now(), req.Date)
		if err != nil {
			return Response{}, err
		}
		date = start.Format(util.DateLayout)
	}

	resolved, err := s.resolver.Resolve(ctx, geo.Query{Name: name, Latitude: req.Latitude, Longitude: req.Longitude})
	if err != nil {
		return Response{}, err
	}
	loc := resolved.Location

	report, err := s.weather.Current(ctx, forecast.CurrentQuery{Latitude: loc.Latitude, Longitude: loc.Longitude, Date: date})
	if err != nil {
		return Response{}, err
	}

	preferences := req.Preferences
	if preferences == nil {
		preferences = []string{}
	}
	prompt, err := ComposePrompt(loc.Name, report.Current, preferences, req.UserQuery)
	if err != nil {
		return Response{}, apperrors.Wrap(apperrors.CodeInternal, "compose suggestion prompt", err)
	}

	generated, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		return Response{}, err
	}
	items, err := s.validator.List(generated.Text, llmjson.Suggestions)
	if err != nil {
		s.logger.Warn("suggestions rejected", "error", err, "chars", len(generated.Text))
		return Response{}, err
	}

	if date == "" {
		date = "today"
	}
	s.logger.Info("suggestions generated", "location", loc.Name, "date", date, "condition", report.Current.Condition)
	return Response{
		Success: true,
		Query: Query{
			Location:    loc.Name,
			Latitude:    loc.Latitude,
			Longitude:   loc.Longitude,
			Date:        date,
			Weather:     report.Current.Condition,
			Temperature: temperatureValue(report.Current.Temperature),
			UserQuery:   req.UserQuery,
			Preferences: preferences,
		},
		Suggestions: items,
		LLMProvider: s.generator.Provider(),
	}, nil
}
