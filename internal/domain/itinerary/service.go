package itinerary

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

// Stage names a step of the planning pipeline.
type Stage string

const (
	StageValidatingInput Stage = "validating_input"
	StageResolving       Stage = "resolving"
	StageFetchingWeather Stage = "fetching_weather"
	StageComposing       Stage = "composing"
	StageGenerating      Stage = "generating"
	StageValidating      Stage = "validating"
	StageAssembling      Stage = "assembling"
	StageDone            Stage = "done"
	StageFailed          Stage = "failed"
)

// Service exposes itinerary planning.
type Service interface {
	Plan(ctx context.Context, req Request) (Response, error)
}

type service struct {
	cfg       Config
	resolver  geo.Service
	weather   forecast.Service
	generator generation.Service
	validator llmjson.Validator
	window    calendar.Window
	logger    *slog.Logger
	now       func() time.Time
}

// NewService wires up the itinerary planner.
func NewService(cfg Config, resolver geo.Service, weather forecast.Service, generator generation.Service, logger *slog.Logger) Service {
	return &service{
		cfg:       cfg,
		resolver:  resolver,
		weather:   weather,
		generator: generator,
		validator: llmjson.NewValidator(),
		window:    calendar.NewWindow(cfg.Timezone, cfg.MaxDaysAhead),
		logger:    logger.With("component", "itinerary.service"),
		now:       time.Now,
	}
}

// run tracks the current stage so failures are logged against it.
type run struct {
	logger *slog.Logger
	stage  Stage
	began  time.Time
}

func (r *run) enter(stage Stage) {
	r.stage = stage
	r.logger.Debug("itinerary stage", "stage", stage)
}

func (r *run) fail(err error) error {
	attrs := []any{"stage", r.stage, "code", apperrors.CodeOf(err), "error", err, "elapsed", time.Since(r.began)}
	r.stage = StageFailed
	if apperrors.IsCode(err, apperrors.CodeInvalidInput) || apperrors.IsCode(err, apperrors.CodeNotFound) {
		r.logger.Warn("itinerary failed", attrs...)
	} else {
		r.logger.Error("itinerary failed", attrs...)
	}
	return err
}

func (s *service) Plan(ctx context.Context, req Request) (Response, error) {
	r := &run{logger: s.logger, began: time.Now()}
	locale := req.Locale()

	r.enter(StageValidatingInput)
	if !s.generator.Ready() {
		return Response{}, r.fail(generation.ErrUnconfigured())
	}
	name := strings.TrimSpace(req.Location)
	if name == "" && !(req.Latitude.Present && req.Longitude.Present) {
		return Response{}, r.fail(i18n.Error(apperrors.CodeInvalidInput, i18n.KeyMissingLocation, nil).
			WithDetail("received_data", map[string]any{
				"location":  nullable(name),
				"latitude":  req.Latitude,
				"longitude": req.Longitude,
			}))
	}
	start, err := s.window.Start(s.now(), req.Date)
	if err != nil {
		return Response{}, r.fail(err)
	}
	days := req.DurationDays.Days()

	r.enter(StageResolving)
	resolved, err := s.resolver.Resolve(ctx, geo.Query{
		Name:      name,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		Language:  string(locale),
	})
	if err != nil {
		return Response{}, r.fail(err)
	}
	loc := resolved.Location

	r.enter(StageFetchingWeather)
	summaries, err := s.weather.DailySummaries(ctx, forecast.RangeQuery{
		Latitude:  loc.Latitude,
		Longitude: loc.Longitude,
		Start:     start,
		Days:      days,
	})
	if err != nil {
		return Response{}, r.fail(err)
	}

	r.enter(StageComposing)
	plan := Plan{
		Location:    loc,
		Start:       start,
		Days:        days,
		Preferences: nonNil(req.Preferences),
		UserQuery:   req.UserQuery,
		Locale:      locale,
	}
	prompt, err := ComposePrompt(plan, summaries)
	if err != nil {
		return Response{}, r.fail(apperrors.Wrap(apperrors.CodeInternal, "compose itinerary prompt", err))
	}

	r.enter(StageGenerating)
	generated, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		return Response{}, r.fail(err)
	}

	r.enter(StageValidating)
	items, err := s.validator.List(generated.Text, llmjson.Itinerary)
	if err != nil {
		return Response{}, r.fail(err)
	}

	r.enter(StageAssembling)
	res := Response{
		Success: true,
		Query: Query{
			Location:     loc.Name,
			Prefecture:   loc.Admin1,
			Latitude:     loc.Latitude,
			Longitude:    loc.Longitude,
			StartDate:    start.Format(util.DateLayout),
			EndDate:      start.AddDate(0, 0, days-1).Format(util.DateLayout),
			DurationDays: days,
			Preferences:  plan.Preferences,
			UserQuery:    req.UserQuery,
			Language:     string(locale),
		},
		WeatherSummary: summaries,
		Itinerary:      items,
		LLMProvider:    s.generator.Provider(),
	}

	r.enter(StageDone)
	s.logger.Info("itinerary planned",
		"location", loc.Name,
		"start", res.Query.StartDate,
		"days", days,
		"generated_days", len(items),
		"language", locale,
		"elapsed", time.Since(r.began),
	)
	return res, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
