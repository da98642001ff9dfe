package forecast

import (
	"context"
	"log/slog"
	"slices"
	"strings"

	"github.com/Captain-T2004/Ongaku-Backend/internal/i18n"
	apperrors "github.com/Captain-T2004/Ongaku-Backend/pkg/errors"
	"github.com/Captain-T2004/Ongaku-Backend/pkg/util"
)

const maxReportHours = 24

// Service aggregates upstream forecasts into planning friendly shapes.
type Service interface {
	DailySummaries(ctx context.Context, q RangeQuery) ([]DaySummary, error)
	Current(ctx context.Context, q CurrentQuery) (Report, error)
}

// Fetcher retrieves a raw forecast from upstream.
type Fetcher interface {
	Forecast(ctx context.Context, params Params) (Series, error)
}

type service struct {
	cfg     Config
	fetcher Fetcher
	logger  *slog.Logger
}

// NewService wires up the weather aggregator.
func NewService(cfg Config, fetcher Fetcher, logger *slog.Logger) Service {
	if strings.TrimSpace(cfg.Timezone) == "" {
		cfg.Timezone = "Asia/Tokyo"
	}
	return &service{
		cfg:     cfg,
		fetcher: fetcher,
		logger:  logger.With("component", "forecast.service"),
	}
}

func (s *service) DailySummaries(ctx context.Context, q RangeQuery) ([]DaySummary, error) {
	days := q.Days
	if days < 1 {
		days = 1
	}
	start := q.Start.Format(util.DateLayout)
	end := q.Start.AddDate(0, 0, days-1).Format(util.DateLayout)

	series, err := s.fetch(ctx, Params{
		Latitude:  q.Latitude,
		Longitude: q.Longitude,
		Timezone:  s.cfg.Timezone,
		StartDate: start,
		EndDate:   end,
	})
	if err != nil {
		return nil, err
	}

	samples := Samples(series.Hourly)
	if len(samples) == 0 {
		return nil, i18n.Error(apperrors.CodeNoData, i18n.KeyNoWeatherData, nil)
	}
	summaries := Summarize(samples)
	if len(summaries) == 0 {
		return nil, i18n.Error(apperrors.CodeNoData, i18n.KeyWeatherUnparseable, nil)
	}
	s.logger.Info("weather summarized", "start", start, "end", end, "samples", len(samples), "days", len(summaries))
	return summaries, nil
}

func (s *service) Current(ctx context.Context, q CurrentQuery) (Report, error) {
	tz := strings.TrimSpace(q.Timezone)
	if tz == "" {
		tz = s.cfg.Timezone
	}
	params := Params{Latitude: q.Latitude, Longitude: q.Longitude, Timezone: tz, Days: 1}
	if date := strings.TrimSpace(q.Date); date != "" {
		params.StartDate, params.EndDate = date, date
	}

	series, err := s.fetch(ctx, params)
	if err != nil {
		return Report{}, err
	}

	report := Report{Timezone: tz, Current: CurrentWeather{Condition: "Unknown"}}
	if series.Current != nil {
		report.Current = *series.Current
		if report.Current.WeatherCode != nil {
			report.Current.Condition = Condition(*report.Current.WeatherCode)
		} else {
			report.Current.Condition = "Unknown"
		}
	}
	hourly := Samples(series.Hourly)
	if len(hourly) > maxReportHours {
		hourly = hourly[:maxReportHours]
	}
	report.Hourly = hourly
	return report, nil
}

func (s *service) fetch(ctx context.Context, params Params) (Series, error) {
	series, err := s.fetcher.Forecast(ctx, params)
	if err == nil {
		return series, nil
	}
	s.logger.Warn("forecast fetch failed", "error", err, "start", params.StartDate, "end", params.EndDate)
	if apperrors.IsTimeout(err) {
		return Series{}, i18n.Error(apperrors.CodeUpstreamTimeout, i18n.KeyWeatherTimeout, err)
	}
	return Series{}, i18n.Error(apperrors.CodeUpstreamError, i18n.KeyWeatherFailed, err, err.Error())
}

// Samples keeps the hourly points that carry both temperature and precipitation.
func Samples(points []HourlyPoint) []Sample {
	samples := make([]Sample, 0, len(points))
	for _, pt := range points {
		if pt.Temperature == nil || pt.Precipitation == nil {
			continue
		}
		code := -1
		if pt.WeatherCode != nil {
			code = *pt.WeatherCode
		}
		samples = append(samples, Sample{
			Time:            pt.Time,
			TemperatureC:    *pt.Temperature,
			PrecipitationMm: *pt.Precipitation,
			WeatherCode:     code,
			Condition:       Condition(code),
			WindSpeedKmh:    pt.WindSpeed,
			HumidityPct:     pt.Humidity,
		})
	}
	return samples
}

// Summarize buckets samples by calendar date and reduces each day to morning,
// afternoon and evening snapshots. Days come back in ascending order.
func Summarize(samples []Sample) []DaySummary {
	buckets := make(map[string][]Sample)
	for _, sample := range samples {
		date, _, _ := strings.Cut(sample.Time, "T")
		buckets[date] = append(buckets[date], sample)
	}
	dates := make([]string, 0, len(buckets))
	for date := range buckets {
		dates = append(dates, date)
	}
	slices.Sort(dates)

	summaries := make([]DaySummary, 0, len(dates))
	for _, date := range dates {
		hours := buckets[date]
		if len(hours) == 0 {
			continue
		}
		summaries = append(summaries, DaySummary{
			Date:      date,
			Morning:   snapshot(pick(hours, "09:00", 0)),
			Afternoon: snapshot(pick(hours, "14:00", len(hours)/2)),
			Evening:   snapshot(pick(hours, "18:00", len(hours)-1)),
		})
	}
	return summaries
}

// pick returns the first sample at clock, or hours[fallback] when none matches.
func pick(hours []Sample, clock string, fallback int) Sample {
	for _, h := range hours {
		if clockOf(h.Time) == clock {
			return h
		}
	}
	return hours[fallback]
}

func clockOf(ts string) string {
	_, rest, ok := strings.Cut(ts, "T")
	if !ok || len(rest) < 5 {
		return ""
	}
	return rest[:5]
}

func snapshot(s Sample) Snapshot {
	return Snapshot{Condition: s.Condition, TemperatureC: s.TemperatureC, PrecipitationMm: s.PrecipitationMm}
}
