package itinerary

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Captain-T2004/Ongaku-Backend/internal/domain/forecast"
	"github.com/Captain-T2004/Ongaku-Backend/internal/domain/generation"
	"github.com/Captain-T2004/Ongaku-Backend/internal/domain/geo"
	"github.com/Captain-T2004/Ongaku-Backend/internal/i18n"
	apperrors "github.com/Captain-T2004/Ongaku-Backend/pkg/errors"
)

const twoDays = `{"itinerary":[{"day":1,"schedule":[]},{"day":2,"schedule":[]}]}`

func TestDurationDaysCoercion(t *testing.T) {
	cases := map[string]int{
		`0`:     1,
		`-3`:    1,
		`"abc"`: 1,
		`9`:     7,
		`"4"`:   4,
		`2.9`:   2,
		`null`:  1,
		`true`:  1,
		`1e300`: 7,
	}
	for raw, want := range cases {
		var req Request
		require.NoError(t, json.Unmarshal([]byte(`{"duration_days":`+raw+`}`), &req), raw)
		require.Equal(t, want, req.DurationDays.Days(), raw)
	}

	var req Request
	require.NoError(t, json.Unmarshal([]byte(`{}`), &req))
	require.Equal(t, 1, req.DurationDays.Days())
}

func TestRequestLocale(t *testing.T) {
	require.Equal(t, i18n.EN, Request{Language: "EN"}.Locale())
	require.Equal(t, i18n.JA, Request{Language: "de"}.Locale())
	require.Equal(t, i18n.JA, Request{}.Locale())
}

func TestPlanSuccess(t *testing.T) {
	h := newHarness(twoDays)
	res, err := h.svc.Plan(context.Background(), Request{Location: "Shibuya", DurationDays: 2, Language: "en"})
	require.NoError(t, err)

	require.True(t, res.Success)
	require.Equal(t, 2, res.Query.DurationDays)
	require.Equal(t, "2025-10-12", res.Query.StartDate)
	require.Equal(t, "2025-10-13", res.Query.EndDate)
	require.Equal(t, "Tokyo", res.Query.Prefecture)
	require.Equal(t, "en", res.Query.Language)
	require.Equal(t, []string{}, res.Query.Preferences)
	require.Len(t, res.Itinerary, 2)
	require.Len(t, res.WeatherSummary, 2)
	require.Equal(t, "stub", res.LLMProvider)

	require.Equal(t, "en", h.resolver.query.Language)
	require.Equal(t, 2, h.weather.query.Days)
	require.Contains(t, h.generator.prompt, "You are a local music guide for Shibuya, Japan.")
	require.Contains(t, h.generator.prompt, "Day 2 (2025-10-13)")
}

func TestPlanMalformedOutput(t *testing.T) {
	h := newHarness("Sorry, I cannot help with that today.")
	_, err := h.svc.Plan(context.Background(), Request{Location: "Shibuya", DurationDays: 2, Language: "en"})
	require.True(t, apperrors.IsCode(err, apperrors.CodeMalformedOutput))
	require.True(t, strings.HasPrefix(i18n.Reason(err, i18n.EN), "Failed to parse LLM response as JSON"))
}

func TestPlanUnconfiguredBeforeNetwork(t *testing.T) {
	h := newHarness(twoDays)
	h.generator.notReady = true
	_, err := h.svc.Plan(context.Background(), Request{Location: "Shibuya"})
	require.True(t, apperrors.IsCode(err, apperrors.CodeUnconfigured))
	require.False(t, h.resolver.called)
	require.False(t, h.weather.called)
}

func TestPlanRequiresLocation(t *testing.T) {
	h := newHarness(twoDays)
	_, err := h.svc.Plan(context.Background(), Request{Latitude: geo.At(35.6), Language: "ja"})
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))
	require.Equal(t, "location または (latitude と longitude) が必要です", i18n.Reason(err, i18n.JA))

	appErr, _ := apperrors.As(err)
	received := appErr.Details["received_data"].(map[string]any)
	require.Nil(t, received["location"])
	require.False(t, h.resolver.called)
}

func TestPlanDateWindow(t *testing.T) {
	h := newHarness(twoDays)
	_, err := h.svc.Plan(context.Background(), Request{Location: "Shibuya", Date: "2025-10-11"})
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))
	require.False(t, h.resolver.called)

	_, err = h.svc.Plan(context.Background(), Request{Location: "Shibuya", Date: "2025-10-20"})
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))

	res, err := h.svc.Plan(context.Background(), Request{Location: "Shibuya", Date: "2025-10-19"})
	require.NoError(t, err)
	require.Equal(t, "2025-10-19", res.Query.StartDate)
}

func TestPlanPropagatesResolverErrors(t *testing.T) {
	h := newHarness(twoDays)
	h.resolver.err = i18n.Error(apperrors.CodeNotFound, i18n.KeyLocationNotFound, nil, "Atlantis")
	_, err := h.svc.Plan(context.Background(), Request{Location: "Atlantis"})
	require.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))
	require.False(t, h.weather.called)
}

func TestComposePromptLocales(t *testing.T) {
	days := []forecast.DaySummary{{
		Date:      "2025-10-13",
		Morning:   forecast.Snapshot{Condition: "Clear sky", TemperatureC: 17.25},
		Afternoon: forecast.Snapshot{Condition: "Slight rain", TemperatureC: 21},
		Evening:   forecast.Snapshot{Condition: "Overcast", TemperatureC: 18.04},
	}}
	plan := Plan{
		Location:    geo.Location{Name: "Kyoto", Admin1: "Kyoto"},
		Start:       time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC),
		Days:        1,
		Preferences: []string{"jazz", "vinyl"},
		UserQuery:   "quiet evening",
		Locale:      i18n.JA,
	}

	ja, err := ComposePrompt(plan, days)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(ja, "あなたはKyotoの音楽専門の地元ガイドです。"))
	require.Contains(t, ja, `"day_name": "月曜日"`)
	require.Contains(t, ja, `"day_name_en": "Monday"`)
	require.Contains(t, ja, "- 好み: jazz, vinyl")
	require.Contains(t, ja, "Day 1 (2025-10-13): Morning Clear sky 17.2°C, Afternoon Slight rain 21.0°C, Evening Overcast 18.0°C")
	require.NotContains(t, ja, "{%")

	plan.Locale = i18n.EN
	plan.Preferences = nil
	plan.Start = plan.Start.AddDate(0, 0, 6)
	en, err := ComposePrompt(plan, days)
	require.NoError(t, err)
	require.Contains(t, en, "- Preferences: None")
	require.Contains(t, en, `"day_name": "日曜日"`)
	require.Contains(t, en, `"day_name_en": "Sunday"`)
	require.Contains(t, en, "Include 1 day(s), each with 4-6 activities in Kyoto.")
}

type harness struct {
	svc       *service
	resolver  *stubResolver
	weather   *stubWeather
	generator *stubGenerator
}

func newHarness(text string) *harness {
	h := &harness{
		resolver:  &stubResolver{loc: geo.Location{Name: "Shibuya", Admin1: "Tokyo", Latitude: 35.66, Longitude: 139.7}},
		weather:   &stubWeather{},
		generator: &stubGenerator{text: text},
	}
	svc := NewService(Config{Timezone: "Asia/Tokyo"}, h.resolver, h.weather, h.generator, slog.New(slog.NewTextHandler(io.Discard, nil))).(*service)
	svc.now = func() time.Time { return time.Date(2025, 10, 12, 3, 0, 0, 0, time.UTC) }
	h.svc = svc
	return h
}

type stubResolver struct {
	loc    geo.Location
	err    error
	called bool
	query  geo.Query
}

func (s *stubResolver) Resolve(ctx context.Context, q geo.Query) (geo.Resolution, error) {
	s.called = true
	s.query = q
	if s.err != nil {
		return geo.Resolution{}, s.err
	}
	return geo.Resolution{Location: s.loc, Candidates: []geo.Location{s.loc}}, nil
}

type stubWeather struct {
	called bool
	query  forecast.RangeQuery
}

func (s *stubWeather) DailySummaries(ctx context.Context, q forecast.RangeQuery) ([]forecast.DaySummary, error) {
	s.called = true
	s.query = q
	out := make([]forecast.DaySummary, 0, q.Days)
	for i := 0; i < q.Days; i++ {
		out = append(out, forecast.DaySummary{Date: q.Start.AddDate(0, 0, i).Format("2006-01-02")})
	}
	return out, nil
}

func (s *stubWeather) Current(ctx context.Context, q forecast.CurrentQuery) (forecast.Report, error) {
	return forecast.Report{}, nil
}

type stubGenerator struct {
	text     string
	notReady bool
	prompt   string
}

func (s *stubGenerator) Generate(ctx context.Context, prompt string) (generation.Result, error) {
	s.prompt = prompt
	return generation.Result{Text: s.text}, nil
}

func (s *stubGenerator) Ready() bool { return !s.notReady }

func (s *stubGenerator) Provider() string { return "stub" }
