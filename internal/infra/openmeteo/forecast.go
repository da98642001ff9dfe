package openmeteo

import (
	"context"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Captain-T2004/Ongaku-Backend/internal/domain/forecast"
)

const (
	defaultForecastURL = "https://api.open-meteo.com/v1/forecast"
	hourlyVariables    = "temperature_2m,precipitation,weathercode,windspeed_10m,relativehumidity_2m"
)

// ForecastClient fetches hourly forecasts and current conditions.
type ForecastClient struct {
	endpoint
}

// NewForecastClient builds a forecast API client.
func NewForecastClient(baseURL string, timeout time.Duration) *ForecastClient {
	return &ForecastClient{endpoint: newEndpoint("forecast", baseURL, defaultForecastURL, timeout)}
}

// Forecast performs exactly one upstream call for params.
func (c *ForecastClient) Forecast(ctx context.Context, params forecast.Params) (forecast.Series, error) {
	query := url.Values{}
	query.Set("latitude", strconv.FormatFloat(params.Latitude, 'f', -1, 64))
	query.Set("longitude", strconv.FormatFloat(params.Longitude, 'f', -1, 64))
	query.Set("hourly", hourlyVariables)
	query.Set("current_weather", "true")
	if tz := strings.TrimSpace(params.Timezone); tz != "" {
		query.Set("timezone", tz)
	}
	if params.StartDate != "" && params.EndDate != "" {
		query.Set("start_date", params.StartDate)
		query.Set("end_date", params.EndDate)
	} else if params.Days > 0 {
		query.Set("forecast_days", strconv.Itoa(params.Days))
	}

	var raw forecastResponse
	if err := c.getJSON(ctx, query, &raw); err != nil {
		return forecast.Series{}, err
	}
	return raw.toSeries(), nil
}

type forecastResponse struct {
	Timezone       string          `json:"timezone"`
	CurrentWeather *currentWeather `json:"current_weather"`
	Hourly         hourlyBlock     `json:"hourly"`
}

type currentWeather struct {
	Time          string   `json:"time"`
	Temperature   *float64 `json:"temperature"`
	WindSpeed     *float64 `json:"windspeed"`
	WindDirection *float64 `json:"winddirection"`
	WeatherCode   *int     `json:"weathercode"`
}

type hourlyBlock struct {
	Time          []string   `json:"time"`
	Temperature   []*float64 `json:"temperature_2m"`
	Precipitation []*float64 `json:"precipitation"`
	WeatherCode   []*int     `json:"weathercode"`
	WindSpeed     []*float64 `json:"windspeed_10m"`
	Humidity      []*float64 `json:"relativehumidity_2m"`
}

func (r forecastResponse) toSeries() forecast.Series {
	series := forecast.Series{Timezone: r.Timezone}
	if cw := r.CurrentWeather; cw != nil {
		series.Current = &forecast.CurrentWeather{
			Time:          cw.Time,
			Temperature:   cw.Temperature,
			WindSpeed:     cw.WindSpeed,
			WindDirection: cw.WindDirection,
			WeatherCode:   cw.WeatherCode,
		}
	}

	h := r.Hourly
	series.Hourly = make([]forecast.HourlyPoint, 0, len(h.Time))
	for i, ts := range h.Time {
		series.Hourly = append(series.Hourly, forecast.HourlyPoint{
			Time:          ts,
			Temperature:   at(h.Temperature, i),
			Precipitation: at(h.Precipitation, i),
			WeatherCode:   at(h.WeatherCode, i),
			WindSpeed:     at(h.WindSpeed, i),
			Humidity:      at(h.Humidity, i),
		})
	}
	return series
}

// at tolerates short arrays from upstream.
func at[T any](values []*T, i int) *T {
	if i < len(values) {
		return values[i]
	}
	return nil
}
