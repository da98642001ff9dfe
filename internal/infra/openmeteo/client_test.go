package openmeteo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Captain-T2004/Ongaku-Backend/internal/domain/forecast"
	"github.com/Captain-T2004/Ongaku-Backend/internal/domain/geo"
	apperrors "github.com/Captain-T2004/Ongaku-Backend/pkg/errors"
)

func TestGeocodingSearch(t *testing.T) {
	var got url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":[
			{"id":1850147,"name":"Tokyo","latitude":35.6895,"longitude":139.69171,"elevation":44,"timezone":"Asia/Tokyo","country":"Japan","country_code":"JP","admin1":"Tokyo","population":8336599,"postcodes":["100-0001"]},
			{"id":2,"name":"Tokyo Station","latitude":35.68,"longitude":139.76,"country":"Japan"}
		]}`))
	}))
	defer srv.Close()

	client := NewGeocodingClient(srv.URL, time.Second)
	locations, err := client.Search(context.Background(), geo.SearchParams{Name: "東京", Language: "ja", Country: "jp", Count: 5})
	require.NoError(t, err)

	require.Equal(t, "東京", got.Get("name"))
	require.Equal(t, "5", got.Get("count"))
	require.Equal(t, "ja", got.Get("language"))
	require.Equal(t, "JP", got.Get("countryCode"))
	require.Equal(t, "json", got.Get("format"))

	require.Len(t, locations, 2)
	require.Equal(t, int64(1850147), locations[0].ID)
	require.Equal(t, "Asia/Tokyo", locations[0].Timezone)
	require.Equal(t, []string{"100-0001"}, locations[0].Postcodes)
	require.Equal(t, []string{}, locations[1].Postcodes)
}

func TestGeocodingWithoutResults(t *testing.T) {
	var got url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query()
		_, _ = w.Write([]byte(`{"generationtime_ms":0.5}`))
	}))
	defer srv.Close()

	locations, err := NewGeocodingClient(srv.URL, time.Second).Search(context.Background(), geo.SearchParams{Name: "Atlantis"})
	require.NoError(t, err)
	require.Empty(t, locations)
	require.False(t, got.Has("countryCode"))
}

func TestGeocodingUpstreamStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewGeocodingClient(srv.URL, time.Second).Search(context.Background(), geo.SearchParams{Name: "Tokyo"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "status=502")
	require.False(t, apperrors.IsTimeout(err))
}

func TestGeocodingTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	_, err := NewGeocodingClient(srv.URL, 20*time.Millisecond).Search(context.Background(), geo.SearchParams{Name: "Tokyo"})
	require.Error(t, err)
	require.True(t, apperrors.IsTimeout(err))
}

func TestForecastRange(t *testing.T) {
	var got url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query()
		_, _ = w.Write([]byte(`{
			"timezone":"Asia/Tokyo",
			"current_weather":{"time":"2025-10-12T10:00","temperature":19.4,"windspeed":7.2,"winddirection":180,"weathercode":3},
			"hourly":{
				"time":["2025-10-12T00:00","2025-10-12T01:00","2025-10-12T02:00"],
				"temperature_2m":[15.1,null,14.8],
				"precipitation":[0,0.2,null],
				"weathercode":[1,61,3],
				"windspeed_10m":[3.5,4.0],
				"relativehumidity_2m":[80,82,85]
			}
		}`))
	}))
	defer srv.Close()

	series, err := NewForecastClient(srv.URL, time.Second).Forecast(context.Background(), forecast.Params{
		Latitude: 35.6895, Longitude: 139.69171, Timezone: "Asia/Tokyo", StartDate: "2025-10-12", EndDate: "2025-10-13",
	})
	require.NoError(t, err)

	require.Equal(t, "35.6895", got.Get("latitude"))
	require.Equal(t, "139.69171", got.Get("longitude"))
	require.Equal(t, hourlyVariables, got.Get("hourly"))
	require.Equal(t, "true", got.Get("current_weather"))
	require.Equal(t, "2025-10-12", got.Get("start_date"))
	require.Equal(t, "2025-10-13", got.Get("end_date"))
	require.False(t, got.Has("forecast_days"))

	require.Equal(t, "Asia/Tokyo", series.Timezone)
	require.NotNil(t, series.Current)
	require.Equal(t, 3, *series.Current.WeatherCode)
	require.Len(t, series.Hourly, 3)
	require.Nil(t, series.Hourly[1].Temperature)
	require.Nil(t, series.Hourly[2].Precipitation)
	require.Nil(t, series.Hourly[2].WindSpeed)
	require.Len(t, forecast.Samples(series.Hourly), 1)
}

func TestForecastSingleDay(t *testing.T) {
	var got url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query()
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	series, err := NewForecastClient(srv.URL, time.Second).Forecast(context.Background(), forecast.Params{Latitude: 1, Longitude: 2, Days: 1})
	require.NoError(t, err)
	require.Equal(t, "1", got.Get("forecast_days"))
	require.Nil(t, series.Current)
	require.Empty(t, series.Hourly)
}
