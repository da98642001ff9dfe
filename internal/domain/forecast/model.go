package forecast

import "time"

// Sample is one hourly forecast entry with usable temperature and precipitation.
type Sample struct {
	Time            string   `json:"time"`
	TemperatureC    float64  `json:"temperature"`
	PrecipitationMm float64  `json:"precipitation"`
	WeatherCode     int      `json:"weathercode"`
	Condition       string   `json:"condition"`
	WindSpeedKmh    *float64 `json:"windspeed"`
	HumidityPct     *float64 `json:"humidity"`
}

// Snapshot is a single time-of-day reading.
type Snapshot struct {
	Condition       string  `json:"condition"`
	TemperatureC    float64 `json:"temperature"`
	PrecipitationMm float64 `json:"precipitation"`
}

// DaySummary reduces one calendar day to three snapshots.
type DaySummary struct {
	Date      string   `json:"date"`
	Morning   Snapshot `json:"morning"`
	Afternoon Snapshot `json:"afternoon"`
	Evening   Snapshot `json:"evening"`
}

// CurrentWeather mirrors the upstream current conditions block.
type CurrentWeather struct {
	Time          string   `json:"time"`
	Temperature   *float64 `json:"temperature"`
	WindSpeed     *float64 `json:"windspeed"`
	WindDirection *float64 `json:"winddirection"`
	WeatherCode   *int     `json:"weathercode"`
	Condition     string   `json:"condition"`
}

// HourlyPoint is an hourly entry as delivered upstream; any value may be missing.
type HourlyPoint struct {
	Time          string
	Temperature   *float64
	Precipitation *float64
	WeatherCode   *int
	WindSpeed     *float64
	Humidity      *float64
}

// Series is a raw upstream forecast.
type Series struct {
	Timezone string
	Current  *CurrentWeather
	Hourly   []HourlyPoint
}

// Params selects the forecast window. StartDate and EndDate take precedence over
// Days when both are set.
type Params struct {
	Latitude  float64
	Longitude float64
	Timezone  string
	StartDate string
	EndDate   string
	Days      int
}

// RangeQuery asks for day summaries over a date range.
type RangeQuery struct {
	Latitude  float64
	Longitude float64
	Start     time.Time
	Days      int
}

// CurrentQuery asks for current conditions. Date optionally pins a single day.
type CurrentQuery struct {
	Latitude  float64
	Longitude float64
	Timezone  string
	Date      string
}

// Report answers a CurrentQuery.
type Report struct {
	Timezone string
	Current  CurrentWeather
	Hourly   []Sample
}

// Config wires runtime settings for the aggregator.
type Config struct {
	Timezone string
}
