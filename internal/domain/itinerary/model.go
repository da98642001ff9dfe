package itinerary

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/Captain-T2004/Ongaku-Backend/internal/domain/forecast"
	"github.com/Captain-T2004/Ongaku-Backend/internal/domain/geo"
	"github.com/Captain-T2004/Ongaku-Backend/internal/i18n"
)

const (
	minDays = 1
	maxDays = 7
)

// Request captures the payload accepted by the itinerary planner.
type Request struct {
	Location     string         `json:"location"`
	Latitude     geo.Coordinate `json:"latitude"`
	Longitude    geo.Coordinate `json:"longitude"`
	Date         string         `json:"date"`
	DurationDays DurationDays   `json:"duration_days"`
	Preferences  []string       `json:"preferences"`
	UserQuery    string         `json:"user_query"`
	Language     string         `json:"language"`
}

// Locale returns the response language, defaulting to Japanese.
func (r Request) Locale() i18n.Locale {
	return i18n.ParseLocale(r.Language, i18n.JA)
}

// DurationDays is a trip length read leniently from JSON. Numbers are truncated,
// numeric strings are parsed and anything else counts as one day.
type DurationDays int

// UnmarshalJSON never fails; unusable input becomes a single day.
func (d *DurationDays) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*d = minDays
			return nil
		}
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			*d = minDays
			return nil
		}
		*d = DurationDays(clamp(float64(n)))
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		*d = minDays
		return nil
	}
	*d = DurationDays(clamp(math.Trunc(f)))
	return nil
}

// Days returns the trip length clamped into the supported range.
func (d DurationDays) Days() int {
	return int(clamp(float64(d)))
}

func clamp(v float64) float64 {
	if math.IsNaN(v) || v < minDays {
		return minDays
	}
	if v > maxDays {
		return maxDays
	}
	return v
}

// Plan is the validated input handed to the prompt composer.
type Plan struct {
	Location    geo.Location
	Start       time.Time
	Days        int
	Preferences []string
	UserQuery   string
	Locale      i18n.Locale
}

// Query echoes the interpreted request back to the client.
type Query struct {
	Location     string   `json:"location"`
	Prefecture   string   `json:"prefecture"`
	Latitude     float64  `json:"latitude"`
	Longitude    float64  `json:"longitude"`
	StartDate    string   `json:"start_date"`
	EndDate      string   `json:"end_date"`
	DurationDays int      `json:"duration_days"`
	Preferences  []string `json:"preferences"`
	UserQuery    string   `json:"user_query"`
	Language     string   `json:"language"`
}

// Response is serialized back to API consumers.
type Response struct {
	Success        bool                  `json:"success"`
	Query          Query                 `json:"query"`
	WeatherSummary []forecast.DaySummary `json:"weather_summary"`
	Itinerary      []json.RawMessage     `json:"itinerary"`
	LLMProvider    string                `json:"llm_provider"`
}

// Config wires runtime settings for the planner.
type Config struct {
	// Timezone decides which calendar date counts as today.
	Timezone string
	// MaxDaysAhead bounds how far the start date may be from today.
	MaxDaysAhead int
}
