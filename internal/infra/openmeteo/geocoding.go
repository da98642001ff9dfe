package openmeteo

import (
	"context"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Captain-T2004/Ongaku-Backend/internal/domain/geo"
)

const defaultGeocodingURL = "https://geocoding-api.open-meteo.com/v1/search"

// GeocodingClient searches place names.
type GeocodingClient struct {
	endpoint
}

// NewGeocodingClient builds a geocoding API client.
func NewGeocodingClient(baseURL string, timeout time.Duration) *GeocodingClient {
	return &GeocodingClient{endpoint: newEndpoint("geocoding", baseURL, defaultGeocodingURL, timeout)}
}

// Search returns ranked matches for params.Name. No match yields an empty slice.
func (c *GeocodingClient) Search(ctx context.Context, params geo.SearchParams) ([]geo.Location, error) {
	query := url.Values{}
	query.Set("name", params.Name)
	query.Set("format", "json")
	if params.Count > 0 {
		query.Set("count", strconv.Itoa(params.Count))
	}
	if lang := strings.TrimSpace(params.Language); lang != "" {
		query.Set("language", lang)
	}
	if country := strings.TrimSpace(params.Country); country != "" {
		query.Set("countryCode", strings.ToUpper(country))
	}

	var raw geocodingResponse
	if err := c.getJSON(ctx, query, &raw); err != nil {
		return nil, err
	}

	locations := make([]geo.Location, 0, len(raw.Results))
	for _, r := range raw.Results {
		postcodes := r.Postcodes
		if postcodes == nil {
			postcodes = []string{}
		}
		locations = append(locations, geo.Location{
			ID:          r.ID,
			Name:        r.Name,
			Latitude:    r.Latitude,
			Longitude:   r.Longitude,
			Elevation:   r.Elevation,
			Timezone:    r.Timezone,
			Country:     r.Country,
			CountryCode: r.CountryCode,
			Admin1:      r.Admin1,
			Admin2:      r.Admin2,
			Population:  r.Population,
			Postcodes:   postcodes,
		})
	}
	return locations, nil
}

type geocodingResponse struct {
	Results []geocodingResult `json:"results"`
}

type geocodingResult struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Latitude    float64  `json:"latitude"`
	Longitude   float64  `json:"longitude"`
	Elevation   float64  `json:"elevation"`
	Timezone    string   `json:"timezone"`
	Country     string   `json:"country"`
	CountryCode string   `json:"country_code"`
	Admin1      string   `json:"admin1"`
	Admin2      string   `json:"admin2"`
	Population  int64    `json:"population"`
	Postcodes   []string `json:"postcodes"`
}
