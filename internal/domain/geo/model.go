package geo

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Coordinate is a latitude or longitude supplied by a client. Requests may carry it as
// a JSON number or a numeric string; null and "" leave it absent.
type Coordinate struct {
	Value   float64
	Present bool
}

// At returns a present coordinate.
func At(v float64) Coordinate {
	return Coordinate{Value: v, Present: true}
}

// ParseCoordinate reads a query-string coordinate. Unparseable text yields a present
// but non-finite coordinate so the resolver rejects it.
func ParseCoordinate(raw string) Coordinate {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Coordinate{}
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return Coordinate{Value: math.NaN(), Present: true}
	}
	return At(v)
}

// Finite reports whether the coordinate holds a usable number.
func (c Coordinate) Finite() bool {
	return c.Present && !math.IsNaN(c.Value) && !math.IsInf(c.Value, 0)
}

// UnmarshalJSON accepts numbers, numeric strings and null.
func (c *Coordinate) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*c = Coordinate{}
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = ParseCoordinate(s)
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		*c = Coordinate{Value: math.NaN(), Present: true}
		return nil
	}
	*c = At(v)
	return nil
}

// MarshalJSON renders absent coordinates as null.
func (c Coordinate) MarshalJSON() ([]byte, error) {
	if !c.Finite() {
		return []byte("null"), nil
	}
	return json.Marshal(c.Value)
}

// Query asks the resolver for a location by name or by coordinates.
type Query struct {
	Name      string
	Latitude  Coordinate
	Longitude Coordinate
	Language  string
	// Country biases the name search. Nil applies the configured default and an empty
	// string disables the bias.
	Country *string
}

// HasCoordinates reports whether both coordinates were supplied.
func (q Query) HasCoordinates() bool {
	return q.Latitude.Present && q.Longitude.Present
}

// Location is a canonical place returned by the resolver.
type Location struct {
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

// Resolution holds the chosen location and every ranked candidate.
type Resolution struct {
	Location   Location
	Candidates []Location
	// Fallback is set when the match came from the unbiased retry.
	Fallback bool
}

// SearchParams is passed to the geocoding upstream.
type SearchParams struct {
	Name     string
	Language string
	Country  string
	Count    int
}

// Config wires runtime settings for the resolver.
type Config struct {
	DefaultCountry  string
	DefaultLanguage string
	MaxResults      int
}
