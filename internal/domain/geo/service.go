package geo

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/Captain-T2004/Ongaku-Backend/internal/i18n"
	apperrors "github.com/Captain-T2004/Ongaku-Backend/pkg/errors"
)

// Service resolves free text or coordinates into a canonical location.
type Service interface {
	Resolve(ctx context.Context, q Query) (Resolution, error)
}

// Geocoder searches an upstream gazetteer.
type Geocoder interface {
	Search(ctx context.Context, params SearchParams) ([]Location, error)
}

type service struct {
	cfg      Config
	geocoder Geocoder
	logger   *slog.Logger
}

// NewService wires up the resolver.
func NewService(cfg Config, geocoder Geocoder, logger *slog.Logger) Service {
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = 5
	}
	return &service{
		cfg:      cfg,
		geocoder: geocoder,
		logger:   logger.With("component", "geo.service"),
	}
}

func (s *service) Resolve(ctx context.Context, q Query) (Resolution, error) {
	if q.HasCoordinates() {
		return s.fromCoordinates(q)
	}

	name := strings.TrimSpace(q.Name)
	if name == "" {
		return Resolution{}, i18n.Error(apperrors.CodeInvalidInput, i18n.KeyMissingLocation, nil)
	}

	params := SearchParams{
		Name:     name,
		Language: firstNonEmpty(q.Language, s.cfg.DefaultLanguage),
		Country:  s.cfg.DefaultCountry,
		Count:    s.cfg.MaxResults,
	}
	if q.Country != nil {
		params.Country = strings.TrimSpace(*q.Country)
	}

	results, err := s.search(ctx, params)
	if err != nil {
		return Resolution{}, err
	}
	fallback := false
	if len(results) == 0 && params.Country != "" {
		s.logger.Info("geocoding retry without country bias", "name", name, "country", params.Country)
		params.Country = ""
		fallback = true
		if results, err = s.search(ctx, params); err != nil {
			return Resolution{}, err
		}
	}
	if len(results) == 0 {
		return Resolution{}, i18n.Error(apperrors.CodeNotFound, i18n.KeyLocationNotFound, nil, name)
	}

	s.logger.Info("location resolved", "name", name, "match", results[0].Name, "candidates", len(results), "fallback", fallback)
	return Resolution{Location: results[0], Candidates: results, Fallback: fallback}, nil
}

func (s *service) fromCoordinates(q Query) (Resolution, error) {
	if !q.Latitude.Finite() || !q.Longitude.Finite() {
		return Resolution{}, i18n.Error(apperrors.CodeInvalidInput, i18n.KeyInvalidCoordinates, nil)
	}
	name := strings.TrimSpace(q.Name)
	if name == "" {
		name = PlaceholderName(q.Latitude.Value, q.Longitude.Value)
	}
	loc := Location{
		Name:      name,
		Latitude:  q.Latitude.Value,
		Longitude: q.Longitude.Value,
	}
	return Resolution{Location: loc, Candidates: []Location{loc}}, nil
}

func (s *service) search(ctx context.Context, params SearchParams) ([]Location, error) {
	results, err := s.geocoder.Search(ctx, params)
	if err == nil {
		return results, nil
	}
	if apperrors.IsTimeout(err) {
		return nil, i18n.Error(apperrors.CodeUpstreamTimeout, i18n.KeyGeocodingTimeout, err)
	}
	return nil, i18n.Error(apperrors.CodeUpstreamError, i18n.KeyGeocodingFailed, err, err.Error())
}

// PlaceholderName labels a location known only by its coordinates.
func PlaceholderName(lat, lon float64) string {
	return "Location (" + strconv.FormatFloat(lat, 'f', -1, 64) + ", " + strconv.FormatFloat(lon, 'f', -1, 64) + ")"
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
