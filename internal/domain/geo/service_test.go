package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Captain-T2004/Ongaku-Backend/internal/i18n"
	apperrors "github.com/Captain-T2004/Ongaku-Backend/pkg/errors"
)

func TestResolveFallsBackWithoutCountry(t *testing.T) {
	geocoder := &stubGeocoder{
		byCountry: map[string][]Location{
			"JP": nil,
			"":   {{Name: "Honolulu", Latitude: 21.3, Longitude: -157.8, Admin1: "Hawaii"}},
		},
	}
	svc := newTestService(geocoder)

	res, err := svc.Resolve(context.Background(), Query{Name: "Honolulu", Language: "en"})
	require.NoError(t, err)
	require.True(t, res.Fallback)
	require.Equal(t, "Honolulu", res.Location.Name)
	require.Len(t, res.Candidates, 1)
	require.Len(t, geocoder.calls, 2)
	require.Equal(t, "JP", geocoder.calls[0].Country)
	require.Equal(t, "", geocoder.calls[1].Country)
	require.Equal(t, "en", geocoder.calls[1].Language)
	require.Equal(t, 5, geocoder.calls[1].Count)
}

func TestResolveReturnsRankedCandidates(t *testing.T) {
	geocoder := &stubGeocoder{
		byCountry: map[string][]Location{
			"JP": {{Name: "Shibuya", Admin1: "Tokyo"}, {Name: "Shibuya", Admin1: "Kanagawa"}},
		},
	}
	res, err := newTestService(geocoder).Resolve(context.Background(), Query{Name: " Shibuya "})
	require.NoError(t, err)
	require.False(t, res.Fallback)
	require.Equal(t, "Tokyo", res.Location.Admin1)
	require.Len(t, res.Candidates, 2)
	require.Len(t, geocoder.calls, 1)
	require.Equal(t, "ja", geocoder.calls[0].Language)
	require.Equal(t, "Shibuya", geocoder.calls[0].Name)
}

func TestResolveNotFoundAfterRetry(t *testing.T) {
	geocoder := &stubGeocoder{byCountry: map[string][]Location{}}
	_, err := newTestService(geocoder).Resolve(context.Background(), Query{Name: "Atlantis"})
	require.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))
	require.Contains(t, i18n.Reason(err, i18n.EN), "Atlantis")
	require.Len(t, geocoder.calls, 2)
}

func TestResolveEmptyCountryDisablesBias(t *testing.T) {
	geocoder := &stubGeocoder{byCountry: map[string][]Location{}}
	empty := ""
	_, err := newTestService(geocoder).Resolve(context.Background(), Query{Name: "Nowhere", Country: &empty})
	require.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))
	require.Len(t, geocoder.calls, 1)
	require.Equal(t, "", geocoder.calls[0].Country)
}

func TestResolveCoordinatesSkipGeocoder(t *testing.T) {
	geocoder := &stubGeocoder{}
	res, err := newTestService(geocoder).Resolve(context.Background(), Query{Latitude: At(35.6595), Longitude: At(139.7)})
	require.NoError(t, err)
	require.Empty(t, geocoder.calls)
	require.Equal(t, "Location (35.6595, 139.7)", res.Location.Name)
	require.Empty(t, res.Location.Admin1)
	require.Equal(t, []Location{res.Location}, res.Candidates)
}

func TestResolveCoordinatesKeepGivenName(t *testing.T) {
	res, err := newTestService(&stubGeocoder{}).Resolve(context.Background(), Query{Name: "Studio", Latitude: At(0), Longitude: At(0)})
	require.NoError(t, err)
	require.Equal(t, "Studio", res.Location.Name)
}

func TestResolveRejectsNonFiniteCoordinates(t *testing.T) {
	_, err := newTestService(&stubGeocoder{}).Resolve(context.Background(), Query{Latitude: At(math.Inf(1)), Longitude: At(1)})
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))
}

func TestResolveRequiresNameOrCoordinates(t *testing.T) {
	_, err := newTestService(&stubGeocoder{}).Resolve(context.Background(), Query{Latitude: At(35)})
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))
	require.Equal(t, "Either location OR (latitude AND longitude) is required", i18n.Reason(err, i18n.EN))
}

func TestResolveMapsUpstreamFailures(t *testing.T) {
	timeout := &stubGeocoder{err: fmt.Errorf("search: %w", context.DeadlineExceeded)}
	_, err := newTestService(timeout).Resolve(context.Background(), Query{Name: "Tokyo"})
	require.True(t, apperrors.IsCode(err, apperrors.CodeUpstreamTimeout))

	broken := &stubGeocoder{err: errors.New("status 502")}
	_, err = newTestService(broken).Resolve(context.Background(), Query{Name: "Tokyo"})
	require.True(t, apperrors.IsCode(err, apperrors.CodeUpstreamError))
	require.Equal(t, "Geocoding failed: status 502", i18n.Reason(err, i18n.EN))
}

func TestCoordinateUnmarshal(t *testing.T) {
	var body struct {
		A Coordinate `json:"a"`
		B Coordinate `json:"b"`
		C Coordinate `json:"c"`
		D Coordinate `json:"d"`
		E Coordinate `json:"e"`
		F Coordinate `json:"f"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":35.5,"b":"139.25","c":null,"d":"","e":"north","f":true}`), &body))
	require.Equal(t, At(35.5), body.A)
	require.Equal(t, At(139.25), body.B)
	require.False(t, body.C.Present)
	require.False(t, body.D.Present)
	require.True(t, body.E.Present)
	require.False(t, body.E.Finite())
	require.False(t, body.F.Finite())
}

func newTestService(geocoder Geocoder) Service {
	return NewService(Config{DefaultCountry: "JP", DefaultLanguage: "ja", MaxResults: 5}, geocoder, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

type stubGeocoder struct {
	byCountry map[string][]Location
	err       error
	calls     []SearchParams
}

func (s *stubGeocoder) Search(ctx context.Context, params SearchParams) ([]Location, error) {
	s.calls = append(s.calls, params)
	if s.err != nil {
		return nil, s.err
	}
	return s.byCountry[params.Country], nil
}
