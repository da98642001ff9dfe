package http

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Captain-T2004/Ongaku-Backend/internal/domain/forecast"
	"github.com/Captain-T2004/Ongaku-Backend/internal/domain/geo"
	"github.com/Captain-T2004/Ongaku-Backend/internal/domain/itinerary"
	"github.com/Captain-T2004/Ongaku-Backend/internal/domain/suggest"
	"github.com/Captain-T2004/Ongaku-Backend/internal/i18n"
	"github.com/Captain-T2004/Ongaku-Backend/internal/infra/config"
	apperrors "github.com/Captain-T2004/Ongaku-Backend/pkg/errors"
)

var endpoints = gin.H{
	"health":    "GET /health",
	"geocode":   "GET /api/geocode?city=<city_name>",
	"weather":   "GET /api/weather?city=<city> OR ?latitude=<lat>&longitude=<lon>",
	"suggest":   "POST /api/suggest-quick",
	"itinerary": "POST /api/itinerary",
}

var units = gin.H{
	"temperature":   "°C",
	"precipitation": "mm",
	"windspeed":     "km/h",
	"humidity":      "%",
}

// Handler wires the HTTP transport to domain services.
type Handler struct {
	version      string
	resolver     geo.Service
	weather      forecast.Service
	suggestSvc   suggest.Service
	itinerarySvc itinerary.Service
	now          func() time.Time
	logger       *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(cfg *config.Config, resolver geo.Service, weather forecast.Service, suggestSvc suggest.Service, itinerarySvc itinerary.Service, logger *slog.Logger) *Handler {
	return &Handler{
		version:      cfg.Version,
		resolver:     resolver,
		weather:      weather,
		suggestSvc:   suggestSvc,
		itinerarySvc: itinerarySvc,
		now:          time.Now,
		logger:       logger.With("component", "http.handler"),
	}
}

// Health reports liveness and lists the public endpoints.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": h.now().Format(time.RFC3339),
		"version":   h.version,
		"endpoints": endpoints,
	})
}

type match struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Admin1    string  `json:"admin1"`
	Country   string  `json:"country"`
}

// Geocode resolves a city name to its best match and the ranked alternatives.
func (h *Handler) Geocode(c *gin.Context) {
	city := strings.TrimSpace(c.Query("city"))
	if city == "" {
		abortWithError(c, fromDomain(i18n.Error(apperrors.CodeInvalidInput, i18n.KeyMissingCity, nil), i18n.EN))
		return
	}
	q := geo.Query{Name: city, Language: c.Query("language")}
	if country, ok := c.GetQuery("country"); ok {
		q.Country = &country
	}

	res, err := h.resolver.Resolve(c.Request.Context(), q)
	if err != nil {
		if apperrors.IsCode(err, apperrors.CodeNotFound) {
			err = i18n.Error(apperrors.CodeNotFound, i18n.KeyNoLocationFound, err, city)
		}
		abortWithError(c, fromDomain(err, i18n.EN))
		return
	}

	matches := make([]match, 0, len(res.Candidates))
	for _, loc := range res.Candidates {
		matches = append(matches, match{
			Name:      loc.Name,
			Latitude:  loc.Latitude,
			Longitude: loc.Longitude,
			Admin1:    loc.Admin1,
			Country:   loc.Country,
		})
	}
	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"location":    res.Location,
		"all_matches": matches,
	})
}

// Weather returns current conditions and the next hours of forecast for a city or
// coordinate pair.
func (h *Handler) Weather(c *gin.Context) {
	q := geo.Query{Name: strings.TrimSpace(c.Query("city"))}
	if raw := c.Query("latitude"); raw != "" {
		q.Latitude = geo.ParseCoordinate(raw)
	}
	if raw := c.Query("longitude"); raw != "" {
		q.Longitude = geo.ParseCoordinate(raw)
	}
	if q.Name == "" && !q.HasCoordinates() {
		abortWithError(c, fromDomain(i18n.Error(apperrors.CodeInvalidInput, i18n.KeyMissingWeatherTarget, nil), i18n.EN))
		return
	}
	if q.HasCoordinates() {
		q.Name = ""
	}

	ctx := c.Request.Context()
	res, err := h.resolver.Resolve(ctx, q)
	if err != nil {
		abortWithError(c, fromDomain(err, i18n.EN))
		return
	}
	loc := res.Location

	report, err := h.weather.Current(ctx, forecast.CurrentQuery{
		Latitude:  loc.Latitude,
		Longitude: loc.Longitude,
		Timezone:  c.Query("timezone"),
	})
	if err != nil {
		abortWithError(c, fromDomain(err, i18n.EN))
		return
	}

	hourly := report.Hourly
	if hourly == nil {
		hourly = []forecast.Sample{}
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"location": gin.H{
			"name":      loc.Name,
			"latitude":  loc.Latitude,
			"longitude": loc.Longitude,
			"timezone":  report.Timezone,
		},
		"current":         report.Current,
		"hourly_forecast": hourly,
		"units":           units,
	})
}

// SuggestQuick returns five activity suggestions for the current weather.
func (h *Handler) SuggestQuick(c *gin.Context) {
	var req suggest.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, fromDomain(i18n.Error(apperrors.CodeInvalidInput, i18n.KeyInvalidBody, err), i18n.EN))
		return
	}

	resp, err := h.suggestSvc.Suggest(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, fromDomain(err, req.Locale()))
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Itinerary plans a weather aware multi-day schedule.
func (h *Handler) Itinerary(c *gin.Context) {
	var req itinerary.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, fromDomain(i18n.Error(apperrors.CodeInvalidInput, i18n.KeyInvalidBody, err), i18n.JA))
		return
	}

	resp, err := h.itinerarySvc.Plan(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, fromDomain(err, req.Locale()))
		return
	}

	c.JSON(http.StatusOK, resp)
}
