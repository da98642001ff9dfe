package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Captain-T2004/Ongaku-Backend/internal/infra/config"
)

// NewRouter wires up the HTTP handlers and returns a configured server.
func NewRouter(cfg *config.Config, handler *Handler) *http.Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(
		gin.Recovery(),
		requestID(),
		requestLogger(handler.logger),
		metricsMiddleware(),
		errorHandlingMiddleware(handler.logger),
	)

	router.GET("/health", handler.Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api", corsMiddleware(cfg.HTTP.CORS.AllowOrigins, cfg.HTTP.CORS.MaxAge))
	{
		api.GET("/geocode", handler.Geocode)
		api.GET("/weather", handler.Weather)
		api.POST("/suggest-quick", handler.SuggestQuick)
		api.POST("/itinerary", handler.Itinerary)
		// Preflight requests are answered by corsMiddleware.
		api.OPTIONS("/*path", func(c *gin.Context) {})
	}

	return &http.Server{
		Addr:           cfg.HTTP.Address,
		Handler:        router,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}
}
